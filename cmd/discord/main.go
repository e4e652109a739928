// cmd/discord/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/keshon/rolecall/internal/command"
	"github.com/keshon/rolecall/internal/config"
	"github.com/keshon/rolecall/internal/discord"
	"github.com/keshon/rolecall/internal/logging"
	"github.com/keshon/rolecall/internal/metrics"
	"github.com/keshon/rolecall/internal/middleware"
	"github.com/keshon/rolecall/internal/report"
	v "github.com/keshon/rolecall/internal/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "[ERR]", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer closer.Close()

	if !cfg.DotEnvFound {
		log.Warn().Msg("No .env file found, using environment only")
	}
	log.Info().Msgf("Starting %v bot...", v.AppName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	promReg := prometheus.NewRegistry()
	if err := m.Register(promReg); err != nil {
		return err
	}
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	reporter := report.New(log, m.ObserveFailure)
	reg := command.NewRegistry(
		middleware.WithMetrics(m),
		middleware.WithCommandLogger(log),
	)
	dispatcher := command.NewDispatcher(reg, reporter, log)

	bot, err := discord.NewBot(cfg, reg, dispatcher, reporter, log)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bot.Run(ctx)
	})
	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			log.Info().Str("addr", cfg.MetricsAddr).Msg("Serving metrics")
			return metrics.Serve(ctx, cfg.MetricsAddr, promReg)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("discord bot error: %w", err)
	}
	log.Info().Msg("Discord bot exited cleanly")
	return nil
}
