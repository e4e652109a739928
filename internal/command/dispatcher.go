package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/keshon/rolecall/internal/report"
	"github.com/keshon/rolecall/pkg/cmd"
	"github.com/rs/zerolog"
)

// Source tells how an invocation reached the bot.
type Source int

const (
	// SourceSlash is a Discord application command interaction.
	SourceSlash Source = iota
	// SourcePrefix is a text message starting with the command prefix.
	SourcePrefix
)

func (s Source) String() string {
	switch s {
	case SourceSlash:
		return "slash"
	case SourcePrefix:
		return "prefix"
	default:
		return "unknown"
	}
}

// Request is one inbound invocation.
type Request struct {
	Command string
	Args    []string
	Source  Source
	Context Context
	// Reply sends text back to where the invocation came from.
	Reply func(ctx context.Context, text string) error
}

// Result describes what Dispatch did with a request.
type Result struct {
	Matched bool
	Replied bool
	Command string
	Err     error
}

// Reporter receives failures raised while handling a command.
type Reporter interface {
	Report(command string, err error)
}

// Dispatcher routes requests to registered commands and sends their replies.
// It is safe for concurrent use once built.
type Dispatcher struct {
	reg      *cmd.Registry
	reporter Reporter
	log      zerolog.Logger
}

func NewDispatcher(reg *cmd.Registry, reporter Reporter, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{reg: reg, reporter: reporter, log: log}
}

// Dispatch runs the command named by req and sends at most one reply.
// Slash requests match names exactly, prefix requests ignore case.
// Failures go to the Reporter and never escape Dispatch.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (res Result) {
	c, ok := d.reg.Lookup(req.Command, req.Source == SourcePrefix)
	if !ok {
		// The gateway only delivers registered slash commands; unknown
		// prefix words are ordinary chat.
		d.log.Debug().Str("command", req.Command).Stringer("source", req.Source).Msg("No command registered")
		return Result{}
	}
	name := c.Name()
	res = Result{Matched: true, Command: name}

	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("panic: %v", rec)
			d.reporter.Report(name, err)
			res.Err = err
		}
	}()

	reply, err := c.Run(ctx, &cmd.Invocation{Name: req.Command, Args: req.Args, Data: req.Context})
	if err != nil {
		d.reporter.Report(name, err)
		res.Err = err
		return res
	}
	if reply == "" || req.Reply == nil {
		return res
	}

	if err := req.Reply(ctx, reply); err != nil {
		if !errors.Is(err, report.ErrTransport) {
			err = report.Transport(err)
		}
		d.reporter.Report(name, fmt.Errorf("send reply: %w", err))
		res.Err = err
		return res
	}
	res.Replied = true
	return res
}
