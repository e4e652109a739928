package discord

import (
	"context"
	"fmt"
	"slices"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/rolecall/internal/command"
	"github.com/keshon/rolecall/internal/config"
	"github.com/keshon/rolecall/internal/report"
	"github.com/keshon/rolecall/pkg/cmd"
	"github.com/keshon/rolecall/pkg/retrylimit"
	"github.com/rs/zerolog"
)

// Slash command registration starts at 5 calls per second and adapts to
// Discord's responses.
const (
	commandRate    = 5
	commandRateMax = 40
)

// Bot is a Discord bot
type Bot struct {
	dg         *discordgo.Session
	cfg        *config.Config
	reg        *cmd.Registry
	dispatcher *command.Dispatcher
	reporter   *report.Reporter
	log        zerolog.Logger
	limiter    *retrylimit.AdaptiveLimiter

	// commands and leave reach the REST API; tests replace them.
	commands commandAPI
	leave    func(guildID string) error

	// ctx is the Run context, read by event handlers.
	ctx context.Context
}

// NewBot creates a bot serving the commands in reg. The gateway connection
// is opened by Run.
func NewBot(cfg *config.Config, reg *cmd.Registry, dispatcher *command.Dispatcher, reporter *report.Reporter, log zerolog.Logger) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	b := &Bot{
		dg:         dg,
		cfg:        cfg,
		reg:        reg,
		dispatcher: dispatcher,
		reporter:   reporter,
		log:        log,
		limiter:    retrylimit.NewAdaptiveLimiter(commandRate, 1, commandRateMax, 1, 0.5),
		ctx:        context.Background(),
		commands:   dg,
	}
	b.leave = func(guildID string) error { return b.dg.GuildLeave(guildID) }
	return b, nil
}

// Run connects to the gateway and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx

	b.configureIntents()
	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onGuildCreate)
	b.dg.AddHandler(b.onInteractionCreate)
	b.dg.AddHandler(b.onMessageCreate)

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	<-ctx.Done()
	b.log.Info().Msg("Shutdown signal received. Cleaning up...")
	return nil
}

// configureIntents asks for every non-privileged intent plus message content,
// which prefix commands need.
func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsAllWithoutPrivileged | discordgo.IntentMessageContent
}

// onReady is called when the bot is ready
func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	defer b.reporter.Recover("")

	for _, g := range r.Guilds {
		b.leaveIfBlacklisted(g.ID)
	}

	if b.cfg.InitSlashCommands {
		appID := r.User.ID
		if r.Application != nil && r.Application.ID != "" {
			appID = r.Application.ID
		}
		if err := b.registerCommands(b.ctx, appID, b.cfg.DiscordGuildID); err != nil {
			b.reporter.ReportFramework(fmt.Errorf("register slash commands: %w", err))
		}
	} else {
		b.log.Info().Msg("Registering slash commands skipped")
	}

	b.log.Info().Msgf("Discord bot %s is running.", r.User.Username)
}

// onGuildCreate is called when the bot joins a guild or a guild becomes available
func (b *Bot) onGuildCreate(_ *discordgo.Session, g *discordgo.GuildCreate) {
	defer b.reporter.Recover("")
	b.log.Debug().Str("guild", g.ID).Msgf("Guild available: %s", g.Name)
	b.leaveIfBlacklisted(g.ID)
}

func (b *Bot) leaveIfBlacklisted(guildID string) {
	if !b.isGuildBlacklisted(guildID) {
		return
	}
	b.log.Info().Str("guild", guildID).Msg("Leaving blacklisted guild")
	if err := b.leave(guildID); err != nil {
		b.reporter.ReportFramework(fmt.Errorf("leave guild %s: %w", guildID, err))
	}
}

func (b *Bot) isGuildBlacklisted(guildID string) bool {
	return slices.Contains(b.cfg.DiscordGuildBlacklist, guildID)
}

// onInteractionCreate dispatches application commands.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		b.log.Debug().Msgf("Ignoring interaction type: %d", i.Type)
		return
	}
	name := i.ApplicationCommandData().Name
	defer b.reporter.Recover(name)

	b.dispatcher.Dispatch(b.ctx, command.Request{
		Command: name,
		Source:  command.SourceSlash,
		Context: newInteractionContext(s, i),
		Reply: func(_ context.Context, text string) error {
			return Respond(s, i, text)
		},
	})
}

// onMessageCreate dispatches prefix commands.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	var mentions []string
	if s.State != nil && s.State.User != nil {
		mentions = []string{"<@" + s.State.User.ID + ">", "<@!" + s.State.User.ID + ">"}
	}
	name, args, ok := command.ParsePrefix(m.Content, b.cfg.CommandPrefix, mentions...)
	if !ok {
		return
	}
	defer b.reporter.Recover(name)

	b.dispatcher.Dispatch(b.ctx, command.Request{
		Command: name,
		Args:    args,
		Source:  command.SourcePrefix,
		Context: newMessageContext(s, m),
		Reply: func(_ context.Context, text string) error {
			return Message(s, m.ChannelID, text)
		},
	})
}
