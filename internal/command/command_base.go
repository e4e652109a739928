package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/rolecall/pkg/cmd"
)

// Handler is what individual commands implement.
type Handler interface {
	Name() string
	Description() string
	Handle(ctx context.Context, c Context) (string, error)
}

// SlashProvider is implemented by commands that can be registered as Discord
// slash commands.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// Adapter adapts a Handler to cmd.Command so it can live in the universal
// registry. Invocation.Data must carry the Context.
type Adapter struct {
	Cmd Handler
}

func (a *Adapter) Name() string        { return a.Cmd.Name() }
func (a *Adapter) Description() string { return a.Cmd.Description() }

func (a *Adapter) Run(ctx context.Context, inv *cmd.Invocation) (string, error) {
	c, ok := inv.Data.(Context)
	if !ok {
		return "", fmt.Errorf("wrong context type %T", inv.Data)
	}
	return a.Cmd.Handle(ctx, c)
}

func (a *Adapter) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := a.Cmd.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

// SlashDefinition returns the slash definition of c, looking through any
// middleware wrapping it. It returns nil for commands without one.
func SlashDefinition(c cmd.Command) *discordgo.ApplicationCommand {
	sp, ok := cmd.Root(c).(SlashProvider)
	if !ok {
		return nil
	}
	def := sp.SlashDefinition()
	if def != nil && def.Type == 0 {
		def.Type = discordgo.ChatApplicationCommand
	}
	return def
}

// Handlers returns every command the bot serves.
func Handlers() []Handler {
	return []Handler{
		&HelloCommand{},
		&BotCommand{},
		&NameCommand{},
		&PingCommand{},
		&RolesCommand{},
	}
}

// NewRegistry builds the registry used by all adapters, with mws applied to
// each command.
func NewRegistry(mws ...cmd.Middleware) *cmd.Registry {
	reg := cmd.NewRegistry()
	for _, h := range Handlers() {
		reg.Register(cmd.Apply(&Adapter{Cmd: h}, mws...))
	}
	return reg
}
