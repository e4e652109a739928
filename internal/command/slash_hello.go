package command

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

type HelloCommand struct{}

func (c *HelloCommand) Name() string        { return "hello" }
func (c *HelloCommand) Description() string { return "Say hello" }

func (c *HelloCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *HelloCommand) Handle(context.Context, Context) (string, error) {
	return "Hello!! this bot is written in **Go!!**", nil
}
