package command

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

type BotCommand struct{}

func (c *BotCommand) Name() string        { return "bot" }
func (c *BotCommand) Description() string { return "Tell what this bot is" }

func (c *BotCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *BotCommand) Handle(context.Context, Context) (string, error) {
	return "This bot is **rolecall test bot**", nil
}
