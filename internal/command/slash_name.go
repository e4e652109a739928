package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

type NameCommand struct{}

func (c *NameCommand) Name() string        { return "name" }
func (c *NameCommand) Description() string { return "Show your name and Discord ID" }

func (c *NameCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

// Handle echoes the caller's name unescaped; Discord renders untrusted text itself.
func (c *NameCommand) Handle(_ context.Context, cc Context) (string, error) {
	caller := cc.Caller()
	return fmt.Sprintf("Hi!! **%s** \nyour Discord ID is  `%d` ", caller.Name, caller.ID), nil
}
