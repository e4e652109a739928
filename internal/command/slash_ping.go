package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

type PingCommand struct{}

func (c *PingCommand) Name() string        { return "ping" }
func (c *PingCommand) Description() string { return "Check bot latency" }

func (c *PingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *PingCommand) Handle(_ context.Context, cc Context) (string, error) {
	latency := cc.Latency().Milliseconds()
	return fmt.Sprintf("Websocket Heartbeat: **%dms**", latency), nil
}
