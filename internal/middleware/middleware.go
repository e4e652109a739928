// Package middleware holds cmd.Middleware implementations shared by every
// command: logging and metrics.
package middleware

import (
	"strconv"

	"github.com/keshon/rolecall/internal/command"
	"github.com/keshon/rolecall/pkg/cmd"
	"github.com/rs/zerolog"
)

// invocationFields adds guild and caller details of inv to e when inv carries
// a command.Context.
func invocationFields(e *zerolog.Event, inv *cmd.Invocation) *zerolog.Event {
	c, ok := inv.Data.(command.Context)
	if !ok {
		return e
	}
	caller := c.Caller()
	e = e.Str("user", caller.Name).Str("user_id", strconv.FormatUint(caller.ID, 10))
	if guildID, ok := c.GuildID(); ok {
		e = e.Str("guild", guildID)
	}
	return e
}
