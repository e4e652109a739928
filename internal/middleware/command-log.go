package middleware

import (
	"context"
	"time"

	"github.com/keshon/rolecall/pkg/cmd"
	"github.com/rs/zerolog"
)

// WithCommandLogger wraps a command to log its execution
func WithCommandLogger(log zerolog.Logger) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) (string, error) {
			start := time.Now()
			reply, err := c.Run(ctx, inv)

			var e *zerolog.Event
			if err != nil {
				e = log.Warn().Err(err)
			} else {
				e = log.Info()
			}
			invocationFields(e, inv).
				Str("command", c.Name()).
				Dur("took", time.Since(start)).
				Msgf("Command /%s executed", c.Name())
			return reply, err
		})
	}
}
