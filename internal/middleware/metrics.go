package middleware

import (
	"context"
	"time"

	"github.com/keshon/rolecall/internal/metrics"
	"github.com/keshon/rolecall/pkg/cmd"
)

// WithMetrics counts invocations and records handler latency. Failures are
// counted by the reporter, which also sees reply errors.
func WithMetrics(m *metrics.Metrics) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) (string, error) {
			start := time.Now()
			reply, err := c.Run(ctx, inv)
			m.Invocations.WithLabelValues(c.Name()).Inc()
			m.Latency.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())
			return reply, err
		})
	}
}
