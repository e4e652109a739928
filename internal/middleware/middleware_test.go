package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/keshon/rolecall/internal/command"
	"github.com/keshon/rolecall/internal/metrics"
	"github.com/keshon/rolecall/internal/roles"
	"github.com/keshon/rolecall/pkg/cmd"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubContext struct{ guild string }

func (s stubContext) Latency() time.Duration { return 0 }
func (s stubContext) Caller() command.Caller {
	return command.Caller{Name: "Alice", ID: 42}
}
func (s stubContext) GuildID() (string, bool) { return s.guild, s.guild != "" }
func (s stubContext) Membership(context.Context, string) (*roles.Membership, error) {
	return nil, nil
}
func (s stubContext) GuildRoles(context.Context, string) (roles.Catalog, error) {
	return nil, nil
}

type stubCommand struct{ err error }

func (s stubCommand) Name() string        { return "ping" }
func (s stubCommand) Description() string { return "" }
func (s stubCommand) Run(context.Context, *cmd.Invocation) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "pong", nil
}

func TestWithCommandLogger(t *testing.T) {
	var buf bytes.Buffer
	c := cmd.Apply(stubCommand{}, WithCommandLogger(zerolog.New(&buf)))

	out, err := c.Run(context.Background(), &cmd.Invocation{Data: stubContext{guild: "g1"}})
	require.NoError(t, err)
	assert.Equal(t, "pong", out)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "ping", line["command"])
	assert.Equal(t, "Alice", line["user"])
	assert.Equal(t, "42", line["user_id"])
	assert.Equal(t, "g1", line["guild"])
	assert.Equal(t, "Command /ping executed", line["message"])
}

func TestWithCommandLoggerFailure(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("boom")
	c := cmd.Apply(stubCommand{err: boom}, WithCommandLogger(zerolog.New(&buf)))

	_, err := c.Run(context.Background(), &cmd.Invocation{Data: stubContext{}})
	assert.ErrorIs(t, err, boom)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "boom", line["error"])
	assert.NotContains(t, line, "guild")
}

func TestWithMetrics(t *testing.T) {
	m := metrics.New()
	c := cmd.Apply(stubCommand{}, WithMetrics(m))

	for range 3 {
		_, err := c.Run(context.Background(), &cmd.Invocation{})
		require.NoError(t, err)
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Invocations.WithLabelValues("ping")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Latency))
}
