package command

import (
	"context"
	"time"

	"github.com/keshon/rolecall/internal/roles"
)

// Caller identifies whoever invoked a command.
type Caller struct {
	Name string
	ID   uint64
}

// Context gives handlers read access to the state around one invocation.
// Implementations are built per invocation by a transport adapter and are
// never shared between invocations.
type Context interface {
	// Latency is the current gateway heartbeat latency.
	Latency() time.Duration
	Caller() Caller
	// GuildID reports the guild the invocation came from; ok is false in DMs.
	GuildID() (id string, ok bool)
	// Membership returns the caller's roles in guildID. A nil membership with
	// a nil error means the member could not be fetched, which usually points
	// at missing gateway intents.
	Membership(ctx context.Context, guildID string) (*roles.Membership, error)
	// GuildRoles returns the guild's role catalog, possibly empty.
	GuildRoles(ctx context.Context, guildID string) (roles.Catalog, error)
}
