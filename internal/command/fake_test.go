package command

import (
	"context"
	"time"

	"github.com/keshon/rolecall/internal/roles"
)

// fakeContext is an in-memory Context that records which accessors ran.
type fakeContext struct {
	latency    time.Duration
	caller     Caller
	guildID    string
	member     *roles.Membership
	catalog    roles.Catalog
	memberErr  error
	catalogErr error

	memberCalls  int
	catalogCalls int
}

func (f *fakeContext) Latency() time.Duration { return f.latency }
func (f *fakeContext) Caller() Caller         { return f.caller }

func (f *fakeContext) GuildID() (string, bool) {
	return f.guildID, f.guildID != ""
}

func (f *fakeContext) Membership(context.Context, string) (*roles.Membership, error) {
	f.memberCalls++
	return f.member, f.memberErr
}

func (f *fakeContext) GuildRoles(context.Context, string) (roles.Catalog, error) {
	f.catalogCalls++
	return f.catalog, f.catalogErr
}
