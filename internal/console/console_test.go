package console

import (
	"context"
	"testing"
	"time"

	"github.com/keshon/rolecall/internal/command"
	"github.com/keshon/rolecall/internal/report"
	"github.com/keshon/rolecall/internal/roles"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog(t *testing.T) {
	catalog, err := ParseCatalog([]string{"r1=Admin", " r2 =Big VIP", "r3="})
	require.NoError(t, err)
	assert.Equal(t, roles.Catalog{"r1": "Admin", "r2": "Big VIP", "r3": ""}, catalog)

	_, err = ParseCatalog([]string{"Admin"})
	assert.Error(t, err)
	_, err = ParseCatalog([]string{"=Admin"})
	assert.Error(t, err)
}

func TestContext(t *testing.T) {
	c := &Context{
		User:   command.Caller{Name: "Alice", ID: 42},
		Guild:  "g1",
		Member: &roles.Membership{RoleIDs: []string{"r1"}},
		Roles:  roles.Catalog{"r1": "Admin"},
		Ping:   30 * time.Millisecond,
	}
	ctx := context.Background()

	m, err := c.Membership(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, m.RoleIDs)
	m.RoleIDs[0] = "changed"
	assert.Equal(t, "r1", c.Member.RoleIDs[0])

	m, err = c.Membership(ctx, "other")
	require.NoError(t, err)
	assert.Nil(t, m)

	catalog, err := c.GuildRoles(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, catalog)

	c.Member = nil
	m, err = c.Membership(ctx, "g1")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestDispatchThroughConsole(t *testing.T) {
	reg := command.NewRegistry()
	d := command.NewDispatcher(reg, report.New(zerolog.Nop(), nil), zerolog.Nop())

	c := &Context{
		User:   command.Caller{Name: "Alice", ID: 42},
		Guild:  "g1",
		Member: &roles.Membership{RoleIDs: []string{"r2", "r1"}},
		Roles:  roles.Catalog{"r1": "Admin", "r2": "VIP"},
		Ping:   87 * time.Millisecond,
	}

	cases := map[string]string{
		"ping":  "Websocket Heartbeat: **87ms**",
		"roles": "User **Alice** has the following roles:\n@everyone, VIP, Admin",
		"hello": "Hello!! this bot is written in **Go!!**",
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			var w Writer
			res := d.Dispatch(context.Background(), command.Request{
				Command: name,
				Source:  command.SourcePrefix,
				Context: c,
				Reply:   w.Reply,
			})
			require.NoError(t, res.Err)
			assert.True(t, res.Replied)
			assert.Equal(t, []string{want}, w.Replies)
		})
	}
}
