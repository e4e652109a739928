// Package console runs commands outside Discord, with the invocation state
// supplied by the caller. It backs the cli tool.
package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/keshon/rolecall/internal/command"
	"github.com/keshon/rolecall/internal/roles"
)

// Context is a command.Context with fixed values.
type Context struct {
	User  command.Caller
	Guild string
	// Member holds the caller's role ids. Nil means the member is unavailable.
	Member *roles.Membership
	Roles  roles.Catalog
	Ping   time.Duration
}

var _ command.Context = (*Context)(nil)

func (c *Context) Latency() time.Duration  { return c.Ping }
func (c *Context) Caller() command.Caller  { return c.User }
func (c *Context) GuildID() (string, bool) { return c.Guild, c.Guild != "" }

func (c *Context) Membership(_ context.Context, guildID string) (*roles.Membership, error) {
	if c.Member == nil || guildID != c.Guild {
		return nil, nil
	}
	return &roles.Membership{RoleIDs: append([]string(nil), c.Member.RoleIDs...)}, nil
}

func (c *Context) GuildRoles(_ context.Context, guildID string) (roles.Catalog, error) {
	catalog := roles.Catalog{}
	if guildID != c.Guild {
		return catalog, nil
	}
	for id, name := range c.Roles {
		catalog[id] = name
	}
	return catalog, nil
}

// ParseCatalog reads role definitions written as id=name pairs.
func ParseCatalog(pairs []string) (roles.Catalog, error) {
	catalog := roles.Catalog{}
	for _, p := range pairs {
		id, name, ok := strings.Cut(p, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid role %q, want id=name", p)
		}
		catalog[id] = name
	}
	return catalog, nil
}

// Writer collects replies for printing.
type Writer struct {
	Replies []string
}

// Reply records text. It matches command.Request.Reply.
func (w *Writer) Reply(_ context.Context, text string) error {
	w.Replies = append(w.Replies, text)
	return nil
}
