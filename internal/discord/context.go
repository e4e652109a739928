package discord

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/rolecall/internal/command"
	"github.com/keshon/rolecall/internal/report"
	"github.com/keshon/rolecall/internal/roles"
)

// memberFetcher is the part of *discordgo.Session used to fetch members.
type memberFetcher interface {
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
}

// eventContext implements command.Context for a single gateway event. It
// reads the session state but never writes to it.
type eventContext struct {
	session *discordgo.Session
	user    *discordgo.User
	guildID string
	// member is the partial member sent with the event, if any.
	member *discordgo.Member
	// members is the REST fallback, the session itself outside tests.
	members memberFetcher
}

func newInteractionContext(s *discordgo.Session, i *discordgo.InteractionCreate) *eventContext {
	c := &eventContext{session: s, members: s, guildID: i.GuildID, member: i.Member, user: i.User}
	if i.Member != nil && i.Member.User != nil {
		c.user = i.Member.User
	}
	return c
}

func newMessageContext(s *discordgo.Session, m *discordgo.MessageCreate) *eventContext {
	return &eventContext{session: s, members: s, guildID: m.GuildID, member: m.Member, user: m.Author}
}

func (c *eventContext) Latency() time.Duration {
	return c.session.HeartbeatLatency()
}

func (c *eventContext) Caller() command.Caller {
	if c.user == nil {
		return command.Caller{}
	}
	id, _ := strconv.ParseUint(c.user.ID, 10, 64)
	return command.Caller{Name: c.user.Username, ID: id}
}

func (c *eventContext) GuildID() (string, bool) {
	return c.guildID, c.guildID != ""
}

// Membership prefers the member sent with the event, then the state cache,
// then the REST API. A 403 or 404 from Discord means the bot cannot see the
// member, which is reported as unavailable rather than as an error. Other
// REST failures are transport errors and are not retried.
func (c *eventContext) Membership(ctx context.Context, guildID string) (*roles.Membership, error) {
	if c.member != nil && c.member.Roles != nil {
		return membershipOf(c.member), nil
	}
	if c.user == nil {
		return nil, nil
	}
	if c.session.State != nil {
		if m, err := c.session.State.Member(guildID, c.user.ID); err == nil {
			return membershipOf(m), nil
		}
	}

	m, err := c.members.GuildMember(guildID, c.user.ID, discordgo.WithContext(ctx))
	if err != nil {
		switch statusOf(err) {
		case http.StatusForbidden, http.StatusNotFound:
			return nil, nil
		}
		return nil, report.Transport(fmt.Errorf("fetch member %s: %w", c.user.ID, err))
	}
	if m == nil {
		return nil, nil
	}
	return membershipOf(m), nil
}

// GuildRoles reads the role catalog from the state cache only; a guild that
// is not cached yet yields an empty catalog.
func (c *eventContext) GuildRoles(_ context.Context, guildID string) (roles.Catalog, error) {
	catalog := roles.Catalog{}
	if c.session.State == nil {
		return catalog, nil
	}
	g, err := c.session.State.Guild(guildID)
	if err != nil {
		return catalog, nil
	}

	c.session.State.RLock()
	defer c.session.State.RUnlock()
	for _, r := range g.Roles {
		catalog[r.ID] = r.Name
	}
	return catalog, nil
}

func membershipOf(m *discordgo.Member) *roles.Membership {
	ids := make([]string, len(m.Roles))
	copy(ids, m.Roles)
	return &roles.Membership{RoleIDs: ids}
}
