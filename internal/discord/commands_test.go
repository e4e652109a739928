package discord

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/rolecall/internal/command"
	"github.com/keshon/rolecall/pkg/retrylimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(cmds []*discordgo.ApplicationCommand) []string {
	var out []string
	for _, c := range cmds {
		out = append(out, c.Name)
	}
	return out
}

func TestBuildCommandDefinitions(t *testing.T) {
	defs := buildCommandDefinitions(command.NewRegistry())
	assert.Equal(t, []string{"bot", "hello", "name", "ping", "roles"}, names(defs))
}

func TestHashIgnoresRuntimeFields(t *testing.T) {
	local := &discordgo.ApplicationCommand{Name: "ping", Description: "Check bot latency"}
	remote := &discordgo.ApplicationCommand{
		ID:            "123",
		ApplicationID: "456",
		Version:       "789",
		Name:          "ping",
		Description:   "Check bot latency",
		Type:          discordgo.ChatApplicationCommand,
	}
	assert.Equal(t, hashCommand(local, false), hashCommand(remote, false))

	changed := *remote
	changed.Description = "Pong"
	assert.NotEqual(t, hashCommand(local, false), hashCommand(&changed, false))

	dm := false
	guildOnly := *remote
	guildOnly.DMPermission = &dm
	assert.NotEqual(t, hashCommand(local, false), hashCommand(&guildOnly, false))
}

func TestHashGuildScopeIgnoresDMPermission(t *testing.T) {
	dm := false
	local := &discordgo.ApplicationCommand{Name: "roles", Description: "List roles", DMPermission: &dm}
	remote := &discordgo.ApplicationCommand{ID: "1", Name: "roles", Description: "List roles", Type: discordgo.ChatApplicationCommand}

	assert.Equal(t, hashCommand(local, true), hashCommand(remote, true))
	assert.NotEqual(t, hashCommand(local, false), hashCommand(remote, false))
	assert.Empty(t, planSync([]*discordgo.ApplicationCommand{remote}, []*discordgo.ApplicationCommand{local}, true).upsert)
}

func TestHashSortsOptions(t *testing.T) {
	a := &discordgo.ApplicationCommand{Name: "x", Options: []*discordgo.ApplicationCommandOption{
		{Name: "b", Type: discordgo.ApplicationCommandOptionString},
		{Name: "a", Type: discordgo.ApplicationCommandOptionInteger},
	}}
	b := &discordgo.ApplicationCommand{Name: "x", Options: []*discordgo.ApplicationCommandOption{
		{Name: "a", Type: discordgo.ApplicationCommandOptionInteger},
		{Name: "b", Type: discordgo.ApplicationCommandOptionString},
	}}
	assert.Equal(t, hashCommand(a, false), hashCommand(b, false))
}

func TestPlanSync(t *testing.T) {
	local := buildCommandDefinitions(command.NewRegistry())
	require.Len(t, local, 5)

	plan := planSync(nil, local, false)
	assert.Empty(t, plan.remove)
	assert.Equal(t, names(local), names(plan.upsert))

	var remote []*discordgo.ApplicationCommand
	for _, d := range local {
		rc := *d
		rc.ID = "id-" + d.Name
		remote = append(remote, &rc)
	}
	plan = planSync(remote, local, false)
	assert.Empty(t, plan.remove)
	assert.Empty(t, plan.upsert)

	remote[0].Description = "outdated"
	remote = append(remote, &discordgo.ApplicationCommand{ID: "old", Name: "music"})
	plan = planSync(remote, local, false)
	assert.Equal(t, []string{"music"}, names(plan.remove))
	assert.Equal(t, []string{local[0].Name}, names(plan.upsert))
}

func TestClassifyREST(t *testing.T) {
	rest := func(code int) error {
		return &discordgo.RESTError{Response: &http.Response{StatusCode: code}}
	}
	assert.Equal(t, retrylimit.Throttled, classifyREST(rest(http.StatusTooManyRequests)))
	assert.Equal(t, retrylimit.Retry, classifyREST(fmt.Errorf("wrapped: %w", rest(http.StatusBadGateway))))
	assert.Equal(t, retrylimit.Fatal, classifyREST(rest(http.StatusForbidden)))
	assert.Equal(t, retrylimit.Fatal, classifyREST(errors.New("dial tcp")))

	assert.Equal(t, http.StatusNotFound, statusOf(rest(http.StatusNotFound)))
	assert.Zero(t, statusOf(errors.New("x")))
}
