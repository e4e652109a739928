package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/rolecall/internal/roles"
)

const (
	rolesDeclineMsg     = "This command cannot be used in DMs."
	rolesUnavailableMsg = "Could not fetch your member information (including roles).\nPlease check the bot's gateway intent settings."
)

type RolesCommand struct{}

func (c *RolesCommand) Name() string        { return "roles" }
func (c *RolesCommand) Description() string { return "List all roles you hold (not available in DMs)" }

func (c *RolesCommand) SlashDefinition() *discordgo.ApplicationCommand {
	dm := false
	return &discordgo.ApplicationCommand{
		Name:         c.Name(),
		Description:  c.Description(),
		Type:         discordgo.ChatApplicationCommand,
		DMPermission: &dm,
	}
}

func (c *RolesCommand) Handle(ctx context.Context, cc Context) (string, error) {
	guildID, ok := cc.GuildID()
	if !ok {
		return rolesDeclineMsg, nil
	}

	member, err := cc.Membership(ctx, guildID)
	if err != nil {
		return "", fmt.Errorf("fetch membership: %w", err)
	}
	if member == nil {
		return rolesUnavailableMsg, nil
	}

	catalog, err := cc.GuildRoles(ctx, guildID)
	if err != nil {
		return "", fmt.Errorf("fetch guild roles: %w", err)
	}

	names, _ := roles.Resolve(member, catalog)
	user := cc.Caller().Name

	if len(names) <= 1 {
		return fmt.Sprintf("User **%s** has no server roles other than %s.", user, roles.Baseline), nil
	}
	return fmt.Sprintf("User **%s** has the following roles:\n%s", user, strings.Join(names, ", ")), nil
}
