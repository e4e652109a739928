package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/rolecall/internal/command"
	"github.com/keshon/rolecall/pkg/cmd"
	"github.com/keshon/rolecall/pkg/retrylimit"
)

// commandAPI is the part of *discordgo.Session used to sync slash commands.
type commandAPI interface {
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

// syncPlan lists what has to change on Discord's side.
type syncPlan struct {
	remove []*discordgo.ApplicationCommand
	upsert []*discordgo.ApplicationCommand
}

// buildCommandDefinitions returns ApplicationCommand definitions for all registered commands.
func buildCommandDefinitions(reg *cmd.Registry) []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, c := range reg.GetAll() {
		if def := command.SlashDefinition(c); def != nil {
			defs = append(defs, def)
		}
	}
	return defs
}

// planSync compares what Discord has registered with what we serve. Commands
// whose hash matches are left alone.
func planSync(remote, local []*discordgo.ApplicationCommand, guildScoped bool) syncPlan {
	var plan syncPlan

	remoteByName := make(map[string]*discordgo.ApplicationCommand, len(remote))
	for _, rc := range remote {
		remoteByName[rc.Name] = rc
	}
	localNames := make(map[string]struct{}, len(local))
	for _, d := range local {
		localNames[d.Name] = struct{}{}
		if rc, ok := remoteByName[d.Name]; ok && hashCommand(rc, guildScoped) == hashCommand(d, guildScoped) {
			continue
		}
		plan.upsert = append(plan.upsert, d)
	}
	for _, rc := range remote {
		if _, ok := localNames[rc.Name]; !ok {
			plan.remove = append(plan.remove, rc)
		}
	}
	return plan
}

// registerCommands syncs slash commands with Discord: deletes obsolete ones,
// creates or updates commands whose definition has changed. An empty guildID
// registers global commands.
func (b *Bot) registerCommands(ctx context.Context, appID, guildID string) error {
	remote, err := b.commands.ApplicationCommands(appID, guildID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("fetch registered commands: %w", err)
	}

	plan := planSync(remote, buildCommandDefinitions(b.reg), guildID != "")
	scope := guildID
	if scope == "" {
		scope = "global"
	}

	for _, rc := range plan.remove {
		b.log.Info().Str("scope", scope).Msgf("Deleting obsolete command: %s", rc.Name)
		if err := b.commands.ApplicationCommandDelete(appID, guildID, rc.ID, discordgo.WithContext(ctx)); err != nil {
			b.log.Error().Err(err).Str("scope", scope).Msgf("Failed to delete %s", rc.Name)
		}
	}

	if len(plan.upsert) == 0 {
		b.log.Info().Str("scope", scope).Msg("Slash commands are up to date")
		return nil
	}
	b.log.Info().Str("scope", scope).Msgf("%d commands changed, updating with rate limit...", len(plan.upsert))
	policy := retrylimit.DefaultPolicy()
	policy.Log = b.log
	for _, def := range plan.upsert {
		err := retrylimit.Do(ctx, b.limiter, policy, classifyREST, func() error {
			_, err := b.commands.ApplicationCommandCreate(appID, guildID, def, discordgo.WithContext(ctx))
			return err
		})
		if ctx.Err() != nil {
			return fmt.Errorf("register commands: %w", ctx.Err())
		}
		if err != nil {
			b.log.Error().Err(err).Str("scope", scope).Msgf("Can't create command %s", def.Name)
			continue
		}
		b.log.Info().Str("scope", scope).Msgf("Command created: %s", def.Name)
	}
	return nil
}
