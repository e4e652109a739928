package main

import (
	"fmt"
	"time"

	"github.com/keshon/rolecall/internal/command"
	"github.com/keshon/rolecall/internal/console"
	"github.com/keshon/rolecall/internal/roles"
	"github.com/spf13/cobra"
)

type invokeOptions struct {
	name        string
	id          uint64
	guild       string
	memberRoles []string
	guildRoles  []string
	latency     time.Duration
	noMember    bool
}

func (o invokeOptions) context() (*console.Context, error) {
	catalog, err := console.ParseCatalog(o.guildRoles)
	if err != nil {
		return nil, err
	}
	c := &console.Context{
		User:  command.Caller{Name: o.name, ID: o.id},
		Guild: o.guild,
		Roles: catalog,
		Ping:  o.latency,
	}
	if !o.noMember {
		c.Member = &roles.Membership{RoleIDs: o.memberRoles}
	}
	return c, nil
}

func newInvokeCommand(newDispatcher func() (*command.Dispatcher, []string, error)) *cobra.Command {
	var o invokeOptions

	cmd := &cobra.Command{
		Use:   "invoke <name> [args...]",
		Short: "Run a command with a simulated caller and print the reply",
		Example: `rolecall-cli invoke ping --latency 42ms
rolecall-cli invoke roles --guild g1 --member-roles r1,r2 --guild-roles r1=Admin,r2=VIP`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, names, err := newDispatcher()
			if err != nil {
				return err
			}
			cc, err := o.context()
			if err != nil {
				return err
			}

			var w console.Writer
			res := d.Dispatch(cmd.Context(), command.Request{
				Command: args[0],
				Args:    args[1:],
				Source:  command.SourcePrefix,
				Context: cc,
				Reply:   w.Reply,
			})
			if !res.Matched {
				return fmt.Errorf("unknown command %q, available: %v", args[0], names)
			}
			for _, r := range w.Replies {
				fmt.Fprintln(cmd.OutOrStdout(), r)
			}
			if res.Err != nil {
				return fmt.Errorf("command %s failed: %w", res.Command, res.Err)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.name, "name", "console", "caller display name")
	f.Uint64Var(&o.id, "id", 0, "caller id")
	f.StringVar(&o.guild, "guild", "", "guild id; empty means a direct message")
	f.StringSliceVar(&o.memberRoles, "member-roles", nil, "role ids held by the caller")
	f.StringSliceVar(&o.guildRoles, "guild-roles", nil, "guild roles as id=name")
	f.DurationVar(&o.latency, "latency", 0, "heartbeat latency to report")
	f.BoolVar(&o.noMember, "no-member", false, "simulate a member that cannot be fetched")

	return cmd
}
