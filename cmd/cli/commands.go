package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/keshon/rolecall/internal/command"
	"github.com/spf13/cobra"
)

func newCommandsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "commands",
		Short:   "List registered commands",
		Example: `rolecall-cli commands`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range command.NewRegistry().GetAll() {
				scope := "slash, prefix"
				if def := command.SlashDefinition(c); def != nil && def.DMPermission != nil && !*def.DMPermission {
					scope += ", guild only"
				}
				fmt.Fprintf(w, "%s\t%s\t(%s)\n", c.Name(), c.Description(), scope)
			}
			return w.Flush()
		},
	}
}
