// cmd/cli/main.go
package main

import (
	"fmt"
	"os"

	"github.com/keshon/rolecall/internal/command"
	"github.com/keshon/rolecall/internal/logging"
	"github.com/keshon/rolecall/internal/report"
	v "github.com/keshon/rolecall/internal/version"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           v.AppName + "-cli",
		Short:         "Run " + v.AppName + " commands from the terminal",
		Long:          v.AppDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	newDispatcher := func() (*command.Dispatcher, []string, error) {
		log, _, err := logging.New(logging.Options{Level: logLevel, Format: "console"})
		if err != nil {
			return nil, nil, err
		}
		reg := command.NewRegistry()
		var names []string
		for _, c := range reg.GetAll() {
			names = append(names, c.Name())
		}
		return command.NewDispatcher(reg, report.New(log, nil), log), names, nil
	}

	root.AddCommand(
		newCommandsCommand(),
		newInvokeCommand(newDispatcher),
	)
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "[ERR]", err)
		os.Exit(1)
	}
}
