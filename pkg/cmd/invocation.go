// Package cmd provides a transport-agnostic command core: a command has a name,
// a description, and Run(ctx, invocation) producing a text reply. How it is
// registered and dispatched (Discord slash, prefix messages, CLI) is defined by
// adapters that wrap this.
package cmd

import "context"

// Invocation carries what any command runner can pass: the name the command
// was invoked by, its arguments and an opaque payload. Adapters set Data to
// their accessor context.
type Invocation struct {
	Name string
	Args []string
	Data any
}

// Command is the universal contract: identity plus execution. Run returns the
// reply text; sending it is the adapter's job.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) (string, error)
}
