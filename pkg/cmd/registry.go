package cmd

import (
	"sort"
	"strings"
)

// Registry stores commands by name. It does not perform dispatch; each adapter
// looks up commands and invokes them with its own context.
// A Registry is built once at startup and read concurrently afterwards.
type Registry struct {
	commands map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command, replacing any command with the same name.
func (r *Registry) Register(c Command) {
	r.commands[c.Name()] = c
}

// Get returns the command registered under exactly name, or nil.
func (r *Registry) Get(name string) Command {
	return r.commands[name]
}

// Lookup finds a command by name. With foldCase, names are compared
// case-insensitively.
func (r *Registry) Lookup(name string, foldCase bool) (Command, bool) {
	if c, ok := r.commands[name]; ok {
		return c, true
	}
	if !foldCase {
		return nil, false
	}
	for n, c := range r.commands {
		if strings.EqualFold(n, name) {
			return c, true
		}
	}
	return nil, false
}

// GetAll returns all registered commands, sorted by name.
func (r *Registry) GetAll() []Command {
	list := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}
