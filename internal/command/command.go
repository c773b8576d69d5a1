// Package command implements the shell's command layer: variable
// creation and editing, data intake, session persistence, and list
// filtering. Commands read and write the symbol table; expression
// evaluation is delegated to the evaluator package.
package command

import (
	"sort"

	"github.com/point-o/sham/internal/symbols"
)

// Result reports the outcome of one command execution. Messages carry no
// decoration; rendering (prefixes, color) is the caller's concern.
type Result struct {
	OK      bool
	Message string
}

func Success(msg string) Result { return Result{OK: true, Message: msg} }
func Failure(msg string) Result { return Result{OK: false, Message: msg} }

// Command is one executable shell command.
type Command interface {
	Name() string
	Usage() string
	Execute(env *symbols.Table, args []string) Result
}

// Registry maps command words to commands. Populated once at startup,
// read-only afterwards.
type Registry struct {
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

func (r *Registry) Register(c Command) {
	r.commands[c.Name()] = c
}

func (r *Registry) Lookup(name string) (Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// Commands returns all registered commands sorted by name.
func (r *Registry) Commands() []Command {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	cmds := make([]Command, len(names))
	for i, name := range names {
		cmds[i] = r.commands[name]
	}
	return cmds
}

// Default returns a registry with every built-in command registered.
func Default() *Registry {
	r := NewRegistry()
	r.Register(Set{})
	r.Register(Edit{})
	r.Register(Drop{})
	r.Register(Load{})
	r.Register(Save{})
	r.Register(Open{})
	r.Register(Filter{})
	return r
}
