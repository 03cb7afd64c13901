package cli

import (
	"time"
)

// Values is implemented by anything that can report bound option values by name.
// Both [*Result] and [*Binding] are Values, and so is [*Context] through its embedded [*Result].
type Values interface {
	Value(name string) (any, bool)
}

// Binding holds what was parsed for one [Command] in the matched chain.
type Binding struct {
	cmd    *Command
	values map[string]any
	args   []string
}

func newBinding(cmd *Command) *Binding {
	return &Binding{cmd: cmd, values: map[string]any{}}
}

// Command returns the [Command] this binding was parsed against.
func (b *Binding) Command() *Command {
	return b.cmd
}

// Has reports whether the option was supplied on the command line.
func (b *Binding) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// Value returns the bound value of the option, or its default if it wasn't supplied.
// False is returned if the option wasn't supplied and has no default.
func (b *Binding) Value(name string) (any, bool) {
	if val, ok := b.values[name]; ok {
		return val, true
	}
	opt, ok := b.cmd.options.Get(name)
	if !ok {
		return nil, false
	}
	return opt.defaultValue()
}

// Args returns the positional arguments given while this [Command] was the deepest match.
func (b *Binding) Args() []string {
	return b.args
}

// Result is the outcome of a successful parse.
// It holds one [Binding] per matched [Command], from the root to the deepest matched sub-command.
//
// Queries by option name resolve against the deepest [Command] in the chain that declares the name.
// This way options of a parent stay readable from a sub-command, while a sub-command can still declare an option with the same name.
type Result struct {
	chain []*Binding
	args  []string
}

// Chain returns the bindings of every matched [Command], root first.
func (r *Result) Chain() []*Binding {
	chain := make([]*Binding, len(r.chain))
	copy(chain, r.chain)
	return chain
}

func (r *Result) deepest() *Binding {
	return r.chain[len(r.chain)-1]
}

// Command returns the deepest matched [Command].
func (r *Result) Command() *Command {
	return r.deepest().cmd
}

// Subcommand reports whether any sub-command of the root was matched.
func (r *Result) Subcommand() bool {
	return len(r.chain) > 1
}

// Args returns the residual positional arguments in the order they were given, across every matched [Command].
// Use [Binding.Args] for the arguments given at one level.
func (r *Result) Args() []string {
	return r.args
}

// Binding returns the binding for the [Command] with the given path, as returned by [Command.Path].
func (r *Result) Binding(path string) (*Binding, bool) {
	for _, b := range r.chain {
		if b.cmd.Path() == path {
			return b, true
		}
	}
	return nil, false
}

func (r *Result) resolve(name string) *Binding {
	for i := len(r.chain) - 1; i >= 0; i-- {
		if _, ok := r.chain[i].cmd.options.Get(name); ok {
			return r.chain[i]
		}
	}
	return nil
}

// Has reports whether the named option was supplied.
func (r *Result) Has(name string) bool {
	b := r.resolve(name)
	if b == nil {
		return false
	}
	return b.Has(name)
}

// Value returns the bound or default value of the named option.
func (r *Result) Value(name string) (any, bool) {
	b := r.resolve(name)
	if b == nil {
		return nil, false
	}
	return b.Value(name)
}

// Bool returns the value of a flag or bool option, false if it's not set.
func (r *Result) Bool(name string) bool {
	return Get[bool](r, name)
}

// Int returns the value of an int option, 0 if it's not set.
func (r *Result) Int(name string) int {
	return Get[int](r, name)
}

// Float returns the value of a float option, 0 if it's not set.
func (r *Result) Float(name string) float64 {
	return Get[float64](r, name)
}

// String returns the value of a string option, "" if it's not set.
func (r *Result) String(name string) string {
	return Get[string](r, name)
}

// Duration returns the value of a duration option, 0 if it's not set.
func (r *Result) Duration(name string) time.Duration {
	return Get[time.Duration](r, name)
}

// Lookup returns the value of the named option as a T.
// False is returned if there's no value or default, or if the value isn't a T.
func Lookup[T any](values Values, name string) (T, bool) {
	var zero T
	val, ok := values.Value(name)
	if !ok {
		return zero, false
	}
	typed, ok := val.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Get is like [Lookup], but returns the zero value of T when there's nothing to return.
func Get[T any](values Values, name string) T {
	val, _ := Lookup[T](values, name)
	return val
}

// MustGet is like [Lookup], but panics if there is no T to return.
// The developer usually knows whether a lookup will fail, e.g. for an option with a default.
func MustGet[T any](values Values, name string) T {
	val, ok := Lookup[T](values, name)
	if !ok {
		var zero T
		panic(declarationErrorf("no %T value for option '%s'", zero, name))
	}
	return val
}

// Context is given to actions, pre-exec hooks, and early actions.
// It embeds the [*Result] for queries, and is associated with the [Command] that the function was declared on.
type Context struct {
	*Result
	cmd *Command
}

func newContext(result *Result, cmd *Command) *Context {
	return &Context{Result: result, cmd: cmd}
}

// Command returns the [Command] the running function was declared on.
func (c *Context) Command() *Command {
	return c.cmd
}

// Printer returns the [Printer] of the [Command].
func (c *Context) Printer() *Printer {
	return c.cmd.Printer()
}

// PrintHelp prints the help text of the [Command].
func (c *Context) PrintHelp() {
	c.cmd.PrintHelp()
}
