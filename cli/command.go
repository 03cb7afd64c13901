package cli

import (
	"io"
	"log/slog"
	"slices"
	"strings"
	"unicode"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ActionFunc is the function dispatched by [Command.Execute] for the deepest matched [Command].
// Returning nil results in [StatusSuccess].
type ActionFunc func(ctx *Context) error

// Command is a node in a command tree.
// It owns its options, its argument validator, its action, and its sub-commands.
// Sub-commands keep a reference to their parent so usage information can show the full invocation path.
//
// A Command is only modified while it's being declared.
// Parsing produces a separate [Result], so a fully declared tree may be parsed any number of times, including concurrently.
type Command struct {
	name          string
	aliases       []string
	description   string
	usage         string
	options       *orderedmap.OrderedMap[string, *Option]
	shorts        map[rune]*Option
	groups        []Group
	commands      []*Command
	parent        *Command
	args          ArgsValidator
	action        ActionFunc
	preExec       []PreExec
	abbreviations bool
	printer       *Printer
	logger        *slog.Logger
}

// New creates the root of a command tree.
// The name is used in usage information, and is usually the name of the program.
// An empty name is allowed for an anonymous root.
func New(name string) *Command {
	if len(name) > 0 {
		validateCommandName(name)
	}
	root := newCommand(name, nil)
	root.printer = NewPrinter()
	return root
}

func newCommand(name string, parent *Command) *Command {
	return &Command{
		name:    name,
		parent:  parent,
		options: orderedmap.New[string, *Option](),
		shorts:  map[rune]*Option{},
	}
}

func validateCommandName(name string) {
	if len(name) == 0 {
		panic(declarationErrorf("empty command name"))
	}
	if strings.HasPrefix(name, "-") {
		panic(declarationErrorf("command name '%s' can't start with '-'", name))
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		panic(declarationErrorf("command name '%s' can't contain whitespace", name))
	}
}

// AddCommand creates a sub-command owned by this [Command] and returns it.
// Aliases may be added as a way to support shorter variants of the same sub-command.
//
// Names and aliases must be unique among siblings, must not be empty, start with '-', or contain whitespace.
// Violating this will panic.
func (c *Command) AddCommand(name string, aliases ...string) *Command {
	keys := append([]string{name}, aliases...)
	for i, key := range keys {
		validateCommandName(key)
		if c.subcommand(key) != nil || slices.Contains(keys[:i], key) {
			panic(declarationErrorf("duplicate sub-command '%s' in '%s'", key, c.Path()))
		}
	}
	cmd := newCommand(name, c)
	cmd.aliases = slices.Clone(aliases)
	c.commands = append(c.commands, cmd)
	return cmd
}

func (c *Command) subcommand(token string) *Command {
	for _, cmd := range c.commands {
		if cmd.name == token {
			return cmd
		}
		for _, alias := range cmd.aliases {
			if alias == token {
				return cmd
			}
		}
	}
	return nil
}

// SetDescription sets the paragraph shown in help, and the one line summary shown in the parent's command listing.
func (c *Command) SetDescription(description string) *Command {
	c.description = description
	return c
}

// SetUsage sets the usage text shown after the command path, e.g. "[FLAGS] src dest".
// If this isn't set, a usage line is generated from the declared options and sub-commands.
func (c *Command) SetUsage(usage string) *Command {
	c.usage = usage
	return c
}

// SetArgs sets the validator applied to the positional arguments when this is the deepest matched command.
func (c *Command) SetArgs(validator ArgsValidator) *Command {
	c.args = validator
	return c
}

// Does specifies the [ActionFunc] that should be executed for this [Command].
func (c *Command) Does(action ActionFunc) *Command {
	if action == nil {
		return c
	}
	c.action = action
	return c
}

// SetAbbreviations enables matching long options by a unique prefix, e.g. "--verb" for "--verbose".
// An exact match always wins, and a prefix shared by multiple options fails with [ErrAmbiguousOption].
func (c *Command) SetAbbreviations(enabled bool) *Command {
	c.abbreviations = enabled
	return c
}

// SetPrinter sets the [Printer] used by this command and any descendants that don't set their own.
func (c *Command) SetPrinter(printer *Printer) *Command {
	c.printer = printer
	return c
}

// SetLogger sets the logger used for parser tracing by this command and any descendants that don't set their own.
func (c *Command) SetLogger(logger *slog.Logger) *Command {
	c.logger = logger
	return c
}

// AddFlag declares a boolean switch.
// See [Command.AddOption] for the rules that apply.
func (c *Command) AddFlag(flag Flag) *Command {
	return c.AddOption(flag.option())
}

// AddOption declares an option for this [Command].
//
// The long name must be unique within this command, and non-empty without leading dashes, '=', or whitespace.
// The short name is optional, but must be unique within this command if given.
// The group must have been declared with [Command.AddGroup] first.
// Violating any of these will panic with a [*DeclarationError].
func (c *Command) AddOption(opt Option) *Command {
	switch {
	case len(opt.Name) == 0:
		panic(declarationErrorf("empty option name in '%s'", c.Path()))
	case strings.HasPrefix(opt.Name, "-"):
		panic(declarationErrorf("option name '%s' in '%s' can't start with '-'", opt.Name, c.Path()))
	case strings.ContainsRune(opt.Name, '=') || strings.IndexFunc(opt.Name, unicode.IsSpace) >= 0:
		panic(declarationErrorf("option name '%s' in '%s' can't contain '=' or whitespace", opt.Name, c.Path()))
	}
	if _, ok := c.options.Get(opt.Name); ok {
		panic(declarationErrorf("duplicate option '%s' in '%s'", opt.Name, c.Path()))
	}
	if opt.Short != 0 {
		if opt.Short == '-' || opt.Short == '=' || !unicode.IsPrint(opt.Short) || unicode.IsSpace(opt.Short) {
			panic(declarationErrorf("invalid short name %q for option '%s' in '%s'", opt.Short, opt.Name, c.Path()))
		}
		if other, ok := c.shorts[opt.Short]; ok {
			panic(declarationErrorf("short name '%c' of option '%s' already used by '%s' in '%s'", opt.Short, opt.Name, other.Name, c.Path()))
		}
	}
	if opt.Group != NoGroup {
		if _, ok := c.group(opt.Group); !ok {
			panic(declarationErrorf("option '%s' references undeclared group %d in '%s'", opt.Name, opt.Group, c.Path()))
		}
	}
	stored := opt
	c.options.Set(opt.Name, &stored)
	if opt.Short != 0 {
		c.shorts[opt.Short] = &stored
	}
	return c
}

// Name returns the name of this [Command].
func (c *Command) Name() string {
	return c.name
}

// Aliases returns the alternate names of this [Command].
func (c *Command) Aliases() []string {
	return c.aliases
}

// Description returns the description set with [Command.SetDescription].
func (c *Command) Description() string {
	return c.description
}

// Usage returns the usage text set with [Command.SetUsage], which may be empty.
func (c *Command) Usage() string {
	return c.usage
}

// Parent returns the [Command] that owns this one, or nil for a root.
func (c *Command) Parent() *Command {
	return c.parent
}

// Root returns the root of the tree this [Command] belongs to.
func (c *Command) Root() *Command {
	root := c
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Path returns the reference chain for this [Command], e.g. "pkg install".
func (c *Command) Path() string {
	var names []string
	for cmd := c; cmd != nil; cmd = cmd.parent {
		if len(cmd.name) > 0 {
			names = append(names, cmd.name)
		}
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, " ")
}

// Commands returns the sub-commands of this [Command] in the order they were added.
func (c *Command) Commands() []*Command {
	cmds := make([]*Command, len(c.commands))
	copy(cmds, c.commands)
	return cmds
}

// Lookup returns a copy of the declared option with the given long name.
func (c *Command) Lookup(name string) (Option, bool) {
	opt, ok := c.options.Get(name)
	if !ok {
		return Option{}, false
	}
	return *opt, true
}

// Options returns copies of the declared options in declaration order.
func (c *Command) Options() []Option {
	opts := make([]Option, 0, c.options.Len())
	for pair := c.options.Oldest(); pair != nil; pair = pair.Next() {
		opts = append(opts, *pair.Value)
	}
	return opts
}

// Printer returns the [Printer] for this command, inherited from the closest ancestor that has one.
// A root starts out with a default [Printer] from [NewPrinter].
func (c *Command) Printer() *Printer {
	for cmd := c; cmd != nil; cmd = cmd.parent {
		if cmd.printer != nil {
			return cmd.printer
		}
	}
	return NewPrinter()
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Logger returns the logger for this command, inherited from the closest ancestor that has one.
// Logging is discarded if no logger was set.
func (c *Command) Logger() *slog.Logger {
	for cmd := c; cmd != nil; cmd = cmd.parent {
		if cmd.logger != nil {
			return cmd.logger
		}
	}
	return discardLogger
}
