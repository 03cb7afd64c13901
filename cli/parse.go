package cli

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	flag "github.com/spf13/pflag"
)

// Parse parses process arguments against this [Command].
// The first element is the program name by convention, so parsing starts at index 1.
//
// Parsing doesn't modify the [Command], so the returned [*Result] is independent of any other parse.
// A failed parse returns a [*ParseError], or whatever error an [EarlyAction] returned.
func (c *Command) Parse(argv []string) (*Result, error) {
	if len(argv) == 0 {
		return c.ParseArgs(nil)
	}
	return c.ParseArgs(argv[1:])
}

// ParseArgs is like [Command.Parse], but every element of args is parsed.
//
// Tokens are interpreted as follows:
//   - "--" ends option parsing, everything after it is positional.
//   - "--name=value" and "--name value" set a long option, "--name" alone sets a flag or bool option.
//   - "-abc" is a cluster of short options. A short option that takes a value consumes the rest of the cluster, or the next token if the cluster ends.
//   - A token naming a sub-command of the current command descends into it.
//   - Anything else is a positional argument. Positional arguments from every level are kept in one ordered sequence.
func (c *Command) ParseArgs(args []string) (*Result, error) {
	p := &parser{
		args:   args,
		result: &Result{},
		log:    c.Logger(),
	}
	p.descend(c)
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.result, nil
}

type parser struct {
	args       []string
	pos        int
	terminated bool
	current    *Binding
	result     *Result
	log        *slog.Logger
}

func (p *parser) run() error {
	for p.pos < len(p.args) {
		token := p.args[p.pos]
		p.pos++
		var err error
		switch {
		case p.terminated:
			p.positional(token)
		case token == "--":
			p.log.Debug("Option parsing terminated", "command", p.current.cmd.Path())
			p.terminated = true
		case strings.HasPrefix(token, "--"):
			err = p.parseLong(token)
		case len(token) > 1 && token[0] == '-':
			err = p.parseShort(token)
		default:
			if sub := p.current.cmd.subcommand(token); sub != nil {
				p.descend(sub)
				continue
			}
			p.positional(token)
		}
		if err != nil {
			return err
		}
	}
	return p.validateArgs()
}

func (p *parser) descend(cmd *Command) {
	p.current = newBinding(cmd)
	p.result.chain = append(p.result.chain, p.current)
	p.log.Debug("Matched command", "command", cmd.Path())
}

func (p *parser) positional(token string) {
	p.current.args = append(p.current.args, token)
	p.result.args = append(p.result.args, token)
}

func (p *parser) parseLong(token string) error {
	name, value, explicit := strings.Cut(token[2:], "=")
	opt, err := p.lookupLong(name, token)
	if err != nil {
		return err
	}
	if !explicit && opt.takesValue() {
		value, err = p.nextValue(opt, token)
		if err != nil {
			return err
		}
		explicit = true
	}
	return p.bind(opt, token, value, explicit)
}

func (p *parser) lookupLong(name, token string) (*Option, error) {
	cmd := p.current.cmd
	if opt, ok := cmd.options.Get(name); ok {
		return opt, nil
	}
	if cmd.abbreviations && len(name) > 0 {
		var matches []*Option
		for pair := cmd.options.Oldest(); pair != nil; pair = pair.Next() {
			if strings.HasPrefix(pair.Key, name) {
				matches = append(matches, pair.Value)
			}
		}
		switch len(matches) {
		case 0:
		case 1:
			return matches[0], nil
		default:
			names := make([]string, len(matches))
			for i, m := range matches {
				names[i] = "--" + m.Name
			}
			return nil, &ParseError{
				Kind:    ErrAmbiguousOption,
				Command: cmd.Path(),
				Option:  name,
				Token:   token,
				Matches: names,
			}
		}
	}
	return nil, p.unknown(name, token)
}

func (p *parser) parseShort(token string) error {
	cluster := token[1:]
	for i, r := range cluster {
		display := "-" + string(r)
		opt, ok := p.current.cmd.shorts[r]
		if !ok {
			return p.unknown(string(r), display)
		}
		if !opt.takesValue() {
			if err := p.bind(opt, display, "", false); err != nil {
				return err
			}
			continue
		}
		if rest := cluster[i+utf8.RuneLen(r):]; len(rest) > 0 {
			return p.bind(opt, display, rest, true)
		}
		value, err := p.nextValue(opt, display)
		if err != nil {
			return err
		}
		return p.bind(opt, display, value, true)
	}
	return nil
}

// nextValue consumes the next token as the value of an option.
// Running out of tokens, or hitting "--", means the value is missing.
func (p *parser) nextValue(opt *Option, token string) (string, error) {
	if p.pos >= len(p.args) || p.args[p.pos] == "--" {
		return "", &ParseError{
			Kind:    ErrMissingValue,
			Command: p.current.cmd.Path(),
			Option:  opt.Name,
			Token:   token,
		}
	}
	value := p.args[p.pos]
	p.pos++
	return value, nil
}

func (p *parser) bind(opt *Option, token, raw string, explicit bool) error {
	val, err := opt.bind(raw, explicit)
	if err != nil {
		return &ParseError{
			Kind:    ErrConversion,
			Command: p.current.cmd.Path(),
			Option:  opt.Name,
			Token:   token,
			Err:     err,
		}
	}
	val = accumulate(p.current.values[opt.Name], val)
	p.current.values[opt.Name] = val
	p.log.Debug("Bound option", "command", p.current.cmd.Path(), "option", opt.Name, "value", val)
	if opt.EarlyAction != nil {
		p.log.Debug("Running early action", "command", p.current.cmd.Path(), "option", opt.Name)
		return opt.EarlyAction(newContext(p.result, p.current.cmd))
	}
	return nil
}

// accumulate appends repeated occurrences of a pflag slice option, like pflag does.
// Both values belong to the current parse, so the earlier one can be modified.
func accumulate(prev, next any) any {
	prevSlice, ok := prev.(flag.SliceValue)
	if !ok {
		return next
	}
	nextSlice, ok := next.(flag.SliceValue)
	if !ok {
		return next
	}
	for _, item := range nextSlice.GetSlice() {
		if err := prevSlice.Append(item); err != nil {
			return next
		}
	}
	return prev
}

func (p *parser) unknown(name, token string) error {
	return &ParseError{
		Kind:    ErrUnknownOption,
		Command: p.current.cmd.Path(),
		Option:  name,
		Token:   token,
	}
}

func (p *parser) validateArgs() error {
	cmd := p.current.cmd
	if cmd.args == nil {
		return nil
	}
	if count := len(p.result.args); !cmd.args.ValidArgs(count) {
		return &ParseError{
			Kind:     ErrArgCount,
			Command:  cmd.Path(),
			Usage:    cmd.usageLine(),
			Expected: cmd.args.String(),
			Got:      count,
		}
	}
	return nil
}
