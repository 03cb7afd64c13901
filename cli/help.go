package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	DefaultOptionsLabel  = "Options"  // DefaultOptionsLabel is the heading for options that aren't in a [Group].
	DefaultCommandsLabel = "Commands" // DefaultCommandsLabel is the heading for the sub-command listing.
)

const (
	helpIndent = "  "
	helpGap    = "  "
	minWrap    = 20
)

// usageLine returns "Usage: " followed by the command path and either the declared usage or a generated one.
func (c *Command) usageLine() string {
	parts := []string{"Usage:"}
	if path := c.Path(); len(path) > 0 {
		parts = append(parts, path)
	}
	switch {
	case len(c.usage) > 0:
		parts = append(parts, c.usage)
	default:
		if c.options.Len() > 0 {
			parts = append(parts, "[flag]...")
		}
		if len(c.commands) > 0 {
			parts = append(parts, "[command]")
		}
	}
	return strings.Join(parts, " ")
}

// optionColumn is the text identifying an option in the help listing, like "-c, --config <path>".
func optionColumn(opt *Option) string {
	if len(opt.Usage) > 0 {
		return opt.Usage
	}
	var buf strings.Builder
	if opt.Short != 0 {
		buf.WriteString("-" + string(opt.Short) + ", ")
	} else {
		buf.WriteString("    ")
	}
	buf.WriteString("--" + opt.Name)
	if ph := opt.placeholder(); len(ph) > 0 {
		buf.WriteString(" <" + ph + ">")
	}
	return buf.String()
}

func commandColumn(cmd *Command) string {
	if len(cmd.aliases) == 0 {
		return cmd.name
	}
	return strings.Join(append([]string{cmd.name}, cmd.aliases...), ", ")
}

type helpRow struct {
	left, right string
}

type helpSection struct {
	label string
	rows  []helpRow
}

// Help renders the help text for this [Command] without wrapping.
// The result only depends on what was declared, so rendering the same [Command] twice gives the same text.
func (c *Command) Help() string {
	return c.RenderHelp(0)
}

// RenderHelp renders the help text for this [Command], wrapping descriptions to fit in width columns.
// A width of 0 or less disables wrapping.
//
// The text includes the usage line, the description, a section for each declared [Group] in order, the default options section, and the immediate sub-commands.
// Option descriptions in every option section are aligned to a single column, and sub-command descriptions to their own.
func (c *Command) RenderHelp(width int) string {
	var buf strings.Builder
	buf.WriteString(c.usageLine())
	buf.WriteString("\n")
	if len(c.description) > 0 {
		buf.WriteString("\n")
		buf.WriteString(wrapText(c.description, width, ""))
		buf.WriteString("\n")
	}

	sections := c.optionSections()
	writeSections(&buf, sections, width)

	if len(c.commands) > 0 {
		cmdSection := helpSection{label: DefaultCommandsLabel}
		for _, cmd := range c.commands {
			cmdSection.rows = append(cmdSection.rows, helpRow{left: commandColumn(cmd), right: summary(cmd.description)})
		}
		writeSections(&buf, []helpSection{cmdSection}, width)
	}
	return buf.String()
}

// PrintHelp writes the help text to the [Printer] of this [Command].
// Descriptions are wrapped to the terminal width if the [Printer] is writing to a terminal.
func (c *Command) PrintHelp() {
	printer := c.Printer()
	printer.Print(c.RenderHelp(printer.Width()))
}

func (c *Command) optionSections() []helpSection {
	var (
		grouped   = map[GroupID][]helpRow{}
		ungrouped []helpRow
	)
	for pair := c.options.Oldest(); pair != nil; pair = pair.Next() {
		opt := pair.Value
		row := helpRow{left: optionColumn(opt), right: opt.Description}
		if opt.Group == NoGroup {
			ungrouped = append(ungrouped, row)
			continue
		}
		grouped[opt.Group] = append(grouped[opt.Group], row)
	}
	var sections []helpSection
	for _, g := range c.groups {
		if rows := grouped[g.ID]; len(rows) > 0 {
			sections = append(sections, helpSection{label: g.Label, rows: rows})
		}
	}
	if len(ungrouped) > 0 {
		sections = append(sections, helpSection{label: DefaultOptionsLabel, rows: ungrouped})
	}
	return sections
}

// writeSections writes each section with the left column padded to the widest entry across all given sections.
// Widths are counted in runes, which is also how fmt pads.
func writeSections(buf *strings.Builder, sections []helpSection, width int) {
	var maxLen int
	for _, s := range sections {
		for _, row := range s.rows {
			maxLen = max(maxLen, utf8.RuneCountInString(row.left))
		}
	}
	hanging := strings.Repeat(" ", len(helpIndent)+maxLen+len(helpGap))
	fmtStr := fmt.Sprintf("%s%%-%ds%s%%s\n", helpIndent, maxLen, helpGap)
	for _, s := range sections {
		buf.WriteString("\n" + s.label + ":\n")
		for _, row := range s.rows {
			right := row.right
			if width > 0 {
				right = wrapText(right, width, hanging)
			}
			line := fmt.Sprintf(fmtStr, row.left, right)
			if len(row.right) == 0 {
				line = strings.TrimRight(line, " \n") + "\n"
			}
			buf.WriteString(line)
		}
	}
}

// summary is the first line of a description.
func summary(description string) string {
	first, _, _ := strings.Cut(description, "\n")
	return strings.TrimSpace(first)
}

// wrapText wraps text at word boundaries so that lines fit in width columns when prefixed with indent.
// The first line is assumed to start at the indent's column already.
// Text is returned as-is if width is too small to be useful.
func wrapText(text string, width int, indent string) string {
	avail := width - utf8.RuneCountInString(indent)
	if width <= 0 || avail < minWrap {
		return text
	}
	var (
		buf     strings.Builder
		lineLen int
	)
	for i, para := range strings.Split(text, "\n") {
		if i > 0 {
			buf.WriteString("\n" + indent)
			lineLen = 0
		}
		for _, word := range strings.Fields(para) {
			switch {
			case lineLen == 0:
			case lineLen+1+utf8.RuneCountInString(word) > avail:
				buf.WriteString("\n" + indent)
				lineLen = 0
			default:
				buf.WriteString(" ")
				lineLen++
			}
			buf.WriteString(word)
			lineLen += utf8.RuneCountInString(word)
		}
	}
	return buf.String()
}
