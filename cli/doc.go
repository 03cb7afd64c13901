/*
Package cli provides a declarative way to build a tree of commands, parse process arguments against it, and dispatch the matched command.

There are a few reasonable (IMHO) policies for how this operates.

  - Declaration mistakes like duplicate option names are programming errors, so they panic immediately rather than surfacing when a user runs the tool.
  - Parsing never modifies the command tree. Each parse produces a separate [Result], so one tree can be parsed many times, and from multiple goroutines.
  - Parse errors are returned as a single [*ParseError] value. The caller decides how to present it, and what status to exit with.
  - Help output goes to STDOUT by default. This is configurable with a [Printer].
  - Options are not inherited by sub-commands, but options of every matched parent stay readable from a sub-command's [Context].

# Invocation

Arguments follow the familiar GNU conventions:

	CLI_NAME [OPTIONS...] [SUB-COMMAND [OPTIONS...]]... [ARGS...]

Long options are given as "--name value" or "--name=value", and short options can be clustered, so "-vc path" is the same as "-v -c path".
Everything after "--" is a positional argument, even if it looks like an option.
A token naming a sub-command always descends into it, unless it's the value of an option or comes after "--".
Positional arguments are collected in order across all levels, so "pkg x install y" runs install with "x" and "y".

# Typed values

An [Option] with a [Value] expects one value token, converted to a Go type as it's parsed.
The built-in kinds are bool, int, float64, string, and [time.Duration], and [CustomValue] or [PflagValue] can be used for anything else.
Use [Lookup], [Get], or the typed methods of [Result] to read values after parsing.

# Early actions

An [EarlyAction] runs as soon as its option is recognized, before the rest of the arguments are even looked at.
This is what makes "--help" and "--version" work in the presence of otherwise invalid arguments.
An early action may return [Exit] to stop with a status code.

# Dispatch

[Command.Execute] parses and runs the action of the deepest matched command that has one.
What happens when there is no action at all is controlled by [NoActionPolicy], printing help by default.
*/
package cli
