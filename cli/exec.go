package cli

import (
	"errors"
)

const (
	StatusSuccess = 0
	StatusFailure = 1
)

// NoActionBehavior decides what [Command.Execute] does when no matched [Command] has an action.
type NoActionBehavior int

const (
	PrintHelpOnNoAction NoActionBehavior = iota // Print help for the deepest matched command, and succeed.
	SucceedOnNoAction                           // Do nothing, and succeed.
	FailOnNoAction                              // Return ErrNoAction with StatusFailure.
)

// NoActionPolicy is the [NoActionBehavior] used by [Command.Execute].
// Printing help is the default, since it's the most helpful response to a user that called a command group without a sub-command.
var NoActionPolicy = PrintHelpOnNoAction

// Execute parses process arguments like [Command.Parse], then dispatches the action of the deepest matched [Command] that declares one.
//
// The returned status and error are determined as follows:
//   - A parse error is returned untouched with [StatusFailure].
//   - An [*ExitError] from an early action, hook, or action returns its code with a nil error.
//   - A [*UsageError] prints the help of the command that returned it, and is returned with [StatusFailure].
//   - Any other error from a hook or action is returned with [StatusFailure].
//   - No action in the matched chain is handled according to [NoActionPolicy].
func (c *Command) Execute(argv []string) (int, error) {
	if len(argv) == 0 {
		return c.ExecuteArgs(nil)
	}
	return c.ExecuteArgs(argv[1:])
}

// ExecuteArgs is like [Command.Execute], but every element of args is parsed.
func (c *Command) ExecuteArgs(args []string) (int, error) {
	result, err := c.ParseArgs(args)
	if err != nil {
		var exit *ExitError
		if errors.As(err, &exit) {
			return exit.Code, nil
		}
		return StatusFailure, err
	}
	return result.Dispatch()
}

// Dispatch runs the action of the deepest matched [Command] that declares one, with any pre-exec hooks.
// See [Command.Execute] for how the status is determined.
func (r *Result) Dispatch() (int, error) {
	var target *Command
	for i := len(r.chain) - 1; i >= 0; i-- {
		if r.chain[i].cmd.action != nil {
			target = r.chain[i].cmd
			break
		}
	}
	if target == nil {
		deepest := r.Command()
		deepest.Logger().Debug("No action to dispatch", "command", deepest.Path(), "policy", int(NoActionPolicy))
		switch NoActionPolicy {
		case SucceedOnNoAction:
			return StatusSuccess, nil
		case FailOnNoAction:
			return StatusFailure, &ParseError{Kind: ErrNoAction, Command: deepest.Path()}
		default:
			deepest.PrintHelp()
			return StatusSuccess, nil
		}
	}

	ctx := newContext(r, target)
	if err := runGlobalPreExec(ctx); err != nil {
		return status(ctx, err)
	}
	if hookCtx, err := runChainPreExec(r); err != nil {
		return status(hookCtx, err)
	}
	target.Logger().Debug("Dispatching action", "command", target.Path())
	return status(ctx, target.action(ctx))
}

func status(ctx *Context, err error) (int, error) {
	if err == nil {
		return StatusSuccess, nil
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code, nil
	}
	if errors.Is(err, &UsageError{}) {
		ctx.PrintHelp()
	}
	return StatusFailure, err
}
