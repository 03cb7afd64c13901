package cli

import "sync"

// PreExec is a function that may run before the action of a [Command] is dispatched.
// The [Context] belongs to the [Command] the hook was registered with, or the dispatched [Command] for global hooks.
type PreExec func(ctx *Context) error

var (
	preExecMux    sync.Mutex
	globalPreExec []PreExec
)

// AddGlobalPreExec registers a function that will be executed right before any action runs.
// If an error is returned from a [PreExec], then the action will not be executed, and the error will be handled like one returned from the action instead.
// Note that no [PreExec] functions are run if no action is dispatched, e.g. when just printing usage.
//
// Passing a nil [PreExec] function to this function will panic.
func AddGlobalPreExec(fn PreExec) {
	if fn == nil {
		panic("nil pre-exec function")
	}
	preExecMux.Lock()
	defer preExecMux.Unlock()
	globalPreExec = append(globalPreExec, fn)
}

// Before registers a [PreExec] on this [Command].
// Hooks of every matched command run root first, after global hooks and before the dispatched action.
// This is useful for handling options of a parent command before a sub-command runs.
//
// Passing a nil [PreExec] function will panic.
func (c *Command) Before(fn PreExec) *Command {
	if fn == nil {
		panic(declarationErrorf("nil pre-exec function for '%s'", c.Path()))
	}
	c.preExec = append(c.preExec, fn)
	return c
}

func runGlobalPreExec(ctx *Context) error {
	preExecMux.Lock()
	hooks := make([]PreExec, len(globalPreExec))
	copy(hooks, globalPreExec)
	preExecMux.Unlock()
	for _, fn := range hooks {
		if err := fn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func runChainPreExec(result *Result) (*Context, error) {
	for _, b := range result.chain {
		ctx := newContext(result, b.cmd)
		for _, fn := range b.cmd.preExec {
			if err := fn(ctx); err != nil {
				return ctx, err
			}
		}
	}
	return nil, nil
}
