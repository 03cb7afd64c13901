package cli

import (
	"errors"
	"fmt"
	"strings"
)

// ArgsValidator is a predicate over the number of residual positional arguments given to a [Command].
// String describes the constraint for error messages, e.g. "exactly 2 arguments".
type ArgsValidator interface {
	ValidArgs(count int) bool
	String() string
}

type argsFunc struct {
	desc  string
	check func(count int) bool
}

func (a *argsFunc) ValidArgs(count int) bool {
	return a.check(count)
}

func (a *argsFunc) String() string {
	return a.desc
}

// ArgsFunc creates an [ArgsValidator] from a description and a predicate.
// Passing a nil predicate will panic.
func ArgsFunc(description string, check func(count int) bool) ArgsValidator {
	if check == nil {
		panic(declarationErrorf("nil argument validator function"))
	}
	return &argsFunc{desc: description, check: check}
}

func plural(n int) string {
	if n == 1 {
		return "1 argument"
	}
	return fmt.Sprintf("%d arguments", n)
}

func nonNegative(n int) {
	if n < 0 {
		panic(declarationErrorf("negative argument count %d", n))
	}
}

// ExactArgs requires exactly n positional arguments.
func ExactArgs(n int) ArgsValidator {
	nonNegative(n)
	return ArgsFunc("exactly "+plural(n), func(count int) bool {
		return count == n
	})
}

// AtLeastArgs requires n or more positional arguments.
func AtLeastArgs(n int) ArgsValidator {
	nonNegative(n)
	return ArgsFunc("at least "+plural(n), func(count int) bool {
		return count >= n
	})
}

// AtMostArgs allows up to n positional arguments.
func AtMostArgs(n int) ArgsValidator {
	nonNegative(n)
	return ArgsFunc("at most "+plural(n), func(count int) bool {
		return count <= n
	})
}

// RangeArgs requires between lo and hi positional arguments, inclusive.
func RangeArgs(lo, hi int) ArgsValidator {
	nonNegative(lo)
	if hi < lo {
		panic(declarationErrorf("invalid argument range %d..%d", lo, hi))
	}
	return ArgsFunc(fmt.Sprintf("between %d and %s", lo, plural(hi)), func(count int) bool {
		return count >= lo && count <= hi
	})
}

// AllArgs passes only if every given validator passes.
func AllArgs(validators ...ArgsValidator) ArgsValidator {
	descs := make([]string, len(validators))
	for i, v := range validators {
		if v == nil {
			panic(declarationErrorf("nil argument validator at index %d", i))
		}
		descs[i] = v.String()
	}
	return ArgsFunc(strings.Join(descs, " and "), func(count int) bool {
		for _, v := range validators {
			if !v.ValidArgs(count) {
				return false
			}
		}
		return true
	})
}

var (
	ErrArgMap = errors.New("failed to map argument(s)")
)

// MapArgs is an easy way to map arguments to variables (targets), and require a certain amount.
// This will return an error if there are not enough args and/or targets to satisfy the amount required by minArgs.
// Targets elements should not be nil.
func MapArgs(args []string, minArgs int, targets ...*string) error {
	if len(args) < minArgs {
		return fmt.Errorf("%w: not enough arguments (%d) to satisfy minArgs (%d)", ErrArgMap, len(args), minArgs)
	}
	if len(targets) < minArgs {
		return fmt.Errorf("%w: not enough targets (%d) to satisfy minArgs (%d)", ErrArgMap, len(targets), minArgs)
	}
	for i := 0; i < len(args) && i < len(targets); i++ {
		if targets[i] == nil {
			return fmt.Errorf("%w: target %d is nil", ErrArgMap, i)
		}
		*targets[i] = args[i]
	}
	return nil
}
