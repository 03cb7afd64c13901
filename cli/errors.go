package cli

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownOption   = errors.New("unknown option")
	ErrMissingValue    = errors.New("missing value")
	ErrConversion      = errors.New("invalid value")
	ErrArgCount        = errors.New("wrong number of arguments")
	ErrAmbiguousOption = errors.New("ambiguous option")
	ErrNoAction        = errors.New("no action")
)

// ParseError is the single structured error returned when parsing fails.
// Kind is one of the Err* sentinels in this package, and can be matched with [errors.Is].
// Fields that don't apply to the Kind are left empty.
type ParseError struct {
	Kind     error
	Command  string   // Path of the command being matched against.
	Option   string   // Canonical name of the option involved, if any.
	Token    string   // The offending token as given by the user.
	Usage    string   // Usage line of the command, set for ErrArgCount.
	Expected string   // Description of the argument constraint, set for ErrArgCount.
	Got      int      // Number of positional arguments, set for ErrArgCount.
	Matches  []string // Candidate options, set for ErrAmbiguousOption.
	Err      error    // Underlying cause, a [*ConversionError] for ErrConversion.
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrUnknownOption:
		return fmt.Sprintf("%s '%s'%s", e.Kind, e.Token, e.forCommand())
	case ErrMissingValue:
		return fmt.Sprintf("%s for option '%s'", e.Kind, e.Token)
	case ErrConversion:
		return fmt.Sprintf("%s for option '%s': %s", e.Kind, e.Option, e.Err)
	case ErrArgCount:
		msg := fmt.Sprintf("%s%s: expected %s, got %d", e.Kind, e.forCommand(), e.Expected, e.Got)
		if len(e.Usage) > 0 {
			msg += "\n" + e.Usage
		}
		return msg
	case ErrAmbiguousOption:
		return fmt.Sprintf("%s '%s'%s, could be: %s", e.Kind, e.Token, e.forCommand(), strings.Join(e.Matches, ", "))
	case nil:
		return "parse error"
	}
	return e.Kind.Error() + e.forCommand()
}

func (e *ParseError) forCommand() string {
	if len(e.Command) == 0 {
		return ""
	}
	return " for '" + e.Command + "'"
}

func (e *ParseError) Is(target error) bool {
	return e.Kind != nil && e.Kind == target
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConversionError is returned by [Value.Convert] when a raw token can't be converted to the target type.
type ConversionError struct {
	Raw  string
	Type string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert '%s' to %s", e.Raw, e.Type)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// ExitError requests that execution stops with the given status code.
// Early actions and actions may return it with [Exit] instead of calling [os.Exit] themselves.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Exit creates an [*ExitError] with the given code.
func Exit(code int) error {
	return &ExitError{Code: code}
}

// UsageError is a special purpose error used to signal that usage information should be shown to the user.
// When an action returns one, [Command.Execute] prints the help text of the dispatched command before returning the error.
type UsageError struct {
	wrapped error
}

func (e *UsageError) Error() string {
	if e.wrapped == nil {
		return "usage error"
	}
	return "usage error: " + e.wrapped.Error()
}

func (e *UsageError) Is(err error) bool {
	_, ok := err.(*UsageError)
	return ok
}

func (e *UsageError) Unwrap() error {
	return e.wrapped
}

// NewUsageError is used to create a [UsageError].
// The format and args parameters are passed to [fmt.Errorf] to create the underlying error.
func NewUsageError(format string, args ...any) error {
	return &UsageError{wrapped: fmt.Errorf(format, args...)}
}

// DeclarationError describes a mistake in how a command tree was declared, like a duplicate option name.
// These are bugs in the calling code, not bad user input, so they're raised with panic at the point of declaration.
type DeclarationError struct {
	msg string
}

func (e *DeclarationError) Error() string {
	return "invalid declaration: " + e.msg
}

func declarationErrorf(format string, args ...any) *DeclarationError {
	return &DeclarationError{msg: fmt.Sprintf(format, args...)}
}
