package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
)

// Kind identifies which conversion a [Value] performs.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindDuration
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindDuration:
		return "duration"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var (
	TrueValues  = []string{"1", "t", "true", "yes", "on"}  // TrueValues are the literals accepted as true for bool values, compared case-insensitive.
	FalseValues = []string{"0", "f", "false", "no", "off"} // FalseValues are the literals accepted as false for bool values, compared case-insensitive.

	errNotBool = errors.New("not a boolean literal")
)

// Value is the typed slot of an [Option].
// It knows how to convert a raw argument token into a Go value, and optionally carries a default that queries will return when the option wasn't supplied.
//
// The set of kinds is closed, with [CustomValue] and [PflagValue] as the extension points.
type Value struct {
	kind        Kind
	typeName    string
	placeholder string
	def         any
	hasDefault  bool
	convert     func(raw string) (any, error)
	accepts     func(v any) bool
}

// BoolValue creates a boolean value.
// An option with a boolean value can be given without a value token, which binds true.
func BoolValue() *Value {
	return &Value{
		kind: KindBool,
		convert: func(raw string) (any, error) {
			return parseBool(raw)
		},
		accepts: accepts[bool],
	}
}

// IntValue creates an integer value, parsed in base 10 with the platform int size.
func IntValue(placeholder string) *Value {
	return &Value{
		kind:        KindInt,
		placeholder: placeholder,
		convert: func(raw string) (any, error) {
			i, err := strconv.ParseInt(raw, 10, strconv.IntSize)
			if err != nil {
				return nil, err
			}
			return int(i), nil
		},
		accepts: accepts[int],
	}
}

// FloatValue creates a float64 value.
func FloatValue(placeholder string) *Value {
	return &Value{
		kind:        KindFloat,
		placeholder: placeholder,
		convert: func(raw string) (any, error) {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, err
			}
			return f, nil
		},
		accepts: accepts[float64],
	}
}

// StringValue creates a string value. Conversion never fails.
func StringValue(placeholder string) *Value {
	return &Value{
		kind:        KindString,
		placeholder: placeholder,
		convert: func(raw string) (any, error) {
			return raw, nil
		},
		accepts: accepts[string],
	}
}

// DurationValue creates a [time.Duration] value using [time.ParseDuration].
func DurationValue(placeholder string) *Value {
	return &Value{
		kind:        KindDuration,
		placeholder: placeholder,
		convert: func(raw string) (any, error) {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return nil, err
			}
			return d, nil
		},
		accepts: accepts[time.Duration],
	}
}

// CustomValue creates a value of any type T using the given conversion function.
// The typeName is used in conversion errors, and as the help placeholder if placeholder is empty.
//
// Passing a nil conversion function will panic.
func CustomValue[T any](typeName, placeholder string, conv func(raw string) (T, error)) *Value {
	if conv == nil {
		panic(declarationErrorf("nil conversion function for custom value '%s'", typeName))
	}
	return &Value{
		kind:        KindCustom,
		typeName:    typeName,
		placeholder: placeholder,
		convert: func(raw string) (any, error) {
			return conv(raw)
		},
		accepts: accepts[T],
	}
}

// PflagValue adapts any [flag.Value] implementation as a converter.
// The newValue function must return a fresh instance each time, which is how bound values stay separate between parses.
// The bound value is the [flag.Value] instance after Set has been called with the raw token.
//
// Passing a nil function, or one returning nil, will panic.
func PflagValue(placeholder string, newValue func() flag.Value) *Value {
	if newValue == nil {
		panic(declarationErrorf("nil pflag value constructor"))
	}
	probe := newValue()
	if probe == nil {
		panic(declarationErrorf("pflag value constructor returned nil"))
	}
	return &Value{
		kind:        KindCustom,
		typeName:    probe.Type(),
		placeholder: placeholder,
		convert: func(raw string) (any, error) {
			v := newValue()
			if err := v.Set(raw); err != nil {
				return nil, err
			}
			return v, nil
		},
		accepts: accepts[flag.Value],
	}
}

// Default sets the value that will be reported by queries when the owning option is not supplied.
// The default must have the Go type produced by this value's conversion, otherwise this will panic.
func (v *Value) Default(def any) *Value {
	if !v.accepts(def) {
		panic(declarationErrorf("default %v (%T) is not a valid %s", def, def, v.TypeName()))
	}
	v.def = def
	v.hasDefault = true
	return v
}

// Kind returns the kind of conversion performed.
func (v *Value) Kind() Kind {
	return v.kind
}

// TypeName is the name of the target type, used in error messages.
func (v *Value) TypeName() string {
	if len(v.typeName) > 0 {
		return v.typeName
	}
	return v.kind.String()
}

// Placeholder is the name shown for the value in help text.
func (v *Value) Placeholder() string {
	if len(v.placeholder) > 0 {
		return v.placeholder
	}
	return v.TypeName()
}

// DefaultValue returns the default and whether one was set.
func (v *Value) DefaultValue() (any, bool) {
	return v.def, v.hasDefault
}

// Convert converts a raw token to this value's type.
// Failures are reported as a [*ConversionError].
func (v *Value) Convert(raw string) (any, error) {
	val, err := v.convert(raw)
	if err != nil {
		return nil, &ConversionError{Raw: raw, Type: v.TypeName(), Err: err}
	}
	return val, nil
}

func (v *Value) isBool() bool {
	return v == nil || v.kind == KindBool
}

func accepts[T any](v any) bool {
	_, ok := v.(T)
	return ok
}

func parseBool(raw string) (bool, error) {
	lower := strings.ToLower(raw)
	for _, t := range TrueValues {
		if lower == strings.ToLower(t) {
			return true, nil
		}
	}
	for _, f := range FalseValues {
		if lower == strings.ToLower(f) {
			return false, nil
		}
	}
	return false, errNotBool
}
