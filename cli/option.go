package cli

// EarlyAction runs the moment its switch is recognized, before the rest of the arguments are parsed.
// The [Context] only reflects what has been parsed so far.
//
// Returning nil continues the parse, and any other error aborts it.
// Use [Exit] to stop with a status code, e.g. after printing help or a version string.
type EarlyAction func(ctx *Context) error

// Flag declares a boolean switch that is either present or not.
type Flag struct {
	Name        string      // Long name, matched as --name.
	Short       rune        // Optional single character, matched as -s.
	Description string      // One line shown in help.
	Usage       string      // Replaces the generated names column in help if set.
	Group       GroupID     // Help section, the default section if not set.
	EarlyAction EarlyAction // Optional.
}

// Option declares a switch that may carry a typed value.
// An Option with a nil Value is a flag.
type Option struct {
	Name        string
	Short       rune
	Description string
	Usage       string
	Group       GroupID
	EarlyAction EarlyAction
	Value       *Value
}

// IsFlag reports whether this option is a plain boolean switch with no value slot.
func (o *Option) IsFlag() bool {
	return o.Value == nil
}

// takesValue reports whether the option consumes a value token when given without "=".
func (o *Option) takesValue() bool {
	return !o.Value.isBool()
}

func (o *Option) placeholder() string {
	if o.Value == nil || o.Value.kind == KindBool {
		return ""
	}
	return o.Value.Placeholder()
}

func (o *Option) defaultValue() (any, bool) {
	if o.Value == nil {
		return nil, false
	}
	return o.Value.DefaultValue()
}

// bind converts the explicit value, if any, to the option's type.
// Flags and bool values without an explicit value bind true.
func (o *Option) bind(raw string, explicit bool) (any, error) {
	if !explicit && o.Value.isBool() {
		return true, nil
	}
	if o.Value == nil {
		return parseBoolValue(raw)
	}
	return o.Value.Convert(raw)
}

func parseBoolValue(raw string) (any, error) {
	b, err := parseBool(raw)
	if err != nil {
		return nil, &ConversionError{Raw: raw, Type: KindBool.String(), Err: err}
	}
	return b, nil
}

func (f Flag) option() Option {
	return Option{
		Name:        f.Name,
		Short:       f.Short,
		Description: f.Description,
		Usage:       f.Usage,
		Group:       f.Group,
		EarlyAction: f.EarlyAction,
	}
}
