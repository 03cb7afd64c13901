package cli

import (
	"net"
	"strconv"
	"time"
	"unicode/utf8"

	flag "github.com/spf13/pflag"
)

// ImportFlagSet declares an option for every visible flag in a [flag.FlagSet].
// This makes it possible to reuse flag definitions that were written for pflag.
//
// Flags of type bool, int, float64, string, and duration are converted to the matching [Value] kind, with the flag's default.
// Other pflag types like stringSlice or ipNet are converted like [PflagValue], with a fresh [flag.Value] for every conversion.
// The [flag.FlagSet] itself is never updated, so imported options stay safe to parse concurrently.
// Placeholders are taken from back-quoted names in the flag usage, like pflag does.
//
// The same rules as [Command.AddOption] apply, so a conflicting name will panic.
// A flag of a type that can't be instantiated, like "count" or a user defined [flag.Value], panics as well.
func (c *Command) ImportFlagSet(fs *flag.FlagSet) *Command {
	fs.VisitAll(func(f *flag.Flag) {
		if f.Hidden {
			return
		}
		placeholder, usage := flag.UnquoteUsage(f)
		opt := Option{
			Name:        f.Name,
			Description: usage,
			Value:       importValue(f, placeholder),
		}
		if len(f.Shorthand) > 0 {
			opt.Short, _ = utf8.DecodeRuneInString(f.Shorthand)
		}
		c.AddOption(opt)
	})
	return c
}

func importValue(f *flag.Flag, placeholder string) *Value {
	switch f.Value.Type() {
	case "bool":
		v := BoolValue()
		if def, err := strconv.ParseBool(f.DefValue); err == nil && def {
			v.Default(def)
		}
		return v
	case "int":
		v := IntValue(placeholder)
		if def, err := strconv.Atoi(f.DefValue); err == nil {
			v.Default(def)
		}
		return v
	case "float64":
		v := FloatValue(placeholder)
		if def, err := strconv.ParseFloat(f.DefValue, 64); err == nil {
			v.Default(def)
		}
		return v
	case "string":
		v := StringValue(placeholder)
		if len(f.DefValue) > 0 {
			v.Default(f.DefValue)
		}
		return v
	case "duration":
		v := DurationValue(placeholder)
		if def, err := time.ParseDuration(f.DefValue); err == nil {
			v.Default(def)
		}
		return v
	}
	newValue, ok := pflagTypes[f.Value.Type()]
	if !ok {
		panic(declarationErrorf("flag '%s' has unsupported pflag type '%s'", f.Name, f.Value.Type()))
	}
	v := PflagValue(placeholder, newValue)
	if def := importDefault(f, newValue); def != nil {
		v.Default(def)
	}
	return v
}

// importDefault copies the current state of the flag into a fresh value, so the default isn't shared with the [flag.FlagSet].
func importDefault(f *flag.Flag, newValue func() flag.Value) flag.Value {
	def := newValue()
	if slice, ok := f.Value.(flag.SliceValue); ok {
		current := slice.GetSlice()
		target, ok := def.(flag.SliceValue)
		if len(current) == 0 || !ok || target.Replace(current) != nil {
			return nil
		}
		return def
	}
	if len(f.DefValue) == 0 || def.Set(f.DefValue) != nil {
		return nil
	}
	return def
}

const scratchFlag = "value"

func scratch(declare func(fs *flag.FlagSet)) func() flag.Value {
	return func() flag.Value {
		fs := flag.NewFlagSet(scratchFlag, flag.ContinueOnError)
		declare(fs)
		return fs.Lookup(scratchFlag).Value
	}
}

// pflagTypes creates fresh values for the pflag types that don't have a native [Kind].
// Flags with a "count" type or a user defined [flag.Value] can't be instantiated, so they aren't importable.
var pflagTypes = map[string]func() flag.Value{
	"int8":           scratch(func(fs *flag.FlagSet) { fs.Int8(scratchFlag, 0, "") }),
	"int16":          scratch(func(fs *flag.FlagSet) { fs.Int16(scratchFlag, 0, "") }),
	"int32":          scratch(func(fs *flag.FlagSet) { fs.Int32(scratchFlag, 0, "") }),
	"int64":          scratch(func(fs *flag.FlagSet) { fs.Int64(scratchFlag, 0, "") }),
	"uint":           scratch(func(fs *flag.FlagSet) { fs.Uint(scratchFlag, 0, "") }),
	"uint8":          scratch(func(fs *flag.FlagSet) { fs.Uint8(scratchFlag, 0, "") }),
	"uint16":         scratch(func(fs *flag.FlagSet) { fs.Uint16(scratchFlag, 0, "") }),
	"uint32":         scratch(func(fs *flag.FlagSet) { fs.Uint32(scratchFlag, 0, "") }),
	"uint64":         scratch(func(fs *flag.FlagSet) { fs.Uint64(scratchFlag, 0, "") }),
	"float32":        scratch(func(fs *flag.FlagSet) { fs.Float32(scratchFlag, 0, "") }),
	"ip":             scratch(func(fs *flag.FlagSet) { fs.IP(scratchFlag, nil, "") }),
	"ipMask":         scratch(func(fs *flag.FlagSet) { fs.IPMask(scratchFlag, nil, "") }),
	"ipNet":          scratch(func(fs *flag.FlagSet) { fs.IPNet(scratchFlag, net.IPNet{}, "") }),
	"bytesHex":       scratch(func(fs *flag.FlagSet) { fs.BytesHex(scratchFlag, nil, "") }),
	"bytesBase64":    scratch(func(fs *flag.FlagSet) { fs.BytesBase64(scratchFlag, nil, "") }),
	"stringToString": scratch(func(fs *flag.FlagSet) { fs.StringToString(scratchFlag, nil, "") }),
	"stringToInt":    scratch(func(fs *flag.FlagSet) { fs.StringToInt(scratchFlag, nil, "") }),
	"stringToInt64":  scratch(func(fs *flag.FlagSet) { fs.StringToInt64(scratchFlag, nil, "") }),
	"stringSlice":    scratch(func(fs *flag.FlagSet) { fs.StringSlice(scratchFlag, nil, "") }),
	"stringArray":    scratch(func(fs *flag.FlagSet) { fs.StringArray(scratchFlag, nil, "") }),
	"intSlice":       scratch(func(fs *flag.FlagSet) { fs.IntSlice(scratchFlag, nil, "") }),
	"int32Slice":     scratch(func(fs *flag.FlagSet) { fs.Int32Slice(scratchFlag, nil, "") }),
	"int64Slice":     scratch(func(fs *flag.FlagSet) { fs.Int64Slice(scratchFlag, nil, "") }),
	"uintSlice":      scratch(func(fs *flag.FlagSet) { fs.UintSlice(scratchFlag, nil, "") }),
	"float32Slice":   scratch(func(fs *flag.FlagSet) { fs.Float32Slice(scratchFlag, nil, "") }),
	"float64Slice":   scratch(func(fs *flag.FlagSet) { fs.Float64Slice(scratchFlag, nil, "") }),
	"boolSlice":      scratch(func(fs *flag.FlagSet) { fs.BoolSlice(scratchFlag, nil, "") }),
	"durationSlice":  scratch(func(fs *flag.FlagSet) { fs.DurationSlice(scratchFlag, nil, "") }),
	"ipSlice":        scratch(func(fs *flag.FlagSet) { fs.IPSlice(scratchFlag, nil, "") }),
}
