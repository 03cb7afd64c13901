package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParseCommand() *Command {
	return New("test").
		AddFlag(Flag{Name: "all", Short: 'a', Description: "Everything"}).
		AddFlag(Flag{Name: "brief", Short: 'b', Description: "Less output"}).
		AddOption(Option{Name: "config", Short: 'c', Description: "Config path", Value: StringValue("path")}).
		AddOption(Option{Name: "count", Short: 'n', Description: "How many", Value: IntValue("n")}).
		AddOption(Option{Name: "ratio", Description: "A ratio", Value: FloatValue("r").Default(0.5)}).
		AddOption(Option{Name: "timeout", Short: 't', Description: "Wait time", Value: DurationValue("")}).
		AddOption(Option{Name: "color", Description: "Colorize", Value: BoolValue()})
}

func TestParseArgs_Positional(t *testing.T) {
	tests := map[string][]string{
		"Nil":      nil,
		"Single":   {"a"},
		"Multiple": {"a", "b", "c"},
		"Dash":     {"-"},
		"Spaces":   {"a b", " "},
		"Empty":    {""},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			result, err := testParseCommand().ParseArgs(args)
			require.NoError(t, err)
			assert.Equal(t, len(args), len(result.Args()))
			for i := range args {
				assert.Equal(t, args[i], result.Args()[i])
			}
			for _, opt := range result.Command().Options() {
				assert.False(t, result.Has(opt.Name), "No options should be bound")
			}
		})
	}
}

func TestParse_SkipsProgramName(t *testing.T) {
	result, err := testParseCommand().Parse([]string{"prog", "-a", "x"})
	require.NoError(t, err)
	assert.True(t, result.Bool("all"))
	assert.Equal(t, []string{"x"}, result.Args())

	result, err = testParseCommand().Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, result.Args())
}

func TestParseArgs_ValueForms(t *testing.T) {
	tests := map[string][]string{
		"Long equals":  {"--count=42"},
		"Long spaced":  {"--count", "42"},
		"Short joined": {"-n42"},
		"Short spaced": {"-n", "42"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			result, err := testParseCommand().ParseArgs(args)
			require.NoError(t, err)
			assert.True(t, result.Has("count"))
			assert.Equal(t, 42, result.Int("count"))
			assert.Empty(t, result.Args())
		})
	}
}

func TestParseArgs_Flags(t *testing.T) {
	result, err := testParseCommand().ParseArgs([]string{"--all"})
	require.NoError(t, err)
	assert.True(t, result.Has("all"))
	assert.True(t, result.Bool("all"))
	assert.False(t, result.Has("brief"))
	assert.False(t, result.Bool("brief"))

	result, err = testParseCommand().ParseArgs([]string{"--all=false"})
	require.NoError(t, err)
	assert.True(t, result.Has("all"), "An explicit value still counts as supplied")
	assert.False(t, result.Bool("all"))

	_, err = testParseCommand().ParseArgs([]string{"--all=maybe"})
	assert.ErrorIs(t, err, ErrConversion)
}

func TestParseArgs_BoolOption(t *testing.T) {
	result, err := testParseCommand().ParseArgs([]string{"--color", "file"})
	require.NoError(t, err)
	assert.True(t, result.Bool("color"))
	assert.Equal(t, []string{"file"}, result.Args(), "A bool option should not consume the next token")

	result, err = testParseCommand().ParseArgs([]string{"--color=off"})
	require.NoError(t, err)
	assert.True(t, result.Has("color"))
	assert.False(t, result.Bool("color"))
}

func TestParseArgs_ShortCluster(t *testing.T) {
	result, err := testParseCommand().ParseArgs([]string{"-ab"})
	require.NoError(t, err)
	assert.True(t, result.Bool("all"))
	assert.True(t, result.Bool("brief"))

	result, err = testParseCommand().ParseArgs([]string{"-acb"})
	require.NoError(t, err)
	assert.True(t, result.Bool("all"))
	assert.Equal(t, "b", result.String("config"), "The rest of the cluster is the value")
	assert.False(t, result.Has("brief"), "Cluster processing should stop after a value-taking option")

	result, err = testParseCommand().ParseArgs([]string{"-abc", "path", "arg"})
	require.NoError(t, err)
	assert.True(t, result.Bool("all"))
	assert.True(t, result.Bool("brief"))
	assert.Equal(t, "path", result.String("config"))
	assert.Equal(t, []string{"arg"}, result.Args())
}

func TestParseArgs_Terminator(t *testing.T) {
	result, err := testParseCommand().ParseArgs([]string{"-a", "--", "-b", "--config=x", "--", "--bogus"})
	require.NoError(t, err)
	assert.True(t, result.Bool("all"))
	assert.False(t, result.Has("brief"))
	assert.False(t, result.Has("config"))
	assert.Equal(t, []string{"-b", "--config=x", "--", "--bogus"}, result.Args())
}

func TestParseArgs_ValueLooksLikeOption(t *testing.T) {
	result, err := testParseCommand().ParseArgs([]string{"--config", "--all"})
	require.NoError(t, err)
	assert.Equal(t, "--all", result.String("config"))
	assert.False(t, result.Has("all"))
}

func TestParseArgs_UnknownOption(t *testing.T) {
	tests := map[string]struct {
		args   []string
		option string
		token  string
	}{
		"Long":          {args: []string{"--bogus"}, option: "bogus", token: "--bogus"},
		"Long value":    {args: []string{"--bogus=1"}, option: "bogus", token: "--bogus=1"},
		"Short":         {args: []string{"-x"}, option: "x", token: "-x"},
		"Short cluster": {args: []string{"-abx"}, option: "x", token: "-x"},
		"Case matters":  {args: []string{"--ALL"}, option: "ALL", token: "--ALL"},
		"No prefixes":   {args: []string{"--al"}, option: "al", token: "--al"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			result, err := testParseCommand().ParseArgs(tc.args)
			assert.Nil(t, result)
			require.ErrorIs(t, err, ErrUnknownOption)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.option, perr.Option)
			assert.Equal(t, tc.token, perr.Token)
			assert.Equal(t, "test", perr.Command)
		})
	}
}

func TestParseArgs_MissingValue(t *testing.T) {
	tests := map[string][]string{
		"Long last":        {"--config"},
		"Short last":       {"-c"},
		"Cluster last":     {"-ac"},
		"Before separator": {"--config", "--", "x"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := testParseCommand().ParseArgs(args)
			require.ErrorIs(t, err, ErrMissingValue)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "config", perr.Option)
		})
	}
}

func TestParseArgs_ConversionFailure(t *testing.T) {
	tests := map[string]struct {
		args   []string
		option string
		raw    string
		typ    string
	}{
		"Not a number":     {args: []string{"--count", "abc"}, option: "count", raw: "abc", typ: "int"},
		"Trailing garbage": {args: []string{"--count=12abc"}, option: "count", raw: "12abc", typ: "int"},
		"Out of range":     {args: []string{"-n", "99999999999999999999999"}, option: "count", raw: "99999999999999999999999", typ: "int"},
		"Float":            {args: []string{"--ratio", "1.5x"}, option: "ratio", raw: "1.5x", typ: "float"},
		"Duration":         {args: []string{"-t", "soon"}, option: "timeout", raw: "soon", typ: "duration"},
		"Bool":             {args: []string{"--color=sure"}, option: "color", raw: "sure", typ: "bool"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := testParseCommand().ParseArgs(tc.args)
			require.ErrorIs(t, err, ErrConversion)
			var (
				perr *ParseError
				cerr *ConversionError
			)
			require.ErrorAs(t, err, &perr)
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tc.option, perr.Option)
			assert.Equal(t, tc.raw, cerr.Raw)
			assert.Equal(t, tc.typ, cerr.Type)
		})
	}
}

func TestParseArgs_RoundTrip(t *testing.T) {
	result, err := testParseCommand().ParseArgs([]string{
		"--config", "a=b", "-n", "-7", "--ratio=2.25", "-t", "1m30s", "--color=yes",
	})
	require.NoError(t, err)
	assert.Equal(t, "a=b", result.String("config"))
	assert.Equal(t, -7, result.Int("count"))
	assert.Equal(t, 2.25, result.Float("ratio"))
	assert.Equal(t, 90*time.Second, result.Duration("timeout"))
	assert.True(t, result.Bool("color"))

	val, ok := Lookup[int](result, "count")
	assert.True(t, ok)
	assert.Equal(t, -7, val)
	_, ok = Lookup[string](result, "count")
	assert.False(t, ok, "Lookup with the wrong type should fail")
}

func TestParseArgs_Defaults(t *testing.T) {
	result, err := testParseCommand().ParseArgs(nil)
	require.NoError(t, err)
	assert.False(t, result.Has("ratio"))
	assert.Equal(t, 0.5, result.Float("ratio"), "Defaults should be returned when not supplied")
	_, ok := Lookup[string](result, "config")
	assert.False(t, ok, "No value without a default")
	assert.Equal(t, "", result.String("config"))
	_, ok = result.Value("undeclared")
	assert.False(t, ok)
}

func TestParseArgs_Abbreviations(t *testing.T) {
	cmd := testParseCommand().SetAbbreviations(true)

	result, err := cmd.ParseArgs([]string{"--conf", "x", "--al"})
	require.NoError(t, err)
	assert.Equal(t, "x", result.String("config"))
	assert.True(t, result.Bool("all"))

	_, err = cmd.ParseArgs([]string{"--co", "x"})
	require.ErrorIs(t, err, ErrAmbiguousOption)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, []string{"--config", "--count", "--color"}, perr.Matches)
}

func TestParseArgs_Reuse(t *testing.T) {
	cmd := testParseCommand()
	first, err := cmd.ParseArgs([]string{"-a", "--count=1"})
	require.NoError(t, err)
	second, err := cmd.ParseArgs([]string{"x"})
	require.NoError(t, err)

	assert.True(t, first.Bool("all"))
	assert.Equal(t, 1, first.Int("count"))
	assert.False(t, second.Has("all"), "Parses should not share bound state")
	assert.False(t, second.Has("count"))
	assert.Equal(t, []string{"x"}, second.Args())
}

func testSubcommandTree() *Command {
	root := New("pkg").
		AddFlag(Flag{Name: "verbose", Short: 'v'}).
		AddOption(Option{Name: "config", Short: 'c', Value: StringValue("path")})
	root.AddCommand("install", "i").
		AddFlag(Flag{Name: "yes", Short: 'y'}).
		AddFlag(Flag{Name: "verbose", Description: "Install verbosely"})
	search := root.AddCommand("search").SetArgs(AtLeastArgs(1))
	search.AddCommand("remote")
	return root
}

func TestParseArgs_Subcommands(t *testing.T) {
	result, err := testSubcommandTree().ParseArgs([]string{"install", "x", "y"})
	require.NoError(t, err)
	assert.Equal(t, "install", result.Command().Name())
	assert.Equal(t, "pkg install", result.Command().Path())
	assert.True(t, result.Subcommand())
	assert.Equal(t, []string{"x", "y"}, result.Args())
	require.Len(t, result.Chain(), 2)
	assert.Equal(t, "pkg", result.Chain()[0].Command().Name())
	assert.Empty(t, result.Chain()[0].Args())
}

func TestParseArgs_SubcommandScopes(t *testing.T) {
	result, err := testSubcommandTree().ParseArgs([]string{"-c", "cfg", "i", "-y", "--verbose", "pkg1"})
	require.NoError(t, err)
	assert.Equal(t, "install", result.Command().Name(), "Aliases should match")
	assert.Equal(t, "cfg", result.String("config"), "Parent options should be visible")
	assert.True(t, result.Bool("yes"))
	assert.True(t, result.Has("verbose"), "Child declaration of verbose should be used")

	root, ok := result.Binding("pkg")
	require.True(t, ok)
	assert.False(t, root.Has("verbose"), "Child flags should not bind to the parent")

	_, err = testSubcommandTree().ParseArgs([]string{"install", "-c", "cfg"})
	assert.ErrorIs(t, err, ErrUnknownOption, "Parent options are not recognized after descending")

	result, err = testSubcommandTree().ParseArgs([]string{"-v", "install"})
	require.NoError(t, err)
	assert.False(t, result.Has("verbose"), "The child declaration shadows the parent one")
	root, _ = result.Binding("pkg")
	assert.True(t, root.Has("verbose"))
}

func TestParseArgs_SubcommandRouting(t *testing.T) {
	tests := map[string]struct {
		args    []string
		command string
		rest    []string
	}{
		"Root only":            {args: []string{}, command: "pkg"},
		"Positional first":     {args: []string{"x", "install", "y"}, command: "install", rest: []string{"x", "y"}},
		"After separator":      {args: []string{"--", "install"}, command: "pkg", rest: []string{"install"}},
		"Option value":         {args: []string{"-c", "install"}, command: "pkg"},
		"Nested":               {args: []string{"search", "remote"}, command: "remote"},
		"Nested after args":    {args: []string{"search", "term", "remote", "more"}, command: "remote", rest: []string{"term", "more"}},
		"Name at deeper level": {args: []string{"install", "search"}, command: "install", rest: []string{"search"}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			result, err := testSubcommandTree().ParseArgs(tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.command, result.Command().Name())
			assert.Equal(t, len(tc.rest), len(result.Args()))
			for i := range tc.rest {
				assert.Equal(t, tc.rest[i], result.Args()[i])
			}
		})
	}
}

func TestParseArgs_PositionalsAcrossLevels(t *testing.T) {
	result, err := testSubcommandTree().ParseArgs([]string{"a", "-v", "search", "b", "remote", "c"})
	require.NoError(t, err)
	assert.Equal(t, "pkg search remote", result.Command().Path())
	assert.Equal(t, []string{"a", "b", "c"}, result.Args(), "Positionals should stay in input order")

	chain := result.Chain()
	require.Len(t, chain, 3)
	assert.Equal(t, []string{"a"}, chain[0].Args())
	assert.Equal(t, []string{"b"}, chain[1].Args())
	assert.Equal(t, []string{"c"}, chain[2].Args())
	assert.True(t, result.Bool("verbose"))

	_, err = testSubcommandTree().ParseArgs([]string{"x", "search"})
	assert.NoError(t, err, "The validator of the deepest command should count positionals from every level")
	_, err = testSubcommandTree().ParseArgs([]string{"-v", "search"})
	assert.ErrorIs(t, err, ErrArgCount)
}

func TestParseArgs_ArgCount(t *testing.T) {
	cmd := New("simple").SetArgs(ExactArgs(0)).AddFlag(Flag{Name: "help", Short: 'h'})
	_, err := cmd.ParseArgs(nil)
	assert.NoError(t, err)

	_, err = cmd.ParseArgs([]string{"x"})
	require.ErrorIs(t, err, ErrArgCount)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Got)
	assert.Equal(t, "exactly 0 arguments", perr.Expected)
	assert.Equal(t, "Usage: simple [flag]...", perr.Usage)
	assert.Equal(t, "wrong number of arguments for 'simple': expected exactly 0 arguments, got 1\nUsage: simple [flag]...", err.Error())

	_, err = testSubcommandTree().ParseArgs([]string{"search"})
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "pkg search", perr.Command, "The deepest command should be blamed")
	assert.Equal(t, "Usage: pkg search [command]", perr.Usage)
}

func TestParseArgs_EarlyAction(t *testing.T) {
	var (
		sawConfig string
		calls     int
	)
	cmd := testParseCommand().AddFlag(Flag{
		Name: "help",
		EarlyAction: func(ctx *Context) error {
			calls++
			sawConfig = ctx.String("config")
			return nil
		},
	})
	result, err := cmd.ParseArgs([]string{"--config", "before", "--help", "--count", "3"})
	require.NoError(t, err, "Parsing should continue when the early action returns nil")
	assert.Equal(t, 1, calls)
	assert.Equal(t, "before", sawConfig, "Early actions should see what was parsed before them")
	assert.Equal(t, 3, result.Int("count"))

	cmd = testParseCommand().AddFlag(Flag{
		Name: "version",
		EarlyAction: func(ctx *Context) error {
			return Exit(0)
		},
	})
	_, err = cmd.ParseArgs([]string{"--version", "--bogus"})
	var exit *ExitError
	require.ErrorAs(t, err, &exit, "Early exit should stop parsing before the bad option")
	assert.Equal(t, 0, exit.Code)

	errStop := errors.New("stop")
	cmd = testParseCommand().AddFlag(Flag{
		Name:  "stop",
		Short: 's',
		EarlyAction: func(ctx *Context) error {
			return errStop
		},
	})
	_, err = cmd.ParseArgs([]string{"-as"})
	assert.ErrorIs(t, err, errStop)
}
