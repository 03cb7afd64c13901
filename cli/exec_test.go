package cli

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setNoActionPolicy(t *testing.T, policy NoActionBehavior) {
	t.Helper()
	orig := NoActionPolicy
	t.Cleanup(func() {
		NoActionPolicy = orig
	})
	NoActionPolicy = policy
}

func TestExecute_Dispatch(t *testing.T) {
	var ran []string
	record := func(name string) ActionFunc {
		return func(ctx *Context) error {
			ran = append(ran, name+":"+ctx.Command().Path())
			return nil
		}
	}

	root := New("pkg").Does(record("root"))
	root.Printer().Redirect(io.Discard)
	install := root.AddCommand("install", "i").Does(record("install"))
	install.AddCommand("local")
	root.AddCommand("list")

	tests := map[string]struct {
		args     []string
		expected string
	}{
		"Root":                  {args: nil, expected: "root:pkg"},
		"Sub-command":           {args: []string{"install"}, expected: "install:pkg install"},
		"Alias":                 {args: []string{"i"}, expected: "install:pkg install"},
		"Nearest ancestor":      {args: []string{"install", "local"}, expected: "install:pkg install"},
		"Fallback to root":      {args: []string{"list"}, expected: "root:pkg"},
		"Positional before cmd": {args: []string{"pkgs", "install"}, expected: "install:pkg install"},
		"Positional not a cmd":  {args: []string{"pkgs", "local"}, expected: "root:pkg"},
		"Sub-command with args": {args: []string{"install", "a", "b"}, expected: "install:pkg install"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ran = nil
			status, err := root.ExecuteArgs(tc.args)
			require.NoError(t, err)
			assert.Equal(t, StatusSuccess, status)
			assert.Equal(t, []string{tc.expected}, ran, "Exactly one action should run")
		})
	}
}

func TestExecute_SkipsProgramName(t *testing.T) {
	var args []string
	root := New("echo").Does(func(ctx *Context) error {
		args = ctx.Args()
		return nil
	})
	status, err := root.Execute([]string{"echo", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, status)
	assert.Equal(t, []string{"a", "b"}, args)
}

func TestExecute_Status(t *testing.T) {
	errTest := errors.New("test")
	tests := map[string]struct {
		action   ActionFunc
		status   int
		expected error
	}{
		"Success": {
			action: func(*Context) error { return nil },
			status: StatusSuccess,
		},
		"Failure": {
			action:   func(*Context) error { return errTest },
			status:   StatusFailure,
			expected: errTest,
		},
		"Exit": {
			action: func(*Context) error { return Exit(42) },
			status: 42,
		},
		"Wrapped exit": {
			action: func(*Context) error { return errors.Join(errTest, Exit(3)) },
			status: 3,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			status, err := New("test").Does(tc.action).ExecuteArgs(nil)
			assert.Equal(t, tc.status, status)
			if tc.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestExecute_ParseError(t *testing.T) {
	ran := false
	root := New("test").Does(func(*Context) error {
		ran = true
		return nil
	})
	status, err := root.ExecuteArgs([]string{"--bogus"})
	assert.Equal(t, StatusFailure, status)
	assert.ErrorIs(t, err, ErrUnknownOption)
	assert.False(t, ran, "No action should run after a parse error")
}

func TestExecute_EarlyExit(t *testing.T) {
	var buf bytes.Buffer
	ran := false
	root := New("simple").
		SetArgs(ExactArgs(0)).
		AddFlag(Flag{Name: "version", Short: 'v', EarlyAction: func(ctx *Context) error {
			ctx.Printer().Println("1.0.0")
			return Exit(0)
		}}).
		Does(func(*Context) error {
			ran = true
			return nil
		})
	root.Printer().Redirect(&buf)

	status, err := root.ExecuteArgs([]string{"extra", "-v", "--bogus"})
	require.NoError(t, err, "Arguments after an early exit should not be looked at")
	assert.Equal(t, StatusSuccess, status)
	assert.Equal(t, "1.0.0\n", buf.String())
	assert.False(t, ran)
}

func TestExecute_UsageError(t *testing.T) {
	var buf bytes.Buffer
	root := New("cp").SetUsage("src dest")
	root.Printer().Redirect(&buf)
	root.Does(func(ctx *Context) error {
		if len(ctx.Args()) != 2 {
			return NewUsageError("expected src and dest")
		}
		return nil
	})

	status, err := root.ExecuteArgs([]string{"a"})
	assert.Equal(t, StatusFailure, status)
	assert.ErrorIs(t, err, &UsageError{})
	assert.Equal(t, "Usage: cp src dest\n", buf.String(), "Help should be printed for a usage error")

	buf.Reset()
	status, err = root.ExecuteArgs([]string{"a", "b"})
	assert.NoError(t, err)
	assert.Equal(t, StatusSuccess, status)
	assert.Empty(t, buf.String())
}

func TestExecute_NoAction(t *testing.T) {
	newTree := func(buf *bytes.Buffer) *Command {
		root := New("pkg").SetDescription("package manager")
		root.Printer().Redirect(buf)
		root.AddCommand("update").SetDescription("update package list")
		return root
	}

	t.Run("Print help", func(t *testing.T) {
		setNoActionPolicy(t, PrintHelpOnNoAction)
		var buf bytes.Buffer
		root := newTree(&buf)
		status, err := root.ExecuteArgs([]string{"update"})
		require.NoError(t, err)
		assert.Equal(t, StatusSuccess, status)
		assert.Equal(t, root.Commands()[0].Help(), buf.String(), "Help for the deepest command should be printed")
	})

	t.Run("Succeed", func(t *testing.T) {
		setNoActionPolicy(t, SucceedOnNoAction)
		var buf bytes.Buffer
		status, err := newTree(&buf).ExecuteArgs(nil)
		require.NoError(t, err)
		assert.Equal(t, StatusSuccess, status)
		assert.Empty(t, buf.String())
	})

	t.Run("Fail", func(t *testing.T) {
		setNoActionPolicy(t, FailOnNoAction)
		var buf bytes.Buffer
		status, err := newTree(&buf).ExecuteArgs([]string{"update"})
		assert.Equal(t, StatusFailure, status)
		assert.ErrorIs(t, err, ErrNoAction)
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "pkg update", perr.Command)
		assert.Empty(t, buf.String())
	})
}

func TestContext_ParentOptions(t *testing.T) {
	var (
		verbose bool
		config  string
		yes     bool
	)
	root := New("pkg").
		AddFlag(Flag{Name: "verbose", Short: 'v'}).
		AddOption(Option{Name: "config", Short: 'c', Value: StringValue("path")})
	root.AddCommand("install").
		AddFlag(Flag{Name: "yes", Short: 'y'}).
		Does(func(ctx *Context) error {
			verbose = ctx.Bool("verbose")
			config = ctx.String("config")
			yes = ctx.Bool("yes")
			return nil
		})

	_, err := root.ExecuteArgs([]string{"-vc", "pkg.conf", "install", "-y"})
	require.NoError(t, err)
	assert.True(t, verbose)
	assert.Equal(t, "pkg.conf", config)
	assert.True(t, yes)
}
