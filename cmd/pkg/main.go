// Command pkg is a toy package manager front end that shows how a command tree is declared and dispatched.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/saylorsolutions/cmdtree/cli"
)

var (
	logLevel = new(slog.LevelVar)
	logger   = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	errColor = color.New(color.FgRed, color.Bold)
)

func main() {
	status, err := newRoot().Execute(os.Args)
	if err != nil {
		_, _ = errColor.Fprint(os.Stderr, "pkg: ")
		_, _ = fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(status)
}

func helpFlag() cli.Flag {
	return cli.Flag{
		Name:        "help",
		Short:       'h',
		Description: "display this help and exit",
		EarlyAction: func(ctx *cli.Context) error {
			ctx.PrintHelp()
			return cli.Exit(cli.StatusSuccess)
		},
	}
}

func newRoot() *cli.Command {
	root := cli.New("pkg").
		SetDescription("package manager").
		SetLogger(logger).
		SetAbbreviations(true).
		AddFlag(cli.Flag{Name: "verbose", Short: 'v', Description: "enable verbose output"}).
		AddOption(cli.Option{Name: "config", Short: 'c', Description: "specify config file", Value: cli.StringValue("path")}).
		AddFlag(cli.Flag{
			Name:        "debug",
			Description: "log parser activity to stderr",
			EarlyAction: func(*cli.Context) error {
				logLevel.Set(slog.LevelDebug)
				return nil
			},
		}).
		AddFlag(helpFlag()).
		Before(func(ctx *cli.Context) error {
			if ctx.Bool("verbose") {
				ctx.Printer().Println("verbose set")
			}
			if config, ok := cli.Lookup[string](ctx, "config"); ok {
				ctx.Printer().Println("config file set to", config)
			}
			return nil
		})

	root.AddCommand("install", "i").
		SetUsage("[flag]... package...").
		SetDescription("install packages").
		SetArgs(cli.AtLeastArgs(1)).
		AddFlag(cli.Flag{Name: "yes", Short: 'y', Description: "auto-confirm"}).
		AddFlag(helpFlag()).
		Does(func(ctx *cli.Context) error {
			out := ctx.Printer()
			if ctx.Bool("yes") {
				out.Println("auto-confirmed")
			}
			out.Println("installing packages:")
			for _, arg := range ctx.Args() {
				out.Println("  -", arg)
			}
			return nil
		})

	root.AddCommand("remove", "rm").
		SetUsage("[flag]... package...").
		SetDescription("remove packages").
		SetArgs(cli.AtLeastArgs(1)).
		AddFlag(cli.Flag{Name: "purge", Short: 'p', Description: "remove config files"}).
		AddFlag(helpFlag()).
		Does(func(ctx *cli.Context) error {
			out := ctx.Printer()
			if ctx.Bool("purge") {
				out.Println("purge set")
			}
			out.Println("removing packages:")
			for _, arg := range ctx.Args() {
				out.Println("  -", arg)
			}
			return nil
		})

	root.AddCommand("search").
		SetUsage("[flag]... query").
		SetDescription("search packages").
		AddFlag(cli.Flag{Name: "exact", Short: 'e', Description: "exact match only"}).
		AddOption(cli.Option{Name: "limit", Short: 'n', Description: "maximum number of results", Value: cli.IntValue("count").Default(10)}).
		AddFlag(helpFlag()).
		Does(func(ctx *cli.Context) error {
			var query string
			if err := cli.MapArgs(ctx.Args(), 1, &query); err != nil || len(ctx.Args()) > 1 {
				return cli.NewUsageError("expected one argument for query")
			}
			out := ctx.Printer()
			if ctx.Bool("exact") {
				out.Println("exact matches set")
			}
			out.Printf("search results for: %s (limit %d)\n", query, ctx.Int("limit"))
			return nil
		})

	root.AddCommand("update").
		SetDescription("update package list").
		SetArgs(cli.ExactArgs(0)).
		AddFlag(cli.Flag{Name: "quiet", Short: 'q', Description: "suppress output"}).
		AddOption(cli.Option{Name: "timeout", Short: 't', Description: "give up after this long", Value: cli.DurationValue("").Default(30 * time.Second)}).
		AddFlag(helpFlag()).
		Does(func(ctx *cli.Context) error {
			out := ctx.Printer()
			if !ctx.Bool("quiet") {
				out.Printf("updating package database (timeout %s)...\n", ctx.Duration("timeout"))
			}
			out.Println("database updated")
			return nil
		})

	root.AddCommand("list", "ls").
		SetDescription("list installed packages").
		SetArgs(cli.ExactArgs(0)).
		AddFlag(cli.Flag{Name: "all", Short: 'a', Description: "show all packages"}).
		AddFlag(helpFlag()).
		Does(func(ctx *cli.Context) error {
			out := ctx.Printer()
			out.Println("installed packages:")
			packages := []string{"package1", "package2"}
			if ctx.Bool("all") {
				packages = append(packages, "package3")
			}
			for _, p := range packages {
				out.Println("  -", p)
			}
			return nil
		})

	return root
}
