package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/goliatone/go-mdvars/cmd/mdvars/internal/bootstrap"
	"github.com/goliatone/go-mdvars/internal/logging"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Exit); err != nil {
		fmt.Fprintf(os.Stderr, "mdvars: %v\n", err)
		os.Exit(1)
	}
}

// App carries the streams and builder commands run against.
type App struct {
	Ctx   context.Context
	In    io.Reader
	Out   io.Writer
	Err   io.Writer
	Build func(bootstrap.Options) (*bootstrap.Module, error)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, exit func(int)) error {
	var cli CLI

	parser, err := kong.New(&cli,
		kong.Name("mdvars"),
		kong.Description("Render Markdown documents with {{> name content }} template variables."),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdout, stderr),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.NoColor {
		color.NoColor = true
	}

	app := &App{
		Ctx:   logging.ContextWithFields(ctx, map[string]any{"command": ktx.Command()}),
		In:    stdin,
		Out:   stdout,
		Err:   stderr,
		Build: moduleBuilder,
	}
	return ktx.Run(app, &cli.Globals)
}
