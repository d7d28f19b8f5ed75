package main

import (
	"context"
	"os"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/hdl/compiler"
	"github.com/slowlang/hdl/compiler/ir"
)

func main() {
	printCmd := &cli.Command{
		Name:        "print",
		Description: "translate resolved netlists and print the intermediate model",
		Action:      printAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("name", "main", "circuit name"),
			cli.NewFlag("no-merge", false, "do not merge operations"),
			cli.NewFlag("naming", "simple", "net naming: simple or label"),
			cli.NewFlag("prefix", "sig_", "name prefix for label naming"),
		},
	}

	app := &cli.Command{
		Name:        "hdl",
		Description: "hdl translates drawn circuits into the hdl intermediate model",
		Before:      before,
		Flags: []*cli.Flag{
			cli.NewFlag("verbosity,v", "", "logger verbosity topics"),
			cli.HelpFlag,
		},
		Commands: []*cli.Command{
			printCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func before(c *cli.Command) error {
	tlog.SetVerbosity(c.String("verbosity"))

	return nil
}

func printAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	naming, prefix := c.String("naming"), c.String("prefix")

	if naming != "simple" && naming != "label" {
		return errors.New("unsupported naming: %v", naming)
	}

	for _, a := range c.Args {
		text, err := compiler.TranslateFile(ctx, a, compiler.Options{
			Name:    c.String("name"),
			NoMerge: c.Bool("no-merge"),
			Namer:   newNamer(naming, prefix),
		})
		if err != nil {
			return errors.Wrap(err, "translate %v", a)
		}

		_, err = os.Stdout.Write(text)
		if err != nil {
			return errors.Wrap(err, "write")
		}
	}

	return nil
}

func newNamer(naming, prefix string) ir.Namer {
	if naming == "label" {
		return &ir.LabelNaming{Prefix: prefix}
	}

	return &ir.SimpleNaming{}
}
