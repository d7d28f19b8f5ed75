package compiler

import (
	"context"
	"io"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/hdl/compiler/build"
	"github.com/slowlang/hdl/compiler/catalog"
	"github.com/slowlang/hdl/compiler/format"
	"github.com/slowlang/hdl/compiler/ir"
	"github.com/slowlang/hdl/compiler/merge"
	"github.com/slowlang/hdl/compiler/netlist"
)

type (
	Options struct {
		// Name of the circuit, "main" if empty.
		Name string

		NoMerge bool

		// Namer for anonymous nets, ir.SimpleNaming if nil.
		Namer ir.Namer

		// Catalog of elements, catalog.Default if nil.
		Catalog build.Catalog
	}
)

func TranslateFile(ctx context.Context, name string, opts Options) (text []byte, err error) {
	nl, err := netlist.Load(name)
	if err != nil {
		return nil, errors.Wrap(err, "load netlist")
	}

	tlog.SpanFromContext(ctx).Printw("netlist loaded", "name", name, "elements", len(nl.Elements()))

	c, err := Translate(ctx, nl, opts)
	if err != nil {
		return nil, err
	}

	return format.Append(nil, c), nil
}

// Translate builds the circuit, merges operations and names the nets.
func Translate(ctx context.Context, nl build.Netlist, opts Options) (c *ir.Circuit, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "translate", "origin", nl.Origin())
	defer tr.Finish("err", &err)

	if opts.Name == "" {
		opts.Name = "main"
	}

	if opts.Namer == nil {
		opts.Namer = &ir.SimpleNaming{}
	}

	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}

	c, err = build.Build(ctx, opts.Name, nl, opts.Catalog)
	if err != nil {
		return nil, errors.Wrap(err, "build")
	}

	if !opts.NoMerge {
		merge.Merge(ctx, c)
	}

	c.NameNets(opts.Namer)

	return c, nil
}

func Print(w io.Writer, c *ir.Circuit) error {
	return format.Fprint(w, c)
}
