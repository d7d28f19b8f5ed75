package build

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/slowlang/hdl/compiler/ir"
)

type (
	Pos struct {
		X, Y int
	}

	Pin struct {
		Name string
		Pos  Pos
	}

	// Element is one placed component of the drawing.
	Element struct {
		Name  string
		Attrs ir.Attrs
		Pins  []Pin
	}

	// NetKey identifies an electrically connected set of positions.
	NetKey int

	// Netlist is the resolved drawing.
	Netlist interface {
		Origin() string
		Elements() []Element

		NetOf(p Pos) (NetKey, bool)
		Labels(k NetKey) []string
	}

	Catalog interface {
		CreateNode(ctx context.Context, b *Builder, e Element) (*ir.Node, error)

		// Inverter returns a node computing NOT in into out.
		Inverter(c *ir.Circuit, bits int, in, out ir.NetID) *ir.Node
	}

	Builder struct {
		nl  Netlist
		cat Catalog

		c    *ir.Circuit
		nets map[NetKey]ir.NetID
	}
)

// Element kinds the builder handles itself.
const (
	In    = "In"
	Clock = "Clock"
	Out   = "Out"
)

var skipped = map[string]struct{}{
	"Tunnel":      {},
	"Break":       {},
	"PullUp":      {},
	"PullDown":    {},
	"Probe":       {},
	"PowerSupply": {},
	"Text":        {},
	"Data":        {},
	"Testcase":    {},
}

// IsReal reports whether the element kind computes anything.
func IsReal(kind string) bool {
	_, ok := skipped[kind]
	return !ok
}

// Build translates the netlist into a circuit named name.
// Nothing is returned on error.
func Build(ctx context.Context, name string, nl Netlist, cat Catalog) (_ *ir.Circuit, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "build circuit", "name", name, "origin", nl.Origin())
	defer tr.Finish("err", &err)

	b := &Builder{
		nl:   nl,
		cat:  cat,
		c:    ir.New(name),
		nets: map[NetKey]ir.NetID{},
	}

	err = b.build(ctx)
	if err != nil {
		return nil, &ir.BuildError{Where: "error parsing " + nl.Origin(), Err: err}
	}

	if tr.If("dump_nets") {
		for _, id := range b.c.Nets {
			n := b.c.Net(id)

			tr.Printw("net", "id", id, "name", n.Name, "bits", n.Bits, "drivers", n.Drivers, "loads", n.Loads, "in", n.IsInput(), "out", n.IsOutput())
		}
	}

	return b.c, nil
}

func (b *Builder) Circuit() *ir.Circuit { return b.c }

// NetOf returns the net the pin belongs to or ir.NoNet.
// The first pin of a net creates it.
func (b *Builder) NetOf(p Pin) ir.NetID {
	k, ok := b.nl.NetOf(p.Pos)
	if !ok {
		return ir.NoNet
	}

	if id, ok := b.nets[k]; ok {
		return id
	}

	var name string

	if l := b.nl.Labels(k); len(l) == 1 {
		name = l[0]
	}

	id := b.c.NewNet(name)
	b.nets[k] = id

	tlog.V("net").Printw("new net", "key", k, "id", id, "name", name, "from", loc.Caller(1))

	return id
}

func (b *Builder) build(ctx context.Context) (err error) {
	for i, e := range b.nl.Elements() {
		switch e.Name {
		case In, Clock:
			err = b.boundary(e, true)
		case Out:
			err = b.boundary(e, false)
		default:
			if !IsReal(e.Name) {
				continue
			}

			var n *ir.Node

			n, err = b.cat.CreateNode(ctx, b, e)
			if err == nil {
				b.c.Nodes = append(b.c.Nodes, n)
			}
		}

		if err != nil {
			return errors.Wrap(err, "element %d (%v)", i, e.Name)
		}
	}

	b.nets = nil

	if n := b.c.PruneNets(); n != 0 {
		tlog.V("build").Printw("dead nets pruned", "n", n)
	}

	err = b.c.ResolveBits()
	if err != nil {
		return errors.Wrap(err, "resolve bits")
	}

	err = b.fixInverted()
	if err != nil {
		return errors.Wrap(err, "inverted inputs")
	}

	b.markBoundary()

	return nil
}

func (b *Builder) boundary(e Element, input bool) error {
	if len(e.Pins) != 1 {
		return &ir.PinError{Pin: e.Attrs.Label, Err: errors.New("%v needs exactly one pin, got %d", e.Name, len(e.Pins))}
	}

	if e.Attrs.Label == "" {
		return &ir.BuildError{Err: errors.New("%v without label", e.Name)}
	}

	bits := e.Attrs.Bits
	if bits == 0 {
		bits = 1
	}

	net := b.NetOf(e.Pins[0])

	if input {
		b.c.AddInput(e.Attrs.Label, bits, e.Attrs.PinNumber, net)

		return nil
	}

	if net == ir.NoNet {
		return &ir.PinError{Pin: e.Attrs.Label, Err: errors.New("output not connected")}
	}

	b.c.AddOutput(e.Attrs.Label, bits, e.Attrs.PinNumber, net)

	return nil
}

func (b *Builder) fixInverted() error {
	c := b.c

	var inv []*ir.Node

	for _, n := range c.Nodes {
		if len(n.Attrs.Inverted) == 0 {
			continue
		}

		for i, id := range n.Inputs {
			p := c.Port(id)

			if !n.Attrs.IsInverted(p.Name) {
				continue
			}

			if p.Net == ir.NoNet {
				return &ir.PinError{Pin: p.Name, Err: errors.New("inverted input of %v not connected", n.Name)}
			}

			name, in, bits := p.Name, p.Net, p.Bits

			out := c.NewNet("")
			c.Net(out).Bits = bits

			c.RebindInput(n, i, out)

			inv = append(inv, b.cat.Inverter(c, bits, in, out))

			tlog.V("invert").Printw("input inverted", "node", n.Name, "port", name, "in", in, "out", out)
		}
	}

	c.Nodes = append(c.Nodes, inv...)

	return nil
}

func (b *Builder) markBoundary() {
	c := b.c

	for _, id := range c.Inputs {
		if n := c.PortNet(id); n != nil {
			n.SetIsInput(c.Port(id).Name)
		}
	}

	for _, id := range c.Outputs {
		n := c.PortNet(id)

		if n.NeedsVariable() {
			n.SetIsOutput(c.Port(id).Name, len(n.Loads) == 1)
		}
	}
}
