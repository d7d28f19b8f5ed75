package catalog

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/hdl/compiler/build"
	"github.com/slowlang/hdl/compiler/ir"
)

type (
	Terminal struct {
		Name string
		Bits int
	}

	// Primitive describes the shape of one element kind.
	// Kinds without Expr become opaque nodes and are never merged.
	Primitive struct {
		Name string

		Inputs  func(a ir.Attrs) []Terminal
		Outputs func(a ir.Attrs) []Terminal

		Expr func(in []*ir.Expr, a ir.Attrs) *ir.Expr
	}

	// Catalog is an immutable table of primitives.
	Catalog struct {
		prims map[string]*Primitive
	}
)

var _ build.Catalog = (*Catalog)(nil)

func New(prims ...*Primitive) *Catalog {
	c := &Catalog{prims: make(map[string]*Primitive, len(prims))}

	for _, p := range prims {
		c.prims[p.Name] = p
	}

	return c
}

// Default contains the basic gates, constants and the D flip-flop.
func Default() *Catalog {
	return New(
		gate("And", ir.OpAnd, false),
		gate("NAnd", ir.OpAnd, true),
		gate("Or", ir.OpOr, false),
		gate("NOr", ir.OpOr, true),
		gate("XOr", ir.OpXor, false),
		gate("XNOr", ir.OpXor, true),
		notPrim,
		constPrim,
		dffPrim,
	)
}

// With returns a copy of the catalog extended by prims.
func (c *Catalog) With(prims ...*Primitive) *Catalog {
	r := &Catalog{prims: make(map[string]*Primitive, len(c.prims)+len(prims))}

	for k, p := range c.prims {
		r.prims[k] = p
	}

	for _, p := range prims {
		r.prims[p.Name] = p
	}

	return r
}

func (c *Catalog) Lookup(name string) (*Primitive, bool) {
	p, ok := c.prims[name]
	return p, ok
}

func (c *Catalog) CreateNode(ctx context.Context, b *build.Builder, e build.Element) (*ir.Node, error) {
	p, ok := c.prims[e.Name]
	if !ok {
		return nil, &ir.NodeError{Element: e.Name, Err: errors.New("unknown element")}
	}

	a := defaults(e.Attrs)
	ins, outs := p.Inputs(a), p.Outputs(a)

	if len(e.Pins) != len(ins)+len(outs) {
		return nil, &ir.PinError{
			Pin: e.Name,
			Err: errors.New("%d terminals expected, got %d pins", len(ins)+len(outs), len(e.Pins)),
		}
	}

	for _, name := range a.Inverted {
		if !hasTerminal(ins, name) {
			return nil, &ir.BuildError{Err: errors.New("inverted input %v is not an input of %v", name, e.Name)}
		}
	}

	circ := b.Circuit()

	n := &ir.Node{
		Kind:  ir.Element,
		Name:  p.Name,
		Attrs: a,
	}

	for i, t := range ins {
		circ.AddNodeInput(n, t.Name, t.Bits, b.NetOf(e.Pins[i]))
	}

	for i, t := range outs {
		circ.AddNodeOutput(n, t.Name, t.Bits, b.NetOf(e.Pins[len(ins)+i]))
	}

	if p.Expr == nil {
		return n, nil
	}

	vars := make([]*ir.Expr, len(n.Inputs))

	for i, id := range n.Inputs {
		port := circ.Port(id)

		if port.Net == ir.NoNet {
			return nil, &ir.PinError{Pin: port.Name, Err: errors.New("input of %v not connected", e.Name)}
		}

		vars[i] = ir.Var(port.Net)
	}

	n.Kind = ir.Expression
	n.Expr = p.Expr(vars, a)

	tlog.V("catalog").Printw("node created", "name", n.Name, "inputs", n.Inputs, "outputs", n.Outputs)

	return n, nil
}

func (c *Catalog) Inverter(circ *ir.Circuit, bits int, in, out ir.NetID) *ir.Node {
	p, ok := c.prims["Not"]
	if !ok {
		p = notPrim
	}

	a := ir.Attrs{Bits: bits}

	n := &ir.Node{
		Kind:  ir.Expression,
		Name:  p.Name,
		Attrs: a,
	}

	circ.AddNodeInput(n, p.Inputs(a)[0].Name, bits, in)
	circ.AddNodeOutput(n, p.Outputs(a)[0].Name, bits, out)

	n.Expr = p.Expr([]*ir.Expr{ir.Var(in)}, a)

	return n
}

func defaults(a ir.Attrs) ir.Attrs {
	if a.Bits == 0 {
		a.Bits = 1
	}

	if a.Inputs == 0 {
		a.Inputs = 2
	}

	return a
}

func hasTerminal(l []Terminal, name string) bool {
	for _, t := range l {
		if t.Name == name {
			return true
		}
	}

	return false
}
