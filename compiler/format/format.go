package format

import (
	"io"

	"github.com/nikandfor/hacked/hfmt"

	"github.com/slowlang/hdl/compiler/ir"
)

type (
	printer struct {
		c *ir.Circuit

		w   io.Writer
		b   []byte
		d   int
		err error
	}
)

const indent = "                                        "

// Append appends the text form of the circuit to b.
func Append(b []byte, c *ir.Circuit) []byte {
	p := &printer{c: c, b: b}
	p.circuit()

	return p.b
}

// Fprint writes the circuit to w line by line.
// Lines written before an error stay written.
func Fprint(w io.Writer, c *ir.Circuit) error {
	p := &printer{c: c, w: w}
	p.circuit()

	return p.err
}

func AppendExpr(b []byte, c *ir.Circuit, e *ir.Expr) []byte {
	p := &printer{c: c, b: b}
	p.expr(e)

	return p.b
}

func (p *printer) circuit() {
	c := p.c

	p.line("circuit %s", c.Name)
	p.d++

	p.start("in")
	p.ports(c.Inputs, false)
	p.end()

	p.start("out")
	p.ports(c.Outputs, false)
	p.end()

	p.start("sig")
	p.signals()
	p.end()

	p.blank()

	for _, n := range c.Nodes {
		p.line("node %s", n.Name)
		p.d++
		p.node(n)
		p.d--
	}

	p.blank()

	for _, id := range c.Outputs {
		n := c.PortNet(id)
		if n == nil || !n.NeedsVariable() && !n.IsInput() {
			continue
		}

		p.start("")
		p.port(id)
		p.printf(" := ")
		p.net(c.Port(id).Net)
		p.end()
	}

	p.d--
	p.line("end circuit %s", c.Name)
}

func (p *printer) node(n *ir.Node) {
	p.start("in")
	p.ports(n.Inputs, true)
	p.end()

	p.start("out")
	p.ports(n.Outputs, true)
	p.end()

	if !n.IsExpression() || len(n.Outputs) == 0 {
		return
	}

	out := p.c.Port(n.Outputs[0]).Net
	if out == ir.NoNet {
		return
	}

	p.start("")
	p.net(out)
	p.printf(" := ")
	p.expr(n.Expr)
	p.end()
}

func (p *printer) ports(l []ir.PortID, wired bool) {
	p.printf("(")

	for i, id := range l {
		if i != 0 {
			p.printf(", ")
		}

		p.port(id)

		if !wired {
			continue
		}

		if net := p.c.Port(id).Net; net != ir.NoNet {
			p.printf(" is ")
			p.net(net)
		} else {
			p.printf(" is not used")
		}
	}

	p.printf(")")
}

func (p *printer) signals() {
	p.printf("(")

	first := true

	for _, id := range p.c.Nets {
		if !p.c.Net(id).NeedsVariable() {
			continue
		}

		if !first {
			p.printf(", ")
		}

		first = false

		p.net(id)
	}

	p.printf(")")
}

func (p *printer) port(id ir.PortID) {
	x := p.c.Port(id)
	p.printf("%s:%d", x.Name, x.Bits)
}

func (p *printer) net(id ir.NetID) {
	n := p.c.Net(id)

	if n.Name == "" {
		p.printf("_%d:%d", int(id), n.Bits)
		return
	}

	p.printf("%s:%d", n.Name, n.Bits)
}

func (p *printer) expr(e *ir.Expr) {
	switch e.Op {
	case ir.OpVar:
		p.net(e.Net)
	case ir.OpConst:
		p.printf("%d:%d", e.Value, e.Bits)
	case ir.OpNot:
		p.printf("NOT ")
		p.expr(e.Args[0])
	case ir.OpAnd, ir.OpOr, ir.OpXor:
		p.printf("(")

		for i, a := range e.Args {
			if i != 0 {
				p.printf(" %v ", e.Op)
			}

			p.expr(a)
		}

		p.printf(")")
	default:
		panic(e.Op)
	}
}

func (p *printer) line(f string, args ...any) {
	p.start("")
	p.printf(f, args...)
	p.end()
}

func (p *printer) start(s string) {
	p.b = append(p.b, indent[:2*p.d]...)
	p.b = append(p.b, s...)
}

func (p *printer) printf(f string, args ...any) {
	p.b = hfmt.Appendf(p.b, f, args...)
}

func (p *printer) blank() {
	p.end()
}

func (p *printer) end() {
	p.b = append(p.b, '\n')
	p.flush()
}

func (p *printer) flush() {
	if p.w == nil {
		return
	}

	if p.err == nil {
		_, p.err = p.w.Write(p.b)
	}

	p.b = p.b[:0]
}
