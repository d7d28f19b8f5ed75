package netlist

import (
	"github.com/slowlang/hdl/compiler/build"
	"github.com/slowlang/hdl/compiler/ir"
)

type (
	// Netlist is an already resolved drawing kept in memory.
	Netlist struct {
		origin   string
		elements []build.Element

		pos    map[build.Pos]build.NetKey
		labels map[build.NetKey][]string
	}

	// Builder assembles a Netlist from named wires.
	// Every pin gets a position of its own, pins sharing a wire name are connected.
	// Tunnels with equal labels connect their wires and label the result.
	Builder struct {
		origin   string
		elements []build.Element

		wires  map[string]int
		pinsOf []int // pin position -> wire
		labels map[int][]string
	}
)

var _ build.Netlist = (*Netlist)(nil)

func New(origin string) *Builder {
	return &Builder{
		origin: origin,
		wires:  map[string]int{},
		labels: map[int][]string{},
	}
}

// Add places an element. An empty wire leaves the pin unconnected.
func (b *Builder) Add(kind string, a ir.Attrs, wires ...string) *Builder {
	e := build.Element{
		Name:  kind,
		Attrs: a,
		Pins:  make([]build.Pin, len(wires)),
	}

	for i, w := range wires {
		x := len(b.pinsOf)

		b.pinsOf = append(b.pinsOf, b.wire(w))
		e.Pins[i] = build.Pin{Pos: build.Pos{X: x}}
	}

	b.elements = append(b.elements, e)

	return b
}

func (b *Builder) In(label string, bits int, wire string) *Builder {
	return b.Add(build.In, ir.Attrs{Label: label, Bits: bits}, wire)
}

func (b *Builder) Clock(label string, wire string) *Builder {
	return b.Add(build.Clock, ir.Attrs{Label: label, Bits: 1}, wire)
}

func (b *Builder) Out(label string, bits int, wire string) *Builder {
	return b.Add(build.Out, ir.Attrs{Label: label, Bits: bits}, wire)
}

func (b *Builder) Tunnel(label string, wire string) *Builder {
	return b.Add("Tunnel", ir.Attrs{Label: label}, wire)
}

// Label attaches user labels to the wire.
func (b *Builder) Label(wire string, labels ...string) *Builder {
	w := b.wire(wire)
	b.labels[w] = append(b.labels[w], labels...)

	return b
}

// Netlist resolves wires into nets.
func (b *Builder) Netlist() *Netlist {
	uf := newUnion(len(b.wires))

	tunnels := map[string]int{}

	for _, e := range b.elements {
		if e.Name != "Tunnel" || len(e.Pins) != 1 {
			continue
		}

		w := b.pinsOf[e.Pins[0].Pos.X]
		if w < 0 {
			continue
		}

		if prev, ok := tunnels[e.Attrs.Label]; ok {
			uf.join(prev, w)
		} else {
			tunnels[e.Attrs.Label] = w
		}
	}

	nl := &Netlist{
		origin:   b.origin,
		elements: b.elements,
		pos:      map[build.Pos]build.NetKey{},
		labels:   map[build.NetKey][]string{},
	}

	for x, w := range b.pinsOf {
		if w < 0 {
			continue
		}

		nl.pos[build.Pos{X: x}] = build.NetKey(uf.find(w))
	}

	for w := 0; w < len(b.wires); w++ {
		k := build.NetKey(uf.find(w))

		for _, l := range b.labels[w] {
			nl.addLabel(k, l)
		}
	}

	for _, e := range b.elements {
		if e.Name != "Tunnel" || len(e.Pins) != 1 {
			continue
		}

		if w := b.pinsOf[e.Pins[0].Pos.X]; w >= 0 {
			nl.addLabel(build.NetKey(uf.find(w)), e.Attrs.Label)
		}
	}

	return nl
}

func (b *Builder) wire(name string) int {
	if name == "" {
		return -1
	}

	if w, ok := b.wires[name]; ok {
		return w
	}

	w := len(b.wires)
	b.wires[name] = w

	return w
}

func (nl *Netlist) Origin() string { return nl.origin }

func (nl *Netlist) Elements() []build.Element { return nl.elements }

func (nl *Netlist) NetOf(p build.Pos) (build.NetKey, bool) {
	k, ok := nl.pos[p]
	return k, ok
}

func (nl *Netlist) Labels(k build.NetKey) []string {
	return nl.labels[k]
}

func (nl *Netlist) addLabel(k build.NetKey, l string) {
	for _, x := range nl.labels[k] {
		if x == l {
			return
		}
	}

	nl.labels[k] = append(nl.labels[k], l)
}

type union []int

func newUnion(n int) union {
	u := make(union, n)

	for i := range u {
		u[i] = i
	}

	return u
}

func (u union) find(x int) int {
	for u[x] != x {
		u[x] = u[u[x]]
		x = u[x]
	}

	return x
}

// join keeps the smaller root so keys do not depend on tunnel order.
func (u union) join(a, b int) {
	a, b = u.find(a), u.find(b)

	if b < a {
		a, b = b, a
	}

	u[b] = a
}
