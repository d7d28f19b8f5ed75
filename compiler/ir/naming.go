package ir

import (
	"strconv"
)

type (
	// Namer invents names for anonymous nets.
	Namer interface {
		Name(n *Net) string
	}

	// SimpleNaming numbers nets s0, s1, ... in the order they are asked for.
	SimpleNaming struct {
		num int
	}

	// LabelNaming numbers nets with Prefix and skips names already taken in the circuit.
	LabelNaming struct {
		Prefix string

		used map[string]struct{}
		num  int
	}

	NamerFunc func(n *Net) string

	// Reserver is implemented by namers that must not reuse names
	// already present in the circuit. Decorators should forward it.
	Reserver interface {
		Reserve(c *Circuit)
	}
)

// NameNets names every anonymous live net in net-list order.
func (c *Circuit) NameNets(nm Namer) {
	if r, ok := nm.(Reserver); ok {
		r.Reserve(c)
	}

	for _, id := range c.Nets {
		n := &c.nets[id]

		if n.Name == "" {
			n.Name = nm.Name(n)
		}
	}
}

func (s *SimpleNaming) Name(*Net) string {
	name := "s" + strconv.Itoa(s.num)
	s.num++

	return name
}

func (l *LabelNaming) Name(*Net) string {
	p := l.Prefix
	if p == "" {
		p = "sig_"
	}

	for {
		name := p + strconv.Itoa(l.num)
		l.num++

		if _, ok := l.used[name]; ok {
			continue
		}

		if l.used == nil {
			l.used = map[string]struct{}{}
		}

		l.used[name] = struct{}{}

		return name
	}
}

// Reserve marks names of nets and circuit ports as taken.
func (l *LabelNaming) Reserve(c *Circuit) {
	if l.used == nil {
		l.used = map[string]struct{}{}
	}

	for _, id := range c.Nets {
		if n := c.nets[id].Name; n != "" {
			l.used[n] = struct{}{}
		}
	}

	for _, l2 := range [][]PortID{c.Inputs, c.Outputs} {
		for _, id := range l2 {
			l.used[c.ports[id].Name] = struct{}{}
		}
	}
}

func (f NamerFunc) Name(n *Net) string { return f(n) }
