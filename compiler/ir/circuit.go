package ir

import (
	"fmt"

	"tlog.app/go/errors"

	"github.com/slowlang/hdl/compiler/set"
)

type (
	// Circuit owns all nets and ports of one translated circuit.
	// Ports and nets are addressed by handles into the arenas,
	// Nets and Nodes keep the live ones in order.
	Circuit struct {
		Name string

		Inputs  []PortID
		Outputs []PortID

		Nets  []NetID
		Nodes []*Node

		nets  []Net
		ports []Port
	}
)

func New(name string) *Circuit {
	return &Circuit{Name: name}
}

func (c *Circuit) NewNet(name string) NetID {
	id := NetID(len(c.nets))

	c.nets = append(c.nets, Net{
		Name:      name,
		userNamed: name != "",
	})

	c.Nets = append(c.Nets, id)

	return id
}

func (c *Circuit) Net(id NetID) *Net {
	if id == NoNet {
		return nil
	}

	return &c.nets[id]
}

func (c *Circuit) Port(id PortID) *Port {
	return &c.ports[id]
}

// PortNet returns the net the port is bound to or nil.
func (c *Circuit) PortNet(id PortID) *Net {
	return c.Net(c.ports[id].Net)
}

// NewPort creates a port and attaches it to net unless net is NoNet.
func (c *Circuit) NewPort(name string, dir Dir, bits int, net NetID) PortID {
	id := PortID(len(c.ports))

	c.ports = append(c.ports, Port{
		Name: name,
		Dir:  dir,
		Bits: bits,
		Net:  NoNet,
	})

	c.Attach(id, net)

	return id
}

// Attach binds a detached port to net and registers it on the net.
func (c *Circuit) Attach(id PortID, net NetID) {
	p := &c.ports[id]

	if p.Net != NoNet {
		panic(fmt.Sprintf("attach %v: already bound to %v", p.Name, p.Net))
	}

	if net == NoNet {
		return
	}

	p.Net = net
	n := &c.nets[net]

	if p.Dir == Out {
		n.Drivers = append(n.Drivers, id)
	} else {
		n.Loads = append(n.Loads, id)
	}
}

// Detach unbinds the port from its net, leaving all other ports of the net intact.
func (c *Circuit) Detach(id PortID) {
	p := &c.ports[id]

	if p.Net == NoNet {
		return
	}

	n := &c.nets[p.Net]

	if p.Dir == Out {
		n.Drivers = without(n.Drivers, id)
	} else {
		n.Loads = without(n.Loads, id)
	}

	p.Net = NoNet
}

func (c *Circuit) Rebind(id PortID, net NetID) {
	c.Detach(id)
	c.Attach(id, net)
}

func (c *Circuit) AddInput(name string, bits int, pin string, net NetID) PortID {
	id := c.NewPort(name, Out, bits, net)
	c.ports[id].PinNumber = pin

	c.Inputs = append(c.Inputs, id)

	return id
}

func (c *Circuit) AddOutput(name string, bits int, pin string, net NetID) PortID {
	id := c.NewPort(name, In, bits, net)
	c.ports[id].PinNumber = pin

	c.Outputs = append(c.Outputs, id)

	return id
}

func (c *Circuit) AddNodeInput(n *Node, name string, bits int, net NetID) PortID {
	id := c.NewPort(name, In, bits, net)
	n.Inputs = append(n.Inputs, id)

	return id
}

func (c *Circuit) AddNodeOutput(n *Node, name string, bits int, net NetID) PortID {
	id := c.NewPort(name, Out, bits, net)
	n.Outputs = append(n.Outputs, id)

	return id
}

// RebindInput moves the i-th input of n to net.
// For expression nodes the matching Var leaf follows the port.
func (c *Circuit) RebindInput(n *Node, i int, net NetID) {
	id := n.Inputs[i]
	old := c.ports[id].Net

	if n.Expr != nil && old != NoNet {
		k := 0

		for _, q := range n.Inputs[:i] {
			if c.ports[q].Net == old {
				k++
			}
		}

		n.Expr.Retarget(old, net, k)
	}

	c.Rebind(id, net)
}

// RemoveNets drops the nets from the live list and unbinds their ports.
func (c *Circuit) RemoveNets(drop set.Bits[NetID]) {
	if drop.Len() == 0 {
		return
	}

	keep := c.Nets[:0]

	for _, id := range c.Nets {
		if !drop.Has(id) {
			keep = append(keep, id)
			continue
		}

		n := &c.nets[id]

		for _, p := range append(append([]PortID{}, n.Drivers...), n.Loads...) {
			c.Detach(p)
		}
	}

	c.Nets = keep
}

func (c *Circuit) RemoveNet(id NetID) {
	c.RemoveNets(set.MakeBits(id))
}

// PruneNets removes nets without drivers and loads.
func (c *Circuit) PruneNets() (n int) {
	var dead set.Bits[NetID]

	for _, id := range c.Nets {
		if c.nets[id].Dead() {
			dead.Add(id)
		}
	}

	c.RemoveNets(dead)

	return dead.Len()
}

// ResolveBits propagates the driver width to every net and its loads.
func (c *Circuit) ResolveBits() error {
	for _, id := range c.Nets {
		n := &c.nets[id]

		switch len(n.Drivers) {
		case 0:
			if len(n.Loads) == 0 {
				continue
			}

			return &BuildError{Err: errors.New("no output connected to net %v", c.netName(id))}
		case 1:
		default:
			return &PinError{
				Pin: c.ports[n.Drivers[1]].Name,
				Err: errors.New("more than one output connected to net %v", c.netName(id)),
			}
		}

		d := &c.ports[n.Drivers[0]]
		if d.Bits == 0 {
			return &BuildError{Err: errors.New("no bit number set for output %v", d.Name)}
		}

		n.Bits = d.Bits

		for _, l := range n.Loads {
			p := &c.ports[l]

			if p.Bits != 0 && p.Bits != n.Bits {
				return &PinError{
					Pin: p.Name,
					Err: errors.New("width %d does not match net %v width %d", p.Bits, c.netName(id), n.Bits),
				}
			}

			p.Bits = n.Bits
		}
	}

	return nil
}

// Bits returns the width of the named output or 0.
func (c *Circuit) Bits(name string) int {
	for _, id := range c.Outputs {
		if p := &c.ports[id]; p.Name == name {
			return p.Bits
		}
	}

	return 0
}

func (c *Circuit) Traverse(f func(n *Node)) {
	for _, n := range c.Nodes {
		f(n)
	}
}

func (c *Circuit) String() string {
	return fmt.Sprintf("Circuit{%q nodes:%d nets:%d}", c.Name, len(c.Nodes), len(c.Nets))
}

func (c *Circuit) netName(id NetID) string {
	if n := c.nets[id].Name; n != "" {
		return n
	}

	return fmt.Sprintf("#%d", int(id))
}

func without(l []PortID, id PortID) []PortID {
	for i, x := range l {
		if x == id {
			return append(l[:i:i], l[i+1:]...)
		}
	}

	return l
}
