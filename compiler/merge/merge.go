package merge

import (
	"context"

	"tlog.app/go/tlog"

	"github.com/slowlang/hdl/compiler/ir"
	"github.com/slowlang/hdl/compiler/set"
)

type (
	merger struct {
		c *ir.Circuit

		nodes    []*ir.Node
		obsolete set.Bits[ir.NetID]
	}
)

// Merge folds expression nodes into the single node consuming their output.
// The pair search restarts from the beginning after every merge,
// which fixes operand and input order for a given node order.
func Merge(ctx context.Context, c *ir.Circuit) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "merge operations", "circuit", c.Name, "nodes", len(c.Nodes))
	defer tr.Finish()

	m := &merger{
		c:     c,
		nodes: append([]*ir.Node{}, c.Nodes...),
	}

	merges := 0

	for {
		h, i, ok := m.pair()
		if !ok {
			break
		}

		m.nodes[h] = m.merge(m.nodes[h], m.nodes[i])
		m.nodes = append(m.nodes[:i], m.nodes[i+1:]...)

		merges++
	}

	c.Nodes = m.nodes
	c.RemoveNets(m.obsolete)

	tr.Printw("merged", "merges", merges, "nodes", len(c.Nodes), "nets_removed", m.obsolete)
}

func (m *merger) pair() (h, i int, ok bool) {
	for h, host := range m.nodes {
		for i, inc := range m.nodes {
			if h != i && m.possible(host, inc) {
				return h, i, true
			}
		}
	}

	return 0, 0, false
}

// possible reports whether inc can be inlined into host.
func (m *merger) possible(host, inc *ir.Node) bool {
	c := m.c

	if !host.IsExpression() || !inc.IsExpression() {
		return false
	}

	if len(host.Outputs) != 1 || len(inc.Outputs) != 1 {
		return false
	}

	out := c.Port(inc.Outputs[0])
	if out.Net == ir.NoNet {
		return false
	}

	n := c.Net(out.Net)
	if len(n.Loads) != 1 || !n.NeedsVariable() || n.UserNamed() {
		return false
	}

	load := n.Loads[0]

	if !contains(host.Inputs, load) {
		return false
	}

	if c.Port(load).Bits != out.Bits {
		return false
	}

	return host.Expr.Count(out.Net) == 1
}

func (m *merger) merge(host, inc *ir.Node) *ir.Node {
	c := m.c

	out := host.Outputs[0]
	obsolete := c.Port(inc.Outputs[0]).Net

	n := &ir.Node{
		Kind:    ir.Expression,
		Name:    ir.MergedName,
		Attrs:   ir.Attrs{Bits: c.Port(out).Bits},
		Outputs: []ir.PortID{out},
		Expr:    host.Expr.Replace(obsolete, inc.Expr),
	}

	var seen set.Bits[ir.NetID]

	add := func(id ir.PortID) {
		net := c.Port(id).Net

		switch {
		case net == ir.NoNet:
		case net == obsolete, seen.Has(net):
			c.Detach(id)
			return
		default:
			seen.Add(net)
		}

		n.Inputs = append(n.Inputs, id)
	}

	for _, id := range host.Inputs {
		add(id)
	}

	for _, id := range inc.Inputs {
		add(id)
	}

	c.Detach(inc.Outputs[0])
	m.obsolete.Add(obsolete)

	tlog.V("merge").Printw("merge", "host", host.Name, "include", inc.Name, "net", obsolete, "inputs", n.Inputs)

	return n
}

func contains(l []ir.PortID, id ir.PortID) bool {
	for _, x := range l {
		if x == id {
			return true
		}
	}

	return false
}
