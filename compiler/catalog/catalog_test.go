package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/hdl/compiler/build"
	"github.com/slowlang/hdl/compiler/catalog"
	"github.com/slowlang/hdl/compiler/ir"
	"github.com/slowlang/hdl/compiler/netlist"
)

func portNames(c *ir.Circuit, l []ir.PortID) (r []string) {
	for _, id := range l {
		r = append(r, c.Port(id).Name)
	}

	return r
}

func TestGateShapes(t *testing.T) {
	nl := netlist.New("gates.dig").
		In("A", 4, "a").
		In("B", 4, "b").
		In("C", 4, "c").
		Add("NAnd", ir.Attrs{Inputs: 3, Bits: 4}, "a", "b", "c", "y").
		Add("D_FF", ir.Attrs{Bits: 4}, "y", "clk", "q", "nq").
		Add("Const", ir.Attrs{Value: 1}, "clk").
		Out("Q", 4, "q").
		Out("NQ", 4, "nq").
		Netlist()

	c, err := build.Build(context.Background(), "main", nl, catalog.Default())
	require.NoError(t, err)

	require.Len(t, c.Nodes, 3)

	nand, dff, cnst := c.Nodes[0], c.Nodes[1], c.Nodes[2]

	assert.Equal(t, ir.Expression, nand.Kind)
	assert.Equal(t, []string{"In_1", "In_2", "In_3"}, portNames(c, nand.Inputs))
	assert.Equal(t, []string{"out"}, portNames(c, nand.Outputs))
	assert.Equal(t, 4, c.Port(nand.Outputs[0]).Bits)

	ins := make([]*ir.Expr, 3)
	for i, id := range nand.Inputs {
		ins[i] = ir.Var(c.Port(id).Net)
	}

	assert.Equal(t, ir.Not(ir.And(ins...)), nand.Expr)

	assert.Equal(t, ir.Element, dff.Kind)
	assert.False(t, dff.IsExpression())
	assert.Equal(t, []string{"D", "C"}, portNames(c, dff.Inputs))
	assert.Equal(t, []string{"Q", "~Q"}, portNames(c, dff.Outputs))
	assert.Equal(t, 1, c.Port(dff.Inputs[1]).Bits)

	assert.Equal(t, ir.Const(1, 1), cnst.Expr)
	assert.Empty(t, cnst.Inputs)
}

func TestCreateNodeErrors(t *testing.T) {
	ctx := context.Background()
	cat := catalog.Default()

	t.Run("inverted_terminal", func(t *testing.T) {
		nl := netlist.New("x.dig").
			In("A", 1, "a").
			Add("Not", ir.Attrs{Inverted: []string{"In_1"}}, "a", "y").
			Netlist()

		_, err := build.Build(ctx, "main", nl, cat)
		assert.ErrorContains(t, err, "inverted input In_1 is not an input of Not")
	})

	t.Run("open_gate_input", func(t *testing.T) {
		nl := netlist.New("x.dig").
			In("A", 1, "a").
			Add("And", ir.Attrs{}, "a", "", "y").
			Netlist()

		_, err := build.Build(ctx, "main", nl, cat)

		var pe *ir.PinError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "In_2", pe.Pin)
	})

	t.Run("open_box_input", func(t *testing.T) {
		nl := netlist.New("x.dig").
			Clock("C", "clk").
			Add("D_FF", ir.Attrs{}, "", "clk", "q", "").
			Out("Q", 1, "q").
			Netlist()

		_, err := build.Build(ctx, "main", nl, cat)
		assert.NoError(t, err)
	})
}

func TestWith(t *testing.T) {
	box := &catalog.Primitive{
		Name: "Box",
		Inputs: func(a ir.Attrs) []catalog.Terminal {
			return []catalog.Terminal{{Name: "a", Bits: a.Bits}}
		},
		Outputs: func(a ir.Attrs) []catalog.Terminal {
			return []catalog.Terminal{{Name: "b", Bits: a.Bits}}
		},
	}

	base := catalog.Default()
	ext := base.With(box)

	_, ok := base.Lookup("Box")
	assert.False(t, ok, "base untouched")

	_, ok = ext.Lookup("Box")
	assert.True(t, ok)

	_, ok = ext.Lookup("And")
	assert.True(t, ok)
}

func TestInverterWithoutNot(t *testing.T) {
	cat := catalog.New()

	c := ir.New("main")
	in := c.NewNet("a")
	out := c.NewNet("")

	n := cat.Inverter(c, 3, in, out)

	assert.Equal(t, "Not", n.Name)
	assert.Equal(t, ir.Not(ir.Var(in)), n.Expr)
	assert.Equal(t, []string{"in"}, portNames(c, n.Inputs))
	assert.Equal(t, 3, c.Port(n.Outputs[0]).Bits)
}
