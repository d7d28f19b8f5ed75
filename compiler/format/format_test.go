package format

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/hdl/compiler/ir"
)

type failWriter struct {
	bytes.Buffer

	left int
}

func (w *failWriter) Write(p []byte) (int, error) {
	if w.left == 0 {
		return 0, errors.New("sink closed")
	}

	w.left--

	return w.Buffer.Write(p)
}

func sample() *ir.Circuit {
	c := ir.New("top")

	a := c.NewNet("")
	c.AddInput("A", 2, "", a)
	c.Net(a).SetIsInput("A")
	c.Net(a).Bits = 2

	k := c.NewNet("k")
	c.Net(k).Bits = 2

	y := c.NewNet("")
	c.Net(y).Bits = 2

	cn := &ir.Node{Kind: ir.Expression, Name: "Const"}
	c.AddNodeOutput(cn, "out", 2, k)
	cn.Expr = ir.Const(3, 2)

	x := &ir.Node{Kind: ir.Expression, Name: "XNOr"}
	c.AddNodeInput(x, "In_1", 2, a)
	c.AddNodeInput(x, "In_2", 2, k)
	c.AddNodeOutput(x, "out", 2, y)
	x.Expr = ir.Not(ir.Xor(ir.Var(a), ir.Var(k)))

	bb := &ir.Node{Kind: ir.Element, Name: "Box"}
	c.AddNodeInput(bb, "en", 1, ir.NoNet)
	c.AddNodeOutput(bb, "q", 2, ir.NoNet)

	c.Nodes = []*ir.Node{cn, x, bb}

	c.AddOutput("Y", 2, "", y)
	c.AddOutput("K", 2, "", k)
	c.AddOutput("Aident", 2, "", a)

	c.Net(y).SetIsOutput("Y", true)
	c.NameNets(&ir.SimpleNaming{})

	return c
}

const sampleText = `circuit top
  in(A:2)
  out(Y:2, K:2, Aident:2)
  sig(k:2)

  node Const
    in()
    out(out:2 is k:2)
    k:2 := 3:2
  node XNOr
    in(In_1:2 is A:2, In_2:2 is k:2)
    out(out:2 is Y:2)
    Y:2 := NOT (A:2 XOR k:2)
  node Box
    in(en:1 is not used)
    out(q:2 is not used)

  K:2 := k:2
  Aident:2 := A:2
end circuit top
`

func TestAppend(t *testing.T) {
	c := sample()

	assert.Equal(t, sampleText, string(Append(nil, c)))
	assert.Equal(t, "prefix\n"+sampleText, string(Append([]byte("prefix\n"), c)), "appends")
}

func TestIdempotent(t *testing.T) {
	c := sample()

	assert.Equal(t, string(Append(nil, c)), string(Append(nil, c)))
}

func TestFprint(t *testing.T) {
	var buf bytes.Buffer

	err := Fprint(&buf, sample())
	require.NoError(t, err)

	assert.Equal(t, sampleText, buf.String())
}

func TestFprintError(t *testing.T) {
	w := &failWriter{left: 3}

	err := Fprint(w, sample())
	assert.EqualError(t, err, "sink closed")

	assert.Equal(t, "circuit top\n  in(A:2)\n  out(Y:2, K:2, Aident:2)\n", w.String(), "flushed lines stay")
}

func TestEmptyCircuit(t *testing.T) {
	assert.Equal(t, "circuit e\n  in()\n  out()\n  sig()\n\n\nend circuit e\n", string(Append(nil, ir.New("e"))))
}

func TestAppendExpr(t *testing.T) {
	c := ir.New("x")

	a := c.NewNet("a")
	b := c.NewNet("b")
	c.Net(a).Bits = 1
	c.Net(b).Bits = 1

	for _, tc := range []struct {
		e   *ir.Expr
		exp string
	}{
		{ir.Var(a), "a:1"},
		{ir.Const(0, 8), "0:8"},
		{ir.Not(ir.Var(a)), "NOT a:1"},
		{ir.Not(ir.Not(ir.Var(a))), "NOT NOT a:1"},
		{ir.Or(ir.And(ir.Var(a), ir.Var(b)), ir.Not(ir.Xor(ir.Var(b), ir.Const(1, 1)))), "((a:1 AND b:1) OR NOT (b:1 XOR 1:1))"},
	} {
		assert.Equal(t, tc.exp, string(AppendExpr(nil, c, tc.e)))
	}
}
