package netlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/hdl/compiler/build"
	"github.com/slowlang/hdl/compiler/ir"
)

func TestTunnelsJoinWires(t *testing.T) {
	nl := New("t.dig").
		Add("Not", ir.Attrs{}, "a", "x").
		Tunnel("bus", "x").
		Tunnel("bus", "y").
		Add("Not", ir.Attrs{}, "y", "z").
		Add("Not", ir.Attrs{}, "z", "").
		Label("z", "zz").
		Netlist()

	el := nl.Elements()
	require.Len(t, el, 5)

	kx, ok := nl.NetOf(el[0].Pins[1].Pos)
	require.True(t, ok)

	ky, ok := nl.NetOf(el[3].Pins[0].Pos)
	require.True(t, ok)

	assert.Equal(t, kx, ky)
	assert.Equal(t, []string{"bus"}, nl.Labels(kx))

	kz, _ := nl.NetOf(el[3].Pins[1].Pos)
	assert.Equal(t, []string{"zz"}, nl.Labels(kz))

	_, ok = nl.NetOf(el[4].Pins[1].Pos)
	assert.False(t, ok, "unconnected pin")

	_, ok = nl.NetOf(build.Pos{X: 1000})
	assert.False(t, ok)
}

func TestDecode(t *testing.T) {
	nl, err := Decode([]byte(`
origin: dec.dig
elements:
  - {kind: In, label: A, bits: 2, pin: "P1", pins: [a]}
  - {kind: And, bits: 2, inputs: 3, inverted: [In_3], pins: [a, a, a, y]}
  - {kind: Out, label: Y, bits: 2, pins: [y]}
labels:
  y: [res, res]
`))
	require.NoError(t, err)

	assert.Equal(t, "dec.dig", nl.Origin())

	el := nl.Elements()
	require.Len(t, el, 3)

	assert.Equal(t, "In", el[0].Name)
	assert.Equal(t, "P1", el[0].Attrs.PinNumber)
	assert.Equal(t, 3, el[1].Attrs.Inputs)
	assert.Equal(t, []string{"In_3"}, el[1].Attrs.Inverted)

	k, _ := nl.NetOf(el[2].Pins[0].Pos)
	assert.Equal(t, []string{"res"}, nl.Labels(k))
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte("elements:\n  - {kind: In, colour: red}\n"))
	assert.Error(t, err, "unknown field")

	_, err = Decode([]byte("elements:\n  - {pins: [a]}\n"))
	assert.ErrorContains(t, err, "no kind")

	_, err = Load("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}
