package catalog

import (
	"strconv"

	"github.com/slowlang/hdl/compiler/ir"
)

var (
	notPrim = &Primitive{
		Name:    "Not",
		Inputs:  single("in"),
		Outputs: single("out"),
		Expr: func(in []*ir.Expr, _ ir.Attrs) *ir.Expr {
			return ir.Not(in[0])
		},
	}

	constPrim = &Primitive{
		Name:    "Const",
		Inputs:  func(ir.Attrs) []Terminal { return nil },
		Outputs: single("out"),
		Expr: func(_ []*ir.Expr, a ir.Attrs) *ir.Expr {
			return ir.Const(a.Value, a.Bits)
		},
	}

	dffPrim = &Primitive{
		Name: "D_FF",
		Inputs: func(a ir.Attrs) []Terminal {
			return []Terminal{{Name: "D", Bits: a.Bits}, {Name: "C", Bits: 1}}
		},
		Outputs: func(a ir.Attrs) []Terminal {
			return []Terminal{{Name: "Q", Bits: a.Bits}, {Name: "~Q", Bits: a.Bits}}
		},
	}
)

// gate is an n-input bitwise gate with inputs In_1..In_n and output out.
func gate(name string, op ir.Op, invert bool) *Primitive {
	return &Primitive{
		Name: name,
		Inputs: func(a ir.Attrs) []Terminal {
			l := make([]Terminal, a.Inputs)

			for i := range l {
				l[i] = Terminal{Name: "In_" + strconv.Itoa(i+1), Bits: a.Bits}
			}

			return l
		},
		Outputs: single("out"),
		Expr: func(in []*ir.Expr, _ ir.Attrs) *ir.Expr {
			x := ir.Operate(op, in...)

			if invert {
				return ir.Not(x)
			}

			return x
		},
	}
}

func single(name string) func(ir.Attrs) []Terminal {
	return func(a ir.Attrs) []Terminal {
		return []Terminal{{Name: name, Bits: a.Bits}}
	}
}
