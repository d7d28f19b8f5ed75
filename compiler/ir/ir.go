package ir

import (
	"tlog.app/go/tlog/tlwire"
)

type (
	NetID  int
	PortID int

	Dir      int
	NodeKind int

	// Attrs is the subset of element attributes the model cares about.
	Attrs struct {
		Label     string
		Bits      int
		Inputs    int
		Value     int64
		PinNumber string

		// Inverted lists input terminal names to be logically inverted.
		Inverted []string
	}

	Net struct {
		Name string
		Bits int

		Drivers []PortID
		Loads   []PortID

		userNamed bool
		isInput   bool
		isOutput  bool
	}

	Port struct {
		Name      string
		Dir       Dir
		Bits      int
		PinNumber string

		Net NetID
	}

	Node struct {
		Kind  NodeKind
		Name  string
		Attrs Attrs

		Inputs  []PortID
		Outputs []PortID

		// Expr is the value of the single output of an Expression node.
		Expr *Expr
	}
)

const (
	NoNet  NetID  = -1
	NoPort PortID = -1
)

const (
	In Dir = iota
	Out
)

const (
	Element NodeKind = iota
	Expression
)

const MergedName = "merged expression"

func (a Attrs) IsInverted(name string) bool {
	for _, n := range a.Inverted {
		if n == name {
			return true
		}
	}

	return false
}

func (d Dir) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	default:
		return "dir?"
	}
}

func (k NodeKind) String() string {
	switch k {
	case Element:
		return "element"
	case Expression:
		return "expression"
	default:
		return "kind?"
	}
}

func (n *Net) IsInput() bool  { return n.isInput }
func (n *Net) IsOutput() bool { return n.isOutput }

func (n *Net) UserNamed() bool { return n.userNamed }

// NeedsVariable reports whether the net is printed as a standalone signal.
// Boundary nets are named by the circuit ports instead.
func (n *Net) NeedsVariable() bool {
	return !n.isInput && !n.isOutput
}

func (n *Net) Dead() bool {
	return len(n.Drivers) == 0 && len(n.Loads) == 0
}

func (n *Net) SetIsInput(name string) {
	n.Name = name
	n.isInput = true
}

// SetIsOutput binds the net to the circuit output name.
// The net becomes the output itself only if the output is its single load.
func (n *Net) SetIsOutput(name string, single bool) {
	if !single {
		return
	}

	n.Name = name
	n.isOutput = true
}

func (n *Node) IsExpression() bool {
	return n.Kind == Expression && n.Expr != nil
}

func (id NetID) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	if id == NoNet {
		return e.AppendNil(b)
	}

	return e.AppendFormat(b, "n%d", int(id))
}

func (id PortID) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	if id == NoPort {
		return e.AppendNil(b)
	}

	return e.AppendFormat(b, "p%d", int(id))
}
