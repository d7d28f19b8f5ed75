package ir

type (
	Op int

	// Expr is a closed expression tree over nets.
	// Which fields are meaningful depends on Op.
	Expr struct {
		Op Op

		Net NetID // OpVar

		Value int64 // OpConst
		Bits  int   // OpConst

		Args []*Expr // OpNot has exactly one
	}
)

const (
	OpVar Op = iota
	OpConst
	OpNot
	OpAnd
	OpOr
	OpXor
)

func Var(n NetID) *Expr {
	return &Expr{Op: OpVar, Net: n}
}

func Const(v int64, bits int) *Expr {
	return &Expr{Op: OpConst, Value: v, Bits: bits}
}

func Not(x *Expr) *Expr {
	return &Expr{Op: OpNot, Args: []*Expr{x}}
}

func Operate(op Op, args ...*Expr) *Expr {
	switch op {
	case OpAnd, OpOr, OpXor:
	default:
		panic(op)
	}

	return &Expr{Op: op, Args: args}
}

func And(args ...*Expr) *Expr { return Operate(OpAnd, args...) }
func Or(args ...*Expr) *Expr  { return Operate(OpOr, args...) }
func Xor(args ...*Expr) *Expr { return Operate(OpXor, args...) }

func (op Op) String() string {
	switch op {
	case OpVar:
		return "VAR"
	case OpConst:
		return "CONST"
	case OpNot:
		return "NOT"
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpXor:
		return "XOR"
	default:
		return "OP?"
	}
}

func (e *Expr) Copy() *Expr {
	if e == nil {
		return nil
	}

	c := *e

	if e.Args != nil {
		c.Args = make([]*Expr, len(e.Args))

		for i, a := range e.Args {
			c.Args[i] = a.Copy()
		}
	}

	return &c
}

// Replace returns a copy of e with every Var(net) substituted by a copy of with.
func (e *Expr) Replace(net NetID, with *Expr) *Expr {
	switch e.Op {
	case OpVar:
		if e.Net == net {
			return with.Copy()
		}

		return Var(e.Net)
	case OpConst:
		return Const(e.Value, e.Bits)
	case OpNot, OpAnd, OpOr, OpXor:
		c := &Expr{Op: e.Op, Args: make([]*Expr, len(e.Args))}

		for i, a := range e.Args {
			c.Args[i] = a.Replace(net, with)
		}

		return c
	default:
		panic(e.Op)
	}
}

// Retarget points the k-th Var(from) leaf, in left-to-right order, to net to.
// It reports whether such a leaf was found.
func (e *Expr) Retarget(from, to NetID, k int) bool {
	seen := 0

	var walk func(x *Expr) bool
	walk = func(x *Expr) bool {
		switch x.Op {
		case OpVar:
			if x.Net != from {
				return false
			}

			if seen == k {
				x.Net = to
				return true
			}

			seen++

			return false
		case OpConst:
			return false
		case OpNot, OpAnd, OpOr, OpXor:
			for _, a := range x.Args {
				if walk(a) {
					return true
				}
			}

			return false
		default:
			panic(x.Op)
		}
	}

	return walk(e)
}

// Count returns the number of Var(net) leaves.
func (e *Expr) Count(net NetID) (n int) {
	e.Vars(func(id NetID) {
		if id == net {
			n++
		}
	})

	return n
}

// Vars calls f for every Var leaf in left-to-right order.
func (e *Expr) Vars(f func(NetID)) {
	switch e.Op {
	case OpVar:
		f(e.Net)
	case OpConst:
	case OpNot, OpAnd, OpOr, OpXor:
		for _, a := range e.Args {
			a.Vars(f)
		}
	default:
		panic(e.Op)
	}
}
