package set

import (
	"math/bits"

	"tlog.app/go/tlog/tlwire"
)

type (
	Key interface {
		~int | ~int64
	}

	// Bits is a dense set of non-negative handles.
	// Zero value is an empty set.
	Bits[K Key] struct {
		b []uint64
	}
)

func MakeBits[K Key](keys ...K) Bits[K] {
	var s Bits[K]

	for _, k := range keys {
		s.Add(k)
	}

	return s
}

func (s *Bits[K]) Add(k K) {
	i, j := ij(k)

	for i >= len(s.b) {
		s.b = append(s.b, 0)
	}

	s.b[i] |= 1 << j
}

func (s Bits[K]) Has(k K) bool {
	if k < 0 {
		return false
	}

	i, j := ij(k)

	if i >= len(s.b) {
		return false
	}

	return s.b[i]&(1<<j) != 0
}

func (s Bits[K]) Len() (n int) {
	for _, w := range s.b {
		n += bits.OnesCount64(w)
	}

	return n
}

// Range calls f in ascending order until f returns false.
func (s Bits[K]) Range(f func(k K) bool) {
	for i, w := range s.b {
		for w != 0 {
			j := bits.TrailingZeros64(w)
			w &^= 1 << j

			if !f(K(i*64 + j)) {
				return
			}
		}
	}
}

func (s Bits[K]) TlogAppend(b []byte) []byte {
	var e tlwire.LowEncoder

	if s.b == nil {
		return e.AppendNil(b)
	}

	b = e.AppendTag(b, tlwire.Array, -1)

	s.Range(func(k K) bool {
		b = e.AppendInt(b, int(k))

		return true
	})

	return e.AppendBreak(b)
}

func ij[K Key](k K) (i, j int) {
	return int(k) / 64, int(k) % 64
}
