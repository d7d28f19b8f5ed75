package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slowlang/hdl/compiler/ir"
)

func TestNewNamer(t *testing.T) {
	assert.Equal(t, &ir.SimpleNaming{}, newNamer("simple", "x"))
	assert.Equal(t, &ir.LabelNaming{Prefix: "w"}, newNamer("label", "w"))

	a, b := newNamer("simple", ""), newNamer("simple", "")

	assert.Equal(t, "s0", a.Name(nil))
	assert.Equal(t, "s1", a.Name(nil))
	assert.Equal(t, "s0", b.Name(nil), "fresh counter per file")
}
