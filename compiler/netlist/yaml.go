package netlist

import (
	"bytes"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
	"tlog.app/go/errors"

	"github.com/slowlang/hdl/compiler/ir"
)

type (
	// File is the YAML form of a resolved netlist.
	//
	//	origin: comb.dig
	//	elements:
	//	  - {kind: In, label: A, pins: [a]}
	//	  - {kind: And, inputs: 2, inverted: [In_2], pins: [a, b, y]}
	//	labels:
	//	  y: [Y_temp]
	File struct {
		Origin   string              `yaml:"origin"`
		Elements []ElementDoc        `yaml:"elements"`
		Labels   map[string][]string `yaml:"labels,omitempty"`
	}

	ElementDoc struct {
		Kind      string   `yaml:"kind"`
		Label     string   `yaml:"label,omitempty"`
		Bits      int      `yaml:"bits,omitempty"`
		Inputs    int      `yaml:"inputs,omitempty"`
		Value     int64    `yaml:"value,omitempty"`
		PinNumber string   `yaml:"pin,omitempty"`
		Inverted  []string `yaml:"inverted,omitempty"`
		Pins      []string `yaml:"pins"`
	}
)

func Load(name string) (*Netlist, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	nl, err := Decode(data)
	if err != nil {
		return nil, errors.Wrap(err, "%v", name)
	}

	if nl.origin == "" {
		nl.origin = name
	}

	return nl, nil
}

func Decode(data []byte) (*Netlist, error) {
	var f File

	d := yaml.NewDecoder(bytes.NewReader(data))
	d.KnownFields(true)

	err := d.Decode(&f)
	if err != nil {
		return nil, errors.Wrap(err, "decode yaml")
	}

	return f.Netlist()
}

func (f *File) Netlist() (*Netlist, error) {
	b := New(f.Origin)

	for i, e := range f.Elements {
		if e.Kind == "" {
			return nil, errors.New("element %d: no kind", i)
		}

		b.Add(e.Kind, ir.Attrs{
			Label:     e.Label,
			Bits:      e.Bits,
			Inputs:    e.Inputs,
			Value:     e.Value,
			PinNumber: e.PinNumber,
			Inverted:  e.Inverted,
		}, e.Pins...)
	}

	wires := make([]string, 0, len(f.Labels))

	for w := range f.Labels {
		wires = append(wires, w)
	}

	sort.Strings(wires)

	for _, w := range wires {
		b.Label(w, f.Labels[w]...)
	}

	return b.Netlist(), nil
}
