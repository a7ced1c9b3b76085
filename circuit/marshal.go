//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/markkurossi/yao/ot"
)

// GarbledFile is the garbled circuit file format. It extends the
// circuit description with the garbled tables, the selected input
// labels, and, for debugging, all wire label pairs.
type GarbledFile struct {
	Gates           map[string]*GarbledGate `json:"gates"`
	WireLabels      map[string][2]string    `json:"wire_labels,omitempty"`
	Inputs          map[string]string       `json:"inputs,omitempty"`
	PointAndPermute bool                    `json:"point_and_permute,omitempty"`
}

// GarbledGate describes a garbled gate.
type GarbledGate struct {
	GateDesc
	GarbleTable []string `json:"garble_table"`
}

// Marshal creates the garbled file of the garbling. If inputs is not
// nil, the file contains the labels of the input bits. If debug is
// true, the file contains the label pairs of all wires.
func (g *Garbling) Marshal(inputs map[Wire]bool, debug bool) (
	*GarbledFile, error) {

	f := &GarbledFile{
		Gates:           make(map[string]*GarbledGate),
		PointAndPermute: g.garbled.PointAndPermute,
	}
	for idx, gate := range g.circuit.Gates {
		gg := &GarbledGate{
			GateDesc: *gate.describe(),
		}
		for _, row := range g.garbled.Tables[idx] {
			gg.GarbleTable = append(gg.GarbleTable, hex.EncodeToString(row))
		}
		f.Gates[string(gate.ID)] = gg
	}
	if debug {
		f.WireLabels = make(map[string][2]string)
		for w, pair := range g.Wires() {
			f.WireLabels[string(w)] = [2]string{
				pair.L0.String(), pair.L1.String(),
			}
		}
	}
	if inputs != nil {
		if err := g.circuit.checkInputs(len(inputs), func(w Wire) bool {
			_, ok := inputs[w]
			return ok
		}); err != nil {
			return nil, err
		}
		labels, err := g.Encode(inputs)
		if err != nil {
			return nil, err
		}
		f.Inputs = make(map[string]string)
		for w, l := range labels {
			f.Inputs[string(w)] = l.String()
		}
	}
	return f, nil
}

// Write writes the garbled file as indented JSON.
func (f *GarbledFile) Write(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "    ")
	return enc.Encode(f)
}

// ReadGarbledFile reads the garbled file.
func ReadGarbledFile(in io.Reader) (*GarbledFile, error) {
	f := new(GarbledFile)
	if err := json.NewDecoder(in).Decode(f); err != nil {
		return nil, err
	}
	return f, nil
}

// LoadGarbledFile loads the named garbled file.
func LoadGarbledFile(name string) (*GarbledFile, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	f, err := ReadGarbledFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// Garbled creates the garbled circuit from the file.
func (f *GarbledFile) Garbled() (*Garbled, error) {
	desc := &Description{
		Gates: make(map[string]*GateDesc),
	}
	tables := make(map[GateID]GarbledTable)
	for id, gg := range f.Gates {
		if gg == nil {
			return nil, fmt.Errorf("%w: %s: empty gate", ErrInvalidGate, id)
		}
		gd := gg.GateDesc
		desc.Gates[id] = &gd

		var table GarbledTable
		if len(gg.GarbleTable) != len(table) {
			return nil, fmt.Errorf("%w: gate %s: expected %d rows, got %d",
				ErrMalformedTable, id, len(table), len(gg.GarbleTable))
		}
		for i, row := range gg.GarbleTable {
			data, err := hex.DecodeString(row)
			if err != nil {
				return nil, fmt.Errorf("%w: gate %s: %v",
					ErrMalformedTable, id, err)
			}
			table[i] = data
		}
		tables[GateID(id)] = table
	}
	c, err := New(desc)
	if err != nil {
		return nil, err
	}
	return NewGarbled(c, tables, f.PointAndPermute)
}

// InputLabels returns the input labels of the file.
func (f *GarbledFile) InputLabels() (map[Wire]ot.Label, error) {
	if f.Inputs == nil {
		return nil, fmt.Errorf("%w: no inputs section", ErrInput)
	}
	result := make(map[Wire]ot.Label)
	for w, s := range f.Inputs {
		l, err := ot.ParseLabel(s)
		if err != nil {
			return nil, fmt.Errorf("%w: wire %s: %v", ErrInput, w, err)
		}
		result[Wire(w)] = l
	}
	return result, nil
}

// LabelTable returns the debug wire label pairs of the file.
func (f *GarbledFile) LabelTable() (map[Wire]ot.Wire, error) {
	if f.WireLabels == nil {
		return nil, fmt.Errorf("%w: no wire_labels section", ErrUnknownLabel)
	}
	result := make(map[Wire]ot.Wire)
	for w, pair := range f.WireLabels {
		l0, err := ot.ParseLabel(pair[0])
		if err != nil {
			return nil, fmt.Errorf("wire %s: %w", w, err)
		}
		l1, err := ot.ParseLabel(pair[1])
		if err != nil {
			return nil, fmt.Errorf("wire %s: %w", w, err)
		}
		result[Wire(w)] = ot.Wire{
			L0: l0,
			L1: l1,
		}
	}
	return result, nil
}
