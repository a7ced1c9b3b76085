//
// garble.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"io"
	"sync"

	"github.com/markkurossi/yao/enc"
	"github.com/markkurossi/yao/env"
	"github.com/markkurossi/yao/ot"
	"golang.org/x/sync/errgroup"
)

// RowSize is the size of a garbled table row: the output label under
// two layers of special encryption.
const RowSize = 2*enc.Overhead + ot.LabelSize

// GarbledTable holds the four encrypted rows of a gate.
type GarbledTable [4][]byte

// Garbled is the public part of a garbled circuit: the circuit
// topology and the garbled tables of its gates.
type Garbled struct {
	Circuit         *Circuit
	Tables          []GarbledTable
	PointAndPermute bool
}

// NewGarbled creates a garbled circuit from the tables of the circuit
// gates.
func NewGarbled(c *Circuit, tables map[GateID]GarbledTable,
	pointAndPermute bool) (*Garbled, error) {

	if len(tables) != len(c.Gates) {
		return nil, fmt.Errorf("%w: got %d tables, expected %d",
			ErrMalformedTable, len(tables), len(c.Gates))
	}
	g := &Garbled{
		Circuit:         c,
		Tables:          make([]GarbledTable, len(c.Gates)),
		PointAndPermute: pointAndPermute,
	}
	for idx, gate := range c.Gates {
		table, ok := tables[gate.ID]
		if !ok {
			return nil, fmt.Errorf("%w: no table for gate %s",
				ErrMalformedTable, gate.ID)
		}
		for _, row := range table {
			if len(row) != RowSize {
				return nil, fmt.Errorf("%w: gate %s: invalid row size %d",
					ErrMalformedTable, gate.ID, len(row))
			}
		}
		g.Tables[idx] = table
	}
	return g, nil
}

// Table returns the garbled table of the gate.
func (g *Garbled) Table(id GateID) (GarbledTable, bool) {
	gate, ok := g.Circuit.Gate(id)
	if !ok {
		return GarbledTable{}, false
	}
	return g.Tables[gate.pos], true
}

// Garbling holds the secret wire labels of a garbled circuit and its
// public garbled tables. A garbling must be evaluated only once.
type Garbling struct {
	circuit *Circuit
	wires   []ot.Wire
	garbled *Garbled
}

// Garble garbles the circuit. Every wire gets two independent random
// labels and every gate a garbled table whose rows are permuted with
// a secret random permutation.
func Garble(c *Circuit, cfg *env.Config, opts ...Option) (*Garbling, error) {
	o := newOptions(opts)
	workers := o.getWorkers(cfg)
	rnd := cfg.GetRandom()
	if workers > 1 {
		rnd = &lockedReader{
			r: rnd,
		}
	}

	wires, err := newWireLabels(rnd, len(c.wires), o.pointAndPermute)
	if err != nil {
		return nil, err
	}

	tables := make([]GarbledTable, len(c.Gates))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, gate := range c.Gates {
		i, gate := i, gate
		g.Go(func() error {
			table, err := garbleGate(rnd, gate, wires, o.pointAndPermute)
			if err != nil {
				return err
			}
			tables[i] = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	cfg.GetLogger().V(1).Info("garbled circuit", "gates", len(c.Gates),
		"wires", len(c.wires), "workers", workers,
		"pointAndPermute", o.pointAndPermute)

	return &Garbling{
		circuit: c,
		wires:   wires,
		garbled: &Garbled{
			Circuit:         c,
			Tables:          tables,
			PointAndPermute: o.pointAndPermute,
		},
	}, nil
}

func newWireLabels(rnd io.Reader, n int, pointAndPermute bool) (
	[]ot.Wire, error) {

	wires := make([]ot.Wire, n)
	for i := range wires {
		l0, err := ot.NewLabel(rnd)
		if err != nil {
			return nil, err
		}
		var l1 ot.Label
		for {
			l1, err = ot.NewLabel(rnd)
			if err != nil {
				return nil, err
			}
			if !l1.Equal(l0) {
				break
			}
		}
		if pointAndPermute {
			var s [1]byte
			if _, err := io.ReadFull(rnd, s[:]); err != nil {
				return nil, err
			}
			ws := (s[0] & 0x80) != 0
			l0.SetS(ws)
			l1.SetS(!ws)
		}
		wires[i] = ot.Wire{
			L0: l0,
			L1: l1,
		}
	}
	return wires, nil
}

func garbleGate(rnd io.Reader, g *Gate, wires []ot.Wire,
	pointAndPermute bool) (GarbledTable, error) {

	var table GarbledTable
	var kaBuf, kbBuf, mBuf ot.LabelData

	in0 := wires[g.in0]
	in1 := wires[g.in1]
	out := wires[g.out]

	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			la := in0.Label(a)
			lb := in1.Label(b)
			lc := out.Label(g.Table.Eval(a, b))

			inner, err := enc.Encrypt(rnd, lb.Bytes(&kbBuf), lc.Bytes(&mBuf))
			if err != nil {
				return table, err
			}
			row, err := enc.Encrypt(rnd, la.Bytes(&kaBuf), inner)
			if err != nil {
				return table, err
			}
			if pointAndPermute {
				table[index(la.S(), lb.S())] = row
			} else {
				table[index(a, b)] = row
			}
		}
	}
	if !pointAndPermute {
		err := Shuffle(rnd, len(table), func(i, j int) {
			table[i], table[j] = table[j], table[i]
		})
		if err != nil {
			return table, err
		}
	}
	return table, nil
}

// Circuit returns the garbled circuit.
func (g *Garbling) Circuit() *Circuit {
	return g.circuit
}

// Garbled returns the public garbled circuit.
func (g *Garbling) Garbled() *Garbled {
	return g.garbled
}

// Wire returns the label pair of the wire.
func (g *Garbling) Wire(w Wire) (ot.Wire, bool) {
	idx, ok := g.circuit.wireIndex[w]
	if !ok {
		return ot.Wire{}, false
	}
	return g.wires[idx], true
}

// Wires returns the label pairs of all wires.
func (g *Garbling) Wires() map[Wire]ot.Wire {
	result := make(map[Wire]ot.Wire)
	for idx, w := range g.circuit.wires {
		result[w] = g.wires[idx]
	}
	return result
}

// Encode returns the labels encoding the input bits. The inputs may
// be any subset of the circuit input wires.
func (g *Garbling) Encode(inputs map[Wire]bool) (map[Wire]ot.Label, error) {
	result := make(map[Wire]ot.Label)
	for w, bit := range inputs {
		if !g.circuit.IsInput(w) {
			return nil, fmt.Errorf("%w: %s is not an input wire", ErrInput, w)
		}
		result[w] = LabelForBit(g.wires[g.circuit.wireIndex[w]], bit)
	}
	return result, nil
}

// OutputTable returns the label pairs of the output wires. The
// garbler discloses this table for decoding the evaluation result.
func (g *Garbling) OutputTable() map[Wire]ot.Wire {
	result := make(map[Wire]ot.Wire)
	for _, w := range g.circuit.outputs {
		result[w] = g.wires[g.circuit.wireIndex[w]]
	}
	return result
}

// Decode decodes the output labels to bits. The labels must cover all
// output wires.
func (g *Garbling) Decode(labels map[Wire]ot.Label) (map[Wire]bool, error) {
	for _, w := range g.circuit.outputs {
		if _, ok := labels[w]; !ok {
			return nil, fmt.Errorf("%w: no label for output wire %s",
				ErrUnknownLabel, w)
		}
	}
	return Decode(g.OutputTable(), labels)
}

type lockedReader struct {
	m sync.Mutex
	r io.Reader
}

func (r *lockedReader) Read(p []byte) (int, error) {
	r.m.Lock()
	defer r.m.Unlock()
	return r.r.Read(p)
}
