//
// eval.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"errors"
	"fmt"

	"github.com/markkurossi/yao/enc"
	"github.com/markkurossi/yao/ot"
	"golang.org/x/sync/errgroup"
)

// ErrMalformedTable signals a garbled table that does not decrypt to
// exactly one output label.
var ErrMalformedTable = errors.New("circuit: malformed garbled table")

// Eval evaluates the garbled circuit with the input labels. The inputs
// must assign exactly one label for each input wire. The function
// returns the labels of the output wires. Gates of the same level are
// evaluated in parallel.
func (g *Garbled) Eval(inputs map[Wire]ot.Label, opts ...Option) (
	map[Wire]ot.Label, error) {

	c := g.Circuit
	if err := c.checkInputs(len(inputs), func(w Wire) bool {
		_, ok := inputs[w]
		return ok
	}); err != nil {
		return nil, err
	}
	if len(g.Tables) != len(c.Gates) {
		return nil, fmt.Errorf("%w: got %d tables, expected %d",
			ErrMalformedTable, len(g.Tables), len(c.Gates))
	}

	o := newOptions(opts)
	workers := o.getWorkers(nil)

	labels := make([]ot.Label, len(c.wires))
	for w, l := range inputs {
		labels[c.wireIndex[w]] = l
	}
	for _, level := range c.levels {
		var eg errgroup.Group
		eg.SetLimit(workers)
		for _, gate := range level {
			gate := gate
			eg.Go(func() error {
				l, err := g.evalGate(gate, labels[gate.in0], labels[gate.in1])
				if err != nil {
					return err
				}
				labels[gate.out] = l
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	result := make(map[Wire]ot.Label)
	for _, w := range c.outputs {
		result[w] = labels[c.wireIndex[w]]
	}
	return result, nil
}

func (g *Garbled) evalGate(gate *Gate, la, lb ot.Label) (ot.Label, error) {
	table := g.Tables[gate.pos]

	if g.PointAndPermute {
		l, ok, err := decryptRow(table[index(la.S(), lb.S())], la, lb)
		if err != nil {
			return l, fmt.Errorf("gate %s: %w", gate.ID, err)
		}
		if !ok {
			return l, fmt.Errorf("%w: gate %s: row does not decrypt",
				ErrMalformedTable, gate.ID)
		}
		return l, nil
	}

	var result ot.Label
	var count int
	for _, row := range table {
		l, ok, err := decryptRow(row, la, lb)
		if err != nil {
			return result, fmt.Errorf("gate %s: %w", gate.ID, err)
		}
		if ok {
			result = l
			count++
		}
	}
	if count != 1 {
		return result, fmt.Errorf("%w: gate %s: %d rows decrypt",
			ErrMalformedTable, gate.ID, count)
	}
	return result, nil
}

func decryptRow(row []byte, la, lb ot.Label) (ot.Label, bool, error) {
	var result ot.Label
	var kaBuf, kbBuf ot.LabelData

	if len(row) != RowSize {
		return result, false, fmt.Errorf("%w: invalid row size %d",
			ErrMalformedTable, len(row))
	}
	inner, err := enc.Decrypt(la.Bytes(&kaBuf), row)
	if err != nil {
		if errors.Is(err, enc.ErrDecrypt) {
			return result, false, nil
		}
		return result, false, err
	}
	m, err := enc.Decrypt(lb.Bytes(&kbBuf), inner)
	if err != nil {
		if errors.Is(err, enc.ErrDecrypt) {
			return result, false, nil
		}
		return result, false, err
	}
	if err := result.SetBytes(m); err != nil {
		return result, false, fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}
	return result, true, nil
}
