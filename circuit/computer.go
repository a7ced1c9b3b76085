//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"

	"github.com/markkurossi/yao/ot"
)

// PlainEvaluator evaluates circuits with plaintext bits.
type PlainEvaluator interface {
	Eval(inputs map[Wire]bool) (map[Wire]bool, error)
}

// GarbledEvaluator evaluates garbled circuits with wire labels.
type GarbledEvaluator interface {
	Eval(inputs map[Wire]ot.Label, opts ...Option) (map[Wire]ot.Label, error)
}

var (
	_ PlainEvaluator   = &Circuit{}
	_ GarbledEvaluator = &Garbled{}
)

// Eval evaluates the circuit with the input bits. The inputs must
// assign exactly one bit for each input wire. The function returns
// the values of the output wires.
func (c *Circuit) Eval(inputs map[Wire]bool) (map[Wire]bool, error) {
	values, err := c.Compute(inputs)
	if err != nil {
		return nil, err
	}
	result := make(map[Wire]bool)
	for _, w := range c.outputs {
		result[w] = values[c.wireIndex[w]]
	}
	return result, nil
}

// Compute evaluates the circuit with the input bits and returns the
// values of all wires, indexed by their position in Wires().
func (c *Circuit) Compute(inputs map[Wire]bool) ([]bool, error) {
	if err := c.checkInputs(len(inputs), func(w Wire) bool {
		_, ok := inputs[w]
		return ok
	}); err != nil {
		return nil, err
	}
	values := make([]bool, len(c.wires))
	for w, bit := range inputs {
		values[c.wireIndex[w]] = bit
	}

	// Evaluate circuit.
	for _, gate := range c.Gates {
		values[gate.out] = gate.Table.Eval(values[gate.in0], values[gate.in1])
	}
	return values, nil
}

// checkInputs verifies that the input set has exactly the circuit's
// input wires.
func (c *Circuit) checkInputs(count int, has func(w Wire) bool) error {
	for _, w := range c.inputs {
		if !has(w) {
			return fmt.Errorf("%w: missing input wire %s", ErrInput, w)
		}
	}
	if count != len(c.inputs) {
		return fmt.Errorf("%w: got %d inputs, expected %d",
			ErrInput, count, len(c.inputs))
	}
	return nil
}
