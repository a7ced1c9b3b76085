//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"math/big"
)

// SplitWires splits the input wires into two arguments. The wires
// alternate between the arguments: x0 y0 x1 y1 ... xN yN.
func SplitWires(inputs []Wire) (x, y []Wire, err error) {
	if len(inputs)%2 != 0 {
		return nil, nil, fmt.Errorf("%w: odd number of input wires: %d",
			ErrInput, len(inputs))
	}
	for i := 0; i < len(inputs); i += 2 {
		x = append(x, inputs[i])
		y = append(y, inputs[i+1])
	}
	return x, y, nil
}

// SplitInputs assigns the integer arguments x and y to the circuit
// input wires. The wires alternate between the arguments in natural
// order, least significant bits first. The function returns the
// assignments of both arguments.
func (c *Circuit) SplitInputs(x, y *big.Int) (
	xInputs, yInputs map[Wire]bool, err error) {

	xWires, yWires, err := SplitWires(c.inputs)
	if err != nil {
		return nil, nil, err
	}
	xInputs, err = Assign(xWires, x)
	if err != nil {
		return nil, nil, err
	}
	yInputs, err = Assign(yWires, y)
	if err != nil {
		return nil, nil, err
	}
	return xInputs, yInputs, nil
}

// Assign assigns the bits of the value to the wires, least
// significant bit first.
func Assign(wires []Wire, value *big.Int) (map[Wire]bool, error) {
	if value.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative value %v", ErrInput, value)
	}
	if value.BitLen() > len(wires) {
		return nil, fmt.Errorf("%w: value %v does not fit in %d bits",
			ErrInput, value, len(wires))
	}
	result := make(map[Wire]bool)
	for i, w := range wires {
		result[w] = value.Bit(i) == 1
	}
	return result, nil
}

// Value returns the integer value of the wire bits, with the first
// wire as the least significant bit.
func Value(wires []Wire, bits map[Wire]bool) (*big.Int, error) {
	result := new(big.Int)
	for i, w := range wires {
		bit, ok := bits[w]
		if !ok {
			return nil, fmt.Errorf("%w: no value for wire %s", ErrInput, w)
		}
		if bit {
			result.SetBit(result, i, 1)
		}
	}
	return result, nil
}

// Merge merges the input assignments into one assignment.
func Merge(inputs ...map[Wire]bool) map[Wire]bool {
	result := make(map[Wire]bool)
	for _, in := range inputs {
		for w, bit := range in {
			result[w] = bit
		}
	}
	return result
}
