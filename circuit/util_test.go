//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// newAdder creates a ripple-carry adder for bits-bit arguments. The
// input wires in0..in(2*bits-1) alternate between the arguments and
// the output wires out0..out(bits) hold the sum.
func newAdder(t testing.TB, bits int) *Circuit {
	desc := &Description{
		Gates: make(map[string]*GateDesc),
	}
	var id int
	gate := func(typ string, a, b, out string) {
		id++
		desc.Gates[fmt.Sprintf("g%d", id)] = &GateDesc{
			Inp:  []WireRef{WireRef(a), WireRef(b)},
			Out:  []WireRef{WireRef(out)},
			Type: typ,
		}
	}
	x := func(i int) string { return fmt.Sprintf("in%d", 2*i) }
	y := func(i int) string { return fmt.Sprintf("in%d", 2*i+1) }

	var carry string
	for i := 0; i < bits; i++ {
		cout := fmt.Sprintf("c%d", i+1)
		if i+1 == bits {
			cout = fmt.Sprintf("out%d", bits)
		}
		if i == 0 {
			gate("XOR", x(0), y(0), "out0")
			gate("AND", x(0), y(0), cout)
		} else {
			s := fmt.Sprintf("s%d", i)
			gate("XOR", x(i), y(i), s)
			gate("XOR", s, carry, fmt.Sprintf("out%d", i))
			gate("AND", x(i), y(i), fmt.Sprintf("a%d", i))
			gate("AND", s, carry, fmt.Sprintf("b%d", i))
			gate("OR", fmt.Sprintf("a%d", i), fmt.Sprintf("b%d", i), cout)
		}
		carry = cout
	}
	c, err := New(desc)
	require.NoError(t, err)
	return c
}

// randomCircuit creates a random acyclic circuit. Gate inputs are
// selected from all earlier wires, possibly twice from the same wire.
func randomCircuit(t testing.TB, rnd *mrand.Rand, numInputs,
	numGates int) *Circuit {

	var wires []Wire
	for i := 0; i < numInputs; i++ {
		wires = append(wires, Wire(fmt.Sprintf("i%d", i)))
	}
	var gates []*Gate
	for _, idx := range rnd.Perm(numGates) {
		var table Table
		for i := range table {
			table[i] = byte(rnd.Intn(2))
		}
		out := Wire(fmt.Sprintf("w%d", len(wires)))
		gates = append(gates, &Gate{
			ID:     GateID(fmt.Sprintf("g%d", idx)),
			Input0: wires[rnd.Intn(len(wires))],
			Input1: wires[rnd.Intn(len(wires))],
			Output: out,
			Table:  table,
		})
		wires = append(wires, out)
	}
	c, err := NewCircuit(gates)
	require.NoError(t, err)
	return c
}

func randomInputs(rnd *mrand.Rand, c *Circuit) map[Wire]bool {
	result := make(map[Wire]bool)
	for _, w := range c.Inputs() {
		result[w] = rnd.Intn(2) == 1
	}
	return result
}

func adderInputs(t testing.TB, c *Circuit, x, y int64) map[Wire]bool {
	xIn, yIn, err := c.SplitInputs(big.NewInt(x), big.NewInt(y))
	require.NoError(t, err)
	return Merge(xIn, yIn)
}

func adderValue(t testing.TB, c *Circuit, outputs map[Wire]bool) int64 {
	v, err := Value(c.Outputs(), outputs)
	require.NoError(t, err)
	return v.Int64()
}
