//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitInputs(t *testing.T) {
	c := newAdder(t, 4)

	x, y, err := c.SplitInputs(big.NewInt(0x5), big.NewInt(0xa))
	require.NoError(t, err)
	assert.Equal(t, map[Wire]bool{
		"in0": true,
		"in2": false,
		"in4": true,
		"in6": false,
	}, x)
	assert.Equal(t, map[Wire]bool{
		"in1": false,
		"in3": true,
		"in5": false,
		"in7": true,
	}, y)

	_, _, err = c.SplitInputs(big.NewInt(16), big.NewInt(0))
	assert.True(t, errors.Is(err, ErrInput))

	_, _, err = c.SplitInputs(big.NewInt(0), big.NewInt(-1))
	assert.True(t, errors.Is(err, ErrInput))
}

func TestSplitWires(t *testing.T) {
	x, y, err := SplitWires([]Wire{"a", "b", "c", "d"})
	require.NoError(t, err)
	assert.Equal(t, []Wire{"a", "c"}, x)
	assert.Equal(t, []Wire{"b", "d"}, y)

	_, _, err = SplitWires([]Wire{"a", "b", "c"})
	assert.True(t, errors.Is(err, ErrInput))

	c, err := ParseFile("testdata/mux.yaml")
	require.NoError(t, err)
	_, _, err = c.SplitInputs(big.NewInt(0), big.NewInt(0))
	assert.True(t, errors.Is(err, ErrInput))
}

func TestAssignValue(t *testing.T) {
	wires := []Wire{"b0", "b1", "b2"}

	bits, err := Assign(wires, big.NewInt(6))
	require.NoError(t, err)
	assert.Equal(t, map[Wire]bool{"b0": false, "b1": true, "b2": true}, bits)

	v, err := Value(wires, bits)
	require.NoError(t, err)
	assert.Equal(t, int64(6), v.Int64())

	_, err = Assign(wires, big.NewInt(8))
	assert.True(t, errors.Is(err, ErrInput))

	delete(bits, "b1")
	_, err = Value(wires, bits)
	assert.True(t, errors.Is(err, ErrInput))
}

func TestMerge(t *testing.T) {
	m := Merge(map[Wire]bool{"a": true}, map[Wire]bool{"b": false}, nil)
	assert.Equal(t, map[Wire]bool{"a": true, "b": false}, m)
}
