//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"errors"
	"fmt"

	"github.com/markkurossi/yao/ot"
)

// ErrUnknownLabel signals an output label that matches neither label
// of its wire.
var ErrUnknownLabel = errors.New("circuit: unknown label")

// LabelForBit returns the wire label corresponding to the provided bit.
func LabelForBit(wire ot.Wire, bit bool) ot.Label {
	return wire.Label(bit)
}

// BitFromLabel resolves a concrete label back into a boolean value.
func BitFromLabel(wire ot.Wire, label ot.Label) (bool, error) {
	switch {
	case label.Equal(wire.L0):
		return false, nil
	case label.Equal(wire.L1):
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s for wire %v",
			ErrUnknownLabel, label, wire)
	}
}

// Decode maps the output labels to bits with the output label pairs.
func Decode(table map[Wire]ot.Wire, labels map[Wire]ot.Label) (
	map[Wire]bool, error) {

	result := make(map[Wire]bool)
	for w, label := range labels {
		wire, ok := table[w]
		if !ok {
			return nil, fmt.Errorf("%w: no label pair for wire %s",
				ErrUnknownLabel, w)
		}
		bit, err := BitFromLabel(wire, label)
		if err != nil {
			return nil, fmt.Errorf("wire %s: %w", w, err)
		}
		result[w] = bit
	}
	return result, nil
}
