//
// label.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/markkurossi/text/superscript"
)

// LabelSize is the wire label size in bytes.
const LabelSize = 16

// Wire implements a wire with 0 and 1 labels.
type Wire struct {
	L0 Label
	L1 Label
}

func (w Wire) String() string {
	return fmt.Sprintf("L%s=%s L%s=%s",
		superscript.Itoa(0), w.L0, superscript.Itoa(1), w.L1)
}

// Label returns the label for the bit value.
func (w Wire) Label(bit bool) Label {
	if bit {
		return w.L1
	}
	return w.L0
}

// Label implements a 128 bit wire label.
type Label struct {
	D0 uint64
	D1 uint64
}

// LabelData contains label data as byte array.
type LabelData [LabelSize]byte

func (l Label) String() string {
	return fmt.Sprintf("%016x%016x", l.D0, l.D1)
}

// Equal test if the labels are equal.
func (l Label) Equal(o Label) bool {
	return l.D0 == o.D0 && l.D1 == o.D1
}

// NewLabel creates a new random label.
func NewLabel(rand io.Reader) (Label, error) {
	var buf LabelData
	var label Label

	if _, err := io.ReadFull(rand, buf[:]); err != nil {
		return label, err
	}
	label.SetData(&buf)
	return label, nil
}

// ParseLabel parses the hex encoded label.
func ParseLabel(s string) (Label, error) {
	var label Label
	data, err := hex.DecodeString(s)
	if err != nil {
		return label, fmt.Errorf("invalid label %q: %w", s, err)
	}
	if err := label.SetBytes(data); err != nil {
		return label, err
	}
	return label, nil
}

// S tests the label's S bit.
func (l Label) S() bool {
	return (l.D0 & 0x8000000000000000) != 0
}

// SetS sets the label's S bit.
func (l *Label) SetS(set bool) {
	if set {
		l.D0 |= 0x8000000000000000
	} else {
		l.D0 &= 0x7fffffffffffffff
	}
}

// GetData gets the labels as label data.
func (l Label) GetData(buf *LabelData) {
	binary.BigEndian.PutUint64(buf[0:8], l.D0)
	binary.BigEndian.PutUint64(buf[8:16], l.D1)
}

// SetData sets the labels from label data.
func (l *Label) SetData(data *LabelData) {
	l.D0 = binary.BigEndian.Uint64((*data)[0:8])
	l.D1 = binary.BigEndian.Uint64((*data)[8:16])
}

// Bytes returns the label data as bytes.
func (l Label) Bytes(buf *LabelData) []byte {
	l.GetData(buf)
	return buf[:]
}

// SetBytes sets the label data from bytes. The data must be LabelSize
// bytes long.
func (l *Label) SetBytes(data []byte) error {
	if len(data) != LabelSize {
		return fmt.Errorf("invalid label length %d", len(data))
	}
	l.D0 = binary.BigEndian.Uint64(data[0:8])
	l.D1 = binary.BigEndian.Uint64(data[8:16])
	return nil
}
