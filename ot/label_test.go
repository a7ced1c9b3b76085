//
// label_test.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabel(t *testing.T) {
	label := &Label{
		D0: 0xffffffffffffffff,
		D1: 0xffffffffffffffff,
	}

	label.SetS(true)
	if label.D0 != 0xffffffffffffffff {
		t.Fatal("Failed to set S-bit")
	}

	label.SetS(false)
	if label.D0 != 0x7fffffffffffffff {
		t.Fatalf("Failed to clear S-bit: %x", label.D0)
	}
	if label.S() {
		t.Fatal("S-bit set after clearing")
	}
}

func TestLabelBytes(t *testing.T) {
	l, err := NewLabel(rand.Reader)
	require.NoError(t, err)

	var buf LabelData
	data := l.Bytes(&buf)
	assert.Len(t, data, LabelSize)

	var l2 Label
	require.NoError(t, l2.SetBytes(data))
	assert.True(t, l.Equal(l2))

	assert.Error(t, l2.SetBytes(data[:LabelSize-1]))

	parsed, err := ParseLabel(l.String())
	require.NoError(t, err)
	assert.True(t, l.Equal(parsed))

	_, err = ParseLabel("xyz")
	assert.Error(t, err)
	_, err = ParseLabel("0011")
	assert.Error(t, err)

	_, err = NewLabel(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestWire(t *testing.T) {
	w := Wire{
		L0: Label{D0: 1},
		L1: Label{D0: 2},
	}
	assert.Equal(t, w.L0, w.Label(false))
	assert.Equal(t, w.L1, w.Label(true))
	assert.Contains(t, w.String(), "0000000000000001")
}
