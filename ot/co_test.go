//
// co_test.go
//
// Copyright (c) 2023-2026 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	"bytes"
	"crypto/rand"
	"errors"
	mrand "math/rand"
	"testing"

	"github.com/markkurossi/yao/enc"
	"github.com/markkurossi/yao/env"
	"github.com/markkurossi/yao/group"
	"github.com/markkurossi/yao/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transfer struct {
	s *COSenderXfer
	r *COReceiverXfer
}

func newXfer(t *testing.T, cfg *env.Config, m0, m1 []byte,
	bit uint) *transfer {

	sXfer, err := NewCOSender(cfg).NewTransfer(m0, m1)
	require.NoError(t, err)
	rXfer, err := NewCOReceiver(cfg).NewTransfer(bit)
	require.NoError(t, err)

	return &transfer{
		s: sXfer,
		r: rXfer,
	}
}

func (x *transfer) run() ([]byte, error) {
	b, err := x.r.ReceiveA(x.s.A())
	if err != nil {
		return nil, err
	}
	e0, e1, err := x.s.ReceiveB(b)
	if err != nil {
		return nil, err
	}
	return x.r.ReceiveE(e0, e1)
}

func TestCO(t *testing.T) {
	m0 := bytes.Repeat([]byte{0x00}, enc.OTPMessageSize)
	m1 := bytes.Repeat([]byte{0xff}, enc.OTPMessageSize)

	for bit, expected := range [][]byte{m0, m1} {
		result, err := newXfer(t, nil, m0, m1, uint(bit)).run()
		require.NoError(t, err)
		assert.Equal(t, expected, result)
	}
}

func TestCOOtherMessage(t *testing.T) {
	m0 := bytes.Repeat([]byte{0x00}, enc.OTPMessageSize)
	m1 := bytes.Repeat([]byte{0xff}, enc.OTPMessageSize)

	for bit := uint(0); bit < 2; bit++ {
		x := newXfer(t, nil, m0, m1, bit)
		b, err := x.r.ReceiveA(x.s.A())
		require.NoError(t, err)
		kR := append([]byte(nil), x.r.kR...)

		e0, e1, err := x.s.ReceiveB(b)
		require.NoError(t, err)

		other := e1
		if bit != 0 {
			other = e0
		}
		_, err = enc.OTPDecrypt(kR, other)
		assert.True(t, errors.Is(err, enc.ErrDecrypt), "bit %d", bit)
	}
}

func TestCORandom(t *testing.T) {
	for i := 0; i < 1000; i++ {
		m0 := make([]byte, enc.OTPMessageSize)
		m1 := make([]byte, enc.OTPMessageSize)
		_, err := rand.Read(m0)
		require.NoError(t, err)
		_, err = rand.Read(m1)
		require.NoError(t, err)

		bit := uint(mrand.Intn(2))
		result, err := newXfer(t, nil, m0, m1, bit).run()
		require.NoError(t, err)
		if bit == 0 {
			require.Equal(t, m0, result)
		} else {
			require.Equal(t, m1, result)
		}
	}
}

func TestCOGroups(t *testing.T) {
	m0 := bytes.Repeat([]byte{0x01}, enc.OTPMessageSize)
	m1 := bytes.Repeat([]byte{0x02}, enc.OTPMessageSize)

	for _, gName := range group.Names() {
		for _, oName := range oracle.Names() {
			g, err := group.ByName(gName)
			require.NoError(t, err)
			o, err := oracle.ByName(oName)
			require.NoError(t, err)
			cfg := &env.Config{
				Group:  g,
				Oracle: o,
			}
			for bit, expected := range [][]byte{m0, m1} {
				result, err := newXfer(t, cfg, m0, m1, uint(bit)).run()
				require.NoError(t, err, "%s/%s", gName, oName)
				assert.Equal(t, expected, result)
			}
		}
	}
}

func TestCORecordedOracle(t *testing.T) {
	rec := oracle.NewRecorder(rand.Reader)
	cfg := &env.Config{
		Oracle: rec,
	}
	m0 := bytes.Repeat([]byte{0x03}, enc.OTPMessageSize)
	m1 := bytes.Repeat([]byte{0x04}, enc.OTPMessageSize)

	result, err := newXfer(t, cfg, m0, m1, 1).run()
	require.NoError(t, err)
	assert.Equal(t, m1, result)

	// The receiver query bA equals the sender query a(B-A).
	assert.Len(t, rec.Entries(), 2)
}

func TestCOInvalidBit(t *testing.T) {
	_, err := NewCOReceiver(nil).NewTransfer(2)
	assert.True(t, errors.Is(err, ErrInvalidBit))
}

func TestCOMessageSize(t *testing.T) {
	_, err := NewCOSender(nil).NewTransfer(make([]byte, 15), make([]byte, 16))
	assert.True(t, errors.Is(err, ErrMessageSize))
}

func TestCOReuse(t *testing.T) {
	m0 := bytes.Repeat([]byte{0x00}, enc.OTPMessageSize)
	m1 := bytes.Repeat([]byte{0xff}, enc.OTPMessageSize)

	x := newXfer(t, nil, m0, m1, 1)
	b, err := x.r.ReceiveA(x.s.A())
	require.NoError(t, err)
	e0, e1, err := x.s.ReceiveB(b)
	require.NoError(t, err)
	_, err = x.r.ReceiveE(e0, e1)
	require.NoError(t, err)

	_, _, err = x.s.ReceiveB(b)
	assert.True(t, errors.Is(err, ErrTransferUsed))
	_, err = x.r.ReceiveA(x.s.A())
	assert.True(t, errors.Is(err, ErrTransferUsed))
	_, err = x.r.ReceiveE(e0, e1)
	assert.True(t, errors.Is(err, ErrTransferUsed))

	x = newXfer(t, nil, m0, m1, 0)
	_, err = x.r.ReceiveE(e0, e1)
	assert.True(t, errors.Is(err, ErrTransferUsed))

	x.s.Discard()
	_, _, err = x.s.ReceiveB(b)
	assert.True(t, errors.Is(err, ErrTransferUsed))
	x.r.Discard()
	_, err = x.r.ReceiveA(x.s.A())
	assert.True(t, errors.Is(err, ErrTransferUsed))
}

func TestCOInvalidPoint(t *testing.T) {
	m := make([]byte, enc.OTPMessageSize)
	x := newXfer(t, nil, m, m, 0)
	_, err := x.r.ReceiveA([]byte{0x01, 0x02})
	assert.True(t, errors.Is(err, group.ErrInvalidPoint))

	_, _, err = x.s.ReceiveB(make([]byte, 7))
	assert.True(t, errors.Is(err, group.ErrInvalidPoint))
}
