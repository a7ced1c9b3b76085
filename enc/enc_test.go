//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package enc

import (
	"bytes"
	"crypto/rand"
	"errors"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) []byte {
	k := make([]byte, KeySize)
	_, err := rand.Read(k)
	require.NoError(t, err)
	return k
}

func TestPRF(t *testing.T) {
	k := newKey(t)
	r := bytes.Repeat([]byte{0x5a}, KeySize)

	out, err := PRF(k, r)
	require.NoError(t, err)
	assert.Len(t, out, 64)

	out2, err := PRF(k, r)
	require.NoError(t, err)
	assert.Equal(t, out, out2)

	r[0] ^= 1
	out3, err := PRF(k, r)
	require.NoError(t, err)
	assert.NotEqual(t, out, out3)

	out4, err := PRF(newKey(t), r)
	require.NoError(t, err)
	assert.NotEqual(t, out3, out4)

	short, err := PRF(k, r[:5])
	require.NoError(t, err)
	assert.Len(t, short, 20)

	_, err = PRF(k[:8], r)
	assert.True(t, errors.Is(err, ErrKeySize))
	_, err = PRF(k, make([]byte, 17))
	assert.True(t, errors.Is(err, ErrMessageSize))
}

func TestSpecialEncryption(t *testing.T) {
	k := newKey(t)
	for i := 0; i < 1000; i++ {
		m := make([]byte, mrand.Intn(MaxMessageSize+1))
		_, err := rand.Read(m)
		require.NoError(t, err)

		c, err := Encrypt(rand.Reader, k, m)
		require.NoError(t, err)
		require.Len(t, c, Overhead+len(m))

		d, err := Decrypt(k, c)
		require.NoError(t, err)
		require.True(t, bytes.Equal(m, d), "message %d", i)
	}
}

func TestSpecialEncryptionWrongKey(t *testing.T) {
	k := newKey(t)
	for i := 0; i < 1000; i++ {
		m := make([]byte, KeySize)
		_, err := rand.Read(m)
		require.NoError(t, err)

		c, err := Encrypt(rand.Reader, k, m)
		require.NoError(t, err)

		_, err = Decrypt(newKey(t), c)
		require.True(t, errors.Is(err, ErrDecrypt))
	}
}

func TestSpecialEncryptionTamper(t *testing.T) {
	k := newKey(t)
	c, err := Encrypt(rand.Reader, k, []byte("hello, world"))
	require.NoError(t, err)

	for _, idx := range []int{0, NonceSize, NonceSize + PadSize - 1} {
		tampered := append([]byte(nil), c...)
		tampered[idx] ^= 0x80
		_, err := Decrypt(k, tampered)
		assert.True(t, errors.Is(err, ErrDecrypt), "index %d", idx)
	}
}

func TestSpecialEncryptionSizes(t *testing.T) {
	k := newKey(t)
	_, err := Encrypt(rand.Reader, k, make([]byte, MaxMessageSize+1))
	assert.True(t, errors.Is(err, ErrMessageSize))

	_, err = Encrypt(rand.Reader, k[:15], nil)
	assert.True(t, errors.Is(err, ErrKeySize))

	_, err = Encrypt(bytes.NewReader(nil), k, nil)
	assert.Error(t, err)

	_, err = Decrypt(k, make([]byte, Overhead-1))
	assert.True(t, errors.Is(err, ErrCiphertextSize))
	_, err = Decrypt(k, make([]byte, Overhead+MaxMessageSize+1))
	assert.True(t, errors.Is(err, ErrCiphertextSize))
}

func TestNestedEncryption(t *testing.T) {
	k0 := newKey(t)
	k1 := newKey(t)
	m := newKey(t)

	inner, err := Encrypt(rand.Reader, k1, m)
	require.NoError(t, err)
	outer, err := Encrypt(rand.Reader, k0, inner)
	require.NoError(t, err)
	assert.Len(t, outer, 2*Overhead+KeySize)

	d, err := Decrypt(k0, outer)
	require.NoError(t, err)
	d, err = Decrypt(k1, d)
	require.NoError(t, err)
	assert.Equal(t, m, d)

	_, err = Decrypt(k1, outer)
	assert.True(t, errors.Is(err, ErrDecrypt))
}

func TestOTP(t *testing.T) {
	k := make([]byte, OTPKeySize)
	_, err := rand.Read(k)
	require.NoError(t, err)
	m := bytes.Repeat([]byte{0xff}, OTPMessageSize)

	c, err := OTPEncrypt(k, m)
	require.NoError(t, err)
	assert.Equal(t, k[OTPMessageSize:], c[OTPMessageSize:])

	d, err := OTPDecrypt(k, c)
	require.NoError(t, err)
	assert.Equal(t, m, d)

	k2 := append([]byte(nil), k...)
	k2[OTPKeySize-1] ^= 1
	_, err = OTPDecrypt(k2, c)
	assert.True(t, errors.Is(err, ErrDecrypt))

	_, err = OTPEncrypt(k[:16], m)
	assert.True(t, errors.Is(err, ErrKeySize))
	_, err = OTPEncrypt(k, m[:15])
	assert.True(t, errors.Is(err, ErrMessageSize))
	_, err = OTPDecrypt(k, c[:31])
	assert.True(t, errors.Is(err, ErrCiphertextSize))
}
