//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package enc implements the symmetric primitives of garbling and
// oblivious transfer: a length-quadrupling PRF, the special
// (non-committing, padded) encryption, and a tagged one-time pad.
package enc

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
)

const (
	// KeySize is the PRF and special encryption key size in bytes.
	KeySize = 16

	// NonceSize is the special encryption nonce size in bytes.
	NonceSize = 16

	// PadSize is the size of the all-zero padding marker.
	PadSize = 16

	// MaxMessageSize is the maximum special encryption message size.
	MaxMessageSize = 48

	// Overhead is the special encryption ciphertext expansion.
	Overhead = NonceSize + PadSize

	// OTPKeySize is the tagged one-time pad key size.
	OTPKeySize = 32

	// OTPMessageSize is the tagged one-time pad message size.
	OTPMessageSize = 16
)

var (
	// ErrDecrypt signals that the ciphertext did not decrypt under
	// the key: the padding marker or the tag did not match.
	ErrDecrypt = errors.New("enc: decryption failed")

	// ErrKeySize signals an invalid key length.
	ErrKeySize = errors.New("enc: invalid key size")

	// ErrMessageSize signals an invalid message length.
	ErrMessageSize = errors.New("enc: invalid message size")

	// ErrCiphertextSize signals an invalid ciphertext length.
	ErrCiphertextSize = errors.New("enc: invalid ciphertext size")
)

var zeroPad [PadSize]byte

// PRF computes the length-quadrupling pseudorandom function. The key
// k must be KeySize bytes and the input r at most KeySize bytes. The
// result is the AES-CTR encryption of r repeated four times, with the
// counter block starting from one.
func PRF(k, r []byte) ([]byte, error) {
	if len(k) != KeySize {
		return nil, fmt.Errorf("%w: %d", ErrKeySize, len(k))
	}
	if len(r) > KeySize {
		return nil, fmt.Errorf("%w: PRF input %d", ErrMessageSize, len(r))
	}
	block, err := aes.NewCipher(k)
	if err != nil {
		return nil, err
	}
	var iv [aes.BlockSize]byte
	iv[aes.BlockSize-1] = 1

	out := make([]byte, 4*len(r))
	for i := 0; i < 4; i++ {
		copy(out[i*len(r):], r)
	}
	cipher.NewCTR(block, iv[:]).XORKeyStream(out, out)

	return out, nil
}

// Encrypt encrypts the message m with the special encryption:
//
//	r || (PRF(k, r) xor (0^16 || m))
//
// The nonce r is read from rand. The message can be at most
// MaxMessageSize bytes long.
func Encrypt(rand io.Reader, k, m []byte) ([]byte, error) {
	if len(m) > MaxMessageSize {
		return nil, fmt.Errorf("%w: %d", ErrMessageSize, len(m))
	}
	c := make([]byte, Overhead+len(m))
	if _, err := io.ReadFull(rand, c[:NonceSize]); err != nil {
		return nil, fmt.Errorf("enc: random source: %w", err)
	}
	prf, err := PRF(k, c[:NonceSize])
	if err != nil {
		return nil, err
	}
	copy(c[Overhead:], m)
	subtle.XORBytes(c[NonceSize:], c[NonceSize:], prf)

	return c, nil
}

// Decrypt decrypts the special encryption ciphertext c. It returns
// ErrDecrypt if the padding marker does not verify.
func Decrypt(k, c []byte) ([]byte, error) {
	if len(c) < Overhead || len(c) > Overhead+MaxMessageSize {
		return nil, fmt.Errorf("%w: %d", ErrCiphertextSize, len(c))
	}
	prf, err := PRF(k, c[:NonceSize])
	if err != nil {
		return nil, err
	}
	msg := make([]byte, len(c)-NonceSize)
	subtle.XORBytes(msg, c[NonceSize:], prf)

	if subtle.ConstantTimeCompare(msg[:PadSize], zeroPad[:]) != 1 {
		return nil, ErrDecrypt
	}
	return msg[PadSize:], nil
}

// OTPEncrypt encrypts the message with the tagged one-time pad. The
// key k is alpha || beta and the ciphertext (m xor alpha) || beta.
func OTPEncrypt(k, m []byte) ([]byte, error) {
	if len(k) != OTPKeySize {
		return nil, fmt.Errorf("%w: %d", ErrKeySize, len(k))
	}
	if len(m) != OTPMessageSize {
		return nil, fmt.Errorf("%w: %d", ErrMessageSize, len(m))
	}
	c := make([]byte, OTPKeySize)
	subtle.XORBytes(c, m, k[:OTPMessageSize])
	copy(c[OTPMessageSize:], k[OTPMessageSize:])

	return c, nil
}

// OTPDecrypt decrypts the tagged one-time pad ciphertext. It returns
// ErrDecrypt if the tag does not match the key.
func OTPDecrypt(k, c []byte) ([]byte, error) {
	if len(k) != OTPKeySize {
		return nil, fmt.Errorf("%w: %d", ErrKeySize, len(k))
	}
	if len(c) != OTPKeySize {
		return nil, fmt.Errorf("%w: %d", ErrCiphertextSize, len(c))
	}
	if subtle.ConstantTimeCompare(c[OTPMessageSize:], k[OTPMessageSize:]) != 1 {
		return nil, ErrDecrypt
	}
	m := make([]byte, OTPMessageSize)
	subtle.XORBytes(m, c[:OTPMessageSize], k[:OTPMessageSize])

	return m, nil
}
