//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package group

import (
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Secp256k1 implements the secp256k1 group. Points are encoded in the
// 33 byte compressed SEC1 format. The point at infinity is encoded as
// 33 zero bytes.
var Secp256k1 Group = secp256k1Group{}

const secp256k1PointLen = 33

type secp256k1Group struct{}

type secp256k1Scalar struct {
	s secp256k1.ModNScalar
}

func (s *secp256k1Scalar) Zero() {
	s.s.Zero()
}

type secp256k1Point struct {
	p secp256k1.JacobianPoint
}

func (p *secp256k1Point) isInfinity() bool {
	var z secp256k1.FieldVal
	z.Set(&p.p.Z)
	z.Normalize()
	return z.IsZero()
}

func (p *secp256k1Point) Bytes() []byte {
	if p.isInfinity() {
		return make([]byte, secp256k1PointLen)
	}
	var affine secp256k1.JacobianPoint
	affine.Set(&p.p)
	affine.ToAffine()
	return secp256k1.NewPublicKey(&affine.X, &affine.Y).SerializeCompressed()
}

func (p *secp256k1Point) Equal(o Point) bool {
	op, ok := o.(*secp256k1Point)
	if !ok {
		return false
	}
	return string(p.Bytes()) == string(op.Bytes())
}

func (g secp256k1Group) Name() string {
	return "secp256k1"
}

func (g secp256k1Group) PointLen() int {
	return secp256k1PointLen
}

func (g secp256k1Group) RandomScalar(rand io.Reader) (Scalar, error) {
	var buf [32]byte
	result := new(secp256k1Scalar)
	for {
		if err := readFull(rand, buf[:]); err != nil {
			return nil, err
		}
		overflow := result.s.SetByteSlice(buf[:])
		if !overflow && !result.s.IsZero() {
			break
		}
	}
	for i := range buf {
		buf[i] = 0
	}
	return result, nil
}

func (g secp256k1Group) Base() Point {
	var one secp256k1.ModNScalar
	one.SetInt(1)
	result := new(secp256k1Point)
	secp256k1.ScalarBaseMultNonConst(&one, &result.p)
	return result
}

func (g secp256k1Group) ScalarBaseMult(s Scalar) Point {
	result := new(secp256k1Point)
	secp256k1.ScalarBaseMultNonConst(&s.(*secp256k1Scalar).s, &result.p)
	return result
}

func (g secp256k1Group) ScalarMult(s Scalar, p Point) Point {
	result := new(secp256k1Point)
	secp256k1.ScalarMultNonConst(&s.(*secp256k1Scalar).s,
		&p.(*secp256k1Point).p, &result.p)
	return result
}

func (g secp256k1Group) Add(p, q Point) Point {
	result := new(secp256k1Point)
	secp256k1.AddNonConst(&p.(*secp256k1Point).p, &q.(*secp256k1Point).p,
		&result.p)
	return result
}

func (g secp256k1Group) Sub(p, q Point) Point {
	var neg secp256k1.JacobianPoint
	neg.Set(&q.(*secp256k1Point).p)
	neg.Y.Normalize()
	neg.Y.Negate(1)
	neg.Y.Normalize()

	result := new(secp256k1Point)
	secp256k1.AddNonConst(&p.(*secp256k1Point).p, &neg, &result.p)
	return result
}

func (g secp256k1Group) DecodePoint(data []byte) (Point, error) {
	if len(data) != secp256k1PointLen {
		return nil, ErrInvalidPoint
	}
	result := new(secp256k1Point)
	if isZero(data) {
		return result, nil
	}
	pub, err := secp256k1.ParsePubKey(data)
	if err != nil {
		return nil, ErrInvalidPoint
	}
	pub.AsJacobian(&result.p)
	return result, nil
}

func isZero(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
