//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package group

import (
	"io"

	gr "github.com/bwesterb/go-ristretto"
)

// Ristretto implements the ristretto255 group with the go-ristretto
// package.
var Ristretto Group = ristrettoGroup{}

const ristrettoPointLen = 32

type ristrettoGroup struct{}

type ristrettoScalar struct {
	s gr.Scalar
}

func (s *ristrettoScalar) Zero() {
	s.s.SetZero()
}

type ristrettoPoint struct {
	p gr.Point
}

func (p *ristrettoPoint) Bytes() []byte {
	return p.p.Bytes()
}

func (p *ristrettoPoint) Equal(o Point) bool {
	op, ok := o.(*ristrettoPoint)
	if !ok {
		return false
	}
	return p.p.Equals(&op.p)
}

func (g ristrettoGroup) Name() string {
	return "ristretto"
}

func (g ristrettoGroup) PointLen() int {
	return ristrettoPointLen
}

func (g ristrettoGroup) RandomScalar(rand io.Reader) (Scalar, error) {
	var buf [64]byte
	result := new(ristrettoScalar)
	var zero gr.Scalar
	zero.SetZero()
	for {
		if err := readFull(rand, buf[:]); err != nil {
			return nil, err
		}
		result.s.SetReduced(&buf)
		if !result.s.Equals(&zero) {
			break
		}
	}
	for i := range buf {
		buf[i] = 0
	}
	return result, nil
}

func (g ristrettoGroup) Base() Point {
	result := new(ristrettoPoint)
	result.p.SetBase()
	return result
}

func (g ristrettoGroup) ScalarBaseMult(s Scalar) Point {
	result := new(ristrettoPoint)
	result.p.ScalarMultBase(&s.(*ristrettoScalar).s)
	return result
}

func (g ristrettoGroup) ScalarMult(s Scalar, p Point) Point {
	result := new(ristrettoPoint)
	result.p.ScalarMult(&p.(*ristrettoPoint).p, &s.(*ristrettoScalar).s)
	return result
}

func (g ristrettoGroup) Add(p, q Point) Point {
	result := new(ristrettoPoint)
	result.p.Add(&p.(*ristrettoPoint).p, &q.(*ristrettoPoint).p)
	return result
}

func (g ristrettoGroup) Sub(p, q Point) Point {
	result := new(ristrettoPoint)
	result.p.Sub(&p.(*ristrettoPoint).p, &q.(*ristrettoPoint).p)
	return result
}

func (g ristrettoGroup) DecodePoint(data []byte) (Point, error) {
	if len(data) != ristrettoPointLen {
		return nil, ErrInvalidPoint
	}
	result := new(ristrettoPoint)
	if err := result.p.UnmarshalBinary(data); err != nil {
		return nil, ErrInvalidPoint
	}
	return result, nil
}
