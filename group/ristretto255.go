//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package group

import (
	"io"

	"github.com/gtank/ristretto255"
)

// Ristretto255 implements the ristretto255 group with the gtank
// ristretto255 package. It is wire compatible with Ristretto.
var Ristretto255 Group = ristretto255Group{}

type ristretto255Group struct{}

type ristretto255Scalar struct {
	s *ristretto255.Scalar
}

func (s *ristretto255Scalar) Zero() {
	s.s.Zero()
}

type ristretto255Point struct {
	e *ristretto255.Element
}

func (p *ristretto255Point) Bytes() []byte {
	return p.e.Encode(nil)
}

func (p *ristretto255Point) Equal(o Point) bool {
	op, ok := o.(*ristretto255Point)
	if !ok {
		return false
	}
	return p.e.Equal(op.e) == 1
}

func (g ristretto255Group) Name() string {
	return "ristretto255"
}

func (g ristretto255Group) PointLen() int {
	return ristrettoPointLen
}

func (g ristretto255Group) RandomScalar(rand io.Reader) (Scalar, error) {
	var buf [64]byte
	zero := ristretto255.NewScalar()
	for {
		if err := readFull(rand, buf[:]); err != nil {
			return nil, err
		}
		s := ristretto255.NewScalar().FromUniformBytes(buf[:])
		if s.Equal(zero) != 1 {
			for i := range buf {
				buf[i] = 0
			}
			return &ristretto255Scalar{s: s}, nil
		}
	}
}

func (g ristretto255Group) Base() Point {
	return &ristretto255Point{
		e: ristretto255.NewElement().Base(),
	}
}

func (g ristretto255Group) ScalarBaseMult(s Scalar) Point {
	return &ristretto255Point{
		e: ristretto255.NewElement().ScalarBaseMult(s.(*ristretto255Scalar).s),
	}
}

func (g ristretto255Group) ScalarMult(s Scalar, p Point) Point {
	return &ristretto255Point{
		e: ristretto255.NewElement().ScalarMult(s.(*ristretto255Scalar).s,
			p.(*ristretto255Point).e),
	}
}

func (g ristretto255Group) Add(p, q Point) Point {
	return &ristretto255Point{
		e: ristretto255.NewElement().Add(p.(*ristretto255Point).e,
			q.(*ristretto255Point).e),
	}
}

func (g ristretto255Group) Sub(p, q Point) Point {
	return &ristretto255Point{
		e: ristretto255.NewElement().Subtract(p.(*ristretto255Point).e,
			q.(*ristretto255Point).e),
	}
}

func (g ristretto255Group) DecodePoint(data []byte) (Point, error) {
	if len(data) != ristrettoPointLen {
		return nil, ErrInvalidPoint
	}
	e := ristretto255.NewElement()
	if err := e.Decode(data); err != nil {
		return nil, ErrInvalidPoint
	}
	return &ristretto255Point{e: e}, nil
}
