//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package group

import (
	"crypto/elliptic"
	"io"
	"math/big"
)

// P256 implements the NIST P-256 group. Points are encoded in the 33
// byte compressed format and the point at infinity as 33 zero bytes.
var P256 Group = p256Group{
	curve: elliptic.P256(),
}

const p256PointLen = 33

type p256Group struct {
	curve elliptic.Curve
}

type p256Scalar struct {
	k []byte
}

func (s *p256Scalar) Zero() {
	for i := range s.k {
		s.k[i] = 0
	}
}

// p256Point is an affine point; {0,0} is the point at infinity.
type p256Point struct {
	curve elliptic.Curve
	x     *big.Int
	y     *big.Int
}

func (p *p256Point) Bytes() []byte {
	if p.x.Sign() == 0 && p.y.Sign() == 0 {
		return make([]byte, p256PointLen)
	}
	return elliptic.MarshalCompressed(p.curve, p.x, p.y)
}

func (p *p256Point) Equal(o Point) bool {
	op, ok := o.(*p256Point)
	if !ok {
		return false
	}
	return p.x.Cmp(op.x) == 0 && p.y.Cmp(op.y) == 0
}

func (g p256Group) Name() string {
	return g.curve.Params().Name
}

func (g p256Group) PointLen() int {
	return p256PointLen
}

func (g p256Group) RandomScalar(rand io.Reader) (Scalar, error) {
	n := g.curve.Params().N
	buf := make([]byte, (n.BitLen()+7)/8)
	k := new(big.Int)
	for {
		if err := readFull(rand, buf); err != nil {
			return nil, err
		}
		k.SetBytes(buf)
		if k.Sign() != 0 && k.Cmp(n) < 0 {
			break
		}
	}
	for i := range buf {
		buf[i] = 0
	}
	result := &p256Scalar{
		k: k.FillBytes(make([]byte, len(buf))),
	}
	k.SetInt64(0)
	return result, nil
}

func (g p256Group) point(x, y *big.Int) *p256Point {
	return &p256Point{
		curve: g.curve,
		x:     x,
		y:     y,
	}
}

func (g p256Group) Base() Point {
	params := g.curve.Params()
	return g.point(new(big.Int).Set(params.Gx), new(big.Int).Set(params.Gy))
}

func (g p256Group) ScalarBaseMult(s Scalar) Point {
	return g.point(g.curve.ScalarBaseMult(s.(*p256Scalar).k))
}

func (g p256Group) ScalarMult(s Scalar, p Point) Point {
	pp := p.(*p256Point)
	return g.point(g.curve.ScalarMult(pp.x, pp.y, s.(*p256Scalar).k))
}

func (g p256Group) Add(p, q Point) Point {
	pp := p.(*p256Point)
	qp := q.(*p256Point)
	return g.point(g.curve.Add(pp.x, pp.y, qp.x, qp.y))
}

func (g p256Group) Sub(p, q Point) Point {
	pp := p.(*p256Point)
	qp := q.(*p256Point)

	// -{x,y} = {x,-y}
	negY := new(big.Int)
	if qp.y.Sign() != 0 {
		negY.Sub(g.curve.Params().P, qp.y)
	}
	return g.point(g.curve.Add(pp.x, pp.y, qp.x, negY))
}

func (g p256Group) DecodePoint(data []byte) (Point, error) {
	if len(data) != p256PointLen {
		return nil, ErrInvalidPoint
	}
	if isZero(data) {
		return g.point(new(big.Int), new(big.Int)), nil
	}
	x, y := elliptic.UnmarshalCompressed(g.curve, data)
	if x == nil || !g.curve.IsOnCurve(x, y) {
		return nil, ErrInvalidPoint
	}
	return g.point(x, y), nil
}
