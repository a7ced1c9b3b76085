//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package group implements prime-order elliptic curve groups for the
// oblivious transfer key agreement.
package group

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

var (
	// ErrInvalidPoint signals that encoded point data does not decode
	// into a valid group element.
	ErrInvalidPoint = errors.New("group: invalid point")

	// ErrUnknownGroup signals that a group name is not registered.
	ErrUnknownGroup = errors.New("group: unknown group")
)

// Scalar is an element of the scalar field of a group. Scalars are
// secret values and callers must Zero them when they are no longer
// needed.
type Scalar interface {
	// Zero overwrites the scalar value with zero.
	Zero()
}

// Point is a group element.
type Point interface {
	// Bytes returns the fixed-width encoding of the point.
	Bytes() []byte

	// Equal tests if the points are equal.
	Equal(o Point) bool
}

// Group defines the group operations the OT protocol needs. The
// Scalar and Point values passed to a group must have been created
// by the same group.
type Group interface {
	// Name returns the group name.
	Name() string

	// PointLen returns the length of the encoded points in bytes.
	PointLen() int

	// RandomScalar samples a uniformly random non-zero scalar.
	RandomScalar(rand io.Reader) (Scalar, error)

	// Base returns the group generator.
	Base() Point

	// ScalarBaseMult returns s·G.
	ScalarBaseMult(s Scalar) Point

	// ScalarMult returns s·p.
	ScalarMult(s Scalar, p Point) Point

	// Add returns p+q.
	Add(p, q Point) Point

	// Sub returns p-q.
	Sub(p, q Point) Point

	// DecodePoint decodes the point encoding. It returns
	// ErrInvalidPoint if the data is not a valid group element.
	DecodePoint(data []byte) (Point, error)
}

var groups = map[string]Group{
	Secp256k1.Name():    Secp256k1,
	Ristretto.Name():    Ristretto,
	Ristretto255.Name(): Ristretto255,
	P256.Name():         P256,
}

// ByName returns the group by its name.
func ByName(name string) (Group, error) {
	g, ok := groups[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, name)
	}
	return g, nil
}

// Names returns the names of all groups.
func Names() []string {
	var result []string
	for name := range groups {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

func readFull(rand io.Reader, buf []byte) error {
	_, err := io.ReadFull(rand, buf)
	if err != nil {
		return fmt.Errorf("group: random source: %w", err)
	}
	return nil
}
