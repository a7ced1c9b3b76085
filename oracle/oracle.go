//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package oracle implements random oracles mapping byte strings to
// fixed-width digests.
package oracle

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// Size is the oracle response size in bytes.
const Size = 32

var (
	// ErrUnknownOracle signals that an oracle name is not registered.
	ErrUnknownOracle = errors.New("oracle: unknown oracle")

	// ErrProgrammed signals an attempt to reprogram an oracle query.
	ErrProgrammed = errors.New("oracle: query already answered")
)

// Oracle is a random oracle. Query returns the same Size bytes for
// repeated queries of the same data.
type Oracle interface {
	Name() string
	Query(data []byte) ([]byte, error)
}

// Func implements an Oracle with a hash function.
type Func struct {
	name string
	fn   func(data []byte) [Size]byte
}

// Name returns the oracle name.
func (f *Func) Name() string {
	return f.name
}

// Query returns the hash of the data.
func (f *Func) Query(data []byte) ([]byte, error) {
	sum := f.fn(data)
	return sum[:], nil
}

var (
	// SHA256 instantiates the oracle with SHA-256.
	SHA256 Oracle = &Func{
		name: "sha256",
		fn:   sha256.Sum256,
	}

	// BLAKE3 instantiates the oracle with BLAKE3.
	BLAKE3 Oracle = &Func{
		name: "blake3",
		fn:   blake3.Sum256,
	}

	// BLAKE2b instantiates the oracle with BLAKE2b-256.
	BLAKE2b Oracle = &Func{
		name: "blake2b",
		fn:   blake2b.Sum256,
	}
)

var oracles = map[string]Oracle{
	SHA256.Name():  SHA256,
	BLAKE3.Name():  BLAKE3,
	BLAKE2b.Name(): BLAKE2b,
}

// ByName returns the hash-based oracle by its name.
func ByName(name string) (Oracle, error) {
	o, ok := oracles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOracle, name)
	}
	return o, nil
}

// Names returns the names of all hash-based oracles.
func Names() []string {
	var result []string
	for name := range oracles {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Entry is an answered oracle query.
type Entry struct {
	Query    []byte
	Response []byte
}

// Recorder is a lazily sampled random oracle. It answers every new
// query with fresh random bytes and records the query and response in
// an append-only log. Simulators and extractors share a Recorder by
// reference to observe or program oracle queries. Recorder is safe for
// concurrent use.
type Recorder struct {
	rand io.Reader
	m    sync.Mutex
	resp map[string][]byte
	log  []Entry
}

// NewRecorder creates a new recording oracle sampling its responses
// from rand.
func NewRecorder(rand io.Reader) *Recorder {
	return &Recorder{
		rand: rand,
		resp: make(map[string][]byte),
	}
}

// Name returns the oracle name.
func (r *Recorder) Name() string {
	return "recorder"
}

// Query answers the query.
func (r *Recorder) Query(data []byte) ([]byte, error) {
	r.m.Lock()
	defer r.m.Unlock()

	resp, ok := r.resp[string(data)]
	if ok {
		return append([]byte(nil), resp...), nil
	}
	resp = make([]byte, Size)
	if _, err := io.ReadFull(r.rand, resp); err != nil {
		return nil, fmt.Errorf("oracle: random source: %w", err)
	}
	r.add(data, resp)

	return append([]byte(nil), resp...), nil
}

// Program sets the response for a query that has not been answered
// yet.
func (r *Recorder) Program(data, response []byte) error {
	if len(response) != Size {
		return fmt.Errorf("oracle: invalid response length %d", len(response))
	}
	r.m.Lock()
	defer r.m.Unlock()

	if _, ok := r.resp[string(data)]; ok {
		return ErrProgrammed
	}
	r.add(data, append([]byte(nil), response...))
	return nil
}

func (r *Recorder) add(data, resp []byte) {
	r.resp[string(data)] = resp
	r.log = append(r.log, Entry{
		Query:    append([]byte(nil), data...),
		Response: resp,
	})
}

// Lookup returns the response for an answered query.
func (r *Recorder) Lookup(data []byte) ([]byte, bool) {
	r.m.Lock()
	defer r.m.Unlock()

	resp, ok := r.resp[string(data)]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), resp...), true
}

// Entries returns copies of the answered queries in the order they
// were answered.
func (r *Recorder) Entries() []Entry {
	r.m.Lock()
	defer r.m.Unlock()

	result := make([]Entry, len(r.log))
	for i, e := range r.log {
		result[i] = Entry{
			Query:    append([]byte(nil), e.Query...),
			Response: append([]byte(nil), e.Response...),
		}
	}
	return result
}
