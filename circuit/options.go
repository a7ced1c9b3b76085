//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"github.com/markkurossi/yao/env"
)

// Option configures garbling, evaluation, and the two-party
// protocol.
type Option func(o *options)

type options struct {
	pointAndPermute bool
	workers         int
	timing          *Timing
	env             *env.Config
}

func newOptions(opts []Option) *options {
	o := new(options)
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithPointAndPermute enables the point-and-permute garbling. The
// garbled rows are ordered by the color bits of the input labels and
// the evaluator decrypts only one row per gate.
func WithPointAndPermute() Option {
	return func(o *options) {
		o.pointAndPermute = true
	}
}

// WithWorkers sets the number of goroutines for garbling and
// evaluation. It overrides the env.Config value.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithEnv sets the environment for the operations that do not take
// an env.Config argument. Garbled evaluation takes its default number
// of workers from it.
func WithEnv(cfg *env.Config) Option {
	return func(o *options) {
		o.env = cfg
	}
}

// getWorkers returns the number of worker goroutines: the WithWorkers
// value if set, otherwise the value of cfg, or the WithEnv
// environment if cfg is nil.
func (o *options) getWorkers(cfg *env.Config) int {
	if o.workers > 0 {
		return o.workers
	}
	if cfg == nil {
		cfg = o.env
	}
	return cfg.GetWorkers()
}

// WithTiming records the protocol steps to the timing.
func WithTiming(t *Timing) Option {
	return func(o *options) {
		o.timing = t
	}
}
