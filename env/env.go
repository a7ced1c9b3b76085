//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package env implements global environment for the garbling and
// oblivious transfer modules.
package env

import (
	"crypto/rand"
	"io"
	"runtime"

	"github.com/go-logr/logr"
	"github.com/markkurossi/yao/group"
	"github.com/markkurossi/yao/oracle"
)

// Config defines the global system configuration. It configures
// system operation for all modules. Config must not be modified after
// being passed to any module. It is safe for concurrent use by
// multiple modules as they do not modify it.
type Config struct {
	// Rand is the source of entropy. A nil value selects crypto/rand.
	Rand io.Reader

	// Group is the prime-order group for oblivious transfer. A nil
	// value selects secp256k1.
	Group group.Group

	// Oracle is the random oracle deriving OT keys from group
	// elements. A nil value selects SHA-256.
	Oracle oracle.Oracle

	// Logger receives protocol diagnostics. The zero value discards
	// everything.
	Logger logr.Logger

	// Workers limits the number of goroutines used for garbling,
	// evaluation, and OT. Zero selects runtime.NumCPU().
	Workers int
}

// GetRandom returns the source of entropy for garbling, OT, and other
// cryptography operations.
func (config *Config) GetRandom() io.Reader {
	if config != nil && config.Rand != nil {
		return config.Rand
	}
	return rand.Reader
}

// GetGroup returns the group for the OT key agreement.
func (config *Config) GetGroup() group.Group {
	if config != nil && config.Group != nil {
		return config.Group
	}
	return group.Secp256k1
}

// GetOracle returns the random oracle.
func (config *Config) GetOracle() oracle.Oracle {
	if config != nil && config.Oracle != nil {
		return config.Oracle
	}
	return oracle.SHA256
}

// GetLogger returns the configured logger.
func (config *Config) GetLogger() logr.Logger {
	if config == nil || config.Logger.GetSink() == nil {
		return logr.Discard()
	}
	return config.Logger
}

// GetWorkers returns the number of worker goroutines.
func (config *Config) GetWorkers() int {
	if config != nil && config.Workers > 0 {
		return config.Workers
	}
	return runtime.NumCPU()
}
