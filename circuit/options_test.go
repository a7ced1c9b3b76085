//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"runtime"
	"testing"

	"github.com/markkurossi/yao/env"
	"github.com/stretchr/testify/assert"
)

func TestOptionsWorkers(t *testing.T) {
	tests := []struct {
		opts     []Option
		cfg      *env.Config
		expected int
	}{
		{
			expected: runtime.NumCPU(),
		},
		{
			opts:     []Option{WithWorkers(3)},
			expected: 3,
		},
		{
			opts:     []Option{WithWorkers(3)},
			cfg:      &env.Config{Workers: 5},
			expected: 3,
		},
		{
			cfg:      &env.Config{Workers: 5},
			expected: 5,
		},
		{
			opts:     []Option{WithEnv(&env.Config{Workers: 2})},
			expected: 2,
		},
		{
			opts:     []Option{WithEnv(&env.Config{Workers: 2})},
			cfg:      &env.Config{Workers: 5},
			expected: 5,
		},
		{
			opts:     []Option{WithEnv(&env.Config{})},
			expected: runtime.NumCPU(),
		},
	}
	for idx, test := range tests {
		o := newOptions(test.opts)
		assert.Equal(t, test.expected, o.getWorkers(test.cfg), "test %d", idx)
	}
}
