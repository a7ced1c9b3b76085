//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// Shuffle permutes n elements uniformly at random with the
// Fisher-Yates algorithm. The swap function swaps the elements with
// indices i and j. The swap indices are sampled from the random
// source without modulo bias.
func Shuffle(rnd io.Reader, n int, swap func(i, j int)) error {
	for i := n - 1; i > 0; i-- {
		j, err := rand.Int(rnd, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("shuffle: random source: %w", err)
		}
		swap(i, int(j.Int64()))
	}
	return nil
}

// Permutation returns a uniformly random permutation of [0, n).
func Permutation(rnd io.Reader, n int) ([]int, error) {
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	err := Shuffle(rnd, n, func(i, j int) {
		result[i], result[j] = result[j], result[i]
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
