//
// check.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	mrand "math/rand"
	"time"

	"github.com/markkurossi/yao/circuit"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check CIRCUIT",
	Short: "Compare garbled and plaintext evaluation with random inputs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rounds, _ := cmd.Flags().GetInt("rounds")
		seed, _ := cmd.Flags().GetInt64("seed")
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		c, err := circuit.ParseFile(args[0])
		if err != nil {
			return errors.Wrap(err, "loading circuit")
		}
		log := newLogger()
		log.V(1).Info("checking circuit", "circuit", c.String(),
			"rounds", rounds, "seed", seed)

		rnd := mrand.New(mrand.NewSource(seed))
		var failed int
		for round := 0; round < rounds; round++ {
			inputs := make(map[circuit.Wire]bool)
			for _, w := range c.Inputs() {
				inputs[w] = rnd.Intn(2) == 1
			}
			expected, err := c.Eval(inputs)
			if err != nil {
				return err
			}
			result, err := garbledEval(cmd, c, inputs)
			if err != nil {
				return errors.Wrapf(err, "round %d", round)
			}
			for w, bit := range expected {
				if result[w] != bit {
					log.Info("output mismatch", "round", round, "wire", w,
						"expected", bit, "got", result[w])
					failed++
					break
				}
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d/%d rounds passed (seed %d)\n",
			rounds-failed, rounds, seed)
		if failed > 0 {
			return errors.Errorf("%d rounds failed", failed)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().Int("rounds", 100, "number of random rounds")
	checkCmd.Flags().Int64("seed", 0, "input seed (0=time)")
	rootCmd.AddCommand(checkCmd)
}
