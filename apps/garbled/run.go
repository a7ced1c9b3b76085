//
// run.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"context"
	"math/big"
	"os"

	"github.com/markkurossi/yao/circuit"
	"github.com/markkurossi/yao/p2p"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run CIRCUIT",
	Short: "Run the two-party protocol on a circuit",
	Long: `Run runs the garbler and the evaluator over an in-memory
connection. The input wires alternate between the garbler's argument x
and the evaluator's argument y, least significant bits first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		xArg, _ := cmd.Flags().GetString("x")
		yArg, _ := cmd.Flags().GetString("y")
		timing, _ := cmd.Flags().GetBool("timing")

		x, ok := new(big.Int).SetString(xArg, 0)
		if !ok {
			return errors.Errorf("invalid argument x: %s", xArg)
		}
		y, ok := new(big.Int).SetString(yArg, 0)
		if !ok {
			return errors.Errorf("invalid argument y: %s", yArg)
		}

		c, err := circuit.ParseFile(args[0])
		if err != nil {
			return errors.Wrap(err, "loading circuit")
		}
		xInputs, yInputs, err := c.SplitInputs(x, y)
		if err != nil {
			return err
		}
		cfg, err := newConfig()
		if err != nil {
			return err
		}

		gTiming := circuit.NewTiming()
		eTiming := circuit.NewTiming()
		gConn, eConn := p2p.Pipe()
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		done := make(chan error)
		go func() {
			_, err := circuit.Garbler(ctx, gConn, cfg, c, xInputs,
				circuitOptions(circuit.WithTiming(gTiming))...)
			if err != nil {
				gConn.Close()
			}
			done <- err
		}()
		result, err := circuit.Evaluator(ctx, eConn, cfg, c, yInputs,
			circuitOptions(circuit.WithTiming(eTiming))...)
		if err != nil {
			eConn.Close()
			<-done
			return errors.Wrap(err, "evaluator")
		}
		if err := <-done; err != nil {
			return errors.Wrap(err, "garbler")
		}

		if timing {
			gTiming.Print(os.Stderr, gConn.Stats)
			eTiming.Print(os.Stderr, eConn.Stats)
		}
		if err := gConn.Close(); err != nil {
			return err
		}
		if err := eConn.Close(); err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), c, result)
	},
}

func init() {
	runCmd.Flags().StringP("x", "x", "0", "garbler argument")
	runCmd.Flags().StringP("y", "y", "0", "evaluator argument")
	runCmd.Flags().Bool("timing", false, "print protocol timing")
	rootCmd.AddCommand(runCmd)
}
