//
// eval.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"github.com/markkurossi/yao/circuit"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval CIRCUIT",
	Short: "Evaluate a circuit in plaintext",
	Long: `Eval evaluates the circuit in plaintext with the values of its
inputs section. With --garbled, the circuit is garbled and the garbled
circuit evaluated with the input labels.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, err := circuit.LoadDescription(args[0])
		if err != nil {
			return errors.Wrap(err, "loading circuit")
		}
		c, err := circuit.New(desc)
		if err != nil {
			return errors.Wrapf(err, "%s", args[0])
		}
		inputs, err := desc.InputValues()
		if err != nil {
			return errors.Wrapf(err, "%s", args[0])
		}
		garbled, err := cmd.Flags().GetBool("garbled")
		if err != nil {
			return err
		}
		var result map[circuit.Wire]bool
		if garbled {
			result, err = garbledEval(cmd, c, inputs)
		} else {
			result, err = c.Eval(inputs)
		}
		if err != nil {
			return errors.Wrap(err, "evaluation failed")
		}
		return printResult(cmd.OutOrStdout(), c, result)
	},
}

func garbledEval(cmd *cobra.Command, c *circuit.Circuit,
	inputs map[circuit.Wire]bool) (map[circuit.Wire]bool, error) {

	cfg, err := newConfig()
	if err != nil {
		return nil, err
	}
	opts := circuitOptions(circuit.WithEnv(cfg))
	garbling, err := circuit.Garble(c, cfg, opts...)
	if err != nil {
		return nil, err
	}
	labels, err := garbling.Encode(inputs)
	if err != nil {
		return nil, err
	}
	outputs, err := garbling.Garbled().Eval(labels, opts...)
	if err != nil {
		return nil, err
	}
	return garbling.Decode(outputs)
}

func init() {
	evalCmd.Flags().Bool("garbled", false, "evaluate the garbled circuit")
	rootCmd.AddCommand(evalCmd)
}
