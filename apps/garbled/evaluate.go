//
// evaluate.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"

	"github.com/markkurossi/yao/circuit"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate GARBLED",
	Short: "Evaluate a garbled circuit file",
	Long: `Evaluate evaluates the garbled circuit file with its input
labels. If the file contains the wire labels, the output labels are
decoded to bits. Otherwise the output labels are printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := circuit.LoadGarbledFile(args[0])
		if err != nil {
			return errors.Wrap(err, "loading garbled circuit")
		}
		garbled, err := f.Garbled()
		if err != nil {
			return errors.Wrapf(err, "%s", args[0])
		}
		labels, err := f.InputLabels()
		if err != nil {
			return errors.Wrapf(err, "%s", args[0])
		}
		cfg, err := newConfig()
		if err != nil {
			return err
		}
		outputs, err := garbled.Eval(labels,
			circuit.WithEnv(cfg))
		if err != nil {
			return errors.Wrap(err, "evaluation failed")
		}

		out := cmd.OutOrStdout()
		c := garbled.Circuit
		if f.WireLabels == nil {
			for _, w := range c.Outputs() {
				fmt.Fprintf(out, "%s\t%s\n", w, outputs[w])
			}
			return nil
		}
		table, err := f.LabelTable()
		if err != nil {
			return err
		}
		result, err := circuit.Decode(table, outputs)
		if err != nil {
			return errors.Wrap(err, "decoding outputs")
		}
		return printResult(out, c, result)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}
