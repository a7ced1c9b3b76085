//
// garble.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"io"
	"os"

	"github.com/markkurossi/yao/circuit"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var garbleCmd = &cobra.Command{
	Use:   "garble CIRCUIT",
	Short: "Garble a circuit into a garbled circuit file",
	Long: `Garble garbles the circuit and writes the garbled tables to the
output file. If the circuit has an inputs section, the file contains
the labels of the input values. The --debug flag adds the label pairs
of all wires.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		debug, _ := cmd.Flags().GetBool("debug")

		desc, err := circuit.LoadDescription(args[0])
		if err != nil {
			return errors.Wrap(err, "loading circuit")
		}
		c, err := circuit.New(desc)
		if err != nil {
			return errors.Wrapf(err, "%s", args[0])
		}
		var inputs map[circuit.Wire]bool
		if desc.Inputs != nil {
			inputs, err = desc.InputValues()
			if err != nil {
				return errors.Wrapf(err, "%s", args[0])
			}
		}
		cfg, err := newConfig()
		if err != nil {
			return err
		}
		garbling, err := circuit.Garble(c, cfg, circuitOptions()...)
		if err != nil {
			return errors.Wrap(err, "garbling failed")
		}
		f, err := garbling.Marshal(inputs, debug)
		if err != nil {
			return err
		}

		if len(output) > 0 {
			err = writeFile(output, f.Write)
		} else {
			err = f.Write(cmd.OutOrStdout())
		}
		if err != nil {
			return errors.Wrap(err, "writing garbled circuit")
		}
		cfg.Logger.V(1).Info("garbled circuit", "circuit", c.String(),
			"output", output)
		return nil
	},
}

// writeFile creates the named file and writes it with write. The
// file is closed before returning and a failing close is reported as
// the write error.
func writeFile(name string, write func(out io.Writer) error) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func init() {
	garbleCmd.Flags().StringP("output", "o", "",
		"output file (default stdout)")
	garbleCmd.Flags().Bool("debug", false, "include all wire labels")
	rootCmd.AddCommand(garbleCmd)
}
