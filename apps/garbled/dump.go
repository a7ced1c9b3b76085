//
// dump.go
//
// Copyright (c) 2019-2026 Markku Rossi
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

var dumpCmd = &cobra.Command{
	Use:   "dump CIRCUIT...",
	Short: "Print circuit structure",
	Long: `Dump prints the gates of the circuits in topological order. With
--dot, it prints the circuits as graphviz graphs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dot, _ := cmd.Flags().GetBool("dot")
		out := cmd.OutOrStdout()

		for _, file := range args {
			c, err := circuit.ParseFile(file)
			if err != nil {
				return errors.Wrapf(err, "%s", file)
			}
			if dot {
				c.Dot(out)
				continue
			}
			fmt.Fprintf(out, "%s: %s depth=%d digest=%x\n",
				file, c, c.Depth(), c.Digest())
			c.Dump(out)
		}
		return nil
	},
}

func init() {
	dumpCmd.Flags().Bool("dot", false, "print graphviz output")
	rootCmd.AddCommand(dumpCmd)
}
