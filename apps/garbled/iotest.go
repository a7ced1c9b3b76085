//
// iotest.go
//
// Copyright (c) 2023-2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"time"

	"github.com/markkurossi/yao/circuit"
	"github.com/markkurossi/yao/ot"
	"github.com/markkurossi/yao/p2p"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var iotestCmd = &cobra.Command{
	Use:   "iotest",
	Short: "Measure label streaming over the in-memory connection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetInt64("size")
		cpuprofile, _ := cmd.Flags().GetString("cpuprofile")

		if len(cpuprofile) > 0 {
			f, err := os.Create(cpuprofile)
			if err != nil {
				return errors.Wrap(err, "could not create CPU profile")
			}
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				return errors.Wrap(err, "could not start CPU profile")
			}
			defer pprof.StopCPUProfile()
		}

		gConn, eConn := p2p.Pipe()
		start := time.Now()

		done := make(chan error)
		go func() {
			done <- receiveLabels(eConn)
		}()
		if err := sendLabels(gConn, size); err != nil {
			return err
		}
		if err := <-done; err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(cmd.OutOrStdout(), "Sent: %v in %v (%v/s)\n",
			circuit.FileSize(gConn.Stats.Sum()), elapsed,
			circuit.FileSize(float64(gConn.Stats.Sum())/elapsed.Seconds()))
		return eConn.Close()
	},
}

func sendLabels(conn *p2p.Conn, size int64) error {
	var sent int64
	var label ot.Label
	var labelData ot.LabelData

	for sent < size {
		if err := conn.SendLabel(label, &labelData); err != nil {
			return err
		}
		sent += int64(len(labelData))
	}
	return conn.Close()
}

func receiveLabels(conn *p2p.Conn) error {
	var label ot.Label
	var labelData ot.LabelData
	for {
		err := conn.ReceiveLabel(&label, &labelData)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

func init() {
	iotestCmd.Flags().Int64("size", 64*1024*1024, "bytes to send")
	iotestCmd.Flags().String("cpuprofile", "",
		"write cpu profile to `file`")
	rootCmd.AddCommand(iotestCmd)
}
