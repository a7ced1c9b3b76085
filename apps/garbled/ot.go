//
// ot.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"bytes"
	"fmt"

	"github.com/markkurossi/yao/ot"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var otCmd = &cobra.Command{
	Use:   "ot",
	Short: "Run one Chou-Orlandi oblivious transfer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bit, _ := cmd.Flags().GetUint("bit")
		cfg, err := newConfig()
		if err != nil {
			return err
		}
		rand := cfg.GetRandom()
		out := cmd.OutOrStdout()

		m0, err := ot.NewLabel(rand)
		if err != nil {
			return err
		}
		m1, err := ot.NewLabel(rand)
		if err != nil {
			return err
		}
		var d0, d1 ot.LabelData
		fmt.Fprintf(out, "  Sender m0 : %x\n", m0.Bytes(&d0))
		fmt.Fprintf(out, "  Sender m1 : %x\n", m1.Bytes(&d1))

		sender := ot.NewCOSender(cfg)
		receiver := ot.NewCOReceiver(cfg)

		sXfer, err := sender.NewTransfer(m0.Bytes(&d0), m1.Bytes(&d1))
		if err != nil {
			return err
		}
		defer sXfer.Discard()
		rXfer, err := receiver.NewTransfer(bit)
		if err != nil {
			return err
		}
		defer rXfer.Discard()

		b, err := rXfer.ReceiveA(sXfer.A())
		if err != nil {
			return err
		}
		e0, e1, err := sXfer.ReceiveB(b)
		if err != nil {
			return err
		}
		m, err := rXfer.ReceiveE(e0, e1)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Receiver m%d : %x\n", bit, m)

		expected := m0.Bytes(&d0)
		if bit == 1 {
			expected = m1.Bytes(&d1)
		}
		if !bytes.Equal(expected, m) {
			return errors.New("verify failed")
		}
		cfg.Logger.V(1).Info("transfer verified", "group",
			sender.Group().Name(), "oracle", cfg.GetOracle().Name())
		return nil
	},
}

func init() {
	otCmd.Flags().Uint("bit", 0, "receiver choice bit")
	rootCmd.AddCommand(otCmd)
}
