//
// garbler.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"context"
	"fmt"

	"github.com/markkurossi/yao/env"
	"github.com/markkurossi/yao/ot"
	"github.com/markkurossi/yao/p2p"
)

// Garbler runs the garbler role of the two-party protocol. The
// garbler garbles the circuit, sends the garbled tables and the labels
// of its own inputs, and delivers the evaluator's input labels with
// oblivious transfer. The inputs assign the garbler's input wires;
// the evaluator provides the remaining input wires. The function
// returns the values of the circuit output wires.
func Garbler(ctx context.Context, conn *p2p.Conn, cfg *env.Config,
	circ *Circuit, inputs map[Wire]bool, opts ...Option) (
	result map[Wire]bool, err error) {

	done := watchContext(ctx, conn)
	defer func() {
		err = done(err)
	}()

	o := newOptions(opts)
	log := protocolLogger(ctx, cfg).WithName("garbler")

	for w := range inputs {
		if !circ.IsInput(w) {
			return nil, fmt.Errorf("%w: %s is not an input wire", ErrInput, w)
		}
	}

	log.V(1).Info("garbling circuit", "circuit", circ.String())
	garbling, err := Garble(circ, cfg, opts...)
	if err != nil {
		return nil, err
	}
	garbled := garbling.Garbled()
	o.sample("Garble", nil)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Send program info.
	log.V(1).Info("sending garbled circuit")
	if err := conn.SendString(ProtocolName); err != nil {
		return nil, err
	}
	if err := conn.SendData(circ.Digest()); err != nil {
		return nil, err
	}
	if err := conn.SendBool(garbled.PointAndPermute); err != nil {
		return nil, err
	}

	// Send garbled tables.
	if err := conn.SendUint32(len(circ.Gates)); err != nil {
		return nil, err
	}
	for idx, gate := range circ.Gates {
		if err := conn.SendString(string(gate.ID)); err != nil {
			return nil, err
		}
		for _, row := range garbled.Tables[idx] {
			if err := conn.SendData(row); err != nil {
				return nil, err
			}
		}
	}

	// Send our inputs.
	labels, err := garbling.Encode(inputs)
	if err != nil {
		return nil, err
	}
	if err := sendWireLabels(conn, labels); err != nil {
		return nil, err
	}
	if err := conn.Flush(); err != nil {
		return nil, err
	}
	o.sample("Xfer", []string{FileSize(conn.Stats.Sum()).String()})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Receive the wires the peer OTs. They must be exactly the input
	// wires we did not assign.
	peerWires, err := receiveWires(conn, len(circ.inputs))
	if err != nil {
		return nil, err
	}
	var expected int
	for _, w := range circ.inputs {
		if _, ok := inputs[w]; !ok {
			expected++
		}
	}
	if len(peerWires) != expected {
		return nil, fmt.Errorf("%w: peer requested %d wires, expected %d",
			ErrPeer, len(peerWires), expected)
	}
	otWires := make([]ot.Wire, len(peerWires))
	for idx, w := range peerWires {
		_, own := inputs[w]
		if !circ.IsInput(w) || own {
			return nil, fmt.Errorf("%w: peer can't OT wire %s", ErrPeer, w)
		}
		otWires[idx], _ = garbling.Wire(w)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Oblivious transfer of the peer's input labels.
	log.V(1).Info("transferring peer input labels", "wires", len(otWires))
	xfer := ot.NewCO(cfg)
	if err := xfer.InitSender(conn); err != nil {
		return nil, err
	}
	if err := xfer.Send(otWires); err != nil {
		return nil, err
	}
	o.sample("OT", []string{FileSize(conn.Stats.Sum()).String()})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Receive the output labels and decode them.
	outputs, err := receiveWireLabels(conn, len(circ.outputs))
	if err != nil {
		return nil, err
	}
	if len(outputs) != len(circ.outputs) {
		return nil, fmt.Errorf("%w: got %d output labels, expected %d",
			ErrPeer, len(outputs), len(circ.outputs))
	}
	result, err = garbling.Decode(outputs)
	if err != nil {
		return nil, err
	}
	log.V(2).Info("decoded result", "outputs", len(result))

	// Disclose the output label pairs for the peer.
	if err := sendLabelTable(conn, garbling.OutputTable()); err != nil {
		return nil, err
	}
	if err := conn.Flush(); err != nil {
		return nil, err
	}
	o.sample("Result", []string{FileSize(conn.Stats.Sum()).String()})
	log.V(1).Info("done")

	return result, nil
}
