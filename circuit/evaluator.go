//
// evaluator.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"context"
	"fmt"

	"github.com/markkurossi/yao/env"
	"github.com/markkurossi/yao/ot"
	"github.com/markkurossi/yao/p2p"
)

// Evaluator runs the evaluator role of the two-party protocol. The
// evaluator receives the garbled circuit and the garbler's input
// labels, fetches its own input labels with oblivious transfer, and
// evaluates the garbled circuit. The inputs must assign exactly the
// input wires the garbler did not assign. The function returns the
// values of the circuit output wires.
func Evaluator(ctx context.Context, conn *p2p.Conn, cfg *env.Config,
	circ *Circuit, inputs map[Wire]bool, opts ...Option) (
	result map[Wire]bool, err error) {

	done := watchContext(ctx, conn)
	defer func() {
		err = done(err)
	}()

	o := newOptions(opts)
	log := protocolLogger(ctx, cfg).WithName("evaluator")

	// Receive program info.
	name, err := conn.ReceiveString()
	if err != nil {
		return nil, err
	}
	if name != ProtocolName {
		return nil, fmt.Errorf("%w: unsupported protocol %q", ErrPeer, name)
	}
	digest, err := conn.ReceiveData()
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(digest, circ.Digest()) {
		return nil, fmt.Errorf("%w: circuit mismatch", ErrPeer)
	}
	pointAndPermute, err := conn.ReceiveBool()
	if err != nil {
		return nil, err
	}

	// Receive garbled tables.
	n, err := conn.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	if n != len(circ.Gates) {
		return nil, fmt.Errorf("%w: got %d gates, expected %d",
			ErrPeer, n, len(circ.Gates))
	}
	tables := make(map[GateID]GarbledTable)
	for _, gate := range circ.Gates {
		id, err := conn.ReceiveString()
		if err != nil {
			return nil, err
		}
		if GateID(id) != gate.ID {
			return nil, fmt.Errorf("%w: got gate %s, expected %s",
				ErrPeer, id, gate.ID)
		}
		var table GarbledTable
		for i := range table {
			table[i], err = conn.ReceiveData()
			if err != nil {
				return nil, err
			}
		}
		tables[gate.ID] = table
	}
	garbled, err := NewGarbled(circ, tables, pointAndPermute)
	if err != nil {
		return nil, err
	}
	log.V(1).Info("received garbled circuit", "gates", len(tables),
		"pointAndPermute", pointAndPermute)

	// Receive peer inputs.
	labels, err := receiveWireLabels(conn, len(circ.inputs))
	if err != nil {
		return nil, err
	}
	for w := range labels {
		if !circ.IsInput(w) {
			return nil, fmt.Errorf("%w: %s is not an input wire", ErrPeer, w)
		}
	}
	o.sample("Recv", []string{FileSize(conn.Stats.Sum()).String()})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Our inputs are the remaining input wires.
	var wires []Wire
	var flags []bool
	for _, w := range circ.inputs {
		if _, ok := labels[w]; ok {
			continue
		}
		bit, ok := inputs[w]
		if !ok {
			return nil, fmt.Errorf("%w: missing input wire %s", ErrInput, w)
		}
		wires = append(wires, w)
		flags = append(flags, bit)
	}
	if len(wires) != len(inputs) {
		return nil, fmt.Errorf("%w: got %d inputs, expected %d",
			ErrInput, len(inputs), len(wires))
	}
	if err := sendWires(conn, wires); err != nil {
		return nil, err
	}
	if err := conn.Flush(); err != nil {
		return nil, err
	}

	// Oblivious transfer of our input labels.
	log.V(1).Info("receiving input labels", "wires", len(wires))
	xfer := ot.NewCO(cfg)
	if err := xfer.InitReceiver(conn); err != nil {
		return nil, err
	}
	otLabels := make([]ot.Label, len(wires))
	if err := xfer.Receive(flags, otLabels); err != nil {
		return nil, err
	}
	for idx, w := range wires {
		labels[w] = otLabels[idx]
	}
	o.sample("OT", []string{FileSize(conn.Stats.Sum()).String()})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Evaluate the garbled circuit.
	evalOpts := append([]Option{WithEnv(cfg)}, opts...)
	outputs, err := garbled.Eval(labels, evalOpts...)
	if err != nil {
		return nil, err
	}
	o.sample("Eval", nil)
	log.V(2).Info("evaluated circuit", "outputs", len(outputs))

	// Send output labels to the garbler.
	if err := sendWireLabels(conn, outputs); err != nil {
		return nil, err
	}
	if err := conn.Flush(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Decode the output labels with the disclosed label pairs.
	table, err := receiveLabelTable(conn, len(circ.outputs))
	if err != nil {
		return nil, err
	}
	result, err = Decode(table, outputs)
	if err != nil {
		return nil, err
	}
	o.sample("Result", []string{FileSize(conn.Stats.Sum()).String()})
	log.V(1).Info("done")

	return result, nil
}
