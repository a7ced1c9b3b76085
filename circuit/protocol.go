//
// protocol.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/go-logr/logr"
	"github.com/markkurossi/yao/env"
	"github.com/markkurossi/yao/ot"
	"github.com/markkurossi/yao/p2p"
)

// ErrPeer signals a protocol violation by the peer.
var ErrPeer = errors.New("circuit: peer protocol error")

// ProtocolName identifies the two-party protocol version.
const ProtocolName = "yao-gc/1"

func protocolLogger(ctx context.Context, cfg *env.Config) logr.Logger {
	if cfg != nil && cfg.Logger.GetSink() != nil {
		return cfg.Logger
	}
	return logr.FromContextOrDiscard(ctx)
}

// watchContext shuts down conn when ctx is done. This releases the
// protocol from blocking reads and writes. The returned function stops
// watching and reports the context error for failures that follow the
// shutdown.
func watchContext(ctx context.Context, conn *p2p.Conn) func(err error) error {
	stop := context.AfterFunc(ctx, func() {
		conn.Shutdown()
	})
	return func(err error) error {
		if stop() || err == nil || ctx.Err() == nil {
			return err
		}
		if errors.Is(err, ctx.Err()) {
			return err
		}
		return fmt.Errorf("%w: %w", ctx.Err(), err)
	}
}

func (o *options) sample(label string, cols []string) {
	if o.timing != nil {
		o.timing.Sample(label, cols)
	}
}

func sortWires(wires []Wire) {
	sort.Slice(wires, func(i, j int) bool {
		return natLess(string(wires[i]), string(wires[j]))
	})
}

func sendWires(conn *p2p.Conn, wires []Wire) error {
	if err := conn.SendUint32(len(wires)); err != nil {
		return err
	}
	for _, w := range wires {
		if err := conn.SendString(string(w)); err != nil {
			return err
		}
	}
	return nil
}

func receiveWires(conn *p2p.Conn, max int) ([]Wire, error) {
	n, err := conn.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	if n > max {
		return nil, fmt.Errorf("%w: too many wires: %d > %d", ErrPeer, n, max)
	}
	seen := make(map[Wire]bool)
	var result []Wire
	for i := 0; i < n; i++ {
		s, err := conn.ReceiveString()
		if err != nil {
			return nil, err
		}
		w := Wire(s)
		if seen[w] {
			return nil, fmt.Errorf("%w: duplicate wire %s", ErrPeer, w)
		}
		seen[w] = true
		result = append(result, w)
	}
	return result, nil
}

func sendWireLabels(conn *p2p.Conn, labels map[Wire]ot.Label) error {
	var wires []Wire
	for w := range labels {
		wires = append(wires, w)
	}
	sortWires(wires)

	var data ot.LabelData
	if err := conn.SendUint32(len(wires)); err != nil {
		return err
	}
	for _, w := range wires {
		if err := conn.SendString(string(w)); err != nil {
			return err
		}
		if err := conn.SendLabel(labels[w], &data); err != nil {
			return err
		}
	}
	return nil
}

func receiveWireLabels(conn *p2p.Conn, max int) (map[Wire]ot.Label, error) {
	n, err := conn.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	if n > max {
		return nil, fmt.Errorf("%w: too many labels: %d > %d", ErrPeer, n, max)
	}
	var data ot.LabelData
	result := make(map[Wire]ot.Label)
	for i := 0; i < n; i++ {
		s, err := conn.ReceiveString()
		if err != nil {
			return nil, err
		}
		var label ot.Label
		if err := conn.ReceiveLabel(&label, &data); err != nil {
			return nil, err
		}
		w := Wire(s)
		if _, ok := result[w]; ok {
			return nil, fmt.Errorf("%w: duplicate wire %s", ErrPeer, w)
		}
		result[w] = label
	}
	return result, nil
}

func sendLabelTable(conn *p2p.Conn, table map[Wire]ot.Wire) error {
	var wires []Wire
	for w := range table {
		wires = append(wires, w)
	}
	sortWires(wires)

	var data ot.LabelData
	if err := conn.SendUint32(len(wires)); err != nil {
		return err
	}
	for _, w := range wires {
		if err := conn.SendString(string(w)); err != nil {
			return err
		}
		if err := conn.SendLabel(table[w].L0, &data); err != nil {
			return err
		}
		if err := conn.SendLabel(table[w].L1, &data); err != nil {
			return err
		}
	}
	return nil
}

func receiveLabelTable(conn *p2p.Conn, max int) (map[Wire]ot.Wire, error) {
	n, err := conn.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	if n > max {
		return nil, fmt.Errorf("%w: too many wires: %d > %d", ErrPeer, n, max)
	}
	var data ot.LabelData
	result := make(map[Wire]ot.Wire)
	for i := 0; i < n; i++ {
		s, err := conn.ReceiveString()
		if err != nil {
			return nil, err
		}
		var wire ot.Wire
		if err := conn.ReceiveLabel(&wire.L0, &data); err != nil {
			return nil, err
		}
		if err := conn.ReceiveLabel(&wire.L1, &data); err != nil {
			return nil, err
		}
		result[Wire(s)] = wire
	}
	return result, nil
}
