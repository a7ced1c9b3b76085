//
// co.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//
// Chou Orlandi OT - The Simplest Protocol for Oblivious Transfer.
//  - https://eprint.iacr.org/2015/267.pdf

package ot

import (
	"fmt"

	"github.com/markkurossi/yao/enc"
	"github.com/markkurossi/yao/env"
	"github.com/markkurossi/yao/group"
	"github.com/markkurossi/yao/oracle"
	"golang.org/x/sync/errgroup"
)

// COSender implements CO OT sender.
type COSender struct {
	group  group.Group
	oracle oracle.Oracle
	cfg    *env.Config
}

// NewCOSender creates a new CO OT sender.
func NewCOSender(cfg *env.Config) *COSender {
	return &COSender{
		group:  cfg.GetGroup(),
		oracle: cfg.GetOracle(),
		cfg:    cfg,
	}
}

// Group returns sender's group.
func (s *COSender) Group() group.Group {
	return s.group
}

// NewTransfer creates a new OT transfer for the values. Both values
// must be enc.OTPMessageSize bytes long.
func (s *COSender) NewTransfer(m0, m1 []byte) (*COSenderXfer, error) {
	if len(m0) != enc.OTPMessageSize || len(m1) != enc.OTPMessageSize {
		return nil, fmt.Errorf("%w: %d, %d", ErrMessageSize, len(m0), len(m1))
	}
	a, err := s.group.RandomScalar(s.cfg.GetRandom())
	if err != nil {
		return nil, err
	}
	return &COSenderXfer{
		sender: s,
		m0:     append([]byte(nil), m0...),
		m1:     append([]byte(nil), m1...),
		a:      a,
		pubA:   s.group.ScalarBaseMult(a),
	}, nil
}

// COSenderXfer implements the sender side of one CO OT transfer. A
// transfer is single use.
type COSenderXfer struct {
	sender *COSender
	m0     []byte
	m1     []byte
	a      group.Scalar
	pubA   group.Point
	done   bool
}

// A returns sender's public key A=aG.
func (s *COSenderXfer) A() []byte {
	return s.pubA.Bytes()
}

// ReceiveB processes receiver's public key B and returns the
// encrypted values e0 and e1. The transfer's secret is erased before
// ReceiveB returns.
func (s *COSenderXfer) ReceiveB(data []byte) (e0, e1 []byte, err error) {
	if s.done {
		return nil, nil, ErrTransferUsed
	}
	s.done = true
	defer s.erase()

	g := s.sender.group
	b, err := g.DecodePoint(data)
	if err != nil {
		return nil, nil, err
	}

	// k0 = RO(aB), k1 = RO(a(B-A))
	k0, err := s.sender.oracle.Query(g.ScalarMult(s.a, b).Bytes())
	if err != nil {
		return nil, nil, err
	}
	k1, err := s.sender.oracle.Query(g.ScalarMult(s.a, g.Sub(b, s.pubA)).Bytes())
	if err != nil {
		return nil, nil, err
	}
	e0, err = enc.OTPEncrypt(k0, s.m0)
	if err != nil {
		return nil, nil, err
	}
	e1, err = enc.OTPEncrypt(k1, s.m1)
	if err != nil {
		return nil, nil, err
	}
	return e0, e1, nil
}

// Discard erases the transfer's secrets without completing it.
func (s *COSenderXfer) Discard() {
	s.done = true
	s.erase()
}

func (s *COSenderXfer) erase() {
	s.a.Zero()
	zero(s.m0)
	zero(s.m1)
}

// COReceiver implements CO OT receiver.
type COReceiver struct {
	group  group.Group
	oracle oracle.Oracle
	cfg    *env.Config
}

// NewCOReceiver creates a new CO OT receiver.
func NewCOReceiver(cfg *env.Config) *COReceiver {
	return &COReceiver{
		group:  cfg.GetGroup(),
		oracle: cfg.GetOracle(),
		cfg:    cfg,
	}
}

// Group returns receiver's group.
func (r *COReceiver) Group() group.Group {
	return r.group
}

// NewTransfer creates a new OT transfer for the selection bit.
func (r *COReceiver) NewTransfer(bit uint) (*COReceiverXfer, error) {
	if bit > 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBit, bit)
	}
	b, err := r.group.RandomScalar(r.cfg.GetRandom())
	if err != nil {
		return nil, err
	}
	return &COReceiverXfer{
		receiver: r,
		bit:      bit,
		b:        b,
	}, nil
}

type receiverState int

const (
	stateNew receiverState = iota
	stateKeyed
	stateDone
)

// COReceiverXfer implements the receiver side of one CO OT
// transfer. A transfer is single use.
type COReceiverXfer struct {
	receiver *COReceiver
	bit      uint
	b        group.Scalar
	kR       []byte
	state    receiverState
}

// ReceiveA processes sender's public key A and returns receiver's
// public key B.
func (r *COReceiverXfer) ReceiveA(data []byte) ([]byte, error) {
	if r.state != stateNew {
		return nil, ErrTransferUsed
	}
	r.state = stateKeyed
	defer r.b.Zero()

	g := r.receiver.group
	a, err := g.DecodePoint(data)
	if err != nil {
		r.state = stateDone
		return nil, err
	}

	// B = bG if bit==0, A+bG otherwise.
	b := g.ScalarBaseMult(r.b)
	if r.bit != 0 {
		b = g.Add(a, b)
	}

	// kR = RO(bA)
	r.kR, err = r.receiver.oracle.Query(g.ScalarMult(r.b, a).Bytes())
	if err != nil {
		r.state = stateDone
		return nil, err
	}
	return b.Bytes(), nil
}

// ReceiveE processes sender's encrypted values and returns the value
// selected by the transfer's bit. It returns enc.ErrDecrypt if the
// selected ciphertext does not decrypt under receiver's key.
func (r *COReceiverXfer) ReceiveE(e0, e1 []byte) ([]byte, error) {
	if r.state != stateKeyed {
		return nil, ErrTransferUsed
	}
	r.state = stateDone
	defer zero(r.kR)

	e := e0
	if r.bit != 0 {
		e = e1
	}
	return enc.OTPDecrypt(r.kR, e)
}

// Discard erases the transfer's secrets without completing it.
func (r *COReceiverXfer) Discard() {
	r.state = stateDone
	r.b.Zero()
	zero(r.kR)
}

func zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

var (
	_ OT = &CO{}
)

// CO implements the OT interface with CO OT. Each wire is transferred
// with a fresh transfer session.
type CO struct {
	cfg *env.Config
	io  IO
}

// NewCO creates a new CO OT implementing the OT interface.
func NewCO(cfg *env.Config) *CO {
	return &CO{
		cfg: cfg,
	}
}

// InitSender initializes the OT sender.
func (co *CO) InitSender(io IO) error {
	co.io = io
	if err := SendString(io, co.cfg.GetGroup().Name()); err != nil {
		return err
	}
	return io.Flush()
}

// InitReceiver initializes the OT receiver.
func (co *CO) InitReceiver(io IO) error {
	co.io = io
	name, err := ReceiveString(io)
	if err != nil {
		return err
	}
	if name != co.cfg.GetGroup().Name() {
		return fmt.Errorf("%w: group %s, expected %s", ErrProtocol, name,
			co.cfg.GetGroup().Name())
	}
	return nil
}

// Send sends the wire labels with OT.
func (co *CO) Send(wires []Wire) error {
	log := co.cfg.GetLogger()
	sender := NewCOSender(co.cfg)

	xfers := make([]*COSenderXfer, len(wires))
	defer func() {
		for _, xfer := range xfers {
			if xfer != nil {
				xfer.Discard()
			}
		}
	}()

	var l0Buf, l1Buf LabelData
	for idx, w := range wires {
		xfer, err := sender.NewTransfer(w.L0.Bytes(&l0Buf), w.L1.Bytes(&l1Buf))
		if err != nil {
			return err
		}
		xfers[idx] = xfer
	}
	if err := co.io.SendUint32(len(wires)); err != nil {
		return err
	}
	for _, xfer := range xfers {
		if err := co.io.SendData(xfer.A()); err != nil {
			return err
		}
	}
	if err := co.io.Flush(); err != nil {
		return err
	}
	log.V(2).Info("sent OT public keys", "count", len(wires))

	bs, err := co.receiveN(len(wires))
	if err != nil {
		return err
	}

	es := make([][2][]byte, len(wires))
	var g errgroup.Group
	g.SetLimit(co.cfg.GetWorkers())
	for i := range xfers {
		i := i
		g.Go(func() error {
			e0, e1, err := xfers[i].ReceiveB(bs[i])
			if err != nil {
				return fmt.Errorf("transfer %d: %w", i, err)
			}
			es[i] = [2][]byte{e0, e1}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, e := range es {
		if err := co.io.SendData(e[0]); err != nil {
			return err
		}
		if err := co.io.SendData(e[1]); err != nil {
			return err
		}
	}
	log.V(2).Info("sent OT ciphertexts", "count", len(wires))

	return co.io.Flush()
}

// Receive receives the wire labels with OT based on the flag values.
func (co *CO) Receive(flags []bool, result []Label) error {
	if len(result) != len(flags) {
		return fmt.Errorf("ot: result length %d, expected %d",
			len(result), len(flags))
	}
	log := co.cfg.GetLogger()
	receiver := NewCOReceiver(co.cfg)

	xfers := make([]*COReceiverXfer, len(flags))
	defer func() {
		for _, xfer := range xfers {
			if xfer != nil {
				xfer.Discard()
			}
		}
	}()
	for idx, flag := range flags {
		var bit uint
		if flag {
			bit = 1
		}
		xfer, err := receiver.NewTransfer(bit)
		if err != nil {
			return err
		}
		xfers[idx] = xfer
	}

	as, err := co.receiveN(len(flags))
	if err != nil {
		return err
	}
	bs := make([][]byte, len(flags))
	var g errgroup.Group
	g.SetLimit(co.cfg.GetWorkers())
	for i := range xfers {
		i := i
		g.Go(func() error {
			b, err := xfers[i].ReceiveA(as[i])
			if err != nil {
				return fmt.Errorf("transfer %d: %w", i, err)
			}
			bs[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := co.io.SendUint32(len(bs)); err != nil {
		return err
	}
	for _, b := range bs {
		if err := co.io.SendData(b); err != nil {
			return err
		}
	}
	if err := co.io.Flush(); err != nil {
		return err
	}
	log.V(2).Info("sent OT choices", "count", len(flags))

	es := make([][2][]byte, len(flags))
	for i := range es {
		for j := 0; j < 2; j++ {
			data, err := co.io.ReceiveData()
			if err != nil {
				return err
			}
			es[i][j] = append([]byte(nil), data...)
		}
	}
	for i := range xfers {
		i := i
		g.Go(func() error {
			m, err := xfers[i].ReceiveE(es[i][0], es[i][1])
			if err != nil {
				return fmt.Errorf("transfer %d: %w", i, err)
			}
			return result[i].SetBytes(m)
		})
	}
	return g.Wait()
}

func (co *CO) receiveN(expected int) ([][]byte, error) {
	n, err := co.io.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	if n != expected {
		return nil, fmt.Errorf("%w: got %d keys, expected %d",
			ErrProtocol, n, expected)
	}
	result := make([][]byte, n)
	for i := range result {
		data, err := co.io.ReceiveData()
		if err != nil {
			return nil, err
		}
		result[i] = append([]byte(nil), data...)
	}
	return result, nil
}
