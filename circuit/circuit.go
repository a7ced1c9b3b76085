//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package circuit implements boolean circuits, their garbling and
// garbled evaluation, and the two-party garbled circuit protocol.
package circuit

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

var (
	// ErrInvalidGate signals a structurally invalid gate.
	ErrInvalidGate = errors.New("circuit: invalid gate")

	// ErrInvalidTable signals an invalid gate truth table.
	ErrInvalidTable = errors.New("circuit: invalid truth table")

	// ErrDuplicateOutput signals a wire driven by more than one gate.
	ErrDuplicateOutput = errors.New("circuit: duplicate output wire")

	// ErrCycle signals a cyclic circuit.
	ErrCycle = errors.New("circuit: cycle detected")

	// ErrInput signals missing, unknown, or invalid input values.
	ErrInput = errors.New("circuit: invalid input")
)

// Wire identifies a circuit wire.
type Wire string

// GateID identifies a circuit gate.
type GateID string

// Operation specifies gate function.
type Operation byte

// Gate functions.
const (
	XOR Operation = iota
	XNOR
	AND
	OR
	NAND
	NOR
	TABLE
)

// Stats holds statistics about circuit operations.
type Stats [TABLE + 1]int

func (op Operation) String() string {
	switch op {
	case XOR:
		return "XOR"
	case XNOR:
		return "XNOR"
	case AND:
		return "AND"
	case OR:
		return "OR"
	case NAND:
		return "NAND"
	case NOR:
		return "NOR"
	case TABLE:
		return "TABLE"
	default:
		return fmt.Sprintf("{Operation %d}", op)
	}
}

var opTables = map[Operation]Table{
	XOR:  {0, 1, 1, 0},
	XNOR: {1, 0, 0, 1},
	AND:  {0, 0, 0, 1},
	OR:   {0, 1, 1, 1},
	NAND: {1, 1, 1, 0},
	NOR:  {1, 0, 0, 0},
}

// Table returns the truth table of the named operation. It returns
// false for TABLE and unknown operations.
func (op Operation) Table() (Table, bool) {
	t, ok := opTables[op]
	return t, ok
}

// ParseOperation parses the operation name.
func ParseOperation(name string) (Operation, error) {
	for op := XOR; op < TABLE; op++ {
		if op.String() == name {
			return op, nil
		}
	}
	return TABLE, fmt.Errorf("%w: unknown gate type %q", ErrInvalidGate, name)
}

// Table defines a gate truth table. The entry for inputs (a,b) is at
// index 2a+b.
type Table [4]byte

// Eval evaluates the table for the input bits.
func (t Table) Eval(a, b bool) bool {
	return t[index(a, b)] != 0
}

// Operation returns the named operation matching the table, or TABLE
// if no named operation matches.
func (t Table) Operation() Operation {
	for op := XOR; op < TABLE; op++ {
		if opTables[op] == t {
			return op
		}
	}
	return TABLE
}

func (t Table) String() string {
	return fmt.Sprintf("[%d,%d,%d,%d]", t[0], t[1], t[2], t[3])
}

func index(a, b bool) int {
	var idx int
	if a {
		idx |= 0x2
	}
	if b {
		idx |= 0x1
	}
	return idx
}

// Gate specifies a boolean gate.
type Gate struct {
	ID     GateID
	Input0 Wire
	Input1 Wire
	Output Wire
	Op     Operation
	Table  Table

	level int
	pos   int
	in0   int
	in1   int
	out   int
}

func (g *Gate) String() string {
	return fmt.Sprintf("%s: %v %s %v", g.ID, g.Inputs(), g.Op, g.Output)
}

// Inputs returns gate input wires.
func (g *Gate) Inputs() []Wire {
	return []Wire{g.Input0, g.Input1}
}

// Level returns the gate's depth in the circuit. Gates reading only
// circuit input wires are at level 0.
func (g *Gate) Level() int {
	return g.level
}

// Circuit specifies a boolean circuit. Gates are stored in a
// topological order.
type Circuit struct {
	Gates []*Gate
	Stats Stats

	gates     map[GateID]*Gate
	wires     []Wire
	wireIndex map[Wire]int
	inputs    []Wire
	outputs   []Wire
	producers map[Wire]*Gate
	consumers map[Wire][]*Gate
	levels    [][]*Gate
}

// NewCircuit creates a circuit from the gates. It validates the
// circuit structure and sorts the gates topologically. The gate
// tables must be set; the Op of each gate is derived from its table.
// The circuit holds copies of the gates and the argument gates are not
// modified.
func NewCircuit(gates []*Gate) (*Circuit, error) {
	c := &Circuit{
		gates:     make(map[GateID]*Gate),
		wireIndex: make(map[Wire]int),
		producers: make(map[Wire]*Gate),
		consumers: make(map[Wire][]*Gate),
	}

	// Deterministic processing order. The circuit owns copies of the
	// gates.
	sorted := make([]*Gate, len(gates))
	for i, gate := range gates {
		g := *gate
		sorted[i] = &g
	}
	sort.Slice(sorted, func(i, j int) bool {
		return natLess(string(sorted[i].ID), string(sorted[j].ID))
	})

	for _, g := range sorted {
		if len(g.ID) == 0 {
			return nil, fmt.Errorf("%w: empty gate ID", ErrInvalidGate)
		}
		if _, ok := c.gates[g.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate gate %s", ErrInvalidGate, g.ID)
		}
		if len(g.Input0) == 0 || len(g.Input1) == 0 || len(g.Output) == 0 {
			return nil, fmt.Errorf("%w: %s: empty wire ID", ErrInvalidGate, g.ID)
		}
		for _, v := range g.Table {
			if v > 1 {
				return nil, fmt.Errorf("%w: gate %s: %v",
					ErrInvalidTable, g.ID, g.Table)
			}
		}
		if other, ok := c.producers[g.Output]; ok {
			return nil, fmt.Errorf("%w: wire %s driven by gates %s and %s",
				ErrDuplicateOutput, g.Output, other.ID, g.ID)
		}
		g.Op = g.Table.Operation()
		c.gates[g.ID] = g
		c.producers[g.Output] = g

		c.consumers[g.Input0] = append(c.consumers[g.Input0], g)
		if g.Input1 != g.Input0 {
			c.consumers[g.Input1] = append(c.consumers[g.Input1], g)
		}
		c.addWire(g.Input0)
		c.addWire(g.Input1)
		c.addWire(g.Output)
	}

	sort.Slice(c.wires, func(i, j int) bool {
		return natLess(string(c.wires[i]), string(c.wires[j]))
	})
	for idx, w := range c.wires {
		c.wireIndex[w] = idx
		if _, ok := c.producers[w]; !ok {
			c.inputs = append(c.inputs, w)
		}
		if _, ok := c.consumers[w]; !ok {
			c.outputs = append(c.outputs, w)
		}
	}
	for _, g := range sorted {
		g.in0 = c.wireIndex[g.Input0]
		g.in1 = c.wireIndex[g.Input1]
		g.out = c.wireIndex[g.Output]
	}

	if err := c.sort(sorted); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Circuit) addWire(w Wire) {
	if _, ok := c.wireIndex[w]; ok {
		return
	}
	c.wireIndex[w] = len(c.wires)
	c.wires = append(c.wires, w)
}

// sort orders the gates topologically with Kahn's algorithm. Each
// gate waits for its distinct input wires that some gate produces.
func (c *Circuit) sort(gates []*Gate) error {
	pending := make(map[GateID]int)
	var queue []*Gate

	for _, g := range gates {
		var count int
		for _, w := range g.distinctInputs() {
			if _, ok := c.producers[w]; ok {
				count++
			}
		}
		pending[g.ID] = count
		if count == 0 {
			queue = append(queue, g)
		}
	}

	c.Gates = make([]*Gate, 0, len(gates))
	for len(queue) > 0 {
		g := queue[0]
		queue = queue[1:]

		g.level = 0
		for _, w := range g.distinctInputs() {
			if p, ok := c.producers[w]; ok && p.level+1 > g.level {
				g.level = p.level + 1
			}
		}
		g.pos = len(c.Gates)
		c.Gates = append(c.Gates, g)
		c.Stats[g.Op]++

		for _, consumer := range c.consumers[g.Output] {
			pending[consumer.ID]--
			if pending[consumer.ID] == 0 {
				queue = append(queue, consumer)
			}
		}
	}
	if len(c.Gates) != len(gates) {
		var stuck []string
		for _, g := range gates {
			if pending[g.ID] > 0 {
				stuck = append(stuck, string(g.ID))
			}
		}
		c.Gates = nil
		return fmt.Errorf("%w: gates %s", ErrCycle, strings.Join(stuck, ","))
	}

	for _, g := range c.Gates {
		for len(c.levels) <= g.level {
			c.levels = append(c.levels, nil)
		}
		c.levels[g.level] = append(c.levels[g.level], g)
	}
	return nil
}

func (g *Gate) distinctInputs() []Wire {
	if g.Input0 == g.Input1 {
		return []Wire{g.Input0}
	}
	return []Wire{g.Input0, g.Input1}
}

// NumGates returns the number of gates.
func (c *Circuit) NumGates() int {
	return len(c.Gates)
}

// NumWires returns the number of wires.
func (c *Circuit) NumWires() int {
	return len(c.wires)
}

// Gate returns the gate by its ID.
func (c *Circuit) Gate(id GateID) (*Gate, bool) {
	g, ok := c.gates[id]
	return g, ok
}

// Wires returns all circuit wires in natural order.
func (c *Circuit) Wires() []Wire {
	return append([]Wire(nil), c.wires...)
}

// Inputs returns the circuit input wires in natural order. An input
// wire is not the output of any gate.
func (c *Circuit) Inputs() []Wire {
	return append([]Wire(nil), c.inputs...)
}

// Outputs returns the circuit output wires in natural order. An
// output wire is not consumed by any gate.
func (c *Circuit) Outputs() []Wire {
	return append([]Wire(nil), c.outputs...)
}

// IsInput tests if the wire is a circuit input wire.
func (c *Circuit) IsInput(w Wire) bool {
	_, known := c.wireIndex[w]
	_, produced := c.producers[w]
	return known && !produced
}

// IsOutput tests if the wire is a circuit output wire.
func (c *Circuit) IsOutput(w Wire) bool {
	_, known := c.wireIndex[w]
	_, consumed := c.consumers[w]
	return known && !consumed
}

// Producer returns the gate driving the wire.
func (c *Circuit) Producer(w Wire) (GateID, bool) {
	g, ok := c.producers[w]
	if !ok {
		return "", false
	}
	return g.ID, true
}

// Consumers returns the gates reading the wire in topological order.
func (c *Circuit) Consumers(w Wire) []GateID {
	var result []GateID
	for _, g := range c.consumers[w] {
		result = append(result, g.ID)
	}
	sort.Slice(result, func(i, j int) bool {
		return c.gates[result[i]].level < c.gates[result[j]].level ||
			(c.gates[result[i]].level == c.gates[result[j]].level &&
				natLess(string(result[i]), string(result[j])))
	})
	return result
}

// Levels returns the gates grouped by their depth. The gates of a
// level depend only on the gates of the earlier levels.
func (c *Circuit) Levels() [][]*Gate {
	return c.levels
}

// Depth returns the circuit depth.
func (c *Circuit) Depth() int {
	return len(c.levels)
}

func (c *Circuit) String() string {
	var stats string

	for k := XOR; k <= TABLE; k++ {
		v := c.Stats[k]
		if v == 0 {
			continue
		}
		if len(stats) > 0 {
			stats += " "
		}
		stats += fmt.Sprintf("%s=%d", k, v)
	}
	return fmt.Sprintf("#gates=%d (%s) #w=%d #in=%d #out=%d depth=%d",
		len(c.Gates), stats, len(c.wires), len(c.inputs), len(c.outputs),
		len(c.levels))
}

// Dump prints a debug dump of the circuit.
func (c *Circuit) Dump(out io.Writer) {
	fmt.Fprintf(out, "circuit %s\n", c)
	for _, gate := range c.Gates {
		fmt.Fprintf(out, "%d\t%s\t%s\n", gate.level, gate, gate.Table)
	}
}

// Digest computes a digest over the circuit structure. Peers use it
// to verify that they run the same circuit.
func (c *Circuit) Digest() []byte {
	h := sha256.New()
	for _, g := range c.Gates {
		fmt.Fprintf(h, "%q %q %q %q %v\n",
			g.ID, g.Input0, g.Input1, g.Output, g.Table)
	}
	return h.Sum(nil)
}
