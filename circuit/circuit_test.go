//
// circuit_test.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"errors"
	mrand "math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAND(t *testing.T) {
	c, err := ParseFile("testdata/and.json")
	require.NoError(t, err)

	assert.Equal(t, []Wire{"w1", "w2"}, c.Inputs())
	assert.Equal(t, []Wire{"w3"}, c.Outputs())
	assert.Equal(t, 1, c.NumGates())
	assert.Equal(t, 3, c.NumWires())
	assert.Equal(t, 1, c.Stats[AND])

	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			out, err := c.Eval(map[Wire]bool{
				"w1": a == 1,
				"w2": b == 1,
			})
			require.NoError(t, err)
			assert.Equal(t, a == 1 && b == 1, out["w3"], "%d AND %d", a, b)
		}
	}
}

func TestParseInputs(t *testing.T) {
	tests := []struct {
		file     string
		inputs   int
		expected map[Wire]bool
	}{
		{
			file:   "testdata/and.json",
			inputs: 2,
			expected: map[Wire]bool{
				"w3": true,
			},
		},
		{
			file:   "testdata/numeric.json",
			inputs: 3,
			expected: map[Wire]bool{
				"10": true,
			},
		},
		{
			file:   "testdata/mux.yaml",
			inputs: 3,
			expected: map[Wire]bool{
				"out": true,
			},
		},
		{
			file:   "testdata/adder4.json",
			inputs: 8,
			expected: map[Wire]bool{
				"out0": true,
				"out1": true,
				"out2": false,
				"out3": true,
				"out4": false,
			},
		},
	}
	for _, test := range tests {
		desc, err := LoadDescription(test.file)
		require.NoError(t, err, test.file)
		c, err := New(desc)
		require.NoError(t, err, test.file)
		assert.Len(t, c.Inputs(), test.inputs, test.file)

		inputs, err := desc.InputValues()
		require.NoError(t, err, test.file)
		out, err := c.Eval(inputs)
		require.NoError(t, err, test.file)
		assert.Equal(t, test.expected, out, test.file)
	}
}

func TestNumericWires(t *testing.T) {
	c, err := ParseFile("testdata/numeric.json")
	require.NoError(t, err)
	assert.Equal(t, []Wire{"1", "2", "3"}, c.Inputs())
	assert.Equal(t, []Wire{"10"}, c.Outputs())

	g, ok := c.Gate("2")
	require.True(t, ok)
	assert.Equal(t, NAND, g.Op)
}

func TestYAMLTable(t *testing.T) {
	c, err := ParseFile("testdata/mux.yaml")
	require.NoError(t, err)

	g, ok := c.Gate("g1")
	require.True(t, ok)
	assert.Equal(t, NOR, g.Op)
	assert.Equal(t, g.Input0, g.Input1)

	for _, s := range []bool{false, true} {
		for _, a := range []bool{false, true} {
			for _, b := range []bool{false, true} {
				out, err := c.Eval(map[Wire]bool{
					"a": a,
					"b": b,
					"s": s,
				})
				require.NoError(t, err)
				expected := a
				if s {
					expected = b
				}
				assert.Equal(t, expected, out["out"])
			}
		}
	}
}

func TestBooleanBits(t *testing.T) {
	tests := []struct {
		format string
		data   string
		err    bool
	}{
		{
			format: FormatJSON,
			data: `{"gates": {"g1": {"inp": ["w1", "w2"], "out": ["w3"],
"table": [false, false, false, true]}},
"inputs": {"w1": true, "w2": 1}}`,
		},
		{
			format: FormatJSON,
			data: `{"gates": {"g1": {"inp": ["w1", "w2"], "out": ["w3"],
"type": "AND", "table": [0, false, 0, true]}},
"inputs": {"w1": true, "w2": true}}`,
		},
		{
			format: FormatYAML,
			data: `gates:
  g1:
    inp: [w1, w2]
    out: [w3]
    table: [false, false, false, true]
inputs:
  w1: true
  w2: 1
`,
		},
		{
			format: FormatJSON,
			data: `{"gates": {"g1": {"inp": ["w1", "w2"], "out": ["w3"],
"table": [0, 0, 0, "1"]}}}`,
			err: true,
		},
		{
			format: FormatYAML,
			data: `gates:
  g1:
    inp: [w1, w2]
    out: [w3]
    table: [0, 0, 0, x]
`,
			err: true,
		},
	}
	for idx, test := range tests {
		desc, err := ParseDescription(strings.NewReader(test.data),
			test.format)
		if test.err {
			assert.Error(t, err, "test %d", idx)
			continue
		}
		require.NoError(t, err, "test %d", idx)
		assert.Equal(t, []Bit{0, 0, 0, 1}, desc.Gates["g1"].Table)

		c, err := New(desc)
		require.NoError(t, err, "test %d", idx)
		g, ok := c.Gate("g1")
		require.True(t, ok)
		assert.Equal(t, AND, g.Op, "test %d", idx)

		inputs, err := desc.InputValues()
		require.NoError(t, err, "test %d", idx)
		assert.Equal(t, map[Wire]bool{"w1": true, "w2": true}, inputs,
			"test %d", idx)
	}

	desc := &Description{
		Gates: map[string]*GateDesc{
			"g1": {
				Inp:   []WireRef{"w1", "w2"},
				Out:   []WireRef{"w3"},
				Table: []Bit{0, 0, 0, 2},
			},
		},
		Inputs: map[string]Bit{"w1": 2},
	}
	_, err := New(desc)
	assert.True(t, errors.Is(err, ErrInvalidTable), "%v", err)
	_, err = desc.InputValues()
	assert.True(t, errors.Is(err, ErrInput), "%v", err)
}

func parseString(data string) (*Circuit, error) {
	return Parse(strings.NewReader(data))
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{
			name: "three inputs",
			data: `{"gates": {"g1": {"inp": ["a", "b", "c"], "out": ["d"],
"type": "AND"}}}`,
			err: ErrInvalidGate,
		},
		{
			name: "two outputs",
			data: `{"gates": {"g1": {"inp": ["a", "b"], "out": ["c", "d"],
"type": "AND"}}}`,
			err: ErrInvalidGate,
		},
		{
			name: "unknown type",
			data: `{"gates": {"g1": {"inp": ["a", "b"], "out": ["c"],
"type": "IMPLIES"}}}`,
			err: ErrInvalidGate,
		},
		{
			name: "no type or table",
			data: `{"gates": {"g1": {"inp": ["a", "b"], "out": ["c"]}}}`,
			err:  ErrInvalidGate,
		},
		{
			name: "type and table mismatch",
			data: `{"gates": {"g1": {"inp": ["a", "b"], "out": ["c"],
"type": "AND", "table": [0, 1, 1, 1]}}}`,
			err: ErrInvalidTable,
		},
		{
			name: "short table",
			data: `{"gates": {"g1": {"inp": ["a", "b"], "out": ["c"],
"table": [0, 1, 1]}}}`,
			err: ErrInvalidTable,
		},
		{
			name: "non-bit table",
			data: `{"gates": {"g1": {"inp": ["a", "b"], "out": ["c"],
"table": [0, 1, 2, 1]}}}`,
			err: ErrInvalidTable,
		},
		{
			name: "duplicate output",
			data: `{"gates": {
"g1": {"inp": ["a", "b"], "out": ["c"], "type": "AND"},
"g2": {"inp": ["a", "b"], "out": ["c"], "type": "OR"}}}`,
			err: ErrDuplicateOutput,
		},
		{
			name: "cycle",
			data: `{"gates": {
"g1": {"inp": ["a", "d"], "out": ["c"], "type": "AND"},
"g2": {"inp": ["c", "b"], "out": ["d"], "type": "OR"}}}`,
			err: ErrCycle,
		},
		{
			name: "self loop",
			data: `{"gates": {"g1": {"inp": ["a", "c"], "out": ["c"],
"type": "XOR"}}}`,
			err: ErrCycle,
		},
		{
			name: "invalid wire reference",
			data: `{"gates": {"g1": {"inp": ["a", 1.5], "out": ["c"],
"type": "XOR"}}}`,
			err: ErrInvalidGate,
		},
		{
			name: "no gates",
			data: `{"inputs": {"a": 1}}`,
			err:  ErrInvalidGate,
		},
	}
	for _, test := range tests {
		_, err := parseString(test.data)
		assert.True(t, errors.Is(err, test.err), "%s: %v", test.name, err)
	}
}

func TestInvalidInputsSection(t *testing.T) {
	desc, err := ParseDescription(strings.NewReader(
		`{"gates": {}, "inputs": {"a": 2}}`), FormatJSON)
	require.NoError(t, err)
	_, err = desc.InputValues()
	assert.True(t, errors.Is(err, ErrInput))

	desc.Inputs = nil
	_, err = desc.InputValues()
	assert.True(t, errors.Is(err, ErrInput))
}

func TestNewCircuitCopiesGates(t *testing.T) {
	tests := [][]*Gate{
		{
			{ID: "g1", Input0: "a", Input1: "b", Output: "c",
				Table: Table{0, 0, 0, 1}},
		},
		{
			{ID: "g2", Input0: "c", Input1: "d", Output: "e",
				Table: Table{0, 1, 1, 0}},
			{ID: "g1", Input0: "a", Input1: "b", Output: "c",
				Table: Table{0, 1, 1, 1}},
		},
	}
	for idx, gates := range tests {
		var saved []Gate
		for _, g := range gates {
			saved = append(saved, *g)
		}
		c1, err := NewCircuit(gates)
		require.NoError(t, err)
		c2, err := NewCircuit(gates)
		require.NoError(t, err)

		for i, g := range gates {
			assert.Equal(t, saved[i], *g, "test %d", idx)

			g1, ok := c1.Gate(g.ID)
			require.True(t, ok)
			g2, ok := c2.Gate(g.ID)
			require.True(t, ok)
			assert.NotSame(t, g, g1, "test %d", idx)
			assert.NotSame(t, g1, g2, "test %d", idx)
			assert.Equal(t, g1.Table.Operation(), g1.Op)
		}
	}
}

func TestTopologicalOrder(t *testing.T) {
	rnd := mrand.New(mrand.NewSource(42))

	for round := 0; round < 50; round++ {
		c := randomCircuit(t, rnd, 1+rnd.Intn(8), 1+rnd.Intn(64))

		defined := make(map[Wire]bool)
		for _, w := range c.Inputs() {
			defined[w] = true
		}
		for _, g := range c.Gates {
			require.True(t, defined[g.Input0], "gate %s input %s", g.ID, g.Input0)
			require.True(t, defined[g.Input1], "gate %s input %s", g.ID, g.Input1)
			require.False(t, defined[g.Output])
			defined[g.Output] = true
		}
		assert.Len(t, defined, c.NumWires())

		var count int
		for level, gates := range c.Levels() {
			for _, g := range gates {
				assert.Equal(t, level, g.Level())
				for _, in := range g.Inputs() {
					if id, ok := c.Producer(in); ok {
						p, _ := c.Gate(id)
						assert.Less(t, p.Level(), level)
					}
				}
				count++
			}
		}
		assert.Equal(t, c.NumGates(), count)
		assert.Equal(t, len(c.Levels()), c.Depth())
	}
}

func TestDuplicateInputWire(t *testing.T) {
	c, err := parseString(`{"gates": {
"g1": {"inp": ["a", "a"], "out": ["b"], "type": "XOR"},
"g2": {"inp": ["b", "b"], "out": ["c"], "type": "NAND"}}}`)
	require.NoError(t, err)
	assert.Equal(t, []Wire{"a"}, c.Inputs())
	assert.Equal(t, []GateID{"g1"}, c.Consumers("a"))

	for _, a := range []bool{false, true} {
		out, err := c.Eval(map[Wire]bool{"a": a})
		require.NoError(t, err)
		assert.True(t, out["c"])
	}
}

func TestProducerConsumers(t *testing.T) {
	c := newAdder(t, 2)

	id, ok := c.Producer("out2")
	require.True(t, ok)
	g, ok := c.Gate(id)
	require.True(t, ok)
	assert.Equal(t, OR, g.Op)

	_, ok = c.Producer("in0")
	assert.False(t, ok)
	assert.True(t, c.IsInput("in0"))
	assert.False(t, c.IsInput("out0"))
	assert.True(t, c.IsOutput("out0"))
	assert.False(t, c.IsOutput("unknown"))

	consumers := c.Consumers("in2")
	sort.Slice(consumers, func(i, j int) bool {
		return consumers[i] < consumers[j]
	})
	assert.Len(t, consumers, 2)
	assert.Empty(t, c.Consumers("out2"))
}

func TestEvalInputs(t *testing.T) {
	c := newAdder(t, 2)

	_, err := c.Eval(map[Wire]bool{"in0": true})
	assert.True(t, errors.Is(err, ErrInput))

	inputs := adderInputs(t, c, 1, 2)
	inputs["extra"] = true
	_, err = c.Eval(inputs)
	assert.True(t, errors.Is(err, ErrInput))
}

func TestAdder(t *testing.T) {
	c := newAdder(t, 8)
	rnd := mrand.New(mrand.NewSource(1))

	for i := 0; i < 100; i++ {
		x := rnd.Int63n(256)
		y := rnd.Int63n(256)
		out, err := c.Eval(adderInputs(t, c, x, y))
		require.NoError(t, err)
		require.Equal(t, x+y, adderValue(t, c, out), "%d+%d", x, y)
	}
}

func TestNatLess(t *testing.T) {
	wires := []string{"w10", "w2", "w1", "a", "w01", "w", "x0", "w1a"}
	sort.Slice(wires, func(i, j int) bool {
		return natLess(wires[i], wires[j])
	})
	assert.Equal(t,
		[]string{"a", "w", "w1", "w1a", "w01", "w2", "w10", "x0"}, wires)
}

func TestDescribe(t *testing.T) {
	c := newAdder(t, 4)

	for _, format := range []string{FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		desc := c.Describe()
		desc.SetInputs(adderInputs(t, c, 3, 9))
		require.NoError(t, desc.Write(&buf, format))

		parsed, err := ParseDescription(&buf, format)
		require.NoError(t, err, format)
		c2, err := New(parsed)
		require.NoError(t, err, format)
		assert.Equal(t, c.Digest(), c2.Digest(), format)

		inputs, err := parsed.InputValues()
		require.NoError(t, err)
		out, err := c2.Eval(inputs)
		require.NoError(t, err)
		assert.Equal(t, int64(12), adderValue(t, c2, out))
	}
}

func TestDump(t *testing.T) {
	c := newAdder(t, 2)

	var buf bytes.Buffer
	c.Dump(&buf)
	assert.Contains(t, buf.String(), "#gates=7")

	buf.Reset()
	c.Dot(&buf)
	assert.True(t, strings.HasPrefix(buf.String(), "digraph circuit"))
	assert.Contains(t, buf.String(), `label="OR"`)

	assert.Contains(t, c.String(), "XOR=3")
	assert.Contains(t, c.String(), "AND=3")
}
