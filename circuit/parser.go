//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// Description is the declarative circuit description:
//
//	{
//	    "gates": {
//	        "g1": {"inp": ["w1", "w2"], "out": ["w3"], "type": "AND"}
//	    },
//	    "inputs": {"w1": 1, "w2": false}
//	}
//
// Each gate has either a type, a table, or both. The optional inputs
// section assigns a bit to every input wire. Table entries and input
// bits are 0 and 1 or booleans.
type Description struct {
	Gates  map[string]*GateDesc `json:"gates" yaml:"gates"`
	Inputs map[string]Bit       `json:"inputs,omitempty" yaml:"inputs,omitempty"`
}

// GateDesc describes one gate.
type GateDesc struct {
	Inp   []WireRef `json:"inp" yaml:"inp"`
	Out   []WireRef `json:"out" yaml:"out"`
	Type  string    `json:"type,omitempty" yaml:"type,omitempty"`
	Table []Bit     `json:"table,omitempty" yaml:"table,omitempty"`
}

// Bit is a bit value in a circuit description. Both integers and
// booleans are accepted; booleans are normalized to 0 and 1. Integers
// other than 0 and 1 are rejected when the description is used.
type Bit int

// UnmarshalJSON implements json.Unmarshaler.
func (b *Bit) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true":
		*b = 1
		return nil
	case "false":
		*b = 0
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: invalid bit %s", ErrInvalidTable, data)
	}
	*b = Bit(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *Bit) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v interface{}
	if err := unmarshal(&v); err != nil {
		return err
	}
	switch val := v.(type) {
	case bool:
		if val {
			*b = 1
		} else {
			*b = 0
		}
	case int:
		*b = Bit(val)
	default:
		return fmt.Errorf("%w: invalid bit %v", ErrInvalidTable, v)
	}
	return nil
}

// WireRef is a wire reference in a circuit description. Both string
// and integer references are accepted; integers are normalized to
// their decimal text.
type WireRef string

// UnmarshalJSON implements json.Unmarshaler.
func (ref *WireRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*ref = WireRef(s)
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid wire reference %s", ErrInvalidGate, data)
	}
	*ref = WireRef(strconv.FormatInt(v, 10))
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (ref *WireRef) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v interface{}
	if err := unmarshal(&v); err != nil {
		return err
	}
	switch val := v.(type) {
	case string:
		*ref = WireRef(val)
	case int:
		*ref = WireRef(strconv.Itoa(val))
	case int64:
		*ref = WireRef(strconv.FormatInt(val, 10))
	case uint64:
		*ref = WireRef(strconv.FormatUint(val, 10))
	default:
		return fmt.Errorf("%w: invalid wire reference %v", ErrInvalidGate, v)
	}
	return nil
}

// Parse parses the JSON circuit description from the reader and
// creates the circuit.
func Parse(in io.Reader) (*Circuit, error) {
	desc, err := ParseDescription(in, FormatJSON)
	if err != nil {
		return nil, err
	}
	return New(desc)
}

// ParseFile parses the circuit description file. The description
// format is selected by the file name suffix.
func ParseFile(name string) (*Circuit, error) {
	desc, err := LoadDescription(name)
	if err != nil {
		return nil, err
	}
	return New(desc)
}

// Description formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatOf returns the description format of the file name.
func FormatOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadDescription loads the circuit description file.
func LoadDescription(name string) (*Description, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	desc, err := ParseDescription(f, FormatOf(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return desc, nil
}

// ParseDescription parses the circuit description in the format.
func ParseDescription(in io.Reader, format string) (*Description, error) {
	desc := new(Description)
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(in).Decode(desc); err != nil {
			return nil, err
		}
	case FormatYAML:
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, err
		}
		if err := yaml.UnmarshalStrict(data, desc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported circuit format: %s", format)
	}
	return desc, nil
}

// New creates a circuit from the description.
func New(desc *Description) (*Circuit, error) {
	if desc == nil || desc.Gates == nil {
		return nil, fmt.Errorf("%w: no gates section", ErrInvalidGate)
	}
	var gates []*Gate
	for id, gd := range desc.Gates {
		g, err := gd.Gate(GateID(id))
		if err != nil {
			return nil, err
		}
		gates = append(gates, g)
	}
	return NewCircuit(gates)
}

// Gate creates the gate from the description.
func (gd *GateDesc) Gate(id GateID) (*Gate, error) {
	if gd == nil {
		return nil, fmt.Errorf("%w: %s: empty gate", ErrInvalidGate, id)
	}
	if len(gd.Inp) != 2 {
		return nil, fmt.Errorf("%w: %s: expected 2 inputs, got %d",
			ErrInvalidGate, id, len(gd.Inp))
	}
	if len(gd.Out) != 1 {
		return nil, fmt.Errorf("%w: %s: expected 1 output, got %d",
			ErrInvalidGate, id, len(gd.Out))
	}

	var table Table
	switch {
	case len(gd.Type) > 0:
		op, err := ParseOperation(gd.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		table, _ = op.Table()
		if gd.Table != nil {
			t, err := parseTable(id, gd.Table)
			if err != nil {
				return nil, err
			}
			if t != table {
				return nil, fmt.Errorf("%w: %s: type %s does not match table %v",
					ErrInvalidTable, id, op, t)
			}
		}

	case gd.Table != nil:
		var err error
		table, err = parseTable(id, gd.Table)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: %s: no type or table", ErrInvalidGate, id)
	}

	return &Gate{
		ID:     id,
		Input0: Wire(gd.Inp[0]),
		Input1: Wire(gd.Inp[1]),
		Output: Wire(gd.Out[0]),
		Op:     table.Operation(),
		Table:  table,
	}, nil
}

func parseTable(id GateID, values []Bit) (Table, error) {
	var table Table
	if len(values) != len(table) {
		return table, fmt.Errorf("%w: %s: expected 4 entries, got %d",
			ErrInvalidTable, id, len(values))
	}
	for i, v := range values {
		if v != 0 && v != 1 {
			return table, fmt.Errorf("%w: %s: invalid entry %d",
				ErrInvalidTable, id, v)
		}
		table[i] = byte(v)
	}
	return table, nil
}

// InputValues returns the bits of the description's inputs section.
func (desc *Description) InputValues() (map[Wire]bool, error) {
	if desc.Inputs == nil {
		return nil, fmt.Errorf("%w: no inputs section", ErrInput)
	}
	result := make(map[Wire]bool)
	for w, v := range desc.Inputs {
		switch v {
		case 0:
			result[Wire(w)] = false
		case 1:
			result[Wire(w)] = true
		default:
			return nil, fmt.Errorf("%w: wire %s: invalid bit %d", ErrInput, w, v)
		}
	}
	return result, nil
}

// Describe creates the description of the circuit.
func (c *Circuit) Describe() *Description {
	desc := &Description{
		Gates: make(map[string]*GateDesc),
	}
	for _, g := range c.Gates {
		desc.Gates[string(g.ID)] = g.describe()
	}
	return desc
}

func (g *Gate) describe() *GateDesc {
	gd := &GateDesc{
		Inp:   []WireRef{WireRef(g.Input0), WireRef(g.Input1)},
		Out:   []WireRef{WireRef(g.Output)},
		Table: make([]Bit, len(g.Table)),
	}
	for i, v := range g.Table {
		gd.Table[i] = Bit(v)
	}
	if g.Op != TABLE {
		gd.Type = g.Op.String()
	}
	return gd
}

// SetInputs sets the description's inputs section.
func (desc *Description) SetInputs(inputs map[Wire]bool) {
	desc.Inputs = make(map[string]Bit)
	for w, bit := range inputs {
		if bit {
			desc.Inputs[string(w)] = 1
		} else {
			desc.Inputs[string(w)] = 0
		}
	}
}

// Write writes the description in the format.
func (desc *Description) Write(out io.Writer, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "    ")
		return enc.Encode(desc)
	case FormatYAML:
		data, err := yaml.Marshal(desc)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported circuit format: %s", format)
	}
}
