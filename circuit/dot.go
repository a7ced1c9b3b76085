//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"io"
)

// Dot creates graphviz dot output of the circuit.
func (c *Circuit) Dot(out io.Writer) {
	fmt.Fprintf(out, "digraph circuit\n{\n")
	fmt.Fprintf(out, "  overlap=scale;\n")
	fmt.Fprintf(out, "  node\t[fontname=\"Helvetica\"];\n")
	fmt.Fprintf(out, "  {\n    node [shape=plaintext];\n")
	for idx, w := range c.wires {
		fmt.Fprintf(out, "    w%d\t[label=%q];\n", idx, w)
	}
	fmt.Fprintf(out, "  }\n")

	fmt.Fprintf(out, "  {\n    node [shape=box];\n")
	for idx, gate := range c.Gates {
		label := gate.Op.String()
		if gate.Op == TABLE {
			label = gate.Table.String()
		}
		fmt.Fprintf(out, "    g%d\t[label=%q];\n", idx, label)
	}
	fmt.Fprintf(out, "  }\n")

	fmt.Fprintf(out, "  {  rank=same")
	for _, w := range c.inputs {
		fmt.Fprintf(out, "; w%d", c.wireIndex[w])
	}
	fmt.Fprintf(out, ";}\n")

	fmt.Fprintf(out, "  {  rank=same")
	for _, w := range c.outputs {
		fmt.Fprintf(out, "; w%d", c.wireIndex[w])
	}
	fmt.Fprintf(out, ";}\n")

	for idx, gate := range c.Gates {
		for _, in := range gate.distinctInputs() {
			fmt.Fprintf(out, "  w%d -> g%d;\n", c.wireIndex[in], idx)
		}
		fmt.Fprintf(out, "  g%d -> w%d;\n", idx, gate.out)
	}
	fmt.Fprintf(out, "}\n")
}
