//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	"io"

	"github.com/markkurossi/yao/circuit"
	"github.com/spf13/viper"
)

func circuitOptions(extra ...circuit.Option) []circuit.Option {
	var opts []circuit.Option
	if viper.GetBool("point-and-permute") {
		opts = append(opts, circuit.WithPointAndPermute())
	}
	return append(opts, extra...)
}

func printResult(out io.Writer, c *circuit.Circuit,
	result map[circuit.Wire]bool) error {

	outputs := c.Outputs()
	for _, w := range outputs {
		bit, ok := result[w]
		if !ok {
			return fmt.Errorf("no value for output wire %s", w)
		}
		var v int
		if bit {
			v = 1
		}
		fmt.Fprintf(out, "%s\t%d\n", w, v)
	}
	value, err := circuit.Value(outputs, result)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "value\t%v\n", value)
	return nil
}
