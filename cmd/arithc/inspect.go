// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/namnc/circom-2-arithc/pkg/circuitval"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] circuit_file",
	Short: "print a summary of an elaborated circuit",
	Long:  `Read a circuit produced by "arithc compile" and print its gate, signal and constant counts.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		circuit := readCircuitFile(args[0])
		printCircuitSummary(circuit, isInteractiveTerminal())
	},
}

func readCircuitFile(filename string) circuitval.Circuit {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("reading %s: %s\n", filename, err.Error())
		os.Exit(1)
	}

	var circuit circuitval.Circuit
	if err := json.Unmarshal(bytes, &circuit); err != nil {
		fmt.Printf("decoding %s: %s\n", filename, err.Error())
		os.Exit(1)
	}

	return circuit
}

// isInteractiveTerminal reports whether stdout is a terminal, deciding
// whether the summary below is worth dressing up with section rules.
func isInteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func printCircuitSummary(circuit circuitval.Circuit, pretty bool) {
	rule := func(title string) {
		if pretty {
			fmt.Printf("-- %s --\n", title)
		} else {
			fmt.Printf("%s:\n", title)
		}
	}

	rule("signals")
	fmt.Printf("  inputs:        %d\n", len(circuit.Inputs))
	fmt.Printf("  outputs:       %d\n", len(circuit.Outputs))
	fmt.Printf("  intermediates: %d\n", len(circuit.Intermediates))
	fmt.Printf("  constants:     %d\n", len(circuit.Constants))

	rule("gates")
	fmt.Printf("  total: %d\n", len(circuit.Gates))

	counts := make(map[circuitval.Op]int)
	for _, g := range circuit.Gates {
		counts[g.Op]++
	}

	ops := make([]string, 0, len(counts))
	for op := range counts {
		ops = append(ops, string(op))
	}

	sort.Strings(ops)

	for _, op := range ops {
		fmt.Printf("  %-10s %d\n", op, counts[circuitval.Op(op)])
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
