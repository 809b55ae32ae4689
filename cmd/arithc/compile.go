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
	"math/big"
	"os"

	"github.com/namnc/circom-2-arithc/pkg/archive"
	"github.com/namnc/circom-2-arithc/pkg/elaborate"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] archive_file",
	Short: "elaborate a program archive into a flat arithmetic circuit",
	Long: `Read a JSON-encoded program archive, elaborate it against its main
template, and write the resulting circuit (inputs, outputs, intermediates,
constants and gates) as JSON.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		a := readArchiveFile(args[0])

		cfg := elaborate.DefaultConfig()
		cfg.Debug = GetFlag(cmd, "debug")

		if mod := GetString(cmd, "modulus"); mod != "" {
			m, ok := new(big.Int).SetString(mod, 10)
			if !ok {
				fmt.Printf("malformed --modulus value %q\n", mod)
				os.Exit(2)
			}

			cfg.FieldModulus = m
		}

		circuit, err := elaborate.Elaborate(a, cfg)
		if err != nil {
			fmt.Printf("elaboration failed: %s\n", err.Error())
			os.Exit(1)
		}

		writeCircuitFile(circuit, GetString(cmd, "output"))
	},
}

func readArchiveFile(filename string) *archive.Archive {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("reading %s: %s\n", filename, err.Error())
		os.Exit(1)
	}

	a, err := archive.FromJSON(bytes)
	if err != nil {
		fmt.Printf("decoding %s: %s\n", filename, err.Error())
		os.Exit(1)
	}

	return a
}

func writeCircuitFile(circuit any, output string) {
	bytes, err := json.MarshalIndent(circuit, "", "  ")
	if err != nil {
		fmt.Printf("encoding circuit: %s\n", err.Error())
		os.Exit(1)
	}

	if output == "" || output == "-" {
		os.Stdout.Write(bytes)
		fmt.Println()
		return
	}

	if err := os.WriteFile(output, bytes, 0644); err != nil {
		fmt.Printf("writing %s: %s\n", output, err.Error())
		os.Exit(1)
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().Bool("debug", false, "retain debug-only assert markers and emit verbose breadcrumbs")
	compileCmd.Flags().Bool("verbose", false, "enable debug-level logging")
	compileCmd.Flags().StringP("output", "o", "", "write the circuit to this file (default: stdout)")
	compileCmd.Flags().String("modulus", "", "field modulus to use for field division (overrides the archive's own)")
}
