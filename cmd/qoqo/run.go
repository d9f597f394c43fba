package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HQSquantumsimulations/qoqo/backends"
	"github.com/HQSquantumsimulations/qoqo/registers"
)

var (
	runQubits  int
	runSeed    int64
	runParams  []string
	runVerbose bool
)

var runCmd = &cobra.Command{
	Use:   "run <circuit.yaml>",
	Short: "Simulate a circuit file",
	Long:  `Run a yaml-serialized circuit on the statevector simulator and print the output registers.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCircuit(args[0])
		if err != nil {
			return err
		}

		bindings, err := parseParams(runParams)
		if err != nil {
			return err
		}
		if len(bindings) > 0 {
			if err := c.SubstituteParameters(bindings); err != nil {
				return err
			}
		}

		logger := zap.NewNop()
		if runVerbose {
			logger, err = zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer logger.Sync()
		}

		simulator, err := backends.NewSimulator(backends.SimulatorConfig{
			NumberQubits: runQubits,
			Seed:         runSeed,
		}, logger)
		if err != nil {
			return err
		}

		output, err := simulator.Run(cmd.Context(), c)
		if err != nil {
			return err
		}
		printOutput(cmd, output)
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&runQubits, "qubits", 0, "number of qubits (0 derives from the circuit)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 1, "random seed for measurement sampling")
	runCmd.Flags().StringArrayVar(&runParams, "param", nil, "parameter binding name=value, repeatable")
	runCmd.Flags().BoolVar(&runVerbose, "verbose", false, "log simulator progress")
	rootCmd.AddCommand(runCmd)
}

func parseParams(params []string) (map[string]float64, error) {
	bindings := make(map[string]float64, len(params))
	for _, param := range params {
		name, raw, found := strings.Cut(param, "=")
		if !found {
			return nil, errors.Errorf("parameter %q is not of the form name=value", param)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parameter %q", param)
		}
		bindings[name] = value
	}
	return bindings, nil
}

func printOutput(cmd *cobra.Command, output *registers.Output) {
	out := cmd.OutOrStdout()
	for _, name := range sortedKeys(output.Bits) {
		reg := output.Bits[name]
		fmt.Fprintf(out, "%s (%d shots):\n", name, reg.Size())
		for _, shot := range reg.Shots {
			row := make([]byte, len(shot))
			for i, bit := range shot {
				if bit {
					row[i] = '1'
				} else {
					row[i] = '0'
				}
			}
			fmt.Fprintf(out, "  %s\n", row)
		}
	}
	for _, name := range sortedKeys(output.Floats) {
		reg := output.Floats[name]
		fmt.Fprintf(out, "%s (%d shots):\n", name, reg.Size())
		for _, shot := range reg.Shots {
			fmt.Fprintf(out, "  %v\n", shot)
		}
	}
	for _, name := range sortedKeys(output.Complexes) {
		reg := output.Complexes[name]
		fmt.Fprintf(out, "%s (%d shots):\n", name, reg.Size())
		for _, shot := range reg.Shots {
			fmt.Fprintf(out, "  %v\n", shot)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
