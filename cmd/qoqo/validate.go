package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <circuit.yaml>",
	Short: "Validate a circuit file",
	Long:  `Parse a yaml-serialized circuit and report its structure.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCircuit(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "definitions: %d\n", len(c.Definitions()))
		fmt.Fprintf(out, "operations: %d\n", len(c.Operations()))
		involved := c.InvolvedQubits()
		if involved.All {
			fmt.Fprintln(out, "involved qubits: ALL")
		} else {
			fmt.Fprintf(out, "involved qubits: %v\n", involved.Qubits)
		}
		fmt.Fprintf(out, "parametrized: %t\n", c.IsParametrized())
		for _, name := range c.OperationTypes() {
			fmt.Fprintf(out, "  %s: %d\n", name, c.CountOccurrences(name))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
