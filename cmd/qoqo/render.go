package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <circuit.yaml>",
	Short: "Render a circuit file as dialect text",
	Long:  `Render a yaml-serialized circuit as one textual line per operation, definitions first.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCircuit(args[0])
		if err != nil {
			return err
		}
		for _, line := range c.ToHQSLang() {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
