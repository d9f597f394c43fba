package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/HQSquantumsimulations/qoqo/circuit"
)

// loadCircuit reads a yaml-serialized circuit from disk.
func loadCircuit(path string) (*circuit.Circuit, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading circuit file %s", path)
	}
	c := circuit.New()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, errors.Wrapf(err, "parsing circuit file %s", path)
	}
	return c, nil
}
