// Package backends defines the execution contract of the toolkit and an
// in-process statevector simulator implementing it.
package backends

import (
	"context"

	"github.com/pkg/errors"

	"github.com/HQSquantumsimulations/qoqo/circuit"
	"github.com/HQSquantumsimulations/qoqo/operations"
	"github.com/HQSquantumsimulations/qoqo/registers"
)

// ErrNotReady is returned by asynchronous backends whose results are not
// yet retrievable. Callers treat it as retry-later, not failure.
var ErrNotReady = errors.New("backend result not ready")

// Backend executes a circuit and returns the accumulated output registers
// declared by the circuit's output definitions.
type Backend interface {
	Run(ctx context.Context, c *circuit.Circuit) (*registers.Output, error)
}

// CollectInstructions scans the circuit for pragmas addressing the given
// backend target and merges their argument overrides, later pragmas
// winning.
func CollectInstructions(c *circuit.Circuit, target operations.BackendTarget) operations.Instruction {
	merged := operations.Instruction{}
	for _, op := range c.Operations() {
		instructor, ok := op.(operations.BackendInstructor)
		if !ok {
			continue
		}
		instr := instructor.BackendInstruction(target)
		if instr == nil {
			continue
		}
		if instr.NumberMeasurements != nil {
			merged.NumberMeasurements = instr.NumberMeasurements
		}
		if instr.Readout != nil {
			merged.Readout = instr.Readout
		}
		if instr.UseDensityMatrix {
			merged.UseDensityMatrix = true
		}
		if instr.RandomPauliErrors {
			merged.RandomPauliErrors = true
		}
		if len(instr.Substitutions) > 0 {
			if merged.Substitutions == nil {
				merged.Substitutions = make(map[string]float64, len(instr.Substitutions))
			}
			for name, val := range instr.Substitutions {
				merged.Substitutions[name] = val
			}
		}
	}
	return merged
}
