package measurements

import (
	"github.com/HQSquantumsimulations/qoqo/circuit"
	"github.com/HQSquantumsimulations/qoqo/operations"
)

// Parameterized is a measurement whose circuits carry free symbolic
// parameters, bound per run through a substitution pragma appended to
// the constant circuit.
type Parameterized interface {
	Measurement
	// WithSubstitutions returns a measurement whose constant circuit
	// additionally carries the given parameter bindings. The receiver
	// is not modified.
	WithSubstitutions(substitutions map[string]float64) Measurement
	// ToConfig serializes the measurement input and circuits for
	// resumable runs.
	ToConfig() (operations.Config, error)
}

var (
	_ Parameterized = (*BasisRotation)(nil)
	_ Parameterized = (*CheatedBasisRotation)(nil)
	_ Parameterized = (*PurePragma)(nil)
)

func substitutedConstant(constant *circuit.Circuit, substitutions map[string]float64) *circuit.Circuit {
	out := circuit.New()
	if constant != nil {
		out.AddCircuit(constant)
	}
	out.Add(operations.NewPragmaParameterSubstitution(substitutions))
	return out
}

// WithSubstitutions returns a copy binding the given parameters on every
// dispatched circuit.
func (m *BasisRotation) WithSubstitutions(substitutions map[string]float64) Measurement {
	config := m.config
	config.ConstantCircuit = substitutedConstant(config.ConstantCircuit, substitutions)
	return &BasisRotation{config: config, logger: m.logger}
}

// WithSubstitutions returns a copy binding the given parameters on every
// dispatched circuit.
func (m *CheatedBasisRotation) WithSubstitutions(substitutions map[string]float64) Measurement {
	config := m.config
	config.ConstantCircuit = substitutedConstant(config.ConstantCircuit, substitutions)
	return &CheatedBasisRotation{config: config, logger: m.logger}
}

// WithSubstitutions returns a copy binding the given parameters on every
// dispatched circuit.
func (m *PurePragma) WithSubstitutions(substitutions map[string]float64) Measurement {
	config := m.config
	config.ConstantCircuit = substitutedConstant(config.ConstantCircuit, substitutions)
	return &PurePragma{config: config, logger: m.logger}
}
