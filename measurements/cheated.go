package measurements

import (
	"context"
	"math/cmplx"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/HQSquantumsimulations/qoqo/backends"
	"github.com/HQSquantumsimulations/qoqo/circuit"
	"github.com/HQSquantumsimulations/qoqo/operations"
)

// PurePragmaConfig wires a PurePragma measurement to its collaborators.
type PurePragmaConfig struct {
	Backend         backends.Backend
	Input           *PurePragmaInput
	ConstantCircuit *circuit.Circuit
	Circuits        []*circuit.Circuit
}

// PurePragma evaluates operator expectation values directly on
// statevector or density-matrix registers a simulation backend exposed
// through the state snapshot pragmas.
type PurePragma struct {
	config PurePragmaConfig
	logger *zap.Logger
}

// NewPurePragma creates a cheated measurement.
func NewPurePragma(config PurePragmaConfig, logger *zap.Logger) *PurePragma {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Input == nil {
		config.Input = &PurePragmaInput{OperatorMatrices: map[string]map[string]CSRMatrix{}}
	}
	return &PurePragma{
		config: config,
		logger: logger,
	}
}

// Run dispatches every circuit and evaluates the configured operators on
// the returned state registers.
func (m *PurePragma) Run(ctx context.Context) (Result, error) {
	if m.config.Backend == nil {
		return Result{}, nil
	}
	runsExecuted.WithLabelValues("pure_pragma").Inc()
	output, err := dispatch(ctx, m.config.Backend, m.config.ConstantCircuit, m.config.Circuits, m.logger)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		reconstructionDuration.Observe(time.Since(start).Seconds())
	}()

	input := m.config.Input
	result := Result{}
	for registerName, named := range input.OperatorMatrices {
		register, ok := output.Complexes[registerName]
		if !ok {
			return nil, errors.Wrapf(ErrIncompleteMeasurement,
				"register %s missing from backend output", registerName)
		}
		if len(register.Shots) == 0 {
			return nil, errors.Wrapf(ErrIncompleteMeasurement,
				"register %s holds no state", registerName)
		}
		state := register.Shots[0]
		for name, matrix := range named {
			var value complex128
			var err error
			if input.UseDensityMatrix {
				value, err = matrix.TraceProduct(state)
			} else {
				value, err = matrix.Expectation(state)
			}
			if err != nil {
				return nil, errors.Wrapf(err, "operator %s on register %s", name, registerName)
			}
			result["exp_val_"+name] = value
		}
	}
	if phase, ok := globalPhase(output); ok {
		result[GlobalPhaseRegister] = phase
	}
	return result, nil
}

// Expectation evaluates the statevector expectation value psi^dagger M
// psi.
func (m CSRMatrix) Expectation(state []complex128) (complex128, error) {
	if len(state) != m.Dim {
		return 0, errors.Wrapf(ErrShapeMismatch,
			"statevector of length %d for operator dimension %d", len(state), m.Dim)
	}
	var value complex128
	for row := 0; row < m.Dim; row++ {
		var applied complex128
		for k := m.Indptr[row]; k < m.Indptr[row+1]; k++ {
			applied += m.Data[k] * state[m.Indices[k]]
		}
		value += cmplx.Conj(state[row]) * applied
	}
	return value, nil
}

// TraceProduct evaluates tr(M rho) against a density matrix serialized
// row-major into the register.
func (m CSRMatrix) TraceProduct(densityMatrix []complex128) (complex128, error) {
	if len(densityMatrix) != m.Dim*m.Dim {
		return 0, errors.Wrapf(ErrShapeMismatch,
			"density matrix of length %d for operator dimension %d", len(densityMatrix), m.Dim)
	}
	var value complex128
	for row := 0; row < m.Dim; row++ {
		for k := m.Indptr[row]; k < m.Indptr[row+1]; k++ {
			col := m.Indices[k]
			value += m.Data[k] * densityMatrix[col*m.Dim+row]
		}
	}
	return value, nil
}

type purePragmaSerialized struct {
	Input           *PurePragmaInput   `yaml:"measurement_input"`
	ConstantCircuit *circuit.Circuit   `yaml:"constant_circuit"`
	Circuits        []*circuit.Circuit `yaml:"circuit_list"`
}

// ToConfig serializes the measurement input and circuits.
func (m *PurePragma) ToConfig() (operations.Config, error) {
	return inputToConfig(purePragmaSerialized{
		Input:           m.config.Input,
		ConstantCircuit: m.config.ConstantCircuit,
		Circuits:        m.config.Circuits,
	})
}

// PurePragmaFromConfig restores a measurement from its config tree,
// re-attaching the given backend.
func PurePragmaFromConfig(
	cfg operations.Config,
	backend backends.Backend,
	logger *zap.Logger,
) (*PurePragma, error) {
	var body purePragmaSerialized
	if err := inputFromConfig(cfg, &body); err != nil {
		return nil, err
	}
	return NewPurePragma(PurePragmaConfig{
		Backend:         backend,
		Input:           body.Input,
		ConstantCircuit: body.ConstantCircuit,
		Circuits:        body.Circuits,
	}, logger), nil
}
