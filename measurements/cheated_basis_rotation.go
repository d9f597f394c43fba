package measurements

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/HQSquantumsimulations/qoqo/backends"
	"github.com/HQSquantumsimulations/qoqo/circuit"
	"github.com/HQSquantumsimulations/qoqo/operations"
)

// pauliProductMarker tags the float registers a cheated backend writes
// single Pauli product expectation values into, suffixed by the product
// index.
const pauliProductMarker = "_pauli_product_"

// CheatedBasisRotationConfig wires a CheatedBasisRotation measurement to
// its collaborators.
type CheatedBasisRotationConfig struct {
	Backend         backends.Backend
	Input           *CheatedBasisRotationInput
	ConstantCircuit *circuit.Circuit
	Circuits        []*circuit.Circuit
}

// CheatedBasisRotation reads Pauli product expectation values directly
// from simulator registers instead of reconstructing them from shot
// parity. The backend writes one float register per product, named with
// the _pauli_product_<index> suffix.
type CheatedBasisRotation struct {
	config CheatedBasisRotationConfig
	logger *zap.Logger
}

// NewCheatedBasisRotation creates a cheated basis rotation measurement.
func NewCheatedBasisRotation(config CheatedBasisRotationConfig, logger *zap.Logger) *CheatedBasisRotation {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Input == nil {
		config.Input = &CheatedBasisRotationInput{}
	}
	return &CheatedBasisRotation{
		config: config,
		logger: logger,
	}
}

// Run dispatches every circuit and assembles the expectation values from
// the Pauli product registers.
func (m *CheatedBasisRotation) Run(ctx context.Context) (Result, error) {
	if m.config.Backend == nil {
		return Result{}, nil
	}
	runsExecuted.WithLabelValues("cheated_basis_rotation").Inc()
	output, err := dispatch(ctx, m.config.Backend, m.config.ConstantCircuit, m.config.Circuits, m.logger)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		reconstructionDuration.Observe(time.Since(start).Seconds())
	}()

	input := m.config.Input
	products := make([]float64, input.NumberPauliProducts)
	for registerName, register := range output.Floats {
		marker := strings.LastIndex(registerName, pauliProductMarker)
		if marker < 0 {
			continue
		}
		index, err := strconv.Atoi(registerName[marker+len(pauliProductMarker):])
		if err != nil {
			return nil, errors.Wrapf(err, "register %s carries no product index", registerName)
		}
		if index < 0 || index >= input.NumberPauliProducts {
			return nil, errors.Wrapf(ErrShapeMismatch,
				"register %s addresses pauli product %d of %d",
				registerName, index, input.NumberPauliProducts)
		}
		if len(register.Shots) == 0 || len(register.Shots[0]) == 0 {
			return nil, errors.Wrapf(ErrIncompleteMeasurement,
				"register %s holds no value", registerName)
		}
		products[index] = register.Shots[0][0]
	}

	result := Result{}
	for row := 0; row < input.Transform.Rows; row++ {
		var value complex128
		for col := 0; col < input.Transform.Cols(); col++ {
			value += input.Transform.At(row, col) * complex(products[col], 0)
		}
		result["exp_val_"+input.MeasuredExpVals[row]] = value
	}
	if phase, ok := globalPhase(output); ok {
		result[GlobalPhaseRegister] = phase
	}
	return result, nil
}

type cheatedBasisRotationSerialized struct {
	Input           *CheatedBasisRotationInput `yaml:"measurement_input"`
	ConstantCircuit *circuit.Circuit           `yaml:"constant_circuit"`
	Circuits        []*circuit.Circuit         `yaml:"circuit_list"`
}

// ToConfig serializes the measurement input and circuits.
func (m *CheatedBasisRotation) ToConfig() (operations.Config, error) {
	return inputToConfig(cheatedBasisRotationSerialized{
		Input:           m.config.Input,
		ConstantCircuit: m.config.ConstantCircuit,
		Circuits:        m.config.Circuits,
	})
}

// CheatedBasisRotationFromConfig restores a measurement from its config
// tree, re-attaching the given backend.
func CheatedBasisRotationFromConfig(
	cfg operations.Config,
	backend backends.Backend,
	logger *zap.Logger,
) (*CheatedBasisRotation, error) {
	var body cheatedBasisRotationSerialized
	if err := inputFromConfig(cfg, &body); err != nil {
		return nil, err
	}
	return NewCheatedBasisRotation(CheatedBasisRotationConfig{
		Backend:         backend,
		Input:           body.Input,
		ConstantCircuit: body.ConstantCircuit,
		Circuits:        body.Circuits,
	}, logger), nil
}
