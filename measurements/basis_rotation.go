package measurements

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/HQSquantumsimulations/qoqo/backends"
	"github.com/HQSquantumsimulations/qoqo/circuit"
	"github.com/HQSquantumsimulations/qoqo/devices"
	"github.com/HQSquantumsimulations/qoqo/operations"
	"github.com/HQSquantumsimulations/qoqo/registers"
)

// BasisRotationConfig wires a BasisRotation measurement to its
// collaborators. The circuits must already rotate the measured operators
// into the Z basis, the measurement itself only reconstructs Pauli
// products from the bit registers.
type BasisRotationConfig struct {
	Backend backends.Backend
	// Device supplies the readout error model for mitigation. Leave
	// nil for ideal measurement fidelity.
	Device          devices.Device
	Input           *BasisRotationInput
	ConstantCircuit *circuit.Circuit
	Circuits        []*circuit.Circuit
}

// BasisRotation measures expectation values of Pauli products by shot
// parity over bit registers.
type BasisRotation struct {
	config BasisRotationConfig
	logger *zap.Logger
}

// NewBasisRotation creates a basis rotation measurement.
func NewBasisRotation(config BasisRotationConfig, logger *zap.Logger) *BasisRotation {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Input == nil {
		config.Input = &BasisRotationInput{QubitMasks: map[string]map[int][]int{}}
	}
	return &BasisRotation{
		config: config,
		logger: logger,
	}
}

// Run dispatches every circuit and reconstructs the configured
// expectation values from the accumulated registers.
func (m *BasisRotation) Run(ctx context.Context) (Result, error) {
	if m.config.Backend == nil {
		return Result{}, nil
	}
	runsExecuted.WithLabelValues("basis_rotation").Inc()
	output, err := dispatch(ctx, m.config.Backend, m.config.ConstantCircuit, m.config.Circuits, m.logger)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		reconstructionDuration.Observe(time.Since(start).Seconds())
	}()
	return m.reconstruct(output)
}

func (m *BasisRotation) reconstruct(output *registers.Output) (Result, error) {
	input := m.config.Input
	fidelities := m.measurementFidelities()

	// Per-register Pauli product expectation values averaged over
	// shots.
	products := map[string][]float64{}
	for registerName, mask := range input.QubitMasks {
		register, ok := output.Bits[registerName]
		if !ok {
			return nil, errors.Wrapf(ErrIncompleteMeasurement,
				"register %s missing from backend output", registerName)
		}
		values, err := registerPauliProducts(register, mask, input.NumberPauliProducts)
		if err != nil {
			return nil, err
		}
		products[registerName] = values
	}

	if input.UseFlippedMeasurement {
		for registerName, values := range products {
			if isFlipped(registerName) {
				continue
			}
			flipped, ok := products[registerName+flippedSuffix]
			if !ok {
				return nil, errors.Wrapf(ErrIncompleteMeasurement,
					"flipped companion of register %s missing", registerName)
			}
			correction := correctionFactors(
				input.QubitMasks[registerName], fidelities, input.NumberPauliProducts)
			for i := range values {
				values[i] = ((values[i] + flipped[i]) / 2) / correction[i]
			}
		}
	}

	summed := make([]float64, input.NumberPauliProducts)
	for registerName, values := range products {
		if isFlipped(registerName) {
			continue
		}
		for i, val := range values {
			summed[i] += val
		}
	}

	result := Result{}
	for row := 0; row < input.Transform.Rows; row++ {
		var value complex128
		for col := 0; col < input.Transform.Cols(); col++ {
			value += input.Transform.At(row, col) * complex(summed[col], 0)
		}
		result["exp_val_"+input.MeasuredExpVals[row]] = value
	}
	if phase, ok := globalPhase(output); ok {
		result[GlobalPhaseRegister] = phase
	}

	m.logger.Debug("reconstructed expectation values",
		zap.Int("registers", len(products)),
		zap.Int("expectation_values", len(result)),
	)
	return result, nil
}

// measurementFidelities returns the per-qubit readout fidelity
// (2 - p01 - p10) / 2 from the device error model, 1 for qubits without
// an entry or without a device.
func (m *BasisRotation) measurementFidelities() []float64 {
	fidelities := make([]float64, m.config.Input.NumberQubits)
	for qubit := range fidelities {
		fidelities[qubit] = 1
	}
	if m.config.Device == nil {
		return fidelities
	}
	for qubit := range fidelities {
		if me, ok := m.config.Device.MeasurementError(qubit); ok {
			fidelities[qubit] = (2 - me.Prob0As1 - me.Prob1As0) / 2
		}
	}
	return fidelities
}

// registerPauliProducts averages the per-shot parity of each masked
// Pauli product. An empty qubit list is the constant product 1, flipped
// registers complement every bit before the parity.
func registerPauliProducts(
	register *registers.BitOutputRegister,
	mask map[int][]int,
	numberPauliProducts int,
) ([]float64, error) {
	values := make([]float64, numberPauliProducts)
	flipped := isFlipped(register.Name)
	for index, qubits := range mask {
		if len(qubits) == 0 {
			values[index] = 1
			continue
		}
		if len(register.Shots) == 0 {
			continue
		}
		sum := 0.0
		for _, shot := range register.Shots {
			ones := 0
			for _, qubit := range qubits {
				if qubit >= len(shot) {
					return nil, errors.Wrapf(ErrShapeMismatch,
						"register %s holds %d bits, mask addresses qubit %d",
						register.Name, len(shot), qubit)
				}
				bit := shot[qubit]
				if flipped {
					bit = !bit
				}
				if bit {
					ones++
				}
			}
			if ones%2 == 0 {
				sum++
			} else {
				sum--
			}
		}
		values[index] = sum / float64(len(register.Shots))
	}
	return values, nil
}

// correctionFactors multiplies the readout fidelities of the qubits
// contributing to each Pauli product. Unmasked or empty products divide
// by 1.
func correctionFactors(mask map[int][]int, fidelities []float64, numberPauliProducts int) []float64 {
	correction := make([]float64, numberPauliProducts)
	for i := range correction {
		correction[i] = 1
	}
	for index, qubits := range mask {
		for _, qubit := range qubits {
			correction[index] *= fidelities[qubit]
		}
	}
	return correction
}

type basisRotationSerialized struct {
	Input           *BasisRotationInput `yaml:"measurement_input"`
	ConstantCircuit *circuit.Circuit    `yaml:"constant_circuit"`
	Circuits        []*circuit.Circuit  `yaml:"circuit_list"`
}

// ToConfig serializes the measurement input and circuits. Backend and
// device are collaborators and are re-injected on restore.
func (m *BasisRotation) ToConfig() (operations.Config, error) {
	return inputToConfig(basisRotationSerialized{
		Input:           m.config.Input,
		ConstantCircuit: m.config.ConstantCircuit,
		Circuits:        m.config.Circuits,
	})
}

// BasisRotationFromConfig restores a measurement from its config tree,
// re-attaching the given backend and device.
func BasisRotationFromConfig(
	cfg operations.Config,
	backend backends.Backend,
	device devices.Device,
	logger *zap.Logger,
) (*BasisRotation, error) {
	var body basisRotationSerialized
	if err := inputFromConfig(cfg, &body); err != nil {
		return nil, err
	}
	return NewBasisRotation(BasisRotationConfig{
		Backend:         backend,
		Device:          device,
		Input:           body.Input,
		ConstantCircuit: body.ConstantCircuit,
		Circuits:        body.Circuits,
	}, logger), nil
}
