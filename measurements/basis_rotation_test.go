package measurements

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/HQSquantumsimulations/qoqo/backends"
	"github.com/HQSquantumsimulations/qoqo/circuit"
	"github.com/HQSquantumsimulations/qoqo/devices"
	"github.com/HQSquantumsimulations/qoqo/operations"
	"github.com/HQSquantumsimulations/qoqo/registers"
)

// stubBackend replays canned outputs in dispatch order and records the
// circuits it received.
type stubBackend struct {
	outputs  []*registers.Output
	err      error
	circuits []*circuit.Circuit
}

func (b *stubBackend) Run(_ context.Context, c *circuit.Circuit) (*registers.Output, error) {
	b.circuits = append(b.circuits, c)
	if b.err != nil {
		return nil, b.err
	}
	output := b.outputs[0]
	if len(b.outputs) > 1 {
		b.outputs = b.outputs[1:]
	}
	return output, nil
}

type stubDevice struct {
	measurementErrors map[int]devices.MeasurementError
}

func (d *stubDevice) NumberQubits() int                    { return len(d.measurementErrors) }
func (d *stubDevice) AvailableOneQubitGates() []string     { return nil }
func (d *stubDevice) AvailableTwoQubitGates() []string     { return nil }
func (d *stubDevice) TwoQubitConnected(a, b int) bool      { return true }
func (d *stubDevice) DampingRate(qubit int) float64        { return 0 }
func (d *stubDevice) DephasingRate(qubit int) float64      { return 0 }
func (d *stubDevice) DepolarisationRate(qubit int) float64 { return 0 }
func (d *stubDevice) MeasurementError(qubit int) (devices.MeasurementError, bool) {
	me, ok := d.measurementErrors[qubit]
	return me, ok
}

func bitShots(name string, length int, shots [][]bool) *registers.Output {
	out := registers.NewOutput()
	out.Bits[name] = &registers.BitOutputRegister{Name: name, Length: length, Shots: shots}
	return out
}

func singleRowTransform(values ...complex128) operations.ComplexMatrix {
	return operations.NewComplexMatrix([][]complex128{values})
}

func TestBasisRotation_ConstantPauliProduct(t *testing.T) {
	input, err := NewBasisRotationInput(
		map[string]map[int][]int{"ro": {0: {}}},
		singleRowTransform(1),
		1, 1, []string{"example"}, false,
	)
	require.NoError(t, err)

	shots := [][]bool{{false}, {false}, {false}, {false}}
	backend := &stubBackend{outputs: []*registers.Output{bitShots("ro", 1, shots)}}
	m := NewBasisRotation(BasisRotationConfig{
		Backend:  backend,
		Input:    input,
		Circuits: []*circuit.Circuit{circuit.New()},
	}, zap.NewNop())

	result, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, complex(1, 0), result["exp_val_example"])
}

func TestBasisRotation_ShotParity(t *testing.T) {
	input, err := NewBasisRotationInput(
		map[string]map[int][]int{"ro": {0: {0}, 1: {0, 1}}},
		singleRowTransform(3, 1),
		2, 2, []string{"sum"}, false,
	)
	require.NoError(t, err)

	// <Z0> averages to -1, <Z0 Z1> averages to 0.
	shots := [][]bool{{true, false}, {true, true}}
	backend := &stubBackend{outputs: []*registers.Output{bitShots("ro", 2, shots)}}
	m := NewBasisRotation(BasisRotationConfig{
		Backend:  backend,
		Input:    input,
		Circuits: []*circuit.Circuit{circuit.New()},
	}, zap.NewNop())

	result, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, -3, real(result["exp_val_sum"]), 1e-12)
	assert.InDelta(t, 0, imag(result["exp_val_sum"]), 1e-12)
}

func TestBasisRotation_FlippedMitigation(t *testing.T) {
	input, err := NewBasisRotationInput(
		map[string]map[int][]int{
			"ro":         {0: {0}},
			"ro_flipped": {0: {0}},
		},
		singleRowTransform(1),
		1, 1, []string{"z0"}, true,
	)
	require.NoError(t, err)

	output := bitShots("ro", 1, [][]bool{{false}, {false}})
	output.Bits["ro_flipped"] = &registers.BitOutputRegister{
		Name:   "ro_flipped",
		Length: 1,
		Shots:  [][]bool{{true}, {true}},
	}
	backend := &stubBackend{outputs: []*registers.Output{output}}
	device := &stubDevice{measurementErrors: map[int]devices.MeasurementError{
		0: {Prob0As1: 0.1, Prob1As0: 0.1},
	}}
	m := NewBasisRotation(BasisRotationConfig{
		Backend:  backend,
		Device:   device,
		Input:    input,
		Circuits: []*circuit.Circuit{circuit.New()},
	}, zap.NewNop())

	result, err := m.Run(context.Background())
	require.NoError(t, err)
	// Both branches average to +1, fidelity (2 - 0.1 - 0.1) / 2 = 0.9
	// divides the mean.
	assert.InDelta(t, 1/0.9, real(result["exp_val_z0"]), 1e-12)
}

func TestBasisRotation_FidelityDefaultsWithoutDeviceEntry(t *testing.T) {
	input, err := NewBasisRotationInput(
		map[string]map[int][]int{
			"ro":         {0: {0}},
			"ro_flipped": {0: {0}},
		},
		singleRowTransform(1),
		1, 1, []string{"z0"}, true,
	)
	require.NoError(t, err)

	output := bitShots("ro", 1, [][]bool{{false}})
	output.Bits["ro_flipped"] = &registers.BitOutputRegister{
		Name:   "ro_flipped",
		Length: 1,
		Shots:  [][]bool{{true}},
	}
	backend := &stubBackend{outputs: []*registers.Output{output}}
	m := NewBasisRotation(BasisRotationConfig{
		Backend:  backend,
		Device:   &stubDevice{},
		Input:    input,
		Circuits: []*circuit.Circuit{circuit.New()},
	}, zap.NewNop())

	result, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1, real(result["exp_val_z0"]), 1e-12)
}

func TestBasisRotation_MissingRegister(t *testing.T) {
	input, err := NewBasisRotationInput(
		map[string]map[int][]int{"ro": {0: {0}}},
		singleRowTransform(1),
		1, 1, []string{"z0"}, false,
	)
	require.NoError(t, err)

	backend := &stubBackend{outputs: []*registers.Output{registers.NewOutput()}}
	m := NewBasisRotation(BasisRotationConfig{
		Backend:  backend,
		Input:    input,
		Circuits: []*circuit.Circuit{circuit.New()},
	}, zap.NewNop())

	_, err = m.Run(context.Background())
	require.ErrorIs(t, err, ErrIncompleteMeasurement)
}

func TestBasisRotation_NotReadyPropagates(t *testing.T) {
	m := NewBasisRotation(BasisRotationConfig{
		Backend:  &stubBackend{err: backends.ErrNotReady},
		Circuits: []*circuit.Circuit{circuit.New()},
	}, zap.NewNop())

	result, err := m.Run(context.Background())
	require.ErrorIs(t, err, backends.ErrNotReady)
	assert.Nil(t, result)
}

func TestBasisRotation_NilBackend(t *testing.T) {
	m := NewBasisRotation(BasisRotationConfig{}, nil)
	result, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestBasisRotation_GlobalPhasePassThrough(t *testing.T) {
	input, err := NewBasisRotationInput(nil, operations.ComplexMatrix{}, 0, 0, nil, false)
	require.NoError(t, err)

	output := registers.NewOutput()
	output.Floats["global_phase"] = &registers.FloatOutputRegister{
		Name:   "global_phase",
		Length: 1,
		Shots:  [][]float64{{0.25}},
	}
	backend := &stubBackend{outputs: []*registers.Output{output}}
	m := NewBasisRotation(BasisRotationConfig{
		Backend:  backend,
		Input:    input,
		Circuits: []*circuit.Circuit{circuit.New()},
	}, zap.NewNop())

	result, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, complex(0.25, 0), result["global_phase"])
}

func TestBasisRotation_EmptyCircuitList(t *testing.T) {
	input, err := NewBasisRotationInput(nil, operations.ComplexMatrix{}, 0, 0, nil, false)
	require.NoError(t, err)

	m := NewBasisRotation(BasisRotationConfig{
		Backend: &stubBackend{},
		Input:   input,
	}, zap.NewNop())

	result, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestBasisRotation_ConstantCircuitPrepended(t *testing.T) {
	constant := circuit.New()
	constant.Add(operations.NewHadamard(0))

	measured := circuit.New()
	measured.Add(operations.NewPauliX(0))

	backend := &stubBackend{outputs: []*registers.Output{registers.NewOutput()}}
	input, err := NewBasisRotationInput(nil, operations.ComplexMatrix{}, 0, 0, nil, false)
	require.NoError(t, err)

	m := NewBasisRotation(BasisRotationConfig{
		Backend:         backend,
		Input:           input,
		ConstantCircuit: constant,
		Circuits:        []*circuit.Circuit{measured},
	}, zap.NewNop())

	_, err = m.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, backend.circuits, 1)

	ops := backend.circuits[0].Operations()
	require.Len(t, ops, 2)
	assert.Equal(t, "Hadamard", ops[0].Name())
	assert.Equal(t, "PauliX", ops[1].Name())
}

func TestBasisRotation_SimulatorEndToEnd(t *testing.T) {
	def := operations.NewDefinition("ro", operations.VarTypeBit, 1)
	def.IsOutput = true

	c := circuit.New()
	c.Add(def)
	c.Add(operations.NewPauliX(0))
	c.Add(operations.NewMeasureQubit(0, "ro"))
	c.Add(operations.NewPragmaSetNumberOfMeasurements(50, "ro"))

	simulator, err := backends.NewSimulator(backends.SimulatorConfig{NumberQubits: 1, Seed: 3}, zap.NewNop())
	require.NoError(t, err)

	input, err := NewBasisRotationInput(
		map[string]map[int][]int{"ro": {0: {0}}},
		singleRowTransform(1),
		1, 1, []string{"z0"}, false,
	)
	require.NoError(t, err)

	m := NewBasisRotation(BasisRotationConfig{
		Backend:  simulator,
		Input:    input,
		Circuits: []*circuit.Circuit{c},
	}, zap.NewNop())

	result, err := m.Run(context.Background())
	require.NoError(t, err)
	// |1> measures Z to -1 on every shot.
	assert.InDelta(t, -1, real(result["exp_val_z0"]), 1e-12)
}

func TestBasisRotationInput_ShapeValidation(t *testing.T) {
	_, err := NewBasisRotationInput(nil, singleRowTransform(1), 1, 1, nil, false)
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewBasisRotationInput(nil, singleRowTransform(1, 1), 1, 1, []string{"a"}, false)
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewBasisRotationInput(
		map[string]map[int][]int{"ro": {2: {0}}},
		singleRowTransform(1), 1, 1, []string{"a"}, false)
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewBasisRotationInput(
		map[string]map[int][]int{"ro": {0: {5}}},
		singleRowTransform(1), 1, 1, []string{"a"}, false)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestBasisRotationInput_YAMLRoundTrip(t *testing.T) {
	input, err := NewBasisRotationInput(
		map[string]map[int][]int{"ro": {0: {0}, 1: {0, 1}}},
		operations.NewComplexMatrix([][]complex128{{3, complex(0, 1)}}),
		2, 2, []string{"sum"}, true,
	)
	require.NoError(t, err)

	raw, err := yaml.Marshal(input)
	require.NoError(t, err)

	restored := &BasisRotationInput{}
	require.NoError(t, yaml.Unmarshal(raw, restored))
	assert.True(t, input.Equal(restored))
}

func TestBasisRotation_ConfigRoundTrip(t *testing.T) {
	input, err := NewBasisRotationInput(
		map[string]map[int][]int{"ro": {0: {0}}},
		singleRowTransform(1),
		1, 1, []string{"z0"}, false,
	)
	require.NoError(t, err)

	def := operations.NewDefinition("ro", operations.VarTypeBit, 1)
	def.IsOutput = true
	measured := circuit.New()
	measured.Add(def)
	measured.Add(operations.NewHadamard(0))
	measured.Add(operations.NewMeasureQubit(0, "ro"))

	constant := circuit.New()
	constant.Add(operations.NewPauliX(0))

	m := NewBasisRotation(BasisRotationConfig{
		Input:           input,
		ConstantCircuit: constant,
		Circuits:        []*circuit.Circuit{measured},
	}, zap.NewNop())

	cfg, err := m.ToConfig()
	require.NoError(t, err)

	restored, err := BasisRotationFromConfig(cfg, nil, nil, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, input.Equal(restored.config.Input))
	require.Len(t, restored.config.Circuits, 1)
	assert.True(t, measured.Equal(restored.config.Circuits[0]))
	assert.True(t, constant.Equal(restored.config.ConstantCircuit))
}
