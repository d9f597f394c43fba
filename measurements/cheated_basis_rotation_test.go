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
	"github.com/HQSquantumsimulations/qoqo/operations"
	"github.com/HQSquantumsimulations/qoqo/registers"
)

func floatShots(name string, values ...float64) *registers.FloatOutputRegister {
	return &registers.FloatOutputRegister{
		Name:   name,
		Length: 1,
		Shots:  [][]float64{values},
	}
}

func TestCheatedBasisRotation_ReadsProductRegisters(t *testing.T) {
	input, err := NewCheatedBasisRotationInput(
		singleRowTransform(3, 1),
		2, []string{"sum"},
	)
	require.NoError(t, err)

	output := registers.NewOutput()
	output.Floats["ro_pauli_product_0"] = floatShots("ro_pauli_product_0", 0.5)
	output.Floats["ro_pauli_product_1"] = floatShots("ro_pauli_product_1", -1)

	m := NewCheatedBasisRotation(CheatedBasisRotationConfig{
		Backend:  &stubBackend{outputs: []*registers.Output{output}},
		Input:    input,
		Circuits: []*circuit.Circuit{circuit.New()},
	}, zap.NewNop())

	result, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.5, real(result["exp_val_sum"]), 1e-12)
}

func TestCheatedBasisRotation_IgnoresOtherRegisters(t *testing.T) {
	input, err := NewCheatedBasisRotationInput(
		singleRowTransform(1),
		1, []string{"z0"},
	)
	require.NoError(t, err)

	output := registers.NewOutput()
	output.Floats["ro_pauli_product_0"] = floatShots("ro_pauli_product_0", 1)
	output.Floats["unrelated"] = floatShots("unrelated", 42)

	m := NewCheatedBasisRotation(CheatedBasisRotationConfig{
		Backend:  &stubBackend{outputs: []*registers.Output{output}},
		Input:    input,
		Circuits: []*circuit.Circuit{circuit.New()},
	}, zap.NewNop())

	result, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, complex(1, 0), result["exp_val_z0"])
}

func TestCheatedBasisRotation_ProductIndexOutOfRange(t *testing.T) {
	input, err := NewCheatedBasisRotationInput(
		singleRowTransform(1),
		1, []string{"z0"},
	)
	require.NoError(t, err)

	output := registers.NewOutput()
	output.Floats["ro_pauli_product_4"] = floatShots("ro_pauli_product_4", 1)

	m := NewCheatedBasisRotation(CheatedBasisRotationConfig{
		Backend:  &stubBackend{outputs: []*registers.Output{output}},
		Input:    input,
		Circuits: []*circuit.Circuit{circuit.New()},
	}, zap.NewNop())

	_, err = m.Run(context.Background())
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestCheatedBasisRotation_GlobalPhaseAndNotReady(t *testing.T) {
	input, err := NewCheatedBasisRotationInput(operations.ComplexMatrix{}, 0, nil)
	require.NoError(t, err)

	output := registers.NewOutput()
	output.Floats["global_phase"] = floatShots("global_phase", 0.5)

	m := NewCheatedBasisRotation(CheatedBasisRotationConfig{
		Backend:  &stubBackend{outputs: []*registers.Output{output}},
		Input:    input,
		Circuits: []*circuit.Circuit{circuit.New()},
	}, zap.NewNop())

	result, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, complex(0.5, 0), result["global_phase"])

	m = NewCheatedBasisRotation(CheatedBasisRotationConfig{
		Backend:  &stubBackend{err: backends.ErrNotReady},
		Input:    input,
		Circuits: []*circuit.Circuit{circuit.New()},
	}, zap.NewNop())

	_, err = m.Run(context.Background())
	require.ErrorIs(t, err, backends.ErrNotReady)
}

func TestCheatedBasisRotationInput_YAMLRoundTrip(t *testing.T) {
	input, err := NewCheatedBasisRotationInput(
		operations.NewComplexMatrix([][]complex128{{1, 0}, {complex(0, 2), 1}}),
		2, []string{"a", "b"},
	)
	require.NoError(t, err)

	raw, err := yaml.Marshal(input)
	require.NoError(t, err)

	restored := &CheatedBasisRotationInput{}
	require.NoError(t, yaml.Unmarshal(raw, restored))
	assert.True(t, input.Equal(restored))
}

func TestCheatedBasisRotation_ConfigRoundTrip(t *testing.T) {
	input, err := NewCheatedBasisRotationInput(
		singleRowTransform(1),
		1, []string{"z0"},
	)
	require.NoError(t, err)

	measured := circuit.New()
	measured.Add(operations.NewHadamard(0))

	m := NewCheatedBasisRotation(CheatedBasisRotationConfig{
		Input:    input,
		Circuits: []*circuit.Circuit{measured},
	}, zap.NewNop())

	cfg, err := m.ToConfig()
	require.NoError(t, err)

	restored, err := CheatedBasisRotationFromConfig(cfg, nil, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, input.Equal(restored.config.Input))
	require.Len(t, restored.config.Circuits, 1)
	assert.True(t, measured.Equal(restored.config.Circuits[0]))
}
