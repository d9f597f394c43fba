package measurements

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/HQSquantumsimulations/qoqo/circuit"
	"github.com/HQSquantumsimulations/qoqo/registers"
)

func pauliZMatrix() CSRMatrix {
	return CSRFromDense([][]complex128{{1, 0}, {0, -1}})
}

func complexShots(name string, values ...complex128) *registers.ComplexOutputRegister {
	return &registers.ComplexOutputRegister{
		Name:   name,
		Length: len(values),
		Shots:  [][]complex128{values},
	}
}

func TestCSRMatrix_Expectation(t *testing.T) {
	z := pauliZMatrix()

	value, err := z.Expectation([]complex128{0, 1})
	require.NoError(t, err)
	assert.Equal(t, complex(-1, 0), value)

	amp := complex(1/math.Sqrt2, 0)
	value, err = z.Expectation([]complex128{amp, amp})
	require.NoError(t, err)
	assert.InDelta(t, 0, real(value), 1e-12)

	_, err = z.Expectation([]complex128{1})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestCSRMatrix_TraceProduct(t *testing.T) {
	z := pauliZMatrix()

	// rho = |1><1| serialized row-major.
	value, err := z.TraceProduct([]complex128{0, 0, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, complex(-1, 0), value)

	// Fully mixed state has vanishing <Z>.
	value, err = z.TraceProduct([]complex128{0.5, 0, 0, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0, real(value), 1e-12)

	_, err = z.TraceProduct([]complex128{0, 1})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestPurePragma_StateVector(t *testing.T) {
	input, err := NewPurePragmaInput(map[string]map[string]CSRMatrix{
		"psi": {"z0": pauliZMatrix()},
	}, false)
	require.NoError(t, err)

	output := registers.NewOutput()
	output.Complexes["psi"] = complexShots("psi", 0, 1)

	m := NewPurePragma(PurePragmaConfig{
		Backend:  &stubBackend{outputs: []*registers.Output{output}},
		Input:    input,
		Circuits: []*circuit.Circuit{circuit.New()},
	}, zap.NewNop())

	result, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, complex(-1, 0), result["exp_val_z0"])
}

func TestPurePragma_DensityMatrix(t *testing.T) {
	input, err := NewPurePragmaInput(map[string]map[string]CSRMatrix{
		"rho": {"z0": pauliZMatrix()},
	}, true)
	require.NoError(t, err)

	output := registers.NewOutput()
	output.Complexes["rho"] = complexShots("rho", 0, 0, 0, 1)

	m := NewPurePragma(PurePragmaConfig{
		Backend:  &stubBackend{outputs: []*registers.Output{output}},
		Input:    input,
		Circuits: []*circuit.Circuit{circuit.New()},
	}, zap.NewNop())

	result, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, complex(-1, 0), result["exp_val_z0"])
}

func TestPurePragma_MissingRegister(t *testing.T) {
	input, err := NewPurePragmaInput(map[string]map[string]CSRMatrix{
		"psi": {"z0": pauliZMatrix()},
	}, false)
	require.NoError(t, err)

	m := NewPurePragma(PurePragmaConfig{
		Backend:  &stubBackend{outputs: []*registers.Output{registers.NewOutput()}},
		Input:    input,
		Circuits: []*circuit.Circuit{circuit.New()},
	}, zap.NewNop())

	_, err = m.Run(context.Background())
	require.ErrorIs(t, err, ErrIncompleteMeasurement)
}

func TestPurePragmaInput_Validation(t *testing.T) {
	broken := CSRMatrix{Dim: 2, Data: []complex128{1}, Indices: []int{5}, Indptr: []int{0, 1, 1}}
	_, err := NewPurePragmaInput(map[string]map[string]CSRMatrix{
		"psi": {"bad": broken},
	}, false)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestPurePragmaInput_YAMLRoundTrip(t *testing.T) {
	y := CSRFromDense([][]complex128{{0, complex(0, -1)}, {complex(0, 1), 0}})
	input, err := NewPurePragmaInput(map[string]map[string]CSRMatrix{
		"psi": {"y0": y, "z0": pauliZMatrix()},
	}, true)
	require.NoError(t, err)

	raw, err := yaml.Marshal(input)
	require.NoError(t, err)

	restored := &PurePragmaInput{}
	require.NoError(t, yaml.Unmarshal(raw, restored))
	assert.True(t, input.Equal(restored))
}

func TestPurePragma_ConfigRoundTrip(t *testing.T) {
	input, err := NewPurePragmaInput(map[string]map[string]CSRMatrix{
		"psi": {"z0": pauliZMatrix()},
	}, false)
	require.NoError(t, err)

	m := NewPurePragma(PurePragmaConfig{Input: input}, zap.NewNop())

	cfg, err := m.ToConfig()
	require.NoError(t, err)

	restored, err := PurePragmaFromConfig(cfg, nil, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, input.Equal(restored.config.Input))
}
