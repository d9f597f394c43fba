package qprogram

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/HQSquantumsimulations/qoqo/backends"
	"github.com/HQSquantumsimulations/qoqo/calculator"
	"github.com/HQSquantumsimulations/qoqo/circuit"
	"github.com/HQSquantumsimulations/qoqo/measurements"
	"github.com/HQSquantumsimulations/qoqo/operations"
	"github.com/HQSquantumsimulations/qoqo/store"
)

// fakeMeasurement records the substitutions it was run with and replays
// canned outcomes.
type fakeMeasurement struct {
	substitutions map[string]float64
	result        measurements.Result
	errs          []error
	runs          int
}

func (m *fakeMeasurement) Run(_ context.Context) (measurements.Result, error) {
	m.runs++
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	result := measurements.Result{}
	for name, value := range m.result {
		result[name] = value
	}
	return result, nil
}

func (m *fakeMeasurement) WithSubstitutions(substitutions map[string]float64) measurements.Measurement {
	m.substitutions = substitutions
	return m
}

func (m *fakeMeasurement) ToConfig() (operations.Config, error) {
	return operations.Config{"kind": "fake"}, nil
}

func TestQuantumProgram_BindsAndEchoesParameters(t *testing.T) {
	measurement := &fakeMeasurement{result: measurements.Result{"exp_val_h": complex(2, 0)}}
	p := New(QuantumProgramConfig{
		Measurement:    measurement,
		FreeParameters: []string{"theta"},
	}, zap.NewNop())

	result, err := p.Run(context.Background(), map[string]float64{"theta": 0.5})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"theta": 0.5}, measurement.substitutions)
	assert.Equal(t, complex(2, 0), result["exp_val_h"])
	assert.Equal(t, complex(0.5, 0), result["unitary_parameter_theta"])
}

func TestQuantumProgram_MissingParameter(t *testing.T) {
	p := New(QuantumProgramConfig{
		Measurement:    &fakeMeasurement{},
		FreeParameters: []string{"theta", "phi"},
	}, zap.NewNop())

	_, err := p.Run(context.Background(), map[string]float64{"theta": 1})
	require.ErrorIs(t, err, ErrMissingParameter)
}

func TestQuantumProgram_RunPositional(t *testing.T) {
	measurement := &fakeMeasurement{result: measurements.Result{}}
	p := New(QuantumProgramConfig{
		Measurement:    measurement,
		FreeParameters: []string{"a", "b"},
	}, zap.NewNop())

	_, err := p.RunPositional(context.Background(), []float64{1})
	require.ErrorIs(t, err, ErrParameterCount)

	result, err := p.RunPositional(context.Background(), []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"a": 1, "b": 2}, measurement.substitutions)
	assert.Equal(t, complex(2, 0), result["unitary_parameter_b"])
}

func TestQuantumProgram_SuspendAndResume(t *testing.T) {
	s, err := store.NewStore(store.StoreConfig{Path: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	measurement := &fakeMeasurement{
		result: measurements.Result{"exp_val_h": complex(1, 0)},
		errs:   []error{backends.ErrNotReady},
	}
	p := New(QuantumProgramConfig{
		Measurement:    measurement,
		FreeParameters: []string{"theta"},
		Kind:           "fake",
		Store:          s,
		RunID:          "run-1",
	}, zap.NewNop())

	_, err = p.Run(context.Background(), map[string]float64{"theta": 0.25})
	require.ErrorIs(t, err, backends.ErrNotReady)

	record, err := s.GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, "fake", record.Kind)
	assert.Equal(t, map[string]float64{"theta": 0.25}, record.Parameters)

	result, err := p.Resume(context.Background())
	require.NoError(t, err)
	assert.Equal(t, complex(0.25, 0), result["unitary_parameter_theta"])
	assert.Equal(t, 2, measurement.runs)

	_, err = s.GetRun("run-1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestQuantumProgram_AsyncJob(t *testing.T) {
	measurement := &fakeMeasurement{result: measurements.Result{"exp_val_h": complex(3, 0)}}
	p := New(QuantumProgramConfig{
		Measurement:    measurement,
		FreeParameters: []string{"theta"},
	}, zap.NewNop())

	job := p.Start(context.Background(), map[string]float64{"theta": 1})
	result, err := job.Wait()
	require.NoError(t, err)
	assert.Equal(t, complex(3, 0), result["exp_val_h"])
	assert.False(t, job.Alive())
}

func TestQuantumProgram_SimulatorEndToEnd(t *testing.T) {
	def := operations.NewDefinition("ro", operations.VarTypeBit, 1)
	def.IsOutput = true

	c := circuit.New()
	c.Add(def)
	c.Add(operations.NewRotateX(0, calculator.Symbolic("theta")))
	c.Add(operations.NewMeasureQubit(0, "ro"))
	c.Add(operations.NewPragmaSetNumberOfMeasurements(40, "ro"))

	simulator, err := backends.NewSimulator(backends.SimulatorConfig{NumberQubits: 1, Seed: 5}, zap.NewNop())
	require.NoError(t, err)

	input, err := measurements.NewBasisRotationInput(
		map[string]map[int][]int{"ro": {0: {0}}},
		operations.NewComplexMatrix([][]complex128{{1}}),
		1, 1, []string{"z0"}, false,
	)
	require.NoError(t, err)

	measurement := measurements.NewBasisRotation(measurements.BasisRotationConfig{
		Backend:  simulator,
		Input:    input,
		Circuits: []*circuit.Circuit{c},
	}, zap.NewNop())

	p := New(QuantumProgramConfig{
		Measurement:    measurement,
		FreeParameters: []string{"theta"},
		Kind:           "basis_rotation",
	}, zap.NewNop())

	// theta = pi rotates |0> to |1>, so <Z0> = -1 on every shot.
	result, err := p.Run(context.Background(), map[string]float64{"theta": math.Pi})
	require.NoError(t, err)
	assert.InDelta(t, -1, real(result["exp_val_z0"]), 1e-12)
	assert.InDelta(t, math.Pi, real(result["unitary_parameter_theta"]), 1e-12)
}
