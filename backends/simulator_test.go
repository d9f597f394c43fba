package backends

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/HQSquantumsimulations/qoqo/calculator"
	"github.com/HQSquantumsimulations/qoqo/circuit"
	"github.com/HQSquantumsimulations/qoqo/operations"
)

func newTestSimulator(t *testing.T, numberQubits int) *Simulator {
	t.Helper()
	s, err := NewSimulator(SimulatorConfig{NumberQubits: numberQubits, Seed: 7}, zap.NewNop())
	require.NoError(t, err)
	return s
}

func outputBitDefinition(name string, length int) *operations.Definition {
	def := operations.NewDefinition(name, operations.VarTypeBit, length)
	def.IsOutput = true
	return def
}

func TestSimulator_DeterministicMeasurement(t *testing.T) {
	c := circuit.New()
	c.Add(outputBitDefinition("ro", 1))
	c.Add(operations.NewPauliX(0))
	c.Add(operations.NewMeasureQubit(0, "ro"))
	c.Add(operations.NewPragmaSetNumberOfMeasurements(20, "ro"))

	s := newTestSimulator(t, 1)
	out, err := s.Run(context.Background(), c)
	require.NoError(t, err)

	reg := out.Bits["ro"]
	require.NotNil(t, reg)
	require.Equal(t, 20, reg.Size())
	for _, shot := range reg.Shots {
		assert.Equal(t, []bool{true}, shot)
	}
}

func TestSimulator_BellStateCorrelations(t *testing.T) {
	c := circuit.New()
	c.Add(outputBitDefinition("ro", 2))
	c.Add(operations.NewHadamard(0))
	c.Add(operations.NewCNOT(0, 1))
	c.Add(operations.NewPragmaRepeatedMeasurement("ro", 100))

	s := newTestSimulator(t, 2)
	out, err := s.Run(context.Background(), c)
	require.NoError(t, err)

	reg := out.Bits["ro"]
	require.NotNil(t, reg)
	require.Equal(t, 100, reg.Size())
	for _, shot := range reg.Shots {
		assert.Equal(t, shot[0], shot[1])
	}
}

func TestSimulator_StateVectorSnapshot(t *testing.T) {
	def := operations.NewDefinition("psi", operations.VarTypeComplex, 2)
	def.IsOutput = true

	c := circuit.New()
	c.Add(def)
	c.Add(operations.NewHadamard(0))
	c.Add(operations.NewPragmaGetStateVector("psi", nil))

	s := newTestSimulator(t, 1)
	out, err := s.Run(context.Background(), c)
	require.NoError(t, err)

	reg := out.Complexes["psi"]
	require.NotNil(t, reg)
	require.Equal(t, 1, reg.Size())
	assert.InDelta(t, 1/math.Sqrt2, real(reg.Shots[0][0]), 1e-12)
	assert.InDelta(t, 1/math.Sqrt2, real(reg.Shots[0][1]), 1e-12)
}

func TestSimulator_OccupationProbability(t *testing.T) {
	def := operations.NewDefinition("probs", operations.VarTypeFloat, 2)
	def.IsOutput = true

	c := circuit.New()
	c.Add(def)
	c.Add(operations.NewRotateX(0, calculator.Float(math.Pi/2)))
	c.Add(operations.NewPragmaGetOccupationProbability("probs"))

	s := newTestSimulator(t, 1)
	out, err := s.Run(context.Background(), c)
	require.NoError(t, err)

	reg := out.Floats["probs"]
	require.NotNil(t, reg)
	require.Equal(t, 1, reg.Size())
	assert.InDelta(t, 0.5, reg.Shots[0][0], 1e-12)
	assert.InDelta(t, 0.5, reg.Shots[0][1], 1e-12)
}

func TestSimulator_PauliProductExpectation(t *testing.T) {
	def := operations.NewDefinition("exp", operations.VarTypeFloat, 1)
	def.IsOutput = true

	c := circuit.New()
	c.Add(def)
	c.Add(operations.NewPauliX(0))
	c.Add(operations.NewPragmaPauliProdMeasurement([]int{0}, []int{operations.PauliOpZ}, "exp", 0))

	s := newTestSimulator(t, 1)
	out, err := s.Run(context.Background(), c)
	require.NoError(t, err)

	reg := out.Floats["exp"]
	require.NotNil(t, reg)
	require.Equal(t, 1, reg.Size())
	assert.InDelta(t, -1, reg.Shots[0][0], 1e-12)
}

func TestSimulator_RotatedPauliProduct(t *testing.T) {
	def := operations.NewDefinition("exp", operations.VarTypeFloat, 1)
	def.IsOutput = true

	// <X> of |+> via rotation into the sigma-z basis.
	c := circuit.New()
	c.Add(def)
	c.Add(operations.NewHadamard(0))
	c.Add(operations.NewPragmaGetPauliProduct([]int{1}, "exp",
		operations.OperationList{operations.NewHadamard(0)}))

	s := newTestSimulator(t, 1)
	out, err := s.Run(context.Background(), c)
	require.NoError(t, err)
	assert.InDelta(t, 1, out.Floats["exp"].Shots[0][0], 1e-12)
}

func TestSimulator_ParameterSubstitutionPragma(t *testing.T) {
	c := circuit.New()
	c.Add(outputBitDefinition("ro", 1))
	c.Add(operations.NewRotateX(0, calculator.Symbolic("theta")))
	c.Add(operations.NewMeasureQubit(0, "ro"))
	c.Add(operations.NewPragmaParameterSubstitution(map[string]float64{"theta": math.Pi}))

	s := newTestSimulator(t, 1)
	out, err := s.Run(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, out.Bits["ro"].Shots[0])
}

func TestSimulator_ParametrizedCircuitRejected(t *testing.T) {
	c := circuit.New()
	c.Add(outputBitDefinition("ro", 1))
	c.Add(operations.NewRotateX(0, calculator.Symbolic("theta")))

	s := newTestSimulator(t, 1)
	_, err := s.Run(context.Background(), c)
	assert.Error(t, err)
}

func TestSimulator_SetStateVector(t *testing.T) {
	c := circuit.New()
	c.Add(outputBitDefinition("ro", 1))
	c.Add(operations.NewPragmaSetStateVector(operations.ComplexVector{0, 1}))
	c.Add(operations.NewMeasureQubit(0, "ro"))

	s := newTestSimulator(t, 1)
	out, err := s.Run(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, out.Bits["ro"].Shots[0])
}

func TestSimulator_DerivesQubitCount(t *testing.T) {
	c := circuit.New()
	c.Add(outputBitDefinition("ro", 3))
	c.Add(operations.NewPauliX(2))
	c.Add(operations.NewPragmaRepeatedMeasurement("ro", 5))

	s, err := NewSimulator(SimulatorConfig{}, zap.NewNop())
	require.NoError(t, err)
	out, err := s.Run(context.Background(), c)
	require.NoError(t, err)
	for _, shot := range out.Bits["ro"].Shots {
		assert.Equal(t, []bool{false, false, true}, shot)
	}
}

func TestSimulator_UndefinedRegister(t *testing.T) {
	c := circuit.New()
	c.Add(operations.NewMeasureQubit(0, "missing"))

	s := newTestSimulator(t, 1)
	_, err := s.Run(context.Background(), c)
	assert.Error(t, err)
}

func TestCollectInstructions_Merging(t *testing.T) {
	c := circuit.New()
	c.Add(operations.NewPragmaSetNumberOfMeasurements(10, "ro"))
	c.Add(operations.NewPragmaDamping(0, calculator.Float(0.1), calculator.Float(0.2)))
	c.Add(operations.NewPragmaParameterSubstitution(map[string]float64{"a": 1}))
	c.Add(operations.NewPragmaSetNumberOfMeasurements(20, "ro"))

	instr := CollectInstructions(c, operations.BackendQuEST)
	require.NotNil(t, instr.NumberMeasurements)
	assert.Equal(t, 20, *instr.NumberMeasurements)
	assert.True(t, instr.UseDensityMatrix)
	assert.Equal(t, map[string]float64{"a": 1}, instr.Substitutions)

	aqt := CollectInstructions(c, operations.BackendAQT)
	require.NotNil(t, aqt.NumberMeasurements)
	assert.False(t, aqt.UseDensityMatrix)
}
