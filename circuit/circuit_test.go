package circuit

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HQSquantumsimulations/qoqo/calculator"
	"github.com/HQSquantumsimulations/qoqo/operations"
)

func TestCircuit_DefinitionsFirst(t *testing.T) {
	c := New()
	c.Add(operations.NewDefinition("ro", operations.VarTypeBit, 1))
	c.Add(operations.NewHadamard(0))
	c.Add(operations.NewDefinition("test", operations.VarTypeFloat, 3))
	c.Add(operations.NewMeasureQubitWithIndex(0, "ro", 0))

	assert.Equal(t, []string{
		"Definition ro BIT[1]",
		"Definition test REAL[3]",
		"Hadamard 0",
		"MeasureQubit 0 ro[0]",
	}, c.ToHQSLang())

	first, err := c.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "Definition", first.Name())
	third, err := c.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Hadamard", third.Name())
}

func TestCircuit_DeduplicatesDefinitions(t *testing.T) {
	c := New()
	c.Add(operations.NewDefinition("ro", operations.VarTypeBit, 2))
	c.Add(operations.NewDefinition("ro", operations.VarTypeBit, 2))
	assert.Equal(t, 1, c.Len())

	c.Add(operations.NewDefinition("ro", operations.VarTypeBit, 3))
	assert.Equal(t, 2, c.Len())
}

func TestCircuit_SetOnDefinitionSlot(t *testing.T) {
	c := New()
	c.Add(operations.NewDefinition("ro", operations.VarTypeBit, 1))
	c.Add(operations.NewPauliX(0))

	err := c.Set(0, operations.NewPauliZ(0))
	assert.ErrorIs(t, errors.Cause(err), ErrDefinitionSlot)

	require.NoError(t, c.Set(0, operations.NewDefinition("out", operations.VarTypeBit, 1)))
	require.NoError(t, c.Set(1, operations.NewPauliZ(0)))

	op, err := c.Get(1)
	require.NoError(t, err)
	assert.True(t, op.Equal(operations.NewPauliZ(0)))
}

func TestCircuit_DeleteAndInsert(t *testing.T) {
	c := New()
	c.Add(operations.NewDefinition("ro", operations.VarTypeBit, 1))
	c.Add(operations.NewPauliX(0))
	c.Add(operations.NewPauliZ(0))

	require.NoError(t, c.Delete(1))
	assert.Equal(t, []string{"Definition ro BIT[1]", "PauliZ 0"}, c.ToHQSLang())

	c.Insert(1, operations.NewPauliY(0))
	assert.Equal(t, []string{"Definition ro BIT[1]", "PauliY 0", "PauliZ 0"}, c.ToHQSLang())

	c.Insert(0, operations.NewDefinition("out", operations.VarTypeFloat, 1))
	assert.Equal(t, "Definition out REAL[1]", c.ToHQSLang()[1])

	assert.Error(t, c.Delete(c.Len()))
}

func TestCircuit_CountOccurrences(t *testing.T) {
	c := New()
	c.Add(operations.NewDefinition("ro", operations.VarTypeBit, 1))
	c.Add(operations.NewHadamard(0))
	c.Add(operations.NewCNOT(0, 1))
	c.Add(operations.NewRotateX(0, calculator.Float(0.5)))
	c.Add(operations.NewMeasureQubit(0, "ro"))

	assert.Equal(t, 5, c.CountOccurrences())
	assert.Equal(t, 3, c.CountOccurrences("GateOperation"))
	assert.Equal(t, 2, c.CountOccurrences("SingleQubitGateOperation"))
	assert.Equal(t, 1, c.CountOccurrences("Definition"))
	assert.Equal(t, 1, c.CountOccurrences("RotateX"))

	assert.Equal(t, []string{"Definition", "Hadamard", "CNOT", "RotateX", "MeasureQubit"},
		c.OperationTypes())
}

func TestCircuit_SubstituteParameters(t *testing.T) {
	c := New()
	c.Add(operations.NewRotateX(0, calculator.Symbolic("theta")))
	c.Add(operations.NewRotateZ(1, calculator.Float(0.5)))
	assert.True(t, c.IsParametrized())

	require.NoError(t, c.SubstituteParameters(map[string]float64{"theta": 1.5}))
	assert.False(t, c.IsParametrized())

	op, err := c.Get(0)
	require.NoError(t, err)
	assert.True(t, op.Equal(operations.NewRotateX(0, calculator.Float(1.5))))

	// Resubstitution of a fully literal circuit is a no-op.
	require.NoError(t, c.SubstituteParameters(map[string]float64{"theta": 9}))
	op, err = c.Get(0)
	require.NoError(t, err)
	assert.True(t, op.Equal(operations.NewRotateX(0, calculator.Float(1.5))))
}

func TestCircuit_RemapQubits(t *testing.T) {
	c := New()
	c.Add(operations.NewCNOT(1, 0))
	c.Add(operations.NewHadamard(1))

	require.NoError(t, c.RemapQubits(map[int]int{0: 2, 1: 3}))
	assert.Equal(t, []string{"CNOT 3 2", "Hadamard 3"}, c.ToHQSLang())
	assert.Equal(t, operations.QubitsOf(2, 3), c.InvolvedQubits())

	c.Add(operations.NewPragmaSetStateVector(operations.ComplexVector{1, 0}))
	assert.Error(t, c.RemapQubits(map[int]int{2: 0}))
	assert.True(t, c.InvolvedQubits().All)
}

func TestCircuit_CopySemantics(t *testing.T) {
	c := New()
	c.Add(operations.NewRotateX(0, calculator.Float(0.5)))

	shallow := c.Copy()
	deep := c.DeepCopy()
	assert.True(t, c.Equal(shallow))
	assert.True(t, c.Equal(deep))

	// A shallow copy shares element values, a deep copy does not.
	original, err := c.Get(0)
	require.NoError(t, err)
	original.(*operations.RotateX).Theta = calculator.Float(2)

	shallowOp, err := shallow.Get(0)
	require.NoError(t, err)
	assert.True(t, shallowOp.Equal(original))

	deepOp, err := deep.Get(0)
	require.NoError(t, err)
	assert.True(t, deepOp.Equal(operations.NewRotateX(0, calculator.Float(0.5))))
}

func TestCircuit_AddCircuit(t *testing.T) {
	left := New()
	left.Add(operations.NewDefinition("ro", operations.VarTypeBit, 1))
	left.Add(operations.NewHadamard(0))

	right := New()
	right.Add(operations.NewDefinition("ro", operations.VarTypeBit, 1))
	right.Add(operations.NewMeasureQubit(0, "ro"))

	combined := Concatenate(left, right)
	assert.Equal(t, []string{
		"Definition ro BIT[1]",
		"Hadamard 0",
		"MeasureQubit 0 ro[0]",
	}, combined.ToHQSLang())

	left.AddCircuit(right)
	assert.True(t, left.Equal(combined))
}

func TestCircuit_ConfigRoundTrip(t *testing.T) {
	c := New()
	c.Add(operations.NewDefinition("ro", operations.VarTypeBit, 2))
	c.Add(operations.NewHadamard(0))
	c.Add(operations.NewCNOT(0, 1))
	c.Add(operations.NewRotateZ(1, calculator.Symbolic("alpha")))
	c.Add(operations.NewPragmaRepeatedMeasurement("ro", 100))

	cfg, err := c.ToConfig()
	require.NoError(t, err)
	restored, err := FromConfig(cfg)
	require.NoError(t, err)
	assert.True(t, c.Equal(restored))
}

func TestCircuit_EqualMismatch(t *testing.T) {
	a := New()
	a.Add(operations.NewHadamard(0))
	b := New()
	b.Add(operations.NewHadamard(1))

	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
	assert.False(t, a.Equal(New()))
}
