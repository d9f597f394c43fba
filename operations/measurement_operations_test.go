package operations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HQSquantumsimulations/qoqo/calculator"
)

func TestMeasureQubit_ToHQSLang(t *testing.T) {
	m := NewMeasureQubit(1, "ro")
	assert.Equal(t, "MeasureQubit 1 ro[1]", m.ToHQSLang())
	assert.Equal(t, QubitsOf(1), m.InvolvedQubits())

	withIndex := NewMeasureQubitWithIndex(2, "out", 0)
	assert.Equal(t, "MeasureQubit 2 out[0]", withIndex.ToHQSLang())

	require.NoError(t, m.RemapQubits(map[int]int{1: 3}))
	assert.Equal(t, "MeasureQubit 3 ro[1]", m.ToHQSLang())
}

func TestPragmaGetStateVector_EqualIgnoresMapping(t *testing.T) {
	a := NewPragmaGetStateVector("ro", nil)
	b := NewPragmaGetStateVector("ro", nil)
	b.QubitMapping = map[int]int{0: 1}

	assert.True(t, a.Equal(b))
	assert.Equal(t, "PragmaGetStateVector ro", a.ToHQSLang())
	assert.Equal(t, "PragmaGetStateVector(0:1,) ro", b.ToHQSLang())

	c := NewPragmaGetStateVector("other", nil)
	assert.False(t, a.Equal(c))
}

func TestPragmaGetStateVector_RemapRewritesCircuit(t *testing.T) {
	p := NewPragmaGetStateVector("ro", OperationList{NewRotateX(0, calculator.Float(0.5))})
	p.QubitMapping = map[int]int{0: 0}

	require.NoError(t, p.RemapQubits(map[int]int{0: 2}))
	assert.Equal(t, map[int]int{2: 0}, p.QubitMapping)
	assert.True(t, p.Circuit[0].Equal(NewRotateX(2, calculator.Float(0.5))))
}

func TestRotatedMeasurements_RemapUnsupported(t *testing.T) {
	rotated := NewPragmaGetRotatedOccupationProbability("ro", nil)
	assert.ErrorIs(t, rotated.RemapQubits(map[int]int{0: 1}), ErrRemapUnsupported)

	product := NewPragmaGetPauliProduct([]int{1, 0, 1}, "ro", nil)
	assert.ErrorIs(t, product.RemapQubits(map[int]int{0: 1}), ErrRemapUnsupported)

	cheated := NewPragmaPauliProdMeasurement([]int{0, 1}, []int{PauliOpZ, PauliOpX}, "ro", 0)
	assert.ErrorIs(t, cheated.RemapQubits(map[int]int{0: 1}), ErrRemapUnsupported)
}

func TestPragmaRepeatedMeasurement_ToHQSLang(t *testing.T) {
	p := NewPragmaRepeatedMeasurement("ro", 100)
	assert.Equal(t, "PragmaRepeatedMeasurement(100) ALL ro", p.ToHQSLang())

	p.QubitMapping = map[int]int{1: 0, 0: 1}
	assert.Equal(t, "PragmaRepeatedMeasurement(100) 0 ro[1] 1 ro[0] ", p.ToHQSLang())

	require.NoError(t, p.RemapQubits(map[int]int{0: 2}))
	assert.Equal(t, map[int]int{2: 1, 1: 0}, p.QubitMapping)
}

func TestPragmaRepeatedMeasurement_BackendInstruction(t *testing.T) {
	p := NewPragmaRepeatedMeasurement("out", 10)

	instr := p.BackendInstruction(BackendAQT)
	require.NotNil(t, instr)
	require.NotNil(t, instr.Readout)
	assert.Equal(t, "out", *instr.Readout)

	assert.Nil(t, p.BackendInstruction(BackendQuEST))
}

func TestPragmaPauliProdMeasurement_ToHQSLang(t *testing.T) {
	p := NewPragmaPauliProdMeasurement([]int{0, 2}, []int{PauliOpX, PauliOpZ}, "ro", 1)
	assert.Equal(t, "PragmaPauliProdMeasurement 0, 1 2, 3 ro[1]", p.ToHQSLang())
	assert.Equal(t, QubitsOf(0, 2), p.InvolvedQubits())
}

func TestMeasurement_ConfigRoundTrip(t *testing.T) {
	withCircuit := NewPragmaGetStateVector("ro",
		OperationList{NewHadamard(0), NewCNOT(0, 1)})
	repeated := NewPragmaRepeatedMeasurement("ro", 50)
	repeated.QubitMapping = map[int]int{0: 0, 1: 1}

	ops := []Operation{
		NewMeasureQubit(0, "ro"),
		withCircuit,
		NewPragmaGetDensityMatrix("ro", nil),
		NewPragmaGetOccupationProbability("ro"),
		NewPragmaGetRotatedOccupationProbability("ro",
			OperationList{NewRotateY(0, calculator.Float(0.5))}),
		NewPragmaGetPauliProduct([]int{1, 0}, "ro", OperationList{NewHadamard(1)}),
		repeated,
		NewPragmaPauliProdMeasurement([]int{0}, []int{PauliOpZ}, "ro", 0),
	}
	for _, op := range ops {
		cfg, err := ToConfig(op)
		require.NoError(t, err, op.Name())
		restored, err := FromConfig(cfg)
		require.NoError(t, err, op.Name())
		assert.True(t, op.Equal(restored), op.Name())
	}
}
