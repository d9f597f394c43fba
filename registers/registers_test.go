package registers

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HQSquantumsimulations/qoqo/operations"
)

func outputDefinition(name, vartype string, length int) *operations.Definition {
	def := operations.NewDefinition(name, vartype, length)
	def.IsOutput = true
	return def
}

func TestNewBitRegister_TypeChecked(t *testing.T) {
	reg, err := NewBitRegister(operations.NewDefinition("ro", operations.VarTypeBit, 3))
	require.NoError(t, err)
	assert.Equal(t, "ro", reg.Name)
	assert.Equal(t, []bool{false, false, false}, reg.Values)

	_, err = NewBitRegister(operations.NewDefinition("ro", operations.VarTypeFloat, 3))
	assert.ErrorIs(t, errors.Cause(err), ErrVarTypeMismatch)
}

func TestBitRegister_Reset(t *testing.T) {
	reg, err := NewBitRegister(operations.NewDefinition("ro", operations.VarTypeBit, 2))
	require.NoError(t, err)
	reg.Values[0] = true
	reg.Reset()
	assert.Equal(t, []bool{false, false}, reg.Values)
}

func TestOutputRegister_RequiresOutputDefinition(t *testing.T) {
	_, err := NewBitOutputRegister(operations.NewDefinition("ro", operations.VarTypeBit, 1))
	assert.ErrorIs(t, errors.Cause(err), ErrNotOutput)

	out, err := NewBitOutputRegister(outputDefinition("ro", operations.VarTypeBit, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, out.Size())
}

func TestBitOutputRegister_AppendCopiesShot(t *testing.T) {
	out, err := NewBitOutputRegister(outputDefinition("ro", operations.VarTypeBit, 2))
	require.NoError(t, err)
	reg, err := NewBitRegister(outputDefinition("ro", operations.VarTypeBit, 2))
	require.NoError(t, err)

	reg.Values[1] = true
	require.NoError(t, out.Append(reg))
	reg.Reset()

	require.Equal(t, 1, out.Size())
	assert.Equal(t, []bool{false, true}, out.Shots[0])
}

func TestBitOutputRegister_IncompatibleAppend(t *testing.T) {
	out, err := NewBitOutputRegister(outputDefinition("ro", operations.VarTypeBit, 2))
	require.NoError(t, err)
	other, err := NewBitRegister(operations.NewDefinition("other", operations.VarTypeBit, 2))
	require.NoError(t, err)

	assert.ErrorIs(t, errors.Cause(out.Append(other)), ErrIncompatibleRegister)
	assert.ErrorIs(t, errors.Cause(out.AppendRow([]bool{true})), ErrIncompatibleRegister)
}

func TestOutput_Extend(t *testing.T) {
	left := NewOutput()
	leftReg, err := NewBitOutputRegister(outputDefinition("ro", operations.VarTypeBit, 1))
	require.NoError(t, err)
	require.NoError(t, leftReg.AppendRow([]bool{true}))
	left.Bits["ro"] = leftReg

	right := NewOutput()
	rightReg, err := NewBitOutputRegister(outputDefinition("ro", operations.VarTypeBit, 1))
	require.NoError(t, err)
	require.NoError(t, rightReg.AppendRow([]bool{false}))
	right.Bits["ro"] = rightReg
	floatReg, err := NewFloatOutputRegister(outputDefinition("vals", operations.VarTypeFloat, 2))
	require.NoError(t, err)
	require.NoError(t, floatReg.AppendRow([]float64{0.5, 1.5}))
	right.Floats["vals"] = floatReg

	require.NoError(t, left.Extend(right))
	assert.Equal(t, 2, left.Bits["ro"].Size())
	assert.Equal(t, 1, left.Floats["vals"].Size())
	require.NoError(t, left.Extend(nil))
}

func TestBuild_SplitsByType(t *testing.T) {
	defs := []*operations.Definition{
		outputDefinition("ro", operations.VarTypeBit, 2),
		operations.NewDefinition("scratch", operations.VarTypeFloat, 1),
		outputDefinition("state", operations.VarTypeComplex, 4),
	}

	regs, out, err := Build(defs)
	require.NoError(t, err)

	assert.Contains(t, regs.Bits, "ro")
	assert.Contains(t, regs.Floats, "scratch")
	assert.Contains(t, regs.Complexes, "state")

	assert.Contains(t, out.Bits, "ro")
	assert.NotContains(t, out.Floats, "scratch")
	assert.Contains(t, out.Complexes, "state")

	_, _, err = Build([]*operations.Definition{
		operations.NewDefinition("bad", "unknown", 1),
	})
	assert.Error(t, err)
}
