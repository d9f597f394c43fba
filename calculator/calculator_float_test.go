package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatorFloat_LiteralArithmetic(t *testing.T) {
	a := Float(1.5)
	b := Float(0.5)

	sum := a.Add(b)
	require.False(t, sum.IsSymbolic())
	v, err := sum.Float64()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 1e-12)

	prod := a.Mul(b)
	v, err = prod.Float64()
	require.NoError(t, err)
	assert.InDelta(t, 0.75, v, 1e-12)

	pow := a.Pow(Float(2))
	v, err = pow.Float64()
	require.NoError(t, err)
	assert.InDelta(t, 2.25, v, 1e-12)
}

func TestCalculatorFloat_SymbolicComposition(t *testing.T) {
	theta := Symbolic("theta")
	assert.True(t, theta.IsSymbolic())

	half := theta.Div(Float(2))
	assert.True(t, half.IsSymbolic())
	assert.Equal(t, "(theta / 2)", half.String())

	_, err := half.Float64()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolved)

	// multiplying by one keeps the expression untouched
	same := theta.Mul(Float(1))
	assert.Equal(t, "theta", same.String())

	// multiplying by zero collapses to a literal
	zero := theta.Mul(Float(0))
	assert.False(t, zero.IsSymbolic())
}

func TestCalculatorFloat_NumericStringCollapses(t *testing.T) {
	c := Symbolic("3.5")
	assert.False(t, c.IsSymbolic())
	v, err := c.Float64()
	require.NoError(t, err)
	assert.InDelta(t, 3.5, v, 1e-12)
}

func TestCalculatorFloat_Substitute(t *testing.T) {
	expr := Symbolic("theta").Div(Float(2)).Sin()
	resolved, err := expr.Substitute(map[string]float64{"theta": math.Pi})
	require.NoError(t, err)
	require.False(t, resolved.IsSymbolic())
	v, err := resolved.Float64()
	require.NoError(t, err)
	assert.InDelta(t, math.Sin(math.Pi/2), v, 1e-12)
}

func TestCalculatorFloat_SubstituteIdempotent(t *testing.T) {
	bindings := map[string]float64{"alpha": 0.25}
	once, err := Symbolic("2 * alpha").Substitute(bindings)
	require.NoError(t, err)
	twice, err := once.Substitute(bindings)
	require.NoError(t, err)
	assert.Equal(t, once, twice)

	literal := Float(1.25)
	after, err := literal.Substitute(bindings)
	require.NoError(t, err)
	assert.Equal(t, literal, after)
}

func TestCalculatorFloat_SubstituteUnresolved(t *testing.T) {
	expr := Symbolic("alpha + beta")
	after, err := expr.Substitute(map[string]float64{"alpha": 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolved)
	// the value stays symbolic and untouched
	assert.True(t, after.IsSymbolic())
	assert.Equal(t, expr.String(), after.String())
}

func TestCalculatorFloat_Equal(t *testing.T) {
	assert.True(t, Float(1.0).Equal(Float(1.0+1e-12)))
	assert.False(t, Float(1.0).Equal(Float(1.1)))
	assert.True(t, Symbolic("theta").Equal(Symbolic("theta")))
	assert.False(t, Symbolic("theta").Equal(Float(0.5)))
}
