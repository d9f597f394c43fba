package operations

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HQSquantumsimulations/qoqo/calculator"
)

func assertMatrix2Equal(t *testing.T, want, got [2][2]complex128) {
	t.Helper()
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, real(want[i][j]), real(got[i][j]), 1e-12)
			assert.InDelta(t, imag(want[i][j]), imag(got[i][j]), 1e-12)
		}
	}
}

func matmul2(a, b [2][2]complex128) [2][2]complex128 {
	var out [2][2]complex128
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				out[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return out
}

func TestPauliGates_UnitaryMatrix(t *testing.T) {
	s := complex(1/math.Sqrt2, 0)

	x, err := SingleQubitUnitary(NewPauliX(0))
	require.NoError(t, err)
	assertMatrix2Equal(t, [2][2]complex128{{0, 1}, {1, 0}}, x)

	y, err := SingleQubitUnitary(NewPauliY(0))
	require.NoError(t, err)
	assertMatrix2Equal(t, [2][2]complex128{{0, -1i}, {1i, 0}}, y)

	z, err := SingleQubitUnitary(NewPauliZ(0))
	require.NoError(t, err)
	assertMatrix2Equal(t, [2][2]complex128{{1, 0}, {0, -1}}, z)

	h, err := SingleQubitUnitary(NewHadamard(0))
	require.NoError(t, err)
	assertMatrix2Equal(t, [2][2]complex128{{s, s}, {s, -s}}, h)
}

func TestRotateX_UnitaryMatrix(t *testing.T) {
	theta := 0.6
	g := NewRotateX(2, calculator.Float(theta))

	u, err := SingleQubitUnitary(g)
	require.NoError(t, err)

	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	assertMatrix2Equal(t, [2][2]complex128{{c, s}, {s, c}}, u)
	assert.Equal(t, QubitsOf(2), g.InvolvedQubits())
}

func TestSqrtPauliX_SquaresToPauliX(t *testing.T) {
	sqrt, err := SingleQubitUnitary(NewSqrtPauliX(0))
	require.NoError(t, err)
	x, err := SingleQubitUnitary(NewPauliX(0))
	require.NoError(t, err)

	squared := matmul2(sqrt, sqrt)
	// SqrtPauliX carries no global phase, so its square is X up to -i.
	phased := [2][2]complex128{}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			phased[i][j] = -1i * x[i][j]
		}
	}
	assertMatrix2Equal(t, phased, squared)
}

func TestMultiply_MatchesMatrixProduct(t *testing.T) {
	left := NewRotateX(0, calculator.Float(0.3))
	right := NewRotateZ(0, calculator.Float(0.7))

	product, err := Multiply(left, right)
	require.NoError(t, err)
	assert.Equal(t, 0, product.Qubit)

	lu, err := SingleQubitUnitary(left)
	require.NoError(t, err)
	ru, err := SingleQubitUnitary(right)
	require.NoError(t, err)
	pu, err := SingleQubitUnitary(product)
	require.NoError(t, err)

	assertMatrix2Equal(t, matmul2(lu, ru), pu)
}

func TestMultiply_QubitMismatch(t *testing.T) {
	_, err := Multiply(NewPauliX(0), NewPauliY(1))
	assert.ErrorIs(t, err, ErrQubitMismatch)
}

func TestPowerGate_ScalesRotationAngle(t *testing.T) {
	g := NewRotateX(0, calculator.Float(0.6))

	half, err := PowerGate(g, calculator.Float(0.5))
	require.NoError(t, err)
	assert.True(t, half.Equal(NewRotateX(0, calculator.Float(0.3))))

	_, err = PowerGate(NewPauliX(0), calculator.Float(0.5))
	assert.ErrorIs(t, err, ErrNotExponentiable)
}

func TestRotateY_SymbolicSubstitution(t *testing.T) {
	g := NewRotateY(1, calculator.Symbolic("theta"))
	assert.True(t, g.IsParametrized())

	_, err := SingleQubitUnitary(g)
	assert.ErrorIs(t, errors.Cause(err), ErrParametrized)

	require.NoError(t, g.SubstituteParameters(map[string]float64{"theta": math.Pi}))
	assert.False(t, g.IsParametrized())

	u, err := SingleQubitUnitary(g)
	require.NoError(t, err)
	assertMatrix2Equal(t, [2][2]complex128{{0, -1}, {1, 0}}, u)
}

func TestSingleQubitGate_RemapQubits(t *testing.T) {
	g := NewRotateZ(0, calculator.Float(1.2))
	require.NoError(t, g.RemapQubits(map[int]int{0: 3, 3: 0}))
	assert.Equal(t, 3, g.Qubit)
	assert.Equal(t, "RotateZ(1.2) 3", g.ToHQSLang())
}

func TestRotateAroundSphericalAxis_ReducesToRotateX(t *testing.T) {
	spherical := NewRotateAroundSphericalAxis(0,
		calculator.Float(0.4), calculator.Float(math.Pi/2), calculator.Float(0))
	plain := NewRotateX(0, calculator.Float(0.4))

	su, err := SingleQubitUnitary(spherical)
	require.NoError(t, err)
	pu, err := SingleQubitUnitary(plain)
	require.NoError(t, err)
	assertMatrix2Equal(t, pu, su)
}

func TestSingleQubitGate_ConfigRoundTrip(t *testing.T) {
	ops := []Operation{
		NewHadamard(0),
		NewTGate(2),
		NewRotateX(1, calculator.Float(0.25)),
		NewRotateZ(4, calculator.Symbolic("alpha")),
		NewW(0, calculator.Float(0.3), calculator.Float(1.1)),
		NewSingleQubitGate(3),
	}
	for _, op := range ops {
		cfg, err := ToConfig(op)
		require.NoError(t, err, op.Name())
		restored, err := FromConfig(cfg)
		require.NoError(t, err, op.Name())
		assert.True(t, op.Equal(restored), op.Name())
	}
}
