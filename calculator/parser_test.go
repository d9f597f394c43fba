package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"number", "2.5", 2.5},
		{"precedence", "1 + 2 * 3", 7},
		{"parentheses", "(1 + 2) * 3", 9},
		{"division", "7 / 2", 3.5},
		{"power", "2 ** 10", 1024},
		{"power right assoc", "2 ** 3 ** 2", 512},
		{"unary minus", "-3 + 5", 2},
		{"double unary", "--3", 3},
		{"function", "sin(0)", 0},
		{"nested functions", "sqrt(abs(-16))", 4},
		{"pi constant", "cos(pi)", -1},
		{"assignment", "x=2; x * 3", 6},
		{"chained assignments", "a=1; b=a+1; b * b", 4},
		{"scientific notation", "1e3 + 2.5e-1", 1000.25},
		{"sign", "sign(-0.2)", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.text)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	_, err := Evaluate("theta + 1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolved)

	_, err = Evaluate("1 +")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)

	_, err = Evaluate("frobnicate(1)")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)

	_, err = Evaluate("1 / 0")
	require.Error(t, err)
}

func TestEvaluate_CacheReturnsSameResult(t *testing.T) {
	first, err := Evaluate("x=0.5; sin(x) + cos(x)")
	require.NoError(t, err)
	second, err := Evaluate("x=0.5; sin(x) + cos(x)")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.InDelta(t, math.Sin(0.5)+math.Cos(0.5), first, 1e-12)
}
