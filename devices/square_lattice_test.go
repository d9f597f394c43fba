package devices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

func TestSquareLatticeDevice_Connectivity(t *testing.T) {
	d, err := NewSquareLatticeDevice(SquareLatticeConfig{Rows: 2, Columns: 3})
	require.NoError(t, err)

	assert.Equal(t, 6, d.NumberQubits())

	// Row-major layout:
	//  0 1 2
	//  3 4 5
	assert.True(t, d.TwoQubitConnected(0, 1))
	assert.True(t, d.TwoQubitConnected(1, 0))
	assert.True(t, d.TwoQubitConnected(2, 5))
	assert.False(t, d.TwoQubitConnected(2, 3))
	assert.False(t, d.TwoQubitConnected(0, 4))
	assert.False(t, d.TwoQubitConnected(0, 0))
	assert.False(t, d.TwoQubitConnected(0, 6))
}

func TestSquareLatticeDevice_Rates(t *testing.T) {
	d, err := NewSquareLatticeDevice(SquareLatticeConfig{
		Rows:                 1,
		Columns:              3,
		DampingRate:          0.1,
		DephasingRate:        0.2,
		DampingRateOverrides: map[int]float64{1: 0.5},
		MeasurementErrors: map[int]MeasurementError{
			0: {Prob0As1: 0.01, Prob1As0: 0.02},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.1, d.DampingRate(0))
	assert.Equal(t, 0.5, d.DampingRate(1))
	assert.Equal(t, 0.2, d.DephasingRate(2))
	assert.Equal(t, 0.0, d.DepolarisationRate(0))

	me, ok := d.MeasurementError(0)
	require.True(t, ok)
	assert.Equal(t, 0.01, me.Prob0As1)
	assert.Equal(t, 0.02, me.Prob1As0)
	_, ok = d.MeasurementError(1)
	assert.False(t, ok)
}

func TestSquareLatticeDevice_Defaults(t *testing.T) {
	d, err := NewSquareLatticeDevice(SquareLatticeConfig{})
	require.NoError(t, err)
	assert.Equal(t, 1, d.NumberQubits())
	assert.NotEmpty(t, d.AvailableOneQubitGates())
	assert.NotEmpty(t, d.AvailableTwoQubitGates())
	assert.Contains(t, AvailableGates(d), "CNOT")
}

func TestRatesFromHardwareTimes(t *testing.T) {
	assert.InDelta(t, 0.05, DepolarisationFromT1(20), 1e-12)
	assert.InDelta(t, 1.0/15-1.0/40, DephasingFromT1T2(20, 15), 1e-12)
}

func TestSquareLatticeDevice_ConfigRoundTrip(t *testing.T) {
	d, err := NewSquareLatticeDevice(SquareLatticeConfig{
		Rows:          2,
		Columns:       2,
		DephasingRate: 0.3,
		MeasurementErrors: map[int]MeasurementError{
			2: {Prob0As1: 0.05},
		},
	})
	require.NoError(t, err)

	raw, err := yaml.Marshal(d)
	require.NoError(t, err)
	restored, err := LoadSquareLatticeDevice(raw)
	require.NoError(t, err)

	assert.Equal(t, d.Config(), restored.Config())
}
