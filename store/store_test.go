package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/HQSquantumsimulations/qoqo/measurements"
	"github.com/HQSquantumsimulations/qoqo/operations"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(StoreConfig{Path: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestStore_RunRoundTrip(t *testing.T) {
	s := newTestStore(t)

	record := &ResumeRecord{
		Kind:       "basis_rotation",
		Parameters: map[string]float64{"theta": 0.5},
		Measurement: operations.Config{
			"number_qubits": 2,
		},
	}
	require.NoError(t, s.PutRun("run-1", record))

	restored, err := s.GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, "basis_rotation", restored.Kind)
	assert.Equal(t, map[string]float64{"theta": 0.5}, restored.Parameters)
	assert.Equal(t, 2, restored.Measurement["number_qubits"])
}

func TestStore_GetRunNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRun("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DeleteRun(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.PutRun("run-1", &ResumeRecord{Kind: "pure_pragma"}))
	require.NoError(t, s.DeleteRun("run-1"))

	_, err := s.GetRun("run-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ListRuns(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.PutRun("b", &ResumeRecord{}))
	require.NoError(t, s.PutRun("a", &ResumeRecord{}))
	require.NoError(t, s.PutResult("c", measurements.Result{}))

	ids, err := s.ListRuns()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestStore_ResultRoundTrip(t *testing.T) {
	s := newTestStore(t)

	result := measurements.Result{
		"exp_val_example": complex(1.5, -0.25),
		"global_phase":    complex(0.5, 0),
	}
	require.NoError(t, s.PutResult("run-1", result))

	restored, err := s.GetResult("run-1")
	require.NoError(t, err)
	assert.Equal(t, result, restored)
}
