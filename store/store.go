// Package store persists resumable measurement runs and cached results
// in a pebble database.
package store

import (
	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/HQSquantumsimulations/qoqo/measurements"
	"github.com/HQSquantumsimulations/qoqo/operations"
)

// ErrNotFound is returned when no record exists for a run ID.
var ErrNotFound = errors.New("record not found")

var (
	runPrefix    = []byte("run/")
	resultPrefix = []byte("result/")
)

// ResumeRecord is what a suspended quantum program needs to continue: the
// bound parameters and the serialized measurement they were bound to.
type ResumeRecord struct {
	Kind        string             `yaml:"kind"`
	Parameters  map[string]float64 `yaml:"parameters"`
	Measurement operations.Config  `yaml:"measurement"`
}

// StoreConfig holds the database location.
type StoreConfig struct {
	Path string
}

// Store is a pebble-backed run store.
type Store struct {
	db     *pebble.DB
	logger *zap.Logger
}

// NewStore opens or creates the store at the configured path.
func NewStore(config StoreConfig, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := pebble.Open(config.Path, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "opening store at %s", config.Path)
	}
	return &Store{
		db:     db,
		logger: logger,
	}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return errors.Wrap(s.db.Close(), "closing store")
}

func runKey(id string) []byte {
	return append(append([]byte(nil), runPrefix...), id...)
}

func resultKey(id string) []byte {
	return append(append([]byte(nil), resultPrefix...), id...)
}

func (s *Store) set(key []byte, value interface{}) error {
	raw, err := yaml.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "serializing record")
	}
	if err := s.db.Set(key, raw, &pebble.WriteOptions{Sync: true}); err != nil {
		return errors.Wrap(err, "writing record")
	}
	recordsWritten.Inc()
	return nil
}

func (s *Store) get(key []byte, value interface{}) error {
	raw, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return errors.Wrapf(ErrNotFound, "%s", key)
		}
		return errors.Wrap(err, "reading record")
	}
	defer closer.Close()
	recordsRead.Inc()
	return errors.Wrap(yaml.Unmarshal(raw, value), "restoring record")
}

// PutRun stores the resume record of a suspended run.
func (s *Store) PutRun(id string, record *ResumeRecord) error {
	s.logger.Debug("storing resume record",
		zap.String("run_id", id),
		zap.String("kind", record.Kind),
	)
	return s.set(runKey(id), record)
}

// GetRun loads the resume record of a suspended run.
func (s *Store) GetRun(id string) (*ResumeRecord, error) {
	record := &ResumeRecord{}
	if err := s.get(runKey(id), record); err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteRun removes a resume record after the run completed.
func (s *Store) DeleteRun(id string) error {
	return errors.Wrap(
		s.db.Delete(runKey(id), &pebble.WriteOptions{Sync: true}),
		"deleting record",
	)
}

// ListRuns returns the IDs of all suspended runs.
func (s *Store) ListRuns() ([]string, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: runPrefix,
		UpperBound: upperBound(runPrefix),
	})
	if err != nil {
		return nil, errors.Wrap(err, "listing runs")
	}
	var ids []string
	for iter.First(); iter.Valid(); iter.Next() {
		ids = append(ids, string(iter.Key()[len(runPrefix):]))
	}
	if err := iter.Close(); err != nil {
		return nil, errors.Wrap(err, "listing runs")
	}
	return ids, nil
}

// resultRecord splits complex expectation values into real and imaginary
// maps for serialization.
type resultRecord struct {
	Real map[string]float64 `yaml:"real"`
	Imag map[string]float64 `yaml:"imag"`
}

// PutResult caches the reconstructed expectation values of a finished
// run.
func (s *Store) PutResult(id string, result measurements.Result) error {
	record := resultRecord{
		Real: make(map[string]float64, len(result)),
		Imag: make(map[string]float64, len(result)),
	}
	for name, value := range result {
		record.Real[name] = real(value)
		record.Imag[name] = imag(value)
	}
	return s.set(resultKey(id), record)
}

// GetResult loads a cached result.
func (s *Store) GetResult(id string) (measurements.Result, error) {
	var record resultRecord
	if err := s.get(resultKey(id), &record); err != nil {
		return nil, err
	}
	result := make(measurements.Result, len(record.Real))
	for name, re := range record.Real {
		result[name] = complex(re, record.Imag[name])
	}
	return result, nil
}

// upperBound returns the smallest key above every key carrying the
// prefix.
func upperBound(prefix []byte) []byte {
	bound := append([]byte(nil), prefix...)
	bound[len(bound)-1]++
	return bound
}
