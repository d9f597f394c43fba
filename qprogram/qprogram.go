// Package qprogram executes a prepared parametrized measurement: free
// circuit parameters are bound per call, the measurement is run, and
// suspended runs are persisted for later resumption.
package qprogram

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/tomb.v2"

	"github.com/HQSquantumsimulations/qoqo/backends"
	"github.com/HQSquantumsimulations/qoqo/measurements"
	"github.com/HQSquantumsimulations/qoqo/store"
)

// ErrMissingParameter is returned when a run binds fewer parameters than
// the program declares free.
var ErrMissingParameter = errors.New("all free parameters of the unitary evolution must be set")

// ErrParameterCount is returned when positional parameters do not match
// the declared free parameter list.
var ErrParameterCount = errors.New("positional parameters do not match free parameter list")

// QuantumProgramConfig wires a program to its measurement and optional
// resume persistence.
type QuantumProgramConfig struct {
	Measurement measurements.Parameterized
	// FreeParameters names the symbolic parameters every run must
	// bind, in positional order.
	FreeParameters []string
	// Kind labels resume records, by measurement flavor.
	Kind string
	// Store persists suspended runs when the backend reports not
	// ready. Leave nil to disable resumption.
	Store *store.Store
	// RunID keys resume records in the store.
	RunID string
}

// QuantumProgram binds free parameters into a prepared measurement and
// executes it.
type QuantumProgram struct {
	config QuantumProgramConfig
	logger *zap.Logger
}

// New creates a quantum program.
func New(config QuantumProgramConfig, logger *zap.Logger) *QuantumProgram {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuantumProgram{
		config: config,
		logger: logger,
	}
}

// FreeParameters returns the declared free parameter names in positional
// order.
func (p *QuantumProgram) FreeParameters() []string {
	return append([]string(nil), p.config.FreeParameters...)
}

// Run binds the parameters, executes the measurement and echoes every
// binding into the result under the unitary_parameter_ prefix. When the
// backend reports not ready the bindings are persisted for Resume and
// the sentinel propagates.
func (p *QuantumProgram) Run(ctx context.Context, parameters map[string]float64) (measurements.Result, error) {
	for _, name := range p.config.FreeParameters {
		if _, ok := parameters[name]; !ok {
			return nil, errors.Wrapf(ErrMissingParameter, "parameter %s", name)
		}
	}

	result, err := p.config.Measurement.WithSubstitutions(parameters).Run(ctx)
	if err != nil {
		if errors.Is(err, backends.ErrNotReady) {
			if suspendErr := p.suspend(parameters); suspendErr != nil {
				return nil, suspendErr
			}
		}
		return nil, err
	}

	for name, value := range parameters {
		result["unitary_parameter_"+name] = complex(value, 0)
	}
	if p.config.Store != nil && p.config.RunID != "" {
		if err := p.config.Store.DeleteRun(p.config.RunID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// RunPositional binds the parameters by position against the free
// parameter list.
func (p *QuantumProgram) RunPositional(ctx context.Context, values []float64) (measurements.Result, error) {
	if len(values) != len(p.config.FreeParameters) {
		return nil, errors.Wrapf(ErrParameterCount,
			"%d values for %d parameters", len(values), len(p.config.FreeParameters))
	}
	parameters := make(map[string]float64, len(values))
	for i, name := range p.config.FreeParameters {
		parameters[name] = values[i]
	}
	return p.Run(ctx, parameters)
}

// Resume replays a suspended run with its stored parameter bindings.
func (p *QuantumProgram) Resume(ctx context.Context) (measurements.Result, error) {
	if p.config.Store == nil || p.config.RunID == "" {
		return nil, errors.New("program has no resume store configured")
	}
	record, err := p.config.Store.GetRun(p.config.RunID)
	if err != nil {
		return nil, err
	}
	p.logger.Info("resuming suspended run",
		zap.String("run_id", p.config.RunID),
		zap.String("kind", record.Kind),
	)
	return p.Run(ctx, record.Parameters)
}

func (p *QuantumProgram) suspend(parameters map[string]float64) error {
	if p.config.Store == nil || p.config.RunID == "" {
		return nil
	}
	cfg, err := p.config.Measurement.ToConfig()
	if err != nil {
		return err
	}
	p.logger.Info("suspending run until backend is ready",
		zap.String("run_id", p.config.RunID),
	)
	return p.config.Store.PutRun(p.config.RunID, &store.ResumeRecord{
		Kind:        p.config.Kind,
		Parameters:  parameters,
		Measurement: cfg,
	})
}

// Job is an asynchronously executing program run.
type Job struct {
	tomb tomb.Tomb

	mu     sync.Mutex
	result measurements.Result
}

// Start executes the run on its own goroutine. The returned job resolves
// through Wait.
func (p *QuantumProgram) Start(ctx context.Context, parameters map[string]float64) *Job {
	job := &Job{}
	job.tomb.Go(func() error {
		result, err := p.Run(ctx, parameters)
		if err != nil {
			return err
		}
		job.mu.Lock()
		job.result = result
		job.mu.Unlock()
		return nil
	})
	return job
}

// Wait blocks until the run finished and returns its result.
func (j *Job) Wait() (measurements.Result, error) {
	if err := j.tomb.Wait(); err != nil {
		return nil, err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result, nil
}

// Alive reports whether the run is still executing.
func (j *Job) Alive() bool {
	return j.tomb.Alive()
}
