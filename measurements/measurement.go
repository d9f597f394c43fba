package measurements

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/HQSquantumsimulations/qoqo/backends"
	"github.com/HQSquantumsimulations/qoqo/circuit"
	"github.com/HQSquantumsimulations/qoqo/registers"
)

// Result maps expectation value labels to their reconstructed complex
// values. Labels are prefixed exp_val_, the reserved global_phase key is
// copied through from the backend output unmodified.
type Result map[string]complex128

// GlobalPhaseRegister is the reserved register name passed through into
// results without reconstruction.
const GlobalPhaseRegister = "global_phase"

// Measurement runs a list of circuits on a backend and reconstructs
// expectation values from the returned registers. A backends.ErrNotReady
// from any dispatch propagates unmodified so resumable callers can retry
// the whole invocation later.
type Measurement interface {
	Run(ctx context.Context) (Result, error)
}

var (
	_ Measurement = (*BasisRotation)(nil)
	_ Measurement = (*CheatedBasisRotation)(nil)
	_ Measurement = (*PurePragma)(nil)
)

// dispatch runs every circuit prefixed by the constant circuit and merges
// the returned registers into one accumulated output. Circuits run in
// list order, backend errors propagate unmodified.
func dispatch(
	ctx context.Context,
	backend backends.Backend,
	constant *circuit.Circuit,
	circuits []*circuit.Circuit,
	logger *zap.Logger,
) (*registers.Output, error) {
	accumulated := registers.NewOutput()
	for i, c := range circuits {
		composed := c
		if constant != nil {
			composed = circuit.Concatenate(constant, c)
		}
		logger.Debug("dispatching circuit",
			zap.Int("index", i),
			zap.Int("operations", composed.Len()),
		)
		circuitDispatches.Inc()
		output, err := backend.Run(ctx, composed)
		if err != nil {
			return nil, err
		}
		if err := accumulated.Extend(output); err != nil {
			return nil, err
		}
	}
	return accumulated, nil
}

// globalPhase extracts the reserved pass-through register if the backend
// produced it.
func globalPhase(output *registers.Output) (complex128, bool) {
	if reg, ok := output.Floats[GlobalPhaseRegister]; ok {
		if len(reg.Shots) > 0 && len(reg.Shots[0]) > 0 {
			return complex(reg.Shots[0][0], 0), true
		}
	}
	if reg, ok := output.Complexes[GlobalPhaseRegister]; ok {
		if len(reg.Shots) > 0 && len(reg.Shots[0]) > 0 {
			return reg.Shots[0][0], true
		}
	}
	return 0, false
}

// flippedSuffix marks the bit-complemented companion registers of a
// mitigated measurement.
const flippedSuffix = "_flipped"

func isFlipped(registerName string) bool {
	return strings.HasSuffix(registerName, flippedSuffix)
}
