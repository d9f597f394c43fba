package backends

import (
	"context"
	"math"
	"math/cmplx"
	"math/rand"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/HQSquantumsimulations/qoqo/circuit"
	"github.com/HQSquantumsimulations/qoqo/operations"
	"github.com/HQSquantumsimulations/qoqo/registers"
)

const matrixCacheSize = 512

// SimulatorConfig configures the statevector simulator.
type SimulatorConfig struct {
	// NumberQubits fixes the register width. Zero derives it from the
	// largest qubit index the circuit touches.
	NumberQubits int `yaml:"number_qubits"`
	// Seed makes measurement sampling reproducible.
	Seed int64 `yaml:"seed"`
}

// WithDefaults fills in the zero-valued fields of the config.
func (c SimulatorConfig) WithDefaults() SimulatorConfig {
	if c.Seed == 0 {
		c.Seed = 1
	}
	return c
}

// Simulator is an in-process statevector backend. Noise pragmas are
// skipped; the state stays pure.
type Simulator struct {
	config SimulatorConfig
	logger *zap.Logger

	singleCache *lru.Cache[string, [2][2]complex128]
	twoCache    *lru.Cache[string, [4][4]complex128]
}

// NewSimulator builds a simulator backend.
func NewSimulator(config SimulatorConfig, logger *zap.Logger) (*Simulator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	singleCache, err := lru.New[string, [2][2]complex128](matrixCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "creating matrix cache")
	}
	twoCache, err := lru.New[string, [4][4]complex128](matrixCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "creating matrix cache")
	}
	return &Simulator{
		config:      config.WithDefaults(),
		logger:      logger,
		singleCache: singleCache,
		twoCache:    twoCache,
	}, nil
}

type measureInstruction struct {
	qubit        int
	readout      string
	readoutIndex int
}

type repeatedInstruction struct {
	readout      string
	qubitMapping map[int]int
	shots        int
}

// Run executes the circuit and returns the accumulated output registers.
func (s *Simulator) Run(ctx context.Context, c *circuit.Circuit) (*registers.Output, error) {
	start := time.Now()
	defer func() { runDuration.Observe(time.Since(start).Seconds()) }()
	circuitsExecuted.Inc()

	work := c.DeepCopy()
	instr := CollectInstructions(work, operations.BackendQuEST)
	if len(instr.Substitutions) > 0 {
		if err := work.SubstituteParameters(instr.Substitutions); err != nil {
			return nil, errors.Wrap(err, "applying substitution pragma")
		}
	}
	if work.IsParametrized() {
		return nil, errors.New("circuit still carries symbolic parameters")
	}

	numberQubits, err := s.numberQubits(work)
	if err != nil {
		return nil, err
	}
	regs, output, err := registers.Build(work.Definitions())
	if err != nil {
		return nil, errors.Wrap(err, "building registers")
	}

	state := make([]complex128, 1<<numberQubits)
	state[0] = 1
	rng := rand.New(rand.NewSource(s.config.Seed))

	numberMeasurements := 1
	if instr.NumberMeasurements != nil {
		numberMeasurements = *instr.NumberMeasurements
	}

	var measures []measureInstruction
	var repeated []repeatedInstruction

	for _, op := range work.Operations() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "simulation cancelled")
		}
		switch typed := op.(type) {
		case operations.SingleQubitGateOperation:
			matrix, err := s.singleQubitMatrix(typed)
			if err != nil {
				return nil, err
			}
			if typed.QubitIndex() >= numberQubits {
				return nil, errors.Errorf("%s touches qubit %d outside register of %d",
					op.Name(), typed.QubitIndex(), numberQubits)
			}
			applySingleQubit(state, typed.QubitIndex(), matrix)
			gateApplications.WithLabelValues(op.Name()).Inc()
		case operations.TwoQubitGateOperation:
			matrix, err := s.twoQubitMatrix(typed)
			if err != nil {
				return nil, err
			}
			control, target := typed.ControlIndex(), typed.TargetIndex()
			if control >= numberQubits || target >= numberQubits {
				return nil, errors.Errorf("%s touches qubits outside register of %d",
					op.Name(), numberQubits)
			}
			applyTwoQubit(state, control, target, matrix)
			gateApplications.WithLabelValues(op.Name()).Inc()
		case *operations.PragmaSetStateVector:
			if len(typed.StateVector) != len(state) {
				return nil, errors.Errorf("state vector length %d does not match register of %d qubits",
					len(typed.StateVector), numberQubits)
			}
			copy(state, typed.StateVector)
		case *operations.PragmaGlobalPhase:
			phase, err := typed.Phase.Float64()
			if err != nil {
				return nil, errors.Wrap(err, "resolving global phase")
			}
			factor := cmplx.Exp(complex(0, phase))
			for i := range state {
				state[i] *= factor
			}
		case *operations.PragmaActiveReset:
			collapseToZero(state, typed.Qubit)
		case *operations.MeasureQubit:
			if _, ok := regs.Bits[typed.Readout]; !ok {
				return nil, errors.Errorf("measurement into undefined register %q", typed.Readout)
			}
			measures = append(measures, measureInstruction{
				qubit:        typed.Qubit,
				readout:      typed.Readout,
				readoutIndex: typed.ReadoutIndex,
			})
		case *operations.PragmaRepeatedMeasurement:
			if _, ok := regs.Bits[typed.Readout]; !ok {
				return nil, errors.Errorf("measurement into undefined register %q", typed.Readout)
			}
			shots := typed.NumberMeasurements
			if instr.NumberMeasurements != nil {
				shots = *instr.NumberMeasurements
			}
			repeated = append(repeated, repeatedInstruction{
				readout:      typed.Readout,
				qubitMapping: typed.QubitMapping,
				shots:        shots,
			})
		case *operations.PragmaGetStateVector:
			if err := s.snapshotState(state, typed.Readout, regs, output); err != nil {
				return nil, err
			}
		case *operations.PragmaGetDensityMatrix:
			if err := s.snapshotDensityMatrix(state, typed.Readout, regs, output); err != nil {
				return nil, err
			}
		case *operations.PragmaGetOccupationProbability:
			if err := s.snapshotOccupation(state, typed.Readout, regs, output); err != nil {
				return nil, err
			}
		case *operations.PragmaGetRotatedOccupationProbability:
			rotated, err := s.rotatedState(state, typed.Circuit, numberQubits)
			if err != nil {
				return nil, err
			}
			if err := s.snapshotOccupation(rotated, typed.Readout, regs, output); err != nil {
				return nil, err
			}
		case *operations.PragmaGetPauliProduct:
			rotated, err := s.rotatedState(state, typed.Circuit, numberQubits)
			if err != nil {
				return nil, err
			}
			value := zProductExpectation(rotated, typed.PauliProduct)
			if err := s.writeFloat(typed.Readout, 0, value, regs, output); err != nil {
				return nil, err
			}
		case *operations.PragmaPauliProdMeasurement:
			value, err := s.pauliProductExpectation(state, typed, numberQubits)
			if err != nil {
				return nil, err
			}
			if err := s.writeFloat(typed.Readout, typed.ReadoutIndex, value, regs, output); err != nil {
				return nil, err
			}
		case *operations.PragmaSetDensityMatrix:
			return nil, errors.Errorf("%s requires a density matrix backend", op.Name())
		case *operations.Definition:
			// handled by register construction
		default:
			s.logger.Debug("skipping operation without statevector effect",
				zap.String("operation", op.Name()))
		}
	}

	if err := s.sampleMeasurements(state, measures, repeated, numberMeasurements, regs, output, rng); err != nil {
		return nil, err
	}
	return output, nil
}

func (s *Simulator) numberQubits(c *circuit.Circuit) (int, error) {
	if s.config.NumberQubits > 0 {
		return s.config.NumberQubits, nil
	}
	involved := c.InvolvedQubits()
	if involved.All {
		return 0, errors.New("number of qubits must be configured for circuits touching all qubits")
	}
	max := 0
	for _, q := range involved.Qubits {
		if q > max {
			max = q
		}
	}
	return max + 1, nil
}

func (s *Simulator) singleQubitMatrix(g operations.SingleQubitGateOperation) ([2][2]complex128, error) {
	key := g.ToHQSLang()
	if cached, ok := s.singleCache.Get(key); ok {
		return cached, nil
	}
	matrix, err := operations.SingleQubitUnitary(g)
	if err != nil {
		return [2][2]complex128{}, errors.Wrapf(err, "matrix of %s", g.Name())
	}
	s.singleCache.Add(key, matrix)
	return matrix, nil
}

func (s *Simulator) twoQubitMatrix(g operations.TwoQubitGateOperation) ([4][4]complex128, error) {
	key := g.ToHQSLang()
	if cached, ok := s.twoCache.Get(key); ok {
		return cached, nil
	}
	matrix, err := g.UnitaryMatrix()
	if err != nil {
		return [4][4]complex128{}, errors.Wrapf(err, "matrix of %s", g.Name())
	}
	s.twoCache.Add(key, matrix)
	return matrix, nil
}

func applySingleQubit(state []complex128, qubit int, m [2][2]complex128) {
	mask := 1 << qubit
	for i := range state {
		if i&mask != 0 {
			continue
		}
		a, b := state[i], state[i|mask]
		state[i] = m[0][0]*a + m[0][1]*b
		state[i|mask] = m[1][0]*a + m[1][1]*b
	}
}

// applyTwoQubit applies the 4x4 unitary given in the basis where the
// control role is the most significant bit of the pair.
func applyTwoQubit(state []complex128, control, target int, m [4][4]complex128) {
	controlMask := 1 << control
	targetMask := 1 << target
	for i := range state {
		if i&controlMask != 0 || i&targetMask != 0 {
			continue
		}
		indices := [4]int{i, i | targetMask, i | controlMask, i | controlMask | targetMask}
		var v [4]complex128
		for j, idx := range indices {
			v[j] = state[idx]
		}
		for j, idx := range indices {
			state[idx] = m[j][0]*v[0] + m[j][1]*v[1] + m[j][2]*v[2] + m[j][3]*v[3]
		}
	}
}

// collapseToZero projects the qubit onto |0> and renormalizes.
func collapseToZero(state []complex128, qubit int) {
	mask := 1 << qubit
	norm := 0.0
	for i := range state {
		if i&mask != 0 {
			state[i] = 0
			continue
		}
		norm += real(state[i] * cmplx.Conj(state[i]))
	}
	if norm == 0 {
		state[0] = 1
		return
	}
	factor := complex(1/math.Sqrt(norm), 0)
	for i := range state {
		state[i] *= factor
	}
}

func (s *Simulator) rotatedState(
	state []complex128,
	rotation operations.OperationList,
	numberQubits int,
) ([]complex128, error) {
	rotated := append([]complex128(nil), state...)
	for _, op := range rotation {
		for _, qubit := range op.InvolvedQubits().Qubits {
			if qubit >= numberQubits {
				return nil, errors.Errorf(
					"basis rotation addresses qubit %d of %d", qubit, numberQubits)
			}
		}
		switch typed := op.(type) {
		case operations.SingleQubitGateOperation:
			matrix, err := s.singleQubitMatrix(typed)
			if err != nil {
				return nil, err
			}
			applySingleQubit(rotated, typed.QubitIndex(), matrix)
		case operations.TwoQubitGateOperation:
			matrix, err := s.twoQubitMatrix(typed)
			if err != nil {
				return nil, err
			}
			applyTwoQubit(rotated, typed.ControlIndex(), typed.TargetIndex(), matrix)
		default:
			return nil, errors.Errorf("unsupported operation %s in basis rotation", op.Name())
		}
	}
	return rotated, nil
}

// zProductExpectation evaluates a product of sigma-z operators marked by
// ones in the mask.
func zProductExpectation(state []complex128, mask []int) float64 {
	value := 0.0
	for i, amp := range state {
		prob := real(amp * cmplx.Conj(amp))
		sign := 1.0
		for qubit, active := range mask {
			if active != 0 && i&(1<<qubit) != 0 {
				sign = -sign
			}
		}
		value += sign * prob
	}
	return value
}

func (s *Simulator) pauliProductExpectation(
	state []complex128,
	op *operations.PragmaPauliProdMeasurement,
	numberQubits int,
) (float64, error) {
	if len(op.Qubits) != len(op.Paulis) {
		return 0, errors.New("pauli product qubits and operators differ in length")
	}
	applied := append([]complex128(nil), state...)
	for i, qubit := range op.Qubits {
		if qubit >= numberQubits {
			return 0, errors.Errorf("pauli product touches qubit %d outside register of %d",
				qubit, numberQubits)
		}
		var gate operations.SingleQubitGateOperation
		switch op.Paulis[i] {
		case operations.PauliIdentity:
			continue
		case operations.PauliOpX:
			gate = operations.NewPauliX(qubit)
		case operations.PauliOpY:
			gate = operations.NewPauliY(qubit)
		case operations.PauliOpZ:
			gate = operations.NewPauliZ(qubit)
		default:
			return 0, errors.Errorf("unknown pauli operator %d", op.Paulis[i])
		}
		matrix, err := s.singleQubitMatrix(gate)
		if err != nil {
			return 0, err
		}
		applySingleQubit(applied, qubit, matrix)
	}
	value := complex(0, 0)
	for i := range state {
		value += cmplx.Conj(state[i]) * applied[i]
	}
	return real(value), nil
}

func (s *Simulator) snapshotState(
	state []complex128,
	readout string,
	regs *registers.Registers,
	output *registers.Output,
) error {
	reg, ok := regs.Complexes[readout]
	if !ok {
		return errors.Errorf("state snapshot into undefined register %q", readout)
	}
	if reg.Length != len(state) {
		return errors.Errorf("register %q length %d does not match state of length %d",
			readout, reg.Length, len(state))
	}
	copy(reg.Values, state)
	if out, ok := output.Complexes[readout]; ok {
		return out.Append(reg)
	}
	return nil
}

func (s *Simulator) snapshotDensityMatrix(
	state []complex128,
	readout string,
	regs *registers.Registers,
	output *registers.Output,
) error {
	reg, ok := regs.Complexes[readout]
	if !ok {
		return errors.Errorf("density matrix snapshot into undefined register %q", readout)
	}
	dim := len(state)
	if reg.Length != dim*dim {
		return errors.Errorf("register %q length %d does not match density matrix of %d entries",
			readout, reg.Length, dim*dim)
	}
	for row := 0; row < dim; row++ {
		for col := 0; col < dim; col++ {
			reg.Values[row*dim+col] = state[row] * cmplx.Conj(state[col])
		}
	}
	if out, ok := output.Complexes[readout]; ok {
		return out.Append(reg)
	}
	return nil
}

func (s *Simulator) snapshotOccupation(
	state []complex128,
	readout string,
	regs *registers.Registers,
	output *registers.Output,
) error {
	reg, ok := regs.Floats[readout]
	if !ok {
		return errors.Errorf("occupation snapshot into undefined register %q", readout)
	}
	if reg.Length != len(state) {
		return errors.Errorf("register %q length %d does not match state of length %d",
			readout, reg.Length, len(state))
	}
	for i, amp := range state {
		reg.Values[i] = real(amp * cmplx.Conj(amp))
	}
	if out, ok := output.Floats[readout]; ok {
		return out.Append(reg)
	}
	return nil
}

func (s *Simulator) writeFloat(
	readout string,
	index int,
	value float64,
	regs *registers.Registers,
	output *registers.Output,
) error {
	reg, ok := regs.Floats[readout]
	if !ok {
		return errors.Errorf("expectation value into undefined register %q", readout)
	}
	if index < 0 || index >= reg.Length {
		return errors.Errorf("index %d out of range for register %q of length %d",
			index, readout, reg.Length)
	}
	reg.Values[index] = value
	if out, ok := output.Floats[readout]; ok {
		return out.Append(reg)
	}
	return nil
}

func (s *Simulator) sampleMeasurements(
	state []complex128,
	measures []measureInstruction,
	repeated []repeatedInstruction,
	numberMeasurements int,
	regs *registers.Registers,
	output *registers.Output,
	rng *rand.Rand,
) error {
	probs := make([]float64, len(state))
	total := 0.0
	for i, amp := range state {
		probs[i] = real(amp * cmplx.Conj(amp))
		total += probs[i]
	}
	if total == 0 {
		return errors.New("state has zero norm")
	}

	sample := func() int {
		r := rng.Float64() * total
		acc := 0.0
		for i, p := range probs {
			acc += p
			if r < acc {
				return i
			}
		}
		return len(probs) - 1
	}

	if len(measures) > 0 {
		touched := make(map[string]struct{})
		for _, m := range measures {
			touched[m.readout] = struct{}{}
		}
		for shot := 0; shot < numberMeasurements; shot++ {
			idx := sample()
			shotsExecuted.Inc()
			for _, m := range measures {
				reg := regs.Bits[m.readout]
				if m.readoutIndex < 0 || m.readoutIndex >= reg.Length {
					return errors.Errorf("readout index %d out of range for register %q",
						m.readoutIndex, m.readout)
				}
				reg.Values[m.readoutIndex] = idx&(1<<m.qubit) != 0
			}
			for name := range touched {
				if out, ok := output.Bits[name]; ok {
					if err := out.Append(regs.Bits[name]); err != nil {
						return err
					}
				}
			}
		}
	}

	for _, rep := range repeated {
		reg := regs.Bits[rep.readout]
		for shot := 0; shot < rep.shots; shot++ {
			idx := sample()
			shotsExecuted.Inc()
			reg.Reset()
			if rep.qubitMapping == nil {
				for qubit := 0; qubit < reg.Length; qubit++ {
					reg.Values[qubit] = idx&(1<<qubit) != 0
				}
			} else {
				for qubit, target := range rep.qubitMapping {
					if target < 0 || target >= reg.Length {
						return errors.Errorf("qubit mapping target %d out of range for register %q",
							target, rep.readout)
					}
					reg.Values[target] = idx&(1<<qubit) != 0
				}
			}
			if out, ok := output.Bits[rep.readout]; ok {
				if err := out.Append(reg); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
