package operations

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/HQSquantumsimulations/qoqo/calculator"
)

// NoisePragma is the capability interface of single-qubit noise channels.
// The superoperator acts on the Pauli transfer representation of the qubit
// density matrix.
type NoisePragma interface {
	Operation
	QubitIndex() int
	Probability() calculator.CalculatorFloat
	Superoperator() ([4][4]float64, error)
}

// PragmaSetNumberOfMeasurements sets the number of measurement repetitions
// for backends that support configuring the number of tries.
type PragmaSetNumberOfMeasurements struct {
	NumberMeasurements int    `yaml:"number_measurements"`
	Readout            string `yaml:"readout"`
}

func init() {
	register("PragmaSetNumberOfMeasurements", func() Operation {
		return &PragmaSetNumberOfMeasurements{NumberMeasurements: 1, Readout: "ro"}
	})
}

func NewPragmaSetNumberOfMeasurements(numberMeasurements int, readout string) *PragmaSetNumberOfMeasurements {
	return &PragmaSetNumberOfMeasurements{NumberMeasurements: numberMeasurements, Readout: readout}
}

func (p *PragmaSetNumberOfMeasurements) Name() string { return "PragmaSetNumberOfMeasurements" }
func (p *PragmaSetNumberOfMeasurements) Tags() []string {
	return []string{"Operation", "Pragma", "PragmaSetNumberOfMeasurements"}
}
func (p *PragmaSetNumberOfMeasurements) InvolvedQubits() InvolvedQubits { return QubitsNone() }
func (p *PragmaSetNumberOfMeasurements) IsParametrized() bool           { return false }
func (p *PragmaSetNumberOfMeasurements) SubstituteParameters(map[string]float64) error {
	return nil
}
func (p *PragmaSetNumberOfMeasurements) RemapQubits(map[int]int) error { return nil }
func (p *PragmaSetNumberOfMeasurements) ToHQSLang() string {
	return fmt.Sprintf("PragmaSetNumberOfMeasurements(%d) %s", p.NumberMeasurements, p.Readout)
}
func (p *PragmaSetNumberOfMeasurements) Clone() Operation { clone := *p; return &clone }
func (p *PragmaSetNumberOfMeasurements) Equal(other Operation) bool {
	o, ok := other.(*PragmaSetNumberOfMeasurements)
	return ok && p.NumberMeasurements == o.NumberMeasurements && p.Readout == o.Readout
}

// BackendInstruction overrides the number of measurements for every target
// that repeats circuits instead of sampling a simulated state.
func (p *PragmaSetNumberOfMeasurements) BackendInstruction(target BackendTarget) *Instruction {
	switch target {
	case BackendQuEST, BackendBraket, BackendPyquil, BackendAQT, BackendCirq, BackendCirqCode:
		n := p.NumberMeasurements
		return &Instruction{NumberMeasurements: &n}
	default:
		return nil
	}
}

// PragmaSetStateVector replaces the state of the quantum register, which
// the circuit otherwise initializes to |0...0>.
type PragmaSetStateVector struct {
	StateVector ComplexVector `yaml:"statevec"`
}

func init() {
	register("PragmaSetStateVector", func() Operation { return &PragmaSetStateVector{} })
}

func NewPragmaSetStateVector(statevec ComplexVector) *PragmaSetStateVector {
	return &PragmaSetStateVector{StateVector: statevec}
}

func (p *PragmaSetStateVector) Name() string { return "PragmaSetStateVector" }
func (p *PragmaSetStateVector) Tags() []string {
	return []string{"Operation", "Pragma", "PragmaSetStateVector"}
}
func (p *PragmaSetStateVector) InvolvedQubits() InvolvedQubits                { return QubitsAll() }
func (p *PragmaSetStateVector) IsParametrized() bool                          { return false }
func (p *PragmaSetStateVector) SubstituteParameters(map[string]float64) error { return nil }
func (p *PragmaSetStateVector) RemapQubits(map[int]int) error                 { return ErrRemapUnsupported }
func (p *PragmaSetStateVector) ToHQSLang() string {
	return "PragmaSetStateVector " + p.StateVector.String()
}
func (p *PragmaSetStateVector) Clone() Operation {
	clone := *p
	clone.StateVector = append(ComplexVector(nil), p.StateVector...)
	return &clone
}
func (p *PragmaSetStateVector) Equal(other Operation) bool {
	o, ok := other.(*PragmaSetStateVector)
	return ok && p.StateVector.Equal(o.StateVector)
}

// PragmaSetDensityMatrix replaces the density matrix of the quantum
// register.
type PragmaSetDensityMatrix struct {
	DensityMatrix ComplexMatrix `yaml:"density_matrix"`
}

func init() {
	register("PragmaSetDensityMatrix", func() Operation { return &PragmaSetDensityMatrix{} })
}

func NewPragmaSetDensityMatrix(densityMatrix ComplexMatrix) *PragmaSetDensityMatrix {
	return &PragmaSetDensityMatrix{DensityMatrix: densityMatrix}
}

func (p *PragmaSetDensityMatrix) Name() string { return "PragmaSetDensityMatrix" }
func (p *PragmaSetDensityMatrix) Tags() []string {
	return []string{"Operation", "Pragma", "PragmaSetDensityMatrix"}
}
func (p *PragmaSetDensityMatrix) InvolvedQubits() InvolvedQubits                { return QubitsAll() }
func (p *PragmaSetDensityMatrix) IsParametrized() bool                          { return false }
func (p *PragmaSetDensityMatrix) SubstituteParameters(map[string]float64) error { return nil }
func (p *PragmaSetDensityMatrix) RemapQubits(map[int]int) error                 { return ErrRemapUnsupported }
func (p *PragmaSetDensityMatrix) ToHQSLang() string {
	return "PragmaSetDensityMatrix " + p.DensityMatrix.String()
}
func (p *PragmaSetDensityMatrix) Clone() Operation {
	clone := *p
	clone.DensityMatrix.Data = append(ComplexVector(nil), p.DensityMatrix.Data...)
	return &clone
}
func (p *PragmaSetDensityMatrix) Equal(other Operation) bool {
	o, ok := other.(*PragmaSetDensityMatrix)
	return ok && p.DensityMatrix.Equal(o.DensityMatrix)
}

// PragmaDamping applies a pure damping error corresponding to a zero
// temperature environment.
type PragmaDamping struct {
	Qubit    int                        `yaml:"qubit"`
	GateTime calculator.CalculatorFloat `yaml:"gate_time"`
	Rate     calculator.CalculatorFloat `yaml:"rate"`
}

func init() {
	register("PragmaDamping", func() Operation {
		return &PragmaDamping{GateTime: cfloat(0), Rate: cfloat(0)}
	})
}

func NewPragmaDamping(qubit int, gateTime, rate calculator.CalculatorFloat) *PragmaDamping {
	return &PragmaDamping{Qubit: qubit, GateTime: gateTime, Rate: rate}
}

func (p *PragmaDamping) Name() string { return "PragmaDamping" }
func (p *PragmaDamping) Tags() []string {
	return []string{"Operation", "Pragma", "GateOperation", "PragmaNoise", "PragmaDamping"}
}
func (p *PragmaDamping) QubitIndex() int                { return p.Qubit }
func (p *PragmaDamping) InvolvedQubits() InvolvedQubits { return QubitsOf(p.Qubit) }
func (p *PragmaDamping) IsParametrized() bool           { return anySymbolic(p.GateTime, p.Rate) }
func (p *PragmaDamping) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &p.GateTime, &p.Rate)
}
func (p *PragmaDamping) RemapQubits(mapping map[int]int) error {
	p.Qubit = remapIndex(mapping, p.Qubit)
	return nil
}
func (p *PragmaDamping) ToHQSLang() string {
	return hqsLangLine("PragmaDamping",
		[]calculator.CalculatorFloat{p.GateTime, p.Rate}, []int{p.Qubit})
}
func (p *PragmaDamping) Clone() Operation { clone := *p; return &clone }
func (p *PragmaDamping) Equal(other Operation) bool {
	o, ok := other.(*PragmaDamping)
	return ok && p.Qubit == o.Qubit && p.GateTime.Equal(o.GateTime) && p.Rate.Equal(o.Rate)
}
func (p *PragmaDamping) Powered(power calculator.CalculatorFloat) Operation {
	clone := *p
	clone.GateTime = p.GateTime.Mul(power)
	return &clone
}

// Probability returns the probability of the channel affecting the qubit,
// 1 - exp(-gate_time * rate).
func (p *PragmaDamping) Probability() calculator.CalculatorFloat {
	return cfloat(1).Sub(p.GateTime.Neg().Mul(p.Rate).Exp())
}

func (p *PragmaDamping) Superoperator() ([4][4]float64, error) {
	vals, err := resolveFloats("PragmaDamping", p.GateTime, p.Rate)
	if err != nil {
		return [4][4]float64{}, err
	}
	prob := 1 - math.Exp(-vals[0]*vals[1])
	sqmp := math.Sqrt(1 - prob)
	return [4][4]float64{
		{1, 0, 0, prob},
		{0, sqmp, 0, 0},
		{0, 0, sqmp, 0},
		{0, 0, 0, 1 - prob},
	}, nil
}

// BackendInstruction switches simulators to the density matrix
// representation needed to apply noise channels.
func (p *PragmaDamping) BackendInstruction(target BackendTarget) *Instruction {
	if target == BackendQuEST {
		return &Instruction{UseDensityMatrix: true}
	}
	return nil
}

// PragmaDepolarise applies a depolarisation error corresponding to an
// infinite temperature environment.
type PragmaDepolarise struct {
	Qubit    int                        `yaml:"qubit"`
	GateTime calculator.CalculatorFloat `yaml:"gate_time"`
	Rate     calculator.CalculatorFloat `yaml:"rate"`
}

func init() {
	register("PragmaDepolarise", func() Operation {
		return &PragmaDepolarise{GateTime: cfloat(0), Rate: cfloat(0)}
	})
}

func NewPragmaDepolarise(qubit int, gateTime, rate calculator.CalculatorFloat) *PragmaDepolarise {
	return &PragmaDepolarise{Qubit: qubit, GateTime: gateTime, Rate: rate}
}

func (p *PragmaDepolarise) Name() string { return "PragmaDepolarise" }
func (p *PragmaDepolarise) Tags() []string {
	return []string{"Operation", "Pragma", "GateOperation", "PragmaNoise", "PragmaDepolarise"}
}
func (p *PragmaDepolarise) QubitIndex() int                { return p.Qubit }
func (p *PragmaDepolarise) InvolvedQubits() InvolvedQubits { return QubitsOf(p.Qubit) }
func (p *PragmaDepolarise) IsParametrized() bool           { return anySymbolic(p.GateTime, p.Rate) }
func (p *PragmaDepolarise) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &p.GateTime, &p.Rate)
}
func (p *PragmaDepolarise) RemapQubits(mapping map[int]int) error {
	p.Qubit = remapIndex(mapping, p.Qubit)
	return nil
}
func (p *PragmaDepolarise) ToHQSLang() string {
	return hqsLangLine("PragmaDepolarise",
		[]calculator.CalculatorFloat{p.GateTime, p.Rate}, []int{p.Qubit})
}
func (p *PragmaDepolarise) Clone() Operation { clone := *p; return &clone }
func (p *PragmaDepolarise) Equal(other Operation) bool {
	o, ok := other.(*PragmaDepolarise)
	return ok && p.Qubit == o.Qubit && p.GateTime.Equal(o.GateTime) && p.Rate.Equal(o.Rate)
}
func (p *PragmaDepolarise) Powered(power calculator.CalculatorFloat) Operation {
	clone := *p
	clone.GateTime = p.GateTime.Mul(power)
	return &clone
}

// Probability returns 3/4 * (1 - exp(-gate_time * rate)).
func (p *PragmaDepolarise) Probability() calculator.CalculatorFloat {
	return cfloat(0.75).Mul(cfloat(1).Sub(p.GateTime.Neg().Mul(p.Rate).Exp()))
}

func (p *PragmaDepolarise) Superoperator() ([4][4]float64, error) {
	vals, err := resolveFloats("PragmaDepolarise", p.GateTime, p.Rate)
	if err != nil {
		return [4][4]float64{}, err
	}
	prob := 3.0 / 4.0 * (1 - math.Exp(-vals[0]*vals[1]))
	onePlus := 1 - 2.0/3.0*prob
	oneMinus := 1 - 4.0/3.0*prob
	twoThirds := 2.0 / 3.0 * prob
	return [4][4]float64{
		{onePlus, 0, 0, twoThirds},
		{0, oneMinus, 0, 0},
		{0, 0, oneMinus, 0},
		{twoThirds, 0, 0, onePlus},
	}, nil
}

func (p *PragmaDepolarise) BackendInstruction(target BackendTarget) *Instruction {
	if target == BackendQuEST {
		return &Instruction{UseDensityMatrix: true}
	}
	return nil
}

// PragmaDephasing applies a pure dephasing error.
type PragmaDephasing struct {
	Qubit    int                        `yaml:"qubit"`
	GateTime calculator.CalculatorFloat `yaml:"gate_time"`
	Rate     calculator.CalculatorFloat `yaml:"rate"`
}

func init() {
	register("PragmaDephasing", func() Operation {
		return &PragmaDephasing{GateTime: cfloat(0), Rate: cfloat(0)}
	})
}

func NewPragmaDephasing(qubit int, gateTime, rate calculator.CalculatorFloat) *PragmaDephasing {
	return &PragmaDephasing{Qubit: qubit, GateTime: gateTime, Rate: rate}
}

func (p *PragmaDephasing) Name() string { return "PragmaDephasing" }
func (p *PragmaDephasing) Tags() []string {
	return []string{"Operation", "Pragma", "GateOperation", "PragmaNoise", "PragmaDephasing"}
}
func (p *PragmaDephasing) QubitIndex() int                { return p.Qubit }
func (p *PragmaDephasing) InvolvedQubits() InvolvedQubits { return QubitsOf(p.Qubit) }
func (p *PragmaDephasing) IsParametrized() bool           { return anySymbolic(p.GateTime, p.Rate) }
func (p *PragmaDephasing) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &p.GateTime, &p.Rate)
}
func (p *PragmaDephasing) RemapQubits(mapping map[int]int) error {
	p.Qubit = remapIndex(mapping, p.Qubit)
	return nil
}
func (p *PragmaDephasing) ToHQSLang() string {
	return hqsLangLine("PragmaDephasing",
		[]calculator.CalculatorFloat{p.GateTime, p.Rate}, []int{p.Qubit})
}
func (p *PragmaDephasing) Clone() Operation { clone := *p; return &clone }
func (p *PragmaDephasing) Equal(other Operation) bool {
	o, ok := other.(*PragmaDephasing)
	return ok && p.Qubit == o.Qubit && p.GateTime.Equal(o.GateTime) && p.Rate.Equal(o.Rate)
}
func (p *PragmaDephasing) Powered(power calculator.CalculatorFloat) Operation {
	clone := *p
	clone.GateTime = p.GateTime.Mul(power)
	return &clone
}

// Probability returns 1/2 * (1 - exp(-2 * gate_time * rate)).
func (p *PragmaDephasing) Probability() calculator.CalculatorFloat {
	return cfloat(0.5).Mul(cfloat(1).Sub(cfloat(-2).Mul(p.GateTime).Mul(p.Rate).Exp()))
}

func (p *PragmaDephasing) Superoperator() ([4][4]float64, error) {
	vals, err := resolveFloats("PragmaDephasing", p.GateTime, p.Rate)
	if err != nil {
		return [4][4]float64{}, err
	}
	prob := 0.5 * (1 - math.Exp(-2*vals[0]*vals[1]))
	return [4][4]float64{
		{1, 0, 0, 0},
		{0, 1 - 2*prob, 0, 0},
		{0, 0, 1 - 2*prob, 0},
		{0, 0, 0, 1},
	}, nil
}

func (p *PragmaDephasing) BackendInstruction(target BackendTarget) *Instruction {
	if target == BackendQuEST {
		return &Instruction{UseDensityMatrix: true}
	}
	return nil
}

// PragmaRandomNoise applies a stochastically unravelled combination of
// dephasing and depolarisation.
type PragmaRandomNoise struct {
	Qubit              int                        `yaml:"qubit"`
	GateTime           calculator.CalculatorFloat `yaml:"gate_time"`
	DepolarisationRate calculator.CalculatorFloat `yaml:"depolarisation_rate"`
	DephasingRate      calculator.CalculatorFloat `yaml:"dephasing_rate"`
}

func init() {
	register("PragmaRandomNoise", func() Operation {
		return &PragmaRandomNoise{
			GateTime:           cfloat(0),
			DepolarisationRate: cfloat(0),
			DephasingRate:      cfloat(0),
		}
	})
}

func NewPragmaRandomNoise(
	qubit int,
	gateTime, depolarisationRate, dephasingRate calculator.CalculatorFloat,
) *PragmaRandomNoise {
	return &PragmaRandomNoise{
		Qubit:              qubit,
		GateTime:           gateTime,
		DepolarisationRate: depolarisationRate,
		DephasingRate:      dephasingRate,
	}
}

func (p *PragmaRandomNoise) Name() string { return "PragmaRandomNoise" }
func (p *PragmaRandomNoise) Tags() []string {
	return []string{"Operation", "Pragma", "GateOperation", "PragmaNoise", "PragmaRandomNoise"}
}
func (p *PragmaRandomNoise) QubitIndex() int                { return p.Qubit }
func (p *PragmaRandomNoise) InvolvedQubits() InvolvedQubits { return QubitsOf(p.Qubit) }
func (p *PragmaRandomNoise) IsParametrized() bool {
	return anySymbolic(p.GateTime, p.DepolarisationRate, p.DephasingRate)
}
func (p *PragmaRandomNoise) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &p.GateTime, &p.DepolarisationRate, &p.DephasingRate)
}
func (p *PragmaRandomNoise) RemapQubits(mapping map[int]int) error {
	p.Qubit = remapIndex(mapping, p.Qubit)
	return nil
}
func (p *PragmaRandomNoise) ToHQSLang() string {
	return hqsLangLine("PragmaRandomNoise",
		[]calculator.CalculatorFloat{p.GateTime, p.DepolarisationRate, p.DephasingRate},
		[]int{p.Qubit})
}
func (p *PragmaRandomNoise) Clone() Operation { clone := *p; return &clone }
func (p *PragmaRandomNoise) Equal(other Operation) bool {
	o, ok := other.(*PragmaRandomNoise)
	return ok && p.Qubit == o.Qubit && p.GateTime.Equal(o.GateTime) &&
		p.DepolarisationRate.Equal(o.DepolarisationRate) &&
		p.DephasingRate.Equal(o.DephasingRate)
}
func (p *PragmaRandomNoise) Powered(power calculator.CalculatorFloat) Operation {
	clone := *p
	clone.GateTime = p.GateTime.Mul(power)
	return &clone
}

func (p *PragmaRandomNoise) BackendInstruction(target BackendTarget) *Instruction {
	if target == BackendQuEST {
		return &Instruction{RandomPauliErrors: true}
	}
	return nil
}

// PauliProduct returns the product of two Pauli operators, the absolute
// value of the Levi-Civita symbol, with operators encoded as 0 identity,
// 1 PauliX, 2 PauliY, 3 PauliZ.
func PauliProduct(left, right int) int {
	table := [4][4]int{
		{0, 1, 2, 3},
		{1, 0, 3, 2},
		{2, 3, 0, 1},
		{3, 2, 1, 0},
	}
	return table[left][right]
}

// PragmaGeneralNoise applies a general noise channel defined by a rate
// matrix acting on the Pauli operator basis.
type PragmaGeneralNoise struct {
	Qubit     int                        `yaml:"qubit"`
	GateTime  calculator.CalculatorFloat `yaml:"gate_time"`
	Rate      calculator.CalculatorFloat `yaml:"rate"`
	Operators ComplexMatrix              `yaml:"operators"`
}

func init() {
	register("PragmaGeneralNoise", func() Operation {
		return &PragmaGeneralNoise{GateTime: cfloat(0), Rate: cfloat(0)}
	})
}

func NewPragmaGeneralNoise(
	qubit int,
	gateTime, rate calculator.CalculatorFloat,
	operators ComplexMatrix,
) *PragmaGeneralNoise {
	return &PragmaGeneralNoise{Qubit: qubit, GateTime: gateTime, Rate: rate, Operators: operators}
}

func (p *PragmaGeneralNoise) Name() string { return "PragmaGeneralNoise" }
func (p *PragmaGeneralNoise) Tags() []string {
	return []string{"Operation", "Pragma", "PragmaGeneralNoise"}
}
func (p *PragmaGeneralNoise) QubitIndex() int                { return p.Qubit }
func (p *PragmaGeneralNoise) InvolvedQubits() InvolvedQubits { return QubitsOf(p.Qubit) }
func (p *PragmaGeneralNoise) IsParametrized() bool           { return anySymbolic(p.GateTime, p.Rate) }
func (p *PragmaGeneralNoise) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &p.GateTime, &p.Rate)
}
func (p *PragmaGeneralNoise) RemapQubits(mapping map[int]int) error {
	p.Qubit = remapIndex(mapping, p.Qubit)
	return nil
}
func (p *PragmaGeneralNoise) ToHQSLang() string {
	return fmt.Sprintf("PragmaGeneralNoise(%s, %s, %s) %d",
		p.GateTime.String(), p.Rate.String(), p.Operators.String(), p.Qubit)
}
func (p *PragmaGeneralNoise) Clone() Operation {
	clone := *p
	clone.Operators.Data = append(ComplexVector(nil), p.Operators.Data...)
	return &clone
}
func (p *PragmaGeneralNoise) Equal(other Operation) bool {
	o, ok := other.(*PragmaGeneralNoise)
	return ok && p.Qubit == o.Qubit && p.GateTime.Equal(o.GateTime) &&
		p.Rate.Equal(o.Rate) && p.Operators.Equal(o.Operators)
}

// PragmaRepeatGate repeats the following gate to increase the error rate
// for mitigation.
type PragmaRepeatGate struct {
	RepetitionCoefficient calculator.CalculatorFloat `yaml:"repetition_coefficient"`
}

func init() {
	register("PragmaRepeatGate", func() Operation {
		return &PragmaRepeatGate{RepetitionCoefficient: cfloat(1)}
	})
}

func NewPragmaRepeatGate(repetitionCoefficient calculator.CalculatorFloat) *PragmaRepeatGate {
	return &PragmaRepeatGate{RepetitionCoefficient: repetitionCoefficient}
}

func (p *PragmaRepeatGate) Name() string { return "PragmaRepeatGate" }
func (p *PragmaRepeatGate) Tags() []string {
	return []string{"Operation", "Pragma", "PragmaRepeatGate"}
}
func (p *PragmaRepeatGate) InvolvedQubits() InvolvedQubits { return QubitsAll() }
func (p *PragmaRepeatGate) IsParametrized() bool {
	return p.RepetitionCoefficient.IsSymbolic()
}
func (p *PragmaRepeatGate) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &p.RepetitionCoefficient)
}
func (p *PragmaRepeatGate) RemapQubits(map[int]int) error { return nil }
func (p *PragmaRepeatGate) ToHQSLang() string {
	return fmt.Sprintf("PragmaRepeatGate(%s)", p.RepetitionCoefficient.String())
}
func (p *PragmaRepeatGate) Clone() Operation { clone := *p; return &clone }
func (p *PragmaRepeatGate) Equal(other Operation) bool {
	o, ok := other.(*PragmaRepeatGate)
	return ok && p.RepetitionCoefficient.Equal(o.RepetitionCoefficient)
}

// PragmaBoostNoise boosts noise and overrotations in the circuit by a
// constant coefficient.
type PragmaBoostNoise struct {
	NoiseCoefficient calculator.CalculatorFloat `yaml:"noise_coefficient"`
}

func init() {
	register("PragmaBoostNoise", func() Operation {
		return &PragmaBoostNoise{NoiseCoefficient: cfloat(1)}
	})
}

func NewPragmaBoostNoise(noiseCoefficient calculator.CalculatorFloat) *PragmaBoostNoise {
	return &PragmaBoostNoise{NoiseCoefficient: noiseCoefficient}
}

func (p *PragmaBoostNoise) Name() string { return "PragmaBoostNoise" }
func (p *PragmaBoostNoise) Tags() []string {
	return []string{"Operation", "Pragma", "PragmaBoostNoise"}
}
func (p *PragmaBoostNoise) InvolvedQubits() InvolvedQubits { return QubitsNone() }
func (p *PragmaBoostNoise) IsParametrized() bool           { return p.NoiseCoefficient.IsSymbolic() }
func (p *PragmaBoostNoise) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &p.NoiseCoefficient)
}
func (p *PragmaBoostNoise) RemapQubits(map[int]int) error { return nil }
func (p *PragmaBoostNoise) ToHQSLang() string {
	return fmt.Sprintf("PragmaBoostNoise(%s)", p.NoiseCoefficient.String())
}
func (p *PragmaBoostNoise) Clone() Operation { clone := *p; return &clone }
func (p *PragmaBoostNoise) Equal(other Operation) bool {
	o, ok := other.(*PragmaBoostNoise)
	return ok && p.NoiseCoefficient.Equal(o.NoiseCoefficient)
}

// PragmaOverrotation applies a static or statistic overrotation to one
// following gate of the named type acting on the given role qubits.
type PragmaOverrotation struct {
	Gate                  string                     `yaml:"gate"`
	StatisticType         string                     `yaml:"statistic_type"`
	Qubits                map[string]int             `yaml:"ordered_qubits_dict"`
	Parameter             string                     `yaml:"parameter"`
	OverrotationParameter string                     `yaml:"overrotation_parameter"`
	Variance              calculator.CalculatorFloat `yaml:"variance"`
	Mean                  calculator.CalculatorFloat `yaml:"mean"`
}

func init() {
	register("PragmaOverrotation", func() Operation {
		return &PragmaOverrotation{
			StatisticType: "static",
			Variance:      cfloat(0),
			Mean:          cfloat(0),
		}
	})
}

func NewPragmaOverrotation(gate string, qubits map[string]int, parameter string) *PragmaOverrotation {
	return &PragmaOverrotation{
		Gate:          gate,
		StatisticType: "static",
		Qubits:        qubits,
		Parameter:     parameter,
		Variance:      cfloat(0),
		Mean:          cfloat(0),
	}
}

func (p *PragmaOverrotation) Name() string { return "PragmaOverrotation" }
func (p *PragmaOverrotation) Tags() []string {
	return []string{"Operation", "Pragma", "PragmaOverrotation"}
}
func (p *PragmaOverrotation) InvolvedQubits() InvolvedQubits {
	qubits := make([]int, 0, len(p.Qubits))
	for _, q := range p.Qubits {
		qubits = append(qubits, q)
	}
	return QubitsOf(qubits...)
}
func (p *PragmaOverrotation) IsParametrized() bool { return anySymbolic(p.Variance, p.Mean) }
func (p *PragmaOverrotation) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &p.Variance, &p.Mean)
}
func (p *PragmaOverrotation) RemapQubits(mapping map[int]int) error {
	for role, q := range p.Qubits {
		p.Qubits[role] = remapIndex(mapping, q)
	}
	return nil
}
func (p *PragmaOverrotation) ToHQSLang() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PragmaOverrotation %s (%s,%s,%s,%s)",
		p.StatisticType, p.Gate, p.Parameter, p.Mean.String(), p.Variance.String())
	roles := make([]string, 0, len(p.Qubits))
	for role := range p.Qubits {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		fmt.Fprintf(&b, " %d", p.Qubits[role])
	}
	return b.String()
}
func (p *PragmaOverrotation) Clone() Operation {
	clone := *p
	if p.Qubits != nil {
		clone.Qubits = make(map[string]int, len(p.Qubits))
		for role, q := range p.Qubits {
			clone.Qubits[role] = q
		}
	}
	return &clone
}
func (p *PragmaOverrotation) Equal(other Operation) bool {
	o, ok := other.(*PragmaOverrotation)
	if !ok || p.Gate != o.Gate || p.StatisticType != o.StatisticType ||
		p.Parameter != o.Parameter ||
		p.OverrotationParameter != o.OverrotationParameter ||
		!p.Variance.Equal(o.Variance) || !p.Mean.Equal(o.Mean) {
		return false
	}
	if len(p.Qubits) != len(o.Qubits) {
		return false
	}
	for role, q := range p.Qubits {
		oq, found := o.Qubits[role]
		if !found || oq != q {
			return false
		}
	}
	return true
}
func (p *PragmaOverrotation) Powered(power calculator.CalculatorFloat) Operation {
	clone := p.Clone().(*PragmaOverrotation)
	clone.Variance = p.Variance.Mul(power)
	clone.Mean = p.Mean.Mul(power)
	return clone
}

// PragmaStop signals the end of a parallel execution block, optionally
// recording the wall time of the block.
type PragmaStop struct {
	Qubits        []int    `yaml:"qubits"`
	ExecutionTime *float64 `yaml:"execution_time"`
}

func init() { register("PragmaStop", func() Operation { return &PragmaStop{} }) }

// NewPragmaStop signals the end of a block on the given qubits; nil means
// all qubits.
func NewPragmaStop(qubits []int, executionTime *float64) *PragmaStop {
	return &PragmaStop{Qubits: qubits, ExecutionTime: executionTime}
}

func (p *PragmaStop) Name() string   { return "PragmaStop" }
func (p *PragmaStop) Tags() []string { return []string{"Operation", "Pragma", "PragmaStop"} }
func (p *PragmaStop) InvolvedQubits() InvolvedQubits {
	if p.Qubits == nil {
		return QubitsAll()
	}
	return QubitsOf(p.Qubits...)
}
func (p *PragmaStop) IsParametrized() bool                          { return false }
func (p *PragmaStop) SubstituteParameters(map[string]float64) error { return nil }
func (p *PragmaStop) RemapQubits(mapping map[int]int) error {
	for i, q := range p.Qubits {
		p.Qubits[i] = remapIndex(mapping, q)
	}
	return nil
}
func (p *PragmaStop) ToHQSLang() string {
	var b strings.Builder
	b.WriteString("PragmaStop")
	if p.ExecutionTime != nil {
		fmt.Fprintf(&b, "(%v)", *p.ExecutionTime)
	}
	if p.Qubits == nil {
		b.WriteString(" ALL")
		return b.String()
	}
	for _, q := range p.Qubits {
		fmt.Fprintf(&b, " %d", q)
	}
	return b.String()
}
func (p *PragmaStop) Clone() Operation {
	clone := *p
	clone.Qubits = append([]int(nil), p.Qubits...)
	if p.ExecutionTime != nil {
		t := *p.ExecutionTime
		clone.ExecutionTime = &t
	}
	return &clone
}
func (p *PragmaStop) Equal(other Operation) bool {
	o, ok := other.(*PragmaStop)
	if !ok || !p.InvolvedQubits().Equal(o.InvolvedQubits()) {
		return false
	}
	if (p.ExecutionTime == nil) != (o.ExecutionTime == nil) {
		return false
	}
	return p.ExecutionTime == nil || *p.ExecutionTime == *o.ExecutionTime
}

// PragmaGlobalPhase signals that the quantum register picks up a global
// phase during execution.
type PragmaGlobalPhase struct {
	Phase calculator.CalculatorFloat `yaml:"phase"`
}

func init() {
	register("PragmaGlobalPhase", func() Operation {
		return &PragmaGlobalPhase{Phase: cfloat(0)}
	})
}

func NewPragmaGlobalPhase(phase calculator.CalculatorFloat) *PragmaGlobalPhase {
	return &PragmaGlobalPhase{Phase: phase}
}

func (p *PragmaGlobalPhase) Name() string { return "PragmaGlobalPhase" }
func (p *PragmaGlobalPhase) Tags() []string {
	return []string{"Operation", "Pragma", "PragmaGlobalPhase"}
}
func (p *PragmaGlobalPhase) InvolvedQubits() InvolvedQubits { return QubitsNone() }
func (p *PragmaGlobalPhase) IsParametrized() bool           { return p.Phase.IsSymbolic() }
func (p *PragmaGlobalPhase) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &p.Phase)
}
func (p *PragmaGlobalPhase) RemapQubits(map[int]int) error { return nil }
func (p *PragmaGlobalPhase) ToHQSLang() string {
	return "PragmaGlobalPhase " + p.Phase.String()
}
func (p *PragmaGlobalPhase) Clone() Operation { clone := *p; return &clone }
func (p *PragmaGlobalPhase) Equal(other Operation) bool {
	o, ok := other.(*PragmaGlobalPhase)
	return ok && p.Phase.Equal(o.Phase)
}

// PragmaParameterSubstitution tells the backend to substitute the named
// free parameters when translating the circuit.
type PragmaParameterSubstitution struct {
	Substitutions map[string]float64 `yaml:"substitution_dict"`
}

func init() {
	register("PragmaParameterSubstitution", func() Operation {
		return &PragmaParameterSubstitution{}
	})
}

func NewPragmaParameterSubstitution(substitutions map[string]float64) *PragmaParameterSubstitution {
	return &PragmaParameterSubstitution{Substitutions: substitutions}
}

func (p *PragmaParameterSubstitution) Name() string { return "PragmaParameterSubstitution" }
func (p *PragmaParameterSubstitution) Tags() []string {
	return []string{"Operation", "Pragma", "PragmaParameterSubstitution"}
}
func (p *PragmaParameterSubstitution) InvolvedQubits() InvolvedQubits { return QubitsNone() }
func (p *PragmaParameterSubstitution) IsParametrized() bool           { return false }
func (p *PragmaParameterSubstitution) SubstituteParameters(map[string]float64) error {
	return nil
}
func (p *PragmaParameterSubstitution) RemapQubits(map[int]int) error { return nil }
func (p *PragmaParameterSubstitution) ToHQSLang() string {
	var b strings.Builder
	b.WriteString("PragmaParameterSubstitution")
	names := make([]string, 0, len(p.Substitutions))
	for name := range p.Substitutions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, " %s=%v;", name, p.Substitutions[name])
	}
	return b.String()
}
func (p *PragmaParameterSubstitution) Clone() Operation {
	clone := *p
	if p.Substitutions != nil {
		clone.Substitutions = make(map[string]float64, len(p.Substitutions))
		for name, val := range p.Substitutions {
			clone.Substitutions[name] = val
		}
	}
	return &clone
}
func (p *PragmaParameterSubstitution) Equal(other Operation) bool {
	o, ok := other.(*PragmaParameterSubstitution)
	if !ok || len(p.Substitutions) != len(o.Substitutions) {
		return false
	}
	for name, val := range p.Substitutions {
		ov, found := o.Substitutions[name]
		if !found || ov != val {
			return false
		}
	}
	return true
}

// BackendInstruction hands the substitutions to any backend target.
func (p *PragmaParameterSubstitution) BackendInstruction(target BackendTarget) *Instruction {
	if target == BackendUnspecified {
		return nil
	}
	return &Instruction{Substitutions: p.Substitutions}
}

// PragmaSleep makes the quantum hardware wait, used to deliberately boost
// noise for mitigation.
type PragmaSleep struct {
	Qubits        []int    `yaml:"qubits"`
	ExecutionTime *float64 `yaml:"execution_time"`
}

func init() { register("PragmaSleep", func() Operation { return &PragmaSleep{} }) }

func NewPragmaSleep(qubits []int, executionTime *float64) *PragmaSleep {
	return &PragmaSleep{Qubits: qubits, ExecutionTime: executionTime}
}

func (p *PragmaSleep) Name() string   { return "PragmaSleep" }
func (p *PragmaSleep) Tags() []string { return []string{"Operation", "Pragma", "PragmaSleep"} }
func (p *PragmaSleep) InvolvedQubits() InvolvedQubits {
	if p.Qubits == nil {
		return QubitsAll()
	}
	return QubitsOf(p.Qubits...)
}
func (p *PragmaSleep) IsParametrized() bool                          { return false }
func (p *PragmaSleep) SubstituteParameters(map[string]float64) error { return nil }
func (p *PragmaSleep) RemapQubits(mapping map[int]int) error {
	for i, q := range p.Qubits {
		p.Qubits[i] = remapIndex(mapping, q)
	}
	return nil
}
func (p *PragmaSleep) ToHQSLang() string {
	var b strings.Builder
	b.WriteString("PragmaSleep")
	if p.ExecutionTime != nil {
		fmt.Fprintf(&b, "(%v)", *p.ExecutionTime)
	}
	if p.Qubits == nil {
		b.WriteString(" ALL")
		return b.String()
	}
	for _, q := range p.Qubits {
		fmt.Fprintf(&b, " %d", q)
	}
	return b.String()
}
func (p *PragmaSleep) Clone() Operation {
	clone := *p
	clone.Qubits = append([]int(nil), p.Qubits...)
	if p.ExecutionTime != nil {
		t := *p.ExecutionTime
		clone.ExecutionTime = &t
	}
	return &clone
}
func (p *PragmaSleep) Equal(other Operation) bool {
	o, ok := other.(*PragmaSleep)
	if !ok || !p.InvolvedQubits().Equal(o.InvolvedQubits()) {
		return false
	}
	if (p.ExecutionTime == nil) != (o.ExecutionTime == nil) {
		return false
	}
	return p.ExecutionTime == nil || *p.ExecutionTime == *o.ExecutionTime
}

// PragmaActiveReset resets the chosen qubit to the zero state.
type PragmaActiveReset struct {
	Qubit int `yaml:"qubit"`
}

func init() { register("PragmaActiveReset", func() Operation { return &PragmaActiveReset{} }) }

func NewPragmaActiveReset(qubit int) *PragmaActiveReset {
	return &PragmaActiveReset{Qubit: qubit}
}

func (p *PragmaActiveReset) Name() string { return "PragmaActiveReset" }
func (p *PragmaActiveReset) Tags() []string {
	return []string{"Operation", "Pragma", "PragmaActiveReset"}
}
func (p *PragmaActiveReset) InvolvedQubits() InvolvedQubits                { return QubitsOf(p.Qubit) }
func (p *PragmaActiveReset) IsParametrized() bool                          { return false }
func (p *PragmaActiveReset) SubstituteParameters(map[string]float64) error { return nil }
func (p *PragmaActiveReset) RemapQubits(map[int]int) error                 { return ErrRemapUnsupported }
func (p *PragmaActiveReset) ToHQSLang() string {
	return fmt.Sprintf("PragmaActiveReset %d", p.Qubit)
}
func (p *PragmaActiveReset) Clone() Operation { clone := *p; return &clone }
func (p *PragmaActiveReset) Equal(other Operation) bool {
	o, ok := other.(*PragmaActiveReset)
	return ok && p.Qubit == o.Qubit
}

// PragmaStartDecompositionBlock signals the start of a decomposition
// block, carrying the qubit reordering used inside the block.
type PragmaStartDecompositionBlock struct {
	Qubits     []int       `yaml:"qubits"`
	Reordering map[int]int `yaml:"reordering_dictionary"`
}

func init() {
	register("PragmaStartDecompositionBlock", func() Operation {
		return &PragmaStartDecompositionBlock{}
	})
}

func NewPragmaStartDecompositionBlock(qubits []int, reordering map[int]int) *PragmaStartDecompositionBlock {
	return &PragmaStartDecompositionBlock{Qubits: qubits, Reordering: reordering}
}

func (p *PragmaStartDecompositionBlock) Name() string { return "PragmaStartDecompositionBlock" }
func (p *PragmaStartDecompositionBlock) Tags() []string {
	return []string{"Operation", "Pragma", "PragmaStartDecompositionBlock"}
}
func (p *PragmaStartDecompositionBlock) InvolvedQubits() InvolvedQubits {
	if p.Qubits == nil {
		return QubitsAll()
	}
	return QubitsOf(p.Qubits...)
}
func (p *PragmaStartDecompositionBlock) IsParametrized() bool { return false }
func (p *PragmaStartDecompositionBlock) SubstituteParameters(map[string]float64) error {
	return nil
}
func (p *PragmaStartDecompositionBlock) RemapQubits(mapping map[int]int) error {
	for i, q := range p.Qubits {
		p.Qubits[i] = remapIndex(mapping, q)
	}
	return nil
}
func (p *PragmaStartDecompositionBlock) ToHQSLang() string {
	var b strings.Builder
	b.WriteString("PragmaStartDecompositionBlock(")
	keys := make([]int, 0, len(p.Reordering))
	for k := range p.Reordering {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d:%d", k, p.Reordering[k])
	}
	b.WriteString(")")
	if p.Qubits == nil {
		b.WriteString(" ALL")
		return b.String()
	}
	for _, q := range p.Qubits {
		fmt.Fprintf(&b, " %d", q)
	}
	return b.String()
}
func (p *PragmaStartDecompositionBlock) Clone() Operation {
	clone := *p
	clone.Qubits = append([]int(nil), p.Qubits...)
	if p.Reordering != nil {
		clone.Reordering = make(map[int]int, len(p.Reordering))
		for k, v := range p.Reordering {
			clone.Reordering[k] = v
		}
	}
	return &clone
}
func (p *PragmaStartDecompositionBlock) Equal(other Operation) bool {
	o, ok := other.(*PragmaStartDecompositionBlock)
	if !ok || !p.InvolvedQubits().Equal(o.InvolvedQubits()) {
		return false
	}
	if len(p.Reordering) != len(o.Reordering) {
		return false
	}
	for k, v := range p.Reordering {
		ov, found := o.Reordering[k]
		if !found || ov != v {
			return false
		}
	}
	return true
}

// PragmaStopDecompositionBlock signals the end of a decomposition block.
type PragmaStopDecompositionBlock struct {
	Qubits []int `yaml:"qubits"`
}

func init() {
	register("PragmaStopDecompositionBlock", func() Operation {
		return &PragmaStopDecompositionBlock{}
	})
}

func NewPragmaStopDecompositionBlock(qubits []int) *PragmaStopDecompositionBlock {
	return &PragmaStopDecompositionBlock{Qubits: qubits}
}

func (p *PragmaStopDecompositionBlock) Name() string { return "PragmaStopDecompositionBlock" }
func (p *PragmaStopDecompositionBlock) Tags() []string {
	return []string{"Operation", "Pragma", "PragmaStopDecompositionBlock"}
}
func (p *PragmaStopDecompositionBlock) InvolvedQubits() InvolvedQubits {
	if p.Qubits == nil {
		return QubitsAll()
	}
	return QubitsOf(p.Qubits...)
}
func (p *PragmaStopDecompositionBlock) IsParametrized() bool { return false }
func (p *PragmaStopDecompositionBlock) SubstituteParameters(map[string]float64) error {
	return nil
}
func (p *PragmaStopDecompositionBlock) RemapQubits(mapping map[int]int) error {
	for i, q := range p.Qubits {
		p.Qubits[i] = remapIndex(mapping, q)
	}
	return nil
}
func (p *PragmaStopDecompositionBlock) ToHQSLang() string {
	var b strings.Builder
	b.WriteString("PragmaStopDecompositionBlock")
	if p.Qubits == nil {
		b.WriteString(" ALL")
		return b.String()
	}
	for _, q := range p.Qubits {
		fmt.Fprintf(&b, " %d", q)
	}
	return b.String()
}
func (p *PragmaStopDecompositionBlock) Clone() Operation {
	clone := *p
	clone.Qubits = append([]int(nil), p.Qubits...)
	return &clone
}
func (p *PragmaStopDecompositionBlock) Equal(other Operation) bool {
	o, ok := other.(*PragmaStopDecompositionBlock)
	return ok && p.InvolvedQubits().Equal(o.InvolvedQubits())
}
