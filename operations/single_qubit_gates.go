package operations

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"

	"github.com/HQSquantumsimulations/qoqo/calculator"
)

// SingleQubitGateOperation is the capability interface of unitary gates
// acting on one qubit. Every implementation determines its unitary through
// five derived scalars:
//
//	U = exp(i*phase) * [[alpha_r + i*alpha_i, -beta_r + i*beta_i],
//	                    [beta_r  + i*beta_i,  alpha_r - i*alpha_i]]
type SingleQubitGateOperation interface {
	Operation
	QubitIndex() int
	AlphaR() calculator.CalculatorFloat
	AlphaI() calculator.CalculatorFloat
	BetaR() calculator.CalculatorFloat
	BetaI() calculator.CalculatorFloat
	GlobalPhase() calculator.CalculatorFloat
}

// SingleQubitUnitary synthesizes the 2x2 unitary matrix of a single-qubit
// gate. It fails with ErrParametrized while any scalar is still symbolic.
func SingleQubitUnitary(g SingleQubitGateOperation) ([2][2]complex128, error) {
	if g.IsParametrized() {
		return [2][2]complex128{}, errors.Wrap(ErrParametrized, g.Name())
	}
	ar, err := g.AlphaR().Float64()
	if err != nil {
		return [2][2]complex128{}, err
	}
	ai, err := g.AlphaI().Float64()
	if err != nil {
		return [2][2]complex128{}, err
	}
	br, err := g.BetaR().Float64()
	if err != nil {
		return [2][2]complex128{}, err
	}
	bi, err := g.BetaI().Float64()
	if err != nil {
		return [2][2]complex128{}, err
	}
	phase, err := g.GlobalPhase().Float64()
	if err != nil {
		return [2][2]complex128{}, err
	}
	alpha := complex(ar, ai)
	beta := complex(br, bi)
	factor := cmplx.Exp(complex(0, phase))
	return [2][2]complex128{
		{factor * alpha, factor * -cmplx.Conj(beta)},
		{factor * beta, factor * cmplx.Conj(alpha)},
	}, nil
}

// Multiply composes two single-qubit gates on the same qubit into a generic
// SingleQubitGate whose unitary is U_left * U_right, i.e. right is applied
// first. The closed-form product works on symbolic scalars as well.
func Multiply(left, right SingleQubitGateOperation) (*SingleQubitGate, error) {
	if left.QubitIndex() != right.QubitIndex() {
		return nil, errors.Wrapf(ErrQubitMismatch,
			"multiplying %s on qubit %d with %s on qubit %d",
			left.Name(), left.QubitIndex(), right.Name(), right.QubitIndex())
	}
	ar, ai := left.AlphaR(), left.AlphaI()
	br, bi := left.BetaR(), left.BetaI()
	oar, oai := right.AlphaR(), right.AlphaI()
	obr, obi := right.BetaR(), right.BetaI()

	// alpha = alpha*o_alpha - conj(beta)*o_beta
	newAr := ar.Mul(oar).Sub(ai.Mul(oai)).Sub(br.Mul(obr)).Sub(bi.Mul(obi))
	newAi := ar.Mul(oai).Add(ai.Mul(oar)).Sub(br.Mul(obi)).Add(bi.Mul(obr))
	// beta = beta*o_alpha + conj(alpha)*o_beta
	newBr := br.Mul(oar).Sub(bi.Mul(oai)).Add(ar.Mul(obr)).Add(ai.Mul(obi))
	newBi := br.Mul(oai).Add(bi.Mul(oar)).Add(ar.Mul(obi)).Sub(ai.Mul(obr))

	return &SingleQubitGate{
		Qubit:   left.QubitIndex(),
		AlphaRe: newAr,
		AlphaIm: newAi,
		BetaRe:  newBr,
		BetaIm:  newBi,
		Phase:   left.GlobalPhase().Add(right.GlobalPhase()),
	}, nil
}

// Rotation is implemented by gates declaring rotation-strength parameters,
// the only gates for which exponentiation is defined.
type Rotation interface {
	Operation
	// Powered returns a copy with every rotation-strength parameter scaled
	// by p.
	Powered(p calculator.CalculatorFloat) Operation
}

// PowerGate raises a gate to a power by scaling its rotation-strength
// parameters. Gates without such parameters fail with ErrNotExponentiable.
func PowerGate(op Operation, p calculator.CalculatorFloat) (Operation, error) {
	r, ok := op.(Rotation)
	if !ok {
		return nil, errors.Wrap(ErrNotExponentiable, op.Name())
	}
	return r.Powered(p), nil
}

// SingleQubitGate is the generic single-qubit unitary, carrying its five
// scalars as explicit parameters. Multiplication of any two single-qubit
// gates closes over this type.
type SingleQubitGate struct {
	Qubit   int                        `yaml:"qubit"`
	AlphaRe calculator.CalculatorFloat `yaml:"alpha_r"`
	AlphaIm calculator.CalculatorFloat `yaml:"alpha_i"`
	BetaRe  calculator.CalculatorFloat `yaml:"beta_r"`
	BetaIm  calculator.CalculatorFloat `yaml:"beta_i"`
	Phase   calculator.CalculatorFloat `yaml:"global_phase"`
}

func init() {
	register("SingleQubitGate", func() Operation {
		return &SingleQubitGate{AlphaRe: calculator.Float(1)}
	})
}

// NewSingleQubitGate returns the identity on the given qubit.
func NewSingleQubitGate(qubit int) *SingleQubitGate {
	return &SingleQubitGate{Qubit: qubit, AlphaRe: calculator.Float(1)}
}

func (g *SingleQubitGate) Name() string { return "SingleQubitGate" }

func (g *SingleQubitGate) Tags() []string {
	return []string{"Operation", "GateOperation", "SingleQubitGateOperation", "SingleQubitGate"}
}

func (g *SingleQubitGate) QubitIndex() int                { return g.Qubit }
func (g *SingleQubitGate) InvolvedQubits() InvolvedQubits { return QubitsOf(g.Qubit) }

func (g *SingleQubitGate) IsParametrized() bool {
	return anySymbolic(g.AlphaRe, g.AlphaIm, g.BetaRe, g.BetaIm, g.Phase)
}

func (g *SingleQubitGate) SubstituteParameters(bindings map[string]float64) error {
	return substituteAll(bindings, &g.AlphaRe, &g.AlphaIm, &g.BetaRe, &g.BetaIm, &g.Phase)
}

func (g *SingleQubitGate) RemapQubits(mapping map[int]int) error {
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}

func (g *SingleQubitGate) ToHQSLang() string {
	return hqsLangLine("SingleQubitGate",
		[]calculator.CalculatorFloat{g.AlphaRe, g.AlphaIm, g.BetaRe, g.BetaIm, g.Phase},
		[]int{g.Qubit})
}

func (g *SingleQubitGate) Clone() Operation {
	clone := *g
	return &clone
}

func (g *SingleQubitGate) Equal(other Operation) bool {
	o, ok := other.(*SingleQubitGate)
	if !ok {
		return false
	}
	return g.Qubit == o.Qubit &&
		g.AlphaRe.Equal(o.AlphaRe) && g.AlphaIm.Equal(o.AlphaIm) &&
		g.BetaRe.Equal(o.BetaRe) && g.BetaIm.Equal(o.BetaIm) &&
		g.Phase.Equal(o.Phase)
}

func (g *SingleQubitGate) AlphaR() calculator.CalculatorFloat      { return g.AlphaRe }
func (g *SingleQubitGate) AlphaI() calculator.CalculatorFloat      { return g.AlphaIm }
func (g *SingleQubitGate) BetaR() calculator.CalculatorFloat       { return g.BetaRe }
func (g *SingleQubitGate) BetaI() calculator.CalculatorFloat       { return g.BetaIm }
func (g *SingleQubitGate) GlobalPhase() calculator.CalculatorFloat { return g.Phase }

// fixedSingleQubitGate factors the shared behavior of the parameterless
// single-qubit gates; the concrete variants differ only in their name and
// scalar constants.
type fixedSingleQubitGate struct {
	Qubit int `yaml:"qubit"`
}

func (g *fixedSingleQubitGate) InvolvedQubits() InvolvedQubits                { return QubitsOf(g.Qubit) }
func (g *fixedSingleQubitGate) QubitIndex() int                               { return g.Qubit }
func (g *fixedSingleQubitGate) IsParametrized() bool                          { return false }
func (g *fixedSingleQubitGate) SubstituteParameters(map[string]float64) error { return nil }
func (g *fixedSingleQubitGate) RemapQubits(mapping map[int]int) error {
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}

// The yaml handlers are promoted into the concrete variants so the qubit
// index survives serialization through the unexported embed.
func (g fixedSingleQubitGate) MarshalYAML() (interface{}, error) {
	return map[string]interface{}{"qubit": g.Qubit}, nil
}

func (g *fixedSingleQubitGate) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var body struct {
		Qubit int `yaml:"qubit"`
	}
	if err := unmarshal(&body); err != nil {
		return err
	}
	g.Qubit = body.Qubit
	return nil
}

func singleQubitTags(name string) []string {
	return []string{"Operation", "GateOperation", "SingleQubitGateOperation", name}
}

// Hadamard implements the Hadamard gate.
type Hadamard struct {
	fixedSingleQubitGate `yaml:",inline"`
}

func init() { register("Hadamard", func() Operation { return &Hadamard{} }) }

func NewHadamard(qubit int) *Hadamard {
	return &Hadamard{fixedSingleQubitGate{Qubit: qubit}}
}

func (g *Hadamard) Name() string    { return "Hadamard" }
func (g *Hadamard) Tags() []string  { return singleQubitTags("Hadamard") }
func (g *Hadamard) ToHQSLang() string {
	return hqsLangLine("Hadamard", nil, []int{g.Qubit})
}
func (g *Hadamard) Clone() Operation { clone := *g; return &clone }
func (g *Hadamard) Equal(other Operation) bool {
	o, ok := other.(*Hadamard)
	return ok && g.Qubit == o.Qubit
}
func (g *Hadamard) AlphaR() calculator.CalculatorFloat { return calculator.Float(0) }
func (g *Hadamard) AlphaI() calculator.CalculatorFloat {
	return calculator.Float(-1 / math.Sqrt2)
}
func (g *Hadamard) BetaR() calculator.CalculatorFloat { return calculator.Float(0) }
func (g *Hadamard) BetaI() calculator.CalculatorFloat {
	return calculator.Float(-1 / math.Sqrt2)
}
func (g *Hadamard) GlobalPhase() calculator.CalculatorFloat {
	return calculator.Float(math.Pi / 2)
}

// PauliX implements the Pauli sigma-x gate.
type PauliX struct {
	fixedSingleQubitGate `yaml:",inline"`
}

func init() { register("PauliX", func() Operation { return &PauliX{} }) }

func NewPauliX(qubit int) *PauliX {
	return &PauliX{fixedSingleQubitGate{Qubit: qubit}}
}

func (g *PauliX) Name() string    { return "PauliX" }
func (g *PauliX) Tags() []string  { return singleQubitTags("PauliX") }
func (g *PauliX) ToHQSLang() string {
	return hqsLangLine("PauliX", nil, []int{g.Qubit})
}
func (g *PauliX) Clone() Operation { clone := *g; return &clone }
func (g *PauliX) Equal(other Operation) bool {
	o, ok := other.(*PauliX)
	return ok && g.Qubit == o.Qubit
}
func (g *PauliX) AlphaR() calculator.CalculatorFloat      { return calculator.Float(0) }
func (g *PauliX) AlphaI() calculator.CalculatorFloat      { return calculator.Float(0) }
func (g *PauliX) BetaR() calculator.CalculatorFloat       { return calculator.Float(0) }
func (g *PauliX) BetaI() calculator.CalculatorFloat       { return calculator.Float(-1) }
func (g *PauliX) GlobalPhase() calculator.CalculatorFloat { return calculator.Float(math.Pi / 2) }

// PauliY implements the Pauli sigma-y gate.
type PauliY struct {
	fixedSingleQubitGate `yaml:",inline"`
}

func init() { register("PauliY", func() Operation { return &PauliY{} }) }

func NewPauliY(qubit int) *PauliY {
	return &PauliY{fixedSingleQubitGate{Qubit: qubit}}
}

func (g *PauliY) Name() string    { return "PauliY" }
func (g *PauliY) Tags() []string  { return singleQubitTags("PauliY") }
func (g *PauliY) ToHQSLang() string {
	return hqsLangLine("PauliY", nil, []int{g.Qubit})
}
func (g *PauliY) Clone() Operation { clone := *g; return &clone }
func (g *PauliY) Equal(other Operation) bool {
	o, ok := other.(*PauliY)
	return ok && g.Qubit == o.Qubit
}
func (g *PauliY) AlphaR() calculator.CalculatorFloat      { return calculator.Float(0) }
func (g *PauliY) AlphaI() calculator.CalculatorFloat      { return calculator.Float(0) }
func (g *PauliY) BetaR() calculator.CalculatorFloat       { return calculator.Float(1) }
func (g *PauliY) BetaI() calculator.CalculatorFloat       { return calculator.Float(0) }
func (g *PauliY) GlobalPhase() calculator.CalculatorFloat { return calculator.Float(math.Pi / 2) }

// PauliZ implements the Pauli sigma-z gate.
type PauliZ struct {
	fixedSingleQubitGate `yaml:",inline"`
}

func init() { register("PauliZ", func() Operation { return &PauliZ{} }) }

func NewPauliZ(qubit int) *PauliZ {
	return &PauliZ{fixedSingleQubitGate{Qubit: qubit}}
}

func (g *PauliZ) Name() string    { return "PauliZ" }
func (g *PauliZ) Tags() []string  { return singleQubitTags("PauliZ") }
func (g *PauliZ) ToHQSLang() string {
	return hqsLangLine("PauliZ", nil, []int{g.Qubit})
}
func (g *PauliZ) Clone() Operation { clone := *g; return &clone }
func (g *PauliZ) Equal(other Operation) bool {
	o, ok := other.(*PauliZ)
	return ok && g.Qubit == o.Qubit
}
func (g *PauliZ) AlphaR() calculator.CalculatorFloat      { return calculator.Float(0) }
func (g *PauliZ) AlphaI() calculator.CalculatorFloat      { return calculator.Float(-1) }
func (g *PauliZ) BetaR() calculator.CalculatorFloat       { return calculator.Float(0) }
func (g *PauliZ) BetaI() calculator.CalculatorFloat       { return calculator.Float(0) }
func (g *PauliZ) GlobalPhase() calculator.CalculatorFloat { return calculator.Float(math.Pi / 2) }

// SGate implements the S gate, the square root of PauliZ.
type SGate struct {
	fixedSingleQubitGate `yaml:",inline"`
}

func init() { register("SGate", func() Operation { return &SGate{} }) }

func NewSGate(qubit int) *SGate {
	return &SGate{fixedSingleQubitGate{Qubit: qubit}}
}

func (g *SGate) Name() string    { return "SGate" }
func (g *SGate) Tags() []string  { return singleQubitTags("SGate") }
func (g *SGate) ToHQSLang() string {
	return hqsLangLine("SGate", nil, []int{g.Qubit})
}
func (g *SGate) Clone() Operation { clone := *g; return &clone }
func (g *SGate) Equal(other Operation) bool {
	o, ok := other.(*SGate)
	return ok && g.Qubit == o.Qubit
}
func (g *SGate) AlphaR() calculator.CalculatorFloat      { return calculator.Float(1 / math.Sqrt2) }
func (g *SGate) AlphaI() calculator.CalculatorFloat      { return calculator.Float(-1 / math.Sqrt2) }
func (g *SGate) BetaR() calculator.CalculatorFloat       { return calculator.Float(0) }
func (g *SGate) BetaI() calculator.CalculatorFloat       { return calculator.Float(0) }
func (g *SGate) GlobalPhase() calculator.CalculatorFloat { return calculator.Float(math.Pi / 4) }

// TGate implements the T gate, the square root of SGate.
type TGate struct {
	fixedSingleQubitGate `yaml:",inline"`
}

func init() { register("TGate", func() Operation { return &TGate{} }) }

func NewTGate(qubit int) *TGate {
	return &TGate{fixedSingleQubitGate{Qubit: qubit}}
}

func (g *TGate) Name() string    { return "TGate" }
func (g *TGate) Tags() []string  { return singleQubitTags("TGate") }
func (g *TGate) ToHQSLang() string {
	return hqsLangLine("TGate", nil, []int{g.Qubit})
}
func (g *TGate) Clone() Operation { clone := *g; return &clone }
func (g *TGate) Equal(other Operation) bool {
	o, ok := other.(*TGate)
	return ok && g.Qubit == o.Qubit
}
func (g *TGate) AlphaR() calculator.CalculatorFloat      { return calculator.Float(math.Cos(math.Pi / 8)) }
func (g *TGate) AlphaI() calculator.CalculatorFloat      { return calculator.Float(-math.Sin(math.Pi / 8)) }
func (g *TGate) BetaR() calculator.CalculatorFloat       { return calculator.Float(0) }
func (g *TGate) BetaI() calculator.CalculatorFloat       { return calculator.Float(0) }
func (g *TGate) GlobalPhase() calculator.CalculatorFloat { return calculator.Float(math.Pi / 8) }

// SqrtPauliX implements exp(-i pi/4 sigma-x).
type SqrtPauliX struct {
	fixedSingleQubitGate `yaml:",inline"`
}

func init() { register("SqrtPauliX", func() Operation { return &SqrtPauliX{} }) }

func NewSqrtPauliX(qubit int) *SqrtPauliX {
	return &SqrtPauliX{fixedSingleQubitGate{Qubit: qubit}}
}

func (g *SqrtPauliX) Name() string    { return "SqrtPauliX" }
func (g *SqrtPauliX) Tags() []string  { return singleQubitTags("SqrtPauliX") }
func (g *SqrtPauliX) ToHQSLang() string {
	return hqsLangLine("SqrtPauliX", nil, []int{g.Qubit})
}
func (g *SqrtPauliX) Clone() Operation { clone := *g; return &clone }
func (g *SqrtPauliX) Equal(other Operation) bool {
	o, ok := other.(*SqrtPauliX)
	return ok && g.Qubit == o.Qubit
}
func (g *SqrtPauliX) AlphaR() calculator.CalculatorFloat {
	return calculator.Float(math.Cos(math.Pi / 4))
}
func (g *SqrtPauliX) AlphaI() calculator.CalculatorFloat { return calculator.Float(0) }
func (g *SqrtPauliX) BetaR() calculator.CalculatorFloat  { return calculator.Float(0) }
func (g *SqrtPauliX) BetaI() calculator.CalculatorFloat {
	return calculator.Float(-math.Sin(math.Pi / 4))
}
func (g *SqrtPauliX) GlobalPhase() calculator.CalculatorFloat { return calculator.Float(0) }

// InvSqrtPauliX implements exp(i pi/4 sigma-x).
type InvSqrtPauliX struct {
	fixedSingleQubitGate `yaml:",inline"`
}

func init() { register("InvSqrtPauliX", func() Operation { return &InvSqrtPauliX{} }) }

func NewInvSqrtPauliX(qubit int) *InvSqrtPauliX {
	return &InvSqrtPauliX{fixedSingleQubitGate{Qubit: qubit}}
}

func (g *InvSqrtPauliX) Name() string    { return "InvSqrtPauliX" }
func (g *InvSqrtPauliX) Tags() []string  { return singleQubitTags("InvSqrtPauliX") }
func (g *InvSqrtPauliX) ToHQSLang() string {
	return hqsLangLine("InvSqrtPauliX", nil, []int{g.Qubit})
}
func (g *InvSqrtPauliX) Clone() Operation { clone := *g; return &clone }
func (g *InvSqrtPauliX) Equal(other Operation) bool {
	o, ok := other.(*InvSqrtPauliX)
	return ok && g.Qubit == o.Qubit
}
func (g *InvSqrtPauliX) AlphaR() calculator.CalculatorFloat {
	return calculator.Float(math.Cos(math.Pi / 4))
}
func (g *InvSqrtPauliX) AlphaI() calculator.CalculatorFloat { return calculator.Float(0) }
func (g *InvSqrtPauliX) BetaR() calculator.CalculatorFloat  { return calculator.Float(0) }
func (g *InvSqrtPauliX) BetaI() calculator.CalculatorFloat {
	return calculator.Float(math.Sin(math.Pi / 4))
}
func (g *InvSqrtPauliX) GlobalPhase() calculator.CalculatorFloat { return calculator.Float(0) }

// RotateX implements the rotation around the x axis by angle theta.
type RotateX struct {
	Qubit int                        `yaml:"qubit"`
	Theta calculator.CalculatorFloat `yaml:"theta"`
}

func init() { register("RotateX", func() Operation { return &RotateX{Theta: calculator.Float(0)} }) }

func NewRotateX(qubit int, theta calculator.CalculatorFloat) *RotateX {
	return &RotateX{Qubit: qubit, Theta: theta}
}

func (g *RotateX) Name() string                      { return "RotateX" }
func (g *RotateX) Tags() []string                    { return singleQubitTags("RotateX") }
func (g *RotateX) QubitIndex() int                   { return g.Qubit }
func (g *RotateX) InvolvedQubits() InvolvedQubits    { return QubitsOf(g.Qubit) }
func (g *RotateX) IsParametrized() bool              { return g.Theta.IsSymbolic() }
func (g *RotateX) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &g.Theta)
}
func (g *RotateX) RemapQubits(mapping map[int]int) error {
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *RotateX) ToHQSLang() string {
	return hqsLangLine("RotateX", []calculator.CalculatorFloat{g.Theta}, []int{g.Qubit})
}
func (g *RotateX) Clone() Operation { clone := *g; return &clone }
func (g *RotateX) Equal(other Operation) bool {
	o, ok := other.(*RotateX)
	return ok && g.Qubit == o.Qubit && g.Theta.Equal(o.Theta)
}
func (g *RotateX) Powered(p calculator.CalculatorFloat) Operation {
	return &RotateX{Qubit: g.Qubit, Theta: g.Theta.Mul(p)}
}
func (g *RotateX) AlphaR() calculator.CalculatorFloat {
	return g.Theta.Div(calculator.Float(2)).Cos()
}
func (g *RotateX) AlphaI() calculator.CalculatorFloat { return calculator.Float(0) }
func (g *RotateX) BetaR() calculator.CalculatorFloat  { return calculator.Float(0) }
func (g *RotateX) BetaI() calculator.CalculatorFloat {
	return g.Theta.Div(calculator.Float(2)).Sin().Neg()
}
func (g *RotateX) GlobalPhase() calculator.CalculatorFloat { return calculator.Float(0) }

// RotateY implements the rotation around the y axis by angle theta.
type RotateY struct {
	Qubit int                        `yaml:"qubit"`
	Theta calculator.CalculatorFloat `yaml:"theta"`
}

func init() { register("RotateY", func() Operation { return &RotateY{Theta: calculator.Float(0)} }) }

func NewRotateY(qubit int, theta calculator.CalculatorFloat) *RotateY {
	return &RotateY{Qubit: qubit, Theta: theta}
}

func (g *RotateY) Name() string                   { return "RotateY" }
func (g *RotateY) Tags() []string                 { return singleQubitTags("RotateY") }
func (g *RotateY) QubitIndex() int                { return g.Qubit }
func (g *RotateY) InvolvedQubits() InvolvedQubits { return QubitsOf(g.Qubit) }
func (g *RotateY) IsParametrized() bool           { return g.Theta.IsSymbolic() }
func (g *RotateY) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &g.Theta)
}
func (g *RotateY) RemapQubits(mapping map[int]int) error {
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *RotateY) ToHQSLang() string {
	return hqsLangLine("RotateY", []calculator.CalculatorFloat{g.Theta}, []int{g.Qubit})
}
func (g *RotateY) Clone() Operation { clone := *g; return &clone }
func (g *RotateY) Equal(other Operation) bool {
	o, ok := other.(*RotateY)
	return ok && g.Qubit == o.Qubit && g.Theta.Equal(o.Theta)
}
func (g *RotateY) Powered(p calculator.CalculatorFloat) Operation {
	return &RotateY{Qubit: g.Qubit, Theta: g.Theta.Mul(p)}
}
func (g *RotateY) AlphaR() calculator.CalculatorFloat {
	return g.Theta.Div(calculator.Float(2)).Cos()
}
func (g *RotateY) AlphaI() calculator.CalculatorFloat { return calculator.Float(0) }
func (g *RotateY) BetaR() calculator.CalculatorFloat {
	return g.Theta.Div(calculator.Float(2)).Sin()
}
func (g *RotateY) BetaI() calculator.CalculatorFloat       { return calculator.Float(0) }
func (g *RotateY) GlobalPhase() calculator.CalculatorFloat { return calculator.Float(0) }

// RotateZ implements the rotation around the z axis by angle theta.
type RotateZ struct {
	Qubit int                        `yaml:"qubit"`
	Theta calculator.CalculatorFloat `yaml:"theta"`
}

func init() { register("RotateZ", func() Operation { return &RotateZ{Theta: calculator.Float(0)} }) }

func NewRotateZ(qubit int, theta calculator.CalculatorFloat) *RotateZ {
	return &RotateZ{Qubit: qubit, Theta: theta}
}

func (g *RotateZ) Name() string                   { return "RotateZ" }
func (g *RotateZ) Tags() []string                 { return singleQubitTags("RotateZ") }
func (g *RotateZ) QubitIndex() int                { return g.Qubit }
func (g *RotateZ) InvolvedQubits() InvolvedQubits { return QubitsOf(g.Qubit) }
func (g *RotateZ) IsParametrized() bool           { return g.Theta.IsSymbolic() }
func (g *RotateZ) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &g.Theta)
}
func (g *RotateZ) RemapQubits(mapping map[int]int) error {
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *RotateZ) ToHQSLang() string {
	return hqsLangLine("RotateZ", []calculator.CalculatorFloat{g.Theta}, []int{g.Qubit})
}
func (g *RotateZ) Clone() Operation { clone := *g; return &clone }
func (g *RotateZ) Equal(other Operation) bool {
	o, ok := other.(*RotateZ)
	return ok && g.Qubit == o.Qubit && g.Theta.Equal(o.Theta)
}
func (g *RotateZ) Powered(p calculator.CalculatorFloat) Operation {
	return &RotateZ{Qubit: g.Qubit, Theta: g.Theta.Mul(p)}
}
func (g *RotateZ) AlphaR() calculator.CalculatorFloat {
	return g.Theta.Div(calculator.Float(2)).Cos()
}
func (g *RotateZ) AlphaI() calculator.CalculatorFloat {
	return g.Theta.Div(calculator.Float(2)).Sin().Neg()
}
func (g *RotateZ) BetaR() calculator.CalculatorFloat       { return calculator.Float(0) }
func (g *RotateZ) BetaI() calculator.CalculatorFloat       { return calculator.Float(0) }
func (g *RotateZ) GlobalPhase() calculator.CalculatorFloat { return calculator.Float(0) }

// RotateAroundSphericalAxis implements a rotation by theta around the axis
// given in spherical coordinates.
type RotateAroundSphericalAxis struct {
	Qubit          int                        `yaml:"qubit"`
	Theta          calculator.CalculatorFloat `yaml:"theta"`
	SphericalTheta calculator.CalculatorFloat `yaml:"spherical_theta"`
	SphericalPhi   calculator.CalculatorFloat `yaml:"spherical_phi"`
}

func init() {
	register("RotateAroundSphericalAxis", func() Operation {
		return &RotateAroundSphericalAxis{
			Theta:          calculator.Float(0),
			SphericalTheta: calculator.Float(0),
			SphericalPhi:   calculator.Float(0),
		}
	})
}

func NewRotateAroundSphericalAxis(
	qubit int,
	theta, sphericalTheta, sphericalPhi calculator.CalculatorFloat,
) *RotateAroundSphericalAxis {
	return &RotateAroundSphericalAxis{
		Qubit:          qubit,
		Theta:          theta,
		SphericalTheta: sphericalTheta,
		SphericalPhi:   sphericalPhi,
	}
}

func (g *RotateAroundSphericalAxis) Name() string { return "RotateAroundSphericalAxis" }
func (g *RotateAroundSphericalAxis) Tags() []string {
	return singleQubitTags("RotateAroundSphericalAxis")
}
func (g *RotateAroundSphericalAxis) QubitIndex() int                { return g.Qubit }
func (g *RotateAroundSphericalAxis) InvolvedQubits() InvolvedQubits { return QubitsOf(g.Qubit) }
func (g *RotateAroundSphericalAxis) IsParametrized() bool {
	return anySymbolic(g.Theta, g.SphericalTheta, g.SphericalPhi)
}
func (g *RotateAroundSphericalAxis) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &g.Theta, &g.SphericalTheta, &g.SphericalPhi)
}
func (g *RotateAroundSphericalAxis) RemapQubits(mapping map[int]int) error {
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *RotateAroundSphericalAxis) ToHQSLang() string {
	return hqsLangLine("RotateAroundSphericalAxis",
		[]calculator.CalculatorFloat{g.Theta, g.SphericalTheta, g.SphericalPhi},
		[]int{g.Qubit})
}
func (g *RotateAroundSphericalAxis) Clone() Operation { clone := *g; return &clone }
func (g *RotateAroundSphericalAxis) Equal(other Operation) bool {
	o, ok := other.(*RotateAroundSphericalAxis)
	return ok && g.Qubit == o.Qubit && g.Theta.Equal(o.Theta) &&
		g.SphericalTheta.Equal(o.SphericalTheta) && g.SphericalPhi.Equal(o.SphericalPhi)
}
func (g *RotateAroundSphericalAxis) Powered(p calculator.CalculatorFloat) Operation {
	clone := *g
	clone.Theta = g.Theta.Mul(p)
	return &clone
}
func (g *RotateAroundSphericalAxis) AlphaR() calculator.CalculatorFloat {
	return g.Theta.Div(calculator.Float(2)).Cos()
}
func (g *RotateAroundSphericalAxis) AlphaI() calculator.CalculatorFloat {
	s := g.Theta.Div(calculator.Float(2)).Sin()
	vz := g.SphericalTheta.Cos()
	return s.Mul(vz).Neg()
}
func (g *RotateAroundSphericalAxis) BetaR() calculator.CalculatorFloat {
	s := g.Theta.Div(calculator.Float(2)).Sin()
	return s.Mul(g.SphericalPhi.Sin()).Mul(g.SphericalTheta.Sin())
}
func (g *RotateAroundSphericalAxis) BetaI() calculator.CalculatorFloat {
	s := g.Theta.Div(calculator.Float(2)).Sin()
	return s.Mul(g.SphericalPhi.Cos()).Mul(g.SphericalTheta.Sin()).Neg()
}
func (g *RotateAroundSphericalAxis) GlobalPhase() calculator.CalculatorFloat {
	return calculator.Float(0)
}

// W implements a rotation by theta around an axis in the x-y plane, the
// plane angle given by spherical_phi.
type W struct {
	Qubit        int                        `yaml:"qubit"`
	Theta        calculator.CalculatorFloat `yaml:"theta"`
	SphericalPhi calculator.CalculatorFloat `yaml:"spherical_phi"`
}

func init() {
	register("W", func() Operation {
		return &W{Theta: calculator.Float(0), SphericalPhi: calculator.Float(0)}
	})
}

func NewW(qubit int, theta, sphericalPhi calculator.CalculatorFloat) *W {
	return &W{Qubit: qubit, Theta: theta, SphericalPhi: sphericalPhi}
}

func (g *W) Name() string                   { return "W" }
func (g *W) Tags() []string                 { return singleQubitTags("W") }
func (g *W) QubitIndex() int                { return g.Qubit }
func (g *W) InvolvedQubits() InvolvedQubits { return QubitsOf(g.Qubit) }
func (g *W) IsParametrized() bool           { return anySymbolic(g.Theta, g.SphericalPhi) }
func (g *W) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &g.Theta, &g.SphericalPhi)
}
func (g *W) RemapQubits(mapping map[int]int) error {
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *W) ToHQSLang() string {
	return hqsLangLine("W",
		[]calculator.CalculatorFloat{g.Theta, g.SphericalPhi}, []int{g.Qubit})
}
func (g *W) Clone() Operation { clone := *g; return &clone }
func (g *W) Equal(other Operation) bool {
	o, ok := other.(*W)
	return ok && g.Qubit == o.Qubit && g.Theta.Equal(o.Theta) &&
		g.SphericalPhi.Equal(o.SphericalPhi)
}
func (g *W) Powered(p calculator.CalculatorFloat) Operation {
	return &W{Qubit: g.Qubit, Theta: g.Theta.Mul(p), SphericalPhi: g.SphericalPhi}
}
func (g *W) AlphaR() calculator.CalculatorFloat {
	return g.Theta.Div(calculator.Float(2)).Cos()
}
func (g *W) AlphaI() calculator.CalculatorFloat { return calculator.Float(0) }
func (g *W) BetaR() calculator.CalculatorFloat {
	return g.Theta.Div(calculator.Float(2)).Sin().Mul(g.SphericalPhi.Sin())
}
func (g *W) BetaI() calculator.CalculatorFloat {
	return g.Theta.Div(calculator.Float(2)).Sin().Mul(g.SphericalPhi.Cos()).Neg()
}
func (g *W) GlobalPhase() calculator.CalculatorFloat { return calculator.Float(0) }
