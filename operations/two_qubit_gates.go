package operations

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"

	"github.com/HQSquantumsimulations/qoqo/calculator"
)

// KakDecomposition describes a two-qubit unitary through its Cartan
// decomposition
//
//	U = exp(i*g) (A0 x A1) exp(-i sum_j k_j sigma_j sigma_j) (B0 x B1)
//
// where the circuit fragments Before0/Before1 act before the entangling
// part and After0/After1 act after it. A nil GlobalPhase and empty
// fragments mean the respective factor is the identity.
type KakDecomposition struct {
	GlobalPhase *calculator.CalculatorFloat
	Before0     []Operation
	Before1     []Operation
	KVector     [3]calculator.CalculatorFloat
	After0      []Operation
	After1      []Operation
}

// TwoQubitGateOperation is the capability interface of unitary gates acting
// on a pair of qubits. The 4x4 unitary is given in the basis where the
// first qubit role (ControlIndex) is the most significant bit.
type TwoQubitGateOperation interface {
	Operation
	ControlIndex() int
	TargetIndex() int
	UnitaryMatrix() ([4][4]complex128, error)
	KakDecomposition() (KakDecomposition, error)
}

func twoQubitTags(name string) []string {
	return []string{"Operation", "GateOperation", "TwoQubitGateOperation", name}
}

// resolveFloats extracts numeric values from the given scalars, failing
// with ErrParametrized if any of them is still symbolic.
func resolveFloats(name string, fields ...calculator.CalculatorFloat) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		if f.IsSymbolic() {
			return nil, errors.Wrap(ErrParametrized, name)
		}
		v, err := f.Float64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func phasePtr(v calculator.CalculatorFloat) *calculator.CalculatorFloat { return &v }

func kVector(x, y, z calculator.CalculatorFloat) [3]calculator.CalculatorFloat {
	return [3]calculator.CalculatorFloat{x, y, z}
}

func cfloat(v float64) calculator.CalculatorFloat { return calculator.Float(v) }

// CNOT implements the controlled NOT gate.
type CNOT struct {
	Control int `yaml:"control"`
	Qubit   int `yaml:"qubit"`
}

func init() { register("CNOT", func() Operation { return &CNOT{} }) }

func NewCNOT(control, qubit int) *CNOT { return &CNOT{Control: control, Qubit: qubit} }

func (g *CNOT) Name() string                              { return "CNOT" }
func (g *CNOT) Tags() []string                            { return twoQubitTags("CNOT") }
func (g *CNOT) ControlIndex() int                         { return g.Control }
func (g *CNOT) TargetIndex() int                          { return g.Qubit }
func (g *CNOT) InvolvedQubits() InvolvedQubits            { return QubitsOf(g.Control, g.Qubit) }
func (g *CNOT) IsParametrized() bool                      { return false }
func (g *CNOT) SubstituteParameters(map[string]float64) error { return nil }
func (g *CNOT) RemapQubits(mapping map[int]int) error {
	g.Control = remapIndex(mapping, g.Control)
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *CNOT) ToHQSLang() string {
	return hqsLangLine("CNOT", nil, []int{g.Control, g.Qubit})
}
func (g *CNOT) Clone() Operation { clone := *g; return &clone }
func (g *CNOT) Equal(other Operation) bool {
	o, ok := other.(*CNOT)
	return ok && g.Control == o.Control && g.Qubit == o.Qubit
}

func (g *CNOT) UnitaryMatrix() ([4][4]complex128, error) {
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	}, nil
}

func (g *CNOT) KakDecomposition() (KakDecomposition, error) {
	return KakDecomposition{
		GlobalPhase: phasePtr(cfloat(math.Pi / 4)),
		Before0: []Operation{
			NewRotateZ(g.Control, cfloat(math.Pi/2)),
			NewRotateY(g.Control, cfloat(math.Pi/2)),
		},
		Before1: []Operation{NewRotateX(g.Qubit, cfloat(math.Pi/2))},
		KVector: kVector(cfloat(math.Pi/4), cfloat(0), cfloat(0)),
		After0:  []Operation{NewRotateY(g.Control, cfloat(-math.Pi/2))},
	}, nil
}

// SWAP implements the qubit exchange gate.
type SWAP struct {
	Control int `yaml:"control"`
	Qubit   int `yaml:"qubit"`
}

func init() { register("SWAP", func() Operation { return &SWAP{} }) }

func NewSWAP(control, qubit int) *SWAP { return &SWAP{Control: control, Qubit: qubit} }

func (g *SWAP) Name() string                              { return "SWAP" }
func (g *SWAP) Tags() []string                            { return twoQubitTags("SWAP") }
func (g *SWAP) ControlIndex() int                         { return g.Control }
func (g *SWAP) TargetIndex() int                          { return g.Qubit }
func (g *SWAP) InvolvedQubits() InvolvedQubits            { return QubitsOf(g.Control, g.Qubit) }
func (g *SWAP) IsParametrized() bool                      { return false }
func (g *SWAP) SubstituteParameters(map[string]float64) error { return nil }
func (g *SWAP) RemapQubits(mapping map[int]int) error {
	g.Control = remapIndex(mapping, g.Control)
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *SWAP) ToHQSLang() string {
	return hqsLangLine("SWAP", nil, []int{g.Control, g.Qubit})
}
func (g *SWAP) Clone() Operation { clone := *g; return &clone }
func (g *SWAP) Equal(other Operation) bool {
	o, ok := other.(*SWAP)
	return ok && g.Control == o.Control && g.Qubit == o.Qubit
}

func (g *SWAP) UnitaryMatrix() ([4][4]complex128, error) {
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
	}, nil
}

func (g *SWAP) KakDecomposition() (KakDecomposition, error) {
	return KakDecomposition{
		GlobalPhase: phasePtr(cfloat(-math.Pi / 4)),
		KVector:     kVector(cfloat(math.Pi/4), cfloat(math.Pi/4), cfloat(math.Pi/4)),
	}, nil
}

// ISwap implements the ISwap gate.
type ISwap struct {
	Control int `yaml:"control"`
	Qubit   int `yaml:"qubit"`
}

func init() { register("ISwap", func() Operation { return &ISwap{} }) }

func NewISwap(control, qubit int) *ISwap { return &ISwap{Control: control, Qubit: qubit} }

func (g *ISwap) Name() string                              { return "ISwap" }
func (g *ISwap) Tags() []string                            { return twoQubitTags("ISwap") }
func (g *ISwap) ControlIndex() int                         { return g.Control }
func (g *ISwap) TargetIndex() int                          { return g.Qubit }
func (g *ISwap) InvolvedQubits() InvolvedQubits            { return QubitsOf(g.Control, g.Qubit) }
func (g *ISwap) IsParametrized() bool                      { return false }
func (g *ISwap) SubstituteParameters(map[string]float64) error { return nil }
func (g *ISwap) RemapQubits(mapping map[int]int) error {
	g.Control = remapIndex(mapping, g.Control)
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *ISwap) ToHQSLang() string {
	return hqsLangLine("ISwap", nil, []int{g.Control, g.Qubit})
}
func (g *ISwap) Clone() Operation { clone := *g; return &clone }
func (g *ISwap) Equal(other Operation) bool {
	o, ok := other.(*ISwap)
	return ok && g.Control == o.Control && g.Qubit == o.Qubit
}

func (g *ISwap) UnitaryMatrix() ([4][4]complex128, error) {
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, 0, 1i, 0},
		{0, 1i, 0, 0},
		{0, 0, 0, 1},
	}, nil
}

func (g *ISwap) KakDecomposition() (KakDecomposition, error) {
	return KakDecomposition{
		KVector: kVector(cfloat(math.Pi/4), cfloat(math.Pi/4), cfloat(0)),
	}, nil
}

// FSwap implements the fermionic SWAP gate.
type FSwap struct {
	Control int `yaml:"control"`
	Qubit   int `yaml:"qubit"`
}

func init() { register("FSwap", func() Operation { return &FSwap{} }) }

func NewFSwap(control, qubit int) *FSwap { return &FSwap{Control: control, Qubit: qubit} }

func (g *FSwap) Name() string                              { return "FSwap" }
func (g *FSwap) Tags() []string                            { return twoQubitTags("FSwap") }
func (g *FSwap) ControlIndex() int                         { return g.Control }
func (g *FSwap) TargetIndex() int                          { return g.Qubit }
func (g *FSwap) InvolvedQubits() InvolvedQubits            { return QubitsOf(g.Control, g.Qubit) }
func (g *FSwap) IsParametrized() bool                      { return false }
func (g *FSwap) SubstituteParameters(map[string]float64) error { return nil }
func (g *FSwap) RemapQubits(mapping map[int]int) error {
	g.Control = remapIndex(mapping, g.Control)
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *FSwap) ToHQSLang() string {
	return hqsLangLine("FSwap", nil, []int{g.Control, g.Qubit})
}
func (g *FSwap) Clone() Operation { clone := *g; return &clone }
func (g *FSwap) Equal(other Operation) bool {
	o, ok := other.(*FSwap)
	return ok && g.Control == o.Control && g.Qubit == o.Qubit
}

func (g *FSwap) UnitaryMatrix() ([4][4]complex128, error) {
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, -1},
	}, nil
}

func (g *FSwap) KakDecomposition() (KakDecomposition, error) {
	return KakDecomposition{
		GlobalPhase: phasePtr(cfloat(-math.Pi / 2)),
		Before0:     []Operation{NewRotateZ(g.Control, cfloat(-math.Pi/2))},
		Before1:     []Operation{NewRotateZ(g.Qubit, cfloat(-math.Pi/2))},
		KVector:     kVector(cfloat(math.Pi/4), cfloat(math.Pi/4), cfloat(0)),
	}, nil
}

// SqrtISwap implements the square root of the ISwap gate.
type SqrtISwap struct {
	Control int `yaml:"control"`
	Qubit   int `yaml:"qubit"`
}

func init() { register("SqrtISwap", func() Operation { return &SqrtISwap{} }) }

func NewSqrtISwap(control, qubit int) *SqrtISwap {
	return &SqrtISwap{Control: control, Qubit: qubit}
}

func (g *SqrtISwap) Name() string                              { return "SqrtISwap" }
func (g *SqrtISwap) Tags() []string                            { return twoQubitTags("SqrtISwap") }
func (g *SqrtISwap) ControlIndex() int                         { return g.Control }
func (g *SqrtISwap) TargetIndex() int                          { return g.Qubit }
func (g *SqrtISwap) InvolvedQubits() InvolvedQubits            { return QubitsOf(g.Control, g.Qubit) }
func (g *SqrtISwap) IsParametrized() bool                      { return false }
func (g *SqrtISwap) SubstituteParameters(map[string]float64) error { return nil }
func (g *SqrtISwap) RemapQubits(mapping map[int]int) error {
	g.Control = remapIndex(mapping, g.Control)
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *SqrtISwap) ToHQSLang() string {
	return hqsLangLine("SqrtISwap", nil, []int{g.Control, g.Qubit})
}
func (g *SqrtISwap) Clone() Operation { clone := *g; return &clone }
func (g *SqrtISwap) Equal(other Operation) bool {
	o, ok := other.(*SqrtISwap)
	return ok && g.Control == o.Control && g.Qubit == o.Qubit
}

func (g *SqrtISwap) UnitaryMatrix() ([4][4]complex128, error) {
	f := complex(1/math.Sqrt2, 0)
	fi := complex(0, 1/math.Sqrt2)
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, f, fi, 0},
		{0, fi, f, 0},
		{0, 0, 0, 1},
	}, nil
}

func (g *SqrtISwap) KakDecomposition() (KakDecomposition, error) {
	return KakDecomposition{
		KVector: kVector(cfloat(math.Pi/8), cfloat(math.Pi/8), cfloat(0)),
	}, nil
}

// InvSqrtISwap implements the inverse square root of the ISwap gate.
type InvSqrtISwap struct {
	Control int `yaml:"control"`
	Qubit   int `yaml:"qubit"`
}

func init() { register("InvSqrtISwap", func() Operation { return &InvSqrtISwap{} }) }

func NewInvSqrtISwap(control, qubit int) *InvSqrtISwap {
	return &InvSqrtISwap{Control: control, Qubit: qubit}
}

func (g *InvSqrtISwap) Name() string                              { return "InvSqrtISwap" }
func (g *InvSqrtISwap) Tags() []string                            { return twoQubitTags("InvSqrtISwap") }
func (g *InvSqrtISwap) ControlIndex() int                         { return g.Control }
func (g *InvSqrtISwap) TargetIndex() int                          { return g.Qubit }
func (g *InvSqrtISwap) InvolvedQubits() InvolvedQubits            { return QubitsOf(g.Control, g.Qubit) }
func (g *InvSqrtISwap) IsParametrized() bool                      { return false }
func (g *InvSqrtISwap) SubstituteParameters(map[string]float64) error { return nil }
func (g *InvSqrtISwap) RemapQubits(mapping map[int]int) error {
	g.Control = remapIndex(mapping, g.Control)
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *InvSqrtISwap) ToHQSLang() string {
	return hqsLangLine("InvSqrtISwap", nil, []int{g.Control, g.Qubit})
}
func (g *InvSqrtISwap) Clone() Operation { clone := *g; return &clone }
func (g *InvSqrtISwap) Equal(other Operation) bool {
	o, ok := other.(*InvSqrtISwap)
	return ok && g.Control == o.Control && g.Qubit == o.Qubit
}

func (g *InvSqrtISwap) UnitaryMatrix() ([4][4]complex128, error) {
	f := complex(1/math.Sqrt2, 0)
	fi := complex(0, -1/math.Sqrt2)
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, f, fi, 0},
		{0, fi, f, 0},
		{0, 0, 0, 1},
	}, nil
}

func (g *InvSqrtISwap) KakDecomposition() (KakDecomposition, error) {
	return KakDecomposition{
		KVector: kVector(cfloat(-math.Pi/8), cfloat(-math.Pi/8), cfloat(0)),
	}, nil
}

// MolmerSorensenXX implements the fixed-phase MolmerSorensen XX gate.
type MolmerSorensenXX struct {
	Control int `yaml:"control"`
	Qubit   int `yaml:"qubit"`
}

func init() { register("MolmerSorensenXX", func() Operation { return &MolmerSorensenXX{} }) }

func NewMolmerSorensenXX(control, qubit int) *MolmerSorensenXX {
	return &MolmerSorensenXX{Control: control, Qubit: qubit}
}

func (g *MolmerSorensenXX) Name() string   { return "MolmerSorensenXX" }
func (g *MolmerSorensenXX) Tags() []string { return twoQubitTags("MolmerSorensenXX") }
func (g *MolmerSorensenXX) ControlIndex() int { return g.Control }
func (g *MolmerSorensenXX) TargetIndex() int  { return g.Qubit }
func (g *MolmerSorensenXX) InvolvedQubits() InvolvedQubits {
	return QubitsOf(g.Control, g.Qubit)
}
func (g *MolmerSorensenXX) IsParametrized() bool                      { return false }
func (g *MolmerSorensenXX) SubstituteParameters(map[string]float64) error { return nil }
func (g *MolmerSorensenXX) RemapQubits(mapping map[int]int) error {
	g.Control = remapIndex(mapping, g.Control)
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *MolmerSorensenXX) ToHQSLang() string {
	return hqsLangLine("MolmerSorensenXX", nil, []int{g.Control, g.Qubit})
}
func (g *MolmerSorensenXX) Clone() Operation { clone := *g; return &clone }
func (g *MolmerSorensenXX) Equal(other Operation) bool {
	o, ok := other.(*MolmerSorensenXX)
	return ok && g.Control == o.Control && g.Qubit == o.Qubit
}

func (g *MolmerSorensenXX) UnitaryMatrix() ([4][4]complex128, error) {
	f := complex(1/math.Sqrt2, 0)
	fi := complex(0, -1/math.Sqrt2)
	return [4][4]complex128{
		{f, 0, 0, fi},
		{0, f, fi, 0},
		{0, fi, f, 0},
		{fi, 0, 0, f},
	}, nil
}

func (g *MolmerSorensenXX) KakDecomposition() (KakDecomposition, error) {
	return KakDecomposition{
		KVector: kVector(cfloat(-math.Pi/4), cfloat(0), cfloat(0)),
	}, nil
}

// VariableMSXX implements the variable-angle MolmerSorensen XX gate.
type VariableMSXX struct {
	Control int                        `yaml:"control"`
	Qubit   int                        `yaml:"qubit"`
	Theta   calculator.CalculatorFloat `yaml:"theta"`
}

func init() {
	register("VariableMSXX", func() Operation { return &VariableMSXX{Theta: cfloat(0)} })
}

func NewVariableMSXX(control, qubit int, theta calculator.CalculatorFloat) *VariableMSXX {
	return &VariableMSXX{Control: control, Qubit: qubit, Theta: theta}
}

func (g *VariableMSXX) Name() string                   { return "VariableMSXX" }
func (g *VariableMSXX) Tags() []string                 { return twoQubitTags("VariableMSXX") }
func (g *VariableMSXX) ControlIndex() int              { return g.Control }
func (g *VariableMSXX) TargetIndex() int               { return g.Qubit }
func (g *VariableMSXX) InvolvedQubits() InvolvedQubits { return QubitsOf(g.Control, g.Qubit) }
func (g *VariableMSXX) IsParametrized() bool           { return g.Theta.IsSymbolic() }
func (g *VariableMSXX) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &g.Theta)
}
func (g *VariableMSXX) RemapQubits(mapping map[int]int) error {
	g.Control = remapIndex(mapping, g.Control)
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *VariableMSXX) ToHQSLang() string {
	return hqsLangLine("VariableMSXX",
		[]calculator.CalculatorFloat{g.Theta}, []int{g.Control, g.Qubit})
}
func (g *VariableMSXX) Clone() Operation { clone := *g; return &clone }
func (g *VariableMSXX) Equal(other Operation) bool {
	o, ok := other.(*VariableMSXX)
	return ok && g.Control == o.Control && g.Qubit == o.Qubit && g.Theta.Equal(o.Theta)
}
func (g *VariableMSXX) Powered(p calculator.CalculatorFloat) Operation {
	clone := *g
	clone.Theta = g.Theta.Mul(p)
	return &clone
}

func (g *VariableMSXX) UnitaryMatrix() ([4][4]complex128, error) {
	vals, err := resolveFloats("VariableMSXX", g.Theta)
	if err != nil {
		return [4][4]complex128{}, err
	}
	cos := complex(math.Cos(vals[0]/2), 0)
	msin := complex(0, -math.Sin(vals[0]/2))
	return [4][4]complex128{
		{cos, 0, 0, msin},
		{0, cos, msin, 0},
		{0, msin, cos, 0},
		{msin, 0, 0, cos},
	}, nil
}

func (g *VariableMSXX) KakDecomposition() (KakDecomposition, error) {
	return KakDecomposition{
		KVector: kVector(g.Theta.Neg(), cfloat(0), cfloat(0)),
	}, nil
}

// ControlledPhaseShift implements the controlled phase rotation gate.
type ControlledPhaseShift struct {
	Control int                        `yaml:"control"`
	Qubit   int                        `yaml:"qubit"`
	Theta   calculator.CalculatorFloat `yaml:"theta"`
}

func init() {
	register("ControlledPhaseShift", func() Operation {
		return &ControlledPhaseShift{Theta: cfloat(0)}
	})
}

func NewControlledPhaseShift(control, qubit int, theta calculator.CalculatorFloat) *ControlledPhaseShift {
	return &ControlledPhaseShift{Control: control, Qubit: qubit, Theta: theta}
}

func (g *ControlledPhaseShift) Name() string   { return "ControlledPhaseShift" }
func (g *ControlledPhaseShift) Tags() []string { return twoQubitTags("ControlledPhaseShift") }
func (g *ControlledPhaseShift) ControlIndex() int { return g.Control }
func (g *ControlledPhaseShift) TargetIndex() int  { return g.Qubit }
func (g *ControlledPhaseShift) InvolvedQubits() InvolvedQubits {
	return QubitsOf(g.Control, g.Qubit)
}
func (g *ControlledPhaseShift) IsParametrized() bool { return g.Theta.IsSymbolic() }
func (g *ControlledPhaseShift) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &g.Theta)
}
func (g *ControlledPhaseShift) RemapQubits(mapping map[int]int) error {
	g.Control = remapIndex(mapping, g.Control)
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *ControlledPhaseShift) ToHQSLang() string {
	return hqsLangLine("ControlledPhaseShift",
		[]calculator.CalculatorFloat{g.Theta}, []int{g.Control, g.Qubit})
}
func (g *ControlledPhaseShift) Clone() Operation { clone := *g; return &clone }
func (g *ControlledPhaseShift) Equal(other Operation) bool {
	o, ok := other.(*ControlledPhaseShift)
	return ok && g.Control == o.Control && g.Qubit == o.Qubit && g.Theta.Equal(o.Theta)
}
func (g *ControlledPhaseShift) Powered(p calculator.CalculatorFloat) Operation {
	clone := *g
	clone.Theta = g.Theta.Mul(p)
	return &clone
}

func (g *ControlledPhaseShift) UnitaryMatrix() ([4][4]complex128, error) {
	vals, err := resolveFloats("ControlledPhaseShift", g.Theta)
	if err != nil {
		return [4][4]complex128{}, err
	}
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, cmplx.Exp(complex(0, vals[0]))},
	}, nil
}

func (g *ControlledPhaseShift) KakDecomposition() (KakDecomposition, error) {
	half := g.Theta.Div(cfloat(2))
	return KakDecomposition{
		GlobalPhase: phasePtr(g.Theta.Div(cfloat(4))),
		Before0:     []Operation{NewRotateZ(g.Control, half)},
		Before1:     []Operation{NewRotateZ(g.Qubit, half)},
		KVector:     kVector(cfloat(0), cfloat(0), g.Theta.Div(cfloat(4))),
	}, nil
}

// ControlledPauliY implements the controlled PauliY gate.
type ControlledPauliY struct {
	Control int `yaml:"control"`
	Qubit   int `yaml:"qubit"`
}

func init() { register("ControlledPauliY", func() Operation { return &ControlledPauliY{} }) }

func NewControlledPauliY(control, qubit int) *ControlledPauliY {
	return &ControlledPauliY{Control: control, Qubit: qubit}
}

func (g *ControlledPauliY) Name() string   { return "ControlledPauliY" }
func (g *ControlledPauliY) Tags() []string { return twoQubitTags("ControlledPauliY") }
func (g *ControlledPauliY) ControlIndex() int { return g.Control }
func (g *ControlledPauliY) TargetIndex() int  { return g.Qubit }
func (g *ControlledPauliY) InvolvedQubits() InvolvedQubits {
	return QubitsOf(g.Control, g.Qubit)
}
func (g *ControlledPauliY) IsParametrized() bool                      { return false }
func (g *ControlledPauliY) SubstituteParameters(map[string]float64) error { return nil }
func (g *ControlledPauliY) RemapQubits(mapping map[int]int) error {
	g.Control = remapIndex(mapping, g.Control)
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *ControlledPauliY) ToHQSLang() string {
	return hqsLangLine("ControlledPauliY", nil, []int{g.Control, g.Qubit})
}
func (g *ControlledPauliY) Clone() Operation { clone := *g; return &clone }
func (g *ControlledPauliY) Equal(other Operation) bool {
	o, ok := other.(*ControlledPauliY)
	return ok && g.Control == o.Control && g.Qubit == o.Qubit
}

func (g *ControlledPauliY) UnitaryMatrix() ([4][4]complex128, error) {
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, -1i},
		{0, 0, 1i, 0},
	}, nil
}

func (g *ControlledPauliY) KakDecomposition() (KakDecomposition, error) {
	return KakDecomposition{
		GlobalPhase: phasePtr(cfloat(math.Pi / 4)),
		Before0:     []Operation{NewRotateZ(g.Control, cfloat(math.Pi/2))},
		Before1: []Operation{
			NewRotateY(g.Qubit, cfloat(math.Pi/2)),
			NewRotateX(g.Qubit, cfloat(math.Pi/2)),
		},
		KVector: kVector(cfloat(0), cfloat(0), cfloat(math.Pi/4)),
		After1:  []Operation{NewRotateX(g.Qubit, cfloat(-math.Pi/2))},
	}, nil
}

// ControlledPauliZ implements the controlled PauliZ gate.
type ControlledPauliZ struct {
	Control int `yaml:"control"`
	Qubit   int `yaml:"qubit"`
}

func init() { register("ControlledPauliZ", func() Operation { return &ControlledPauliZ{} }) }

func NewControlledPauliZ(control, qubit int) *ControlledPauliZ {
	return &ControlledPauliZ{Control: control, Qubit: qubit}
}

func (g *ControlledPauliZ) Name() string   { return "ControlledPauliZ" }
func (g *ControlledPauliZ) Tags() []string { return twoQubitTags("ControlledPauliZ") }
func (g *ControlledPauliZ) ControlIndex() int { return g.Control }
func (g *ControlledPauliZ) TargetIndex() int  { return g.Qubit }
func (g *ControlledPauliZ) InvolvedQubits() InvolvedQubits {
	return QubitsOf(g.Control, g.Qubit)
}
func (g *ControlledPauliZ) IsParametrized() bool                      { return false }
func (g *ControlledPauliZ) SubstituteParameters(map[string]float64) error { return nil }
func (g *ControlledPauliZ) RemapQubits(mapping map[int]int) error {
	g.Control = remapIndex(mapping, g.Control)
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *ControlledPauliZ) ToHQSLang() string {
	return hqsLangLine("ControlledPauliZ", nil, []int{g.Control, g.Qubit})
}
func (g *ControlledPauliZ) Clone() Operation { clone := *g; return &clone }
func (g *ControlledPauliZ) Equal(other Operation) bool {
	o, ok := other.(*ControlledPauliZ)
	return ok && g.Control == o.Control && g.Qubit == o.Qubit
}

func (g *ControlledPauliZ) UnitaryMatrix() ([4][4]complex128, error) {
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, -1},
	}, nil
}

func (g *ControlledPauliZ) KakDecomposition() (KakDecomposition, error) {
	return KakDecomposition{
		GlobalPhase: phasePtr(cfloat(math.Pi / 4)),
		Before0:     []Operation{NewRotateZ(g.Control, cfloat(math.Pi/2))},
		Before1:     []Operation{NewRotateZ(g.Qubit, cfloat(math.Pi/2))},
		KVector:     kVector(cfloat(0), cfloat(0), cfloat(math.Pi/4)),
	}, nil
}

// XY implements the XY interaction exp(-i theta/4 (XX + YY)).
type XY struct {
	Control int                        `yaml:"control"`
	Qubit   int                        `yaml:"qubit"`
	Theta   calculator.CalculatorFloat `yaml:"theta"`
}

func init() { register("XY", func() Operation { return &XY{Theta: cfloat(0)} }) }

func NewXY(control, qubit int, theta calculator.CalculatorFloat) *XY {
	return &XY{Control: control, Qubit: qubit, Theta: theta}
}

func (g *XY) Name() string                   { return "XY" }
func (g *XY) Tags() []string                 { return twoQubitTags("XY") }
func (g *XY) ControlIndex() int              { return g.Control }
func (g *XY) TargetIndex() int               { return g.Qubit }
func (g *XY) InvolvedQubits() InvolvedQubits { return QubitsOf(g.Control, g.Qubit) }
func (g *XY) IsParametrized() bool           { return g.Theta.IsSymbolic() }
func (g *XY) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &g.Theta)
}
func (g *XY) RemapQubits(mapping map[int]int) error {
	g.Control = remapIndex(mapping, g.Control)
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *XY) ToHQSLang() string {
	return hqsLangLine("XY", []calculator.CalculatorFloat{g.Theta}, []int{g.Control, g.Qubit})
}
func (g *XY) Clone() Operation { clone := *g; return &clone }
func (g *XY) Equal(other Operation) bool {
	o, ok := other.(*XY)
	return ok && g.Control == o.Control && g.Qubit == o.Qubit && g.Theta.Equal(o.Theta)
}
func (g *XY) Powered(p calculator.CalculatorFloat) Operation {
	clone := *g
	clone.Theta = g.Theta.Mul(p)
	return &clone
}

func (g *XY) UnitaryMatrix() ([4][4]complex128, error) {
	vals, err := resolveFloats("XY", g.Theta)
	if err != nil {
		return [4][4]complex128{}, err
	}
	cos := complex(math.Cos(vals[0]/2), 0)
	isin := complex(0, math.Sin(vals[0]/2))
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, cos, isin, 0},
		{0, isin, cos, 0},
		{0, 0, 0, 1},
	}, nil
}

func (g *XY) KakDecomposition() (KakDecomposition, error) {
	quarter := g.Theta.Div(cfloat(4))
	return KakDecomposition{
		KVector: kVector(quarter, quarter, cfloat(0)),
	}, nil
}

// Fsim implements the fermionic simulation gate with hopping strength t,
// interaction strength U and Bogoliubov interaction strength Delta.
type Fsim struct {
	Qubit   int                        `yaml:"qubit"`
	Control int                        `yaml:"control"`
	U       calculator.CalculatorFloat `yaml:"U"`
	T       calculator.CalculatorFloat `yaml:"t"`
	Delta   calculator.CalculatorFloat `yaml:"Delta"`
}

func init() {
	register("Fsim", func() Operation {
		return &Fsim{U: cfloat(0), T: cfloat(0), Delta: cfloat(0)}
	})
}

func NewFsim(qubit, control int, u, t, delta calculator.CalculatorFloat) *Fsim {
	return &Fsim{Qubit: qubit, Control: control, U: u, T: t, Delta: delta}
}

func (g *Fsim) Name() string                   { return "Fsim" }
func (g *Fsim) Tags() []string                 { return twoQubitTags("Fsim") }
func (g *Fsim) ControlIndex() int              { return g.Control }
func (g *Fsim) TargetIndex() int               { return g.Qubit }
func (g *Fsim) InvolvedQubits() InvolvedQubits { return QubitsOf(g.Control, g.Qubit) }
func (g *Fsim) IsParametrized() bool           { return anySymbolic(g.U, g.T, g.Delta) }
func (g *Fsim) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &g.U, &g.T, &g.Delta)
}
func (g *Fsim) RemapQubits(mapping map[int]int) error {
	g.Control = remapIndex(mapping, g.Control)
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *Fsim) ToHQSLang() string {
	return hqsLangLine("Fsim",
		[]calculator.CalculatorFloat{g.U, g.T, g.Delta}, []int{g.Qubit, g.Control})
}
func (g *Fsim) Clone() Operation { clone := *g; return &clone }
func (g *Fsim) Equal(other Operation) bool {
	o, ok := other.(*Fsim)
	return ok && g.Control == o.Control && g.Qubit == o.Qubit &&
		g.U.Equal(o.U) && g.T.Equal(o.T) && g.Delta.Equal(o.Delta)
}

func (g *Fsim) UnitaryMatrix() ([4][4]complex128, error) {
	vals, err := resolveFloats("Fsim", g.U, g.T, g.Delta)
	if err != nil {
		return [4][4]complex128{}, err
	}
	u, t, delta := vals[0], vals[1], vals[2]
	expU := cmplx.Exp(complex(0, -u))
	cosT := complex(math.Cos(t), 0)
	msinT := complex(0, -math.Sin(t))
	cosD := complex(math.Cos(delta), 0)
	sinD := math.Sin(delta)
	return [4][4]complex128{
		{cosD, 0, 0, complex(0, sinD)},
		{0, msinT, cosT, 0},
		{0, cosT, msinT, 0},
		{complex(0, -sinD) * expU, 0, 0, -expU * cosD},
	}, nil
}

func (g *Fsim) KakDecomposition() (KakDecomposition, error) {
	theta := g.U.Div(cfloat(2)).Add(cfloat(math.Pi / 2)).Neg()
	return KakDecomposition{
		GlobalPhase: phasePtr(g.U.Div(cfloat(4)).Add(cfloat(math.Pi / 2)).Neg()),
		Before0:     []Operation{NewRotateZ(g.Qubit, theta)},
		Before1:     []Operation{NewRotateZ(g.Control, theta)},
		KVector: kVector(
			cfloat(math.Pi/4).Sub(g.T.Div(cfloat(2))).Add(g.Delta.Div(cfloat(2))),
			cfloat(math.Pi/4).Sub(g.T.Div(cfloat(2))).Sub(g.Delta.Div(cfloat(2))),
			g.U.Div(cfloat(4)).Neg(),
		),
	}, nil
}

// Qsim implements the spin swap simulation gate for prefactors x, y, z of
// the XX, YY, ZZ Pauli products.
type Qsim struct {
	Qubit   int                        `yaml:"qubit"`
	Control int                        `yaml:"control"`
	X       calculator.CalculatorFloat `yaml:"x"`
	Y       calculator.CalculatorFloat `yaml:"y"`
	Z       calculator.CalculatorFloat `yaml:"z"`
}

func init() {
	register("Qsim", func() Operation {
		return &Qsim{X: cfloat(0), Y: cfloat(0), Z: cfloat(0)}
	})
}

func NewQsim(qubit, control int, x, y, z calculator.CalculatorFloat) *Qsim {
	return &Qsim{Qubit: qubit, Control: control, X: x, Y: y, Z: z}
}

func (g *Qsim) Name() string                   { return "Qsim" }
func (g *Qsim) Tags() []string                 { return twoQubitTags("Qsim") }
func (g *Qsim) ControlIndex() int              { return g.Control }
func (g *Qsim) TargetIndex() int               { return g.Qubit }
func (g *Qsim) InvolvedQubits() InvolvedQubits { return QubitsOf(g.Control, g.Qubit) }
func (g *Qsim) IsParametrized() bool           { return anySymbolic(g.X, g.Y, g.Z) }
func (g *Qsim) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &g.X, &g.Y, &g.Z)
}
func (g *Qsim) RemapQubits(mapping map[int]int) error {
	g.Control = remapIndex(mapping, g.Control)
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *Qsim) ToHQSLang() string {
	return hqsLangLine("Qsim",
		[]calculator.CalculatorFloat{g.X, g.Y, g.Z}, []int{g.Qubit, g.Control})
}
func (g *Qsim) Clone() Operation { clone := *g; return &clone }
func (g *Qsim) Equal(other Operation) bool {
	o, ok := other.(*Qsim)
	return ok && g.Control == o.Control && g.Qubit == o.Qubit &&
		g.X.Equal(o.X) && g.Y.Equal(o.Y) && g.Z.Equal(o.Z)
}

func (g *Qsim) UnitaryMatrix() ([4][4]complex128, error) {
	vals, err := resolveFloats("Qsim", g.X, g.Y, g.Z)
	if err != nil {
		return [4][4]complex128{}, err
	}
	x, y, z := vals[0], vals[1], vals[2]
	expP := cmplx.Exp(complex(0, z))
	expM := cmplx.Exp(complex(0, -z))
	cosM := complex(math.Cos(x-y), 0) * expM
	sinM := complex(0, -math.Sin(x-y)) * expM
	cosP := complex(math.Cos(x+y), 0) * expP
	sinP := complex(0, -math.Sin(x+y)) * expP
	return [4][4]complex128{
		{cosM, 0, 0, sinM},
		{0, sinP, cosP, 0},
		{0, cosP, sinP, 0},
		{sinM, 0, 0, cosM},
	}, nil
}

func (g *Qsim) KakDecomposition() (KakDecomposition, error) {
	return KakDecomposition{
		GlobalPhase: phasePtr(cfloat(-math.Pi / 4)),
		KVector: kVector(
			g.X.Neg().Add(cfloat(math.Pi/4)),
			g.Y.Neg().Add(cfloat(math.Pi/4)),
			g.Z.Neg().Add(cfloat(math.Pi/4)),
		),
	}, nil
}

// SpinInteraction implements the generalized anisotropic XYZ Heisenberg
// interaction exp(-i (x XX + y YY + z ZZ)).
type SpinInteraction struct {
	Qubit   int                        `yaml:"qubit"`
	Control int                        `yaml:"control"`
	X       calculator.CalculatorFloat `yaml:"x"`
	Y       calculator.CalculatorFloat `yaml:"y"`
	Z       calculator.CalculatorFloat `yaml:"z"`
}

func init() {
	register("SpinInteraction", func() Operation {
		return &SpinInteraction{X: cfloat(0), Y: cfloat(0), Z: cfloat(0)}
	})
}

func NewSpinInteraction(qubit, control int, x, y, z calculator.CalculatorFloat) *SpinInteraction {
	return &SpinInteraction{Qubit: qubit, Control: control, X: x, Y: y, Z: z}
}

func (g *SpinInteraction) Name() string   { return "SpinInteraction" }
func (g *SpinInteraction) Tags() []string { return twoQubitTags("SpinInteraction") }
func (g *SpinInteraction) ControlIndex() int { return g.Control }
func (g *SpinInteraction) TargetIndex() int  { return g.Qubit }
func (g *SpinInteraction) InvolvedQubits() InvolvedQubits {
	return QubitsOf(g.Control, g.Qubit)
}
func (g *SpinInteraction) IsParametrized() bool { return anySymbolic(g.X, g.Y, g.Z) }
func (g *SpinInteraction) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &g.X, &g.Y, &g.Z)
}
func (g *SpinInteraction) RemapQubits(mapping map[int]int) error {
	g.Control = remapIndex(mapping, g.Control)
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *SpinInteraction) ToHQSLang() string {
	return hqsLangLine("SpinInteraction",
		[]calculator.CalculatorFloat{g.X, g.Y, g.Z}, []int{g.Qubit, g.Control})
}
func (g *SpinInteraction) Clone() Operation { clone := *g; return &clone }
func (g *SpinInteraction) Equal(other Operation) bool {
	o, ok := other.(*SpinInteraction)
	return ok && g.Control == o.Control && g.Qubit == o.Qubit &&
		g.X.Equal(o.X) && g.Y.Equal(o.Y) && g.Z.Equal(o.Z)
}

func (g *SpinInteraction) UnitaryMatrix() ([4][4]complex128, error) {
	vals, err := resolveFloats("SpinInteraction", g.X, g.Y, g.Z)
	if err != nil {
		return [4][4]complex128{}, err
	}
	x, y, z := vals[0], vals[1], vals[2]
	expP := cmplx.Exp(complex(0, z))
	expM := cmplx.Exp(complex(0, -z))
	cosM := complex(math.Cos(x-y), 0) * expM
	sinM := complex(0, -math.Sin(x-y)) * expM
	cosP := complex(math.Cos(x+y), 0) * expP
	sinP := complex(0, -math.Sin(x+y)) * expP
	return [4][4]complex128{
		{cosM, 0, 0, sinM},
		{0, cosP, sinP, 0},
		{0, sinP, cosP, 0},
		{sinM, 0, 0, cosM},
	}, nil
}

func (g *SpinInteraction) KakDecomposition() (KakDecomposition, error) {
	return KakDecomposition{
		KVector: kVector(g.X.Neg(), g.Y.Neg(), g.Z.Neg()),
	}, nil
}

// Bogoliubov implements the Bogoliubov-DeGennes interaction gate for a
// complex interaction strength Delta.
type Bogoliubov struct {
	I         int                        `yaml:"i"`
	J         int                        `yaml:"j"`
	DeltaReal calculator.CalculatorFloat `yaml:"Delta_real"`
	DeltaImag calculator.CalculatorFloat `yaml:"Delta_imag"`
}

func init() {
	register("Bogoliubov", func() Operation {
		return &Bogoliubov{DeltaReal: cfloat(0), DeltaImag: cfloat(0)}
	})
}

func NewBogoliubov(i, j int, deltaReal, deltaImag calculator.CalculatorFloat) *Bogoliubov {
	return &Bogoliubov{I: i, J: j, DeltaReal: deltaReal, DeltaImag: deltaImag}
}

func (g *Bogoliubov) Name() string                   { return "Bogoliubov" }
func (g *Bogoliubov) Tags() []string                 { return twoQubitTags("Bogoliubov") }
func (g *Bogoliubov) ControlIndex() int              { return g.I }
func (g *Bogoliubov) TargetIndex() int               { return g.J }
func (g *Bogoliubov) InvolvedQubits() InvolvedQubits { return QubitsOf(g.I, g.J) }
func (g *Bogoliubov) IsParametrized() bool {
	return anySymbolic(g.DeltaReal, g.DeltaImag)
}
func (g *Bogoliubov) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &g.DeltaReal, &g.DeltaImag)
}
func (g *Bogoliubov) RemapQubits(mapping map[int]int) error {
	g.I = remapIndex(mapping, g.I)
	g.J = remapIndex(mapping, g.J)
	return nil
}
func (g *Bogoliubov) ToHQSLang() string {
	return hqsLangLine("Bogoliubov",
		[]calculator.CalculatorFloat{g.DeltaReal, g.DeltaImag}, []int{g.I, g.J})
}
func (g *Bogoliubov) Clone() Operation { clone := *g; return &clone }
func (g *Bogoliubov) Equal(other Operation) bool {
	o, ok := other.(*Bogoliubov)
	return ok && g.I == o.I && g.J == o.J &&
		g.DeltaReal.Equal(o.DeltaReal) && g.DeltaImag.Equal(o.DeltaImag)
}
func (g *Bogoliubov) Powered(p calculator.CalculatorFloat) Operation {
	clone := *g
	clone.DeltaReal = g.DeltaReal.Mul(p)
	clone.DeltaImag = g.DeltaImag.Mul(p)
	return &clone
}

func (g *Bogoliubov) UnitaryMatrix() ([4][4]complex128, error) {
	vals, err := resolveFloats("Bogoliubov", g.DeltaReal, g.DeltaImag)
	if err != nil {
		return [4][4]complex128{}, err
	}
	delta := complex(vals[0], vals[1])
	abs := cmplx.Abs(delta)
	arg := cmplx.Phase(delta)
	cos := complex(math.Cos(abs), 0)
	sin := complex(math.Sin(abs), 0)
	return [4][4]complex128{
		{cos, 0, 0, sin * (1i * cmplx.Exp(complex(0, arg)))},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{sin * (1i * cmplx.Exp(complex(0, -arg))), 0, 0, cos},
	}, nil
}

func (g *Bogoliubov) KakDecomposition() (KakDecomposition, error) {
	vals, err := resolveFloats("Bogoliubov", g.DeltaReal, g.DeltaImag)
	if err != nil {
		return KakDecomposition{}, err
	}
	delta := complex(vals[0], vals[1])
	abs := cmplx.Abs(delta)
	arg := cmplx.Phase(delta)
	return KakDecomposition{
		Before0: []Operation{NewRotateZ(g.I, cfloat(-arg))},
		KVector: kVector(cfloat(-abs/2), cfloat(abs/2), cfloat(0)),
		After0:  []Operation{NewRotateZ(g.I, cfloat(arg))},
	}, nil
}

// GivensRotation implements the Givens rotation interaction in big endian
// convention, a single-particle rotation followed by a phase shift.
type GivensRotation struct {
	Qubit   int                        `yaml:"qubit"`
	Control int                        `yaml:"control"`
	Theta   calculator.CalculatorFloat `yaml:"theta"`
	Phi     calculator.CalculatorFloat `yaml:"phi"`
}

func init() {
	register("GivensRotation", func() Operation {
		return &GivensRotation{Theta: cfloat(0), Phi: cfloat(0)}
	})
}

func NewGivensRotation(qubit, control int, theta, phi calculator.CalculatorFloat) *GivensRotation {
	return &GivensRotation{Qubit: qubit, Control: control, Theta: theta, Phi: phi}
}

func (g *GivensRotation) Name() string   { return "GivensRotation" }
func (g *GivensRotation) Tags() []string { return twoQubitTags("GivensRotation") }
func (g *GivensRotation) ControlIndex() int { return g.Control }
func (g *GivensRotation) TargetIndex() int  { return g.Qubit }
func (g *GivensRotation) InvolvedQubits() InvolvedQubits {
	return QubitsOf(g.Control, g.Qubit)
}
func (g *GivensRotation) IsParametrized() bool { return anySymbolic(g.Theta, g.Phi) }
func (g *GivensRotation) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &g.Theta, &g.Phi)
}
func (g *GivensRotation) RemapQubits(mapping map[int]int) error {
	g.Control = remapIndex(mapping, g.Control)
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *GivensRotation) ToHQSLang() string {
	return hqsLangLine("GivensRotation",
		[]calculator.CalculatorFloat{g.Theta, g.Phi}, []int{g.Qubit, g.Control})
}
func (g *GivensRotation) Clone() Operation { clone := *g; return &clone }
func (g *GivensRotation) Equal(other Operation) bool {
	o, ok := other.(*GivensRotation)
	return ok && g.Control == o.Control && g.Qubit == o.Qubit &&
		g.Theta.Equal(o.Theta) && g.Phi.Equal(o.Phi)
}

func (g *GivensRotation) UnitaryMatrix() ([4][4]complex128, error) {
	vals, err := resolveFloats("GivensRotation", g.Theta, g.Phi)
	if err != nil {
		return [4][4]complex128{}, err
	}
	theta, phi := vals[0], vals[1]
	expPhi := cmplx.Exp(complex(0, phi))
	cos := complex(math.Cos(theta), 0)
	sin := complex(math.Sin(theta), 0)
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, cos * expPhi, sin, 0},
		{0, -sin * expPhi, cos, 0},
		{0, 0, 0, expPhi},
	}, nil
}

func (g *GivensRotation) KakDecomposition() (KakDecomposition, error) {
	half := g.Theta.Div(cfloat(2))
	return KakDecomposition{
		GlobalPhase: phasePtr(g.Phi.Div(cfloat(2))),
		Before0:     []Operation{NewRotateZ(g.Qubit, g.Phi.Mul(cfloat(math.Pi/2)))},
		KVector:     kVector(half, half, cfloat(0)),
		After0:      []Operation{NewRotateZ(g.Qubit, cfloat(-math.Pi/2))},
	}, nil
}

// GivensRotationLittleEndian implements the Givens rotation interaction in
// little endian convention, a phase shift followed by a single-particle
// rotation.
type GivensRotationLittleEndian struct {
	Qubit   int                        `yaml:"qubit"`
	Control int                        `yaml:"control"`
	Theta   calculator.CalculatorFloat `yaml:"theta"`
	Phi     calculator.CalculatorFloat `yaml:"phi"`
}

func init() {
	register("GivensRotationLittleEndian", func() Operation {
		return &GivensRotationLittleEndian{Theta: cfloat(0), Phi: cfloat(0)}
	})
}

func NewGivensRotationLittleEndian(
	qubit, control int,
	theta, phi calculator.CalculatorFloat,
) *GivensRotationLittleEndian {
	return &GivensRotationLittleEndian{Qubit: qubit, Control: control, Theta: theta, Phi: phi}
}

func (g *GivensRotationLittleEndian) Name() string { return "GivensRotationLittleEndian" }
func (g *GivensRotationLittleEndian) Tags() []string {
	return twoQubitTags("GivensRotationLittleEndian")
}
func (g *GivensRotationLittleEndian) ControlIndex() int { return g.Control }
func (g *GivensRotationLittleEndian) TargetIndex() int  { return g.Qubit }
func (g *GivensRotationLittleEndian) InvolvedQubits() InvolvedQubits {
	return QubitsOf(g.Control, g.Qubit)
}
func (g *GivensRotationLittleEndian) IsParametrized() bool {
	return anySymbolic(g.Theta, g.Phi)
}
func (g *GivensRotationLittleEndian) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &g.Theta, &g.Phi)
}
func (g *GivensRotationLittleEndian) RemapQubits(mapping map[int]int) error {
	g.Control = remapIndex(mapping, g.Control)
	g.Qubit = remapIndex(mapping, g.Qubit)
	return nil
}
func (g *GivensRotationLittleEndian) ToHQSLang() string {
	return hqsLangLine("GivensRotationLittleEndian",
		[]calculator.CalculatorFloat{g.Theta, g.Phi}, []int{g.Qubit, g.Control})
}
func (g *GivensRotationLittleEndian) Clone() Operation { clone := *g; return &clone }
func (g *GivensRotationLittleEndian) Equal(other Operation) bool {
	o, ok := other.(*GivensRotationLittleEndian)
	return ok && g.Control == o.Control && g.Qubit == o.Qubit &&
		g.Theta.Equal(o.Theta) && g.Phi.Equal(o.Phi)
}

func (g *GivensRotationLittleEndian) UnitaryMatrix() ([4][4]complex128, error) {
	vals, err := resolveFloats("GivensRotationLittleEndian", g.Theta, g.Phi)
	if err != nil {
		return [4][4]complex128{}, err
	}
	theta, phi := vals[0], vals[1]
	expPhi := cmplx.Exp(complex(0, phi))
	cos := complex(math.Cos(theta), 0)
	sin := complex(math.Sin(theta), 0)
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, cos, sin, 0},
		{0, -sin * expPhi, cos * expPhi, 0},
		{0, 0, 0, expPhi},
	}, nil
}

func (g *GivensRotationLittleEndian) KakDecomposition() (KakDecomposition, error) {
	half := g.Theta.Div(cfloat(2))
	return KakDecomposition{
		GlobalPhase: phasePtr(g.Phi.Div(cfloat(2))),
		Before1:     []Operation{NewRotateZ(g.Control, cfloat(-math.Pi/2))},
		KVector:     kVector(half, half, cfloat(0)),
		After1:      []Operation{NewRotateZ(g.Control, g.Phi.Add(cfloat(math.Pi/2)))},
	}, nil
}

// PMInteraction implements the transversal interaction between two qubits,
// exp(-i theta (X_i X_j + Y_i Y_j)) in the plus-minus convention.
type PMInteraction struct {
	I     int                        `yaml:"i"`
	J     int                        `yaml:"j"`
	Theta calculator.CalculatorFloat `yaml:"theta"`
}

func init() {
	register("PMInteraction", func() Operation { return &PMInteraction{Theta: cfloat(0)} })
}

func NewPMInteraction(i, j int, theta calculator.CalculatorFloat) *PMInteraction {
	return &PMInteraction{I: i, J: j, Theta: theta}
}

func (g *PMInteraction) Name() string                   { return "PMInteraction" }
func (g *PMInteraction) Tags() []string                 { return twoQubitTags("PMInteraction") }
func (g *PMInteraction) ControlIndex() int              { return g.I }
func (g *PMInteraction) TargetIndex() int               { return g.J }
func (g *PMInteraction) InvolvedQubits() InvolvedQubits { return QubitsOf(g.I, g.J) }
func (g *PMInteraction) IsParametrized() bool           { return g.Theta.IsSymbolic() }
func (g *PMInteraction) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &g.Theta)
}
func (g *PMInteraction) RemapQubits(mapping map[int]int) error {
	g.I = remapIndex(mapping, g.I)
	g.J = remapIndex(mapping, g.J)
	return nil
}
func (g *PMInteraction) ToHQSLang() string {
	return hqsLangLine("PMInteraction",
		[]calculator.CalculatorFloat{g.Theta}, []int{g.I, g.J})
}
func (g *PMInteraction) Clone() Operation { clone := *g; return &clone }
func (g *PMInteraction) Equal(other Operation) bool {
	o, ok := other.(*PMInteraction)
	return ok && g.I == o.I && g.J == o.J && g.Theta.Equal(o.Theta)
}
func (g *PMInteraction) Powered(p calculator.CalculatorFloat) Operation {
	clone := *g
	clone.Theta = g.Theta.Mul(p)
	return &clone
}

func (g *PMInteraction) UnitaryMatrix() ([4][4]complex128, error) {
	vals, err := resolveFloats("PMInteraction", g.Theta)
	if err != nil {
		return [4][4]complex128{}, err
	}
	cos := complex(math.Cos(vals[0]), 0)
	msin := complex(0, -math.Sin(vals[0]))
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, cos, msin, 0},
		{0, msin, cos, 0},
		{0, 0, 0, 1},
	}, nil
}

func (g *PMInteraction) KakDecomposition() (KakDecomposition, error) {
	mhalf := g.Theta.Div(cfloat(2)).Neg()
	return KakDecomposition{
		KVector: kVector(mhalf, mhalf, cfloat(0)),
	}, nil
}

// ComplexPMInteraction implements the complex hopping interaction between
// two qubits for a complex hopping strength theta.
type ComplexPMInteraction struct {
	I         int                        `yaml:"i"`
	J         int                        `yaml:"j"`
	ThetaReal calculator.CalculatorFloat `yaml:"theta_real"`
	ThetaImag calculator.CalculatorFloat `yaml:"theta_imag"`
}

func init() {
	register("ComplexPMInteraction", func() Operation {
		return &ComplexPMInteraction{ThetaReal: cfloat(0), ThetaImag: cfloat(0)}
	})
}

func NewComplexPMInteraction(i, j int, thetaReal, thetaImag calculator.CalculatorFloat) *ComplexPMInteraction {
	return &ComplexPMInteraction{I: i, J: j, ThetaReal: thetaReal, ThetaImag: thetaImag}
}

func (g *ComplexPMInteraction) Name() string   { return "ComplexPMInteraction" }
func (g *ComplexPMInteraction) Tags() []string { return twoQubitTags("ComplexPMInteraction") }
func (g *ComplexPMInteraction) ControlIndex() int { return g.I }
func (g *ComplexPMInteraction) TargetIndex() int  { return g.J }
func (g *ComplexPMInteraction) InvolvedQubits() InvolvedQubits { return QubitsOf(g.I, g.J) }
func (g *ComplexPMInteraction) IsParametrized() bool {
	return anySymbolic(g.ThetaReal, g.ThetaImag)
}
func (g *ComplexPMInteraction) SubstituteParameters(b map[string]float64) error {
	return substituteAll(b, &g.ThetaReal, &g.ThetaImag)
}
func (g *ComplexPMInteraction) RemapQubits(mapping map[int]int) error {
	g.I = remapIndex(mapping, g.I)
	g.J = remapIndex(mapping, g.J)
	return nil
}
func (g *ComplexPMInteraction) ToHQSLang() string {
	return hqsLangLine("ComplexPMInteraction",
		[]calculator.CalculatorFloat{g.ThetaReal, g.ThetaImag}, []int{g.I, g.J})
}
func (g *ComplexPMInteraction) Clone() Operation { clone := *g; return &clone }
func (g *ComplexPMInteraction) Equal(other Operation) bool {
	o, ok := other.(*ComplexPMInteraction)
	return ok && g.I == o.I && g.J == o.J &&
		g.ThetaReal.Equal(o.ThetaReal) && g.ThetaImag.Equal(o.ThetaImag)
}
func (g *ComplexPMInteraction) Powered(p calculator.CalculatorFloat) Operation {
	clone := *g
	clone.ThetaReal = g.ThetaReal.Mul(p)
	clone.ThetaImag = g.ThetaImag.Mul(p)
	return &clone
}

func (g *ComplexPMInteraction) UnitaryMatrix() ([4][4]complex128, error) {
	vals, err := resolveFloats("ComplexPMInteraction", g.ThetaReal, g.ThetaImag)
	if err != nil {
		return [4][4]complex128{}, err
	}
	theta := complex(vals[0], vals[1])
	abs := cmplx.Abs(theta)
	arg := cmplx.Phase(theta)
	cos := complex(math.Cos(abs), 0)
	sin := complex(math.Sin(abs), 0)
	return [4][4]complex128{
		{1, 0, 0, 0},
		{0, cos, -1i * cmplx.Exp(complex(0, -arg)) * sin, 0},
		{0, -1i * cmplx.Exp(complex(0, arg)) * sin, cos, 0},
		{0, 0, 0, 1},
	}, nil
}

func (g *ComplexPMInteraction) KakDecomposition() (KakDecomposition, error) {
	vals, err := resolveFloats("ComplexPMInteraction", g.ThetaReal, g.ThetaImag)
	if err != nil {
		return KakDecomposition{}, err
	}
	theta := complex(vals[0], vals[1])
	abs := cmplx.Abs(theta)
	arg := cmplx.Phase(theta)
	return KakDecomposition{
		Before0: []Operation{NewRotateZ(g.I, cfloat(arg))},
		KVector: kVector(cfloat(-abs/2), cfloat(-abs/2), cfloat(0)),
		After0:  []Operation{NewRotateZ(g.I, cfloat(-arg))},
	}, nil
}
