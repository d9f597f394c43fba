package operations

import (
	"fmt"
	"sort"
	"strings"
)

// MeasureQubit measures a single qubit in the sigma-z basis and stores the
// result at readout_index of a previously defined bit register.
type MeasureQubit struct {
	Qubit        int    `yaml:"qubit"`
	Readout      string `yaml:"readout"`
	ReadoutIndex int    `yaml:"readout_index"`
}

func init() {
	register("MeasureQubit", func() Operation { return &MeasureQubit{Readout: "ro"} })
}

// NewMeasureQubit measures qubit into readout, storing the result at the
// index equal to the qubit number.
func NewMeasureQubit(qubit int, readout string) *MeasureQubit {
	return &MeasureQubit{Qubit: qubit, Readout: readout, ReadoutIndex: qubit}
}

// NewMeasureQubitWithIndex measures qubit into readout at an explicit index.
func NewMeasureQubitWithIndex(qubit int, readout string, readoutIndex int) *MeasureQubit {
	return &MeasureQubit{Qubit: qubit, Readout: readout, ReadoutIndex: readoutIndex}
}

func (m *MeasureQubit) Name() string { return "MeasureQubit" }
func (m *MeasureQubit) Tags() []string {
	return []string{"Operation", "Measurement", "MeasureQubit"}
}
func (m *MeasureQubit) InvolvedQubits() InvolvedQubits            { return QubitsOf(m.Qubit) }
func (m *MeasureQubit) IsParametrized() bool                      { return false }
func (m *MeasureQubit) SubstituteParameters(map[string]float64) error { return nil }
func (m *MeasureQubit) RemapQubits(mapping map[int]int) error {
	m.Qubit = remapIndex(mapping, m.Qubit)
	return nil
}
func (m *MeasureQubit) ToHQSLang() string {
	return fmt.Sprintf("MeasureQubit %d %s[%d]", m.Qubit, m.Readout, m.ReadoutIndex)
}
func (m *MeasureQubit) Clone() Operation { clone := *m; return &clone }
func (m *MeasureQubit) Equal(other Operation) bool {
	o, ok := other.(*MeasureQubit)
	return ok && m.Qubit == o.Qubit && m.Readout == o.Readout &&
		m.ReadoutIndex == o.ReadoutIndex
}

func mappingSuffix(mapping map[int]int) string {
	if mapping == nil {
		return ""
	}
	keys := make([]int, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	var b strings.Builder
	b.WriteString("(")
	for _, k := range keys {
		fmt.Fprintf(&b, "%d:%d,", k, mapping[k])
	}
	b.WriteString(")")
	return b.String()
}

func remapMappingKeys(mapping map[int]int, remap map[int]int) map[int]int {
	if mapping == nil {
		return nil
	}
	out := make(map[int]int, len(mapping))
	for k, v := range mapping {
		out[remapIndex(remap, k)] = v
	}
	return out
}

// PragmaGetStateVector snapshots the state vector of the quantum register
// into a complex readout register.
type PragmaGetStateVector struct {
	Readout      string        `yaml:"readout"`
	QubitMapping map[int]int   `yaml:"qubit_mapping"`
	Circuit      OperationList `yaml:"circuit"`
}

func init() {
	register("PragmaGetStateVector", func() Operation {
		return &PragmaGetStateVector{Readout: "ro"}
	})
}

func NewPragmaGetStateVector(readout string, circuit OperationList) *PragmaGetStateVector {
	return &PragmaGetStateVector{Readout: readout, Circuit: circuit}
}

func (p *PragmaGetStateVector) Name() string { return "PragmaGetStateVector" }
func (p *PragmaGetStateVector) Tags() []string {
	return []string{"Operation", "Measurement", "Pragma", "PragmaGetStateVector"}
}
func (p *PragmaGetStateVector) InvolvedQubits() InvolvedQubits            { return QubitsAll() }
func (p *PragmaGetStateVector) IsParametrized() bool                      { return false }
func (p *PragmaGetStateVector) SubstituteParameters(map[string]float64) error { return nil }
func (p *PragmaGetStateVector) RemapQubits(mapping map[int]int) error {
	p.QubitMapping = remapMappingKeys(p.QubitMapping, mapping)
	return p.Circuit.RemapQubits(mapping)
}
func (p *PragmaGetStateVector) ToHQSLang() string {
	return "PragmaGetStateVector" + mappingSuffix(p.QubitMapping) + " " + p.Readout
}
func (p *PragmaGetStateVector) Clone() Operation {
	clone := *p
	clone.Circuit = p.Circuit.Clone()
	return &clone
}
func (p *PragmaGetStateVector) Equal(other Operation) bool {
	o, ok := other.(*PragmaGetStateVector)
	return ok && p.Readout == o.Readout && p.Circuit.Equal(o.Circuit)
}

// PragmaGetDensityMatrix snapshots the density matrix of the quantum
// register into a complex readout register.
type PragmaGetDensityMatrix struct {
	Readout      string        `yaml:"readout"`
	QubitMapping map[int]int   `yaml:"qubit_mapping"`
	Circuit      OperationList `yaml:"circuit"`
}

func init() {
	register("PragmaGetDensityMatrix", func() Operation {
		return &PragmaGetDensityMatrix{Readout: "ro"}
	})
}

func NewPragmaGetDensityMatrix(readout string, circuit OperationList) *PragmaGetDensityMatrix {
	return &PragmaGetDensityMatrix{Readout: readout, Circuit: circuit}
}

func (p *PragmaGetDensityMatrix) Name() string { return "PragmaGetDensityMatrix" }
func (p *PragmaGetDensityMatrix) Tags() []string {
	return []string{"Operation", "Measurement", "Pragma", "PragmaGetDensityMatrix"}
}
func (p *PragmaGetDensityMatrix) InvolvedQubits() InvolvedQubits            { return QubitsAll() }
func (p *PragmaGetDensityMatrix) IsParametrized() bool                      { return false }
func (p *PragmaGetDensityMatrix) SubstituteParameters(map[string]float64) error { return nil }
func (p *PragmaGetDensityMatrix) RemapQubits(mapping map[int]int) error {
	p.QubitMapping = remapMappingKeys(p.QubitMapping, mapping)
	return p.Circuit.RemapQubits(mapping)
}
func (p *PragmaGetDensityMatrix) ToHQSLang() string {
	return "PragmaGetDensityMatrix" + mappingSuffix(p.QubitMapping) + " " + p.Readout
}
func (p *PragmaGetDensityMatrix) Clone() Operation {
	clone := *p
	clone.Circuit = p.Circuit.Clone()
	return &clone
}
func (p *PragmaGetDensityMatrix) Equal(other Operation) bool {
	o, ok := other.(*PragmaGetDensityMatrix)
	return ok && p.Readout == o.Readout && p.Circuit.Equal(o.Circuit)
}

// PragmaGetOccupationProbability stores the probabilities of finding the
// quantum register in each sigma-z basis state into a float readout
// register.
type PragmaGetOccupationProbability struct {
	Readout      string      `yaml:"readout"`
	QubitMapping map[int]int `yaml:"qubit_mapping"`
}

func init() {
	register("PragmaGetOccupationProbability", func() Operation {
		return &PragmaGetOccupationProbability{Readout: "ro"}
	})
}

func NewPragmaGetOccupationProbability(readout string) *PragmaGetOccupationProbability {
	return &PragmaGetOccupationProbability{Readout: readout}
}

func (p *PragmaGetOccupationProbability) Name() string {
	return "PragmaGetOccupationProbability"
}
func (p *PragmaGetOccupationProbability) Tags() []string {
	return []string{"Operation", "Measurement", "Pragma", "PragmaGetOccupationProbability"}
}
func (p *PragmaGetOccupationProbability) InvolvedQubits() InvolvedQubits { return QubitsAll() }
func (p *PragmaGetOccupationProbability) IsParametrized() bool           { return false }
func (p *PragmaGetOccupationProbability) SubstituteParameters(map[string]float64) error {
	return nil
}
func (p *PragmaGetOccupationProbability) RemapQubits(mapping map[int]int) error {
	p.QubitMapping = remapMappingKeys(p.QubitMapping, mapping)
	return nil
}
func (p *PragmaGetOccupationProbability) ToHQSLang() string {
	return "PragmaGetOccupationProbability" + mappingSuffix(p.QubitMapping) + " " + p.Readout
}
func (p *PragmaGetOccupationProbability) Clone() Operation { clone := *p; return &clone }
func (p *PragmaGetOccupationProbability) Equal(other Operation) bool {
	o, ok := other.(*PragmaGetOccupationProbability)
	return ok && p.Readout == o.Readout
}

// PragmaGetRotatedOccupationProbability stores the basis state occupation
// probabilities after applying a basis rotation circuit to a copy of the
// quantum register.
type PragmaGetRotatedOccupationProbability struct {
	Readout string        `yaml:"readout"`
	Circuit OperationList `yaml:"circuit"`
}

func init() {
	register("PragmaGetRotatedOccupationProbability", func() Operation {
		return &PragmaGetRotatedOccupationProbability{Readout: "ro"}
	})
}

func NewPragmaGetRotatedOccupationProbability(
	readout string,
	circuit OperationList,
) *PragmaGetRotatedOccupationProbability {
	return &PragmaGetRotatedOccupationProbability{Readout: readout, Circuit: circuit}
}

func (p *PragmaGetRotatedOccupationProbability) Name() string {
	return "PragmaGetRotatedOccupationProbability"
}
func (p *PragmaGetRotatedOccupationProbability) Tags() []string {
	return []string{"Operation", "Measurement", "Pragma", "PragmaGetRotatedOccupationProbability"}
}
func (p *PragmaGetRotatedOccupationProbability) InvolvedQubits() InvolvedQubits {
	return QubitsAll()
}
func (p *PragmaGetRotatedOccupationProbability) IsParametrized() bool { return false }
func (p *PragmaGetRotatedOccupationProbability) SubstituteParameters(map[string]float64) error {
	return nil
}
func (p *PragmaGetRotatedOccupationProbability) RemapQubits(map[int]int) error {
	return ErrRemapUnsupported
}
func (p *PragmaGetRotatedOccupationProbability) ToHQSLang() string {
	return "PragmaGetRotatedOccupationProbability " + p.Readout
}
func (p *PragmaGetRotatedOccupationProbability) Clone() Operation {
	clone := *p
	clone.Circuit = p.Circuit.Clone()
	return &clone
}
func (p *PragmaGetRotatedOccupationProbability) Equal(other Operation) bool {
	o, ok := other.(*PragmaGetRotatedOccupationProbability)
	return ok && p.Readout == o.Readout && p.Circuit.Equal(o.Circuit)
}

// PragmaGetPauliProduct stores the expectation value of a Pauli product
// after applying a basis rotation circuit to a copy of the quantum
// register. The product mask marks each qubit with 1 for sigma-z and 0 for
// the identity.
type PragmaGetPauliProduct struct {
	PauliProduct []int         `yaml:"pauli_product"`
	Readout      string        `yaml:"readout"`
	Circuit      OperationList `yaml:"circuit"`
}

func init() {
	register("PragmaGetPauliProduct", func() Operation {
		return &PragmaGetPauliProduct{Readout: "ro"}
	})
}

func NewPragmaGetPauliProduct(
	pauliProduct []int,
	readout string,
	circuit OperationList,
) *PragmaGetPauliProduct {
	return &PragmaGetPauliProduct{PauliProduct: pauliProduct, Readout: readout, Circuit: circuit}
}

func (p *PragmaGetPauliProduct) Name() string { return "PragmaGetPauliProduct" }
func (p *PragmaGetPauliProduct) Tags() []string {
	return []string{"Operation", "Measurement", "Pragma", "PragmaGetPauliProduct"}
}
func (p *PragmaGetPauliProduct) InvolvedQubits() InvolvedQubits            { return QubitsAll() }
func (p *PragmaGetPauliProduct) IsParametrized() bool                      { return false }
func (p *PragmaGetPauliProduct) SubstituteParameters(map[string]float64) error { return nil }
func (p *PragmaGetPauliProduct) RemapQubits(map[int]int) error {
	return ErrRemapUnsupported
}
func (p *PragmaGetPauliProduct) ToHQSLang() string {
	return "PragmaGetPauliProduct " + p.Readout
}
func (p *PragmaGetPauliProduct) Clone() Operation {
	clone := *p
	clone.PauliProduct = append([]int(nil), p.PauliProduct...)
	clone.Circuit = p.Circuit.Clone()
	return &clone
}
func (p *PragmaGetPauliProduct) Equal(other Operation) bool {
	o, ok := other.(*PragmaGetPauliProduct)
	if !ok || p.Readout != o.Readout || !p.Circuit.Equal(o.Circuit) {
		return false
	}
	if len(p.PauliProduct) != len(o.PauliProduct) {
		return false
	}
	for i, v := range p.PauliProduct {
		if v != o.PauliProduct[i] {
			return false
		}
	}
	return true
}

// PragmaRepeatedMeasurement measures all qubits of the quantum register N
// times, recording each shot in a bit register row. An optional qubit
// mapping restricts the readout to selected qubits.
type PragmaRepeatedMeasurement struct {
	Readout            string      `yaml:"readout"`
	QubitMapping       map[int]int `yaml:"qubit_mapping"`
	NumberMeasurements int         `yaml:"number_measurements"`
}

func init() {
	register("PragmaRepeatedMeasurement", func() Operation {
		return &PragmaRepeatedMeasurement{Readout: "ro", NumberMeasurements: 1}
	})
}

func NewPragmaRepeatedMeasurement(readout string, numberMeasurements int) *PragmaRepeatedMeasurement {
	return &PragmaRepeatedMeasurement{Readout: readout, NumberMeasurements: numberMeasurements}
}

func (p *PragmaRepeatedMeasurement) Name() string { return "PragmaRepeatedMeasurement" }
func (p *PragmaRepeatedMeasurement) Tags() []string {
	return []string{"Operation", "Measurement", "Pragma", "PragmaRepeatedMeasurement"}
}
func (p *PragmaRepeatedMeasurement) InvolvedQubits() InvolvedQubits            { return QubitsAll() }
func (p *PragmaRepeatedMeasurement) IsParametrized() bool                      { return false }
func (p *PragmaRepeatedMeasurement) SubstituteParameters(map[string]float64) error { return nil }
func (p *PragmaRepeatedMeasurement) RemapQubits(mapping map[int]int) error {
	p.QubitMapping = remapMappingKeys(p.QubitMapping, mapping)
	return nil
}
func (p *PragmaRepeatedMeasurement) ToHQSLang() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PragmaRepeatedMeasurement(%d) ", p.NumberMeasurements)
	if p.QubitMapping == nil {
		fmt.Fprintf(&b, "ALL %s", p.Readout)
		return b.String()
	}
	keys := make([]int, 0, len(p.QubitMapping))
	for k := range p.QubitMapping {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%d %s[%d] ", k, p.Readout, p.QubitMapping[k])
	}
	return b.String()
}
func (p *PragmaRepeatedMeasurement) Clone() Operation {
	clone := *p
	if p.QubitMapping != nil {
		clone.QubitMapping = make(map[int]int, len(p.QubitMapping))
		for k, v := range p.QubitMapping {
			clone.QubitMapping[k] = v
		}
	}
	return &clone
}
func (p *PragmaRepeatedMeasurement) Equal(other Operation) bool {
	o, ok := other.(*PragmaRepeatedMeasurement)
	if !ok || p.Readout != o.Readout || p.NumberMeasurements != o.NumberMeasurements {
		return false
	}
	if len(p.QubitMapping) != len(o.QubitMapping) {
		return false
	}
	for k, v := range p.QubitMapping {
		ov, found := o.QubitMapping[k]
		if !found || ov != v {
			return false
		}
	}
	return true
}

// BackendInstruction returns the readout override for backends that
// configure their measurement record through this pragma.
func (p *PragmaRepeatedMeasurement) BackendInstruction(target BackendTarget) *Instruction {
	if target == BackendAQT {
		readout := p.Readout
		return &Instruction{Readout: &readout}
	}
	return nil
}

// Pauli operator encodings used by PragmaPauliProdMeasurement.
const (
	PauliIdentity = 0
	PauliOpX      = 1
	PauliOpY      = 2
	PauliOpZ      = 3
)

// PragmaPauliProdMeasurement performs a single cheated measurement of a
// product of Pauli operators, storing the expectation value at
// readout_index of a float register.
type PragmaPauliProdMeasurement struct {
	Qubits       []int  `yaml:"qubits"`
	Paulis       []int  `yaml:"paulis"`
	Readout      string `yaml:"readout"`
	ReadoutIndex int    `yaml:"readout_index"`
}

func init() {
	register("PragmaPauliProdMeasurement", func() Operation {
		return &PragmaPauliProdMeasurement{Readout: "ro"}
	})
}

func NewPragmaPauliProdMeasurement(
	qubits, paulis []int,
	readout string,
	readoutIndex int,
) *PragmaPauliProdMeasurement {
	return &PragmaPauliProdMeasurement{
		Qubits:       qubits,
		Paulis:       paulis,
		Readout:      readout,
		ReadoutIndex: readoutIndex,
	}
}

func (p *PragmaPauliProdMeasurement) Name() string { return "PragmaPauliProdMeasurement" }
func (p *PragmaPauliProdMeasurement) Tags() []string {
	return []string{"Operation", "Measurement", "Pragma", "PragmaPauliProdMeasurement"}
}
func (p *PragmaPauliProdMeasurement) InvolvedQubits() InvolvedQubits {
	return QubitsOf(p.Qubits...)
}
func (p *PragmaPauliProdMeasurement) IsParametrized() bool { return false }
func (p *PragmaPauliProdMeasurement) SubstituteParameters(map[string]float64) error {
	return nil
}
func (p *PragmaPauliProdMeasurement) RemapQubits(map[int]int) error {
	return ErrRemapUnsupported
}
func (p *PragmaPauliProdMeasurement) ToHQSLang() string {
	var b strings.Builder
	b.WriteString("PragmaPauliProdMeasurement ")
	for i, qubit := range p.Qubits {
		if i < len(p.Paulis) {
			fmt.Fprintf(&b, "%d, %d ", qubit, p.Paulis[i])
		}
	}
	fmt.Fprintf(&b, "%s[%d]", p.Readout, p.ReadoutIndex)
	return b.String()
}
func (p *PragmaPauliProdMeasurement) Clone() Operation {
	clone := *p
	clone.Qubits = append([]int(nil), p.Qubits...)
	clone.Paulis = append([]int(nil), p.Paulis...)
	return &clone
}
func (p *PragmaPauliProdMeasurement) Equal(other Operation) bool {
	o, ok := other.(*PragmaPauliProdMeasurement)
	if !ok || p.Readout != o.Readout || p.ReadoutIndex != o.ReadoutIndex {
		return false
	}
	if len(p.Qubits) != len(o.Qubits) || len(p.Paulis) != len(o.Paulis) {
		return false
	}
	for i, q := range p.Qubits {
		if q != o.Qubits[i] {
			return false
		}
	}
	for i, v := range p.Paulis {
		if v != o.Paulis[i] {
			return false
		}
	}
	return true
}
