package operations

import (
	"fmt"
)

// Register value types a Definition may declare.
const (
	VarTypeBit     = "bit"
	VarTypeFloat   = "float"
	VarTypeInt     = "int"
	VarTypeComplex = "complex"
)

// quilTypeNames maps register value types to their dialect spelling.
var quilTypeNames = map[string]string{
	VarTypeFloat:   "REAL",
	VarTypeBit:     "BIT",
	VarTypeInt:     "INT",
	VarTypeComplex: "COMPLEX",
}

// Definition declares a named, typed, fixed-length classical register.
type Definition struct {
	RegisterName string `yaml:"name"`
	VarType      string `yaml:"vartype"`
	Length       int    `yaml:"length"`
	IsInput      bool   `yaml:"is_input"`
	IsOutput     bool   `yaml:"is_output"`
}

func init() {
	register("Definition", func() Operation { return &Definition{} })
}

// NewDefinition returns a register declaration without input/output flags.
func NewDefinition(name, vartype string, length int) *Definition {
	return &Definition{RegisterName: name, VarType: vartype, Length: length}
}

func (d *Definition) Name() string { return "Definition" }

func (d *Definition) Tags() []string {
	return []string{"Operation", "Definition"}
}

func (d *Definition) InvolvedQubits() InvolvedQubits { return QubitsNone() }

func (d *Definition) IsParametrized() bool { return false }

func (d *Definition) SubstituteParameters(map[string]float64) error { return nil }

func (d *Definition) RemapQubits(map[int]int) error { return nil }

func (d *Definition) ToHQSLang() string {
	typeName, ok := quilTypeNames[d.VarType]
	if !ok {
		typeName = d.VarType
	}
	if d.IsInput || d.IsOutput {
		return fmt.Sprintf("Definition(%t,%t) %s %s[%d]",
			d.IsInput, d.IsOutput, d.RegisterName, typeName, d.Length)
	}
	return fmt.Sprintf("Definition %s %s[%d]", d.RegisterName, typeName, d.Length)
}

func (d *Definition) Clone() Operation {
	clone := *d
	return &clone
}

// Equal compares name, type and length. The input/output flags are routing
// hints and do not take part in value equality.
func (d *Definition) Equal(other Operation) bool {
	o, ok := other.(*Definition)
	if !ok {
		return false
	}
	return d.RegisterName == o.RegisterName &&
		d.VarType == o.VarType &&
		d.Length == o.Length
}
