// Package registers provides the classical registers a backend writes
// measurement results into, and the output accumulators collecting the
// registers of repeated runs.
package registers

import (
	"github.com/pkg/errors"

	"github.com/HQSquantumsimulations/qoqo/operations"
)

// ErrVarTypeMismatch is returned when a register is built from a
// definition of the wrong value type.
var ErrVarTypeMismatch = errors.New("register value type does not match definition")

// ErrNotOutput is returned when an output accumulator is built from a
// definition without the output flag.
var ErrNotOutput = errors.New("output register requires an output definition")

// ErrIncompatibleRegister is returned when a register is accumulated into
// an output register with a different name, type or length.
var ErrIncompatibleRegister = errors.New("output register and appended register not compatible")

// BitRegister holds one shot of bit measurement results.
type BitRegister struct {
	Name     string
	Length   int
	IsOutput bool
	Values   []bool
}

// NewBitRegister builds a zeroed bit register from its definition.
func NewBitRegister(def *operations.Definition) (*BitRegister, error) {
	if def.VarType != operations.VarTypeBit {
		return nil, errors.Wrapf(ErrVarTypeMismatch, "definition %s is %s", def.RegisterName, def.VarType)
	}
	return &BitRegister{
		Name:     def.RegisterName,
		Length:   def.Length,
		IsOutput: def.IsOutput,
		Values:   make([]bool, def.Length),
	}, nil
}

// Reset zeroes the register in place.
func (r *BitRegister) Reset() {
	for i := range r.Values {
		r.Values[i] = false
	}
}

// FloatRegister holds one shot of real-valued results.
type FloatRegister struct {
	Name     string
	Length   int
	IsOutput bool
	Values   []float64
}

// NewFloatRegister builds a zeroed float register from its definition.
func NewFloatRegister(def *operations.Definition) (*FloatRegister, error) {
	if def.VarType != operations.VarTypeFloat {
		return nil, errors.Wrapf(ErrVarTypeMismatch, "definition %s is %s", def.RegisterName, def.VarType)
	}
	return &FloatRegister{
		Name:     def.RegisterName,
		Length:   def.Length,
		IsOutput: def.IsOutput,
		Values:   make([]float64, def.Length),
	}, nil
}

// Reset zeroes the register in place.
func (r *FloatRegister) Reset() {
	for i := range r.Values {
		r.Values[i] = 0
	}
}

// ComplexRegister holds one shot of complex-valued results, such as a
// state vector snapshot.
type ComplexRegister struct {
	Name     string
	Length   int
	IsOutput bool
	Values   []complex128
}

// NewComplexRegister builds a zeroed complex register from its definition.
func NewComplexRegister(def *operations.Definition) (*ComplexRegister, error) {
	if def.VarType != operations.VarTypeComplex {
		return nil, errors.Wrapf(ErrVarTypeMismatch, "definition %s is %s", def.RegisterName, def.VarType)
	}
	return &ComplexRegister{
		Name:     def.RegisterName,
		Length:   def.Length,
		IsOutput: def.IsOutput,
		Values:   make([]complex128, def.Length),
	}, nil
}

// Reset zeroes the register in place.
func (r *ComplexRegister) Reset() {
	for i := range r.Values {
		r.Values[i] = 0
	}
}

// BitOutputRegister accumulates bit registers over repeated runs, one row
// per shot.
type BitOutputRegister struct {
	Name   string
	Length int
	Shots  [][]bool
}

// NewBitOutputRegister builds an empty accumulator from an output
// definition.
func NewBitOutputRegister(def *operations.Definition) (*BitOutputRegister, error) {
	if def.VarType != operations.VarTypeBit {
		return nil, errors.Wrapf(ErrVarTypeMismatch, "definition %s is %s", def.RegisterName, def.VarType)
	}
	if !def.IsOutput {
		return nil, errors.Wrapf(ErrNotOutput, "definition %s", def.RegisterName)
	}
	return &BitOutputRegister{Name: def.RegisterName, Length: def.Length}, nil
}

// Size returns the number of recorded shots.
func (o *BitOutputRegister) Size() int { return len(o.Shots) }

// Append records a copy of the register as one shot.
func (o *BitOutputRegister) Append(r *BitRegister) error {
	if o.Name != r.Name || o.Length != r.Length {
		return errors.Wrapf(ErrIncompatibleRegister, "%s into %s", r.Name, o.Name)
	}
	o.Shots = append(o.Shots, append([]bool(nil), r.Values...))
	return nil
}

// AppendRow records one raw shot row.
func (o *BitOutputRegister) AppendRow(row []bool) error {
	if len(row) != o.Length {
		return errors.Wrapf(ErrIncompatibleRegister, "row length %d into %s", len(row), o.Name)
	}
	o.Shots = append(o.Shots, append([]bool(nil), row...))
	return nil
}

// Extend merges all shots of another accumulator for the same register.
func (o *BitOutputRegister) Extend(other *BitOutputRegister) error {
	if o.Name != other.Name || o.Length != other.Length {
		return errors.Wrapf(ErrIncompatibleRegister, "%s into %s", other.Name, o.Name)
	}
	o.Shots = append(o.Shots, other.Shots...)
	return nil
}

// FloatOutputRegister accumulates float registers over repeated runs.
type FloatOutputRegister struct {
	Name   string
	Length int
	Shots  [][]float64
}

// NewFloatOutputRegister builds an empty accumulator from an output
// definition.
func NewFloatOutputRegister(def *operations.Definition) (*FloatOutputRegister, error) {
	if def.VarType != operations.VarTypeFloat {
		return nil, errors.Wrapf(ErrVarTypeMismatch, "definition %s is %s", def.RegisterName, def.VarType)
	}
	if !def.IsOutput {
		return nil, errors.Wrapf(ErrNotOutput, "definition %s", def.RegisterName)
	}
	return &FloatOutputRegister{Name: def.RegisterName, Length: def.Length}, nil
}

// Size returns the number of recorded shots.
func (o *FloatOutputRegister) Size() int { return len(o.Shots) }

// Append records a copy of the register as one shot.
func (o *FloatOutputRegister) Append(r *FloatRegister) error {
	if o.Name != r.Name || o.Length != r.Length {
		return errors.Wrapf(ErrIncompatibleRegister, "%s into %s", r.Name, o.Name)
	}
	o.Shots = append(o.Shots, append([]float64(nil), r.Values...))
	return nil
}

// AppendRow records one raw shot row.
func (o *FloatOutputRegister) AppendRow(row []float64) error {
	if len(row) != o.Length {
		return errors.Wrapf(ErrIncompatibleRegister, "row length %d into %s", len(row), o.Name)
	}
	o.Shots = append(o.Shots, append([]float64(nil), row...))
	return nil
}

// Extend merges all shots of another accumulator for the same register.
func (o *FloatOutputRegister) Extend(other *FloatOutputRegister) error {
	if o.Name != other.Name || o.Length != other.Length {
		return errors.Wrapf(ErrIncompatibleRegister, "%s into %s", other.Name, o.Name)
	}
	o.Shots = append(o.Shots, other.Shots...)
	return nil
}

// ComplexOutputRegister accumulates complex registers over repeated runs.
type ComplexOutputRegister struct {
	Name   string
	Length int
	Shots  [][]complex128
}

// NewComplexOutputRegister builds an empty accumulator from an output
// definition.
func NewComplexOutputRegister(def *operations.Definition) (*ComplexOutputRegister, error) {
	if def.VarType != operations.VarTypeComplex {
		return nil, errors.Wrapf(ErrVarTypeMismatch, "definition %s is %s", def.RegisterName, def.VarType)
	}
	if !def.IsOutput {
		return nil, errors.Wrapf(ErrNotOutput, "definition %s", def.RegisterName)
	}
	return &ComplexOutputRegister{Name: def.RegisterName, Length: def.Length}, nil
}

// Size returns the number of recorded shots.
func (o *ComplexOutputRegister) Size() int { return len(o.Shots) }

// Append records a copy of the register as one shot.
func (o *ComplexOutputRegister) Append(r *ComplexRegister) error {
	if o.Name != r.Name || o.Length != r.Length {
		return errors.Wrapf(ErrIncompatibleRegister, "%s into %s", r.Name, o.Name)
	}
	o.Shots = append(o.Shots, append([]complex128(nil), r.Values...))
	return nil
}

// AppendRow records one raw shot row.
func (o *ComplexOutputRegister) AppendRow(row []complex128) error {
	if len(row) != o.Length {
		return errors.Wrapf(ErrIncompatibleRegister, "row length %d into %s", len(row), o.Name)
	}
	o.Shots = append(o.Shots, append([]complex128(nil), row...))
	return nil
}

// Extend merges all shots of another accumulator for the same register.
func (o *ComplexOutputRegister) Extend(other *ComplexOutputRegister) error {
	if o.Name != other.Name || o.Length != other.Length {
		return errors.Wrapf(ErrIncompatibleRegister, "%s into %s", other.Name, o.Name)
	}
	o.Shots = append(o.Shots, other.Shots...)
	return nil
}

// Registers is the set of working registers of one circuit run, keyed by
// register name.
type Registers struct {
	Bits      map[string]*BitRegister
	Floats    map[string]*FloatRegister
	Complexes map[string]*ComplexRegister
}

// Output is the set of accumulated output registers of a backend run,
// keyed by register name.
type Output struct {
	Bits      map[string]*BitOutputRegister
	Floats    map[string]*FloatOutputRegister
	Complexes map[string]*ComplexOutputRegister
}

// NewOutput returns an empty output register set.
func NewOutput() *Output {
	return &Output{
		Bits:      make(map[string]*BitOutputRegister),
		Floats:    make(map[string]*FloatOutputRegister),
		Complexes: make(map[string]*ComplexOutputRegister),
	}
}

// Extend merges all shots of another output set into this one, creating
// missing accumulators.
func (o *Output) Extend(other *Output) error {
	if other == nil {
		return nil
	}
	for name, reg := range other.Bits {
		existing, ok := o.Bits[name]
		if !ok {
			o.Bits[name] = &BitOutputRegister{Name: reg.Name, Length: reg.Length, Shots: reg.Shots}
			continue
		}
		if err := existing.Extend(reg); err != nil {
			return err
		}
	}
	for name, reg := range other.Floats {
		existing, ok := o.Floats[name]
		if !ok {
			o.Floats[name] = &FloatOutputRegister{Name: reg.Name, Length: reg.Length, Shots: reg.Shots}
			continue
		}
		if err := existing.Extend(reg); err != nil {
			return err
		}
	}
	for name, reg := range other.Complexes {
		existing, ok := o.Complexes[name]
		if !ok {
			o.Complexes[name] = &ComplexOutputRegister{Name: reg.Name, Length: reg.Length, Shots: reg.Shots}
			continue
		}
		if err := existing.Extend(reg); err != nil {
			return err
		}
	}
	return nil
}

// Build sets up the working registers and output accumulators declared by
// the given definitions.
func Build(defs []*operations.Definition) (*Registers, *Output, error) {
	regs := &Registers{
		Bits:      make(map[string]*BitRegister),
		Floats:    make(map[string]*FloatRegister),
		Complexes: make(map[string]*ComplexRegister),
	}
	out := NewOutput()
	for _, def := range defs {
		switch def.VarType {
		case operations.VarTypeBit:
			reg, err := NewBitRegister(def)
			if err != nil {
				return nil, nil, err
			}
			regs.Bits[def.RegisterName] = reg
			if def.IsOutput {
				output, err := NewBitOutputRegister(def)
				if err != nil {
					return nil, nil, err
				}
				out.Bits[def.RegisterName] = output
			}
		case operations.VarTypeFloat:
			reg, err := NewFloatRegister(def)
			if err != nil {
				return nil, nil, err
			}
			regs.Floats[def.RegisterName] = reg
			if def.IsOutput {
				output, err := NewFloatOutputRegister(def)
				if err != nil {
					return nil, nil, err
				}
				out.Floats[def.RegisterName] = output
			}
		case operations.VarTypeComplex:
			reg, err := NewComplexRegister(def)
			if err != nil {
				return nil, nil, err
			}
			regs.Complexes[def.RegisterName] = reg
			if def.IsOutput {
				output, err := NewComplexOutputRegister(def)
				if err != nil {
					return nil, nil, err
				}
				out.Complexes[def.RegisterName] = output
			}
		default:
			return nil, nil, errors.Errorf("unsupported register type %q for %s",
				def.VarType, def.RegisterName)
		}
	}
	return regs, out, nil
}
