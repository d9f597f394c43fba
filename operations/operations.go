// Package operations defines the closed set of circuit instructions: classical
// register definitions, unitary gates, measurement instructions and pragma
// directives, together with the gate algebra attached to them.
package operations

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/HQSquantumsimulations/qoqo/calculator"
)

// Domain errors surfaced by the operation model and gate algebra.
var (
	// ErrParametrized is returned when a numeric matrix is requested from a
	// gate that still carries unresolved symbolic parameters.
	ErrParametrized = errors.New("parametrized gate can not be returned as unitary matrix")
	// ErrNotExponentiable is returned when a gate without rotation-strength
	// parameters is raised to a power.
	ErrNotExponentiable = errors.New("gate can not be exponentiated")
	// ErrQubitMismatch is returned when two single-qubit gates acting on
	// different qubits are multiplied.
	ErrQubitMismatch = errors.New("gates act on different qubits")
	// ErrRemapUnsupported is returned by operations that do not support
	// qubit remapping.
	ErrRemapUnsupported = errors.New("qubit remapping not supported for operation")
)

// Operation is one instruction in a circuit. Implementations are value
// types: Equal compares field values, never identity.
type Operation interface {
	// Name returns the HQS-Lang name of the operation. It doubles as the
	// serialization key.
	Name() string
	// Tags returns the variant family tags, most general first.
	Tags() []string
	// InvolvedQubits returns the qubits the operation touches.
	InvolvedQubits() InvolvedQubits
	// IsParametrized reports whether any numeric field is still symbolic.
	IsParametrized() bool
	// SubstituteParameters resolves symbolic fields against the bindings.
	SubstituteParameters(bindings map[string]float64) error
	// RemapQubits rewrites qubit indices. Operations that do not support
	// remapping return ErrRemapUnsupported.
	RemapQubits(mapping map[int]int) error
	// ToHQSLang renders the operation as one line of HQS-Lang text.
	ToHQSLang() string
	// Clone returns an independent deep copy.
	Clone() Operation
	// Equal compares by value.
	Equal(other Operation) bool
}

// InvolvedQubits is the set of qubit indices an operation acts on, or the
// "all qubits" sentinel used by global pragmas.
type InvolvedQubits struct {
	All    bool
	Qubits []int
}

// QubitsAll returns the sentinel covering every qubit.
func QubitsAll() InvolvedQubits {
	return InvolvedQubits{All: true}
}

// QubitsNone returns the empty qubit set.
func QubitsNone() InvolvedQubits {
	return InvolvedQubits{}
}

// QubitsOf returns the sorted, deduplicated set of the given indices.
func QubitsOf(qubits ...int) InvolvedQubits {
	seen := make(map[int]struct{}, len(qubits))
	out := make([]int, 0, len(qubits))
	for _, q := range qubits {
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	sort.Ints(out)
	return InvolvedQubits{Qubits: out}
}

// Contains reports whether the set covers the qubit.
func (iq InvolvedQubits) Contains(qubit int) bool {
	if iq.All {
		return true
	}
	for _, q := range iq.Qubits {
		if q == qubit {
			return true
		}
	}
	return false
}

// Equal compares two qubit sets.
func (iq InvolvedQubits) Equal(other InvolvedQubits) bool {
	if iq.All != other.All {
		return false
	}
	if len(iq.Qubits) != len(other.Qubits) {
		return false
	}
	for i, q := range iq.Qubits {
		if other.Qubits[i] != q {
			return false
		}
	}
	return true
}

// HasTag reports whether the operation carries the given family tag.
func HasTag(op Operation, tag string) bool {
	for _, t := range op.Tags() {
		if t == tag {
			return true
		}
	}
	return false
}

// remapIndex rewrites one qubit index; indices absent from the mapping stay
// untouched.
func remapIndex(mapping map[int]int, qubit int) int {
	if mapped, ok := mapping[qubit]; ok {
		return mapped
	}
	return qubit
}

// hqsLangLine renders "<Name>[(p1, p2)] [q1 q2]", the shared HQS-Lang shape.
func hqsLangLine(name string, params []calculator.CalculatorFloat, qubits []int) string {
	var b strings.Builder
	b.WriteString(name)
	if len(params) > 0 {
		b.WriteString("(")
		for i, p := range params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteString(")")
	}
	for _, q := range qubits {
		fmt.Fprintf(&b, " %d", q)
	}
	return b.String()
}

// substituteAll resolves the given fields in place, stopping at the first
// failure.
func substituteAll(bindings map[string]float64, fields ...*calculator.CalculatorFloat) error {
	for _, f := range fields {
		resolved, err := f.Substitute(bindings)
		if err != nil {
			return err
		}
		*f = resolved
	}
	return nil
}

func anySymbolic(fields ...calculator.CalculatorFloat) bool {
	for _, f := range fields {
		if f.IsSymbolic() {
			return true
		}
	}
	return false
}
