package calculator

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CalculatorFloat is a float64 that may still be symbolic. A literal value
// behaves like a plain float; a symbolic value carries an arithmetic
// expression string that is resolved later via Substitute.
type CalculatorFloat struct {
	symbolic bool
	value    float64
	expr     string
}

// Float returns a literal CalculatorFloat.
func Float(v float64) CalculatorFloat {
	return CalculatorFloat{value: v}
}

// Int returns a literal CalculatorFloat from an integer.
func Int(v int) CalculatorFloat {
	return CalculatorFloat{value: float64(v)}
}

// Symbolic returns a CalculatorFloat from an expression string. A string
// that parses as a plain number collapses to a literal immediately.
func Symbolic(expr string) CalculatorFloat {
	trimmed := strings.TrimSpace(expr)
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return CalculatorFloat{value: v}
	}
	return CalculatorFloat{symbolic: true, expr: trimmed}
}

// IsSymbolic reports whether the value is still an unresolved expression.
func (c CalculatorFloat) IsSymbolic() bool {
	return c.symbolic
}

// Float64 returns the literal value. It fails while the value is symbolic.
func (c CalculatorFloat) Float64() (float64, error) {
	if c.symbolic {
		return 0, errors.Wrapf(ErrUnresolved, "expression %q", c.expr)
	}
	return c.value, nil
}

// String renders the value: a shortest-form decimal for literals, the
// expression text for symbolic values.
func (c CalculatorFloat) String() string {
	if c.symbolic {
		return c.expr
	}
	return strconv.FormatFloat(c.value, 'g', -1, 64)
}

/// Equal compares by value: literals within floating tolerance, symbolic
// values by expression text.
func (c CalculatorFloat) Equal(o CalculatorFloat) bool {
	if c.symbolic != o.symbolic {
		return false
	}
	if c.symbolic {
		return c.expr == o.expr
	}
	return closeEnough(c.value, o.value)
}

const equalTolerance = 1e-9

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) <= equalTolerance*(1+math.Max(math.Abs(a), math.Abs(b)))
}

// Add returns c + o.
func (c CalculatorFloat) Add(o CalculatorFloat) CalculatorFloat {
	if !c.symbolic && !o.symbolic {
		return Float(c.value + o.value)
	}
	if !c.symbolic && c.value == 0 {
		return o
	}
	if !o.symbolic && o.value == 0 {
		return c
	}
	return compose(c, "+", o)
}

// Sub returns c - o.
func (c CalculatorFloat) Sub(o CalculatorFloat) CalculatorFloat {
	if !c.symbolic && !o.symbolic {
		return Float(c.value - o.value)
	}
	if !o.symbolic && o.value == 0 {
		return c
	}
	return compose(c, "-", o)
}

// Mul returns c * o.
func (c CalculatorFloat) Mul(o CalculatorFloat) CalculatorFloat {
	if !c.symbolic && !o.symbolic {
		return Float(c.value * o.value)
	}
	if !c.symbolic {
		if c.value == 0 {
			return Float(0)
		}
		if c.value == 1 {
			return o
		}
	}
	if !o.symbolic {
		if o.value == 0 {
			return Float(0)
		}
		if o.value == 1 {
			return c
		}
	}
	return compose(c, "*", o)
}

// Div returns c / o.
func (c CalculatorFloat) Div(o CalculatorFloat) CalculatorFloat {
	if !c.symbolic && !o.symbolic {
		return Float(c.value / o.value)
	}
	if !o.symbolic && o.value == 1 {
		return c
	}
	return compose(c, "/", o)
}

// Pow returns c ** o.
func (c CalculatorFloat) Pow(o CalculatorFloat) CalculatorFloat {
	if !c.symbolic && !o.symbolic {
		return Float(math.Pow(c.value, o.value))
	}
	return compose(c, "**", o)
}

// Neg returns -c.
func (c CalculatorFloat) Neg() CalculatorFloat {
	if !c.symbolic {
		return Float(-c.value)
	}
	return CalculatorFloat{symbolic: true, expr: "(-" + c.expr + ")"}
}

// Abs returns |c|.
func (c CalculatorFloat) Abs() CalculatorFloat {
	return c.apply("abs", math.Abs)
}

// Sqrt returns the square root of c.
func (c CalculatorFloat) Sqrt() CalculatorFloat {
	return c.apply("sqrt", math.Sqrt)
}

// Sin returns sin(c).
func (c CalculatorFloat) Sin() CalculatorFloat {
	return c.apply("sin", math.Sin)
}

// Cos returns cos(c).
func (c CalculatorFloat) Cos() CalculatorFloat {
	return c.apply("cos", math.Cos)
}

// Exp returns e**c.
func (c CalculatorFloat) Exp() CalculatorFloat {
	return c.apply("exp", math.Exp)
}

func (c CalculatorFloat) apply(name string, fn func(float64) float64) CalculatorFloat {
	if !c.symbolic {
		return Float(fn(c.value))
	}
	return CalculatorFloat{symbolic: true, expr: name + "(" + c.expr + ")"}
}

func compose(a CalculatorFloat, op string, b CalculatorFloat) CalculatorFloat {
	return CalculatorFloat{
		symbolic: true,
		expr:     "(" + a.String() + " " + op + " " + b.String() + ")",
	}
}

// Substitute resolves the value against the given bindings. Literal values
// pass through untouched, so repeated substitution is a no-op. A binding
// set that does not cover every free variable leaves the value symbolic
// and returns an error wrapping ErrUnresolved.
func (c CalculatorFloat) Substitute(bindings map[string]float64) (CalculatorFloat, error) {
	if !c.symbolic {
		return c, nil
	}
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s=%s; ", name, strconv.FormatFloat(bindings[name], 'g', -1, 64))
	}
	b.WriteString(c.expr)

	v, err := Evaluate(b.String())
	if err != nil {
		return c, err
	}
	return Float(v), nil
}

// MarshalYAML encodes literals as numbers and symbolic values as their
// expression string.
func (c CalculatorFloat) MarshalYAML() (interface{}, error) {
	if c.symbolic {
		return c.expr, nil
	}
	return c.value, nil
}

// UnmarshalYAML accepts a number or an expression string.
func (c *CalculatorFloat) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var f float64
	if err := unmarshal(&f); err == nil {
		*c = Float(f)
		return nil
	}
	var i int
	if err := unmarshal(&i); err == nil {
		*c = Int(i)
		return nil
	}
	var s string
	if err := unmarshal(&s); err != nil {
		return errors.Wrap(err, "calculator float must be a number or expression string")
	}
	*c = Symbolic(s)
	return nil
}
