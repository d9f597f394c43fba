package operations

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ComplexVector is a dense vector of complex amplitudes. It serializes as
// separate real and imaginary float lists to stay representable in plain
// YAML documents.
type ComplexVector []complex128

func (v ComplexVector) Equal(other ComplexVector) bool {
	if len(v) != len(other) {
		return false
	}
	for i, c := range v {
		if c != other[i] {
			return false
		}
	}
	return true
}

func (v ComplexVector) String() string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = strconv.FormatComplex(c, 'g', -1, 128)
	}
	return strings.Join(parts, " ")
}

func (v ComplexVector) MarshalYAML() (interface{}, error) {
	re := make([]float64, len(v))
	im := make([]float64, len(v))
	for i, c := range v {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return map[string]interface{}{"real": re, "imag": im}, nil
}

func (v *ComplexVector) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw struct {
		Real []float64 `yaml:"real"`
		Imag []float64 `yaml:"imag"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	if len(raw.Real) != len(raw.Imag) {
		return errors.Errorf(
			"complex vector needs matching parts, got %d real and %d imaginary",
			len(raw.Real), len(raw.Imag))
	}
	out := make(ComplexVector, len(raw.Real))
	for i := range raw.Real {
		out[i] = complex(raw.Real[i], raw.Imag[i])
	}
	*v = out
	return nil
}

// ComplexMatrix is a dense row-major complex matrix with the same YAML
// layout as ComplexVector plus the row count.
type ComplexMatrix struct {
	Rows int
	Data ComplexVector
}

// NewComplexMatrix builds a matrix from row slices.
func NewComplexMatrix(rows [][]complex128) ComplexMatrix {
	m := ComplexMatrix{Rows: len(rows)}
	for _, row := range rows {
		m.Data = append(m.Data, row...)
	}
	return m
}

// Cols returns the column count, zero for an empty matrix.
func (m ComplexMatrix) Cols() int {
	if m.Rows == 0 {
		return 0
	}
	return len(m.Data) / m.Rows
}

// At returns the element at row i, column j.
func (m ComplexMatrix) At(i, j int) complex128 {
	return m.Data[i*m.Cols()+j]
}

func (m ComplexMatrix) Equal(other ComplexMatrix) bool {
	return m.Rows == other.Rows && m.Data.Equal(other.Data)
}

func (m ComplexMatrix) String() string {
	return m.Data.String()
}

func (m ComplexMatrix) MarshalYAML() (interface{}, error) {
	inner, err := m.Data.MarshalYAML()
	if err != nil {
		return nil, err
	}
	fields := inner.(map[string]interface{})
	fields["rows"] = m.Rows
	return fields, nil
}

func (m *ComplexMatrix) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var rows struct {
		Rows int `yaml:"rows"`
	}
	if err := unmarshal(&rows); err != nil {
		return err
	}
	var data ComplexVector
	if err := data.UnmarshalYAML(unmarshal); err != nil {
		return err
	}
	if rows.Rows > 0 && len(data)%rows.Rows != 0 {
		return errors.Errorf(
			"complex matrix with %d entries is not divisible into %d rows",
			len(data), rows.Rows)
	}
	m.Rows = rows.Rows
	m.Data = data
	return nil
}
