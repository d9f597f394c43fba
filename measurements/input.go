// Package measurements reconstructs operator expectation values from the
// classical registers a backend produced, including readout-error
// mitigation by flipped companion measurements.
package measurements

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/HQSquantumsimulations/qoqo/operations"
)

// ErrShapeMismatch is returned when the declared qubit and Pauli-product
// counts of a measurement input do not match the supplied masks or
// transform matrix.
var ErrShapeMismatch = errors.New("measurement input shape mismatch")

// ErrIncompleteMeasurement is returned when a register the measurement
// input expects is missing from the accumulated backend output.
var ErrIncompleteMeasurement = errors.New("incomplete measurement")

// BasisRotationInput bundles what a BasisRotation measurement needs to
// turn shot registers into expectation values: for every readout
// register, the qubit mask of each measured Pauli product, and the linear
// transform taking the Pauli-product expectation vector to the named
// expectation values.
//
// To measure 3*<Z0> + <Z0 Z1> into register "ro", the masks are
// {"ro": {0: [0], 1: [0, 1]}} and the transform is the 1x2 matrix
// [[3, 1]].
type BasisRotationInput struct {
	// QubitMasks maps a readout register name to the contributing
	// qubits of each Pauli-product index measured through it.
	QubitMasks map[string]map[int][]int
	// Transform has one row per measured expectation value and one
	// column per Pauli product.
	Transform operations.ComplexMatrix
	// NumberQubits is the number of qubits in the measurement.
	NumberQubits int
	// NumberPauliProducts is the number of distinct Pauli products
	// measured across all registers.
	NumberPauliProducts int
	// MeasuredExpVals names the reconstructed expectation values, in
	// transform row order.
	MeasuredExpVals []string
	// UseFlippedMeasurement enables readout-error mitigation through
	// the bit-complemented companion registers.
	UseFlippedMeasurement bool
}

// NewBasisRotationInput validates the shapes of a measurement input at
// construction.
func NewBasisRotationInput(
	qubitMasks map[string]map[int][]int,
	transform operations.ComplexMatrix,
	numberQubits int,
	numberPauliProducts int,
	measuredExpVals []string,
	useFlippedMeasurement bool,
) (*BasisRotationInput, error) {
	if transform.Rows != len(measuredExpVals) {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"transform has %d rows for %d expectation values",
			transform.Rows, len(measuredExpVals))
	}
	if transform.Rows > 0 && transform.Cols() != numberPauliProducts {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"transform has %d columns for %d pauli products",
			transform.Cols(), numberPauliProducts)
	}
	for name, mask := range qubitMasks {
		for index, qubits := range mask {
			if index < 0 || index >= numberPauliProducts {
				return nil, errors.Wrapf(ErrShapeMismatch,
					"register %s addresses pauli product %d of %d",
					name, index, numberPauliProducts)
			}
			for _, qubit := range qubits {
				if qubit < 0 || qubit >= numberQubits {
					return nil, errors.Wrapf(ErrShapeMismatch,
						"register %s pauli product %d addresses qubit %d of %d",
						name, index, qubit, numberQubits)
				}
			}
		}
	}
	if qubitMasks == nil {
		qubitMasks = map[string]map[int][]int{}
	}
	return &BasisRotationInput{
		QubitMasks:            qubitMasks,
		Transform:             transform,
		NumberQubits:          numberQubits,
		NumberPauliProducts:   numberPauliProducts,
		MeasuredExpVals:       measuredExpVals,
		UseFlippedMeasurement: useFlippedMeasurement,
	}, nil
}

type basisRotationInputSerialized struct {
	QubitMasks            map[string]map[int][]int `yaml:"pauli_product_qubit_masks"`
	Transform             operations.ComplexMatrix `yaml:"pp_to_exp_val_matrix"`
	NumberQubits          int                      `yaml:"number_qubits"`
	NumberPauliProducts   int                      `yaml:"number_pauli_products"`
	MeasuredExpVals       []string                 `yaml:"measured_exp_vals"`
	UseFlippedMeasurement bool                     `yaml:"use_flipped_measurement"`
}

// MarshalYAML serializes the input, the complex transform split into
// flattened real and imaginary arrays.
func (in *BasisRotationInput) MarshalYAML() (interface{}, error) {
	return basisRotationInputSerialized{
		QubitMasks:            in.QubitMasks,
		Transform:             in.Transform,
		NumberQubits:          in.NumberQubits,
		NumberPauliProducts:   in.NumberPauliProducts,
		MeasuredExpVals:       in.MeasuredExpVals,
		UseFlippedMeasurement: in.UseFlippedMeasurement,
	}, nil
}

// UnmarshalYAML restores the input and re-validates its shapes.
func (in *BasisRotationInput) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var body basisRotationInputSerialized
	if err := unmarshal(&body); err != nil {
		return err
	}
	restored, err := NewBasisRotationInput(
		body.QubitMasks,
		body.Transform,
		body.NumberQubits,
		body.NumberPauliProducts,
		body.MeasuredExpVals,
		body.UseFlippedMeasurement,
	)
	if err != nil {
		return err
	}
	*in = *restored
	return nil
}

// Equal compares measurement inputs by value.
func (in *BasisRotationInput) Equal(other *BasisRotationInput) bool {
	if in.NumberQubits != other.NumberQubits ||
		in.NumberPauliProducts != other.NumberPauliProducts ||
		in.UseFlippedMeasurement != other.UseFlippedMeasurement ||
		!in.Transform.Equal(other.Transform) ||
		len(in.MeasuredExpVals) != len(other.MeasuredExpVals) ||
		len(in.QubitMasks) != len(other.QubitMasks) {
		return false
	}
	for i, name := range in.MeasuredExpVals {
		if other.MeasuredExpVals[i] != name {
			return false
		}
	}
	for name, mask := range in.QubitMasks {
		otherMask, ok := other.QubitMasks[name]
		if !ok || len(mask) != len(otherMask) {
			return false
		}
		for index, qubits := range mask {
			otherQubits, ok := otherMask[index]
			if !ok || len(qubits) != len(otherQubits) {
				return false
			}
			for i, qubit := range qubits {
				if otherQubits[i] != qubit {
					return false
				}
			}
		}
	}
	return true
}

// CheatedBasisRotationInput bundles what a CheatedBasisRotation
// measurement needs: the transform from the directly read-out
// Pauli-product vector to the named expectation values.
type CheatedBasisRotationInput struct {
	Transform           operations.ComplexMatrix
	NumberPauliProducts int
	MeasuredExpVals     []string
}

// NewCheatedBasisRotationInput validates the transform shape at
// construction.
func NewCheatedBasisRotationInput(
	transform operations.ComplexMatrix,
	numberPauliProducts int,
	measuredExpVals []string,
) (*CheatedBasisRotationInput, error) {
	if transform.Rows != len(measuredExpVals) {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"transform has %d rows for %d expectation values",
			transform.Rows, len(measuredExpVals))
	}
	if transform.Rows > 0 && transform.Cols() != numberPauliProducts {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"transform has %d columns for %d pauli products",
			transform.Cols(), numberPauliProducts)
	}
	return &CheatedBasisRotationInput{
		Transform:           transform,
		NumberPauliProducts: numberPauliProducts,
		MeasuredExpVals:     measuredExpVals,
	}, nil
}

type cheatedBasisRotationInputSerialized struct {
	Transform           operations.ComplexMatrix `yaml:"pp_to_exp_val_matrix"`
	NumberPauliProducts int                      `yaml:"number_pauli_products"`
	MeasuredExpVals     []string                 `yaml:"measured_exp_vals"`
}

func (in *CheatedBasisRotationInput) MarshalYAML() (interface{}, error) {
	return cheatedBasisRotationInputSerialized{
		Transform:           in.Transform,
		NumberPauliProducts: in.NumberPauliProducts,
		MeasuredExpVals:     in.MeasuredExpVals,
	}, nil
}

func (in *CheatedBasisRotationInput) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var body cheatedBasisRotationInputSerialized
	if err := unmarshal(&body); err != nil {
		return err
	}
	restored, err := NewCheatedBasisRotationInput(
		body.Transform, body.NumberPauliProducts, body.MeasuredExpVals)
	if err != nil {
		return err
	}
	*in = *restored
	return nil
}

// Equal compares measurement inputs by value.
func (in *CheatedBasisRotationInput) Equal(other *CheatedBasisRotationInput) bool {
	if in.NumberPauliProducts != other.NumberPauliProducts ||
		!in.Transform.Equal(other.Transform) ||
		len(in.MeasuredExpVals) != len(other.MeasuredExpVals) {
		return false
	}
	for i, name := range in.MeasuredExpVals {
		if other.MeasuredExpVals[i] != name {
			return false
		}
	}
	return true
}

// CSRMatrix is a square complex matrix in compressed sparse row form.
// Indptr has Dim+1 entries framing the nonzeros of each row inside Data
// and Indices.
type CSRMatrix struct {
	Dim     int
	Data    []complex128
	Indices []int
	Indptr  []int
}

// CSRFromDense compresses a dense square matrix, dropping exact zeros.
func CSRFromDense(rows [][]complex128) CSRMatrix {
	m := CSRMatrix{Dim: len(rows), Indptr: make([]int, 1, len(rows)+1)}
	for _, row := range rows {
		for j, val := range row {
			if val != 0 {
				m.Data = append(m.Data, val)
				m.Indices = append(m.Indices, j)
			}
		}
		m.Indptr = append(m.Indptr, len(m.Data))
	}
	return m
}

// Validate checks the internal consistency of the sparse layout.
func (m CSRMatrix) Validate() error {
	if len(m.Indptr) != m.Dim+1 {
		return errors.Wrapf(ErrShapeMismatch,
			"csr matrix of dimension %d has %d row pointers", m.Dim, len(m.Indptr))
	}
	if len(m.Indices) != len(m.Data) {
		return errors.Wrapf(ErrShapeMismatch,
			"csr matrix has %d indices for %d values", len(m.Indices), len(m.Data))
	}
	for _, index := range m.Indices {
		if index < 0 || index >= m.Dim {
			return errors.Wrapf(ErrShapeMismatch,
				"csr matrix column %d out of dimension %d", index, m.Dim)
		}
	}
	return nil
}

// Equal compares sparse matrices entry-wise in their compressed form.
func (m CSRMatrix) Equal(other CSRMatrix) bool {
	if m.Dim != other.Dim || len(m.Data) != len(other.Data) ||
		len(m.Indptr) != len(other.Indptr) {
		return false
	}
	for i, val := range m.Data {
		if other.Data[i] != val || other.Indices[i] != m.Indices[i] {
			return false
		}
	}
	for i, ptr := range m.Indptr {
		if other.Indptr[i] != ptr {
			return false
		}
	}
	return true
}

// PurePragmaInput bundles what a PurePragma measurement needs: per
// statevector or density-matrix readout register, the named operator
// matrices whose expectation values are evaluated directly on the
// register contents.
type PurePragmaInput struct {
	// OperatorMatrices maps a readout register name to the named
	// operators measured from it.
	OperatorMatrices map[string]map[string]CSRMatrix
	// UseDensityMatrix selects trace evaluation against a density
	// matrix register instead of a statevector expectation.
	UseDensityMatrix bool
}

// NewPurePragmaInput validates every operator matrix at construction.
func NewPurePragmaInput(
	operatorMatrices map[string]map[string]CSRMatrix,
	useDensityMatrix bool,
) (*PurePragmaInput, error) {
	for registerName, named := range operatorMatrices {
		for name, matrix := range named {
			if err := matrix.Validate(); err != nil {
				return nil, errors.Wrapf(err, "operator %s for register %s", name, registerName)
			}
		}
	}
	if operatorMatrices == nil {
		operatorMatrices = map[string]map[string]CSRMatrix{}
	}
	return &PurePragmaInput{
		OperatorMatrices: operatorMatrices,
		UseDensityMatrix: useDensityMatrix,
	}, nil
}

type purePragmaInputSerialized struct {
	RealData         map[string]map[string][]float64 `yaml:"operator_matrices_real_data"`
	ImagData         map[string]map[string][]float64 `yaml:"operator_matrices_imag_data"`
	Indices          map[string]map[string][]int     `yaml:"operator_matrices_indices"`
	Indptr           map[string]map[string][]int     `yaml:"operator_matrices_indptr"`
	Dim              int                             `yaml:"operator_matrices_dim"`
	UseDensityMatrix bool                            `yaml:"use_density_matrix"`
}

// MarshalYAML serializes the sparse operators as separated real and
// imaginary value arrays next to their index and row-pointer arrays.
func (in *PurePragmaInput) MarshalYAML() (interface{}, error) {
	body := purePragmaInputSerialized{
		RealData:         map[string]map[string][]float64{},
		ImagData:         map[string]map[string][]float64{},
		Indices:          map[string]map[string][]int{},
		Indptr:           map[string]map[string][]int{},
		UseDensityMatrix: in.UseDensityMatrix,
	}
	for registerName, named := range in.OperatorMatrices {
		body.RealData[registerName] = map[string][]float64{}
		body.ImagData[registerName] = map[string][]float64{}
		body.Indices[registerName] = map[string][]int{}
		body.Indptr[registerName] = map[string][]int{}
		for name, matrix := range named {
			body.Dim = matrix.Dim
			reals := make([]float64, len(matrix.Data))
			imags := make([]float64, len(matrix.Data))
			for i, val := range matrix.Data {
				reals[i] = real(val)
				imags[i] = imag(val)
			}
			body.RealData[registerName][name] = reals
			body.ImagData[registerName][name] = imags
			body.Indices[registerName][name] = matrix.Indices
			body.Indptr[registerName][name] = matrix.Indptr
		}
	}
	return body, nil
}

// UnmarshalYAML restores the sparse operators and re-validates them.
func (in *PurePragmaInput) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var body purePragmaInputSerialized
	if err := unmarshal(&body); err != nil {
		return err
	}
	operatorMatrices := map[string]map[string]CSRMatrix{}
	for registerName, realNamed := range body.RealData {
		operatorMatrices[registerName] = map[string]CSRMatrix{}
		for name, reals := range realNamed {
			imags := body.ImagData[registerName][name]
			if len(imags) != len(reals) {
				return errors.Wrapf(ErrShapeMismatch,
					"operator %s for register %s has %d real and %d imaginary values",
					name, registerName, len(reals), len(imags))
			}
			data := make([]complex128, len(reals))
			for i := range reals {
				data[i] = complex(reals[i], imags[i])
			}
			operatorMatrices[registerName][name] = CSRMatrix{
				Dim:     body.Dim,
				Data:    data,
				Indices: body.Indices[registerName][name],
				Indptr:  body.Indptr[registerName][name],
			}
		}
	}
	restored, err := NewPurePragmaInput(operatorMatrices, body.UseDensityMatrix)
	if err != nil {
		return err
	}
	*in = *restored
	return nil
}

// Equal compares measurement inputs by value.
func (in *PurePragmaInput) Equal(other *PurePragmaInput) bool {
	if in.UseDensityMatrix != other.UseDensityMatrix ||
		len(in.OperatorMatrices) != len(other.OperatorMatrices) {
		return false
	}
	for registerName, named := range in.OperatorMatrices {
		otherNamed, ok := other.OperatorMatrices[registerName]
		if !ok || len(named) != len(otherNamed) {
			return false
		}
		for name, matrix := range named {
			otherMatrix, ok := otherNamed[name]
			if !ok || !matrix.Equal(otherMatrix) {
				return false
			}
		}
	}
	return true
}

func inputToConfig(in interface{}) (operations.Config, error) {
	raw, err := yaml.Marshal(in)
	if err != nil {
		return nil, errors.Wrap(err, "serializing measurement input")
	}
	cfg := operations.Config{}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrap(err, "serializing measurement input")
	}
	return cfg, nil
}

func inputFromConfig(cfg operations.Config, in interface{}) error {
	raw, err := yaml.Marshal(map[string]interface{}(cfg))
	if err != nil {
		return errors.Wrap(err, "restoring measurement input")
	}
	return errors.Wrap(yaml.Unmarshal(raw, in), "restoring measurement input")
}
