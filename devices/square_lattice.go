package devices

import (
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// SquareLatticeConfig configures a square lattice device. Rates apply
// uniformly unless a per-qubit override is present.
type SquareLatticeConfig struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`

	OneQubitGates []string `yaml:"one_qubit_gates"`
	TwoQubitGates []string `yaml:"two_qubit_gates"`

	DampingRate        float64 `yaml:"damping_rate"`
	DephasingRate      float64 `yaml:"dephasing_rate"`
	DepolarisationRate float64 `yaml:"depolarisation_rate"`

	DampingRateOverrides        map[int]float64 `yaml:"damping_rate_overrides"`
	DephasingRateOverrides      map[int]float64 `yaml:"dephasing_rate_overrides"`
	DepolarisationRateOverrides map[int]float64 `yaml:"depolarisation_rate_overrides"`

	MeasurementErrors map[int]MeasurementError `yaml:"measurement_errors"`
}

// WithDefaults fills in the zero-valued fields of the config.
func (c SquareLatticeConfig) WithDefaults() SquareLatticeConfig {
	if c.Rows == 0 {
		c.Rows = 1
	}
	if c.Columns == 0 {
		c.Columns = 1
	}
	if c.OneQubitGates == nil {
		c.OneQubitGates = []string{"RotateX", "RotateY", "RotateZ", "Hadamard", "PauliX", "PauliY", "PauliZ"}
	}
	if c.TwoQubitGates == nil {
		c.TwoQubitGates = []string{"CNOT", "ControlledPauliZ"}
	}
	return c
}

// SquareLatticeDevice is a rectangular qubit grid with nearest-neighbour
// two-qubit connectivity. Qubits are numbered row-major.
type SquareLatticeDevice struct {
	config SquareLatticeConfig
}

// NewSquareLatticeDevice builds a device from the config.
func NewSquareLatticeDevice(config SquareLatticeConfig) (*SquareLatticeDevice, error) {
	config = config.WithDefaults()
	if config.Rows < 1 || config.Columns < 1 {
		return nil, errors.Errorf("invalid lattice shape %dx%d", config.Rows, config.Columns)
	}
	return &SquareLatticeDevice{config: config}, nil
}

func (d *SquareLatticeDevice) NumberQubits() int {
	return d.config.Rows * d.config.Columns
}

func (d *SquareLatticeDevice) AvailableOneQubitGates() []string {
	return d.config.OneQubitGates
}

func (d *SquareLatticeDevice) AvailableTwoQubitGates() []string {
	return d.config.TwoQubitGates
}

// TwoQubitConnected reports whether the qubits are grid neighbours.
func (d *SquareLatticeDevice) TwoQubitConnected(a, b int) bool {
	n := d.NumberQubits()
	if a < 0 || b < 0 || a >= n || b >= n || a == b {
		return false
	}
	rowA, colA := a/d.config.Columns, a%d.config.Columns
	rowB, colB := b/d.config.Columns, b%d.config.Columns
	if rowA == rowB {
		return colA-colB == 1 || colB-colA == 1
	}
	if colA == colB {
		return rowA-rowB == 1 || rowB-rowA == 1
	}
	return false
}

func (d *SquareLatticeDevice) DampingRate(qubit int) float64 {
	if rate, ok := d.config.DampingRateOverrides[qubit]; ok {
		return rate
	}
	return d.config.DampingRate
}

func (d *SquareLatticeDevice) DephasingRate(qubit int) float64 {
	if rate, ok := d.config.DephasingRateOverrides[qubit]; ok {
		return rate
	}
	return d.config.DephasingRate
}

func (d *SquareLatticeDevice) DepolarisationRate(qubit int) float64 {
	if rate, ok := d.config.DepolarisationRateOverrides[qubit]; ok {
		return rate
	}
	return d.config.DepolarisationRate
}

func (d *SquareLatticeDevice) MeasurementError(qubit int) (MeasurementError, bool) {
	me, ok := d.config.MeasurementErrors[qubit]
	return me, ok
}

// Config returns a copy of the device configuration.
func (d *SquareLatticeDevice) Config() SquareLatticeConfig {
	return d.config
}

// MarshalYAML serializes the device through its config.
func (d *SquareLatticeDevice) MarshalYAML() (interface{}, error) {
	return d.config, nil
}

// UnmarshalYAML restores the device from its config.
func (d *SquareLatticeDevice) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var config SquareLatticeConfig
	if err := unmarshal(&config); err != nil {
		return err
	}
	restored, err := NewSquareLatticeDevice(config)
	if err != nil {
		return err
	}
	*d = *restored
	return nil
}

// LoadSquareLatticeDevice restores a device from serialized yaml config.
func LoadSquareLatticeDevice(raw []byte) (*SquareLatticeDevice, error) {
	var config SquareLatticeConfig
	if err := yaml.Unmarshal(raw, &config); err != nil {
		return nil, errors.Wrap(err, "parsing device config")
	}
	return NewSquareLatticeDevice(config)
}
