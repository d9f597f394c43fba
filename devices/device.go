// Package devices describes the quantum hardware a circuit is compiled
// for: qubit count, connectivity, available gates, decoherence rates and
// readout error probabilities.
package devices

// MeasurementError holds the readout error probabilities of one qubit.
type MeasurementError struct {
	Prob0As1 float64 `yaml:"prob_0_as_1"`
	Prob1As0 float64 `yaml:"prob_1_as_0"`
}

// Device is the hardware description consumed by backends and the
// measurement-mitigation engine.
type Device interface {
	// NumberQubits returns the number of physical qubits regardless of
	// connectivity.
	NumberQubits() int
	// AvailableOneQubitGates lists the native single-qubit gate names.
	AvailableOneQubitGates() []string
	// AvailableTwoQubitGates lists the native two-qubit gate names.
	AvailableTwoQubitGates() []string
	// TwoQubitConnected reports whether a universal two-qubit gate links
	// the pair.
	TwoQubitConnected(a, b int) bool
	// DampingRate returns the damping rate of the qubit.
	DampingRate(qubit int) float64
	// DephasingRate returns the dephasing rate of the qubit.
	DephasingRate(qubit int) float64
	// DepolarisationRate returns the depolarisation rate of the qubit.
	DepolarisationRate(qubit int) float64
	// MeasurementError returns the readout error probabilities of the
	// qubit; ok is false when the device carries no entry for it.
	MeasurementError(qubit int) (MeasurementError, bool)
}

// AvailableGates returns the combined native gate list of a device,
// one-qubit gates first.
func AvailableGates(d Device) []string {
	return append(append([]string(nil), d.AvailableOneQubitGates()...),
		d.AvailableTwoQubitGates()...)
}

// DepolarisationFromT1 converts a hardware T1 time into a depolarisation
// rate.
func DepolarisationFromT1(t1 float64) float64 {
	return 1 / t1
}

// DephasingFromT1T2 converts hardware T1 and T2 times into a dephasing
// rate 1/t2 - 1/(2 t1).
func DephasingFromT1T2(t1, t2 float64) float64 {
	return 1/t2 - 1/(2*t1)
}
