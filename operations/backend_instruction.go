package operations

// BackendTarget is the closed set of execution backends that pragmas can
// address with argument overrides.
type BackendTarget int

const (
	BackendUnspecified BackendTarget = iota
	BackendQuEST
	BackendBraket
	BackendPyquil
	BackendAQT
	BackendCirq
	BackendCirqCode
)

var backendTargetNames = map[BackendTarget]string{
	BackendUnspecified: "unspecified",
	BackendQuEST:       "quest",
	BackendBraket:      "braket",
	BackendPyquil:      "pyquil",
	BackendAQT:         "aqt",
	BackendCirq:        "cirq",
	BackendCirqCode:    "cirq_code",
}

func (t BackendTarget) String() string {
	if name, ok := backendTargetNames[t]; ok {
		return name
	}
	return "unknown"
}

// Instruction is a typed set of backend argument overrides. Nil pointer
// fields and false flags leave the backend's own configuration untouched.
type Instruction struct {
	NumberMeasurements *int
	Readout            *string
	UseDensityMatrix   bool
	RandomPauliErrors  bool
	Substitutions      map[string]float64
}

// BackendInstructor is implemented by pragmas that override backend
// arguments during execution. A nil return means the pragma has nothing to
// say to the given target.
type BackendInstructor interface {
	BackendInstruction(target BackendTarget) *Instruction
}
