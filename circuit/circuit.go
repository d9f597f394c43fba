// Package circuit implements the linear operation sequence making up a
// quantum program. Register definitions are kept at the front of the
// sequence regardless of insertion order.
package circuit

import (
	"strings"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/HQSquantumsimulations/qoqo/operations"
)

// ErrDefinitionSlot is returned when a non-definition operation is written
// into an index belonging to the definition block.
var ErrDefinitionSlot = errors.New("definition index can only hold a Definition")

// Circuit is a strictly linear sequence of operations. Definitions always
// come first; indexing is over the combined sequence.
type Circuit struct {
	definitions []*operations.Definition
	ops         []operations.Operation
}

// New returns an empty circuit.
func New() *Circuit {
	return &Circuit{}
}

// Add appends an operation. Definitions move to the front block and are
// deduplicated by value; everything else is appended to the operation
// sequence.
func (c *Circuit) Add(op operations.Operation) {
	if def, ok := op.(*operations.Definition); ok {
		c.addDefinition(def)
		return
	}
	c.ops = append(c.ops, op)
}

func (c *Circuit) addDefinition(def *operations.Definition) {
	for _, existing := range c.definitions {
		if existing.Equal(def) {
			return
		}
	}
	c.definitions = append(c.definitions, def)
}

// AddCircuit appends all elements of other, keeping the definitions-first
// order and deduplicating other's definitions.
func (c *Circuit) AddCircuit(other *Circuit) {
	for _, def := range other.definitions {
		c.addDefinition(def)
	}
	c.ops = append(c.ops, other.ops...)
}

// Concatenate returns a fresh circuit holding the elements of both inputs.
func Concatenate(left, right *Circuit) *Circuit {
	out := New()
	out.AddCircuit(left)
	out.AddCircuit(right)
	return out
}

// Len returns the number of definitions plus operations.
func (c *Circuit) Len() int {
	return len(c.definitions) + len(c.ops)
}

// Definitions returns the definition block.
func (c *Circuit) Definitions() []*operations.Definition {
	return c.definitions
}

// Operations returns the operation sequence after the definition block.
func (c *Circuit) Operations() []operations.Operation {
	return c.ops
}

// All returns the combined sequence, definitions first.
func (c *Circuit) All() []operations.Operation {
	out := make([]operations.Operation, 0, c.Len())
	for _, def := range c.definitions {
		out = append(out, def)
	}
	out = append(out, c.ops...)
	return out
}

// Get returns the element at the combined index.
func (c *Circuit) Get(index int) (operations.Operation, error) {
	if index < 0 || index >= c.Len() {
		return nil, errors.Errorf("circuit index %d out of range [0, %d)", index, c.Len())
	}
	if index < len(c.definitions) {
		return c.definitions[index], nil
	}
	return c.ops[index-len(c.definitions)], nil
}

// Set replaces the element at the combined index. An index inside the
// definition block only accepts another Definition.
func (c *Circuit) Set(index int, op operations.Operation) error {
	if index < 0 || index >= c.Len() {
		return errors.Errorf("circuit index %d out of range [0, %d)", index, c.Len())
	}
	if index < len(c.definitions) {
		def, ok := op.(*operations.Definition)
		if !ok {
			return errors.Wrapf(ErrDefinitionSlot, "index %d", index)
		}
		c.definitions[index] = def
		return nil
	}
	c.ops[index-len(c.definitions)] = op
	return nil
}

// Delete removes the element at the combined index.
func (c *Circuit) Delete(index int) error {
	if index < 0 || index >= c.Len() {
		return errors.Errorf("circuit index %d out of range [0, %d)", index, c.Len())
	}
	if index < len(c.definitions) {
		c.definitions = append(c.definitions[:index], c.definitions[index+1:]...)
		return nil
	}
	opIndex := index - len(c.definitions)
	c.ops = append(c.ops[:opIndex], c.ops[opIndex+1:]...)
	return nil
}

// Insert places an operation at the combined index. Definitions are routed
// to the definition block regardless of the index; indices inside the
// definition block insert at the start of the operation sequence.
func (c *Circuit) Insert(index int, op operations.Operation) {
	if def, ok := op.(*operations.Definition); ok {
		c.addDefinition(def)
		return
	}
	opIndex := index - len(c.definitions)
	if opIndex < 0 {
		opIndex = 0
	}
	if opIndex > len(c.ops) {
		opIndex = len(c.ops)
	}
	c.ops = append(c.ops, nil)
	copy(c.ops[opIndex+1:], c.ops[opIndex:])
	c.ops[opIndex] = op
}

// CountOccurrences counts the elements carrying at least one of the given
// family tags. An empty tag set counts every element.
func (c *Circuit) CountOccurrences(tags ...string) int {
	count := 0
	for _, op := range c.All() {
		if len(tags) == 0 {
			count++
			continue
		}
		for _, tag := range tags {
			if operations.HasTag(op, tag) {
				count++
				break
			}
		}
	}
	return count
}

// OperationTypes returns the distinct operation names in order of first
// appearance.
func (c *Circuit) OperationTypes() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, op := range c.All() {
		name := op.Name()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// IsParametrized reports whether any operation still carries symbolic
// parameters.
func (c *Circuit) IsParametrized() bool {
	for _, op := range c.ops {
		if op.IsParametrized() {
			return true
		}
	}
	return false
}

// SubstituteParameters resolves symbolic parameters in place across all
// operations.
func (c *Circuit) SubstituteParameters(bindings map[string]float64) error {
	for _, op := range c.All() {
		if err := op.SubstituteParameters(bindings); err != nil {
			return errors.Wrapf(err, "substituting in %s", op.Name())
		}
	}
	return nil
}

// RemapQubits rewrites the qubit indices of every operation.
func (c *Circuit) RemapQubits(mapping map[int]int) error {
	for _, op := range c.ops {
		if err := op.RemapQubits(mapping); err != nil {
			return errors.Wrapf(err, "remapping %s", op.Name())
		}
	}
	return nil
}

// InvolvedQubits returns the union of the qubit sets of all operations.
func (c *Circuit) InvolvedQubits() operations.InvolvedQubits {
	qubits := make([]int, 0)
	for _, op := range c.ops {
		involved := op.InvolvedQubits()
		if involved.All {
			return operations.QubitsAll()
		}
		qubits = append(qubits, involved.Qubits...)
	}
	return operations.QubitsOf(qubits...)
}

// ToHQSLang renders the circuit as one HQS-Lang line per element.
func (c *Circuit) ToHQSLang() []string {
	lines := make([]string, 0, c.Len())
	for _, op := range c.All() {
		lines = append(lines, op.ToHQSLang())
	}
	return lines
}

// String joins the HQS-Lang lines with newlines.
func (c *Circuit) String() string {
	lines := c.ToHQSLang()
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Equal compares both sequences element-wise by value.
func (c *Circuit) Equal(other *Circuit) bool {
	if other == nil {
		return false
	}
	if len(c.definitions) != len(other.definitions) || len(c.ops) != len(other.ops) {
		return false
	}
	for i, def := range c.definitions {
		if !def.Equal(other.definitions[i]) {
			return false
		}
	}
	for i, op := range c.ops {
		if !op.Equal(other.ops[i]) {
			return false
		}
	}
	return true
}

// Copy returns a circuit with fresh sequences referencing the same
// operation values.
func (c *Circuit) Copy() *Circuit {
	return &Circuit{
		definitions: append([]*operations.Definition(nil), c.definitions...),
		ops:         append([]operations.Operation(nil), c.ops...),
	}
}

// DeepCopy returns a circuit with independent clones of every element.
func (c *Circuit) DeepCopy() *Circuit {
	out := &Circuit{
		definitions: make([]*operations.Definition, len(c.definitions)),
		ops:         make([]operations.Operation, len(c.ops)),
	}
	for i, def := range c.definitions {
		out.definitions[i] = def.Clone().(*operations.Definition)
	}
	for i, op := range c.ops {
		out.ops[i] = op.Clone()
	}
	return out
}

type circuitConfig struct {
	Definitions []operations.Config `yaml:"definitions"`
	Operations  []operations.Config `yaml:"operations"`
}

// ToConfig serializes the circuit into its config tree, splitting the
// definition block and the operation sequence.
func (c *Circuit) ToConfig() (operations.Config, error) {
	body := circuitConfig{
		Definitions: make([]operations.Config, 0, len(c.definitions)),
		Operations:  make([]operations.Config, 0, len(c.ops)),
	}
	for _, def := range c.definitions {
		cfg, err := operations.ToConfig(def)
		if err != nil {
			return nil, err
		}
		body.Definitions = append(body.Definitions, cfg)
	}
	for _, op := range c.ops {
		cfg, err := operations.ToConfig(op)
		if err != nil {
			return nil, err
		}
		body.Operations = append(body.Operations, cfg)
	}
	raw, err := yaml.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "serializing circuit")
	}
	out := operations.Config{}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, errors.Wrap(err, "serializing circuit")
	}
	return out, nil
}

// FromConfig restores a circuit from its config tree.
func FromConfig(cfg operations.Config) (*Circuit, error) {
	raw, err := yaml.Marshal(map[string]interface{}(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "restoring circuit")
	}
	var body circuitConfig
	if err := yaml.Unmarshal(raw, &body); err != nil {
		return nil, errors.Wrap(err, "restoring circuit")
	}
	out := New()
	for _, entry := range body.Definitions {
		op, err := operations.FromConfig(entry)
		if err != nil {
			return nil, errors.Wrap(err, "restoring circuit definition")
		}
		out.Add(op)
	}
	for _, entry := range body.Operations {
		op, err := operations.FromConfig(entry)
		if err != nil {
			return nil, errors.Wrap(err, "restoring circuit operation")
		}
		out.Add(op)
	}
	return out, nil
}

// MarshalYAML serializes the circuit through its config tree.
func (c *Circuit) MarshalYAML() (interface{}, error) {
	cfg, err := c.ToConfig()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}(cfg), nil
}

// UnmarshalYAML restores the circuit through its config tree.
func (c *Circuit) UnmarshalYAML(unmarshal func(interface{}) error) error {
	cfg := operations.Config{}
	if err := unmarshal(&cfg); err != nil {
		return err
	}
	restored, err := FromConfig(cfg)
	if err != nil {
		return err
	}
	*c = *restored
	return nil
}
