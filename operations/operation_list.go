package operations

// OperationList is an ordered sequence of operations. Measurement pragmas
// carry basis change circuits as operation lists so that the circuit type
// can be layered on top of this package without an import cycle.
type OperationList []Operation

func (l OperationList) Clone() OperationList {
	if l == nil {
		return nil
	}
	out := make(OperationList, len(l))
	for i, op := range l {
		out[i] = op.Clone()
	}
	return out
}

func (l OperationList) Equal(other OperationList) bool {
	if len(l) != len(other) {
		return false
	}
	for i, op := range l {
		if !op.Equal(other[i]) {
			return false
		}
	}
	return true
}

func (l OperationList) RemapQubits(mapping map[int]int) error {
	for _, op := range l {
		if err := op.RemapQubits(mapping); err != nil {
			return err
		}
	}
	return nil
}

func (l OperationList) MarshalYAML() (interface{}, error) {
	out := make([]Config, len(l))
	for i, op := range l {
		cfg, err := ToConfig(op)
		if err != nil {
			return nil, err
		}
		out[i] = cfg
	}
	return out, nil
}

func (l *OperationList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw []Config
	if err := unmarshal(&raw); err != nil {
		return err
	}
	out := make(OperationList, len(raw))
	for i, cfg := range raw {
		op, err := FromConfig(cfg)
		if err != nil {
			return err
		}
		out[i] = op
	}
	*l = out
	return nil
}
