package operations

import (
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Config is the structured, JSON-representable serialization tree shared by
// every entity in the toolkit.
type Config map[string]interface{}

// registry maps an operation name to a zero-value constructor used by
// FromConfig. Every variant registers itself in an init function of its
// defining file.
var registry = map[string]func() Operation{}

func register(name string, ctor func() Operation) {
	registry[name] = ctor
}

// ToConfig serializes an operation into its config tree. The "type" key
// holds the operation name; the remaining keys are the operation's fields.
func ToConfig(op Operation) (Config, error) {
	raw, err := yaml.Marshal(op)
	if err != nil {
		return nil, errors.Wrapf(err, "serializing %s", op.Name())
	}
	cfg := Config{}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrapf(err, "serializing %s", op.Name())
	}
	cfg["type"] = op.Name()
	return cfg, nil
}

// FromConfig restores an operation from its config tree. The operation type
// is selected by the "type" key.
func FromConfig(cfg Config) (Operation, error) {
	name, ok := cfg["type"].(string)
	if !ok {
		return nil, errors.New("operation config is missing the type key")
	}
	ctor, ok := registry[name]
	if !ok {
		return nil, errors.Errorf("unknown operation type %q", name)
	}
	body := make(map[string]interface{}, len(cfg))
	for key, val := range cfg {
		if key == "type" {
			continue
		}
		body[key] = val
	}
	raw, err := yaml.Marshal(body)
	if err != nil {
		return nil, errors.Wrapf(err, "restoring %s", name)
	}
	op := ctor()
	if err := yaml.Unmarshal(raw, op); err != nil {
		return nil, errors.Wrapf(err, "restoring %s", name)
	}
	return op, nil
}
