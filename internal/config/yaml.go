package config

import (
	"gopkg.in/yaml.v3"
)

// YAML adapts yaml.v3 to the koanf.Parser interface.
type YAML struct{}

// YAMLParser returns a koanf parser for YAML config files.
func YAMLParser() *YAML {
	return &YAML{}
}

// Unmarshal parses YAML bytes into a nested map. An empty document yields an empty map.
func (p *YAML) Unmarshal(b []byte) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]interface{}{}
	}
	return out, nil
}

// Marshal encodes a map as YAML.
func (p *YAML) Marshal(o map[string]interface{}) ([]byte, error) {
	return yaml.Marshal(o)
}
