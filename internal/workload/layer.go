package workload

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Service field values used by the charm's layer.
const (
	StartupEnabled  = "enabled"
	OverrideReplace = "replace"
)

// Layer is a Pebble configuration layer.
type Layer struct {
	Summary     string              `yaml:"summary,omitempty"`
	Description string              `yaml:"description,omitempty"`
	Services    map[string]*Service `yaml:"services,omitempty"`
}

// Service is one service entry of a layer.
type Service struct {
	Override string `yaml:"override"`
	Summary  string `yaml:"summary,omitempty"`
	Command  string `yaml:"command"`
	Startup  string `yaml:"startup,omitempty"`
}

// Marshal encodes the layer as Pebble layer YAML.
func (l *Layer) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal layer: %w", err)
	}
	return data, nil
}
