package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/apexsim/apexsim/sim"
)

// LoadConfig returns the tuning configuration: defaults when path is
// empty, otherwise defaults with the yaml file's fields layered on top.
// Partial files are fine — anything the file omits keeps its default.
func LoadConfig(path string) (*sim.Config, error) {
	cfg := sim.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
