package bench

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRunConfig reads a [RunConfig] from a YAML file:
//
//	variant: argon2
//	target_ms: 250
//	tolerance: 0.15
//	rounds: 5
//
// Absent fields keep their zero values and fall back to the package
// defaults inside [NewRunner].
func LoadRunConfig(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("bench: read run config: %w", err)
	}
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("bench: parse run config %s: %w", path, err)
	}
	return cfg, nil
}
