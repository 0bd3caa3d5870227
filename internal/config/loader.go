package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalPath is the project-local config file.
const LocalPath = "configs/b2048.yaml"

// Load reads the configuration.
// Search order: customPath -> ~/.b2048/config.yaml -> ./configs/b2048.yaml -> embedded default.
// Only an explicit customPath that cannot be read or parsed is an error; a
// broken file further down the list is skipped. Missing fields keep their
// default values.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return Default(), err
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath(), LocalPath} {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil {
			return cfg, cfg.Validate()
		}
	}

	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil
	}
	cfg.Source = "embedded"
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// userConfigPath returns ~/.b2048/config.yaml, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".b2048", "config.yaml")
}
