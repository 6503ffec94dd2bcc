package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".hdrmeta.yaml"

// Config holds tool defaults loaded from an optional .hdrmeta.yaml in the
// working directory.
type Config struct {
	Format  string   `yaml:"format"`  // default output format for scan
	Exclude []string `yaml:"exclude"` // path substrings to skip
}

func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) excluded(path string) bool {
	for _, pattern := range c.Exclude {
		if pattern != "" && strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}
