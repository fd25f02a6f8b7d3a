// Package config loads gameplay tuning from a YAML file with env-var
// overrides, and server settings from the environment.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level YAML config file shape.
type Config struct {
	Tuning  Tuning `yaml:"tuning" json:"tuning"`
	Catalog string `yaml:"catalog" json:"catalog"` // optional content overlay path
}

// Load reads a config file and applies defaults. A missing file is not an
// error: the defaults are the shipped game balance.
func Load(path string) (*Config, error) {
	c := &Config{Tuning: Default()}
	if path == "" {
		return c, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	c.Tuning.ApplyDefaults()
	return c, nil
}
