package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Exclude lists extra entry names to ignore during builds, on top of
	// the fixed ignore set. Extras can never remove a fixed name.
	Exclude []string `yaml:"exclude"`
	// Workers bounds concurrent file reads during a build. 1 disables
	// parallel descent.
	Workers int `yaml:"workers"`
	// Listen is the sync server's bind address.
	Listen string `yaml:"listen"`
	// Server is the base URL the client commands talk to.
	Server string `yaml:"server"`
}

func DefaultConfig() *Config {
	return &Config{
		Exclude: []string{},
		Workers: runtime.NumCPU() * 2,
		Listen:  "127.0.0.1:8742",
		Server:  "http://127.0.0.1:8742",
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Initialize Exclude slice if nil (for empty configs)
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	return cfg, nil
}
