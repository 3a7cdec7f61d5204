package app

import "errors"

// Config holds all the configuration an App instance needs to run.
type Config struct {
	ModulesPath string // extra .hcl manifests, override embedded ones

	LogFormat string
	LogLevel  string

	Module     string   // symbolic name of the module to run
	ModuleArgs []string // raw arguments for the module's ports
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Module == "" {
		return nil, errors.New("a module name is required")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}
	return &cfg, nil
}
