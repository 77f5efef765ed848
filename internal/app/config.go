package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // .hcl file or directory of .hcl files

	// Sets are "path=value" assignments applied to variables before
	// scheduling; the assigned variables form the independent set.
	Sets []string
	// Targets are dotted paths of the variables whose up-to-date values
	// are requested; they form the dependent set. Empty means every
	// computed variable.
	Targets []string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
