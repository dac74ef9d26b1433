// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// runConfig is the full parameter set of one invocation. Values come from
// the defaults, then the YAML file given by --config, then explicit flags.
type runConfig struct {
	Points        string  `yaml:"points"`
	Sigma         float64 `yaml:"sigma"`
	Kernel        string  `yaml:"kernel"`
	Profile       string  `yaml:"profile"`
	Diagonal      float64 `yaml:"diagonal"`
	Workers       int     `yaml:"workers"`
	Format        string  `yaml:"format"`
	K             int     `yaml:"k"`
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
	Vectors       bool    `yaml:"vectors"`
	Verbose       bool    `yaml:"verbose"`
}

func defaultConfig() runConfig {
	return runConfig{
		Sigma:    1,
		Kernel:   "gaussian",
		Profile:  "default",
		Diagonal: 1,
		Format:   formatText,
		K:        6,
	}
}

// loadConfig overlays the YAML file at path onto base. Unknown keys are errors.
func loadConfig(path string, base runConfig) (runConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	cfg := base
	if err = dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// overlayFlags copies every flag the user set explicitly from flags into cfg.
func overlayFlags(cmd *cobra.Command, cfg, flags runConfig) runConfig {
	set := cmd.Flags().Changed
	if set("points") {
		cfg.Points = flags.Points
	}
	if set("sigma") {
		cfg.Sigma = flags.Sigma
	}
	if set("kernel") {
		cfg.Kernel = flags.Kernel
	}
	if set("profile") {
		cfg.Profile = flags.Profile
	}
	if set("diagonal") {
		cfg.Diagonal = flags.Diagonal
	}
	if set("workers") {
		cfg.Workers = flags.Workers
	}
	if set("format") {
		cfg.Format = flags.Format
	}
	if set("k") {
		cfg.K = flags.K
	}
	if set("tolerance") {
		cfg.Tolerance = flags.Tolerance
	}
	if set("max-iterations") {
		cfg.MaxIterations = flags.MaxIterations
	}
	if set("vectors") {
		cfg.Vectors = flags.Vectors
	}
	if set("verbose") {
		cfg.Verbose = flags.Verbose
	}

	return cfg
}

func (c runConfig) validate() error {
	switch {
	case c.Points == "":
		return fmt.Errorf("no point file: set --points or points in the config")
	case c.Format != formatText && c.Format != formatJSON:
		return fmt.Errorf("format %q: want %s or %s", c.Format, formatText, formatJSON)
	case c.Workers < 0:
		return fmt.Errorf("workers %d must be ≥ 0", c.Workers)
	case c.MaxIterations < 0:
		return fmt.Errorf("max-iterations %d must be ≥ 0", c.MaxIterations)
	case c.Tolerance < 0 || c.Tolerance >= 1:
		return fmt.Errorf("tolerance %g outside [0, 1)", c.Tolerance)
	}

	return nil
}
