// Package config holds the settings of one join run.
//
// Settings come from an optional YAML job file and are then overridden by
// command line flags:
//
//	inputs: [file0.csv, file1.csv]
//	join: ["0:city", "1:city"]
//	out_cols:
//	  - 0:city
//	  - spec: 0:foo + 1:bar
//	    label: total
//	format: jsonl
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vegasq/csvjoin/internal/logging"
	"github.com/vegasq/csvjoin/output"
)

var (
	// ErrTooFewInputs is returned when fewer than two inputs are configured
	ErrTooFewInputs = errors.New("at least two input files are required")

	// ErrNoOutputColumns is returned when no output column is configured
	ErrNoOutputColumns = errors.New("at least one output column is required")

	// ErrInvalidValue is returned for a setting outside its allowed range
	ErrInvalidValue = errors.New("invalid configuration value")
)

// OutputColumn is one output column spec with an optional header label.
//
// In YAML it is either a plain string (the spec) or a mapping with spec and
// label keys.
type OutputColumn struct {
	Spec  string `yaml:"spec"`
	Label string `yaml:"label,omitempty"`
}

// UnmarshalYAML accepts both the scalar and the mapping form
func (o *OutputColumn) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		o.Spec = node.Value
		o.Label = ""
		return nil
	}
	type plain OutputColumn
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*o = OutputColumn(p)
	return nil
}

// Config is the full set of run settings
type Config struct {
	Inputs     []string       `yaml:"inputs"`
	Join       []string       `yaml:"join"`
	OutCols    []OutputColumn `yaml:"out_cols"`
	Output     string         `yaml:"output"`
	Format     string         `yaml:"format"`
	Separator  string         `yaml:"sep"`
	OutSep     string         `yaml:"out_sep"`
	Header     bool           `yaml:"header"`
	IgnoreCase bool           `yaml:"ignore_case"`
	Workers    int            `yaml:"workers"`
	Limit      int            `yaml:"limit"`
	LogLevel   string         `yaml:"log_level"`
	SeqURL     string         `yaml:"seq_url"`
}

// Default returns the settings used when neither a job file nor a flag sets
// a value
func Default() Config {
	return Config{
		Output:    "-",
		Format:    "csv",
		Separator: ",",
		OutSep:    ",",
		Workers:   1,
		LogLevel:  "warn",
	}
}

// Load reads a YAML job file on top of the defaults. Unknown keys are
// rejected. Relative input paths are taken relative to the job file.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i, input := range cfg.Inputs {
		if input != "-" && input != "" && !filepath.IsAbs(input) {
			cfg.Inputs[i] = filepath.Join(dir, input)
		}
	}
	return cfg, nil
}

// Decode parses a YAML job document on top of the defaults
func Decode(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// OutputSpecs returns the spec text of every output column
func (c *Config) OutputSpecs() []string {
	specs := make([]string, len(c.OutCols))
	for i, col := range c.OutCols {
		specs[i] = col.Spec
	}
	return specs
}

// Labels returns the header label of every output column, defaulting to
// the spec text
func (c *Config) Labels() []string {
	labels := make([]string, len(c.OutCols))
	for i, col := range c.OutCols {
		labels[i] = col.Label
		if labels[i] == "" {
			labels[i] = strings.TrimSpace(col.Spec)
		}
	}
	return labels
}

// Validate checks settings that do not depend on the input data. Column
// references are checked later against the loaded tables.
func (c *Config) Validate() error {
	if len(c.Inputs) < 2 {
		return fmt.Errorf("%w (got %d)", ErrTooFewInputs, len(c.Inputs))
	}
	if len(c.OutCols) == 0 {
		return ErrNoOutputColumns
	}
	for i, input := range c.Inputs {
		if strings.TrimSpace(input) == "" {
			return fmt.Errorf("%w: input %d is empty", ErrInvalidValue, i)
		}
	}
	if c.Separator == "" {
		return fmt.Errorf("%w: separator must not be empty", ErrInvalidValue)
	}
	if c.OutSep == "" {
		return fmt.Errorf("%w: output separator must not be empty", ErrInvalidValue)
	}
	if c.Format != "" && !slices.Contains(output.Formats, strings.ToLower(c.Format)) {
		return fmt.Errorf("%w: format %q (want one of %s)", ErrInvalidValue, c.Format, strings.Join(output.Formats, ", "))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidValue, c.Workers)
	}
	if c.Limit < 0 {
		return fmt.Errorf("%w: limit must be >= 0, got %d", ErrInvalidValue, c.Limit)
	}
	return nil
}
