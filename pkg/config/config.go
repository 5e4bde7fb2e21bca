// Package config holds the settings for one run. A Config is built once at
// startup and passed down; nothing in the module reads global path state.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"antibio/pkg/logging"
)

// Config holds the directories, input file and chart settings of a run.
type Config struct {
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`
	ImagesDir string `yaml:"images_dir"`

	// InputFile is looked up inside InputDir.
	InputFile      string `yaml:"input_file"`
	InputDelimiter string `yaml:"input_delimiter"`

	LogLevel string `yaml:"log_level"`

	// DistributionDay restricts the cecal/ileal views to one experimental
	// day. Nil keeps every day.
	DistributionDay *int `yaml:"distribution_day"`

	Chart ChartConfig `yaml:"chart"`
}

// ChartConfig is the canvas size of every rendered image, in inches.
type ChartConfig struct {
	WidthIn  float64 `yaml:"width_in"`
	HeightIn float64 `yaml:"height_in"`
}

// Default returns the layout the tool uses when nothing is configured:
// input/, output/ and images/ under the working directory.
func Default() Config {
	return Config{
		InputDir:       "input",
		OutputDir:      "output",
		ImagesDir:      "images",
		InputFile:      "data_small.csv",
		InputDelimiter: ";",
		LogLevel:       "info",
		Chart: ChartConfig{
			WidthIn:  10,
			HeightIn: 6,
		},
	}
}

// Load reads a YAML file over the defaults and applies environment
// overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	strs := map[string]*string{
		"ANTIBIO_INPUT_DIR":  &c.InputDir,
		"ANTIBIO_OUTPUT_DIR": &c.OutputDir,
		"ANTIBIO_IMAGES_DIR": &c.ImagesDir,
		"ANTIBIO_INPUT_FILE": &c.InputFile,
		"ANTIBIO_LOG_LEVEL":  &c.LogLevel,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("ANTIBIO_DISTRIBUTION_DAY"); v != "" {
		day, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ANTIBIO_DISTRIBUTION_DAY: %w", err)
		}
		c.DistributionDay = &day
	}
	return nil
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var errs []error
	for name, v := range map[string]string{
		"input_dir":  c.InputDir,
		"output_dir": c.OutputDir,
		"images_dir": c.ImagesDir,
		"input_file": c.InputFile,
	} {
		if v == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", name))
		}
	}
	if len(c.InputDelimiter) != 1 {
		errs = append(errs, fmt.Errorf("input_delimiter must be a single byte, got %q", c.InputDelimiter))
	}
	if c.Chart.WidthIn <= 0 || c.Chart.HeightIn <= 0 {
		errs = append(errs, fmt.Errorf("chart size must be positive, got %gx%g", c.Chart.WidthIn, c.Chart.HeightIn))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Delimiter returns the input delimiter as a byte. Call Validate first.
func (c Config) Delimiter() byte {
	if c.InputDelimiter == "" {
		return ';'
	}
	return c.InputDelimiter[0]
}

// InputPath is the full path of the input table.
func (c Config) InputPath() string {
	return filepath.Join(c.InputDir, c.InputFile)
}

// EnsureDirs creates the input, output and images directories if absent.
func (c Config) EnsureDirs() error {
	for _, dir := range []string{c.InputDir, c.OutputDir, c.ImagesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
