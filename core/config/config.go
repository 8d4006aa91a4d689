// Package config loads the reporter configuration from TOML.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// XMP error policies.
const (
	// OnErrorAbort stops the batch at the first malformed XMP packet.
	OnErrorAbort = "abort"
	// OnErrorSkip logs the error and reports the image without XMP.
	OnErrorSkip = "skip"
)

// Config holds the directories and policies of a reporting run.
type Config struct {
	DataDir      string `toml:"data_dir"`
	InputDir     string `toml:"input_dir"`
	OutputDir    string `toml:"output_dir"`
	ReportSuffix string `toml:"report_suffix"`

	XMP struct {
		OnError string `toml:"on_error"`
	} `toml:"xmp"`

	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// Default returns the built-in configuration: images are read from
// data/images and reports written to data/output.
func Default() *Config {
	cfg := &Config{
		DataDir:      "data",
		InputDir:     filepath.Join("data", "images"),
		OutputDir:    filepath.Join("data", "output"),
		ReportSuffix: ".txt",
	}
	cfg.XMP.OnError = OnErrorAbort
	cfg.Log.Level = "info"
	return cfg
}

// SearchPaths lists where Find looks for a configuration file, in order.
func SearchPaths() []string {
	return []string{
		"imgmeta.toml",
		filepath.Join("config", "imgmeta.toml"),
		filepath.Join(os.Getenv("HOME"), ".imgmeta", "imgmeta.toml"),
	}
}

// Find returns the first existing file among SearchPaths, or "".
func Find() string {
	for _, path := range SearchPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads the configuration at path over the defaults. An empty path
// loads the first file found by Find, or the defaults when there is none.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = Find()
		if path == "" {
			return cfg, nil
		}
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the policy values and required directories.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input_dir is empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is empty")
	}
	if c.ReportSuffix == "" {
		return fmt.Errorf("report_suffix is empty")
	}
	switch strings.ToLower(c.XMP.OnError) {
	case OnErrorAbort, OnErrorSkip:
		c.XMP.OnError = strings.ToLower(c.XMP.OnError)
	default:
		return fmt.Errorf("xmp.on_error must be %q or %q, got %q", OnErrorAbort, OnErrorSkip, c.XMP.OnError)
	}
	return nil
}

// EnsureDirs creates the data, input and output directories if absent.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.InputDir, c.OutputDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
