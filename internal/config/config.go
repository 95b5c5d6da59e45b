// Package config provides configuration types and defaults for mediameta.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	coreerrors "github.com/five82/mediameta/internal/errors"
	"github.com/five82/mediameta/internal/metadata"
)

// Default constants
const (
	// DefaultFFprobePath is the ffprobe executable looked up on PATH.
	DefaultFFprobePath = "ffprobe"

	// DefaultJobs inspects files one at a time.
	DefaultJobs = 1

	// MaxJobs caps parallel inspection.
	MaxJobs = 64

	// EnvConfigPath overrides the default config file location.
	EnvConfigPath = "MEDIAMETA_CONFIG"
)

// Format selects how reports are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a string into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: '%s', valid options: text, json, yaml", ErrInvalidFormat, s)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// Config holds all configuration for an inspection run.
type Config struct {
	// Report toggles
	IncludeChecksum bool `yaml:"checksum"`
	IncludeTags     bool `yaml:"tags"`
	IncludeAllTags  bool `yaml:"all_tags"`
	DecodeFrames    bool `yaml:"decode_frames"`

	// Output
	Format   Format `yaml:"format"`
	Progress bool   `yaml:"progress"` // Checksum progress bar on a terminal
	NoColor  bool   `yaml:"no_color"`

	// Processing options
	FFprobePath string `yaml:"ffprobe"`
	Jobs        int    `yaml:"jobs"`
	Recursive   bool   `yaml:"recursive"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Format:      FormatText,
		Progress:    true,
		FFprobePath: DefaultFFprobePath,
		Jobs:        DefaultJobs,
	}
}

// DefaultPath returns $MEDIAMETA_CONFIG, or config.yaml under the user config
// directory.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mediameta", "config.yaml")
}

// Load overlays the YAML file at path onto the defaults. An empty path loads
// DefaultPath, where a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, coreerrors.NewConfigError(fmt.Sprintf("failed to open config file %s", path), err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, coreerrors.NewConfigError(fmt.Sprintf("failed to parse config file %s", path), err)
	}

	if cfg.Format != "" {
		format, err := ParseFormat(string(cfg.Format))
		if err != nil {
			return nil, coreerrors.NewConfigError(fmt.Sprintf("invalid config file %s", path), err)
		}
		cfg.Format = format
	}
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, coreerrors.NewConfigError(fmt.Sprintf("invalid config file %s", path), err)
	}
	return cfg, nil
}

// Normalize applies implied settings: all tags implies tags.
func (c *Config) Normalize() {
	if c.IncludeAllTags {
		c.IncludeTags = true
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: '%s', valid options: text, json, yaml", ErrInvalidFormat, c.Format)
	}

	if c.Jobs < 1 || c.Jobs > MaxJobs {
		return fmt.Errorf("%w: must be 1-%d, got %d", ErrInvalidJobs, MaxJobs, c.Jobs)
	}

	if strings.TrimSpace(c.FFprobePath) == "" {
		return ErrEmptyFFprobePath
	}

	return nil
}

// InspectOptions returns the aggregate toggles selected by the config.
func (c *Config) InspectOptions() metadata.Options {
	return metadata.Options{
		IncludeChecksum: c.IncludeChecksum,
		IncludeTags:     c.IncludeTags || c.IncludeAllTags,
		IncludeAllTags:  c.IncludeAllTags,
		DecodeFrames:    c.DecodeFrames,
	}
}
