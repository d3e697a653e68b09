// Package config loads the fluidui YAML configuration.
package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fluidui/pkg/fileio"
)

var ErrInvalid = errors.New("config: invalid")

const (
	GeneratorMarkup   = "markup"
	GeneratorTemplate = "template"
)

// Config is the on-disk configuration. Zero fields in a file keep their
// defaults.
type Config struct {
	Title         string   `yaml:"title"`
	Width         int      `yaml:"width"`
	Height        int      `yaml:"height"`
	DescriptorDir string   `yaml:"descriptor_dir"`
	Output        string   `yaml:"output"`
	Generator     string   `yaml:"generator"`
	Template      string   `yaml:"template"`
	Preview       Preview  `yaml:"preview"`
	Styles        []string `yaml:"styles"`
}

// Preview configures the browser preview shell.
type Preview struct {
	Addr        string `yaml:"addr"`
	OpenBrowser bool   `yaml:"open_browser"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Title:         "fluidui",
		Width:         1024,
		Height:        768,
		DescriptorDir: "./web/vue",
		Output:        "index-tmp.html",
		Generator:     GeneratorMarkup,
		Preview: Preview{
			Addr: "127.0.0.1:8710",
		},
	}
}

// Load reads path from disk and merges it over Default.
func Load(path string) (*Config, error) {
	return LoadFrom(fileio.Default, path)
}

// LoadFrom is Load over an arbitrary file system.
func LoadFrom(files fileio.FileSystem, path string) (*Config, error) {
	cfg := Default()
	data, err := files.ReadFileAsString(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if strings.TrimSpace(data) == "" {
		return cfg, nil
	}
	if err := yaml.Unmarshal([]byte(data), cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Generator = strings.ToLower(strings.TrimSpace(cfg.Generator))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalid, c.Width, c.Height)
	}
	switch c.Generator {
	case GeneratorMarkup:
	case GeneratorTemplate:
	default:
		return fmt.Errorf("%w: unknown generator %q", ErrInvalid, c.Generator)
	}
	return nil
}
