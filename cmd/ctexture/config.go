package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/wadtools/ctexture"
)

// Config is the configuration of the command, read from TOML or YAML.
//
// Example in TOML:
//
//	archives = ["iwad", "mymod"]
//	palette = "iwad/PLAYPAL.lmp"
//	output = "out"
//	force_rgba = true
//	max_depth = 8
//	scaled = true
//	cache_size = 512
//	log_level = "warn"
type Config struct {
	// Archives are directories opened in order; later ones take priority.
	Archives []string `toml:"archives" yaml:"archives"`

	// Palette is a PLAYPAL file. When empty, the PLAYPAL lump of the
	// archives is used if there is one.
	Palette string `toml:"palette" yaml:"palette"`

	// Output is the directory rendered and converted files are written to.
	Output string `toml:"output" yaml:"output"`

	ForceRGBA bool `toml:"force_rgba" yaml:"force_rgba"`
	MaxDepth  int  `toml:"max_depth" yaml:"max_depth"`

	// CacheSize bounds the number of decoded patches kept while rendering.
	CacheSize int `toml:"cache_size" yaml:"cache_size"`

	// Scaled also writes a preview of each render resized to world units.
	Scaled bool `toml:"scaled" yaml:"scaled"`

	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Output:    ".",
		MaxDepth:  ctexture.DefaultMaxDepth,
		CacheSize: 512,
		LogLevel:  "warn",
	}
}

// LoadConfig reads a configuration file over the defaults. Files ending in
// .yaml or .yml are YAML; anything else is TOML. Unknown keys are an error.
// Relative archive and palette paths are taken relative to the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	decode := decodeConfig
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
		decode = decodeYAMLConfig
	}
	if err := decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i, a := range cfg.Archives {
		cfg.Archives[i] = resolvePath(base, a)
	}
	if cfg.Palette != "" {
		cfg.Palette = resolvePath(base, cfg.Palette)
	}
	return cfg, nil
}

func decodeConfig(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

func decodeYAMLConfig(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return cfg.Validate()
}

// Validate checks values that TOML typing cannot.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// Marshal encodes the configuration as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
