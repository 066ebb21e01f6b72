// Package config loads the optional YAML configuration of the steg tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	steg "github.com/zedseven/textsteg"
	"github.com/zedseven/textsteg/internal/algos"
)

// FileConfig is the on-disk YAML configuration shape. Unset fields are nil so
// that layers can be merged and flags can override them.
type FileConfig struct {
	Algorithm   *string `yaml:"algorithm"`
	Channels    *int    `yaml:"channels"`
	Sentinel    *string `yaml:"sentinel"`
	Capacity    *string `yaml:"capacity"`
	OutputLevel *string `yaml:"output_level"`
	Encoding    *string `yaml:"encoding"`
	Listen      *string `yaml:"listen"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a config file in the given directory.
// It supports .steg.yml/.yaml and steg.yml/.yaml.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".steg.yml", ".steg.yaml", "steg.yml", "steg.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "steg", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// Merge returns fc with every field that over sets replaced by over's value.
func (fc FileConfig) Merge(over FileConfig) FileConfig {
	if over.Algorithm != nil {
		fc.Algorithm = over.Algorithm
	}
	if over.Channels != nil {
		fc.Channels = over.Channels
	}
	if over.Sentinel != nil {
		fc.Sentinel = over.Sentinel
	}
	if over.Capacity != nil {
		fc.Capacity = over.Capacity
	}
	if over.OutputLevel != nil {
		fc.OutputLevel = over.OutputLevel
	}
	if over.Encoding != nil {
		fc.Encoding = over.Encoding
	}
	if over.Listen != nil {
		fc.Listen = over.Listen
	}
	return fc
}

// Format resolves the stego format, starting from steg.DefaultFormat.
func (fc FileConfig) Format() (steg.Format, error) {
	f := steg.DefaultFormat
	if fc.Algorithm != nil {
		f.Algorithm = algos.StringToAlgo(*fc.Algorithm)
		if !f.Algorithm.IsValid() {
			return f, fmt.Errorf("algorithm: unknown scan order %q (want column or row)", *fc.Algorithm)
		}
	}
	if fc.Channels != nil {
		if *fc.Channels < 1 || *fc.Channels > 3 {
			return f, fmt.Errorf("channels: %d is outside 1-3", *fc.Channels)
		}
		f.ChannelsPerPixel = uint8(*fc.Channels)
	}
	if fc.Sentinel != nil {
		s, err := ParseSentinel(*fc.Sentinel)
		if err != nil {
			return f, err
		}
		f.Sentinel = s
	}
	if fc.Capacity != nil {
		m, err := steg.ParseCapacityMode(*fc.Capacity)
		if err != nil {
			return f, fmt.Errorf("capacity: %w", err)
		}
		f.Capacity = m
	}
	return f, f.Validate()
}

// Level resolves the output level; steps when unset.
func (fc FileConfig) Level() (steg.OutputLevel, error) {
	if fc.OutputLevel == nil {
		return steg.OutputSteps, nil
	}
	return steg.ParseOutputLevel(*fc.OutputLevel)
}

// ParseSentinel accepts exactly one character in the 0-255 range.
func ParseSentinel(s string) (byte, error) {
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("sentinel: %q must be exactly one character", s)
	}
	if r[0] > 0xff {
		return 0, fmt.Errorf("sentinel: %q does not fit in 8 bits", s)
	}
	return byte(r[0]), nil
}
