package config

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/netuse/internal/errors"
	"gopkg.in/yaml.v3"
)

// configFile mirrors Config with durations spelled the way users write
// them ("1s", "2m0s") instead of yaml.v3's nanosecond integers.
type configFile struct {
	Version       int           `yaml:"version"`
	Interfaces    []string      `yaml:"interfaces"`
	LeaseFiles    []string      `yaml:"lease_files"`
	Interval      string        `yaml:"interval"`
	ResizeEvery   int           `yaml:"resize_every"`
	SourceTimeout string        `yaml:"source_timeout,omitempty"`
	Sources       SourcesConfig `yaml:"sources"`
	Leases        LeasesConfig  `yaml:"leases"`
	Thresholds    struct {
		Signal SignalThresholds `yaml:"signal"`
		Idle   struct {
			Warning string `yaml:"warning"`
			Notice  string `yaml:"notice"`
		} `yaml:"idle"`
		Conntrack ConntrackThresholds `yaml:"conntrack"`
	} `yaml:"thresholds"`
	Output OutputConfig `yaml:"output"`
}

// Marshal renders cfg as a .netuse.yaml document.
func Marshal(cfg *Config) ([]byte, error) {
	f := configFile{
		Version:     cfg.Version,
		Interfaces:  cfg.Interfaces,
		LeaseFiles:  cfg.LeaseFiles,
		Interval:    cfg.Interval.String(),
		ResizeEvery: cfg.ResizeEvery,
		Sources:     cfg.Sources,
		Leases:      cfg.Leases,
		Output:      cfg.Output,
	}
	if cfg.SourceTimeout > 0 {
		f.SourceTimeout = cfg.SourceTimeout.String()
	}
	f.Thresholds.Signal = cfg.Thresholds.Signal
	f.Thresholds.Idle.Warning = cfg.Thresholds.Idle.Warning.String()
	f.Thresholds.Idle.Notice = cfg.Thresholds.Idle.Notice.String()
	f.Thresholds.Conntrack = cfg.Thresholds.Conntrack

	data, err := yaml.Marshal(&f)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen, please report this bug")
	}
	return data, nil
}

// Write saves cfg to path, creating the parent directory if needed.
func Write(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to create config directory "+dir,
				"Check directory permissions")
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write "+path,
			"Check file permissions")
	}
	return nil
}
