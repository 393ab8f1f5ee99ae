package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/netuse/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but netuse only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade netuse or lower the version field")
	}

	if cfg.Interval < MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Refresh interval %s is too short", cfg.Interval),
			fmt.Sprintf("Use an interval of at least %s, e.g. 'interval: 1s'", MinInterval))
	}

	if cfg.ResizeEvery < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("resize_every must be at least 1, got %d", cfg.ResizeEvery),
			"Set 'resize_every: 20' to check the terminal size every 20 cycles")
	}

	if cfg.SourceTimeout < 0 {
		return errors.New(errors.ErrConfig,
			"source_timeout can't be negative",
			"Use 0 to disable the timeout")
	}

	if err := validateNames("interfaces", cfg.Interfaces); err != nil {
		return err
	}
	if err := validateNames("lease_files", cfg.LeaseFiles); err != nil {
		return err
	}

	if err := validateSources(cfg.Sources); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'sources' section in your .netuse.yaml.")
	}

	if err := validateThresholds(cfg.Thresholds); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'thresholds' section in your .netuse.yaml.")
	}

	switch cfg.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown color mode '%s'", cfg.Output.Color),
			"Use one of: auto, always, never")
	}

	return nil
}

func validateNames(field string, values []string) error {
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("%s[%d] is empty", field, i),
				fmt.Sprintf("Remove the blank entry from '%s'", field))
		}
	}
	return nil
}

func validateSources(s SourcesConfig) error {
	switch s.Neighbors {
	case NeighborsCommand, NeighborsNetlink:
	default:
		return fmt.Errorf("sources.neighbors must be %q or %q, got %q", NeighborsCommand, NeighborsNetlink, s.Neighbors)
	}
	if s.IW == "" {
		return fmt.Errorf("sources.iw can't be empty")
	}
	if s.Neighbors == NeighborsCommand && s.IP == "" {
		return fmt.Errorf("sources.ip can't be empty when sources.neighbors is %q", NeighborsCommand)
	}
	if s.ConntrackCount == "" {
		return fmt.Errorf("sources.conntrack_count can't be empty")
	}
	return nil
}

func validateThresholds(t Thresholds) error {
	sig := t.Signal
	if !(sig.Critical < sig.Warning && sig.Warning < sig.Notice) {
		return fmt.Errorf("signal thresholds must satisfy critical < warning < notice (got %.0f, %.0f, %.0f)",
			sig.Critical, sig.Warning, sig.Notice)
	}

	idle := t.Idle
	if idle.Notice <= 0 || idle.Warning <= idle.Notice {
		return fmt.Errorf("idle thresholds must satisfy 0 < notice < warning (got %s, %s)", idle.Notice, idle.Warning)
	}

	ct := t.Conntrack
	if ct.Warning <= 0 || ct.Critical <= ct.Warning || ct.Critical > 100 {
		return fmt.Errorf("conntrack thresholds must satisfy 0 < warning < critical <= 100 (got %.0f, %.0f)", ct.Warning, ct.Critical)
	}

	return nil
}
