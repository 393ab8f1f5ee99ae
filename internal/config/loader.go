package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/netuse/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".netuse.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/netuse"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. NETUSE_INTERVAL=2s.
	EnvPrefix = "NETUSE"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'netuse init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .netuse.yaml in current directory
// 3. ~/.config/netuse/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads the config found by Find, or the defaults (plus any
// NETUSE_* environment overrides) when there is no file.
// The returned path is empty when no file was used.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		cfg, err := parseConfig(newViper(), "environment")
		return cfg, "", err
	}

	cfg, err := Load(path)
	return cfg, path, err
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())
	return v
}

// setDefaults registers every key with viper. AutomaticEnv only resolves
// keys viper already knows, and unmarshalling into a zero Config keeps file
// lists from being merged with the default lists.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("interfaces", d.Interfaces)
	v.SetDefault("lease_files", d.LeaseFiles)
	v.SetDefault("interval", d.Interval)
	v.SetDefault("resize_every", d.ResizeEvery)
	v.SetDefault("source_timeout", d.SourceTimeout)

	v.SetDefault("sources.iw", d.Sources.IW)
	v.SetDefault("sources.ip", d.Sources.IP)
	v.SetDefault("sources.neighbors", d.Sources.Neighbors)
	v.SetDefault("sources.conntrack_count", d.Sources.ConntrackCount)
	v.SetDefault("sources.conntrack_max", d.Sources.ConntrackMax)

	v.SetDefault("leases.show_inactive", d.Leases.ShowInactive)

	v.SetDefault("thresholds.signal.critical", d.Thresholds.Signal.Critical)
	v.SetDefault("thresholds.signal.warning", d.Thresholds.Signal.Warning)
	v.SetDefault("thresholds.signal.notice", d.Thresholds.Signal.Notice)
	v.SetDefault("thresholds.idle.warning", d.Thresholds.Idle.Warning)
	v.SetDefault("thresholds.idle.notice", d.Thresholds.Idle.Notice)
	v.SetDefault("thresholds.conntrack.warning", d.Thresholds.Conntrack.Warning)
	v.SetDefault("thresholds.conntrack.critical", d.Thresholds.Conntrack.Critical)

	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("output.log_file", d.Output.LogFile)
}

// parseConfig converts viper config to our Config struct.
func parseConfig(v *viper.Viper, source string) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+source)
	}
	return cfg, nil
}
