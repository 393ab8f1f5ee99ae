package cli

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/netuse/internal/config"
	"github.com/rileyhilliard/netuse/internal/errors"
	"github.com/spf13/cobra"
)

// WatchFlags holds the dashboard flags. Set flags override the config file.
type WatchFlags struct {
	Interfaces   []string
	LeaseFiles   []string
	Interval     string
	ShowInactive bool
	LogFile      string
}

// AddWatchFlags registers the dashboard flags on a command.
func AddWatchFlags(cmd *cobra.Command, flags *WatchFlags) {
	cmd.Flags().StringSliceVarP(&flags.Interfaces, "interface", "i", nil, "wireless interface to dump (repeatable, default from config)")
	cmd.Flags().StringSliceVarP(&flags.LeaseFiles, "lease-file", "l", nil, "dhcpd lease file (repeatable, default from config)")
	cmd.Flags().StringVar(&flags.Interval, "interval", "", "refresh interval (e.g., 1s, 500ms)")
	cmd.Flags().BoolVar(&flags.ShowInactive, "show-inactive", false, "include leases whose host is not in the neighbor table")
	cmd.Flags().StringVar(&flags.LogFile, "log-file", "", "write structured logs to this file")
}

// Apply copies the set flags onto cfg.
func (f WatchFlags) Apply(cfg *config.Config, noColor bool) error {
	if len(f.Interfaces) > 0 {
		cfg.Interfaces = f.Interfaces
	}
	if len(f.LeaseFiles) > 0 {
		cfg.LeaseFiles = f.LeaseFiles
	}
	if f.Interval != "" {
		interval, err := ParseInterval(f.Interval)
		if err != nil {
			return err
		}
		cfg.Interval = interval
	}
	if f.ShowInactive {
		cfg.Leases.ShowInactive = true
	}
	if f.LogFile != "" {
		cfg.Output.LogFile = f.LogFile
	}
	if noColor {
		cfg.Output.Color = config.ColorNever
	}
	return nil
}

// ParseInterval parses a refresh interval flag.
func ParseInterval(flag string) (time.Duration, error) {
	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 1s, 2s, or 500ms.")
	}
	return d, nil
}
