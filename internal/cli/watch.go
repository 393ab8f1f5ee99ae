package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rileyhilliard/netuse/internal/collector"
	"github.com/rileyhilliard/netuse/internal/config"
	"github.com/rileyhilliard/netuse/internal/dashboard"
	"github.com/rileyhilliard/netuse/internal/errors"
	"github.com/rileyhilliard/netuse/internal/logger"
	"github.com/rileyhilliard/netuse/internal/monitor"
	"github.com/spf13/cobra"
)

// watchCmd starts the dashboard. The root command runs the same thing.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the live dashboard (default command)",
	Long: `Redraw the station, lease and conntrack tables every interval until
interrupted with Ctrl+C or SIGTERM.

Stations are colored by signal strength and idle time, leases by whether the
host is currently in the neighbor table, and the conntrack row by how full
the table is.

Examples:
  netuse watch
  netuse watch -i wlan0 -i wlan1
  netuse watch --lease-file /tmp/dhcpd.leases --interval 2s
  NETUSE_OUTPUT_COLOR=never netuse watch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand(cmd.Context(), watchFlags)
	},
}

func init() {
	AddWatchFlags(watchCmd, &watchFlags)
	rootCmd.AddCommand(watchCmd)
}

// watchCommand loads config, applies flags and runs the dashboard on stdout
// until SIGINT or SIGTERM.
func watchCommand(ctx context.Context, flags WatchFlags) error {
	cfg, path, err := config.LoadOrDefault(Config())
	if err != nil {
		return err
	}
	if err := flags.Apply(cfg, noColor); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if path != "" {
		log.Info("config loaded from %s", path)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runDashboard(ctx, cfg, os.Stdout, monitor.TerminalSize(os.Stdout), log)
}

// runDashboard wires the sources, store, screen and view for cfg and runs
// the refresh loop until ctx is done.
func runDashboard(ctx context.Context, cfg *config.Config, w io.Writer, size monitor.SizeFunc, log logger.Logger) error {
	store := collector.NewStore(collector.NewSystemSources(cfg), collector.Options{
		ConntrackCount: cfg.Sources.ConntrackCount,
		ConntrackMax:   cfg.Sources.ConntrackMax,
	}, log)

	view := monitor.NewView(
		monitor.NewColorizer(cfg.Thresholds),
		monitor.NewPalette(w, cfg.Output.Color),
		cfg.Leases.ShowInactive,
	)

	d := dashboard.New(store, monitor.NewScreen(w, size), view, dashboard.Options{
		Interfaces:  cfg.Interfaces,
		LeaseFiles:  cfg.LeaseFiles,
		Interval:    cfg.Interval,
		ResizeEvery: cfg.ResizeEvery,
	}, log)

	return d.Run(ctx)
}

// openLogger returns the zap file logger when output.log_file is set, and
// a no-op logger otherwise. The dashboard owns stdout, so nothing logs there.
func openLogger(cfg *config.Config) (logger.Logger, func(), error) {
	if cfg.Output.LogFile == "" {
		return logger.Noop(), func() {}, nil
	}

	fl, err := logger.NewFileLogger(cfg.Output.LogFile, os.Getenv(logger.DebugEnv) != "")
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't open log file "+cfg.Output.LogFile,
			"Check the output.log_file path and its directory permissions")
	}
	return fl, func() { _ = fl.Close() }, nil
}
