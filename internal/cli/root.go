package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rileyhilliard/netuse/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	noColor bool
)

// watchFlags is shared by the root command and "watch" so that plain
// "netuse -i wlan1" behaves like "netuse watch -i wlan1".
var watchFlags WatchFlags

var rootCmd = &cobra.Command{
	Use:   "netuse",
	Short: "Live view of wireless clients, DHCP leases and connection tracking",
	Long: `netuse redraws a terminal dashboard every second showing the stations
associated to the local access point, the DHCP leases handed out, and the
conntrack table usage.

Running netuse with no subcommand starts the dashboard.

Config is read from --config, ./.netuse.yaml or ~/.config/netuse/config.yaml,
and any key can be overridden with NETUSE_* environment variables
(e.g. NETUSE_INTERVAL=2s, NETUSE_OUTPUT_COLOR=never).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			ui.DisableColors()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand(cmd.Context(), watchFlags)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./.netuse.yaml, then ~/.config/netuse/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	AddWatchFlags(rootCmd, &watchFlags)
}

// Config returns the --config flag value.
func Config() string {
	return cfgFile
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// formatError renders errors that did not come from internal/errors (cobra's
// own flag and argument errors) with the same leading marker.
func formatError(err error) string {
	msg := err.Error()
	if strings.HasPrefix(msg, ui.SymbolFail) {
		return msg
	}
	if isUnknownCommandError(err) {
		return fmt.Sprintf("%s %s\n\n  Run 'netuse --help' for usage.\n", ui.SymbolFail, msg)
	}
	return fmt.Sprintf("%s %s\n", ui.SymbolFail, msg)
}

// isUnknownCommandError checks if the error is about an unknown command or flag.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}
