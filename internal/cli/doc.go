// Package cli implements the netuse command-line interface.
//
// # Command Structure
//
// The root command is "netuse"; with no subcommand it runs the dashboard.
//
//	netuse [watch]      - Live station, lease and conntrack tables
//	netuse init         - Create .netuse.yaml
//	netuse doctor       - Check every data source
//	netuse version      - Build information
//	netuse completion   - Shell completion scripts
//
// # Wiring
//
// watch loads config (file, then NETUSE_* environment, then flags),
// validates it, and hands collector.SystemSources, a collector.Store, a
// monitor.Screen and a monitor.View to dashboard.Dashboard. SIGINT and
// SIGTERM cancel the dashboard's context, which restores the cursor
// before netuse exits.
//
// # Flag Handling
//
// Global flags (--config, --no-color) live on the root command. The
// dashboard flags (--interface, --lease-file, --interval, --show-inactive,
// --log-file) are registered on both the root command and "watch" through
// AddWatchFlags, so "netuse -i wlan1" and "netuse watch -i wlan1" agree.
package cli
