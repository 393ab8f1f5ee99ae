package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// MinInterval is the shortest refresh interval accepted.
const MinInterval = 100 * time.Millisecond

// Neighbor table source modes.
const (
	NeighborsCommand = "command"
	NeighborsNetlink = "netlink"
)

// Color modes for output.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the complete .netuse.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Interfaces are the wireless interfaces whose station dump is shown.
	Interfaces []string `yaml:"interfaces" mapstructure:"interfaces"`

	// LeaseFiles are dhcpd lease databases, read in order. Later files win
	// when the same address appears twice.
	LeaseFiles []string `yaml:"lease_files" mapstructure:"lease_files"`

	// Interval between refresh cycles.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// ResizeEvery is the number of cycles between terminal size rediscovery.
	ResizeEvery int `yaml:"resize_every" mapstructure:"resize_every"`

	// SourceTimeout bounds each command or file read. Zero means no limit.
	SourceTimeout time.Duration `yaml:"source_timeout" mapstructure:"source_timeout"`

	Sources    SourcesConfig `yaml:"sources" mapstructure:"sources"`
	Leases     LeasesConfig  `yaml:"leases" mapstructure:"leases"`
	Thresholds Thresholds    `yaml:"thresholds" mapstructure:"thresholds"`
	Output     OutputConfig  `yaml:"output" mapstructure:"output"`
}

// SourcesConfig locates the commands and kernel files netuse reads.
type SourcesConfig struct {
	// IW is the iw binary used for "iw dev <iface> station dump".
	IW string `yaml:"iw" mapstructure:"iw"`

	// IP is the ip binary used for "ip neigh" when Neighbors is "command".
	IP string `yaml:"ip" mapstructure:"ip"`

	// Neighbors selects where the neighbor table comes from: "command" or "netlink".
	Neighbors string `yaml:"neighbors" mapstructure:"neighbors"`

	// ConntrackCount is the file holding the current tracked connection count.
	ConntrackCount string `yaml:"conntrack_count" mapstructure:"conntrack_count"`

	// ConntrackMax is the file holding the table capacity. Empty disables the usage column.
	ConntrackMax string `yaml:"conntrack_max" mapstructure:"conntrack_max"`
}

// LeasesConfig controls the DHCP lease table.
type LeasesConfig struct {
	ShowInactive bool `yaml:"show_inactive" mapstructure:"show_inactive"`
}

// Thresholds drive the colorizer.
type Thresholds struct {
	Signal    SignalThresholds    `yaml:"signal" mapstructure:"signal"`
	Idle      IdleThresholds      `yaml:"idle" mapstructure:"idle"`
	Conntrack ConntrackThresholds `yaml:"conntrack" mapstructure:"conntrack"`
}

// SignalThresholds are upper bounds in dBm. A signal below Critical is
// critical, below Warning is a warning, below Notice is a notice, else good.
type SignalThresholds struct {
	Critical float64 `yaml:"critical" mapstructure:"critical"`
	Warning  float64 `yaml:"warning" mapstructure:"warning"`
	Notice   float64 `yaml:"notice" mapstructure:"notice"`
}

// IdleThresholds are lower bounds on station inactivity.
type IdleThresholds struct {
	Warning time.Duration `yaml:"warning" mapstructure:"warning"`
	Notice  time.Duration `yaml:"notice" mapstructure:"notice"`
}

// ConntrackThresholds are percentages of the conntrack table capacity.
type ConntrackThresholds struct {
	Warning  float64 `yaml:"warning" mapstructure:"warning"`
	Critical float64 `yaml:"critical" mapstructure:"critical"`
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	// Color is "auto", "always" or "never".
	Color string `yaml:"color" mapstructure:"color"`

	// LogFile receives structured logs while the dashboard runs.
	LogFile string `yaml:"log_file" mapstructure:"log_file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:       CurrentConfigVersion,
		Interfaces:    []string{"wlan0"},
		LeaseFiles:    []string{"/var/lib/dhcp/dhcpd.leases"},
		Interval:      time.Second,
		ResizeEvery:   20,
		SourceTimeout: 0,
		Sources: SourcesConfig{
			IW:             "iw",
			IP:             "ip",
			Neighbors:      NeighborsCommand,
			ConntrackCount: "/proc/sys/net/netfilter/nf_conntrack_count",
			ConntrackMax:   "/proc/sys/net/netfilter/nf_conntrack_max",
		},
		Thresholds: DefaultThresholds(),
		Output: OutputConfig{
			Color: ColorAuto,
		},
	}
}

// DefaultThresholds returns the stock color thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Signal: SignalThresholds{
			Critical: -80,
			Warning:  -70,
			Notice:   -55,
		},
		Idle: IdleThresholds{
			Warning: 120 * time.Second,
			Notice:  45 * time.Second,
		},
		Conntrack: ConntrackThresholds{
			Warning:  75,
			Critical: 90,
		},
	}
}
