package monitor

import (
	"math"
	"time"
)

// UnknownCount marks a byte counter that was missing or malformed.
const UnknownCount int64 = -1

// Unknown returns the sentinel for a missing or malformed measurement.
func Unknown() float64 {
	return math.NaN()
}

// IsUnknown reports whether v is the Unknown sentinel.
func IsUnknown(v float64) bool {
	return math.IsNaN(v)
}

// StationRecord is one associated wireless client, rebuilt every cycle.
type StationRecord struct {
	// BSSID is the station MAC taken from its "Station" header line.
	BSSID string

	// Interface the station dump was read from.
	Interface string

	// IP is the resolved network address, empty when unknown.
	IP string

	// RxBytes and TxBytes are UnknownCount when missing or malformed.
	RxBytes int64
	TxBytes int64

	// SignalDBm and InactiveMs are NaN when missing or malformed.
	SignalDBm  float64
	InactiveMs float64

	Authorized bool
}

// HasIP reports whether the station's address was resolved.
func (s StationRecord) HasIP() bool {
	return s.IP != ""
}

// LeaseState tells whether a leased client is currently present on the link.
type LeaseState int

const (
	LeaseInactive LeaseState = iota
	LeaseActive
)

func (s LeaseState) String() string {
	if s == LeaseActive {
		return "Active"
	}
	return "Inactive"
}

// LeaseRecord is one DHCP lease, keyed by the leased address.
type LeaseRecord struct {
	Address string

	// Hardware is empty when the block had no hardware statement.
	Hardware string

	Hostname string

	// Expire is the raw "ends" value, e.g. "2024/01/02 03:04:05" or "never".
	Expire string

	// Ends is Expire as a time, zero for "never" or unreadable values.
	Ends time.Time

	State LeaseState
}

// ConntrackSample holds the tracked connection count and its lifetime peak.
type ConntrackSample struct {
	Current uint64
	Peak    uint64

	// Max is the table capacity, zero when not configured or unavailable.
	Max uint64
}

// Usage returns Current as a percentage of Max.
func (c ConntrackSample) Usage() (float64, bool) {
	if c.Max == 0 {
		return 0, false
	}
	return float64(c.Current) / float64(c.Max) * 100, true
}

// NeighborTable maps a hardware address to the network address last seen for it.
type NeighborTable map[string]string

// Lookup returns the address for mac. An empty mac never matches.
func (t NeighborTable) Lookup(mac string) (string, bool) {
	if mac == "" {
		return "", false
	}
	addr, ok := t[mac]
	return addr, ok
}

// Snapshot is the merged state of one cycle, ready to render.
type Snapshot struct {
	Stations  []StationRecord
	Leases    []LeaseRecord
	Conntrack ConntrackSample
}
