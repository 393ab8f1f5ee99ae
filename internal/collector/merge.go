package collector

import "github.com/rileyhilliard/netuse/internal/monitor"

// ResolveStationAddresses returns a copy of stations with IP set from the
// neighbor table, or cleared when the station isn't in it. Only the IP field
// changes, so running it twice gives the same result.
func ResolveStationAddresses(stations []monitor.StationRecord, table monitor.NeighborTable) []monitor.StationRecord {
	out := make([]monitor.StationRecord, len(stations))
	for i, st := range stations {
		st.IP, _ = table.Lookup(st.BSSID)
		out[i] = st
	}
	return out
}

// ResolveLeaseStates returns a copy of leases marked Active when their
// hardware address is in the neighbor table. A lease without a hardware
// address is always Inactive.
func ResolveLeaseStates(leases []monitor.LeaseRecord, table monitor.NeighborTable) []monitor.LeaseRecord {
	out := make([]monitor.LeaseRecord, len(leases))
	for i, lease := range leases {
		lease.State = monitor.LeaseInactive
		if _, ok := table.Lookup(lease.Hardware); ok {
			lease.State = monitor.LeaseActive
		}
		out[i] = lease
	}
	return out
}
