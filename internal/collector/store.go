package collector

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/netuse/internal/errors"
	"github.com/rileyhilliard/netuse/internal/logger"
	"github.com/rileyhilliard/netuse/internal/monitor"
	"github.com/rileyhilliard/netuse/internal/monitor/parsers"
)

// Options locates the conntrack files.
type Options struct {
	ConntrackCount string
	// ConntrackMax may be empty to skip reading the capacity.
	ConntrackMax string
}

// Store holds the merged view of the current cycle. The conntrack peak is
// the only value carried from one cycle to the next.
type Store struct {
	sources   Sources
	neighbors *NeighborResolver
	opts      Options
	log       logger.Logger

	stations  []monitor.StationRecord
	leases    []monitor.LeaseRecord
	conntrack monitor.ConntrackSample
}

// NewStore creates an empty Store.
func NewStore(src Sources, opts Options, log logger.Logger) *Store {
	if log == nil {
		log = logger.Noop()
	}
	return &Store{
		sources:   src,
		neighbors: NewNeighborResolver(src),
		opts:      opts,
		log:       log,
	}
}

// BeginCycle forgets the previous cycle's neighbor table.
func (s *Store) BeginCycle() {
	s.neighbors.Invalidate()
}

// Reset clears all state, including the conntrack peak.
func (s *Store) Reset() {
	s.stations = nil
	s.leases = nil
	s.conntrack = monitor.ConntrackSample{}
	s.neighbors.Invalidate()
}

// UpdateStations replaces the station view with the stations currently
// associated on interfaces. A MAC seen on two interfaces keeps the later one.
func (s *Store) UpdateStations(ctx context.Context, interfaces []string) error {
	var stations []monitor.StationRecord
	index := make(map[string]int)

	for _, iface := range interfaces {
		out, err := s.sources.StationDump(ctx, iface)
		if err != nil {
			return err
		}
		records, err := parsers.ParseStationDump(out, iface)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrParse,
				fmt.Sprintf("Couldn't parse the station list for %s", iface), "")
		}
		for _, rec := range records {
			if i, ok := index[rec.BSSID]; ok {
				stations[i] = rec
				continue
			}
			index[rec.BSSID] = len(stations)
			stations = append(stations, rec)
		}
	}

	if len(stations) > 0 {
		table, err := s.neighbors.Table(ctx)
		if err != nil {
			return err
		}
		stations = ResolveStationAddresses(stations, table)
	}

	s.log.Debug("stations: %d on %d interfaces", len(stations), len(interfaces))
	s.stations = stations
	return nil
}

// UpdateLeases replaces the lease view with the leases in files. When an
// address appears in more than one file the later file wins.
func (s *Store) UpdateLeases(ctx context.Context, files []string) error {
	var leases []monitor.LeaseRecord
	index := make(map[string]int)

	for _, path := range files {
		content, err := s.sources.ReadFile(ctx, path)
		if err != nil {
			return err
		}
		records, err := parsers.ParseLeaseFile(content)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrParse, "Couldn't parse lease file "+path, "")
		}
		for _, rec := range records {
			if i, ok := index[rec.Address]; ok {
				leases[i] = rec
				continue
			}
			index[rec.Address] = len(leases)
			leases = append(leases, rec)
		}
	}

	if len(leases) > 0 {
		table, err := s.neighbors.Table(ctx)
		if err != nil {
			return err
		}
		leases = ResolveLeaseStates(leases, table)
	}

	s.log.Debug("leases: %d from %d files", len(leases), len(files))
	s.leases = leases
	return nil
}

// UpdateConntrack reads the tracked connection count and raises the peak
// when it is exceeded.
func (s *Store) UpdateConntrack(ctx context.Context) error {
	current, err := s.readCounter(ctx, s.opts.ConntrackCount)
	if err != nil {
		return err
	}

	s.conntrack.Current = current
	if current > s.conntrack.Peak {
		s.conntrack.Peak = current
	}

	if s.opts.ConntrackMax != "" {
		capacity, err := s.readCounter(ctx, s.opts.ConntrackMax)
		if err != nil {
			return err
		}
		s.conntrack.Max = capacity
	}

	return nil
}

func (s *Store) readCounter(ctx context.Context, path string) (uint64, error) {
	content, err := s.sources.ReadFile(ctx, path)
	if err != nil {
		return 0, err
	}
	n, err := parsers.ParseConntrackCount(content)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrParse,
			"Unexpected content in "+path,
			"Point sources.conntrack_count and sources.conntrack_max at the nf_conntrack files")
	}
	return n, nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() monitor.Snapshot {
	snap := monitor.Snapshot{Conntrack: s.conntrack}
	if s.stations != nil {
		snap.Stations = append([]monitor.StationRecord(nil), s.stations...)
	}
	if s.leases != nil {
		snap.Leases = append([]monitor.LeaseRecord(nil), s.leases...)
	}
	return snap
}
