package collector

import (
	"context"

	"github.com/rileyhilliard/netuse/internal/errors"
	"github.com/rileyhilliard/netuse/internal/monitor"
	"github.com/rileyhilliard/netuse/internal/monitor/parsers"
)

// NeighborResolver loads the neighbor table at most once per cycle, on
// first use. Cycles without stations or leases never read it.
type NeighborResolver struct {
	sources Sources
	table   monitor.NeighborTable
	loaded  bool
}

// NewNeighborResolver creates a resolver reading from src.
func NewNeighborResolver(src Sources) *NeighborResolver {
	return &NeighborResolver{sources: src}
}

// Table returns this cycle's neighbor table.
func (r *NeighborResolver) Table(ctx context.Context) (monitor.NeighborTable, error) {
	if r.loaded {
		return r.table, nil
	}

	out, err := r.sources.NeighborTable(ctx)
	if err != nil {
		return nil, err
	}
	table, err := parsers.ParseNeighborTable(out)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrParse, "Couldn't parse the neighbor table", "")
	}

	r.table = table
	r.loaded = true
	return table, nil
}

// Invalidate drops the cached table so the next Table call reads it again.
func (r *NeighborResolver) Invalidate() {
	r.table = nil
	r.loaded = false
}
