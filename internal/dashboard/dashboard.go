// Package dashboard runs the refresh loop: read every source, merge, draw,
// wait for the next tick, until the context is cancelled.
package dashboard

import (
	"context"
	"time"

	"github.com/rileyhilliard/netuse/internal/collector"
	"github.com/rileyhilliard/netuse/internal/logger"
	"github.com/rileyhilliard/netuse/internal/monitor"
)

// State is the scheduler's lifecycle phase.
type State int

const (
	StateInitializing State = iota
	StateCycling
	StateTerminating
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateCycling:
		return "cycling"
	case StateTerminating:
		return "terminating"
	default:
		return "unknown"
	}
}

// Options selects what the dashboard watches and how often.
type Options struct {
	Interfaces  []string
	LeaseFiles  []string
	Interval    time.Duration
	ResizeEvery int
}

// Dashboard owns the refresh loop. Nothing else decides when to read or draw.
type Dashboard struct {
	store  *collector.Store
	screen *monitor.Screen
	view   *monitor.View
	opts   Options
	log    logger.Logger

	state  State
	cycles int
}

// New creates a Dashboard.
func New(store *collector.Store, screen *monitor.Screen, view *monitor.View, opts Options, log logger.Logger) *Dashboard {
	if log == nil {
		log = logger.Noop()
	}
	if opts.ResizeEvery < 1 {
		opts.ResizeEvery = 1
	}
	return &Dashboard{
		store:  store,
		screen: screen,
		view:   view,
		opts:   opts,
		log:    log,
	}
}

// Run draws a frame every Interval until ctx is cancelled, then restores
// the cursor. Cancellation returns nil; a source or terminal failure is
// returned after the cursor is restored.
func (d *Dashboard) Run(ctx context.Context) (err error) {
	d.setState(StateInitializing)
	defer func() {
		d.setState(StateTerminating)
		if closeErr := d.screen.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := d.initialize(); err != nil {
		return err
	}

	ticker := time.NewTicker(d.opts.Interval)
	defer ticker.Stop()

	d.setState(StateCycling)
	for {
		if err := d.Cycle(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			d.log.Error("cycle %d failed: %v", d.cycles, err)
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (d *Dashboard) initialize() error {
	d.store.Reset()
	d.cycles = 0
	if err := d.screen.Init(); err != nil {
		return err
	}
	d.log.Info("screen %dx%d", d.screen.Columns(), d.screen.Rows())
	return nil
}

// Cycle runs one refresh: periodic size check, all updates, one frame.
func (d *Dashboard) Cycle(ctx context.Context) error {
	start := time.Now()

	if d.cycles > 0 && d.cycles%d.opts.ResizeEvery == 0 {
		changed, err := d.screen.Resize()
		if err != nil {
			return err
		}
		if changed {
			d.log.Info("terminal resized to %dx%d", d.screen.Columns(), d.screen.Rows())
		}
	}
	d.cycles++

	d.store.BeginCycle()
	if err := d.store.UpdateStations(ctx, d.opts.Interfaces); err != nil {
		return err
	}
	if err := d.store.UpdateLeases(ctx, d.opts.LeaseFiles); err != nil {
		return err
	}
	if err := d.store.UpdateConntrack(ctx); err != nil {
		return err
	}

	d.screen.BeginFrame()
	hidden := d.view.Render(d.screen, d.store.Snapshot())
	if err := d.screen.Finish(); err != nil {
		return err
	}

	if hidden > 0 {
		d.log.Debug("cycle %d: %d rows didn't fit", d.cycles, hidden)
	}
	d.log.Debug("cycle %d took %s", d.cycles, time.Since(start))
	return nil
}

func (d *Dashboard) setState(s State) {
	d.state = s
	d.log.Debug("state: %s", s)
}

// State returns the current lifecycle phase.
func (d *Dashboard) State() State {
	return d.state
}

// Cycles returns the number of cycles started since initialization.
func (d *Dashboard) Cycles() int {
	return d.cycles
}
