package dashboard

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rileyhilliard/netuse/internal/collector"
	collectortesting "github.com/rileyhilliard/netuse/internal/collector/testing"
	"github.com/rileyhilliard/netuse/internal/config"
	"github.com/rileyhilliard/netuse/internal/logger"
	"github.com/rileyhilliard/netuse/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	countPath = "/conntrack_count"
	leasePath = "/dhcpd.leases"

	seqHideCursor = "\x1b[?25l"
	seqShowCursor = "\x1b[?25h"
	seqHome       = "\x1b[1;1H"
)

type fixture struct {
	src    *collectortesting.FakeSources
	out    *bytes.Buffer
	log    *logger.BufferLogger
	dash   *Dashboard
	sizeOf *int
}

func newFixture(t *testing.T, resizeEvery int) *fixture {
	t.Helper()

	src := collectortesting.NewFakeSources().
		SetStations("wlan0", "Station aa:bb:cc:dd:ee:ff (on wlan0)\n\tinactive time:\t50000 ms\n\tsignal:\t-60 dBm\n\tauthorized:\tyes\n").
		SetNeighbors("10.0.0.5 dev wlan0 lladdr aa:bb:cc:dd:ee:ff REACHABLE\n").
		SetFile(leasePath, "lease 10.0.0.5 {\n  hardware ethernet aa:bb:cc:dd:ee:ff;\n  client-hostname \"laptop\";\n}\n").
		SetFile(countPath, "42\n")

	var out bytes.Buffer
	sizeCalls := 0
	screen := monitor.NewScreen(&out, func() (int, int, error) {
		sizeCalls++
		return 120, 30, nil
	})

	log := logger.NewBufferLogger()
	store := collector.NewStore(src, collector.Options{ConntrackCount: countPath}, log)
	view := monitor.NewView(monitor.NewColorizer(config.DefaultThresholds()), monitor.NewPalette(&out, config.ColorNever), false)

	dash := New(store, screen, view, Options{
		Interfaces:  []string{"wlan0"},
		LeaseFiles:  []string{leasePath},
		Interval:    5 * time.Millisecond,
		ResizeEvery: resizeEvery,
	}, log)

	return &fixture{src: src, out: &out, log: log, dash: dash, sizeOf: &sizeCalls}
}

func TestRun_CancelledStopsCleanly(t *testing.T) {
	f := newFixture(t, 20)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, f.dash.Run(ctx))
	assert.Equal(t, StateTerminating, f.dash.State())

	out := f.out.String()
	assert.Contains(t, out, seqHideCursor)
	assert.True(t, strings.HasSuffix(out, seqShowCursor+"\n"), "cursor restored with trailing newline")
	assert.Less(t, strings.Index(out, seqHideCursor), strings.Index(out, seqShowCursor))
}

func TestRun_RendersFrame(t *testing.T) {
	f := newFixture(t, 20)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, f.dash.Run(ctx))

	out := f.out.String()
	assert.Contains(t, out, seqHome)
	assert.Contains(t, out, "aa:bb:cc:dd:ee:ff | 10.0.0.5")
	assert.Contains(t, out, "laptop")
	assert.Contains(t, out, "Connections       | 42")

	wireless := strings.Index(out, "Wireless MAC")
	leases := strings.Index(out, "Client MAC")
	conntrack := strings.Index(out, "Tracking")
	assert.True(t, wireless < leases && leases < conntrack, "tables in fixed order")
}

func TestRun_LoopsUntilCancelled(t *testing.T) {
	f := newFixture(t, 20)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	require.NoError(t, f.dash.Run(ctx))
	assert.GreaterOrEqual(t, f.dash.Cycles(), 2)
	assert.Equal(t, f.dash.Cycles(), f.src.CallCount("file:"+countPath))
}

func TestRun_SourceFailureRestoresCursor(t *testing.T) {
	f := newFixture(t, 20)
	delete(f.src.Files, leasePath)

	err := f.dash.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), leasePath)
	assert.True(t, strings.HasSuffix(f.out.String(), seqShowCursor+"\n"))
	assert.True(t, f.log.HasLevel(logger.LevelError))
}

func TestCycle_ResizeEveryN(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()

	require.NoError(t, f.dash.initialize())
	assert.Equal(t, 1, *f.sizeOf)

	for i := 0; i < 7; i++ {
		require.NoError(t, f.dash.Cycle(ctx))
	}
	// Rediscovery happens before cycles 3 and 6.
	assert.Equal(t, 3, *f.sizeOf)
	assert.Equal(t, 7, f.dash.Cycles())
}

func TestCycle_PeakSurvivesCycles(t *testing.T) {
	f := newFixture(t, 20)
	ctx := context.Background()
	require.NoError(t, f.dash.initialize())

	require.NoError(t, f.dash.Cycle(ctx))
	f.src.SetFile(countPath, "17\n")
	f.out.Reset()
	require.NoError(t, f.dash.Cycle(ctx))

	assert.Contains(t, f.out.String(), "Connections       | 17              | 42")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "initializing", StateInitializing.String())
	assert.Equal(t, "cycling", StateCycling.String())
	assert.Equal(t, "terminating", StateTerminating.String())
	assert.Equal(t, "unknown", State(9).String())
}
