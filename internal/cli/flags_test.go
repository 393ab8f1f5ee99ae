package cli

import (
	"testing"
	"time"

	"github.com/rileyhilliard/netuse/internal/config"
	"github.com/rileyhilliard/netuse/internal/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"seconds", "2s", 2 * time.Second, false},
		{"milliseconds", "500ms", 500 * time.Millisecond, false},
		{"compound", "1m30s", 90 * time.Second, false},
		{"bare number", "5", 0, true},
		{"garbage", "soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInterval(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				assert.Contains(t, err.Error(), "valid interval")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWatchFlags_Apply(t *testing.T) {
	t.Run("unset flags keep config", func(t *testing.T) {
		cfg := config.DefaultConfig()
		require.NoError(t, WatchFlags{}.Apply(cfg, false))
		assert.Equal(t, config.DefaultConfig(), cfg)
	})

	t.Run("set flags override", func(t *testing.T) {
		cfg := config.DefaultConfig()
		flags := WatchFlags{
			Interfaces:   []string{"wlan1"},
			LeaseFiles:   []string{"/tmp/a", "/tmp/b"},
			Interval:     "250ms",
			ShowInactive: true,
			LogFile:      "/tmp/netuse.log",
		}

		require.NoError(t, flags.Apply(cfg, true))
		assert.Equal(t, []string{"wlan1"}, cfg.Interfaces)
		assert.Equal(t, []string{"/tmp/a", "/tmp/b"}, cfg.LeaseFiles)
		assert.Equal(t, 250*time.Millisecond, cfg.Interval)
		assert.True(t, cfg.Leases.ShowInactive)
		assert.Equal(t, "/tmp/netuse.log", cfg.Output.LogFile)
		assert.Equal(t, config.ColorNever, cfg.Output.Color)
	})

	t.Run("bad interval", func(t *testing.T) {
		err := WatchFlags{Interval: "fast"}.Apply(config.DefaultConfig(), false)
		require.Error(t, err)
	})
}

func TestAddWatchFlags_Values(t *testing.T) {
	var flags WatchFlags
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	AddWatchFlags(cmd, &flags)

	cmd.SetArgs([]string{"-i", "wlan0", "-i", "wlan1", "--lease-file", "/a,/b", "--interval", "2s", "--show-inactive"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, []string{"wlan0", "wlan1"}, flags.Interfaces)
	assert.Equal(t, []string{"/a", "/b"}, flags.LeaseFiles)
	assert.Equal(t, "2s", flags.Interval)
	assert.True(t, flags.ShowInactive)
}
