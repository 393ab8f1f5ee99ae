package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/netuse/internal/config"
	"github.com/rileyhilliard/netuse/internal/errors"
	"github.com/rileyhilliard/netuse/internal/logger"
	"github.com/rileyhilliard/netuse/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// localConfig points every source at temp files and at "true", which
// prints nothing and exits zero for any arguments.
func localConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	leases := filepath.Join(dir, "dhcpd.leases")
	count := filepath.Join(dir, "nf_conntrack_count")
	require.NoError(t, os.WriteFile(leases, []byte(`lease 10.0.0.5 {
  ends 4 2030/01/01 00:00:00;
  hardware ethernet aa:bb:cc:dd:ee:ff;
  client-hostname "printer";
}
`), 0o644))
	require.NoError(t, os.WriteFile(count, []byte("7\n"), 0o644))

	cfg := config.DefaultConfig()
	cfg.LeaseFiles = []string{leases}
	cfg.Interval = 10 * time.Millisecond
	cfg.Sources.IW = "true"
	cfg.Sources.IP = "true"
	cfg.Sources.ConntrackCount = count
	cfg.Sources.ConntrackMax = ""
	cfg.Leases.ShowInactive = true
	cfg.Output.Color = config.ColorNever
	return cfg
}

func TestRunDashboard_DrawsUntilCancelled(t *testing.T) {
	cfg := localConfig(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	err := runDashboard(ctx, cfg, &out, monitor.FixedSize(120, 30), logger.Noop())
	require.NoError(t, err)

	frame := out.String()
	assert.Contains(t, frame, "10.0.0.5")
	assert.Contains(t, frame, "printer")
	assert.Contains(t, frame, "Inactive")
	assert.Contains(t, frame, "Connections")
	assert.Contains(t, frame, "\x1b[?25h", "cursor is restored on exit")
}

func TestRunDashboard_MissingLeaseFileFails(t *testing.T) {
	cfg := localConfig(t)
	cfg.LeaseFiles = []string{filepath.Join(t.TempDir(), "missing.leases")}

	var out bytes.Buffer
	err := runDashboard(context.Background(), cfg, &out, monitor.FixedSize(80, 24), logger.Noop())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSource))
	assert.Contains(t, out.String(), "\x1b[?25h", "cursor is restored on failure")
}

func TestWatchCommand_ConfigErrors(t *testing.T) {
	origCfg := cfgFile
	t.Cleanup(func() { cfgFile = origCfg })

	t.Run("missing explicit config", func(t *testing.T) {
		cfgFile = filepath.Join(t.TempDir(), "nope.yaml")
		err := watchCommand(context.Background(), WatchFlags{})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("bad interval flag", func(t *testing.T) {
		cfgFile = ""
		t.Chdir(t.TempDir())
		t.Setenv("HOME", t.TempDir())

		err := watchCommand(context.Background(), WatchFlags{Interval: "1ms"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too short")
	})
}

func TestOpenLogger(t *testing.T) {
	t.Run("no log file", func(t *testing.T) {
		log, closeLog, err := openLogger(config.DefaultConfig())
		require.NoError(t, err)
		defer closeLog()
		assert.IsType(t, logger.Noop(), log)
	})

	t.Run("log file", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Output.LogFile = filepath.Join(t.TempDir(), "netuse.log")

		log, closeLog, err := openLogger(cfg)
		require.NoError(t, err)
		log.Info("hello %d", 1)
		closeLog()

		data, err := os.ReadFile(cfg.Output.LogFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello 1")
	})

	t.Run("unopenable log file", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Output.LogFile = filepath.Join(t.TempDir(), "missing-dir", "netuse.log")

		_, _, err := openLogger(cfg)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})
}
