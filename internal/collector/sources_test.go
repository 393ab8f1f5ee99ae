package collector

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/netuse/internal/config"
	"github.com/rileyhilliard/netuse/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSystemSources(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sources.IW = "/usr/sbin/iw"
	cfg.SourceTimeout = 0

	s := NewSystemSources(cfg)
	assert.Equal(t, "/usr/sbin/iw", s.IW)
	assert.Equal(t, "ip", s.IP)
	assert.Equal(t, config.NeighborsCommand, s.Neighbors)
}

func TestSystemSources_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nf_conntrack_count")
	require.NoError(t, os.WriteFile(path, []byte("42\n"), 0644))

	s := &SystemSources{}

	content, err := s.ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "42\n", content)

	_, err = s.ReadFile(context.Background(), filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSource))
	assert.Contains(t, err.Error(), "doesn't exist")
}

func TestSystemSources_ReadFileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&SystemSources{}).ReadFile(ctx, "/etc/hostname")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSystemSources_StationDumpRunsCommand(t *testing.T) {
	echo, err := exec.LookPath("echo")
	if err != nil {
		t.Skip("echo not available")
	}

	s := &SystemSources{IW: echo}
	out, err := s.StationDump(context.Background(), "wlan0")
	require.NoError(t, err)
	assert.Equal(t, "dev wlan0 station dump\n", out)
}

func TestSystemSources_CommandFailure(t *testing.T) {
	s := &SystemSources{IW: "netuse-test-no-such-binary", IP: "netuse-test-no-such-binary"}

	_, err := s.StationDump(context.Background(), "wlan0")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSource))

	_, err = s.NeighborTable(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSource))
}

func TestSystemSources_NeighborTableRunsIPNeigh(t *testing.T) {
	echo, err := exec.LookPath("echo")
	if err != nil {
		t.Skip("echo not available")
	}

	s := &SystemSources{IP: echo, Neighbors: config.NeighborsCommand}
	out, err := s.NeighborTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "neigh\n", out)
}
