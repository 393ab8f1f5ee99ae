package collector

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rileyhilliard/netuse/internal/config"
	"github.com/rileyhilliard/netuse/internal/errors"
)

// Sources supplies the raw text a refresh cycle parses.
type Sources interface {
	// StationDump returns "iw dev <iface> station dump" output.
	StationDump(ctx context.Context, iface string) (string, error)

	// NeighborTable returns the neighbor table in "ip neigh" format.
	NeighborTable(ctx context.Context) (string, error)

	// ReadFile returns the contents of a lease database or /proc counter.
	ReadFile(ctx context.Context, path string) (string, error)
}

// SystemSources reads from the local machine.
type SystemSources struct {
	IW        string
	IP        string
	Neighbors string
	Timeout   time.Duration
}

// NewSystemSources builds SystemSources from config.
func NewSystemSources(cfg *config.Config) *SystemSources {
	return &SystemSources{
		IW:        cfg.Sources.IW,
		IP:        cfg.Sources.IP,
		Neighbors: cfg.Sources.Neighbors,
		Timeout:   cfg.SourceTimeout,
	}
}

func (s *SystemSources) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.Timeout)
}

func (s *SystemSources) StationDump(ctx context.Context, iface string) (string, error) {
	out, err := s.run(ctx, s.IW, "dev", iface, "station", "dump")
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrSource,
			fmt.Sprintf("Couldn't read the station list for %s", iface),
			"Check the interface name in 'interfaces' and that iw is installed. Run 'netuse doctor' for details.")
	}
	return out, nil
}

func (s *SystemSources) NeighborTable(ctx context.Context) (string, error) {
	if s.Neighbors == config.NeighborsNetlink {
		out, err := netlinkNeighborTable()
		if err != nil {
			return "", errors.WrapWithCode(err, errors.ErrSource,
				"Couldn't read the neighbor table over netlink",
				"Set 'sources.neighbors: command' to use the ip command instead")
		}
		return out, nil
	}

	out, err := s.run(ctx, s.IP, "neigh")
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrSource,
			"Couldn't read the neighbor table",
			"Check that the ip command (iproute2) is installed, or set 'sources.neighbors: netlink'")
	}
	return out, nil
}

// ReadFile opens, reads and closes path on every call.
func (s *SystemSources) ReadFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		suggestion := "Check the path in your .netuse.yaml"
		switch {
		case os.IsNotExist(err):
			suggestion = "The file doesn't exist. Fix or remove it in your .netuse.yaml"
		case os.IsPermission(err):
			suggestion = "Run netuse as a user that can read it (often root)"
		}
		return "", errors.WrapWithCode(err, errors.ErrSource, "Couldn't read "+path, suggestion)
	}
	return string(data), nil
}

func (s *SystemSources) run(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return string(out), nil
}
