package doctor

import (
	"fmt"
	"os"

	"github.com/rileyhilliard/netuse/internal/config"
	"github.com/rileyhilliard/netuse/internal/monitor/parsers"
)

// LeaseFileCheck verifies a lease database is readable and parses.
type LeaseFileCheck struct {
	Path string
}

func (c *LeaseFileCheck) Name() string     { return "lease_file" }
func (c *LeaseFileCheck) Category() string { return CategorySources }

func (c *LeaseFileCheck) Run() CheckResult {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Cannot read %s: %v", c.Path, err),
			Suggestion: readHint(err, "Fix 'lease_files' in .netuse.yaml"),
		}
	}

	leases, err := parsers.ParseLeaseFile(string(data))
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s: %v", c.Path, err),
			Suggestion: "Check the file is an ISC dhcpd lease database",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%s: %d lease%s", c.Path, len(leases), pluralize(len(leases))),
	}
}

func (c *LeaseFileCheck) Fix() error {
	return nil
}

// CounterCheck verifies a kernel counter file is readable and numeric.
type CounterCheck struct {
	Label    string // e.g. "conntrack count"
	Path     string
	Optional bool
}

func (c *CounterCheck) Name() string     { return "counter_" + c.Label }
func (c *CounterCheck) Category() string { return CategorySources }

func (c *CounterCheck) Run() CheckResult {
	failStatus := StatusFail
	if c.Optional {
		failStatus = StatusWarn
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     failStatus,
			Message:    fmt.Sprintf("Cannot read %s (%s): %v", c.Label, c.Path, err),
			Suggestion: readHint(err, "Load the nf_conntrack module, or fix the sources.* path"),
		}
	}

	n, err := parsers.ParseConntrackCount(string(data))
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  failStatus,
			Message: fmt.Sprintf("%s: %v", c.Path, err),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%s: %d", c.Label, n),
	}
}

func (c *CounterCheck) Fix() error {
	return nil
}

func readHint(err error, fallback string) string {
	if os.IsPermission(err) {
		return "Run netuse as a user that can read this file (often root)"
	}
	return fallback
}

// NewSourceChecks creates the command, interface and source checks for cfg.
func NewSourceChecks(cfg *config.Config) []Check {
	checks := []Check{
		&CommandCheck{
			Binary:      cfg.Sources.IW,
			Purpose:     "station dumps",
			VersionArgs: []string{"--version"},
		},
	}
	if cfg.Sources.Neighbors != config.NeighborsNetlink {
		checks = append(checks, &CommandCheck{
			Binary:      cfg.Sources.IP,
			Purpose:     "the neighbor table",
			VersionArgs: []string{"-V"},
		})
	}

	checks = append(checks, NewInterfaceChecks(cfg.Interfaces)...)

	for _, path := range cfg.LeaseFiles {
		checks = append(checks, &LeaseFileCheck{Path: path})
	}

	checks = append(checks, &CounterCheck{Label: "conntrack count", Path: cfg.Sources.ConntrackCount})
	if cfg.Sources.ConntrackMax != "" {
		checks = append(checks, &CounterCheck{Label: "conntrack max", Path: cfg.Sources.ConntrackMax, Optional: true})
	}

	return checks
}
