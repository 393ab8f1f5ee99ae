package doctor

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// versionTimeout bounds the "<tool> --version" probe.
const versionTimeout = 3 * time.Second

// CommandCheck verifies an external tool netuse shells out to is on PATH.
type CommandCheck struct {
	Binary      string   // Name or path, e.g. "iw"
	Purpose     string   // What netuse uses it for
	VersionArgs []string // Arguments that print a version line
	Optional    bool     // Missing optional tools are a warning
}

func (c *CommandCheck) Name() string     { return "command_" + c.Binary }
func (c *CommandCheck) Category() string { return CategoryCommands }

func (c *CommandCheck) Run() CheckResult {
	path, err := exec.LookPath(c.Binary)
	if err != nil {
		status := StatusFail
		if c.Optional {
			status = StatusWarn
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     status,
			Message:    fmt.Sprintf("%s not found (needed for %s)", c.Binary, c.Purpose),
			Suggestion: installHint(c.Binary),
		}
	}

	version := ""
	if len(c.VersionArgs) > 0 {
		version = probeVersion(path, c.VersionArgs)
	}
	if version == "" {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("%s found at %s", c.Binary, path),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%s (%s)", version, path),
	}
}

func (c *CommandCheck) Fix() error {
	return nil // System package installation is out of scope
}

// probeVersion returns the first non-empty line the tool prints, or "".
func probeVersion(path string, args []string) string {
	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, args...).CombinedOutput()
	if err != nil {
		return ""
	}
	return parseVersionLine(string(out))
}

func parseVersionLine(output string) string {
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

func installHint(binary string) string {
	switch binary {
	case "iw":
		return "Install iw: apt install iw (Debian/Ubuntu) or opkg install iw (OpenWrt)"
	case "ip":
		return "Install iproute2: apt install iproute2, or set sources.neighbors: netlink"
	default:
		return fmt.Sprintf("Install %s or point the matching sources.* key at it", binary)
	}
}
