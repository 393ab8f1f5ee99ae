package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// SysClassNet is where the kernel lists network interfaces.
const SysClassNet = "/sys/class/net"

// linkInfo is what the interface check needs to know about a link.
type linkInfo struct {
	State    string // Operational state, e.g. "up", "down", "dormant"
	Wireless bool
}

// InterfaceCheck verifies a configured wireless interface exists and is up.
type InterfaceCheck struct {
	Interface string

	// lookup is replaced in tests.
	lookup func(name string) (linkInfo, error)
}

func (c *InterfaceCheck) Name() string     { return "interface_" + c.Interface }
func (c *InterfaceCheck) Category() string { return CategoryInterfaces }

func (c *InterfaceCheck) Run() CheckResult {
	lookup := c.lookup
	if lookup == nil {
		lookup = lookupLink
	}

	info, err := lookup(c.Interface)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s: %v", c.Interface, err),
			Suggestion: "List interfaces with 'iw dev' and update 'interfaces' in .netuse.yaml",
		}
	}

	if !info.Wireless {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s exists but is not a wireless interface", c.Interface),
			Suggestion: "Station dumps will be empty; list wireless interfaces with 'iw dev'",
		}
	}

	if info.State != "up" && info.State != "unknown" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s is %s", c.Interface, info.State),
			Suggestion: fmt.Sprintf("Bring it up with 'ip link set %s up'", c.Interface),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%s is %s", c.Interface, info.State),
	}
}

func (c *InterfaceCheck) Fix() error {
	return nil
}

// NewInterfaceChecks creates one check per configured interface.
func NewInterfaceChecks(interfaces []string) []Check {
	checks := make([]Check, 0, len(interfaces))
	for _, iface := range interfaces {
		checks = append(checks, &InterfaceCheck{Interface: iface})
	}
	return checks
}

// WirelessInterfaces lists the interfaces under sysDir that expose a
// wireless extension or a phy80211 link, sorted by name. A missing sysDir
// yields nil.
func WirelessInterfaces(sysDir string) []string {
	entries, err := os.ReadDir(sysDir)
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		if isWirelessDir(filepath.Join(sysDir, e.Name())) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func isWirelessDir(dir string) bool {
	for _, p := range []string{"wireless", "phy80211"} {
		if _, err := os.Stat(filepath.Join(dir, p)); err == nil {
			return true
		}
	}
	return false
}
