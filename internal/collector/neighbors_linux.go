package collector

import (
	"fmt"
	"strings"

	"github.com/vishvananda/netlink"
)

var neighborStates = map[int]string{
	netlink.NUD_INCOMPLETE: "INCOMPLETE",
	netlink.NUD_REACHABLE:  "REACHABLE",
	netlink.NUD_STALE:      "STALE",
	netlink.NUD_DELAY:      "DELAY",
	netlink.NUD_PROBE:      "PROBE",
	netlink.NUD_FAILED:     "FAILED",
	netlink.NUD_NOARP:      "NOARP",
	netlink.NUD_PERMANENT:  "PERMANENT",
}

// netlinkNeighborTable lists the kernel neighbor table and writes it in the
// same line format "ip neigh" prints, so both sources share one parser.
func netlinkNeighborTable() (string, error) {
	neighs, err := netlink.NeighList(0, netlink.FAMILY_ALL)
	if err != nil {
		return "", fmt.Errorf("list neighbors: %w", err)
	}

	names := make(map[int]string)
	var b strings.Builder
	for _, n := range neighs {
		name, ok := names[n.LinkIndex]
		if !ok {
			name = fmt.Sprintf("if%d", n.LinkIndex)
			if link, err := netlink.LinkByIndex(n.LinkIndex); err == nil {
				name = link.Attrs().Name
			}
			names[n.LinkIndex] = name
		}
		b.WriteString(formatNeighbor(n, name))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func formatNeighbor(n netlink.Neigh, dev string) string {
	parts := []string{n.IP.String(), "dev", dev}
	if len(n.HardwareAddr) > 0 {
		parts = append(parts, "lladdr", n.HardwareAddr.String())
	}
	if n.Flags&netlink.NTF_ROUTER != 0 {
		parts = append(parts, "router")
	}

	state, ok := neighborStates[n.State]
	if !ok {
		state = "NONE"
	}
	return strings.Join(append(parts, state), " ")
}
