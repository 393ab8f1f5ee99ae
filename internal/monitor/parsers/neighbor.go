package parsers

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/rileyhilliard/netuse/internal/monitor"
)

// neighborFields is the token count of a complete "ip neigh" entry:
//
//	10.0.0.5 dev wlan0 lladdr aa:bb:cc:dd:ee:ff REACHABLE
const neighborFields = 6

// ParseNeighborTable parses "ip neigh" output into a MAC to address map.
// Only lines with exactly six tokens count; FAILED/INCOMPLETE entries and
// router-flagged lines have a different shape and are skipped. When a MAC
// appears twice the last line wins.
func ParseNeighborTable(output string) (monitor.NeighborTable, error) {
	table := make(monitor.NeighborTable)

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != neighborFields {
			continue
		}
		table[fields[4]] = fields[0]
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning neighbor table: %w", err)
	}

	return table, nil
}
