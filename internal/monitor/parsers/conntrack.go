package parsers

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseConntrackCount parses the contents of nf_conntrack_count (or
// nf_conntrack_max). Surrounding whitespace is allowed, anything else is an error.
func ParseConntrackCount(content string) (uint64, error) {
	value := strings.TrimSpace(content)
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid conntrack value %q: %w", value, err)
	}
	return n, nil
}
