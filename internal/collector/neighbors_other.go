//go:build !linux

package collector

import "fmt"

func netlinkNeighborTable() (string, error) {
	return "", fmt.Errorf("the netlink neighbor source is only available on Linux")
}
