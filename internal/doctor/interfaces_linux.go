//go:build linux

package doctor

import (
	"path/filepath"

	"github.com/vishvananda/netlink"
)

func lookupLink(name string) (linkInfo, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return linkInfo{}, err
	}

	return linkInfo{
		State:    link.Attrs().OperState.String(),
		Wireless: isWirelessDir(filepath.Join(SysClassNet, name)),
	}, nil
}
