//go:build !linux

package doctor

import "errors"

func lookupLink(name string) (linkInfo, error) {
	return linkInfo{}, errors.New("interface lookup needs Linux netlink")
}
