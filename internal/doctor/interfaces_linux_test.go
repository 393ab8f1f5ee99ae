//go:build linux

package doctor

import "testing"

func TestLookupLink_Loopback(t *testing.T) {
	info, err := lookupLink("lo")
	if err != nil {
		t.Skipf("netlink unavailable: %v", err)
	}
	if info.Wireless {
		t.Error("loopback should not be wireless")
	}
}

func TestLookupLink_Missing(t *testing.T) {
	if _, err := lookupLink("netuse-missing0"); err == nil {
		t.Error("expected error for missing interface")
	}
}
