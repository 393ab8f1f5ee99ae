package monitor

import (
	"time"

	"github.com/rileyhilliard/netuse/internal/config"
)

// ColorClass is the severity a value is displayed with.
type ColorClass int

const (
	// ClassUnknown is used for values that couldn't be measured.
	ClassUnknown ColorClass = iota
	ClassGood
	ClassNotice
	ClassWarning
	ClassCritical
)

func (c ColorClass) String() string {
	switch c {
	case ClassGood:
		return "good"
	case ClassNotice:
		return "notice"
	case ClassWarning:
		return "warning"
	case ClassCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Colorizer classifies measurements against configured thresholds.
// All methods are pure.
type Colorizer struct {
	thresholds config.Thresholds
}

// NewColorizer creates a Colorizer for the given thresholds.
func NewColorizer(t config.Thresholds) *Colorizer {
	return &Colorizer{thresholds: t}
}

// Signal classifies a signal strength in dBm.
func (c *Colorizer) Signal(dbm float64) ColorClass {
	if IsUnknown(dbm) {
		return ClassUnknown
	}
	t := c.thresholds.Signal
	switch {
	case dbm < t.Critical:
		return ClassCritical
	case dbm < t.Warning:
		return ClassWarning
	case dbm < t.Notice:
		return ClassNotice
	default:
		return ClassGood
	}
}

// Idle classifies a station by inactivity, then by authorization.
// An unknown inactivity falls through to the authorization check.
func (c *Colorizer) Idle(inactiveMs float64, authorized bool) ColorClass {
	if !IsUnknown(inactiveMs) {
		idle := time.Duration(inactiveMs * float64(time.Millisecond))
		t := c.thresholds.Idle
		switch {
		case idle > t.Warning:
			return ClassWarning
		case idle > t.Notice:
			return ClassNotice
		}
	}
	if authorized {
		return ClassGood
	}
	return ClassCritical
}

// LeaseState classifies a lease by presence in the neighbor table.
func (c *Colorizer) LeaseState(s LeaseState) ColorClass {
	if s == LeaseActive {
		return ClassGood
	}
	return ClassCritical
}

// Address classifies a resolved address; an empty one is a notice.
func (c *Colorizer) Address(ip string) ColorClass {
	if ip == "" {
		return ClassNotice
	}
	return ClassGood
}

// ConntrackUsage classifies conntrack table usage in percent.
func (c *Colorizer) ConntrackUsage(percent float64, known bool) ColorClass {
	if !known {
		return ClassUnknown
	}
	t := c.thresholds.Conntrack
	switch {
	case percent >= t.Critical:
		return ClassCritical
	case percent >= t.Warning:
		return ClassWarning
	default:
		return ClassGood
	}
}
