package monitor

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

var byteUnits = []string{"KB", "MB", "GB", "TB", "PB"}

// FormatBytes renders a byte count in decimal units with two decimals.
// The count is always scaled at least once, so 500 is "0.50 KB".
// UnknownCount renders as "-".
func FormatBytes(n int64) string {
	if n < 0 {
		return "-"
	}

	size := float64(n) / 1000
	unit := 0
	for size >= 1000 && unit < len(byteUnits)-1 {
		size /= 1000
		unit++
	}
	return fmt.Sprintf("%.2f %s", size, byteUnits[unit])
}

// FormatSignal renders a signal strength, "-" when unknown.
func FormatSignal(dbm float64) string {
	if IsUnknown(dbm) {
		return "-"
	}
	return fmt.Sprintf("%.0f dBm", dbm)
}

// FormatExpiry renders when a lease ends relative to now.
func FormatExpiry(rec LeaseRecord, now time.Time) string {
	switch {
	case !rec.Ends.IsZero():
		return humanize.RelTime(rec.Ends, now, "ago", "from now")
	case rec.Expire == "":
		return "-"
	default:
		return rec.Expire
	}
}
