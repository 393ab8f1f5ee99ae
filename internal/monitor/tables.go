package monitor

import (
	"fmt"
	"net/netip"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// Row counts of the tables rendered after the station table, used to keep
// space for them when the station list is long.
const (
	headerRows    = 2
	conntrackRows = headerRows + 1
	separatorRows = 1

	hostnameWidth = 32
)

var (
	stationHeader = []string{
		" Wireless MAC     | IP Address      | RX Data   | TX Data   | Signal",
		"------------------+-----------------+-----------+-----------+----------",
	}
	leaseHeader = []string{
		" Client MAC       | IP Address      | Status    | Expires          | Hostname",
		"------------------+-----------------+-----------+------------------+----------------------",
	}
	conntrackHeader = []string{
		" Tracking         | Count           | Peak            | Usage",
		"------------------+-----------------+-----------------+----------",
	}
)

// View renders a Snapshot as the three dashboard tables.
type View struct {
	colors       *Colorizer
	palette      *Palette
	showInactive bool
	now          func() time.Time
}

// NewView creates a View. Inactive leases are only listed when showInactive is set.
func NewView(colors *Colorizer, palette *Palette, showInactive bool) *View {
	return &View{
		colors:       colors,
		palette:      palette,
		showInactive: showInactive,
		now:          time.Now,
	}
}

// Render draws the station, lease and conntrack tables in that order,
// separated by a blank row. It returns how many rows were hidden because
// the terminal was too short.
func (v *View) Render(s *Screen, snap Snapshot) int {
	hidden := 0

	reserve := separatorRows + headerRows + separatorRows + conntrackRows
	hidden += emitTable(s, stationHeader, v.stationRows(snap.Stations), budget(s, reserve))
	s.Line("")

	reserve = separatorRows + conntrackRows
	hidden += emitTable(s, leaseHeader, v.leaseRows(snap.Leases), budget(s, reserve))
	s.Line("")

	hidden += emitTable(s, conntrackHeader, []string{v.conntrackRow(snap.Conntrack)}, s.Remaining())

	return hidden
}

// budget is the rows a table may use while keeping reserve rows for the
// tables after it. On a terminal too short to fit both, the table gets
// everything left.
func budget(s *Screen, reserve int) int {
	left := s.Remaining()
	if left-reserve > headerRows {
		return left - reserve
	}
	return left
}

// emitTable writes header and rows within budget. When rows don't fit, the
// last available row becomes a "[+ N more]" indicator. Returns the number of
// rows not shown.
func emitTable(s *Screen, header, rows []string, budget int) int {
	if left := s.Remaining(); budget > left {
		budget = left
	}

	for _, h := range header {
		if budget == 0 || !s.Line(h) {
			return len(rows)
		}
		budget--
	}

	for i, row := range rows {
		left := len(rows) - i
		if budget == 0 {
			return left
		}
		if budget == 1 && left > 1 {
			s.Line(fmt.Sprintf("[+ %d more]", left))
			return left
		}
		s.Line(row)
		budget--
	}
	return 0
}

func (v *View) stationRows(stations []StationRecord) []string {
	rows := make([]string, 0, len(stations))
	for _, st := range stations {
		address := "(unknown)"
		if st.HasIP() {
			address = st.IP
		}

		var b strings.Builder
		b.WriteString(v.palette.Paint(v.colors.Idle(st.InactiveMs, st.Authorized), fmt.Sprintf("%-17s", st.BSSID)))
		b.WriteString(" | ")
		b.WriteString(v.palette.Paint(v.colors.Address(st.IP), fmt.Sprintf("%-15s", address)))
		b.WriteString(" | ")
		b.WriteString(fmt.Sprintf("%-9s | ", FormatBytes(st.RxBytes)))
		b.WriteString(fmt.Sprintf("%-9s | ", FormatBytes(st.TxBytes)))
		b.WriteString(v.palette.Paint(v.colors.Signal(st.SignalDBm), FormatSignal(st.SignalDBm)))
		rows = append(rows, b.String())
	}
	return rows
}

func (v *View) leaseRows(leases []LeaseRecord) []string {
	now := v.now()
	rows := make([]string, 0, len(leases))
	for _, lease := range SortLeases(leases) {
		if lease.State != LeaseActive && !v.showInactive {
			continue
		}

		hardware := lease.Hardware
		if hardware == "" {
			hardware = "(unknown)"
		}

		var b strings.Builder
		b.WriteString(fmt.Sprintf("%-17s | ", hardware))
		b.WriteString(fmt.Sprintf("%-15s | ", lease.Address))
		b.WriteString(v.palette.Paint(v.colors.LeaseState(lease.State), fmt.Sprintf("%-9s", lease.State)))
		b.WriteString(" | ")
		b.WriteString(fmt.Sprintf("%-16s | ", FormatExpiry(lease, now)))
		b.WriteString(runewidth.Truncate(lease.Hostname, hostnameWidth, "…"))
		rows = append(rows, b.String())
	}
	return rows
}

func (v *View) conntrackRow(c ConntrackSample) string {
	usage, known := c.Usage()
	text := "-"
	if known {
		text = fmt.Sprintf("%.1f%%", usage)
	}
	return fmt.Sprintf("Connections       | %-15d | %-15d | %s",
		c.Current, c.Peak, v.palette.Paint(v.colors.ConntrackUsage(usage, known), text))
}

// SortLeases returns the leases with Active ones first, each group ordered
// by address.
func SortLeases(leases []LeaseRecord) []LeaseRecord {
	sorted := make([]LeaseRecord, len(leases))
	copy(sorted, leases)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].State != sorted[j].State {
			return sorted[i].State == LeaseActive
		}
		return compareAddrs(sorted[i].Address, sorted[j].Address) < 0
	})
	return sorted
}

func compareAddrs(a, b string) int {
	ipA, errA := netip.ParseAddr(a)
	ipB, errB := netip.ParseAddr(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return ipA.Compare(ipB)
}
