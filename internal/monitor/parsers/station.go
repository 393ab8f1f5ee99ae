package parsers

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/rileyhilliard/netuse/internal/monitor"
)

// ParseStationDump parses "iw dev <iface> station dump" output.
//
// Each block starts with a "Station <MAC> (on <iface>)" line followed by
// indented "key: value" lines. Value lines seen before the first header,
// lines without a colon, and unknown keys are ignored. A repeated MAC
// replaces the earlier block so each station appears once.
func ParseStationDump(output, iface string) ([]monitor.StationRecord, error) {
	var records []monitor.StationRecord
	index := make(map[string]int)
	current := -1

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, "Station ") {
			fields := strings.Fields(line)
			if len(fields) < 2 {
				current = -1
				continue
			}
			rec := newStation(fields[1], iface)
			if i, ok := index[rec.BSSID]; ok {
				records[i] = rec
				current = i
			} else {
				records = append(records, rec)
				current = len(records) - 1
				index[rec.BSSID] = current
			}
			continue
		}

		if current < 0 {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		applyStationField(&records[current], strings.TrimSpace(key), strings.TrimSpace(value))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning station dump: %w", err)
	}

	return records, nil
}

func newStation(bssid, iface string) monitor.StationRecord {
	return monitor.StationRecord{
		BSSID:      bssid,
		Interface:  iface,
		RxBytes:    monitor.UnknownCount,
		TxBytes:    monitor.UnknownCount,
		SignalDBm:  monitor.Unknown(),
		InactiveMs: monitor.Unknown(),
	}
}

func applyStationField(rec *monitor.StationRecord, key, value string) {
	switch key {
	case "rx bytes":
		rec.RxBytes = leadingCount(value)
	case "tx bytes":
		rec.TxBytes = leadingCount(value)
	case "signal":
		rec.SignalDBm = leadingFloat(value)
	case "inactive time":
		rec.InactiveMs = leadingFloat(value)
	case "authorized":
		rec.Authorized = strings.EqualFold(firstField(value), "yes")
	}
}

func firstField(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// leadingFloat extracts the number from "<value> <unit>", e.g. "-60 [-61, -62] dBm".
func leadingFloat(value string) float64 {
	f, err := strconv.ParseFloat(firstField(value), 64)
	if err != nil {
		return monitor.Unknown()
	}
	return f
}

func leadingCount(value string) int64 {
	n, err := strconv.ParseInt(firstField(value), 10, 64)
	if err != nil || n < 0 {
		return monitor.UnknownCount
	}
	return n
}
