package parsers

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rileyhilliard/netuse/internal/monitor"
)

// LeaseTimeLayout is the dhcpd "ends" date format, always UTC.
const LeaseTimeLayout = "2006/01/02 15:04:05"

// ParseLeaseFile parses an ISC dhcpd lease database.
//
// A block starts at a "lease <address>" line and must open its brace on that
// same line, otherwise it is skipped. Statements end with ';' and the fragment
// after the last ';' (the closing brace) is dropped. dhcpd appends renewed
// leases, so when an address appears twice the later block wins.
// Every record comes back Inactive; state is resolved against the neighbor table.
func ParseLeaseFile(content string) ([]monitor.LeaseRecord, error) {
	blocks, err := splitLeaseBlocks(content)
	if err != nil {
		return nil, err
	}

	var records []monitor.LeaseRecord
	index := make(map[string]int)

	for _, block := range blocks {
		rec, ok := parseLeaseBlock(block)
		if !ok {
			continue
		}
		if i, seen := index[rec.Address]; seen {
			records[i] = rec
			continue
		}
		index[rec.Address] = len(records)
		records = append(records, rec)
	}

	return records, nil
}

func splitLeaseBlocks(content string) ([]string, error) {
	var blocks []string
	var cur strings.Builder
	inBlock := false

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "lease ") {
			if inBlock {
				blocks = append(blocks, cur.String())
			}
			cur.Reset()
			inBlock = true
		}
		if inBlock {
			cur.WriteString(line)
			cur.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning lease file: %w", err)
	}
	if inBlock {
		blocks = append(blocks, cur.String())
	}

	return blocks, nil
}

func parseLeaseBlock(block string) (monitor.LeaseRecord, bool) {
	header, body, _ := strings.Cut(block, "\n")

	brace := strings.Index(header, "{")
	if brace < 0 {
		return monitor.LeaseRecord{}, false
	}
	fields := strings.Fields(header[:brace])
	if len(fields) < 2 {
		return monitor.LeaseRecord{}, false
	}

	rec := monitor.LeaseRecord{Address: fields[1], State: monitor.LeaseInactive}

	body = header[brace+1:] + "\n" + body
	if end := strings.LastIndex(body, "}"); end >= 0 {
		body = body[:end]
	}

	statements := strings.Split(body, ";")
	statements = statements[:len(statements)-1]

	for _, stmt := range statements {
		applyLeaseStatement(&rec, trimLeadingComments(strings.TrimSpace(stmt)))
	}
	if ends, ok := ParseLeaseExpiry(rec.Expire); ok {
		rec.Ends = ends
	}

	return rec, true
}

// trimLeadingComments drops "# ..." lines. A comment trailing a statement
// ends up at the start of the next fragment after splitting on ';'.
func trimLeadingComments(stmt string) string {
	for strings.HasPrefix(stmt, "#") {
		_, rest, _ := strings.Cut(stmt, "\n")
		stmt = strings.TrimSpace(rest)
	}
	return stmt
}

func applyLeaseStatement(rec *monitor.LeaseRecord, stmt string) {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "ends":
		switch {
		case len(fields) >= 4:
			rec.Expire = fields[2] + " " + fields[3]
		case len(fields) == 3 && fields[1] == "epoch":
			rec.Expire = "epoch " + fields[2]
		case len(fields) == 2 && fields[1] == "never":
			rec.Expire = fields[1]
		}
	case "hardware":
		if len(fields) >= 3 {
			rec.Hardware = fields[2]
		}
	case "client-hostname":
		name := strings.TrimSpace(strings.TrimPrefix(stmt, "client-hostname"))
		rec.Hostname = strings.Trim(name, `"`)
	}
}

// ParseLeaseExpiry converts a captured "ends" value into a time.
// It returns false for "never" and for values it can't read.
func ParseLeaseExpiry(expire string) (time.Time, bool) {
	if rest, ok := strings.CutPrefix(expire, "epoch "); ok {
		secs, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(secs, 0).UTC(), true
	}

	t, err := time.ParseInLocation(LeaseTimeLayout, expire, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
