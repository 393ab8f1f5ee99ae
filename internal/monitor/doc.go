// Package monitor holds the dashboard's record types and everything needed to
// draw them: classification, formatting and in-place terminal rendering.
//
// # Architecture
//
// A refresh cycle flows through three layers:
//
//   - parsers (subpackage): pure functions turning source text into records
//   - Colorizer: maps a measurement to a ColorClass using config thresholds
//   - View and Screen: lay records out as tables and draw them in place
//
// Classification and painting are separate. The Colorizer only returns a
// ColorClass; Palette.Paint is the one place a class becomes an escape
// sequence, so tests can check classes without parsing terminal output.
//
// # Screen
//
// Screen redraws without clearing the whole terminal each cycle:
//
//  1. BeginFrame moves the cursor home
//  2. each Line overwrites one row and clears whatever is left of the old row
//  3. Finish blanks the rows below the last table
//
// The bottom row is never written, so the terminal never scrolls. Tables that
// don't fit end in a "[+ N more]" row.
//
// # Tables
//
//	Stations  - wireless clients, colored by idle time, address and signal
//	Leases    - DHCP leases currently seen on the link (Active)
//	Conntrack - tracked connections, lifetime peak and table usage
package monitor
