// Package collector reads the host's network state once per refresh cycle
// and keeps the merged result.
//
// Sources hides where the raw text comes from (iw, ip, netlink, lease files,
// /proc). Store runs the parsers over that text, resolves stations and
// leases against the neighbor table, and tracks the conntrack peak, the
// only value that outlives a cycle.
//
// All reads are sequential and synchronous. A source that can't be read is
// returned as an error; nothing is retried.
package collector
