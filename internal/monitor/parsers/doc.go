// Package parsers turns raw source text into monitor records.
//
// Every parser is a pure function over a string. Lines that don't match the
// expected shape are skipped; only I/O-level problems and a non-numeric
// conntrack counter are reported as errors.
package parsers
