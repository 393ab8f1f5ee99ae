// Package testing provides test doubles for the collector package.
package testing

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// FakeSources serves canned source text and records every read.
type FakeSources struct {
	mu sync.Mutex

	Stations  map[string]string
	Neighbors string
	Files     map[string]string

	// Errors by read key: "station:<iface>", "neighbors" or "file:<path>".
	Errors map[string]error

	// Calls lists read keys in order.
	Calls []string
}

// NewFakeSources creates a fake with no stations, neighbors or files.
func NewFakeSources() *FakeSources {
	return &FakeSources{
		Stations: make(map[string]string),
		Files:    make(map[string]string),
		Errors:   make(map[string]error),
	}
}

// SetStations sets the station dump returned for iface.
func (f *FakeSources) SetStations(iface, dump string) *FakeSources {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Stations[iface] = dump
	return f
}

// SetNeighbors sets the neighbor table text.
func (f *FakeSources) SetNeighbors(table string) *FakeSources {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Neighbors = table
	return f
}

// SetFile sets the contents returned for path.
func (f *FakeSources) SetFile(path, content string) *FakeSources {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Files[path] = content
	return f
}

// SetError makes the read with the given key fail.
func (f *FakeSources) SetError(key string, err error) *FakeSources {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[key] = err
	return f
}

// CallCount returns how many times the read with key happened.
func (f *FakeSources) CallCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == key {
			n++
		}
	}
	return n
}

func (f *FakeSources) record(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, key)
	return f.Errors[key]
}

func (f *FakeSources) StationDump(ctx context.Context, iface string) (string, error) {
	if err := f.record("station:" + iface); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Stations[iface], nil
}

func (f *FakeSources) NeighborTable(ctx context.Context) (string, error) {
	if err := f.record("neighbors"); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Neighbors, nil
}

func (f *FakeSources) ReadFile(ctx context.Context, path string) (string, error) {
	if err := f.record("file:" + path); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	content, ok := f.Files[path]
	if !ok {
		return "", fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return content, nil
}
