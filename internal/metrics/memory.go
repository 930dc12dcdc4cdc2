// Package metrics collects runtime and session statistics for the
// calculator's status surfaces: the HTTP health endpoint, the REPL
// status command and the full-screen status bar.
package metrics

import (
	"fmt"
	"runtime"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc  uint64 `json:"heap_alloc_bytes"` // bytes in use by application
	Sys        uint64 `json:"sys_bytes"`        // total bytes obtained from OS
	NumGC      uint32 `json:"num_gc"`           // number of completed GC cycles
	Goroutines int    `json:"goroutines"`       // live goroutines
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:  m.HeapAlloc,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
	}
}

// HeapAllocMB returns the heap size in mebibytes for display.
func (s MemorySnapshot) HeapAllocMB() float64 {
	return float64(s.HeapAlloc) / (1 << 20)
}

// String renders the snapshot for a one-line status display.
func (s MemorySnapshot) String() string {
	return fmt.Sprintf("heap %.1f MiB, %d goroutines, %d GC cycles",
		s.HeapAllocMB(), s.Goroutines, s.NumGC)
}
