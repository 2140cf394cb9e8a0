// benchmark.go
// Measures wall time and memory usage for any wrapped tool run.

package benchmark

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// Measurement is the resource usage of one wrapped call.
type Measurement struct {
	Elapsed         time.Duration
	AllocDeltaMB    float64
	TotalAllocMB    float64
	HeapMB          float64
	GCCycles        uint32
	CPUCores        int
	GoroutinesStart int
	GoroutinesEnd   int
}

const mb = 1024.0 * 1024.0

// Measure runs f once and records its resource usage. The error of f is
// returned unchanged alongside the measurement.
func Measure(f func() error) (Measurement, error) {
	runtime.GC()
	var memStart, memEnd runtime.MemStats
	runtime.ReadMemStats(&memStart)
	m := Measurement{
		CPUCores:        runtime.NumCPU(),
		GoroutinesStart: runtime.NumGoroutine(),
	}
	start := time.Now()

	err := f()

	m.Elapsed = time.Since(start)
	runtime.ReadMemStats(&memEnd)
	m.GoroutinesEnd = runtime.NumGoroutine()
	// Alloc can shrink when a collection runs inside f.
	m.AllocDeltaMB = (float64(memEnd.Alloc) - float64(memStart.Alloc)) / mb
	m.TotalAllocMB = float64(memEnd.TotalAlloc-memStart.TotalAlloc) / mb
	m.HeapMB = float64(memEnd.HeapAlloc) / mb
	m.GCCycles = memEnd.NumGC - memStart.NumGC
	return m, err
}

// Run wraps a tool invocation, logging host information before and the
// measurement after.
func Run(label string, logger *log.Logger, f func() error) error {
	bl := logger.WithPrefix("benchmark")
	bl.Info("running", "label", label, "timestamp", time.Now().Format(time.RFC1123))
	if host, err := os.Hostname(); err == nil {
		bl.Info("host", "hostname", host)
	}
	bl.Info("runtime", "go", runtime.Version(), "os", runtime.GOOS, "arch", runtime.GOARCH)

	m, err := Measure(f)

	bl.Info("time elapsed", "duration", m.Elapsed)
	bl.Info("memory",
		"used_mb", formatMB(m.AllocDeltaMB),
		"total_allocated_mb", formatMB(m.TotalAllocMB),
		"heap_mb", formatMB(m.HeapMB),
		"gc_cycles", m.GCCycles)
	bl.Info("cpu", "cores", m.CPUCores, "goroutines_start", m.GoroutinesStart, "goroutines_end", m.GoroutinesEnd)
	return err
}

func formatMB(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
