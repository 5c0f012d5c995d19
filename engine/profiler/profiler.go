package profiler

import (
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-forward/engine/frame"
)

// Profiler tracks frame rate, draw counts and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	logger *log.Logger

	frameCount     int
	draws          [len(frame.Stats{}.Draws)]int
	markers        int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second and output goes to the standard logger.
//
// Parameters:
//   - options: variadic list of ProfilerOption functions
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		logger:         log.Default(),
		frameCount:     0,
		lastTime:       time.Now(),
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often statistics are logged.
//
// Parameters:
//   - d: the interval
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = d
	}
}

// WithLogger sends the statistics to logger instead of the standard logger.
//
// Parameters:
//   - logger: the destination
//
// Returns:
//   - ProfilerOption: option function to apply
func WithLogger(logger *log.Logger) ProfilerOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, average draws per pass, heap usage, allocation rate, GC count/pause times, total memory.
//
// Parameters:
//   - stats: the draw counts of the frame just rendered
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(stats frame.Stats) bool {
	p.frameCount++
	for i, d := range stats.Draws {
		p.draws[i] += d
	}
	p.markers += stats.Markers
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed >= p.updateInterval {
		fps := float64(p.frameCount) / elapsed.Seconds()

		runtime.ReadMemStats(&p.memStats)
		// Alloc: Bytes of allocated heap objects (live memory)
		// TotalAlloc: Cumulative bytes allocated for heap objects (increases forever, tracks churn)
		// Sys: Total bytes of memory obtained from the OS (actual process footprint)
		allocMB := float64(p.memStats.Alloc) / 1024 / 1024
		sysMB := float64(p.memStats.Sys) / 1024 / 1024

		// Calculate allocation rate (MB/sec)
		allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
		allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

		// Calculate GC pause stats (last pause and max recent pause)
		gcCount := p.memStats.NumGC
		var lastPauseUs, maxPauseUs uint64
		if gcCount > 0 {
			// PauseNs is a circular buffer of last 256 GC pauses
			lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

			// Find max pause since last tick
			startIdx := p.lastGCCount
			if gcCount-startIdx > 256 {
				startIdx = gcCount - 256
			}
			for i := startIdx; i < gcCount; i++ {
				pause := p.memStats.PauseNs[i%256] / 1000
				if pause > maxPauseUs {
					maxPauseUs = pause
				}
			}
		}

		p.logger.Printf("[Profiler] FPS: %.2f | Draws: %s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
			fps, p.drawSummary(), allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

		p.frameCount = 0
		p.draws = [len(p.draws)]int{}
		p.markers = 0
		p.lastTime = currentTime
		p.lastGCCount = gcCount
		p.lastTotalAlloc = p.memStats.TotalAlloc
		return true
	}

	return false
}

// drawSummary formats the average draws per frame of every pass that drew anything since the last log line.
func (p *Profiler) drawSummary() string {
	var sb strings.Builder
	for _, pass := range frame.Passes() {
		total := p.draws[pass]
		if total == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%.1f", pass, float64(total)/float64(p.frameCount))
	}
	if p.markers > 0 {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "lights=%.1f", float64(p.markers)/float64(p.frameCount))
	}
	if sb.Len() == 0 {
		return "none"
	}
	return sb.String()
}
