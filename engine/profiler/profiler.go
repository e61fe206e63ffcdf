package profiler

import (
	"log/slog"
	"runtime"
	"time"
)

// Profiler tracks tick rate, tick cost and memory statistics for performance monitoring.
// Outputs stats to a slog.Logger at a configurable interval.
// A Profiler is owned by a single goroutine and is not safe for concurrent use.
type Profiler struct {
	logger         *slog.Logger
	now            func() time.Time
	tickCount      int
	lastTime       time.Time
	updateInterval time.Duration
	slowest        time.Duration
	total          time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often statistics are reported. Defaults to 1 second.
//
// Parameters:
//   - interval: the reporting interval
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = interval
	}
}

// WithLogger sets the logger statistics are written to. Defaults to slog.Default().
//
// Parameters:
//   - l: the destination logger
//
// Returns:
//   - ProfilerOption: option function to apply
func WithLogger(l *slog.Logger) ProfilerOption {
	return func(p *Profiler) {
		p.logger = l
	}
}

// WithClock replaces time.Now as the profiler's time source.
//
// Parameters:
//   - now: the clock function
//
// Returns:
//   - ProfilerOption: option function to apply
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, option := range options {
		option(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per engine tick with the time the tick took to run.
// Logs performance statistics when the update interval has elapsed: ticks per second,
// average and slowest tick cost, heap usage, allocation rate and GC pauses.
//
// Parameters:
//   - cost: wall time spent inside the tick
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(cost time.Duration) bool {
	p.tickCount++
	p.total += cost
	p.slowest = max(p.slowest, cost)

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	tps := float64(p.tickCount) / elapsed.Seconds()
	avg := p.total / time.Duration(p.tickCount)

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses
	gcCount := p.memStats.NumGC
	var lastPause, maxPause time.Duration
	if gcCount > 0 {
		lastPause = time.Duration(p.memStats.PauseNs[(gcCount-1)%256])
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPause = max(maxPause, time.Duration(p.memStats.PauseNs[i%256]))
		}
	}

	p.logger.Info("profiler",
		"tps", tps,
		"tick_avg", avg,
		"tick_max", p.slowest,
		"heap_mb", allocMB,
		"alloc_mb_s", allocRateMB,
		"gc", gcCount,
		"gc_last", lastPause,
		"gc_max", maxPause,
		"sys_mb", sysMB,
	)

	p.tickCount = 0
	p.total = 0
	p.slowest = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
