package profiler

import (
	"log/slog"
	"runtime"
	"sync"
	"time"
)

// Profiler tracks frame rate, GPU upload volume and memory statistics.
// It logs a summary record at a configurable interval.
type Profiler struct {
	mu *sync.Mutex

	logger         *slog.Logger
	now            func() time.Time
	frameCount     int
	uploadBytes    uint64
	uploadCount    int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// Stats is one reporting window of a Profiler.
type Stats struct {
	FPS          float64
	UploadMB     float64
	UploadRateMB float64
	Uploads      int
	HeapMB       float64
	AllocRateMB  float64
	GCCount      uint32
	MaxPauseUs   uint64
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second and records go
// to slog.Default().
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		mu:             &sync.Mutex{},
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

// RecordUpload adds n bytes written to GPU buffers to the current window.
//
// Parameters:
//   - n: the number of bytes uploaded
func (p *Profiler) RecordUpload(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.uploadBytes += uint64(n)
	p.uploadCount++
}

// Tick should be called once per frame. When the update interval has elapsed it logs the
// window's statistics and starts a new window.
//
// Returns:
//   - Stats: the finished window, zero if none finished
//   - bool: true if stats were logged this tick
func (p *Profiler) Tick() (Stats, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return Stats{}, false
	}

	runtime.ReadMemStats(&p.memStats)
	secs := elapsed.Seconds()
	s := Stats{
		FPS:          float64(p.frameCount) / secs,
		UploadMB:     float64(p.uploadBytes) / 1024 / 1024,
		UploadRateMB: float64(p.uploadBytes) / 1024 / 1024 / secs,
		Uploads:      p.uploadCount,
		HeapMB:       float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:  float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / secs,
		GCCount:      p.memStats.NumGC,
	}

	// PauseNs is a circular buffer of the last 256 pauses
	if s.GCCount > 0 {
		start := p.lastGCCount
		if s.GCCount-start > 256 {
			start = s.GCCount - 256
		}
		for i := start; i < s.GCCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Info("profiler",
		"fps", s.FPS,
		"uploads", s.Uploads,
		"upload_mb", s.UploadMB,
		"upload_rate_mb", s.UploadRateMB,
		"heap_mb", s.HeapMB,
		"alloc_rate_mb", s.AllocRateMB,
		"gc", s.GCCount,
		"max_pause_us", s.MaxPauseUs,
	)

	p.frameCount = 0
	p.uploadBytes = 0
	p.uploadCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return s, true
}
