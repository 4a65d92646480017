package debug

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Profiler records timings of named sections.
type Profiler struct {
	mu         sync.RWMutex
	sections   map[string]*section
	enabled    atomic.Bool
	maxSamples int
}

type section struct {
	stats   Stats
	samples []time.Duration
	next    int
}

// Stats summarizes the timings of one section.
type Stats struct {
	Name  string
	Count uint64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Last  time.Duration

	// Recent holds up to maxSamples of the latest timings, oldest first.
	Recent []time.Duration
}

// Average returns the mean duration.
func (s Stats) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Percentile returns the p-th percentile (0-100) of the recent samples.
func (s Stats) Percentile(p float64) time.Duration {
	if len(s.Recent) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), s.Recent...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(float64(len(sorted)-1) * p / 100)
	return sorted[max(0, min(idx, len(sorted)-1))]
}

// NewProfiler creates a profiler keeping maxSamples recent timings per
// section.
func NewProfiler(maxSamples int) *Profiler {
	if maxSamples <= 0 {
		maxSamples = 1
	}
	p := &Profiler{
		sections:   make(map[string]*section),
		maxSamples: maxSamples,
	}
	p.enabled.Store(true)
	return p
}

// SetEnabled enables or disables profiling.
func (p *Profiler) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// Start begins timing a named section and returns the function that ends it.
func (p *Profiler) Start(name string) func() {
	if !p.enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() {
		p.Record(name, time.Since(start))
	}
}

// Time measures the execution time of fn.
func (p *Profiler) Time(name string, fn func()) {
	stop := p.Start(name)
	defer stop()
	fn()
}

// Record adds one timing for name.
func (p *Profiler) Record(name string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sections[name]
	if !ok {
		s = &section{
			stats:   Stats{Name: name, Min: elapsed, Max: elapsed},
			samples: make([]time.Duration, 0, p.maxSamples),
		}
		p.sections[name] = s
	}

	s.stats.Count++
	s.stats.Total += elapsed
	s.stats.Last = elapsed
	s.stats.Min = min(s.stats.Min, elapsed)
	s.stats.Max = max(s.stats.Max, elapsed)

	if len(s.samples) < p.maxSamples {
		s.samples = append(s.samples, elapsed)
	} else {
		s.samples[s.next] = elapsed
	}
	s.next = (s.next + 1) % p.maxSamples
}

// Stats returns a snapshot of one section.
func (p *Profiler) Stats(name string) (Stats, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, ok := p.sections[name]
	if !ok {
		return Stats{}, false
	}
	return s.snapshot(), true
}

func (s *section) snapshot() Stats {
	out := s.stats
	out.Recent = make([]time.Duration, 0, len(s.samples))
	if len(s.samples) == cap(s.samples) {
		out.Recent = append(out.Recent, s.samples[s.next:]...)
		out.Recent = append(out.Recent, s.samples[:s.next]...)
	} else {
		out.Recent = append(out.Recent, s.samples...)
	}
	return out
}

// Reset clears all sections.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sections = make(map[string]*section)
}

// Report formats every section sorted by name.
func (p *Profiler) Report() string {
	p.mu.RLock()
	names := make([]string, 0, len(p.sections))
	for name := range p.sections {
		names = append(names, name)
	}
	p.mu.RUnlock()

	if len(names) == 0 {
		return "No measurements recorded\n"
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		s, ok := p.Stats(name)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%-16s count=%d avg=%v min=%v max=%v p95=%v\n",
			name, s.Count, s.Average(), s.Min, s.Max, s.Percentile(95))
	}
	return sb.String()
}

// Load returns the average time of section as a percentage of the real-time
// duration of blockSize frames at sampleRate.
func (p *Profiler) Load(name string, sampleRate float64, blockSize int) float64 {
	s, ok := p.Stats(name)
	if !ok || s.Count == 0 || sampleRate <= 0 || blockSize <= 0 {
		return 0
	}
	budget := time.Duration(float64(blockSize) / sampleRate * float64(time.Second))
	return float64(s.Average()) / float64(budget) * 100
}
