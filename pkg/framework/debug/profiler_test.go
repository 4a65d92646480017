package debug

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilerRecord(t *testing.T) {
	p := NewProfiler(3)

	for _, d := range []time.Duration{4, 1, 3, 2} {
		p.Record("block", d*time.Millisecond)
	}

	s, ok := p.Stats("block")
	require.True(t, ok)
	assert.Equal(t, uint64(4), s.Count)
	assert.Equal(t, 1*time.Millisecond, s.Min)
	assert.Equal(t, 4*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Last)
	assert.Equal(t, 2500*time.Microsecond, s.Average())

	// Only the newest three survive, oldest first.
	assert.Equal(t, []time.Duration{1 * time.Millisecond, 3 * time.Millisecond, 2 * time.Millisecond}, s.Recent)
	assert.Equal(t, 3*time.Millisecond, s.Percentile(100))
	assert.Equal(t, 1*time.Millisecond, s.Percentile(0))
}

func TestProfilerStart(t *testing.T) {
	p := NewProfiler(10)

	stop := p.Start("sleep")
	time.Sleep(2 * time.Millisecond)
	stop()

	s, ok := p.Stats("sleep")
	require.True(t, ok)
	assert.GreaterOrEqual(t, s.Last, 2*time.Millisecond)

	p.Time("fn", func() {})
	_, ok = p.Stats("fn")
	assert.True(t, ok)
}

func TestProfilerDisabled(t *testing.T) {
	p := NewProfiler(10)
	p.SetEnabled(false)

	p.Start("off")()

	_, ok := p.Stats("off")
	assert.False(t, ok)
}

func TestProfilerReport(t *testing.T) {
	p := NewProfiler(10)
	assert.Contains(t, p.Report(), "No measurements")

	p.Record("b", time.Millisecond)
	p.Record("a", time.Millisecond)

	report := p.Report()
	assert.Less(t, strings.Index(report, "a "), strings.Index(report, "b "))
	assert.Contains(t, report, "count=1")

	p.Reset()
	_, ok := p.Stats("a")
	assert.False(t, ok)
}

func TestProfilerLoad(t *testing.T) {
	p := NewProfiler(10)
	// 128 frames at 48 kHz last 2.666 ms.
	p.Record("process", 1333333*time.Nanosecond)

	assert.InDelta(t, 50, p.Load("process", 48000, 128), 0.01)
	assert.Zero(t, p.Load("missing", 48000, 128))
	assert.Zero(t, p.Load("process", 0, 128))
}
