package debug

import (
	"fmt"
	"math"
)

// Thresholds used by CheckBuffer.
const (
	ClipThreshold    = 0.99
	DCThreshold      = 0.01
	SilenceThreshold = 0.0001
)

// BufferStats summarizes one audio channel.
type BufferStats struct {
	Peak          float32
	RMS           float32
	DC            float32
	ClippedFrames int
	NaNCount      int
	Silent        bool
}

// AnalyzeBuffer computes peak, RMS and DC of buffer. NaN and Inf samples
// are counted and excluded from the other statistics.
func AnalyzeBuffer(buffer []float32) BufferStats {
	var st BufferStats
	if len(buffer) == 0 {
		st.Silent = true
		return st
	}

	var sum, sumSquares float64
	valid := 0
	for _, s := range buffer {
		v := float64(s)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			st.NaNCount++
			continue
		}
		valid++
		a := float32(math.Abs(v))
		if a > st.Peak {
			st.Peak = a
		}
		if a >= ClipThreshold {
			st.ClippedFrames++
		}
		sum += v
		sumSquares += v * v
	}

	if valid > 0 {
		st.RMS = float32(math.Sqrt(sumSquares / float64(valid)))
		st.DC = float32(sum / float64(valid))
	}
	st.Silent = st.RMS < SilenceThreshold
	return st
}

// CheckBuffer returns human-readable problems found in buffer.
func CheckBuffer(buffer []float32, name string) []string {
	st := AnalyzeBuffer(buffer)

	var issues []string
	if st.NaNCount > 0 {
		issues = append(issues, fmt.Sprintf("%s: contains %d non-finite samples", name, st.NaNCount))
	}
	if st.ClippedFrames > 0 {
		issues = append(issues, fmt.Sprintf("%s: clipping detected (%d samples)", name, st.ClippedFrames))
	}
	if math.Abs(float64(st.DC)) > DCThreshold {
		issues = append(issues, fmt.Sprintf("%s: DC offset detected (%.3f)", name, st.DC))
	}
	return issues
}

// LogBufferStats logs the statistics of a buffer at debug level and its
// problems at warn level.
func (l *Logger) LogBufferStats(buffer []float32, name string) {
	st := AnalyzeBuffer(buffer)
	l.WithFields(Fields{
		"buffer":  name,
		"samples": len(buffer),
		"peak":    st.Peak,
		"rms":     st.RMS,
		"silent":  st.Silent,
	}).Debug("buffer stats")

	for _, issue := range CheckBuffer(buffer, name) {
		l.Warn("%s", issue)
	}
}
