package param

import (
	"fmt"
	"math"
	"strings"
)

// Formatter pairs a display function with its inverse.
type Formatter struct {
	Format func(float64) string
	Parse  func(string) (float64, error)
}

// ForUnit returns the formatter used for an engine unit string, or false
// when the generic numeric formatting applies.
func ForUnit(unit string) (Formatter, bool) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "hz":
		return Formatter{FrequencyFormatter, FrequencyParser}, true
	case "khz":
		return Formatter{KilohertzFormatter, KilohertzParser}, true
	case "db":
		return Formatter{DecibelFormatter, DecibelParser}, true
	case "ms":
		return Formatter{TimeFormatter, TimeParser}, true
	case "%":
		return Formatter{PercentFormatter, PercentParser}, true
	}
	return Formatter{}, false
}

// FrequencyFormatter formats frequency values with Hz/kHz
func FrequencyFormatter(hz float64) string {
	if hz >= 1000 {
		return fmt.Sprintf("%.2f kHz", hz/1000)
	}
	return fmt.Sprintf("%.1f Hz", hz)
}

// FrequencyParser parses frequency strings
func FrequencyParser(str string) (float64, error) {
	str = strings.TrimSpace(str)
	lower := strings.ToLower(str)

	if strings.HasSuffix(lower, "khz") {
		val, err := parseFloat(str[:len(str)-3])
		if err != nil {
			return 0, err
		}
		return val * 1000, nil
	}
	if strings.HasSuffix(lower, "hz") {
		str = str[:len(str)-2]
	}
	return parseFloat(str)
}

// KilohertzFormatter formats a value held in kHz.
func KilohertzFormatter(khz float64) string {
	return FrequencyFormatter(khz * 1000)
}

// KilohertzParser parses a frequency string into kHz. A bare number is
// already in kHz.
func KilohertzParser(str string) (float64, error) {
	str = strings.TrimSpace(str)
	lower := strings.ToLower(str)
	switch {
	case strings.HasSuffix(lower, "khz"):
		return parseFloat(str[:len(str)-3])
	case strings.HasSuffix(lower, "hz"):
		hz, err := parseFloat(str[:len(str)-2])
		return hz / 1000, err
	}
	return parseFloat(str)
}

// DecibelFormatter formats dB values
func DecibelFormatter(db float64) string {
	if db <= -60 {
		return "-∞ dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}

// DecibelParser parses dB strings
func DecibelParser(str string) (float64, error) {
	if strings.Contains(str, "∞") || strings.Contains(strings.ToLower(str), "inf") {
		return math.Inf(-1), nil
	}
	str = strings.TrimSpace(str)
	if strings.HasSuffix(strings.ToLower(str), "db") {
		str = str[:len(str)-2]
	}
	return parseFloat(str)
}

// PercentFormatter formats percentage values
func PercentFormatter(value float64) string {
	return fmt.Sprintf("%.0f%%", value)
}

// PercentParser parses percentage strings
func PercentParser(str string) (float64, error) {
	return parseFloat(strings.TrimSuffix(strings.TrimSpace(str), "%"))
}

// TimeFormatter formats milliseconds with an appropriate unit
func TimeFormatter(ms float64) string {
	if ms < 1 {
		return fmt.Sprintf("%.2f µs", ms*1000)
	} else if ms < 1000 {
		return fmt.Sprintf("%.1f ms", ms)
	}
	return fmt.Sprintf("%.2f s", ms/1000)
}

// TimeParser parses time strings into milliseconds
func TimeParser(str string) (float64, error) {
	str = strings.TrimSpace(str)

	switch {
	case strings.HasSuffix(str, "µs"):
		val, err := parseFloat(strings.TrimSuffix(str, "µs"))
		return val / 1000, err
	case strings.HasSuffix(str, "us"):
		val, err := parseFloat(strings.TrimSuffix(str, "us"))
		return val / 1000, err
	case strings.HasSuffix(str, "ms"):
		return parseFloat(strings.TrimSuffix(str, "ms"))
	case strings.HasSuffix(str, "s"):
		val, err := parseFloat(strings.TrimSuffix(str, "s"))
		return val * 1000, err
	}
	return parseFloat(str)
}

// OnOffFormatter formats boolean as On/Off
func OnOffFormatter(value float64) string {
	if value > 0.5 {
		return "On"
	}
	return "Off"
}

// OnOffParser parses On/Off strings
func OnOffParser(str string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "on", "yes", "true", "1":
		return 1, nil
	case "off", "no", "false", "0":
		return 0, nil
	default:
		return 0, fmt.Errorf("expected 'on' or 'off', got: %s", str)
	}
}
