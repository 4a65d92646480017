// Package param provides plugin parameter objects, their registry, and the
// reflection that turns an engine parameter table into parameters.
package param

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
)

// Parameter represents a plugin parameter
type Parameter struct {
	ID           uint32
	Key          string // Engine-side identifier, stable across sessions
	Name         string
	ShortName    string
	Unit         string
	Min          float64
	Max          float64
	DefaultValue float64 // Normalized
	StepCount    int32
	Flags        uint32
	UnitID       int32

	// Atomic value for lock-free access in audio thread
	value atomic.Uint64

	// Value formatting
	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)
}

// Flags for parameters
const (
	CanAutomate     uint32 = 1 << 0
	IsReadOnly      uint32 = 1 << 1
	IsWrapAround    uint32 = 1 << 2
	IsList          uint32 = 1 << 3
	IsHidden        uint32 = 1 << 4
	IsProgramChange uint32 = 1 << 15
	IsBypass        uint32 = 1 << 16
)

// GetValue returns the current normalized value (0-1)
func (p *Parameter) GetValue() float64 {
	return math.Float64frombits(p.value.Load())
}

// SetValue sets the normalized value (0-1)
func (p *Parameter) SetValue(value float64) {
	if math.IsNaN(value) {
		return
	}
	p.value.Store(math.Float64bits(clamp01(value)))
}

// GetPlainValue converts the current value to the plain range
func (p *Parameter) GetPlainValue() float64 {
	return p.Denormalize(p.GetValue())
}

// SetPlainValue sets the value from the plain range
func (p *Parameter) SetPlainValue(plain float64) {
	p.SetValue(p.Normalize(plain))
}

// SetFormatter sets custom value formatting
func (p *Parameter) SetFormatter(format func(float64) string, parse func(string) (float64, error)) {
	p.formatFunc = format
	p.parseFunc = parse
}

// FormatValue returns formatted parameter value
func (p *Parameter) FormatValue(normalized float64) string {
	plain := p.Denormalize(normalized)

	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}

	var s string
	if p.StepCount > 0 {
		s = strconv.FormatFloat(plain, 'f', -1, 64)
	} else {
		s = fmt.Sprintf("%.2f", plain)
	}
	if p.Unit != "" {
		s += " " + p.Unit
	}
	return s
}

// ParseValue parses string to normalized value
func (p *Parameter) ParseValue(str string) (float64, error) {
	if p.parseFunc != nil {
		plain, err := p.parseFunc(str)
		if err != nil {
			return 0, err
		}
		return p.Normalize(plain), nil
	}
	plain, err := parseFloat(trimUnit(str, p.Unit))
	if err != nil {
		return 0, err
	}
	return p.Normalize(plain), nil
}

// Normalize converts plain value to normalized (0-1)
func (p *Parameter) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return 0
	}
	normalized := clamp01((plain - p.Min) / (p.Max - p.Min))
	if p.StepCount > 0 {
		steps := float64(p.StepCount)
		normalized = math.Round(normalized*steps) / steps
	}
	return normalized
}

// Denormalize converts normalized (0-1) to plain value. Discrete parameters
// snap to their nearest step.
func (p *Parameter) Denormalize(normalized float64) float64 {
	normalized = clamp01(normalized)
	if p.StepCount > 0 {
		steps := float64(p.StepCount)
		return p.Min + math.Round(normalized*steps)*(p.Max-p.Min)/steps
	}
	return p.Min + normalized*(p.Max-p.Min)
}

// StepIndex returns the current step of a discrete parameter.
func (p *Parameter) StepIndex() int {
	if p.StepCount <= 0 {
		return 0
	}
	return int(math.Round(p.GetValue() * float64(p.StepCount)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
