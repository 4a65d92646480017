// Package rnbo defines the contract between the plugin wrapper and an
// exported RNBO patch.
//
// The engine itself is opaque: the wrapper only asks it for its parameter
// table and channel counts, pushes parameter values, and hands it blocks of
// float64 samples.
package rnbo

// Number is the engine's sample and parameter type.
type Number = float64

// ParameterInfo describes one entry of the engine's parameter table.
type ParameterInfo struct {
	Index       int
	ID          string
	Name        string
	DisplayName string
	Unit        string
	Min         Number
	Max         Number
	Steps       int
	EnumValues  []string
	Initial     Number
	Exponent    Number
	Visible     bool
}

// IsEnum reports whether the parameter carries enumeration labels.
func (p ParameterInfo) IsEnum() bool {
	return len(p.EnumValues) > 0
}

// Label returns the name shown to the user.
func (p ParameterInfo) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Name
}

// Patch is an exported RNBO DSP object.
type Patch interface {
	NumParameters() int
	ParameterInfo(index int) ParameterInfo

	NumInputChannels() int
	NumOutputChannels() int

	// PrepareToProcess is called before the first Process call and whenever
	// the sample rate or maximum block size changes.
	PrepareToProcess(sampleRate float64, maxBlockSize int)

	SetParameterValue(index int, value Number)
	ParameterValue(index int) Number

	// Process renders frames samples. in and out hold one buffer per channel,
	// each at least frames long.
	Process(in, out [][]Number, frames int)
}

// Parameters returns the full parameter table of p in index order.
func Parameters(p Patch) []ParameterInfo {
	n := p.NumParameters()
	out := make([]ParameterInfo, n)
	for i := 0; i < n; i++ {
		out[i] = p.ParameterInfo(i)
	}
	return out
}
