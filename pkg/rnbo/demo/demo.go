// Package demo provides the stereo patch shipped with the DEMO module.
//
// The patch is a filter → drive → delay → reverb chain. Importing the package
// registers it with the rnbo engine registry under EngineID.
package demo

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/effects"
	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"

	"github.com/justyntemme/rnbossp/pkg/rnbo"
)

// EngineID is the registry id of the demo patch.
const EngineID = "DEMO"

const numChannels = 2

const defaultSampleRate = 44100.0

// Parameter indices.
const (
	ParamMode = iota
	ParamCutoff
	ParamResonance
	ParamDrive
	ParamTime
	ParamFeedback
	ParamMix
	ParamSpace
	ParamBypass
	ParamTrim
	numParams
)

// Filter modes, in enum order.
const (
	ModeLowpass = iota
	ModeHighpass
	ModeBandpass
)

var table = [numParams]rnbo.ParameterInfo{
	ParamMode: {ID: "mode", Name: "mode", DisplayName: "Mode",
		Max: 2, Steps: 3, EnumValues: []string{"lowpass", "highpass", "bandpass"}},
	ParamCutoff: {ID: "cutoff", Name: "cutoff", DisplayName: "Cutoff", Unit: "Hz",
		Min: 20, Max: 20000, Initial: 2000, Exponent: 3},
	ParamResonance: {ID: "resonance", Name: "resonance", DisplayName: "Reso",
		Min: 0.1, Max: 10, Initial: 0.707},
	ParamDrive: {ID: "drive", Name: "drive", DisplayName: "Drive",
		Max: 10, Steps: 11},
	ParamTime: {ID: "time", Name: "time", DisplayName: "Time", Unit: "ms",
		Min: 1, Max: 2000, Initial: 250},
	ParamFeedback: {ID: "feedback", Name: "feedback", DisplayName: "Fdbk",
		Max: 0.95, Initial: 0.35},
	ParamMix: {ID: "mix", Name: "mix", DisplayName: "Mix",
		Max: 1, Initial: 0.25},
	ParamSpace: {ID: "space", Name: "space", DisplayName: "Space",
		Max: 1},
	ParamBypass: {ID: "bypass", Name: "bypass", DisplayName: "Bypass",
		Max: 1, Steps: 2},
	ParamTrim: {ID: "trim", Name: "trim", Unit: "dB",
		Min: -24, Max: 6},
}

func init() {
	for i := range table {
		table[i].Index = i
		table[i].Visible = i != ParamTrim
	}
	rnbo.Register(EngineID, Factory)
}

// Factory creates a demo patch for the registry.
func Factory() (rnbo.Patch, error) {
	return New(), nil
}

type channel struct {
	filter *biquad.Section
	delay  *effects.Delay
	reverb *effects.Reverb
}

// Patch is the demo engine.
type Patch struct {
	sampleRate float64
	values     [numParams]rnbo.Number
	channels   [numChannels]channel
	dirty      bool
}

var _ rnbo.Patch = (*Patch)(nil)

// New creates a demo patch at the default sample rate with initial values.
func New() *Patch {
	p := &Patch{}
	for i := range table {
		p.values[i] = table[i].Initial
	}
	p.PrepareToProcess(defaultSampleRate, 0)
	return p
}

// Description returns the description.json content for the demo export.
func Description() *rnbo.Description {
	return rnbo.Describe(New(), rnbo.DescriptionMeta{
		Name:       "demo",
		ObjectName: "rnbomatic",
	})
}

func (p *Patch) NumParameters() int { return numParams }

func (p *Patch) ParameterInfo(index int) rnbo.ParameterInfo {
	return table[index]
}

func (p *Patch) NumInputChannels() int  { return numChannels }
func (p *Patch) NumOutputChannels() int { return numChannels }

// PrepareToProcess rebuilds the delay lines for sampleRate and clears state.
func (p *Patch) PrepareToProcess(sampleRate float64, maxBlockSize int) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		sampleRate = defaultSampleRate
	}
	p.sampleRate = sampleRate

	for ch := range p.channels {
		c := &p.channels[ch]
		if c.filter == nil {
			c.filter = biquad.NewSection(biquad.Coefficients{B0: 1})
		}
		c.filter.Reset()

		// sampleRate is validated above, NewDelay cannot fail here.
		c.delay, _ = effects.NewDelay(sampleRate)

		if c.reverb == nil {
			c.reverb = effects.NewReverb()
		}
		c.reverb.Reset()
	}
	p.dirty = true
	p.update()
}

// SetParameterValue clamps value into the parameter range and stores it.
func (p *Patch) SetParameterValue(index int, value rnbo.Number) {
	if index < 0 || index >= numParams {
		return
	}
	info := table[index]
	value = math.Max(info.Min, math.Min(info.Max, value))
	if info.Steps > 1 || info.IsEnum() {
		value = quantize(info, value)
	}
	if p.values[index] != value {
		p.values[index] = value
		p.dirty = true
	}
}

func (p *Patch) ParameterValue(index int) rnbo.Number {
	if index < 0 || index >= numParams {
		return 0
	}
	return p.values[index]
}

// Process renders frames samples per channel.
func (p *Patch) Process(in, out [][]rnbo.Number, frames int) {
	if p.dirty {
		p.update()
	}

	bypass := p.values[ParamBypass] >= 0.5
	drive := p.values[ParamDrive]
	trim := math.Pow(10, p.values[ParamTrim]/20)

	var norm float64
	if drive > 0 {
		norm = 1 / math.Tanh(1+drive)
	}

	for ch := 0; ch < numChannels && ch < len(out); ch++ {
		dst := out[ch][:frames]
		if ch >= len(in) {
			clear(dst)
			continue
		}
		src := in[ch][:frames]

		if bypass {
			copy(dst, src)
			continue
		}

		c := &p.channels[ch]
		for i, x := range src {
			y := c.filter.ProcessSample(x)
			if drive > 0 {
				y = math.Tanh(y*(1+drive)) * norm
			}
			y = c.delay.ProcessSample(y)
			y = c.reverb.ProcessSample(y)
			dst[i] = y * trim
		}
	}
}

func (p *Patch) update() {
	p.dirty = false

	freq := math.Min(p.values[ParamCutoff], 0.45*p.sampleRate)
	q := p.values[ParamResonance]

	var coeffs biquad.Coefficients
	switch int(p.values[ParamMode]) {
	case ModeHighpass:
		coeffs = design.Highpass(freq, q, p.sampleRate)
	case ModeBandpass:
		coeffs = design.Bandpass(freq, q, p.sampleRate)
	default:
		coeffs = design.Lowpass(freq, q, p.sampleRate)
	}

	space := p.values[ParamSpace]
	for ch := range p.channels {
		c := &p.channels[ch]
		c.filter.Coefficients = coeffs

		// Ranges in the table sit inside the delay's accepted ranges.
		_ = c.delay.SetTime(p.values[ParamTime] / 1000)
		_ = c.delay.SetFeedback(p.values[ParamFeedback])
		_ = c.delay.SetMix(p.values[ParamMix])

		c.reverb.SetWet(space)
		c.reverb.SetRoomSize(0.5 + 0.45*space)
	}
}

func quantize(info rnbo.ParameterInfo, value float64) float64 {
	steps := info.Steps
	if info.IsEnum() {
		steps = len(info.EnumValues)
	}
	if steps < 2 || info.Max <= info.Min {
		return value
	}
	stepSize := (info.Max - info.Min) / float64(steps-1)
	return info.Min + math.Round((value-info.Min)/stepSize)*stepSize
}
