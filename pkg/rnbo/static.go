package rnbo

// StaticPatch is an engine built from a description alone. It keeps
// parameter values and copies each input channel to the output of the same
// index, so editors and the wrapper can run before the DSP is compiled in.
type StaticPatch struct {
	table  []ParameterInfo
	values []Number
	nIn    int
	nOut   int
}

var _ Patch = (*StaticPatch)(nil)

// NewStaticPatch returns a pass-through engine for d.
func NewStaticPatch(d *Description) *StaticPatch {
	table := d.Parameters()
	values := make([]Number, len(table))
	for i, info := range table {
		values[i] = info.Initial
	}
	return &StaticPatch{
		table:  table,
		values: values,
		nIn:    d.NumInputChannels,
		nOut:   d.NumOutputChannels,
	}
}

func (p *StaticPatch) NumParameters() int { return len(p.table) }

func (p *StaticPatch) ParameterInfo(index int) ParameterInfo { return p.table[index] }

func (p *StaticPatch) NumInputChannels() int { return p.nIn }

func (p *StaticPatch) NumOutputChannels() int { return p.nOut }

func (p *StaticPatch) PrepareToProcess(float64, int) {}

// SetParameterValue stores value clamped to the parameter range.
func (p *StaticPatch) SetParameterValue(index int, value Number) {
	if index < 0 || index >= len(p.values) {
		return
	}
	info := p.table[index]
	p.values[index] = max(info.Min, min(info.Max, value))
}

func (p *StaticPatch) ParameterValue(index int) Number {
	if index < 0 || index >= len(p.values) {
		return 0
	}
	return p.values[index]
}

func (p *StaticPatch) Process(in, out [][]Number, frames int) {
	for ch := range out {
		if ch < len(in) {
			copy(out[ch][:frames], in[ch][:frames])
			continue
		}
		clear(out[ch][:frames])
	}
}
