package demo

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/rnbossp/pkg/rnbo"
)

func buffers(channels, frames int) [][]rnbo.Number {
	out := make([][]rnbo.Number, channels)
	for i := range out {
		out[i] = make([]rnbo.Number, frames)
	}
	return out
}

func TestRegistered(t *testing.T) {
	p, err := rnbo.New(EngineID)
	require.NoError(t, err)
	assert.Equal(t, numParams, p.NumParameters())
	assert.Equal(t, 2, p.NumInputChannels())
	assert.Equal(t, 2, p.NumOutputChannels())
}

func TestParameterTable(t *testing.T) {
	p := New()
	table := rnbo.Parameters(p)

	visible := 0
	for i, info := range table {
		assert.Equal(t, i, info.Index)
		assert.NotEmpty(t, info.ID)
		assert.LessOrEqual(t, info.Min, info.Max)
		assert.GreaterOrEqual(t, info.Initial, info.Min, info.ID)
		assert.LessOrEqual(t, info.Initial, info.Max, info.ID)
		if info.Visible {
			visible++
		}
	}
	assert.Equal(t, numParams-1, visible)
	assert.True(t, table[ParamMode].IsEnum())
	assert.Equal(t, 2, table[ParamBypass].Steps)
	assert.Equal(t, 11, table[ParamDrive].Steps)
}

func TestDescriptionIsValid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Description().Encode(&buf))

	d, err := rnbo.DecodeDescription(&buf)
	require.NoError(t, err)
	assert.Equal(t, rnbo.Parameters(New()), d.Parameters())
}

func TestSetParameterValueClampsAndQuantizes(t *testing.T) {
	p := New()

	p.SetParameterValue(ParamCutoff, 1e9)
	assert.Equal(t, 20000.0, p.ParameterValue(ParamCutoff))

	p.SetParameterValue(ParamMode, 1.4)
	assert.Equal(t, 1.0, p.ParameterValue(ParamMode))

	p.SetParameterValue(ParamDrive, 3.6)
	assert.InDelta(t, 4.0, p.ParameterValue(ParamDrive), 1e-9)

	p.SetParameterValue(ParamBypass, 0.7)
	assert.Equal(t, 1.0, p.ParameterValue(ParamBypass))

	p.SetParameterValue(-1, 5)
	p.SetParameterValue(numParams, 5)
	assert.Zero(t, p.ParameterValue(numParams))
}

func TestBypassIsIdentity(t *testing.T) {
	p := New()
	p.PrepareToProcess(48000, 64)
	p.SetParameterValue(ParamBypass, 1)

	in := buffers(2, 64)
	for ch := range in {
		for i := range in[ch] {
			in[ch][i] = math.Sin(float64(i+ch) * 0.1)
		}
	}
	out := buffers(2, 64)
	p.Process(in, out, 64)

	assert.Equal(t, in, out)
}

func TestSilenceInSilenceOut(t *testing.T) {
	p := New()
	p.PrepareToProcess(48000, 128)

	in := buffers(2, 128)
	out := buffers(2, 128)
	for block := 0; block < 8; block++ {
		p.Process(in, out, 128)
	}
	for ch := range out {
		for _, s := range out[ch] {
			assert.Zero(t, s)
		}
	}
}

func TestProcessStaysFinite(t *testing.T) {
	p := New()
	p.PrepareToProcess(44100, 256)
	p.SetParameterValue(ParamMode, ModeBandpass)
	p.SetParameterValue(ParamDrive, 10)
	p.SetParameterValue(ParamSpace, 1)
	p.SetParameterValue(ParamFeedback, 0.95)

	in := buffers(2, 256)
	out := buffers(2, 256)
	for block := 0; block < 16; block++ {
		for ch := range in {
			for i := range in[ch] {
				in[ch][i] = math.Sin(float64(block*256+i) * 0.05)
			}
		}
		p.Process(in, out, 256)
	}
	for ch := range out {
		for _, s := range out[ch] {
			require.False(t, math.IsNaN(s) || math.IsInf(s, 0))
		}
	}
}

func TestMissingInputChannelIsSilenced(t *testing.T) {
	p := New()
	p.SetParameterValue(ParamBypass, 1)

	in := buffers(1, 16)
	out := buffers(2, 16)
	for i := range out[1] {
		out[1][i] = 1
	}
	p.Process(in, out, 16)
	for _, s := range out[1] {
		assert.Zero(t, s)
	}
}
