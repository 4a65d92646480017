package rnbo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticPatch(t *testing.T) {
	d, err := DecodeDescription(strings.NewReader(sampleDescription))
	require.NoError(t, err)

	p := NewStaticPatch(d)
	assert.Equal(t, 3, p.NumParameters())
	assert.Equal(t, 2, p.NumInputChannels())
	assert.Equal(t, 1, p.NumOutputChannels())
	assert.Equal(t, "cutoff", p.ParameterInfo(0).ID)
	assert.Equal(t, 1000.0, p.ParameterValue(0))

	p.SetParameterValue(0, 1e6)
	assert.Equal(t, 20000.0, p.ParameterValue(0))
	p.SetParameterValue(7, 1)
	assert.Zero(t, p.ParameterValue(7))

	in := [][]Number{{1, 2, 3}, {4, 5, 6}}
	out := [][]Number{{9, 9, 9}}
	p.Process(in, out, 2)
	assert.Equal(t, []Number{1, 2, 9}, out[0])
}
