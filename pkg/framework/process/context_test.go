package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/rnbossp/pkg/framework/param"
)

func newRegistry(t *testing.T) *param.Registry {
	t.Helper()
	reg := param.NewRegistry()
	require.NoError(t, reg.Add(
		param.New(0, "Gain").Range(-24, 6).Default(0).Build(),
		param.New(1, "Mix").Build(),
	))
	return reg
}

func TestContextParameterQueue(t *testing.T) {
	ctx := NewContext(4, newRegistry(t))

	ctx.SetParameterAtOffset(1, 0.25, 0)
	ctx.SetParameterAtOffset(1, 0.75, 32)
	ctx.SetParameterAtOffset(9, 0.5, 10)

	// Nothing changes before the queue is applied.
	assert.Equal(t, 0.0, ctx.Param(1))

	// The unknown id is dropped, the last value wins.
	assert.Equal(t, 2, ctx.ApplyParameterChanges())
	assert.Equal(t, 0.75, ctx.Param(1))
	assert.Zero(t, ctx.ApplyParameterChanges())
}

func TestContextQueueFullAppliesImmediately(t *testing.T) {
	ctx := NewContext(1, newRegistry(t))

	ctx.SetParameterAtOffset(1, 0.1, 0)
	ctx.SetParameterAtOffset(1, 0.9, 5)

	assert.Equal(t, 0.9, ctx.Param(1))

	assert.Equal(t, 1, ctx.ApplyParameterChanges())
	assert.Equal(t, 0.1, ctx.Param(1))
}

func TestContextParamLookup(t *testing.T) {
	ctx := NewContext(0, newRegistry(t))

	assert.InDelta(t, 0, ctx.ParamPlain(0), 1e-9)
	assert.Equal(t, 0.0, ctx.Param(42))
	assert.Equal(t, 0.0, ctx.ParamPlain(42))

	for i := 0; i <= DefaultMaxChanges; i++ {
		ctx.SetParameterAtOffset(1, 0.5, i)
	}
	assert.Equal(t, DefaultMaxChanges, ctx.ApplyParameterChanges())
}

func TestContextBuffers(t *testing.T) {
	ctx := NewContext(0, param.NewRegistry())
	ctx.Input = [][]float32{{1, 2, 3}}
	ctx.Output = [][]float32{{9, 9, 9}, {8, 8, 8}}

	assert.Equal(t, 3, ctx.NumSamples())
	assert.Equal(t, 1, ctx.NumInputChannels())
	assert.Equal(t, 2, ctx.NumOutputChannels())

	ctx.ClearOutputs(1)
	assert.Equal(t, []float32{9, 9, 9}, ctx.Output[0])
	assert.Equal(t, []float32{0, 0, 0}, ctx.Output[1])

	ctx.ClearOutputs(-1)
	assert.Equal(t, []float32{0, 0, 0}, ctx.Output[0])
	ctx.ClearOutputs(5)
}

func TestContextNumSamplesFromOutput(t *testing.T) {
	ctx := NewContext(0, param.NewRegistry())
	ctx.Output = [][]float32{make([]float32, 64)}
	assert.Equal(t, 64, ctx.NumSamples())
}
