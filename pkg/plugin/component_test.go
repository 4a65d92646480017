package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/rnbossp/pkg/framework/bus"
	"github.com/justyntemme/rnbossp/pkg/framework/param"
	fwplugin "github.com/justyntemme/rnbossp/pkg/framework/plugin"
	"github.com/justyntemme/rnbossp/pkg/framework/process"
)

const gainID = 0

type gainProcessor struct {
	*fwplugin.BaseProcessor
	blocks   int
	applyOwn bool
	panicNow bool
}

func newGainProcessor(t testing.TB) *gainProcessor {
	t.Helper()
	reg := param.NewRegistry()
	require.NoError(t, reg.Add(param.New(gainID, "Gain").Key("gain").Range(0, 2).Default(1).Build()))
	return &gainProcessor{
		BaseProcessor: fwplugin.NewBaseProcessor(bus.PerChannel(1, 1), reg),
		applyOwn:      true,
	}
}

func (g *gainProcessor) ProcessAudio(ctx *process.Context) {
	if g.panicNow {
		panic("boom")
	}
	g.blocks++
	if g.applyOwn {
		ctx.ApplyParameterChanges()
	}
	gain := float32(ctx.ParamPlain(gainID))
	n := ctx.NumSamples()
	for ch := range ctx.Output {
		for i := 0; i < n; i++ {
			var x float32
			if ch < len(ctx.Input) {
				x = ctx.Input[ch][i]
			}
			ctx.Output[ch][i] = x * gain
		}
	}
}

type viewProcessor struct {
	*gainProcessor
}

type textView string

func (v textView) Title() string  { return string(v) }
func (v textView) Render() string { return string(v) }

func (v *viewProcessor) CreateView(name string) (View, error) {
	if name != ViewEditor {
		return nil, ErrNoView
	}
	return textView("gain"), nil
}

var testInfo = fwplugin.Info{ID: "com.example.gain", Name: "Gain", Version: "1.0.0"}

func newInitialized(t *testing.T, p Processor) *Component {
	t.Helper()
	c := NewComponent(testInfo, p)
	require.NoError(t, c.Initialize())
	require.NoError(t, c.SetupProcessing(ProcessSetup{MaxSamplesPerBlock: 64, SampleRate: 44100}))
	require.NoError(t, c.SetActive(true))
	require.NoError(t, c.SetProcessing(true))
	return c
}

func TestComponentLifecycle(t *testing.T) {
	c := NewComponent(testInfo, newGainProcessor(t))

	assert.ErrorIs(t, c.SetActive(true), ErrNotInitialized)
	assert.ErrorIs(t, c.Process(&ProcessData{}), ErrNotInitialized)
	assert.ErrorIs(t, c.SetupProcessing(ProcessSetup{MaxSamplesPerBlock: 64, SampleRate: 44100}), ErrNotInitialized)

	require.NoError(t, c.Initialize())
	assert.Equal(t, int32(128), c.Setup().MaxSamplesPerBlock)

	assert.ErrorIs(t, c.SetupProcessing(ProcessSetup{MaxSamplesPerBlock: 0, SampleRate: 44100}), ErrInvalidArgument)
	assert.ErrorIs(t, c.SetupProcessing(ProcessSetup{MaxSamplesPerBlock: 64, SampleRate: 44100, SymbolicSampleSize: Sample64}), ErrNotSupported)
	require.NoError(t, c.SetupProcessing(ProcessSetup{MaxSamplesPerBlock: 64, SampleRate: 44100}))

	assert.ErrorIs(t, c.SetProcessing(true), ErrNotSupported)
	require.NoError(t, c.SetActive(true))
	assert.ErrorIs(t, c.SetupProcessing(ProcessSetup{MaxSamplesPerBlock: 32, SampleRate: 44100}), ErrNotSupported)

	require.NoError(t, c.Terminate())
	assert.ErrorIs(t, c.SetActive(true), ErrNotInitialized)
}

func TestComponentProcess(t *testing.T) {
	g := newGainProcessor(t)
	c := newInitialized(t, g)

	in := []float32{1, 2, 3, 4}
	out := make([]float32, 4)
	require.NoError(t, c.Process(&ProcessData{
		NumSamples: 4,
		Inputs:     [][]float32{in},
		Outputs:    [][]float32{out},
		ParameterChanges: []process.ParameterChange{
			{ParamID: gainID, Value: 1, SampleOffset: 0},
		},
	}))

	assert.Equal(t, []float32{2, 4, 6, 8}, out)
	assert.Equal(t, 1, g.blocks)
}

func TestComponentProcessAppliesLeftoverChanges(t *testing.T) {
	g := newGainProcessor(t)
	g.applyOwn = false
	c := newInitialized(t, g)

	out := make([]float32, 2)
	require.NoError(t, c.Process(&ProcessData{
		NumSamples:       2,
		Inputs:           [][]float32{{1, 1}},
		Outputs:          [][]float32{out},
		ParameterChanges: []process.ParameterChange{{ParamID: gainID, Value: 0}},
	}))

	// The block ran with the old gain; the change lands afterwards.
	assert.Equal(t, []float32{1, 1}, out)
	assert.Equal(t, 0.0, c.GetParamNormalized(gainID))
}

func TestComponentProcessZeroSamples(t *testing.T) {
	g := newGainProcessor(t)
	c := newInitialized(t, g)

	require.NoError(t, c.Process(&ProcessData{
		ParameterChanges: []process.ParameterChange{{ParamID: gainID, Value: 0.25}},
	}))
	assert.Zero(t, g.blocks)
	assert.Equal(t, 0.25, c.GetParamNormalized(gainID))
}

func TestComponentProcessRejectsBadBuffers(t *testing.T) {
	c := newInitialized(t, newGainProcessor(t))

	err := c.Process(&ProcessData{NumSamples: 4, Outputs: [][]float32{make([]float32, 2)}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = c.Process(&ProcessData{NumSamples: 65, Outputs: [][]float32{make([]float32, 65)}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.ErrorIs(t, c.Process(nil), ErrInvalidArgument)
}

func TestComponentProcessRecoversPanic(t *testing.T) {
	g := newGainProcessor(t)
	c := newInitialized(t, g)
	g.panicNow = true

	err := c.Process(&ProcessData{NumSamples: 1, Outputs: [][]float32{{0}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestComponentBuses(t *testing.T) {
	c := NewComponent(testInfo, newGainProcessor(t))

	assert.Equal(t, int32(1), c.GetBusCount(bus.MediaTypeAudio, bus.DirectionInput))
	info, err := c.GetBusInfo(bus.MediaTypeAudio, bus.DirectionOutput, 0)
	require.NoError(t, err)
	assert.Equal(t, "Out 1", info.Name)

	_, err = c.GetBusInfo(bus.MediaTypeAudio, bus.DirectionOutput, 5)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	require.NoError(t, c.ActivateBus(bus.MediaTypeAudio, bus.DirectionInput, 0, false))
	assert.Error(t, c.ActivateBus(bus.MediaTypeAudio, bus.DirectionInput, 3, false))
	assert.NoError(t, c.SetBusArrangements([]int32{2}, []int32{2}))

	assert.True(t, c.CanProcessSampleSize(Sample32))
	assert.False(t, c.CanProcessSampleSize(Sample64))
	assert.Zero(t, c.GetLatencySamples())
	assert.Zero(t, c.GetTailSamples())
}

func TestComponentParameters(t *testing.T) {
	c := NewComponent(testInfo, newGainProcessor(t))

	require.Equal(t, int32(1), c.GetParameterCount())
	info, err := c.GetParameterInfo(0)
	require.NoError(t, err)
	assert.Equal(t, "Gain", info.Title)
	assert.Equal(t, 0.5, info.DefaultValue)

	_, err = c.GetParameterInfo(1)
	assert.ErrorIs(t, err, ErrUnknownParameter)

	assert.Equal(t, 1.5, c.NormalizedParamToPlain(gainID, 0.75))
	assert.Equal(t, 0.25, c.PlainParamToNormalized(gainID, 0.5))

	require.NoError(t, c.SetParamNormalized(gainID, 0.75))
	assert.Equal(t, 0.75, c.GetParamNormalized(gainID))
	assert.ErrorIs(t, c.SetParamNormalized(9, 0.1), ErrUnknownParameter)
	assert.Zero(t, c.GetParamNormalized(9))

	s, err := c.GetParamStringByValue(gainID, 0.5)
	require.NoError(t, err)
	assert.Equal(t, "1.00", s)

	v, err := c.GetParamValueByString(gainID, "0.5")
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)
}

func TestComponentState(t *testing.T) {
	c := NewComponent(testInfo, newGainProcessor(t))
	require.NoError(t, c.SetParamNormalized(gainID, 0.9))

	blob, err := c.GetState()
	require.NoError(t, err)

	other := NewComponent(testInfo, newGainProcessor(t))
	require.NoError(t, other.SetState(blob))
	assert.Equal(t, 0.9, other.GetParamNormalized(gainID))

	assert.Error(t, other.SetState([]byte("junk")))
}

func TestComponentCreateView(t *testing.T) {
	plain := NewComponent(testInfo, newGainProcessor(t))
	_, err := plain.CreateView(ViewEditor)
	assert.True(t, errors.Is(err, ErrNoView))

	withView := NewComponent(testInfo, &viewProcessor{newGainProcessor(t)})
	v, err := withView.CreateView(ViewEditor)
	require.NoError(t, err)
	assert.Equal(t, "gain", v.Title())

	_, err = withView.CreateView(ViewMini)
	assert.ErrorIs(t, err, ErrNoView)
}
