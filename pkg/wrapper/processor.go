// Package wrapper adapts an RNBO patch to the plugin processor interface:
// parameter reflection at construction, per-channel buses and the
// float32/float64 buffer marshalling of every block.
package wrapper

import (
	"fmt"
	"math"

	"github.com/justyntemme/rnbossp/pkg/editor"
	"github.com/justyntemme/rnbossp/pkg/framework/bus"
	"github.com/justyntemme/rnbossp/pkg/framework/param"
	fwplugin "github.com/justyntemme/rnbossp/pkg/framework/plugin"
	"github.com/justyntemme/rnbossp/pkg/framework/process"
	"github.com/justyntemme/rnbossp/pkg/plugin"
	"github.com/justyntemme/rnbossp/pkg/rnbo"
)

// DefaultBufferSize is the engine buffer length used until the host
// announces its maximum block size.
const DefaultBufferSize = 128

// Processor runs one RNBO patch inside the plugin framework.
type Processor struct {
	*fwplugin.BaseProcessor

	title    string
	patch    rnbo.Patch
	bindings []param.Binding

	// Plain values last sent to the engine, per binding.
	pushed []float64

	in         [][]rnbo.Number
	out        [][]rnbo.Number
	bufferSize int
}

var (
	_ plugin.Processor     = (*Processor)(nil)
	_ plugin.StateProvider = (*Processor)(nil)
	_ plugin.ViewProvider  = (*Processor)(nil)
)

// NewProcessor reflects the patch parameters and sizes one mono bus per
// engine channel.
func NewProcessor(title string, patch rnbo.Patch) (*Processor, error) {
	if patch == nil {
		return nil, fmt.Errorf("%s: nil patch", title)
	}
	bindings, registry, err := param.Reflect(patch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", title, err)
	}

	buses := bus.PerChannel(patch.NumInputChannels(), patch.NumOutputChannels())
	p := &Processor{
		BaseProcessor: fwplugin.NewBaseProcessor(buses, registry),
		title:         title,
		patch:         patch,
		bindings:      bindings,
		pushed:        make([]float64, len(bindings)),
	}
	p.OnInitialize(p.prepare)
	p.OnReset(p.reset)
	p.OnSetActive(p.activate)

	p.allocate(DefaultBufferSize)
	p.invalidate()
	return p, nil
}

// Patch returns the wrapped engine.
func (p *Processor) Patch() rnbo.Patch {
	return p.patch
}

// Bindings returns the reflected parameters in engine table order.
func (p *Processor) Bindings() []param.Binding {
	return p.bindings
}

// BufferSize returns the current engine buffer length in frames.
func (p *Processor) BufferSize() int {
	return p.bufferSize
}

// prepare sizes the engine buffers to maxBlockSize, prepares the engine
// and sends it every parameter value. It runs from Initialize.
func (p *Processor) prepare(sampleRate float64, maxBlockSize int32) error {
	size := int(maxBlockSize)
	if size <= 0 {
		size = DefaultBufferSize
	}
	p.allocate(size)
	p.patch.PrepareToProcess(sampleRate, size)

	p.invalidate()
	p.pushChanged()
	return nil
}

// reset clears the engine's DSP state on deactivation. The buffers are
// kept. Values are resent on the next activation.
func (p *Processor) reset() {
	p.patch.PrepareToProcess(p.SampleRate(), p.bufferSize)
	p.invalidate()
}

func (p *Processor) activate(active bool) error {
	if active {
		p.pushChanged()
	}
	return nil
}

func (p *Processor) allocate(size int) {
	if size == p.bufferSize && p.in != nil {
		return
	}
	p.bufferSize = size
	p.in = makeBuffers(p.patch.NumInputChannels(), size)
	p.out = makeBuffers(p.patch.NumOutputChannels(), size)
}

func makeBuffers(channels, size int) [][]rnbo.Number {
	bufs := make([][]rnbo.Number, channels)
	for i := range bufs {
		bufs[i] = make([]rnbo.Number, size)
	}
	return bufs
}

// invalidate forces the next pushChanged to send every value.
func (p *Processor) invalidate() {
	for i := range p.pushed {
		p.pushed[i] = math.NaN()
	}
}

// pushChanged sends the parameters whose plain value moved since the last
// push.
func (p *Processor) pushChanged() {
	for i, b := range p.bindings {
		v := b.Param.GetPlainValue()
		if v == p.pushed[i] {
			continue
		}
		p.patch.SetParameterValue(b.Index, v)
		p.pushed[i] = v
	}
}

// ProcessAudio applies queued parameter changes, forwards changed values to
// the engine and runs the block through it in chunks of at most BufferSize
// frames. Host inputs beyond the engine's are ignored, missing ones read as
// silence. Host outputs beyond the engine's are zeroed.
func (p *Processor) ProcessAudio(ctx *process.Context) {
	ctx.ApplyParameterChanges()
	p.pushChanged()

	frames := ctx.NumSamples()
	for pos := 0; pos < frames; pos += p.bufferSize {
		n := min(p.bufferSize, frames-pos)

		for ch, buf := range p.in {
			dst := buf[:n]
			if ch >= len(ctx.Input) {
				clear(dst)
				continue
			}
			src := ctx.Input[ch][pos : pos+n]
			for i, s := range src {
				dst[i] = rnbo.Number(s)
			}
		}

		p.patch.Process(p.in, p.out, n)

		for ch := range min(len(ctx.Output), len(p.out)) {
			dst := ctx.Output[ch][pos : pos+n]
			src := p.out[ch][:n]
			for i, s := range src {
				dst[i] = float32(s)
			}
		}
	}

	ctx.ClearOutputs(len(p.out))
}

// CreateView returns the full ("editor") or compact ("mini") editor.
func (p *Processor) CreateView(name string) (plugin.View, error) {
	switch name {
	case plugin.ViewEditor:
		return editor.NewFull(p.title, p.bindings), nil
	case plugin.ViewMini:
		return editor.NewMini(p.title, p.bindings), nil
	}
	return nil, fmt.Errorf("%q: %w", name, plugin.ErrNoView)
}
