// Package process provides the per-block audio processing context.
package process

import (
	"github.com/justyntemme/rnbossp/pkg/framework/param"
)

// DefaultMaxChanges is the parameter-change queue capacity used when
// NewContext is given a non-positive size.
const DefaultMaxChanges = 128

// ParameterChange is one normalized parameter value delivered by the host
// within a block.
type ParameterChange struct {
	ParamID      uint32
	Value        float64
	SampleOffset int
}

// Context provides a clean API for audio processing with zero allocations
type Context struct {
	Input      [][]float32
	Output     [][]float32
	SampleRate float64

	// Parameter access
	params  *param.Registry
	changes []ParameterChange
}

// NewContext creates a new process context with a pre-allocated parameter
// change queue.
func NewContext(maxChanges int, params *param.Registry) *Context {
	if maxChanges <= 0 {
		maxChanges = DefaultMaxChanges
	}
	return &Context{
		params:  params,
		changes: make([]ParameterChange, 0, maxChanges),
	}
}

// Param returns the current value of a parameter (0-1 normalized)
func (c *Context) Param(id uint32) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetValue()
	}
	return 0
}

// ParamPlain returns the current plain value of a parameter
func (c *Context) ParamPlain(id uint32) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetPlainValue()
	}
	return 0
}

// NumSamples returns the number of samples to process
func (c *Context) NumSamples() int {
	if len(c.Input) > 0 && len(c.Input[0]) > 0 {
		return len(c.Input[0])
	}
	if len(c.Output) > 0 && len(c.Output[0]) > 0 {
		return len(c.Output[0])
	}
	return 0
}

// NumInputChannels returns the number of input channels
func (c *Context) NumInputChannels() int {
	return len(c.Input)
}

// NumOutputChannels returns the number of output channels
func (c *Context) NumOutputChannels() int {
	return len(c.Output)
}

// ClearOutputs zeros the output channels from index first on. Processors
// that fill fewer channels than the host passes use it for the rest.
func (c *Context) ClearOutputs(first int) {
	for ch := max(0, first); ch < len(c.Output); ch++ {
		clear(c.Output[ch])
	}
}

// SetParameterAtOffset queues a parameter value for the current block. When
// the queue is full the value is applied immediately.
func (c *Context) SetParameterAtOffset(paramID uint32, value float64, sampleOffset int) {
	if len(c.changes) == cap(c.changes) {
		if p := c.params.Get(paramID); p != nil {
			p.SetValue(value)
		}
		return
	}
	c.changes = append(c.changes, ParameterChange{
		ParamID:      paramID,
		Value:        value,
		SampleOffset: sampleOffset,
	})
}

// ApplyParameterChanges writes every queued change to the registry in
// arrival order, so the last value for a parameter wins, and empties the
// queue. Unknown parameter IDs are dropped. It returns the number applied.
func (c *Context) ApplyParameterChanges() int {
	applied := 0
	for _, ch := range c.changes {
		if p := c.params.Get(ch.ParamID); p != nil {
			p.SetValue(ch.Value)
			applied++
		}
	}
	c.changes = c.changes[:0]
	return applied
}
