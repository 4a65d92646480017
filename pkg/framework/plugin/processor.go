// Package plugin provides the metadata and base processor shared by every
// wrapped module.
package plugin

import (
	"github.com/justyntemme/rnbossp/pkg/framework/bus"
	"github.com/justyntemme/rnbossp/pkg/framework/param"
	"github.com/justyntemme/rnbossp/pkg/framework/state"
)

// BaseProcessor provides common functionality for audio processors
type BaseProcessor struct {
	params     *param.Registry
	buses      *bus.Configuration
	state      *state.Manager
	sampleRate float64
	active     bool

	// Optional callbacks for customization
	onInitialize func(sampleRate float64, maxBlockSize int32) error
	onSetActive  func(active bool) error
	onReset      func()
}

// NewBaseProcessor creates a base processor over an existing parameter
// registry. Nil arguments fall back to two mono buses each way and an empty
// registry.
func NewBaseProcessor(buses *bus.Configuration, params *param.Registry) *BaseProcessor {
	if buses == nil {
		buses = bus.PerChannel(2, 2)
	}
	if params == nil {
		params = param.NewRegistry()
	}

	return &BaseProcessor{
		params: params,
		buses:  buses,
		state:  state.NewManager(params),
	}
}

// Initialize implements the Processor interface
func (b *BaseProcessor) Initialize(sampleRate float64, maxBlockSize int32) error {
	b.sampleRate = sampleRate

	if b.onInitialize != nil {
		return b.onInitialize(sampleRate, maxBlockSize)
	}

	return nil
}

// GetParameters implements the Processor interface
func (b *BaseProcessor) GetParameters() *param.Registry {
	return b.params
}

// GetBuses implements the Processor interface
func (b *BaseProcessor) GetBuses() *bus.Configuration {
	return b.buses
}

// SetActive implements the Processor interface
func (b *BaseProcessor) SetActive(active bool) error {
	if !active && b.onReset != nil {
		b.onReset()
	}

	if b.onSetActive != nil {
		if err := b.onSetActive(active); err != nil {
			return err
		}
	}

	b.active = active
	return nil
}

// IsActive reports the last successful SetActive state.
func (b *BaseProcessor) IsActive() bool {
	return b.active
}

// GetLatencySamples implements the Processor interface - default no latency
func (b *BaseProcessor) GetLatencySamples() int32 {
	return 0
}

// GetTailSamples implements the Processor interface - default no tail
func (b *BaseProcessor) GetTailSamples() int32 {
	return 0
}

// SaveState returns the parameter state blob.
func (b *BaseProcessor) SaveState() ([]byte, error) {
	return b.state.Bytes()
}

// LoadState restores parameter values from a blob written by SaveState.
func (b *BaseProcessor) LoadState(data []byte) error {
	return b.state.LoadBytes(data)
}

// SampleRate returns the current sample rate
func (b *BaseProcessor) SampleRate() float64 {
	return b.sampleRate
}

// OnInitialize sets a callback for initialization
func (b *BaseProcessor) OnInitialize(fn func(sampleRate float64, maxBlockSize int32) error) {
	b.onInitialize = fn
}

// OnSetActive sets a callback for activation/deactivation
func (b *BaseProcessor) OnSetActive(fn func(active bool) error) {
	b.onSetActive = fn
}

// OnReset sets a callback for when the processor should reset its state
func (b *BaseProcessor) OnReset(fn func()) {
	b.onReset = fn
}
