package bus

import (
	"errors"
	"fmt"
)

// MaxChannelsPerBus bounds the channel count of a single bus.
const MaxChannelsPerBus = 32

// Builder provides a fluent API for building bus configurations
type Builder struct {
	config *Configuration
	errors []error
}

// NewBuilder creates a new bus configuration builder
func NewBuilder() *Builder {
	return &Builder{config: &Configuration{}}
}

func (b *Builder) add(direction Direction, name string, channels int32) *Builder {
	b.config.audioBuses = append(b.config.audioBuses, Info{
		MediaType:    MediaTypeAudio,
		Direction:    direction,
		ChannelCount: channels,
		Name:         name,
		BusType:      TypeMain,
		IsActive:     true,
	})
	return b
}

// WithAudioInput adds an audio input bus
func (b *Builder) WithAudioInput(name string, channels int32) *Builder {
	return b.add(DirectionInput, name, channels)
}

// WithAudioOutput adds an audio output bus
func (b *Builder) WithAudioOutput(name string, channels int32) *Builder {
	return b.add(DirectionOutput, name, channels)
}

// WithMonoInput is a convenience method for adding mono input
func (b *Builder) WithMonoInput(name string) *Builder {
	return b.WithAudioInput(name, 1)
}

// WithMonoOutput is a convenience method for adding mono output
func (b *Builder) WithMonoOutput(name string) *Builder {
	return b.WithAudioOutput(name, 1)
}

// SetBusActive sets a specific bus as active/inactive
func (b *Builder) SetBusActive(direction Direction, index int32, active bool) *Builder {
	if !b.config.SetBusActive(MediaTypeAudio, direction, index, active) {
		b.errors = append(b.errors, fmt.Errorf("bus not found: direction=%d, index=%d", direction, index))
	}
	return b
}

// Validate checks if the configuration is valid. A configuration without
// buses is valid; engines may have no inputs or no outputs.
func (b *Builder) Validate() error {
	errs := append([]error(nil), b.errors...)
	for _, bus := range b.config.audioBuses {
		if bus.ChannelCount <= 0 || bus.ChannelCount > MaxChannelsPerBus {
			errs = append(errs, fmt.Errorf("invalid channel count %d for bus %s", bus.ChannelCount, bus.Name))
		}
	}
	return errors.Join(errs...)
}

// Build returns the built configuration or an error
func (b *Builder) Build() (*Configuration, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b.config, nil
}

// MustBuild returns the built configuration or panics on error
func (b *Builder) MustBuild() *Configuration {
	config, err := b.Build()
	if err != nil {
		panic(err)
	}
	return config
}
