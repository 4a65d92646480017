// Package bus provides audio bus configuration and management.
package bus

import "fmt"

// MediaType represents the type of bus
type MediaType int32

const (
	// MediaTypeAudio represents audio bus type
	MediaTypeAudio MediaType = 0
	// MediaTypeEvent represents event/MIDI bus type
	MediaTypeEvent MediaType = 1
)

// Direction represents the bus direction
type Direction int32

const (
	// DirectionInput represents input bus
	DirectionInput Direction = 0
	// DirectionOutput represents output bus
	DirectionOutput Direction = 1
)

// Type represents the bus type
type Type int32

const (
	// TypeMain represents main bus
	TypeMain Type = 0
	// TypeAux represents auxiliary bus
	TypeAux Type = 1
)

// Info contains bus configuration
type Info struct {
	MediaType    MediaType
	Direction    Direction
	ChannelCount int32
	Name         string
	BusType      Type
	IsActive     bool
}

// Configuration manages the audio buses of a plugin. Event buses are
// never configured.
type Configuration struct {
	audioBuses []Info
}

// PerChannel creates one mono main bus per engine channel, named
// "In 1".."In n" and "Out 1".."Out n". A zero count adds no bus in that
// direction.
func PerChannel(numInputs, numOutputs int) *Configuration {
	b := NewBuilder()
	for i := 0; i < numInputs; i++ {
		b.WithMonoInput(fmt.Sprintf("In %d", i+1))
	}
	for i := 0; i < numOutputs; i++ {
		b.WithMonoOutput(fmt.Sprintf("Out %d", i+1))
	}
	return b.MustBuild()
}

func (c *Configuration) buses(mediaType MediaType) []Info {
	if mediaType != MediaTypeAudio {
		return nil
	}
	return c.audioBuses
}

// GetBusCount returns the number of buses for a given type and direction
func (c *Configuration) GetBusCount(mediaType MediaType, direction Direction) int32 {
	count := int32(0)
	for _, bus := range c.buses(mediaType) {
		if bus.Direction == direction {
			count++
		}
	}
	return count
}

// GetBusInfo returns information about a specific bus
func (c *Configuration) GetBusInfo(mediaType MediaType, direction Direction, index int32) *Info {
	buses := c.buses(mediaType)

	busIndex := int32(0)
	for i := range buses {
		if buses[i].Direction == direction {
			if busIndex == index {
				return &buses[i]
			}
			busIndex++
		}
	}

	return nil
}

// SetBusActive activates or deactivates a bus. It reports false when the
// bus does not exist.
func (c *Configuration) SetBusActive(mediaType MediaType, direction Direction, index int32, active bool) bool {
	info := c.GetBusInfo(mediaType, direction, index)
	if info == nil {
		return false
	}
	info.IsActive = active
	return true
}

// ChannelCount returns the total number of audio channels on active buses
// in one direction.
func (c *Configuration) ChannelCount(direction Direction) int {
	n := 0
	for _, bus := range c.audioBuses {
		if bus.Direction == direction && bus.IsActive {
			n += int(bus.ChannelCount)
		}
	}
	return n
}

// IsLayoutSupported reports whether the host may apply the requested channel
// counts per bus. Every layout is accepted; extra host channels are silent
// on input and zeroed on output.
func (c *Configuration) IsLayoutSupported(inputs, outputs []int32) bool {
	return true
}
