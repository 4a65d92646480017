// Package plugin is the host-facing surface of a wrapped module: the plugin
// and processor interfaces, the class factory, the per-instance Component and
// an offline host that drives it.
package plugin

import (
	"github.com/justyntemme/rnbossp/pkg/framework/bus"
	"github.com/justyntemme/rnbossp/pkg/framework/param"
	"github.com/justyntemme/rnbossp/pkg/framework/plugin"
	"github.com/justyntemme/rnbossp/pkg/framework/process"
)

// Plugin is the main interface that modules implement
type Plugin interface {
	// GetInfo returns plugin metadata
	GetInfo() plugin.Info

	// CreateProcessor creates a new instance of the audio processor
	CreateProcessor() (Processor, error)
}

// Processor handles the actual audio processing
type Processor interface {
	// Initialize is called before processing and whenever the sample rate
	// or maximum block size changes
	Initialize(sampleRate float64, maxBlockSize int32) error

	// ProcessAudio processes audio - ZERO ALLOCATIONS!
	ProcessAudio(ctx *process.Context)

	// GetParameters returns the parameter registry
	GetParameters() *param.Registry

	// GetBuses returns the bus configuration
	GetBuses() *bus.Configuration

	// SetActive is called when processing starts/stops
	SetActive(active bool) error

	// GetLatencySamples returns the plugin's latency in samples
	GetLatencySamples() int32

	// GetTailSamples returns the tail length in samples
	GetTailSamples() int32
}

// StateProvider is implemented by processors that persist their own state.
type StateProvider interface {
	SaveState() ([]byte, error)
	LoadState(data []byte) error
}

// View names accepted by Component.CreateView.
const (
	ViewEditor = "editor"
	ViewMini   = "mini"
)

// View is an editor surface created for a component.
type View interface {
	Title() string
	Render() string
}

// ViewProvider is implemented by processors that offer editors.
type ViewProvider interface {
	CreateView(name string) (View, error)
}
