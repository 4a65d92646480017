package plugin

import (
	"errors"

	"github.com/justyntemme/rnbossp/pkg/framework/process"
)

var (
	ErrNotInitialized   = errors.New("component not initialized")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotSupported     = errors.New("not supported")
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrUnknownClass     = errors.New("unknown class id")
	ErrNoView           = errors.New("no such view")
)

// SampleSize is the host sample format.
type SampleSize int32

const (
	Sample32 SampleSize = 0
	Sample64 SampleSize = 1
)

// ProcessMode tells the processor how the host drives it.
type ProcessMode int32

const (
	ProcessRealtime ProcessMode = 0
	ProcessPrefetch ProcessMode = 1
	ProcessOffline  ProcessMode = 2
)

// ProcessSetup contains audio processing configuration
type ProcessSetup struct {
	ProcessMode        ProcessMode
	SymbolicSampleSize SampleSize
	MaxSamplesPerBlock int32
	SampleRate         float64
}

// ProcessData is one block handed over by the host. Inputs and Outputs hold
// the channels of all buses of one direction in bus order, each at least
// NumSamples long.
type ProcessData struct {
	NumSamples       int
	Inputs           [][]float32
	Outputs          [][]float32
	ParameterChanges []process.ParameterChange
}

// ParameterInfo describes a parameter to the host
type ParameterInfo struct {
	ID           uint32
	Title        string
	ShortTitle   string
	Units        string
	StepCount    int32
	DefaultValue float64
	UnitID       int32
	Flags        uint32
}
