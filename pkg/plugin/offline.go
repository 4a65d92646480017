package plugin

import (
	"context"
	"fmt"

	"github.com/justyntemme/rnbossp/pkg/framework/bus"
	"github.com/justyntemme/rnbossp/pkg/framework/debug"
	"github.com/justyntemme/rnbossp/pkg/framework/process"
)

// ProfileSection is the profiler section timed around each host block.
const ProfileSection = "process"

// OfflineHost drives a component over whole buffers in fixed host blocks.
type OfflineHost struct {
	component  *Component
	sampleRate float64
	blockSize  int
	profiler   *debug.Profiler

	in  [][]float32
	out [][]float32
}

// NewOfflineHost initializes the component for offline processing and
// activates it. Call Close when done.
func NewOfflineHost(c *Component, sampleRate float64, blockSize int) (*OfflineHost, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("block size %d: %w", blockSize, ErrInvalidArgument)
	}
	if err := c.Initialize(); err != nil {
		return nil, err
	}
	err := c.SetupProcessing(ProcessSetup{
		ProcessMode:        ProcessOffline,
		SymbolicSampleSize: Sample32,
		MaxSamplesPerBlock: int32(blockSize),
		SampleRate:         sampleRate,
	})
	if err != nil {
		return nil, err
	}
	if err := c.SetActive(true); err != nil {
		return nil, err
	}
	if err := c.SetProcessing(true); err != nil {
		return nil, err
	}

	return &OfflineHost{
		component:  c,
		sampleRate: sampleRate,
		blockSize:  blockSize,
		profiler:   debug.NewProfiler(1024),
	}, nil
}

// Profiler returns the block timings of the host.
func (h *OfflineHost) Profiler() *debug.Profiler {
	return h.profiler
}

// Load returns the average block processing time as a percentage of the
// real-time block duration.
func (h *OfflineHost) Load() float64 {
	return h.profiler.Load(ProfileSection, h.sampleRate, h.blockSize)
}

// NumOutputs returns the number of host output channels.
func (h *OfflineHost) NumOutputs() int {
	return h.component.buses.ChannelCount(bus.DirectionOutput)
}

// Run processes frames samples of inputs and returns one buffer per host
// output channel. Every input channel must hold at least frames samples.
// Parameter changes are delivered with the block containing their offset,
// which is absolute within the run. changes must be sorted by offset.
func (h *OfflineHost) Run(ctx context.Context, inputs [][]float32, frames int, changes []process.ParameterChange) ([][]float32, error) {
	for i, ch := range inputs {
		if len(ch) < frames {
			return nil, fmt.Errorf("input %d holds %d of %d frames: %w", i, len(ch), frames, ErrInvalidArgument)
		}
	}

	outputs := make([][]float32, h.NumOutputs())
	for i := range outputs {
		outputs[i] = make([]float32, frames)
	}

	h.in = make([][]float32, len(inputs))
	h.out = make([][]float32, len(outputs))
	blockChanges := make([]process.ParameterChange, 0, len(changes))

	next := 0
	for pos := 0; pos < frames; pos += h.blockSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := min(h.blockSize, frames-pos)

		for i := range inputs {
			h.in[i] = inputs[i][pos : pos+n]
		}
		for i := range outputs {
			h.out[i] = outputs[i][pos : pos+n]
		}

		blockChanges = blockChanges[:0]
		for next < len(changes) && changes[next].SampleOffset < pos+n {
			pc := changes[next]
			pc.SampleOffset = max(0, pc.SampleOffset-pos)
			blockChanges = append(blockChanges, pc)
			next++
		}

		stop := h.profiler.Start(ProfileSection)
		err := h.component.Process(&ProcessData{
			NumSamples:       n,
			Inputs:           h.in,
			Outputs:          h.out,
			ParameterChanges: blockChanges,
		})
		stop()
		if err != nil {
			return nil, fmt.Errorf("block at frame %d: %w", pos, err)
		}
	}

	return outputs, nil
}

// Close stops processing and deactivates the component.
func (h *OfflineHost) Close() error {
	if err := h.component.SetProcessing(false); err != nil {
		return err
	}
	return h.component.SetActive(false)
}
