package plugin

import (
	"fmt"

	"github.com/justyntemme/rnbossp/pkg/framework/bus"
	"github.com/justyntemme/rnbossp/pkg/framework/debug"
	"github.com/justyntemme/rnbossp/pkg/framework/param"
	"github.com/justyntemme/rnbossp/pkg/framework/plugin"
	"github.com/justyntemme/rnbossp/pkg/framework/process"
	"github.com/justyntemme/rnbossp/pkg/framework/state"
)

// maxHostChannels bounds the pre-allocated channel slices of a component.
const maxHostChannels = 64

// Component is one plugin instance as seen by the host. It combines the
// processor, controller and state roles.
type Component struct {
	info      plugin.Info
	processor Processor
	params    *param.Registry
	buses     *bus.Configuration
	state     *state.Manager
	log       *debug.Logger

	ctx   *process.Context
	setup ProcessSetup

	initialized bool
	active      bool
	processing  bool

	in  [][]float32
	out [][]float32
}

// NewComponent wraps a processor.
func NewComponent(info plugin.Info, p Processor) *Component {
	params := p.GetParameters()
	return &Component{
		info:      info,
		processor: p,
		params:    params,
		buses:     p.GetBuses(),
		state:     state.NewManager(params),
		log:       debug.Default().Named(info.ID),
		in:        make([][]float32, 0, maxHostChannels),
		out:       make([][]float32, 0, maxHostChannels),
	}
}

// Info returns the plugin metadata of the component.
func (c *Component) Info() plugin.Info {
	return c.info
}

// Processor returns the wrapped processor.
func (c *Component) Processor() Processor {
	return c.processor
}

// Initialize prepares the processor with the configured defaults. The host
// normally follows with SetupProcessing.
func (c *Component) Initialize() error {
	if c.initialized {
		return nil
	}
	cfg := currentConfig()
	setup := ProcessSetup{
		ProcessMode:        ProcessRealtime,
		SymbolicSampleSize: Sample32,
		MaxSamplesPerBlock: cfg.DefaultBlockSize,
		SampleRate:         cfg.DefaultSampleRate,
	}
	c.ctx = process.NewContext(cfg.MaxParameterChanges, c.params)
	if err := c.applySetup(setup); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

// Terminate releases the component. It must be initialized again before use.
func (c *Component) Terminate() error {
	if c.active {
		if err := c.SetActive(false); err != nil {
			return err
		}
	}
	c.initialized = false
	return nil
}

// GetBusCount returns the number of buses for a media type and direction.
func (c *Component) GetBusCount(mediaType bus.MediaType, dir bus.Direction) int32 {
	return c.buses.GetBusCount(mediaType, dir)
}

// GetBusInfo returns one bus description.
func (c *Component) GetBusInfo(mediaType bus.MediaType, dir bus.Direction, index int32) (bus.Info, error) {
	info := c.buses.GetBusInfo(mediaType, dir, index)
	if info == nil {
		return bus.Info{}, fmt.Errorf("bus %d: %w", index, ErrInvalidArgument)
	}
	return *info, nil
}

// ActivateBus activates or deactivates a bus.
func (c *Component) ActivateBus(mediaType bus.MediaType, dir bus.Direction, index int32, active bool) error {
	if !c.buses.SetBusActive(mediaType, dir, index, active) {
		return fmt.Errorf("bus %d: %w", index, ErrInvalidArgument)
	}
	return nil
}

// SetBusArrangements accepts the host channel counts per bus.
func (c *Component) SetBusArrangements(inputs, outputs []int32) error {
	if !c.buses.IsLayoutSupported(inputs, outputs) {
		return ErrNotSupported
	}
	return nil
}

// CanProcessSampleSize reports whether the sample format is supported.
// Only 32-bit float host buffers are processed.
func (c *Component) CanProcessSampleSize(size SampleSize) bool {
	return size == Sample32
}

// SetupProcessing applies the host processing setup. It is rejected while
// the component is active.
func (c *Component) SetupProcessing(setup ProcessSetup) error {
	if !c.initialized {
		return ErrNotInitialized
	}
	if c.active {
		return fmt.Errorf("setup while active: %w", ErrNotSupported)
	}
	return c.applySetup(setup)
}

func (c *Component) applySetup(setup ProcessSetup) error {
	if setup.SampleRate <= 0 || setup.MaxSamplesPerBlock <= 0 {
		return fmt.Errorf("process setup %+v: %w", setup, ErrInvalidArgument)
	}
	if !c.CanProcessSampleSize(setup.SymbolicSampleSize) {
		return fmt.Errorf("sample size %d: %w", setup.SymbolicSampleSize, ErrNotSupported)
	}
	if err := c.processor.Initialize(setup.SampleRate, setup.MaxSamplesPerBlock); err != nil {
		return fmt.Errorf("initialize processor: %w", err)
	}
	c.setup = setup
	c.ctx.SampleRate = setup.SampleRate

	c.log.WithFields(debug.Fields{
		"sample_rate": setup.SampleRate,
		"max_block":   setup.MaxSamplesPerBlock,
		"mode":        setup.ProcessMode,
	}).Debug("processing setup applied")
	return nil
}

// Setup returns the current processing setup.
func (c *Component) Setup() ProcessSetup {
	return c.setup
}

// SetActive starts or stops the component.
func (c *Component) SetActive(active bool) error {
	if !c.initialized {
		return ErrNotInitialized
	}
	if err := c.processor.SetActive(active); err != nil {
		return err
	}
	c.active = active
	if !active {
		c.processing = false
	}
	return nil
}

// SetProcessing marks the start or end of a run of Process calls.
func (c *Component) SetProcessing(processing bool) error {
	if processing && !c.active {
		return fmt.Errorf("processing while inactive: %w", ErrNotSupported)
	}
	c.processing = processing
	return nil
}

// Process renders one host block. Parameter changes carried by data are
// queued on the context; whatever the processor leaves unapplied is applied
// after it returns.
func (c *Component) Process(data *ProcessData) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("process panicked: %v", r)
		}
	}()

	if !c.initialized {
		return ErrNotInitialized
	}
	if data == nil || data.NumSamples < 0 {
		return ErrInvalidArgument
	}
	n := data.NumSamples
	if n > int(c.setup.MaxSamplesPerBlock) {
		return fmt.Errorf("block of %d exceeds %d: %w", n, c.setup.MaxSamplesPerBlock, ErrInvalidArgument)
	}

	c.in = c.in[:0]
	for _, ch := range data.Inputs {
		if len(ch) < n || len(c.in) == cap(c.in) {
			return ErrInvalidArgument
		}
		c.in = append(c.in, ch[:n])
	}
	c.out = c.out[:0]
	for _, ch := range data.Outputs {
		if len(ch) < n || len(c.out) == cap(c.out) {
			return ErrInvalidArgument
		}
		c.out = append(c.out, ch[:n])
	}

	for _, pc := range data.ParameterChanges {
		c.ctx.SetParameterAtOffset(pc.ParamID, pc.Value, pc.SampleOffset)
	}

	c.ctx.Input = c.in
	c.ctx.Output = c.out
	if n > 0 {
		c.processor.ProcessAudio(c.ctx)
	}
	c.ctx.ApplyParameterChanges()
	return nil
}

// GetLatencySamples returns the processor latency.
func (c *Component) GetLatencySamples() uint32 {
	return uint32(max(0, c.processor.GetLatencySamples()))
}

// GetTailSamples returns the processor tail length.
func (c *Component) GetTailSamples() uint32 {
	return uint32(max(0, c.processor.GetTailSamples()))
}

// GetParameterCount returns the number of exposed parameters.
func (c *Component) GetParameterCount() int32 {
	return c.params.Count()
}

// GetParameterInfo describes the parameter at index.
func (c *Component) GetParameterInfo(index int32) (ParameterInfo, error) {
	p := c.params.GetByIndex(index)
	if p == nil {
		return ParameterInfo{}, fmt.Errorf("parameter index %d: %w", index, ErrUnknownParameter)
	}
	return ParameterInfo{
		ID:           p.ID,
		Title:        p.Name,
		ShortTitle:   p.ShortName,
		Units:        p.Unit,
		StepCount:    p.StepCount,
		DefaultValue: p.DefaultValue,
		UnitID:       p.UnitID,
		Flags:        p.Flags,
	}, nil
}

func (c *Component) param(id uint32) (*param.Parameter, error) {
	p := c.params.Get(id)
	if p == nil {
		return nil, fmt.Errorf("parameter %d: %w", id, ErrUnknownParameter)
	}
	return p, nil
}

// GetParamNormalized returns the normalized value of a parameter, or 0 for
// an unknown id.
func (c *Component) GetParamNormalized(id uint32) float64 {
	p, err := c.param(id)
	if err != nil {
		return 0
	}
	return p.GetValue()
}

// SetParamNormalized sets a parameter from the controller side.
func (c *Component) SetParamNormalized(id uint32, value float64) error {
	p, err := c.param(id)
	if err != nil {
		return err
	}
	p.SetValue(value)
	return nil
}

// NormalizedParamToPlain converts a normalized value to plain units.
func (c *Component) NormalizedParamToPlain(id uint32, value float64) float64 {
	p, err := c.param(id)
	if err != nil {
		return value
	}
	return p.Denormalize(value)
}

// PlainParamToNormalized converts a plain value to the normalized range.
func (c *Component) PlainParamToNormalized(id uint32, plain float64) float64 {
	p, err := c.param(id)
	if err != nil {
		return plain
	}
	return p.Normalize(plain)
}

// GetParamStringByValue formats a normalized value for display.
func (c *Component) GetParamStringByValue(id uint32, value float64) (string, error) {
	p, err := c.param(id)
	if err != nil {
		return "", err
	}
	return p.FormatValue(value), nil
}

// GetParamValueByString parses a display string to a normalized value.
func (c *Component) GetParamValueByString(id uint32, s string) (float64, error) {
	p, err := c.param(id)
	if err != nil {
		return 0, err
	}
	return p.ParseValue(s)
}

// GetState returns the component state blob.
func (c *Component) GetState() ([]byte, error) {
	if sp, ok := c.processor.(StateProvider); ok {
		return sp.SaveState()
	}
	return c.state.Bytes()
}

// SetState restores a blob produced by GetState.
func (c *Component) SetState(data []byte) error {
	var err error
	if sp, ok := c.processor.(StateProvider); ok {
		err = sp.LoadState(data)
	} else {
		err = c.state.LoadBytes(data)
	}
	if err != nil {
		c.log.WithFields(debug.Fields{"bytes": len(data), "error": err}).Warn("state rejected")
		return fmt.Errorf("set state: %w", err)
	}
	return nil
}

// CreateView returns the named editor.
func (c *Component) CreateView(name string) (View, error) {
	vp, ok := c.processor.(ViewProvider)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNoView)
	}
	return vp.CreateView(name)
}
