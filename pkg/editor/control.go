// Package editor models the SSP editors of a wrapped module: the compact
// editor's flat parameter list and the full editor's encoder pages.
package editor

import (
	"fmt"

	"github.com/justyntemme/rnbossp/pkg/framework/param"
	"github.com/justyntemme/rnbossp/pkg/rnbo"
)

// Default encoder increments in plain units.
const (
	DefaultCoarse = 1.0
	DefaultFine   = 0.01
)

// Control is one reflected parameter bound to an encoder or button.
type Control struct {
	param.Binding
	Coarse float64
	Fine   float64
}

// Increments returns the coarse and fine encoder steps for a parameter.
// Enumerations move one entry at a time; stepped parameters move one step
// in both modes.
func Increments(info rnbo.ParameterInfo) (coarse, fine float64) {
	coarse, fine = DefaultCoarse, DefaultFine
	switch {
	case info.IsEnum():
		fine = coarse
	case info.Steps > 2:
		coarse = (info.Max - info.Min) / float64(info.Steps-1)
		fine = coarse
	}
	return coarse, fine
}

// NewControl builds the control for a binding.
func NewControl(b param.Binding) *Control {
	coarse, fine := Increments(b.Info)
	return &Control{Binding: b, Coarse: coarse, Fine: fine}
}

// Controls builds one control per binding, in order.
func Controls(bindings []param.Binding) []*Control {
	out := make([]*Control, len(bindings))
	for i, b := range bindings {
		out[i] = NewControl(b)
	}
	return out
}

// Label is the name shown above the value.
func (c *Control) Label() string {
	return c.Param.Name
}

// Text is the formatted current value.
func (c *Control) Text() string {
	return c.Param.FormatValue(c.Param.GetValue())
}

// Step reports the position of a choice or stepped control as a 1-based
// index and the number of positions. Continuous and boolean controls
// report ok false.
func (c *Control) Step() (index, count int, ok bool) {
	if c.Kind == param.KindBool || c.Param.StepCount <= 0 {
		return 0, 0, false
	}
	return c.Param.StepIndex() + 1, int(c.Param.StepCount) + 1, true
}

// Position is Step formatted as "i/n", or empty for continuous controls.
func (c *Control) Position() string {
	index, count, ok := c.Step()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d/%d", index, count)
}

// Plain returns the current value in plain units.
func (c *Control) Plain() float64 {
	return c.Param.GetPlainValue()
}

// Turn moves the value by delta encoder detents and returns the new plain
// value. The result is clamped to the range and snapped to steps.
func (c *Control) Turn(delta int, fine bool) float64 {
	inc := c.Coarse
	if fine {
		inc = c.Fine
	}
	c.Param.SetPlainValue(c.Param.GetPlainValue() + float64(delta)*inc)
	return c.Param.GetPlainValue()
}

// Toggle flips a boolean control between its range ends. Other kinds are
// left unchanged and report false.
func (c *Control) Toggle() bool {
	if c.Kind != param.KindBool {
		return false
	}
	if c.Param.GetValue() >= 0.5 {
		c.Param.SetValue(0)
	} else {
		c.Param.SetValue(1)
	}
	return true
}

// On reports whether a boolean control is in its upper state.
func (c *Control) On() bool {
	return c.Param.GetValue() >= 0.5
}
