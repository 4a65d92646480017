package editor

import (
	"github.com/justyntemme/rnbossp/pkg/framework/param"
)

// EncodersPerPage is the number of hardware encoders of the full editor.
const EncodersPerPage = 4

// ButtonsPerRow is the number of buttons available for boolean parameters.
const ButtonsPerRow = 8

// Full is the full-size editor. Controls are laid out in pages of four
// encoders. Boolean parameters are additionally reachable from the button
// row; booleans beyond ButtonsPerRow are reachable from encoders only.
type Full struct {
	title    string
	controls []*Control
	buttons  []*Control
	page     int
}

// NewFull creates a full editor for the reflected parameters.
func NewFull(title string, bindings []param.Binding) *Full {
	f := &Full{title: title, controls: Controls(bindings)}
	for _, c := range f.controls {
		if c.Kind == param.KindBool && len(f.buttons) < ButtonsPerRow {
			f.buttons = append(f.buttons, c)
		}
	}
	return f
}

func (f *Full) Title() string { return f.title }
func (f *Full) Controls() []*Control { return f.controls }
func (f *Full) Page() int { return f.page }

// NumPages returns the number of encoder pages, at least one.
func (f *Full) NumPages() int {
	return max(1, (len(f.controls)+EncodersPerPage-1)/EncodersPerPage)
}

// NextPage advances to the next page and reports whether it moved.
func (f *Full) NextPage() bool {
	if f.page+1 >= f.NumPages() {
		return false
	}
	f.page++
	return true
}

// PrevPage goes back one page and reports whether it moved.
func (f *Full) PrevPage() bool {
	if f.page == 0 {
		return false
	}
	f.page--
	return true
}

// Encoder returns the control on encoder i of the current page, or nil when
// the encoder is unassigned.
func (f *Full) Encoder(i int) *Control {
	if i < 0 || i >= EncodersPerPage {
		return nil
	}
	idx := f.page*EncodersPerPage + i
	if idx >= len(f.controls) {
		return nil
	}
	return f.controls[idx]
}

// Button returns the boolean control on button i, or nil.
func (f *Full) Button(i int) *Control {
	if i < 0 || i >= len(f.buttons) {
		return nil
	}
	return f.buttons[i]
}

// Turn adjusts encoder i of the current page.
func (f *Full) Turn(encoder, delta int, fine bool) bool {
	c := f.Encoder(encoder)
	if c == nil {
		return false
	}
	c.Turn(delta, fine)
	return true
}

// Press toggles the parameter on button i.
func (f *Full) Press(button int) bool {
	c := f.Button(button)
	if c == nil {
		return false
	}
	return c.Toggle()
}

// Render draws the current page as styled text.
func (f *Full) Render() string {
	return renderFull(f)
}
