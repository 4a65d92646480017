package editor

import (
	"fmt"

	"github.com/justyntemme/rnbossp/pkg/framework/param"
)

// Mini is the compact editor: every control in one list with a cursor.
type Mini struct {
	title    string
	controls []*Control
	cursor   int
}

// NewMini creates a compact editor for the reflected parameters.
func NewMini(title string, bindings []param.Binding) *Mini {
	return &Mini{title: title, controls: Controls(bindings)}
}

func (m *Mini) Title() string { return m.title }
func (m *Mini) Controls() []*Control { return m.controls }
func (m *Mini) Cursor() int { return m.cursor }

// Current returns the control under the cursor, or nil when there are no
// controls.
func (m *Mini) Current() *Control {
	if len(m.controls) == 0 {
		return nil
	}
	return m.controls[m.cursor]
}

// Next moves the cursor forward, wrapping at the end.
func (m *Mini) Next() {
	if n := len(m.controls); n > 0 {
		m.cursor = (m.cursor + 1) % n
	}
}

// Prev moves the cursor back, wrapping at the start.
func (m *Mini) Prev() {
	if n := len(m.controls); n > 0 {
		m.cursor = (m.cursor - 1 + n) % n
	}
}

// Select moves the cursor to index i.
func (m *Mini) Select(i int) error {
	if i < 0 || i >= len(m.controls) {
		return fmt.Errorf("control %d out of range [0,%d)", i, len(m.controls))
	}
	m.cursor = i
	return nil
}

// Turn adjusts the control under the cursor.
func (m *Mini) Turn(delta int, fine bool) {
	if c := m.Current(); c != nil {
		c.Turn(delta, fine)
	}
}

// Render draws the editor as styled text.
func (m *Mini) Render() string {
	return renderMini(m)
}
