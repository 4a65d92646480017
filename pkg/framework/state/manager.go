// Package state persists parameter values as a compact binary blob.
package state

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/justyntemme/rnbossp/pkg/framework/param"
)

// Magic prefixes every saved state.
const Magic = "RNBOSP"

// Version is the state format version written by Save.
const Version uint32 = 1

var (
	// ErrInvalidFormat is returned when the data does not start with Magic.
	ErrInvalidFormat = errors.New("invalid state format")
	// ErrNewerVersion is returned for states written by a newer format.
	ErrNewerVersion = errors.New("state version is newer than supported")
)

// Manager handles plugin state saving and loading
type Manager struct {
	version  uint32
	registry *param.Registry
}

// NewManager creates a new state manager
func NewManager(registry *param.Registry) *Manager {
	return &Manager{
		version:  Version,
		registry: registry,
	}
}

// Save writes the plugin state to a writer
func (m *Manager) Save(w io.Writer) error {
	if _, err := io.WriteString(w, Magic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, m.version); err != nil {
		return err
	}

	params := m.registry.All()
	if err := binary.Write(w, binary.LittleEndian, uint32(len(params))); err != nil {
		return err
	}

	for _, p := range params {
		if err := binary.Write(w, binary.LittleEndian, p.ID); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, p.GetValue()); err != nil {
			return err
		}
	}

	return nil
}

// Load reads the plugin state from a reader. Values for unknown parameter
// IDs are ignored. Nothing is applied unless the whole state decodes.
func (m *Manager) Load(r io.Reader) error {
	header := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("read header: %w", truncated(err))
	}
	if string(header) != Magic {
		return ErrInvalidFormat
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("read version: %w", truncated(err))
	}
	if version > m.version {
		return fmt.Errorf("%w: %d > %d", ErrNewerVersion, version, m.version)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("read parameter count: %w", truncated(err))
	}

	type entry struct {
		ID    uint32
		Value float64
	}
	entries := make([]entry, 0, min(count, 1024))
	for i := uint32(0); i < count; i++ {
		var e entry
		if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
			return fmt.Errorf("read parameter %d of %d: %w", i, count, truncated(err))
		}
		entries = append(entries, e)
	}

	for _, e := range entries {
		if p := m.registry.Get(e.ID); p != nil {
			p.SetValue(e.Value)
		}
	}
	return nil
}

// Bytes returns the current state as a byte slice.
func (m *Manager) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadBytes restores state from a byte slice produced by Bytes.
func (m *Manager) LoadBytes(data []byte) error {
	return m.Load(bytes.NewReader(data))
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
