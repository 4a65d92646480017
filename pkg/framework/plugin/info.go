package plugin

import (
	"errors"

	"github.com/google/uuid"
)

// Namespace seeds the name-based class ids derived from Info.ID.
var Namespace = uuid.MustParse("6f0b5c1e-52a4-4d0e-9c57-3f1a2d7e8b90")

// Info contains plugin metadata
type Info struct {
	ID       string // Unique plugin identifier (e.g., "com.percussa.rnbo.DEMO")
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string // Plugin category (e.g., "Fx", "Instrument")
	Email    string
	URL      string
}

// UID derives the 16-byte class id from the string ID. The same ID always
// yields the same UID.
func (i Info) UID() [16]byte {
	return uuid.NewSHA1(Namespace, []byte(i.ID))
}

// ValidateUID reports whether a stable class id can be derived.
func (i Info) ValidateUID() error {
	if i.ID == "" {
		return errors.New("plugin ID is empty")
	}
	return nil
}

// String returns the class id in canonical UUID form.
func (i Info) String() string {
	return uuid.UUID(i.UID()).String()
}
