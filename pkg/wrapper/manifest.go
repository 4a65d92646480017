package wrapper

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	fwplugin "github.com/justyntemme/rnbossp/pkg/framework/plugin"
)

// ManifestFile is the per-module metadata file written by the scaffolder.
const ManifestFile = "module.yaml"

// ErrInvalidManifest wraps every manifest validation failure.
var ErrInvalidManifest = errors.New("invalid module manifest")

var moduleIDPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{3}$`)

// Manifest is the metadata of one wrapped module.
type Manifest struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Brand       string `yaml:"brand"`
	Author      string `yaml:"author,omitempty"`
	Email       string `yaml:"email,omitempty"`
	URL         string `yaml:"url,omitempty"`
	Version     string `yaml:"version"`
	Category    string `yaml:"category,omitempty"`

	// Engine is the rnbo registry id of the patch. Empty means ID.
	Engine string `yaml:"engine,omitempty"`
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// DecodeManifest decodes a manifest from r, fills defaults and validates it.
func DecodeManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseManifest is DecodeManifest over a byte slice, for manifests embedded
// in module binaries.
func ParseManifest(data []byte) (*Manifest, error) {
	return DecodeManifest(bytes.NewReader(data))
}

func (m *Manifest) applyDefaults() {
	if m.Engine == "" {
		m.Engine = m.ID
	}
	if m.Name == "" {
		m.Name = m.ID
	}
	if m.Version == "" {
		m.Version = "1.0.0"
	}
	if m.Category == "" {
		m.Category = "Fx"
	}
}

// Validate checks the fields a module cannot be built without.
func (m *Manifest) Validate() error {
	if !moduleIDPattern.MatchString(m.ID) {
		return fmt.Errorf("%w: id %q must be four uppercase letters or digits starting with a letter", ErrInvalidManifest, m.ID)
	}
	if strings.TrimSpace(m.Brand) == "" {
		return fmt.Errorf("%w: brand is required", ErrInvalidManifest)
	}
	return nil
}

// Encode writes m as YAML.
func (m *Manifest) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}

// Save writes m to path.
func (m *Manifest) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// PluginID returns the reverse-domain identifier of the module. Its UID is
// derived from this string, so it must never change for a shipped module.
func (m *Manifest) PluginID() string {
	return fmt.Sprintf("com.%s.rnbo.%s", slug(m.Brand), m.ID)
}

// Info converts the manifest into plugin metadata.
func (m *Manifest) Info() fwplugin.Info {
	return fwplugin.Info{
		ID:       m.PluginID(),
		Name:     m.Name,
		Version:  m.Version,
		Vendor:   m.Brand,
		Category: m.Category,
		Email:    m.Email,
		URL:      m.URL,
	}
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}
