package wrapper

import (
	"fmt"

	fwplugin "github.com/justyntemme/rnbossp/pkg/framework/plugin"
	"github.com/justyntemme/rnbossp/pkg/plugin"
	"github.com/justyntemme/rnbossp/pkg/rnbo"
)

// Plugin creates wrapper processors for one module.
type Plugin struct {
	manifest Manifest
}

var _ plugin.Plugin = (*Plugin)(nil)

// New returns the plugin described by m.
func New(m Manifest) (*Plugin, error) {
	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &Plugin{manifest: m}, nil
}

// Manifest returns the module metadata.
func (p *Plugin) Manifest() Manifest {
	return p.manifest
}

// GetInfo implements plugin.Plugin.
func (p *Plugin) GetInfo() fwplugin.Info {
	return p.manifest.Info()
}

// CreateProcessor instantiates the module's engine and wraps it.
func (p *Plugin) CreateProcessor() (plugin.Processor, error) {
	patch, err := rnbo.New(p.manifest.Engine)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.manifest.ID, err)
	}
	return NewProcessor(p.manifest.Name, patch)
}

// Register parses an embedded manifest and registers the module with the
// plugin factory. Module main packages call it from init.
func Register(manifest []byte) error {
	m, err := ParseManifest(manifest)
	if err != nil {
		return err
	}
	p, err := New(*m)
	if err != nil {
		return err
	}

	plugin.SetFactoryInfo(plugin.FactoryInfo{
		Vendor: m.Brand,
		URL:    m.URL,
		Email:  m.Email,
	})
	plugin.Register(p)
	return nil
}

// MustRegister is Register that panics on error.
func MustRegister(manifest []byte) {
	if err := Register(manifest); err != nil {
		panic(err)
	}
}
