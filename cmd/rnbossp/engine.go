package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/justyntemme/rnbossp/pkg/rnbo"
	"github.com/justyntemme/rnbossp/pkg/scaffold"
	"github.com/justyntemme/rnbossp/pkg/wrapper"
)

// openModule resolves id to a manifest and an engine. A module directory
// supplies the manifest. The engine is the compiled-in one registered under
// the manifest's engine id, or else a pass-through engine built from the
// module's export description.
func openModule(p *scaffold.Project, id string) (*wrapper.Manifest, rnbo.Patch, error) {
	manifest := &wrapper.Manifest{ID: id, Name: id, Brand: "rnbossp", Engine: id}
	if p.Exists(id) {
		m, err := wrapper.LoadManifest(filepath.Join(p.ModulePath(id), wrapper.ManifestFile))
		if err != nil {
			return nil, nil, err
		}
		manifest = m
	}

	if slices.Contains(rnbo.Registered(), manifest.Engine) {
		patch, err := rnbo.New(manifest.Engine)
		return manifest, patch, err
	}

	if !p.Exists(id) {
		return nil, nil, fmt.Errorf("%w: %s is neither a module nor a built-in engine (built-in: %v)",
			scaffold.ErrModuleNotFound, id, rnbo.Registered())
	}
	r := p.CheckExport(id)
	if r.Err != nil {
		return nil, nil, r.Err
	}
	return manifest, rnbo.NewStaticPatch(r.Description), nil
}

// loadDescription reads an export description from a file path or from the
// export of module id.
func loadDescription(p *scaffold.Project, arg string) (*rnbo.Description, string, error) {
	if fi, err := os.Stat(arg); err == nil && !fi.IsDir() {
		d, err := rnbo.LoadDescription(arg)
		return d, arg, err
	}
	r := p.CheckExport(arg)
	return r.Description, r.Path, r.Err
}
