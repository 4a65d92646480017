package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// IndexFile lists the modules the build includes, relative to the modules
// directory.
const IndexFile = "modules.yaml"

type moduleIndex struct {
	Modules []string `yaml:"modules"`
}

func (p *Project) indexPath() string {
	return filepath.Join(p.ModulesDir, IndexFile)
}

// Indexed returns the module ids listed in the index, in file order. A
// missing index is empty.
func (p *Project) Indexed() ([]string, error) {
	idx, err := p.readIndex()
	if err != nil {
		return nil, err
	}
	return idx.Modules, nil
}

func (p *Project) readIndex() (*moduleIndex, error) {
	data, err := os.ReadFile(p.indexPath())
	if errors.Is(err, fs.ErrNotExist) {
		return &moduleIndex{}, nil
	}
	if err != nil {
		return nil, err
	}
	var idx moduleIndex
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", IndexFile, err)
	}
	return &idx, nil
}

func (p *Project) writeIndex(idx *moduleIndex) error {
	if idx.Modules == nil {
		idx.Modules = []string{}
	}
	data, err := yaml.Marshal(idx)
	if err != nil {
		return err
	}
	return os.WriteFile(p.indexPath(), data, 0o644)
}

// addToIndex appends id unless it is already listed.
func (p *Project) addToIndex(id string) (bool, error) {
	idx, err := p.readIndex()
	if err != nil {
		return false, err
	}
	if slices.Contains(idx.Modules, id) {
		return false, nil
	}
	idx.Modules = append(idx.Modules, id)
	return true, p.writeIndex(idx)
}

// removeFromIndex drops every entry for id and reports whether one existed.
func (p *Project) removeFromIndex(id string) (bool, error) {
	idx, err := p.readIndex()
	if err != nil {
		return false, err
	}
	n := len(idx.Modules)
	idx.Modules = slices.DeleteFunc(idx.Modules, func(m string) bool { return m == id })
	if len(idx.Modules) == n {
		return false, nil
	}
	return true, p.writeIndex(idx)
}
