package scaffold

import (
	"errors"
	"fmt"
	"os"
	"sort"
)

// List returns the module directories, sorted.
func (p *Project) List() ([]string, error) {
	entries, err := os.ReadDir(p.ModulesDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var modules []string
	for _, e := range entries {
		if e.IsDir() && !reservedDirs[e.Name()] {
			modules = append(modules, e.Name())
		}
	}
	sort.Strings(modules)
	return modules, nil
}

// Remove deletes the index entry and then the directory of module id. If
// only one of the two existed the module is still removed and an
// ErrPartialRemoval error describes what was missing.
func (p *Project) Remove(id string) error {
	if !p.Exists(id) {
		return fmt.Errorf("%w: %s", ErrModuleNotFound, id)
	}

	var problems []error

	listed, err := p.removeFromIndex(id)
	switch {
	case err != nil:
		problems = append(problems, fmt.Errorf("update %s: %w", IndexFile, err))
	case !listed:
		problems = append(problems, fmt.Errorf("%w: %s was not listed in %s", ErrPartialRemoval, id, IndexFile))
	}

	if err := os.RemoveAll(p.ModulePath(id)); err != nil {
		problems = append(problems, fmt.Errorf("%w: remove directory: %v", ErrPartialRemoval, err))
	}

	if len(problems) > 0 {
		return errors.Join(problems...)
	}
	p.log.Info("removed module %s", id)
	return nil
}

// RemoveAll removes every listed module and returns the ids it removed
// completely.
func (p *Project) RemoveAll() ([]string, error) {
	modules, err := p.List()
	if err != nil {
		return nil, err
	}

	var removed []string
	var problems []error
	for _, id := range modules {
		if err := p.Remove(id); err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", id, err))
			continue
		}
		removed = append(removed, id)
	}
	return removed, errors.Join(problems...)
}
