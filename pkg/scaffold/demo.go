package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/justyntemme/rnbossp/pkg/rnbo"
	"github.com/justyntemme/rnbossp/pkg/rnbo/demo"
)

// AddDemo creates the DEMO module and fills its export directory with the
// bundled demo patch. An existing DEMO module is replaced only when force
// is set.
func (p *Project) AddDemo(force bool) (string, error) {
	id := DemoMetadata.ID
	if p.Exists(id) {
		if !force {
			return "", fmt.Errorf("%w: %s (use force to recreate it)", ErrModuleExists, id)
		}
		p.log.Info("%s module already exists, removing it first", id)
		if err := p.Remove(id); err != nil && !errors.Is(err, ErrPartialRemoval) {
			return "", fmt.Errorf("remove existing %s: %w", id, err)
		}
	}

	dir, err := p.Create(DemoMetadata)
	if err != nil {
		return "", err
	}

	if err := p.writeDemoExport(p.ExportPath(id)); err != nil {
		return dir, fmt.Errorf("copy demo export: %w", err)
	}
	return dir, nil
}

func (p *Project) writeDemoExport(dir string) error {
	if err := p.copyTemplate(demoTemplate(), dir, DemoMetadata.Substitutions(p.GoModule)); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, rnbo.DescriptionFile))
	if err != nil {
		return err
	}
	if err := demo.Description().Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// CreateTestModules creates the TEST and VERB fixtures and returns the ids
// it created.
func (p *Project) CreateTestModules() ([]string, error) {
	var created []string
	var problems []error
	for _, meta := range TestModules {
		if _, err := p.Create(meta); err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", meta.ID, err))
			continue
		}
		created = append(created, meta.ID)
	}
	return created, errors.Join(problems...)
}
