package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/justyntemme/rnbossp/pkg/framework/debug"
)

// Create copies the template into a new module directory, substitutes the
// placeholders, creates the empty RNBO export directory and adds the module
// to the index. It returns the module directory.
func (p *Project) Create(meta Metadata) (string, error) {
	meta = meta.WithDefaults()
	if err := meta.Validate(); err != nil {
		return "", err
	}

	target := p.ModulePath(meta.ID)
	if _, err := os.Stat(target); err == nil {
		return "", fmt.Errorf("%w: %s", ErrModuleExists, target)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	if err := os.MkdirAll(p.ModulesDir, 0o755); err != nil {
		return "", fmt.Errorf("create modules directory: %w", err)
	}

	subs := meta.Substitutions(p.GoModule)
	if err := p.copyTemplate(p.Template, target, subs); err != nil {
		os.RemoveAll(target)
		return "", fmt.Errorf("copy template: %w", err)
	}

	exportDir := p.ExportPath(meta.ID)
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		os.RemoveAll(target)
		return "", fmt.Errorf("create export directory: %w", err)
	}
	p.log.Debug("created RNBO export directory %s", exportDir)

	added, err := p.addToIndex(meta.ID)
	if err != nil {
		return target, fmt.Errorf("update %s: %w", IndexFile, err)
	}
	if !added {
		p.log.Info("module %s already listed in %s", meta.ID, IndexFile)
	}

	p.log.WithFields(debug.Fields{"module": meta.ID, "dir": target}).Info("module created")
	return target, nil
}

// copyTemplate writes every file of src below dst. The template suffix is
// stripped from file names and placeholders are replaced in names and in
// text content. Files that are not valid UTF-8 are copied unchanged.
func (p *Project) copyTemplate(src fs.FS, dst string, subs map[string]string) error {
	replacer := newReplacer(subs)

	return fs.WalkDir(src, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := replacer.Replace(strings.TrimSuffix(name, TemplateSuffix))
		out := filepath.Join(dst, filepath.FromSlash(rel))

		if d.IsDir() {
			return os.MkdirAll(out, 0o755)
		}

		data, err := fs.ReadFile(src, name)
		if err != nil {
			return err
		}
		if utf8.Valid(data) {
			data = []byte(replacer.Replace(string(data)))
		} else {
			p.log.Info("skipping substitution in binary file %s", path.Base(name))
		}
		return os.WriteFile(out, data, 0o644)
	})
}

func newReplacer(subs map[string]string) *strings.Replacer {
	pairs := make([]string, 0, 2*len(subs))
	for k, v := range subs {
		pairs = append(pairs, k, v)
	}
	return strings.NewReplacer(pairs...)
}
