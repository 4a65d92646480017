// Package scaffold creates, lists and removes wrapped modules in a project
// tree, and validates their RNBO exports.
package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode"

	"github.com/justyntemme/rnbossp/pkg/config"
	"github.com/justyntemme/rnbossp/pkg/framework/debug"
)

var (
	ErrInvalidModuleID = errors.New("invalid module ID")
	ErrModuleExists    = errors.New("module already exists")
	ErrModuleNotFound  = errors.New("module not found")
	ErrPartialRemoval  = errors.New("module only partly removed")
	ErrNoExport        = errors.New("no RNBO export")
	ErrInvalidMetadata = errors.New("invalid module metadata")
)

// Directories under the modules directory that are never modules.
var reservedDirs = map[string]bool{
	"common": true,
	"inc":    true,
	".git":   true,
}

// ValidateModuleID checks that id can name a module directory, a Go
// package path element and an engine.
func ValidateModuleID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: module ID is empty", ErrInvalidModuleID)
	}
	runes := []rune(id)
	if len(runes) != 4 {
		return fmt.Errorf("%w: module ID must be exactly 4 characters (got %d)", ErrInvalidModuleID, len(runes))
	}
	for _, r := range runes {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return fmt.Errorf("%w: module ID must be alphanumeric", ErrInvalidModuleID)
		}
	}
	if !unicode.IsLetter(runes[0]) {
		return fmt.Errorf("%w: module ID must start with a letter", ErrInvalidModuleID)
	}
	for _, r := range runes {
		if unicode.IsLower(r) {
			return fmt.Errorf("%w: module ID should be uppercase", ErrInvalidModuleID)
		}
	}
	return nil
}

// ExportDir returns the name of a module's RNBO export directory.
func ExportDir(id string) string {
	return id + "-rnbo"
}

// Project is a tree holding a modules directory.
type Project struct {
	Root       string
	ModulesDir string
	GoModule   string

	// Template is copied into every new module.
	Template fs.FS

	log *debug.Logger
}

// New returns the project described by cfg. An empty template directory
// selects the embedded template.
func New(cfg *config.Config) (*Project, error) {
	p := &Project{
		Root:       cfg.ProjectRoot,
		ModulesDir: cfg.ModulesPath(),
		GoModule:   cfg.GoModule,
		Template:   ModuleTemplate(),
		log:        debug.Default().Named("scaffold"),
	}
	if dir := cfg.TemplatePath(); dir != "" {
		fi, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("template directory: %w", err)
		}
		if !fi.IsDir() {
			return nil, fmt.Errorf("template directory %s is not a directory", dir)
		}
		p.Template = os.DirFS(dir)
	}
	return p, nil
}

// SetLogger replaces the project logger.
func (p *Project) SetLogger(l *debug.Logger) {
	p.log = l
}

// ModulePath returns the directory of module id.
func (p *Project) ModulePath(id string) string {
	return filepath.Join(p.ModulesDir, id)
}

// ExportPath returns the RNBO export directory of module id.
func (p *Project) ExportPath(id string) string {
	return filepath.Join(p.ModulePath(id), ExportDir(id))
}

// Exists reports whether module id has a directory.
func (p *Project) Exists(id string) bool {
	fi, err := os.Stat(p.ModulePath(id))
	return err == nil && fi.IsDir()
}
