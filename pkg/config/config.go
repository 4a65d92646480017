// Package config loads the project configuration used by the rnbossp tool.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/justyntemme/rnbossp/pkg/framework/debug"
)

// FileName is the configuration file looked up in the project root.
const FileName = "rnbossp.yaml"

// Environment overrides.
const (
	EnvLogLevel     = "RNBOSSP_LOG_LEVEL"
	EnvSSPBuildroot = "SSP_BUILDROOT"
	EnvXMXBuildroot = "XMX_BUILDROOT"
)

// DefaultGoModule is the module path generated modules import the wrapper
// from.
const DefaultGoModule = "github.com/justyntemme/rnbossp"

// Config is the project configuration.
type Config struct {
	// ProjectRoot is the directory every relative path resolves against.
	ProjectRoot string `yaml:"project_root,omitempty"`
	ModulesDir  string `yaml:"modules_dir"`

	// TemplateDir overrides the embedded module template when set.
	TemplateDir string `yaml:"template_dir,omitempty"`

	GoModule string `yaml:"go_module"`
	LogLevel string `yaml:"log_level"`

	Buildroots BuildrootConfig `yaml:"buildroots"`
	Render     RenderConfig    `yaml:"render"`
}

// BuildrootConfig holds the cross-compilation sysroots per target.
type BuildrootConfig struct {
	SSP string `yaml:"ssp,omitempty"`
	XMX string `yaml:"xmx,omitempty"`
}

// RenderConfig controls offline rendering and previews.
type RenderConfig struct {
	SampleRate float64 `yaml:"sample_rate"`
	BlockSize  int     `yaml:"block_size"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		ModulesDir: "modules",
		GoModule:   DefaultGoModule,
		LogLevel:   "info",
		Render: RenderConfig{
			SampleRate: 48000,
			BlockSize:  128,
		},
	}
}

// Load reads FileName from root. A missing file yields the defaults.
// Environment overrides are applied in both cases.
func Load(root string) (*Config, error) {
	return LoadFromPath(filepath.Join(root, FileName))
}

// LoadFromPath reads the configuration at path. A missing file yields the
// defaults with ProjectRoot set to the file's directory.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		debug.Debug("no %s, using defaults", path)
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML %s: %w", path, err)
		}
	}

	if strings.TrimSpace(cfg.ProjectRoot) == "" {
		cfg.ProjectRoot = filepath.Dir(path)
	}
	cfg.ProjectRoot = expandHomeDir(cfg.ProjectRoot)
	if abs, err := filepath.Abs(cfg.ProjectRoot); err == nil {
		cfg.ProjectRoot = abs
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSSPBuildroot)); v != "" {
		cfg.Buildroots.SSP = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvXMXBuildroot)); v != "" {
		cfg.Buildroots.XMX = v
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ModulesDir) == "" {
		return errors.New("modules_dir is empty")
	}
	if _, err := debug.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Render.SampleRate <= 0 {
		return fmt.Errorf("render.sample_rate must be positive, got %g", c.Render.SampleRate)
	}
	if c.Render.BlockSize <= 0 {
		return fmt.Errorf("render.block_size must be positive, got %d", c.Render.BlockSize)
	}
	return nil
}

// Save writes c to FileName under the project root.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.ProjectRoot, FileName), data, 0o644)
}

// ModulesPath returns the absolute modules directory.
func (c *Config) ModulesPath() string {
	return c.resolve(c.ModulesDir)
}

// TemplatePath returns the absolute template directory, or "" when the
// embedded template is used.
func (c *Config) TemplatePath() string {
	if strings.TrimSpace(c.TemplateDir) == "" {
		return ""
	}
	return c.resolve(c.TemplateDir)
}

// Buildroot returns the configured sysroot for a target name.
func (c *Config) Buildroot(target string) string {
	switch strings.ToLower(target) {
	case "ssp":
		return expandHomeDir(c.Buildroots.SSP)
	case "xmx":
		return expandHomeDir(c.Buildroots.XMX)
	}
	return ""
}

func (c *Config) resolve(path string) string {
	path = expandHomeDir(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ProjectRoot, path)
}

func expandHomeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
