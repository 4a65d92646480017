package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvSSPBuildroot, "")
	t.Setenv(EnvXMXBuildroot, "")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(root, "modules"), cfg.ModulesPath())
	assert.Equal(t, "", cfg.TemplatePath())
	assert.Equal(t, DefaultGoModule, cfg.GoModule)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 48000.0, cfg.Render.SampleRate)
	assert.Equal(t, 128, cfg.Render.BlockSize)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	data := `
modules_dir: mods
template_dir: tmpl
log_level: debug
buildroots:
  ssp: /opt/ssp
render:
  block_size: 64
`
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(data), 0o644))

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "mods"), cfg.ModulesPath())
	assert.Equal(t, filepath.Join(root, "tmpl"), cfg.TemplatePath())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/opt/ssp", cfg.Buildroot("ssp"))
	assert.Equal(t, "", cfg.Buildroot("xmx"))
	assert.Equal(t, 64, cfg.Render.BlockSize)
	// Unset keys keep their defaults.
	assert.Equal(t, 48000.0, cfg.Render.SampleRate)
	assert.Equal(t, DefaultGoModule, cfg.GoModule)
}

func TestEnvOverrides(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName),
		[]byte("log_level: info\nbuildroots:\n  ssp: /opt/ssp\n"), 0o644))

	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvSSPBuildroot, "/env/ssp")
	t.Setenv(EnvXMXBuildroot, "/env/xmx")

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/env/ssp", cfg.Buildroot("SSP"))
	assert.Equal(t, "/env/xmx", cfg.Buildroot("xmx"))
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearEnv(t)
	tests := map[string]string{
		"bad yaml":        "modules_dir: [",
		"bad level":       "log_level: loud",
		"empty modules":   "modules_dir: \"\"",
		"zero block size": "render:\n  block_size: 0",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(data), 0o644))
			_, err := Load(root)
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()

	cfg, err := Load(root)
	require.NoError(t, err)
	cfg.LogLevel = "error"
	cfg.Buildroots.XMX = "/opt/xmx"
	require.NoError(t, cfg.Save())

	loaded, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestAbsolutePathsAreKept(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ProjectRoot = "/project"
	cfg.ModulesDir = "/elsewhere/modules"
	assert.Equal(t, "/elsewhere/modules", cfg.ModulesPath())
}
