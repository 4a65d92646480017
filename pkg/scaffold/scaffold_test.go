package scaffold

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/rnbossp/pkg/config"
	"github.com/justyntemme/rnbossp/pkg/framework/debug"
	"github.com/justyntemme/rnbossp/pkg/rnbo"
	"github.com/justyntemme/rnbossp/pkg/wrapper"
)

func newProject(t *testing.T) *Project {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ProjectRoot = t.TempDir()
	cfg.GoModule = "example.com/ssp"

	p, err := New(cfg)
	require.NoError(t, err)
	p.SetLogger(debug.New(io.Discard, "scaffold"))
	return p
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestValidateModuleID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"DEMO", ""},
		{"A123", ""},
		{"", "empty"},
		{"ABC", "exactly 4 characters (got 3)"},
		{"ABCDE", "exactly 4 characters (got 5)"},
		{"AB-C", "alphanumeric"},
		{"ABÇD", "alphanumeric"},
		{"1ABC", "start with a letter"},
		{"Demo", "uppercase"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateModuleID(tt.id)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidModuleID)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestMetadataDefaults(t *testing.T) {
	m := Metadata{ID: "TEST"}.WithDefaults()
	assert.Equal(t, "TEST", m.Name)
	assert.Equal(t, "TEST", m.Description)
	assert.Equal(t, DefaultBrand, m.Brand)
	assert.Equal(t, DefaultAuthor, m.Author)
	assert.Equal(t, DefaultEmail, m.Email)
	assert.Equal(t, DefaultURL, m.URL)

	m = Metadata{ID: "TEST", Name: "Tester"}.WithDefaults()
	assert.Equal(t, "Tester", m.Description)

	subs := m.Substitutions("example.com/ssp")
	assert.Len(t, subs, 8)
	assert.Equal(t, "TEST", subs["__MOD__"])
	assert.Equal(t, "example.com/ssp", subs["__GOMODULE__"])

	bad := Metadata{ID: "TEST", Name: "a \"quoted\" name"}.WithDefaults()
	assert.ErrorIs(t, bad.Validate(), ErrInvalidMetadata)
}

func TestCreate(t *testing.T) {
	p := newProject(t)

	dir, err := p.Create(Metadata{ID: "TEST", Name: "Test Module", Brand: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, p.ModulePath("TEST"), dir)

	main := readFile(t, filepath.Join(dir, "main.go"))
	assert.Contains(t, main, `"example.com/ssp/pkg/wrapper"`)
	assert.Contains(t, main, `_ "example.com/ssp/modules/TEST/TEST-rnbo"`)
	assert.Contains(t, main, "Test Module module")

	manifest, err := wrapper.LoadManifest(filepath.Join(dir, wrapper.ManifestFile))
	require.NoError(t, err)
	assert.Equal(t, "TEST", manifest.ID)
	assert.Equal(t, "Acme", manifest.Brand)
	assert.Equal(t, "Test Module", manifest.Description)

	fi, err := os.Stat(p.ExportPath("TEST"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	// No placeholder and no template suffix survives.
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		require.NoError(t, err)
		assert.False(t, strings.HasSuffix(path, TemplateSuffix), path)
		if !d.IsDir() {
			assert.NotContains(t, readFile(t, path), "__", path)
		}
		return nil
	})
	require.NoError(t, err)

	indexed, err := p.Indexed()
	require.NoError(t, err)
	assert.Equal(t, []string{"TEST"}, indexed)

	_, err = p.Create(Metadata{ID: "TEST"})
	assert.ErrorIs(t, err, ErrModuleExists)

	_, err = p.Create(Metadata{ID: "test"})
	assert.ErrorIs(t, err, ErrInvalidModuleID)
}

func TestCreateKeepsIndexIdempotent(t *testing.T) {
	p := newProject(t)
	require.NoError(t, os.MkdirAll(p.ModulesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(p.ModulesDir, IndexFile), []byte("modules:\n  - TEST\n"), 0o644))

	_, err := p.Create(Metadata{ID: "TEST"})
	require.NoError(t, err)

	indexed, err := p.Indexed()
	require.NoError(t, err)
	assert.Equal(t, []string{"TEST"}, indexed)
}

func TestCreateCopiesBinaryFilesUnchanged(t *testing.T) {
	p := newProject(t)
	tmpl := t.TempDir()
	blob := []byte{0xff, 0xfe, '_', '_', 'M', 'O', 'D', '_', '_'}
	require.NoError(t, os.WriteFile(filepath.Join(tmpl, "icon.bin"), blob, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpl, "__MOD__.txt.tmpl"), []byte("id=__MOD__"), 0o644))
	p.Template = os.DirFS(tmpl)

	dir, err := p.Create(Metadata{ID: "BLOB"})
	require.NoError(t, err)
	assert.Equal(t, string(blob), readFile(t, filepath.Join(dir, "icon.bin")))
	assert.Equal(t, "id=BLOB", readFile(t, filepath.Join(dir, "BLOB.txt")))
}

func TestListAndRemove(t *testing.T) {
	p := newProject(t)
	_, err := p.CreateTestModules()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(p.ModulesDir, "common"), 0o755))

	modules, err := p.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"TEST", "VERB"}, modules)

	require.NoError(t, p.Remove("VERB"))
	assert.False(t, p.Exists("VERB"))
	indexed, err := p.Indexed()
	require.NoError(t, err)
	assert.Equal(t, []string{"TEST"}, indexed)

	assert.ErrorIs(t, p.Remove("VERB"), ErrModuleNotFound)
}

func TestRemoveUnindexedIsPartial(t *testing.T) {
	p := newProject(t)
	require.NoError(t, os.MkdirAll(p.ModulePath("LOST"), 0o755))

	err := p.Remove("LOST")
	assert.ErrorIs(t, err, ErrPartialRemoval)
	assert.False(t, p.Exists("LOST"))
}

func TestRemoveAll(t *testing.T) {
	p := newProject(t)
	created, err := p.CreateTestModules()
	require.NoError(t, err)
	assert.Equal(t, []string{"TEST", "VERB"}, created)

	removed, err := p.RemoveAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"TEST", "VERB"}, removed)

	modules, err := p.List()
	require.NoError(t, err)
	assert.Empty(t, modules)
	indexed, err := p.Indexed()
	require.NoError(t, err)
	assert.Empty(t, indexed)
}

func TestAddDemo(t *testing.T) {
	p := newProject(t)

	_, err := p.AddDemo(false)
	require.NoError(t, err)

	export := p.ExportPath("DEMO")
	assert.Contains(t, readFile(t, filepath.Join(export, "export.go")), `_ "example.com/ssp/pkg/rnbo/demo"`)
	r := p.CheckExport("DEMO")
	require.NoError(t, r.Err)
	assert.Equal(t, 2, r.Description.NumOutputChannels)

	manifest, err := wrapper.LoadManifest(filepath.Join(p.ModulePath("DEMO"), wrapper.ManifestFile))
	require.NoError(t, err)
	assert.Equal(t, "Demo Module", manifest.Name)
	assert.Equal(t, "Example", manifest.Brand)

	_, err = p.AddDemo(false)
	assert.ErrorIs(t, err, ErrModuleExists)

	// A forced re-add replaces edited files.
	require.NoError(t, os.WriteFile(filepath.Join(export, "notes.txt"), []byte("x"), 0o644))
	_, err = p.AddDemo(true)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(export, "notes.txt"))

	indexed, err := p.Indexed()
	require.NoError(t, err)
	assert.Equal(t, []string{"DEMO"}, indexed)
}

func TestCheckExports(t *testing.T) {
	p := newProject(t)
	_, err := p.AddDemo(false)
	require.NoError(t, err)
	_, err = p.CreateTestModules()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(p.ExportPath("VERB"), rnbo.DescriptionFile), []byte(`{"parameters": [{"index": 4}]}`), 0o644))

	reports, err := p.CheckExports(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, "DEMO", reports[0].Module)
	assert.True(t, reports[0].OK())
	assert.Equal(t, "TEST", reports[1].Module)
	assert.ErrorIs(t, reports[1].Err, ErrNoExport)
	assert.Equal(t, "VERB", reports[2].Module)
	assert.ErrorIs(t, reports[2].Err, rnbo.ErrMalformedExport)
}

func TestCheckExportsCancelled(t *testing.T) {
	p := newProject(t)
	_, err := p.CreateTestModules()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.CheckExports(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWatch(t *testing.T) {
	p := newProject(t)
	_, err := p.Create(Metadata{ID: "TEST"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reports := make(chan ExportReport, 8)
	done := make(chan error, 1)
	go func() {
		done <- p.Watch(ctx, "TEST", func(r ExportReport) {
			select {
			case reports <- r:
			default:
			}
		})
	}()

	// Wait for the watcher to be registered before writing.
	path := filepath.Join(p.ExportPath("TEST"), rnbo.DescriptionFile)
	var r ExportReport
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(`{"parameters": []}`), 0o644)
		select {
		case r = <-reports:
			return true
		default:
			return false
		}
	}, 4*time.Second, 50*time.Millisecond)
	assert.Equal(t, "TEST", r.Module)

	cancel()
	assert.NoError(t, <-done)

	assert.ErrorIs(t, p.Watch(context.Background(), "NONE", nil), ErrModuleNotFound)
}

func TestNextSteps(t *testing.T) {
	p := newProject(t)
	steps := p.NextSteps("TEST")
	assert.Contains(t, steps, filepath.Join("modules", "TEST", "TEST-rnbo"))
	assert.Contains(t, steps, "rnbossp build -target ssp TEST")
	assert.Contains(t, steps, "rnbossp build -target xmx TEST")
	assert.Contains(t, steps, `rnbo.Register("TEST", ...)`)
}
