// Package toolchain selects a build target and checks that the machine can
// build modules for it.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownTarget is returned by Lookup for an unsupported name.
var ErrUnknownTarget = errors.New("unknown target")

// Target is one build destination.
type Target struct {
	Name   string
	GOOS   string
	GOARCH string

	// Triple prefixes the buildroot cross compiler. Empty for native builds.
	Triple string
}

var targets = map[string]Target{
	"ssp":    {Name: "ssp", GOOS: "linux", GOARCH: "arm64", Triple: "aarch64-buildroot-linux-gnu"},
	"xmx":    {Name: "xmx", GOOS: "linux", GOARCH: "arm64", Triple: "aarch64-buildroot-linux-gnu"},
	"native": {Name: "native"},
}

// Names returns the supported target names, sorted.
func Names() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the target called name.
func Lookup(name string) (Target, error) {
	t, ok := targets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Target{}, fmt.Errorf("%w %q (want one of %s)", ErrUnknownTarget, name, strings.Join(Names(), ", "))
	}
	return t, nil
}

// Cross reports whether the target needs a buildroot.
func (t Target) Cross() bool {
	return t.Triple != ""
}

// BuildDir is the output directory relative to the project root.
func (t Target) BuildDir() string {
	if !t.Cross() {
		return "build"
	}
	return "build." + t.Name
}

// Output is the shared object path of a module relative to the project root.
func (t Target) Output(moduleID string) string {
	return filepath.Join(t.BuildDir(), moduleID+".so")
}

// Compiler returns the cross C compiler inside buildroot.
func (t Target) Compiler(buildroot string) string {
	if !t.Cross() {
		return ""
	}
	return filepath.Join(buildroot, "host", "bin", t.Triple+"-gcc")
}

// Env returns the variables added to the go command environment.
func (t Target) Env(buildroot string) []string {
	env := []string{"CGO_ENABLED=1"}
	if t.Cross() {
		env = append(env,
			"GOOS="+t.GOOS,
			"GOARCH="+t.GOARCH,
			"CC="+t.Compiler(buildroot),
		)
	}
	return env
}

// Toolchain validates and builds for one project.
type Toolchain struct {
	Root string

	// LookPath resolves executables. Defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

// New returns a toolchain rooted at root.
func New(root string) *Toolchain {
	return &Toolchain{Root: root, LookPath: exec.LookPath}
}

// Validate reports every problem that would stop a build for t, joined into
// one error.
func (tc *Toolchain) Validate(t Target, buildroot string) error {
	var problems []error

	lookPath := tc.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if _, err := lookPath("go"); err != nil {
		problems = append(problems, fmt.Errorf("go toolchain not found on PATH: %w", err))
	}

	if t.Cross() {
		switch {
		case strings.TrimSpace(buildroot) == "":
			problems = append(problems, fmt.Errorf("%s: buildroot not set (configure buildroots.%s or $%s_BUILDROOT)",
				t.Name, t.Name, strings.ToUpper(t.Name)))
		default:
			if fi, err := os.Stat(buildroot); err != nil || !fi.IsDir() {
				problems = append(problems, fmt.Errorf("%s: buildroot %s is not a directory", t.Name, buildroot))
			} else if err := checkExecutable(t.Compiler(buildroot)); err != nil {
				problems = append(problems, fmt.Errorf("%s: %w", t.Name, err))
			}
		}
	}

	return errors.Join(problems...)
}

func checkExecutable(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cross compiler %s not found", path)
	}
	if fi.IsDir() || fi.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("cross compiler %s is not executable", path)
	}
	return nil
}

// BuildCommand returns the go build invocation that produces the module's
// shared object for t. The command runs in the project root.
func (tc *Toolchain) BuildCommand(ctx context.Context, t Target, buildroot, modulesDir, moduleID string) *exec.Cmd {
	pkg := "./" + filepath.ToSlash(filepath.Join(modulesDir, moduleID))
	cmd := exec.CommandContext(ctx, "go", "build",
		"-buildmode=c-shared",
		"-trimpath",
		"-o", t.Output(moduleID),
		pkg,
	)
	cmd.Dir = tc.Root
	cmd.Env = append(os.Environ(), t.Env(buildroot)...)
	return cmd
}
