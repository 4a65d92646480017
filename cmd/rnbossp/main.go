// Command rnbossp creates, checks, builds and previews RNBO modules for the
// Percussa SSP and XMX.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/justyntemme/rnbossp/pkg/config"
	"github.com/justyntemme/rnbossp/pkg/framework/debug"
	"github.com/justyntemme/rnbossp/pkg/scaffold"

	// Engines compiled into the tool for preview and render.
	_ "github.com/justyntemme/rnbossp/pkg/rnbo/demo"
)

var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	// projectDir is the project root, set with -C.
	projectDir = "."
)

func main() {
	args, err := parseGlobalFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	os.Exit(dispatch(args))
}

func parseGlobalFlags(args []string) ([]string, error) {
	fs := flag.NewFlagSet("rnbossp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&projectDir, "C", projectDir, "project root")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

func dispatch(args []string) int {
	if len(args) == 0 {
		printHelp(stderr)
		return 2
	}
	switch args[0] {
	case "--version", "-v", "version":
		printVersion()
		return 0
	case "--help", "-h", "help":
		printHelp(stdout)
		return 0
	case "create":
		return runCommand(runCreateCommand, args[1:])
	case "remove":
		return runCommand(runRemoveCommand, args[1:])
	case "list":
		return runCommand(runListCommand, args[1:])
	case "remove-all":
		return runCommand(runRemoveAllCommand, args[1:])
	case "add-demo":
		return runCommand(runAddDemoCommand, args[1:])
	case "test-modules":
		return runCommand(runTestModulesCommand, args[1:])
	case "check":
		return runCommand(runCheckCommand, args[1:])
	case "watch":
		return runCommand(runWatchCommand, args[1:])
	case "build":
		return runCommand(runBuildCommand, args[1:])
	case "inspect":
		return runCommand(runInspectCommand, args[1:])
	case "preview":
		return runCommand(runPreviewCommand, args[1:])
	case "render":
		return runCommand(runRenderCommand, args[1:])
	}
	fmt.Fprintf(stderr, "Error: unknown command %q\n\n", args[0])
	printHelp(stderr)
	return 2
}

func runCommand(handler func([]string) error, args []string) int {
	if err := handler(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCodeForError(err)
	}
	return 0
}

func printVersion() {
	fmt.Fprintf(stdout, "rnbossp %s (%s)\n", version, commit)
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `Usage: rnbossp [-C dir] <command> [flags] [args]

Modules:
  create [ID]        create a module from the template
  remove [ID]        remove a module and its index entry
  list               list modules
  remove-all         remove every module
  add-demo           create the DEMO module with the bundled patch
  test-modules       create the TEST and VERB fixture modules

Exports:
  check              validate every module's RNBO export
  watch ID           revalidate a module's export when it changes
  inspect ID|FILE    show how an export's parameters are reflected

Build and audition:
  build [ID...]      build modules as shared objects
  preview ID         render the full and mini editors as text
  render ID          run a WAV file through a module

  version            print the version
`)
}

// session is the loaded configuration and project of one command.
type session struct {
	cfg     *config.Config
	project *scaffold.Project
	log     *debug.Logger
}

func openSession() (*session, error) {
	cfg, err := config.Load(projectDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := debug.Default()
	log.SetOutput(stderr)
	if err := log.SetLevelName(cfg.LogLevel); err != nil {
		return nil, err
	}

	project, err := scaffold.New(cfg)
	if err != nil {
		return nil, err
	}
	project.SetLogger(log.Named("scaffold"))

	return &session{cfg: cfg, project: project, log: log}, nil
}

type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string { return e.err.Error() }

func (e exitError) Unwrap() error { return e.err }

func withExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return exitError{code: code, err: err}
}

func exitCodeForError(err error) int {
	var coded exitError
	if errors.As(err, &coded) && coded.code != 0 {
		return coded.code
	}
	return 1
}
