package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/justyntemme/rnbossp/pkg/framework/debug"
	"github.com/justyntemme/rnbossp/pkg/scaffold"
	"github.com/justyntemme/rnbossp/pkg/toolchain"
)

func runBuildCommand(args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	targetName := fs.String("target", "ssp", "build target: "+strings.Join(toolchain.Names(), ", "))
	dryRun := fs.Bool("dry-run", false, "print the build commands without running them")
	if err := fs.Parse(args); err != nil {
		return err
	}

	target, err := toolchain.Lookup(*targetName)
	if err != nil {
		return withExitCode(err, 2)
	}

	s, err := openSession()
	if err != nil {
		return err
	}

	ids := fs.Args()
	if len(ids) == 0 {
		if ids, err = s.project.Indexed(); err != nil {
			return err
		}
		if len(ids) == 0 {
			return errors.New("no modules to build (create one with: rnbossp create)")
		}
	}
	for _, id := range ids {
		if err := scaffold.ValidateModuleID(id); err != nil {
			return err
		}
		if !s.project.Exists(id) {
			return fmt.Errorf("%w: %s", scaffold.ErrModuleNotFound, id)
		}
	}

	tc := toolchain.New(s.cfg.ProjectRoot)
	buildroot := s.cfg.Buildroot(target.Name)
	if !*dryRun {
		if err := tc.Validate(target, buildroot); err != nil {
			return fmt.Errorf("%s toolchain:\n%w", target.Name, err)
		}
	}

	modulesDir, err := filepath.Rel(s.cfg.ProjectRoot, s.cfg.ModulesPath())
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	for _, id := range ids {
		cmd := tc.BuildCommand(ctx, target, buildroot, modulesDir, id)
		fmt.Fprintf(stdout, "%s %s\n", strings.Join(target.Env(buildroot), " "), strings.Join(cmd.Args, " "))
		if *dryRun {
			continue
		}

		if err := os.MkdirAll(filepath.Join(s.cfg.ProjectRoot, target.BuildDir()), 0o755); err != nil {
			return err
		}
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("build %s: %w", id, err)
		}
		s.log.WithFields(debug.Fields{"module": id, "target": target.Name}).Info("built " + target.Output(id))
	}
	return nil
}
