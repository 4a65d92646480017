package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/justyntemme/rnbossp/pkg/scaffold"
)

func runCreateCommand(args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var meta scaffold.Metadata
	fs.StringVar(&meta.Name, "name", "", "module display name")
	fs.StringVar(&meta.Description, "description", "", "module description")
	fs.StringVar(&meta.Brand, "brand", "", "brand or company name")
	fs.StringVar(&meta.Author, "author", "", "author name")
	fs.StringVar(&meta.Email, "email", "", "author email")
	fs.StringVar(&meta.URL, "website", "", "author website")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}

	switch {
	case fs.NArg() > 1:
		return withExitCode(errors.New("usage: rnbossp create [flags] [ID]"), 2)
	case fs.NArg() == 1:
		meta.ID = fs.Arg(0)
	case stdinIsTerminalFn():
		if meta, err = collectMetadata(newPrompter()); err != nil {
			return err
		}
	default:
		return withExitCode(errors.New("module ID required when stdin is not a terminal"), 2)
	}

	dir, err := s.project.Create(meta)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Module created in %s\n\n%s", dir, s.project.NextSteps(meta.ID))
	return nil
}

func collectMetadata(p *prompter) (scaffold.Metadata, error) {
	fmt.Fprintln(p.out, "Creating new RNBO module for Percussa SSP/XMX")
	fmt.Fprintln(p.out, strings.Repeat("=", 50))

	var m scaffold.Metadata
	for {
		id, err := p.ask("Module ID (4 uppercase letters/numbers, starts with letter)", "")
		if err != nil {
			return m, err
		}
		if err := scaffold.ValidateModuleID(id); err != nil {
			fmt.Fprintf(p.out, "Error: %v\n", err)
			continue
		}
		m.ID = id
		break
	}

	fields := []struct {
		label string
		dst   *string
		def   func() string
	}{
		{"Module Name", &m.Name, func() string { return m.ID }},
		{"Description", &m.Description, func() string { return m.Name }},
		{"Brand/Company", &m.Brand, func() string { return scaffold.DefaultBrand }},
		{"Author Name", &m.Author, func() string { return scaffold.DefaultAuthor }},
		{"Email", &m.Email, func() string { return scaffold.DefaultEmail }},
		{"Website", &m.URL, func() string { return scaffold.DefaultURL }},
	}
	for _, f := range fields {
		v, err := p.ask(f.label, f.def())
		if err != nil {
			return m, err
		}
		*f.dst = v
	}
	return m, nil
}

func runRemoveCommand(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	fs.SetOutput(stderr)
	force := fs.Bool("force", false, "remove without confirmation")
	list := fs.Bool("list", false, "list available modules and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	modules, err := s.project.List()
	if err != nil {
		return err
	}

	if *list {
		printModules(modules)
		return nil
	}

	interactive := stdinIsTerminalFn()
	var prompt *prompter
	if interactive {
		prompt = newPrompter()
	}
	var id string
	switch {
	case fs.NArg() == 1:
		id = fs.Arg(0)
	case fs.NArg() > 1:
		return withExitCode(errors.New("usage: rnbossp remove [-force] [ID]"), 2)
	case len(modules) == 0:
		fmt.Fprintln(stdout, "No modules found to remove.")
		return nil
	case interactive:
		fmt.Fprintln(stdout, "Available modules:")
		if id, err = prompt.choose("Select module to remove", modules); err != nil {
			return cancelled(err)
		}
	default:
		return withExitCode(errors.New("module ID required when stdin is not a terminal"), 2)
	}

	if !s.project.Exists(id) {
		return fmt.Errorf("%w: %s (available: %s)", scaffold.ErrModuleNotFound, id, strings.Join(modules, ", "))
	}

	if !*force {
		if !interactive {
			return withExitCode(errors.New("refusing to remove without -force when stdin is not a terminal"), 2)
		}
		fmt.Fprintf(stdout, "\nWARNING: This will permanently delete module '%s'\n", id)
		fmt.Fprintf(stdout, "Directory to be removed: %s\n", s.project.ModulePath(id))
		ok, err := prompt.confirm(fmt.Sprintf("Are you sure you want to remove module '%s'?", id))
		if err != nil || !ok {
			return cancelled(err)
		}
	}

	if err := s.project.Remove(id); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Module '%s' has been removed.\n", id)
	return nil
}

func runListCommand(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	modules, err := s.project.List()
	if err != nil {
		return err
	}
	printModules(modules)
	return nil
}

func printModules(modules []string) {
	fmt.Fprintln(stdout, "Available modules:")
	if len(modules) == 0 {
		fmt.Fprintln(stdout, "  (no modules found)")
		return
	}
	for _, m := range modules {
		fmt.Fprintf(stdout, "  - %s\n", m)
	}
}

func runRemoveAllCommand(args []string) error {
	fs := flag.NewFlagSet("remove-all", flag.ContinueOnError)
	fs.SetOutput(stderr)
	force := fs.Bool("force", false, "remove without confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	modules, err := s.project.List()
	if err != nil {
		return err
	}
	if len(modules) == 0 {
		fmt.Fprintln(stdout, "No modules found to remove.")
		return nil
	}

	if !*force {
		if !stdinIsTerminalFn() {
			return withExitCode(errors.New("refusing to remove without -force when stdin is not a terminal"), 2)
		}
		fmt.Fprintf(stdout, "WARNING: This will permanently delete %d modules: %s\n", len(modules), strings.Join(modules, ", "))
		ok, err := newPrompter().confirm("Are you sure you want to remove ALL modules?")
		if err != nil || !ok {
			return cancelled(err)
		}
	}

	removed, err := s.project.RemoveAll()
	fmt.Fprintf(stdout, "Removed %d/%d modules.\n", len(removed), len(modules))
	return err
}

func runAddDemoCommand(args []string) error {
	fs := flag.NewFlagSet("add-demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	force := fs.Bool("force", false, "remove an existing DEMO module and recreate it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	dir, err := s.project.AddDemo(*force)
	if errors.Is(err, scaffold.ErrModuleExists) {
		return fmt.Errorf("%w\nUse -force to remove and recreate it, or run: rnbossp remove DEMO", err)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "DEMO module created in %s\n\n%s", dir, s.project.NextSteps(scaffold.DemoMetadata.ID))
	return nil
}

func runTestModulesCommand(args []string) error {
	fs := flag.NewFlagSet("test-modules", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	created, err := s.project.CreateTestModules()
	fmt.Fprintf(stdout, "Test module creation complete: %d/%d modules created successfully\n",
		len(created), len(scaffold.TestModules))
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, "\nClean up test modules when done with: rnbossp remove-all -force")
	return nil
}

func cancelled(err error) error {
	if err == nil || errors.Is(err, errCancelled) {
		fmt.Fprintln(stdout, "Cancelled.")
		return nil
	}
	return err
}
