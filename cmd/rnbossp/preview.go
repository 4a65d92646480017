package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/justyntemme/rnbossp/pkg/editor"
	"github.com/justyntemme/rnbossp/pkg/plugin"
	"github.com/justyntemme/rnbossp/pkg/wrapper"
)

func runPreviewCommand(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	view := fs.String("view", "all", "view to render: editor, mini or all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return withExitCode(errors.New("usage: rnbossp preview [-view editor|mini|all] ID"), 2)
	}
	if *view != "all" && *view != plugin.ViewEditor && *view != plugin.ViewMini {
		return withExitCode(fmt.Errorf("%q: %w", *view, plugin.ErrNoView), 2)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	manifest, patch, err := openModule(s.project, fs.Arg(0))
	if err != nil {
		return err
	}
	proc, err := wrapper.NewProcessor(manifest.Name, patch)
	if err != nil {
		return err
	}

	if *view == "all" || *view == plugin.ViewEditor {
		v, err := proc.CreateView(plugin.ViewEditor)
		if err != nil {
			return err
		}
		full := v.(*editor.Full)
		for {
			fmt.Fprintln(stdout, full.Render())
			fmt.Fprintln(stdout)
			if !full.NextPage() {
				break
			}
		}
	}
	if *view == "all" || *view == plugin.ViewMini {
		v, err := proc.CreateView(plugin.ViewMini)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, v.Render())
	}
	return nil
}
