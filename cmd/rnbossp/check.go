package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/justyntemme/rnbossp/pkg/framework/param"
	"github.com/justyntemme/rnbossp/pkg/rnbo"
	"github.com/justyntemme/rnbossp/pkg/scaffold"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#008000", Dark: "#55FF55"})
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"})
)

func runCheckCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	reports, err := s.project.CheckExports(context.Background())
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Fprintln(stdout, "No modules found.")
		return nil
	}

	failed := 0
	for _, r := range reports {
		printReport(r)
		if !r.OK() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d exports failed validation", failed, len(reports))
	}
	return nil
}

func printReport(r scaffold.ExportReport) {
	if !r.OK() {
		fmt.Fprintf(stdout, "%s %s: %v\n", failStyle.Render("FAIL"), r.Module, r.Err)
		return
	}
	d := r.Description
	fmt.Fprintf(stdout, "%s %s: %d in, %d out, %d parameters\n",
		okStyle.Render("ok  "), r.Module, d.NumInputChannels, d.NumOutputChannels, len(d.Params))
}

func runWatchCommand(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return withExitCode(errors.New("usage: rnbossp watch ID"), 2)
	}

	s, err := openSession()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	id := fs.Arg(0)
	printReport(s.project.CheckExport(id))
	return s.project.Watch(ctx, id, printReport)
}

func runInspectCommand(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return withExitCode(errors.New("usage: rnbossp inspect ID|description.json"), 2)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	d, path, err := loadDescription(s.project, fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s\n%d inputs, %d outputs\n\n", path, d.NumInputChannels, d.NumOutputChannels)
	fmt.Fprintln(stdout, parameterTable(rnbo.NewStaticPatch(d)))
	return nil
}

// parameterTable shows every engine parameter with the kind it reflects to.
// Hidden parameters are listed but not bound.
func parameterTable(p rnbo.Patch) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "ID", "Label", "Kind", "Range", "Steps", "Unit", "Initial", "Bound")

	for _, info := range rnbo.Parameters(p) {
		kind := param.Classify(info).String()
		if info.IsEnum() {
			kind += fmt.Sprintf(" (%d)", len(info.EnumValues))
		}
		bound := "yes"
		if !info.Visible {
			bound = "hidden"
		}
		t.Row(
			strconv.Itoa(info.Index),
			info.ID,
			info.Label(),
			kind,
			fmt.Sprintf("%g..%g", info.Min, info.Max),
			strconv.Itoa(info.Steps),
			info.Unit,
			strconv.FormatFloat(info.Initial, 'g', -1, 64),
			bound,
		)
	}
	return t.String()
}
