package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/justyntemme/rnbossp/pkg/rnbo"
)

// ExportReport is the result of validating one module's RNBO export.
type ExportReport struct {
	Module      string
	Path        string
	Description *rnbo.Description
	Err         error
}

// OK reports whether the export is present and valid.
func (r ExportReport) OK() bool {
	return r.Err == nil
}

// CheckExport validates the description.json of module id.
func (p *Project) CheckExport(id string) ExportReport {
	path := filepath.Join(p.ExportPath(id), rnbo.DescriptionFile)
	r := ExportReport{Module: id, Path: path}

	d, err := rnbo.LoadDescription(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.Err = fmt.Errorf("%w: %s missing", ErrNoExport, path)
	case err != nil:
		r.Err = err
	default:
		r.Description = d
	}
	return r
}

// CheckExports validates every module's export concurrently. The reports
// are sorted by module. The returned error is only set when ctx ends the
// check early or the modules directory cannot be read.
func (p *Project) CheckExports(ctx context.Context) ([]ExportReport, error) {
	modules, err := p.List()
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	reports := make([]ExportReport, 0, len(modules))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, id := range modules {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := p.CheckExport(id)

			mu.Lock()
			reports = append(reports, r)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Module < reports[j].Module })
	return reports, nil
}

// Watch revalidates the export of module id whenever its description file
// changes, calling onChange with each result, until ctx is done.
func (p *Project) Watch(ctx context.Context, id string, onChange func(ExportReport)) error {
	if !p.Exists(id) {
		return fmt.Errorf("%w: %s", ErrModuleNotFound, id)
	}
	dir := p.ExportPath(id)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	p.log.Info("watching %s", dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != rnbo.DescriptionFile {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) {
				continue
			}
			p.log.Debug("%s: %s", ev.Op, ev.Name)
			onChange(p.CheckExport(id))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.log.Warn("watcher: %v", err)
		}
	}
}
