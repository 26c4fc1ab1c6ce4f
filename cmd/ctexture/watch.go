package main

import (
	"context"
	"io/fs"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long the archives must stay unchanged before a re-render.
const settle = 250 * time.Millisecond

// watch renders names once, then again whenever a file in one of the
// archives changes, until ctx is done. The archives are reopened on every
// change.
func watch(ctx context.Context, cfg Config, names []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	for _, dir := range cfg.Archives {
		if err := addTree(w, dir); err != nil {
			return err
		}
	}

	var written outputs
	rerender := func() {
		ws, err := openWorkspace(cfg)
		if err == nil {
			var paths []string
			paths, err = ws.render(names)
			written = newOutputs(paths)
		}
		if err != nil {
			log.Printf("render: %v", err)
			return
		}
		log.Printf("rendered to %s", cfg.Output)
	}
	rerender()

	timer := time.NewTimer(settle)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if written.has(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				// New namespace directories must be watched too.
				_ = addTree(w, event.Name)
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				timer.Reset(settle)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		case <-timer.C:
			rerender()
		}
	}
}

// addTree watches dir and every directory below it. Plain files are ignored.
func addTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.Add(p)
	})
}

// outputs is the set of absolute paths written by the last render.
type outputs map[string]struct{}

func newOutputs(paths []string) outputs {
	o := make(outputs, len(paths))
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			o[abs] = struct{}{}
		}
	}
	return o
}

// has reports whether p names a file the last render wrote.
func (o outputs) has(p string) bool {
	abs, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	_, ok := o[abs]
	return ok
}
