// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/cmd/stage/config"
)

// Watch loads the document and reports the result, and then loads it
// again whenever a file below its asset root changes, until the context
// is done. Changes closer together than the configured debounce time
// cause one reload.
func Watch(ctx context.Context, c *config.Config, w io.Writer, doc string) error {
	debounce, err := c.Debounce()
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	root := c.Root(doc)
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		return err
	}
	Reload(c, w, doc)
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			switch {
			case event.Op&fsnotify.Create == fsnotify.Create:
				if st, err := os.Stat(event.Name); err == nil && st.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						slog.Warn("can not watch directory", "dir", event.Name, "err", err)
					}
				}
				fire = time.After(debounce)
			case event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Remove == fsnotify.Remove ||
				event.Op&fsnotify.Rename == fsnotify.Rename:
				fire = time.After(debounce)
			}
		case <-fire:
			fire = nil
			Reload(c, w, doc)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "err", err)
		}
	}
}

// Reload loads the document and writes a one line report of the result.
// It returns whether the document loaded.
func Reload(c *config.Config, w io.Writer, doc string) bool {
	app, err := Load(c, doc, nil)
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", doc, err)
		return false
	}
	defer app.Close()
	objects := 0
	for _, pr := range app.Presentations.All() {
		objects += pr.Graph.NumObjects()
	}
	fmt.Fprintf(w, "%s: ok, %d presentations, %d objects\n", doc, app.Presentations.Len(), objects)
	return true
}
