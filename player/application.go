// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package player runs presentations: it loads an application and its
// presentations, keeps the timelines of their scopes, carries out slide
// changes, animation, actions and data input, and provides the query
// surface through which an engine or script drives them.
package player

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/errors"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/keylist"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/graph"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/imagescan"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/meta"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/uip"
)

// Options are the options of [Open].
type Options struct {

	// DataModel is passed to the presentation parser.
	DataModel *meta.DataModel

	// Strict is passed to the presentation parser.
	Strict bool

	// Host receives behavior handler calls and signals.
	Host Host

	// ScanImages makes images missing from the image buffer registry
	// be scanned for transparency.
	ScanImages bool
}

// Application is a running application: its presentations and the data
// inputs they share.
type Application struct {

	// Document is the application document. For an application made
	// of a single presentation document it is synthesized.
	Document *uip.Application

	// Presentations are the presentations that could be loaded, by id.
	Presentations keylist.List[string, *Presentation]
}

// Open loads an application document (.uia) or a single presentation
// document (.uip) and all of its presentations from the file system.
// Presentations that can not be loaded are logged and skipped, except
// for the initial one.
func Open(fsys fs.FS, filename string, opts Options) (*Application, error) {
	app := &Application{}
	if strings.EqualFold(path.Ext(filename), ".uip") {
		id := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
		app.Document = &uip.Application{Initial: id,
			Presentations: []uip.PresentationEntry{{ID: id, Source: path.Base(filename)}}}
	} else {
		f, err := fsys.Open(filename)
		if err != nil {
			return nil, err
		}
		doc, err := uip.ParseApplication(f, filename)
		f.Close()
		if err != nil {
			return nil, err
		}
		app.Document = doc
	}
	dir := path.Dir(filename)
	parser := uip.NewParser(uip.Options{DataModel: opts.DataModel, FS: fsys, Strict: opts.Strict})
	for _, pe := range app.Document.Presentations {
		if pe.Kind != uip.PresentationUIP {
			slog.Debug("skipping presentation", "presentation", pe.ID, "kind", pe.Kind.String())
			continue
		}
		g, err := parser.OpenPresentation(fsys, path.Join(dir, pe.Source))
		if err != nil {
			if pe.ID == app.Document.Initial {
				return nil, fmt.Errorf("player: initial presentation %q: %w", pe.ID, err)
			}
			slog.Warn("can not load presentation", "presentation", pe.ID, "err", err)
			continue
		}
		for name, e := range app.Document.DataInputs.All() {
			g.DataInputs.Set(name, e)
		}
		if opts.ScanImages {
			if sub, err := fs.Sub(fsys, path.Dir(path.Join(dir, pe.Source))); err == nil {
				g.ImageScanner = imagescan.NewScanner(sub)
			}
		}
		app.Presentations.Set(pe.ID, NewPresentation(pe.ID, g, opts.Host))
	}
	return app, nil
}

// Initial returns the initial presentation.
func (app *Application) Initial() *Presentation {
	return app.Presentations.At(app.Document.Initial)
}

// Presentation returns the presentation with the given id; the empty id
// is the initial presentation.
func (app *Application) Presentation(id string) (*Presentation, error) {
	if id == "" {
		id = app.Document.Initial
	}
	pr, ok := app.Presentations.AtTry(id)
	if !ok {
		return nil, fmt.Errorf("player: no presentation %q: %w", id, graph.ErrNotFound)
	}
	return pr, nil
}

// Close destroys the graphs of all presentations.
func (app *Application) Close() {
	for _, pr := range app.Presentations.All() {
		pr.Graph.Reset()
	}
	app.Presentations.Reset()
}

// PreloadMeshes calls the loader for the mesh of every model of every
// presentation. All load errors are returned, joined.
func (app *Application) PreloadMeshes(loader MeshLoader) error {
	var errs []error
	for _, pr := range app.Presentations.All() {
		g := pr.Graph
		g.Tree().WalkDown(g.Scene(), func(h tree.Handle) bool {
			if m, ok := graph.As[*graph.Model](g, h); ok && !m.Mesh.IsZero() {
				if err := loader.LoadMesh(m.Mesh); err != nil {
					errs = append(errs, fmt.Errorf("%s: %s: %w", pr.ID, m.ID, err))
				}
			}
			return tree.Continue
		})
	}
	return errors.Join(errs...)
}

// Advance advances the timelines of all presentations by dt
// milliseconds.
func (app *Application) Advance(dt float32) {
	for _, pr := range app.Presentations.All() {
		pr.Advance(dt)
	}
}
