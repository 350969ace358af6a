// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uip

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/keylist"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/graph"
	"golang.org/x/net/html/charset"
)

// PresentationKind is the kind of document of a sub-presentation.
type PresentationKind int32

const (
	// PresentationUIP is a presentation document.
	PresentationUIP PresentationKind = iota

	// PresentationQML is a presentation rendered by a QML engine,
	// which is only listed.
	PresentationQML
)

func (k PresentationKind) String() string {
	if k == PresentationQML {
		return "presentation-qml"
	}
	return "presentation"
}

// PresentationEntry is a presentation listed by an application.
type PresentationEntry struct {
	ID     string
	Source string
	Kind   PresentationKind
}

// Application is an application document: the presentations it is made
// of and the data inputs they share.
type Application struct {

	// Initial is the id of the presentation shown first.
	Initial string

	// Presentations are the presentations, in document order.
	Presentations []PresentationEntry

	// DataInputs are the data input declarations, by name.
	DataInputs keylist.List[string, *graph.DataInputEntry]
}

// Presentation returns the presentation entry with the given id.
func (app *Application) Presentation(id string) (PresentationEntry, bool) {
	for _, pe := range app.Presentations {
		if pe.ID == id {
			return pe, true
		}
	}
	return PresentationEntry{}, false
}

// ParseApplication reads an application document.
func ParseApplication(r io.Reader, name string) (*Application, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	d := &decoder{name: name, dec: dec, Parser: &Parser{}}
	app := &Application{}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, d.errorf(ErrMalformed, "no application element")
		}
		if err != nil {
			return nil, d.tokenError(err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "application" {
			return nil, d.errorf(ErrMalformed, "root element is <%s>, not <application>", se.Name.Local)
		}
		if v, _ := attr(se, "version"); v != "" {
			if err := checkVersion(v, ApplicationVersions); err != nil {
				return nil, d.errorf(err, "application")
			}
		}
		err = d.children(func(se xml.StartElement) error {
			if se.Name.Local == "assets" {
				return d.assets(se, app)
			}
			return d.unknown(se)
		})
		if err != nil {
			return nil, err
		}
		break
	}
	if len(app.Presentations) == 0 {
		return nil, &ParseError{Document: name, Err: fmt.Errorf("%w: no presentations", ErrMalformed)}
	}
	if app.Initial == "" {
		app.Initial = app.Presentations[0].ID
	} else if _, ok := app.Presentation(app.Initial); !ok {
		return nil, &ParseError{Document: name, Err: fmt.Errorf("%w: initial presentation %q", ErrMissingReference, app.Initial)}
	}
	return app, nil
}

// assets reads the presentation and data input declarations.
func (d *decoder) assets(se xml.StartElement, app *Application) error {
	app.Initial, _ = attr(se, "initial")
	return d.children(func(se xml.StartElement) error {
		switch se.Name.Local {
		case "presentation", "presentation-qml":
			pe := PresentationEntry{Kind: PresentationUIP}
			if se.Name.Local == "presentation-qml" {
				pe.Kind = PresentationQML
			}
			pe.ID, _ = attr(se, "id")
			if pe.Kind == PresentationQML {
				pe.Source, _ = attr(se, "args")
			}
			if src, ok := attr(se, "src"); ok {
				pe.Source = src
			}
			pe.Source = cleanPath(pe.Source)
			if pe.ID == "" || pe.Source == "." {
				return d.errorf(ErrMalformed, "<%s> without id or src", se.Name.Local)
			}
			if _, dup := app.Presentation(pe.ID); dup {
				return d.errorf(ErrDuplicate, "presentation %q", pe.ID)
			}
			app.Presentations = append(app.Presentations, pe)
		case "dataInput":
			e, err := d.dataInput(se)
			if err != nil {
				return err
			}
			if app.DataInputs.Has(e.Name) {
				return d.errorf(ErrDuplicate, "data input %q", e.Name)
			}
			app.DataInputs.Set(e.Name, e)
		default:
			return d.unknown(se)
		}
		return d.skip()
	})
}

// dataInput reads a data input declaration. Attributes other than the
// declared ones are kept as metadata.
func (d *decoder) dataInput(se xml.StartElement) (*graph.DataInputEntry, error) {
	e := &graph.DataInputEntry{}
	var hasMin, hasMax bool
	for _, a := range se.Attr {
		switch a.Name.Local {
		case "name":
			e.Name = a.Value
		case "type":
			if err := e.Type.UnmarshalText([]byte(a.Value)); err != nil {
				slog.Warn("invalid data input type, using String", "document", d.name, "name", e.Name, "type", a.Value)
				e.Type = graph.DataInputString
			}
		case "min", "max":
			f, err := strconv.ParseFloat(a.Value, 32)
			if err != nil {
				return nil, d.errorf(ErrMalformed, "data input %s %q", a.Name.Local, a.Value)
			}
			if a.Name.Local == "min" {
				e.Min, hasMin = float32(f), true
			} else {
				e.Max, hasMax = float32(f), true
			}
		default:
			if e.Metadata == nil {
				e.Metadata = map[string]string{}
			}
			e.Metadata[a.Name.Local] = a.Value
		}
	}
	if e.Name == "" {
		return nil, d.errorf(ErrMalformed, "data input without name")
	}
	e.HasRange = e.Type == graph.DataInputRangedNumber && hasMin && hasMax
	return e, nil
}
