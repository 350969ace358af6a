// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package player

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/errors"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/graph"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

// Special properties of data input bindings.
const (
	// SlideProperty binds a data input to the current slide of the
	// scope of the object, by slide name or index.
	SlideProperty = "@slide"

	// TimelineProperty binds a data input to the time of the scope of
	// the object. Ranged inputs map their range onto the slide;
	// others give the time in seconds.
	TimelineProperty = "@timeline"
)

// Object resolves a path of the form [presentation:]path, where path
// is a #id, an id, or a slash path of names from the scene. Without a
// presentation the initial one is used.
func (app *Application) Object(path string) (*Presentation, tree.Handle, error) {
	id := ""
	if i := strings.IndexByte(path, ':'); i >= 0 {
		id, path = path[:i], path[i+1:]
	}
	pr, err := app.Presentation(id)
	if err != nil {
		return nil, tree.Nil, err
	}
	h, err := pr.Graph.Resolve(tree.Nil, path)
	if err != nil {
		return nil, tree.Nil, err
	}
	return pr, h, nil
}

// timeline resolves the path to the timeline of its scope.
func (app *Application) timeline(path string) (*Presentation, *Timeline, error) {
	pr, h, err := app.Object(path)
	if err != nil {
		return nil, nil, err
	}
	tl, err := pr.Timeline(h)
	return pr, tl, err
}

// Attribute returns the named property of the object at the path.
func (app *Application) Attribute(path, name string) (props.Value, error) {
	pr, h, err := app.Object(path)
	if err != nil {
		return props.Value{}, errors.Warn(err)
	}
	v, err := pr.Graph.Property(h, name)
	return v, errors.Warn(err)
}

// SetAttribute sets the named property of the object at the path from
// text, and notifies the change.
func (app *Application) SetAttribute(path, name, value string) error {
	pr, h, err := app.Object(path)
	if err != nil {
		return errors.Warn(err)
	}
	return errors.Warn(pr.SetAttribute(h, name, value))
}

// FireEvent fires the named event on the object at the path.
func (app *Application) FireEvent(path, event string) error {
	pr, h, err := app.Object(path)
	if err != nil {
		return errors.Warn(err)
	}
	pr.FireEvent(h, event)
	return nil
}

// GoToSlide makes the given slide, by #id, name or index, current in
// the scope of the object at the path.
func (app *Application) GoToSlide(path, slide string) error {
	pr, tl, err := app.timeline(path)
	if err != nil {
		return errors.Warn(err)
	}
	h, err := pr.FindSlide(tl, slide)
	if err != nil {
		return errors.Warn(err)
	}
	return errors.Warn(pr.GoToSlide(h))
}

// NextSlide goes to the next slide in the scope of the object at the
// path.
func (app *Application) NextSlide(path string, wrap bool) error {
	pr, tl, err := app.timeline(path)
	if err != nil {
		return errors.Warn(err)
	}
	return errors.Warn(pr.NextSlide(tl, wrap))
}

// PreviousSlide goes to the previous slide in the scope of the object
// at the path.
func (app *Application) PreviousSlide(path string, wrap bool) error {
	pr, tl, err := app.timeline(path)
	if err != nil {
		return errors.Warn(err)
	}
	return errors.Warn(pr.PreviousSlide(tl, wrap))
}

// PrecedingSlide goes back to the previously current slide in the scope
// of the object at the path.
func (app *Application) PrecedingSlide(path string) error {
	pr, tl, err := app.timeline(path)
	if err != nil {
		return errors.Warn(err)
	}
	return errors.Warn(pr.PrecedingSlide(tl))
}

// Play starts the timeline of the scope of the object at the path.
func (app *Application) Play(path string) error {
	pr, tl, err := app.timeline(path)
	if err != nil {
		return errors.Warn(err)
	}
	pr.Play(tl)
	return nil
}

// Pause stops the timeline of the scope of the object at the path.
func (app *Application) Pause(path string) error {
	pr, tl, err := app.timeline(path)
	if err != nil {
		return errors.Warn(err)
	}
	pr.Pause(tl)
	return nil
}

// GoToTime sets the time in milliseconds of the scope of the object at
// the path.
func (app *Application) GoToTime(path string, ms float32) error {
	pr, tl, err := app.timeline(path)
	if err != nil {
		return errors.Warn(err)
	}
	pr.GoToTime(tl, ms)
	return nil
}

// SetDataInputValue sets the named data input: every property bound to
// it in every presentation is set to the value. Ranged number inputs
// are clamped to their range.
func (app *Application) SetDataInputValue(name, value string) error {
	entry, declared := app.Document.DataInputs.AtTry(name)
	if declared && entry.Type == graph.DataInputRangedNumber {
		f, err := props.ParseFloat(value)
		if err != nil {
			return errors.Warn(fmt.Errorf("player: data input %q value %q: %w", name, value, err))
		}
		value = strconv.FormatFloat(float64(entry.Clamp(f)), 'g', -1, 32)
	}
	var errs []error
	bound := false
	for _, pr := range app.Presentations.All() {
		for _, t := range pr.Graph.DataInputTargets(name) {
			bound = true
			if err := pr.setDataInput(entry, t, value); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if !bound && !declared {
		errs = append(errs, fmt.Errorf("player: no data input %q: %w", name, graph.ErrNotFound))
	}
	return errors.Warn(errors.Join(errs...))
}

// setDataInput sets one target of a data input. The entry is nil for
// undeclared data inputs.
func (pr *Presentation) setDataInput(entry *graph.DataInputEntry, t graph.DataInputTarget, value string) error {
	switch t.Property {
	case SlideProperty:
		tl, err := pr.Timeline(t.Object)
		if err != nil {
			return err
		}
		slide, err := pr.FindSlide(tl, value)
		if err != nil {
			return err
		}
		if slide == tl.Slide {
			return nil
		}
		return pr.GoToSlide(slide)
	case TimelineProperty:
		tl, err := pr.Timeline(t.Object)
		if err != nil {
			return err
		}
		f, err := props.ParseFloat(value)
		if err != nil {
			return err
		}
		ms := f * 1000
		if entry != nil && entry.HasRange && entry.Max > entry.Min {
			ms = (f - entry.Min) / (entry.Max - entry.Min) * tl.Duration
		}
		pr.Pause(tl)
		pr.GoToTime(tl, ms)
		return nil
	}
	return pr.SetAttribute(t.Object, t.Property, value)
}
