// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"github.com/thomasgoedertier/qt3d-runtime-sub001/graph"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/player"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

// Summary is the structured description of an application printed by
// the inspect and dump commands.
type Summary struct {
	Initial       string                `json:"initial" yaml:"initial"`
	DataInputs    []DataInputSummary    `json:"dataInputs,omitempty" yaml:"dataInputs,omitempty"`
	Presentations []PresentationSummary `json:"presentations" yaml:"presentations"`
}

// DataInputSummary describes a data input declaration.
type DataInputSummary struct {
	Name     string            `json:"name" yaml:"name"`
	Type     string            `json:"type" yaml:"type"`
	Min      *float32          `json:"min,omitempty" yaml:"min,omitempty"`
	Max      *float32          `json:"max,omitempty" yaml:"max,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// PresentationSummary describes a loaded presentation.
type PresentationSummary struct {
	ID      string           `json:"id" yaml:"id"`
	Width   int32            `json:"width" yaml:"width"`
	Height  int32            `json:"height" yaml:"height"`
	Objects int              `json:"objects" yaml:"objects"`
	Scene   *ObjectSummary   `json:"scene" yaml:"scene"`
	Scopes  []ScopeSummary   `json:"scopes" yaml:"scopes"`
	Bound   []BindingSummary `json:"bindings,omitempty" yaml:"bindings,omitempty"`
}

// ObjectSummary describes an object of the scene tree.
type ObjectSummary struct {
	ID       string           `json:"id" yaml:"id"`
	Name     string           `json:"name" yaml:"name"`
	Kind     string           `json:"kind" yaml:"kind"`
	Children []*ObjectSummary `json:"children,omitempty" yaml:"children,omitempty"`
}

// ScopeSummary describes the slides of the scene or a component.
type ScopeSummary struct {
	Scope   string         `json:"scope" yaml:"scope"`
	Current string         `json:"current" yaml:"current"`
	Slides  []SlideSummary `json:"slides" yaml:"slides"`
}

// SlideSummary describes a slide.
type SlideSummary struct {
	Index    int    `json:"index" yaml:"index"`
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	PlayMode string `json:"playMode" yaml:"playMode"`
	Duration int32  `json:"duration" yaml:"duration"`
	Members  int    `json:"members" yaml:"members"`
	Tracks   int    `json:"tracks" yaml:"tracks"`
	Actions  int    `json:"actions" yaml:"actions"`
}

// BindingSummary describes the objects bound to a data input.
type BindingSummary struct {
	DataInput string   `json:"dataInput" yaml:"dataInput"`
	Targets   []string `json:"targets" yaml:"targets"`
}

// Summarize returns the summary of the application.
func Summarize(app *player.Application) *Summary {
	s := &Summary{Initial: app.Document.Initial}
	for name, e := range app.Document.DataInputs.All() {
		di := DataInputSummary{Name: name, Type: e.Type.String(), Metadata: e.Metadata}
		if e.HasRange {
			di.Min, di.Max = &e.Min, &e.Max
		}
		s.DataInputs = append(s.DataInputs, di)
	}
	for _, pr := range app.Presentations.All() {
		s.Presentations = append(s.Presentations, summarizePresentation(pr))
	}
	return s
}

func summarizePresentation(pr *player.Presentation) PresentationSummary {
	g := pr.Graph
	ps := PresentationSummary{ID: pr.ID, Width: g.Settings.Width, Height: g.Settings.Height,
		Objects: g.NumObjects(), Scene: summarizeObject(g, g.Scene())}
	for _, tl := range pr.Timelines() {
		m := tl.Master
		sc := ScopeSummary{Scope: g.ID(g.Slide(m).Scope), Current: slideLabel(g, tl.Slide)}
		for i := 0; i <= g.NumSlides(m); i++ {
			sc.Slides = append(sc.Slides, summarizeSlide(g, g.SlideByIndex(m, i), i))
		}
		ps.Scopes = append(ps.Scopes, sc)
	}
	for _, name := range g.BoundDataInputs() {
		b := BindingSummary{DataInput: name}
		for _, t := range g.DataInputTargets(name) {
			b.Targets = append(b.Targets, g.ID(t.Object)+"."+t.Property)
		}
		ps.Bound = append(ps.Bound, b)
	}
	return ps
}

func summarizeObject(g *graph.Presentation, h tree.Handle) *ObjectSummary {
	b := g.Base(h)
	if b == nil {
		return nil
	}
	ob := &ObjectSummary{ID: b.ID, Name: b.Name, Kind: b.Kind().String()}
	for c := range g.Tree().Children(h) {
		ob.Children = append(ob.Children, summarizeObject(g, c))
	}
	return ob
}

func summarizeSlide(g *graph.Presentation, h tree.Handle, index int) SlideSummary {
	s := g.Slide(h)
	return SlideSummary{Index: index, ID: s.ID, Name: s.Name, PlayMode: s.PlayMode.String(),
		Duration: g.Duration(h), Members: len(s.Members), Tracks: len(s.Tracks), Actions: len(s.Actions)}
}

func slideLabel(g *graph.Presentation, h tree.Handle) string {
	b := g.Base(h)
	if b == nil {
		return ""
	}
	if b.Name != "" {
		return b.Name
	}
	return b.ID
}
