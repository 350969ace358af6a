// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package player

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/graph"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

// maxEventDepth limits events fired by actions that fire events.
const maxEventDepth = 16

// Presentation plays one presentation: it keeps a [Timeline] per scope
// and carries out slide changes, animation and actions.
type Presentation struct {

	// ID is the id of the presentation in its application.
	ID string

	// Graph is the presentation graph.
	Graph *graph.Presentation

	// Host receives behavior handler calls and signals. It may be nil.
	Host Host

	// timelines are by master slide.
	timelines map[tree.Handle]*Timeline

	eventDepth int
}

// NewPresentation returns a player of the given presentation graph,
// with every scope on its initial slide.
func NewPresentation(id string, g *graph.Presentation, host Host) *Presentation {
	pr := &Presentation{ID: id, Graph: g, Host: host, timelines: map[tree.Handle]*Timeline{}}
	for _, m := range g.MasterSlides() {
		tl := &Timeline{Master: m}
		pr.timelines[m] = tl
		pr.enter(tl, g.InitialSlide(m))
	}
	return pr
}

// Timelines returns the timelines of all scopes, in scope order.
func (pr *Presentation) Timelines() []*Timeline {
	var tls []*Timeline
	for _, m := range pr.Graph.MasterSlides() {
		if tl := pr.timelines[m]; tl != nil {
			tls = append(tls, tl)
		}
	}
	return tls
}

// Timeline returns the timeline of the scope of the given object: the
// object itself if it is a scene or component, else its nearest scope.
func (pr *Presentation) Timeline(h tree.Handle) (*Timeline, error) {
	g := pr.Graph
	scope := h
	switch g.KindOf(h) {
	case graph.KindScene, graph.KindComponent:
	case graph.KindSlide:
		if tl := pr.timelines[g.MasterOf(h)]; tl != nil {
			return tl, nil
		}
	default:
		scope = g.ScopeOf(h)
	}
	master := g.MasterSlide(scope)
	if tl := pr.timelines[master]; tl != nil {
		return tl, nil
	}
	return nil, fmt.Errorf("player: %q has no slides: %w", g.ID(scope), graph.ErrNotFound)
}

// enter makes the slide current on the timeline and starts it.
func (pr *Presentation) enter(tl *Timeline, slide tree.Handle) error {
	g := pr.Graph
	if err := g.SwitchSlide(tl.Master, slide); err != nil {
		return err
	}
	s := g.Slide(slide)
	tl.Slide = slide
	tl.Time = 0
	tl.Reverse = false
	tl.Duration = float32(g.Duration(slide))
	tl.Mode = s.PlayMode
	tl.Playing = s.InitialPlayState == graph.Playing
	pr.evaluate(tl)
	return nil
}

// GoToSlide makes the given slide current in its scope. The previously
// current slide is remembered for [Presentation.PrecedingSlide].
func (pr *Presentation) GoToSlide(slide tree.Handle) error {
	g := pr.Graph
	if g.KindOf(slide) != graph.KindSlide {
		return fmt.Errorf("player: %q is not a slide: %w", g.ID(slide), graph.ErrKindMismatch)
	}
	tl := pr.timelines[g.MasterOf(slide)]
	if tl == nil {
		return fmt.Errorf("player: slide %q has no scope: %w", g.ID(slide), graph.ErrNotFound)
	}
	prev := tl.Slide
	if err := pr.enter(tl, slide); err != nil {
		return err
	}
	tl.push(prev)
	return nil
}

// FindSlide returns the slide of the scope of the timeline given by
// #id, name, or index (see [graph.Presentation.SlideByIndex]).
func (pr *Presentation) FindSlide(tl *Timeline, slide string) (tree.Handle, error) {
	slide = strings.TrimSpace(slide)
	if i, err := strconv.Atoi(slide); err == nil {
		if h := pr.Graph.SlideByIndex(tl.Master, i); !h.IsNil() {
			return h, nil
		}
	} else if h := pr.Graph.SlideByName(tl.Master, slide); !h.IsNil() {
		return h, nil
	}
	return tree.Nil, fmt.Errorf("player: no slide %q in %q: %w", slide, pr.Graph.ID(tl.Master), graph.ErrNotFound)
}

// NextSlide goes to the slide after the current one of the timeline.
// At the last slide it wraps around if wrap is set and otherwise stays.
func (pr *Presentation) NextSlide(tl *Timeline, wrap bool) error {
	return pr.neighbor(tl, 1, wrap)
}

// PreviousSlide goes to the slide before the current one of the
// timeline. At the first slide it wraps around if wrap is set and
// otherwise stays.
func (pr *Presentation) PreviousSlide(tl *Timeline, wrap bool) error {
	return pr.neighbor(tl, -1, wrap)
}

func (pr *Presentation) neighbor(tl *Timeline, delta int, wrap bool) error {
	h := pr.Graph.NeighborSlide(tl.Slide, delta, wrap)
	if h.IsNil() {
		return nil
	}
	return pr.GoToSlide(h)
}

// PrecedingSlide goes back to the slide that was current before the
// current one.
func (pr *Presentation) PrecedingSlide(tl *Timeline) error {
	h, ok := tl.pop()
	if !ok {
		return nil
	}
	return pr.enter(tl, h)
}

// Play starts the timeline.
func (pr *Presentation) Play(tl *Timeline) {
	tl.Playing = true
}

// Pause stops the timeline.
func (pr *Presentation) Pause(tl *Timeline) {
	tl.Playing = false
}

// GoToTime sets the local time of the timeline in milliseconds,
// clamped to the slide, and evaluates its animation.
func (pr *Presentation) GoToTime(tl *Timeline, ms float32) {
	tl.Time = max(0, min(ms, tl.Duration))
	pr.evaluate(tl)
}

// Advance advances every playing timeline by dt milliseconds, evaluates
// the animation tracks, and continues play through slides that reached
// their end.
func (pr *Presentation) Advance(dt float32) {
	for _, tl := range pr.Timelines() {
		switch tl.step(dt) {
		case stepCompleted:
			pr.evaluate(tl)
			if to, ok := pr.Graph.PlayThroughTarget(tl.Slide); ok {
				if err := pr.GoToSlide(to); err != nil {
					slog.Warn("can not play through", "presentation", pr.ID, "slide", pr.Graph.ID(tl.Slide), "err", err)
				}
				continue
			}
			tl.Playing = false
		case stepStopped, stepContinue:
			pr.evaluate(tl)
		}
	}
}

// evaluate applies the animation of the current slide at the current
// time.
func (pr *Presentation) evaluate(tl *Timeline) {
	pr.Graph.EvaluateTracks(pr.Graph.ActiveTracks(tl.Slide), tl.Time)
}

// SetAttribute sets the named property of the object from text and
// notifies the change.
func (pr *Presentation) SetAttribute(h tree.Handle, name, value string) error {
	ch, err := pr.Graph.SetProperty(h, name, value)
	if err != nil {
		return err
	}
	pr.Graph.NotifyChanges(h, props.NewChangeList(ch))
	return nil
}

// FireEvent runs the actions that are active in the current slides and
// fire on the given event of the given object.
func (pr *Presentation) FireEvent(h tree.Handle, event string) {
	if pr.eventDepth >= maxEventDepth {
		slog.Warn("too many nested events", "presentation", pr.ID, "id", pr.Graph.ID(h), "event", event)
		return
	}
	pr.eventDepth++
	defer func() { pr.eventDepth-- }()
	var actions []*graph.Action
	for _, tl := range pr.Timelines() {
		for _, a := range pr.Graph.ActiveActions(tl.Slide) {
			if a.Matches(h, event) {
				actions = append(actions, a)
			}
		}
	}
	for _, a := range actions {
		if err := pr.Run(a); err != nil {
			slog.Warn("action failed", "presentation", pr.ID, "id", a.ID, "handler", a.Handler.String(), "err", err)
		}
	}
}
