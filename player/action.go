// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package player

import (
	"fmt"
	"log/slog"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/graph"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
)

// argValue returns the value of the argument with the given type, or
// else of the argument at the given position.
func argValue(a *graph.Action, typ graph.ArgumentType, i int) (string, bool) {
	if typ != graph.ArgNone {
		for _, arg := range a.Args {
			if arg.ArgType == typ {
				return arg.Value, true
			}
		}
	}
	if arg := a.ArgAt(i); arg != nil {
		return arg.Value, true
	}
	return "", false
}

// argBool returns the boolean argument at the given position, or false.
func argBool(a *graph.Action, i int) bool {
	v, ok := argValue(a, graph.ArgNone, i)
	if !ok {
		return false
	}
	b, _ := props.ParseBool(v)
	return b
}

// Run carries out the handler of the action on its target.
func (pr *Presentation) Run(a *graph.Action) error {
	g := pr.Graph
	target := a.Target.Handle
	if target.IsNil() {
		return fmt.Errorf("player: action target %q: %w", a.Target.Target, graph.ErrNotFound)
	}
	slog.Debug("running action", "presentation", pr.ID, "id", a.ID, "handler", a.Handler.String(), "target", g.ID(target))
	switch a.Handler {
	case graph.HandlerSetProperty:
		name, ok := argValue(a, graph.ArgProperty, 0)
		if !ok {
			return fmt.Errorf("player: action %q has no property", a.ID)
		}
		value, _ := argValue(a, graph.ArgDependent, 1)
		return pr.SetAttribute(target, name, value)
	case graph.HandlerFireEvent:
		event, ok := argValue(a, graph.ArgEvent, 0)
		if !ok {
			return fmt.Errorf("player: action %q has no event", a.ID)
		}
		pr.FireEvent(target, event)
		return nil
	case graph.HandlerEmitSignal:
		name, _ := argValue(a, graph.ArgSignal, 0)
		if pr.Host != nil {
			pr.Host.Signal(pr, target, name)
		}
		return nil
	case graph.HandlerBehavior:
		if pr.Host != nil {
			pr.Host.CallBehavior(pr, target, a.HandlerName, a.Args)
		}
		return nil
	}
	tl, err := pr.Timeline(target)
	if err != nil {
		return err
	}
	switch a.Handler {
	case graph.HandlerGoToSlide:
		name, _ := argValue(a, graph.ArgSlide, 0)
		slide, err := pr.FindSlide(tl, name)
		if err != nil {
			return err
		}
		return pr.GoToSlide(slide)
	case graph.HandlerNextSlide:
		return pr.NextSlide(tl, argBool(a, 0))
	case graph.HandlerPreviousSlide:
		return pr.PreviousSlide(tl, argBool(a, 0))
	case graph.HandlerPrecedingSlide:
		return pr.PrecedingSlide(tl)
	case graph.HandlerPlay:
		pr.Play(tl)
	case graph.HandlerPause:
		pr.Pause(tl)
	case graph.HandlerGoToTime:
		v, _ := argValue(a, graph.ArgNone, 0)
		secs, err := props.ParseFloat(v)
		if err != nil {
			return fmt.Errorf("player: action %q time %q: %w", a.ID, v, err)
		}
		pr.GoToTime(tl, secs*1000)
		if argBool(a, 1) {
			pr.Pause(tl)
		}
	}
	return nil
}
