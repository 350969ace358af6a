// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"log/slog"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/anim"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

// AnimationTrack animates one float property, or one component of a
// vector or color property, of an object over the timeline of a slide.
type AnimationTrack struct {
	// Target is the animated object.
	Target tree.Handle

	// Property is the animated property, such as opacity or
	// position.x.
	Property string

	// Dynamic is whether the value of the first keyframe is taken from
	// the live value of the property when the slide is entered.
	Dynamic bool

	Curve anim.Curve

	// Keys are the keyframes in ascending time order.
	Keys []anim.Keyframe
}

// Begin prepares the track for a run of its slide. For a dynamic track
// it captures the live value of the property into the first keyframe.
func (t *AnimationTrack) Begin(p *Presentation) {
	if !t.Dynamic || len(t.Keys) == 0 {
		return
	}
	v, err := p.Property(t.Target, t.Property)
	if err != nil {
		slog.Warn("can not start dynamic animation track", "id", p.ID(t.Target), "property", t.Property, "err", err)
		return
	}
	t.Keys[0].Value = v.Float()
}

// Value returns the value of the track at the given slide time in
// milliseconds.
func (t *AnimationTrack) Value(ms float32) float32 {
	return anim.Evaluate(t.Curve, t.Keys, ms)
}

// Evaluate returns the change that sets the property to the value of
// the track at the given slide time in milliseconds.
func (t *AnimationTrack) Evaluate(ms float32) props.Change {
	if len(t.Keys) == 0 {
		return props.Change{}
	}
	return props.NewChange(t.Property, props.FloatValue(t.Value(ms)))
}

// Domain returns the time range covered by the keyframes.
func (t *AnimationTrack) Domain() (start, end float32) {
	return anim.Domain(t.Keys)
}

// Clone returns a copy of the track with its own keyframes.
func (t *AnimationTrack) Clone() *AnimationTrack {
	c := *t
	c.Keys = append([]anim.Keyframe(nil), t.Keys...)
	return &c
}

// EvaluateTracks evaluates the given tracks at the given slide time and
// applies and notifies the resulting changes, grouped per object in
// track order.
func (p *Presentation) EvaluateTracks(tracks []*AnimationTrack, ms float32) {
	var order []tree.Handle
	changes := map[tree.Handle]*props.ChangeList{}
	for _, t := range tracks {
		c := t.Evaluate(ms)
		if !c.Valid() || !p.objects.Valid(t.Target) {
			continue
		}
		cl := changes[t.Target]
		if cl == nil {
			cl = &props.ChangeList{}
			changes[t.Target] = cl
			order = append(order, t.Target)
		}
		cl.Append(c)
	}
	for _, h := range order {
		p.ApplyAndNotify(h, changes[h])
	}
}
