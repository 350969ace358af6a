// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package player

import (
	"github.com/chewxy/math32"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/graph"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

// maxHistory is the number of slides a timeline remembers for
// [graph.HandlerPrecedingSlide].
const maxHistory = 64

// Timeline is the playback state of one scope: the scene or a
// component.
type Timeline struct {

	// Master is the master slide of the scope.
	Master tree.Handle

	// Slide is the current slide.
	Slide tree.Handle

	// Time is the local time on the slide in milliseconds.
	Time float32

	// Duration is the length of the slide in milliseconds.
	Duration float32

	// Reverse is whether time runs backwards, in the ping pong modes.
	Reverse bool

	// Playing is whether time advances.
	Playing bool

	// Mode is the play mode of the current slide.
	Mode graph.PlayMode

	// history are the previously current slides, most recent last.
	history []tree.Handle
}

// push records the given slide as previously current.
func (tl *Timeline) push(slide tree.Handle) {
	if slide.IsNil() {
		return
	}
	tl.history = append(tl.history, slide)
	if len(tl.history) > maxHistory {
		tl.history = tl.history[len(tl.history)-maxHistory:]
	}
}

// pop returns the most recent previously current slide.
func (tl *Timeline) pop() (tree.Handle, bool) {
	if len(tl.history) == 0 {
		return tree.Nil, false
	}
	h := tl.history[len(tl.history)-1]
	tl.history = tl.history[:len(tl.history)-1]
	return h, true
}

// History returns the previously current slides, most recent last.
func (tl *Timeline) History() []tree.Handle {
	return append([]tree.Handle(nil), tl.history...)
}

// stepResult is what happened when time advanced.
type stepResult int

const (
	stepContinue stepResult = iota

	// stepStopped means the timeline stopped at an end.
	stepStopped

	// stepCompleted means a play through slide reached its end.
	stepCompleted
)

// step advances the time by dt milliseconds according to the play mode.
func (tl *Timeline) step(dt float32) stepResult {
	if !tl.Playing {
		return stepContinue
	}
	d := tl.Duration
	if d <= 0 {
		tl.Time = 0
		switch tl.Mode {
		case graph.StopAtEnd, graph.Ping:
			tl.Playing = false
			return stepStopped
		case graph.PlayThroughTo:
			return stepCompleted
		}
		return stepContinue
	}
	if tl.Reverse {
		tl.Time -= dt
	} else {
		tl.Time += dt
	}
	switch tl.Mode {
	case graph.Looping:
		tl.Time = math32.Mod(tl.Time, d)
		if tl.Time < 0 {
			tl.Time += d
		}
	case graph.PingPong, graph.Ping:
		for tl.Time > d || tl.Time < 0 {
			if tl.Time > d {
				tl.Time = 2*d - tl.Time
				tl.Reverse = true
				continue
			}
			if tl.Mode == graph.Ping {
				tl.Time, tl.Reverse, tl.Playing = 0, false, false
				return stepStopped
			}
			tl.Time = -tl.Time
			tl.Reverse = false
		}
	case graph.PlayThroughTo:
		if tl.Time >= d {
			tl.Time = d
			return stepCompleted
		}
	default:
		if tl.Time >= d || tl.Time <= 0 && tl.Reverse {
			tl.Time = math32.Max(0, math32.Min(tl.Time, d))
			tl.Playing = false
			return stepStopped
		}
	}
	return stepContinue
}
