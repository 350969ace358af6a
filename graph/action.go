// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"strings"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

// HandlerKind is the built-in handler an [Action] invokes.
type HandlerKind int32

const (
	// HandlerBehavior is a handler of a behavior script, named by
	// [Action.HandlerName].
	HandlerBehavior HandlerKind = iota
	HandlerGoToSlide
	HandlerNextSlide
	HandlerPreviousSlide
	HandlerPrecedingSlide
	HandlerPlay
	HandlerPause
	HandlerGoToTime
	HandlerSetProperty
	HandlerFireEvent
	HandlerEmitSignal
	HandlerKindsN
)

var handlerKindNames = [HandlerKindsN]string{"Behavior Handler", "Go to Slide", "Next Slide",
	"Previous Slide", "Preceding Slide", "Play", "Pause", "Go to Time", "Set Property",
	"Fire Event", "Emit Signal"}

func (k HandlerKind) String() string { return enumString(handlerKindNames[:], k) }

// ParseHandlerKind returns the built-in handler with the given name.
// Any other name is a [HandlerBehavior].
func ParseHandlerKind(name string) HandlerKind {
	for i, n := range handlerKindNames {
		if i > 0 && strings.EqualFold(n, name) {
			return HandlerKind(i)
		}
	}
	return HandlerBehavior
}

// ArgumentType tags the role of a [HandlerArgument].
type ArgumentType int32

const (
	ArgNone ArgumentType = iota
	ArgProperty
	ArgDependent
	ArgSignal
	ArgEvent
	ArgSlide
	ArgumentTypesN
)

var argumentTypeNames = [ArgumentTypesN]string{"None", "Property", "Dependent", "Signal", "Event", "Slide"}

func (t ArgumentType) String() string { return enumString(argumentTypeNames[:], t) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (t *ArgumentType) UnmarshalText(text []byte) error {
	return enumParse(argumentTypeNames[:], text, t)
}

// HandlerArgument is an argument of an action handler.
type HandlerArgument struct {
	Name string

	// Type is the declared value type.
	Type props.Type

	ArgType ArgumentType

	// Value is the literal value in text form.
	Value string
}

// Action invokes a handler on a target object when an event occurs on
// a trigger object, while the slide holding it is active.
type Action struct {
	ID string

	// Owner is the object the action was declared on. Relative trigger
	// and target paths start from it, and empty ones default to it.
	Owner tree.Handle

	// Active is whether the action is enabled.
	Active bool

	// Event is the name of the triggering event.
	Event string

	Trigger Ref
	Target  Ref

	Handler HandlerKind

	// HandlerName is the name of a behavior handler.
	HandlerName string

	Args []HandlerArgument
}

// Arg returns the argument with the given name, or nil.
func (a *Action) Arg(name string) *HandlerArgument {
	for i := range a.Args {
		if a.Args[i].Name == name {
			return &a.Args[i]
		}
	}
	return nil
}

// ArgAt returns the argument at the given position, or nil.
func (a *Action) ArgAt(i int) *HandlerArgument {
	if i < 0 || i >= len(a.Args) {
		return nil
	}
	return &a.Args[i]
}

// Clone returns a copy of the action with its own arguments.
func (a *Action) Clone() *Action {
	c := *a
	c.Args = append([]HandlerArgument(nil), a.Args...)
	return &c
}

// Matches returns whether the action is active and fires on the given
// event of the given object.
func (a *Action) Matches(trigger tree.Handle, event string) bool {
	return a.Active && a.Event == event && a.Trigger.Handle == trigger
}
