// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"slices"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

// Subscription identifies an observer registered with Subscribe, for
// removal with the matching Unsubscribe.
type Subscription struct {
	id uint64
}

// IsNil returns whether this is the zero Subscription.
func (s Subscription) IsNil() bool { return s.id == 0 }

// registry is an ordered list of observers of events of type E.
type registry[E any] struct {
	subs []subscriber[E]
	last uint64
}

type subscriber[E any] struct {
	id uint64
	fn func(E)
}

func (r *registry[E]) add(fn func(E)) Subscription {
	r.last++
	r.subs = append(r.subs, subscriber[E]{r.last, fn})
	return Subscription{r.last}
}

func (r *registry[E]) remove(s Subscription) bool {
	n := len(r.subs)
	r.subs = slices.DeleteFunc(r.subs, func(e subscriber[E]) bool { return e.id == s.id })
	return len(r.subs) < n
}

func (r *registry[E]) len() int { return len(r.subs) }

// emit calls all observers in registration order. Observers added or
// removed by an observer take effect with the next event.
func (r *registry[E]) emit(ev E) {
	if len(r.subs) == 0 {
		return
	}
	for _, s := range slices.Clone(r.subs) {
		s.fn(ev)
	}
}

// PropertyEvent is delivered to property observers by
// [Presentation.NotifyChanges].
type PropertyEvent struct {

	// Object is the object whose properties changed.
	Object Object

	// Changes are the applied changes.
	Changes *props.ChangeList

	// Flags are the change categories of the changes, see [MapChangeFlags].
	Flags ChangeFlags
}

// Keys returns the distinct names of the changed properties.
func (ev *PropertyEvent) Keys() []string {
	return ev.Changes.Keys()
}

// StructureEvent is delivered to the structure observers of a scene or
// master slide when a descendant is added or removed.
type StructureEvent struct {

	// Event is [tree.Added] or [tree.Removed].
	Event tree.Event

	// Owner is the scene or master slide that observes.
	Owner tree.Handle

	// Parent is the node whose child list changed.
	Parent tree.Handle

	// Node is the node that was added or removed.
	Node tree.Handle
}
