// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree provides an arena-backed ordered tree. Nodes are
// addressed by stable [Handle]s instead of pointers: each handle
// carries the generation of the slot it refers to, so a handle to a
// destroyed node can never alias a node that later reuses its slot,
// and structural edits can not leave dangling links behind.
//
// Every slot stores intrusive links (parent, first and last child,
// previous and next sibling), so that appending, prepending and
// inserting relative to a sibling are all constant time. A single
// arena can hold several disjoint trees (for example a scene graph
// and the slide trees of a presentation).
package tree

import (
	"fmt"
	"iter"
)

// Handle is a stable reference to a node in an [Arena].
// The zero Handle is the nil handle.
type Handle struct {
	// Index is the slot index in the arena.
	Index uint32

	// Gen is the generation of the slot at the time the handle was made.
	Gen uint32
}

// Nil is the nil [Handle].
var Nil Handle

// IsNil returns whether this is the nil handle.
func (h Handle) IsNil() bool {
	return h.Index == 0
}

func (h Handle) String() string {
	if h.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("%d@%d", h.Index, h.Gen)
}

// Event is the kind of structural change reported to [Arena.OnChange].
type Event int32

const (
	// Added is reported after a node has been linked under a parent.
	Added Event = iota

	// Removed is reported after a node has been unlinked from its parent.
	Removed
)

func (ev Event) String() string {
	if ev == Added {
		return "Added"
	}
	return "Removed"
}

// links are the intrusive tree links of a slot.
type links struct {
	parent, first, last, prev, next Handle
}

type slot[T any] struct {
	value T
	gen   uint32
	live  bool
	links
}

// Arena holds the nodes of one or more trees. The zero value is
// ready to use. Arena is not safe for concurrent use.
type Arena[T any] struct {

	// OnChange, if non-nil, is called after every structural change
	// made by the child manipulation methods, with the parent and the
	// affected child.
	OnChange func(ev Event, parent, child Handle)

	// OnDestroy, if non-nil, is called for every node destroyed by
	// [Arena.Destroy], children before parents, while the handle is
	// still valid.
	OnDestroy func(h Handle)

	slots []slot[T]
	free  []uint32
	count int
}

// New adds a new unparented node with the given value and returns its handle.
func (a *Arena[T]) New(v T) Handle {
	if len(a.slots) == 0 {
		a.slots = make([]slot[T], 1, 64) // slot 0 is the nil handle
	}
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot[T]{})
		idx = uint32(len(a.slots) - 1)
	}
	s := &a.slots[idx]
	s.gen++
	s.live = true
	s.value = v
	s.links = links{}
	a.count++
	return Handle{Index: idx, Gen: s.gen}
}

// Len returns the number of live nodes in the arena.
func (a *Arena[T]) Len() int {
	return a.count
}

// Valid returns whether the given handle refers to a live node.
func (a *Arena[T]) Valid(h Handle) bool {
	if h.IsNil() || int(h.Index) >= len(a.slots) {
		return false
	}
	s := &a.slots[h.Index]
	return s.live && s.gen == h.Gen
}

func (a *Arena[T]) slot(h Handle) *slot[T] {
	if !a.Valid(h) {
		return nil
	}
	return &a.slots[h.Index]
}

// Value returns the value of the given node, and the zero value
// if the handle is not valid.
func (a *Arena[T]) Value(h Handle) T {
	if s := a.slot(h); s != nil {
		return s.value
	}
	var zv T
	return zv
}

// Set sets the value of the given node. It returns false if the
// handle is not valid.
func (a *Arena[T]) Set(h Handle, v T) bool {
	s := a.slot(h)
	if s == nil {
		return false
	}
	s.value = v
	return true
}

// All returns an iterator over all live nodes in slot order.
func (a *Arena[T]) All() iter.Seq2[Handle, T] {
	return func(yield func(Handle, T) bool) {
		for i := 1; i < len(a.slots); i++ {
			s := &a.slots[i]
			if !s.live {
				continue
			}
			if !yield(Handle{Index: uint32(i), Gen: s.gen}, s.value) {
				return
			}
		}
	}
}

// Links:

// Parent returns the parent of the given node, or [Nil].
func (a *Arena[T]) Parent(h Handle) Handle {
	if s := a.slot(h); s != nil {
		return s.parent
	}
	return Nil
}

// FirstChild returns the first child of the given node, or [Nil].
func (a *Arena[T]) FirstChild(h Handle) Handle {
	if s := a.slot(h); s != nil {
		return s.first
	}
	return Nil
}

// LastChild returns the last child of the given node, or [Nil].
func (a *Arena[T]) LastChild(h Handle) Handle {
	if s := a.slot(h); s != nil {
		return s.last
	}
	return Nil
}

// PrevSibling returns the previous sibling of the given node, or [Nil].
func (a *Arena[T]) PrevSibling(h Handle) Handle {
	if s := a.slot(h); s != nil {
		return s.prev
	}
	return Nil
}

// NextSibling returns the next sibling of the given node, or [Nil].
func (a *Arena[T]) NextSibling(h Handle) Handle {
	if s := a.slot(h); s != nil {
		return s.next
	}
	return Nil
}

// HasChildren returns whether the given node has any children.
func (a *Arena[T]) HasChildren(h Handle) bool {
	return !a.FirstChild(h).IsNil()
}

// Children returns an iterator over the direct children of the given node.
// The next sibling is read before yielding, so the current child may be
// removed during iteration.
func (a *Arena[T]) Children(h Handle) iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		c := a.FirstChild(h)
		for !c.IsNil() {
			nxt := a.NextSibling(c)
			if !yield(c) {
				return
			}
			c = nxt
		}
	}
}

// ChildList returns the direct children of the given node as a slice.
func (a *Arena[T]) ChildList(h Handle) []Handle {
	var kids []Handle
	for c := range a.Children(h) {
		kids = append(kids, c)
	}
	return kids
}

// NumChildren returns the number of direct children of the given node.
func (a *Arena[T]) NumChildren(h Handle) int {
	n := 0
	for range a.Children(h) {
		n++
	}
	return n
}

// Child returns the child at the given index, or [Nil] if the index
// is out of range.
func (a *Arena[T]) Child(h Handle, index int) Handle {
	if index < 0 {
		return Nil
	}
	i := 0
	for c := range a.Children(h) {
		if i == index {
			return c
		}
		i++
	}
	return Nil
}

// IndexInParent returns the index of the node within its parent's
// children, or -1 if it has no parent.
func (a *Arena[T]) IndexInParent(h Handle) int {
	if a.Parent(h).IsNil() {
		return -1
	}
	i := 0
	for c := a.PrevSibling(h); !c.IsNil(); c = a.PrevSibling(c) {
		i++
	}
	return i
}

// Adding and Inserting Children:

// checkInsert checks that the parent is valid and that the child is a
// valid, unparented node that is not an ancestor of the parent.
func (a *Arena[T]) checkInsert(parent, child Handle) error {
	if !a.Valid(parent) {
		return fmt.Errorf("tree: invalid parent handle %v", parent)
	}
	cs := a.slot(child)
	if cs == nil {
		return fmt.Errorf("tree: invalid child handle %v", child)
	}
	if !cs.parent.IsNil() {
		return fmt.Errorf("tree: node %v already has parent %v", child, cs.parent)
	}
	for p := parent; !p.IsNil(); p = a.Parent(p) {
		if p == child {
			return fmt.Errorf("tree: node %v can not be added under itself", child)
		}
	}
	return nil
}

func (a *Arena[T]) added(parent, child Handle) {
	if a.OnChange != nil {
		a.OnChange(Added, parent, child)
	}
}

// AppendChild adds the given unparented node at the end of the
// children of parent.
func (a *Arena[T]) AppendChild(parent, child Handle) error {
	if err := a.checkInsert(parent, child); err != nil {
		return err
	}
	ps, cs := a.slot(parent), a.slot(child)
	cs.parent = parent
	cs.prev = ps.last
	cs.next = Nil
	if ps.last.IsNil() {
		ps.first = child
	} else {
		a.slot(ps.last).next = child
	}
	ps.last = child
	a.added(parent, child)
	return nil
}

// PrependChild adds the given unparented node at the start of the
// children of parent.
func (a *Arena[T]) PrependChild(parent, child Handle) error {
	if err := a.checkInsert(parent, child); err != nil {
		return err
	}
	ps, cs := a.slot(parent), a.slot(child)
	cs.parent = parent
	cs.prev = Nil
	cs.next = ps.first
	if ps.first.IsNil() {
		ps.last = child
	} else {
		a.slot(ps.first).prev = child
	}
	ps.first = child
	a.added(parent, child)
	return nil
}

// InsertBefore adds the given unparented node as the sibling
// immediately before the given existing child.
func (a *Arena[T]) InsertBefore(sibling, child Handle) error {
	parent := a.Parent(sibling)
	if parent.IsNil() {
		return fmt.Errorf("tree: InsertBefore: sibling %v has no parent", sibling)
	}
	if err := a.checkInsert(parent, child); err != nil {
		return err
	}
	ps, ss, cs := a.slot(parent), a.slot(sibling), a.slot(child)
	cs.parent = parent
	cs.next = sibling
	cs.prev = ss.prev
	if ss.prev.IsNil() {
		ps.first = child
	} else {
		a.slot(ss.prev).next = child
	}
	ss.prev = child
	a.added(parent, child)
	return nil
}

// InsertAfter adds the given unparented node as the sibling
// immediately after the given existing child.
func (a *Arena[T]) InsertAfter(sibling, child Handle) error {
	parent := a.Parent(sibling)
	if parent.IsNil() {
		return fmt.Errorf("tree: InsertAfter: sibling %v has no parent", sibling)
	}
	if err := a.checkInsert(parent, child); err != nil {
		return err
	}
	ps, ss, cs := a.slot(parent), a.slot(sibling), a.slot(child)
	cs.parent = parent
	cs.prev = sibling
	cs.next = ss.next
	if ss.next.IsNil() {
		ps.last = child
	} else {
		a.slot(ss.next).prev = child
	}
	ss.next = child
	a.added(parent, child)
	return nil
}

// Removing Children:

// unlink detaches the child from its parent without notifying.
func (a *Arena[T]) unlink(child Handle) Handle {
	cs := a.slot(child)
	parent := cs.parent
	ps := a.slot(parent)
	if cs.prev.IsNil() {
		ps.first = cs.next
	} else {
		a.slot(cs.prev).next = cs.next
	}
	if cs.next.IsNil() {
		ps.last = cs.prev
	} else {
		a.slot(cs.next).prev = cs.prev
	}
	cs.parent, cs.prev, cs.next = Nil, Nil, Nil
	return parent
}

// RemoveChild unlinks the given child from the given parent. The child
// and its subtree stay alive and can be re-inserted or destroyed.
func (a *Arena[T]) RemoveChild(parent, child Handle) error {
	if !a.Valid(child) || a.Parent(child) != parent || parent.IsNil() {
		return fmt.Errorf("tree: node %v is not a child of %v", child, parent)
	}
	a.unlink(child)
	if a.OnChange != nil {
		a.OnChange(Removed, parent, child)
	}
	return nil
}

// RemoveChildren unlinks all children of the given node and returns them
// in their former order.
func (a *Arena[T]) RemoveChildren(parent Handle) []Handle {
	kids := a.ChildList(parent)
	for _, k := range kids {
		a.RemoveChild(parent, k)
	}
	return kids
}

// ReparentChildren moves all children of from to the end of the children
// of to, keeping their order.
func (a *Arena[T]) ReparentChildren(from, to Handle) error {
	if !a.Valid(to) {
		return fmt.Errorf("tree: invalid parent handle %v", to)
	}
	for p := to; !p.IsNil(); p = a.Parent(p) {
		if p == from {
			return fmt.Errorf("tree: can not move children of %v under its own descendant %v", from, to)
		}
	}
	for _, k := range a.RemoveChildren(from) {
		if err := a.AppendChild(to, k); err != nil {
			return err
		}
	}
	return nil
}

// Destroy unlinks the given node from its parent (reporting [Removed])
// and frees it together with its whole subtree. All handles into the
// subtree become invalid.
func (a *Arena[T]) Destroy(h Handle) {
	if !a.Valid(h) {
		return
	}
	if parent := a.Parent(h); !parent.IsNil() {
		a.RemoveChild(parent, h)
	}
	var doomed []Handle
	a.WalkDownPost(h, func(Handle) bool { return Continue }, func(n Handle) bool {
		doomed = append(doomed, n)
		return Continue
	})
	for _, n := range doomed {
		if a.OnDestroy != nil {
			a.OnDestroy(n)
		}
	}
	for _, n := range doomed {
		s := &a.slots[n.Index]
		var zv T
		s.value = zv
		s.live = false
		s.links = links{}
		a.free = append(a.free, n.Index)
		a.count--
	}
}
