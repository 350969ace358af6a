// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"strconv"
	"strings"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/keylist"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

// Object is implemented by the concrete kinds of the object model, all
// of which embed [Base]. The set of kinds is closed.
type Object interface {

	// AsBase returns the part of the object common to all kinds.
	AsBase() *Base

	isObject()
}

// Base is the part of an object common to all kinds.
type Base struct {

	// ID is the unique id of the object in its presentation.
	ID string

	// Name is the human readable name, used in paths.
	Name string `uip:"name"`

	// StartTime and EndTime give the lifetime window of the object
	// in milliseconds on the timeline of its slide.
	StartTime int32 `uip:"starttime"`
	EndTime   int32 `uip:"endtime"`

	// ControlledProperty is the data input binding specification,
	// pairs of data input and property names, such as
	// "$Speed velocity $Label textstring".
	ControlledProperty string `uip:"controlledproperty"`

	// Controlled are the parsed data input bindings.
	Controlled []ControlledProperty

	// Dynamic holds the properties that are not struct fields: the
	// class properties of custom materials, effects and behaviors,
	// and custom properties set at run time.
	Dynamic keylist.List[string, props.Value]

	// MasterRollback are the changes that restore the master slide
	// state of the properties that child slides change.
	MasterRollback *props.ChangeList

	// Attached is storage for the scene builder of the renderer; it is
	// not interpreted here.
	Attached any

	kind      Kind
	handle    tree.Handle
	observers registry[PropertyEvent]
}

// AsBase implements [Object].
func (b *Base) AsBase() *Base { return b }

func (b *Base) isObject() {}

// Kind returns the kind of the object.
func (b *Base) Kind() Kind { return b.kind }

// Handle returns the handle of the object in its presentation.
func (b *Base) Handle() tree.Handle { return b.handle }

// Subscribe registers a function called by [Presentation.NotifyChanges]
// for every notified change list of the object.
func (b *Base) Subscribe(fn func(ev PropertyEvent)) Subscription {
	return b.observers.add(fn)
}

// Unsubscribe removes an observer. It returns false if the
// subscription was not found.
func (b *Base) Unsubscribe(s Subscription) bool {
	return b.observers.remove(s)
}

// NumObservers returns the number of registered property observers.
func (b *Base) NumObservers() int {
	return b.observers.len()
}

// Ref is a reference to another object. It holds the document text of
// the reference (#id, a name or a slash path) until it is resolved to a
// handle by [Presentation.ResolveReferences].
type Ref struct {

	// Target is the reference text.
	Target string

	// Handle is the resolved object, or nil.
	Handle tree.Handle
}

// IsSet returns whether the reference has a target.
func (r Ref) IsSet() bool { return r.Target != "" }

// IsResolved returns whether the reference has been resolved.
func (r Ref) IsResolved() bool { return !r.Handle.IsNil() }

func (r Ref) String() string { return r.Target }

// UnmarshalText implements [encoding.TextUnmarshaler]. It unresolves
// the reference.
func (r *Ref) UnmarshalText(text []byte) error {
	r.Target = strings.TrimSpace(string(text))
	r.Handle = tree.Nil
	return nil
}

// MeshRef is the mesh of a model: either a built-in primitive (#Cube)
// or a part of a mesh file (path#part).
type MeshRef struct {

	// Primitive is the name of a built-in primitive, without the #.
	Primitive string

	// Path is the mesh file path.
	Path string

	// Part is the index of the mesh in a multi-mesh file, or -1 to let
	// the loader choose.
	Part int
}

// IsPrimitive returns whether the mesh is a built-in primitive.
func (m MeshRef) IsPrimitive() bool { return m.Primitive != "" }

// IsZero returns whether no mesh is set.
func (m MeshRef) IsZero() bool { return m.Primitive == "" && m.Path == "" }

// AssetPath returns the file the mesh is loaded from, with primitives
// mapping to the bundled primitive meshes.
func (m MeshRef) AssetPath() string {
	if m.IsPrimitive() {
		return "primitives/" + m.Primitive + ".mesh"
	}
	return m.Path
}

func (m MeshRef) String() string {
	switch {
	case m.IsPrimitive():
		return "#" + m.Primitive
	case m.Part >= 0 && m.Path != "":
		return m.Path + "#" + strconv.Itoa(m.Part)
	}
	return m.Path
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (m *MeshRef) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	*m = MeshRef{Part: -1}
	if s == "" {
		return nil
	}
	if s[0] == '#' {
		m.Primitive = s[1:]
		return nil
	}
	m.Path = s
	if i := strings.LastIndexByte(s, '#'); i > 0 {
		part, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return err
		}
		m.Path, m.Part = s[:i], part
	}
	return nil
}
