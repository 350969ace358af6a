// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph provides the object model of a presentation: a tree of
// typed objects (scene, layers, cameras, lights, models, materials,
// images, slides, ...) held in an arena, the protocol by which property
// changes are applied to objects and made visible to observers, the
// slide state machine with its master rollback lists, animation tracks,
// actions and the data input map.
//
// Objects are addressed by [tree.Handle]. Every concrete kind embeds
// [Base]; the properties of each kind are the struct fields carrying
// a uip tag, which gives the property name used in documents and
// change lists:
//
//	type Model struct {
//		Node
//		Mesh MeshRef `uip:"sourcepath"`
//	}
//
// A tag may carry options after the name: required marks a reference
// that must resolve, and image or material restrict the kind of the
// referenced object.
//
// The graph is not safe for concurrent use: parsing, slide switches and
// property updates are expected to run on one goroutine.
package graph

import (
	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/errors"
)

var (
	// ErrInvalidHandle is returned for a handle that does not refer to
	// a live object of the presentation.
	ErrInvalidHandle = errors.New("graph: invalid handle")

	// ErrNotFound is returned when an id, name or path does not resolve.
	ErrNotFound = errors.New("graph: object not found")

	// ErrNoProperty is returned for a property the object does not have.
	ErrNoProperty = errors.New("graph: no such property")

	// ErrDuplicateID is returned when an id is registered twice.
	ErrDuplicateID = errors.New("graph: duplicate id")

	// ErrKindMismatch is returned when a reference resolves to an
	// object of a kind the referencing property does not accept.
	ErrKindMismatch = errors.New("graph: object has the wrong kind")
)
