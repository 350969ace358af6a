// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package player

import (
	"github.com/thomasgoedertier/qt3d-runtime-sub001/graph"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

// Host is the engine a player runs in. It receives the actions that the
// player can not carry out itself.
type Host interface {

	// CallBehavior calls the named handler of the behavior script of
	// the given object of the given presentation.
	CallBehavior(pres *Presentation, obj tree.Handle, handler string, args []graph.HandlerArgument)

	// Signal emits the named signal from the given object.
	Signal(pres *Presentation, obj tree.Handle, name string)
}

// MeshLoader loads the mesh data models refer to.
type MeshLoader interface {
	LoadMesh(ref graph.MeshRef) error
}
