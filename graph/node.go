// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"github.com/chewxy/math32"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
)

// Noder is implemented by the kinds that embed [Node].
type Noder interface {
	Object
	AsNode() *Node
}

// AsNode returns the node of the given object, or nil if the object is
// not a node.
func AsNode(obj Object) *Node {
	if nd, ok := obj.(Noder); ok {
		return nd.AsNode()
	}
	return nil
}

// Node is the part of an object that has a transform in the scene:
// layers, cameras, lights, models, groups, texts, components and aliases.
type Node struct {
	Base

	// Eyeball is whether the node and its subtree are active.
	Eyeball bool `uip:"eyeball"`

	// IgnoresParent is whether the transform of the parent is ignored.
	IgnoresParent bool `uip:"ignoresparent"`

	// Position, Rotation (euler angles in degrees), Scale and Pivot
	// make up the local transform.
	Position props.Vector3 `uip:"position"`
	Rotation props.Vector3 `uip:"rotation"`
	Scale    props.Vector3 `uip:"scale"`
	Pivot    props.Vector3 `uip:"pivot"`

	// Opacity is in percent.
	Opacity float32 `uip:"opacity"`

	RotationOrder RotationOrder `uip:"rotationorder"`
	Orientation   Orientation   `uip:"orientation"`

	// BoneID is the skeleton joint id, or -1.
	BoneID int32 `uip:"boneid"`
}

// AsNode implements [Noder].
func (nd *Node) AsNode() *Node { return nd }

func (nd *Node) defaults() {
	nd.Eyeball = true
	nd.Scale = props.Vec3(1, 1, 1)
	nd.Opacity = 100
	nd.RotationOrder = RotYXZ
	nd.BoneID = -1
}

// Mat4 is a 4x4 column-major transform matrix.
type Mat4 [16]float32

// Identity4 returns the identity matrix.
func Identity4() Mat4 {
	return Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for c := 0; c < 4; c++ {
		for rw := 0; rw < 4; rw++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += m[k*4+rw] * o[c*4+k]
			}
			r[c*4+rw] = s
		}
	}
	return r
}

// MulPoint transforms the given point.
func (m Mat4) MulPoint(p props.Vector3) props.Vector3 {
	return props.Vector3{
		X: m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		Y: m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		Z: m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

func translation4(v props.Vector3) Mat4 {
	m := Identity4()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

func scaling4(v props.Vector3) Mat4 {
	m := Identity4()
	m[0], m[5], m[10] = v.X, v.Y, v.Z
	return m
}

// rotation4 returns the rotation about the given axis (0=X, 1=Y, 2=Z)
// by the given angle in degrees.
func rotation4(axis int, deg float32) Mat4 {
	s, c := math32.Sincos(deg * math32.Pi / 180)
	m := Identity4()
	switch axis {
	case 0:
		m[5], m[6], m[9], m[10] = c, s, -s, c
	case 1:
		m[0], m[2], m[8], m[10] = c, -s, s, c
	default:
		m[0], m[1], m[4], m[5] = c, s, -s, c
	}
	return m
}

// axes returns the axes of the rotation order in application order,
// and whether the rotation is intrinsic.
func (ro RotationOrder) axes() ([3]int, bool) {
	name := ro.String()
	var ax [3]int
	for i := 0; i < 3; i++ {
		ax[i] = int(name[i] - 'X')
	}
	return ax, len(name) == 4
}

// RotationMatrix returns the rotation part of the local transform.
func (nd *Node) RotationMatrix() Mat4 {
	ax, intrinsic := nd.RotationOrder.axes()
	r := Identity4()
	for _, a := range ax {
		rm := rotation4(a, nd.Rotation.Dim(a))
		if intrinsic {
			r = r.Mul(rm)
		} else {
			r = rm.Mul(r)
		}
	}
	return r
}

// LocalTransform returns the transform of the node relative to its
// parent: translation * rotation * scale * -pivot. Left handed nodes
// are converted to the right handed system by mirroring z.
func (nd *Node) LocalTransform() Mat4 {
	m := translation4(nd.Position).Mul(nd.RotationMatrix()).Mul(scaling4(nd.Scale)).
		Mul(translation4(props.Vec3(-nd.Pivot.X, -nd.Pivot.Y, -nd.Pivot.Z)))
	if nd.Orientation == LeftHanded {
		flip := scaling4(props.Vec3(1, 1, -1))
		m = flip.Mul(m).Mul(flip)
	}
	return m
}
