// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"fmt"
	"strings"
)

// Kind is the closed set of concrete object kinds.
type Kind int32

const (
	// KindAny matches every kind in lookups; no object has it.
	KindAny Kind = iota
	KindScene
	KindSlide
	KindImage
	KindDefaultMaterial
	KindReferencedMaterial
	KindCustomMaterial
	KindEffect
	KindBehavior
	KindLayer
	KindCamera
	KindLight
	KindModel
	KindGroup
	KindText
	KindComponent
	KindAlias

	// KindsN is the number of kinds.
	KindsN
)

var kindNames = [KindsN]string{"AnyObject", "Scene", "Slide", "Image", "DefaultMaterial",
	"ReferencedMaterial", "CustomMaterial", "Effect", "Behavior", "Layer", "Camera", "Light",
	"Model", "Group", "Text", "Component", "Alias"}

// String returns the kind name, which is also its document element name
// and its data model type name.
func (k Kind) String() string {
	if k < 0 || k >= KindsN {
		return fmt.Sprintf("Kind(%d)", int32(k))
	}
	return kindNames[k]
}

// ParseKind returns the kind for the given document element name.
// Material is accepted as a synonym of DefaultMaterial.
func ParseKind(name string) (Kind, error) {
	for i := KindScene; i < KindsN; i++ {
		if kindNames[i] == name {
			return i, nil
		}
	}
	if name == "Material" {
		return KindDefaultMaterial, nil
	}
	return KindAny, fmt.Errorf("graph: unknown object kind %q", name)
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsNode returns whether objects of the kind carry a transform.
func (k Kind) IsNode() bool {
	switch k {
	case KindLayer, KindCamera, KindLight, KindModel, KindGroup, KindText, KindComponent, KindAlias:
		return true
	}
	return false
}

// IsMaterial returns whether objects of the kind can be the material of
// a model.
func (k Kind) IsMaterial() bool {
	return k == KindDefaultMaterial || k == KindReferencedMaterial || k == KindCustomMaterial
}

// IsDynamic returns whether objects of the kind get properties from
// class metadata that is only known at run time.
func (k Kind) IsDynamic() bool {
	return k == KindCustomMaterial || k == KindEffect || k == KindBehavior
}

// Matches returns whether an object of kind k satisfies a lookup for
// the given kinds. No kinds, or [KindAny], matches everything.
func (k Kind) Matches(kinds ...Kind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, o := range kinds {
		if o == KindAny || o == k {
			return true
		}
	}
	return false
}
