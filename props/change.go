// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"iter"
	"slices"
	"strings"
)

// Change is a single property delta: the name of a property and its
// new value in document text form. A Change with an empty name is
// invalid; setter helpers return an invalid Change when the new value
// equals the old one, and [ChangeList.Append] silently drops them.
type Change struct {
	Name  string
	Value string
}

// NewChange returns a change of the given property to the given value.
func NewChange(name string, v Value) Change {
	return Change{Name: name, Value: v.String()}
}

// Valid returns whether the change has a property name.
func (c Change) Valid() bool {
	return c.Name != ""
}

// Flags are coarse categories of the properties touched by a
// [ChangeList], computed while appending, so that consumers can
// skip work for categories that are not affected.
type Flags int64

const (
	// TransformChanges is set when position, rotation, scale, pivot,
	// rotation order or orientation change.
	TransformChanges Flags = 1 << iota

	// OpacityChanges is set when opacity changes.
	OpacityChanges

	// VisibilityChanges is set when eyeball changes.
	VisibilityChanges

	// BlendModeChanges is set when a blend mode changes.
	BlendModeChanges

	// ShadowAOChanges is set when a shadow or ambient occlusion
	// property changes.
	ShadowAOChanges

	// TextTextureChanges is set when a property that the rasterized
	// texture of a text object depends on changes.
	TextTextureChanges
)

// Has returns whether all of the given flags are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

var transformProps = []string{"position", "rotation", "scale", "pivot", "rotationorder", "orientation"}

var textTextureProps = []string{"textstring", "textcolor", "font", "size", "leading", "tracking",
	"boundingbox", "wordwrap", "elide", "horzalign", "vertalign", "enableacceleratedfont"}

// FlagsFor returns the category flags for the given property name.
// Sub-property names such as position.x count as their parent.
func FlagsFor(name string) Flags {
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	switch {
	case slices.Contains(transformProps, name):
		return TransformChanges
	case name == "opacity":
		return OpacityChanges
	case name == "eyeball":
		return VisibilityChanges
	case name == "blendmode" || name == "blendtype":
		return BlendModeChanges
	case name == "castshadow" || strings.HasPrefix(name, "shdw") || strings.HasPrefix(name, "shadow") || strings.HasPrefix(name, "ao"):
		return ShadowAOChanges
	case slices.Contains(textTextureProps, name):
		return TextTextureChanges
	}
	return 0
}

// ChangeList is an insertion ordered list of property changes applied
// and notified together. It is append-only: appending a change for a
// property that is already on the list keeps both entries, and when the
// list is applied in order the last one wins. Use [ChangeList.Replace]
// for set semantics. The zero value is an empty list.
type ChangeList struct {
	changes []Change
	keys    map[string]int
	flags   Flags
}

// NewChangeList returns a list holding the given changes, skipping
// invalid ones.
func NewChangeList(changes ...Change) *ChangeList {
	cl := &ChangeList{}
	for _, c := range changes {
		cl.Append(c)
	}
	return cl
}

// Append adds the change at the end of the list. Invalid changes are
// dropped. It returns whether the change was added.
func (cl *ChangeList) Append(c Change) bool {
	if !c.Valid() {
		return false
	}
	if cl.keys == nil {
		cl.keys = map[string]int{}
	}
	cl.changes = append(cl.changes, c)
	cl.keys[c.Name]++
	cl.flags |= FlagsFor(c.Name)
	return true
}

// AppendList appends all changes of the given list.
func (cl *ChangeList) AppendList(o *ChangeList) {
	for _, c := range o.All() {
		cl.Append(c)
	}
}

// Len returns the number of changes on the list, counting duplicates.
func (cl *ChangeList) Len() int {
	if cl == nil {
		return 0
	}
	return len(cl.changes)
}

// IsEmpty returns whether there are no changes.
func (cl *ChangeList) IsEmpty() bool {
	return cl.Len() == 0
}

// At returns the change at the given index.
func (cl *ChangeList) At(i int) Change {
	return cl.changes[i]
}

// Flags returns the union of the category flags of all changes.
func (cl *ChangeList) Flags() Flags {
	if cl == nil {
		return 0
	}
	return cl.flags
}

// Has returns whether there is a change for the given property.
func (cl *ChangeList) Has(name string) bool {
	if cl == nil {
		return false
	}
	return cl.keys[name] > 0
}

// Keys returns the distinct property names in order of first appearance.
func (cl *ChangeList) Keys() []string {
	if cl == nil {
		return nil
	}
	keys := make([]string, 0, len(cl.keys))
	seen := make(map[string]bool, len(cl.keys))
	for _, c := range cl.changes {
		if !seen[c.Name] {
			seen[c.Name] = true
			keys = append(keys, c.Name)
		}
	}
	return keys
}

// Value returns the last value set for the given property.
func (cl *ChangeList) Value(name string) (string, bool) {
	if !cl.Has(name) {
		return "", false
	}
	for i := len(cl.changes) - 1; i >= 0; i-- {
		if cl.changes[i].Name == name {
			return cl.changes[i].Value, true
		}
	}
	return "", false
}

// All returns an iterator over the index and change of every entry,
// in order.
func (cl *ChangeList) All() iter.Seq2[int, Change] {
	return func(yield func(int, Change) bool) {
		if cl == nil {
			return
		}
		for i, c := range cl.changes {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Take removes every change for the given property and returns the
// last of them.
func (cl *ChangeList) Take(name string) (Change, bool) {
	c := Change{}
	if !cl.Has(name) {
		return c, false
	}
	v, _ := cl.Value(name)
	c = Change{Name: name, Value: v}
	cl.changes = slices.DeleteFunc(cl.changes, func(e Change) bool { return e.Name == name })
	cl.recompute()
	return c, true
}

// Replace removes any change for the property of the given change and
// appends the given change, giving set semantics.
func (cl *ChangeList) Replace(c Change) {
	if !c.Valid() {
		return
	}
	cl.Take(c.Name)
	cl.Append(c)
}

// Filter returns a new list with the changes for which keep returns true.
func (cl *ChangeList) Filter(keep func(c Change) bool) *ChangeList {
	res := &ChangeList{}
	for _, c := range cl.All() {
		if keep(c) {
			res.Append(c)
		}
	}
	return res
}

// Clone returns a copy of the list.
func (cl *ChangeList) Clone() *ChangeList {
	return cl.Filter(func(Change) bool { return true })
}

func (cl *ChangeList) recompute() {
	cl.keys = map[string]int{}
	cl.flags = 0
	for _, c := range cl.changes {
		cl.keys[c.Name]++
		cl.flags |= FlagsFor(c.Name)
	}
}

// String returns the list as name=value pairs.
func (cl *ChangeList) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range cl.All() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Name)
		b.WriteByte(':')
		b.WriteByte(' ')
		b.WriteString(c.Value)
	}
	b.WriteByte('}')
	return b.String()
}
