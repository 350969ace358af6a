// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"slices"
	"strings"

	"github.com/chewxy/math32"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

// DataInputType is the value type of a data input.
type DataInputType int32

const (
	DataInputString DataInputType = iota
	DataInputRangedNumber
	DataInputVector2
	DataInputVector3
	DataInputVariant
	DataInputFloat
	DataInputBoolean
)

var dataInputTypeNames = []string{"String", "Ranged Number", "Vector2", "Vector3", "Variant", "Float", "Boolean"}

func (e DataInputType) String() string { return enumString(dataInputTypeNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler]. It also accepts
// the names without spaces.
func (e *DataInputType) UnmarshalText(text []byte) error {
	if strings.EqualFold(strings.TrimSpace(string(text)), "RangedNumber") {
		*e = DataInputRangedNumber
		return nil
	}
	return enumParse(dataInputTypeNames, text, e)
}

// DataInputEntry is the declaration of a data input: a named external
// parameter that drives the properties bound to it.
type DataInputEntry struct {
	Name string
	Type DataInputType

	// Min and Max are the range of a ranged number, if HasRange.
	Min, Max float32
	HasRange bool

	// Metadata are free form key value pairs.
	Metadata map[string]string
}

// Clamp returns the value clamped to the range of the entry.
func (e *DataInputEntry) Clamp(v float32) float32 {
	if !e.HasRange {
		return v
	}
	return math32.Max(e.Min, math32.Min(e.Max, v))
}

// ControlledProperty is one data input binding of an object.
type ControlledProperty struct {

	// DataInput is the name of the data input, without the $.
	DataInput string

	// Property is the controlled property of the object, or one of
	// the special targets @slide and @timeline.
	Property string
}

// DataInputTarget is an object property driven by a data input.
type DataInputTarget struct {
	Object   tree.Handle
	Property string
}

// ParseControlledProperties parses a data input binding specification
// of the form "$Input property $Other property2".
func ParseControlledProperties(spec string) []ControlledProperty {
	fields := strings.Fields(spec)
	var cps []ControlledProperty
	for i := 0; i+1 < len(fields); i += 2 {
		cps = append(cps, ControlledProperty{DataInput: strings.TrimPrefix(fields[i], "$"), Property: fields[i+1]})
	}
	return cps
}

// SetControlledProperties replaces the data input bindings of the
// object with the given specification and updates the data input map.
func (p *Presentation) SetControlledProperties(h tree.Handle, spec string) {
	b := p.Base(h)
	if b == nil {
		return
	}
	p.unregisterControlled(h)
	b.ControlledProperty = spec
	b.Controlled = ParseControlledProperties(spec)
	for _, cp := range b.Controlled {
		p.dataInputMap[cp.DataInput] = append(p.dataInputMap[cp.DataInput], DataInputTarget{Object: h, Property: cp.Property})
	}
}

// unregisterControlled removes the entries of the object from the
// data input map.
func (p *Presentation) unregisterControlled(h tree.Handle) {
	for name, targets := range p.dataInputMap {
		targets = slices.DeleteFunc(targets, func(t DataInputTarget) bool { return t.Object == h })
		if len(targets) == 0 {
			delete(p.dataInputMap, name)
		} else {
			p.dataInputMap[name] = targets
		}
	}
}

// DataInputTargets returns the object properties bound to the named
// data input.
func (p *Presentation) DataInputTargets(name string) []DataInputTarget {
	return slices.Clone(p.dataInputMap[name])
}

// BoundDataInputs returns the names of all data inputs that have
// bindings, sorted.
func (p *Presentation) BoundDataInputs() []string {
	names := make([]string, 0, len(p.dataInputMap))
	for n := range p.dataInputMap {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
