// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package meta parses the metadata documents that describe object
// properties: the data model table giving the type, default and
// animatability of every property of every object kind, and the
// auxiliary documents of custom materials, effects and behaviors,
// whose property sets are only known at run time.
package meta

import (
	"encoding/xml"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
)

// PropertyDef describes one property of an object kind or of a
// custom material, effect or behavior class.
type PropertyDef struct {

	// Name is the property name used in documents and change lists.
	Name string

	// FormalName is the human readable name, if any.
	FormalName string

	// Type is the declared value type.
	Type props.Type

	// Enum is the list of allowed values of a StringList property.
	Enum []string

	// Default is the default value, as text.
	Default string

	// Animatable is whether animation tracks may target the property.
	Animatable bool

	// Controllable is whether data inputs may control the property.
	Controllable bool

	// Min and Max give the range of numeric properties if HasRange.
	Min, Max float32
	HasRange bool

	// Description is documentation text.
	Description string
}

// Components returns the number of numeric components of the property.
func (pd *PropertyDef) Components() int {
	return pd.Type.Components()
}

// DefaultValue returns the parsed default value. An unparseable default
// yields the zero value of the type.
func (pd *PropertyDef) DefaultValue() props.Value {
	v, err := props.Parse(pd.Type, pd.Default)
	if err != nil {
		return props.Zero(pd.Type)
	}
	return v
}

// Parse converts the given text to a value of the property type,
// checking enumerated values against [PropertyDef.Enum].
func (pd *PropertyDef) Parse(text string) (props.Value, error) {
	if pd.Type == props.StringList && len(pd.Enum) > 0 && !slices.Contains(pd.Enum, text) {
		return props.Value{}, &props.ConversionError{Type: pd.Type, Text: text,
			Err: fmt.Errorf("not one of %s", strings.Join(pd.Enum, ", "))}
	}
	return props.Parse(pd.Type, text)
}

// xmlProperty is the document form of a property shared by all
// metadata documents.
type xmlProperty struct {
	Name         string `xml:"name,attr"`
	FormalName   string `xml:"formalName,attr"`
	Type         string `xml:"type,attr"`
	Default      string `xml:"default,attr"`
	List         string `xml:"list,attr"`
	Animatable   string `xml:"animatable,attr"`
	Controllable string `xml:"controllable,attr"`
	Min          string `xml:"min,attr"`
	Max          string `xml:"max,attr"`
	Description  string `xml:"description,attr"`
}

// toDef converts the document form. animatable gives the default for
// properties that do not say.
func (xp *xmlProperty) toDef(animatable bool) (*PropertyDef, error) {
	if xp.Name == "" {
		return nil, fmt.Errorf("meta: property without a name")
	}
	pd := &PropertyDef{Name: xp.Name, FormalName: xp.FormalName, Default: xp.Default, Description: xp.Description}
	tname := xp.Type
	if tname == "" {
		tname = "Float"
	}
	typ, err := props.ParseType(tname)
	if err != nil {
		return nil, fmt.Errorf("meta: property %q: %w", xp.Name, err)
	}
	pd.Type = typ
	if xp.List != "" {
		pd.Enum = splitList(xp.List)
		if pd.Type == props.String {
			pd.Type = props.StringList
		}
		if pd.Default == "" && len(pd.Enum) > 0 {
			pd.Default = pd.Enum[0]
		}
	}
	pd.Animatable = animatable && typ.Components() > 0
	if xp.Animatable != "" {
		pd.Animatable, _ = props.ParseBool(xp.Animatable)
	}
	pd.Controllable = true
	if xp.Controllable != "" {
		pd.Controllable, _ = props.ParseBool(xp.Controllable)
	}
	if xp.Min != "" || xp.Max != "" {
		pd.HasRange = true
		if f, err := strconv.ParseFloat(xp.Min, 32); err == nil {
			pd.Min = float32(f)
		}
		if f, err := strconv.ParseFloat(xp.Max, 32); err == nil {
			pd.Max = float32(f)
		}
	}
	return pd, nil
}

// splitList splits an enumeration list on ':' (or ',' when there is no ':').
func splitList(s string) []string {
	sep := ":"
	if !strings.Contains(s, sep) {
		sep = ","
	}
	parts := strings.Split(s, sep)
	res := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}

// newDecoder returns an xml decoder configured for metadata documents.
func newDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel
	return d
}
