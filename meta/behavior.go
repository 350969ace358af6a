// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meta

import (
	"bytes"
	"fmt"
	"io"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
)

// Handler is a function a behavior exposes to actions.
type Handler struct {
	Name        string
	FormalName  string
	Category    string
	Description string
	Arguments   []Argument
}

// Argument is an argument of a behavior handler.
type Argument struct {
	Name       string
	FormalName string
	Type       props.Type
	Default    string
}

// Behavior is the metadata of a behavior script class. The script
// itself is opaque; only its metadata header is read.
type Behavior struct {
	Properties []*PropertyDef
	Handlers   []Handler
	Events     []string
}

// Property returns the named property or nil.
func (bh *Behavior) Property(name string) *PropertyDef {
	return findProperty(bh.Properties, name)
}

// Handler returns the named handler or nil.
func (bh *Behavior) Handler(name string) *Handler {
	for i := range bh.Handlers {
		if bh.Handlers[i].Name == name {
			return &bh.Handlers[i]
		}
	}
	return nil
}

var (
	headerStart = []byte("/*[[")
	headerEnd   = []byte("]]*/")
)

type xmlArgument struct {
	Name       string `xml:"name,attr"`
	FormalName string `xml:"formalName,attr"`
	Type       string `xml:"type,attr"`
	Default    string `xml:"default,attr"`
}

type xmlHandler struct {
	Name        string        `xml:"name,attr"`
	FormalName  string        `xml:"formalName,attr"`
	Category    string        `xml:"category,attr"`
	Description string        `xml:"description,attr"`
	Arguments   []xmlArgument `xml:"Argument"`
}

type xmlEvent struct {
	Name string `xml:"name,attr"`
}

type xmlBehavior struct {
	Properties []xmlProperty `xml:"Property"`
	Handlers   []xmlHandler  `xml:"Handler"`
	Events     []xmlEvent    `xml:"Event"`
}

// ParseBehavior reads the metadata header of a behavior script, which
// is a comment of the form
//
//	/*[[
//	  <Property name="speed" type="Float" default="1"/>
//	  <Handler name="start" formalName="Start"/>
//	  <Event name="onStarted"/>
//	]]*/
//
// A script without a header has no metadata.
func ParseBehavior(r io.Reader) (*Behavior, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	bh := &Behavior{}
	start := bytes.Index(src, headerStart)
	if start < 0 {
		return bh, nil
	}
	body := src[start+len(headerStart):]
	end := bytes.Index(body, headerEnd)
	if end < 0 {
		return nil, fmt.Errorf("meta: behavior: unterminated metadata header")
	}
	var buf bytes.Buffer
	buf.WriteString("<Behavior>")
	buf.Write(body[:end])
	buf.WriteString("</Behavior>")
	var doc xmlBehavior
	if err := newDecoder(&buf).Decode(&doc); err != nil {
		return nil, fmt.Errorf("meta: behavior: %w", err)
	}
	// behavior properties are not animated
	for i := range doc.Properties {
		pd, err := doc.Properties[i].toDef(false)
		if err != nil {
			return nil, fmt.Errorf("meta: behavior: %w", err)
		}
		bh.Properties = append(bh.Properties, pd)
	}
	for _, xh := range doc.Handlers {
		h := Handler{Name: xh.Name, FormalName: xh.FormalName, Category: xh.Category, Description: xh.Description}
		for _, xa := range xh.Arguments {
			typ := props.String
			if xa.Type != "" {
				if typ, err = props.ParseType(xa.Type); err != nil {
					return nil, fmt.Errorf("meta: behavior handler %q: %w", xh.Name, err)
				}
			}
			h.Arguments = append(h.Arguments, Argument{Name: xa.Name, FormalName: xa.FormalName, Type: typ, Default: xa.Default})
		}
		bh.Handlers = append(bh.Handlers, h)
	}
	for _, ev := range doc.Events {
		bh.Events = append(bh.Events, ev.Name)
	}
	return bh, nil
}
