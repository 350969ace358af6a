// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meta

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Effect is the metadata of a post-processing effect class.
type Effect struct {
	Properties []*PropertyDef
	Shaders    []Shader
	SharedCode string
	Buffers    []Buffer
	Passes     []Pass
}

// Property returns the named property or nil.
func (ef *Effect) Property(name string) *PropertyDef {
	return findProperty(ef.Properties, name)
}

type xmlEffect struct {
	MetaData xmlMetaData `xml:"MetaData"`
	Shaders  xmlShaders  `xml:"Shaders"`
	Passes   xmlPasses   `xml:"Passes"`
}

// ParseEffect parses an effect document:
//
//	<Effect>
//	  <MetaData><Property name="amount" type="Float" default="0.5"/></MetaData>
//	  <Shaders><Shader name="main"><FragmentShader>...</FragmentShader></Shader></Shaders>
//	  <Passes>
//	    <Buffer name="tmp" format="rgba" size="0.5"/>
//	    <Pass shader="main" output="tmp"><BufferInput value="[source]"/></Pass>
//	  </Passes>
//	</Effect>
func ParseEffect(r io.Reader) (*Effect, error) {
	var doc xmlEffect
	if err := newDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("meta: effect: %w", err)
	}
	pds, err := propertyDefs(doc.MetaData.Properties)
	if err != nil {
		return nil, fmt.Errorf("meta: effect: %w", err)
	}
	ef := &Effect{Properties: pds, SharedCode: strings.TrimSpace(doc.Shaders.Shared), Shaders: shaders(doc.Shaders.Shaders)}
	for _, el := range doc.Passes.Elements {
		switch el.XMLName.Local {
		case "Buffer":
			b := Buffer{Name: el.attr("name"), Type: el.attr("type"), Format: el.attr("format"),
				Filter: el.attr("filter"), Wrap: el.attr("wrap"), Lifetime: el.attr("lifetime"), Size: 1}
			if s := el.attr("size"); s != "" {
				f, err := strconv.ParseFloat(s, 32)
				if err != nil {
					return nil, fmt.Errorf("meta: effect buffer %q: size %q: %w", b.Name, s, err)
				}
				b.Size = float32(f)
			}
			ef.Buffers = append(ef.Buffers, b)
		case "Pass":
			ef.Passes = append(ef.Passes, el.pass())
		}
	}
	for _, p := range ef.Passes {
		if p.Shader != "" && !ef.hasShader(p.Shader) {
			return nil, fmt.Errorf("meta: effect pass refers to unknown shader %q", p.Shader)
		}
	}
	return ef, nil
}

func (ef *Effect) hasShader(name string) bool {
	for _, sh := range ef.Shaders {
		if sh.Name == name {
			return true
		}
	}
	return false
}
