// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meta

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Shader is one shader program of a custom material or effect. The
// sources are kept as text and are not interpreted.
type Shader struct {

	// Name identifies the shader for passes that refer to it.
	Name string

	// Shared is code shared by all stages of the program.
	Shared string

	// Stages maps a stage name (Vertex, Fragment, Geometry, ...)
	// to its source.
	Stages map[string]string
}

// Pass is one render pass of a custom material or effect. Commands
// are the names of the child elements in order, with their attributes.
type Pass struct {
	Shader   string
	Input    string
	Output   string
	Format   string
	Commands []Command
}

// Command is a pass command such as Blending, BufferInput or SetParam.
type Command struct {
	Name  string
	Attrs map[string]string
}

// Buffer is an intermediate render target declared by an effect.
type Buffer struct {
	Name     string
	Type     string
	Format   string
	Filter   string
	Wrap     string
	Size     float32
	Lifetime string
}

// CustomMaterial is the metadata of a custom material class.
type CustomMaterial struct {
	Name       string
	Version    string
	Properties []*PropertyDef
	Shaders    []Shader
	SharedCode string
	Passes     []Pass

	// ShaderKey and LayerCount are the pass-level render hints.
	ShaderKey  int
	LayerCount int
}

// Property returns the named property or nil.
func (cm *CustomMaterial) Property(name string) *PropertyDef {
	return findProperty(cm.Properties, name)
}

func findProperty(pds []*PropertyDef, name string) *PropertyDef {
	for _, pd := range pds {
		if pd.Name == name {
			return pd
		}
	}
	return nil
}

type xmlMetaData struct {
	Properties []xmlProperty `xml:"Property"`
}

type xmlShader struct {
	Name   string   `xml:"name,attr"`
	Shared string   `xml:"Shared"`
	Stages []xmlAny `xml:",any"`
}

type xmlShaders struct {
	Shared  string      `xml:"Shared"`
	Shaders []xmlShader `xml:"Shader"`
}

// xmlAny captures an arbitrary element with its attributes, text and
// children.
type xmlAny struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []xmlAny   `xml:",any"`
}

type xmlPasses struct {
	Elements []xmlAny `xml:",any"`
}

type xmlMaterial struct {
	Name     string      `xml:"name,attr"`
	Version  string      `xml:"version,attr"`
	MetaData xmlMetaData `xml:"MetaData"`
	Shaders  xmlShaders  `xml:"Shaders"`
	Passes   xmlPasses   `xml:"Passes"`
}

// ParseCustomMaterial parses a custom material document:
//
//	<Material name="copper" version="1.0">
//	  <MetaData>
//	    <Property name="roughness" type="Float" default="0.3" min="0" max="1"/>
//	  </MetaData>
//	  <Shaders><Shader><Fragment>...</Fragment></Shader></Shaders>
//	  <Passes><ShaderKey value="4"/><Pass>...</Pass></Passes>
//	</Material>
func ParseCustomMaterial(r io.Reader) (*CustomMaterial, error) {
	var doc xmlMaterial
	if err := newDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("meta: custom material: %w", err)
	}
	pds, err := propertyDefs(doc.MetaData.Properties)
	if err != nil {
		return nil, fmt.Errorf("meta: custom material %q: %w", doc.Name, err)
	}
	cm := &CustomMaterial{Name: doc.Name, Version: doc.Version, Properties: pds,
		SharedCode: strings.TrimSpace(doc.Shaders.Shared), Shaders: shaders(doc.Shaders.Shaders)}
	for _, el := range doc.Passes.Elements {
		switch el.XMLName.Local {
		case "ShaderKey":
			fmt.Sscan(el.attr("value"), &cm.ShaderKey)
		case "LayerKey":
			fmt.Sscan(el.attr("count"), &cm.LayerCount)
		case "Pass":
			cm.Passes = append(cm.Passes, el.pass())
		}
	}
	return cm, nil
}

func propertyDefs(xps []xmlProperty) ([]*PropertyDef, error) {
	pds := make([]*PropertyDef, 0, len(xps))
	for i := range xps {
		pd, err := xps[i].toDef(true)
		if err != nil {
			return nil, err
		}
		pds = append(pds, pd)
	}
	return pds, nil
}

func shaders(xss []xmlShader) []Shader {
	res := make([]Shader, 0, len(xss))
	for _, xs := range xss {
		sh := Shader{Name: xs.Name, Shared: strings.TrimSpace(xs.Shared), Stages: map[string]string{}}
		for _, st := range xs.Stages {
			if st.XMLName.Local == "Shared" {
				continue
			}
			sh.Stages[st.XMLName.Local] = strings.TrimSpace(st.Text)
		}
		res = append(res, sh)
	}
	return res
}

func (el *xmlAny) attr(name string) string {
	for _, a := range el.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (el *xmlAny) attrMap() map[string]string {
	m := make(map[string]string, len(el.Attrs))
	for _, a := range el.Attrs {
		m[a.Name.Local] = a.Value
	}
	return m
}

func (el *xmlAny) pass() Pass {
	p := Pass{Shader: el.attr("shader"), Input: el.attr("input"), Output: el.attr("output"), Format: el.attr("format")}
	for i := range el.Children {
		c := &el.Children[i]
		p.Commands = append(p.Commands, Command{Name: c.XMLName.Local, Attrs: c.attrMap()})
	}
	return p
}
