// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
)

func TestDefault(t *testing.T) {
	dm := Default()
	model := dm.Type("Model")
	require.NotNil(t, model)
	assert.Equal(t, "Node", model.Inherits)

	pos := model.Property("position")
	require.NotNil(t, pos)
	assert.Equal(t, props.Float3, pos.Type)
	assert.Equal(t, 3, pos.Components())
	assert.True(t, pos.Animatable)
	assert.Equal(t, props.Vec3(0, 0, 0), pos.DefaultValue().Vector3())

	src := dm.Property("Model", "sourcepath")
	require.NotNil(t, src)
	assert.Equal(t, props.Mesh, src.Type)
	assert.False(t, src.Animatable)

	// Asset has 4 properties and Node adds 10
	assert.Len(t, dm.Properties("Group"), 14)
	assert.Equal(t, "name", dm.Properties("Group")[0].Name)

	v, ok := dm.DefaultValue("Layer", "width")
	assert.True(t, ok)
	assert.Equal(t, float32(100), v.Float())

	v, ok = dm.DefaultValue("Node", "eyeball")
	assert.True(t, ok)
	assert.True(t, v.B)

	_, ok = dm.DefaultValue("Layer", "nonesuch")
	assert.False(t, ok)
	assert.Nil(t, dm.Property("Nonesuch", "name"))
	assert.Nil(t, dm.Properties("Nonesuch"))
}

func TestDefaultCoversKinds(t *testing.T) {
	dm := Default()
	for _, name := range []string{"Scene", "Slide", "Image", "DefaultMaterial", "ReferencedMaterial",
		"CustomMaterial", "Effect", "Behavior", "Layer", "Camera", "Light", "Model", "Group",
		"Text", "Component", "Alias"} {
		td := dm.Type(name)
		if assert.NotNil(t, td, name) {
			assert.NotNil(t, td.Property("starttime"), name)
			assert.NotNil(t, td.Property("endtime"), name)
		}
	}
}

func TestEnum(t *testing.T) {
	dm := Default()
	pd := dm.Property("Light", "lighttype")
	require.NotNil(t, pd)
	assert.Equal(t, props.StringList, pd.Type)
	assert.Equal(t, []string{"Directional", "Point", "Area"}, pd.Enum)

	v, err := pd.Parse("Point")
	assert.NoError(t, err)
	assert.Equal(t, "Point", v.S)

	_, err = pd.Parse("Spot")
	var cerr *props.ConversionError
	assert.ErrorAs(t, err, &cerr)

	ro := dm.Property("Node", "orientation")
	assert.Equal(t, "Left Handed", ro.Default)
}

func TestLoad(t *testing.T) {
	doc := `<MetaData>
		<Type name="A">
			<Property name="x" type="Float" default="1"/>
			<Property name="y" type="Long" default="2"/>
		</Type>
		<Type name="B" inherits="A">
			<Property name="x" type="Float" default="5"/>
			<Property name="z" type="String" list="one,two"/>
		</Type>
	</MetaData>`
	dm, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	b := dm.Type("B")
	assert.Equal(t, []string{"x", "y", "z"}, b.Properties.Keys)
	assert.Equal(t, "5", b.Property("x").Default)
	assert.Equal(t, "1", dm.Property("A", "x").Default)

	z := b.Property("z")
	assert.Equal(t, props.StringList, z.Type)
	assert.Equal(t, "one", z.Default)
	assert.False(t, z.Animatable)

	_, err = Load(strings.NewReader(`<MetaData><Type name="B" inherits="A"/></MetaData>`))
	assert.Error(t, err)

	_, err = Load(strings.NewReader(`<MetaData><Type name="A"/><Type name="A"/></MetaData>`))
	assert.Error(t, err)

	_, err = Load(strings.NewReader(`<MetaData><Type name="A"><Property name="x" type="Quaternion"/></Type></MetaData>`))
	assert.Error(t, err)
}

func TestParseCustomMaterial(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<Material name="copper" version="1.0">
	<MetaData>
		<Property formalName="Roughness" name="roughness" type="Float" min="0" max="1" default="0.3"/>
		<Property name="tint" type="Color" default="1 0.5 0.2"/>
		<Property name="env" type="Texture" default="./maps/env.png"/>
	</MetaData>
	<Shaders type="GLSL" version="330">
		<Shared>uniform float time;</Shared>
		<Shader>
			<Fragment><![CDATA[void main() { }]]></Fragment>
		</Shader>
	</Shaders>
	<Passes>
		<ShaderKey value="4"/>
		<LayerKey count="1"/>
		<Pass>
			<Blending source="SrcAlpha" dest="One"/>
		</Pass>
	</Passes>
</Material>`
	cm, err := ParseCustomMaterial(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "copper", cm.Name)
	require.Len(t, cm.Properties, 3)

	r := cm.Property("roughness")
	require.NotNil(t, r)
	assert.True(t, r.HasRange)
	assert.Equal(t, float32(1), r.Max)
	assert.Equal(t, "Roughness", r.FormalName)
	assert.Equal(t, float32(0.3), r.DefaultValue().Float())
	assert.Equal(t, float32(1), cm.Property("tint").DefaultValue().Color().A)

	assert.Equal(t, "uniform float time;", cm.SharedCode)
	require.Len(t, cm.Shaders, 1)
	assert.Equal(t, "void main() { }", cm.Shaders[0].Stages["Fragment"])
	assert.Equal(t, 4, cm.ShaderKey)
	assert.Equal(t, 1, cm.LayerCount)
	require.Len(t, cm.Passes, 1)
	require.Len(t, cm.Passes[0].Commands, 1)
	assert.Equal(t, "Blending", cm.Passes[0].Commands[0].Name)
	assert.Equal(t, "One", cm.Passes[0].Commands[0].Attrs["dest"])

	_, err = ParseCustomMaterial(strings.NewReader(`<Material><MetaData><Property type="Float"/></MetaData></Material>`))
	assert.Error(t, err)
}

func TestParseEffect(t *testing.T) {
	doc := `<Effect>
	<MetaData>
		<Property name="amount" formalName="Amount" type="Float" default="0.5" min="0" max="1"/>
	</MetaData>
	<Shaders>
		<Shader name="blur"><FragmentShader>blur()</FragmentShader></Shader>
		<Shader name="main"><FragmentShader>main()</FragmentShader></Shader>
	</Shaders>
	<Passes>
		<Buffer name="tmp" type="fp16" format="rgba" filter="linear" wrap="clamp" size=".5" lifetime="frame"/>
		<Pass shader="blur" output="tmp"/>
		<Pass shader="main"><BufferInput value="tmp" param="blurred"/></Pass>
	</Passes>
</Effect>`
	ef, err := ParseEffect(strings.NewReader(doc))
	require.NoError(t, err)
	assert.NotNil(t, ef.Property("amount"))
	require.Len(t, ef.Buffers, 1)
	assert.Equal(t, float32(0.5), ef.Buffers[0].Size)
	require.Len(t, ef.Passes, 2)
	assert.Equal(t, "tmp", ef.Passes[0].Output)
	assert.Equal(t, "blurred", ef.Passes[1].Commands[0].Attrs["param"])
	assert.Equal(t, "main()", ef.Shaders[1].Stages["FragmentShader"])

	_, err = ParseEffect(strings.NewReader(`<Effect><Passes><Pass shader="nope"/></Passes></Effect>`))
	assert.Error(t, err)
}

func TestParseBehavior(t *testing.T) {
	src := `/*[[
	<Property name="speed" formalName="Speed" type="Float" default="1" description="units per second"/>
	<Property name="target" type="ObjectRef" default="Scene"/>
	<Handler name="start" formalName="Start" category="Control">
		<Argument name="delay" type="Float" default="0"/>
	</Handler>
	<Handler name="stop"/>
	<Event name="onStarted"/>
]]*/

import QtStudio3D.Behavior 1.0

Behavior {
    onUpdate: { }
}
`
	bh, err := ParseBehavior(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, bh.Properties, 2)
	assert.False(t, bh.Property("speed").Animatable)
	assert.Equal(t, props.ObjectRef, bh.Property("target").Type)
	require.Len(t, bh.Handlers, 2)
	h := bh.Handler("start")
	require.NotNil(t, h)
	assert.Equal(t, "Control", h.Category)
	require.Len(t, h.Arguments, 1)
	assert.Equal(t, props.Float, h.Arguments[0].Type)
	assert.Nil(t, bh.Handler("jump"))
	assert.Equal(t, []string{"onStarted"}, bh.Events)

	bh, err = ParseBehavior(strings.NewReader("Behavior { }"))
	require.NoError(t, err)
	assert.Empty(t, bh.Properties)

	_, err = ParseBehavior(strings.NewReader("/*[[ <Property name=\"a\"/>"))
	assert.Error(t, err)
}
