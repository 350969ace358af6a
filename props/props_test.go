// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		typ  Type
		text string
		want Value
		str  string
	}{
		{Float, "1.5", FloatValue(1.5), "1.5"},
		{Long, "42", LongValue(42), "42"},
		{Long, "100.0", LongValue(100), "100"},
		{Float2, "1 2", Vector2Value(Vector2{1, 2}), "1 2"},
		{Float3, "1, 2, 3", Vector3Value(Vec3(1, 2, 3)), "1 2 3"},
		{Color, "1 0.5 0", ColorValue(ColorRGBA{1, 0.5, 0, 1}), "1 0.5 0 1"},
		{Boolean, "False", BoolValue(false), "False"},
		{Boolean, "TRUE", BoolValue(true), "True"},
		{ObjectRef, "#Light", RefValue("#Light"), "#Light"},
		{String, "hello world", StringValue("hello world"), "hello world"},
	}
	for _, tt := range tests {
		v, err := Parse(tt.typ, tt.text)
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.want, v, tt.text)
		assert.Equal(t, tt.str, v.String(), tt.text)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(Float, "abc")
	var ce *ConversionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, Float, ce.Type)

	_, err = Parse(Float3, "1 2")
	assert.Error(t, err)
	_, err = Parse(Boolean, "maybe")
	assert.Error(t, err)
	assert.Panics(t, func() { MustParse(Long, "x") })
}

func TestParseType(t *testing.T) {
	for name, want := range map[string]Type{
		"Float": Float, "float3": Float3, "Float4": Color, "Vector": Float3,
		"Long": Long, "Boolean": Boolean, "StringList": StringList, "Image": Image,
	} {
		typ, err := ParseType(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, typ, name)
	}
	_, err := ParseType("Quaternion")
	assert.Error(t, err)
}

func TestValueComponents(t *testing.T) {
	v := Vector3Value(Vec3(1, 2, 3))
	assert.Equal(t, float32(2), v.Component(1))
	v = v.WithComponent(2, 9)
	assert.Equal(t, Vec3(1, 2, 9), v.Vector3())

	c := ColorValue(ColorRGBA{0.1, 0.2, 0.3, 0.4})
	assert.Equal(t, float32(0.4), c.Component(3))
	assert.Equal(t, float32(0.9), c.WithComponent(3, 0.9).Color().A)

	l := LongValue(3).WithComponent(0, 4.6)
	assert.Equal(t, int32(5), l.I)
	assert.Equal(t, float32(5), Vector3Value(Vec3(3, 4, 0)).Vector3().Length())
	assert.Equal(t, float32(1), BoolValue(true).Float())
}

func TestChangeListFlags(t *testing.T) {
	cl := NewChangeList(
		Change{"position", "0 0 0"},
		Change{"opacity", "50"},
		Change{},
	)
	assert.Equal(t, 2, cl.Len())
	assert.True(t, cl.Flags().Has(TransformChanges|OpacityChanges))
	assert.False(t, cl.Flags().Has(VisibilityChanges))

	cl.Append(Change{"eyeball", "False"})
	cl.Append(Change{"textstring", "hi"})
	cl.Append(Change{"shdwbias", "0"})
	cl.Append(Change{"rotation.x", "10"})
	assert.True(t, cl.Flags().Has(VisibilityChanges|TextTextureChanges|ShadowAOChanges))
	assert.Equal(t, BlendModeChanges, FlagsFor("blendmode"))
}

func TestChangeListDuplicates(t *testing.T) {
	cl := &ChangeList{}
	cl.Append(Change{"opacity", "10"})
	cl.Append(Change{"eyeball", "True"})
	cl.Append(Change{"opacity", "20"})
	assert.Equal(t, 3, cl.Len(), "duplicates are kept")
	assert.Equal(t, []string{"opacity", "eyeball"}, cl.Keys())
	v, ok := cl.Value("opacity")
	assert.True(t, ok)
	assert.Equal(t, "20", v, "last value wins")

	c, ok := cl.Take("opacity")
	assert.True(t, ok)
	assert.Equal(t, Change{"opacity", "20"}, c)
	assert.Equal(t, 1, cl.Len())
	assert.False(t, cl.Flags().Has(OpacityChanges))

	cl.Replace(Change{"eyeball", "False"})
	assert.Equal(t, "{eyeball: False}", cl.String())
	_, ok = cl.Take("missing")
	assert.False(t, ok)
}

func TestChangeListFilterClone(t *testing.T) {
	cl := NewChangeList(Change{"position", "1 1 1"}, Change{"eyeball", "True"})
	f := cl.Filter(func(c Change) bool { return FlagsFor(c.Name) != TransformChanges })
	assert.Equal(t, []string{"eyeball"}, f.Keys())
	cp := cl.Clone()
	cp.Append(Change{"opacity", "1"})
	assert.Equal(t, 2, cl.Len())
	assert.Equal(t, 3, cp.Len())

	var nilList *ChangeList
	assert.Equal(t, 0, nilList.Len())
	assert.False(t, nilList.Has("x"))
	assert.Equal(t, Change{"opacity", "50"}, NewChange("opacity", FloatValue(50)))
}
