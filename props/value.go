// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package props provides the typed property values of presentation
// objects and the property change lists that carry deltas between the
// document, the slides and the objects.
//
// Property values travel as text (the form they have in documents and
// in change lists) and are converted to a typed [Value] by [Parse],
// directed by the declared [Type] of the property.
package props

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
)

// Type is the declared type of a property value.
type Type int32

const (
	// Invalid is the zero, unknown type.
	Invalid Type = iota

	// Float is a single float32.
	Float

	// Long is a 32 bit integer.
	Long

	// Float2 is a 2 component vector.
	Float2

	// Float3 is a 3 component vector.
	Float3

	// Color is an RGBA color with components in 0..1;
	// 3 component literals get an alpha of 1.
	Color

	// Boolean is a True / False flag.
	Boolean

	// String is free text.
	String

	// StringList is one value out of an enumerated list of strings.
	StringList

	// ObjectRef is a reference to another object, by #id or path.
	ObjectRef

	// Image is an [ObjectRef] that must refer to an image object.
	Image

	// Texture is a path to an image file.
	Texture

	// Font is a font name.
	Font

	// Mesh is a mesh reference: a primitive name or path#part.
	Mesh

	// Variant holds whatever text it was given.
	Variant

	// TypesN is the number of types.
	TypesN
)

var typeNames = [TypesN]string{"Invalid", "Float", "Long", "Float2", "Float3", "Color", "Boolean",
	"String", "StringList", "ObjectRef", "Image", "Texture", "Font", "Mesh", "Variant"}

func (t Type) String() string {
	if t < 0 || t >= TypesN {
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// ParseType returns the type with the given name as used in metadata
// documents. A few aliases used by the different metadata documents are
// accepted: Float4 and Vector are synonyms for Color and Float3, Rotation
// is a Float3, and Int / Long are the same.
func ParseType(name string) (Type, error) {
	for i, tn := range typeNames {
		if strings.EqualFold(tn, name) {
			return Type(i), nil
		}
	}
	switch strings.ToLower(name) {
	case "float4":
		return Color, nil
	case "vector", "rotation":
		return Float3, nil
	case "int", "integer", "long":
		return Long, nil
	case "bool":
		return Boolean, nil
	case "multilinestring", "path":
		return String, nil
	case "object", "objectref":
		return ObjectRef, nil
	}
	return Invalid, fmt.Errorf("props: unknown property type %q", name)
}

// Components returns the number of numeric components of the type.
func (t Type) Components() int {
	switch t {
	case Float, Long:
		return 1
	case Float2:
		return 2
	case Float3:
		return 3
	case Color:
		return 4
	}
	return 0
}

// IsRef returns whether values of the type refer to other objects.
func (t Type) IsRef() bool {
	return t == ObjectRef || t == Image
}

// Vector2 is a 2 component vector.
type Vector2 struct {
	X, Y float32
}

// Vector3 is a 3 component vector.
type Vector3 struct {
	X, Y, Z float32
}

// Vec3 returns a new [Vector3].
func Vec3(x, y, z float32) Vector3 {
	return Vector3{x, y, z}
}

// Dim returns the component with the given index (0..2).
func (v Vector3) Dim(i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

// SetDim sets the component with the given index (0..2).
func (v *Vector3) SetDim(i int, val float32) {
	switch i {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	default:
		v.Z = val
	}
}

// Length returns the euclidean length of the vector.
func (v Vector3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// ColorRGBA is a color with float components in 0..1.
type ColorRGBA struct {
	R, G, B, A float32
}

// Value is a tagged variant holding a property value. Only the fields
// corresponding to [Value.Type] are meaningful.
type Value struct {
	Type Type

	F float32
	I int32
	B bool

	// V holds Float2 (X, Y), Float3 and Color (X=R, Y=G, Z=B, W in F)
	// component values.
	V Vector3

	// S holds string, enumerated, reference, path and variant values.
	S string
}

// FloatValue returns a Float value.
func FloatValue(f float32) Value { return Value{Type: Float, F: f} }

// LongValue returns a Long value.
func LongValue(i int32) Value { return Value{Type: Long, I: i} }

// BoolValue returns a Boolean value.
func BoolValue(b bool) Value { return Value{Type: Boolean, B: b} }

// StringValue returns a String value.
func StringValue(s string) Value { return Value{Type: String, S: s} }

// Vector2Value returns a Float2 value.
func Vector2Value(v Vector2) Value { return Value{Type: Float2, V: Vector3{v.X, v.Y, 0}} }

// Vector3Value returns a Float3 value.
func Vector3Value(v Vector3) Value { return Value{Type: Float3, V: v} }

// ColorValue returns a Color value.
func ColorValue(c ColorRGBA) Value {
	return Value{Type: Color, V: Vector3{c.R, c.G, c.B}, F: c.A}
}

// RefValue returns an ObjectRef value.
func RefValue(ref string) Value { return Value{Type: ObjectRef, S: ref} }

// IsValid returns whether the value has a type.
func (v Value) IsValid() bool { return v.Type != Invalid }

// Float returns the value as a float32, converting numeric types.
func (v Value) Float() float32 {
	switch v.Type {
	case Float:
		return v.F
	case Long:
		return float32(v.I)
	case Boolean:
		if v.B {
			return 1
		}
		return 0
	case Float2, Float3, Color:
		return v.V.X
	case String, Variant:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v.S), 32)
		return float32(f)
	}
	return 0
}

// Vector2 returns the value as a [Vector2].
func (v Value) Vector2() Vector2 {
	switch v.Type {
	case Float, Long:
		f := v.Float()
		return Vector2{f, f}
	}
	return Vector2{v.V.X, v.V.Y}
}

// Vector3 returns the value as a [Vector3].
func (v Value) Vector3() Vector3 {
	switch v.Type {
	case Float, Long:
		f := v.Float()
		return Vector3{f, f, f}
	}
	return v.V
}

// Color returns the value as a [ColorRGBA].
func (v Value) Color() ColorRGBA {
	if v.Type == Color {
		return ColorRGBA{v.V.X, v.V.Y, v.V.Z, v.F}
	}
	return ColorRGBA{v.V.X, v.V.Y, v.V.Z, 1}
}

// Component returns the numeric component with the given index, used by
// animation of sub properties such as position.x. Color alpha is index 3.
func (v Value) Component(i int) float32 {
	switch v.Type {
	case Float, Long, Boolean:
		return v.Float()
	}
	if i == 3 {
		return v.F
	}
	return v.V.Dim(i)
}

// WithComponent returns a copy of the value with the given numeric
// component replaced.
func (v Value) WithComponent(i int, f float32) Value {
	switch v.Type {
	case Float:
		v.F = f
	case Long:
		v.I = int32(math32.Round(f))
	case Float2, Float3, Color:
		if i == 3 {
			v.F = f
		} else {
			v.V.SetDim(i, f)
		}
	}
	return v
}

// Equal returns whether the two values have the same type and content.
func (v Value) Equal(o Value) bool {
	return v == o
}

// String returns the textual form of the value, which [Parse] accepts.
func (v Value) String() string {
	switch v.Type {
	case Float:
		return formatFloat(v.F)
	case Long:
		return strconv.Itoa(int(v.I))
	case Float2:
		return formatFloat(v.V.X) + " " + formatFloat(v.V.Y)
	case Float3:
		return formatFloat(v.V.X) + " " + formatFloat(v.V.Y) + " " + formatFloat(v.V.Z)
	case Color:
		return formatFloat(v.V.X) + " " + formatFloat(v.V.Y) + " " + formatFloat(v.V.Z) + " " + formatFloat(v.F)
	case Boolean:
		return FormatBool(v.B)
	case Invalid:
		return ""
	}
	return v.S
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

// FormatBool returns the document form of a boolean: True or False.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
