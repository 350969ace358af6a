// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"fmt"
	"strconv"
	"strings"
)

func enumString[E ~int32](names []string, e E) string {
	if e < 0 || int(e) >= len(names) {
		return strconv.Itoa(int(e))
	}
	return names[e]
}

// enumParse sets e to the value whose document name is text,
// ignoring case.
func enumParse[E ~int32](names []string, text []byte, e *E) error {
	s := strings.TrimSpace(string(text))
	for i, n := range names {
		if strings.EqualFold(n, s) {
			*e = E(i)
			return nil
		}
	}
	return fmt.Errorf("graph: %q is not one of %s", s, strings.Join(names, ", "))
}

// RotationOrder is the order in which the euler angles of a node are
// applied; the r suffix marks intrinsic application.
type RotationOrder int32

const (
	RotXYZ RotationOrder = iota
	RotYZX
	RotZXY
	RotXZY
	RotYXZ
	RotZYX
	RotXYZr
	RotYZXr
	RotZXYr
	RotXZYr
	RotYXZr
	RotZYXr
)

var rotationOrderNames = []string{"XYZ", "YZX", "ZXY", "XZY", "YXZ", "ZYX", "XYZr", "YZXr", "ZXYr", "XZYr", "YXZr", "ZYXr"}

func (e RotationOrder) String() string { return enumString(rotationOrderNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *RotationOrder) UnmarshalText(text []byte) error {
	return enumParse(rotationOrderNames, text, e)
}

// Orientation is the handedness of a node's coordinate system.
type Orientation int32

const (
	LeftHanded Orientation = iota
	RightHanded
)

var orientationNames = []string{"Left Handed", "Right Handed"}

func (e Orientation) String() string { return enumString(orientationNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *Orientation) UnmarshalText(text []byte) error {
	return enumParse(orientationNames, text, e)
}

// ProgressiveAA is the progressive anti-aliasing mode of a layer.
type ProgressiveAA int32

const (
	ProgressiveNone ProgressiveAA = iota
	Progressive2x
	Progressive4x
	Progressive8x
)

var progressiveAANames = []string{"None", "2x", "4x", "8x"}

func (e ProgressiveAA) String() string { return enumString(progressiveAANames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *ProgressiveAA) UnmarshalText(text []byte) error {
	return enumParse(progressiveAANames, text, e)
}

// MultisampleAA is the multisample anti-aliasing mode of a layer.
type MultisampleAA int32

const (
	MultisampleNone MultisampleAA = iota
	Multisample2x
	Multisample4x
	SuperSample
)

var multisampleAANames = []string{"None", "2x", "4x", "SSAA"}

func (e MultisampleAA) String() string { return enumString(multisampleAANames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *MultisampleAA) UnmarshalText(text []byte) error {
	return enumParse(multisampleAANames, text, e)
}

// LayerBackground is the how a layer clears its background.
type LayerBackground int32

const (
	BackgroundTransparent LayerBackground = iota
	BackgroundSolidColor
	BackgroundUnspecified
)

var layerBackgroundNames = []string{"Transparent", "SolidColor", "Unspecified"}

func (e LayerBackground) String() string { return enumString(layerBackgroundNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *LayerBackground) UnmarshalText(text []byte) error {
	return enumParse(layerBackgroundNames, text, e)
}

// BlendMode is the how a layer or material is blended with what is behind it.
type BlendMode int32

const (
	BlendNormal BlendMode = iota
	BlendScreen
	BlendMultiply
	BlendAdd
	BlendSubtract
	BlendOverlay
	BlendColorBurn
	BlendColorDodge
)

var blendModeNames = []string{"Normal", "Screen", "Multiply", "Add", "Subtract", "Overlay", "ColorBurn", "ColorDodge"}

func (e BlendMode) String() string { return enumString(blendModeNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *BlendMode) UnmarshalText(text []byte) error {
	return enumParse(blendModeNames, text, e)
}

// HorizontalFields is the which two horizontal size fields of a layer are used.
type HorizontalFields int32

const (
	LeftWidth HorizontalFields = iota
	LeftRight
	WidthRight
)

var horizontalFieldsNames = []string{"Left/Width", "Left/Right", "Width/Right"}

func (e HorizontalFields) String() string { return enumString(horizontalFieldsNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *HorizontalFields) UnmarshalText(text []byte) error {
	return enumParse(horizontalFieldsNames, text, e)
}

// VerticalFields is the which two vertical size fields of a layer are used.
type VerticalFields int32

const (
	TopHeight VerticalFields = iota
	TopBottom
	HeightBottom
)

var verticalFieldsNames = []string{"Top/Height", "Top/Bottom", "Height/Bottom"}

func (e VerticalFields) String() string { return enumString(verticalFieldsNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *VerticalFields) UnmarshalText(text []byte) error {
	return enumParse(verticalFieldsNames, text, e)
}

// Units is the unit of a layer size field.
type Units int32

const (
	Percent Units = iota
	Pixels
)

var unitsNames = []string{"percent", "pixels"}

func (e Units) String() string { return enumString(unitsNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *Units) UnmarshalText(text []byte) error {
	return enumParse(unitsNames, text, e)
}

// ScaleMode is the how a camera maps the presentation to the layer.
type ScaleMode int32

const (
	ScaleFit ScaleMode = iota
	ScaleSameSize
	ScaleFitHorizontal
	ScaleFitVertical
)

var scaleModeNames = []string{"Fit", "Same Size", "Fit Horizontal", "Fit Vertical"}

func (e ScaleMode) String() string { return enumString(scaleModeNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *ScaleMode) UnmarshalText(text []byte) error {
	return enumParse(scaleModeNames, text, e)
}

// ScaleAnchor is the the anchor point of camera scaling.
type ScaleAnchor int32

const (
	AnchorCenter ScaleAnchor = iota
	AnchorN
	AnchorNE
	AnchorE
	AnchorSE
	AnchorS
	AnchorSW
	AnchorW
	AnchorNW
)

var scaleAnchorNames = []string{"Center", "N", "NE", "E", "SE", "S", "SW", "W", "NW"}

func (e ScaleAnchor) String() string { return enumString(scaleAnchorNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *ScaleAnchor) UnmarshalText(text []byte) error {
	return enumParse(scaleAnchorNames, text, e)
}

// LightType is the the type of a light.
type LightType int32

const (
	DirectionalLight LightType = iota
	PointLight
	AreaLight
)

var lightTypeNames = []string{"Directional", "Point", "Area"}

func (e LightType) String() string { return enumString(lightTypeNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *LightType) UnmarshalText(text []byte) error {
	return enumParse(lightTypeNames, text, e)
}

// Tessellation is the the tessellation mode of a model.
type Tessellation int32

const (
	TessNone Tessellation = iota
	TessLinear
	TessPhong
	TessNPatch
)

var tessellationNames = []string{"None", "Linear", "Phong", "NPatch"}

func (e Tessellation) String() string { return enumString(tessellationNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *Tessellation) UnmarshalText(text []byte) error {
	return enumParse(tessellationNames, text, e)
}

// HorizontalAlign is the horizontal alignment of text.
type HorizontalAlign int32

const (
	AlignLeft HorizontalAlign = iota
	AlignCenter
	AlignRight
)

var horizontalAlignNames = []string{"Left", "Center", "Right"}

func (e HorizontalAlign) String() string { return enumString(horizontalAlignNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *HorizontalAlign) UnmarshalText(text []byte) error {
	return enumParse(horizontalAlignNames, text, e)
}

// VerticalAlign is the vertical alignment of text.
type VerticalAlign int32

const (
	AlignTop VerticalAlign = iota
	AlignMiddle
	AlignBottom
)

var verticalAlignNames = []string{"Top", "Middle", "Bottom"}

func (e VerticalAlign) String() string { return enumString(verticalAlignNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *VerticalAlign) UnmarshalText(text []byte) error {
	return enumParse(verticalAlignNames, text, e)
}

// WordWrap is the how text wraps in its bounding box.
type WordWrap int32

const (
	WrapClip WordWrap = iota
	WrapWord
	WrapAnywhere
)

var wordWrapNames = []string{"Clip", "WrapWord", "WrapAnywhere"}

func (e WordWrap) String() string { return enumString(wordWrapNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *WordWrap) UnmarshalText(text []byte) error {
	return enumParse(wordWrapNames, text, e)
}

// Elide is the where text that does not fit is elided.
type Elide int32

const (
	ElideNone Elide = iota
	ElideLeft
	ElideMiddle
	ElideRight
)

var elideNames = []string{"ElideNone", "ElideLeft", "ElideMiddle", "ElideRight"}

func (e Elide) String() string { return enumString(elideNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *Elide) UnmarshalText(text []byte) error {
	return enumParse(elideNames, text, e)
}

// MappingMode is the how an image is mapped onto geometry.
type MappingMode int32

const (
	UVMapping MappingMode = iota
	EnvironmentalMapping
	LightProbeMapping
	IBLOverride
)

var mappingModeNames = []string{"UV Mapping", "Environmental Mapping", "Light Probe", "IBL Override"}

func (e MappingMode) String() string { return enumString(mappingModeNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *MappingMode) UnmarshalText(text []byte) error {
	return enumParse(mappingModeNames, text, e)
}

// TilingMode is the how an image repeats outside of 0..1.
type TilingMode int32

const (
	Tiled TilingMode = iota
	Mirrored
	NoTiling
)

var tilingModeNames = []string{"Tiled", "Mirrored", "No Tiling"}

func (e TilingMode) String() string { return enumString(tilingModeNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *TilingMode) UnmarshalText(text []byte) error {
	return enumParse(tilingModeNames, text, e)
}

// ShaderLighting is the the lighting model of a default material.
type ShaderLighting int32

const (
	PixelLighting ShaderLighting = iota
	NoLighting
)

var shaderLightingNames = []string{"Pixel", "None"}

func (e ShaderLighting) String() string { return enumString(shaderLightingNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *ShaderLighting) UnmarshalText(text []byte) error {
	return enumParse(shaderLightingNames, text, e)
}

// SpecularModel is the the specular model of a default material.
type SpecularModel int32

const (
	SpecularDefault SpecularModel = iota
	SpecularKGGX
	SpecularKWard
)

var specularModelNames = []string{"Default", "KGGX", "KWard"}

func (e SpecularModel) String() string { return enumString(specularModelNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *SpecularModel) UnmarshalText(text []byte) error {
	return enumParse(specularModelNames, text, e)
}

// PlayMode is the what a slide does when its timeline reaches an end.
type PlayMode int32

const (
	StopAtEnd PlayMode = iota
	Looping
	PingPong
	Ping
	PlayThroughTo
)

var playModeNames = []string{"Stop at end", "Looping", "PingPong", "Ping", "Play Through To"}

func (e PlayMode) String() string { return enumString(playModeNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *PlayMode) UnmarshalText(text []byte) error {
	return enumParse(playModeNames, text, e)
}

// PlayState is the whether a slide starts playing when it becomes current.
type PlayState int32

const (
	Playing PlayState = iota
	Paused
)

var playStateNames = []string{"Play", "Pause"}

func (e PlayState) String() string { return enumString(playStateNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *PlayState) UnmarshalText(text []byte) error {
	return enumParse(playStateNames, text, e)
}

// Rotation is the the clockwise rotation of the presentation output.
type Rotation int32

const (
	RotationNone Rotation = iota
	Rotation90
	Rotation180
	Rotation270
)

var rotationNames = []string{"None", "90", "180", "270"}

func (e Rotation) String() string { return enumString(rotationNames, e) }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *Rotation) UnmarshalText(text []byte) error {
	return enumParse(rotationNames, text, e)
}
