// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

// Scene is the root of the scene graph of a presentation.
type Scene struct {
	Base
	UseBackground   bool            `uip:"bgcolorenable"`
	BackgroundColor props.ColorRGBA `uip:"backgroundcolor"`
}

// Layer is a 2D compositing layer that renders a 3D subtree.
type Layer struct {
	Node

	DisableDepthTest    bool            `uip:"disabledepthtest"`
	DisableDepthPrepass bool            `uip:"disabledepthprepass"`
	ProgressiveAA       ProgressiveAA   `uip:"progressiveaa"`
	MultisampleAA       MultisampleAA   `uip:"multisampleaa"`
	TemporalAA          bool            `uip:"temporalaa"`
	Background          LayerBackground `uip:"background"`
	BackgroundColor     props.ColorRGBA `uip:"backgroundcolor"`
	BlendType           BlendMode       `uip:"blendtype"`

	// Size and placement within the presentation.
	HorizontalFields HorizontalFields `uip:"horzfields"`
	Left             float32          `uip:"left"`
	LeftUnits        Units            `uip:"leftunits"`
	Width            float32          `uip:"width"`
	WidthUnits       Units            `uip:"widthunits"`
	Right            float32          `uip:"right"`
	RightUnits       Units            `uip:"rightunits"`
	VerticalFields   VerticalFields   `uip:"vertfields"`
	Top              float32          `uip:"top"`
	TopUnits         Units            `uip:"topunits"`
	Height           float32          `uip:"height"`
	HeightUnits      Units            `uip:"heightunits"`
	Bottom           float32          `uip:"bottom"`
	BottomUnits      Units            `uip:"bottomunits"`

	// SourcePath names a sub-presentation rendered into the layer.
	SourcePath string `uip:"sourcepath"`

	// Screen space ambient occlusion.
	AOStrength   float32 `uip:"aostrength"`
	AODistance   float32 `uip:"aodistance"`
	AOSoftness   float32 `uip:"aosoftness"`
	AOBias       float32 `uip:"aobias"`
	AOSampleRate int32   `uip:"aosamplerate"`
	AODither     bool    `uip:"aodither"`

	// Screen space shadows.
	ShadowStrength float32 `uip:"shadowstrength"`
	ShadowDistance float32 `uip:"shadowdist"`
	ShadowSoftness float32 `uip:"shadowsoftness"`
	ShadowBias     float32 `uip:"shadowbias"`

	// Image based lighting.
	LightProbe      Ref     `uip:"lightprobe,image"`
	ProbeBrightness float32 `uip:"probebright"`
	FastIBL         bool    `uip:"fastibl"`
	ProbeHorizon    float32 `uip:"probehorizon"`
	ProbeFOV        float32 `uip:"probefov"`
	LightProbe2     Ref     `uip:"lightprobe2,image"`
	Probe2Fade      float32 `uip:"probe2fade"`
	Probe2Window    float32 `uip:"probe2window"`
	Probe2Position  float32 `uip:"probe2pos"`
}

// Camera is a camera.
type Camera struct {
	Node
	Orthographic   bool        `uip:"orthographic"`
	FOV            float32     `uip:"fov"`
	FOVHorizontal  bool        `uip:"fovhorizontal"`
	ClipNear       float32     `uip:"clipnear"`
	ClipFar        float32     `uip:"clipfar"`
	ScaleMode      ScaleMode   `uip:"scalemode"`
	ScaleAnchor    ScaleAnchor `uip:"scaleanchor"`
	FrustumCulling bool        `uip:"frustumculling"`
}

// Light is a light.
type Light struct {
	Node

	// Scope limits the light to the subtree of the given node.
	Scope Ref `uip:"scope"`

	LightType    LightType       `uip:"lighttype"`
	Diffuse      props.ColorRGBA `uip:"lightdiffuse"`
	Specular     props.ColorRGBA `uip:"lightspecular"`
	Ambient      props.ColorRGBA `uip:"lightambient"`
	Brightness   float32         `uip:"brightness"`
	LinearFade   float32         `uip:"linearfade"`
	ExpFade      float32         `uip:"expfade"`
	AreaWidth    float32         `uip:"areawidth"`
	AreaHeight   float32         `uip:"areaheight"`
	CastShadow   bool            `uip:"castshadow"`
	ShadowFactor float32         `uip:"shdwfactor"`
	ShadowFilter float32         `uip:"shdwfilter"`
	ShadowMapRes int32           `uip:"shdwmapres"`
	ShadowBias   float32         `uip:"shdwbias"`
	ShadowMapFar float32         `uip:"shdwmapfar"`
	ShadowMapFOV float32         `uip:"shdwmapfov"`
}

// Model is a mesh with materials, which are its material children.
type Model struct {
	Node
	Mesh         MeshRef      `uip:"sourcepath"`
	PoseRoot     int32        `uip:"poseroot"`
	Tessellation Tessellation `uip:"tessellation"`
	EdgeTess     float32      `uip:"edgetess"`
	InnerTess    float32      `uip:"innertess"`
}

// Group groups nodes under a common transform.
type Group struct {
	Node
}

// Component is a node with its own slides: a scope with a master
// slide of its own.
type Component struct {
	Node

	// MasterSlide is the master slide of the component.
	MasterSlide tree.Handle
}

// Text is a text label.
type Text struct {
	Node
	Text            string          `uip:"textstring"`
	Color           props.ColorRGBA `uip:"textcolor"`
	Font            string          `uip:"font"`
	Size            float32         `uip:"size"`
	HorizontalAlign HorizontalAlign `uip:"horzalign"`
	VerticalAlign   VerticalAlign   `uip:"vertalign"`
	Leading         float32         `uip:"leading"`
	Tracking        float32         `uip:"tracking"`
	BoundingBox     props.Vector2   `uip:"boundingbox"`
	WordWrap        WordWrap        `uip:"wordwrap"`
	Elide           Elide           `uip:"elide"`
	AcceleratedFont bool            `uip:"enableacceleratedfont"`
}

// Alias stands in for a copy of the subtree of another node.
type Alias struct {
	Node

	// Target is the node whose subtree is copied.
	Target Ref `uip:"referencednode,required"`
}

// Image is a texture used by materials and layers.
type Image struct {
	Base
	SourcePath      string      `uip:"sourcepath"`
	SubPresentation string      `uip:"subpresentation"`
	ScaleU          float32     `uip:"scaleu"`
	ScaleV          float32     `uip:"scalev"`
	MappingMode     MappingMode `uip:"mappingmode"`
	TilingU         TilingMode  `uip:"tilingmodehorz"`
	TilingV         TilingMode  `uip:"tilingmodevert"`
	RotationUV      float32     `uip:"rotationuv"`
	PositionU       float32     `uip:"positionu"`
	PositionV       float32     `uip:"positionv"`
	PivotU          float32     `uip:"pivotu"`
	PivotV          float32     `uip:"pivotv"`
}

// MaterialBase is the part common to the material kinds.
type MaterialBase struct {
	Base
	LightmapIndirect  Ref `uip:"lightmapindirect,image"`
	LightmapRadiosity Ref `uip:"lightmapradiosity,image"`
	LightmapShadow    Ref `uip:"lightmapshadow,image"`
	IBLProbe          Ref `uip:"iblprobe,image"`
}

// DefaultMaterial is the standard material.
type DefaultMaterial struct {
	MaterialBase
	ShaderLighting     ShaderLighting  `uip:"shaderlighting"`
	BlendMode          BlendMode       `uip:"blendmode"`
	Diffuse            props.ColorRGBA `uip:"diffuse"`
	DiffuseMap         Ref             `uip:"diffusemap,image"`
	DiffuseMap2        Ref             `uip:"diffusemap2,image"`
	DiffuseMap3        Ref             `uip:"diffusemap3,image"`
	EmissivePower      float32         `uip:"emissivepower"`
	EmissiveColor      props.ColorRGBA `uip:"emissivecolor"`
	EmissiveMap        Ref             `uip:"emissivemap,image"`
	EmissiveMap2       Ref             `uip:"emissivemap2,image"`
	SpecularReflection Ref             `uip:"specularreflection,image"`
	SpecularMap        Ref             `uip:"specularmap,image"`
	SpecularModel      SpecularModel   `uip:"specularmodel"`
	SpecularTint       props.ColorRGBA `uip:"speculartint"`
	IOR                float32         `uip:"ior"`
	SpecularAmount     float32         `uip:"specularamount"`
	SpecularRoughness  float32         `uip:"specularroughness"`
	RoughnessMap       Ref             `uip:"roughnessmap,image"`
	Opacity            float32         `uip:"opacity"`
	OpacityMap         Ref             `uip:"opacitymap,image"`
	BumpMap            Ref             `uip:"bumpmap,image"`
	BumpAmount         float32         `uip:"bumpamount"`
	NormalMap          Ref             `uip:"normalmap,image"`
	DisplacementMap    Ref             `uip:"displacementmap,image"`
	DisplaceAmount     float32         `uip:"displaceamount"`
	TranslucencyMap    Ref             `uip:"translucencymap,image"`
	TranslucentFalloff float32         `uip:"translucentfalloff"`
	DiffuseLightWrap   float32         `uip:"diffuselightwrap"`
	VertexColors       bool            `uip:"vertexcolors"`
}

// ReferencedMaterial uses the properties of another material.
type ReferencedMaterial struct {
	MaterialBase
	Material Ref `uip:"referencedmaterial,material"`
}

// CustomMaterial is a material whose properties are defined by
// its class document.
type CustomMaterial struct {
	MaterialBase

	// Class is the id of the class in the class registry.
	Class string `uip:"class"`

	// ClassInfo is the resolved class.
	ClassInfo *Class
}

// Effect is a post-processing effect of a layer.
type Effect struct {
	Base
	Eyeball   bool   `uip:"eyeball"`
	Class     string `uip:"class"`
	ClassInfo *Class
}

// Behavior attaches a behavior script to its parent.
type Behavior struct {
	Base
	Eyeball   bool   `uip:"eyeball"`
	Class     string `uip:"class"`
	ClassInfo *Class
}

// Classed is implemented by the kinds whose properties come from a
// class document.
type Classed interface {
	Object
	ClassID() string
	SetClassInfo(c *Class)
	Info() *Class
}

func (m *CustomMaterial) ClassID() string       { return m.Class }
func (m *CustomMaterial) SetClassInfo(c *Class) { m.ClassInfo = c }
func (m *CustomMaterial) Info() *Class          { return m.ClassInfo }
func (e *Effect) ClassID() string               { return e.Class }
func (e *Effect) SetClassInfo(c *Class)         { e.ClassInfo = c }
func (e *Effect) Info() *Class                  { return e.ClassInfo }
func (b *Behavior) ClassID() string             { return b.Class }
func (b *Behavior) SetClassInfo(c *Class)       { b.ClassInfo = c }
func (b *Behavior) Info() *Class                { return b.ClassInfo }
