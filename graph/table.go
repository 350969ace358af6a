// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"reflect"
	"slices"
	"strings"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
)

// ChangeFlags are the categories of a set of property changes as seen by
// the renderer, computed by [MapChangeFlags].
type ChangeFlags int64

const (
	EyeballChanged ChangeFlags = 1 << iota
	TransformChanged
	OpacityChanged
	BlendModeChanged
	ShadowChanged
	AOChanged
	TextTextureChanged
	MeshChanged
	SourceChanged
	ImageTransformChanged
	LightChanged
	CameraChanged
	LayerSizeChanged
	ProbeChanged
	MaterialChanged
	ClassPropertyChanged
	PlayModeChanged
	TimeChanged
	DataInputChanged
	ReferenceChanged
)

// Has returns whether all of the given flags are set.
func (f ChangeFlags) Has(flag ChangeFlags) bool {
	return f&flag == flag
}

// kindInfo is the dispatch table entry of a kind.
type kindInfo struct {

	// new returns a new object with default field values.
	new func() Object

	// fields are the bound properties in declaration order.
	fields []*field

	// byName indexes fields.
	byName map[string]*field

	// mapFlags returns the kind specific change flags for the given
	// property name.
	mapFlags func(name string) ChangeFlags

	// resolve runs after the references of an object are resolved.
	resolve func(p *Presentation, obj Object) error
}

// field returns the named bound property or nil.
func (ki *kindInfo) field(name string) *field {
	return ki.byName[name]
}

var kindTable [KindsN]kindInfo

func init() {
	kindTable[KindScene] = kindInfo{
		new: func() Object {
			return &Scene{Base: newBase(), UseBackground: true, BackgroundColor: props.ColorRGBA{A: 1}}
		},
	}
	kindTable[KindSlide] = kindInfo{
		new:     func() Object { return newSlide() },
		resolve: resolveActions,
		mapFlags: func(name string) ChangeFlags {
			switch name {
			case "playmode", "initialplaystate", "playthroughto":
				return PlayModeChanged
			}
			return 0
		},
	}
	kindTable[KindImage] = kindInfo{
		new: func() Object {
			return &Image{Base: newBase(), ScaleU: 1, ScaleV: 1, TilingU: NoTiling, TilingV: NoTiling}
		},
		mapFlags: func(name string) ChangeFlags {
			if name == "sourcepath" || name == "subpresentation" {
				return SourceChanged
			}
			return ImageTransformChanged
		},
	}
	materialFlags := func(name string) ChangeFlags {
		switch {
		case name == "blendmode":
			return BlendModeChanged
		case strings.HasSuffix(name, "map") || strings.HasSuffix(name, "map2") ||
			strings.HasSuffix(name, "map3") || strings.HasPrefix(name, "lightmap") ||
			name == "iblprobe" || name == "specularreflection":
			return SourceChanged | MaterialChanged
		}
		return MaterialChanged
	}
	kindTable[KindDefaultMaterial] = kindInfo{
		new:      func() Object { return newDefaultMaterial() },
		mapFlags: materialFlags,
	}
	kindTable[KindReferencedMaterial] = kindInfo{
		new:      func() Object { return &ReferencedMaterial{MaterialBase: MaterialBase{Base: newBase()}} },
		mapFlags: materialFlags,
	}
	classFlags := func(name string) ChangeFlags {
		if name == "eyeball" {
			return 0
		}
		return ClassPropertyChanged
	}
	kindTable[KindCustomMaterial] = kindInfo{
		new:      func() Object { return &CustomMaterial{MaterialBase: MaterialBase{Base: newBase()}} },
		mapFlags: classFlags,
		resolve:  resolveClass,
	}
	kindTable[KindEffect] = kindInfo{
		new:      func() Object { return &Effect{Base: newBase(), Eyeball: true} },
		mapFlags: classFlags,
		resolve:  resolveClass,
	}
	kindTable[KindBehavior] = kindInfo{
		new:      func() Object { return &Behavior{Base: newBase(), Eyeball: true} },
		mapFlags: classFlags,
		resolve:  resolveClass,
	}
	kindTable[KindLayer] = kindInfo{
		new: func() Object { return newLayer() },
		mapFlags: func(name string) ChangeFlags {
			switch {
			case name == "blendtype":
				return BlendModeChanged
			case strings.HasPrefix(name, "ao"):
				return AOChanged
			case strings.HasPrefix(name, "shadow"):
				return ShadowChanged
			case strings.HasPrefix(name, "lightprobe") || strings.HasPrefix(name, "probe") || name == "fastibl":
				return ProbeChanged
			case slices.Contains(layerSizeProps, strings.TrimSuffix(name, "units")):
				return LayerSizeChanged
			}
			return 0
		},
	}
	kindTable[KindCamera] = kindInfo{
		new: func() Object {
			c := &Camera{FOV: 60, ClipNear: 10, ClipFar: 5000}
			c.Node.Base = newBase()
			c.defaults()
			return c
		},
		mapFlags: func(name string) ChangeFlags { return CameraChanged },
	}
	kindTable[KindLight] = kindInfo{
		new: func() Object { return newLight() },
		mapFlags: func(name string) ChangeFlags {
			switch {
			case name == "castshadow" || strings.HasPrefix(name, "shdw"):
				return ShadowChanged
			}
			return LightChanged
		},
	}
	kindTable[KindModel] = kindInfo{
		new: func() Object {
			m := &Model{Mesh: MeshRef{Part: -1}, PoseRoot: -1, EdgeTess: 4, InnerTess: 4}
			m.Node.Base = newBase()
			m.defaults()
			return m
		},
		mapFlags: func(name string) ChangeFlags {
			if name == "sourcepath" {
				return MeshChanged
			}
			return 0
		},
	}
	kindTable[KindGroup] = kindInfo{
		new: func() Object {
			g := &Group{}
			g.Node.Base = newBase()
			g.defaults()
			return g
		},
	}
	kindTable[KindText] = kindInfo{
		new: func() Object { return newText() },
		mapFlags: func(name string) ChangeFlags {
			if props.FlagsFor(name) == props.TextTextureChanges {
				return TextTextureChanged
			}
			return 0
		},
	}
	kindTable[KindComponent] = kindInfo{
		new: func() Object {
			c := &Component{}
			c.Node.Base = newBase()
			c.defaults()
			return c
		},
	}
	kindTable[KindAlias] = kindInfo{
		new: func() Object {
			a := &Alias{}
			a.Node.Base = newBase()
			a.defaults()
			return a
		},
	}
	for _, f := range bindFields(reflect.TypeFor[Node]()) {
		commonProps[f.name] = true
	}
	for k := KindScene; k < KindsN; k++ {
		ki := &kindTable[k]
		ki.fields = bindFields(reflect.TypeOf(ki.new()).Elem())
		ki.byName = make(map[string]*field, len(ki.fields))
		for _, f := range ki.fields {
			ki.byName[f.name] = f
		}
	}
}

// commonProps are the properties of [Base] and [Node], whose change
// flags do not depend on the kind.
var commonProps = map[string]bool{}

var layerSizeProps = []string{"horzfields", "vertfields", "left", "width", "right", "top", "height", "bottom"}

func newBase() Base {
	return Base{EndTime: 10000}
}

func newDefaultMaterial() *DefaultMaterial {
	white := props.ColorRGBA{R: 1, G: 1, B: 1, A: 1}
	return &DefaultMaterial{MaterialBase: MaterialBase{Base: newBase()}, Diffuse: white,
		EmissiveColor: white, SpecularTint: white, IOR: 1.5, Opacity: 100, BumpAmount: 0.5,
		DisplaceAmount: 20, TranslucentFalloff: 1}
}

func newLayer() *Layer {
	l := &Layer{Width: 100, Height: 100, AODistance: 5, AOSoftness: 50, AOSampleRate: 2, AODither: true,
		ShadowDistance: 10, ShadowSoftness: 100, ProbeBrightness: 100, FastIBL: true,
		ProbeHorizon: -1, ProbeFOV: 180, Probe2Fade: 1, Probe2Window: 1, Probe2Position: 0.5,
		BackgroundColor: props.ColorRGBA{A: 1}}
	l.Node.Base = newBase()
	l.defaults()
	return l
}

func newLight() *Light {
	white := props.ColorRGBA{R: 1, G: 1, B: 1, A: 1}
	l := &Light{Diffuse: white, Specular: white, Ambient: props.ColorRGBA{A: 1}, Brightness: 100,
		AreaWidth: 100, AreaHeight: 100, ShadowFactor: 10, ShadowFilter: 35, ShadowMapRes: 9,
		ShadowMapFar: 5000, ShadowMapFOV: 90}
	l.Node.Base = newBase()
	l.defaults()
	return l
}

func newText() *Text {
	t := &Text{Text: "Text", Color: props.ColorRGBA{R: 1, G: 1, B: 1, A: 1}, Font: "TitilliumWeb-Regular",
		Size: 36, HorizontalAlign: AlignCenter, VerticalAlign: AlignMiddle, WordWrap: WrapWord}
	t.Node.Base = newBase()
	t.defaults()
	return t
}

// MapChangeFlags returns the change categories of the given changes
// to the given object: the generic eyeball, transform, opacity, time,
// data input and reference bits, and the bits specific to its kind.
func MapChangeFlags(obj Object, changes *props.ChangeList) ChangeFlags {
	b := obj.AsBase()
	cf := changes.Flags()
	var flags ChangeFlags
	if cf.Has(props.VisibilityChanges) {
		flags |= EyeballChanged
	}
	if cf.Has(props.TransformChanges) {
		flags |= TransformChanged
	}
	if cf.Has(props.OpacityChanges) {
		flags |= OpacityChanged
	}
	ki := &kindTable[b.kind]
	for _, name := range changes.Keys() {
		base, _ := splitComponent(name)
		switch base {
		case "starttime", "endtime":
			flags |= TimeChanged
			continue
		case "controlledproperty":
			flags |= DataInputChanged
			continue
		}
		if commonProps[base] {
			continue
		}
		if f := ki.field(base); f != nil && f.isRef {
			flags |= ReferenceChanged
		}
		if ki.mapFlags != nil {
			flags |= ki.mapFlags(base)
		}
	}
	return flags
}
