// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/keylist"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/meta"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

// ProjectSettings are the document level settings of a presentation.
type ProjectSettings struct {
	Author  string
	Company string

	// Width and Height are the output size in pixels.
	Width  int32
	Height int32

	// Rotation is the clockwise rotation of the output.
	Rotation Rotation

	// MaintainAspect is whether the aspect ratio is kept when the
	// output is scaled.
	MaintainAspect bool
}

// ImageScanner determines whether an image file has transparent pixels.
// It is consulted for images that are not in the image buffer registry.
type ImageScanner interface {
	HasTransparency(path string) (bool, error)
}

// Class is an entry of the class registry: the metadata of a custom
// material, effect or behavior, loaded from its class document.
type Class struct {

	// ID is the id by which objects refer to the class.
	ID string

	// Name is the human readable name.
	Name string

	// Kind is [KindCustomMaterial], [KindEffect] or [KindBehavior].
	Kind Kind

	// SourcePath is the path of the class document.
	SourcePath string

	// Only the one matching Kind is set, and only if the class
	// document could be loaded.
	Material *meta.CustomMaterial
	Effect   *meta.Effect
	Behavior *meta.Behavior
}

// Properties returns the property definitions of the class.
func (c *Class) Properties() []*meta.PropertyDef {
	switch {
	case c.Material != nil:
		return c.Material.Properties
	case c.Effect != nil:
		return c.Effect.Properties
	case c.Behavior != nil:
		return c.Behavior.Properties
	}
	return nil
}

// Property returns the named property definition of the class or nil.
func (c *Class) Property(name string) *meta.PropertyDef {
	for _, pd := range c.Properties() {
		if pd.Name == name {
			return pd
		}
	}
	return nil
}

// Presentation is one parsed document: the scene graph, the slides of
// every scope, and the registries the objects refer to.
type Presentation struct {

	// Name identifies the presentation, usually its document path.
	Name string

	// Meta is the data model giving property types and defaults.
	Meta *meta.DataModel

	// Settings are the project settings.
	Settings ProjectSettings

	// Classes is the class registry, by class id.
	Classes keylist.List[string, *Class]

	// ImageBuffers records, by image path, whether the image has
	// transparent pixels.
	ImageBuffers map[string]bool

	// ImageScanner, if set, is consulted for images missing from
	// ImageBuffers.
	ImageScanner ImageScanner

	// DataInputs are the data input declarations that apply to the
	// presentation, by name.
	DataInputs keylist.List[string, *DataInputEntry]

	objects tree.Arena[Object]
	byID    map[string]tree.Handle
	scene   tree.Handle

	// masters are the master slides, in scope order.
	masters []tree.Handle

	dataInputMap    map[string][]DataInputTarget
	structObservers map[tree.Handle]*registry[StructureEvent]

	// resolved is set once references have been resolved, after which
	// changed references are resolved as they are set.
	resolved bool

	autoID int
}

// NewPresentation returns a new empty presentation using the given
// data model, which may be nil to skip metadata defaults.
func NewPresentation(name string, dm *meta.DataModel) *Presentation {
	p := &Presentation{Name: name, Meta: dm}
	p.init()
	return p
}

func (p *Presentation) init() {
	p.ImageBuffers = map[string]bool{}
	p.byID = map[string]tree.Handle{}
	p.dataInputMap = map[string][]DataInputTarget{}
	p.structObservers = map[tree.Handle]*registry[StructureEvent]{}
	p.objects.OnChange = p.structureChanged
	p.objects.OnDestroy = p.destroyed
}

// Tree returns the arena holding the objects. Structural edits made
// through it are reported to structure observers.
func (p *Presentation) Tree() *tree.Arena[Object] {
	return &p.objects
}

// NewObject creates an unparented object of the given kind with the
// given id. An empty id gets a generated one.
func (p *Presentation) NewObject(kind Kind, id string) (tree.Handle, error) {
	if kind <= KindAny || kind >= KindsN {
		return tree.Nil, fmt.Errorf("graph: can not create object of kind %v", kind)
	}
	if id == "" {
		id = p.newID(kind)
	}
	if _, dup := p.byID[id]; dup {
		return tree.Nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	obj := kindTable[kind].new()
	b := obj.AsBase()
	b.ID = id
	b.Name = id
	b.kind = kind
	h := p.objects.New(obj)
	b.handle = h
	p.byID[id] = h
	return h, nil
}

func (p *Presentation) newID(kind Kind) string {
	for {
		p.autoID++
		id := "_" + kind.String() + strconv.Itoa(p.autoID)
		if _, dup := p.byID[id]; !dup {
			return id
		}
	}
}

// Object returns the object with the given handle, or nil.
func (p *Presentation) Object(h tree.Handle) Object {
	return p.objects.Value(h)
}

// As returns the object with the given handle as the given concrete
// type, such as *Model.
func As[T Object](p *Presentation, h tree.Handle) (T, bool) {
	t, ok := p.Object(h).(T)
	return t, ok
}

// Base returns the [Base] of the object with the given handle, or nil.
func (p *Presentation) Base(h tree.Handle) *Base {
	if obj := p.Object(h); obj != nil {
		return obj.AsBase()
	}
	return nil
}

// KindOf returns the kind of the object, or [KindAny] for an invalid handle.
func (p *Presentation) KindOf(h tree.Handle) Kind {
	if b := p.Base(h); b != nil {
		return b.kind
	}
	return KindAny
}

// ID returns the id of the object, or "" for an invalid handle.
func (p *Presentation) ID(h tree.Handle) string {
	if b := p.Base(h); b != nil {
		return b.ID
	}
	return ""
}

// NumObjects returns the number of live objects.
func (p *Presentation) NumObjects() int {
	return p.objects.Len()
}

// Scene returns the scene root, or nil before one is set.
func (p *Presentation) Scene() tree.Handle {
	return p.scene
}

// SetScene makes the given object the scene root. A presentation has
// one scene.
func (p *Presentation) SetScene(h tree.Handle) error {
	if p.KindOf(h) != KindScene {
		return fmt.Errorf("graph: %v is not a scene: %w", h, ErrInvalidHandle)
	}
	if !p.scene.IsNil() {
		return fmt.Errorf("graph: presentation %q already has a scene", p.Name)
	}
	p.scene = h
	return nil
}

// ImageHasTransparency reports whether the image at the given path has
// transparent pixels, from the image buffer registry or else from the
// [ImageScanner], whose answer is recorded. The second result is false
// if neither knows.
func (p *Presentation) ImageHasTransparency(path string) (bool, bool) {
	if t, ok := p.ImageBuffers[path]; ok {
		return t, true
	}
	if p.ImageScanner == nil {
		return false, false
	}
	t, err := p.ImageScanner.HasTransparency(path)
	if err != nil {
		slog.Warn("can not scan image", "presentation", p.Name, "path", path, "err", err)
		return false, false
	}
	p.ImageBuffers[path] = t
	return t, true
}

// SubscribeStructure registers a function called when an object is
// added under, or removed from, the subtree of the given scene or
// master slide.
func (p *Presentation) SubscribeStructure(owner tree.Handle, fn func(ev StructureEvent)) (Subscription, error) {
	k := p.KindOf(owner)
	if k != KindScene && !(k == KindSlide && p.objects.Parent(owner).IsNil()) {
		return Subscription{}, fmt.Errorf("graph: structure observers need a scene or master slide, not %v", k)
	}
	r := p.structObservers[owner]
	if r == nil {
		r = &registry[StructureEvent]{}
		p.structObservers[owner] = r
	}
	return r.add(fn), nil
}

// UnsubscribeStructure removes a structure observer.
func (p *Presentation) UnsubscribeStructure(owner tree.Handle, s Subscription) bool {
	if r := p.structObservers[owner]; r != nil {
		return r.remove(s)
	}
	return false
}

// structureChanged walks up from the parent to the owning scene or
// master slide and notifies its structure observers.
func (p *Presentation) structureChanged(ev tree.Event, parent, child tree.Handle) {
	if len(p.structObservers) == 0 {
		return
	}
	owner := tree.Nil
	p.objects.WalkUp(parent, func(h tree.Handle) bool {
		k := p.KindOf(h)
		if k == KindScene || (k == KindSlide && p.objects.Parent(h).IsNil()) {
			owner = h
			return tree.Break
		}
		return tree.Continue
	})
	if r := p.structObservers[owner]; r != nil {
		r.emit(StructureEvent{Event: ev, Owner: owner, Parent: parent, Node: child})
	}
}

// destroyed unregisters an object that is being destroyed.
func (p *Presentation) destroyed(h tree.Handle) {
	b := p.Base(h)
	if p.byID[b.ID] == h {
		delete(p.byID, b.ID)
	}
	if len(b.Controlled) > 0 {
		p.unregisterControlled(h)
	}
	delete(p.structObservers, h)
	p.forgetObject(h)
	if i := slices.Index(p.masters, h); i >= 0 {
		p.masters = slices.Delete(p.masters, i, i+1)
	}
	if h == p.scene {
		p.scene = tree.Nil
	}
}

// Reset destroys the scene and all slides, leaving an empty
// presentation with the same registries.
func (p *Presentation) Reset() {
	for _, m := range slices.Clone(p.masters) {
		p.objects.Destroy(m)
	}
	p.masters = nil
	p.objects.Destroy(p.scene)
	// detached objects
	for h := range p.objects.All() {
		p.objects.Destroy(h)
	}
	p.scene = tree.Nil
	p.resolved = false
	p.dataInputMap = map[string][]DataInputTarget{}
}

// IsResolved returns whether references have been resolved.
func (p *Presentation) IsResolved() bool {
	return p.resolved
}
