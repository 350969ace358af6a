// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/keylist"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

// PlayThroughKind is how a play through target is given.
type PlayThroughKind int32

const (
	// PlayThroughNext is the next slide.
	PlayThroughNext PlayThroughKind = iota

	// PlayThroughPrevious is the previous slide.
	PlayThroughPrevious

	// PlayThroughIndex is a slide index, see [Presentation.SlideByIndex].
	PlayThroughIndex

	// PlayThroughName is a slide by #id or name.
	PlayThroughName
)

// PlayThrough is the slide a slide in [PlayThroughTo] mode continues
// with when its timeline completes. Its text form is Next or Previous,
// optionally followed by Wrap, a slide index, or a slide #id or name.
type PlayThrough struct {
	Kind  PlayThroughKind
	Index int
	Name  string

	// Wrap is whether next and previous wrap around at the ends.
	Wrap bool
}

func (pt PlayThrough) String() string {
	switch pt.Kind {
	case PlayThroughIndex:
		return strconv.Itoa(pt.Index)
	case PlayThroughName:
		return pt.Name
	}
	s := "Next"
	if pt.Kind == PlayThroughPrevious {
		s = "Previous"
	}
	if pt.Wrap {
		s += " Wrap"
	}
	return s
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (pt *PlayThrough) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	*pt = PlayThrough{}
	fields := strings.Fields(s)
	if len(fields) > 0 {
		switch strings.ToLower(fields[0]) {
		case "next", "previous":
			if strings.EqualFold(fields[0], "previous") {
				pt.Kind = PlayThroughPrevious
			}
			if len(fields) == 2 && strings.EqualFold(fields[1], "wrap") {
				pt.Wrap = true
			} else if len(fields) > 1 {
				return fmt.Errorf("graph: invalid play through target %q", s)
			}
			return nil
		}
	}
	if s == "" {
		return nil
	}
	if i, err := strconv.Atoi(s); err == nil {
		pt.Kind, pt.Index = PlayThroughIndex, i
		return nil
	}
	pt.Kind, pt.Name = PlayThroughName, s
	return nil
}

// Slide is a state of the objects of a scope. A master slide holds the
// baseline state of the scope and the child slides the deltas on top
// of it.
type Slide struct {
	Base
	PlayMode         PlayMode    `uip:"playmode"`
	InitialPlayState PlayState   `uip:"initialplaystate"`
	PlayThroughTo    PlayThrough `uip:"playthroughto"`

	// Scope is the scene or component whose objects the slide controls.
	// It is set on master slides.
	Scope tree.Handle

	// Members are the objects of the slide, in order of addition.
	Members []tree.Handle

	// Changes are the property changes of the slide by object, in the
	// order they are applied.
	Changes keylist.List[tree.Handle, *props.ChangeList]

	// Tracks are the animation tracks of the slide.
	Tracks []*AnimationTrack

	// Actions are the actions of the slide.
	Actions []*Action

	members map[tree.Handle]bool

	// current is the current child slide of a master.
	current tree.Handle

	// rollbacks are the objects with master rollback lists in the
	// scope of a master.
	rollbacks []tree.Handle
}

func newSlide() *Slide {
	return &Slide{Base: newBase()}
}

// AddMember adds the object to the members of the slide. It returns
// false if it already was a member.
func (s *Slide) AddMember(h tree.Handle) bool {
	if s.members == nil {
		s.members = map[tree.Handle]bool{}
	}
	if s.members[h] {
		return false
	}
	s.members[h] = true
	s.Members = append(s.Members, h)
	return true
}

// IsMember returns whether the object is a member of the slide.
func (s *Slide) IsMember(h tree.Handle) bool {
	return s.members[h]
}

// RemoveMember removes the object and its changes from the slide.
func (s *Slide) RemoveMember(h tree.Handle) {
	if !s.members[h] {
		return
	}
	delete(s.members, h)
	s.Members = slices.DeleteFunc(s.Members, func(m tree.Handle) bool { return m == h })
	s.Changes.DeleteByKey(h)
}

// AddChanges appends changes for the object to the slide.
func (s *Slide) AddChanges(h tree.Handle, changes *props.ChangeList) {
	if changes.IsEmpty() {
		return
	}
	if cl, ok := s.Changes.AtTry(h); ok {
		cl.AppendList(changes)
		return
	}
	s.Changes.Set(h, changes.Clone())
}

// SetChanges replaces the changes of the slide for the object.
func (s *Slide) SetChanges(h tree.Handle, changes *props.ChangeList) {
	if changes == nil || changes.IsEmpty() {
		s.Changes.DeleteByKey(h)
		return
	}
	s.Changes.Set(h, changes)
}

// ChangesFor returns the changes of the slide for the object, or nil.
func (s *Slide) ChangesFor(h tree.Handle) *props.ChangeList {
	return s.Changes.At(h)
}

// TracksFor returns the animation tracks of the slide targeting the object.
func (s *Slide) TracksFor(h tree.Handle) []*AnimationTrack {
	var res []*AnimationTrack
	for _, t := range s.Tracks {
		if t.Target == h {
			res = append(res, t)
		}
	}
	return res
}

// Slide returns the slide with the given handle, or nil.
func (p *Presentation) Slide(h tree.Handle) *Slide {
	s, _ := As[*Slide](p, h)
	return s
}

// AddMasterSlide makes the given slide the master slide of the given
// scope, which is the scene or a component. A scope has one master.
func (p *Presentation) AddMasterSlide(scope, master tree.Handle) error {
	s := p.Slide(master)
	if s == nil || !p.objects.Parent(master).IsNil() {
		return fmt.Errorf("graph: %v is not an unparented slide: %w", master, ErrInvalidHandle)
	}
	if !p.MasterSlide(scope).IsNil() {
		return fmt.Errorf("graph: %q already has a master slide", p.ID(scope))
	}
	switch p.KindOf(scope) {
	case KindScene:
	case KindComponent:
		c, _ := As[*Component](p, scope)
		c.MasterSlide = master
	default:
		return fmt.Errorf("graph: %q can not have slides", p.ID(scope))
	}
	s.Scope = scope
	p.masters = append(p.masters, master)
	return nil
}

// MasterSlide returns the master slide of the given scope, or nil.
func (p *Presentation) MasterSlide(scope tree.Handle) tree.Handle {
	for _, m := range p.masters {
		if s := p.Slide(m); s != nil && s.Scope == scope {
			return m
		}
	}
	return tree.Nil
}

// Master returns the master slide of the scene.
func (p *Presentation) Master() tree.Handle {
	return p.MasterSlide(p.scene)
}

// MasterSlides returns all master slides in scope order.
func (p *Presentation) MasterSlides() []tree.Handle {
	return slices.Clone(p.masters)
}

// MasterOf returns the master slide of a slide: the slide itself for a
// master, and its parent otherwise.
func (p *Presentation) MasterOf(slide tree.Handle) tree.Handle {
	if parent := p.objects.Parent(slide); !parent.IsNil() {
		return parent
	}
	return slide
}

// ScopeOf returns the scope (scene or component) of an object: the
// nearest component ancestor, or the scene.
func (p *Presentation) ScopeOf(h tree.Handle) tree.Handle {
	scope := p.scene
	p.objects.WalkUpParent(h, func(a tree.Handle) bool {
		if p.KindOf(a) == KindComponent {
			scope = a
			return tree.Break
		}
		return tree.Continue
	})
	return scope
}

// SlideByName returns the child slide of the master with the given
// name or #id, or nil.
func (p *Presentation) SlideByName(master tree.Handle, name string) tree.Handle {
	for c := range p.objects.Children(master) {
		b := p.Base(c)
		if b.Name == name || "#"+b.ID == name {
			return c
		}
	}
	return tree.Nil
}

// SlideByIndex returns the slide with the given index in the scope of
// the master: 0 is the master and 1 is its first child slide.
func (p *Presentation) SlideByIndex(master tree.Handle, index int) tree.Handle {
	if index == 0 {
		return master
	}
	return p.objects.Child(master, index-1)
}

// SlideIndex returns the index of the slide as used by
// [Presentation.SlideByIndex].
func (p *Presentation) SlideIndex(slide tree.Handle) int {
	if p.objects.Parent(slide).IsNil() {
		return 0
	}
	return p.objects.IndexInParent(slide) + 1
}

// NumSlides returns the number of child slides of the master.
func (p *Presentation) NumSlides(master tree.Handle) int {
	return p.objects.NumChildren(master)
}

// CurrentSlide returns the current slide of the scope of the master.
func (p *Presentation) CurrentSlide(master tree.Handle) tree.Handle {
	s := p.Slide(master)
	if s == nil {
		return tree.Nil
	}
	if s.current.IsNil() || !p.objects.Valid(s.current) {
		return master
	}
	return s.current
}

// InitialSlide returns the slide a scope starts on: the first child
// slide of the master, or the master if it has none.
func (p *Presentation) InitialSlide(master tree.Handle) tree.Handle {
	if c := p.objects.FirstChild(master); !c.IsNil() {
		return c
	}
	return master
}

// NeighborSlide returns the child slide after (delta 1) or before
// (delta -1) the given one, wrapping around if wrap is set. It
// returns nil at the ends without wrap.
func (p *Presentation) NeighborSlide(slide tree.Handle, delta int, wrap bool) tree.Handle {
	master := p.MasterOf(slide)
	n := p.NumSlides(master)
	if n == 0 {
		return tree.Nil
	}
	i := p.SlideIndex(slide) - 1 + delta
	if i < 0 || i >= n {
		if !wrap {
			return tree.Nil
		}
		i = (i%n + n) % n
	}
	return p.objects.Child(master, i)
}

// PlayThroughTarget returns the slide the given slide continues with
// in [PlayThroughTo] mode, and false if there is none.
func (p *Presentation) PlayThroughTarget(slide tree.Handle) (tree.Handle, bool) {
	s := p.Slide(slide)
	if s == nil {
		return tree.Nil, false
	}
	pt := s.PlayThroughTo
	var h tree.Handle
	switch pt.Kind {
	case PlayThroughNext:
		h = p.NeighborSlide(slide, 1, pt.Wrap)
	case PlayThroughPrevious:
		h = p.NeighborSlide(slide, -1, pt.Wrap)
	case PlayThroughIndex:
		h = p.SlideByIndex(p.MasterOf(slide), pt.Index)
	case PlayThroughName:
		h = p.SlideByName(p.MasterOf(slide), pt.Name)
	}
	return h, !h.IsNil()
}

// Duration returns the length of the timeline of the slide in
// milliseconds: the latest end time of the objects of the slide, as
// changed by the slide, and of its animation tracks. Child slides
// include the members of the master.
func (p *Presentation) Duration(slide tree.Handle) int32 {
	s := p.Slide(slide)
	if s == nil {
		return 0
	}
	var dur int32
	consider := func(sl *Slide) {
		for _, m := range sl.Members {
			end := p.Base(m).EndTime
			if cl := s.ChangesFor(m); cl != nil {
				if v, ok := cl.Value("endtime"); ok {
					if e, err := strconv.Atoi(v); err == nil {
						end = int32(e)
					}
				}
			}
			dur = max(dur, end)
		}
		for _, t := range sl.Tracks {
			_, end := t.Domain()
			dur = max(dur, int32(end))
		}
	}
	consider(s)
	if master := p.MasterOf(slide); master != slide {
		consider(p.Slide(master))
	}
	return dur
}

// ComputeRollbacks computes the master rollback lists of the objects
// in the scope of the master slide: for every property a child slide
// changes, the value the master gives it. Objects that are not members
// of the master roll back to hidden.
func (p *Presentation) ComputeRollbacks(master tree.Handle) {
	ms := p.Slide(master)
	if ms == nil {
		return
	}
	for _, h := range ms.rollbacks {
		if b := p.Base(h); b != nil {
			b.MasterRollback = nil
		}
	}
	ms.rollbacks = nil
	add := func(h tree.Handle, c props.Change) {
		b := p.Base(h)
		if b.MasterRollback == nil {
			b.MasterRollback = &props.ChangeList{}
			ms.rollbacks = append(ms.rollbacks, h)
		}
		if !b.MasterRollback.Has(c.Name) {
			b.MasterRollback.Append(c)
		}
	}
	for c := range p.objects.Children(master) {
		cs := p.Slide(c)
		for _, h := range cs.Members {
			if !ms.IsMember(h) && AsNode(p.Object(h)) != nil {
				add(h, props.Change{Name: "eyeball", Value: props.FormatBool(false)})
			}
		}
		for h, cl := range cs.Changes.All() {
			for _, name := range cl.Keys() {
				if mcl := ms.ChangesFor(h); mcl != nil {
					if v, ok := mcl.Value(name); ok {
						add(h, props.Change{Name: name, Value: v})
						continue
					}
				}
				if !ms.IsMember(h) && name == "eyeball" {
					continue
				}
				v, err := p.Property(h, name)
				if err != nil {
					if pd := p.PropertyDef(h, name); pd != nil {
						v = pd.DefaultValue()
					} else {
						continue
					}
				}
				add(h, props.NewChange(name, v))
			}
		}
	}
}

// ComputeAllRollbacks computes the rollback lists of every scope.
func (p *Presentation) ComputeAllRollbacks() {
	for _, m := range p.masters {
		p.ComputeRollbacks(m)
	}
}

// SwitchSlide makes the given slide current in the scope of the master:
// the rollback lists of the scope are applied and notified, then the
// changes of the new slide, and the animation tracks of the master and
// the new slide are restarted. Switching to the master itself applies
// the master changes.
func (p *Presentation) SwitchSlide(master, to tree.Handle) error {
	ms := p.Slide(master)
	if ms == nil || !p.objects.Parent(master).IsNil() {
		return fmt.Errorf("graph: %v is not a master slide: %w", master, ErrInvalidHandle)
	}
	if to != master && p.objects.Parent(to) != master {
		return fmt.Errorf("graph: %q is not a slide of %q: %w", p.ID(to), ms.ID, ErrNotFound)
	}
	slog.Debug("switching slide", "presentation", p.Name, "slide", p.ID(to), "from", p.ID(p.CurrentSlide(master)))
	for _, h := range ms.rollbacks {
		if b := p.Base(h); b != nil && b.MasterRollback != nil {
			p.ApplyAndNotify(h, b.MasterRollback)
		}
	}
	ts := p.Slide(to)
	for h, cl := range ts.Changes.All() {
		p.ApplyAndNotify(h, cl)
	}
	ms.current = to
	for _, t := range ms.Tracks {
		t.Begin(p)
	}
	if to != master {
		for _, t := range ts.Tracks {
			t.Begin(p)
		}
	}
	return nil
}

// ActiveTracks returns the animation tracks that run while the slide
// is current: those of the master and those of the slide.
func (p *Presentation) ActiveTracks(slide tree.Handle) []*AnimationTrack {
	s := p.Slide(slide)
	if s == nil {
		return nil
	}
	master := p.MasterOf(slide)
	if master == slide {
		return slices.Clone(s.Tracks)
	}
	return append(slices.Clone(p.Slide(master).Tracks), s.Tracks...)
}

// ActiveActions returns the actions that are active while the slide is
// current: those of the master and those of the slide.
func (p *Presentation) ActiveActions(slide tree.Handle) []*Action {
	s := p.Slide(slide)
	if s == nil {
		return nil
	}
	master := p.MasterOf(slide)
	if master == slide {
		return slices.Clone(s.Actions)
	}
	return append(slices.Clone(p.Slide(master).Actions), s.Actions...)
}

// forgetObject drops every slide reference to an object that is being
// destroyed: memberships, changes, tracks, actions it owns, and the
// rollback and current slide state of the masters.
func (p *Presentation) forgetObject(h tree.Handle) {
	is := func(o tree.Handle) bool { return o == h }
	for _, m := range p.masters {
		ms := p.Slide(m)
		if ms == nil {
			continue
		}
		ms.rollbacks = slices.DeleteFunc(ms.rollbacks, is)
		if ms.current == h {
			ms.current = tree.Nil
		}
		p.objects.WalkDown(m, func(sh tree.Handle) bool {
			s := p.Slide(sh)
			if s == nil {
				return tree.Continue
			}
			s.RemoveMember(h)
			s.Changes.DeleteByKey(h)
			s.Tracks = slices.DeleteFunc(s.Tracks, func(t *AnimationTrack) bool { return t.Target == h })
			s.Actions = slices.DeleteFunc(s.Actions, func(a *Action) bool { return a.Owner == h })
			for _, a := range s.Actions {
				if a.Trigger.Handle == h {
					a.Trigger.Handle = tree.Nil
				}
				if a.Target.Handle == h {
					a.Target.Handle = tree.Nil
				}
			}
			return tree.Continue
		})
	}
}
