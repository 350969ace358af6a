// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/anim"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/meta"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

type slideScene struct {
	p                      *Presentation
	scene, layer           tree.Handle
	camera, light          tree.Handle
	cube, sphere           tree.Handle
	master, slide1, slide2 tree.Handle
}

// newSlideScene builds a scene whose master slide has the layer,
// camera, light and cube. Slide 1 hides the cube, and the sphere only
// appears on slide 2.
func newSlideScene(t *testing.T) *slideScene {
	s := &slideScene{}
	s.p, s.scene, s.layer = newTestScene(t)
	p := s.p
	s.camera = add(t, p, KindCamera, "camera", s.layer)
	s.light = add(t, p, KindLight, "light", s.layer)
	s.cube = add(t, p, KindModel, "cube", s.layer)
	s.sphere = add(t, p, KindModel, "sphere", s.layer)
	s.master = add(t, p, KindSlide, "master", tree.Nil)
	require.NoError(t, p.AddMasterSlide(s.scene, s.master))
	s.slide1 = add(t, p, KindSlide, "slide1", s.master)
	s.slide2 = add(t, p, KindSlide, "slide2", s.master)

	ms := p.Slide(s.master)
	for _, h := range []tree.Handle{s.layer, s.camera, s.light, s.cube} {
		assert.True(t, ms.AddMember(h))
	}
	assert.False(t, ms.AddMember(s.cube))
	s1 := p.Slide(s.slide1)
	s1.AddChanges(s.cube, props.NewChangeList(props.Change{Name: "eyeball", Value: "False"}))
	s2 := p.Slide(s.slide2)
	s2.AddMember(s.sphere)
	s2.AddChanges(s.sphere, props.NewChangeList(
		props.Change{Name: "eyeball", Value: "True"},
		props.Change{Name: "opacity", Value: "50"}))
	require.NoError(t, p.ResolveReferences())
	p.ComputeAllRollbacks()
	return s
}

func (s *slideScene) model(h tree.Handle) *Model {
	m, _ := As[*Model](s.p, h)
	return m
}

func TestMasterSlides(t *testing.T) {
	s := newSlideScene(t)
	p := s.p
	assert.Equal(t, s.master, p.Master())
	assert.Equal(t, s.master, p.MasterSlide(s.scene))
	assert.Equal(t, []tree.Handle{s.master}, p.MasterSlides())
	assert.Equal(t, s.master, p.MasterOf(s.slide1))
	assert.Equal(t, s.master, p.MasterOf(s.master))
	assert.Equal(t, s.scene, p.Slide(s.master).Scope)

	other := add(t, p, KindSlide, "other", tree.Nil)
	assert.Error(t, p.AddMasterSlide(s.scene, other))
	assert.Error(t, p.AddMasterSlide(s.layer, other))
	assert.Error(t, p.AddMasterSlide(s.scene, s.slide1))

	comp := add(t, p, KindComponent, "comp", s.layer)
	require.NoError(t, p.AddMasterSlide(comp, other))
	c, _ := As[*Component](p, comp)
	assert.Equal(t, other, c.MasterSlide)
	inner := add(t, p, KindGroup, "inner", comp)
	assert.Equal(t, comp, p.ScopeOf(inner))
	assert.Equal(t, s.scene, p.ScopeOf(s.cube))
}

func TestRollbacks(t *testing.T) {
	s := newSlideScene(t)
	p := s.p
	cube, sphere := p.Base(s.cube), p.Base(s.sphere)

	require.NotNil(t, cube.MasterRollback)
	assert.Equal(t, []string{"eyeball"}, cube.MasterRollback.Keys())
	v, _ := cube.MasterRollback.Value("eyeball")
	assert.Equal(t, "True", v)

	require.NotNil(t, sphere.MasterRollback)
	assert.Equal(t, []string{"eyeball", "opacity"}, sphere.MasterRollback.Keys())
	v, _ = sphere.MasterRollback.Value("eyeball")
	assert.Equal(t, "False", v)
	v, _ = sphere.MasterRollback.Value("opacity")
	assert.Equal(t, "100", v)

	assert.Nil(t, p.Base(s.camera).MasterRollback)
}

func TestSwitchSlide(t *testing.T) {
	s := newSlideScene(t)
	p := s.p
	cube, sphere := s.model(s.cube), s.model(s.sphere)
	var notified []string
	cube.Subscribe(func(ev PropertyEvent) { notified = append(notified, ev.Keys()...) })

	assert.Equal(t, s.master, p.CurrentSlide(s.master))
	require.NoError(t, p.SwitchSlide(s.master, s.slide1))
	assert.Equal(t, s.slide1, p.CurrentSlide(s.master))
	assert.False(t, cube.Eyeball)
	assert.False(t, sphere.Eyeball)
	assert.Contains(t, notified, "eyeball")

	require.NoError(t, p.SwitchSlide(s.master, s.slide2))
	assert.True(t, cube.Eyeball)
	assert.True(t, sphere.Eyeball)
	assert.Equal(t, float32(50), sphere.Opacity)

	// going back gives the same state as the first visit
	require.NoError(t, p.SwitchSlide(s.master, s.slide1))
	assert.False(t, cube.Eyeball)
	assert.False(t, sphere.Eyeball)
	assert.Equal(t, float32(100), sphere.Opacity)

	assert.ErrorIs(t, p.SwitchSlide(s.master, s.cube), ErrNotFound)
	assert.ErrorIs(t, p.SwitchSlide(s.slide1, s.slide2), ErrInvalidHandle)
}

func TestDestroyObjectOnSlides(t *testing.T) {
	s := newSlideScene(t)
	p := s.p
	s1 := p.Slide(s.slide1)
	s1.Tracks = append(s1.Tracks, &AnimationTrack{Target: s.cube, Property: "position.x",
		Keys: []anim.Keyframe{{Time: 0, Value: 0}, {Time: 1000, Value: 10}}})
	owned := &Action{ID: "owned", Owner: s.cube, Active: true, Event: "onPressureDown"}
	aimed := &Action{ID: "aimed", Owner: s.camera, Active: true, Event: "onPressureDown",
		Target: Ref{Target: "#cube"}}
	s1.Actions = append(s1.Actions, owned, aimed)
	require.NoError(t, p.ResolveObject(s.slide1))
	require.Equal(t, s.cube, aimed.Target.Handle)
	require.NoError(t, p.SwitchSlide(s.master, s.slide1))

	p.Tree().Destroy(s.cube)
	ms := p.Slide(s.master)
	assert.False(t, ms.IsMember(s.cube))
	assert.NotContains(t, ms.Members, s.cube)
	assert.NotContains(t, ms.rollbacks, s.cube)
	assert.False(t, s1.Changes.Has(s.cube))
	assert.Empty(t, s1.TracksFor(s.cube))
	assert.Equal(t, []*Action{aimed}, s1.Actions)
	assert.True(t, aimed.Target.Handle.IsNil())

	require.NoError(t, p.SwitchSlide(s.master, s.slide2))
	require.NoError(t, p.SwitchSlide(s.master, s.slide1))
	assert.Equal(t, s.slide1, p.CurrentSlide(s.master))

	p.Tree().Destroy(s.slide1)
	assert.Equal(t, s.master, p.CurrentSlide(s.master))
	require.NoError(t, p.SwitchSlide(s.master, s.slide2))
	assert.True(t, s.model(s.sphere).Eyeball)
}

func TestSlideNavigation(t *testing.T) {
	s := newSlideScene(t)
	p := s.p
	assert.Equal(t, 2, p.NumSlides(s.master))
	assert.Equal(t, s.master, p.SlideByIndex(s.master, 0))
	assert.Equal(t, s.slide1, p.SlideByIndex(s.master, 1))
	assert.Equal(t, s.slide2, p.SlideByIndex(s.master, 2))
	assert.True(t, p.SlideByIndex(s.master, 3).IsNil())
	assert.Equal(t, 2, p.SlideIndex(s.slide2))
	assert.Equal(t, 0, p.SlideIndex(s.master))
	assert.Equal(t, s.slide1, p.SlideByName(s.master, "slide1"))
	assert.Equal(t, s.slide2, p.SlideByName(s.master, "#slide2"))
	assert.True(t, p.SlideByName(s.master, "slide3").IsNil())
	assert.Equal(t, s.slide1, p.InitialSlide(s.master))

	assert.True(t, p.NeighborSlide(s.slide2, 1, false).IsNil())
	assert.Equal(t, s.slide1, p.NeighborSlide(s.slide2, 1, true))
	assert.Equal(t, s.slide2, p.NeighborSlide(s.slide1, -1, true))
	assert.Equal(t, s.slide2, p.NeighborSlide(s.slide1, 1, false))

	target := func(slide tree.Handle, to string) tree.Handle {
		_, err := p.SetProperty(slide, "playthroughto", to)
		require.NoError(t, err)
		h, _ := p.PlayThroughTarget(slide)
		return h
	}
	h, ok := p.PlayThroughTarget(s.slide1)
	assert.True(t, ok)
	assert.Equal(t, s.slide2, h)
	assert.True(t, target(s.slide2, "Next").IsNil())
	assert.Equal(t, s.slide1, target(s.slide2, "Next Wrap"))
	assert.Equal(t, s.slide1, target(s.slide2, "Previous"))
	assert.Equal(t, s.slide1, target(s.slide2, "1"))
	assert.Equal(t, s.slide2, target(s.slide1, "#slide2"))
	assert.Equal(t, s.slide2, target(s.slide1, "slide2"))
}

func TestPlayThrough(t *testing.T) {
	var pt PlayThrough
	require.NoError(t, pt.UnmarshalText([]byte("Previous Wrap")))
	assert.Equal(t, PlayThrough{Kind: PlayThroughPrevious, Wrap: true}, pt)
	assert.Equal(t, "Previous Wrap", pt.String())
	require.NoError(t, pt.UnmarshalText([]byte("3")))
	assert.Equal(t, PlayThrough{Kind: PlayThroughIndex, Index: 3}, pt)
	assert.Error(t, pt.UnmarshalText([]byte("Next Slide Please")))
	require.NoError(t, pt.UnmarshalText(nil))
	assert.Equal(t, "Next", pt.String())
}

func TestDuration(t *testing.T) {
	s := newSlideScene(t)
	p := s.p
	assert.Equal(t, int32(10000), p.Duration(s.slide1))

	p.Slide(s.slide1).AddChanges(s.light, props.NewChangeList(props.Change{Name: "endtime", Value: "12000"}))
	assert.Equal(t, int32(12000), p.Duration(s.slide1))
	assert.Equal(t, int32(10000), p.Duration(s.slide2))

	p.Slide(s.slide2).Tracks = append(p.Slide(s.slide2).Tracks, &AnimationTrack{
		Target: s.sphere, Property: "opacity",
		Keys: []anim.Keyframe{{Time: 0, Value: 0}, {Time: 15000, Value: 100}},
	})
	assert.Equal(t, int32(15000), p.Duration(s.slide2))
}

func TestAnimationTrack(t *testing.T) {
	s := newSlideScene(t)
	p := s.p
	cube := s.model(s.cube)

	tr := &AnimationTrack{Target: s.cube, Property: "position.x", Curve: anim.Linear,
		Keys: []anim.Keyframe{{Time: 0, Value: 0}, {Time: 1000, Value: 10}}}
	assert.Equal(t, props.Change{Name: "position.x", Value: "5"}, tr.Evaluate(500))
	start, end := tr.Domain()
	assert.Equal(t, float32(0), start)
	assert.Equal(t, float32(1000), end)
	assert.False(t, (&AnimationTrack{}).Evaluate(0).Valid())

	p.EvaluateTracks([]*AnimationTrack{tr}, 500)
	assert.Equal(t, float32(5), cube.Position.X)

	dyn := tr.Clone()
	dyn.Dynamic = true
	p.Slide(s.slide1).Tracks = append(p.Slide(s.slide1).Tracks, dyn)
	require.NoError(t, p.SwitchSlide(s.master, s.slide1))
	assert.Equal(t, float32(5), dyn.Keys[0].Value)
	assert.Equal(t, float32(0), tr.Keys[0].Value)
	assert.Equal(t, float32(5), dyn.Value(0))
	assert.Len(t, p.ActiveTracks(s.slide1), 1)
	assert.Len(t, p.Slide(s.slide1).TracksFor(s.cube), 1)
}

func TestActions(t *testing.T) {
	s := newSlideScene(t)
	p := s.p
	a := &Action{ID: "act", Owner: s.cube, Active: true, Event: "onPressureDown",
		Target: Ref{Target: "#camera"}, Handler: ParseHandlerKind("Go to Slide"),
		Args: []HandlerArgument{{Name: "Slide", Type: props.String, ArgType: ArgSlide, Value: "slide2"}}}
	p.Slide(s.slide1).Actions = append(p.Slide(s.slide1).Actions, a)
	require.NoError(t, p.ResolveObject(s.slide1))

	assert.Equal(t, s.cube, a.Trigger.Handle)
	assert.Equal(t, s.camera, a.Target.Handle)
	assert.True(t, a.Matches(s.cube, "onPressureDown"))
	assert.False(t, a.Matches(s.camera, "onPressureDown"))
	assert.Equal(t, HandlerGoToSlide, a.Handler)
	assert.Equal(t, "slide2", a.Arg("Slide").Value)
	assert.Nil(t, a.ArgAt(1))
	assert.Len(t, p.ActiveActions(s.slide1), 1)
	assert.Empty(t, p.ActiveActions(s.master))

	c := a.Clone()
	c.Args[0].Value = "slide1"
	assert.Equal(t, "slide2", a.Args[0].Value)

	assert.Equal(t, HandlerBehavior, ParseHandlerKind("spin"))
	assert.Equal(t, HandlerNextSlide, ParseHandlerKind("next slide"))
	assert.Equal(t, "Emit Signal", HandlerEmitSignal.String())
}

func TestDataInput(t *testing.T) {
	p, _, layer := newTestScene(t)
	bh, err := meta.ParseBehavior(strings.NewReader(`/*[[
	<Property name="velocity" type="Float" default="2"/>
]]*/`))
	require.NoError(t, err)
	p.Classes.Set("mover", &Class{ID: "mover", Name: "Mover", Kind: KindBehavior, Behavior: bh})
	h := add(t, p, KindBehavior, "behavior", layer,
		props.Change{Name: "class", Value: "#mover"},
		props.Change{Name: "controlledproperty", Value: "$speed velocity"})
	assert.Empty(t, p.DataInputTargets("speed"))

	require.NoError(t, p.ResolveReferences())
	v, err := p.Property(h, "velocity")
	require.NoError(t, err)
	assert.Equal(t, props.FloatValue(2), v)
	assert.Equal(t, []DataInputTarget{{Object: h, Property: "velocity"}}, p.DataInputTargets("speed"))

	c, err := p.SetProperty(h, "velocity", "7.5")
	require.NoError(t, err)
	assert.Equal(t, props.Change{Name: "velocity", Value: "7.5"}, c)
	_, err = p.SetProperty(h, "velocity", "fast")
	assert.Error(t, err)
	assert.Equal(t, ClassPropertyChanged, MapChangeFlags(p.Object(h), props.NewChangeList(c)))

	_, err = p.SetProperty(h, "controlledproperty", "$speed2 velocity")
	require.NoError(t, err)
	assert.Empty(t, p.DataInputTargets("speed"))
	assert.Len(t, p.DataInputTargets("speed2"), 1)
	assert.Equal(t, []string{"speed2"}, p.BoundDataInputs())

	p.Tree().Destroy(h)
	assert.Empty(t, p.BoundDataInputs())
}

func TestDataInputEntry(t *testing.T) {
	var typ DataInputType
	require.NoError(t, typ.UnmarshalText([]byte("Ranged Number")))
	assert.Equal(t, DataInputRangedNumber, typ)
	require.NoError(t, typ.UnmarshalText([]byte("RangedNumber")))
	assert.Equal(t, DataInputRangedNumber, typ)

	e := &DataInputEntry{Name: "speed", Type: DataInputRangedNumber, Min: 0, Max: 10, HasRange: true}
	assert.Equal(t, float32(10), e.Clamp(12))
	assert.Equal(t, float32(0), e.Clamp(-1))
	assert.Equal(t, float32(4), e.Clamp(4))

	cps := ParseControlledProperties("$a position $b opacity $dangling")
	assert.Equal(t, []ControlledProperty{{DataInput: "a", Property: "position"}, {DataInput: "b", Property: "opacity"}}, cps)
}

func TestOptionalReferences(t *testing.T) {
	p, _, layer := newTestScene(t)
	l := add(t, p, KindLight, "light", layer, props.Change{Name: "scope", Value: "#nowhere"})
	require.NoError(t, p.ResolveReferences())
	light, _ := As[*Light](p, l)
	assert.True(t, light.Scope.IsSet())
	assert.False(t, light.Scope.IsResolved())

	group := add(t, p, KindGroup, "group", layer)
	_, err := p.SetProperty(l, "scope", "#group")
	require.NoError(t, err)
	assert.Equal(t, group, light.Scope.Handle)
}
