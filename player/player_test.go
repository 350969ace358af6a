// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package player

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/errors"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/graph"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

const mainDoc = `<?xml version="1.0" encoding="UTF-8"?>
<UIP version="6">
<Project>
	<ProjectSettings presentationWidth="800" presentationHeight="600"/>
	<Graph>
		<Scene id="Scene" name="Scene">
			<Layer id="Layer" name="Layer">
				<Model id="Ball" name="Ball" sourcepath="#Sphere" controlledproperty="$Speed opacity $Page @slide $Seek @timeline"/>
				<Model id="Button" name="Button" sourcepath="#Cube"/>
				<Component id="Comp" name="Comp">
					<Model id="Inner" name="Inner" sourcepath="meshes/inner.mesh#2"/>
				</Component>
			</Layer>
		</Scene>
	</Graph>
	<Logic>
		<State id="Master" name="Master">
			<Add ref="#Layer" endtime="1000"/>
			<Add ref="#Ball" endtime="1000"/>
			<Add ref="#Button" endtime="1000">
				<Action id="Next" triggerObject="#Button" event="onPressureDown" targetObject="#Scene" handler="Next Slide"/>
				<Action id="Tint" triggerObject="#Button" event="onPressureUp" targetObject="#Ball" handler="Set Property">
					<HandlerArgument name="Property Name" type="String" argtype="Property" value="opacity"/>
					<HandlerArgument name="Property Value" type="Float" argtype="Dependent" value="25"/>
				</Action>
				<Action id="Chain" triggerObject="#Button" event="onTap" targetObject="#Button" handler="Fire Event">
					<HandlerArgument name="Event" type="String" argtype="Event" value="onPressureUp"/>
				</Action>
				<Action id="Shout" triggerObject="#Button" event="onTap" targetObject="#Button" handler="Emit Signal">
					<HandlerArgument name="Signal Name" type="String" argtype="Signal" value="tapped"/>
				</Action>
				<Action id="Script" triggerObject="#Button" event="onTap" targetObject="#Ball" handler="spin"/>
				<Action id="Echo" triggerObject="#Button" event="onEcho" targetObject="#Button" handler="Fire Event">
					<HandlerArgument name="Event" type="String" argtype="Event" value="onEcho"/>
				</Action>
				<Action id="Seek" triggerObject="#Button" event="onSeek" targetObject="#Scene" handler="Go to Time">
					<HandlerArgument name="Time" type="Float" value="0.75"/>
					<HandlerArgument name="Pause" type="Boolean" value="True"/>
				</Action>
				<Action id="Jump" triggerObject="#Button" event="onJump" targetObject="#Comp" handler="Go to Slide">
					<HandlerArgument name="Slide" type="String" argtype="Slide" value="B"/>
				</Action>
			</Add>
			<Add ref="#Comp" endtime="1000"/>
			<State id="Start" name="Start">
				<Set ref="#Ball">
					<AnimationTrack property="position.x">0 0 1000 100</AnimationTrack>
				</Set>
			</State>
			<State id="Loop" name="Loop" playmode="Looping">
				<Set ref="#Ball">
					<AnimationTrack property="position.x">0 0 1000 100</AnimationTrack>
				</Set>
			</State>
			<State id="Bounce" name="Bounce" playmode="PingPong">
				<Set ref="#Ball">
					<AnimationTrack property="position.x">0 0 1000 100</AnimationTrack>
				</Set>
			</State>
			<State id="Through" name="Through" playmode="Play Through To" playthroughto="Start" initialplaystate="Pause"/>
		</State>
		<State id="CompMaster" component="#Comp">
			<Add ref="#Inner" endtime="2000"/>
			<State id="CompA" name="A"/>
			<State id="CompB" name="B">
				<Set ref="#Inner" eyeball="False"/>
			</State>
		</State>
	</Logic>
</Project>
</UIP>`

const otherDoc = `<UIP version="6"><Project><Graph>
	<Scene id="Scene"><Layer id="Layer"><Model id="Thing" name="Thing" sourcepath="#Cone" controlledproperty="$Speed opacity"/></Layer></Scene>
</Graph></Project></UIP>`

const appDoc = `<application version="1.0">
	<assets initial="main">
		<presentation id="main" src="main.uip"/>
		<presentation id="other" src="other.uip"/>
		<presentation id="broken" src="broken.uip"/>
		<presentation-qml id="hud" args="hud.qml"/>
		<dataInput name="Speed" type="Ranged Number" min="0" max="10"/>
		<dataInput name="Page" type="String"/>
	</assets>
</application>`

type hostCall struct {
	kind   string
	object string
	name   string
}

type testHost struct {
	calls []hostCall
}

func (h *testHost) CallBehavior(pr *Presentation, obj tree.Handle, handler string, args []graph.HandlerArgument) {
	h.calls = append(h.calls, hostCall{"behavior", pr.Graph.ID(obj), handler})
}

func (h *testHost) Signal(pr *Presentation, obj tree.Handle, name string) {
	h.calls = append(h.calls, hostCall{"signal", pr.Graph.ID(obj), name})
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"app/app.uia":     {Data: []byte(appDoc)},
		"app/main.uip":    {Data: []byte(mainDoc)},
		"app/other.uip":   {Data: []byte(otherDoc)},
		"app/broken.uip":  {Data: []byte(`<UIP><Project><Graph/></Project></UIP>`)},
		"app/bad-app.uia": {Data: []byte(`<application><assets initial="broken"><presentation id="broken" src="broken.uip"/></assets></application>`)},
	}
}

func openApp(t *testing.T) (*Application, *testHost) {
	t.Helper()
	host := &testHost{}
	app, err := Open(testFS(), "app/app.uia", Options{Host: host})
	require.NoError(t, err)
	return app, host
}

func sceneTimeline(t *testing.T, app *Application) (*Presentation, *Timeline) {
	t.Helper()
	pr, tl, err := app.timeline("Scene")
	require.NoError(t, err)
	return pr, tl
}

func slideName(pr *Presentation, tl *Timeline) string {
	return pr.Graph.Base(tl.Slide).Name
}

func floatAttr(t *testing.T, app *Application, path, name string) float32 {
	t.Helper()
	v, err := app.Attribute(path, name)
	require.NoError(t, err)
	return v.Float()
}

func TestOpen(t *testing.T) {
	app, _ := openApp(t)
	assert.Equal(t, 2, app.Presentations.Len())
	assert.Equal(t, "main", app.Initial().ID)
	_, err := app.Presentation("broken")
	assert.ErrorIs(t, err, graph.ErrNotFound)
	other, err := app.Presentation("other")
	require.NoError(t, err)
	assert.Equal(t, 2, other.Graph.DataInputs.Len())

	pr, tl := sceneTimeline(t, app)
	assert.Equal(t, "Start", slideName(pr, tl))
	assert.True(t, tl.Playing)
	assert.Equal(t, float32(1000), tl.Duration)
	assert.Equal(t, graph.StopAtEnd, tl.Mode)
	assert.Len(t, pr.Timelines(), 2)

	_, err = Open(testFS(), "app/bad-app.uia", Options{})
	assert.Error(t, err)

	single, err := Open(testFS(), "app/other.uip", Options{})
	require.NoError(t, err)
	assert.Equal(t, "other", single.Initial().ID)
	_, h, err := single.Object("Thing")
	require.NoError(t, err)
	assert.False(t, h.IsNil())
}

func TestObject(t *testing.T) {
	app, _ := openApp(t)
	pr, h, err := app.Object("Scene/Layer/Ball")
	require.NoError(t, err)
	assert.Equal(t, "main", pr.ID)
	assert.Equal(t, "Ball", pr.Graph.ID(h))

	pr, h, err = app.Object("other:#Thing")
	require.NoError(t, err)
	assert.Equal(t, "other", pr.ID)
	assert.Equal(t, "Thing", pr.Graph.ID(h))

	_, _, err = app.Object("nope:#Thing")
	assert.Error(t, err)
	_, _, err = app.Object("#Nothing")
	assert.Error(t, err)

	require.NoError(t, app.SetAttribute("#Ball", "opacity", "40"))
	assert.Equal(t, float32(40), floatAttr(t, app, "#Ball", "opacity"))
	assert.Error(t, app.SetAttribute("#Ball", "opacity", "lots"))
	assert.Equal(t, float32(40), floatAttr(t, app, "#Ball", "opacity"))
	assert.Error(t, app.SetAttribute("#Nothing", "opacity", "1"))
	_, err = app.Attribute("#Ball", "nope")
	assert.Error(t, err)
}

func TestPlayModes(t *testing.T) {
	app, _ := openApp(t)
	pr, tl := sceneTimeline(t, app)

	app.Advance(500)
	assert.Equal(t, float32(50), floatAttr(t, app, "#Ball", "position.x"))
	app.Advance(600)
	assert.False(t, tl.Playing)
	assert.Equal(t, float32(1000), tl.Time)
	assert.Equal(t, float32(100), floatAttr(t, app, "#Ball", "position.x"))

	require.NoError(t, app.GoToSlide("Scene", "Loop"))
	assert.Equal(t, "Loop", slideName(pr, tl))
	app.Advance(1500)
	assert.True(t, tl.Playing)
	assert.InDelta(t, 500, tl.Time, 0.01)
	assert.InDelta(t, 50, floatAttr(t, app, "#Ball", "position.x"), 0.01)

	require.NoError(t, app.GoToSlide("Scene", "#Bounce"))
	app.Advance(1200)
	assert.True(t, tl.Reverse)
	assert.InDelta(t, 80, floatAttr(t, app, "#Ball", "position.x"), 0.01)
	app.Advance(900)
	assert.False(t, tl.Reverse)
	assert.InDelta(t, 10, floatAttr(t, app, "#Ball", "position.x"), 0.01)

	require.NoError(t, app.GoToSlide("Scene", "4"))
	assert.Equal(t, "Through", slideName(pr, tl))
	assert.False(t, tl.Playing)
	app.Advance(2000)
	assert.Equal(t, "Through", slideName(pr, tl))
	require.NoError(t, app.Play("Scene"))
	app.Advance(2000)
	assert.Equal(t, "Start", slideName(pr, tl))
	assert.Equal(t, float32(0), tl.Time)

	require.NoError(t, app.Pause("Scene"))
	app.Advance(100)
	assert.Equal(t, float32(0), tl.Time)
	require.NoError(t, app.GoToTime("Scene", 250))
	assert.InDelta(t, 25, floatAttr(t, app, "#Ball", "position.x"), 0.01)
	require.NoError(t, app.GoToTime("Scene", 5000))
	assert.Equal(t, float32(1000), tl.Time)
}

func TestSlideNavigation(t *testing.T) {
	app, _ := openApp(t)
	pr, tl := sceneTimeline(t, app)

	require.NoError(t, app.PreviousSlide("Scene", false))
	assert.Equal(t, "Start", slideName(pr, tl))
	require.NoError(t, app.PreviousSlide("Scene", true))
	assert.Equal(t, "Through", slideName(pr, tl))
	require.NoError(t, app.NextSlide("Scene", false))
	assert.Equal(t, "Through", slideName(pr, tl))
	require.NoError(t, app.NextSlide("Scene", true))
	assert.Equal(t, "Start", slideName(pr, tl))
	require.NoError(t, app.NextSlide("#Ball", false))
	assert.Equal(t, "Loop", slideName(pr, tl))

	require.NoError(t, app.PrecedingSlide("Scene"))
	assert.Equal(t, "Start", slideName(pr, tl))
	require.NoError(t, app.PrecedingSlide("Scene"))
	assert.Equal(t, "Through", slideName(pr, tl))
	assert.Error(t, app.GoToSlide("Scene", "Nowhere"))
	assert.Error(t, app.GoToSlide("#Nothing", "Start"))
}

func TestComponentTimeline(t *testing.T) {
	app, _ := openApp(t)
	pr, scene := sceneTimeline(t, app)
	_, comp, err := app.timeline("#Inner")
	require.NoError(t, err)
	assert.NotSame(t, scene, comp)
	assert.Equal(t, "A", slideName(pr, comp))
	assert.Equal(t, float32(2000), comp.Duration)

	require.NoError(t, app.GoToSlide("Comp", "B"))
	v, err := app.Attribute("#Inner", "eyeball")
	require.NoError(t, err)
	assert.False(t, v.B)
	assert.Equal(t, "Start", slideName(pr, scene))

	require.NoError(t, app.GoToSlide("Comp", "A"))
	v, err = app.Attribute("#Inner", "eyeball")
	require.NoError(t, err)
	assert.True(t, v.B)
}

func TestActions(t *testing.T) {
	app, host := openApp(t)
	pr, tl := sceneTimeline(t, app)

	require.NoError(t, app.FireEvent("#Button", "onPressureDown"))
	assert.Equal(t, "Loop", slideName(pr, tl))

	require.NoError(t, app.FireEvent("#Button", "onTap"))
	assert.Equal(t, float32(25), floatAttr(t, app, "#Ball", "opacity"))
	assert.Equal(t, []hostCall{{"signal", "Button", "tapped"}, {"behavior", "Ball", "spin"}}, host.calls)

	// events the button does not handle do nothing
	require.NoError(t, app.FireEvent("#Ball", "onPressureDown"))
	assert.Equal(t, "Loop", slideName(pr, tl))

	// actions that fire their own event stop
	require.NoError(t, app.FireEvent("#Button", "onEcho"))
	assert.Equal(t, 0, pr.eventDepth)

	require.NoError(t, app.FireEvent("#Button", "onSeek"))
	assert.Equal(t, float32(750), tl.Time)
	assert.False(t, tl.Playing)

	require.NoError(t, app.FireEvent("#Button", "onJump"))
	_, comp, err := app.timeline("Comp")
	require.NoError(t, err)
	assert.Equal(t, "B", slideName(pr, comp))

	assert.Error(t, app.FireEvent("#Nothing", "onTap"))
}

func TestDataInput(t *testing.T) {
	app, _ := openApp(t)
	pr, tl := sceneTimeline(t, app)

	require.NoError(t, app.SetDataInputValue("Speed", "50"))
	assert.Equal(t, float32(10), floatAttr(t, app, "#Ball", "opacity"))
	assert.Equal(t, float32(10), floatAttr(t, app, "other:#Thing", "opacity"))
	require.NoError(t, app.SetDataInputValue("Speed", "4.5"))
	assert.Equal(t, float32(4.5), floatAttr(t, app, "#Ball", "opacity"))
	assert.Error(t, app.SetDataInputValue("Speed", "fast"))

	require.NoError(t, app.SetDataInputValue("Page", "Bounce"))
	assert.Equal(t, "Bounce", slideName(pr, tl))
	assert.Error(t, app.SetDataInputValue("Page", "Nowhere"))

	require.NoError(t, app.SetDataInputValue("Seek", "0.25"))
	assert.Equal(t, float32(250), tl.Time)
	assert.False(t, tl.Playing)

	err := app.SetDataInputValue("Missing", "1")
	assert.True(t, errors.Is(err, graph.ErrNotFound))
}

type meshRecorder struct {
	refs []string
}

func (m *meshRecorder) LoadMesh(ref graph.MeshRef) error {
	m.refs = append(m.refs, ref.String())
	if ref.Primitive == "Cone" {
		return errors.New("no cones")
	}
	return nil
}

func TestPreloadMeshes(t *testing.T) {
	app, _ := openApp(t)
	rec := &meshRecorder{}
	err := app.PreloadMeshes(rec)
	assert.ErrorContains(t, err, "no cones")
	assert.ElementsMatch(t, []string{"#Sphere", "#Cube", "meshes/inner.mesh#2", "#Cone"}, rec.refs)
}

func TestClose(t *testing.T) {
	app, _ := openApp(t)
	g := app.Initial().Graph
	app.Close()
	assert.Equal(t, 0, app.Presentations.Len())
	assert.True(t, g.Scene().IsNil())
}
