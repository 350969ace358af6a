// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/meta"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

func named(name string) props.Change {
	return props.Change{Name: "name", Value: name}
}

func TestFindPath(t *testing.T) {
	p, _, layer := newTestScene(t)
	group := add(t, p, KindGroup, "group", layer, named("Group"))
	cube := add(t, p, KindModel, "cube", group, named("Cube"))

	assert.Equal(t, "Scene/Layer/Group/Cube", p.Path(cube))

	find := func(path string, from tree.Handle) tree.Handle {
		h, err := p.FindPath(path, from)
		assert.NoError(t, err, path)
		return h
	}
	assert.Equal(t, cube, find("Scene/Layer/Group/Cube", tree.Nil))
	assert.Equal(t, group, find("/Layer/Group", tree.Nil))
	assert.Equal(t, cube, find("Cube", group))
	assert.Equal(t, cube, find("../Group/Cube", group))
	assert.Equal(t, group, find("./..", cube))
	assert.Equal(t, cube, find("#cube", tree.Nil))
	assert.Equal(t, layer, find("Layer", cube))

	_, err := p.FindPath("Layer/Sphere", tree.Nil)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = p.FindPath("", tree.Nil)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, cube, p.ObjectByName("Cube"))
	assert.True(t, p.ObjectByName("Sphere").IsNil())
}

func TestGlob(t *testing.T) {
	p, _, layer := newTestScene(t)
	group := add(t, p, KindGroup, "group", layer, named("Group"))
	cube := add(t, p, KindModel, "cube", group, named("Cube"))
	cone := add(t, p, KindModel, "cone", layer, named("Cone"))

	hs, err := p.Glob("Scene/**/Cube")
	require.NoError(t, err)
	assert.Equal(t, []tree.Handle{cube}, hs)

	hs, err = p.Glob("Scene/Layer/*")
	require.NoError(t, err)
	assert.Equal(t, []tree.Handle{group, cone}, hs)

	hs, err = p.Glob("**/C*")
	require.NoError(t, err)
	assert.Equal(t, []tree.Handle{cube, cone}, hs)
}

func TestResolve(t *testing.T) {
	p, _, layer := newTestScene(t)
	group := add(t, p, KindGroup, "group", layer, named("Group"))
	cube := add(t, p, KindModel, "cube", group, named("Cube"))

	h, err := p.Resolve(tree.Nil, "#cube", KindModel)
	assert.NoError(t, err)
	assert.Equal(t, cube, h)
	h, err = p.Resolve(group, "Cube")
	assert.NoError(t, err)
	assert.Equal(t, cube, h)
	h, err = p.Resolve(tree.Nil, "group")
	assert.NoError(t, err)
	assert.Equal(t, group, h)

	_, err = p.Resolve(tree.Nil, "#cube", KindLight)
	assert.ErrorIs(t, err, ErrKindMismatch)
	_, err = p.Resolve(tree.Nil, "#cub")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, "#cube", p.suggest("#cub"))
	assert.Equal(t, "", p.suggest("#teapot"))
	assert.Equal(t, []string{"cube", "group", "layer", "scene"}, p.IDs())
}

func TestResolveReferences(t *testing.T) {
	p, _, layer := newTestScene(t)
	group := add(t, p, KindGroup, "group", layer, named("Group"))
	cube := add(t, p, KindModel, "cube", group, named("Cube"))
	alias := add(t, p, KindAlias, "alias", layer, props.Change{Name: "referencednode", Value: "#group"})
	ref := add(t, p, KindReferencedMaterial, "ref", cube, props.Change{Name: "referencedmaterial", Value: "#nomat"})

	require.NoError(t, p.ResolveReferences())
	assert.True(t, p.IsResolved())
	a, _ := As[*Alias](p, alias)
	assert.Equal(t, group, a.Target.Handle)
	rm, _ := As[*ReferencedMaterial](p, ref)
	assert.False(t, rm.Material.IsResolved())

	_, err := p.SetProperty(alias, "referencednode", "Layer/Group/Cube")
	require.NoError(t, err)
	assert.Equal(t, cube, a.Target.Handle)

	refs := p.References(alias)
	require.Contains(t, refs, "referencednode")
	p.RewriteReferences(alias, func(target string) string { return "#group" })
	assert.Equal(t, "#group", a.Target.Target)
	assert.False(t, a.Target.IsResolved())
	require.NoError(t, p.ResolveObject(alias))
	assert.Equal(t, group, a.Target.Handle)
}

func TestRequiredReference(t *testing.T) {
	p := NewPresentation("test", meta.Default())
	scene := add(t, p, KindScene, "scene", tree.Nil)
	require.NoError(t, p.SetScene(scene))
	add(t, p, KindAlias, "alias", scene, props.Change{Name: "referencednode", Value: "#missing"})
	err := p.ResolveReferences()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, p.IsResolved())
}
