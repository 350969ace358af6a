// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

// ObjectByName returns the first object with the given name in a
// depth-first walk of the scene and then of the slides, or nil.
func (p *Presentation) ObjectByName(name string) tree.Handle {
	found := tree.Nil
	visit := func(h tree.Handle) bool {
		if !found.IsNil() {
			return tree.Break
		}
		if p.Base(h).Name == name {
			found = h
			return tree.Break
		}
		return tree.Continue
	}
	p.objects.WalkDown(p.scene, visit)
	for _, m := range p.masters {
		if !found.IsNil() {
			break
		}
		p.objects.WalkDown(m, visit)
	}
	return found
}

// Path returns the slash path of names from the root of the tree of
// the object down to the object, such as Scene/Layer/Cube.
func (p *Presentation) Path(h tree.Handle) string {
	var names []string
	p.objects.WalkUp(h, func(n tree.Handle) bool {
		names = append(names, p.Base(n).Name)
		return tree.Continue
	})
	slices.Reverse(names)
	return strings.Join(names, "/")
}

// FindPath resolves a slash path of object names. A path starting with
// / or with the name of the scene is absolute; any other path is
// relative to from, falling back to the scene. Path elements can be
// names of children, .. for the parent, . for the current object and
// #id for an object by id.
func (p *Presentation) FindPath(path string, from tree.Handle) (tree.Handle, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return tree.Nil, fmt.Errorf("%w: empty path", ErrNotFound)
	}
	elems := strings.Split(strings.Trim(path, "/"), "/")
	starts := []tree.Handle{}
	switch {
	case strings.HasPrefix(path, "/"):
		starts = append(starts, tree.Nil)
	case !from.IsNil() && p.objects.Valid(from):
		starts = append(starts, from, tree.Nil)
	default:
		starts = append(starts, tree.Nil)
	}
	for _, start := range starts {
		if h := p.walkPath(start, elems); !h.IsNil() {
			return h, nil
		}
	}
	return tree.Nil, fmt.Errorf("%w: path %q", ErrNotFound, path)
}

// walkPath follows the path elements from the given start; a nil start
// is the scene root, whose name may be the first element.
func (p *Presentation) walkPath(start tree.Handle, elems []string) tree.Handle {
	cur := start
	if cur.IsNil() {
		cur = p.scene
		if len(elems) > 0 && p.Base(cur) != nil && elems[0] == p.Base(cur).Name {
			elems = elems[1:]
		}
	}
	for _, e := range elems {
		switch {
		case cur.IsNil():
			return tree.Nil
		case e == "" || e == ".":
		case e == "..":
			cur = p.objects.Parent(cur)
		case e[0] == '#':
			cur = p.byID[e[1:]]
		default:
			next := tree.Nil
			for c := range p.objects.Children(cur) {
				if p.Base(c).Name == e {
					next = c
					break
				}
			}
			cur = next
		}
	}
	return cur
}

// Glob returns the scene objects whose path (see [Presentation.Path])
// matches the given pattern, in depth-first order. In the pattern,
// * matches within one path element and ** across elements.
func (p *Presentation) Glob(pattern string) ([]tree.Handle, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, err
	}
	var res []tree.Handle
	p.objects.WalkDown(p.scene, func(h tree.Handle) bool {
		if g.Match(p.Path(h)) {
			res = append(res, h)
		}
		return tree.Continue
	})
	return res, nil
}
