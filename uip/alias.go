// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uip

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jinzhu/copier"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/errors"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/graph"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

// aliasRootProps are the properties of the root of an aliased subtree
// that come from the alias itself.
var aliasRootProps = map[string]bool{
	"position": true, "rotation": true, "scale": true, "pivot": true, "opacity": true,
}

func isAliasRootProp(name string) bool {
	base, _, _ := strings.Cut(name, ".")
	return aliasRootProps[base]
}

// maxAliasNesting is how many aliases deep a copy can be nested in
// the copies of other aliases.
const maxAliasNesting = 16

// ResolveAliases replaces every alias of the scene by a copy of the
// subtree it refers to. The copy becomes the child of the alias, with
// ids prefixed by the id of the alias, and references within the
// subtree point to the copies. An id already taken in the document is
// replaced by a generated one. The copies keep the names of their
// sources, so a path through the alias, like Layer/AliasA/Source/Box,
// finds the copy while the same path without the alias finds the
// source. The slide memberships, property changes, animation tracks
// and actions of the source objects are replicated on the copies,
// except for the transform and opacity of the subtree root, which the
// alias provides. Aliases within an aliased subtree that have not been
// resolved yet are copied as aliases and resolved in turn. Aliases
// that contain their own source are logged and skipped.
func ResolveAliases(p *graph.Presentation) error {
	var queue []tree.Handle
	p.Tree().WalkDown(p.Scene(), func(h tree.Handle) bool {
		if p.KindOf(h) == graph.KindAlias {
			queue = append(queue, h)
		}
		return tree.Continue
	})
	resolved := map[tree.Handle]bool{}
	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		resolved[a] = true
		if n := aliasNesting(p, a); n > maxAliasNesting {
			slog.Warn("alias nested too deeply", "id", p.ID(a), "depth", n)
			continue
		}
		ac, err := resolveAlias(p, a)
		if err != nil {
			return err
		}
		if ac == nil {
			continue
		}
		for _, n := range ac.order {
			if p.KindOf(n) == graph.KindAlias && !resolved[n] {
				queue = append(queue, ac.clones[n])
			}
		}
	}
	return nil
}

// aliasNesting returns the number of aliases above h.
func aliasNesting(p *graph.Presentation, h tree.Handle) int {
	n := 0
	for a := p.Tree().Parent(h); !a.IsNil(); a = p.Tree().Parent(a) {
		if p.KindOf(a) == graph.KindAlias {
			n++
		}
	}
	return n
}

// aliasCopy is the state of the copy of one aliased subtree.
type aliasCopy struct {
	p     *graph.Presentation
	alias tree.Handle
	src   tree.Handle

	// clones maps the source objects to their copies.
	clones map[tree.Handle]tree.Handle

	// order are the source objects in depth-first order.
	order []tree.Handle
}

// resolveAlias copies the source of the alias. It returns nil for an
// alias that is skipped.
func resolveAlias(p *graph.Presentation, a tree.Handle) (*aliasCopy, error) {
	al, _ := graph.As[*graph.Alias](p, a)
	src := al.Target.Handle
	if src.IsNil() {
		slog.Warn("alias has no target", "id", al.ID, "ref", al.Target.Target)
		return nil, nil
	}
	if src == a || p.Tree().IsAncestor(src, a) {
		slog.Warn("alias refers to an ancestor of itself", "id", al.ID, "ref", al.Target.Target)
		return nil, nil
	}
	ac := &aliasCopy{p: p, alias: a, src: src, clones: map[tree.Handle]tree.Handle{}}
	if err := ac.copyTree(); err != nil {
		return nil, fmt.Errorf("alias %q: %w", al.ID, err)
	}
	for _, n := range ac.order {
		ac.remapReferences(n)
	}
	for _, m := range p.MasterSlides() {
		p.Tree().WalkDown(m, func(slide tree.Handle) bool {
			ac.copySlide(slide)
			return tree.Continue
		})
	}
	return ac, nil
}

// copyTree creates the copies of the source objects with their current
// property values.
func (ac *aliasCopy) copyTree() error {
	p := ac.p
	aliasID := p.ID(ac.alias)
	var err error
	p.Tree().WalkDown(ac.src, func(n tree.Handle) bool {
		var h tree.Handle
		kind, id := p.KindOf(n), aliasID+"_"+p.ID(n)
		h, err = p.NewObject(kind, id)
		if errors.Is(err, graph.ErrDuplicateID) {
			h, err = p.NewObject(kind, "")
			slog.Warn("alias copy id already taken", "alias", aliasID, "id", id, "using", p.ID(h))
		}
		if err != nil {
			return tree.Break
		}
		cl := &props.ChangeList{}
		for _, name := range p.Properties(n) {
			v, perr := p.Property(n, name)
			if perr != nil {
				continue
			}
			cl.Append(props.Change{Name: name, Value: v.String()})
		}
		parent := ac.alias
		if n == ac.src {
			cl = cl.Filter(func(c props.Change) bool { return !isAliasRootProp(c.Name) })
		} else {
			parent = ac.clones[p.Tree().Parent(n)]
		}
		p.ApplyChanges(h, cl)
		if err = p.Tree().AppendChild(parent, h); err != nil {
			return tree.Break
		}
		ac.clones[n] = h
		ac.order = append(ac.order, n)
		return tree.Continue
	})
	return err
}

// remapReferences points the references of the copy of n that refer
// into the source subtree to the corresponding copies, and resolves the
// copy.
func (ac *aliasCopy) remapReferences(n tree.Handle) {
	p := ac.p
	h := ac.clones[n]
	srcRefs := p.References(n)
	for name, r := range p.References(h) {
		if sr := srcRefs[name]; sr != nil {
			if c, ok := ac.clones[sr.Handle]; ok {
				r.Target = "#" + p.ID(c)
			}
		}
	}
	if err := p.ResolveObject(h); err != nil {
		slog.Warn("can not resolve alias copy", "id", p.ID(h), "err", err)
	}
}

// copySlide replicates the slide state of the source objects on their
// copies: membership where the alias is a member, and the property
// changes, animation tracks and actions of the sources.
func (ac *aliasCopy) copySlide(slide tree.Handle) {
	p := ac.p
	s := p.Slide(slide)
	aliasMember := s.IsMember(ac.alias)
	nActions := len(s.Actions)
	for _, n := range ac.order {
		h := ac.clones[n]
		if aliasMember || s.IsMember(n) {
			s.AddMember(h)
		}
		if cl := s.ChangesFor(n); cl != nil {
			if n == ac.src {
				cl = cl.Filter(func(c props.Change) bool { return !isAliasRootProp(c.Name) })
			}
			if !cl.IsEmpty() {
				s.AddChanges(h, cl)
			}
		}
		for _, t := range s.TracksFor(n) {
			if n == ac.src && isAliasRootProp(t.Property) {
				continue
			}
			var ct graph.AnimationTrack
			if err := copier.CopyWithOption(&ct, t, copier.Option{DeepCopy: true}); err != nil {
				slog.Warn("can not copy animation track", "id", p.ID(n), "property", t.Property, "err", err)
				continue
			}
			ct.Target = h
			s.Tracks = append(s.Tracks, &ct)
		}
		for _, a := range s.Actions[:nActions] {
			if a.Owner != n {
				continue
			}
			var ca graph.Action
			if err := copier.CopyWithOption(&ca, a, copier.Option{DeepCopy: true}); err != nil {
				slog.Warn("can not copy action", "id", a.ID, "err", err)
				continue
			}
			ca.Owner = h
			if ca.ID != "" {
				ca.ID = p.ID(ac.alias) + "_" + ca.ID
			}
			for _, r := range []*graph.Ref{&ca.Trigger, &ca.Target} {
				if c, ok := ac.clones[r.Handle]; ok {
					r.Target = "#" + p.ID(c)
				}
			}
			s.Actions = append(s.Actions, &ca)
		}
	}
	if len(s.Actions) > nActions {
		if err := p.ResolveObject(slide); err != nil {
			slog.Warn("can not resolve slide actions", "slide", p.ID(slide), "err", err)
		}
	}
}
