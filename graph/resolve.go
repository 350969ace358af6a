// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

// Resolve resolves reference text to an object: #id, a bare id, or a
// slash path relative to the given object (see [Presentation.FindPath]).
// If kinds are given, the object must have one of them.
func (p *Presentation) Resolve(from tree.Handle, target string, kinds ...Kind) (tree.Handle, error) {
	target = strings.TrimSpace(target)
	h := tree.Nil
	switch {
	case target == "":
	case target[0] == '#':
		h = p.byID[target[1:]]
	default:
		if id, ok := p.byID[target]; ok {
			h = id
		} else {
			h, _ = p.FindPath(target, from)
		}
	}
	if h.IsNil() {
		return tree.Nil, fmt.Errorf("%w: %q", ErrNotFound, target)
	}
	if k := p.KindOf(h); !k.Matches(kinds...) {
		return tree.Nil, fmt.Errorf("%w: %q is a %v", ErrKindMismatch, target, k)
	}
	return h, nil
}

// ObjectByID returns the object with the given id, with or without
// a leading #.
func (p *Presentation) ObjectByID(id string) tree.Handle {
	return p.byID[strings.TrimPrefix(id, "#")]
}

// IDs returns all registered ids in sorted order.
func (p *Presentation) IDs() []string {
	return slices.Sorted(maps.Keys(p.byID))
}

// ResolveReferences resolves the references of every object of the
// scene and the slides, binds class properties, registers data input
// bindings, and resolves the trigger and target objects of actions.
// A reference in a required position that does not resolve is an
// error; other unresolved references are logged and left unset.
// Afterwards, references are resolved as soon as they are set.
func (p *Presentation) ResolveReferences() error {
	var err error
	visit := func(h tree.Handle) bool {
		if err = p.ResolveObject(h); err != nil {
			return tree.Break
		}
		return tree.Continue
	}
	p.objects.WalkDown(p.scene, visit)
	if err != nil {
		return err
	}
	for _, m := range p.masters {
		p.objects.WalkDown(m, visit)
		if err != nil {
			return err
		}
	}
	p.resolved = true
	return nil
}

// ResolveObject resolves the references of one object and registers
// its data input bindings. See [Presentation.ResolveReferences].
func (p *Presentation) ResolveObject(h tree.Handle) error {
	obj := p.Object(h)
	if obj == nil {
		return ErrInvalidHandle
	}
	b := obj.AsBase()
	ki := &kindTable[b.kind]
	for _, f := range ki.fields {
		if !f.isRef {
			continue
		}
		if err := p.resolveField(obj, f, true); err != nil {
			return err
		}
	}
	if ki.resolve != nil {
		if err := ki.resolve(p, obj); err != nil {
			return err
		}
	}
	if b.ControlledProperty != "" {
		p.SetControlledProperties(h, b.ControlledProperty)
	}
	return nil
}

// resolveField resolves one reference field. Failures of required
// references are returned if strict is set; all others are logged.
func (p *Presentation) resolveField(obj Object, f *field, strict bool) error {
	r := refField(obj, f)
	r.Handle = tree.Nil
	if !r.IsSet() {
		return nil
	}
	b := obj.AsBase()
	h, err := p.Resolve(b.handle, r.Target, f.kinds...)
	if err != nil {
		if strict && f.required {
			return fmt.Errorf("%s.%s: %w", b.ID, f.name, err)
		}
		args := []any{"id", b.ID, "property", f.name, "ref", r.Target}
		if s := p.suggest(r.Target); s != "" {
			args = append(args, "suggestion", s)
		}
		slog.Warn("unresolved reference", args...)
		return nil
	}
	r.Handle = h
	return nil
}

// suggest returns the reference most similar to the given one, if any
// is similar enough to be worth mentioning.
func (p *Presentation) suggest(target string) string {
	best, bestScore := "", 0.6
	lev := metrics.NewLevenshtein()
	for _, id := range p.IDs() {
		cand := "#" + id
		if !strings.HasPrefix(target, "#") {
			cand = id
		}
		if s := strutil.Similarity(target, cand, lev); s > bestScore {
			best, bestScore = cand, s
		}
	}
	return best
}

// RewriteReferences replaces the target text of every reference field
// of the object by the result of fn, and unresolves them.
func (p *Presentation) RewriteReferences(h tree.Handle, fn func(target string) string) {
	obj := p.Object(h)
	if obj == nil {
		return
	}
	for _, f := range kindTable[obj.AsBase().kind].fields {
		if f.isRef {
			r := refField(obj, f)
			r.Target = fn(r.Target)
			r.Handle = tree.Nil
		}
	}
}

// References returns the reference fields of the object by property name.
func (p *Presentation) References(h tree.Handle) map[string]*Ref {
	obj := p.Object(h)
	if obj == nil {
		return nil
	}
	refs := map[string]*Ref{}
	for _, f := range kindTable[obj.AsBase().kind].fields {
		if f.isRef {
			refs[f.name] = refField(obj, f)
		}
	}
	return refs
}

// resolveClass binds a custom material, effect or behavior to its
// class and gives it the class properties: values already set are
// converted to the declared type, and missing ones get the default.
// An unknown class is logged.
func resolveClass(p *Presentation, obj Object) error {
	c, ok := obj.(Classed)
	if !ok {
		return nil
	}
	b := obj.AsBase()
	id := strings.TrimPrefix(c.ClassID(), "#")
	info, found := p.Classes.AtTry(id)
	if !found {
		if id == "" {
			slog.Warn("object has no class", "id", b.ID)
		} else {
			slog.Warn("unknown class", "id", b.ID, "class", c.ClassID())
		}
		c.SetClassInfo(nil)
		return nil
	}
	c.SetClassInfo(info)
	for _, pd := range info.Properties() {
		old, has := b.Dynamic.AtTry(pd.Name)
		if !has {
			b.Dynamic.Set(pd.Name, pd.DefaultValue())
			continue
		}
		if old.Type == pd.Type {
			continue
		}
		v, err := pd.Parse(old.String())
		if err != nil {
			slog.Warn("invalid property value, using default", "id", b.ID, "property", pd.Name, "value", old.String(), "err", err)
			v = pd.DefaultValue()
		}
		b.Dynamic.Set(pd.Name, v)
	}
	return nil
}

// resolveActions resolves the trigger and target objects of the actions
// of a slide. Unresolved ones are logged.
func resolveActions(p *Presentation, obj Object) error {
	s := obj.(*Slide)
	for _, a := range s.Actions {
		for _, r := range []*Ref{&a.Trigger, &a.Target} {
			r.Handle = tree.Nil
			if !r.IsSet() {
				continue
			}
			h, err := p.Resolve(a.Owner, r.Target)
			if err != nil {
				slog.Warn("unresolved action reference", "id", a.ID, "slide", s.ID, "ref", r.Target, "err", err)
				continue
			}
			r.Handle = h
		}
		if a.Trigger.Handle.IsNil() && a.Trigger.Target == "" {
			a.Trigger.Handle = a.Owner
		}
		if a.Target.Handle.IsNil() && a.Target.Target == "" {
			a.Target.Handle = a.Owner
		}
	}
	return nil
}
