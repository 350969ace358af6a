// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/errors"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/meta"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
)

// splitComponent splits a sub-property name such as position.x into
// the property name and the component index (x, r = 0; y, g = 1;
// z, b = 2; w, a = 3). The index is -1 for a plain name.
func splitComponent(name string) (string, int) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return name, -1
	}
	switch name[i+1:] {
	case "x", "r":
		return name[:i], 0
	case "y", "g":
		return name[:i], 1
	case "z", "b":
		return name[:i], 2
	case "w", "a":
		return name[:i], 3
	}
	return name, -1
}

// PropertyDef returns the definition of the named property of the
// object: from its class for class properties, and else from the data
// model. It returns nil for unknown properties.
func (p *Presentation) PropertyDef(h tree.Handle, name string) *meta.PropertyDef {
	obj := p.Object(h)
	if obj == nil {
		return nil
	}
	return p.propertyDef(obj, name)
}

func (p *Presentation) propertyDef(obj Object, name string) *meta.PropertyDef {
	if c, ok := obj.(Classed); ok && c.Info() != nil {
		if pd := c.Info().Property(name); pd != nil {
			return pd
		}
	}
	if p.Meta == nil {
		return nil
	}
	return p.Meta.Property(obj.AsBase().kind.String(), name)
}

// SetProperties sets the properties of the object from the attributes
// of its document element. If useDefaults is set, properties without an
// attribute are set to their data model default first. Values that do
// not convert are logged and replaced by their default; attributes that
// are not properties of the object are ignored.
func (p *Presentation) SetProperties(h tree.Handle, attrs *props.ChangeList, useDefaults bool) error {
	obj := p.Object(h)
	if obj == nil {
		return ErrInvalidHandle
	}
	b := obj.AsBase()
	if useDefaults && p.Meta != nil {
		for _, pd := range p.Meta.Properties(b.kind.String()) {
			if pd.Name == "name" || attrs.Has(pd.Name) {
				continue
			}
			p.setProperty(obj, pd.Name, pd.Default, true)
		}
	}
	for _, c := range attrs.All() {
		p.setProperty(obj, c.Name, c.Value, true)
	}
	return nil
}

// ApplyChanges sets the properties in the list, in order, without
// notifying observers. Properties that are not fields of the object
// are stored in its dynamic property table.
func (p *Presentation) ApplyChanges(h tree.Handle, changes *props.ChangeList) error {
	obj := p.Object(h)
	if obj == nil {
		return ErrInvalidHandle
	}
	for _, c := range changes.All() {
		p.setProperty(obj, c.Name, c.Value, false)
	}
	return nil
}

// NotifyChanges calls the property observers of the object with the
// given changes and their change flags. Empty lists are not notified.
func (p *Presentation) NotifyChanges(h tree.Handle, changes *props.ChangeList) {
	obj := p.Object(h)
	if obj == nil || changes.IsEmpty() {
		return
	}
	b := obj.AsBase()
	if b.observers.len() == 0 {
		return
	}
	b.observers.emit(PropertyEvent{Object: obj, Changes: changes, Flags: MapChangeFlags(obj, changes)})
}

// ApplyAndNotify applies the changes and then notifies them.
func (p *Presentation) ApplyAndNotify(h tree.Handle, changes *props.ChangeList) error {
	if err := p.ApplyChanges(h, changes); err != nil {
		return err
	}
	p.NotifyChanges(h, changes)
	return nil
}

// setProperty converts and stores one property. In document mode,
// properties the object does not have are ignored instead of being
// stored as dynamic properties, except for kinds with class properties.
func (p *Presentation) setProperty(obj Object, name, text string, document bool) error {
	b := obj.AsBase()
	base, comp := splitComponent(name)
	if comp >= 0 {
		cur, err := p.property(obj, base)
		if err != nil {
			return err
		}
		f, err := props.ParseFloat(text)
		if err != nil {
			err = &props.ConversionError{Type: props.Float, Text: text, Err: err}
			slog.Warn("invalid property value", "id", b.ID, "property", name, "value", text, "err", err)
			return err
		}
		name, text = base, cur.WithComponent(comp, f).String()
	}
	pd := p.propertyDef(obj, name)
	ki := &kindTable[b.kind]
	if f := ki.field(name); f != nil {
		var err error
		if pd != nil {
			_, err = pd.Parse(text)
		}
		if err == nil {
			err = setField(obj, f, text)
		}
		if err != nil {
			slog.Warn("invalid property value, using default", "id", b.ID, "property", name, "value", text, "err", err)
			if pd == nil || pd.Default == text || setField(obj, f, pd.Default) != nil {
				fieldValue(obj, f).SetZero()
			}
		}
		p.fieldChanged(obj, f)
		return err
	}
	if document && !b.kind.IsDynamic() {
		slog.Debug("ignoring unknown attribute", "id", b.ID, "property", name)
		return fmt.Errorf("%w: %s.%s", ErrNoProperty, b.ID, name)
	}
	typ := props.Variant
	if pd != nil {
		typ = pd.Type
	} else if old, ok := b.Dynamic.AtTry(name); ok {
		typ = old.Type
	}
	var v props.Value
	var err error
	if pd != nil {
		v, err = pd.Parse(text)
	} else {
		v, err = props.Parse(typ, text)
	}
	if err != nil {
		slog.Warn("invalid property value, using default", "id", b.ID, "property", name, "value", text, "err", err)
		v = props.Zero(typ)
		if pd != nil {
			v = pd.DefaultValue()
		}
	}
	b.Dynamic.Set(name, v)
	return err
}

// fieldChanged keeps derived state in sync with a field that was set.
func (p *Presentation) fieldChanged(obj Object, f *field) {
	if !p.resolved {
		return
	}
	b := obj.AsBase()
	switch {
	case f.isRef:
		p.resolveField(obj, f, false)
	case f.name == "controlledproperty":
		p.SetControlledProperties(b.handle, b.ControlledProperty)
	case f.name == "class":
		if c, ok := obj.(Classed); ok {
			errors.Warn(resolveClass(p, c))
		}
	}
}

// Property returns the value of the named property of the object.
// Sub-properties such as position.x return the component as a Float.
func (p *Presentation) Property(h tree.Handle, name string) (props.Value, error) {
	obj := p.Object(h)
	if obj == nil {
		return props.Value{}, ErrInvalidHandle
	}
	base, comp := splitComponent(name)
	v, err := p.property(obj, base)
	if err != nil || comp < 0 {
		return v, err
	}
	return props.FloatValue(v.Component(comp)), nil
}

func (p *Presentation) property(obj Object, name string) (props.Value, error) {
	b := obj.AsBase()
	if f := kindTable[b.kind].field(name); f != nil {
		v := getField(obj, f)
		// string fields carry the declared string type
		if v.Type == props.String {
			if pd := p.propertyDef(obj, name); pd != nil {
				v.Type = pd.Type
			}
		}
		return v, nil
	}
	if v, ok := b.Dynamic.AtTry(name); ok {
		return v, nil
	}
	return props.Value{}, fmt.Errorf("%w: %s.%s", ErrNoProperty, b.ID, name)
}

// Properties returns the names of all properties of the object: its
// fields followed by its dynamic properties.
func (p *Presentation) Properties(h tree.Handle) []string {
	obj := p.Object(h)
	if obj == nil {
		return nil
	}
	b := obj.AsBase()
	var names []string
	for _, f := range kindTable[b.kind].fields {
		names = append(names, f.name)
	}
	return append(names, b.Dynamic.Keys...)
}

// SetProperty sets the named property from text, converting it by the
// property type. The value is checked before anything is changed: an
// invalid value is an error and leaves the object as it was. The
// returned change is invalid if the value did not change. Observers are
// not notified.
func (p *Presentation) SetProperty(h tree.Handle, name, text string) (props.Change, error) {
	obj := p.Object(h)
	if obj == nil {
		return props.Change{}, ErrInvalidHandle
	}
	old, err := p.Property(h, name)
	if err == nil {
		nv, perr := props.Parse(old.Type, text)
		if pd := p.propertyDef(obj, name); pd != nil && perr == nil {
			_, perr = pd.Parse(text)
		}
		if perr != nil {
			return props.Change{}, perr
		}
		if nv.Equal(old) {
			return props.Change{}, nil
		}
	}
	if err := p.setProperty(obj, name, text, false); err != nil {
		return props.Change{}, err
	}
	nv, _ := p.Property(h, name)
	return props.NewChange(name, nv), nil
}

// Set sets the named property to the given value and returns the
// change, which is invalid if the value did not change, so that
// call sites can build a list of only the effective changes:
//
//	changes := props.NewChangeList(
//		p.Set(h, "position", pos),
//		p.Set(h, "opacity", opacity))
//	p.NotifyChanges(h, changes)
func (p *Presentation) Set(h tree.Handle, name string, v props.Value) props.Change {
	ch, err := p.SetProperty(h, name, v.String())
	if err != nil {
		slog.Warn("can not set property", "id", p.ID(h), "property", name, "value", v.String(), "err", err)
	}
	return ch
}
