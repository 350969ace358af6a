// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
)

// field is a property bound to a struct field.
type field struct {
	name  string
	index []int

	// isRef is whether the field is a [Ref].
	isRef bool

	// required is whether a reference must resolve.
	required bool

	// kinds restricts the kinds of referenced objects.
	kinds []Kind
}

var refType = reflect.TypeFor[Ref]()

// bindFields returns the properties of the given struct type, found by
// their uip tags, including those of embedded structs, in field order.
func bindFields(typ reflect.Type) []*field {
	var fields []*field
	var walk func(t reflect.Type, index []int)
	walk = func(t reflect.Type, index []int) {
		for i := range t.NumField() {
			sf := t.Field(i)
			idx := append(append([]int{}, index...), i)
			if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
				walk(sf.Type, idx)
				continue
			}
			tag, ok := sf.Tag.Lookup("uip")
			if !ok {
				continue
			}
			parts := strings.Split(tag, ",")
			f := &field{name: parts[0], index: idx, isRef: sf.Type == refType}
			for _, opt := range parts[1:] {
				switch opt {
				case "required":
					f.required = true
				case "image":
					f.kinds = append(f.kinds, KindImage)
				case "material":
					f.kinds = append(f.kinds, KindDefaultMaterial, KindReferencedMaterial, KindCustomMaterial)
				default:
					panic(fmt.Sprintf("graph: %v.%s: unknown uip tag option %q", typ, sf.Name, opt))
				}
			}
			fields = append(fields, f)
		}
	}
	walk(typ, nil)
	return fields
}

// fieldValue returns the addressable field of the object.
func fieldValue(obj Object, f *field) reflect.Value {
	return reflect.ValueOf(obj).Elem().FieldByIndex(f.index)
}

// setField converts the text and stores it in the field.
func setField(obj Object, f *field, text string) error {
	fv := fieldValue(obj, f)
	switch p := fv.Addr().Interface().(type) {
	case encoding.TextUnmarshaler:
		if err := p.UnmarshalText([]byte(text)); err != nil {
			return &props.ConversionError{Type: props.StringList, Text: text, Err: err}
		}
	case *float32:
		v, err := props.Parse(props.Float, text)
		if err != nil {
			return err
		}
		*p = v.F
	case *int32:
		v, err := props.Parse(props.Long, text)
		if err != nil {
			return err
		}
		*p = v.I
	case *bool:
		v, err := props.Parse(props.Boolean, text)
		if err != nil {
			return err
		}
		*p = v.B
	case *string:
		*p = text
	case *props.Vector2:
		v, err := props.Parse(props.Float2, text)
		if err != nil {
			return err
		}
		*p = v.Vector2()
	case *props.Vector3:
		v, err := props.Parse(props.Float3, text)
		if err != nil {
			return err
		}
		*p = v.Vector3()
	case *props.ColorRGBA:
		v, err := props.Parse(props.Color, text)
		if err != nil {
			return err
		}
		*p = v.Color()
	default:
		panic(fmt.Sprintf("graph: property %q has unsupported field type %v", f.name, fv.Type()))
	}
	return nil
}

// getField returns the value of the field.
func getField(obj Object, f *field) props.Value {
	fv := fieldValue(obj, f)
	switch p := fv.Addr().Interface().(type) {
	case *float32:
		return props.FloatValue(*p)
	case *int32:
		return props.LongValue(*p)
	case *bool:
		return props.BoolValue(*p)
	case *string:
		return props.StringValue(*p)
	case *props.Vector2:
		return props.Vector2Value(*p)
	case *props.Vector3:
		return props.Vector3Value(*p)
	case *props.ColorRGBA:
		return props.ColorValue(*p)
	case *Ref:
		return props.RefValue(p.Target)
	case *MeshRef:
		return props.Value{Type: props.Mesh, S: p.String()}
	case fmt.Stringer:
		return props.Value{Type: props.StringList, S: p.String()}
	}
	return props.Value{}
}

// refField returns the [Ref] stored in the field.
func refField(obj Object, f *field) *Ref {
	return fieldValue(obj, f).Addr().Interface().(*Ref)
}
