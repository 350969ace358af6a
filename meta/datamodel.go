// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meta

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/errors"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/keylist"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
)

//go:embed datamodel.xml
var defaultDataModel []byte

// TypeDef is the flattened property table of one object kind.
type TypeDef struct {

	// Name is the type name, which matches the document element name
	// of the object kind.
	Name string

	// Inherits is the name of the parent type, if any.
	Inherits string

	// Properties are the properties of the type, including inherited
	// ones, in declaration order with inherited properties first.
	Properties keylist.List[string, *PropertyDef]
}

// Property returns the named property or nil.
func (td *TypeDef) Property(name string) *PropertyDef {
	if td == nil {
		return nil
	}
	pd, _ := td.Properties.AtTry(name)
	return pd
}

// DataModel is the table of property definitions for every object
// kind. It is read-only after loading and can be shared by any
// number of presentations.
type DataModel struct {
	Types keylist.List[string, *TypeDef]
}

// Default returns a new [DataModel] parsed from the built-in table.
// It panics if the built-in table is invalid, which is a build error.
func Default() *DataModel {
	return errors.Must1(Load(bytes.NewReader(defaultDataModel)))
}

type xmlType struct {
	Name       string        `xml:"name,attr"`
	Inherits   string        `xml:"inherits,attr"`
	Properties []xmlProperty `xml:"Property"`
}

type xmlDataModel struct {
	Types []xmlType `xml:"Type"`
}

// Load parses a data model document of the form
//
//	<MetaData>
//	  <Type name="Node" inherits="Asset">
//	    <Property name="opacity" type="Float" default="100"/>
//	  </Type>
//	</MetaData>
//
// Inheritance is flattened, so every [TypeDef] holds its complete
// property list. A type may only inherit from a type declared before it.
func Load(r io.Reader) (*DataModel, error) {
	var doc xmlDataModel
	if err := newDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("meta: data model: %w", err)
	}
	dm := &DataModel{}
	for _, xt := range doc.Types {
		td := &TypeDef{Name: xt.Name, Inherits: xt.Inherits}
		if xt.Inherits != "" {
			parent, ok := dm.Types.AtTry(xt.Inherits)
			if !ok {
				return nil, fmt.Errorf("meta: type %q inherits unknown type %q", xt.Name, xt.Inherits)
			}
			td.Properties = *parent.Properties.Clone()
		}
		for i := range xt.Properties {
			pd, err := xt.Properties[i].toDef(true)
			if err != nil {
				return nil, fmt.Errorf("meta: type %q: %w", xt.Name, err)
			}
			// a redeclared property replaces the inherited one in place
			td.Properties.Set(pd.Name, pd)
		}
		if err := dm.Types.Add(td.Name, td); err != nil {
			return nil, fmt.Errorf("meta: duplicate type %q", td.Name)
		}
	}
	return dm, nil
}

// Type returns the named type or nil.
func (dm *DataModel) Type(name string) *TypeDef {
	td, _ := dm.Types.AtTry(name)
	return td
}

// Property returns the definition of the given property of the given
// type, or nil if either is unknown.
func (dm *DataModel) Property(typeName, name string) *PropertyDef {
	return dm.Type(typeName).Property(name)
}

// Properties returns all property definitions of the given type in order.
func (dm *DataModel) Properties(typeName string) []*PropertyDef {
	td := dm.Type(typeName)
	if td == nil {
		return nil
	}
	return td.Properties.Values
}

// DefaultValue returns the default value of the given property, and
// false if the property is unknown.
func (dm *DataModel) DefaultValue(typeName, name string) (props.Value, bool) {
	pd := dm.Property(typeName, name)
	if pd == nil {
		return props.Value{}, false
	}
	return pd.DefaultValue(), true
}
