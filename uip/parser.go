// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uip reads presentation (.uip) and application (.uia)
// documents into presentation graphs.
//
// A presentation is read in two passes. The first pass streams the
// document and builds the objects of the scene graph, the class and
// image buffer registries, and the slides with their members, property
// changes, animation tracks and actions. The second pass resolves the
// references between objects, binds class properties and data inputs,
// and clones the subtrees that aliases refer to. Structural errors
// abort the parse with a [ParseError]; bad property values and
// references in optional positions are logged and skipped.
package uip

import (
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/anim"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/errors"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/graph"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/meta"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/props"
	"github.com/thomasgoedertier/qt3d-runtime-sub001/tree"
	"golang.org/x/net/html/charset"
)

// Options are the options of a [Parser].
type Options struct {

	// DataModel gives the property defaults of the objects.
	// If it is nil, [meta.Default] is used.
	DataModel *meta.DataModel

	// FS is the file system class documents are read from, relative
	// to the directory of the presentation. If it is nil, classes have
	// no metadata.
	FS fs.FS

	// Strict makes unknown elements and class documents that can not
	// be read errors instead of warnings.
	Strict bool
}

// Parser reads presentation documents.
type Parser struct {
	Options
}

// NewParser returns a new parser with the given options.
func NewParser(opts Options) *Parser {
	if opts.DataModel == nil {
		opts.DataModel = meta.Default()
	}
	return &Parser{Options: opts}
}

// OpenPresentation reads the presentation document with the given path
// from the given file system, which also serves its class documents.
func (ps *Parser) OpenPresentation(fsys fs.FS, filename string) (*graph.Presentation, error) {
	f, err := fsys.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d := ps.newDecoder(f, filename, fsys)
	return d.parse()
}

// ParsePresentation reads a presentation document with the given name.
// Class documents are read from [Options.FS] relative to the directory
// of the name.
func (ps *Parser) ParsePresentation(r io.Reader, name string) (*graph.Presentation, error) {
	return ps.newDecoder(r, name, ps.FS).parse()
}

// decoder is the state of the parse of one presentation document.
type decoder struct {
	*Parser
	name string
	fsys fs.FS
	dir  string
	dec  *xml.Decoder
	p    *graph.Presentation

	sawGraph bool
	sawLogic bool
}

func (ps *Parser) newDecoder(r io.Reader, name string, fsys fs.FS) *decoder {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	dm := ps.DataModel
	if dm == nil {
		dm = meta.Default()
	}
	return &decoder{
		Parser: ps,
		name:   name,
		fsys:   fsys,
		dir:    path.Dir(name),
		dec:    dec,
		p:      graph.NewPresentation(name, dm),
	}
}

// errorf returns a [ParseError] at the current position that wraps err.
func (d *decoder) errorf(err error, format string, args ...any) error {
	line, _ := d.dec.InputPos()
	return &ParseError{Document: d.name, Line: line, Err: fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))}
}

// tokenError converts an error of the xml decoder to a [ParseError].
func (d *decoder) tokenError(err error) error {
	if err == io.EOF {
		return d.errorf(ErrMalformed, "unexpected end of document")
	}
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &ParseError{Document: d.name, Line: se.Line, Err: fmt.Errorf("%w: %s", ErrMalformed, se.Msg)}
	}
	return &ParseError{Document: d.name, Err: err}
}

// children calls fn for every child element of the current element,
// up to its end. fn must consume the whole child element.
func (d *decoder) children(fn func(se xml.StartElement) error) error {
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return d.tokenError(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// skip skips the rest of the current element.
func (d *decoder) skip() error {
	if err := d.dec.Skip(); err != nil {
		return d.tokenError(err)
	}
	return nil
}

// text returns the character data of the current element up to its
// end, skipping nested elements.
func (d *decoder) text() (string, error) {
	var b strings.Builder
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return "", d.tokenError(err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			if err := d.skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return b.String(), nil
		}
	}
}

// unknown handles an element that is not expected where it is.
func (d *decoder) unknown(se xml.StartElement) error {
	if d.Strict {
		return d.errorf(ErrUnknownType, "unexpected element <%s>", se.Name.Local)
	}
	line, _ := d.dec.InputPos()
	slog.Warn("skipping unknown element", "document", d.name, "line", line, "element", se.Name.Local)
	return d.skip()
}

// attr returns the value of the named attribute.
func attr(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// changes returns the attributes of the element as property changes,
// except for the given ones.
func changes(se xml.StartElement, except ...string) *props.ChangeList {
	cl := &props.ChangeList{}
outer:
	for _, a := range se.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		for _, e := range except {
			if a.Name.Local == e {
				continue outer
			}
		}
		cl.Append(props.Change{Name: a.Name.Local, Value: a.Value})
	}
	return cl
}

// cleanPath converts a path of a document to a slash separated path
// relative to the document.
func cleanPath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
	return strings.TrimPrefix(path.Clean(p), "/")
}

// parse reads the document.
func (d *decoder) parse() (*graph.Presentation, error) {
	for {
		tok, err := d.dec.Token()
		if err == io.EOF {
			return nil, d.errorf(ErrMalformed, "no UIP element")
		}
		if err != nil {
			return nil, d.tokenError(err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "UIP" {
			return nil, d.errorf(ErrMalformed, "root element is <%s>, not <UIP>", se.Name.Local)
		}
		if v, _ := attr(se, "version"); v != "" {
			if err := checkVersion(v, PresentationVersions); err != nil {
				return nil, d.errorf(err, "presentation")
			}
		}
		err = d.children(func(se xml.StartElement) error {
			if se.Name.Local == "Project" {
				return d.project()
			}
			return d.unknown(se)
		})
		if err != nil {
			return nil, err
		}
		break
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return d.p, nil
}

func (d *decoder) project() error {
	return d.children(func(se xml.StartElement) error {
		switch se.Name.Local {
		case "ProjectSettings":
			d.settings(se)
			return d.skip()
		case "Classes":
			return d.classes()
		case "BufferData":
			return d.bufferData()
		case "Graph":
			if d.sawGraph {
				return d.errorf(ErrDuplicate, "second <Graph>")
			}
			d.sawGraph = true
			return d.graph()
		case "Logic":
			if !d.sawGraph {
				return d.errorf(ErrMalformed, "<Logic> before <Graph>")
			}
			if d.sawLogic {
				return d.errorf(ErrDuplicate, "second <Logic>")
			}
			d.sawLogic = true
			return d.logic()
		}
		return d.unknown(se)
	})
}

// settings reads the project settings. Bad values are logged.
func (d *decoder) settings(se xml.StartElement) {
	s := &d.p.Settings
	for _, a := range se.Attr {
		var err error
		switch a.Name.Local {
		case "author":
			s.Author = a.Value
		case "company":
			s.Company = a.Value
		case "presentationWidth":
			s.Width, err = parseLong(a.Value)
		case "presentationHeight":
			s.Height, err = parseLong(a.Value)
		case "presentationRotation":
			err = s.Rotation.UnmarshalText([]byte(a.Value))
		case "maintainAspect":
			s.MaintainAspect, err = props.ParseBool(a.Value)
		}
		if err != nil {
			slog.Warn("invalid project setting", "document", d.name, "property", a.Name.Local, "value", a.Value, "err", err)
		}
	}
}

func parseLong(text string) (int32, error) {
	v, err := props.Parse(props.Long, text)
	return v.I, err
}

// classes reads the class registry and the class documents.
func (d *decoder) classes() error {
	return d.children(func(se xml.StartElement) error {
		kind, err := graph.ParseKind(se.Name.Local)
		if err != nil || !kind.IsDynamic() {
			return d.unknown(se)
		}
		c := &graph.Class{Kind: kind}
		c.ID, _ = attr(se, "id")
		c.Name, _ = attr(se, "name")
		src, _ := attr(se, "sourcepath")
		c.SourcePath = cleanPath(src)
		if c.ID == "" {
			return d.errorf(ErrMalformed, "class without id")
		}
		if d.p.Classes.Has(c.ID) {
			return d.errorf(ErrDuplicate, "class %q", c.ID)
		}
		if err := d.loadClass(c); err != nil {
			if d.Strict {
				return d.errorf(ErrMissingReference, "class %q: %v", c.ID, err)
			}
			slog.Warn("can not load class document", "document", d.name, "id", c.ID, "path", c.SourcePath, "err", err)
		}
		d.p.Classes.Set(c.ID, c)
		return d.skip()
	})
}

// loadClass reads the metadata document of the class.
func (d *decoder) loadClass(c *graph.Class) error {
	if d.fsys == nil {
		return errors.New("no file system for class documents")
	}
	if c.SourcePath == "" || c.SourcePath == "." {
		return errors.New("class has no source path")
	}
	f, err := d.fsys.Open(path.Join(d.dir, c.SourcePath))
	if err != nil {
		return err
	}
	defer f.Close()
	switch c.Kind {
	case graph.KindCustomMaterial:
		c.Material, err = meta.ParseCustomMaterial(f)
		if err == nil && c.Name == "" {
			c.Name = c.Material.Name
		}
	case graph.KindEffect:
		c.Effect, err = meta.ParseEffect(f)
	case graph.KindBehavior:
		c.Behavior, err = meta.ParseBehavior(f)
	}
	return err
}

// bufferData reads the image buffer registry.
func (d *decoder) bufferData() error {
	return d.children(func(se xml.StartElement) error {
		if se.Name.Local != "ImageBuffer" {
			return d.unknown(se)
		}
		src, _ := attr(se, "sourcepath")
		tr, _ := attr(se, "hasTransparency")
		t, err := props.ParseBool(tr)
		if err != nil {
			slog.Warn("invalid image buffer entry", "document", d.name, "path", src, "value", tr, "err", err)
		} else if src != "" {
			d.p.ImageBuffers[cleanPath(src)] = t
		}
		return d.skip()
	})
}

// graph reads the scene graph, which has exactly one scene.
func (d *decoder) graph() error {
	return d.children(func(se xml.StartElement) error {
		if se.Name.Local != "Scene" {
			return d.errorf(ErrMalformed, "<%s> outside of the scene", se.Name.Local)
		}
		return d.object(se, tree.Nil)
	})
}

// object reads an object element and its children.
func (d *decoder) object(se xml.StartElement, parent tree.Handle) error {
	kind, err := graph.ParseKind(se.Name.Local)
	if err != nil || kind == graph.KindSlide {
		return d.errorf(ErrUnknownType, "<%s>", se.Name.Local)
	}
	if kind == graph.KindScene && !d.p.Scene().IsNil() {
		return d.errorf(ErrDuplicate, "second scene")
	}
	id, _ := attr(se, "id")
	h, err := d.p.NewObject(kind, id)
	if err != nil {
		if errors.Is(err, graph.ErrDuplicateID) {
			return d.errorf(ErrDuplicate, "id %q", id)
		}
		return d.errorf(ErrMalformed, "%v", err)
	}
	d.p.SetProperties(h, changes(se, "id"), true)
	if parent.IsNil() {
		err = d.p.SetScene(h)
	} else {
		err = d.p.Tree().AppendChild(parent, h)
	}
	if err != nil {
		return d.errorf(ErrMalformed, "%v", err)
	}
	return d.children(func(se xml.StartElement) error {
		return d.object(se, h)
	})
}

// logic reads the master slides.
func (d *decoder) logic() error {
	return d.children(func(se xml.StartElement) error {
		if se.Name.Local != "State" {
			return d.unknown(se)
		}
		return d.masterSlide(se)
	})
}

// masterSlide reads a master slide of the scene or of a component.
func (d *decoder) masterSlide(se xml.StartElement) error {
	scope := d.p.Scene()
	if comp, ok := attr(se, "component"); ok && comp != "" {
		scope = d.p.ObjectByID(comp)
		if scope.IsNil() {
			return d.errorf(ErrMissingReference, "slide component %q", comp)
		}
	}
	if k := d.p.KindOf(scope); k != graph.KindScene && k != graph.KindComponent {
		return d.errorf(ErrMalformed, "slide component %q is a %v", d.p.ID(scope), k)
	}
	if !d.p.MasterSlide(scope).IsNil() {
		return d.errorf(ErrDuplicate, "second master slide for %q", d.p.ID(scope))
	}
	h, err := d.slide(se, tree.Nil)
	if err != nil {
		return err
	}
	if err := d.p.AddMasterSlide(scope, h); err != nil {
		return d.errorf(ErrMalformed, "%v", err)
	}
	return d.slideContent(h)
}

// slide creates a slide from its element.
func (d *decoder) slide(se xml.StartElement, parent tree.Handle) (tree.Handle, error) {
	id, _ := attr(se, "id")
	h, err := d.p.NewObject(graph.KindSlide, id)
	if err != nil {
		return tree.Nil, d.errorf(ErrDuplicate, "id %q", id)
	}
	d.p.SetProperties(h, changes(se, "id", "component"), true)
	if !parent.IsNil() {
		if err := d.p.Tree().AppendChild(parent, h); err != nil {
			return tree.Nil, d.errorf(ErrMalformed, "%v", err)
		}
	}
	return h, nil
}

// slideContent reads the child slides and the entries of a slide.
func (d *decoder) slideContent(slide tree.Handle) error {
	isMaster := d.p.Tree().Parent(slide).IsNil()
	return d.children(func(se xml.StartElement) error {
		switch se.Name.Local {
		case "State":
			if !isMaster {
				return d.errorf(ErrMalformed, "slide nested in child slide %q", d.p.ID(slide))
			}
			h, err := d.slide(se, slide)
			if err != nil {
				return err
			}
			return d.slideContent(h)
		case "Add", "Set":
			return d.entry(se, slide, se.Name.Local == "Add")
		}
		return d.unknown(se)
	})
}

// entry reads an Add or Set entry of a slide. Add makes the object a
// member of the slide. On the master slide the properties are applied
// to the object as its baseline state; on a child slide they are
// recorded as changes of the slide.
func (d *decoder) entry(se xml.StartElement, slide tree.Handle, add bool) error {
	ref, _ := attr(se, "ref")
	if ref == "" {
		return d.errorf(ErrMalformed, "<%s> without ref", se.Name.Local)
	}
	h := d.p.ObjectByID(ref)
	if h.IsNil() {
		return d.errorf(ErrMissingReference, "slide %q: %q", d.p.ID(slide), ref)
	}
	s := d.p.Slide(slide)
	cl := changes(se, "ref")
	master := d.p.MasterOf(slide)
	if slide == master {
		if add {
			s.AddMember(h)
		}
		d.p.ApplyChanges(h, cl)
	} else if add && s.AddMember(h) && !d.p.Slide(master).IsMember(h) && !cl.Has("eyeball") {
		// objects that only live on this slide are shown by it
		shown := props.NewChangeList(props.Change{Name: "eyeball", Value: props.FormatBool(true)})
		shown.AppendList(cl)
		cl = shown
	}
	s.AddChanges(h, cl)
	return d.children(func(se xml.StartElement) error {
		switch se.Name.Local {
		case "AnimationTrack":
			return d.track(se, s, h)
		case "Action":
			return d.action(se, s, h)
		}
		return d.unknown(se)
	})
}

// track reads an animation track of the given object.
func (d *decoder) track(se xml.StartElement, s *graph.Slide, target tree.Handle) error {
	t := &graph.AnimationTrack{Target: target, Curve: anim.Linear}
	t.Property, _ = attr(se, "property")
	if t.Property == "" {
		return d.errorf(ErrMalformed, "animation track without property")
	}
	if typ, ok := attr(se, "type"); ok && typ != "" {
		if err := t.Curve.UnmarshalText([]byte(typ)); err != nil {
			return d.errorf(ErrMalformed, "%v", err)
		}
	}
	if dyn, ok := attr(se, "dynamic"); ok {
		var err error
		if t.Dynamic, err = props.ParseBool(dyn); err != nil {
			slog.Warn("invalid animation track flag", "document", d.name, "id", d.p.ID(target), "property", t.Property, "value", dyn)
		}
	}
	payload, err := d.text()
	if err != nil {
		return err
	}
	if t.Keys, err = anim.ParseKeyframes(t.Curve, payload); err != nil {
		return d.errorf(ErrMalformed, "animation track %s.%s: %v", d.p.ID(target), t.Property, err)
	}
	anim.Sort(t.Keys)
	if pd := d.p.PropertyDef(target, strings.SplitN(t.Property, ".", 2)[0]); pd != nil && !pd.Animatable {
		slog.Warn("animating a property that is not animatable", "document", d.name, "id", d.p.ID(target), "property", t.Property)
	}
	s.Tracks = append(s.Tracks, t)
	return nil
}

// action reads an action owned by the given object.
func (d *decoder) action(se xml.StartElement, s *graph.Slide, owner tree.Handle) error {
	a := &graph.Action{Owner: owner, Active: true}
	for _, at := range se.Attr {
		switch at.Name.Local {
		case "id":
			a.ID = at.Value
		case "eyeball":
			active, err := props.ParseBool(at.Value)
			if err != nil {
				slog.Warn("invalid action flag", "document", d.name, "id", a.ID, "value", at.Value)
				continue
			}
			a.Active = active
		case "event":
			a.Event = at.Value
		case "triggerObject":
			a.Trigger.Target = at.Value
		case "targetObject":
			a.Target.Target = at.Value
		case "handler":
			a.Handler = graph.ParseHandlerKind(at.Value)
			if a.Handler == graph.HandlerBehavior {
				a.HandlerName = at.Value
			}
		}
	}
	err := d.children(func(se xml.StartElement) error {
		if se.Name.Local != "HandlerArgument" {
			return d.unknown(se)
		}
		arg := graph.HandlerArgument{Type: props.String}
		arg.Name, _ = attr(se, "name")
		arg.Value, _ = attr(se, "value")
		if t, ok := attr(se, "type"); ok {
			if typ, err := props.ParseType(t); err == nil {
				arg.Type = typ
			} else {
				slog.Warn("invalid handler argument type", "document", d.name, "id", a.ID, "value", t)
			}
		}
		if t, ok := attr(se, "argtype"); ok {
			if err := arg.ArgType.UnmarshalText([]byte(t)); err != nil {
				slog.Warn("invalid handler argument type", "document", d.name, "id", a.ID, "value", t)
			}
		}
		a.Args = append(a.Args, arg)
		return d.skip()
	})
	if err != nil {
		return err
	}
	s.Actions = append(s.Actions, a)
	return nil
}

// finish runs the second pass over the document.
func (d *decoder) finish() error {
	p := d.p
	if p.Scene().IsNil() {
		return &ParseError{Document: d.name, Err: fmt.Errorf("%w: no scene", ErrMalformed)}
	}
	if p.Master().IsNil() {
		slog.Debug("presentation has no slides", "document", d.name)
		h, err := p.NewObject(graph.KindSlide, "")
		if err == nil {
			p.SetProperties(h, &props.ChangeList{}, true)
			err = p.AddMasterSlide(p.Scene(), h)
		}
		if err != nil {
			return &ParseError{Document: d.name, Err: err}
		}
	}
	if err := p.ResolveReferences(); err != nil {
		return &ParseError{Document: d.name, Err: fmt.Errorf("%w: %w", ErrMissingReference, err)}
	}
	if err := ResolveAliases(p); err != nil {
		return &ParseError{Document: d.name, Err: err}
	}
	p.ComputeAllRollbacks()
	return nil
}
