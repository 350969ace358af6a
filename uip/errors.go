// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uip

import (
	"fmt"

	"github.com/thomasgoedertier/qt3d-runtime-sub001/base/errors"
)

var (
	// ErrMalformed is the error for a document whose structure is
	// not valid, such as a missing scene or bad keyframe data.
	ErrMalformed = errors.New("malformed document")

	// ErrDuplicate is the error for an element that may only occur
	// once, or an id that is already taken.
	ErrDuplicate = errors.New("duplicate element")

	// ErrUnknownType is the error for an element of an unknown kind.
	ErrUnknownType = errors.New("unknown element type")

	// ErrMissingReference is the error for a reference in a required
	// position that does not resolve.
	ErrMissingReference = errors.New("missing reference")

	// ErrVersion is the error for a document version that is not
	// supported.
	ErrVersion = errors.New("unsupported document version")
)

// ParseError is an error that aborts the parse of a document.
type ParseError struct {

	// Document is the name of the document.
	Document string

	// Line is the line of the document at which the error was found,
	// or 0 if the error is not tied to a position.
	Line int

	Err error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Document, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Document, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
