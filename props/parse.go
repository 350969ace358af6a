// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package props

import (
	"fmt"
	"strconv"
	"strings"
)

// ConversionError is returned by [Parse] when a literal does not
// parse as its declared type.
type ConversionError struct {
	Type Type
	Text string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("props: can not convert %q to %v: %v", e.Text, e.Type, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Parse converts the given text into a [Value] of the given type.
// Reference, path, enumerated and string types keep the text as is;
// validation of enumerated values against their list is done by the
// caller that knows the list.
func Parse(t Type, text string) (Value, error) {
	v := Value{Type: t}
	switch t {
	case Float:
		f, err := ParseFloat(text)
		if err != nil {
			return Value{}, &ConversionError{t, text, err}
		}
		v.F = f
	case Long:
		s := strings.TrimSpace(text)
		i, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			// documents sometimes carry integral floats, such as "100.0"
			f, ferr := strconv.ParseFloat(s, 32)
			if ferr != nil {
				return Value{}, &ConversionError{t, text, err}
			}
			i = int64(f)
		}
		v.I = int32(i)
	case Float2, Float3, Color:
		fs, err := ParseFloats(text)
		if err != nil {
			return Value{}, &ConversionError{t, text, err}
		}
		n := t.Components()
		if t == Color && len(fs) == 3 {
			fs = append(fs, 1)
		}
		if len(fs) != n {
			return Value{}, &ConversionError{t, text, fmt.Errorf("need %d components, have %d", n, len(fs))}
		}
		v.V.X, v.V.Y = fs[0], fs[1]
		if n > 2 {
			v.V.Z = fs[2]
		}
		if n > 3 {
			v.F = fs[3]
		}
	case Boolean:
		b, err := ParseBool(text)
		if err != nil {
			return Value{}, &ConversionError{t, text, err}
		}
		v.B = b
	case Invalid:
		return Value{}, &ConversionError{t, text, fmt.Errorf("invalid type")}
	default:
		v.S = text
	}
	return v, nil
}

// MustParse is like [Parse] but panics on error. It is meant for
// literals in code and tests.
func MustParse(t Type, text string) Value {
	v, err := Parse(t, text)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseFloat parses a single float32.
func ParseFloat(text string) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 32)
	return float32(f), err
}

// ParseBool parses the document forms of a boolean: True / False in any
// case, and 1 / 0.
func ParseBool(text string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean")
}

// ParseFloats parses a list of floats separated by spaces and / or commas.
func ParseFloats(text string) ([]float32, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	fs := make([]float32, len(fields))
	for i, fld := range fields {
		f, err := strconv.ParseFloat(fld, 32)
		if err != nil {
			return nil, err
		}
		fs[i] = float32(f)
	}
	return fs, nil
}

// Zero returns the zero value of the given type.
func Zero(t Type) Value {
	v := Value{Type: t}
	if t == Color {
		v.F = 1
	}
	return v
}
