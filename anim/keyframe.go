// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package anim evaluates keyframe animation curves. A curve is a list of
// keyframes sorted by ascending time, interpreted according to its
// [Curve] kind; times are in milliseconds.
package anim

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// Curve is the interpolation kind of an animation track.
type Curve int32

const (
	// Linear interpolates values linearly between keyframes.
	Linear Curve = iota

	// EaseInOut interpolates like Linear, with normalized time remapped
	// through an ease curve built from the ease in / out percentages.
	EaseInOut

	// Bezier treats the keyframes and their control points as a cubic
	// Bezier curve in the time-value plane.
	Bezier
)

var curveNames = []string{"Linear", "EaseInOut", "Bezier"}

func (c Curve) String() string {
	if c < 0 || int(c) >= len(curveNames) {
		return fmt.Sprintf("Curve(%d)", int32(c))
	}
	return curveNames[c]
}

// ParseCurve returns the curve with the given document name.
func ParseCurve(name string) (Curve, error) {
	for i, cn := range curveNames {
		if strings.EqualFold(cn, name) {
			return Curve(i), nil
		}
	}
	return Linear, fmt.Errorf("anim: unknown curve type %q", name)
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (c *Curve) UnmarshalText(text []byte) error {
	v, err := ParseCurve(string(text))
	*c = v
	return err
}

// Stride returns the number of numbers per keyframe in the text
// payload of a track with this curve.
func (c Curve) Stride() int {
	switch c {
	case EaseInOut:
		return 4
	case Bezier:
		return 6
	}
	return 2
}

// Keyframe is one key of an animation curve. Which fields are
// meaningful depends on the [Curve]: Linear uses Time and Value,
// EaseInOut adds EaseIn and EaseOut (percentages, 0..100), and Bezier
// adds the incoming (C2) and outgoing (C1) control points, which are
// absolute points in the time-value plane.
type Keyframe struct {
	Time  float32
	Value float32

	EaseIn  float32
	EaseOut float32

	C2Time  float32
	C2Value float32
	C1Time  float32
	C1Value float32
}

// ParseKeyframes parses the text payload of an animation track: a flat
// list of numbers separated by whitespace (or commas), grouped per
// keyframe according to the curve. Bezier keyframes are written with
// times in seconds and are scaled to milliseconds, and the outgoing
// control point of the last Bezier keyframe is zeroed.
func ParseKeyframes(curve Curve, payload string) ([]Keyframe, error) {
	nums, err := scanNumbers([]byte(payload))
	if err != nil {
		return nil, err
	}
	stride := curve.Stride()
	if len(nums)%stride != 0 {
		return nil, fmt.Errorf("anim: %v keyframe data has %d numbers, not a multiple of %d", curve, len(nums), stride)
	}
	keys := make([]Keyframe, 0, len(nums)/stride)
	for i := 0; i < len(nums); i += stride {
		k := Keyframe{Time: nums[i], Value: nums[i+1]}
		switch curve {
		case EaseInOut:
			k.EaseIn, k.EaseOut = nums[i+2], nums[i+3]
		case Bezier:
			k.Time *= 1000
			k.C2Time, k.C2Value = nums[i+2]*1000, nums[i+3]
			k.C1Time, k.C1Value = nums[i+4]*1000, nums[i+5]
		}
		keys = append(keys, k)
	}
	if curve == Bezier && len(keys) > 0 {
		last := &keys[len(keys)-1]
		last.C1Time, last.C1Value = 0, 0
	}
	return keys, nil
}

// FormatKeyframes is the inverse of [ParseKeyframes].
func FormatKeyframes(curve Curve, keys []Keyframe) string {
	var b strings.Builder
	num := func(f float32) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%g", f)
	}
	for _, k := range keys {
		switch curve {
		case Bezier:
			num(k.Time / 1000)
			num(k.Value)
			num(k.C2Time / 1000)
			num(k.C2Value)
			num(k.C1Time / 1000)
			num(k.C1Value)
		case EaseInOut:
			num(k.Time)
			num(k.Value)
			num(k.EaseIn)
			num(k.EaseOut)
		default:
			num(k.Time)
			num(k.Value)
		}
	}
	return b.String()
}

// scanNumbers reads all numbers of the payload.
func scanNumbers(b []byte) ([]float32, error) {
	var nums []float32
	for i := 0; i < len(b); {
		switch b[i] {
		case ' ', '\t', '\n', '\r', ',':
			i++
			continue
		}
		f, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			end := i + 1
			for end < len(b) && b[end] != ' ' && b[end] != '\n' {
				end++
			}
			return nil, fmt.Errorf("anim: invalid number %q in keyframe data", b[i:end])
		}
		nums = append(nums, float32(f))
		i += n
	}
	return nums, nil
}

// Sort sorts the keyframes by ascending time.
func Sort(keys []Keyframe) {
	slices.SortStableFunc(keys, func(a, b Keyframe) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
}

// Domain returns the time range covered by the keyframes.
func Domain(keys []Keyframe) (start, end float32) {
	if len(keys) == 0 {
		return 0, 0
	}
	return keys[0].Time, keys[len(keys)-1].Time
}
