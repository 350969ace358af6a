// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-3

func TestParseKeyframesLinear(t *testing.T) {
	keys, err := ParseKeyframes(Linear, "0 0\n1000 100\n  2000,50")
	require.NoError(t, err)
	require.Len(t, keys, 3)
	assert.Equal(t, Keyframe{Time: 2000, Value: 50}, keys[2])
	start, end := Domain(keys)
	assert.Equal(t, float32(0), start)
	assert.Equal(t, float32(2000), end)
}

func TestParseKeyframesErrors(t *testing.T) {
	_, err := ParseKeyframes(EaseInOut, "0 0 100")
	assert.Error(t, err)
	_, err = ParseKeyframes(Linear, "0 abc")
	assert.Error(t, err)
	keys, err := ParseKeyframes(Bezier, "")
	assert.NoError(t, err)
	assert.Empty(t, keys)
}

func TestParseKeyframesBezier(t *testing.T) {
	keys, err := ParseKeyframes(Bezier, "0 0 0 0 0.25 10  1 100 0.75 90 1.5 120")
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, float32(250), keys[0].C1Time)
	assert.Equal(t, float32(1000), keys[1].Time)
	assert.Equal(t, float32(750), keys[1].C2Time)
	assert.Equal(t, float32(0), keys[1].C1Time, "last outgoing control point is zeroed")
	assert.Equal(t, float32(0), keys[1].C1Value)

	round, err := ParseKeyframes(Bezier, FormatKeyframes(Bezier, keys))
	require.NoError(t, err)
	assert.Equal(t, keys, round)
}

func TestParseCurve(t *testing.T) {
	var c Curve
	require.NoError(t, c.UnmarshalText([]byte("easeinout")))
	assert.Equal(t, EaseInOut, c)
	assert.Equal(t, "Bezier", Bezier.String())
	_, err := ParseCurve("Step")
	assert.Error(t, err)
}

func TestEvaluateLinear(t *testing.T) {
	keys := []Keyframe{{Time: 0, Value: 0}, {Time: 1000, Value: 100}, {Time: 2000, Value: 50}}
	assert.InDelta(t, 25, Evaluate(Linear, keys, 250), tol)
	assert.InDelta(t, 75, Evaluate(Linear, keys, 1500), tol)
	assert.InDelta(t, 0, Evaluate(Linear, keys, -10), tol)
	assert.InDelta(t, 50, Evaluate(Linear, keys, 5000), tol)
}

func TestEvaluateSingleAndEmpty(t *testing.T) {
	keys := []Keyframe{{Time: 500, Value: 7}}
	for _, c := range []Curve{Linear, EaseInOut, Bezier} {
		assert.Equal(t, float32(7), Evaluate(c, keys, 0))
		assert.Equal(t, float32(7), Evaluate(c, keys, 10000))
	}
	assert.Equal(t, float32(0), Evaluate(Linear, nil, 10))
}

func TestEvaluateExactKeyframes(t *testing.T) {
	curves := map[Curve][]Keyframe{
		Linear: {{Time: 0, Value: 1}, {Time: 400, Value: -3}, {Time: 1000, Value: 8}},
		EaseInOut: {
			{Time: 0, Value: 1, EaseIn: 100, EaseOut: 100},
			{Time: 400, Value: -3, EaseIn: 50, EaseOut: 20},
			{Time: 1000, Value: 8, EaseIn: 100, EaseOut: 100},
		},
		Bezier: {
			{Time: 0, Value: 1, C1Time: 100, C1Value: 4},
			{Time: 400, Value: -3, C2Time: 300, C2Value: -5, C1Time: 600, C1Value: 0},
			{Time: 1000, Value: 8, C2Time: 900, C2Value: 8},
		},
	}
	for curve, keys := range curves {
		for _, k := range keys {
			assert.InDelta(t, k.Value, Evaluate(curve, keys, k.Time), tol, "%v at %v", curve, k.Time)
		}
	}
}

func TestEvaluateBezierDegeneratesToLinear(t *testing.T) {
	keys := []Keyframe{
		{Time: 0, Value: 0, C1Time: 0, C1Value: 0},
		{Time: 1000, Value: 100, C2Time: 1000, C2Value: 100},
	}
	assert.InDelta(t, 50, Evaluate(Bezier, keys, 500), tol)

	parsed, err := ParseKeyframes(Bezier, "0 0 0 0 0 0 1 100 0 0 0 0")
	require.NoError(t, err)
	assert.InDelta(t, 50, Evaluate(Bezier, parsed, 500), tol)
}

func TestEase(t *testing.T) {
	assert.InDelta(t, 0.3, Ease(0.3, 0, 0), tol, "no easing is identity")
	assert.InDelta(t, 0.5, Ease(0.5, 1, 1), tol, "symmetric easing is centered")
	assert.Less(t, Ease(0.1, 1, 1), float32(0.1), "ease out of the start is slow")
	assert.Greater(t, Ease(0.9, 1, 1), float32(0.9), "ease into the end is slow")
	assert.Equal(t, float32(0), Ease(-1, 1, 1))
	assert.Equal(t, float32(1), Ease(2, 1, 1))
}

func TestSort(t *testing.T) {
	keys := []Keyframe{{Time: 30}, {Time: 10}, {Time: 20}}
	Sort(keys)
	assert.Equal(t, []float32{10, 20, 30}, []float32{keys[0].Time, keys[1].Time, keys[2].Time})
}
