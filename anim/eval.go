// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"sort"

	"github.com/chewxy/math32"
)

// Evaluate returns the value of the curve at time t (milliseconds).
// Times before the first keyframe clamp to its value, times after the
// last one clamp to the last value, and a single keyframe yields its
// value for all times. An empty curve evaluates to 0.
func Evaluate(curve Curve, keys []Keyframe, t float32) float32 {
	n := len(keys)
	switch {
	case n == 0:
		return 0
	case n == 1 || t <= keys[0].Time:
		return keys[0].Value
	case t >= keys[n-1].Time:
		return keys[n-1].Value
	}
	// first key strictly after t; t is inside [keys[i-1], keys[i])
	i := sort.Search(n, func(i int) bool { return keys[i].Time > t })
	k0, k1 := &keys[i-1], &keys[i]
	span := k1.Time - k0.Time
	if span <= 0 {
		return k1.Value
	}
	s := (t - k0.Time) / span
	switch curve {
	case EaseInOut:
		s = Ease(s, k0.EaseOut/100, k1.EaseIn/100)
		return k0.Value + (k1.Value-k0.Value)*s
	case Bezier:
		return bezierSegment(k0, k1, t)
	}
	return k0.Value + (k1.Value-k0.Value)*s
}

// Ease remaps normalized time s (0..1) through an ease curve. out is
// the amount of easing leaving the segment start, in is the amount of
// easing arriving at the segment end, both 0..1. With both zero the
// mapping is the identity; the end points always map to themselves.
func Ease(s, out, in float32) float32 {
	if s <= 0 {
		return 0
	}
	if s >= 1 {
		return 1
	}
	out = clamp01(out)
	in = clamp01(in)
	// cubic bezier (0,0) (out,0) (1-in,1) (1,1) as y over x
	u := solveCubic(0, out, 1-in, 1, s)
	return cubic(0, 0, 1, 1, u)
}

// bezierSegment evaluates the cubic Bezier running from k0 through its
// outgoing control point and k1's incoming control point to k1.
func bezierSegment(k0, k1 *Keyframe, t float32) float32 {
	// control times are clamped into the segment so that time is
	// monotonic along the curve and the inversion is well defined.
	c1t := math32.Min(math32.Max(k0.C1Time, k0.Time), k1.Time)
	c2t := math32.Min(math32.Max(k1.C2Time, k0.Time), k1.Time)
	u := solveCubic(k0.Time, c1t, c2t, k1.Time, t)
	if u <= 0 {
		return k0.Value
	}
	if u >= 1 {
		return k1.Value
	}
	return cubic(k0.Value, k0.C1Value, k1.C2Value, k1.Value, u)
}

// cubic evaluates the 1D cubic Bezier with the given control values at u.
func cubic(p0, p1, p2, p3, u float32) float32 {
	iu := 1 - u
	return iu*iu*iu*p0 + 3*iu*iu*u*p1 + 3*iu*u*u*p2 + u*u*u*p3
}

// cubicDeriv is the derivative of [cubic] with respect to u.
func cubicDeriv(p0, p1, p2, p3, u float32) float32 {
	iu := 1 - u
	return 3*iu*iu*(p1-p0) + 6*iu*u*(p2-p1) + 3*u*u*(p3-p2)
}

const (
	solveEpsilon = 1e-5
	newtonIters  = 8
	bisectIters  = 40
)

// solveCubic finds u in [0, 1] with cubic(p0..p3, u) == x, assuming the
// curve is non-decreasing, using Newton iteration with a bisection
// fallback.
func solveCubic(p0, p1, p2, p3, x float32) float32 {
	if x <= p0 {
		return 0
	}
	if x >= p3 {
		return 1
	}
	tol := solveEpsilon * math32.Max(1, math32.Abs(p3-p0))
	// initial guess from the chord
	u := (x - p0) / (p3 - p0)
	for range newtonIters {
		fx := cubic(p0, p1, p2, p3, u) - x
		if math32.Abs(fx) < tol {
			return u
		}
		d := cubicDeriv(p0, p1, p2, p3, u)
		if math32.Abs(d) < 1e-6 {
			break
		}
		u -= fx / d
		if u < 0 || u > 1 {
			break
		}
	}
	lo, hi := float32(0), float32(1)
	u = 0.5
	for range bisectIters {
		fx := cubic(p0, p1, p2, p3, u) - x
		if math32.Abs(fx) < tol {
			break
		}
		if fx > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) / 2
	}
	return u
}

func clamp01(f float32) float32 {
	return math32.Min(math32.Max(f, 0), 1)
}
