// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package anim implements the keyframe animation engine: a typed
// sequence of keyframes evaluated at a query time through an
// easing-scaled mix, plus velocity (derivative) evaluation for matching
// node classes.
package anim

import (
	"golang.org/x/exp/slices"

	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
)

const pkgName = "anim"

func newErr(code errs.Code, reason string) error { return errs.New(pkgName, code, reason) }

// Class identifies the concrete animated value type an Animation carries,
// selecting its mix and copy strategies.
type Class int

// Classes.
const (
	ClassFloat Class = iota
	ClassVec2
	ClassVec3
	ClassVec4
	ClassQuat
	ClassPath
	ClassColor
	ClassBufferFloat
	ClassBufferVec2
	ClassBufferVec3
	ClassBufferVec4
	ClassTime
)

// ColorSpace identifies the color space an AnimatedColor keyframe's
// scalar components are expressed in.
type ColorSpace int

// Color spaces.
const (
	ColorSRGB ColorSpace = iota
	ColorHSL
	ColorHSV
)

// Value is a tagged union wide enough to hold any class this package
// mixes: a scalar, up to 4 vector/quaternion components, or a slice for
// the buffer classes.
type Value struct {
	Scalar float32
	Vec    [4]float32
	Buffer []float32
}

// PathEvaluator is the narrow interface AnimatedPath needs from a path
// (see path.Path.Evaluate), kept here so this package does not need to
// import path.
type PathEvaluator interface {
	Evaluate(d float32) linear.V3
}

// Keyframe is one immutable (time, value) pair plus its easing.
type Keyframe struct {
	Time       float64
	Value      Value
	Easing     Easing
	EasingArgs []float32
	// StartOffset/EndOffset rescale the easing ratio; 0 and 0
	// reproduce the unscaled easing.
	StartOffset, EndOffset float32
}

// Animation is an immutable vector of typed keyframes, ordered by
// non-decreasing time, together with the per-instance state the
// mix/copy strategies consult.
type Animation struct {
	class     Class
	space     ColorSpace // meaningful only for ClassColor
	keyframes []Keyframe
	path      PathEvaluator // set only for ClassPath
	cachedIdx int
}

// New validates and constructs an Animation of the given class from kfs.
// Keyframe times must be non-decreasing; ClassTime additionally requires
// strictly increasing scalars and Linear easing on every keyframe.
// path is required (and used) only for ClassPath.
func New(class Class, kfs []Keyframe, space ColorSpace, path PathEvaluator) (*Animation, error) {
	if len(kfs) == 0 {
		return nil, newErr(errs.InvalidArg, "Animation requires at least one keyframe")
	}
	for i := 1; i < len(kfs); i++ {
		if kfs[i].Time < kfs[i-1].Time {
			return nil, newErr(errs.InvalidArg, "keyframe times must be non-decreasing")
		}
	}
	if class == ClassTime {
		for i, kf := range kfs {
			if kf.Easing != Linear {
				return nil, newErr(errs.InvalidArg, "time animations must use linear easing")
			}
			if i > 0 && kf.Value.Scalar <= kfs[i-1].Value.Scalar {
				return nil, newErr(errs.InvalidArg, "time animation scalars must be strictly increasing")
			}
		}
	}
	if class == ClassPath && path == nil {
		return nil, newErr(errs.InvalidArg, "AnimatedPath requires a path evaluator")
	}
	return &Animation{
		class:     class,
		space:     space,
		keyframes: append([]Keyframe(nil), kfs...),
		path:      path,
	}, nil
}

// Class returns a's value class.
func (a *Animation) Class() Class { return a.class }

// Evaluate computes a's value at time t:
//   - t <= t0: copy(kf0)
//   - t >= tn: copy(kfn)
//   - otherwise: locate the bracketing pair, scale the raw ratio by the
//     keyframe's boundary offsets, apply easing, then mix.
func (a *Animation) Evaluate(t float64) Value {
	kfs := a.keyframes
	n := len(kfs)
	if t <= kfs[0].Time {
		return a.copyValue(kfs[0].Value)
	}
	if t >= kfs[n-1].Time {
		return a.copyValue(kfs[n-1].Value)
	}

	i := a.findBracket(t)
	a.cachedIdx = i
	kf0, kf1 := kfs[i], kfs[i+1]

	span := kf1.Time - kf0.Time
	var r float32
	if span > 0 {
		r = float32((t - kf0.Time) / span)
	}
	// Convention: the boundary offsets remap the raw ratio onto the
	// easing curve's sub-range before the easing runs, so the eased
	// output traverses only that portion of the curve. The inverse
	// ordering (ease first, rescale the result) is NOT what this
	// implementation does.
	r = remapOffset(r, kf1.StartOffset, kf1.EndOffset)
	r = evalEasing(kf1.Easing, r, kf1.EasingArgs)

	return a.mixValue(kf0.Value, kf1.Value, r)
}

// EvaluateVelocity computes the derivative of a's value at time t, for
// use by VelocityFloat/Vec* nodes. Outside [t0,tn] the velocity is
// zero.
func (a *Animation) EvaluateVelocity(t float64) Value {
	kfs := a.keyframes
	n := len(kfs)
	if t <= kfs[0].Time || t >= kfs[n-1].Time {
		return a.zeroValue()
	}
	i := a.findBracket(t)
	kf0, kf1 := kfs[i], kfs[i+1]
	span := kf1.Time - kf0.Time
	if span <= 0 {
		return a.zeroValue()
	}
	r := float32((t - kf0.Time) / span)
	r = remapOffset(r, kf1.StartOffset, kf1.EndOffset)
	dr := evalEasingDeriv(kf1.Easing, r, kf1.EasingArgs) / float32(span)
	return a.derivValue(kf0.Value, kf1.Value, dr)
}

// findBracket returns the index i such that keyframes[i].Time <= t <
// keyframes[i+1].Time, using the cached index from the previous call to
// amortize sequential forward evaluation.
func (a *Animation) findBracket(t float64) int {
	kfs := a.keyframes
	i := a.cachedIdx
	if i >= 0 && i < len(kfs)-1 && t >= kfs[i].Time && t < kfs[i+1].Time {
		return i
	}
	j, exact := slices.BinarySearchFunc(kfs, t, func(kf Keyframe, t float64) int {
		switch {
		case kf.Time < t:
			return -1
		case kf.Time > t:
			return 1
		default:
			return 0
		}
	})
	if exact {
		if j >= len(kfs)-1 {
			return len(kfs) - 2
		}
		return j
	}
	if j == 0 {
		return 0
	}
	if j > len(kfs)-1 {
		j = len(kfs) - 1
	}
	return j - 1
}

func remapOffset(r, start, end float32) float32 {
	if start == 0 && end == 0 {
		return r
	}
	lo, hi := start, 1+end
	if hi <= lo {
		return r
	}
	return (r - lo) / (hi - lo)
}
