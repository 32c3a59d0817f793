// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package anim

import "github.com/gviegas/ngfx/linear"

// copyValue implements the boundary copy strategy: outside-range
// evaluation simply returns the endpoint keyframe's value unchanged,
// except for ClassPath where the stored scalar must still be run
// through the path evaluator.
func (a *Animation) copyValue(v Value) Value {
	if a.class == ClassPath {
		pt := a.path.Evaluate(v.Scalar)
		return Value{Vec: [4]float32{pt[0], pt[1], pt[2], 0}}
	}
	return v
}

// zeroValue is the velocity-node copy strategy: zero in the shape of a's
// class.
func (a *Animation) zeroValue() Value {
	switch a.class {
	case ClassBufferFloat, ClassBufferVec2, ClassBufferVec3, ClassBufferVec4:
		return Value{Buffer: make([]float32, len(a.keyframes[0].Value.Buffer))}
	default:
		return Value{}
	}
}

// mixValue dispatches to the mix rule for a's class.
func (a *Animation) mixValue(v0, v1 Value, r float32) Value {
	switch a.class {
	case ClassFloat, ClassTime:
		return Value{Scalar: linear.Mix(v0.Scalar, v1.Scalar, r)}
	case ClassVec2:
		return Value{Vec: mixVec(v0.Vec, v1.Vec, r, 2)}
	case ClassVec3:
		return Value{Vec: mixVec(v0.Vec, v1.Vec, r, 3)}
	case ClassVec4:
		return Value{Vec: mixVec(v0.Vec, v1.Vec, r, 4)}
	case ClassQuat:
		return Value{Vec: mixQuat(v0.Vec, v1.Vec, r)}
	case ClassPath:
		s := linear.Mix(v0.Scalar, v1.Scalar, r)
		pt := a.path.Evaluate(s)
		return Value{Vec: [4]float32{pt[0], pt[1], pt[2], 0}}
	case ClassColor:
		return Value{Vec: mixColor(v0.Vec, v1.Vec, r, a.space)}
	case ClassBufferFloat, ClassBufferVec2, ClassBufferVec3, ClassBufferVec4:
		return Value{Buffer: mixBuffer(v0.Buffer, v1.Buffer, r)}
	default:
		return v0
	}
}

// derivValue computes the difference of the two keyframes' values scaled
// by the easing derivative dr, approximating the velocity nodes' "mix
// strategy uses the animation's easing derivative" rule via the same component-wise/slerp-adjacent shape as mixValue.
func (a *Animation) derivValue(v0, v1 Value, dr float32) Value {
	switch a.class {
	case ClassFloat, ClassTime:
		return Value{Scalar: (v1.Scalar - v0.Scalar) * dr}
	case ClassVec2, ClassVec3, ClassVec4, ClassQuat, ClassColor:
		var out [4]float32
		for i := range out {
			out[i] = (v1.Vec[i] - v0.Vec[i]) * dr
		}
		return Value{Vec: out}
	case ClassBufferFloat, ClassBufferVec2, ClassBufferVec3, ClassBufferVec4:
		out := make([]float32, len(v0.Buffer))
		for i := range out {
			out[i] = (v1.Buffer[i] - v0.Buffer[i]) * dr
		}
		return Value{Buffer: out}
	default:
		return Value{}
	}
}

func mixVec(a, b [4]float32, r float32, n int) [4]float32 {
	var out [4]float32
	for i := 0; i < n; i++ {
		out[i] = linear.Mix(a[i], b[i], r)
	}
	return out
}

func mixQuat(a, b [4]float32, r float32) [4]float32 {
	ql := linear.Q{V: linear.V3{a[0], a[1], a[2]}, R: a[3]}
	qr := linear.Q{V: linear.V3{b[0], b[1], b[2]}, R: b[3]}
	var out linear.Q
	out.Slerp(&ql, &qr, r)
	return [4]float32{out.V[0], out.V[1], out.V[2], out.R}
}

func mixBuffer(a, b []float32, r float32) []float32 {
	out := make([]float32, len(a))
	for i := range out {
		out[i] = linear.Mix(a[i], b[i], r)
	}
	return out
}

// mixColor converts both endpoints from their declared color space to
// linear RGB, lerps, then re-encodes to sRGB.
func mixColor(a, b [4]float32, r float32, space ColorSpace) [4]float32 {
	la := toLinearRGB(a, space)
	lb := toLinearRGB(b, space)
	var lm [4]float32
	for i := range lm {
		lm[i] = linear.Mix(la[i], lb[i], r)
	}
	return [4]float32{
		linear.LinearToSrgb(lm[0]),
		linear.LinearToSrgb(lm[1]),
		linear.LinearToSrgb(lm[2]),
		lm[3],
	}
}

func toLinearRGB(c [4]float32, space ColorSpace) [4]float32 {
	switch space {
	case ColorHSL:
		r, g, b := hslToRGB(c[0], c[1], c[2])
		return [4]float32{linear.SrgbToLinear(r), linear.SrgbToLinear(g), linear.SrgbToLinear(b), c[3]}
	case ColorHSV:
		r, g, b := hsvToRGB(c[0], c[1], c[2])
		return [4]float32{linear.SrgbToLinear(r), linear.SrgbToLinear(g), linear.SrgbToLinear(b), c[3]}
	default: // ColorSRGB
		return [4]float32{linear.SrgbToLinear(c[0]), linear.SrgbToLinear(c[1]), linear.SrgbToLinear(c[2]), c[3]}
	}
}

func hueToRGB(p, q, t float32) float32 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func hslToRGB(h, s, l float32) (r, g, b float32) {
	if s == 0 {
		return l, l, l
	}
	var q float32
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	r = hueToRGB(p, q, h+1.0/3)
	g = hueToRGB(p, q, h)
	b = hueToRGB(p, q, h-1.0/3)
	return
}

func hsvToRGB(h, s, v float32) (r, g, b float32) {
	i := int(h*6) % 6
	f := h*6 - float32(int(h*6))
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)
	switch i {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}
