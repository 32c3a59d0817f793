// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

// POLY1 is a degree-1 (linear) polynomial a*t + b, stored per component.
type POLY1 struct{ A, B V3 }

// Eval evaluates the polynomial at t.
func (p *POLY1) Eval(t float32) (r V3) {
	for i := range r {
		r[i] = p.A[i]*t + p.B[i]
	}
	return
}

// POLY2 is a degree-2 polynomial a*t^2 + b*t + c, stored per component.
type POLY2 struct{ A, B, C V3 }

// Eval evaluates the polynomial at t.
func (p *POLY2) Eval(t float32) (r V3) {
	for i := range r {
		r[i] = (p.A[i]*t+p.B[i])*t + p.C[i]
	}
	return
}

// POLY3 is a degree-3 polynomial a*t^3 + b*t^2 + c*t + d, stored per
// component.
type POLY3 struct{ A, B, C, D V3 }

// Eval evaluates the polynomial at t.
func (p *POLY3) Eval(t float32) (r V3) {
	for i := range r {
		r[i] = ((p.A[i]*t+p.B[i])*t+p.C[i])*t + p.D[i]
	}
	return
}

// Mix linearly interpolates between a and b at parameter t.
func Mix(a, b, t float32) float32 { return a + (b-a)*t }

// LinearNorm remaps x from the range [lo,hi] to [0,1].
// It does not clamp the result.
func LinearNorm(x, lo, hi float32) float32 {
	if hi == lo {
		return 0
	}
	return (x - lo) / (hi - lo)
}

// Poly1FromPoints derives a degree-1 polynomial from two control points,
// using the standard linear change-of-basis (p0 is the line's start, p1
// its end).
func Poly1FromPoints(p0, p1 *V3) POLY1 {
	var a, b POLY1
	a.A.Sub(p1, p0)
	b.B = *p0
	return POLY1{A: a.A, B: b.B}
}

// Poly2FromPoints derives a degree-2 polynomial from a quadratic Bezier's
// three control points (p0 start, p1 control, p2 end), using the
// standard change-of-basis:
//
//	B(t) = (1-t)^2*p0 + 2(1-t)t*p1 + t^2*p2
//	     = (p0 - 2p1 + p2)*t^2 + (2p1 - 2p0)*t + p0
func Poly2FromPoints(p0, p1, p2 *V3) POLY2 {
	var a, b, c V3
	var t0, t1 V3
	t0.Scale(2, p1)
	a.Add(p0, p2)
	a.Sub(&a, &t0)
	t1.Scale(2, p0)
	b.Scale(2, p1)
	b.Sub(&b, &t1)
	c = *p0
	return POLY2{A: a, B: b, C: c}
}

// Poly3FromPoints derives a degree-3 polynomial from a cubic Bezier's
// four control points (p0 start, p1/p2 controls, p3 end), using the
// standard change-of-basis:
//
//	B(t) = (1-t)^3*p0 + 3(1-t)^2*t*p1 + 3(1-t)t^2*p2 + t^3*p3
//	     = (-p0+3p1-3p2+p3)*t^3 + (3p0-6p1+3p2)*t^2 + (-3p0+3p1)*t + p0
func Poly3FromPoints(p0, p1, p2, p3 *V3) POLY3 {
	var a, b, c V3
	var tmp0, tmp1 V3

	// a = -p0 + 3p1 - 3p2 + p3
	tmp0.Scale(3, p1)
	tmp1.Scale(3, p2)
	a.Sub(&tmp0, p0)
	a.Sub(&a, &tmp1)
	a.Add(&a, p3)

	// b = 3p0 - 6p1 + 3p2
	tmp0.Scale(3, p0)
	tmp1.Scale(6, p1)
	b.Sub(&tmp0, &tmp1)
	tmp0.Scale(3, p2)
	b.Add(&b, &tmp0)

	// c = -3p0 + 3p1
	tmp0.Scale(3, p0)
	tmp1.Scale(3, p1)
	c.Sub(&tmp1, &tmp0)

	return POLY3{A: a, B: b, C: c, D: *p0}
}
