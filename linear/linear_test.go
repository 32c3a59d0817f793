// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
	"testing"
)

func TestV3(t *testing.T) {
	v := V3{1, 2, 4}
	w := V3{0, -1, 2}
	var u V3

	if u.Add(&v, &w); u != (V3{1, 1, 6}) {
		t.Fatalf("V3.Add\nhave %v\nwant [1 1 6]", u)
	}
	if u.Sub(&v, &w); u != (V3{1, 3, 2}) {
		t.Fatalf("V3.Sub\nhave %v\nwant [1 3 2]", u)
	}
	if u.Scale(-1, &v); u != (V3{-1, -2, -4}) {
		t.Fatalf("V3.Scale\nhave %v\nwant [-1 -2 -4]", u)
	}
	if d := v.Dot(&w); d != 6 {
		t.Fatalf("V3.Dot\nhave %v\nwant 6", d)
	}
	if l := v.Len(); l != float32(math.Sqrt(21)) {
		t.Fatalf("V3.Len\nhave %v\nwant %v", l, math.Sqrt(21))
	}

	v = V3{0, 0, -2}
	w = V3{0, 4, 0}
	if v.Norm(&v); v != (V3{0, 0, -1}) {
		t.Fatalf("V3.Norm\nhave %v\nwant [0 0 -1]", v)
	}
	if w.Norm(&w); w != (V3{0, 1, 0}) {
		t.Fatalf("V3.Norm\nhave %v\nwant [0 1 0]", w)
	}
	if u.Cross(&v, &w); u != (V3{1, 0, 0}) {
		t.Fatalf("V3.Cross\nhave %v\nwant [1 0 0]", u)
	}
	if u.Cross(&w, &v); u != (V3{-1, 0, 0}) {
		t.Fatalf("V3.Cross\nhave %v\nwant [-1 0 0]", u)
	}

	// Zero-length input normalizes to the zero vector.
	z := V3{}
	if z.Norm(&z); z != (V3{}) {
		t.Fatalf("V3.Norm of zero\nhave %v\nwant [0 0 0]", z)
	}

	if u.Lerp(&V3{0, 0, 0}, &V3{2, 4, 8}, 0.5); u != (V3{1, 2, 4}) {
		t.Fatalf("V3.Lerp\nhave %v\nwant [1 2 4]", u)
	}
}

func TestM4(t *testing.T) {
	var ident, m, n M4
	ident.I()

	// Identity composition preserves the operand bitwise.
	m.Translate(3, -2, 1)
	n.Mul(&m, &ident)
	if n != m {
		t.Fatalf("M4.Mul by identity\nhave %v\nwant %v", n, m)
	}
	n.Mul(&ident, &m)
	if n != m {
		t.Fatalf("M4.Mul by identity\nhave %v\nwant %v", n, m)
	}

	// Invert undoes the transform within float tolerance.
	var inv, round M4
	m.Rotate(1.1, &V3{0, 0, 1}, nil)
	inv.Invert(&m)
	round.Mul(&m, &inv)
	for i := range round {
		for j := range round[i] {
			if d := round[i][j] - ident[i][j]; d > 1e-6 || d < -1e-6 {
				t.Fatalf("M4.Invert round-trip\nhave %v", round)
			}
		}
	}

	// A rotation applied to a vector.
	m.Rotate(float32(math.Pi/2), &V3{0, 0, 1}, nil)
	var v V4
	v.Mul(&m, &V4{1, 0, 0, 1})
	if d := v[0]; d > 1e-6 || d < -1e-6 {
		t.Fatalf("rotated x\nhave %v\nwant 0", v[0])
	}
	if d := v[1] - 1; d > 1e-6 || d < -1e-6 {
		t.Fatalf("rotated y\nhave %v\nwant 1", v[1])
	}
}

func TestQuatSlerp(t *testing.T) {
	l := Q{R: 1}
	half := float32(math.Pi / 4)
	r := Q{V: V3{float32(math.Sin(float64(half))), 0, 0}, R: float32(math.Cos(float64(half)))}
	var q Q
	q.Slerp(&l, &r, 0.5)
	if d := q.Len() - 1; d > 1e-5 || d < -1e-5 {
		t.Fatalf("Q.Slerp magnitude\nhave %v\nwant 1", q.Len())
	}
	if q.V[0] <= 0 {
		t.Fatalf("Q.Slerp x component\nhave %v\nwant > 0", q.V[0])
	}

	// Endpoints reproduce exactly.
	q.Slerp(&l, &r, 0)
	if q != l {
		t.Fatalf("Q.Slerp at 0\nhave %v\nwant %v", q, l)
	}
	q.Slerp(&l, &r, 1)
	for i := range q.V {
		if d := q.V[i] - r.V[i]; d > 1e-6 || d < -1e-6 {
			t.Fatalf("Q.Slerp at 1\nhave %v\nwant %v", q, r)
		}
	}
}

func TestPoly(t *testing.T) {
	// A cubic Bezier's polynomial form matches de Casteljau at the
	// endpoints and midpoint.
	p0 := V3{-0.7, 0, 0.3}
	p1 := V3{-0.2, -0.3, 0.2}
	p2 := V3{0.2, 0.8, 0.4}
	p3 := V3{0.8, 0.1, -0.1}
	poly := Poly3FromPoints(&p0, &p1, &p2, &p3)

	if r := poly.Eval(0); r != p0 {
		t.Fatalf("POLY3.Eval(0)\nhave %v\nwant %v", r, p0)
	}
	r := poly.Eval(1)
	for i := range r {
		if d := r[i] - p3[i]; d > 1e-6 || d < -1e-6 {
			t.Fatalf("POLY3.Eval(1)\nhave %v\nwant %v", r, p3)
		}
	}
	// Midpoint by repeated lerp.
	mid := func(a, b V3) V3 { return V3{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2, (a[2] + b[2]) / 2} }
	q0, q1, q2 := mid(p0, p1), mid(p1, p2), mid(p2, p3)
	r0, r1 := mid(q0, q1), mid(q1, q2)
	want := mid(r0, r1)
	r = poly.Eval(0.5)
	for i := range r {
		if d := r[i] - want[i]; d > 1e-6 || d < -1e-6 {
			t.Fatalf("POLY3.Eval(0.5)\nhave %v\nwant %v", r, want)
		}
	}
}

func TestSrgbRoundTrip(t *testing.T) {
	// srgb -> linear -> srgb stays within 1/255 per channel.
	for i := 0; i <= 255; i++ {
		c := float32(i) / 255
		r := LinearToSrgb(SrgbToLinear(c))
		if d := r - c; d > 1.0/255 || d < -1.0/255 {
			t.Fatalf("srgb round-trip at %d\nhave %v\nwant %v", i, r, c)
		}
	}
}

func TestFormatTable(t *testing.T) {
	cases := []struct {
		f     Format
		size  int
		comps int
	}{
		{R8Unorm, 1, 1},
		{RGBA8Unorm, 4, 4},
		{RG16Sfloat, 4, 2},
		{RGB32Sfloat, 12, 3},
		{RGBA32Sfloat, 16, 4},
		{D24UnormS8Uint, 4, 2},
	}
	for _, c := range cases {
		info := c.f.Lookup()
		if info.Size != c.size || info.Components != c.comps {
			t.Fatalf("%s\nhave %d/%d\nwant %d/%d",
				c.f, info.Size, info.Components, c.size, c.comps)
		}
	}
	if !D32Sfloat.IsDepth() || D32Sfloat.IsColor() {
		t.Fatal("D32Sfloat misclassified")
	}
	if !S8Uint.IsStencil() {
		t.Fatal("S8Uint misclassified")
	}
}

func TestM3(t *testing.T) {
	var m4 M4
	m4.Rotate(0.7, &V3{0, 1, 0}, nil)
	m4[3] = V4{5, 6, 7, 1}
	var m M3
	m.FromM4(&m4)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if m[i][j] != m4[i][j] {
				t.Fatalf("M3.FromM4 at [%d][%d]:\nhave %v\nwant %v", i, j, m[i][j], m4[i][j])
			}
		}
	}

	// A pure rotation has determinant 1.
	if d := m.Det(); d < 1-1e-5 || d > 1+1e-5 {
		t.Fatalf("M3.Det of rotation:\nhave %v\nwant 1", d)
	}

	// adjugate(n) == det(n) * inverse(n).
	n := M3{{0, 1, 1}, {3, 0, -1}, {-1, 1, 0}}
	var adj, inv M3
	adj.Adjugate(&n)
	inv.Invert(&n)
	det := n.Det()
	for i := range adj {
		for j := range adj[i] {
			want := inv[i][j] * det
			if d := adj[i][j] - want; d > 1e-5 || d < -1e-5 {
				t.Fatalf("M3.Adjugate at [%d][%d]:\nhave %v\nwant %v", i, j, adj[i][j], want)
			}
		}
	}
}
