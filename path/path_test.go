// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package path

import (
	"math"
	"testing"

	"github.com/gviegas/ngfx/linear"
)

func TestLineToNoOp(t *testing.T) {
	p := New()
	p.MoveTo(linear.V3{0, 0, 0})
	p.LineTo(linear.V3{0, 0, 0})
	if p.Len() != 0 {
		t.Fatalf("Len() after no-op LineTo:\nhave %d\nwant 0", p.Len())
	}
	p.LineTo(linear.V3{1, 0, 0})
	if p.Len() != 1 {
		t.Fatalf("Len() after LineTo:\nhave %d\nwant 1", p.Len())
	}
}

func TestBezierNoOp(t *testing.T) {
	p := New()
	p.MoveTo(linear.V3{1, 1, 0})
	p.Bezier2To(linear.V3{1, 1, 0}, linear.V3{1, 1, 0})
	if p.Len() != 0 {
		t.Fatalf("Len() after no-op Bezier2To:\nhave %d\nwant 0", p.Len())
	}
	p.Bezier3To(linear.V3{1, 1, 0}, linear.V3{1, 1, 0}, linear.V3{1, 1, 0})
	if p.Len() != 0 {
		t.Fatalf("Len() after no-op Bezier3To:\nhave %d\nwant 0", p.Len())
	}
}

func TestCloseFlagsClosing(t *testing.T) {
	p := New()
	p.MoveTo(linear.V3{0, 0, 0})
	p.LineTo(linear.V3{1, 0, 0})
	p.LineTo(linear.V3{1, 1, 0})
	p.Close()
	if p.Len() != 3 {
		t.Fatalf("Len():\nhave %d\nwant 3", p.Len())
	}
	if p.segs[2].flags&Closing == 0 {
		t.Fatalf("last segment not flagged Closing")
	}
}

func TestFinalizeOpenEnd(t *testing.T) {
	p := New()
	p.MoveTo(linear.V3{0, 0, 0})
	p.LineTo(linear.V3{1, 0, 0})
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if p.segs[0].flags&OpenEnd == 0 {
		t.Fatalf("unclosed sub-path not flagged OpenEnd")
	}
	if p.State() != Finalized {
		t.Fatalf("State():\nhave %v\nwant Finalized", p.State())
	}
}

func TestFinalizeClosedNotOpenEnd(t *testing.T) {
	p := New()
	p.MoveTo(linear.V3{0, 0, 0})
	p.LineTo(linear.V3{1, 0, 0})
	p.Close()
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	last := len(p.segs) - 1
	if p.segs[last].flags&OpenEnd != 0 {
		t.Fatalf("closed sub-path incorrectly flagged OpenEnd")
	}
}

func TestInitRejectsEmptyPath(t *testing.T) {
	p := New()
	if err := p.Init(16); err == nil {
		t.Fatalf("Init on empty path: have nil error, want non-nil")
	}
}

func TestInitRejectsBadPrecision(t *testing.T) {
	p := New()
	p.MoveTo(linear.V3{0, 0, 0})
	p.LineTo(linear.V3{1, 0, 0})
	if err := p.Init(0); err == nil {
		t.Fatalf("Init with precision 0: have nil error, want non-nil")
	}
}

// TestCubicBezierEvaluateBoundaries checks a single
// cubic Bezier segment, checking that Evaluate(0) and Evaluate(1) return
// the exact endpoints.
func TestCubicBezierEvaluateBoundaries(t *testing.T) {
	p := New()
	p0 := linear.V3{0, 0, 0}
	p3 := linear.V3{3, 0, 0}
	p.MoveTo(p0)
	p.Bezier3To(linear.V3{1, 2, 0}, linear.V3{2, -2, 0}, p3)
	if err := p.Init(32); err != nil {
		t.Fatalf("Init: %v", err)
	}

	start := p.Evaluate(0)
	if !v3Close(start, p0, 1e-4) {
		t.Fatalf("Evaluate(0):\nhave %v\nwant %v", start, p0)
	}
	end := p.Evaluate(1)
	if !v3Close(end, p3, 1e-4) {
		t.Fatalf("Evaluate(1):\nhave %v\nwant %v", end, p3)
	}
}

func TestEvaluateMonotonicForward(t *testing.T) {
	p := New()
	p.MoveTo(linear.V3{0, 0, 0})
	p.LineTo(linear.V3{10, 0, 0})
	if err := p.Init(8); err != nil {
		t.Fatalf("Init: %v", err)
	}
	var prevX float32 = -1
	for i := 0; i <= 10; i++ {
		d := float32(i) / 10
		pt := p.Evaluate(d)
		if pt[0] < prevX {
			t.Fatalf("Evaluate not monotonic at d=%v: x=%v < prev=%v", d, pt[0], prevX)
		}
		prevX = pt[0]
	}
}

func TestTransformForbiddenAfterInit(t *testing.T) {
	p := New()
	p.MoveTo(linear.V3{0, 0, 0})
	p.LineTo(linear.V3{1, 0, 0})
	if err := p.Init(4); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("Transform after Init: have no panic, want panic")
		}
	}()
	var m linear.M4
	m.I()
	p.Transform(&m)
}

func TestAddSVGPathLines(t *testing.T) {
	p := New()
	if err := p.AddSVGPath("M0,0 L10,0 L10,10 Z"); err != nil {
		t.Fatalf("AddSVGPath: %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("Len():\nhave %d\nwant 3", p.Len())
	}
	if p.segs[2].flags&Closing == 0 {
		t.Fatalf("Z did not flag Closing")
	}
}

func TestAddSVGPathRelative(t *testing.T) {
	p := New()
	if err := p.AddSVGPath("m0 0 l10 0 l0 10"); err != nil {
		t.Fatalf("AddSVGPath: %v", err)
	}
	if p.Len() != 2 {
		t.Fatalf("Len():\nhave %d\nwant 2", p.Len())
	}
	last := p.segs[len(p.segs)-1].end()
	want := linear.V3{10, 10, 0}
	if !v3Close(last, want, 1e-6) {
		t.Fatalf("final cursor:\nhave %v\nwant %v", last, want)
	}
}

func TestAddSVGPathCubic(t *testing.T) {
	p := New()
	if err := p.AddSVGPath("M0,0 C1,2 2,-2 3,0"); err != nil {
		t.Fatalf("AddSVGPath: %v", err)
	}
	if p.Len() != 1 || p.segs[0].degree != 3 {
		t.Fatalf("expected a single cubic segment, got Len=%d degree=%d", p.Len(), p.segs[0].degree)
	}
}

func TestAddSVGPathUnsupported(t *testing.T) {
	p := New()
	err := p.AddSVGPath("M0,0 A5,5 0 0 1 10,10")
	if err == nil {
		t.Fatalf("AddSVGPath with A command: have nil error, want Unsupported")
	}
}

func TestAddSVGPathMalformed(t *testing.T) {
	p := New()
	err := p.AddSVGPath("M0,0 L10")
	if err == nil {
		t.Fatalf("AddSVGPath with truncated L: have nil error, want InvalidData")
	}
}

// TestMultiSubPathIgnoresJumpGap checks that the jump between
// sub-paths contributes no arc length and that every evaluated point
// still lies on one of the sub-paths rather than in the gap.
func TestMultiSubPathIgnoresJumpGap(t *testing.T) {
	p := New()
	p.MoveTo(linear.V3{0, 0, 0})
	p.LineTo(linear.V3{1, 0, 0})
	p.MoveTo(linear.V3{5, 5, 0})
	p.LineTo(linear.V3{6, 5, 0})
	if err := p.Init(4); err != nil {
		t.Fatalf("Init: %v", err)
	}

	// Two unit lines; the jump between them must not count.
	if l := p.Length(); math.Abs(float64(l)-2) > 1e-5 {
		t.Fatalf("Length():\nhave %v\nwant 2", l)
	}

	for i := 0; i <= 20; i++ {
		d := float32(i) / 20
		pt := p.Evaluate(d)
		onFirst := math.Abs(float64(pt[1])) < 1e-5 &&
			pt[0] >= -1e-5 && pt[0] <= 1+1e-5
		onSecond := math.Abs(float64(pt[1])-5) < 1e-5 &&
			pt[0] >= 5-1e-5 && pt[0] <= 6+1e-5
		if !onFirst && !onSecond {
			t.Fatalf("Evaluate(%v) off both sub-paths:\nhave %v", d, pt)
		}
	}

	// The halves of the distance range map to the two sub-paths.
	if pt := p.Evaluate(0.25); !v3Close(pt, linear.V3{0.5, 0, 0}, 1e-5) {
		t.Fatalf("Evaluate(0.25):\nhave %v\nwant [0.5 0 0]", pt)
	}
	if pt := p.Evaluate(0.75); !v3Close(pt, linear.V3{5.5, 5, 0}, 1e-5) {
		t.Fatalf("Evaluate(0.75):\nhave %v\nwant [5.5 5 0]", pt)
	}
}

func v3Close(a, b linear.V3, eps float32) bool {
	return math.Abs(float64(a[0]-b[0])) < float64(eps) &&
		math.Abs(float64(a[1]-b[1])) < float64(eps) &&
		math.Abs(float64(a[2]-b[2])) < float64(eps)
}
