// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package path implements the path-construction and arc-length
// evaluation engine.
//
// A Path is built with a stateful builder (MoveTo/LineTo/Bezier2To/
// Bezier3To/Close/AddPath/AddSVGPath/Transform), then Finalized and
// Initialized before it can be Evaluated at a normalized arc-length
// distance.
package path

import (
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
)

const pkgName = "path"

// State is a Path's lifecycle state.
type State int

// States.
const (
	Default State = iota
	Finalized
	Initialized
)

// Flag is a bitmask of per-segment flags.
type Flag int

// Flags.
const (
	NewOrigin Flag = 1 << iota
	Closing
	OpenEnd
)

// segment is a single line or Bezier piece of a path.
type segment struct {
	degree int // 1, 2 or 3
	ctrl   [4]linear.V3
	flags  Flag

	poly1 linear.POLY1
	poly2 linear.POLY2
	poly3 linear.POLY3

	stepStart int
	timeScale float32
}

func (s *segment) end() linear.V3 { return s.ctrl[s.degree] }

func (s *segment) derivePoly() {
	switch s.degree {
	case 1:
		s.poly1 = linear.Poly1FromPoints(&s.ctrl[0], &s.ctrl[1])
	case 2:
		s.poly2 = linear.Poly2FromPoints(&s.ctrl[0], &s.ctrl[1], &s.ctrl[2])
	case 3:
		s.poly3 = linear.Poly3FromPoints(&s.ctrl[0], &s.ctrl[1], &s.ctrl[2], &s.ctrl[3])
	}
}

func (s *segment) eval(t float32) linear.V3 {
	switch s.degree {
	case 1:
		return s.poly1.Eval(t)
	case 2:
		return s.poly2.Eval(t)
	default:
		return s.poly3.Eval(t)
	}
}

func (s *segment) transform(m *linear.M4) {
	for i := 0; i <= s.degree; i++ {
		v4 := linear.V4{s.ctrl[i][0], s.ctrl[i][1], s.ctrl[i][2], 1}
		var r4 linear.V4
		r4.Mul(m, &v4)
		s.ctrl[i] = linear.V3{r4[0], r4[1], r4[2]}
	}
}

// arcEntry is a pair of consecutive sampled steps, treated as a straight
// line for length estimation (glossary: Arc). The segment-local
// parameter range of an arc is recovered from its index and the owning
// segment's stepStart/timeScale.
type arcEntry struct {
	distLo, distHi float32 // normalized [0,1] cumulative distance range
	seg            int
}

// Path is a finite, ordered sequence of segments.
type Path struct {
	segs  []segment
	state State

	cursor           linear.V3
	origin           linear.V3
	hasCur           bool
	pendingNewOrigin bool

	arcToSeg []int
	arcs     []arcEntry
	prevArc  int
	totalLen float32
}

// New creates an empty Path in the Default state.
func New() *Path { return &Path{} }

func newErr(code errs.Code, reason string) error { return errs.New(pkgName, code, reason) }

func (p *Path) mustDefault() {
	if p.state != Default {
		panic(pkgName + ": operation only valid in Default state")
	}
}

func (p *Path) appendSegment(deg int, ctrl [4]linear.V3) {
	var fl Flag
	if p.pendingNewOrigin {
		fl |= NewOrigin
		p.pendingNewOrigin = false
	}
	p.segs = append(p.segs, segment{degree: deg, ctrl: ctrl, flags: fl})
	p.cursor = ctrl[deg]
	p.hasCur = true
}

// MoveTo opens a new sub-path at pt.
func (p *Path) MoveTo(pt linear.V3) {
	p.mustDefault()
	p.cursor = pt
	p.origin = pt
	p.hasCur = true
	p.pendingNewOrigin = true
}

// LineTo appends a line segment from the cursor to pt.
// A call where pt equals the cursor is a no-op.
func (p *Path) LineTo(pt linear.V3) {
	p.mustDefault()
	if p.hasCur && pt == p.cursor {
		return
	}
	p.appendSegment(1, [4]linear.V3{p.cursor, pt})
}

// Bezier2To appends a quadratic Bezier segment.
// A call where ctl and pt both equal the cursor is a no-op.
func (p *Path) Bezier2To(ctl, pt linear.V3) {
	p.mustDefault()
	if p.hasCur && ctl == p.cursor && pt == p.cursor {
		return
	}
	p.appendSegment(2, [4]linear.V3{p.cursor, ctl, pt})
}

// Bezier3To appends a cubic Bezier segment.
// A call where both controls and pt equal the cursor is a no-op.
func (p *Path) Bezier3To(ctl0, ctl1, pt linear.V3) {
	p.mustDefault()
	if p.hasCur && ctl0 == p.cursor && ctl1 == p.cursor && pt == p.cursor {
		return
	}
	p.appendSegment(3, [4]linear.V3{p.cursor, ctl0, ctl1, pt})
}

// Close appends a line from the cursor back to the current sub-path's
// origin and flags it Closing.
func (p *Path) Close() {
	p.mustDefault()
	if len(p.segs) == 0 {
		return
	}
	p.appendSegment(1, [4]linear.V3{p.cursor, p.origin})
	p.segs[len(p.segs)-1].flags |= Closing
	p.pendingNewOrigin = true
}

// AddPath splices other's segments into p. Only valid while both paths
// are in the Default state.
func (p *Path) AddPath(other *Path) {
	p.mustDefault()
	if other.state != Default {
		panic(pkgName + ": AddPath argument must be in Default state")
	}
	for _, s := range other.segs {
		if s.flags&NewOrigin != 0 {
			p.pendingNewOrigin = true
		}
		p.appendSegment(s.degree, s.ctrl)
		if s.flags&Closing != 0 {
			p.segs[len(p.segs)-1].flags |= Closing
		}
	}
}

// Transform premultiplies every control point of every segment by m.
// Allowed in Default or Finalized state; forbidden once Initialized.
func (p *Path) Transform(m *linear.M4) {
	if p.state == Initialized {
		panic(pkgName + ": Transform forbidden after Init")
	}
	for i := range p.segs {
		p.segs[i].transform(m)
	}
}

// Finalize flags the last segment of each sub-path (Closing already set
// by Close; any sub-path that runs to path end without closing or being
// followed by a move is flagged OpenEnd) and moves the path to the
// Finalized state.
func (p *Path) Finalize() error {
	if p.state != Default {
		return newErr(errs.InvalidUsage, "Finalize requires Default state")
	}
	n := len(p.segs)
	for i := 0; i < n; i++ {
		lastOfSubpath := i == n-1 || p.segs[i+1].flags&NewOrigin != 0
		if lastOfSubpath && p.segs[i].flags&Closing == 0 {
			p.segs[i].flags |= OpenEnd
		}
	}
	p.state = Finalized
	return nil
}

// State returns p's current lifecycle state.
func (p *Path) State() State { return p.state }

// Len returns the number of segments in p.
func (p *Path) Len() int { return len(p.segs) }
