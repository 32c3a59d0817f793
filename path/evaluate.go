// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package path

import (
	"github.com/gviegas/ngfx/linear"
)

// Evaluate returns the point on the path at normalized arc-length
// distance d (d in [0,1]). The path must be Initialized; calling
// Evaluate otherwise is a programming error.
//
// A cached previous arc index amortizes repeated evaluation in forward
// order (the common case of sampling a path at increasing distances);
// when the cache no longer brackets d, a full scan is performed.
func (p *Path) Evaluate(d float32) linear.V3 {
	if p.state != Initialized {
		panic(pkgName + ": Evaluate requires Initialized state")
	}
	if len(p.arcs) == 0 {
		return linear.V3{}
	}
	if d <= 0 {
		return p.evalArc(0, 0)
	}
	if d >= 1 {
		last := len(p.arcs) - 1
		return p.evalArc(last, 1)
	}

	idx := p.prevArc
	if idx < 0 || idx >= len(p.arcs) || !p.arcs[idx].contains(d) {
		idx = p.findArc(d)
	}
	p.prevArc = idx

	a := &p.arcs[idx]
	span := a.distHi - a.distLo
	var tRatio float32
	if span > 0 {
		tRatio = (d - a.distLo) / span
	}
	return p.evalArc(idx, tRatio)
}

func (a *arcEntry) contains(d float32) bool {
	return d >= a.distLo && d < a.distHi
}

// findArc performs a full binary search over the monotonically
// increasing arc distance table.
func (p *Path) findArc(d float32) int {
	lo, hi := 0, len(p.arcs)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if p.arcs[mid].distHi <= d {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// evalArc maps an arc index plus a ratio within that arc back to the
// owning segment's local parameter: the step index relative to the
// segment's stepStart, scaled by its timeScale.
func (p *Path) evalArc(idx int, tRatio float32) linear.V3 {
	a := &p.arcs[idx]
	s := &p.segs[a.seg]
	t := (float32(idx-s.stepStart) + tRatio) * s.timeScale
	return s.eval(t)
}

// Length returns the path's total (un-normalized) arc length.
// Only meaningful once Initialized.
func (p *Path) Length() float32 { return p.totalLen }
