// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package path

import (
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
)

// Init derives each segment's polynomial form and builds the arc-length
// lookup table, moving the path to the Initialized state. precision must
// be >= 1; it is the number of samples taken per curve segment (lines
// always use a single step).
func (p *Path) Init(precision int) error {
	if p.state == Default {
		if err := p.Finalize(); err != nil {
			return err
		}
	}
	if p.state != Finalized {
		return newErr(errs.InvalidUsage, "Init requires Finalized (or Default) state")
	}
	if len(p.segs) == 0 {
		return newErr(errs.InvalidArg, "cannot Init an empty path")
	}
	if precision < 1 {
		return newErr(errs.InvalidArg, "precision must be >= 1")
	}

	for i := range p.segs {
		p.segs[i].derivePoly()
		if p.segs[i].degree == 1 {
			p.segs[i].timeScale = 1
		} else {
			p.segs[i].timeScale = 1 / float32(precision)
		}
	}

	p.buildLUT(precision)
	p.state = Initialized
	p.prevArc = 0
	return nil
}

// buildLUT samples every segment at the given precision and accumulates
// Euclidean distances between consecutive non-discontinuous steps into
// a monotonically increasing distance table, then normalizes it by
// total length to yield steps_dist in [0,1]. The jump to a NewOrigin
// segment is a discontinuity: it contributes no length, so the table
// has no interval that would remap onto the gap between sub-paths.
func (p *Path) buildLUT(precision int) {
	p.arcs = p.arcs[:0]
	p.arcToSeg = p.arcToSeg[:0]

	var cum float32
	var prev linear.V3
	first := true

	for si := range p.segs {
		s := &p.segs[si]
		steps := 1
		if s.degree != 1 {
			steps = precision
		}
		s.stepStart = len(p.arcs)

		for step := 0; step < steps; step++ {
			t0 := float32(step) * s.timeScale
			t1 := float32(step+1) * s.timeScale
			pt0 := s.eval(t0)
			pt1 := s.eval(t1)
			if first || step == 0 && s.flags&NewOrigin != 0 {
				prev = pt0
				first = false
			}
			cum += dist(prev, pt0)
			p.arcs = append(p.arcs, arcEntry{
				distLo: cum,
				seg:    si,
			})
			p.arcToSeg = append(p.arcToSeg, si)
			// Close out the arc with the step's end distance too, so
			// each arc spans [distLo, distHi) over one step.
			cum += dist(pt0, pt1)
			p.arcs[len(p.arcs)-1].distHi = cum
			prev = pt1
		}
	}

	p.totalLen = cum
	if cum > 0 {
		for i := range p.arcs {
			p.arcs[i].distLo /= cum
			p.arcs[i].distHi /= cum
		}
	}
}

func dist(a, b linear.V3) float32 {
	var d linear.V3
	d.Sub(&b, &a)
	return d.Len()
}

