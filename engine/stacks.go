// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/linear"
)

// matrixStack is a modelview/projection stack with scoped push
// semantics: every push returns the matching pop, so early returns
// cannot leave the stack unbalanced.
type matrixStack struct {
	ms []linear.M4
}

func (s *matrixStack) init() {
	s.ms = s.ms[:0]
	var ident linear.M4
	ident.I()
	s.ms = append(s.ms, ident)
}

// top returns the current (tail) matrix.
func (s *matrixStack) top() *linear.M4 { return &s.ms[len(s.ms)-1] }

// push appends top*m and returns the pop restoring the previous tail.
func (s *matrixStack) push(m *linear.M4) (pop func()) {
	var next linear.M4
	next.Mul(s.top(), m)
	s.ms = append(s.ms, next)
	return s.pop
}

// load appends m itself (camera/projection replacement) and returns the
// pop restoring the previous tail.
func (s *matrixStack) load(m *linear.M4) (pop func()) {
	s.ms = append(s.ms, *m)
	return s.pop
}

func (s *matrixStack) pop() { s.ms = s.ms[:len(s.ms)-1] }

func (s *matrixStack) depth() int { return len(s.ms) }

// rtStack tracks the active rendertarget across nested intermediate
// passes. Each level keeps the clear-variant/load-variant distinction:
// the first pass into a target clears it, re-entry (HUD, resumed
// passes) loads.
type rtStack struct {
	ts []rtSlot
}

type rtSlot struct {
	rt      gpu.Rendertarget
	cleared bool
}

func (s *rtStack) init(rt gpu.Rendertarget) {
	s.ts = s.ts[:0]
	s.ts = append(s.ts, rtSlot{rt: rt})
}

func (s *rtStack) top() *rtSlot { return &s.ts[len(s.ts)-1] }

// push makes rt the active target and returns the pop restoring the
// previous one.
func (s *rtStack) push(rt gpu.Rendertarget) (pop func()) {
	s.ts = append(s.ts, rtSlot{rt: rt})
	return func() { s.ts = s.ts[:len(s.ts)-1] }
}

func (s *rtStack) depth() int { return len(s.ts) }
