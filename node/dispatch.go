// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package node

import (
	"math"

	"github.com/gviegas/ngfx/internal/errs"
)

var negInf = math.Inf(-1)

// Dispatch is a class's lifecycle function table. Every entry is
// optional; a nil entry means the phase is a no-op for that class. Packages implementing node classes
// populate one Dispatch per Class and install it with RegisterClass from
// an init function.
type Dispatch struct {
	// Init runs once, when the node's reference count goes from zero
	// to one. It wires child references, validates parameters beyond
	// type, and allocates CPU-side resources.
	Init func(v *View) error

	// Prepare brackets entry into the Ready state for nodes that hold
	// GPU resources. rc is the render context's draw surface (an
	// engine-defined interface; classes that need it assert the
	// concrete type).
	Prepare func(v *View, rc any) error

	// Visit updates per-frame activity markers. When set, the class is
	// responsible for visiting its own children (e.g. TimeRangeFilter
	// visits only the children its range currently covers).
	Visit func(v *View, active bool, t float64) error

	// Update recomputes the node's own per-frame state. Children have
	// already been updated unless OwnsUpdate is set.
	Update func(v *View, t float64, rc any) error

	// OwnsUpdate makes the class's Update responsible for updating its
	// children (via View.UpdateChildren), letting time-remapping
	// classes feed a different t downward.
	OwnsUpdate bool

	// Draw issues the node's draw calls. When set, the class is
	// responsible for drawing its own subtree (via View.DrawChildren),
	// so transform classes can bracket it with matrix push/pop.
	Draw func(v *View, rc any) error

	// Release brackets exit from the Ready state, dropping GPU
	// resources the node can reacquire in a later Prepare.
	Release func(v *View, rc any)

	// Uninit runs when the reference count returns to zero.
	Uninit func(v *View)

	// InfoStr returns a one-line description for HUD/debug output.
	InfoStr func(v *View) string
}

// dispatchTable holds the registered Dispatch for each Class.
var dispatchTable [classCount]*Dispatch

// RegisterClass installs the lifecycle table for c. Classes with no
// registered table treat every phase as a no-op (Group-like containers
// need nothing beyond the default child recursion).
func RegisterClass(c Class, d *Dispatch) { dispatchTable[c] = d }

// DispatchOf returns the registered Dispatch for c, or nil.
func DispatchOf(c Class) *Dispatch { return dispatchTable[c] }

// View gives a class's lifecycle functions access to one node of a
// Graph without exposing graph internals.
type View struct {
	g *Graph
	h Handle
}

// ViewOf returns a View of h within g.
func (g *Graph) ViewOf(h Handle) *View { return &View{g: g, h: h} }

// Graph returns the graph the viewed node belongs to.
func (v *View) Graph() *Graph { return v.g }

// Handle returns the viewed node's handle.
func (v *View) Handle() Handle { return v.h }

// Class returns the viewed node's class.
func (v *View) Class() Class { return v.g.Class(v.h) }

// Label returns the viewed node's label.
func (v *View) Label() string { return v.g.Label(v.h) }

// Opts returns the viewed node's opts value.
func (v *View) Opts() any { return v.g.Opts(v.h) }

// Priv returns the viewed node's private (runtime) value, or nil if the
// class has not installed one yet.
func (v *View) Priv() any { return v.g.slots[v.g.nodes[v.h-1].slot].priv }

// SetPriv installs the viewed node's private value. Classes typically
// call this from Init.
func (v *View) SetPriv(p any) { v.g.slots[v.g.nodes[v.h-1].slot].priv = p }

// Children appends the viewed node's immediate children to dst.
func (v *View) Children(dst []Handle) []Handle { return v.g.Children(v.h, dst) }

// VisitChildren visits every immediate child with the given activity.
func (v *View) VisitChildren(active bool, t float64) error {
	for c := v.g.nodes[v.h-1].sub; c != Nil; c = v.g.nodes[c-1].next {
		if err := v.g.Visit(c, active, t); err != nil {
			return err
		}
	}
	return nil
}

// UpdateChildren updates every immediate child at time t.
func (v *View) UpdateChildren(t float64, rc any) error {
	for c := v.g.nodes[v.h-1].sub; c != Nil; c = v.g.nodes[c-1].next {
		if err := v.g.Update(c, t, rc); err != nil {
			return err
		}
	}
	return nil
}

// DrawChildren draws every immediate child in graph order.
func (v *View) DrawChildren(rc any) error {
	for c := v.g.nodes[v.h-1].sub; c != Nil; c = v.g.nodes[c-1].next {
		if err := v.g.Draw(c, rc); err != nil {
			return err
		}
	}
	return nil
}

// Visit stamps h's per-frame activity markers and recurses into its
// subtree, unless h's class installs its own Visit (in which case that
// function owns the recursion).
func (g *Graph) Visit(h Handle, active bool, t float64) error {
	s := &g.slots[g.nodes[h-1].slot]
	s.active = active
	s.visitT = t
	if d := dispatchTable[s.class]; d != nil && d.Visit != nil {
		return d.Visit(&View{g: g, h: h}, active, t)
	}
	v := View{g: g, h: h}
	return v.VisitChildren(active, t)
}

// Active reports h's current activity marker.
func (g *Graph) Active(h Handle) bool { return g.slots[g.nodes[h-1].slot].active }

// VisitTime returns the time of h's most recent Visit.
func (g *Graph) VisitTime(h Handle) float64 { return g.slots[g.nodes[h-1].slot].visitT }

// Update runs the update phase on h's subtree: children first, in
// parameter (sibling) order, then h itself. A repeated Update at the
// same t short-circuits, making re-entrant updates through shared child
// links idempotent within a frame.
func (g *Graph) Update(h Handle, t float64, rc any) error {
	s := &g.slots[g.nodes[h-1].slot]
	if s.updateT == t {
		return nil
	}
	s.updateT = t
	d := dispatchTable[s.class]
	v := View{g: g, h: h}
	if d == nil || d.Update == nil {
		return v.UpdateChildren(t, rc)
	}
	if !d.OwnsUpdate {
		if err := v.UpdateChildren(t, rc); err != nil {
			return err
		}
	}
	return d.Update(&v, t, rc)
}

// Draw runs the draw phase on h. A class with its own Draw owns the
// recursion into h's subtree; otherwise the children draw in graph
// order.
func (g *Graph) Draw(h Handle, rc any) error {
	s := &g.slots[g.nodes[h-1].slot]
	v := View{g: g, h: h}
	if d := dispatchTable[s.class]; d != nil && d.Draw != nil {
		return d.Draw(&v, rc)
	}
	return v.DrawChildren(rc)
}

// Prefetch moves h from Initialized to Ready, acquiring GPU resources
// through the class's Prepare. It is a no-op if h is already Ready.
func (g *Graph) Prefetch(h Handle, rc any) error {
	s := &g.slots[g.nodes[h-1].slot]
	switch s.state {
	case Ready:
		return nil
	case Initialized, Idle:
	default:
		return newErr(errs.InvalidUsage, "Prefetch on an uninitialized node")
	}
	if d := dispatchTable[s.class]; d != nil && d.Prepare != nil {
		if err := d.Prepare(&View{g: g, h: h}, rc); err != nil {
			return err
		}
	}
	s.state = Ready
	return nil
}

// Release moves h from Ready to Idle, dropping reacquirable GPU
// resources through the class's Release.
func (g *Graph) Release(h Handle, rc any) {
	s := &g.slots[g.nodes[h-1].slot]
	if s.state != Ready {
		return
	}
	if d := dispatchTable[s.class]; d != nil && d.Release != nil {
		d.Release(&View{g: g, h: h}, rc)
	}
	s.state = Idle
}

// HonorReleasePrefetch reconciles the Ready/Idle bracket across the
// whole graph for the frame at time t: nodes visited active at t become
// Ready, nodes the traversal skipped fall back to Idle.
func (g *Graph) HonorReleasePrefetch(t float64, rc any) error {
	for i := range g.nodes {
		if !g.nodeMap.IsSet(i) {
			continue
		}
		h := Handle(i + 1)
		s := &g.slots[g.nodes[i].slot]
		if s.state == Uninitialized {
			continue
		}
		if s.active && s.visitT == t {
			if err := g.Prefetch(h, rc); err != nil {
				return err
			}
		} else {
			g.Release(h, rc)
		}
	}
	return nil
}

// RefTree references h and every node in its subtree, children first so
// a parent's Init can rely on its children being initialized.
func (g *Graph) RefTree(h Handle) error {
	for c := g.nodes[h-1].sub; c != Nil; c = g.nodes[c-1].next {
		if err := g.RefTree(c); err != nil {
			return err
		}
	}
	return g.Ref(h)
}

// UnrefTree releases the references RefTree took: children first, each
// removing its own subtree as its count reaches zero, then h itself.
func (g *Graph) UnrefTree(h Handle) error {
	subs := g.Children(h, nil)
	for _, c := range subs {
		if err := g.UnrefTree(c); err != nil {
			return err
		}
	}
	return g.Unref(h)
}

// InfoStr returns h's class-provided description, or its label when the
// class declares none.
func (g *Graph) InfoStr(h Handle) string {
	s := &g.slots[g.nodes[h-1].slot]
	if d := dispatchTable[s.class]; d != nil && d.InfoStr != nil {
		return d.InfoStr(&View{g: g, h: h})
	}
	return s.label
}
