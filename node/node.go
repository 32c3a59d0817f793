// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package node implements the scene graph's node kernel: a
// heterogeneous, tagged-variant node model with explicit lifecycle
// states, reference counting, parent/child structure, and a staged
// evaluation pipeline (init/prepare/visit/update/draw/release/uninit).
//
// The graph is a handle-based node table backed by an internal/bitm
// slot allocator: parent/child/sibling links are stored as index values
// rather than pointers. The ancestry check and subtree removal walk the
// graph with an explicit stack; the ref/unref and visit/update/draw
// traversals recurse over the children. Per-class behavior lives in a Dispatch table with one
// entry per lifecycle phase.
package node

import (
	"github.com/google/uuid"

	"github.com/gviegas/ngfx/internal/bitm"
	"github.com/gviegas/ngfx/internal/errs"
)

const pkgName = "node"

func newErr(code errs.Code, reason string) error { return errs.New(pkgName, code, reason) }

// State is a node's lifecycle state.
type State int

// States. A node progresses Uninitialized -> Initialized on its first
// Ref, and Ready <-> Idle across draw calls depending on whether a
// TimeRangeFilter (or similar) ancestor currently covers it. It returns
// to Uninitialized when its reference count drops back to zero.
const (
	Uninitialized State = iota
	Initialized
	Ready
	Idle
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Ready:
		return "ready"
	case Idle:
		return "idle"
	default:
		return "unknown"
	}
}

// Handle identifies a node within a Graph. The zero value, Nil, never
// identifies a live node.
type Handle int

// Nil represents an invalid Handle.
const Nil Handle = 0

// entry is the graph's tree-structure data, kept separate from slot so
// that parent/child/sibling bookkeeping never touches the (possibly
// large) opts/priv payloads.
type entry struct {
	next, prev, sub Handle
	slot            int
}

// slot holds a node's class-tagged state.
type slot struct {
	class  Class
	label  string
	state  State
	refs   int
	active bool
	visitT float64
	// updateT is the cycle guard for re-entrant Update calls within a
	// frame.
	updateT float64
	opts    any
	priv    any
}

// Graph owns every node inserted into it and their parent/child/sibling
// structure.
type Graph struct {
	next    Handle
	nodes   []entry
	nodeMap bitm.Bitm[uint32]
	slots   []slot
	cache   struct {
		handles []Handle
	}
}

func (g *Graph) handleCache() []Handle {
	if g.cache.handles == nil {
		g.cache.handles = make([]Handle, 0, 1)
	}
	return g.cache.handles[:0]
}

func (g *Graph) valid(h Handle) bool {
	return h != Nil && int(h) >= 1 && int(h) <= len(g.nodes) && g.nodeMap.IsSet(int(h-1))
}

// New allocates a node of the given class with the given opts value (the
// class's parameter struct, typically produced by a constructor in
// node/param.go's parameter schema) and inserts it as a child of prev,
// or as an unconnected root node if prev is Nil. If label is empty, a
// unique label derived from the class name is generated.
func (g *Graph) New(class Class, label string, opts any, prev Handle) (Handle, error) {
	if prev != Nil && !g.valid(prev) {
		return Nil, newErr(errs.InvalidArg, "prev handle does not belong to this graph")
	}
	if label == "" {
		label = class.String() + "_" + uuid.NewString()
	}
	if g.nodeMap.Rem() == 0 {
		switch x := g.nodeMap.Len(); {
		case x > 0:
			cnt := 1 + (x-31)/32
			g.nodes = append(g.nodes, g.nodes...)
			g.nodeMap.Grow(cnt)
		default:
			var elems [32]entry
			g.nodes = append(g.nodes, elems[:]...)
			g.nodeMap.Grow(1)
		}
	}
	idx, ok := g.nodeMap.SearchSet()
	if !ok {
		// Should never happen: Rem() > 0 guarantees a free bit exists.
		panic("unexpected failure from bitm.Bitm.SearchSet")
	}
	h := Handle(idx + 1)

	g.link(h, prev)
	g.nodes[h-1].slot = len(g.slots)
	g.slots = append(g.slots, slot{
		class:   class,
		label:   label,
		state:   Uninitialized,
		visitT:  negInf,
		updateT: negInf,
		opts:    opts,
	})
	return h, nil
}

// link attaches h as a child of prev (or as an unconnected root if prev
// is Nil). h must be a freshly allocated or freshly unlinked handle.
func (g *Graph) link(h, prev Handle) {
	if prev != Nil {
		if sub := g.nodes[prev-1].sub; sub != Nil {
			g.nodes[h-1].next = sub
			g.nodes[sub-1].prev = h
		} else {
			g.nodes[h-1].next = Nil
		}
		g.nodes[h-1].prev = prev
		g.nodes[prev-1].sub = h
	} else {
		if g.next != Nil {
			g.nodes[g.next-1].prev = h
			g.nodes[h-1].next = g.next
		} else {
			g.nodes[h-1].next = Nil
		}
		g.nodes[h-1].prev = Nil
		g.next = h
	}
	g.nodes[h-1].sub = Nil
}

// unlink detaches h from whatever parent/sibling chain currently holds
// it, without touching its subtree or freeing its slot.
func (g *Graph) unlink(h Handle) {
	next := g.nodes[h-1].next
	prev := g.nodes[h-1].prev
	if g.next == h {
		g.next = next
	}
	if prev != Nil {
		if g.nodes[prev-1].sub == h {
			g.nodes[prev-1].sub = next
		} else {
			g.nodes[prev-1].next = next
		}
	}
	if next != Nil {
		g.nodes[next-1].prev = prev
	}
	g.nodes[h-1].next = Nil
	g.nodes[h-1].prev = Nil
}

// Reparent detaches h and reinserts it as a child of newParent (Nil for
// an unconnected root). It rejects the move with errs.InvalidUsage if
// newParent is h itself or a descendant of h, since that would create a
// cycle.
func (g *Graph) Reparent(h, newParent Handle) error {
	if !g.valid(h) {
		return newErr(errs.InvalidArg, "handle does not belong to this graph")
	}
	if newParent != Nil {
		if !g.valid(newParent) {
			return newErr(errs.InvalidArg, "newParent does not belong to this graph")
		}
		if g.descendantOf(h, newParent) {
			return newErr(errs.InvalidUsage, "reparenting would create a cycle")
		}
	}
	g.unlink(h)
	g.link(h, newParent)
	return nil
}

// descendantOf reports whether x is h or appears in the subtree rooted
// at h, via an iterative pre-order walk.
func (g *Graph) descendantOf(h, x Handle) bool {
	if h == x {
		return true
	}
	stk := append(g.handleCache(), g.nodes[h-1].sub)
	found := false
	for last := len(stk) - 1; last >= 0; last = len(stk) - 1 {
		cur := stk[last]
		stk = stk[:last]
		if cur == Nil {
			continue
		}
		if cur == x {
			found = true
			break
		}
		if next := g.nodes[cur-1].next; next != Nil {
			stk = append(stk, next)
		}
		if sub := g.nodes[cur-1].sub; sub != Nil {
			stk = append(stk, sub)
		}
	}
	g.cache.handles = stk
	return found
}

// Ref increments h's reference count, initializing it (Uninitialized ->
// Initialized) on the first reference by invoking its class's Dispatch
// Init function, if registered.
func (g *Graph) Ref(h Handle) error {
	if !g.valid(h) {
		return newErr(errs.InvalidArg, "handle does not belong to this graph")
	}
	s := &g.slots[g.nodes[h-1].slot]
	if s.refs == 0 {
		if d := dispatchTable[s.class]; d != nil && d.Init != nil {
			if err := d.Init(&View{g: g, h: h}); err != nil {
				return err
			}
		}
		s.state = Initialized
	}
	s.refs++
	return nil
}

// Unref decrements h's reference count. When it reaches zero, the node
// is released (via its class's Dispatch Uninit function, if registered)
// and removed from the graph along with its subtree.
func (g *Graph) Unref(h Handle) error {
	if !g.valid(h) {
		return newErr(errs.InvalidArg, "handle does not belong to this graph")
	}
	s := &g.slots[g.nodes[h-1].slot]
	if s.refs == 0 {
		return newErr(errs.InvalidUsage, "Unref called on a node with zero references")
	}
	s.refs--
	if s.refs == 0 {
		if d := dispatchTable[s.class]; d != nil && d.Uninit != nil {
			d.Uninit(&View{g: g, h: h})
		}
		s.state = Uninitialized
		g.remove(h)
	}
	return nil
}

// remove detaches h and every descendant of h from the graph, freeing
// their slots. Descendants still under their own reference count are
// expected to have been Unref'd by the caller before reaching here;
// remove itself does not invoke Dispatch.Uninit for them.
func (g *Graph) remove(h Handle) {
	g.unlink(h)
	sub := g.nodes[h-1].sub
	g.freeSlot(h)
	if sub == Nil {
		return
	}
	stk := append(g.handleCache(), sub)
	for last := len(stk) - 1; last >= 0; last = len(stk) - 1 {
		cur := stk[last]
		stk = stk[:last]
		if next := g.nodes[cur-1].next; next != Nil {
			stk = append(stk, next)
		}
		if csub := g.nodes[cur-1].sub; csub != Nil {
			stk = append(stk, csub)
		}
		g.freeSlot(cur)
	}
	g.cache.handles = stk
}

// freeSlot swap-removes h's slot entry and frees its handle bit.
func (g *Graph) freeSlot(h Handle) {
	idx := g.nodes[h-1].slot
	last := len(g.slots) - 1
	if idx < last {
		g.slots[idx] = g.slots[last]
		g.fixupSlotOwner(idx)
	}
	g.slots[last] = slot{}
	g.slots = g.slots[:last]
	g.nodes[h-1] = entry{}
	g.nodeMap.Unset(int(h - 1))
}

// fixupSlotOwner finds the handle whose entry.slot equals len(g.slots)
// (the slot that was just swapped into idx) and repoints it to idx.
func (g *Graph) fixupSlotOwner(idx int) {
	target := len(g.slots)
	for i := range g.nodes {
		if g.nodeMap.IsSet(i) && g.nodes[i].slot == target {
			g.nodes[i].slot = idx
			return
		}
	}
}

// Class returns h's class.
func (g *Graph) Class(h Handle) Class { return g.slots[g.nodes[h-1].slot].class }

// Label returns h's label.
func (g *Graph) Label(h Handle) string { return g.slots[g.nodes[h-1].slot].label }

// State returns h's lifecycle state.
func (g *Graph) State(h Handle) State { return g.slots[g.nodes[h-1].slot].state }

// Opts returns h's opts value (the parameter struct supplied to New).
func (g *Graph) Opts(h Handle) any { return g.slots[g.nodes[h-1].slot].opts }

// Refs returns h's current reference count.
func (g *Graph) Refs(h Handle) int { return g.slots[g.nodes[h-1].slot].refs }

// Parent returns h's parent handle, or Nil if h is a root.
func (g *Graph) Parent(h Handle) Handle {
	child := h
	cur := g.nodes[h-1].prev
	for cur != Nil && g.nodes[cur-1].sub != child {
		child = cur
		cur = g.nodes[cur-1].prev
	}
	return cur
}

// Children appends h's immediate children to dst and returns the result.
func (g *Graph) Children(h Handle, dst []Handle) []Handle {
	for c := g.nodes[h-1].sub; c != Nil; c = g.nodes[c-1].next {
		dst = append(dst, c)
	}
	return dst
}

// Len returns the number of nodes currently in the graph.
func (g *Graph) Len() int { return len(g.slots) }
