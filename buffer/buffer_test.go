// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package buffer

import (
	"testing"

	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/linear"
)

func TestNewZeroInitialized(t *testing.T) {
	b, err := New(linear.R32Sfloat, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if b.Count() != 4 {
		t.Fatalf("Count():\nhave %d\nwant 4", b.Count())
	}
	for _, v := range b.Bytes() {
		if v != 0 {
			t.Fatalf("expected zero-initialized data, found %v", v)
		}
	}
}

func TestNewFromDataRejectsMismatch(t *testing.T) {
	_, err := NewFromData(linear.RGBA8Unorm, make([]byte, 5))
	if err == nil {
		t.Fatalf("NewFromData with misaligned size: have nil error, want non-nil")
	}
}

func TestBlockFieldView(t *testing.T) {
	blk, err := NewBlock("Uniforms", []BlockField{
		{Name: "model", Format: linear.R32Sfloat, Count: 16},
		{Name: "opacity", Format: linear.R32Sfloat, Count: 1},
	})
	if err != nil {
		t.Fatalf("NewBlock: %v", err)
	}
	view, err := NewView(blk, "opacity")
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	if view.Count() != 1 {
		t.Fatalf("view Count():\nhave %d\nwant 1", view.Count())
	}
	if err := view.SetBytes([]byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("SetBytes: %v", err)
	}
	got := blk.FieldBytes("opacity")
	want := []byte{1, 2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FieldBytes after view write:\nhave %v\nwant %v", got, want)
		}
	}
}

func TestBlockFieldNotFound(t *testing.T) {
	blk, _ := NewBlock("B", []BlockField{{Name: "x", Format: linear.R32Sfloat}})
	if _, err := NewView(blk, "missing"); err == nil {
		t.Fatalf("NewView with unknown field: have nil error, want non-nil")
	}
}

func TestStreamedSelectsLatestAtOrBefore(t *testing.T) {
	data := make([]byte, 4*4) // 4 records of one float32
	s, err := NewStreamed(linear.R32Sfloat, []float64{0, 1, 2, 3}, data)
	if err != nil {
		t.Fatalf("NewStreamed: %v", err)
	}
	if idx := s.findRecord(-1); idx != 0 {
		t.Fatalf("findRecord(-1):\nhave %d\nwant 0", idx)
	}
	if idx := s.findRecord(1.5); idx != 1 {
		t.Fatalf("findRecord(1.5):\nhave %d\nwant 1", idx)
	}
	if idx := s.findRecord(10); idx != 3 {
		t.Fatalf("findRecord(10):\nhave %d\nwant 3", idx)
	}
}

func TestStreamedRejectsNonMonotonic(t *testing.T) {
	_, err := NewStreamed(linear.R32Sfloat, []float64{1, 0}, make([]byte, 8))
	if err == nil {
		t.Fatalf("NewStreamed with non-monotonic timestamps: have nil error, want non-nil")
	}
}

func TestUsageForAccumulatesConsumers(t *testing.T) {
	u := usageFor(ConsumerGeometry | ConsumerDrawBinding)
	if u&gpu.UsageVertex == 0 {
		t.Fatalf("usageFor(Geometry|DrawBinding) missing Vertex bit: %v", u)
	}
	if u&gpu.UsageUniform == 0 {
		t.Fatalf("usageFor(Geometry|DrawBinding) missing Uniform bit: %v", u)
	}
}
