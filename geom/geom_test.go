// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package geom

import (
	"encoding/binary"
	"math"
	"testing"
)

// TestCircleTopology checks that Circle(radius=1,
// npoints=16) produces 17 vertices and 48 indices; every index is in
// [0,16]; vertex 0 is (0,0,*); vertices 1..16 lie on the unit circle.
func TestCircleTopology(t *testing.T) {
	g, err := Circle(1, 16)
	if err != nil {
		t.Fatalf("Circle: %v", err)
	}
	if g.VertexCount() != 17 {
		t.Fatalf("VertexCount():\nhave %d\nwant 17", g.VertexCount())
	}
	if g.IndexCount() != 48 {
		t.Fatalf("IndexCount():\nhave %d\nwant 48", g.IndexCount())
	}

	vb := g.Vertices.Bytes()
	readVec3 := func(i int) (x, y, z float32) {
		off := i * 12
		x = readFloat32(vb[off:])
		y = readFloat32(vb[off+4:])
		z = readFloat32(vb[off+8:])
		return
	}
	x0, y0, _ := readVec3(0)
	if x0 != 0 || y0 != 0 {
		t.Fatalf("vertex 0:\nhave (%v,%v)\nwant (0,0)", x0, y0)
	}
	for i := 1; i <= 16; i++ {
		x, y, _ := readVec3(i)
		mag := math.Sqrt(float64(x*x + y*y))
		if math.Abs(mag-1) > 1e-5 {
			t.Fatalf("vertex %d magnitude:\nhave %v\nwant 1.0 +-1e-5", i, mag)
		}
	}

	ib := g.Indices.Bytes()
	for i := 0; i < 48; i++ {
		idx := binary.LittleEndian.Uint16(ib[i*2:])
		if idx > 16 {
			t.Fatalf("index %d out of range: %d", i, idx)
		}
	}
}

func TestCircleRejectsTooFewPoints(t *testing.T) {
	if _, err := Circle(1, 2); err == nil {
		t.Fatalf("Circle(npoints=2): have nil error, want non-nil")
	}
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
