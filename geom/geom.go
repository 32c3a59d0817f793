// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package geom implements the Geometry bundle: an optional
// vertices/uvcoords/normals/indices reference set plus a primitive
// topology, along with the Circle/Triangle/Quad shortcut constructors.
package geom

import (
	"math"

	"github.com/gviegas/ngfx/buffer"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
)

const pkgName = "geom"

func newErr(code errs.Code, reason string) error { return errs.New(pkgName, code, reason) }

// Topology identifies how a Geometry's vertices (and, if present,
// indices) assemble into primitives.
type Topology int

// Topologies.
const (
	PointList Topology = iota
	LineList
	LineStrip
	TriangleList
	TriangleStrip
)

// Geometry bundles the buffer references a draw node needs to issue a
// draw call: required vertices, and optional uvcoords/normals/indices.
type Geometry struct {
	Vertices *buffer.Buffer // vec3, required
	UVCoords *buffer.Buffer // vec2, optional
	Normals  *buffer.Buffer // vec3, optional
	Indices  *buffer.Buffer // uint16 or uint32, optional
	Topology Topology
}

// New validates and constructs a Geometry from the given buffer
// references. vertices must not be nil.
func New(vertices, uvcoords, normals, indices *buffer.Buffer, topology Topology) (*Geometry, error) {
	if vertices == nil {
		return nil, newErr(errs.InvalidArg, "Geometry requires a vertices buffer")
	}
	return &Geometry{
		Vertices: vertices,
		UVCoords: uvcoords,
		Normals:  normals,
		Indices:  indices,
		Topology: topology,
	}, nil
}

// VertexCount returns the number of vertices in the geometry.
func (g *Geometry) VertexCount() int { return g.Vertices.Count() }

// IndexCount returns the number of indices, or 0 if the geometry is
// unindexed.
func (g *Geometry) IndexCount() int {
	if g.Indices == nil {
		return 0
	}
	return g.Indices.Count()
}

// Circle builds the fan geometry for a circle of the given radius with
// npoints rim points: a center vertex plus npoints rim vertices, forming
// npoints triangles wrapping back to the first rim vertex. npoints must
// be >= 3.
func Circle(radius float32, npoints int) (*Geometry, error) {
	if npoints < 3 {
		return nil, newErr(errs.InvalidArg, "circle requires at least 3 points")
	}
	nbVertices := npoints + 1
	nbIndices := npoints * 3

	vertices := make([]float32, nbVertices*3)
	uvcoords := make([]float32, nbVertices*2)
	normals := make([]float32, nbVertices*3)
	indices := make([]uint16, nbIndices)

	uvcoords[0], uvcoords[1] = 0.5, 0.5

	step := float32(2*math.Pi) / float32(npoints)
	for i := 1; i < nbVertices; i++ {
		angle := float32(i-1) * -step
		x := float32(math.Sin(float64(angle))) * radius
		y := float32(math.Cos(float64(angle))) * radius
		vertices[i*3+0] = x
		vertices[i*3+1] = y
		uvcoords[i*2+0] = (x + 1) / 2
		uvcoords[i*2+1] = (1 - y) / 2
		indices[(i-1)*3+0] = 0
		indices[(i-1)*3+1] = uint16(i)
		indices[(i-1)*3+2] = uint16(i + 1)
	}
	indices[nbIndices-1] = 1

	p0 := linear.V3{vertices[0], vertices[1], vertices[2]}
	p1 := linear.V3{vertices[3], vertices[4], vertices[5]}
	p2 := linear.V3{vertices[6], vertices[7], vertices[8]}
	n := planeNormal(p0, p1, p2)
	for i := 0; i < nbVertices; i++ {
		normals[i*3+0] = n[0]
		normals[i*3+1] = n[1]
		normals[i*3+2] = n[2]
	}

	return buildGeometry(vertices, uvcoords, normals, indices, TriangleList)
}

// Triangle builds a single-triangle geometry from three edge points and
// their associated UV coordinates.
func Triangle(edge0, edge1, edge2 linear.V3, uv0, uv1, uv2 linear.V2) (*Geometry, error) {
	vertices := []float32{
		edge0[0], edge0[1], edge0[2],
		edge1[0], edge1[1], edge1[2],
		edge2[0], edge2[1], edge2[2],
	}
	uvcoords := []float32{uv0[0], uv0[1], uv1[0], uv1[1], uv2[0], uv2[1]}

	n := planeNormal(edge0, edge1, edge2)
	normals := make([]float32, 9)
	for i := 0; i < 3; i++ {
		normals[i*3+0] = n[0]
		normals[i*3+1] = n[1]
		normals[i*3+2] = n[2]
	}

	return buildGeometry(vertices, uvcoords, normals, nil, TriangleStrip)
}

// Quad builds a quad geometry spanned by a corner point and width/height
// vectors, with matching UV corner and width/height vectors.
func Quad(corner, width, height linear.V3, uvCorner, uvWidth, uvHeight linear.V2) (*Geometry, error) {
	add3 := func(a, b linear.V3) linear.V3 { return linear.V3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
	p0 := corner
	p1 := add3(corner, width)
	p2 := add3(corner, height)
	p3 := add3(p2, width)

	vertices := []float32{
		p0[0], p0[1], p0[2],
		p1[0], p1[1], p1[2],
		p2[0], p2[1], p2[2],
		p3[0], p3[1], p3[2],
	}

	uv := func(c, w, h linear.V2, wc, hc float32) linear.V2 {
		return linear.V2{c[0] + w[0]*wc + h[0]*hc, 1 - c[1] - w[1]*wc - h[1]*hc}
	}
	uv0 := uv(uvCorner, uvWidth, uvHeight, 0, 0)
	uv1 := uv(uvCorner, uvWidth, uvHeight, 1, 0)
	uv2 := uv(uvCorner, uvWidth, uvHeight, 0, 1)
	uv3 := uv(uvCorner, uvWidth, uvHeight, 1, 1)
	uvcoords := []float32{
		uv0[0], uv0[1],
		uv1[0], uv1[1],
		uv2[0], uv2[1],
		uv3[0], uv3[1],
	}

	n := planeNormal(p0, p1, p2)
	normals := make([]float32, 12)
	for i := 0; i < 4; i++ {
		normals[i*3+0] = n[0]
		normals[i*3+1] = n[1]
		normals[i*3+2] = n[2]
	}

	return buildGeometry(vertices, uvcoords, normals, nil, TriangleStrip)
}

func planeNormal(p0, p1, p2 linear.V3) linear.V3 {
	var e0, e1, n linear.V3
	e0.Sub(&p1, &p0)
	e1.Sub(&p2, &p0)
	n.Cross(&e0, &e1)
	n.Norm(&n)
	return n
}

func buildGeometry(vertices, uvcoords, normals []float32, indices []uint16, topology Topology) (*Geometry, error) {
	vb, err := buffer.NewFromData(linear.RGB32Sfloat, float32sToBytes(vertices))
	if err != nil {
		return nil, err
	}
	uvb, err := buffer.NewFromData(linear.RG32Sfloat, float32sToBytes(uvcoords))
	if err != nil {
		return nil, err
	}
	nb, err := buffer.NewFromData(linear.RGB32Sfloat, float32sToBytes(normals))
	if err != nil {
		return nil, err
	}
	var ib *buffer.Buffer
	if len(indices) > 0 {
		ib, err = buffer.NewFromData(linear.R16Uint, uint16sToBytes(indices))
		if err != nil {
			return nil, err
		}
	}
	return New(vb, uvb, nb, ib, topology)
}
