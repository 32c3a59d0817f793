// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package drawnode

import (
	"github.com/gviegas/ngfx/buffer"
	"github.com/gviegas/ngfx/geom"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
	"github.com/gviegas/ngfx/node"
	"github.com/gviegas/ngfx/path"
)

// GeometryOpts configures a Geometry node from explicit buffer
// references.
type GeometryOpts struct {
	Vertices *buffer.Buffer // vec3, required
	UVCoords *buffer.Buffer // vec2
	Normals  *buffer.Buffer // vec3
	Indices  *buffer.Buffer // uint16/uint32
	Topology geom.Topology
}

// CircleOpts configures a Circle node.
type CircleOpts struct {
	Radius  float32
	NPoints int
}

// TriangleOpts configures a Triangle node.
type TriangleOpts struct {
	Edges [3]linear.V3
	UVs   [3]linear.V2
}

// QuadOpts configures a Quad node.
type QuadOpts struct {
	Corner, Width, Height       linear.V3
	UVCorner, UVWidth, UVHeight linear.V2
}

// GeometryOf reads the geometry of the geometry-producing node h, if h
// is one.
func GeometryOf(g *node.Graph, h node.Handle) (*geom.Geometry, bool) {
	if h == node.Nil {
		return nil, false
	}
	gm, ok := g.ViewOf(h).Priv().(*geom.Geometry)
	if !ok {
		return nil, false
	}
	return gm, true
}

func init() {
	node.RegisterClass(node.ClassGeometry, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*GeometryOpts)
			if !ok {
				return newErr(errs.InvalidArg, "Geometry requires *GeometryOpts")
			}
			g, err := geom.New(o.Vertices, o.UVCoords, o.Normals, o.Indices, o.Topology)
			if err != nil {
				return err
			}
			v.SetPriv(g)
			return nil
		},
	})
	node.RegisterClass(node.ClassCircle, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*CircleOpts)
			if !ok {
				return newErr(errs.InvalidArg, "Circle requires *CircleOpts")
			}
			g, err := geom.Circle(o.Radius, o.NPoints)
			if err != nil {
				return err
			}
			v.SetPriv(g)
			return nil
		},
	})
	node.RegisterClass(node.ClassTriangle, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*TriangleOpts)
			if !ok {
				return newErr(errs.InvalidArg, "Triangle requires *TriangleOpts")
			}
			g, err := geom.Triangle(o.Edges[0], o.Edges[1], o.Edges[2],
				o.UVs[0], o.UVs[1], o.UVs[2])
			if err != nil {
				return err
			}
			v.SetPriv(g)
			return nil
		},
	})
	node.RegisterClass(node.ClassQuad, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*QuadOpts)
			if !ok {
				return newErr(errs.InvalidArg, "Quad requires *QuadOpts")
			}
			g, err := geom.Quad(o.Corner, o.Width, o.Height,
				o.UVCorner, o.UVWidth, o.UVHeight)
			if err != nil {
				return err
			}
			v.SetPriv(g)
			return nil
		},
	})
}

// BufferOpts configures a Buffer* node. Exactly one construction mode
// applies, in this precedence: Block view, inline Data, Filename, zero
// Count.
type BufferOpts struct {
	Format   linear.Format
	Data     []byte
	Filename string
	Count    int
	Block    *buffer.Block
	Field    string
	Dynamic  bool
}

// BufferOf reads the buffer of the Buffer* node h, if h is one.
func BufferOf(g *node.Graph, h node.Handle) (*buffer.Buffer, bool) {
	if h == node.Nil {
		return nil, false
	}
	b, ok := g.ViewOf(h).Priv().(*buffer.Buffer)
	if !ok {
		return nil, false
	}
	return b, true
}

func bufferDispatch(format linear.Format) *node.Dispatch {
	return &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*BufferOpts)
			if !ok {
				return newErr(errs.InvalidArg, "buffer node requires *BufferOpts")
			}
			f := o.Format
			if f == 0 {
				f = format
			}
			var b *buffer.Buffer
			var err error
			switch {
			case o.Block != nil:
				b, err = buffer.NewView(o.Block, o.Field)
			case o.Data != nil:
				b, err = buffer.NewFromData(f, o.Data)
			case o.Filename != "":
				b, err = buffer.NewFromFile(f, o.Count, o.Filename)
			default:
				b, err = buffer.New(f, o.Count)
			}
			if err != nil {
				return err
			}
			b.SetDynamic(o.Dynamic)
			v.SetPriv(b)
			return nil
		},
	}
}

// BlockOpts configures a Block node.
type BlockOpts struct {
	Name   string
	Fields []buffer.BlockField
}

// BlockOf reads the block of the Block node h, if h is one.
func BlockOf(g *node.Graph, h node.Handle) (*buffer.Block, bool) {
	if h == node.Nil {
		return nil, false
	}
	b, ok := g.ViewOf(h).Priv().(*buffer.Block)
	if !ok {
		return nil, false
	}
	return b, true
}

func init() {
	node.RegisterClass(node.ClassBufferFloat, bufferDispatch(linear.R32Sfloat))
	node.RegisterClass(node.ClassBufferVec2, bufferDispatch(linear.RG32Sfloat))
	node.RegisterClass(node.ClassBufferVec3, bufferDispatch(linear.RGB32Sfloat))
	node.RegisterClass(node.ClassBufferVec4, bufferDispatch(linear.RGBA32Sfloat))
	node.RegisterClass(node.ClassBufferUInt, bufferDispatch(linear.R32Uint))
	node.RegisterClass(node.ClassBlock, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*BlockOpts)
			if !ok {
				return newErr(errs.InvalidArg, "Block requires *BlockOpts")
			}
			b, err := buffer.NewBlock(o.Name, o.Fields)
			if err != nil {
				return err
			}
			v.SetPriv(b)
			return nil
		},
	})
}

// PathKeyOpts configures a PathKey* node: one construction step of a
// Path node's key list.
type PathKeyOpts struct {
	To   linear.V3
	Ctl0 linear.V3
	Ctl1 linear.V3
}

// PathOpts configures a Path node: an ordered list of PathKey* children
// plus the arc-length precision.
type PathOpts struct {
	Keys      []node.Handle
	Precision int
}

// SmoothPathOpts configures a SmoothPath node: a cubic spline threaded
// through the given points (Catmull-Rom converted to Bezier segments).
type SmoothPathOpts struct {
	Points    []linear.V3
	Tension   float32 // 0 means the conventional 0.5
	Precision int
}

// PathOf reads the path of the Path/SmoothPath node h, if h is one.
func PathOf(g *node.Graph, h node.Handle) (*path.Path, bool) {
	if h == node.Nil {
		return nil, false
	}
	p, ok := g.ViewOf(h).Priv().(*path.Path)
	if !ok {
		return nil, false
	}
	return p, true
}

func init() {
	// PathKey* nodes carry only their construction points; the parent
	// Path node interprets them at its own init.
	keyDispatch := &node.Dispatch{
		Init: func(v *node.View) error {
			if _, ok := v.Opts().(*PathKeyOpts); !ok {
				return newErr(errs.InvalidArg, "path key node requires *PathKeyOpts")
			}
			return nil
		},
	}
	for _, c := range []node.Class{
		node.ClassPathKeyMove, node.ClassPathKeyLine,
		node.ClassPathKeyBezier2, node.ClassPathKeyBezier3,
		node.ClassPathKeyClose,
	} {
		node.RegisterClass(c, keyDispatch)
	}

	node.RegisterClass(node.ClassPath, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*PathOpts)
			if !ok {
				return newErr(errs.InvalidArg, "Path requires *PathOpts")
			}
			g := v.Graph()
			p := path.New()
			for _, kh := range o.Keys {
				ko, ok := g.Opts(kh).(*PathKeyOpts)
				if !ok {
					return newErr(errs.InvalidArg, "Path keys must be PathKey* nodes")
				}
				switch g.Class(kh) {
				case node.ClassPathKeyMove:
					p.MoveTo(ko.To)
				case node.ClassPathKeyLine:
					p.LineTo(ko.To)
				case node.ClassPathKeyBezier2:
					p.Bezier2To(ko.Ctl0, ko.To)
				case node.ClassPathKeyBezier3:
					p.Bezier3To(ko.Ctl0, ko.Ctl1, ko.To)
				case node.ClassPathKeyClose:
					p.Close()
				default:
					return newErr(errs.InvalidArg, "Path keys must be PathKey* nodes")
				}
			}
			if err := p.Finalize(); err != nil {
				return err
			}
			if err := p.Init(o.Precision); err != nil {
				return err
			}
			v.SetPriv(p)
			return nil
		},
	})

	node.RegisterClass(node.ClassSmoothPath, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*SmoothPathOpts)
			if !ok {
				return newErr(errs.InvalidArg, "SmoothPath requires *SmoothPathOpts")
			}
			if len(o.Points) < 2 {
				return newErr(errs.InvalidArg, "SmoothPath requires at least two points")
			}
			tension := o.Tension
			if tension == 0 {
				tension = 0.5
			}
			p := path.New()
			p.MoveTo(o.Points[0])
			n := len(o.Points)
			for i := 0; i < n-1; i++ {
				p0 := o.Points[maxi(i-1, 0)]
				p1 := o.Points[i]
				p2 := o.Points[i+1]
				p3 := o.Points[mini(i+2, n-1)]
				var c0, c1 linear.V3
				for k := 0; k < 3; k++ {
					c0[k] = p1[k] + (p2[k]-p0[k])*tension/3
					c1[k] = p2[k] - (p3[k]-p1[k])*tension/3
				}
				p.Bezier3To(c0, c1, p2)
			}
			if err := p.Finalize(); err != nil {
				return err
			}
			if err := p.Init(o.Precision); err != nil {
				return err
			}
			v.SetPriv(p)
			return nil
		},
	})
}

func mini(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}
