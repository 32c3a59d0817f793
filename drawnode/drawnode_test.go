// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package drawnode

import (
	"strings"
	"testing"

	"github.com/gviegas/ngfx/anim"
	"github.com/gviegas/ngfx/buffer"
	"github.com/gviegas/ngfx/filter"
	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/internal/gputest"
	"github.com/gviegas/ngfx/linear"
	"github.com/gviegas/ngfx/node"
	"github.com/gviegas/ngfx/path"
)

// testRC is a minimal render-context stand-in.
type testRC struct {
	ctx *gputest.Ctx
	mv  linear.M4
	pr  linear.M4
}

func newTestRC() *testRC {
	r := &testRC{ctx: gputest.New(64, 64)}
	r.mv.I()
	r.pr.I()
	return r
}

func (r *testRC) Gpu() gpu.GpuCtx         { return r.ctx }
func (r *testRC) Cmd() gpu.CmdBuffer      { return &r.ctx.Cmd }
func (r *testRC) ModelView() *linear.M4   { return &r.mv }
func (r *testRC) Projection() *linear.M4  { return &r.pr }
func (r *testRC) Viewport() gpu.Viewport {
	return gpu.Viewport{Width: 64, Height: 64, MaxDepth: 1}
}

func TestDrawColorLifecycle(t *testing.T) {
	rc := newTestRC()
	var g node.Graph
	h, err := g.New(node.ClassDrawColor, "red", &DrawColorOpts{
		Common:  Common{Blend: BlendSrcOver},
		Color:   VecSrc(1, 0, 0),
		Opacity: FloatSrc(0.5),
	}, node.Nil)
	if err != nil {
		t.Fatalf("g.New: %v", err)
	}
	if err := g.Ref(h); err != nil {
		t.Fatalf("g.Ref: %v", err)
	}
	if err := g.Prefetch(h, rc); err != nil {
		t.Fatalf("g.Prefetch: %v", err)
	}
	if s := g.State(h); s != node.Ready {
		t.Fatalf("g.State:\nhave %v\nwant %v", s, node.Ready)
	}
	if err := g.Update(h, 0, rc); err != nil {
		t.Fatalf("g.Update: %v", err)
	}
	if err := g.Draw(h, rc); err != nil {
		t.Fatalf("g.Draw: %v", err)
	}

	// The default geometry is a 4-vertex unindexed strip.
	found := false
	for _, l := range rc.ctx.Cmd.Journal {
		if l == "draw 4 1 0" {
			found = true
		}
	}
	if !found {
		t.Fatalf("journal missing quad draw:\n%v", rc.ctx.Cmd.Journal)
	}

	// The compiled pipeline carries the SrcOver blend state.
	if len(rc.ctx.Pipelines) != 1 {
		t.Fatalf("pipelines:\nhave %d\nwant 1", len(rc.ctx.Pipelines))
	}
	blend := rc.ctx.Pipelines[0].Desc.Blend
	if !blend.Enable || blend.SrcRGB != gpu.BlendOne || blend.DstRGB != gpu.BlendOneMinusSrcAlpha {
		t.Fatalf("blend state:\nhave %+v", blend)
	}
}

func TestDrawColorFilterChain(t *testing.T) {
	rc := newTestRC()
	var g node.Graph
	h, err := g.New(node.ClassDrawColor, "", &DrawColorOpts{
		Common: Common{Filters: []*filter.Filter{
			filter.Opacity(0.5),
			filter.Alpha(1),
		}},
		Color:   VecSrc(1, 0, 0),
		Opacity: FloatSrc(1),
	}, node.Nil)
	if err != nil {
		t.Fatalf("g.New: %v", err)
	}
	if err := g.Ref(h); err != nil {
		t.Fatalf("g.Ref: %v", err)
	}
	if err := g.Prefetch(h, rc); err != nil {
		t.Fatalf("g.Prefetch: %v", err)
	}
	frag := rc.ctx.Pipelines[0].Desc.FragmentSrc
	iBase := strings.Index(frag, "color = source_color(var_uvcoord);")
	iOp := strings.Index(frag, "color = filter_opacity_0(color, var_uvcoord, opacity_0);")
	iAl := strings.Index(frag, "color = filter_alpha_0(color, var_uvcoord, alpha_0);")
	if iBase < 0 || iOp < 0 || iAl < 0 || !(iBase < iOp && iOp < iAl) {
		t.Fatalf("fragment chain out of order:\n%s", frag)
	}
}

func TestDrawColorFromAnimatedOpacity(t *testing.T) {
	rc := newTestRC()
	var g node.Graph
	a, err := anim.New(anim.ClassFloat, []anim.Keyframe{
		{Time: 0, Value: anim.Value{Scalar: 0}},
		{Time: 1, Value: anim.Value{Scalar: 1}, Easing: anim.Linear},
	}, anim.ColorSRGB, nil)
	if err != nil {
		t.Fatalf("anim.New: %v", err)
	}
	av, err := g.New(node.ClassAnimatedFloat, "", &AnimatedOpts{Anim: a}, node.Nil)
	if err != nil {
		t.Fatalf("g.New: %v", err)
	}
	if err := g.Ref(av); err != nil {
		t.Fatalf("g.Ref: %v", err)
	}
	if err := g.Update(av, 0.25, rc); err != nil {
		t.Fatalf("g.Update: %v", err)
	}
	var s Src = NodeSrc(av)
	if v := s.scalar(&g); v != 0.25 {
		t.Fatalf("animated source:\nhave %g\nwant 0.25", v)
	}
}

func TestDrawNoiseOctaves(t *testing.T) {
	var g node.Graph
	for _, octaves := range []int{0, 9} {
		h, err := g.New(node.ClassDrawNoise, "", &DrawNoiseOpts{Octaves: octaves}, node.Nil)
		if err != nil {
			t.Fatalf("g.New: %v", err)
		}
		if err := g.Ref(h); !errs.Is(err, errs.InvalidArg) {
			t.Fatalf("octaves=%d:\nhave %v\nwant InvalidArg", octaves, err)
		}
	}
}

func TestNoiseVariableNode(t *testing.T) {
	var g node.Graph
	h, err := g.New(node.ClassNoiseFloat, "", &NoiseOpts{Octaves: 4, Scale: 1}, node.Nil)
	if err != nil {
		t.Fatalf("g.New: %v", err)
	}
	if err := g.Ref(h); err != nil {
		t.Fatalf("g.Ref: %v", err)
	}
	if err := g.Update(h, 0.3, nil); err != nil {
		t.Fatalf("g.Update: %v", err)
	}
	v0, _ := ValueOf(&g, h)
	if err := g.Update(h, 0.7, nil); err != nil {
		t.Fatalf("g.Update: %v", err)
	}
	v1, _ := ValueOf(&g, h)
	if v0.Scalar == v1.Scalar {
		t.Fatal("noise did not vary with time")
	}
}

func TestDistmap(t *testing.T) {
	p := path.New()
	p.MoveTo(linear.V3{-1, -1, 0})
	p.LineTo(linear.V3{1, -1, 0})
	p.LineTo(linear.V3{1, 1, 0})
	p.LineTo(linear.V3{-1, 1, 0})
	p.Close()
	if err := p.Finalize(); err != nil {
		t.Fatalf("p.Finalize: %v", err)
	}
	if err := p.Init(3); err != nil {
		t.Fatalf("p.Init: %v", err)
	}

	dm := NewDistmap()
	i, err := dm.Register(p, 32, 32)
	if err != nil {
		t.Fatalf("dm.Register: %v", err)
	}
	if err := dm.Finalize(); err != nil {
		t.Fatalf("dm.Finalize: %v", err)
	}

	rect := dm.UVRect(i)
	if rect[2] <= 0 || rect[3] <= 0 || rect[0] < 0 || rect[1] < 0 {
		t.Fatalf("uv rect:\nhave %v", rect)
	}

	// The shape center lies inside the square contour: its encoded
	// distance must exceed the edge midpoint's.
	w, _ := dm.Size()
	s := dm.Data()
	center := s[(2+16)*w+2+16]
	edge := s[(2+16)*w+2]
	if center <= edge {
		t.Fatalf("sdf ordering:\nhave center=%d edge=%d\nwant center > edge", center, edge)
	}
	if center <= 127 {
		t.Fatalf("center not inside:\nhave %d\nwant > 127", center)
	}
}

func TestColorStats(t *testing.T) {
	var g node.Graph
	// 2 red pixels, 1 blue, 1 black.
	pix, err := bufFromBytes([]byte{
		255, 0, 0, 255,
		255, 0, 0, 255,
		0, 0, 255, 255,
		0, 0, 0, 255,
	})
	if err != nil {
		t.Fatalf("bufFromBytes: %v", err)
	}
	h, err := g.New(node.ClassColorStats, "", &ColorStatsOpts{Pixels: pix}, node.Nil)
	if err != nil {
		t.Fatalf("g.New: %v", err)
	}
	if err := g.Ref(h); err != nil {
		t.Fatalf("g.Ref: %v", err)
	}
	if err := g.Update(h, 0, nil); err != nil {
		t.Fatalf("g.Update: %v", err)
	}
	blk, _, ok := StatsOf(&g, h)
	if !ok {
		t.Fatal("StatsOf: not a stats node")
	}
	if rev := blk.Revision(); rev != 1 {
		t.Fatalf("block revision:\nhave %d\nwant 1", rev)
	}
	data := blk.FieldBytes("data")
	// Red channel bin 255 holds 2 counts.
	r255 := uint32(data[(255*4+0)*4]) | uint32(data[(255*4+0)*4+1])<<8
	if r255 != 2 {
		t.Fatalf("red bin 255:\nhave %d\nwant 2", r255)
	}
	// Red channel bin 0 holds the blue and black pixels.
	r0 := uint32(data[0])
	if r0 != 2 {
		t.Fatalf("red bin 0:\nhave %d\nwant 2", r0)
	}
}

func TestColorKey(t *testing.T) {
	var g node.Graph
	pix, err := bufFromBytes([]byte{
		250, 5, 5, 255, // close to red
		0, 255, 0, 255, // green
	})
	if err != nil {
		t.Fatalf("bufFromBytes: %v", err)
	}
	h, err := g.New(node.ClassColorKey, "", &ColorKeyOpts{
		Pixels:    pix,
		Color:     [3]float32{1, 0, 0},
		Tolerance: 0.1,
	}, node.Nil)
	if err != nil {
		t.Fatalf("g.New: %v", err)
	}
	if err := g.Ref(h); err != nil {
		t.Fatalf("g.Ref: %v", err)
	}
	if err := g.Update(h, 0, nil); err != nil {
		t.Fatalf("g.Update: %v", err)
	}
	mask, ok := MaskOf(&g, h)
	if !ok {
		t.Fatal("MaskOf: not a color key node")
	}
	if b := mask.Bytes(); b[0] != 0xff || b[1] != 0 {
		t.Fatalf("mask:\nhave % x\nwant ff 00", b)
	}
}

func bufFromBytes(b []byte) (*buffer.Buffer, error) {
	return buffer.NewFromData(linear.RGBA8Unorm, b)
}
