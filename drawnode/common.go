// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package drawnode implements the draw node family plus the
// variable-producing node classes they source parameters from: each
// draw kind owns or binds a geometry, composes its base
// fragment with the filter chain, declares its uniforms through craft
// and issues draws through a PipelineCompat.
package drawnode

import (
	"github.com/gviegas/ngfx/buffer"
	"github.com/gviegas/ngfx/craft"
	"github.com/gviegas/ngfx/filter"
	"github.com/gviegas/ngfx/geom"
	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
)

const pkgName = "drawnode"

func newErr(code errs.Code, reason string) error { return errs.New(pkgName, code, reason) }

// RC is the surface draw nodes consume from the render context during
// prepare/update/draw. The engine package implements it.
type RC interface {
	Gpu() gpu.GpuCtx
	Cmd() gpu.CmdBuffer
	ModelView() *linear.M4
	Projection() *linear.M4
	Viewport() gpu.Viewport
}

func asRC(rc any) (RC, error) {
	r, ok := rc.(RC)
	if !ok {
		return nil, newErr(errs.InvalidUsage, "draw outside a render context bracket")
	}
	return r, nil
}

// Blend is one of the blending presets every draw node accepts.
type Blend int

// Blend presets (Porter-Duff over premultiplied color).
const (
	BlendDefault Blend = iota
	BlendSrcOver
	BlendDstOver
	BlendSrcIn
	BlendDstIn
	BlendSrcOut
	BlendDstOut
	BlendSrcAtop
	BlendDstAtop
	BlendXor
)

func (b Blend) state() gpu.BlendState {
	f := func(src, dst gpu.BlendFactor) gpu.BlendState {
		return gpu.BlendState{Enable: true, SrcRGB: src, DstRGB: dst, SrcAlpha: src, DstAlpha: dst}
	}
	switch b {
	case BlendSrcOver:
		return f(gpu.BlendOne, gpu.BlendOneMinusSrcAlpha)
	case BlendDstOver:
		return f(gpu.BlendOneMinusDstAlpha, gpu.BlendOne)
	case BlendSrcIn:
		return f(gpu.BlendDstAlpha, gpu.BlendZero)
	case BlendDstIn:
		return f(gpu.BlendZero, gpu.BlendSrcAlpha)
	case BlendSrcOut:
		return f(gpu.BlendOneMinusDstAlpha, gpu.BlendZero)
	case BlendDstOut:
		return f(gpu.BlendZero, gpu.BlendOneMinusSrcAlpha)
	case BlendSrcAtop:
		return f(gpu.BlendDstAlpha, gpu.BlendOneMinusSrcAlpha)
	case BlendDstAtop:
		return f(gpu.BlendOneMinusDstAlpha, gpu.BlendSrcAlpha)
	case BlendXor:
		return f(gpu.BlendOneMinusDstAlpha, gpu.BlendOneMinusSrcAlpha)
	default:
		return gpu.BlendState{}
	}
}

// Common is the option set every draw node shares: a blending preset,
// an optional geometry override and an optional filter list.
type Common struct {
	Blend    Blend
	Geometry *geom.Geometry
	Filters  []*filter.Filter
}

// defaultVert writes clip position from the context matrices and
// forwards the UV coordinate.
const defaultVert = `void ngl_vert_main()
{
    gl_Position = projection_matrix * modelview_matrix * vec4(position, 1.0);
    var_uvcoord = uvcoord;
}
`

// defaultGeometry returns the unit-quad strip used when a draw node has
// no geometry override.
func defaultGeometry() (*geom.Geometry, error) {
	return geom.Quad(
		linear.V3{-1, -1, 0}, linear.V3{2, 0, 0}, linear.V3{0, 2, 0},
		linear.V2{0, 0}, linear.V2{1, 0}, linear.V2{0, 1},
	)
}

// common is the private state every draw node embeds.
type common struct {
	g      *geom.Geometry
	craft  *craft.Craft
	compat *craft.PipelineCompat

	// uniform slots resolved once at init.
	mvIdx, prIdx, arIdx int
	uIdx                map[string]int
	texIdx              map[string]int
	blkIdx              map[string]int

	// initial values for composed filter resources.
	resInit []filter.Resource
}

func resourceType(t filter.ResourceType) craft.UniformType {
	switch t {
	case filter.ResVec2:
		return craft.Vec2
	case filter.ResVec3:
		return craft.Vec3
	case filter.ResVec4:
		return craft.Vec4
	case filter.ResInt:
		return craft.Int
	default:
		return craft.Float
	}
}

// buildCommon composes the node's base fragment with its filter list
// and resolves the craft for the resulting pipeline.
func buildCommon(opts *Common, baseFn, baseCode string, helpers filter.Helpers,
	baseRes []filter.Resource, uniforms []craft.Uniform, textures []craft.Texture,
	blocks []craft.Block, label string) (*common, error) {

	g := opts.Geometry
	if g == nil {
		var err error
		if g, err = defaultGeometry(); err != nil {
			return nil, err
		}
	}
	if g.UVCoords == nil {
		return nil, newErr(errs.InvalidArg, "draw nodes require uvcoords on their geometry")
	}

	chain, err := filter.NewChain(baseFn, baseCode, helpers, baseRes)
	if err != nil {
		return nil, err
	}
	for _, f := range opts.Filters {
		if err := chain.Append(f); err != nil {
			return nil, err
		}
	}
	composed, err := chain.Compose()
	if err != nil {
		return nil, err
	}

	us := []craft.Uniform{
		{Name: "modelview_matrix", Type: craft.Mat4, Stage: gpu.StageVertex},
		{Name: "projection_matrix", Type: craft.Mat4, Stage: gpu.StageVertex},
		{Name: "aspect_ratio", Type: craft.Float, Stage: gpu.StageFragment},
	}
	us = append(us, uniforms...)
	for _, r := range composed.Resources {
		us = append(us, craft.Uniform{
			Name:  r.Name,
			Type:  resourceType(r.Type),
			Stage: gpu.StageFragment,
		})
	}

	g.Vertices.Request(buffer.ConsumerGeometry)
	g.UVCoords.Request(buffer.ConsumerGeometry)
	if g.Indices != nil {
		g.Indices.Request(buffer.ConsumerGeometry)
	}

	c, err := craft.New(&craft.Desc{
		Label:           label,
		VertexBase:      defaultVert,
		FragmentBase:    composed.Source,
		FragmentHasMain: true,
		Uniforms:        us,
		Textures:        textures,
		Blocks:          blocks,
		Attributes: []craft.Attribute{
			{Name: "position", Format: linear.RGB32Sfloat, Buffer: g.Vertices},
			{Name: "uvcoord", Format: linear.RG32Sfloat, Buffer: g.UVCoords},
		},
		IOVars:   []craft.IOVar{{Name: "var_uvcoord", Type: craft.Vec2}},
		Topology: g.Topology,
		Blend:    opts.Blend.state(),
	})
	if err != nil {
		return nil, err
	}

	cm := &common{
		g:       g,
		craft:   c,
		mvIdx:   c.GetUniformIndex("modelview_matrix", gpu.StageVertex),
		prIdx:   c.GetUniformIndex("projection_matrix", gpu.StageVertex),
		arIdx:   c.GetUniformIndex("aspect_ratio", gpu.StageFragment),
		uIdx:    make(map[string]int, len(uniforms)),
		texIdx:  make(map[string]int, len(textures)),
		blkIdx:  make(map[string]int, len(blocks)),
		resInit: composed.Resources,
	}
	for _, u := range uniforms {
		cm.uIdx[u.Name] = c.GetUniformIndex(u.Name, u.Stage)
	}
	for _, t := range textures {
		cm.texIdx[t.Name] = c.GetTextureIndex(t.Name)
	}
	for _, b := range blocks {
		cm.blkIdx[b.Name] = c.GetBlockIndex(b.Name)
	}
	return cm, nil
}

// prepare uploads the geometry and compiles the pipeline.
func (cm *common) prepare(rc RC) error {
	ctx := rc.Gpu()
	for _, b := range []*buffer.Buffer{cm.g.Vertices, cm.g.UVCoords, cm.g.Indices} {
		if b == nil {
			continue
		}
		if err := b.Prepare(ctx); err != nil {
			return err
		}
	}
	if cm.compat == nil {
		p, err := craft.NewCompat(ctx, cm.craft)
		if err != nil {
			return err
		}
		cm.compat = p
		for _, r := range cm.resInit {
			i := cm.craft.GetUniformIndex(r.Name, gpu.StageFragment)
			if i < 0 {
				continue
			}
			if err := p.UpdateUniform(i, r.Value[:]); err != nil {
				return err
			}
		}
	}
	return nil
}

// release drops the pipeline; the craft survives for a later prepare.
func (cm *common) release() {
	if cm.compat != nil {
		cm.compat.Destroy()
		cm.compat = nil
	}
}

func flatten(m *linear.M4) []float32 {
	out := make([]float32, 16)
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[c*4+r] = m[c][r]
		}
	}
	return out
}

// draw stages the frame-wide uniforms (modelview, projection, aspect
// ratio), runs the kind-specific staging callback, flushes and issues
// the draw call.
func (cm *common) draw(rc RC, stageKind func() error) error {
	if cm.compat == nil {
		return newErr(errs.InvalidUsage, "draw on a node that is not Ready")
	}
	if err := cm.compat.UpdateUniform(cm.mvIdx, flatten(rc.ModelView())); err != nil {
		return err
	}
	if err := cm.compat.UpdateUniform(cm.prIdx, flatten(rc.Projection())); err != nil {
		return err
	}
	vp := rc.Viewport()
	ar := float32(1)
	if vp.Height != 0 {
		ar = vp.Width / vp.Height
	}
	if err := cm.compat.UpdateUniform(cm.arIdx, []float32{ar}); err != nil {
		return err
	}
	if stageKind != nil {
		if err := stageKind(); err != nil {
			return err
		}
	}
	if err := cm.compat.Upload(); err != nil {
		return err
	}
	cb := rc.Cmd()
	if cm.g.Indices != nil {
		return cm.compat.DrawIndexed(cb, cm.g.Indices, cm.g.Indices.Format(),
			cm.g.IndexCount(), 1)
	}
	return cm.compat.Draw(cb, cm.g.VertexCount(), 1, 0)
}

// uniform stages a kind uniform by name.
func (cm *common) uniform(name string, data []float32) error {
	i, ok := cm.uIdx[name]
	if !ok || i < 0 {
		return newErr(errs.Bug, "unknown kind uniform "+name)
	}
	return cm.compat.UpdateUniform(i, data)
}
