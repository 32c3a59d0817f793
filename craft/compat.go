// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package craft

import (
	"encoding/binary"
	"math"

	"github.com/gviegas/ngfx/buffer"
	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
)

// texBinding tracks the image bound to one texture slot and the
// revision last pushed to the GPU, so an unchanged image is not
// rebound.
type texBinding struct {
	image   *buffer.Image
	rev     uint64
	rebind  bool
	reframe linear.M4
	hasRef  bool
}

// bufBinding tracks one user-block slot.
type bufBinding struct {
	buf    *buffer.Buffer
	offset int64
	size   int64
}

// PipelineCompat owns the compiled pipeline and the live uniform/
// texture/buffer bindings for one draw node.
type PipelineCompat struct {
	craft *Craft
	ctx   gpu.GpuCtx
	pl    gpu.Pipeline

	// One staging area + GPU buffer per stage bucket that declared
	// plain uniforms.
	stageData  [3][]byte
	stageUBO   [3]gpu.Buffer
	stageDirty [3]bool

	texBindings []texBinding
	bufBindings []bufBinding
}

// NewCompat compiles c's pipeline on ctx and allocates the per-stage
// uniform staging buffers.
func NewCompat(ctx gpu.GpuCtx, c *Craft) (*PipelineCompat, error) {
	c.ResolveCompat(ctx.Features())
	pl, err := ctx.NewPipeline(c.PipelineDesc())
	if err != nil {
		return nil, err
	}
	p := &PipelineCompat{
		craft:       c,
		ctx:         ctx,
		pl:          pl,
		texBindings: make([]texBinding, len(c.textures)),
		bufBindings: make([]bufBinding, len(c.blocks)),
	}
	for b := 0; b < 3; b++ {
		if size := c.stageBlockSize[b]; size > 0 {
			ubo, err := ctx.NewBuffer(int64(size), gpu.UsageTransferDst|gpu.UsageUniform)
			if err != nil {
				p.Destroy()
				return nil, err
			}
			p.stageUBO[b] = ubo
			p.stageData[b] = make([]byte, size)
			p.stageDirty[b] = true
		}
	}
	for i, t := range c.textures {
		if t.Image != nil {
			p.texBindings[i] = texBinding{image: t.Image, rebind: true}
		}
	}
	for i, blk := range c.blocks {
		p.bufBindings[i] = bufBinding{size: int64(blk.Block.Size())}
	}
	return p, nil
}

// UpdateUniform stages a CPU value for the uniform at index (as returned
// by Craft.GetUniformIndex).
func (p *PipelineCompat) UpdateUniform(index int, data []float32) error {
	if index < 0 || index >= len(p.craft.uniforms) {
		return newErr(errs.InvalidArg, "uniform index out of range")
	}
	u := p.craft.uniforms[index]
	size, _ := u.Type.sizeAlign()
	if len(data)*4 < size {
		return newErr(errs.InvalidArg, "uniform data too short for its type")
	}
	b := stageBucket(u.Stage)
	dst := p.stageData[b][u.offset:]
	for i := 0; i < size/4; i++ {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(data[i]))
	}
	p.stageDirty[b] = true
	return nil
}

// UpdateImage binds img to the texture slot at index. The binding is
// refreshed only when img (or its revision) differs from the last bind.
func (p *PipelineCompat) UpdateImage(index int, img *buffer.Image) error {
	if index < 0 || index >= len(p.texBindings) {
		return newErr(errs.InvalidArg, "texture index out of range")
	}
	tb := &p.texBindings[index]
	if tb.image == img && img != nil && tb.rev == img.Revision() {
		return nil
	}
	tb.image = img
	if img != nil {
		tb.rev = img.Revision()
	}
	tb.rebind = true
	return nil
}

// UpdateBuffer binds a byte range of b to the block slot at index.
func (p *PipelineCompat) UpdateBuffer(index int, b *buffer.Buffer, offset, size int64) error {
	if index < 0 || index >= len(p.bufBindings) {
		return newErr(errs.InvalidArg, "block index out of range")
	}
	p.bufBindings[index] = bufBinding{buf: b, offset: offset, size: size}
	return nil
}

// ApplyReframingMatrix post-multiplies m into img's coordinates matrix
// for the binding at index, staging the result into the conventional
// <texture>_coord_matrix uniform when the craft declares one.
func (p *PipelineCompat) ApplyReframingMatrix(index int, img *buffer.Image, m *linear.M4) error {
	if index < 0 || index >= len(p.texBindings) {
		return newErr(errs.InvalidArg, "texture index out of range")
	}
	tb := &p.texBindings[index]
	tb.reframe.Mul(&img.Coords, m)
	tb.hasRef = true

	name := p.craft.textures[index].Name + "_coord_matrix"
	if ui := p.craft.GetUniformIndex(name, gpu.StageVertex|gpu.StageFragment); ui >= 0 {
		var flat [16]float32
		for c := 0; c < 4; c++ {
			for r := 0; r < 4; r++ {
				flat[c*4+r] = tb.reframe[c][r]
			}
		}
		return p.UpdateUniform(ui, flat[:])
	}
	return nil
}

// Upload flushes dirty uniform staging areas to their GPU buffers. It
// must run inside the context's BeginUpdate/EndUpdate bracket.
func (p *PipelineCompat) Upload() error {
	for b := 0; b < 3; b++ {
		if !p.stageDirty[b] || p.stageUBO[b] == nil {
			continue
		}
		if err := p.stageUBO[b].Write(0, p.stageData[b]); err != nil {
			return err
		}
		p.stageDirty[b] = false
	}
	return nil
}

// bind records pipeline state and every resource binding into cb.
func (p *PipelineCompat) bind(cb gpu.CmdBuffer) error {
	cb.SetPipeline(p.pl)
	for i, a := range p.craft.attributes {
		mirror := a.Buffer.Mirror()
		if mirror == nil {
			return newErr(errs.InvalidUsage, "attribute "+a.Name+" has no GPU mirror")
		}
		cb.SetVertexBuffer(i, mirror, 0)
	}

	var groups [3][]gpu.Binding
	for b := 0; b < 3; b++ {
		if p.stageUBO[b] != nil {
			groups[b] = append(groups[b], gpu.Binding{
				Index:  0,
				Buffer: p.stageUBO[b],
				Size:   int64(len(p.stageData[b])),
			})
		}
	}
	for i := range p.texBindings {
		tb := &p.texBindings[i]
		if tb.image == nil || len(tb.image.Planes) == 0 {
			return newErr(errs.InvalidUsage,
				"texture "+p.craft.textures[i].Name+" has no bound image")
		}
		e := p.craft.texBind[i]
		groups[e.Group] = append(groups[e.Group], gpu.Binding{
			Index: e.Index,
			Image: tb.image.Planes[0],
		})
		tb.rebind = false
	}
	for i := range p.bufBindings {
		bb := &p.bufBindings[i]
		if bb.buf == nil {
			return newErr(errs.InvalidUsage,
				"block "+p.craft.blocks[i].Name+" has no bound buffer")
		}
		mirror := bb.buf.Mirror()
		if mirror == nil {
			return newErr(errs.InvalidUsage,
				"block "+p.craft.blocks[i].Name+" has no GPU mirror")
		}
		e := p.craft.blockBind[i]
		groups[e.Group] = append(groups[e.Group], gpu.Binding{
			Index:  e.Index,
			Buffer: mirror,
			Offset: bb.offset,
			Size:   bb.size,
		})
	}
	for b := 0; b < 3; b++ {
		if len(groups[b]) > 0 {
			cb.SetBindings(b, groups[b])
		}
	}
	return nil
}

// Draw binds everything and issues a non-indexed draw.
func (p *PipelineCompat) Draw(cb gpu.CmdBuffer, vertices, instances, first int) error {
	if err := p.bind(cb); err != nil {
		return err
	}
	cb.Draw(vertices, instances, first)
	return nil
}

// DrawIndexed binds everything plus the index buffer and issues an
// indexed draw.
func (p *PipelineCompat) DrawIndexed(cb gpu.CmdBuffer, ib *buffer.Buffer, format linear.Format, count, instances int) error {
	if err := p.bind(cb); err != nil {
		return err
	}
	mirror := ib.Mirror()
	if mirror == nil {
		return newErr(errs.InvalidUsage, "index buffer has no GPU mirror")
	}
	cb.SetIndexBuffer(mirror, format, 0)
	cb.DrawIndexed(count, instances, 0)
	return nil
}

// Destroy releases the pipeline and staging buffers.
func (p *PipelineCompat) Destroy() {
	if p.pl != nil {
		p.pl.Destroy()
		p.pl = nil
	}
	for b := 0; b < 3; b++ {
		if p.stageUBO[b] != nil {
			p.stageUBO[b].Destroy()
			p.stageUBO[b] = nil
		}
	}
}
