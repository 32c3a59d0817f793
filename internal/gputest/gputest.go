// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package gputest provides an in-memory gpu.GpuCtx for tests: every
// resource is a plain byte slice and every command is recorded in a
// journal the test can inspect.
package gputest

import (
	"fmt"
	"sync"

	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/linear"
)

// Buffer is a CPU-backed gpu.Buffer.
type Buffer struct {
	Data  []byte
	Usage gpu.Usage
	dead  bool
}

// Write implements gpu.Buffer.
func (b *Buffer) Write(offset int64, data []byte) error {
	if b.dead {
		return fmt.Errorf("gputest: write to destroyed buffer")
	}
	if offset < 0 || int(offset)+len(data) > len(b.Data) {
		return fmt.Errorf("gputest: write out of range")
	}
	copy(b.Data[offset:], data)
	return nil
}

// Destroy implements gpu.Buffer.
func (b *Buffer) Destroy() { b.dead = true }

// Image is a fake gpu.Image.
type Image struct {
	Format linear.Format
	W, H   int
	Data   []byte
}

// Write implements gpu.Image.
func (i *Image) Write(data []byte) error {
	i.Data = append(i.Data[:0], data...)
	return nil
}

// Destroy implements gpu.Image.
func (*Image) Destroy() {}

// Pipeline records the description it was compiled from.
type Pipeline struct {
	Desc gpu.PipelineDesc
}

// Destroy implements gpu.Pipeline.
func (*Pipeline) Destroy() {}

// Rendertarget is a fake gpu.Rendertarget.
type Rendertarget struct {
	W, H int
}

// Size implements gpu.Rendertarget.
func (r *Rendertarget) Size() (int, int) { return r.W, r.H }

// CmdBuffer journals every recorded command as a formatted line.
type CmdBuffer struct {
	Journal []string
}

func (c *CmdBuffer) log(format string, args ...any) {
	c.Journal = append(c.Journal, fmt.Sprintf(format, args...))
}

// SetViewport implements gpu.CmdBuffer.
func (c *CmdBuffer) SetViewport(v gpu.Viewport) {
	c.log("viewport %g %g %g %g", v.X, v.Y, v.Width, v.Height)
}

// SetScissor implements gpu.CmdBuffer.
func (c *CmdBuffer) SetScissor(s gpu.Scissor) {
	c.log("scissor %d %d %d %d", s.X, s.Y, s.Width, s.Height)
}

// SetPipeline implements gpu.CmdBuffer.
func (c *CmdBuffer) SetPipeline(p gpu.Pipeline) { c.log("pipeline %p", p) }

// SetVertexBuffer implements gpu.CmdBuffer.
func (c *CmdBuffer) SetVertexBuffer(slot int, b gpu.Buffer, offset int64) {
	c.log("vertexbuffer %d", slot)
}

// SetIndexBuffer implements gpu.CmdBuffer.
func (c *CmdBuffer) SetIndexBuffer(b gpu.Buffer, format linear.Format, offset int64) {
	c.log("indexbuffer %s", format)
}

// SetBindings implements gpu.CmdBuffer.
func (c *CmdBuffer) SetBindings(group int, bindings []gpu.Binding) {
	c.log("bindings %d n=%d", group, len(bindings))
}

// Draw implements gpu.CmdBuffer.
func (c *CmdBuffer) Draw(vertices, instances, first int) {
	c.log("draw %d %d %d", vertices, instances, first)
}

// DrawIndexed implements gpu.CmdBuffer.
func (c *CmdBuffer) DrawIndexed(count, instances, firstIndex int) {
	c.log("drawindexed %d %d %d", count, instances, firstIndex)
}

// DrawCount returns the number of draw/drawindexed commands journaled.
func (c *CmdBuffer) DrawCount() int {
	n := 0
	for _, l := range c.Journal {
		if len(l) >= 4 && l[:4] == "draw" {
			n++
		}
	}
	return n
}

// Ctx is the fake GPU context.
type Ctx struct {
	mu sync.Mutex

	W, H      int
	Feats     gpu.Feature
	Lims      gpu.Limits
	Cmd       CmdBuffer
	Buffers   []*Buffer
	Pipelines []*Pipeline

	inUpdate   bool
	inDraw     bool
	passActive bool
	PassCount  int

	defTarget Rendertarget
}

// New creates a fake context with sane limits and a default target of
// the given size.
func New(width, height int) *Ctx {
	return &Ctx{
		W: width, H: height,
		Lims: gpu.Limits{
			MaxColorAttachments:  8,
			MaxImage1D:           16384,
			MaxImage2D:           16384,
			MaxImage3D:           2048,
			MaxImageCube:         16384,
			MaxImageArrayLayers:  256,
			MaxSampleCounts:      8,
			MaxComputeGroupCount: [3]int{65535, 65535, 65535},
			MaxComputeGroupSize:  [3]int{1024, 1024, 64},
			MaxComputeSharedMem:  32768,
		},
		defTarget: Rendertarget{W: width, H: height},
	}
}

// Init implements gpu.GpuCtx.
func (c *Ctx) Init(backend gpu.Backend) error { return nil }

// Close implements gpu.GpuCtx.
func (c *Ctx) Close() {}

// Resize implements gpu.GpuCtx.
func (c *Ctx) Resize(width, height int) error {
	c.W, c.H = width, height
	c.defTarget = Rendertarget{W: width, H: height}
	return nil
}

// SetCaptureBuffer implements gpu.GpuCtx.
func (c *Ctx) SetCaptureBuffer(buf gpu.Buffer) error { return nil }

// WaitIdle implements gpu.GpuCtx.
func (c *Ctx) WaitIdle() error { return nil }

// DefaultRendertarget implements gpu.GpuCtx.
func (c *Ctx) DefaultRendertarget() gpu.Rendertarget { return &c.defTarget }

// DefaultRendertargetSize implements gpu.GpuCtx.
func (c *Ctx) DefaultRendertargetSize() (int, int) { return c.W, c.H }

// DefaultRendertargetFormat implements gpu.GpuCtx.
func (c *Ctx) DefaultRendertargetFormat() linear.Format { return linear.RGBA8Unorm }

// BeginUpdate implements gpu.GpuCtx.
func (c *Ctx) BeginUpdate() error {
	if c.inUpdate {
		return fmt.Errorf("gputest: nested BeginUpdate")
	}
	c.inUpdate = true
	return nil
}

// EndUpdate implements gpu.GpuCtx.
func (c *Ctx) EndUpdate() error {
	if !c.inUpdate {
		return fmt.Errorf("gputest: EndUpdate without BeginUpdate")
	}
	c.inUpdate = false
	return nil
}

// BeginDraw implements gpu.GpuCtx.
func (c *Ctx) BeginDraw() (gpu.CmdBuffer, error) {
	if c.inDraw {
		return nil, fmt.Errorf("gputest: nested BeginDraw")
	}
	c.inDraw = true
	return &c.Cmd, nil
}

// EndDraw implements gpu.GpuCtx.
func (c *Ctx) EndDraw() error {
	if !c.inDraw {
		return fmt.Errorf("gputest: EndDraw without BeginDraw")
	}
	if c.passActive {
		return fmt.Errorf("gputest: EndDraw with an active render pass")
	}
	c.inDraw = false
	return nil
}

// BeginRenderPass implements gpu.GpuCtx.
func (c *Ctx) BeginRenderPass(cb gpu.CmdBuffer, rt gpu.Rendertarget, clear bool) error {
	if c.passActive {
		return fmt.Errorf("gputest: nested render pass")
	}
	c.passActive = true
	c.PassCount++
	c.Cmd.log("beginpass clear=%v", clear)
	return nil
}

// EndRenderPass implements gpu.GpuCtx.
func (c *Ctx) EndRenderPass(cb gpu.CmdBuffer) error {
	if !c.passActive {
		return fmt.Errorf("gputest: EndRenderPass without BeginRenderPass")
	}
	c.passActive = false
	c.Cmd.log("endpass")
	return nil
}

// IsRenderPassActive implements gpu.GpuCtx.
func (c *Ctx) IsRenderPassActive() bool { return c.passActive }

// TransformProjectionMatrix implements gpu.GpuCtx (identity transform:
// the fake backend uses the [0,1] depth convention).
func (c *Ctx) TransformProjectionMatrix(m *linear.M4) {}

// QueryDrawTime implements gpu.GpuCtx.
func (c *Ctx) QueryDrawTime() (float64, error) { return 0, nil }

// NewImage implements gpu.GpuCtx.
func (c *Ctx) NewImage(format linear.Format, width, height, depth, layers, levels, samples int, usage gpu.Usage) (gpu.Image, error) {
	return &Image{Format: format, W: width, H: height}, nil
}

// NewBuffer implements gpu.GpuCtx.
func (c *Ctx) NewBuffer(size int64, usage gpu.Usage) (gpu.Buffer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := &Buffer{Data: make([]byte, size), Usage: usage}
	c.Buffers = append(c.Buffers, b)
	return b, nil
}

// NewPipeline implements gpu.GpuCtx.
func (c *Ctx) NewPipeline(desc *gpu.PipelineDesc) (gpu.Pipeline, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := &Pipeline{Desc: *desc}
	c.Pipelines = append(c.Pipelines, p)
	return p, nil
}

// NewRendertarget implements gpu.GpuCtx.
func (c *Ctx) NewRendertarget(img gpu.Image, width, height int) (gpu.Rendertarget, error) {
	return &Rendertarget{W: width, H: height}, nil
}

// Features implements gpu.GpuCtx.
func (c *Ctx) Features() gpu.Feature { return c.Feats }

// Limits implements gpu.GpuCtx.
func (c *Ctx) Limits() gpu.Limits { return c.Lims }

// Name implements gpu.GpuCtx.
func (c *Ctx) Name() string { return "gputest" }
