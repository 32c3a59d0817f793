// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package gpu defines GpuCtx, the narrow contract the engine core
// expects from a concrete GPU backend (OpenGL/Vulkan/Metal). This
// package only describes the boundary; backend drivers live elsewhere.
package gpu

import (
	"github.com/gviegas/ngfx/linear"
)

// Backend identifies a GPU backend kind.
type Backend int

// Backends.
const (
	BackendAuto Backend = iota
	BackendOpenGL
	BackendOpenGLES
	BackendVulkan
)

// Feature is a bitmask of optional backend capabilities.
type Feature uint64

// Features.
const (
	FeatureCompute Feature = 1 << iota
	FeatureTextureStorage
	FeatureDepthStencilResolve
	FeatureExternalOES
)

// Has reports whether f includes want.
func (f Feature) Has(want Feature) bool { return f&want == want }

// Limits describes implementation limits, as read by the render
// context's capability report.
type Limits struct {
	MaxColorAttachments int
	MaxImage1D          int
	MaxImage2D          int
	MaxImage3D          int
	MaxImageCube        int
	MaxImageArrayLayers int
	MaxSampleCounts     int
	MaxComputeGroupCount [3]int
	MaxComputeGroupSize  [3]int
	MaxComputeSharedMem  int
}

// Usage is a bitmask of how a buffer or image will be used.
type Usage int

// Usages.
const (
	UsageTransferSrc Usage = 1 << iota
	UsageTransferDst
	UsageVertex
	UsageIndex
	UsageUniform
	UsageStorage
	UsageColorTarget
	UsageDepthStencilTarget
	UsageSampled
)

// Viewport describes a normalized device viewport.
type Viewport struct {
	X, Y, Width, Height float32
	MinDepth, MaxDepth  float32
}

// Scissor describes a pixel-space scissor rectangle.
type Scissor struct {
	X, Y, Width, Height int
}

// Image is an opaque handle to a GPU image (or planar tuple, e.g. NV12).
type Image interface {
	// Write uploads tightly packed texel data for mip level 0.
	Write(data []byte) error
	Destroy()
}

// Buffer is an opaque handle to a GPU buffer. Buffers are host-visible
// in this model: Write is valid between BeginUpdate and EndUpdate and
// while recording draws (uniform staging).
type Buffer interface {
	// Write uploads data at the given byte offset.
	Write(offset int64, data []byte) error
	Destroy()
}

// Rendertarget is an opaque handle to a GPU-side render target.
type Rendertarget interface {
	Size() (width, height int)
}

// Pipeline is an opaque handle to a compiled graphics/compute pipeline.
type Pipeline interface {
	Destroy()
}

// Stage is a bitmask of shader stages.
type Stage int

// Stages.
const (
	StageVertex Stage = 1 << iota
	StageFragment
	StageCompute
)

// BindKind identifies what a pipeline binding slot holds.
type BindKind int

// Binding kinds.
const (
	BindUniformBuffer BindKind = iota
	BindStorageBuffer
	BindSampledImage
)

// BindLayoutEntry declares one slot of a pipeline's bind group layout.
// Group mirrors the vertex/fragment/compute set bucketing.
type BindLayoutEntry struct {
	Kind   BindKind
	Group  int
	Index  int
	Stages Stage
}

// Binding supplies the resource for one layout slot at draw time.
type Binding struct {
	Index  int
	Buffer Buffer
	Offset int64
	Size   int64
	Image  Image
}

// BlendFactor is a blend equation operand.
type BlendFactor int

// Blend factors.
const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
)

// BlendState is a pipeline's fixed-function blend configuration.
type BlendState struct {
	Enable   bool
	SrcRGB   BlendFactor
	DstRGB   BlendFactor
	SrcAlpha BlendFactor
	DstAlpha BlendFactor
}

// PipelineDesc describes a graphics pipeline to compile: final shader
// sources, bind group layout, vertex buffer formats (one per attribute
// slot, tightly packed), primitive topology and blend state.
type PipelineDesc struct {
	Label         string
	VertexSrc     string
	FragmentSrc   string
	Layout        []BindLayoutEntry
	VertexFormats []linear.Format
	Topology      int
	Blend         BlendState
}

// CmdBuffer is the interface for recording draw/dispatch/copy commands.
// begin_draw/end_draw and begin_render_pass/end_render_pass bracket calls
// into this interface.
type CmdBuffer interface {
	SetViewport(v Viewport)
	SetScissor(s Scissor)
	SetPipeline(p Pipeline)
	SetVertexBuffer(slot int, b Buffer, offset int64)
	SetIndexBuffer(b Buffer, format linear.Format, offset int64)
	SetBindings(group int, bindings []Binding)
	Draw(vertices, instances, first int)
	DrawIndexed(count, instances, firstIndex int)
}

// GpuCtx is the contract a concrete GPU backend must satisfy.
type GpuCtx interface {
	// Init initializes the backend. It may be called only once.
	Init(backend Backend) error

	// Close releases all backend resources.
	Close()

	// Resize notifies the backend that the presentation surface
	// changed size.
	Resize(width, height int) error

	// SetCaptureBuffer installs (or clears, if buf is nil) a buffer
	// that receives the next frame's rendered contents.
	SetCaptureBuffer(buf Buffer) error

	// WaitIdle blocks until all in-flight GPU work completes.
	WaitIdle() error

	// DefaultRendertarget returns the backend's default presentation
	// target.
	DefaultRendertarget() Rendertarget

	// DefaultRendertargetSize returns the current size of the default
	// rendertarget.
	DefaultRendertargetSize() (width, height int)

	// DefaultRendertargetFormat returns the pixel format of the
	// default rendertarget.
	DefaultRendertargetFormat() linear.Format

	// BeginUpdate/EndUpdate bracket CPU->GPU resource uploads.
	BeginUpdate() error
	EndUpdate() error

	// BeginDraw/EndDraw bracket a frame's drawing commands and return
	// a CmdBuffer valid for the duration of the bracket.
	BeginDraw() (CmdBuffer, error)
	EndDraw() error

	// BeginRenderPass/EndRenderPass bracket a render pass over rt.
	// Only one render pass may be active at a time.
	BeginRenderPass(cb CmdBuffer, rt Rendertarget, clear bool) error
	EndRenderPass(cb CmdBuffer) error
	IsRenderPassActive() bool

	// TransformProjectionMatrix adjusts a projection matrix built with
	// the [0,1]-depth convention to the backend's native clip-space
	// convention (e.g. OpenGL's [-1,1] depth range).
	TransformProjectionMatrix(m *linear.M4)

	// QueryDrawTime returns the GPU time, in seconds, spent on the most
	// recently completed frame.
	QueryDrawTime() (float64, error)

	// NewImage creates a GPU image.
	NewImage(format linear.Format, width, height, depth, layers, levels, samples int, usage Usage) (Image, error)

	// NewBuffer creates a GPU buffer of the given size.
	NewBuffer(size int64, usage Usage) (Buffer, error)

	// NewPipeline compiles a graphics pipeline from the given
	// description.
	NewPipeline(desc *PipelineDesc) (Pipeline, error)

	// NewRendertarget creates an offscreen render target backed by
	// img (RenderToTexture and intermediate filter passes).
	NewRendertarget(img Image, width, height int) (Rendertarget, error)

	// Features returns the backend's optional capability bits.
	Features() Feature

	// Limits returns the backend's implementation limits.
	Limits() Limits

	// Name returns the backend's human-readable name.
	Name() string
}
