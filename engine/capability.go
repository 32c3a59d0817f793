// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/ngfx/gpu"
)

// CapID identifies one row of the capability report.
type CapID int

// Capability identifiers.
const (
	CapCompute CapID = iota
	CapDepthStencilResolve
	CapMaxColorAttachments
	CapMaxComputeGroupCountX
	CapMaxComputeGroupCountY
	CapMaxComputeGroupCountZ
	CapMaxComputeGroupSizeX
	CapMaxComputeGroupSizeY
	CapMaxComputeGroupSizeZ
	CapMaxComputeSharedMem
	CapMaxSamples
	CapMaxImage1D
	CapMaxImage2D
	CapMaxImage3D
	CapMaxImageCube
	CapMaxImageArrayLayers
	CapTextLibraries
)

// CapRow is one (enum id, string id, value) row of the report.
type CapRow struct {
	ID    CapID
	Name  string
	Value int
}

// Capabilities describes the backend to callers.
type Capabilities struct {
	Backend gpu.Backend
	Name    string
	Rows    []CapRow
}

func boolCap(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Capabilities assembles the capability report from the backend's
// feature bits and limits.
func (c *Context) Capabilities() Capabilities {
	var caps Capabilities
	c.exec(func() error {
		feats := c.ctx.Features()
		lims := c.ctx.Limits()
		caps = Capabilities{
			Backend: c.config.Backend,
			Name:    c.ctx.Name(),
			Rows: []CapRow{
				{CapCompute, "compute", boolCap(feats.Has(gpu.FeatureCompute))},
				{CapDepthStencilResolve, "depth_stencil_resolve",
					boolCap(feats.Has(gpu.FeatureDepthStencilResolve))},
				{CapMaxColorAttachments, "max_color_attachments", lims.MaxColorAttachments},
				{CapMaxComputeGroupCountX, "max_compute_group_count_x", lims.MaxComputeGroupCount[0]},
				{CapMaxComputeGroupCountY, "max_compute_group_count_y", lims.MaxComputeGroupCount[1]},
				{CapMaxComputeGroupCountZ, "max_compute_group_count_z", lims.MaxComputeGroupCount[2]},
				{CapMaxComputeGroupSizeX, "max_compute_group_size_x", lims.MaxComputeGroupSize[0]},
				{CapMaxComputeGroupSizeY, "max_compute_group_size_y", lims.MaxComputeGroupSize[1]},
				{CapMaxComputeGroupSizeZ, "max_compute_group_size_z", lims.MaxComputeGroupSize[2]},
				{CapMaxComputeSharedMem, "max_compute_shared_mem", lims.MaxComputeSharedMem},
				{CapMaxSamples, "max_samples", lims.MaxSampleCounts},
				{CapMaxImage1D, "max_texture_dimension_1d", lims.MaxImage1D},
				{CapMaxImage2D, "max_texture_dimension_2d", lims.MaxImage2D},
				{CapMaxImage3D, "max_texture_dimension_3d", lims.MaxImage3D},
				{CapMaxImageCube, "max_texture_dimension_cube", lims.MaxImageCube},
				{CapMaxImageArrayLayers, "max_texture_array_layers", lims.MaxImageArrayLayers},
				// Text rasterization is out of scope for this core.
				{CapTextLibraries, "text_libraries", 0},
			},
		}
		return nil
	})
	return caps
}
