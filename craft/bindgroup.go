// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package craft

import (
	"github.com/gviegas/ngfx/buffer"
	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/linear"
)

// SamplerKind identifies the sampler flavor a texture binding resolved
// to after platform fallbacks.
type SamplerKind int

// Sampler kinds.
const (
	Sampler2D SamplerKind = iota
	Sampler3D
	SamplerCube
	SamplerExternalOES
)

// CompatInfo describes the sampler fallbacks applied for the current
// backend: platforms without a feature (e.g. external-OES sampling)
// have their bindings rewritten to a supported kind, and consumers may
// need to compensate (extra coordinate flip, explicit YUV conversion).
type CompatInfo struct {
	// Fallbacks maps a texture name to the sampler kind its binding
	// was demoted to. Textures absent from the map bound as declared.
	Fallbacks map[string]SamplerKind
}

// ResolveCompat fills c's CompatInfo from the backend's feature bits.
// The only demotion this core performs is external-OES to plain 2D when
// the backend lacks FeatureExternalOES.
func (c *Craft) ResolveCompat(features gpu.Feature) {
	if features.Has(gpu.FeatureExternalOES) {
		c.compat = CompatInfo{}
		return
	}
	var fb map[string]SamplerKind
	for _, t := range c.textures {
		if t.Image != nil && t.Image.Layout != buffer.LayoutDefault {
			if fb == nil {
				fb = make(map[string]SamplerKind)
			}
			fb[t.Name] = Sampler2D
		}
	}
	c.compat = CompatInfo{Fallbacks: fb}
}

// PipelineDesc assembles the gpu-level pipeline description for c.
func (c *Craft) PipelineDesc() *gpu.PipelineDesc {
	formats := make([]linear.Format, len(c.attributes))
	for i, a := range c.attributes {
		formats[i] = a.Format
	}
	return &gpu.PipelineDesc{
		Label:         c.label,
		VertexSrc:     c.vertSrc,
		FragmentSrc:   c.fragSrc,
		Layout:        c.Layout(),
		VertexFormats: formats,
		Topology:      int(c.topology),
		Blend:         c.blend,
	}
}
