// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package craft bridges high-level resource declarations (uniforms,
// textures, blocks, attributes, vertex I/O) and the GPU pipeline: it
// generates the final shader sources, computes stable bind indices
// bucketed per stage, and exposes PipelineCompat, the per-frame facade
// accepting uniform/image/buffer updates by index.
package craft

import (
	"fmt"
	"strings"

	"github.com/gviegas/ngfx/buffer"
	"github.com/gviegas/ngfx/geom"
	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
)

const pkgName = "craft"

func newErr(code errs.Code, reason string) error { return errs.New(pkgName, code, reason) }

// UniformType is the GLSL-visible type of a uniform or I/O variable.
type UniformType int

// Uniform types.
const (
	Float UniformType = iota
	Vec2
	Vec3
	Vec4
	Int
	Mat3
	Mat4
)

func (u UniformType) glsl() string {
	switch u {
	case Float:
		return "float"
	case Vec2:
		return "vec2"
	case Vec3:
		return "vec3"
	case Vec4:
		return "vec4"
	case Int:
		return "int"
	case Mat3:
		return "mat3"
	case Mat4:
		return "mat4"
	default:
		return "float"
	}
}

// sizeAlign returns the std140 byte size and base alignment of u.
func (u UniformType) sizeAlign() (size, align int) {
	switch u {
	case Float, Int:
		return 4, 4
	case Vec2:
		return 8, 8
	case Vec3:
		return 12, 16
	case Vec4:
		return 16, 16
	case Mat3:
		return 48, 16
	case Mat4:
		return 64, 16
	default:
		return 4, 4
	}
}

// Uniform declares one uniform: name, type, consuming stage and an
// optional CPU data slice pulled on every update.
type Uniform struct {
	Name  string
	Type  UniformType
	Stage gpu.Stage
	Data  []float32
}

// Texture declares one sampled texture.
type Texture struct {
	Name  string
	Stage gpu.Stage
	Image *buffer.Image
}

// Block declares one uniform or storage block backed by a buffer.Block.
type Block struct {
	Name    string
	Stage   gpu.Stage
	Block   *buffer.Block
	Storage bool
}

// Attribute declares one vertex attribute fed from a buffer.
type Attribute struct {
	Name   string
	Format linear.Format
	Buffer *buffer.Buffer
}

// IOVar declares one variable passed from the vertex stage to the
// fragment stage.
type IOVar struct {
	Name string
	Type UniformType
}

// Desc is the full input to New: shader bases plus every resource the
// pipeline binds.
//
// VertexBase must define void ngl_vert_main(). FragmentBase either
// defines void ngl_frag_main() or, when FragmentHasMain is set (the
// filter-chain case), carries its own main and is emitted as-is after
// the declarations.
type Desc struct {
	Label           string
	VertexBase      string
	FragmentBase    string
	FragmentHasMain bool
	Uniforms        []Uniform
	Textures        []Texture
	Blocks          []Block
	Attributes      []Attribute
	IOVars          []IOVar
	Topology        geom.Topology
	Blend           gpu.BlendState
}

// uniformSlot is a resolved uniform: its byte offset within its stage's
// synthesized uniform block.
type uniformSlot struct {
	Uniform
	offset int
}

// Craft holds the compiled sources, resolved resource slots and bind
// group layout for one pipeline.
type Craft struct {
	label   string
	vertSrc string
	fragSrc string

	uniforms   []uniformSlot
	textures   []Texture
	blocks     []Block
	attributes []Attribute

	// stageBlockSize is the std140 size of the synthesized per-stage
	// uniform block, indexed by stage bucket.
	stageBlockSize [3]int

	layout []gpu.BindLayoutEntry
	// texBind/blockBind map texture/block list positions to layout
	// slots; the per-stage uniform blocks always occupy binding 0 of
	// their set.
	texBind   []gpu.BindLayoutEntry
	blockBind []gpu.BindLayoutEntry

	topology geom.Topology
	blend    gpu.BlendState
	compat   CompatInfo
}

// stageBucket maps a stage bit to its bind group set, one set per
// vertex/fragment/compute usage.
func stageBucket(s gpu.Stage) int {
	switch {
	case s&gpu.StageVertex != 0:
		return 0
	case s&gpu.StageFragment != 0:
		return 1
	default:
		return 2
	}
}

// New resolves desc into a Craft: uniform offsets, bind group layout and
// final GLSL sources.
func New(desc *Desc) (*Craft, error) {
	if desc.VertexBase == "" || desc.FragmentBase == "" {
		return nil, newErr(errs.InvalidArg, "both shader bases are required")
	}
	c := &Craft{
		label:      desc.Label,
		textures:   append([]Texture(nil), desc.Textures...),
		blocks:     append([]Block(nil), desc.Blocks...),
		attributes: append([]Attribute(nil), desc.Attributes...),
		topology:   desc.Topology,
		blend:      desc.Blend,
	}

	// Pack each stage's uniforms into one std140 block.
	for _, u := range desc.Uniforms {
		b := stageBucket(u.Stage)
		size, algn := u.Type.sizeAlign()
		off := alignUp(c.stageBlockSize[b], algn)
		c.uniforms = append(c.uniforms, uniformSlot{Uniform: u, offset: off})
		c.stageBlockSize[b] = off + size
	}

	// Layout: per used set, binding 0 is the synthesized uniform
	// block; samplers and user blocks follow in declaration order.
	nextBinding := [3]int{}
	for b := 0; b < 3; b++ {
		if c.stageBlockSize[b] > 0 {
			c.layout = append(c.layout, gpu.BindLayoutEntry{
				Kind:   gpu.BindUniformBuffer,
				Group:  b,
				Index:  0,
				Stages: stageOfBucket(b),
			})
			nextBinding[b] = 1
		}
	}
	for _, t := range c.textures {
		b := stageBucket(t.Stage)
		e := gpu.BindLayoutEntry{
			Kind:   gpu.BindSampledImage,
			Group:  b,
			Index:  nextBinding[b],
			Stages: t.Stage,
		}
		nextBinding[b]++
		c.layout = append(c.layout, e)
		c.texBind = append(c.texBind, e)
	}
	for _, blk := range c.blocks {
		kind := gpu.BindUniformBuffer
		if blk.Storage {
			kind = gpu.BindStorageBuffer
		}
		b := stageBucket(blk.Stage)
		e := gpu.BindLayoutEntry{
			Kind:   kind,
			Group:  b,
			Index:  nextBinding[b],
			Stages: blk.Stage,
		}
		nextBinding[b]++
		c.layout = append(c.layout, e)
		c.blockBind = append(c.blockBind, e)
	}

	c.vertSrc = c.genVertex(desc)
	c.fragSrc = c.genFragment(desc)
	return c, nil
}

func stageOfBucket(b int) gpu.Stage {
	switch b {
	case 0:
		return gpu.StageVertex
	case 1:
		return gpu.StageFragment
	default:
		return gpu.StageCompute
	}
}

func alignUp(x, a int) int {
	if r := x % a; r != 0 {
		return x + a - r
	}
	return x
}

const preamble = "#version 450 core\nprecision highp float;\n\n"

func attrType(f linear.Format) string {
	switch f.Lookup().Components {
	case 1:
		return "float"
	case 2:
		return "vec2"
	case 3:
		return "vec3"
	default:
		return "vec4"
	}
}

func (c *Craft) genVertex(desc *Desc) string {
	var b strings.Builder
	b.WriteString(preamble)
	for i, a := range c.attributes {
		fmt.Fprintf(&b, "layout(location = %d) in %s %s;\n", i, attrType(a.Format), a.Name)
	}
	for i, v := range desc.IOVars {
		fmt.Fprintf(&b, "layout(location = %d) out %s %s;\n", i, v.Type.glsl(), v.Name)
	}
	c.genUniformBlock(&b, 0, "ngl_vert_block")
	c.genOpaque(&b, gpu.StageVertex)
	b.WriteByte('\n')
	b.WriteString(desc.VertexBase)
	if !strings.HasSuffix(desc.VertexBase, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString("\nvoid main()\n{\n    ngl_vert_main();\n}\n")
	return b.String()
}

func (c *Craft) genFragment(desc *Desc) string {
	var b strings.Builder
	b.WriteString(preamble)
	for i, v := range desc.IOVars {
		fmt.Fprintf(&b, "layout(location = %d) in %s %s;\n", i, v.Type.glsl(), v.Name)
	}
	b.WriteString("layout(location = 0) out vec4 ngl_out_color;\n")
	c.genUniformBlock(&b, 1, "ngl_frag_block")
	c.genOpaque(&b, gpu.StageFragment)
	b.WriteByte('\n')
	b.WriteString(desc.FragmentBase)
	if !strings.HasSuffix(desc.FragmentBase, "\n") {
		b.WriteByte('\n')
	}
	if !desc.FragmentHasMain {
		b.WriteString("\nvoid main()\n{\n    ngl_frag_main();\n}\n")
	}
	return b.String()
}

// genUniformBlock declares the synthesized uniform block for one stage
// bucket, if that stage has any plain uniforms.
func (c *Craft) genUniformBlock(b *strings.Builder, bucket int, name string) {
	if c.stageBlockSize[bucket] == 0 {
		return
	}
	fmt.Fprintf(b, "layout(std140, set = %d, binding = 0) uniform %s {\n", bucket, name)
	for _, u := range c.uniforms {
		if stageBucket(u.Stage) != bucket {
			continue
		}
		fmt.Fprintf(b, "    %s %s;\n", u.Type.glsl(), u.Name)
	}
	b.WriteString("};\n")
}

// genOpaque declares samplers and user blocks consumed by the stage.
func (c *Craft) genOpaque(b *strings.Builder, stage gpu.Stage) {
	for i, t := range c.textures {
		if t.Stage&stage == 0 {
			continue
		}
		e := c.texBind[i]
		fmt.Fprintf(b, "layout(set = %d, binding = %d) uniform sampler2D %s;\n",
			e.Group, e.Index, t.Name)
	}
	for i, blk := range c.blocks {
		if blk.Stage&stage == 0 {
			continue
		}
		e := c.blockBind[i]
		qual := "std140"
		kw := "uniform"
		if blk.Storage {
			qual = "std430"
			kw = "buffer"
		}
		fmt.Fprintf(b, "layout(%s, set = %d, binding = %d) %s %s_block {\n",
			qual, e.Group, e.Index, kw, blk.Name)
		for _, f := range blk.Block.Fields() {
			typ := blockFieldType(f)
			if f.Count > 1 {
				fmt.Fprintf(b, "    %s %s[%d];\n", typ, f.Name, f.Count)
			} else {
				fmt.Fprintf(b, "    %s %s;\n", typ, f.Name)
			}
		}
		b.WriteString("};\n")
	}
}

func blockFieldType(f buffer.BlockField) string {
	info := f.Format.Lookup()
	switch info.CompType {
	case linear.CUint:
		switch info.Components {
		case 1:
			return "uint"
		case 2:
			return "uvec2"
		case 3:
			return "uvec3"
		default:
			return "uvec4"
		}
	case linear.CSint:
		switch info.Components {
		case 1:
			return "int"
		case 2:
			return "ivec2"
		case 3:
			return "ivec3"
		default:
			return "ivec4"
		}
	default:
		switch info.Components {
		case 1:
			return "float"
		case 2:
			return "vec2"
		case 3:
			return "vec3"
		default:
			return "vec4"
		}
	}
}

// VertexSource returns the final vertex shader source.
func (c *Craft) VertexSource() string { return c.vertSrc }

// FragmentSource returns the final fragment shader source.
func (c *Craft) FragmentSource() string { return c.fragSrc }

// Layout returns the pipeline's bind group layout.
func (c *Craft) Layout() []gpu.BindLayoutEntry {
	return append([]gpu.BindLayoutEntry(nil), c.layout...)
}

// GetUniformIndex returns the stable index of the named uniform for the
// given stage, or -1.
func (c *Craft) GetUniformIndex(name string, stage gpu.Stage) int {
	for i, u := range c.uniforms {
		if u.Name == name && u.Stage&stage != 0 {
			return i
		}
	}
	return -1
}

// GetTextureIndex returns the stable index of the named texture, or -1.
func (c *Craft) GetTextureIndex(name string) int {
	for i, t := range c.textures {
		if t.Name == name {
			return i
		}
	}
	return -1
}

// GetBlockIndex returns the stable index of the named block, or -1.
func (c *Craft) GetBlockIndex(name string) int {
	for i, b := range c.blocks {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// CompatInfo returns the platform fallback description for this craft.
func (c *Craft) CompatInfo() CompatInfo { return c.compat }
