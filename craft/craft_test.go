// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package craft

import (
	"strings"
	"testing"

	"github.com/gviegas/ngfx/buffer"
	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/gputest"
	"github.com/gviegas/ngfx/linear"
)

const testVert = `void ngl_vert_main()
{
    gl_Position = projection_matrix * modelview_matrix * vec4(position, 1.0);
    var_uvcoord = uvcoord;
}
`

const testFrag = `void ngl_frag_main()
{
    ngl_out_color = color;
}
`

func testDesc(t *testing.T) *Desc {
	t.Helper()
	vb, err := buffer.New(linear.RGB32Sfloat, 4)
	if err != nil {
		t.Fatalf("buffer.New: %v", err)
	}
	uvb, err := buffer.New(linear.RG32Sfloat, 4)
	if err != nil {
		t.Fatalf("buffer.New: %v", err)
	}
	return &Desc{
		Label:        "test",
		VertexBase:   testVert,
		FragmentBase: testFrag,
		Uniforms: []Uniform{
			{Name: "modelview_matrix", Type: Mat4, Stage: gpu.StageVertex},
			{Name: "projection_matrix", Type: Mat4, Stage: gpu.StageVertex},
			{Name: "opacity", Type: Float, Stage: gpu.StageFragment},
			{Name: "color", Type: Vec4, Stage: gpu.StageFragment},
		},
		Attributes: []Attribute{
			{Name: "position", Format: linear.RGB32Sfloat, Buffer: vb},
			{Name: "uvcoord", Format: linear.RG32Sfloat, Buffer: uvb},
		},
		IOVars: []IOVar{{Name: "var_uvcoord", Type: Vec2}},
	}
}

func TestUniformPacking(t *testing.T) {
	c, err := New(testDesc(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Vertex bucket: two mat4 back to back.
	cases := []struct {
		name   string
		stage  gpu.Stage
		offset int
	}{
		{"modelview_matrix", gpu.StageVertex, 0},
		{"projection_matrix", gpu.StageVertex, 64},
		// Fragment bucket: a float then a vec4; std140 pushes the
		// vec4 up to 16.
		{"opacity", gpu.StageFragment, 0},
		{"color", gpu.StageFragment, 16},
	}
	for _, cs := range cases {
		i := c.GetUniformIndex(cs.name, cs.stage)
		if i < 0 {
			t.Fatalf("GetUniformIndex(%q): not found", cs.name)
		}
		if off := c.uniforms[i].offset; off != cs.offset {
			t.Fatalf("%s offset:\nhave %d\nwant %d", cs.name, off, cs.offset)
		}
	}
	if i := c.GetUniformIndex("opacity", gpu.StageVertex); i != -1 {
		t.Fatalf("GetUniformIndex(opacity, vertex):\nhave %d\nwant -1", i)
	}
	if c.stageBlockSize[0] != 128 || c.stageBlockSize[1] != 32 {
		t.Fatalf("stage block sizes:\nhave %v\nwant [128 32 0]", c.stageBlockSize)
	}
}

func TestSourceSynthesis(t *testing.T) {
	c, err := New(testDesc(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	vert := c.VertexSource()
	for _, want := range []string{
		"layout(location = 0) in vec3 position;",
		"layout(location = 1) in vec2 uvcoord;",
		"layout(location = 0) out vec2 var_uvcoord;",
		"layout(std140, set = 0, binding = 0) uniform ngl_vert_block {",
		"mat4 modelview_matrix;",
		"void main()\n{\n    ngl_vert_main();\n}",
	} {
		if !strings.Contains(vert, want) {
			t.Fatalf("vertex source missing %q:\n%s", want, vert)
		}
	}
	frag := c.FragmentSource()
	for _, want := range []string{
		"layout(location = 0) in vec2 var_uvcoord;",
		"layout(location = 0) out vec4 ngl_out_color;",
		"layout(std140, set = 1, binding = 0) uniform ngl_frag_block {",
		"void main()\n{\n    ngl_frag_main();\n}",
	} {
		if !strings.Contains(frag, want) {
			t.Fatalf("fragment source missing %q:\n%s", want, frag)
		}
	}
}

func TestFragmentHasMain(t *testing.T) {
	desc := testDesc(t)
	desc.FragmentBase = "void main()\n{\n    ngl_out_color = vec4(1.0);\n}\n"
	desc.FragmentHasMain = true
	c, err := New(desc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if n := strings.Count(c.FragmentSource(), "void main()"); n != 1 {
		t.Fatalf("fragment mains:\nhave %d\nwant 1\n%s", n, c.FragmentSource())
	}
}

func TestLayoutBucketing(t *testing.T) {
	desc := testDesc(t)
	blk, err := buffer.NewBlock("stats", []buffer.BlockField{
		{Name: "max_rgb", Format: linear.RGBA32Uint},
	})
	if err != nil {
		t.Fatalf("buffer.NewBlock: %v", err)
	}
	desc.Textures = []Texture{{Name: "tex", Stage: gpu.StageFragment}}
	desc.Blocks = []Block{{Name: "stats", Stage: gpu.StageFragment, Block: blk, Storage: true}}
	c, err := New(desc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Fragment set: binding 0 is the uniform block, then the sampler,
	// then the storage block.
	if e := c.texBind[0]; e.Group != 1 || e.Index != 1 || e.Kind != gpu.BindSampledImage {
		t.Fatalf("texture binding:\nhave %+v", e)
	}
	if e := c.blockBind[0]; e.Group != 1 || e.Index != 2 || e.Kind != gpu.BindStorageBuffer {
		t.Fatalf("block binding:\nhave %+v", e)
	}
	if i := c.GetBlockIndex("stats"); i != 0 {
		t.Fatalf("GetBlockIndex:\nhave %d\nwant 0", i)
	}
	if i := c.GetTextureIndex("tex"); i != 0 {
		t.Fatalf("GetTextureIndex:\nhave %d\nwant 0", i)
	}
	if !strings.Contains(c.FragmentSource(), "layout(std430, set = 1, binding = 2) buffer stats_block {") {
		t.Fatalf("fragment source missing storage block:\n%s", c.FragmentSource())
	}
}

func TestCompatUniformStaging(t *testing.T) {
	ctx := gputest.New(64, 64)
	c, err := New(testDesc(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p, err := NewCompat(ctx, c)
	if err != nil {
		t.Fatalf("NewCompat: %v", err)
	}
	defer p.Destroy()

	i := c.GetUniformIndex("color", gpu.StageFragment)
	if err := p.UpdateUniform(i, []float32{1, 0, 0, 0.5}); err != nil {
		t.Fatalf("p.UpdateUniform: %v", err)
	}
	if err := p.Upload(); err != nil {
		t.Fatalf("p.Upload: %v", err)
	}
	// Fragment UBO: float opacity at 0, vec4 color at 16.
	ubo := p.stageUBO[1].(*gputest.Buffer)
	want := []byte{0, 0, 0x80, 0x3f} // 1.0f little-endian
	for j := range want {
		if ubo.Data[16+j] != want[j] {
			t.Fatalf("staged color[0]:\nhave % x\nwant % x", ubo.Data[16:20], want)
		}
	}
}

func TestCompatImageRevisionGate(t *testing.T) {
	ctx := gputest.New(64, 64)
	desc := testDesc(t)
	gi, _ := ctx.NewImage(linear.RGBA8Unorm, 4, 4, 1, 1, 1, 1, gpu.UsageSampled)
	img := buffer.NewImage(buffer.LayoutDefault, gi)
	desc.Textures = []Texture{{Name: "tex", Stage: gpu.StageFragment, Image: img}}
	c, err := New(desc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p, err := NewCompat(ctx, c)
	if err != nil {
		t.Fatalf("NewCompat: %v", err)
	}
	defer p.Destroy()

	ti := c.GetTextureIndex("tex")
	p.texBindings[ti].rebind = false
	p.texBindings[ti].rev = img.Revision()

	// Same revision: no rebind.
	if err := p.UpdateImage(ti, img); err != nil {
		t.Fatalf("p.UpdateImage: %v", err)
	}
	if p.texBindings[ti].rebind {
		t.Fatal("rebind set for unchanged revision")
	}

	// Bumped revision: rebind.
	img.Bump(1)
	if err := p.UpdateImage(ti, img); err != nil {
		t.Fatalf("p.UpdateImage: %v", err)
	}
	if !p.texBindings[ti].rebind {
		t.Fatal("rebind not set for changed revision")
	}
}
