// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package drawnode

import (
	"github.com/gviegas/ngfx/node"
)

// Parameter schemas for the classes this package implements. The
// schemas describe the wire-level view of each opts struct for external
// tooling (scene serialization round-trips through these tables).

var blendChoices = []node.Choice{
	{Name: "default", Value: int(BlendDefault)},
	{Name: "src_over", Value: int(BlendSrcOver)},
	{Name: "dst_over", Value: int(BlendDstOver)},
	{Name: "src_in", Value: int(BlendSrcIn)},
	{Name: "dst_in", Value: int(BlendDstIn)},
	{Name: "src_out", Value: int(BlendSrcOut)},
	{Name: "dst_out", Value: int(BlendDstOut)},
	{Name: "src_atop", Value: int(BlendSrcAtop)},
	{Name: "dst_atop", Value: int(BlendDstAtop)},
	{Name: "xor", Value: int(BlendXor)},
}

// commonParams is the parameter prefix every draw node shares.
func commonParams() node.Schema {
	return node.Schema{
		{Name: "blending", Type: node.TypeSelect, Default: "default", Choices: blendChoices},
		{Name: "geometry", Type: node.TypeNode, NodeClasses: []node.Class{
			node.ClassGeometry, node.ClassCircle, node.ClassTriangle, node.ClassQuad,
		}},
		{Name: "filters", Type: node.TypeNodeList},
	}
}

func init() {
	node.RegisterSchema(node.ClassDrawColor, append(commonParams(), node.Schema{
		{Name: "color", Type: node.TypeVec3, Default: [3]float32{1, 1, 1},
			Constraints: node.AllowNode | node.AllowLiveChange},
		{Name: "opacity", Type: node.TypeF32, Default: float32(1),
			Constraints: node.AllowNode | node.AllowLiveChange},
	}...))

	node.RegisterSchema(node.ClassDrawGradient, append(commonParams(), node.Schema{
		{Name: "color0", Type: node.TypeVec3, Constraints: node.AllowNode},
		{Name: "color1", Type: node.TypeVec3, Constraints: node.AllowNode},
		{Name: "opacity0", Type: node.TypeF32, Default: float32(1), Constraints: node.AllowNode},
		{Name: "opacity1", Type: node.TypeF32, Default: float32(1), Constraints: node.AllowNode},
		{Name: "pos0", Type: node.TypeVec2, Constraints: node.AllowNode},
		{Name: "pos1", Type: node.TypeVec2, Default: [2]float32{1, 1}, Constraints: node.AllowNode},
		{Name: "mode", Type: node.TypeSelect, Default: "ramp", Choices: []node.Choice{
			{Name: "ramp", Value: int(GradientRamp)},
			{Name: "radial", Value: int(GradientRadial)},
		}},
		{Name: "linear", Type: node.TypeBool},
	}...))

	node.RegisterSchema(node.ClassDrawNoise, append(commonParams(), node.Schema{
		{Name: "type", Type: node.TypeSelect, Default: "perlin", Choices: []node.Choice{
			{Name: "perlin", Value: int(NoisePerlin)},
			{Name: "blocky", Value: int(NoiseBlocky)},
		}},
		{Name: "octaves", Type: node.TypeI32, Default: int32(3)},
		{Name: "lacunarity", Type: node.TypeF32, Default: float32(2)},
		{Name: "gain", Type: node.TypeF32, Default: float32(0.5)},
		{Name: "seed", Type: node.TypeU32, Default: uint32(0)},
		{Name: "scale", Type: node.TypeF32, Default: float32(1), Constraints: node.AllowNode},
		{Name: "evolution", Type: node.TypeF32, Constraints: node.AllowNode},
	}...))

	node.RegisterSchema(node.ClassDrawTexture, append(commonParams(), node.Schema{
		{Name: "tex", Type: node.TypeNode, Constraints: node.NonNull | node.Constructor,
			NodeClasses: []node.Class{
				node.ClassTexture2D, node.ClassMedia, node.ClassRenderToTexture,
			}},
	}...))

	node.RegisterSchema(node.ClassCircle, node.Schema{
		{Name: "radius", Type: node.TypeF32, Default: float32(1)},
		{Name: "npoints", Type: node.TypeI32, Default: int32(16)},
	})

	node.RegisterSchema(node.ClassQuad, node.Schema{
		{Name: "corner", Type: node.TypeVec3, Default: [3]float32{-0.5, -0.5, 0}},
		{Name: "width", Type: node.TypeVec3, Default: [3]float32{1, 0, 0}},
		{Name: "height", Type: node.TypeVec3, Default: [3]float32{0, 1, 0}},
		{Name: "uv_corner", Type: node.TypeVec2},
		{Name: "uv_width", Type: node.TypeVec2, Default: [2]float32{1, 0}},
		{Name: "uv_height", Type: node.TypeVec2, Default: [2]float32{0, 1}},
	})

	node.RegisterSchema(node.ClassTexture2D, node.Schema{
		{Name: "filename", Type: node.TypeStr, Constraints: node.Filepath},
		{Name: "data", Type: node.TypeData},
		{Name: "format", Type: node.TypeI32},
		{Name: "width", Type: node.TypeI32},
		{Name: "height", Type: node.TypeI32},
	})

	node.RegisterSchema(node.ClassPath, node.Schema{
		{Name: "keyframes", Type: node.TypeNodeList, Constraints: node.NonNull | node.Constructor,
			NodeClasses: []node.Class{
				node.ClassPathKeyMove, node.ClassPathKeyLine,
				node.ClassPathKeyBezier2, node.ClassPathKeyBezier3,
				node.ClassPathKeyClose,
			}},
		{Name: "precision", Type: node.TypeI32, Default: int32(64)},
	})
}
