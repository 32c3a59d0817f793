// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import "math"

// CompType is the per-channel component type of a format.
type CompType int

// Component types.
const (
	CUnorm CompType = iota
	CSnorm
	CUint
	CSint
	CSfloat
)

// Format identifies a pixel/element format.
// This is the general-purpose format vocabulary shared by images
// (linear.Format rows with color/depth/stencil flags) and by typed
// CPU/GPU buffers (the R8/R16/R32 x {unorm,snorm,uint,sint,sfloat} x
// {1,2,3,4} component subset).
type Format int

// Formats. Grouped by bit depth: image pixel formats plus the
// buffer-element half (multi-component R8/R16/R32 variants).
const (
	// 8-bit channels.
	R8Unorm Format = iota
	R8Snorm
	R8Uint
	R8Sint
	RG8Unorm
	RG8Snorm
	RG8Uint
	RG8Sint
	RGB8Unorm
	RGB8Snorm
	RGB8Uint
	RGB8Sint
	RGBA8Unorm
	RGBA8Snorm
	RGBA8Uint
	RGBA8Sint
	RGBA8sRGB
	BGRA8Unorm
	BGRA8sRGB
	// 16-bit channels.
	R16Unorm
	R16Snorm
	R16Uint
	R16Sint
	R16Sfloat
	RG16Unorm
	RG16Snorm
	RG16Uint
	RG16Sint
	RG16Sfloat
	RGB16Uint
	RGB16Sint
	RGB16Sfloat
	RGBA16Uint
	RGBA16Sint
	RGBA16Sfloat
	// 32-bit channels.
	R32Uint
	R32Sint
	R32Sfloat
	RG32Uint
	RG32Sint
	RG32Sfloat
	RGB32Uint
	RGB32Sint
	RGB32Sfloat
	RGBA32Uint
	RGBA32Sint
	RGBA32Sfloat
	// Depth/stencil.
	D16Unorm
	D32Sfloat
	S8Uint
	D24UnormS8Uint
	D32SfloatS8Uint

	formatCount
)

// Info describes a format's shape.
type Info struct {
	Name       string
	Size       int // bytes per element/pixel
	Components int
	CompType   CompType
	Depth      bool
	Stencil    bool
	// GLInternal/GLFormat/GLType and VKFormat are backend lookup
	// keys. They are opaque to this package; concrete GpuCtx backends
	// interpret them.
	GLInternal uint32
	GLFormat   uint32
	GLType     uint32
	VKFormat   uint32
}

var formatTable = [formatCount]Info{
	R8Unorm:        {"R8_UNORM", 1, 1, CUnorm, false, false, 0x8229, 0x1903, 0x1401, 9},
	R8Snorm:        {"R8_SNORM", 1, 1, CSnorm, false, false, 0x8F94, 0x1903, 0x1400, 15},
	R8Uint:         {"R8_UINT", 1, 1, CUint, false, false, 0x8232, 0x8D94, 0x1401, 13},
	R8Sint:         {"R8_SINT", 1, 1, CSint, false, false, 0x8231, 0x8D94, 0x1400, 14},
	RG8Unorm:       {"RG8_UNORM", 2, 2, CUnorm, false, false, 0x822B, 0x8227, 0x1401, 16},
	RG8Snorm:       {"RG8_SNORM", 2, 2, CSnorm, false, false, 0x8F95, 0x8227, 0x1400, 22},
	RG8Uint:        {"RG8_UINT", 2, 2, CUint, false, false, 0x8238, 0x8228, 0x1401, 20},
	RG8Sint:        {"RG8_SINT", 2, 2, CSint, false, false, 0x8237, 0x8228, 0x1400, 21},
	RGB8Unorm:      {"RGB8_UNORM", 3, 3, CUnorm, false, false, 0x8051, 0x1907, 0x1401, 23},
	RGB8Snorm:      {"RGB8_SNORM", 3, 3, CSnorm, false, false, 0x8F96, 0x1907, 0x1400, 29},
	RGB8Uint:       {"RGB8_UINT", 3, 3, CUint, false, false, 0x8D7D, 0x8D98, 0x1401, 27},
	RGB8Sint:       {"RGB8_SINT", 3, 3, CSint, false, false, 0x8D8F, 0x8D98, 0x1400, 28},
	RGBA8Unorm:     {"RGBA8_UNORM", 4, 4, CUnorm, false, false, 0x8058, 0x1908, 0x1401, 37},
	RGBA8Snorm:     {"RGBA8_SNORM", 4, 4, CSnorm, false, false, 0x8F97, 0x1908, 0x1400, 43},
	RGBA8Uint:      {"RGBA8_UINT", 4, 4, CUint, false, false, 0x8D7C, 0x8D99, 0x1401, 41},
	RGBA8Sint:      {"RGBA8_SINT", 4, 4, CSint, false, false, 0x8D8E, 0x8D99, 0x1400, 42},
	RGBA8sRGB:      {"RGBA8_SRGB", 4, 4, CUnorm, false, false, 0x8C43, 0x1908, 0x1401, 43},
	BGRA8Unorm:     {"BGRA8_UNORM", 4, 4, CUnorm, false, false, 0x8058, 0x80E1, 0x1401, 44},
	BGRA8sRGB:      {"BGRA8_SRGB", 4, 4, CUnorm, false, false, 0x8C43, 0x80E1, 0x1401, 50},
	R16Unorm:       {"R16_UNORM", 2, 1, CUnorm, false, false, 0x822A, 0x1903, 0x1403, 70},
	R16Snorm:       {"R16_SNORM", 2, 1, CSnorm, false, false, 0x8F98, 0x1903, 0x1402, 76},
	R16Uint:        {"R16_UINT", 2, 1, CUint, false, false, 0x8234, 0x8D94, 0x1403, 74},
	R16Sint:        {"R16_SINT", 2, 1, CSint, false, false, 0x8233, 0x8D94, 0x1402, 75},
	R16Sfloat:      {"R16_SFLOAT", 2, 1, CSfloat, false, false, 0x822D, 0x1903, 0x140B, 76},
	RG16Unorm:      {"RG16_UNORM", 4, 2, CUnorm, false, false, 0x822C, 0x8227, 0x1403, 77},
	RG16Snorm:      {"RG16_SNORM", 4, 2, CSnorm, false, false, 0x8F99, 0x8227, 0x1402, 83},
	RG16Uint:       {"RG16_UINT", 4, 2, CUint, false, false, 0x823A, 0x8228, 0x1403, 81},
	RG16Sint:       {"RG16_SINT", 4, 2, CSint, false, false, 0x8239, 0x8228, 0x1402, 82},
	RG16Sfloat:     {"RG16_SFLOAT", 4, 2, CSfloat, false, false, 0x822F, 0x8227, 0x140B, 83},
	RGB16Uint:      {"RGB16_UINT", 6, 3, CUint, false, false, 0x8D89, 0x8D98, 0x1403, 88},
	RGB16Sint:      {"RGB16_SINT", 6, 3, CSint, false, false, 0x8D89, 0x8D98, 0x1402, 89},
	RGB16Sfloat:    {"RGB16_SFLOAT", 6, 3, CSfloat, false, false, 0x881B, 0x1907, 0x140B, 90},
	RGBA16Uint:     {"RGBA16_UINT", 8, 4, CUint, false, false, 0x8D76, 0x8D99, 0x1403, 95},
	RGBA16Sint:     {"RGBA16_SINT", 8, 4, CSint, false, false, 0x8D88, 0x8D99, 0x1402, 96},
	RGBA16Sfloat:   {"RGBA16_SFLOAT", 8, 4, CSfloat, false, false, 0x881A, 0x1908, 0x140B, 97},
	R32Uint:        {"R32_UINT", 4, 1, CUint, false, false, 0x8236, 0x8D94, 0x1405, 98},
	R32Sint:        {"R32_SINT", 4, 1, CSint, false, false, 0x8235, 0x8D94, 0x1404, 99},
	R32Sfloat:      {"R32_SFLOAT", 4, 1, CSfloat, false, false, 0x822E, 0x1903, 0x1406, 100},
	RG32Uint:       {"RG32_UINT", 8, 2, CUint, false, false, 0x823C, 0x8228, 0x1405, 101},
	RG32Sint:       {"RG32_SINT", 8, 2, CSint, false, false, 0x823B, 0x8228, 0x1404, 102},
	RG32Sfloat:     {"RG32_SFLOAT", 8, 2, CSfloat, false, false, 0x8230, 0x8227, 0x1406, 103},
	RGB32Uint:      {"RGB32_UINT", 12, 3, CUint, false, false, 0x8D71, 0x8D98, 0x1405, 104},
	RGB32Sint:      {"RGB32_SINT", 12, 3, CSint, false, false, 0x8D83, 0x8D98, 0x1404, 105},
	RGB32Sfloat:    {"RGB32_SFLOAT", 12, 3, CSfloat, false, false, 0x8815, 0x1907, 0x1406, 106},
	RGBA32Uint:     {"RGBA32_UINT", 16, 4, CUint, false, false, 0x8D70, 0x8D99, 0x1405, 107},
	RGBA32Sint:     {"RGBA32_SINT", 16, 4, CSint, false, false, 0x8D82, 0x8D99, 0x1404, 108},
	RGBA32Sfloat:   {"RGBA32_SFLOAT", 16, 4, CSfloat, false, false, 0x8814, 0x1908, 0x1406, 109},
	D16Unorm:       {"D16_UNORM", 2, 1, CUnorm, true, false, 0x81A5, 0x1902, 0x1403, 124},
	D32Sfloat:      {"D32_SFLOAT", 4, 1, CSfloat, true, false, 0x8CAC, 0x1902, 0x1406, 126},
	S8Uint:         {"S8_UINT", 1, 1, CUint, false, true, 0x8D48, 0x1901, 0x1401, 127},
	D24UnormS8Uint: {"D24_UNORM_S8_UINT", 4, 2, CUnorm, true, true, 0x88F0, 0x84F9, 0x84FA, 129},
	D32SfloatS8Uint: {
		"D32_SFLOAT_S8_UINT", 8, 2, CSfloat, true, true, 0x8CAD, 0x84F9, 0x8DAD, 130,
	},
}

// Lookup returns the Info describing f.
// It panics if f is not one of the defined Format constants - this is a
// programmer error (enum-exhaustive switch), not a user-reachable one.
func (f Format) Lookup() Info {
	if f < 0 || f >= formatCount {
		panic("linear: undefined Format constant")
	}
	return formatTable[f]
}

// IsColor reports whether f is a color format.
func (f Format) IsColor() bool {
	i := f.Lookup()
	return !i.Depth && !i.Stencil
}

// IsDepth reports whether f carries a depth component.
func (f Format) IsDepth() bool { return f.Lookup().Depth }

// IsStencil reports whether f carries a stencil component.
func (f Format) IsStencil() bool { return f.Lookup().Stencil }

// Size returns the size in bytes of one element/pixel of f.
func (f Format) Size() int { return f.Lookup().Size }

// String returns f's symbolic name.
func (f Format) String() string { return f.Lookup().Name }

// SrgbToLinear converts a single sRGB-encoded channel value in [0,1] to
// linear light.
func SrgbToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return pow32((c+0.055)/1.055, 2.4)
}

// LinearToSrgb converts a single linear-light channel value in [0,1] to
// sRGB encoding.
func LinearToSrgb(c float32) float32 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*pow32(c, 1/2.4) - 0.055
}

func pow32(x, y float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Pow(float64(x), float64(y)))
}
