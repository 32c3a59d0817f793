// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package filter implements the fragment filter chain: named shader
// fragments, each defining one color-transform function, composed with
// a base source into a single fragment shader.
//
// Composition works over a structured list of snippets and per-filter
// calls; GLSL text is produced once, at Chain.Compose time.
package filter

import (
	"fmt"

	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
)

const pkgName = "filter"

func newErr(code errs.Code, reason string) error { return errs.New(pkgName, code, reason) }

// Helpers is a bitmask naming the common snippet blocks a filter's code
// depends on. Compose prepends each required block exactly once.
type Helpers uint

// Helper blocks.
const (
	HelperMisc Helpers = 1 << iota
	HelperSRGB
	HelperOkLab
	HelperNoise
)

// ResourceType is the GLSL type of a filter uniform.
type ResourceType int

// Resource types.
const (
	ResFloat ResourceType = iota
	ResVec2
	ResVec3
	ResVec4
	ResInt
)

func (r ResourceType) glsl() string {
	switch r {
	case ResFloat:
		return "float"
	case ResVec2:
		return "vec2"
	case ResVec3:
		return "vec3"
	case ResVec4:
		return "vec4"
	case ResInt:
		return "int"
	default:
		return "float"
	}
}

// Resource is one named uniform a filter's function consumes, with its
// current CPU-side value (up to 4 floats, or 1 for ResInt/ResFloat).
type Resource struct {
	Name  string
	Type  ResourceType
	Value [4]float32
}

// Filter holds one named shader fragment: Code defines a function
// vec4 filter_<name>(vec4 color, vec2 coords, ...resources) and
// Resources lists the uniforms threaded as trailing arguments.
type Filter struct {
	Name      string
	Code      string
	Helpers   Helpers
	Resources []Resource
}

// Alpha returns a filter forcing the alpha channel to a constant.
func Alpha(alpha float32) *Filter {
	return &Filter{
		Name: "alpha",
		Code: `vec4 filter_alpha(vec4 color, vec2 coords, float alpha)
{
    color.a = alpha;
    return color;
}
`,
		Resources: []Resource{{Name: "alpha", Type: ResFloat, Value: [4]float32{alpha}}},
	}
}

// Opacity returns a filter scaling the premultiplied color by a
// constant opacity.
func Opacity(opacity float32) *Filter {
	return &Filter{
		Name: "opacity",
		Code: `vec4 filter_opacity(vec4 color, vec2 coords, float opacity)
{
    return color * opacity;
}
`,
		Resources: []Resource{{Name: "opacity", Type: ResFloat, Value: [4]float32{opacity}}},
	}
}

// InverseAlpha returns a filter replacing alpha with its complement.
func InverseAlpha() *Filter {
	return &Filter{
		Name: "inversealpha",
		Code: `vec4 filter_inversealpha(vec4 color, vec2 coords)
{
    color.a = 1.0 - color.a;
    return color;
}
`,
	}
}

// Premult returns a filter multiplying RGB by alpha.
func Premult() *Filter {
	return &Filter{
		Name: "premult",
		Code: `vec4 filter_premult(vec4 color, vec2 coords)
{
    color.rgb *= color.a;
    return color;
}
`,
	}
}

// Contrast returns a filter rescaling RGB around a pivot.
func Contrast(contrast, pivot float32) *Filter {
	return &Filter{
		Name: "contrast",
		Code: `vec4 filter_contrast(vec4 color, vec2 coords, float contrast, float pivot)
{
    color.rgb = (color.rgb - pivot) * contrast + pivot;
    return color;
}
`,
		Resources: []Resource{
			{Name: "contrast", Type: ResFloat, Value: [4]float32{contrast}},
			{Name: "pivot", Type: ResFloat, Value: [4]float32{pivot}},
		},
	}
}

// Exposure returns a filter scaling RGB by 2^exposure.
func Exposure(exposure float32) *Filter {
	return &Filter{
		Name: "exposure",
		Code: `vec4 filter_exposure(vec4 color, vec2 coords, float exposure)
{
    color.rgb *= exp2(exposure);
    return color;
}
`,
		Resources: []Resource{{Name: "exposure", Type: ResFloat, Value: [4]float32{exposure}}},
	}
}

// Saturation returns a filter mixing RGB against its luma.
func Saturation(saturation float32) *Filter {
	return &Filter{
		Name:    "saturation",
		Helpers: HelperMisc,
		Code: `vec4 filter_saturation(vec4 color, vec2 coords, float saturation)
{
    color.rgb = mix(vec3(ngli_luma(color.rgb)), color.rgb, saturation);
    return color;
}
`,
		Resources: []Resource{{Name: "saturation", Type: ResFloat, Value: [4]float32{saturation}}},
	}
}

// SRGB2Linear returns a filter decoding sRGB RGB channels to linear.
func SRGB2Linear() *Filter {
	return &Filter{
		Name:    "srgb2linear",
		Helpers: HelperSRGB,
		Code: `vec4 filter_srgb2linear(vec4 color, vec2 coords)
{
    color.rgb = ngli_srgb2linear(color.rgb);
    return color;
}
`,
	}
}

// Linear2sRGB returns a filter encoding linear RGB channels to sRGB.
func Linear2sRGB() *Filter {
	return &Filter{
		Name:    "linear2srgb",
		Helpers: HelperSRGB,
		Code: `vec4 filter_linear2srgb(vec4 color, vec2 coords)
{
    color.rgb = ngli_linear2srgb(color.rgb);
    return color;
}
`,
	}
}

// ColorMap returns a filter remapping luma through a two-stop color
// ramp.
func ColorMap(from, to linear.V3) *Filter {
	return &Filter{
		Name:    "colormap",
		Helpers: HelperMisc,
		Code: `vec4 filter_colormap(vec4 color, vec2 coords, vec3 from_color, vec3 to_color)
{
    color.rgb = mix(from_color, to_color, ngli_luma(color.rgb));
    return color;
}
`,
		Resources: []Resource{
			{Name: "from_color", Type: ResVec3, Value: [4]float32{from[0], from[1], from[2]}},
			{Name: "to_color", Type: ResVec3, Value: [4]float32{to[0], to[1], to[2]}},
		},
	}
}

// Selector returns a filter zeroing alpha outside a luma range.
func Selector(rangeLo, rangeHi float32) *Filter {
	if rangeHi < rangeLo {
		rangeLo, rangeHi = rangeHi, rangeLo
	}
	return &Filter{
		Name:    "selector",
		Helpers: HelperMisc,
		Code: `vec4 filter_selector(vec4 color, vec2 coords, vec2 range)
{
    float y = ngli_luma(color.rgb);
    if (y < range.x || y > range.y)
        color.a = 0.0;
    return color;
}
`,
		Resources: []Resource{{Name: "range", Type: ResVec2, Value: [4]float32{rangeLo, rangeHi}}},
	}
}

// validate checks the pieces Compose relies on.
func (f *Filter) validate() error {
	if f.Name == "" {
		return newErr(errs.InvalidArg, "filter has no name")
	}
	want := "filter_" + f.Name
	if f.Code == "" {
		return newErr(errs.InvalidArg, fmt.Sprintf("filter %q has no code", f.Name))
	}
	if !containsToken(f.Code, want) {
		return newErr(errs.InvalidData,
			fmt.Sprintf("filter %q code does not define %s", f.Name, want))
	}
	return nil
}
