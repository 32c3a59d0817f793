// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package drawnode

import (
	"github.com/gviegas/ngfx/craft"
	"github.com/gviegas/ngfx/filter"
	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/node"
)

// GradientMode selects DrawGradient's ramp shape.
type GradientMode int

// Gradient modes.
const (
	GradientRamp GradientMode = iota
	GradientRadial
)

// DrawGradientOpts configures a DrawGradient node: a two-point ramp or
// radial gradient, optionally mixed in linear light.
type DrawGradientOpts struct {
	Common
	Color0, Color1     Src // vec3
	Opacity0, Opacity1 Src // float
	Pos0, Pos1         Src // vec2
	Mode               GradientMode
	LinearMix          bool
}

const gradientFrag = `vec4 source_color(vec2 coords)
{
    float t;
    if (radial != 0.0) {
        float span = distance(pos0, pos1);
        t = span > 0.0 ? clamp(distance(coords, pos0) / span, 0.0, 1.0) : 0.0;
    } else {
        vec2 v = pos1 - pos0;
        float len2 = dot(v, v);
        t = len2 > 0.0 ? clamp(dot(coords - pos0, v) / len2, 0.0, 1.0) : 0.0;
    }
    vec3 c0 = color0;
    vec3 c1 = color1;
    if (linear_mix != 0.0) {
        c0 = ngli_srgb2linear(c0);
        c1 = ngli_srgb2linear(c1);
    }
    vec3 c = mix(c0, c1, t);
    if (linear_mix != 0.0)
        c = ngli_linear2srgb(c);
    float a = mix(opacity0, opacity1, t);
    return vec4(c, 1.0) * a;
}
`

type drawGradientPriv struct {
	cm *common
}

func init() {
	node.RegisterClass(node.ClassDrawGradient, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*DrawGradientOpts)
			if !ok {
				return newErr(errs.InvalidArg, "DrawGradient requires *DrawGradientOpts")
			}
			cm, err := buildCommon(&o.Common, "source_color", gradientFrag,
				filter.HelperSRGB, nil, []craft.Uniform{
					{Name: "color0", Type: craft.Vec3, Stage: gpu.StageFragment},
					{Name: "color1", Type: craft.Vec3, Stage: gpu.StageFragment},
					{Name: "opacity0", Type: craft.Float, Stage: gpu.StageFragment},
					{Name: "opacity1", Type: craft.Float, Stage: gpu.StageFragment},
					{Name: "pos0", Type: craft.Vec2, Stage: gpu.StageFragment},
					{Name: "pos1", Type: craft.Vec2, Stage: gpu.StageFragment},
					{Name: "radial", Type: craft.Float, Stage: gpu.StageFragment},
					{Name: "linear_mix", Type: craft.Float, Stage: gpu.StageFragment},
				}, nil, nil, v.Label())
			if err != nil {
				return err
			}
			v.SetPriv(&drawGradientPriv{cm: cm})
			return nil
		},
		Prepare: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			return v.Priv().(*drawGradientPriv).cm.prepare(r)
		},
		Release: func(v *node.View, rc any) {
			v.Priv().(*drawGradientPriv).cm.release()
		},
		Draw: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			o := v.Opts().(*DrawGradientOpts)
			p := v.Priv().(*drawGradientPriv)
			g := v.Graph()
			radial := float32(0)
			if o.Mode == GradientRadial {
				radial = 1
			}
			lin := float32(0)
			if o.LinearMix {
				lin = 1
			}
			return p.cm.draw(r, func() error {
				c0 := o.Color0.resolve(g)
				c1 := o.Color1.resolve(g)
				p0 := o.Pos0.resolve(g)
				p1 := o.Pos1.resolve(g)
				for _, u := range []struct {
					name string
					data []float32
				}{
					{"color0", c0.Vec[:3]},
					{"color1", c1.Vec[:3]},
					{"opacity0", []float32{o.Opacity0.scalar(g)}},
					{"opacity1", []float32{o.Opacity1.scalar(g)}},
					{"pos0", p0.Vec[:2]},
					{"pos1", p1.Vec[:2]},
					{"radial", []float32{radial}},
					{"linear_mix", []float32{lin}},
				} {
					if err := p.cm.uniform(u.name, u.data); err != nil {
						return err
					}
				}
				return nil
			})
		},
	})
}

// DrawGradient4Opts configures a DrawGradient4 node: a bilinear blend of
// four corner colors.
type DrawGradient4Opts struct {
	Common
	ColorTL, ColorTR, ColorBL, ColorBR         Src // vec3
	OpacityTL, OpacityTR, OpacityBL, OpacityBR Src
	LinearMix                                  bool
}

const gradient4Frag = `vec4 source_color(vec2 coords)
{
    vec3 tl = color_tl;
    vec3 tr = color_tr;
    vec3 bl = color_bl;
    vec3 br = color_br;
    if (linear_mix != 0.0) {
        tl = ngli_srgb2linear(tl);
        tr = ngli_srgb2linear(tr);
        bl = ngli_srgb2linear(bl);
        br = ngli_srgb2linear(br);
    }
    vec3 top = mix(tl, tr, coords.x);
    vec3 bot = mix(bl, br, coords.x);
    vec3 c = mix(top, bot, coords.y);
    if (linear_mix != 0.0)
        c = ngli_linear2srgb(c);
    float a = mix(mix(opacity_tl, opacity_tr, coords.x),
                  mix(opacity_bl, opacity_br, coords.x), coords.y);
    return vec4(c, 1.0) * a;
}
`

type drawGradient4Priv struct {
	cm *common
}

func init() {
	node.RegisterClass(node.ClassDrawGradient4, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*DrawGradient4Opts)
			if !ok {
				return newErr(errs.InvalidArg, "DrawGradient4 requires *DrawGradient4Opts")
			}
			cm, err := buildCommon(&o.Common, "source_color", gradient4Frag,
				filter.HelperSRGB, nil, []craft.Uniform{
					{Name: "color_tl", Type: craft.Vec3, Stage: gpu.StageFragment},
					{Name: "color_tr", Type: craft.Vec3, Stage: gpu.StageFragment},
					{Name: "color_bl", Type: craft.Vec3, Stage: gpu.StageFragment},
					{Name: "color_br", Type: craft.Vec3, Stage: gpu.StageFragment},
					{Name: "opacity_tl", Type: craft.Float, Stage: gpu.StageFragment},
					{Name: "opacity_tr", Type: craft.Float, Stage: gpu.StageFragment},
					{Name: "opacity_bl", Type: craft.Float, Stage: gpu.StageFragment},
					{Name: "opacity_br", Type: craft.Float, Stage: gpu.StageFragment},
					{Name: "linear_mix", Type: craft.Float, Stage: gpu.StageFragment},
				}, nil, nil, v.Label())
			if err != nil {
				return err
			}
			v.SetPriv(&drawGradient4Priv{cm: cm})
			return nil
		},
		Prepare: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			return v.Priv().(*drawGradient4Priv).cm.prepare(r)
		},
		Release: func(v *node.View, rc any) {
			v.Priv().(*drawGradient4Priv).cm.release()
		},
		Draw: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			o := v.Opts().(*DrawGradient4Opts)
			p := v.Priv().(*drawGradient4Priv)
			g := v.Graph()
			lin := float32(0)
			if o.LinearMix {
				lin = 1
			}
			return p.cm.draw(r, func() error {
				for _, u := range []struct {
					name string
					data []float32
				}{
					{"color_tl", o.ColorTL.vec(g, 3)},
					{"color_tr", o.ColorTR.vec(g, 3)},
					{"color_bl", o.ColorBL.vec(g, 3)},
					{"color_br", o.ColorBR.vec(g, 3)},
					{"opacity_tl", []float32{o.OpacityTL.scalar(g)}},
					{"opacity_tr", []float32{o.OpacityTR.scalar(g)}},
					{"opacity_bl", []float32{o.OpacityBL.scalar(g)}},
					{"opacity_br", []float32{o.OpacityBR.scalar(g)}},
					{"linear_mix", []float32{lin}},
				} {
					if err := p.cm.uniform(u.name, u.data); err != nil {
						return err
					}
				}
				return nil
			})
		},
	})
}
