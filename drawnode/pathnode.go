// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package drawnode

import (
	"github.com/gviegas/ngfx/craft"
	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/node"
	"github.com/gviegas/ngfx/path"
)

// DrawPathOpts configures a DrawPath node: an anti-aliased filled path
// with optional outline, glow and blur, all synthesized from a signed
// distance field.
type DrawPathOpts struct {
	Common
	Path         *path.Path
	PtSize       int
	DPI          int
	Color        Src // vec3
	Opacity      Src
	Outline      Src // outline half-width in SDF units
	OutlineColor Src // vec3
	Glow         Src
	GlowColor    Src // vec3
	Blur         Src
}

const pathFrag = `vec4 source_color(vec2 coords)
{
    vec2 fill_uv = fill_rect.xy + coords * fill_rect.zw;
    vec2 outline_uv = outline_rect.xy + coords * outline_rect.zw;
    float fill_d = texture(distmap, fill_uv).r;
    float outline_d = texture(distmap, outline_uv).r;

    float aa = max(fwidth(fill_d), 0.001) + blur;
    float fill = smoothstep(0.5 - aa, 0.5 + aa, fill_d);
    vec4 color = vec4(fill_color, 1.0) * fill * opacity;

    if (outline > 0.0) {
        float o = 1.0 - smoothstep(0.0, outline + aa, abs(outline_d - 0.5));
        color = mix(color, vec4(outline_color, 1.0) * opacity, o);
    }
    if (glow > 0.0) {
        float g = glow * smoothstep(0.0, 0.5, fill_d);
        color += vec4(glow_color, 1.0) * g;
    }
    return color;
}
`

type drawPathPriv struct {
	cm          *common
	distmap     *Distmap
	fillRect    [4]float32
	outlineRect [4]float32
	texIdx      int
}

func init() {
	node.RegisterClass(node.ClassDrawPath, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*DrawPathOpts)
			if !ok {
				return newErr(errs.InvalidArg, "DrawPath requires *DrawPathOpts")
			}
			if o.Path == nil || o.Path.State() != path.Initialized {
				return newErr(errs.InvalidArg, "DrawPath requires an initialized path")
			}
			ptSize, dpi := o.PtSize, o.DPI
			if ptSize <= 0 {
				ptSize = 64
			}
			if dpi <= 0 {
				dpi = 96
			}
			shape := ptSize * dpi / 72
			if shape < 1 {
				shape = 1
			}

			dm := NewDistmap()
			fill, err := dm.Register(o.Path, shape, shape)
			if err != nil {
				return err
			}
			outline, err := dm.Register(o.Path, shape, shape)
			if err != nil {
				return err
			}
			if err := dm.Finalize(); err != nil {
				return err
			}

			cm, err := buildCommon(&o.Common, "source_color", pathFrag,
				0, nil, []craft.Uniform{
					{Name: "fill_rect", Type: craft.Vec4, Stage: gpu.StageFragment},
					{Name: "outline_rect", Type: craft.Vec4, Stage: gpu.StageFragment},
					{Name: "fill_color", Type: craft.Vec3, Stage: gpu.StageFragment},
					{Name: "opacity", Type: craft.Float, Stage: gpu.StageFragment},
					{Name: "outline", Type: craft.Float, Stage: gpu.StageFragment},
					{Name: "outline_color", Type: craft.Vec3, Stage: gpu.StageFragment},
					{Name: "glow", Type: craft.Float, Stage: gpu.StageFragment},
					{Name: "glow_color", Type: craft.Vec3, Stage: gpu.StageFragment},
					{Name: "blur", Type: craft.Float, Stage: gpu.StageFragment},
				}, []craft.Texture{
					{Name: "distmap", Stage: gpu.StageFragment},
				}, nil, v.Label())
			if err != nil {
				return err
			}
			v.SetPriv(&drawPathPriv{
				cm:          cm,
				distmap:     dm,
				fillRect:    dm.UVRect(fill),
				outlineRect: dm.UVRect(outline),
				texIdx:      cm.texIdx["distmap"],
			})
			return nil
		},
		Prepare: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			p := v.Priv().(*drawPathPriv)
			if err := p.cm.prepare(r); err != nil {
				return err
			}
			return p.distmap.Prepare(r.Gpu())
		},
		Release: func(v *node.View, rc any) {
			p := v.Priv().(*drawPathPriv)
			p.cm.release()
			p.distmap.Release()
		},
		Draw: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			o := v.Opts().(*DrawPathOpts)
			p := v.Priv().(*drawPathPriv)
			g := v.Graph()
			return p.cm.draw(r, func() error {
				if err := p.cm.compat.UpdateImage(p.texIdx, p.distmap.Image()); err != nil {
					return err
				}
				for _, u := range []struct {
					name string
					data []float32
				}{
					{"fill_rect", p.fillRect[:]},
					{"outline_rect", p.outlineRect[:]},
					{"fill_color", o.Color.vec(g, 3)},
					{"opacity", []float32{o.Opacity.scalar(g)}},
					{"outline", []float32{o.Outline.scalar(g)}},
					{"outline_color", o.OutlineColor.vec(g, 3)},
					{"glow", []float32{o.Glow.scalar(g)}},
					{"glow_color", o.GlowColor.vec(g, 3)},
					{"blur", []float32{o.Blur.scalar(g)}},
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
