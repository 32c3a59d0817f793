// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package drawnode

import (
	"github.com/gviegas/ngfx/craft"
	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/node"
)

// DrawColorOpts configures a DrawColor node: a constant color scaled by
// opacity.
type DrawColorOpts struct {
	Common
	Color   Src // vec3
	Opacity Src // float
}

const colorFrag = `vec4 source_color(vec2 coords)
{
    return vec4(color, 1.0) * opacity;
}
`

type drawColorPriv struct {
	cm *common
}

func init() {
	node.RegisterClass(node.ClassDrawColor, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*DrawColorOpts)
			if !ok {
				return newErr(errs.InvalidArg, "DrawColor requires *DrawColorOpts")
			}
			cm, err := buildCommon(&o.Common, "source_color", colorFrag,
				0, nil, []craft.Uniform{
					{Name: "color", Type: craft.Vec3, Stage: gpu.StageFragment},
					{Name: "opacity", Type: craft.Float, Stage: gpu.StageFragment},
				}, nil, nil, v.Label())
			if err != nil {
				return err
			}
			v.SetPriv(&drawColorPriv{cm: cm})
			return nil
		},
		Prepare: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			return v.Priv().(*drawColorPriv).cm.prepare(r)
		},
		Release: func(v *node.View, rc any) {
			v.Priv().(*drawColorPriv).cm.release()
		},
		Draw: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			o := v.Opts().(*DrawColorOpts)
			p := v.Priv().(*drawColorPriv)
			g := v.Graph()
			return p.cm.draw(r, func() error {
				c := o.Color.resolve(g)
				if err := p.cm.uniform("color", c.Vec[:3]); err != nil {
					return err
				}
				return p.cm.uniform("opacity", []float32{o.Opacity.scalar(g)})
			})
		},
	})
}
