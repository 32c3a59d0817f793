// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package drawnode

import (
	"github.com/gviegas/ngfx/craft"
	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/node"
)

// DrawDisplaceOpts configures a DrawDisplace node: sample source at the
// coordinate offset by the displacement texture.
type DrawDisplaceOpts struct {
	Common
	Source       node.Handle
	Displacement node.Handle
}

const displaceFrag = `vec4 source_color(vec2 coords)
{
    vec2 offset = texture(displacement, coords).rg - 0.5;
    return texture(source, coords + offset);
}
`

type drawDisplacePriv struct {
	cm      *common
	srcIdx  int
	dispIdx int
}

func init() {
	node.RegisterClass(node.ClassDrawDisplace, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*DrawDisplaceOpts)
			if !ok {
				return newErr(errs.InvalidArg, "DrawDisplace requires *DrawDisplaceOpts")
			}
			if o.Source == node.Nil || o.Displacement == node.Nil {
				return newErr(errs.InvalidArg, "DrawDisplace requires source and displacement nodes")
			}
			cm, err := buildCommon(&o.Common, "source_color", displaceFrag,
				0, nil, nil, []craft.Texture{
					{Name: "source", Stage: gpu.StageFragment},
					{Name: "displacement", Stage: gpu.StageFragment},
				}, nil, v.Label())
			if err != nil {
				return err
			}
			v.SetPriv(&drawDisplacePriv{
				cm:      cm,
				srcIdx:  cm.texIdx["source"],
				dispIdx: cm.texIdx["displacement"],
			})
			return nil
		},
		Prepare: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			return v.Priv().(*drawDisplacePriv).cm.prepare(r)
		},
		Release: func(v *node.View, rc any) {
			v.Priv().(*drawDisplacePriv).cm.release()
		},
		Draw: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			o := v.Opts().(*DrawDisplaceOpts)
			p := v.Priv().(*drawDisplacePriv)
			g := v.Graph()
			src, ok := mediaImageOf(g, o.Source)
			if !ok {
				return newErr(errs.InvalidUsage, "DrawDisplace source has no image yet")
			}
			disp, ok := mediaImageOf(g, o.Displacement)
			if !ok {
				return newErr(errs.InvalidUsage, "DrawDisplace displacement has no image yet")
			}
			return p.cm.draw(r, func() error {
				if err := p.cm.compat.UpdateImage(p.srcIdx, src); err != nil {
					return err
				}
				return p.cm.compat.UpdateImage(p.dispIdx, disp)
			})
		},
	})
}
