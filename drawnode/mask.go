// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package drawnode

import (
	"github.com/gviegas/ngfx/craft"
	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/node"
)

// DrawMaskOpts configures a DrawMask node: content scaled by the mask's
// red channel, optionally inverted.
type DrawMaskOpts struct {
	Common
	Content  node.Handle
	Mask     node.Handle
	Inverted bool
}

const maskFrag = `vec4 source_color(vec2 coords)
{
    vec4 color = texture(content, coords);
    float m = texture(mask, coords).r;
    if (inverted != 0.0)
        m = 1.0 - m;
    return color * m;
}
`

type drawMaskPriv struct {
	cm         *common
	contentIdx int
	maskIdx    int
}

func init() {
	node.RegisterClass(node.ClassDrawMask, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*DrawMaskOpts)
			if !ok {
				return newErr(errs.InvalidArg, "DrawMask requires *DrawMaskOpts")
			}
			if o.Content == node.Nil || o.Mask == node.Nil {
				return newErr(errs.InvalidArg, "DrawMask requires content and mask nodes")
			}
			cm, err := buildCommon(&o.Common, "source_color", maskFrag,
				0, nil, []craft.Uniform{
					{Name: "inverted", Type: craft.Float, Stage: gpu.StageFragment},
				}, []craft.Texture{
					{Name: "content", Stage: gpu.StageFragment},
					{Name: "mask", Stage: gpu.StageFragment},
				}, nil, v.Label())
			if err != nil {
				return err
			}
			v.SetPriv(&drawMaskPriv{
				cm:         cm,
				contentIdx: cm.texIdx["content"],
				maskIdx:    cm.texIdx["mask"],
			})
			return nil
		},
		Prepare: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			return v.Priv().(*drawMaskPriv).cm.prepare(r)
		},
		Release: func(v *node.View, rc any) {
			v.Priv().(*drawMaskPriv).cm.release()
		},
		Draw: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			o := v.Opts().(*DrawMaskOpts)
			p := v.Priv().(*drawMaskPriv)
			g := v.Graph()
			content, ok := mediaImageOf(g, o.Content)
			if !ok {
				return newErr(errs.InvalidUsage, "DrawMask content has no image yet")
			}
			mask, ok := mediaImageOf(g, o.Mask)
			if !ok {
				return newErr(errs.InvalidUsage, "DrawMask mask has no image yet")
			}
			inv := float32(0)
			if o.Inverted {
				inv = 1
			}
			return p.cm.draw(r, func() error {
				if err := p.cm.compat.UpdateImage(p.contentIdx, content); err != nil {
					return err
				}
				if err := p.cm.compat.UpdateImage(p.maskIdx, mask); err != nil {
					return err
				}
				return p.cm.uniform("inverted", []float32{inv})
			})
		},
	})
}
