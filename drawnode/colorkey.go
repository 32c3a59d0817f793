// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package drawnode

import (
	"github.com/gviegas/ngfx/buffer"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
	"github.com/gviegas/ngfx/node"
)

// ColorKeyOpts configures a ColorKey node: an R8 mask buffer selecting
// the pixels of an RGBA8 source within tolerance of a key color.
type ColorKeyOpts struct {
	Pixels    *buffer.Buffer // RGBA8Unorm
	Color     [3]float32
	Tolerance float32
}

type colorKeyPriv struct {
	mask *buffer.Buffer // R8Unorm, one element per source pixel
}

// MaskOf reads the mask buffer of the ColorKey node h, if h is one.
func MaskOf(g *node.Graph, h node.Handle) (*buffer.Buffer, bool) {
	if h == node.Nil {
		return nil, false
	}
	p, ok := g.ViewOf(h).Priv().(*colorKeyPriv)
	if !ok {
		return nil, false
	}
	return p.mask, true
}

func init() {
	node.RegisterClass(node.ClassColorKey, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*ColorKeyOpts)
			if !ok || o.Pixels == nil {
				return newErr(errs.InvalidArg, "ColorKey requires *ColorKeyOpts with a pixel buffer")
			}
			if o.Pixels.Format() != linear.RGBA8Unorm {
				return newErr(errs.InvalidArg, "ColorKey requires RGBA8 pixels")
			}
			if o.Tolerance < 0 {
				return newErr(errs.InvalidArg, "ColorKey tolerance must be non-negative")
			}
			mask, err := buffer.New(linear.R8Unorm, o.Pixels.Count())
			if err != nil {
				return err
			}
			mask.SetDynamic(true)
			v.SetPriv(&colorKeyPriv{mask: mask})
			return nil
		},
		Update: func(v *node.View, t float64, rc any) error {
			o := v.Opts().(*ColorKeyOpts)
			p := v.Priv().(*colorKeyPriv)
			pix := o.Pixels.Bytes()
			dst := p.mask.Bytes()
			tol2 := o.Tolerance * o.Tolerance
			for i := 0; i*4+3 < len(pix); i++ {
				dr := float32(pix[i*4])/255 - o.Color[0]
				dg := float32(pix[i*4+1])/255 - o.Color[1]
				db := float32(pix[i*4+2])/255 - o.Color[2]
				if dr*dr+dg*dg+db*db <= tol2 {
					dst[i] = 0xff
				} else {
					dst[i] = 0
				}
			}
			return nil
		},
	})
}
