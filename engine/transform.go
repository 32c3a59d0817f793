// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/ngfx/buffer"
	"github.com/gviegas/ngfx/drawnode"
	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
	"github.com/gviegas/ngfx/node"
)

// The transform/camera/grouping node classes live here rather than in
// drawnode: they exist to manipulate the context's matrix and
// rendertarget stacks, which only this package owns.

func asContext(rc any) (*Context, error) {
	c, ok := rc.(*Context)
	if !ok {
		return nil, newErr(errs.InvalidUsage, "node evaluated outside a render context")
	}
	return c, nil
}

// SceneOpts configures the scene root: an optional output aspect ratio
// used to letterbox the viewport.
type SceneOpts struct {
	AspectRatio [2]int
}

// TransformOpts configures a Transform node: an explicit matrix applied
// to the subtree.
type TransformOpts struct {
	Matrix linear.M4
}

// RotateOpts configures a Rotate node.
type RotateOpts struct {
	Angle  drawnode.Src // radians
	Axis   linear.V3
	Anchor linear.V3
}

// ScaleOpts configures a Scale node.
type ScaleOpts struct {
	Factors drawnode.Src // vec3
}

// TranslateOpts configures a Translate node.
type TranslateOpts struct {
	Vector drawnode.Src // vec3
}

// SkewOpts configures a Skew node.
type SkewOpts struct {
	Angles drawnode.Src // vec2: x and y shear angles, radians
	Anchor linear.V3
}

// matrixDraw brackets the subtree draw with a modelview push.
func matrixDraw(m *linear.M4, v *node.View, rc any) error {
	c, err := asContext(rc)
	if err != nil {
		return err
	}
	pop := c.mv.push(m)
	defer pop()
	return v.DrawChildren(rc)
}

func init() {
	node.RegisterClass(node.ClassSceneRoot, &node.Dispatch{
		Init: func(v *node.View) error {
			if _, ok := v.Opts().(*SceneOpts); v.Opts() != nil && !ok {
				return newErr(errs.InvalidArg, "scene root requires *SceneOpts or nil")
			}
			return nil
		},
	})

	node.RegisterClass(node.ClassTransform, &node.Dispatch{
		Init: func(v *node.View) error {
			if _, ok := v.Opts().(*TransformOpts); !ok {
				return newErr(errs.InvalidArg, "Transform requires *TransformOpts")
			}
			return nil
		},
		Draw: func(v *node.View, rc any) error {
			o := v.Opts().(*TransformOpts)
			return matrixDraw(&o.Matrix, v, rc)
		},
	})

	node.RegisterClass(node.ClassRotate, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*RotateOpts)
			if !ok {
				return newErr(errs.InvalidArg, "Rotate requires *RotateOpts")
			}
			if o.Axis.Len() == 0 {
				return newErr(errs.InvalidArg, "Rotate requires a non-zero axis")
			}
			return nil
		},
		Draw: func(v *node.View, rc any) error {
			o := v.Opts().(*RotateOpts)
			var m linear.M4
			angle := o.Angle.Value.Scalar
			if o.Angle.Node != node.Nil {
				if val, ok := drawnode.ValueOf(v.Graph(), o.Angle.Node); ok {
					angle = val.Scalar
				}
			}
			m.Rotate(angle, &o.Axis, &o.Anchor)
			return matrixDraw(&m, v, rc)
		},
	})

	node.RegisterClass(node.ClassScale, &node.Dispatch{
		Init: func(v *node.View) error {
			if _, ok := v.Opts().(*ScaleOpts); !ok {
				return newErr(errs.InvalidArg, "Scale requires *ScaleOpts")
			}
			return nil
		},
		Draw: func(v *node.View, rc any) error {
			o := v.Opts().(*ScaleOpts)
			f := o.Factors.Value
			if o.Factors.Node != node.Nil {
				if val, ok := drawnode.ValueOf(v.Graph(), o.Factors.Node); ok {
					f = val
				}
			}
			var m linear.M4
			m.Scale(f.Vec[0], f.Vec[1], f.Vec[2])
			return matrixDraw(&m, v, rc)
		},
	})

	node.RegisterClass(node.ClassTranslate, &node.Dispatch{
		Init: func(v *node.View) error {
			if _, ok := v.Opts().(*TranslateOpts); !ok {
				return newErr(errs.InvalidArg, "Translate requires *TranslateOpts")
			}
			return nil
		},
		Draw: func(v *node.View, rc any) error {
			o := v.Opts().(*TranslateOpts)
			t := o.Vector.Value
			if o.Vector.Node != node.Nil {
				if val, ok := drawnode.ValueOf(v.Graph(), o.Vector.Node); ok {
					t = val
				}
			}
			var m linear.M4
			m.Translate(t.Vec[0], t.Vec[1], t.Vec[2])
			return matrixDraw(&m, v, rc)
		},
	})

	node.RegisterClass(node.ClassSkew, &node.Dispatch{
		Init: func(v *node.View) error {
			if _, ok := v.Opts().(*SkewOpts); !ok {
				return newErr(errs.InvalidArg, "Skew requires *SkewOpts")
			}
			return nil
		},
		Draw: func(v *node.View, rc any) error {
			o := v.Opts().(*SkewOpts)
			a := o.Angles.Value
			if o.Angles.Node != node.Nil {
				if val, ok := drawnode.ValueOf(v.Graph(), o.Angles.Node); ok {
					a = val
				}
			}
			var m linear.M4
			m.Skew(a.Vec[0], a.Vec[1], &o.Anchor)
			return matrixDraw(&m, v, rc)
		},
	})
}

// CameraOpts configures a Camera node: an eye transform plus either a
// perspective or an orthographic projection for its subtree.
type CameraOpts struct {
	Eye, Center, Up linear.V3

	// Perspective, when FOV > 0.
	FOV, Aspect float32

	// Orthographic extents, used when FOV == 0.
	Left, Right, Bottom, Top float32

	Near, Far float32
}

func init() {
	node.RegisterClass(node.ClassCamera, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*CameraOpts)
			if !ok {
				return newErr(errs.InvalidArg, "Camera requires *CameraOpts")
			}
			if o.Near == o.Far {
				return newErr(errs.InvalidArg, "Camera requires near != far")
			}
			return nil
		},
		Draw: func(v *node.View, rc any) error {
			c, err := asContext(rc)
			if err != nil {
				return err
			}
			o := v.Opts().(*CameraOpts)
			var view, proj linear.M4
			view.LookAt(&o.Eye, &o.Center, &o.Up)
			if o.FOV > 0 {
				aspect := o.Aspect
				if aspect == 0 {
					vp := c.Viewport()
					if vp.Height > 0 {
						aspect = vp.Width / vp.Height
					} else {
						aspect = 1
					}
				}
				proj.Perspective(o.FOV, aspect, o.Near, o.Far)
			} else {
				proj.Orthographic(o.Left, o.Right, o.Bottom, o.Top, o.Near, o.Far)
			}
			c.ctx.TransformProjectionMatrix(&proj)
			popMV := c.mv.push(&view)
			defer popMV()
			popPR := c.pr.load(&proj)
			defer popPR()
			return v.DrawChildren(rc)
		},
	})
}

// TimeRangeFilterOpts configures a TimeRangeFilter node: the subtree is
// visited and updated while t lies in [Start-PrefetchMargin, End), so
// GPU resources are resident before the range opens, and drawn only
// while t lies in [Start, End).
type TimeRangeFilterOpts struct {
	Start, End     float64
	PrefetchMargin float64
}

type timeRangePriv struct {
	drawable bool
}

func init() {
	node.RegisterClass(node.ClassTimeRangeFilter, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*TimeRangeFilterOpts)
			if !ok {
				return newErr(errs.InvalidArg, "TimeRangeFilter requires *TimeRangeFilterOpts")
			}
			if o.End < o.Start {
				return newErr(errs.InvalidArg, "TimeRangeFilter requires End >= Start")
			}
			if o.PrefetchMargin < 0 {
				return newErr(errs.InvalidArg, "TimeRangeFilter margin must be non-negative")
			}
			v.SetPriv(&timeRangePriv{})
			return nil
		},
		Visit: func(v *node.View, active bool, t float64) error {
			o := v.Opts().(*TimeRangeFilterOpts)
			inPrefetch := t >= o.Start-o.PrefetchMargin && t < o.End
			return v.VisitChildren(active && inPrefetch, t)
		},
		OwnsUpdate: true,
		Update: func(v *node.View, t float64, rc any) error {
			o := v.Opts().(*TimeRangeFilterOpts)
			p := v.Priv().(*timeRangePriv)
			p.drawable = t >= o.Start && t < o.End
			if t >= o.Start-o.PrefetchMargin && t < o.End {
				return v.UpdateChildren(t, rc)
			}
			return nil
		},
		Draw: func(v *node.View, rc any) error {
			if !v.Priv().(*timeRangePriv).drawable {
				return nil
			}
			return v.DrawChildren(rc)
		},
	})
}

// RenderToTextureOpts configures a RenderToTexture node: its subtree
// renders into an offscreen target whose image other nodes may sample.
type RenderToTextureOpts struct {
	Width, Height int
	Format        linear.Format
}

type renderToTexturePriv struct {
	img *buffer.Image
	rt  gpu.Rendertarget
}

// RTTImageOf reads the offscreen image of the RenderToTexture node h.
func RTTImageOf(g *node.Graph, h node.Handle) (*buffer.Image, bool) {
	if h == node.Nil {
		return nil, false
	}
	p, ok := g.ViewOf(h).Priv().(*renderToTexturePriv)
	if !ok || p.img == nil {
		return nil, false
	}
	return p.img, true
}

func init() {
	node.RegisterClass(node.ClassRenderToTexture, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*RenderToTextureOpts)
			if !ok {
				return newErr(errs.InvalidArg, "RenderToTexture requires *RenderToTextureOpts")
			}
			if o.Width < 1 || o.Height < 1 {
				return newErr(errs.InvalidArg, "RenderToTexture requires positive dimensions")
			}
			v.SetPriv(&renderToTexturePriv{})
			return nil
		},
		Prepare: func(v *node.View, rc any) error {
			c, err := asContext(rc)
			if err != nil {
				return err
			}
			o := v.Opts().(*RenderToTextureOpts)
			p := v.Priv().(*renderToTexturePriv)
			if p.img != nil {
				return nil
			}
			format := o.Format
			if format == 0 {
				format = linear.RGBA8Unorm
			}
			gi, err := c.ctx.NewImage(format, o.Width, o.Height, 1, 1, 1, 1,
				gpu.UsageColorTarget|gpu.UsageSampled)
			if err != nil {
				return err
			}
			rt, err := c.ctx.NewRendertarget(gi, o.Width, o.Height)
			if err != nil {
				gi.Destroy()
				return err
			}
			p.img = buffer.NewImage(buffer.LayoutDefault, gi)
			p.rt = rt
			return nil
		},
		Release: func(v *node.View, rc any) {
			p := v.Priv().(*renderToTexturePriv)
			if p.img != nil {
				for _, plane := range p.img.Planes {
					plane.Destroy()
				}
				p.img = nil
				p.rt = nil
			}
		},
		Draw: func(v *node.View, rc any) error {
			c, err := asContext(rc)
			if err != nil {
				return err
			}
			p := v.Priv().(*renderToTexturePriv)
			if p.rt == nil {
				return newErr(errs.InvalidUsage, "RenderToTexture draw before prepare")
			}

			// Suspend the enclosing pass for the duration of this
			// node's own pass, then resume with the load variant.
			resume := c.ctx.IsRenderPassActive()
			if resume {
				if err := c.ctx.EndRenderPass(c.cmd); err != nil {
					return err
				}
			}
			pop := c.rts.push(p.rt)
			if err := c.ctx.BeginRenderPass(c.cmd, p.rt, true); err != nil {
				pop()
				return err
			}
			derr := v.DrawChildren(rc)
			if err := c.ctx.EndRenderPass(c.cmd); derr == nil {
				derr = err
			}
			pop()
			if derr == nil {
				p.img.Bump(c.frame)
			}
			if resume {
				if err := c.ctx.BeginRenderPass(c.cmd, c.rts.top().rt, false); derr == nil {
					derr = err
				}
			}
			return derr
		},
	})
}

// GraphicConfigOpts configures a GraphicConfig node: pending graphics
// state (scissor override) applied to the subtree.
type GraphicConfigOpts struct {
	Scissor    gpu.Scissor
	HasScissor bool
}

func init() {
	node.RegisterClass(node.ClassGraphicConfig, &node.Dispatch{
		Init: func(v *node.View) error {
			if _, ok := v.Opts().(*GraphicConfigOpts); !ok {
				return newErr(errs.InvalidArg, "GraphicConfig requires *GraphicConfigOpts")
			}
			return nil
		},
		Draw: func(v *node.View, rc any) error {
			c, err := asContext(rc)
			if err != nil {
				return err
			}
			o := v.Opts().(*GraphicConfigOpts)
			if o.HasScissor && c.cmd != nil {
				prev := c.scissor
				c.scissor = o.Scissor
				c.cmd.SetScissor(o.Scissor)
				defer func() {
					c.scissor = prev
					c.cmd.SetScissor(prev)
				}()
			}
			return v.DrawChildren(rc)
		},
	})
}
