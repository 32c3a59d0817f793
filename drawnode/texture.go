// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package drawnode

import (
	"github.com/gviegas/ngfx/buffer"
	"github.com/gviegas/ngfx/craft"
	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
	"github.com/gviegas/ngfx/media"
	"github.com/gviegas/ngfx/node"
)

// TextureOpts configures a Texture2D/3D/Cube node. Filename or Data
// must be set; when both are, Data is used and Filename is ignored.
// Data requires explicit dimensions.
type TextureOpts struct {
	Filename string
	Data     *buffer.Buffer
	Format   linear.Format
	Width    int
	Height   int
	Depth    int // Texture3D slices or TextureCube faces
}

// texturePriv is the runtime state of texture-producing nodes.
type texturePriv struct {
	data   *buffer.Buffer
	w, h   int
	depth  int
	format linear.Format
	img    *buffer.Image
}

// ImageOf reads the current Image of the texture-producing node h, if h
// is one.
func ImageOf(g *node.Graph, h node.Handle) (*buffer.Image, bool) {
	if h == node.Nil {
		return nil, false
	}
	p, ok := g.ViewOf(h).Priv().(*texturePriv)
	if !ok || p.img == nil {
		return nil, false
	}
	return p.img, true
}

func textureDispatch(depthKind int) *node.Dispatch {
	return &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*TextureOpts)
			if !ok {
				return newErr(errs.InvalidArg, "texture node requires *TextureOpts")
			}
			if o.Filename == "" && o.Data == nil {
				return newErr(errs.InvalidArg, "texture node requires a filename or inline data")
			}
			if o.Data != nil && (o.Width <= 0 || o.Height <= 0) {
				return newErr(errs.InvalidArg, "inline texture data requires explicit dimensions")
			}
			p := &texturePriv{
				data:   o.Data,
				w:      o.Width,
				h:      o.Height,
				depth:  max(1, o.Depth*depthKind),
				format: o.Format,
			}
			if p.format == 0 {
				p.format = linear.RGBA8Unorm
			}
			v.SetPriv(p)
			return nil
		},
		Prepare: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			o := v.Opts().(*TextureOpts)
			p := v.Priv().(*texturePriv)
			ctx := r.Gpu()
			if p.data == nil {
				data, w, h, err := buffer.NewFromImageFile(o.Filename, ctx.Limits().MaxImage2D)
				if err != nil {
					return err
				}
				p.data, p.w, p.h = data, w, h
				p.format = linear.RGBA8Unorm
			}
			if p.img == nil {
				gi, err := ctx.NewImage(p.format, p.w, p.h, p.depth, 1, 1, 1,
					gpu.UsageSampled|gpu.UsageTransferDst)
				if err != nil {
					return err
				}
				if err := gi.Write(p.data.Bytes()); err != nil {
					gi.Destroy()
					return err
				}
				p.img = buffer.NewImage(buffer.LayoutDefault, gi)
			}
			return nil
		},
		Release: func(v *node.View, rc any) {
			p := v.Priv().(*texturePriv)
			if p.img != nil {
				for _, plane := range p.img.Planes {
					plane.Destroy()
				}
				p.img = nil
			}
		},
	}
}

// MediaOpts configures a Media node: a FrameSource drained at update
// time into a GPU image.
type MediaOpts struct {
	Source media.FrameSource
}

type mediaPriv struct {
	img     *buffer.Image
	lastPTS int64
	havePTS bool
}

func init() {
	node.RegisterClass(node.ClassTexture2D, textureDispatch(0))
	node.RegisterClass(node.ClassTexture3D, textureDispatch(1))
	node.RegisterClass(node.ClassTextureCube, textureDispatch(1))

	node.RegisterClass(node.ClassMedia, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*MediaOpts)
			if !ok || o.Source == nil {
				return newErr(errs.InvalidArg, "Media requires *MediaOpts with a frame source")
			}
			v.SetPriv(&mediaPriv{})
			return nil
		},
		Update: func(v *node.View, t float64, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			o := v.Opts().(*MediaOpts)
			p := v.Priv().(*mediaPriv)
			frame, ok, err := o.Source.NextFrame(t)
			if err != nil {
				return errs.New(pkgName, errs.External, err.Error())
			}
			if !ok || (p.havePTS && frame.PTS == p.lastPTS) {
				return nil
			}
			layout := buffer.LayoutDefault
			if frame.PixFmt == media.PixNV12 {
				layout = buffer.LayoutNV12
			}
			if p.img == nil {
				gi, err := r.Gpu().NewImage(linear.RGBA8Unorm,
					frame.Width, frame.Height, 1, 1, 1, 1,
					gpu.UsageSampled|gpu.UsageTransferDst)
				if err != nil {
					return err
				}
				p.img = buffer.NewImage(layout, gi)
			}
			if len(frame.Data) > 0 {
				if err := p.img.Planes[0].Write(frame.Data[0]); err != nil {
					return err
				}
			}
			p.img.Bump(t)
			p.lastPTS = frame.PTS
			p.havePTS = true
			return nil
		},
		Release: func(v *node.View, rc any) {
			p := v.Priv().(*mediaPriv)
			if p.img != nil {
				for _, plane := range p.img.Planes {
					plane.Destroy()
				}
				p.img = nil
				p.havePTS = false
			}
		},
		Uninit: func(v *node.View) {
			o := v.Opts().(*MediaOpts)
			o.Source.Close()
		},
	})
}

// mediaImageOf resolves either a texture or media node to its Image.
func mediaImageOf(g *node.Graph, h node.Handle) (*buffer.Image, bool) {
	if img, ok := ImageOf(g, h); ok {
		return img, true
	}
	if h == node.Nil {
		return nil, false
	}
	p, ok := g.ViewOf(h).Priv().(*mediaPriv)
	if !ok || p.img == nil {
		return nil, false
	}
	return p.img, true
}

// DrawTextureOpts configures a DrawTexture node: sample a texture (or
// media) node, reframed through the image's coordinates matrix.
type DrawTextureOpts struct {
	Common
	Tex node.Handle
}

const textureFrag = `vec4 source_color(vec2 coords)
{
    vec2 uv = (tex_coord_matrix * vec4(coords, 0.0, 1.0)).xy;
    return texture(tex, uv);
}
`

type drawTexturePriv struct {
	cm     *common
	texIdx int
}

func init() {
	node.RegisterClass(node.ClassDrawTexture, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*DrawTextureOpts)
			if !ok {
				return newErr(errs.InvalidArg, "DrawTexture requires *DrawTextureOpts")
			}
			if o.Tex == node.Nil {
				return newErr(errs.InvalidArg, "DrawTexture requires a texture node")
			}
			cm, err := buildCommon(&o.Common, "source_color", textureFrag,
				0, nil, []craft.Uniform{
					{Name: "tex_coord_matrix", Type: craft.Mat4, Stage: gpu.StageFragment},
				}, []craft.Texture{
					{Name: "tex", Stage: gpu.StageFragment},
				}, nil, v.Label())
			if err != nil {
				return err
			}
			v.SetPriv(&drawTexturePriv{cm: cm, texIdx: cm.texIdx["tex"]})
			return nil
		},
		Prepare: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			return v.Priv().(*drawTexturePriv).cm.prepare(r)
		},
		Release: func(v *node.View, rc any) {
			v.Priv().(*drawTexturePriv).cm.release()
		},
		Draw: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			o := v.Opts().(*DrawTextureOpts)
			p := v.Priv().(*drawTexturePriv)
			img, ok := mediaImageOf(v.Graph(), o.Tex)
			if !ok {
				return newErr(errs.InvalidUsage, "DrawTexture source has no image yet")
			}
			return p.cm.draw(r, func() error {
				if err := p.cm.compat.UpdateImage(p.texIdx, img); err != nil {
					return err
				}
				var ident linear.M4
				ident.I()
				return p.cm.compat.ApplyReframingMatrix(p.texIdx, img, &ident)
			})
		},
	})
}
