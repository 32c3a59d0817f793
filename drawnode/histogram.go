// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package drawnode

import (
	"encoding/binary"

	"github.com/gviegas/ngfx/buffer"
	"github.com/gviegas/ngfx/craft"
	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
	"github.com/gviegas/ngfx/node"
)

// statsBins is the fixed histogram resolution, one bucket per 8-bit
// level.
const statsBins = 256

// ColorStatsOpts configures a ColorStats node: a histogram over an
// RGBA8 pixel buffer, rebuilt whenever the source data changes.
type ColorStatsOpts struct {
	Pixels *buffer.Buffer // RGBA8Unorm
}

// colorStatsPriv holds the stats block consumed by DrawHistogram and
// DrawWaveform: per-bin r/g/b/luma counts plus the running maximum.
type colorStatsPriv struct {
	block *buffer.Block
	buf   *buffer.Buffer
}

// StatsOf reads the stats block of the ColorStats node h, if h is one.
func StatsOf(g *node.Graph, h node.Handle) (*buffer.Block, *buffer.Buffer, bool) {
	if h == node.Nil {
		return nil, nil, false
	}
	p, ok := g.ViewOf(h).Priv().(*colorStatsPriv)
	if !ok {
		return nil, nil, false
	}
	return p.block, p.buf, true
}

func init() {
	node.RegisterClass(node.ClassColorStats, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*ColorStatsOpts)
			if !ok || o.Pixels == nil {
				return newErr(errs.InvalidArg, "ColorStats requires *ColorStatsOpts with a pixel buffer")
			}
			if o.Pixels.Format() != linear.RGBA8Unorm {
				return newErr(errs.InvalidArg, "ColorStats requires RGBA8 pixels")
			}
			blk, err := buffer.NewBlock("color_stats", []buffer.BlockField{
				{Name: "max_count", Format: linear.R32Uint},
				{Name: "depth", Format: linear.R32Uint},
				{Name: "data", Format: linear.RGBA32Uint, Count: statsBins},
			})
			if err != nil {
				return err
			}
			buf, err := buffer.NewFromData(linear.R32Uint, blk.Bytes())
			if err != nil {
				return err
			}
			buf.Request(buffer.ConsumerDrawBinding)
			v.SetPriv(&colorStatsPriv{block: blk, buf: buf})
			return nil
		},
		Update: func(v *node.View, t float64, rc any) error {
			o := v.Opts().(*ColorStatsOpts)
			p := v.Priv().(*colorStatsPriv)
			pix := o.Pixels.Bytes()

			var bins [statsBins][4]uint32
			for i := 0; i+3 < len(pix); i += 4 {
				r, g, b := pix[i], pix[i+1], pix[i+2]
				// BT.709 integer luma.
				y := (uint32(r)*2126 + uint32(g)*7152 + uint32(b)*722) / 10000
				bins[r][0]++
				bins[g][1]++
				bins[b][2]++
				bins[y][3]++
			}
			var maxCount uint32
			for _, b := range bins {
				for _, c := range b {
					if c > maxCount {
						maxCount = c
					}
				}
			}

			hdr := p.block.FieldBytes("max_count")
			binary.LittleEndian.PutUint32(hdr, maxCount)
			binary.LittleEndian.PutUint32(p.block.FieldBytes("depth"), statsBins)
			data := p.block.FieldBytes("data")
			for i, b := range bins {
				for c, n := range b {
					binary.LittleEndian.PutUint32(data[(i*4+c)*4:], n)
				}
			}
			p.block.Bump()
			return nil
		},
	})
}

// HistogramMode selects how DrawHistogram/DrawWaveform present the
// stats.
type HistogramMode int

// Histogram modes.
const (
	HistogramMixed HistogramMode = iota
	HistogramParade
	HistogramLuma
)

// DrawHistogramOpts configures a DrawHistogram node.
type DrawHistogramOpts struct {
	Common
	Stats node.Handle
	Mode  HistogramMode
}

const histogramFrag = `vec4 source_color(vec2 coords)
{
    int bin = int(coords.x * float(depth - 1u));
    uvec4 counts = data[bin];
    vec4 h = max_count > 0u ? vec4(counts) / float(max_count) : vec4(0.0);
    float y = 1.0 - coords.y;
    vec3 rgb;
    if (mode == 2.0) {
        rgb = vec3(step(y, h.a));
    } else if (mode == 1.0) {
        float lane = coords.y * 3.0;
        int c = int(min(lane, 2.0));
        float ly = 1.0 - fract(lane);
        rgb = vec3(0.0);
        rgb[c] = step(ly, h[c]);
    } else {
        rgb = vec3(step(y, h.r), step(y, h.g), step(y, h.b));
    }
    return vec4(rgb, 1.0);
}
`

type drawStatsPriv struct {
	cm     *common
	blkIdx int
	rev    uint64
}

func statsDrawDispatch(frag string) *node.Dispatch {
	return &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*DrawHistogramOpts)
			if !ok {
				return newErr(errs.InvalidArg, "histogram/waveform node requires *DrawHistogramOpts")
			}
			blk, _, ok := StatsOf(v.Graph(), o.Stats)
			if !ok {
				return newErr(errs.InvalidArg, "histogram/waveform node requires a ColorStats node")
			}
			cm, err := buildCommon(&o.Common, "source_color", frag,
				0, nil, []craft.Uniform{
					{Name: "mode", Type: craft.Float, Stage: gpu.StageFragment},
				}, nil, []craft.Block{
					{Name: "stats", Stage: gpu.StageFragment, Block: blk, Storage: true},
				}, v.Label())
			if err != nil {
				return err
			}
			v.SetPriv(&drawStatsPriv{cm: cm, blkIdx: cm.blkIdx["stats"]})
			return nil
		},
		Prepare: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			o := v.Opts().(*DrawHistogramOpts)
			p := v.Priv().(*drawStatsPriv)
			if err := p.cm.prepare(r); err != nil {
				return err
			}
			_, buf, _ := StatsOf(v.Graph(), o.Stats)
			return buf.Prepare(r.Gpu())
		},
		Release: func(v *node.View, rc any) {
			v.Priv().(*drawStatsPriv).cm.release()
		},
		Draw: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			o := v.Opts().(*DrawHistogramOpts)
			p := v.Priv().(*drawStatsPriv)
			blk, buf, _ := StatsOf(v.Graph(), o.Stats)
			// Re-push block contents only when its revision moved.
			if rev := blk.Revision(); rev != p.rev {
				if err := buf.SetBytes(blk.Bytes()); err != nil {
					return err
				}
				if err := buf.Prepare(r.Gpu()); err != nil {
					return err
				}
				if err := p.cm.compat.UpdateBuffer(p.blkIdx, buf, 0,
					int64(len(buf.Bytes()))); err != nil {
					return err
				}
				p.rev = rev
			}
			return p.cm.draw(r, func() error {
				return p.cm.uniform("mode", []float32{float32(o.Mode)})
			})
		},
	}
}

const waveformFrag = `vec4 source_color(vec2 coords)
{
    int bin = int((1.0 - coords.y) * float(depth - 1u));
    uvec4 counts = data[bin];
    vec4 w = max_count > 0u ? vec4(counts) / float(max_count) : vec4(0.0);
    vec3 rgb;
    if (mode == 2.0) {
        rgb = vec3(w.a);
    } else if (mode == 1.0) {
        float lane = coords.x * 3.0;
        int c = int(min(lane, 2.0));
        rgb = vec3(0.0);
        rgb[c] = w[c];
    } else {
        rgb = w.rgb;
    }
    return vec4(rgb, 1.0);
}
`

func init() {
	node.RegisterClass(node.ClassDrawHistogram, statsDrawDispatch(histogramFrag))
	node.RegisterClass(node.ClassDrawWaveform, statsDrawDispatch(waveformFrag))
}
