// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package drawnode

import (
	"math"

	"github.com/gviegas/ngfx/buffer"
	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
	"github.com/gviegas/ngfx/path"
)

// Distmap is a CPU-rasterized signed-distance atlas. Shapes register a
// path with requested pixel dimensions; Finalize packs them into one
// R8 texture where 0.5 is the contour, values above are inside and
// values below are outside, scaled by the spread.
type Distmap struct {
	shapes    []distShape
	w, h      int
	data      []byte
	img       *buffer.Image
	finalized bool
}

type distShape struct {
	p    *path.Path
	w, h int
	x, y int
}

// distmapMargin keeps a border of texels around each shape so sampling
// at the rect edge never bleeds into a neighbor.
const distmapMargin = 2

// NewDistmap creates an empty atlas.
func NewDistmap() *Distmap { return &Distmap{} }

// Register adds an initialized path to the atlas at the given shape
// dimensions, returning its shape index.
func (d *Distmap) Register(p *path.Path, w, h int) (int, error) {
	if d.finalized {
		return 0, newErr(errs.InvalidUsage, "Register after Finalize")
	}
	if p == nil || p.State() != path.Initialized {
		return 0, newErr(errs.InvalidArg, "Distmap requires an initialized path")
	}
	if w < 1 || h < 1 {
		return 0, newErr(errs.InvalidArg, "shape dimensions must be positive")
	}
	d.shapes = append(d.shapes, distShape{p: p, w: w, h: h})
	return len(d.shapes) - 1, nil
}

// Finalize lays the shapes out on one shelf and rasterizes every
// distance field.
func (d *Distmap) Finalize() error {
	if d.finalized {
		return nil
	}
	if len(d.shapes) == 0 {
		return newErr(errs.InvalidArg, "Distmap has no registered shapes")
	}
	x := distmapMargin
	maxH := 0
	for i := range d.shapes {
		s := &d.shapes[i]
		s.x, s.y = x, distmapMargin
		x += s.w + distmapMargin
		if s.h > maxH {
			maxH = s.h
		}
	}
	d.w = x
	d.h = maxH + 2*distmapMargin
	d.data = make([]byte, d.w*d.h)
	for i := range d.shapes {
		d.rasterize(&d.shapes[i])
	}
	d.finalized = true
	return nil
}

// rasterize samples the shape's path into a polyline and writes the
// clamped signed distance of every texel.
func (d *Distmap) rasterize(s *distShape) {
	n := 8 * (s.w + s.h)
	if n < 64 {
		n = 64
	}
	pts := make([][2]float32, n+1)
	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for i := 0; i <= n; i++ {
		pt := s.p.Evaluate(float32(i) / float32(n))
		pts[i] = [2]float32{pt[0], pt[1]}
		minX, maxX = minf(minX, pt[0]), maxf(maxX, pt[0])
		minY, maxY = minf(minY, pt[1]), maxf(maxY, pt[1])
	}
	spanX, spanY := maxX-minX, maxY-minY
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}

	// Spread: the distance, in texels, mapped onto half the encoded
	// range.
	spread := float32(s.w+s.h) * 0.125
	if spread < 1 {
		spread = 1
	}

	for ty := 0; ty < s.h; ty++ {
		for tx := 0; tx < s.w; tx++ {
			// Texel center in path space.
			px := minX + (float32(tx)+0.5)/float32(s.w)*spanX
			py := minY + (float32(ty)+0.5)/float32(s.h)*spanY

			dist := float32(math.Inf(1))
			crossings := 0
			for i := 0; i < n; i++ {
				a, b := pts[i], pts[i+1]
				if dd := segDist(px, py, a, b); dd < dist {
					dist = dd
				}
				// Even-odd ray cast along +x.
				if (a[1] > py) != (b[1] > py) {
					xi := a[0] + (py-a[1])/(b[1]-a[1])*(b[0]-a[0])
					if xi > px {
						crossings++
					}
				}
			}
			// Distance in texel units.
			dist = dist / spanX * float32(s.w)
			sd := dist / spread * 0.5
			if sd > 0.5 {
				sd = 0.5
			}
			v := float32(0.5)
			if crossings%2 == 1 {
				v += sd
			} else {
				v -= sd
			}
			d.data[(s.y+ty)*d.w+s.x+tx] = byte(v*255 + 0.5)
		}
	}
}

func segDist(px, py float32, a, b [2]float32) float32 {
	abx, aby := b[0]-a[0], b[1]-a[1]
	apx, apy := px-a[0], py-a[1]
	den := abx*abx + aby*aby
	t := float32(0)
	if den > 0 {
		t = (apx*abx + apy*aby) / den
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	dx, dy := px-(a[0]+abx*t), py-(a[1]+aby*t)
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// UVRect returns the normalized (x, y, w, h) rect of shape i within the
// atlas.
func (d *Distmap) UVRect(i int) [4]float32 {
	s := &d.shapes[i]
	return [4]float32{
		float32(s.x) / float32(d.w),
		float32(s.y) / float32(d.h),
		float32(s.w) / float32(d.w),
		float32(s.h) / float32(d.h),
	}
}

// Prepare uploads the atlas to the GPU.
func (d *Distmap) Prepare(ctx gpu.GpuCtx) error {
	if !d.finalized {
		return newErr(errs.InvalidUsage, "Prepare before Finalize")
	}
	if d.img != nil {
		return nil
	}
	gi, err := ctx.NewImage(linear.R8Unorm, d.w, d.h, 1, 1, 1, 1,
		gpu.UsageSampled|gpu.UsageTransferDst)
	if err != nil {
		return err
	}
	if err := gi.Write(d.data); err != nil {
		gi.Destroy()
		return err
	}
	d.img = buffer.NewImage(buffer.LayoutDefault, gi)
	return nil
}

// Release drops the GPU image; the CPU atlas survives for a later
// Prepare.
func (d *Distmap) Release() {
	if d.img != nil {
		for _, plane := range d.img.Planes {
			plane.Destroy()
		}
		d.img = nil
	}
}

// Image returns the atlas texture, or nil before Prepare.
func (d *Distmap) Image() *buffer.Image { return d.img }

// Size returns the atlas pixel dimensions after Finalize.
func (d *Distmap) Size() (int, int) { return d.w, d.h }

// Data returns the raw R8 atlas texels (tests and debug dumps).
func (d *Distmap) Data() []byte { return d.data }
