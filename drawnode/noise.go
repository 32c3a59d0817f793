// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package drawnode

import (
	"math"

	"github.com/gviegas/ngfx/craft"
	"github.com/gviegas/ngfx/filter"
	"github.com/gviegas/ngfx/gpu"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/node"
)

// CPU-side 1D gradient noise, matching the shader helper's shape:
// quintic-interpolated hashed gradients over the integer lattice.

func hashU32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

func gradAt(i int32, seed uint32) float32 {
	h := hashU32(uint32(i) ^ seed)
	// Map to [-1,1].
	return float32(h)*(2.0/float32(math.MaxUint32)) - 1
}

func noise1(x float32, seed uint32) float32 {
	i := int32(math.Floor(float64(x)))
	f := x - float32(i)
	u := f * f * f * (f*(f*6-15) + 10)
	g0 := gradAt(i, seed) * f
	g1 := gradAt(i+1, seed) * (f - 1)
	return g0 + (g1-g0)*u
}

// fractalNoise1 accumulates octaves of noise1 with the given lacunarity
// and gain.
func fractalNoise1(x float32, octaves int, lacunarity, gain float32, seed uint32) float32 {
	if lacunarity == 0 {
		lacunarity = 2
	}
	if gain == 0 {
		gain = 0.5
	}
	var sum float32
	amp := float32(1)
	freq := float32(1)
	for o := 0; o < octaves; o++ {
		sum += noise1(x*freq, seed+uint32(o)) * amp
		freq *= lacunarity
		amp *= gain
	}
	return sum
}

// NoiseMode selects DrawNoise's pattern.
type NoiseMode int

// Noise modes.
const (
	NoisePerlin NoiseMode = iota
	NoiseBlocky
)

// DrawNoiseOpts configures a DrawNoise node.
type DrawNoiseOpts struct {
	Common
	Mode       NoiseMode
	Octaves    int
	Lacunarity float32
	Gain       float32
	Seed       uint32
	Scale      Src
	Evolution  Src
}

const noiseFrag = `vec4 source_color(vec2 coords)
{
    vec2 p = coords * vec2(aspect_ratio, 1.0) * scale;
    float sum = 0.0;
    float amp = 1.0;
    float freq = 1.0;
    for (int o = 0; o < int(octaves); o++) {
        vec2 q = p * freq + vec2(evolution);
        float n = blocky != 0.0
            ? ngli_rand(floor(q), uint(seed) + uint(o)) * 2.0 - 1.0
            : ngli_perlin(q, uint(seed) + uint(o));
        sum += n * amp;
        freq *= lacunarity;
        amp *= gain;
    }
    float v = sum * 0.5 + 0.5;
    return vec4(v, v, v, 1.0);
}
`

type drawNoisePriv struct {
	cm *common
}

func init() {
	node.RegisterClass(node.ClassDrawNoise, &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*DrawNoiseOpts)
			if !ok {
				return newErr(errs.InvalidArg, "DrawNoise requires *DrawNoiseOpts")
			}
			if o.Octaves < 1 || o.Octaves > 8 {
				return newErr(errs.InvalidArg, "DrawNoise octaves must be in [1,8]")
			}
			cm, err := buildCommon(&o.Common, "source_color", noiseFrag,
				filter.HelperNoise, nil, []craft.Uniform{
					{Name: "octaves", Type: craft.Float, Stage: gpu.StageFragment},
					{Name: "lacunarity", Type: craft.Float, Stage: gpu.StageFragment},
					{Name: "gain", Type: craft.Float, Stage: gpu.StageFragment},
					{Name: "seed", Type: craft.Float, Stage: gpu.StageFragment},
					{Name: "blocky", Type: craft.Float, Stage: gpu.StageFragment},
					{Name: "scale", Type: craft.Float, Stage: gpu.StageFragment},
					{Name: "evolution", Type: craft.Float, Stage: gpu.StageFragment},
				}, nil, nil, v.Label())
			if err != nil {
				return err
			}
			v.SetPriv(&drawNoisePriv{cm: cm})
			return nil
		},
		Prepare: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			return v.Priv().(*drawNoisePriv).cm.prepare(r)
		},
		Release: func(v *node.View, rc any) {
			v.Priv().(*drawNoisePriv).cm.release()
		},
		Draw: func(v *node.View, rc any) error {
			r, err := asRC(rc)
			if err != nil {
				return err
			}
			o := v.Opts().(*DrawNoiseOpts)
			p := v.Priv().(*drawNoisePriv)
			g := v.Graph()
			return p.cm.draw(r, func() error {
				lac, gain := o.Lacunarity, o.Gain
				if lac == 0 {
					lac = 2
				}
				if gain == 0 {
					gain = 0.5
				}
				blocky := float32(0)
				if o.Mode == NoiseBlocky {
					blocky = 1
				}
				scale := o.Scale.scalar(g)
				if scale == 0 {
					scale = 1
				}
				for _, u := range []struct {
					name string
					val  float32
				}{
					{"octaves", float32(o.Octaves)},
					{"lacunarity", lac},
					{"gain", gain},
					{"seed", float32(o.Seed)},
					{"blocky", blocky},
					{"scale", scale},
					{"evolution", o.Evolution.scalar(g)},
				} {
					if err := p.cm.uniform(u.name, []float32{u.val}); err != nil {
						return err
					}
				}
				return nil
			})
		},
	})
}
