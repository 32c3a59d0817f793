// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package drawnode

import (
	"github.com/gviegas/ngfx/anim"
	"github.com/gviegas/ngfx/buffer"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/node"
)

// varPriv is the runtime state of every variable-producing node class:
// the value computed by the most recent update.
type varPriv struct {
	value anim.Value
}

// ValueOf reads the current value of the variable node h, if h is one.
func ValueOf(g *node.Graph, h node.Handle) (anim.Value, bool) {
	if h == node.Nil {
		return anim.Value{}, false
	}
	p, ok := g.ViewOf(h).Priv().(*varPriv)
	if !ok {
		return anim.Value{}, false
	}
	return p.value, true
}

// Src is a parameter slot that accepts either a literal value or a
// variable node producing the value at runtime.
type Src struct {
	Value anim.Value
	Node  node.Handle
}

// FloatSrc wraps a literal scalar.
func FloatSrc(v float32) Src { return Src{Value: anim.Value{Scalar: v}} }

// VecSrc wraps a literal vector of up to 4 components.
func VecSrc(v ...float32) Src {
	var s Src
	copy(s.Value.Vec[:], v)
	return s
}

// NodeSrc wraps a variable node reference.
func NodeSrc(h node.Handle) Src { return Src{Node: h} }

// resolve returns the slot's current value, reading through the
// variable node when one is set.
func (s *Src) resolve(g *node.Graph) anim.Value {
	if s.Node != node.Nil {
		if v, ok := ValueOf(g, s.Node); ok {
			return v
		}
	}
	return s.Value
}

// scalar resolves the slot as a float.
func (s *Src) scalar(g *node.Graph) float32 { return s.resolve(g).Scalar }

// vec resolves the slot as the first n vector components.
func (s *Src) vec(g *node.Graph, n int) []float32 {
	v := s.resolve(g)
	return v.Vec[:n]
}

// UniformOpts configures a Uniform* node: a literal value the caller
// may rewrite between frames (allow-live-change).
type UniformOpts struct {
	Value anim.Value
}

// AnimatedOpts configures an Animated* node.
type AnimatedOpts struct {
	Anim *anim.Animation
}

// VelocityOpts configures a Velocity* node: the animation whose
// derivative it reports.
type VelocityOpts struct {
	Anim *anim.Animation
}

// NoiseOpts configures a Noise* node: fractal noise of time, one
// independent channel per output component.
type NoiseOpts struct {
	Octaves    int
	Lacunarity float32
	Gain       float32
	Scale      float32
	Evolution  float32
	Seed       uint32
}

// StreamedOpts configures a StreamedBuffer* node.
type StreamedOpts struct {
	Streamed *buffer.Streamed
	// Target receives the selected record on every update.
	Target *buffer.Buffer
}

func uniformDispatch() *node.Dispatch {
	return &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*UniformOpts)
			if !ok {
				return newErr(errs.InvalidArg, "uniform node requires *UniformOpts")
			}
			v.SetPriv(&varPriv{value: o.Value})
			return nil
		},
		Update: func(v *node.View, t float64, rc any) error {
			o := v.Opts().(*UniformOpts)
			v.Priv().(*varPriv).value = o.Value
			return nil
		},
	}
}

func animatedDispatch(class anim.Class) *node.Dispatch {
	return &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*AnimatedOpts)
			if !ok || o.Anim == nil {
				return newErr(errs.InvalidArg, "animated node requires *AnimatedOpts with an animation")
			}
			if o.Anim.Class() != class {
				return newErr(errs.InvalidArg, "animation class does not match node class")
			}
			v.SetPriv(&varPriv{value: o.Anim.Evaluate(0)})
			return nil
		},
		Update: func(v *node.View, t float64, rc any) error {
			o := v.Opts().(*AnimatedOpts)
			v.Priv().(*varPriv).value = o.Anim.Evaluate(t)
			return nil
		},
	}
}

func velocityDispatch(class anim.Class) *node.Dispatch {
	return &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*VelocityOpts)
			if !ok || o.Anim == nil {
				return newErr(errs.InvalidArg, "velocity node requires *VelocityOpts with an animation")
			}
			if o.Anim.Class() != class {
				return newErr(errs.InvalidArg, "animation class does not match node class")
			}
			v.SetPriv(&varPriv{})
			return nil
		},
		Update: func(v *node.View, t float64, rc any) error {
			o := v.Opts().(*VelocityOpts)
			v.Priv().(*varPriv).value = o.Anim.EvaluateVelocity(t)
			return nil
		},
	}
}

func noiseDispatch(components int) *node.Dispatch {
	return &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*NoiseOpts)
			if !ok {
				return newErr(errs.InvalidArg, "noise node requires *NoiseOpts")
			}
			if o.Octaves < 1 || o.Octaves > 8 {
				return newErr(errs.InvalidArg, "noise octaves must be in [1,8]")
			}
			v.SetPriv(&varPriv{})
			return nil
		},
		Update: func(v *node.View, t float64, rc any) error {
			o := v.Opts().(*NoiseOpts)
			p := v.Priv().(*varPriv)
			for i := 0; i < components; i++ {
				// Each component is an independent channel: offset
				// the seed so channels decorrelate.
				p.value.Vec[i] = fractalNoise1(float32(t)*o.Scale+o.Evolution,
					o.Octaves, o.Lacunarity, o.Gain, o.Seed+uint32(i)*0x9e3779b9)
			}
			p.value.Scalar = p.value.Vec[0]
			return nil
		},
	}
}

func streamedDispatch() *node.Dispatch {
	return &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*StreamedOpts)
			if !ok || o.Streamed == nil || o.Target == nil {
				return newErr(errs.InvalidArg, "streamed node requires *StreamedOpts with source and target")
			}
			if len(o.Streamed.Record(0)) != len(o.Target.Bytes()) {
				return newErr(errs.InvalidData, "streamed record layout does not match target buffer")
			}
			v.SetPriv(&varPriv{})
			return nil
		},
		Update: func(v *node.View, t float64, rc any) error {
			o := v.Opts().(*StreamedOpts)
			return o.Target.SetBytes(o.Streamed.Record(t))
		},
	}
}

func init() {
	for _, c := range []node.Class{
		node.ClassUniformFloat, node.ClassUniformVec2, node.ClassUniformVec3,
		node.ClassUniformVec4, node.ClassUniformMat4,
	} {
		node.RegisterClass(c, uniformDispatch())
	}
	node.RegisterClass(node.ClassAnimatedFloat, animatedDispatch(anim.ClassFloat))
	node.RegisterClass(node.ClassAnimatedVec2, animatedDispatch(anim.ClassVec2))
	node.RegisterClass(node.ClassAnimatedVec3, animatedDispatch(anim.ClassVec3))
	node.RegisterClass(node.ClassAnimatedVec4, animatedDispatch(anim.ClassVec4))
	node.RegisterClass(node.ClassAnimatedQuat, animatedDispatch(anim.ClassQuat))
	node.RegisterClass(node.ClassAnimatedColor, animatedDispatch(anim.ClassColor))
	node.RegisterClass(node.ClassAnimatedPath, animatedDispatch(anim.ClassPath))
	node.RegisterClass(node.ClassAnimatedTime, animatedDispatch(anim.ClassTime))
	node.RegisterClass(node.ClassVelocityFloat, velocityDispatch(anim.ClassFloat))
	node.RegisterClass(node.ClassVelocityVec2, velocityDispatch(anim.ClassVec2))
	node.RegisterClass(node.ClassVelocityVec3, velocityDispatch(anim.ClassVec3))
	node.RegisterClass(node.ClassVelocityVec4, velocityDispatch(anim.ClassVec4))
	node.RegisterClass(node.ClassNoiseFloat, noiseDispatch(1))
	node.RegisterClass(node.ClassNoiseVec2, noiseDispatch(2))
	node.RegisterClass(node.ClassNoiseVec3, noiseDispatch(3))
	node.RegisterClass(node.ClassNoiseVec4, noiseDispatch(4))
	for _, c := range []node.Class{
		node.ClassStreamedBufferFloat, node.ClassStreamedBufferVec2,
		node.ClassStreamedBufferVec3, node.ClassStreamedBufferVec4,
	} {
		node.RegisterClass(c, streamedDispatch())
	}
}
