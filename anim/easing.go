// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package anim

import "math"

// Easing identifies one of the easing functions available to a keyframe.
type Easing int

// Easing identifiers.
const (
	Linear Easing = iota
	QuadraticIn
	QuadraticOut
	QuadraticInOut
	QuadraticOutIn
	CubicIn
	CubicOut
	CubicInOut
	CubicOutIn
	QuarticIn
	QuarticOut
	QuarticInOut
	QuarticOutIn
	QuinticIn
	QuinticOut
	QuinticInOut
	QuinticOutIn
	PowerIn
	PowerOut
	PowerInOut
	PowerOutIn
	SinusIn
	SinusOut
	SinusInOut
	SinusOutIn
	ExpIn
	ExpOut
	ExpInOut
	ExpOutIn
	CircularIn
	CircularOut
	CircularInOut
	CircularOutIn
	BounceIn
	BounceOut
	ElasticIn
	ElasticOut
	BackIn
	BackOut
	BackInOut
	BackOutIn

	easingCount
)

// easingFn is a forward easing function of a normalized ratio r in [0,1],
// with easing-specific arguments args (e.g. exponent, overshoot).
type easingFn func(r float32, args []float32) float32

// easingDeriv is the derivative of the matching easingFn, used by
// velocity nodes.
type easingDeriv func(r float32, args []float32) float32

// easingResolve inverts the matching easingFn where that is well defined;
// nil where no closed form inverse is implemented. Only Linear,
// QuadraticIn and CubicIn carry one, and the evaluation path does not
// call it: boundary offsets are applied by remapOffset as a linear remap
// of the raw ratio.
type easingResolve func(r float32, args []float32) float32

type easingEntry struct {
	fn      easingFn
	deriv   easingDeriv
	resolve easingResolve
}

func power(r, exp float32) float32 { return float32(math.Pow(float64(r), float64(exp))) }

func powerDeriv(r, exp float32) float32 {
	if exp == 0 {
		return 0
	}
	return exp * float32(math.Pow(float64(r), float64(exp-1)))
}

func inOut(f func(float32) float32) func(float32) float32 {
	return func(r float32) float32 {
		if r < 0.5 {
			return f(2*r) / 2
		}
		return 1 - f(2*(1-r))/2
	}
}

func outIn(f func(float32) float32) func(float32) float32 {
	return func(r float32) float32 {
		if r < 0.5 {
			return (1 - f(1-2*r)) / 2
		}
		return 0.5 + f(2*r-1)/2
	}
}

var easingTable = [easingCount]easingEntry{
	Linear: {
		fn:      func(r float32, _ []float32) float32 { return r },
		deriv:   func(_ float32, _ []float32) float32 { return 1 },
		resolve: func(r float32, _ []float32) float32 { return r },
	},
	QuadraticIn: {
		fn:      func(r float32, _ []float32) float32 { return power(r, 2) },
		deriv:   func(r float32, _ []float32) float32 { return powerDeriv(r, 2) },
		resolve: func(r float32, _ []float32) float32 { return sqrt32(r) },
	},
	QuadraticOut: {
		fn:    func(r float32, _ []float32) float32 { return 1 - power(1-r, 2) },
		deriv: func(r float32, _ []float32) float32 { return powerDeriv(1-r, 2) },
	},
	QuadraticInOut: {
		fn:    func(r float32, _ []float32) float32 { return inOut(func(x float32) float32 { return power(x, 2) })(r) },
		deriv: func(r float32, _ []float32) float32 { return powerDeriv(r, 2) },
	},
	QuadraticOutIn: {
		fn:    func(r float32, _ []float32) float32 { return outIn(func(x float32) float32 { return power(x, 2) })(r) },
		deriv: func(r float32, _ []float32) float32 { return powerDeriv(r, 2) },
	},
	CubicIn: {
		fn:      func(r float32, _ []float32) float32 { return power(r, 3) },
		deriv:   func(r float32, _ []float32) float32 { return powerDeriv(r, 3) },
		resolve: func(r float32, _ []float32) float32 { return cbrt32(r) },
	},
	CubicOut: {
		fn:    func(r float32, _ []float32) float32 { return 1 - power(1-r, 3) },
		deriv: func(r float32, _ []float32) float32 { return powerDeriv(1-r, 3) },
	},
	CubicInOut: {
		fn:    func(r float32, _ []float32) float32 { return inOut(func(x float32) float32 { return power(x, 3) })(r) },
		deriv: func(r float32, _ []float32) float32 { return powerDeriv(r, 3) },
	},
	CubicOutIn: {
		fn:    func(r float32, _ []float32) float32 { return outIn(func(x float32) float32 { return power(x, 3) })(r) },
		deriv: func(r float32, _ []float32) float32 { return powerDeriv(r, 3) },
	},
	QuarticIn: {
		fn:    func(r float32, _ []float32) float32 { return power(r, 4) },
		deriv: func(r float32, _ []float32) float32 { return powerDeriv(r, 4) },
	},
	QuarticOut: {
		fn:    func(r float32, _ []float32) float32 { return 1 - power(1-r, 4) },
		deriv: func(r float32, _ []float32) float32 { return powerDeriv(1-r, 4) },
	},
	QuarticInOut: {
		fn:    func(r float32, _ []float32) float32 { return inOut(func(x float32) float32 { return power(x, 4) })(r) },
		deriv: func(r float32, _ []float32) float32 { return powerDeriv(r, 4) },
	},
	QuarticOutIn: {
		fn:    func(r float32, _ []float32) float32 { return outIn(func(x float32) float32 { return power(x, 4) })(r) },
		deriv: func(r float32, _ []float32) float32 { return powerDeriv(r, 4) },
	},
	QuinticIn: {
		fn:    func(r float32, _ []float32) float32 { return power(r, 5) },
		deriv: func(r float32, _ []float32) float32 { return powerDeriv(r, 5) },
	},
	QuinticOut: {
		fn:    func(r float32, _ []float32) float32 { return 1 - power(1-r, 5) },
		deriv: func(r float32, _ []float32) float32 { return powerDeriv(1-r, 5) },
	},
	QuinticInOut: {
		fn:    func(r float32, _ []float32) float32 { return inOut(func(x float32) float32 { return power(x, 5) })(r) },
		deriv: func(r float32, _ []float32) float32 { return powerDeriv(r, 5) },
	},
	QuinticOutIn: {
		fn:    func(r float32, _ []float32) float32 { return outIn(func(x float32) float32 { return power(x, 5) })(r) },
		deriv: func(r float32, _ []float32) float32 { return powerDeriv(r, 5) },
	},
	PowerIn: {
		fn:    func(r float32, args []float32) float32 { return power(r, arg(args, 0, 1)) },
		deriv: func(r float32, args []float32) float32 { return powerDeriv(r, arg(args, 0, 1)) },
	},
	PowerOut: {
		fn:    func(r float32, args []float32) float32 { return 1 - power(1-r, arg(args, 0, 1)) },
		deriv: func(r float32, args []float32) float32 { return powerDeriv(1-r, arg(args, 0, 1)) },
	},
	PowerInOut: {
		fn: func(r float32, args []float32) float32 {
			e := arg(args, 0, 1)
			return inOut(func(x float32) float32 { return power(x, e) })(r)
		},
	},
	PowerOutIn: {
		fn: func(r float32, args []float32) float32 {
			e := arg(args, 0, 1)
			return outIn(func(x float32) float32 { return power(x, e) })(r)
		},
	},
	SinusIn: {
		fn:    func(r float32, _ []float32) float32 { return 1 - float32(math.Cos(float64(r)*math.Pi/2)) },
		deriv: func(r float32, _ []float32) float32 { return float32(math.Pi/2) * float32(math.Sin(float64(r)*math.Pi/2)) },
	},
	SinusOut: {
		fn:    func(r float32, _ []float32) float32 { return float32(math.Sin(float64(r) * math.Pi / 2)) },
		deriv: func(r float32, _ []float32) float32 { return float32(math.Pi/2) * float32(math.Cos(float64(r)*math.Pi/2)) },
	},
	SinusInOut: {
		fn: func(r float32, _ []float32) float32 {
			return inOut(func(x float32) float32 { return 1 - float32(math.Cos(float64(x)*math.Pi/2)) })(r)
		},
	},
	SinusOutIn: {
		fn: func(r float32, _ []float32) float32 {
			return outIn(func(x float32) float32 { return 1 - float32(math.Cos(float64(x)*math.Pi/2)) })(r)
		},
	},
	ExpIn: {
		fn: func(r float32, _ []float32) float32 {
			if r <= 0 {
				return 0
			}
			return float32(math.Pow(2, 10*(float64(r)-1)))
		},
	},
	ExpOut: {
		fn: func(r float32, _ []float32) float32 {
			if r >= 1 {
				return 1
			}
			return 1 - float32(math.Pow(2, -10*float64(r)))
		},
	},
	ExpInOut: {
		fn: func(r float32, _ []float32) float32 {
			return inOut(func(x float32) float32 {
				if x <= 0 {
					return 0
				}
				return float32(math.Pow(2, 10*(float64(x)-1)))
			})(r)
		},
	},
	ExpOutIn: {
		fn: func(r float32, _ []float32) float32 {
			return outIn(func(x float32) float32 {
				if x <= 0 {
					return 0
				}
				return float32(math.Pow(2, 10*(float64(x)-1)))
			})(r)
		},
	},
	CircularIn: {
		fn: func(r float32, _ []float32) float32 {
			return 1 - float32(math.Sqrt(float64(1-r*r)))
		},
	},
	CircularOut: {
		fn: func(r float32, _ []float32) float32 {
			x := r - 1
			return float32(math.Sqrt(float64(1 - x*x)))
		},
	},
	CircularInOut: {
		fn: func(r float32, _ []float32) float32 {
			return inOut(func(x float32) float32 { return 1 - float32(math.Sqrt(float64(1-x*x))) })(r)
		},
	},
	CircularOutIn: {
		fn: func(r float32, _ []float32) float32 {
			return outIn(func(x float32) float32 { return 1 - float32(math.Sqrt(float64(1-x*x))) })(r)
		},
	},
	BounceIn: {
		fn: func(r float32, _ []float32) float32 { return 1 - bounceOut(1-r) },
	},
	BounceOut: {
		fn: func(r float32, _ []float32) float32 { return bounceOut(r) },
	},
	ElasticIn: {
		fn: func(r float32, args []float32) float32 { return elasticIn(r, arg(args, 0, 1)) },
	},
	ElasticOut: {
		fn: func(r float32, args []float32) float32 { return 1 - elasticIn(1-r, arg(args, 0, 1)) },
	},
	BackIn: {
		fn: func(r float32, args []float32) float32 { return backIn(r, arg(args, 0, 1.70158)) },
	},
	BackOut: {
		fn: func(r float32, args []float32) float32 { return 1 - backIn(1-r, arg(args, 0, 1.70158)) },
	},
	BackInOut: {
		fn: func(r float32, args []float32) float32 {
			o := arg(args, 0, 1.70158)
			return inOut(func(x float32) float32 { return backIn(x, o) })(r)
		},
	},
	BackOutIn: {
		fn: func(r float32, args []float32) float32 {
			o := arg(args, 0, 1.70158)
			return outIn(func(x float32) float32 { return backIn(x, o) })(r)
		},
	},
}

func arg(args []float32, i int, def float32) float32 {
	if i < len(args) {
		return args[i]
	}
	return def
}

func sqrt32(x float32) float32 { return float32(math.Sqrt(float64(x))) }
func cbrt32(x float32) float32 { return float32(math.Cbrt(float64(x))) }

func bounceOut(r float32) float32 {
	const n1, d1 = 7.5625, 2.75
	switch {
	case r < 1/d1:
		return n1 * r * r
	case r < 2/d1:
		r -= 1.5 / d1
		return n1*r*r + 0.75
	case r < 2.5/d1:
		r -= 2.25 / d1
		return n1*r*r + 0.9375
	default:
		r -= 2.625 / d1
		return n1*r*r + 0.984375
	}
}

func elasticIn(r, period float32) float32 {
	if r <= 0 {
		return 0
	}
	if r >= 1 {
		return 1
	}
	s := period / 4
	r--
	return -float32(math.Pow(2, 10*float64(r))) * float32(math.Sin(float64((r-s)*(2*math.Pi)/period)))
}

func backIn(r, overshoot float32) float32 {
	return r * r * ((overshoot+1)*r - overshoot)
}

// evalEasing applies easing e to ratio r with optional args.
func evalEasing(e Easing, r float32, args []float32) float32 {
	fn := easingTable[e].fn
	if fn == nil {
		return r
	}
	return fn(r, args)
}

// evalEasingDeriv returns the derivative of easing e at ratio r; zero if
// no derivative is implemented for e.
func evalEasingDeriv(e Easing, r float32, args []float32) float32 {
	d := easingTable[e].deriv
	if d == nil {
		return 0
	}
	return d(r, args)
}
