// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package drawnode

import (
	"github.com/gviegas/ngfx/filter"
	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/linear"
	"github.com/gviegas/ngfx/node"
)

// FilterOpts configures a Filter* node: a wrapper making one fragment
// filter addressable from the scene graph. Constructors below build the
// underlying filter; alternatively a caller can supply one directly.
type FilterOpts struct {
	Filter *filter.Filter

	// Constructor parameters, read by the class-specific builders.
	Scalar  float32
	Scalar2 float32
	Color0  linear.V3
	Color1  linear.V3
}

// FilterOf reads the filter of the Filter* node h, if h is one. Draw
// nodes resolve their filter-node children through this when assembling
// their chain.
func FilterOf(g *node.Graph, h node.Handle) (*filter.Filter, bool) {
	if h == node.Nil {
		return nil, false
	}
	f, ok := g.ViewOf(h).Priv().(*filter.Filter)
	if !ok {
		return nil, false
	}
	return f, true
}

// FiltersOf resolves a list of Filter* node handles, preserving order.
func FiltersOf(g *node.Graph, hs []node.Handle) ([]*filter.Filter, error) {
	out := make([]*filter.Filter, 0, len(hs))
	for _, h := range hs {
		f, ok := FilterOf(g, h)
		if !ok {
			return nil, newErr(errs.InvalidArg, "handle is not an initialized filter node")
		}
		out = append(out, f)
	}
	return out, nil
}

func filterDispatch(build func(o *FilterOpts) *filter.Filter) *node.Dispatch {
	return &node.Dispatch{
		Init: func(v *node.View) error {
			o, ok := v.Opts().(*FilterOpts)
			if !ok {
				return newErr(errs.InvalidArg, "filter node requires *FilterOpts")
			}
			f := o.Filter
			if f == nil {
				f = build(o)
			}
			v.SetPriv(f)
			return nil
		},
	}
}

func init() {
	node.RegisterClass(node.ClassFilterAlpha, filterDispatch(func(o *FilterOpts) *filter.Filter {
		return filter.Alpha(o.Scalar)
	}))
	node.RegisterClass(node.ClassFilterOpacity, filterDispatch(func(o *FilterOpts) *filter.Filter {
		return filter.Opacity(o.Scalar)
	}))
	node.RegisterClass(node.ClassFilterContrast, filterDispatch(func(o *FilterOpts) *filter.Filter {
		return filter.Contrast(o.Scalar, o.Scalar2)
	}))
	node.RegisterClass(node.ClassFilterExposure, filterDispatch(func(o *FilterOpts) *filter.Filter {
		return filter.Exposure(o.Scalar)
	}))
	node.RegisterClass(node.ClassFilterInverseAlpha, filterDispatch(func(o *FilterOpts) *filter.Filter {
		return filter.InverseAlpha()
	}))
	node.RegisterClass(node.ClassFilterLinear2sRGB, filterDispatch(func(o *FilterOpts) *filter.Filter {
		return filter.Linear2sRGB()
	}))
	node.RegisterClass(node.ClassFilterSRGB2Linear, filterDispatch(func(o *FilterOpts) *filter.Filter {
		return filter.SRGB2Linear()
	}))
	node.RegisterClass(node.ClassFilterPremult, filterDispatch(func(o *FilterOpts) *filter.Filter {
		return filter.Premult()
	}))
	node.RegisterClass(node.ClassFilterSaturation, filterDispatch(func(o *FilterOpts) *filter.Filter {
		return filter.Saturation(o.Scalar)
	}))
	node.RegisterClass(node.ClassFilterColorMap, filterDispatch(func(o *FilterOpts) *filter.Filter {
		return filter.ColorMap(o.Color0, o.Color1)
	}))
	node.RegisterClass(node.ClassFilterSelector, filterDispatch(func(o *FilterOpts) *filter.Filter {
		return filter.Selector(o.Scalar, o.Scalar2)
	}))
}
