// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package filter

import (
	"fmt"
	"strings"

	"github.com/gviegas/ngfx/internal/errs"
)

// Chain wraps a base fragment source and an ordered list of filters.
// The base's Code must define vec4 <baseFn>(vec2 coords); filters pipe
// its result in order.
type Chain struct {
	baseFn      string
	baseCode    string
	baseHelpers Helpers
	baseRes     []Resource
	filters     []*Filter
}

// NewChain creates a Chain over the given base source. baseFn is the
// name of the function baseCode defines.
func NewChain(baseFn, baseCode string, helpers Helpers, resources []Resource) (*Chain, error) {
	if baseFn == "" || baseCode == "" {
		return nil, newErr(errs.InvalidArg, "chain requires a base function and code")
	}
	if !containsToken(baseCode, baseFn) {
		return nil, newErr(errs.InvalidData, fmt.Sprintf("base code does not define %s", baseFn))
	}
	return &Chain{
		baseFn:      baseFn,
		baseCode:    baseCode,
		baseHelpers: helpers,
		baseRes:     resources,
	}, nil
}

// Append adds f to the end of the chain.
func (c *Chain) Append(f *Filter) error {
	if err := f.validate(); err != nil {
		return err
	}
	c.filters = append(c.filters, f)
	return nil
}

// Len returns the number of filters in the chain.
func (c *Chain) Len() int { return len(c.filters) }

// Composed is the result of flattening a Chain: a single fragment-shader
// body (helpers, base function, suffixed filter functions and a main
// that pipes them) plus the concatenated resource list, with filter
// resource names carrying the same suffix as their function.
type Composed struct {
	Source    string
	Resources []Resource
}

// Compose serializes the chain to GLSL once. Every filter occurrence is
// suffixed _0, _1, ... per occurrence of its name, keeping functions and
// uniforms unique when a filter appears multiple times.
func (c *Chain) Compose() (*Composed, error) {
	helpers := c.baseHelpers
	for _, f := range c.filters {
		helpers |= f.Helpers
	}

	var b strings.Builder
	for _, blk := range helperBlocks {
		if helpers&blk.bit != 0 {
			b.WriteString(blk.src)
			b.WriteByte('\n')
		}
	}

	b.WriteString(c.baseCode)
	if !strings.HasSuffix(c.baseCode, "\n") {
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	resources := append([]Resource(nil), c.baseRes...)

	// calls records the synthesized main's pipeline in order.
	type call struct {
		fn   string
		args []string
	}
	var calls []call
	occurrences := make(map[string]int)

	for _, f := range c.filters {
		n := occurrences[f.Name]
		occurrences[f.Name] = n + 1
		suffix := fmt.Sprintf("_%d", n)

		fn := "filter_" + f.Name
		code := replaceToken(f.Code, fn, fn+suffix)
		args := make([]string, 0, len(f.Resources))
		for _, r := range f.Resources {
			code = replaceToken(code, r.Name, r.Name+suffix)
			r.Name += suffix
			resources = append(resources, r)
			args = append(args, r.Name)
		}
		b.WriteString(code)
		if !strings.HasSuffix(code, "\n") {
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
		calls = append(calls, call{fn: fn + suffix, args: args})
	}

	b.WriteString("void main()\n{\n")
	fmt.Fprintf(&b, "    vec4 color = %s(var_uvcoord);\n", c.baseFn)
	for _, cl := range calls {
		b.WriteString("    color = " + cl.fn + "(color, var_uvcoord")
		for _, a := range cl.args {
			b.WriteString(", " + a)
		}
		b.WriteString(");\n")
	}
	b.WriteString("    ngl_out_color = color;\n}\n")

	return &Composed{Source: b.String(), Resources: resources}, nil
}

// containsToken reports whether code contains ident as a full
// identifier (not as a substring of a longer one).
func containsToken(code, ident string) bool {
	for i := 0; ; {
		j := strings.Index(code[i:], ident)
		if j < 0 {
			return false
		}
		j += i
		before := j == 0 || !isIdentByte(code[j-1])
		k := j + len(ident)
		after := k >= len(code) || !isIdentByte(code[k])
		if before && after {
			return true
		}
		i = j + 1
	}
}

// replaceToken rewrites every full-identifier occurrence of old in code
// to new.
func replaceToken(code, old, new string) string {
	var b strings.Builder
	for i := 0; ; {
		j := strings.Index(code[i:], old)
		if j < 0 {
			b.WriteString(code[i:])
			return b.String()
		}
		j += i
		k := j + len(old)
		before := j == 0 || !isIdentByte(code[j-1])
		after := k >= len(code) || !isIdentByte(code[k])
		b.WriteString(code[i:j])
		if before && after {
			b.WriteString(new)
		} else {
			b.WriteString(old)
		}
		i = k
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
