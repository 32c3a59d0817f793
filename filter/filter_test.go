// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package filter

import (
	"strings"
	"testing"
)

const testBase = `vec4 source_color(vec2 coords)
{
    return vec4(1.0, 0.0, 0.0, 1.0);
}
`

func newTestChain(t *testing.T) *Chain {
	t.Helper()
	c, err := NewChain("source_color", testBase, 0, nil)
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}
	return c
}

func TestComposeOrder(t *testing.T) {
	c := newTestChain(t)
	if err := c.Append(Opacity(0.5)); err != nil {
		t.Fatalf("c.Append: %v", err)
	}
	if err := c.Append(Alpha(1)); err != nil {
		t.Fatalf("c.Append: %v", err)
	}
	out, err := c.Compose()
	if err != nil {
		t.Fatalf("c.Compose: %v", err)
	}

	src := out.Source
	main := src[strings.Index(src, "void main()"):]
	iBase := strings.Index(main, "source_color(var_uvcoord)")
	iOp := strings.Index(main, "filter_opacity_0(color, var_uvcoord, opacity_0)")
	iAl := strings.Index(main, "filter_alpha_0(color, var_uvcoord, alpha_0)")
	if iBase < 0 || iOp < 0 || iAl < 0 {
		t.Fatalf("main is missing a call:\n%s", main)
	}
	if !(iBase < iOp && iOp < iAl) {
		t.Fatalf("main calls out of order:\n%s", main)
	}

	// The combined resource list carries both filter uniforms under
	// their suffixed, unique names.
	names := make(map[string]bool)
	for _, r := range out.Resources {
		names[r.Name] = true
	}
	for _, want := range []string{"opacity_0", "alpha_0"} {
		if !names[want] {
			t.Fatalf("resources missing %q:\nhave %v", want, out.Resources)
		}
	}
}

func TestComposeDuplicateFilter(t *testing.T) {
	c := newTestChain(t)
	c.Append(Opacity(0.5))
	c.Append(Opacity(0.25))
	out, err := c.Compose()
	if err != nil {
		t.Fatalf("c.Compose: %v", err)
	}
	for _, want := range []string{
		"vec4 filter_opacity_0(vec4 color, vec2 coords, float opacity_0)",
		"vec4 filter_opacity_1(vec4 color, vec2 coords, float opacity_1)",
	} {
		if !strings.Contains(out.Source, want) {
			t.Fatalf("composed source missing %q:\n%s", want, out.Source)
		}
	}
	if len(out.Resources) != 2 {
		t.Fatalf("resources: len\nhave %d\nwant 2", len(out.Resources))
	}
	if out.Resources[0].Value[0] != 0.5 || out.Resources[1].Value[0] != 0.25 {
		t.Fatalf("resource values:\nhave %v", out.Resources)
	}
}

func TestComposeHelpersOnce(t *testing.T) {
	c := newTestChain(t)
	c.Append(Saturation(1.5))
	c.Append(ColorMap([3]float32{0, 0, 0}, [3]float32{1, 1, 1}))
	out, err := c.Compose()
	if err != nil {
		t.Fatalf("c.Compose: %v", err)
	}
	if n := strings.Count(out.Source, "float ngli_luma"); n != 1 {
		t.Fatalf("helper block emitted %d times, want 1:\n%s", n, out.Source)
	}
}

func TestReplaceToken(t *testing.T) {
	cases := []struct {
		code, old, new, want string
	}{
		{"filter_alpha(x)", "filter_alpha", "filter_alpha_0", "filter_alpha_0(x)"},
		// A longer identifier sharing the prefix must not be rewritten.
		{"alpha alphabet", "alpha", "alpha_0", "alpha_0 alphabet"},
		{"xalpha alpha", "alpha", "alpha_0", "xalpha alpha_0"},
	}
	for _, c := range cases {
		if have := replaceToken(c.code, c.old, c.new); have != c.want {
			t.Fatalf("replaceToken(%q, %q, %q):\nhave %q\nwant %q",
				c.code, c.old, c.new, have, c.want)
		}
	}
}

func TestChainValidation(t *testing.T) {
	if _, err := NewChain("source_color", "void nothing() {}", 0, nil); err == nil {
		t.Fatal("NewChain accepted a base that does not define its function")
	}
	c := newTestChain(t)
	if err := c.Append(&Filter{Name: "broken", Code: "vec4 something_else() {}"}); err == nil {
		t.Fatal("c.Append accepted a filter that does not define filter_broken")
	}
}
