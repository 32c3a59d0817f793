// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package node

import (
	"testing"

	"github.com/gviegas/ngfx/internal/errs"
)

func TestSchemaFind(t *testing.T) {
	s := Schema{
		{Name: "radius", Type: TypeF32, Default: float32(1)},
		{Name: "npoints", Type: TypeI32, Default: int32(16)},
	}
	p, ok := s.Find("npoints")
	if !ok || p.Type != TypeI32 {
		t.Fatalf("Find(npoints):\nhave %+v, %v\nwant TypeI32, true", p, ok)
	}
	if _, ok := s.Find("missing"); ok {
		t.Fatal("Find(missing): have true, want false")
	}
}

func TestRegisterSchema(t *testing.T) {
	s := Schema{{Name: "value", Type: TypeF32}}
	RegisterSchema(ClassUniformFloat, s)
	defer RegisterSchema(ClassUniformFloat, nil)
	got := SchemaOf(ClassUniformFloat)
	if len(got) != 1 || got[0].Name != "value" {
		t.Fatalf("SchemaOf:\nhave %+v\nwant the registered schema", got)
	}
}

func TestValidateSelect(t *testing.T) {
	p := Param{
		Name: "blending",
		Type: TypeSelect,
		Choices: []Choice{
			{Name: "default", Value: 0},
			{Name: "src_over", Value: 1},
		},
	}
	v, err := ValidateSelect(p, "src_over")
	if err != nil || v != 1 {
		t.Fatalf("ValidateSelect(src_over):\nhave %d, %v\nwant 1, nil", v, err)
	}
	if _, err := ValidateSelect(p, "bogus"); !errs.Is(err, errs.InvalidArg) {
		t.Fatalf("ValidateSelect(bogus):\nhave %v\nwant InvalidArg", err)
	}
}
