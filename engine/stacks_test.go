// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"testing"

	"github.com/gviegas/ngfx/linear"
)

func TestMatrixStackScoped(t *testing.T) {
	var s matrixStack
	s.init()
	if s.depth() != 1 {
		t.Fatalf("depth after init:\nhave %d\nwant 1", s.depth())
	}

	var tr linear.M4
	tr.Translate(1, 2, 3)
	pop := s.push(&tr)
	if s.depth() != 2 {
		t.Fatalf("depth after push:\nhave %d\nwant 2", s.depth())
	}
	top := *s.top()
	if top[3][0] != 1 || top[3][1] != 2 || top[3][2] != 3 {
		t.Fatalf("composed translation:\nhave %v", top[3])
	}

	// Identity composition preserves the tail bitwise.
	var ident linear.M4
	ident.I()
	pop2 := s.push(&ident)
	if *s.top() != top {
		t.Fatalf("identity push changed the tail:\nhave %v\nwant %v", *s.top(), top)
	}
	pop2()
	pop()
	if s.depth() != 1 {
		t.Fatalf("depth after pops:\nhave %d\nwant 1", s.depth())
	}
}

func TestMatrixStackLoad(t *testing.T) {
	var s matrixStack
	s.init()
	var proj linear.M4
	proj.Perspective(1, 1, 0.1, 100)
	pop := s.load(&proj)
	if *s.top() != proj {
		t.Fatalf("load did not replace the tail")
	}
	pop()
	var ident linear.M4
	ident.I()
	if *s.top() != ident {
		t.Fatalf("pop did not restore identity")
	}
}
