// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package anim

import (
	"math"
	"testing"
)

// TestLinearFloatAnimation checks an AnimatedFloat with
// keyframes [(0,0.0),(1,1.0)], linear easing.
func TestLinearFloatAnimation(t *testing.T) {
	a, err := New(ClassFloat, []Keyframe{
		{Time: 0, Value: Value{Scalar: 0}, Easing: Linear},
		{Time: 1, Value: Value{Scalar: 1}, Easing: Linear},
	}, ColorSRGB, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if v := a.Evaluate(0.25).Scalar; math.Abs(float64(v)-0.25) > 1e-6 {
		t.Fatalf("Evaluate(0.25):\nhave %v\nwant 0.25", v)
	}
	if v := a.Evaluate(1.5).Scalar; v != 1.0 {
		t.Fatalf("Evaluate(1.5):\nhave %v\nwant 1.0", v)
	}
	if v := a.Evaluate(-1).Scalar; v != 0.0 {
		t.Fatalf("Evaluate(-1):\nhave %v\nwant 0.0", v)
	}
}

// TestQuatSlerp checks an AnimatedQuat from identity to
// a 90-degree rotation about X.
func TestQuatSlerp(t *testing.T) {
	half := float32(math.Sqrt2) / 2
	a, err := New(ClassQuat, []Keyframe{
		{Time: 0, Value: Value{Vec: [4]float32{0, 0, 0, 1}}, Easing: Linear},
		{Time: 1, Value: Value{Vec: [4]float32{half, 0, 0, half}}, Easing: Linear},
	}, ColorSRGB, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v := a.Evaluate(0.5).Vec
	mag := math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2] + v[3]*v[3]))
	if math.Abs(mag-1) > 1e-5 {
		t.Fatalf("Evaluate(0.5) magnitude:\nhave %v\nwant 1.0 +-1e-5", mag)
	}
	if v[0] <= 0 {
		t.Fatalf("Evaluate(0.5) x-component:\nhave %v\nwant > 0", v[0])
	}
}

func TestTimeAnimationRejectsNonMonotonic(t *testing.T) {
	_, err := New(ClassTime, []Keyframe{
		{Time: 0, Value: Value{Scalar: 1}, Easing: Linear},
		{Time: 1, Value: Value{Scalar: 0}, Easing: Linear},
	}, ColorSRGB, nil)
	if err == nil {
		t.Fatalf("New with non-monotonic time scalars: have nil error, want non-nil")
	}
}

func TestTimeAnimationRejectsNonLinearEasing(t *testing.T) {
	_, err := New(ClassTime, []Keyframe{
		{Time: 0, Value: Value{Scalar: 0}, Easing: Linear},
		{Time: 1, Value: Value{Scalar: 1}, Easing: CubicIn},
	}, ColorSRGB, nil)
	if err == nil {
		t.Fatalf("New with non-linear easing: have nil error, want non-nil")
	}
}

func TestPathClassRequiresEvaluator(t *testing.T) {
	_, err := New(ClassPath, []Keyframe{
		{Time: 0, Value: Value{Scalar: 0}, Easing: Linear},
		{Time: 1, Value: Value{Scalar: 1}, Easing: Linear},
	}, ColorSRGB, nil)
	if err == nil {
		t.Fatalf("New ClassPath without evaluator: have nil error, want non-nil")
	}
}

func TestVelocityZeroOutsideRange(t *testing.T) {
	a, err := New(ClassFloat, []Keyframe{
		{Time: 0, Value: Value{Scalar: 0}, Easing: Linear},
		{Time: 1, Value: Value{Scalar: 1}, Easing: Linear},
	}, ColorSRGB, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if v := a.EvaluateVelocity(2).Scalar; v != 0 {
		t.Fatalf("EvaluateVelocity(2):\nhave %v\nwant 0", v)
	}
	if v := a.EvaluateVelocity(0.5).Scalar; v <= 0 {
		t.Fatalf("EvaluateVelocity(0.5):\nhave %v\nwant > 0", v)
	}
}

func TestEasingBoundaries(t *testing.T) {
	easings := []Easing{
		Linear, QuadraticIn, QuadraticOut, CubicInOut, QuinticOutIn,
		SinusIn, SinusOut, ExpIn, ExpOut, CircularIn, CircularOut,
		BounceIn, BounceOut, ElasticIn, ElasticOut, BackIn, BackOut,
	}
	for _, e := range easings {
		if v := evalEasing(e, 0, nil); math.Abs(float64(v)) > 1e-4 {
			t.Errorf("easing %d at r=0:\nhave %v\nwant ~0", e, v)
		}
		if v := evalEasing(e, 1, nil); math.Abs(float64(v)-1) > 1e-4 {
			t.Errorf("easing %d at r=1:\nhave %v\nwant ~1", e, v)
		}
	}
}

func TestColorEvaluateAtLastKeyframe(t *testing.T) {
	a, err := New(ClassColor, []Keyframe{
		{Time: 0, Value: Value{Vec: [4]float32{0, 0, 0, 1}}, Easing: Linear},
		{Time: 1, Value: Value{Vec: [4]float32{1, 1, 1, 1}}, Easing: Linear},
	}, ColorSRGB, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v := a.Evaluate(1).Vec
	if math.Abs(float64(v[0]-1)) > 1e-4 {
		t.Fatalf("Evaluate(1).Vec[0]:\nhave %v\nwant ~1", v[0])
	}
}
