package sim

import (
	"math"
	"testing"
)

func TestVec2_NormalizeZero(t *testing.T) {
	z := Vec2{}.Normalize()
	if z.X != 0 || z.Y != 0 {
		t.Fatalf("normalizing zero vector gave %v, want zero", z)
	}
}

func TestVec2_NormalizeLength(t *testing.T) {
	v := Vec2{3, 4}.Normalize()
	if math.Abs(v.Len()-1) > 1e-12 {
		t.Fatalf("normalized length = %f, want 1", v.Len())
	}
	if math.Abs(v.X-0.6) > 1e-12 || math.Abs(v.Y-0.8) > 1e-12 {
		t.Fatalf("normalized (3,4) = %v, want (0.6,0.8)", v)
	}
}

func TestVec2_ClampLen(t *testing.T) {
	v := Vec2{6, 8}.ClampLen(5)
	if math.Abs(v.Len()-5) > 1e-12 {
		t.Fatalf("clamped length = %f, want 5", v.Len())
	}
	short := Vec2{1, 0}.ClampLen(5)
	if short != (Vec2{1, 0}) {
		t.Fatalf("clamping a short vector changed it: %v", short)
	}
}

func TestVec2_Rotate(t *testing.T) {
	v := Vec2{1, 0}.Rotate(math.Pi / 2)
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Y-1) > 1e-12 {
		t.Fatalf("(1,0) rotated 90° = %v, want (0,1)", v)
	}
}

func TestApproach_ReachesTarget(t *testing.T) {
	cur := Vec2{0, 0}
	target := Vec2{1, 0}
	got := approach(cur, target, 5)
	if got != target {
		t.Fatalf("approach with a big step should snap to target, got %v", got)
	}
	partial := approach(cur, target, 0.25)
	if math.Abs(partial.X-0.25) > 1e-12 || partial.Y != 0 {
		t.Fatalf("approach step 0.25 gave %v", partial)
	}
}

func TestAngleDiff_Wraps(t *testing.T) {
	d := angleDiff(0.1, 2*math.Pi-0.1)
	if math.Abs(d+0.2) > 1e-9 {
		t.Fatalf("angleDiff(0.1, 2π−0.1) = %f, want −0.2", d)
	}
}

func TestDistToSegment(t *testing.T) {
	a, b := Vec2{0, 0}, Vec2{10, 0}
	if d := distToSegment(Vec2{5, 3}, a, b); math.Abs(d-3) > 1e-12 {
		t.Fatalf("mid-segment distance = %f, want 3", d)
	}
	if d := distToSegment(Vec2{-4, 3}, a, b); math.Abs(d-5) > 1e-12 {
		t.Fatalf("before-endpoint distance = %f, want 5", d)
	}
	if d := distToSegment(Vec2{1, 1}, a, a); math.Abs(d-math.Sqrt2) > 1e-12 {
		t.Fatalf("degenerate segment distance = %f, want √2", d)
	}
}
