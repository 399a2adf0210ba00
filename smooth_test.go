package ink

import (
	"math"
	"testing"
)

func TestSmoothInvalidDelta(t *testing.T) {
	s := NewSmoother(80, 0.15, 0.9)
	prev := Pt(0, 0)
	raw := Pt(100, 50)

	tests := []struct {
		name string
		dt   float64
	}{
		{"zero dt", 0},
		{"negative dt", -0.016},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Smooth(prev, raw, tt.dt); got != raw {
				t.Errorf("Smooth with dt=%v = %v, want raw %v", tt.dt, got, raw)
			}
		})
	}
}

func TestAlphaClamped(t *testing.T) {
	s := NewSmoother(80, 0.15, 0.9)

	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"at rest clamps to max", 0, 0.9},
		{"slow clamps to max", 5, 0.9},
		{"moderate speed in band", 200, 80.0 / 280.0},
		{"very fast clamps to min", 1e6, 0.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Alpha(tt.v); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Alpha(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestAlphaMonotonic(t *testing.T) {
	// Faster movement must never smooth less aggressively.
	s := NewSmoother(80, 0.15, 0.9)

	prev := s.Alpha(0)
	for v := 1.0; v <= 1e5; v *= 10 {
		cur := s.Alpha(v)
		if cur > prev {
			t.Fatalf("Alpha(%v) = %v > Alpha at lower speed %v", v, cur, prev)
		}
		prev = cur
	}
}

func TestSmoothPullsTowardRaw(t *testing.T) {
	s := NewSmoother(80, 0.15, 0.9)
	prev := Pt(0, 0)
	raw := Pt(10, 0)

	got := s.Smooth(prev, raw, 0.016)

	if got.X <= prev.X || got.X >= raw.X {
		t.Errorf("smoothed X = %v, want strictly between %v and %v", got.X, prev.X, raw.X)
	}
	if got.Y != 0 {
		t.Errorf("smoothed Y = %v, want 0", got.Y)
	}
}

func TestSmoothSlowMovementLagsLittle(t *testing.T) {
	// At low speed alpha clamps to MaxAlpha, so the output sits 90% of the
	// way toward the raw point.
	s := NewSmoother(80, 0.15, 0.9)
	got := s.Smooth(Pt(0, 0), Pt(1, 0), 1.0)
	want := Pt(0.9, 0)
	if !got.Approx(want, 1e-12) {
		t.Errorf("Smooth = %v, want %v", got, want)
	}
}
