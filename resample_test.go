package ink

import (
	"math"
	"testing"
)

func collect(seq func(func(Point) bool)) []Point {
	var pts []Point
	seq(func(p Point) bool {
		pts = append(pts, p)
		return true
	})
	return pts
}

func TestStampSpacing(t *testing.T) {
	tests := []struct {
		name string
		size float64
		want float64
	}{
		{"default size", 16, 4},
		{"large brush", 40, 10},
		{"small brush floors at 1", 2, 1},
		{"minimum brush", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StampSpacing(tt.size); got != tt.want {
				t.Errorf("StampSpacing(%v) = %v, want %v", tt.size, got, tt.want)
			}
		})
	}
}

func TestResampleDegenerate(t *testing.T) {
	a := Pt(5, 5)
	b := Pt(5.005, 5)

	pts := collect(Resample(a, b, 16))

	if len(pts) != 1 {
		t.Fatalf("got %d points, want 1", len(pts))
	}
	if pts[0] != b {
		t.Errorf("point = %v, want endpoint %v", pts[0], b)
	}
}

func TestResampleEvenSpacing(t *testing.T) {
	// Brush size 40 gives spacing 10; a 100-unit segment yields exactly
	// 10 stamps at x = 10, 20, ..., 100.
	pts := collect(Resample(Pt(0, 0), Pt(100, 0), 40))

	if len(pts) != 10 {
		t.Fatalf("got %d points, want 10", len(pts))
	}
	for i, p := range pts {
		want := float64(i+1) * 10
		if math.Abs(p.X-want) > 1e-9 || p.Y != 0 {
			t.Errorf("point %d = %v, want (%v, 0)", i, p, want)
		}
	}
}

func TestResampleEndsAtB(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		size float64
	}{
		{"axis aligned", Pt(0, 0), Pt(37, 0), 16},
		{"diagonal", Pt(3, 7), Pt(-20, 55), 9},
		{"shorter than spacing", Pt(0, 0), Pt(0.5, 0.5), 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := collect(Resample(tt.a, tt.b, tt.size))
			if len(pts) == 0 {
				t.Fatal("no points yielded")
			}
			last := pts[len(pts)-1]
			if !last.Approx(tt.b, 1e-9) {
				t.Errorf("last point = %v, want %v", last, tt.b)
			}
			for i, p := range pts {
				if p.Approx(tt.a, 1e-9) {
					t.Errorf("point %d equals segment start %v", i, tt.a)
				}
			}
		})
	}
}

func TestResampleSpacingBound(t *testing.T) {
	a := Pt(0, 0)
	b := Pt(123, 77)
	size := 16.0
	spacing := StampSpacing(size)

	pts := collect(Resample(a, b, size))

	prev := a
	for i, p := range pts {
		d := p.Distance(prev)
		if d > spacing+1e-9 {
			t.Errorf("gap %d is %v, exceeds spacing %v", i, d, spacing)
		}
		prev = p
	}
}

func TestResampleRestartable(t *testing.T) {
	seq := Resample(Pt(0, 0), Pt(50, 0), 16)

	first := collect(seq)
	second := collect(seq)

	if len(first) != len(second) {
		t.Fatalf("restarted sequence yielded %d points, first pass %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("point %d differs between passes: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestResampleEarlyBreak(t *testing.T) {
	n := 0
	for range Resample(Pt(0, 0), Pt(100, 0), 40) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("consumed %d points, want 3", n)
	}
}
