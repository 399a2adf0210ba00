// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"testing"

	"github.com/gogpu/ink"
)

// stamp16 is a stamp the size of the default brush: scale 16/128 gives a
// radius of 8 surface units.
func stamp16(x, y float64, c ink.RGBA) ink.Stamp {
	return ink.Stamp{Point: ink.Pt(x, y), Scale: 16.0 / ink.BaseStampDiameter, Color: c}
}

func TestNewLayerDimensions(t *testing.T) {
	tests := []struct {
		name           string
		w, h           int
		scale          float64
		wantW, wantH   int
		wantPW, wantPH int
	}{
		{"plain", 100, 50, 1, 100, 50, 100, 50},
		{"hidpi", 100, 50, 2, 100, 50, 200, 100},
		{"fractional scale", 10, 10, 1.5, 10, 10, 15, 15},
		{"zero dims clamp to one", 0, -3, 1, 1, 1, 1, 1},
		{"zero scale clamps to one", 40, 40, 0, 40, 40, 40, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayer(tt.w, tt.h, tt.scale)
			if l.Width() != tt.wantW || l.Height() != tt.wantH {
				t.Errorf("surface dims = %dx%d, want %dx%d",
					l.Width(), l.Height(), tt.wantW, tt.wantH)
			}
			b := l.Image().Bounds()
			if b.Dx() != tt.wantPW || b.Dy() != tt.wantPH {
				t.Errorf("pixel dims = %dx%d, want %dx%d",
					b.Dx(), b.Dy(), tt.wantPW, tt.wantPH)
			}
		})
	}
}

func TestDrawStampsCoverage(t *testing.T) {
	l := NewLayer(64, 64, 1)
	l.DrawStamps([]ink.Stamp{stamp16(32, 32, ink.Red)}, false)

	img := l.Image()

	// Center pixel is fully covered.
	idx := img.PixOffset(32, 32)
	if img.Pix[idx] != 255 || img.Pix[idx+3] != 255 {
		t.Errorf("center pixel = %v, want opaque red", img.Pix[idx:idx+4])
	}

	// Inside the radius (8 units) but off center.
	idx = img.PixOffset(36, 32)
	if img.Pix[idx+3] != 255 {
		t.Errorf("interior pixel alpha = %d, want 255", img.Pix[idx+3])
	}

	// Well outside the radius stays transparent.
	idx = img.PixOffset(50, 32)
	if img.Pix[idx+3] != 0 {
		t.Errorf("exterior pixel alpha = %d, want 0", img.Pix[idx+3])
	}
}

func TestDrawStampsAntialiasedEdge(t *testing.T) {
	l := NewLayer(64, 64, 1)

	// Center on a half-pixel so pixel (40, 32) sits exactly at distance
	// 8.0, the middle of the coverage ramp [7.5, 8.5].
	l.DrawStamps([]ink.Stamp{stamp16(32.5, 32.5, ink.Black)}, false)

	img := l.Image()
	idx := img.PixOffset(40, 32)
	a := img.Pix[idx+3]
	if a == 0 || a == 255 {
		t.Errorf("rim pixel alpha = %d, want partial coverage", a)
	}
}

func TestDrawStampsClear(t *testing.T) {
	l := NewLayer(32, 32, 1)
	l.DrawStamps([]ink.Stamp{stamp16(10, 10, ink.Red)}, false)
	l.DrawStamps([]ink.Stamp{stamp16(22, 22, ink.Blue)}, true)

	img := l.Image()
	if img.Pix[img.PixOffset(10, 10)+3] != 0 {
		t.Error("clear flag did not discard prior content")
	}
	if img.Pix[img.PixOffset(22, 22)+3] != 255 {
		t.Error("stamp after clear missing")
	}
}

func TestDrawStampsAccumulatesOpacity(t *testing.T) {
	// Two overlapping 50% stamps on one layer darken where they overlap.
	l := NewLayer(64, 64, 1)
	c := ink.Black.WithAlpha(0.5)
	l.DrawStamps([]ink.Stamp{stamp16(30, 32, c)}, false)

	img := l.Image()
	single := img.Pix[img.PixOffset(32, 32)+3]

	l.DrawStamps([]ink.Stamp{stamp16(34, 32, c)}, false)
	double := img.Pix[img.PixOffset(32, 32)+3]

	if single == 0 {
		t.Fatal("first stamp left no coverage at the overlap point")
	}
	if double <= single {
		t.Errorf("overlap alpha %d not above single-stamp alpha %d", double, single)
	}
}

func TestDrawLayerFlattensStroke(t *testing.T) {
	// Overlapping translucent stamps accumulated on one layer and blended
	// onto an empty target in a single operation must arrive unchanged:
	// the stroke composites as a flattened unit.
	accum := NewLayer(64, 64, 1)
	c := ink.Black.WithAlpha(0.5)
	accum.DrawStamps([]ink.Stamp{stamp16(30, 32, c), stamp16(34, 32, c)}, false)

	persistent := NewLayer(64, 64, 1)
	persistent.DrawLayer(accum)

	got := persistent.Image()
	want := accum.Image()
	for _, off := range []int{
		got.PixOffset(32, 32) + 3,
		got.PixOffset(30, 32) + 3,
		got.PixOffset(34, 32) + 3,
	} {
		if got.Pix[off] != want.Pix[off] {
			t.Errorf("pixel offset %d: persistent alpha %d != accum alpha %d",
				off, got.Pix[off], want.Pix[off])
		}
	}
}

func TestDrawLayerBlendsOverContent(t *testing.T) {
	dst := NewLayer(32, 32, 1)
	dst.DrawStamps([]ink.Stamp{stamp16(16, 16, ink.Red)}, false)

	src := NewLayer(32, 32, 1)
	src.DrawStamps([]ink.Stamp{stamp16(16, 16, ink.Blue.WithAlpha(0.5))}, false)

	dst.DrawLayer(src)

	img := dst.Image()
	idx := img.PixOffset(16, 16)
	r, b, a := img.Pix[idx], img.Pix[idx+2], img.Pix[idx+3]
	if a != 255 {
		t.Errorf("alpha = %d, want 255", a)
	}
	if r == 0 || b == 0 {
		t.Errorf("pixel (r=%d b=%d) should mix both layers", r, b)
	}
	if r == 255 {
		t.Error("source layer did not blend over the destination")
	}
}

func TestHiDPIStampScaling(t *testing.T) {
	// The same stroke at scale 2 covers twice the device pixels.
	l := NewLayer(64, 64, 2)
	l.DrawStamps([]ink.Stamp{stamp16(20, 20, ink.Black)}, false)

	img := l.Image()

	// Device-pixel center is (40, 40), device radius 16.
	if img.Pix[img.PixOffset(40, 40)+3] != 255 {
		t.Error("device-space center not covered")
	}
	if img.Pix[img.PixOffset(52, 40)+3] != 255 {
		t.Error("pixel at device distance 12 should be inside radius 16")
	}
	if img.Pix[img.PixOffset(60, 40)+3] != 0 {
		t.Error("pixel at device distance 20 should be outside radius 16")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	l := NewLayer(16, 16, 1)
	snap := l.Snapshot()
	snap.Pix[0] = 99

	if l.Image().Pix[0] == 99 {
		t.Error("mutating the snapshot changed the layer")
	}
}

func TestSurfaceSnapshotDownsamples(t *testing.T) {
	l := NewLayer(32, 16, 2)

	snap := l.SurfaceSnapshot()
	if snap.Bounds().Dx() != 32 || snap.Bounds().Dy() != 16 {
		t.Errorf("surface snapshot bounds = %v, want 32x16", snap.Bounds())
	}

	// At scale 1 it is just a snapshot.
	l1 := NewLayer(32, 16, 1)
	if got := l1.SurfaceSnapshot(); got.Bounds() != l1.Image().Bounds() {
		t.Errorf("scale-1 surface snapshot bounds = %v", got.Bounds())
	}
}

func TestLayerRelease(t *testing.T) {
	l := NewLayer(16, 16, 1)

	if err := l.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := l.Release(); err != nil {
		t.Errorf("second Release: %v", err)
	}

	// Everything after release is a no-op.
	l.Clear()
	l.DrawStamps([]ink.Stamp{stamp16(8, 8, ink.Red)}, false)
	l.DrawLayer(NewLayer(16, 16, 1))
	if l.Snapshot() != nil {
		t.Error("Snapshot after Release should be nil")
	}
}

func TestAllocatorRegistered(t *testing.T) {
	// Importing this package registers the backend.
	a, err := ink.NewAllocatorByName("image")
	if err != nil {
		t.Fatalf("NewAllocatorByName: %v", err)
	}
	if a.Name() != "image" {
		t.Errorf("Name = %q, want image", a.Name())
	}

	layer, err := a.NewLayer(100, 100, 1)
	if err != nil {
		t.Fatalf("NewLayer: %v", err)
	}
	defer func() { _ = layer.Release() }()

	if layer.Width() != 100 || layer.Height() != 100 {
		t.Errorf("layer dims = %dx%d, want 100x100", layer.Width(), layer.Height())
	}
}

func TestEngineEndToEnd(t *testing.T) {
	// Full pipeline over the CPU backend: a short stroke leaves committed
	// pixels on the persistent layer.
	eng, err := ink.NewEngine(128, 128, ink.WithSize(24), ink.WithColor(ink.Red))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer func() { _ = eng.Destroy() }()

	eng.PointerDown(ink.Pt(30, 64), 1.0, 0)
	eng.PointerMove([]ink.Sample{
		{Point: ink.Pt(60, 64), Pressure: 1.0, Time: 0.02},
		{Point: ink.Pt(90, 64), Pressure: 1.0, Time: 0.04},
	})

	// Before up, the persistent layer is still blank.
	snap := eng.Snapshot()
	if snap.Pix[snap.PixOffset(30, 64)+3] != 0 {
		t.Error("uncommitted stroke visible on the persistent layer")
	}

	eng.PointerUp()

	snap = eng.Snapshot()
	if snap.Pix[snap.PixOffset(30, 64)+3] == 0 {
		t.Error("committed stroke missing from the persistent layer")
	}
	idx := snap.PixOffset(30, 64)
	if snap.Pix[idx] == 0 {
		t.Error("committed stroke lost its color")
	}
}
