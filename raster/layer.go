// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/ink"
)

// Layer is a CPU-backed ink.Layer rendering into an *image.RGBA.
//
// The backing image is Width*Scale by Height*Scale device pixels; stamp
// coordinates arrive in surface units and are scaled at rasterisation
// time, so the same stroke renders identically at any HiDPI factor.
type Layer struct {
	width  int
	height int
	scale  float64
	img    *image.RGBA

	// released tracks if Release has been called
	released bool
}

// NewLayer creates a transparent CPU layer of the given dimensions in
// surface units and device scale factor.
func NewLayer(width, height int, scale float64) *Layer {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	if scale <= 0 {
		scale = 1
	}

	pw := int(math.Ceil(float64(width) * scale))
	ph := int(math.Ceil(float64(height) * scale))

	return &Layer{
		width:  width,
		height: height,
		scale:  scale,
		img:    image.NewRGBA(image.Rect(0, 0, pw, ph)),
	}
}

// Width returns the layer width in surface units.
func (l *Layer) Width() int {
	return l.width
}

// Height returns the layer height in surface units.
func (l *Layer) Height() int {
	return l.height
}

// Scale returns the device scale factor.
func (l *Layer) Scale() float64 {
	return l.scale
}

// Format returns the pixel format of the backing buffer.
func (l *Layer) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Clear resets the layer to fully transparent.
func (l *Layer) Clear() {
	if l.released {
		return
	}
	for i := range l.img.Pix {
		l.img.Pix[i] = 0
	}
}

// DrawStamps renders brush stamps as anti-aliased circles with
// source-over blending. Prior content is preserved unless clear is set.
func (l *Layer) DrawStamps(stamps []ink.Stamp, clear bool) {
	if l.released {
		return
	}
	if clear {
		l.Clear()
	}
	for _, s := range stamps {
		l.drawStamp(s)
	}
}

// drawStamp rasterises one circular stamp.
func (l *Layer) drawStamp(s ink.Stamp) {
	radius := ink.BaseStampDiameter / 2 * s.Scale * l.scale
	if radius <= 0 {
		return
	}
	cx := s.Point.X * l.scale
	cy := s.Point.Y * l.scale

	src := color.RGBA{
		R: uint8(clamp255(s.Color.R * 255)),
		G: uint8(clamp255(s.Color.G * 255)),
		B: uint8(clamp255(s.Color.B * 255)),
		A: uint8(clamp255(s.Color.A * 255)),
	}

	bounds := l.img.Bounds()
	x0 := maxInt(int(math.Floor(cx-radius-1)), bounds.Min.X)
	x1 := minInt(int(math.Ceil(cx+radius+1)), bounds.Max.X)
	y0 := maxInt(int(math.Floor(cy-radius-1)), bounds.Min.Y)
	y1 := minInt(int(math.Ceil(cy+radius+1)), bounds.Max.Y)

	for y := y0; y < y1; y++ {
		fy := float64(y) + 0.5
		for x := x0; x < x1; x++ {
			fx := float64(x) + 0.5
			dist := math.Hypot(fx-cx, fy-cy)

			// Edge coverage: full inside radius-0.5, zero outside
			// radius+0.5, linear ramp in between.
			cov := radius + 0.5 - dist
			if cov <= 0 {
				continue
			}
			if cov > 1 {
				cov = 1
			}
			l.blendPixelAlpha(x, y, src, uint8(cov*255+0.5))
		}
	}
}

// blendPixelAlpha blends a color with coverage alpha onto the image.
func (l *Layer) blendPixelAlpha(x, y int, src color.RGBA, alpha uint8) {
	if alpha == 0 {
		return
	}

	idx := l.img.PixOffset(x, y)

	if alpha == 255 && src.A == 255 {
		// Fully opaque - direct write
		l.img.Pix[idx+0] = src.R
		l.img.Pix[idx+1] = src.G
		l.img.Pix[idx+2] = src.B
		l.img.Pix[idx+3] = src.A
		return
	}

	// Source-over compositing with coverage
	srcA := uint32(src.A) * uint32(alpha) / 255
	invSrcA := 255 - srcA

	dstR := uint32(l.img.Pix[idx+0])
	dstG := uint32(l.img.Pix[idx+1])
	dstB := uint32(l.img.Pix[idx+2])
	dstA := uint32(l.img.Pix[idx+3])

	outA := srcA + dstA*invSrcA/255
	if outA == 0 {
		return
	}

	outR := (uint32(src.R)*srcA + dstR*dstA*invSrcA/255) / outA
	outG := (uint32(src.G)*srcA + dstG*dstA*invSrcA/255) / outA
	outB := (uint32(src.B)*srcA + dstB*dstA*invSrcA/255) / outA

	l.img.Pix[idx+0] = uint8(outR)
	l.img.Pix[idx+1] = uint8(outG)
	l.img.Pix[idx+2] = uint8(outB)
	l.img.Pix[idx+3] = uint8(outA)
}

// DrawLayer composites src onto this layer in one source-over blend.
func (l *Layer) DrawLayer(src ink.Layer) {
	if l.released || src == nil {
		return
	}

	if rl, ok := src.(*Layer); ok && !rl.released {
		draw.Draw(l.img, l.img.Bounds(), rl.img, image.Point{}, draw.Over)
		return
	}

	if snap := src.Snapshot(); snap != nil {
		draw.Draw(l.img, l.img.Bounds(), snap, image.Point{}, draw.Over)
	}
}

// Snapshot returns a copy of the layer at device-pixel resolution.
func (l *Layer) Snapshot() *image.RGBA {
	if l.released {
		return nil
	}
	result := image.NewRGBA(l.img.Bounds())
	copy(result.Pix, l.img.Pix)
	return result
}

// SurfaceSnapshot returns the layer resampled to surface-unit resolution.
// For Scale 1 this is the same as Snapshot; for HiDPI layers the device
// pixels are downsampled with bilinear filtering.
func (l *Layer) SurfaceSnapshot() *image.RGBA {
	if l.released {
		return nil
	}
	if l.scale == 1 {
		return l.Snapshot()
	}
	result := image.NewRGBA(image.Rect(0, 0, l.width, l.height))
	xdraw.ApproxBiLinear.Scale(result, result.Bounds(), l.img, l.img.Bounds(), xdraw.Src, nil)
	return result
}

// Image returns the underlying image.RGBA.
// This is a direct reference, not a copy.
func (l *Layer) Image() *image.RGBA {
	return l.img
}

// Release frees the backing image. Idempotent.
func (l *Layer) Release() error {
	if l.released {
		return nil
	}
	l.released = true
	l.img = nil
	return nil
}

// Allocator creates CPU layers. The zero value is ready to use.
type Allocator struct {
	logger *slog.Logger
}

// NewAllocator creates a CPU layer allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// NewLayer implements ink.Allocator.
func (a *Allocator) NewLayer(width, height int, scale float64) (ink.Layer, error) {
	if a.logger != nil {
		a.logger.Debug("raster: layer allocated",
			slog.Int("width", width),
			slog.Int("height", height),
			slog.Float64("scale", scale))
	}
	return NewLayer(width, height, scale), nil
}

// Name implements ink.Allocator.
func (a *Allocator) Name() string {
	return "image"
}

// SetLogger accepts the shared ink logger.
func (a *Allocator) SetLogger(l *slog.Logger) {
	a.logger = l
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Verify interface conformance.
var (
	_ ink.Layer     = (*Layer)(nil)
	_ ink.Allocator = (*Allocator)(nil)
)

// init registers the CPU backend.
func init() {
	ink.Register("image", 10, NewAllocator(), nil)
}
