// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ink"
)

// Layer is a GPU-accelerated ink.Layer. Stamp batches are converted to the
// GPU layout and splatted through the compute pipeline; pixels are mirrored
// in an RGBA8 buffer for snapshots and layer compositing.
type Layer struct {
	width  int
	height int
	scale  float64

	splatter *StampSplatter
	img      *image.RGBA

	released bool
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

// DrawStamps renders brush stamps through the splat pipeline.
// Prior content is preserved unless clear is set.
func (l *Layer) DrawStamps(stamps []ink.Stamp, clear bool) {
	if l.released {
		return
	}
	if clear {
		l.Clear()
	}
	if len(stamps) == 0 {
		return
	}

	gpuStamps := StampsToGPU(stamps, l.scale)

	// StampsToGPU folds the device scale into coordinates and stamp
	// scale, so the base radius stays in abstract stamp units.
	_ = l.splatter.Splat(l.img.Pix, gpuStamps, float32(ink.BaseStampDiameter/2))
}

// DrawLayer composites src onto this layer in one source-over blend.
func (l *Layer) DrawLayer(src ink.Layer) {
	if l.released || src == nil {
		return
	}

	if gl, ok := src.(*Layer); ok && !gl.released {
		draw.Draw(l.img, l.img.Bounds(), gl.img, image.Point{}, draw.Over)
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

// Release frees GPU pipelines and the pixel mirror. Idempotent.
func (l *Layer) Release() error {
	if l.released {
		return nil
	}
	l.released = true
	if l.splatter != nil {
		l.splatter.Destroy()
		l.splatter = nil
	}
	l.img = nil
	return nil
}

// Allocator creates GPU layers on a device provided by the host.
type Allocator struct {
	handle DeviceHandle
	logger *slog.Logger
}

// NewAllocator creates a GPU layer allocator over the given device handle.
// The handle may be nil or empty; Available reports whether layers can
// actually be allocated.
func NewAllocator(handle DeviceHandle) *Allocator {
	return &Allocator{handle: handle}
}

// Available reports whether the host device handle carries a usable device.
// Suitable as the availability check for ink.Register.
func (a *Allocator) Available() bool {
	return a.handle != nil && a.handle.Device() != nil
}

// NewLayer implements ink.Allocator.
func (a *Allocator) NewLayer(width, height int, scale float64) (ink.Layer, error) {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	if scale <= 0 {
		scale = 1
	}

	device, queue, err := a.halResources()
	if err != nil {
		return nil, err
	}

	pw := int(math.Ceil(float64(width) * scale))
	ph := int(math.Ceil(float64(height) * scale))
	if pw > math.MaxUint16 || ph > math.MaxUint16 {
		return nil, fmt.Errorf("wgpu: layer %dx%d exceeds maximum dimensions", pw, ph)
	}

	splatter, err := NewStampSplatter(device, queue, uint16(pw), uint16(ph))
	if err != nil {
		return nil, err
	}

	if a.logger != nil {
		a.logger.Debug("wgpu: layer allocated",
			slog.Int("width", width),
			slog.Int("height", height),
			slog.Float64("scale", scale))
	}

	return &Layer{
		width:    width,
		height:   height,
		scale:    scale,
		splatter: splatter,
		img:      image.NewRGBA(image.Rect(0, 0, pw, ph)),
	}, nil
}

// halResources extracts hal.Device and hal.Queue from the device handle.
// The handle must additionally implement HalDevice() any and HalQueue() any
// (gogpu contexts do).
func (a *Allocator) halResources() (hal.Device, hal.Queue, error) {
	if !a.Available() {
		return nil, nil, fmt.Errorf("wgpu: no GPU device available")
	}

	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := a.handle.(halProvider)
	if !ok {
		return nil, nil, fmt.Errorf("wgpu: device handle does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("wgpu: handle HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("wgpu: handle HalQueue is not hal.Queue")
	}
	return device, queue, nil
}

// Name implements ink.Allocator.
func (a *Allocator) Name() string {
	return "wgpu"
}

// SetLogger accepts the shared ink logger.
func (a *Allocator) SetLogger(l *slog.Logger) {
	a.logger = l
}

// Verify interface conformance.
var (
	_ ink.Layer     = (*Layer)(nil)
	_ ink.Allocator = (*Allocator)(nil)
)
