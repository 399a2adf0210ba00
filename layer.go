// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ink

import (
	"image"

	"github.com/gogpu/gputypes"
)

// Layer is the raster surface contract the engine draws through.
//
// A Layer is a persistent pixel buffer: content survives until Clear or
// Release. Implementations may be CPU-backed (raster package) or
// GPU-backed (backend/wgpu). The engine owns two layers — the persistent
// layer holding committed strokes and an accumulation layer holding the
// in-progress stroke — and manages all clearing itself, so stamp and
// layer draws never implicitly clear the target.
//
// Layers are NOT thread-safe. The engine mutates them only from the
// pointer-callback thread (see package doc).
type Layer interface {
	// Width returns the layer width in surface units.
	Width() int

	// Height returns the layer height in surface units.
	Height() int

	// Scale returns the device scale factor. The backing pixel buffer is
	// Width*Scale by Height*Scale pixels.
	Scale() float64

	// Format returns the pixel format of the backing buffer.
	Format() gputypes.TextureFormat

	// Clear resets the layer to fully transparent.
	Clear()

	// DrawStamps renders a batch of brush stamps into the layer with
	// source-over blending. When clear is true prior content is discarded
	// first; the engine always passes false and manages clearing itself.
	DrawStamps(stamps []Stamp, clear bool)

	// DrawLayer composites src onto this layer in a single source-over
	// blend. src must have the same dimensions and scale.
	DrawLayer(src Layer)

	// Snapshot returns the current layer contents as an RGBA image at
	// device-pixel resolution. The returned image is a copy.
	Snapshot() *image.RGBA

	// Release frees the layer's resources. Release is idempotent; after
	// Release all other methods are no-ops.
	Release() error
}

// Allocator creates layers for one rendering backend.
//
// Backends register an Allocator with the registry in their package init,
// so importing a backend package is enough to make it available:
//
//	import _ "github.com/gogpu/ink/raster" // CPU backend, priority 10
type Allocator interface {
	// NewLayer allocates a transparent layer of the given dimensions in
	// surface units and device scale factor.
	NewLayer(width, height int, scale float64) (Layer, error)

	// Name returns the backend's registry name.
	Name() string
}
