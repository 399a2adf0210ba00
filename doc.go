// Package ink implements the stroke-rendering core of an interactive
// painting surface for the GoGPU ecosystem.
//
// # Overview
//
// ink converts a raw stream of pointer samples (position, pressure,
// timestamp) into a sequence of discrete brush stamps composited onto a
// persistent raster layer. The pipeline has four stages:
//
//  1. Path smoothing: a velocity-adaptive exponential moving average
//     suppresses input jitter at low speeds while tracking fast motion.
//  2. Resampling: the smoothed path is walked at fixed spacing relative to
//     the brush size, so stamp density stays constant across sizes.
//  3. Pressure mapping: normalized pen pressure scales each stamp, with a
//     floor that keeps faint touches visible.
//  4. Compositing: stamps accumulate on an ephemeral layer that is blended
//     onto the persistent layer exactly once per stroke, so overlapping
//     semi-transparent stamps within one stroke never re-blend against
//     each other.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/ink"
//	    _ "github.com/gogpu/ink/raster" // register the CPU backend
//	)
//
//	eng, err := ink.NewEngine(800, 600, ink.WithSize(24), ink.WithColor(ink.Black))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Destroy()
//
//	eng.PointerDown(ink.Pt(10, 10), 1.0, 0)
//	eng.PointerMove([]ink.Sample{{Point: ink.Pt(100, 40), Pressure: 0.7, Time: 0.016}})
//	eng.PointerUp()
//
//	img := eng.Snapshot() // *image.RGBA of all committed strokes
//
// # Architecture
//
// The library is organized into:
//   - Public API: Engine, Config, Smoother, Resample, StampScale
//   - Collaborator contract: Layer, Allocator (see layer.go)
//   - Backends: raster (CPU), backend/wgpu (GPU compute staging)
//
// The engine never talks to pixels directly. It drives a Layer pair
// (accumulation + persistent) obtained from an Allocator; backends register
// themselves with the allocator registry at init time.
//
// # Coordinate System
//
// Points are in drawing-surface units with origin at the top-left, X
// increasing right and Y increasing down. Conversion from device/client
// coordinates is the host's responsibility.
//
// # Concurrency
//
// The engine is single-threaded by design: all pointer callbacks must be
// delivered on one logical thread of control, and samples within a stroke
// must stay in arrival order. Nothing in the pipeline blocks.
package ink

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
