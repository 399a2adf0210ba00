// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster provides the CPU layer backend for ink.
//
// Layers are backed by *image.RGBA at device-pixel resolution and stamps
// are rendered as anti-aliased filled circles with source-over blending.
// Importing the package registers the backend under the name "image" at
// priority 10:
//
//	import _ "github.com/gogpu/ink/raster"
package raster
