// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu provides the GPU layer backend for ink using WebGPU.
//
// The backend receives its GPU device from the host application via a
// DeviceHandle — it never creates a device of its own. Stamp splatting is
// expressed as a compute shader (shaders/stamp.wgsl) compiled to SPIR-V
// through naga, with bind group layouts and compute pipelines created over
// wgpu/hal.
//
// Current staging: pipelines and data conversion are real, but dispatching
// with bound storage buffers needs HAL API extensions, so execution uses
// the CPU mirror of the shader algorithm. Hosts register the backend
// explicitly once they hold a device:
//
//	alloc := wgpu.NewAllocator(handle)
//	ink.Register("wgpu", 100, alloc, alloc.Available)
package wgpu
