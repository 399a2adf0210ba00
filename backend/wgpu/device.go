// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"github.com/gogpu/gpucontext"
)

// DeviceHandle provides GPU device access from the host application.
//
// This is the integration point between ink and GPU frameworks like gogpu:
// the host application implements DeviceHandle (usually by returning its
// shared gpucontext device and queue) and passes it to NewAllocator.
//
// Key principle: ink RECEIVES the device from the host, it does NOT create
// one. This keeps GPU resources shared between ink and the host and avoids
// duplicate device creation.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing an
// ink-specific name for the interface while maintaining full compatibility
// with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle with no device. Useful in tests and
// as an explicit "CPU only" marker.
type NullDeviceHandle struct{}

// Device returns nil.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }
