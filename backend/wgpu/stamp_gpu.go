// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	_ "embed"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"

	"github.com/gogpu/ink"
)

//go:embed shaders/stamp.wgsl
var stampShaderWGSL string

// GPUStamp is the GPU-compatible layout of an ink.Stamp.
// Must match the Stamp struct in stamp.wgsl.
type GPUStamp struct {
	X       float32 // Center X in device pixels
	Y       float32 // Center Y in device pixels
	Scale   float32 // Multiplier over the base radius
	Padding float32 // Padding for alignment
	R       float32 // Color red component [0, 1]
	G       float32 // Color green component [0, 1]
	B       float32 // Color blue component [0, 1]
	A       float32 // Color alpha component [0, 1]
}

// GPUSplatConfig contains splat pass configuration.
// Must match Config in stamp.wgsl.
type GPUSplatConfig struct {
	ViewportWidth  uint32  // Viewport width in pixels
	ViewportHeight uint32  // Viewport height in pixels
	StampCount     uint32  // Number of stamps in the batch
	BaseRadius     float32 // Unscaled stamp radius in device pixels
	Padding1       uint32  // Padding for alignment
	Padding2       uint32  // Padding for alignment
	Padding3       uint32  // Padding for alignment
	Padding4       uint32  // Padding for alignment
}

// StampsToGPU converts stamps from surface units to the GPU layout at the
// given device scale.
func StampsToGPU(stamps []ink.Stamp, scale float64) []GPUStamp {
	result := make([]GPUStamp, len(stamps))
	for i, s := range stamps {
		result[i] = GPUStamp{
			X:     float32(s.Point.X * scale),
			Y:     float32(s.Point.Y * scale),
			Scale: float32(s.Scale * scale),
			R:     float32(s.Color.R),
			G:     float32(s.Color.G),
			B:     float32(s.Color.B),
			A:     float32(s.Color.A),
		}
	}
	return result
}

// StampSplatter renders stamp batches on the GPU.
// It creates compute pipelines and manages GPU state for the splat pass.
//
// Note: full GPU buffer binding requires HAL API extensions to expose
// buffer handles. Currently pipeline creation and data conversion are
// exercised end to end and splatting runs on the CPU mirror of the shader
// algorithm.
type StampSplatter struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue

	// Compute pipelines
	splatPipeline hal.ComputePipeline
	clearPipeline hal.ComputePipeline

	// Shader module (cached)
	shaderModule hal.ShaderModule

	// Pipeline layout and bind group layouts
	pipelineLayout   hal.PipelineLayout
	inputBindLayout  hal.BindGroupLayout
	outputBindLayout hal.BindGroupLayout

	// Compiled SPIR-V (cached for verification)
	spirvCode []uint32

	// Viewport dimensions
	width  uint16
	height uint16

	// State
	initialized bool
}

// NewStampSplatter creates a new GPU stamp splatter.
// Returns an error if GPU compute is not supported.
func NewStampSplatter(device hal.Device, queue hal.Queue, width, height uint16) (*StampSplatter, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("wgpu: device and queue are required")
	}

	s := &StampSplatter{
		device: device,
		queue:  queue,
		width:  width,
		height: height,
	}

	if err := s.init(); err != nil {
		s.Destroy()
		return nil, err
	}

	return s, nil
}

// init initializes GPU resources (pipelines, layouts).
func (s *StampSplatter) init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Compile WGSL to SPIR-V
	spirvBytes, err := naga.Compile(stampShaderWGSL)
	if err != nil {
		return fmt.Errorf("wgpu: failed to compile stamp shader: %w", err)
	}

	// Convert bytes to uint32 slice for SPIR-V
	// SPIR-V is little-endian 32-bit words
	s.spirvCode = make([]uint32, len(spirvBytes)/4)
	for i := range s.spirvCode {
		s.spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	// Create shader module
	shaderModule, err := s.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "stamp_shader",
		Source: hal.ShaderSource{
			SPIRV: s.spirvCode,
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: failed to create shader module: %w", err)
	}
	s.shaderModule = shaderModule

	if err := s.createBindGroupLayouts(); err != nil {
		return err
	}
	if err := s.createPipelineLayout(); err != nil {
		return err
	}
	if err := s.createPipelines(); err != nil {
		return err
	}

	s.initialized = true
	return nil
}

// createBindGroupLayouts creates the bind group layouts for the pipeline.
func (s *StampSplatter) createBindGroupLayouts() error {
	// Input bind group layout (group 0): config uniform + stamp list
	inputLayout, err := s.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "stamp_input_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type:           types.BufferBindingTypeUniform,
					MinBindingSize: 32, // sizeof(Config)
				},
			},
			{
				Binding:    1,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeReadOnlyStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: failed to create input bind group layout: %w", err)
	}
	s.inputBindLayout = inputLayout

	// Output bind group layout (group 1): pixel buffer
	outputLayout, err := s.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "stamp_output_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: failed to create output bind group layout: %w", err)
	}
	s.outputBindLayout = outputLayout

	return nil
}

// createPipelineLayout creates the pipeline layout.
func (s *StampSplatter) createPipelineLayout() error {
	layout, err := s.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "stamp_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{s.inputBindLayout, s.outputBindLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: failed to create pipeline layout: %w", err)
	}
	s.pipelineLayout = layout
	return nil
}

// createPipelines creates the compute pipelines.
func (s *StampSplatter) createPipelines() error {
	splatPipeline, err := s.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "stamp_splat_pipeline",
		Layout: s.pipelineLayout,
		Compute: hal.ComputeState{
			Module:     s.shaderModule,
			EntryPoint: "cs_splat",
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: failed to create splat pipeline: %w", err)
	}
	s.splatPipeline = splatPipeline

	clearPipeline, err := s.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "stamp_clear_pipeline",
		Layout: s.pipelineLayout,
		Compute: hal.ComputeState{
			Module:     s.shaderModule,
			EntryPoint: "cs_clear",
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: failed to create clear pipeline: %w", err)
	}
	s.clearPipeline = clearPipeline

	return nil
}

// Splat renders a stamp batch into the RGBA8 pixel buffer.
//
// Note: GPU dispatch requires buffer binding which needs HAL API
// extensions. Until then coverage is computed on the CPU using the same
// algorithm as the shader.
func (s *StampSplatter) Splat(pixels []uint8, stamps []GPUStamp, baseRadius float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return fmt.Errorf("wgpu: splatter not initialized")
	}
	if len(stamps) == 0 {
		return nil
	}

	cfg := GPUSplatConfig{
		ViewportWidth:  uint32(s.width),
		ViewportHeight: uint32(s.height),
		StampCount:     uint32(len(stamps)),
		BaseRadius:     baseRadius,
	}

	splatCPU(pixels, stamps, cfg)
	return nil
}

// splatCPU computes the splat pass on the CPU (mirrors the GPU shader
// algorithm). This serves as reference implementation and fallback.
func splatCPU(pixels []uint8, stamps []GPUStamp, cfg GPUSplatConfig) {
	w := int(cfg.ViewportWidth)
	h := int(cfg.ViewportHeight)

	for _, st := range stamps {
		radius := float64(cfg.BaseRadius * st.Scale)
		if radius <= 0 {
			continue
		}
		cx := float64(st.X)
		cy := float64(st.Y)

		x0 := clampInt(int(math.Floor(cx-radius-1)), 0, w)
		x1 := clampInt(int(math.Ceil(cx+radius+1)), 0, w)
		y0 := clampInt(int(math.Floor(cy-radius-1)), 0, h)
		y1 := clampInt(int(math.Ceil(cy+radius+1)), 0, h)

		for y := y0; y < y1; y++ {
			py := float64(y) + 0.5
			for x := x0; x < x1; x++ {
				px := float64(x) + 0.5
				dist := math.Hypot(px-cx, py-cy)

				cov := radius + 0.5 - dist
				if cov <= 0 {
					continue
				}
				if cov > 1 {
					cov = 1
				}

				idx := (y*w + x) * 4
				blendOver(pixels[idx:idx+4], st, cov)
			}
		}
	}
}

// blendOver applies source-over with coverage-weighted source alpha to one
// RGBA8 pixel, matching blend_over in stamp.wgsl.
func blendOver(dst []uint8, st GPUStamp, cov float64) {
	sa := float64(st.A) * cov
	inv := 1.0 - sa

	da := float64(dst[3]) / 255.0
	outA := sa + da*inv
	if outA <= 0 {
		dst[0], dst[1], dst[2], dst[3] = 0, 0, 0, 0
		return
	}

	outR := (float64(st.R)*sa + float64(dst[0])/255.0*da*inv) / outA
	outG := (float64(st.G)*sa + float64(dst[1])/255.0*da*inv) / outA
	outB := (float64(st.B)*sa + float64(dst[2])/255.0*da*inv) / outA

	dst[0] = uint8(clamp01(outR)*255 + 0.5)
	dst[1] = uint8(clamp01(outG)*255 + 0.5)
	dst[2] = uint8(clamp01(outB)*255 + 0.5)
	dst[3] = uint8(clamp01(outA)*255 + 0.5)
}

// Destroy releases GPU resources in reverse creation order.
// Safe to call on a partially initialized splatter.
func (s *StampSplatter) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.device == nil {
		return
	}

	if s.splatPipeline != nil {
		s.device.DestroyComputePipeline(s.splatPipeline)
		s.splatPipeline = nil
	}
	if s.clearPipeline != nil {
		s.device.DestroyComputePipeline(s.clearPipeline)
		s.clearPipeline = nil
	}
	if s.pipelineLayout != nil {
		s.device.DestroyPipelineLayout(s.pipelineLayout)
		s.pipelineLayout = nil
	}
	if s.inputBindLayout != nil {
		s.device.DestroyBindGroupLayout(s.inputBindLayout)
		s.inputBindLayout = nil
	}
	if s.outputBindLayout != nil {
		s.device.DestroyBindGroupLayout(s.outputBindLayout)
		s.outputBindLayout = nil
	}
	if s.shaderModule != nil {
		s.device.DestroyShaderModule(s.shaderModule)
		s.shaderModule = nil
	}

	s.initialized = false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
