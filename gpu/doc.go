//go:build !nogpu

// Package gpu renders colorlab scenes with wgpu/hal render pipelines.
//
// Each render.Object carries a WGSL program (see render/shader) and uniforms.
// The Renderer builds one Pipeline per program, uploads the object's vertices
// and uniforms into per-frame buffers and records one draw per object into a
// render pass. Targets that expose a hal.TextureView (window surfaces) are
// drawn directly; CPU targets are drawn into an offscreen texture and read
// back.
//
// The device is normally supplied by the host through a provider exposing
// HalDevice() and HalQueue(). OpenDevice creates a headless Vulkan device for
// command-line use.
//
// Build with -tags nogpu to exclude this package's GPU code paths.
package gpu
