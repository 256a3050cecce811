// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

// Errors returned by renderers.
var (
	ErrNilTarget   = errors.New("render: nil target")
	ErrNoCPUAccess = errors.New("render: target does not support CPU rendering")
)

// Renderer draws a scene to a render target.
//
// Different implementations provide CPU or GPU rendering:
//
//   - SoftwareRenderer: CPU rasterization with golang.org/x/image/vector
//   - gpu.Renderer: hal render pipelines built from the scene's shaders
//
// Renderers keep no per-frame state between Render calls, so the same renderer
// can be used with different targets and scenes.
//
// Thread Safety: Renderers are NOT thread-safe. Each renderer should be used
// from a single goroutine, or external synchronization must be used.
//
// Example:
//
//	renderer := render.NewSoftwareRenderer()
//	target := render.NewPixmapTarget(800, 600)
//	if err := renderer.Render(target, scene, 1.5); err != nil {
//	    log.Printf("render failed: %v", err)
//	}
type Renderer interface {
	// Render draws the scene to the target as it looks at time seconds.
	//
	// The scene is not modified by this operation and can be rendered
	// multiple times to different targets.
	Render(target RenderTarget, scene *Scene, time float64) error

	// Flush ensures all pending rendering operations are complete.
	//
	// For CPU renderers, this is a no-op as operations are synchronous.
	Flush() error
}

// RendererCapabilities describes the features supported by a renderer.
type RendererCapabilities struct {
	// IsGPU indicates if this is a GPU-accelerated renderer.
	IsGPU bool

	// SupportsAntialiasing indicates if triangle edges are anti-aliased.
	SupportsAntialiasing bool

	// SupportsSurfaces indicates if GPU-only targets can be rendered to.
	SupportsSurfaces bool

	// MaxTextureSize is the maximum texture dimension (0 = unlimited).
	MaxTextureSize int
}

// CapableRenderer is an optional interface for renderers that can
// report their capabilities.
type CapableRenderer interface {
	Renderer

	// Capabilities returns the renderer's capabilities.
	Capabilities() RendererCapabilities
}
