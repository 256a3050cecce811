// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws colorlab scenes to CPU or GPU targets.
//
// # Objects
//
// A Scene holds an optional background color and an ordered list of Objects.
// Two objects are provided:
//
//   - Triangle: a triangle with per-vertex colors interpolated across it
//   - ColorWheel: a full-canvas hue wheel turning at a configurable frequency
//
// Every Object describes itself twice: as vertices plus a Go Shade function
// for the SoftwareRenderer, and as a WGSL program plus uniforms for GPU
// renderers (see the gpu package). Both descriptions produce the same image.
//
// # Targets
//
// PixmapTarget renders into an *image.RGBA. SurfaceTarget wraps a texture
// view supplied by the host, usually the current frame of a window surface.
//
// # Animation
//
// Loop replaces a browser's requestAnimationFrame: it ticks at a fixed rate,
// converts wall time to seconds, resizes the target on request, renders and
// hands each Frame to a FrameSink. Frame timings are recorded with go-metrics.
//
//	scene := render.NewWheelScene(render.WithFrequency(0.2))
//	target := render.NewPixmapTarget(640, 480)
//	loop := render.NewLoop(scene, target, render.WithFPS(30))
//	err := loop.Run(ctx, func(f render.Frame) error {
//	    return encode(f.Target.(*render.PixmapTarget).Image())
//	})
//
// # Coordinates
//
// Vertices are in clip space: x and y in [-1, 1], y up, (0, 0) at the center
// of the target, matching the GPU pipeline.
package render
