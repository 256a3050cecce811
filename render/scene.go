// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/colorlab"

// Scene is an ordered list of objects over an optional background color.
//
// Objects are drawn in the order they were added. When no background is set
// the target is not cleared, so a scene can be layered over existing pixels.
//
// Scene is not safe for concurrent use; build one per goroutine or guard it
// externally.
type Scene struct {
	background    colorlab.Color
	hasBackground bool
	objects       []Object
}

// SceneOption configures a Scene during creation.
type SceneOption func(*Scene)

// WithBackground sets the color the target is cleared to before drawing.
func WithBackground(c colorlab.Color) SceneOption {
	return func(s *Scene) {
		s.SetBackground(c)
	}
}

// WithObjects appends objects to the scene.
func WithObjects(objs ...Object) SceneOption {
	return func(s *Scene) {
		s.Add(objs...)
	}
}

// NewScene creates an empty scene without a background and applies opts.
func NewScene(opts ...SceneOption) *Scene {
	s := &Scene{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewTriangleScene returns the default triangle over black.
func NewTriangleScene() *Scene {
	return NewScene(WithBackground(colorlab.Black), WithObjects(NewTriangle()))
}

// NewWheelScene returns a full-canvas color wheel configured by opts.
func NewWheelScene(opts ...WheelOption) *Scene {
	return NewScene(WithObjects(NewColorWheel(opts...)))
}

// SetBackground sets the clear color.
func (s *Scene) SetBackground(c colorlab.Color) {
	s.background = c
	s.hasBackground = true
}

// ClearBackground removes the background so the target is no longer cleared.
func (s *Scene) ClearBackground() {
	s.background = colorlab.Color{}
	s.hasBackground = false
}

// Background returns the clear color and whether one is set.
func (s *Scene) Background() (colorlab.Color, bool) {
	return s.background, s.hasBackground
}

// Add appends objects to the scene. Nil objects are ignored.
func (s *Scene) Add(objs ...Object) {
	for _, obj := range objs {
		if obj != nil {
			s.objects = append(s.objects, obj)
		}
	}
}

// Objects returns the objects in draw order. The slice must not be modified.
func (s *Scene) Objects() []Object {
	return s.objects
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	return len(s.objects)
}

// IsEmpty reports whether rendering the scene would leave a target untouched.
func (s *Scene) IsEmpty() bool {
	return len(s.objects) == 0 && !s.hasBackground
}

// Reset removes every object and the background.
func (s *Scene) Reset() {
	s.objects = s.objects[:0]
	s.ClearBackground()
}

// RenderFrame draws the scene at time seconds with a software renderer.
func (s *Scene) RenderFrame(target RenderTarget, time float64) error {
	return NewSoftwareRenderer().Render(target, s, time)
}
