// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rcrowley/go-metrics"

	"github.com/gogpu/colorlab"
)

// DefaultFPS is the frame rate of a Loop created without WithFPS.
const DefaultFPS = 60

// ErrStop may be returned by a FrameSink to end a loop without error.
var ErrStop = errors.New("render: stop loop")

// Frame is a rendered frame handed to a FrameSink.
type Frame struct {
	// Index counts frames from zero.
	Index int

	// Time is the animation time in seconds.
	Time float64

	// Target holds the rendered pixels. It is reused for the next frame.
	Target RenderTarget
}

// FrameSink consumes rendered frames: it may encode them, present them or
// stream them. Returning ErrStop ends the loop cleanly; any other error
// aborts it.
type FrameSink func(Frame) error

// LoopOption configures a Loop during creation.
type LoopOption func(*loopOptions)

type loopOptions struct {
	fps      int
	renderer Renderer
	registry metrics.Registry
	now      func() time.Time
}

func defaultLoopOptions() loopOptions {
	return loopOptions{
		fps: DefaultFPS,
		now: time.Now,
	}
}

// WithFPS sets the frame rate. Values below 1 are ignored.
func WithFPS(fps int) LoopOption {
	return func(o *loopOptions) {
		if fps > 0 {
			o.fps = fps
		}
	}
}

// WithRenderer sets the renderer used for each frame.
// The default is a SoftwareRenderer.
func WithRenderer(r Renderer) LoopOption {
	return func(o *loopOptions) {
		o.renderer = r
	}
}

// WithRegistry sets the go-metrics registry that receives the loop's
// "render.frame" timer and "render.frames" counter. Without it each loop
// keeps a private registry.
func WithRegistry(r metrics.Registry) LoopOption {
	return func(o *loopOptions) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) LoopOption {
	return func(o *loopOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// Loop drives a scene over time: on every tick it converts wall-clock time to
// seconds since start, applies any pending resize, renders the scene into the
// target and hands the frame to a sink.
//
// Run and Frames must not be called concurrently. SetSize may be called from
// any goroutine.
type Loop struct {
	scene  *Scene
	target RenderTarget
	opts   loopOptions

	frameTimer metrics.Timer
	frameCount metrics.Counter

	mu      sync.Mutex
	resize  bool
	resizeW int
	resizeH int
}

// NewLoop creates a loop rendering scene into target.
func NewLoop(scene *Scene, target RenderTarget, opts ...LoopOption) *Loop {
	o := defaultLoopOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.renderer == nil {
		o.renderer = NewSoftwareRenderer()
	}
	if o.registry == nil {
		o.registry = metrics.NewRegistry()
	}

	return &Loop{
		scene:      scene,
		target:     target,
		opts:       o,
		frameTimer: metrics.GetOrRegisterTimer("render.frame", o.registry),
		frameCount: metrics.GetOrRegisterCounter("render.frames", o.registry),
	}
}

// FPS returns the configured frame rate.
func (l *Loop) FPS() int {
	return l.opts.fps
}

// Target returns the render target.
func (l *Loop) Target() RenderTarget {
	return l.target
}

// SetSize requests a new target size. It takes effect before the next frame
// and only for Resizable targets.
func (l *Loop) SetSize(width, height int) {
	l.mu.Lock()
	l.resize, l.resizeW, l.resizeH = true, width, height
	l.mu.Unlock()
}

func (l *Loop) applyResize() {
	l.mu.Lock()
	pending, w, h := l.resize, l.resizeW, l.resizeH
	l.resize = false
	l.mu.Unlock()

	if !pending || (w == l.target.Width() && h == l.target.Height()) {
		return
	}
	r, ok := l.target.(Resizable)
	if !ok {
		colorlab.Logger().Warn("render: target is not resizable", "width", w, "height", h)
		return
	}
	r.Resize(w, h)
	colorlab.Logger().Debug("render: target resized", "width", w, "height", h)
}

// RenderAt renders a single frame at time seconds and passes it to sink.
func (l *Loop) RenderAt(index int, seconds float64, sink FrameSink) error {
	l.applyResize()

	var err error
	l.frameTimer.Time(func() {
		err = l.opts.renderer.Render(l.target, l.scene, seconds)
	})
	if err != nil {
		return fmt.Errorf("render: frame %d: %w", index, err)
	}
	l.frameCount.Inc(1)

	if sink == nil {
		return nil
	}
	return sink(Frame{Index: index, Time: seconds, Target: l.target})
}

// Frames renders n frames at fixed steps of 1/FPS seconds, independent of
// the wall clock. It is the offline counterpart of Run.
func (l *Loop) Frames(n int, start float64, sink FrameSink) error {
	step := 1 / float64(l.opts.fps)
	for i := range n {
		if err := l.RenderAt(i, start+float64(i)*step, sink); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Run renders frames at the configured rate until ctx is canceled or the
// sink fails. Animation time is the wall-clock time elapsed since Run began.
// Ticks missed while a frame is rendering are dropped, not queued.
//
// Run returns nil when stopped by ctx or ErrStop.
func (l *Loop) Run(ctx context.Context, sink FrameSink) error {
	ticker := time.NewTicker(time.Second / time.Duration(l.opts.fps))
	defer ticker.Stop()

	start := l.opts.now()
	colorlab.Logger().Info("render: loop started", "fps", l.opts.fps)

	for index := 0; ; index++ {
		if ctx.Err() != nil {
			colorlab.Logger().Info("render: loop stopped", "frames", index)
			return nil
		}
		elapsed := l.opts.now().Sub(start).Seconds()
		if err := l.RenderAt(index, elapsed, sink); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			colorlab.Logger().Info("render: loop stopped", "frames", index+1)
			return nil
		case <-ticker.C:
		}
	}
}

// LoopStats summarizes frame render times.
type LoopStats struct {
	Frames int64
	Mean   time.Duration
	P95    time.Duration
	Max    time.Duration
	Rate   float64 // frames per second, one-minute moving average
}

// Stats returns a snapshot of the loop's frame metrics.
func (l *Loop) Stats() LoopStats {
	s := l.frameTimer.Snapshot()
	return LoopStats{
		Frames: l.frameCount.Count(),
		Mean:   time.Duration(s.Mean()),
		P95:    time.Duration(s.Percentile(0.95)),
		Max:    time.Duration(s.Max()),
		Rate:   s.Rate1(),
	}
}
