package server

import (
	"math"
	"sync"

	"github.com/gogpu/colorlab"
	"github.com/gogpu/colorlab/render"
)

// milli is the fixed-point scale of values exchanged over HTTP.
const milli = 1000

// State is the animation state shared between HTTP handlers and frame
// rendering.
type State struct {
	mu         sync.RWMutex
	frequency  float64
	saturation float64
	background colorlab.Color
	hasBg      bool
}

// NewState returns the state of a default color wheel with no background.
func NewState() *State {
	return &State{
		frequency:  render.DefaultFrequency,
		saturation: render.DefaultSaturation,
	}
}

// Var returns a named variable scaled by 1000. ok is false for unknown names.
func (s *State) Var(name string) (v int, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch name {
	case "frequency":
		return toMilli(s.frequency), true
	case "saturation":
		return toMilli(s.saturation), true
	}
	return 0, false
}

// SetVar sets a named variable from its value scaled by 1000.
func (s *State) SetVar(name string, v int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := float64(v) / milli
	switch name {
	case "frequency":
		s.frequency = f
	case "saturation":
		s.saturation = min(max(f, 0), 1)
	default:
		return false
	}
	return true
}

// Background returns the background color, if any.
func (s *State) Background() (colorlab.Color, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background, s.hasBg
}

// SetBackground sets the background color.
func (s *State) SetBackground(c colorlab.Color) {
	s.mu.Lock()
	s.background, s.hasBg = c, true
	s.mu.Unlock()
}

// ClearBackground removes the background color.
func (s *State) ClearBackground() {
	s.mu.Lock()
	s.background, s.hasBg = colorlab.Color{}, false
	s.mu.Unlock()
}

// Snapshot is the JSON form of State.
type Snapshot struct {
	Frequency  int             `json:"frequency"`
	Saturation int             `json:"saturation"`
	Background *colorlab.Color `json:"background"`
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	snap := Snapshot{
		Frequency:  toMilli(s.frequency),
		Saturation: toMilli(s.saturation),
	}
	if s.hasBg {
		bg := s.background
		snap.Background = &bg
	}
	return snap
}

// Scene builds a scene for the current state. name selects "wheel"
// (default) or "triangle". The returned Snapshot is the state the scene
// was built from.
func (s *State) Scene(name string) (*render.Scene, Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var scene *render.Scene
	switch name {
	case "", "wheel":
		scene = render.NewScene(render.WithObjects(render.NewColorWheel(
			render.WithFrequency(s.frequency),
			render.WithSaturation(s.saturation),
		)))
	case "triangle":
		scene = render.NewScene(render.WithObjects(render.NewTriangle()))
	default:
		return nil, Snapshot{}, &UnknownSceneError{Name: name}
	}
	if s.hasBg {
		scene.SetBackground(s.background)
	}
	return scene, s.snapshotLocked(), nil
}

// UnknownSceneError is returned for scene names other than "wheel" and
// "triangle".
type UnknownSceneError struct {
	Name string
}

func (e *UnknownSceneError) Error() string {
	return "server: unknown scene " + e.Name
}

func toMilli(f float64) int {
	return int(math.Round(f * milli))
}
