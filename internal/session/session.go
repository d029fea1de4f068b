// Package session ties the tracking state, the classifier and the input loop
// together. One Session is built at start-up and shared by every input source.
package session

import (
	"log/slog"
	"time"

	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/emu"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/gaze"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/tracking"
)

// Injector runs a single button pulse on the emulator. It reports false when
// there is no running emulator to receive it.
type Injector interface {
	Inject(b emu.Button) bool
	Running() bool
}

// Status is a point-in-time view of the session.
type Status struct {
	GameRunning     bool
	TrackingEnabled bool
	Direction       gaze.Direction
	SinceUpdate     time.Duration
	Updated         bool // false until a gaze update has changed the direction
}

type Session struct {
	state      *tracking.State
	classifier gaze.Classifier
	emulator   Injector
	log        *slog.Logger
}

func New(state *tracking.State, classifier gaze.Classifier, emulator Injector, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		state:      state,
		classifier: classifier,
		emulator:   emulator,
		log:        log.With("component", "session"),
	}
}

// Gaze classifies p and records the result as the current direction.
func (s *Session) Gaze(p gaze.Point) gaze.Direction {
	d := s.classifier.Classify(p)
	if s.state.Observe(d) {
		s.log.Debug("direction changed", "direction", d.String(), "x", p.X, "y", p.Y)
	}
	return d
}

// Press holds d as the current direction, bypassing the classifier.
func (s *Session) Press(d gaze.Direction) {
	s.state.Override(d)
}

// Release clears the current direction.
func (s *Session) Release() {
	s.state.Override(gaze.None)
}

// Button queues one pulse of an action button. Non-action buttons and a
// stopped emulator are ignored.
func (s *Session) Button(b emu.Button) bool {
	if !b.IsAction() {
		return false
	}
	return s.emulator.Inject(b)
}

// Toggle flips tracking and returns the new value.
func (s *Session) Toggle() bool {
	on := s.state.Toggle()
	s.log.Info("eye tracking toggled", "enabled", on)
	return on
}

func (s *Session) Status() Status {
	since, ok := s.state.SinceUpdate()
	return Status{
		GameRunning:     s.emulator.Running(),
		TrackingEnabled: s.state.Enabled(),
		Direction:       s.state.Direction(),
		SinceUpdate:     since,
		Updated:         ok,
	}
}
