// Package tracking holds the process-wide gaze tracking state shared between
// request handlers and the input loop.
package tracking

import (
	"sync/atomic"
	"time"

	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/gaze"
)

// State is safe for concurrent use. Every field is an independent atomic, so
// readers may observe a direction and an enabled flag from different writes;
// the input loop tolerates that for one slice.
type State struct {
	direction  atomic.Int32
	enabled    atomic.Bool
	lastUpdate atomic.Int64 // unix nanoseconds, 0 = never

	now func() time.Time
}

// New returns a State in its initial {None, disabled, never} form.
func New() *State {
	return &State{now: time.Now}
}

// SetClock replaces the time source. Tests only.
func (s *State) SetClock(now func() time.Time) { s.now = now }

// Direction returns the most recently written direction.
func (s *State) Direction() gaze.Direction {
	return gaze.Direction(s.direction.Load())
}

// Observe records a classified gaze direction. The update timestamp only
// moves when the direction actually changes.
func (s *State) Observe(d gaze.Direction) (changed bool) {
	old := gaze.Direction(s.direction.Swap(int32(d)))
	if old == d {
		return false
	}
	s.lastUpdate.Store(s.now().UnixNano())
	return true
}

// Override writes d without touching the update timestamp.
func (s *State) Override(d gaze.Direction) {
	s.direction.Store(int32(d))
}

// Enabled reports whether gaze directions may drive input.
func (s *State) Enabled() bool { return s.enabled.Load() }

// Toggle flips the tracking flag and returns the new value.
func (s *State) Toggle() bool {
	for {
		old := s.enabled.Load()
		if s.enabled.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// SinceUpdate returns the time since the last direction change. ok is false
// if no gaze update has changed the direction yet.
func (s *State) SinceUpdate() (d time.Duration, ok bool) {
	ns := s.lastUpdate.Load()
	if ns == 0 {
		return 0, false
	}
	return s.now().Sub(time.Unix(0, ns)), true
}
