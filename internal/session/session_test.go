package session

import (
	"testing"

	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/emu"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/gaze"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/tracking"
)

type fakeInjector struct {
	running  bool
	injected []emu.Button
}

func (f *fakeInjector) Inject(b emu.Button) bool {
	if !f.running {
		return false
	}
	f.injected = append(f.injected, b)
	return true
}

func (f *fakeInjector) Running() bool { return f.running }

func newSession(running bool) (*Session, *fakeInjector) {
	inj := &fakeInjector{running: running}
	cls := gaze.Classifier{Width: 1920, Height: 1080, DeadZone: 100}
	return New(tracking.New(), cls, inj, nil), inj
}

func TestSession_GazeUpdatesStatus(t *testing.T) {
	s, _ := newSession(true)
	if d := s.Gaze(gaze.Point{X: 1200, Y: 540}); d != gaze.Right {
		t.Fatalf("Gaze got %v want right", d)
	}
	st := s.Status()
	if st.Direction != gaze.Right || !st.Updated || !st.GameRunning {
		t.Fatalf("Status got %+v", st)
	}
	s.Gaze(gaze.Point{X: 960, Y: 541})
	if s.Status().Direction != gaze.None {
		t.Fatalf("dead-zone gaze did not clear the direction")
	}
}

func TestSession_ManualOverride(t *testing.T) {
	s, _ := newSession(false)
	s.Gaze(gaze.Point{X: 0, Y: 540})
	s.Press(gaze.Down)
	if s.Status().Direction != gaze.Down {
		t.Fatalf("Press did not override the gaze direction")
	}
	s.Release()
	if s.Status().Direction != gaze.None {
		t.Fatalf("Release left %v", s.Status().Direction)
	}
}

func TestSession_Button(t *testing.T) {
	s, inj := newSession(true)
	if !s.Button(emu.ButtonStart) {
		t.Fatalf("Button(start) not queued")
	}
	if s.Button(emu.ButtonUp) {
		t.Fatalf("d-pad accepted as an action button")
	}
	if len(inj.injected) != 1 || inj.injected[0] != emu.ButtonStart {
		t.Fatalf("injected got %v", inj.injected)
	}

	idle, idleInj := newSession(false)
	if idle.Button(emu.ButtonA) || len(idleInj.injected) != 0 {
		t.Fatalf("Button reached a stopped emulator")
	}
}

func TestSession_ToggleTwice(t *testing.T) {
	s, _ := newSession(false)
	if !s.Toggle() || !s.Status().TrackingEnabled {
		t.Fatalf("first Toggle did not enable tracking")
	}
	if s.Toggle() || s.Status().TrackingEnabled {
		t.Fatalf("second Toggle did not restore tracking")
	}
}
