package tracking

import (
	"sync"
	"testing"
	"time"

	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/gaze"
)

func TestState_Initial(t *testing.T) {
	s := New()
	if s.Direction() != gaze.None {
		t.Fatalf("initial direction got %v want none", s.Direction())
	}
	if s.Enabled() {
		t.Fatalf("tracking enabled at start")
	}
	if _, ok := s.SinceUpdate(); ok {
		t.Fatalf("SinceUpdate reported an update before any gaze data")
	}
}

func TestState_ToggleTwiceRestores(t *testing.T) {
	s := New()
	if got := s.Toggle(); !got {
		t.Fatalf("first toggle got %v want true", got)
	}
	if got := s.Toggle(); got {
		t.Fatalf("second toggle got %v want false", got)
	}
	if s.Enabled() {
		t.Fatalf("Enabled after two toggles")
	}
}

func TestState_ObserveStampsOnChangeOnly(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := base
	s := New()
	s.SetClock(func() time.Time { return now })

	if !s.Observe(gaze.Right) {
		t.Fatalf("Observe(right) reported no change")
	}
	now = base.Add(2 * time.Second)
	if s.Observe(gaze.Right) {
		t.Fatalf("repeated Observe(right) reported a change")
	}
	since, ok := s.SinceUpdate()
	if !ok || since != 2*time.Second {
		t.Fatalf("SinceUpdate got %v,%v want 2s,true", since, ok)
	}

	s.Observe(gaze.None)
	if since, _ := s.SinceUpdate(); since != 0 {
		t.Fatalf("SinceUpdate after change got %v want 0", since)
	}
}

func TestState_OverrideKeepsTimestamp(t *testing.T) {
	s := New()
	s.Override(gaze.Up)
	if s.Direction() != gaze.Up {
		t.Fatalf("Override(up) got %v", s.Direction())
	}
	if _, ok := s.SinceUpdate(); ok {
		t.Fatalf("Override stamped the gaze timestamp")
	}
}

func TestState_ConcurrentToggle(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Toggle()
			s.Observe(gaze.Left)
			_ = s.Direction()
		}()
	}
	wg.Wait()
	if s.Enabled() {
		t.Fatalf("even number of toggles left tracking enabled")
	}
}
