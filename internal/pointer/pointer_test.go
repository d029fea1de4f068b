package pointer

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/gaze"
)

type recordingSink struct {
	mu     sync.Mutex
	points []gaze.Point
}

func (r *recordingSink) Gaze(p gaze.Point) gaze.Direction {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.points = append(r.points, p)
	return gaze.None
}

func (r *recordingSink) snapshot() []gaze.Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]gaze.Point(nil), r.points...)
}

func TestFeeder_ForwardsMovesOnly(t *testing.T) {
	path := [][2]int{{10, 10}, {10, 10}, {20, 10}, {20, 10}, {20, 30}}
	sink := &recordingSink{}
	f := NewFeeder(sink, 1000, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	i := 0
	f.locate = func() (int, int) {
		p := path[i]
		if i < len(path)-1 {
			i++
		} else {
			cancel()
		}
		return p[0], p[1]
	}

	done := make(chan struct{})
	go func() {
		f.Run(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("feeder did not stop")
	}

	want := []gaze.Point{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 30}}
	if got := sink.snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("points got %v want %v", got, want)
	}
}

func TestParseHotkey(t *testing.T) {
	got, err := ParseHotkey("Ctrl+Shift+E")
	if err != nil {
		t.Fatalf("ParseHotkey: %v", err)
	}
	if want := []string{"e", "ctrl", "shift"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseHotkey got %v want %v", got, want)
	}
	if got, _ := ParseHotkey("f9"); !reflect.DeepEqual(got, []string{"f9"}) {
		t.Fatalf("single key got %v", got)
	}
	for _, bad := range []string{"", "ctrl+", "+e"} {
		if _, err := ParseHotkey(bad); err == nil {
			t.Fatalf("ParseHotkey(%q) accepted", bad)
		}
	}
}
