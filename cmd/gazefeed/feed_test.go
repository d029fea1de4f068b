package main

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/emu"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/gaze"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/session"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/tracking"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/web"
)

type idleEmulator struct{}

func (idleEmulator) Inject(emu.Button) bool { return false }
func (idleEmulator) Running() bool          { return false }

func TestReadPoints(t *testing.T) {
	in := "# recorded\n1200,540\n\n 960 300 \n10\t20\n"
	pts, err := readPoints(strings.NewReader(in))
	if err != nil {
		t.Fatalf("readPoints: %v", err)
	}
	want := []point{{1200, 540}, {960, 300}, {10, 20}}
	if len(pts) != len(want) {
		t.Fatalf("got %v want %v", pts, want)
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Fatalf("point %d got %v want %v", i, pts[i], want[i])
		}
	}

	if _, err := readPoints(strings.NewReader("12\n")); err == nil {
		t.Fatalf("single value accepted")
	}
	if _, err := readPoints(strings.NewReader("a,b\n")); err == nil {
		t.Fatalf("non-numeric accepted")
	}
}

func TestReplayAgainstServer(t *testing.T) {
	state := tracking.New()
	sess := session.New(state, gaze.Classifier{Width: 1920, Height: 1080, DeadZone: 100}, idleEmulator{}, nil)
	srv := httptest.NewServer(web.NewServer(sess, nil))
	defer srv.Close()

	c := newClient(srv.URL + "/")
	ctx := context.Background()
	if err := c.enableTracking(ctx); err != nil {
		t.Fatalf("enableTracking: %v", err)
	}
	if err := c.enableTracking(ctx); err != nil {
		t.Fatalf("second enableTracking: %v", err)
	}
	if !state.Enabled() {
		t.Fatalf("tracking not enabled")
	}

	pts := []point{{1200, 540}, {960, 300}}
	sent, err := replay(ctx, c, pts, time.Millisecond, false, slog.Default())
	if err != nil || sent != 2 {
		t.Fatalf("replay got %d, %v", sent, err)
	}
	if state.Direction() != gaze.Up {
		t.Fatalf("final direction got %v want up", state.Direction())
	}

	dir, err := c.sendPoint(ctx, point{960, 540})
	if err != nil || dir != "" {
		t.Fatalf("dead-zone point got %q, %v", dir, err)
	}
}
