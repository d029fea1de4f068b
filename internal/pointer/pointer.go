// Package pointer feeds the mouse pointer position in as a gaze source and
// watches a global hotkey that toggles tracking. Useful for driving the
// bridge without eye-tracking hardware.
package pointer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"

	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/gaze"
)

// Sink receives sampled points; the session classifies them.
type Sink interface {
	Gaze(p gaze.Point) gaze.Direction
}

// Toggler flips eye tracking on and off.
type Toggler interface {
	Toggle() bool
}

// ScreenSize returns the primary display size in pixels.
func ScreenSize() (width, height int) {
	return robotgo.GetScreenSize()
}

// Feeder samples the pointer at a fixed rate.
type Feeder struct {
	sink   Sink
	rate   int
	log    *slog.Logger
	locate func() (int, int)
}

func NewFeeder(sink Sink, rate int, log *slog.Logger) *Feeder {
	if rate <= 0 {
		rate = 30
	}
	return &Feeder{
		sink:   sink,
		rate:   rate,
		log:    log.With("component", "pointer"),
		locate: robotgo.Location,
	}
}

// Run forwards the pointer position whenever it moves, until ctx is done.
func (f *Feeder) Run(ctx context.Context) {
	tick := time.NewTicker(time.Second / time.Duration(f.rate))
	defer tick.Stop()
	f.log.Info("pointer gaze source started", "rate", f.rate)

	lastX, lastY, first := 0, 0, true
	for {
		select {
		case <-ctx.Done():
			f.log.Info("pointer gaze source stopped")
			return
		case <-tick.C:
		}
		x, y := f.locate()
		if !first && x == lastX && y == lastY {
			continue
		}
		first = false
		lastX, lastY = x, y
		f.sink.Gaze(gaze.Point{X: float64(x), Y: float64(y)})
	}
}

// ParseHotkey turns "ctrl+shift+e" into the key-then-modifiers list the hook
// registry expects: ["e", "ctrl", "shift"].
func ParseHotkey(combo string) ([]string, error) {
	parts := strings.Split(strings.ToLower(combo), "+")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("malformed hotkey %q", combo)
		}
		keys = append(keys, p)
	}
	last := len(keys) - 1
	return append([]string{keys[last]}, keys[:last]...), nil
}

// WatchHotkey toggles tracking each time combo is pressed, until ctx is done.
// It owns the process-wide event hook while it runs.
func WatchHotkey(ctx context.Context, combo string, t Toggler, log *slog.Logger) error {
	keys, err := ParseHotkey(combo)
	if err != nil {
		return err
	}
	log = log.With("component", "hotkey")

	hook.Register(hook.KeyDown, keys, func(hook.Event) {
		log.Info("hotkey pressed", "combo", combo, "tracking", t.Toggle())
	})
	done := hook.Process(hook.Start())
	log.Info("tracking hotkey registered", "combo", combo)

	select {
	case <-ctx.Done():
		hook.End()
	case <-done:
	}
	return nil
}
