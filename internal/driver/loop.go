// Package driver runs the fixed-rate input loop that turns the tracked gaze
// direction into joypad pulses on the emulator.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/emu"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/gaze"
)

// DefaultPeriod is the target length of one loop slice (~60 Hz).
const DefaultPeriod = 16 * time.Millisecond

const buttonQueue = 8

// Console is the emulator the loop drives. The loop is its only caller.
type Console interface {
	Start(romPath string, mode emu.DisplayMode) error
	SetSpeed(multiplier float64) error
	Press(b emu.Button) error
	Release(b emu.Button) error
	AdvanceFrame() error
	Stop() error
}

// Source supplies the tracked direction once per slice.
type Source interface {
	Enabled() bool
	Direction() gaze.Direction
}

// Config describes how the loop starts its console.
type Config struct {
	ROMPath string
	Mode    emu.DisplayMode
	Speed   float64
	Period  time.Duration
}

// Loop owns the console from Start to Stop.
type Loop struct {
	cfg     Config
	console Console
	src     Source
	log     *slog.Logger

	buttons chan emu.Button
	running atomic.Bool
	frames  atomic.Uint64
}

func New(cfg Config, console Console, src Source, log *slog.Logger) *Loop {
	if cfg.Period <= 0 {
		cfg.Period = DefaultPeriod
	}
	if log == nil {
		log = slog.Default()
	}
	return &Loop{
		cfg:     cfg,
		console: console,
		src:     src,
		log:     log.With("component", "loop"),
		buttons: make(chan emu.Button, buttonQueue),
	}
}

// Running reports whether the console is started and the loop is ticking.
func (l *Loop) Running() bool { return l.running.Load() }

// Inject queues a single press/frame/release of b for the next slice. It
// reports false, doing nothing, when the loop is not running or the queue is
// full.
func (l *Loop) Inject(b emu.Button) bool {
	if !l.running.Load() {
		return false
	}
	select {
	case l.buttons <- b:
		return true
	default:
		l.log.Warn("button queue full, dropping", "button", b.String())
		return false
	}
}

// Run starts the console and ticks until ctx is cancelled or the console
// fails. A started console is always stopped before Run returns. Cancellation
// is not an error.
func (l *Loop) Run(ctx context.Context) (err error) {
	if err := l.console.Start(l.cfg.ROMPath, l.cfg.Mode); err != nil {
		return fmt.Errorf("start emulator: %w", err)
	}
	defer func() {
		l.running.Store(false)
		if stopErr := l.console.Stop(); stopErr != nil {
			l.log.Error("stop emulator", "err", stopErr)
			err = errors.Join(err, fmt.Errorf("stop emulator: %w", stopErr))
		}
		l.log.Info("input loop exited", "frames", l.frames.Load())
	}()

	if err := l.console.SetSpeed(l.cfg.Speed); err != nil {
		return fmt.Errorf("set speed: %w", err)
	}

	l.running.Store(true)
	l.log.Info("input loop started", "period", l.cfg.Period, "speed", l.cfg.Speed, "mode", l.cfg.Mode.String())

	timer := time.NewTimer(l.cfg.Period)
	defer timer.Stop()

	for {
		start := time.Now()
		if err := l.step(); err != nil {
			l.log.Error("emulator failed, stopping input loop", "err", err)
			return err
		}

		// Sleep out the rest of the slice; overruns are not paid back.
		wait := l.cfg.Period - time.Since(start)
		if wait <= 0 {
			if ctx.Err() != nil {
				return nil
			}
			continue
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}

// step runs one slice: queued manual buttons, the tracked direction when
// tracking is on, then the idle frame that always runs.
func (l *Loop) step() error {
drain:
	for {
		select {
		case b := <-l.buttons:
			if err := l.pulse(b); err != nil {
				return err
			}
		default:
			break drain
		}
	}

	if l.src.Enabled() {
		if b, ok := ButtonFor(l.src.Direction()); ok {
			if err := l.pulse(b); err != nil {
				return err
			}
		}
	}
	return l.advance()
}

func (l *Loop) pulse(b emu.Button) error {
	if err := l.console.Press(b); err != nil {
		return fmt.Errorf("press %s: %w", b, err)
	}
	if err := l.advance(); err != nil {
		return err
	}
	if err := l.console.Release(b); err != nil {
		return fmt.Errorf("release %s: %w", b, err)
	}
	return nil
}

func (l *Loop) advance() error {
	if err := l.console.AdvanceFrame(); err != nil {
		return fmt.Errorf("advance frame: %w", err)
	}
	l.frames.Add(1)
	return nil
}

// ButtonFor maps a direction to its d-pad button. None has no button.
func ButtonFor(d gaze.Direction) (emu.Button, bool) {
	switch d {
	case gaze.Up:
		return emu.ButtonUp, true
	case gaze.Down:
		return emu.ButtonDown, true
	case gaze.Left:
		return emu.ButtonLeft, true
	case gaze.Right:
		return emu.ButtonRight, true
	}
	return 0, false
}
