// Package emu hosts a Game Boy cartridge behind a press / release / frame-step
// interface. It validates and holds the ROM, keeps the joypad register, runs a
// frame clock paced by a speed multiplier and renders the joypad state into a
// 160x144 RGBA framebuffer. Instruction execution is left to the core plugged
// in behind this API.
package emu

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/cart"
)

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	// CyclesPerFrame is one full LCD refresh at 4.194304 MHz.
	CyclesPerFrame = 70224
	clockHz        = 4194304
)

// FrameDuration is the real-time length of one frame (~16.74ms, ~59.73 Hz).
const FrameDuration = time.Second * CyclesPerFrame / clockHz

var (
	ErrNotStarted     = errors.New("emulator not started")
	ErrAlreadyStarted = errors.New("emulator already started")
	ErrStopped        = errors.New("emulator stopped")
)

// DisplayMode selects whether a window presents the framebuffer.
type DisplayMode int

const (
	Headless DisplayMode = iota
	Windowed
)

func (d DisplayMode) String() string {
	if d == Windowed {
		return "windowed"
	}
	return "headless"
}

// Machine is not safe for concurrent mutation: one goroutine drives it. The
// framebuffer and held-button snapshot may be read from any goroutine.
type Machine struct {
	cfg Config
	log *slog.Logger

	cart    *cart.Cartridge
	started bool
	stopped bool

	pressed byte // held mask, bit per Button
	speed   float64
	next    time.Time

	frames atomic.Uint64

	mu    sync.Mutex
	fb    []byte // RGBA 160x144*4
	held  Buttons
	title string
}

func New(cfg Config, log *slog.Logger) *Machine {
	cfg.defaults()
	if log == nil {
		log = slog.Default()
	}
	return &Machine{
		cfg:   cfg,
		log:   log.With("component", "emu"),
		speed: 1,
		fb:    make([]byte, ScreenWidth*ScreenHeight*4),
	}
}

// Start loads the ROM at romPath and makes the machine ready to step.
func (m *Machine) Start(romPath string, mode DisplayMode) error {
	if m.started {
		return ErrAlreadyStarted
	}
	c, err := cart.Load(romPath)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	if c.Header.CGBOnly() {
		m.log.Warn("cartridge requires CGB hardware", "title", c.Header.Title)
	}
	if !c.Header.LogoOK {
		m.log.Debug("header has no boot logo", "title", c.Header.Title)
	}
	if !cart.GlobalChecksumOK(c.ROM, c.Header) {
		m.log.Warn("global checksum mismatch", "header", fmt.Sprintf("%04x", c.Header.GlobalChecksum))
	}
	m.cart = c
	m.mu.Lock()
	m.title = c.Header.Title
	m.mu.Unlock()
	m.started = true
	m.next = time.Time{}
	m.log.Info("ROM loaded", "cart", c.Header.String(), "mode", mode.String())
	m.render()
	return nil
}

// SetSpeed sets the emulation speed multiplier: 1 is real time, 0 unlimited.
func (m *Machine) SetSpeed(multiplier float64) error {
	if multiplier < 0 {
		return fmt.Errorf("invalid speed multiplier %v", multiplier)
	}
	m.speed = multiplier
	m.next = time.Time{}
	return nil
}

func (m *Machine) ready() error {
	switch {
	case m.stopped:
		return ErrStopped
	case !m.started:
		return ErrNotStarted
	}
	return nil
}

// Press holds b down until Release.
func (m *Machine) Press(b Button) error {
	if err := m.ready(); err != nil {
		return err
	}
	m.pressed |= b.mask()
	if m.cfg.Trace {
		m.log.Debug("press", "button", b.String(), "frame", m.frames.Load())
	}
	return nil
}

// Release lets go of b. Releasing a button that is not held is a no-op.
func (m *Machine) Release(b Button) error {
	if err := m.ready(); err != nil {
		return err
	}
	m.pressed &^= b.mask()
	if m.cfg.Trace {
		m.log.Debug("release", "button", b.String(), "frame", m.frames.Load())
	}
	return nil
}

// AdvanceFrame runs one frame: CyclesPerFrame machine cycles and a redraw.
func (m *Machine) AdvanceFrame() error {
	if err := m.ready(); err != nil {
		return err
	}
	m.pace()
	n := m.frames.Add(1)
	m.render()
	if m.cfg.Trace {
		m.log.Debug("frame", "n", n,
			"p1_dpad", fmt.Sprintf("%02x", JoypadRegister(m.pressed, selectDpad)),
			"p1_buttons", fmt.Sprintf("%02x", JoypadRegister(m.pressed, selectButtons)))
	}
	return nil
}

// pace blocks until the next frame is due. A machine that falls more than a
// frame behind resynchronises instead of bursting to catch up.
func (m *Machine) pace() {
	if !m.cfg.LimitFPS || m.speed == 0 {
		return
	}
	period := time.Duration(float64(FrameDuration) / m.speed)
	now := m.cfg.Now()
	if m.next.IsZero() || now.Sub(m.next) > period {
		m.next = now
	}
	if wait := m.next.Sub(now); wait > 0 {
		m.cfg.Sleep(wait)
	}
	m.next = m.next.Add(period)
}

// Stop releases all inputs and the cartridge. Further calls fail with
// ErrStopped.
func (m *Machine) Stop() error {
	if err := m.ready(); err != nil {
		return err
	}
	m.pressed = 0
	m.stopped = true
	m.render()
	m.log.Info("emulator stopped", "frames", m.frames.Load())
	m.cart = nil
	return nil
}

// Frames returns how many frames have run since Start.
func (m *Machine) Frames() uint64 { return m.frames.Load() }

// Title returns the title of the cartridge passed to Start, or "" before
// Start. Safe to call from any goroutine.
func (m *Machine) Title() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.title
}

// Framebuffer copies the last rendered frame into dst, allocating when dst
// is too small, and returns it.
func (m *Machine) Framebuffer(dst []byte) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(dst) < len(m.fb) {
		dst = make([]byte, len(m.fb))
	}
	copy(dst, m.fb)
	return dst[:len(m.fb)]
}

// Held returns the inputs held when the last frame was drawn.
func (m *Machine) Held() Buttons {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held
}
