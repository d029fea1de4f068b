// Package ui presents the emulator framebuffer in a window for the windowed
// display mode. The keyboard doubles as a manual override source.
package ui

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/emu"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/gaze"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/session"
)

// Frames is the read side of the emulator; safe to call from the UI thread.
type Frames interface {
	Framebuffer(dst []byte) []byte
	Held() emu.Buttons
	Frames() uint64
	Title() string
}

// Controller receives keyboard overrides and supplies the overlay status.
type Controller interface {
	Press(d gaze.Direction)
	Release()
	Button(b emu.Button) bool
	Toggle() bool
	Status() session.Status
}

var arrowKeys = []struct {
	key ebiten.Key
	dir gaze.Direction
}{
	{ebiten.KeyArrowUp, gaze.Up},
	{ebiten.KeyArrowDown, gaze.Down},
	{ebiten.KeyArrowLeft, gaze.Left},
	{ebiten.KeyArrowRight, gaze.Right},
}

var buttonKeys = map[ebiten.Key]emu.Button{
	ebiten.KeyZ:          emu.ButtonA,
	ebiten.KeyX:          emu.ButtonB,
	ebiten.KeyEnter:      emu.ButtonStart,
	ebiten.KeyShiftRight: emu.ButtonSelect,
}

type App struct {
	ctx    context.Context
	cfg    Config
	frames Frames
	ctl    Controller
	log    *slog.Logger

	tex *ebiten.Image
	pix []byte
	hud bool
}

// NewApp sizes the window; Run must then be called from the main goroutine.
func NewApp(ctx context.Context, cfg Config, frames Frames, ctl Controller, log *slog.Logger) *App {
	cfg.Defaults()
	if log == nil {
		log = slog.Default()
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(emu.ScreenWidth*cfg.Scale, emu.ScreenHeight*cfg.Scale)
	return &App{ctx: ctx, cfg: cfg, frames: frames, ctl: ctl, log: log.With("component", "ui"), hud: cfg.HUD}
}

// Run blocks until the window is closed or ctx is cancelled.
func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) Update() error {
	if a.ctx.Err() != nil {
		return ebiten.Termination
	}

	// Arrows hold a direction while down, like the control page's d-pad.
	for _, k := range arrowKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			a.ctl.Press(k.dir)
		}
		if inpututil.IsKeyJustReleased(k.key) && a.ctl.Status().Direction == k.dir {
			a.ctl.Release()
		}
	}
	for key, b := range buttonKeys {
		if inpututil.IsKeyJustPressed(key) {
			a.ctl.Button(b)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		a.ctl.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.hud = !a.hud
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if name, err := a.saveScreenshot(); err != nil {
			a.log.Error("screenshot failed", "err", err)
		} else {
			a.log.Info("screenshot saved", "file", name)
		}
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(emu.ScreenWidth, emu.ScreenHeight)
	}
	a.pix = a.frames.Framebuffer(a.pix)
	a.tex.WritePixels(a.pix)
	screen.DrawImage(a.tex, nil)

	if a.hud {
		st := a.ctl.Status()
		tracking := "off"
		if st.TrackingEnabled {
			tracking = "on"
		}
		game := "stopped"
		if st.GameRunning {
			game = "running"
		}
		ebitenutil.DebugPrintAt(screen, a.frames.Title(), 4, 2)
		ebitenutil.DebugPrintAt(screen, "gaze "+tracking+"  "+game, 4, 16)
		ebitenutil.DebugPrintAt(screen, "dir  "+st.Direction.String(), 4, 30)
		ebitenutil.DebugPrintAt(screen, "held "+heldNames(a.frames.Held()), 4, 100)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("frame %d", a.frames.Frames()), 4, 126)
	}
}

func (a *App) Layout(outW, outH int) (int, int) { return emu.ScreenWidth, emu.ScreenHeight }

// heldNames lists held inputs in joypad order, or "-" when nothing is held.
func heldNames(b emu.Buttons) string {
	var names []string
	for _, in := range []struct {
		on   bool
		name string
	}{
		{b.Right, "right"}, {b.Left, "left"}, {b.Up, "up"}, {b.Down, "down"},
		{b.A, "a"}, {b.B, "b"}, {b.Select, "select"}, {b.Start, "start"},
	} {
		if in.on {
			names = append(names, in.name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, " ")
}

func (a *App) saveScreenshot() (string, error) {
	fb := a.frames.Framebuffer(nil)
	img := &image.RGBA{
		Pix:    fb,
		Stride: 4 * emu.ScreenWidth,
		Rect:   image.Rect(0, 0, emu.ScreenWidth, emu.ScreenHeight),
	}
	name := fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405"))
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	return name, nil
}
