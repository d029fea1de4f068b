// Package config collects the command-line and environment settings.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/emu"
)

// Config is the full set of knobs for cmd/gazeboy.
type Config struct {
	ROMPath string
	Addr    string // HTTP listen address

	Screen ScreenConfig
	Loop   LoopConfig
	Window WindowConfig
	Log    LogConfig

	StatsAddr string // runtime stats server; empty disables it
	Pointer   PointerConfig
	Keypad    bool // read manual input from the controlling terminal
}

// ScreenConfig is the geometry gaze coordinates are measured against.
// A zero width or height is filled in from the primary display.
type ScreenConfig struct {
	Width    float64
	Height   float64
	DeadZone float64
}

type LoopConfig struct {
	Period   time.Duration
	Speed    float64 // 1 real time, 0 unlimited
	LimitFPS bool
	Trace    bool
}

type WindowConfig struct {
	Headless bool
	Title    string
	Scale    int
}

type LogConfig struct {
	Level  string
	Format string
}

// PointerConfig drives the optional mouse-as-gaze source.
type PointerConfig struct {
	Enabled bool
	Rate    int    // samples per second
	Hotkey  string // global tracking toggle, e.g. "ctrl+shift+e"; empty disables
}

// Default returns the settings used when nothing is overridden.
func Default() Config {
	return Config{
		ROMPath: "pokemon.gb",
		Addr:    ":5000",
		Screen:  ScreenConfig{Width: 1920, Height: 1080, DeadZone: 100},
		Loop:    LoopConfig{Period: 16 * time.Millisecond, Speed: 1, LimitFPS: true},
		Window:  WindowConfig{Title: "gazeboy", Scale: 3},
		Log:     LogConfig{Level: "info", Format: "text"},
		Pointer: PointerConfig{Rate: 30, Hotkey: "ctrl+shift+e"},
	}
}

// Defaults fills zero values that would make the process misbehave.
func (c *Config) Defaults() {
	d := Default()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.Loop.Period <= 0 {
		c.Loop.Period = d.Loop.Period
	}
	if c.Window.Title == "" {
		c.Window.Title = d.Window.Title
	}
	if c.Window.Scale <= 0 {
		c.Window.Scale = d.Window.Scale
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Pointer.Rate <= 0 {
		c.Pointer.Rate = d.Pointer.Rate
	}
}

// Validate rejects values no component can run with.
func (c Config) Validate() error {
	var errs []error
	if c.ROMPath == "" {
		errs = append(errs, errors.New("rom path is required"))
	}
	if c.Screen.Width < 0 || c.Screen.Height < 0 {
		errs = append(errs, fmt.Errorf("screen size %vx%v is negative", c.Screen.Width, c.Screen.Height))
	}
	if c.Screen.DeadZone < 0 {
		errs = append(errs, fmt.Errorf("dead zone %v is negative", c.Screen.DeadZone))
	}
	if c.Loop.Speed < 0 {
		errs = append(errs, fmt.Errorf("speed %v is negative", c.Loop.Speed))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unsupported log format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// DisplayMode maps the headless switch to the emulator's display mode.
func (c Config) DisplayMode() emu.DisplayMode {
	if c.Window.Headless {
		return emu.Headless
	}
	return emu.Windowed
}

// Parse reads flags from args on top of the environment and the defaults.
// HEADLESS (any non-empty value), GAZEBOY_ROM and GAZEBOY_ADDR are honoured;
// explicit flags win over the environment.
func Parse(args []string, getenv func(string) string, output io.Writer) (Config, error) {
	c := Default()
	if v := getenv("HEADLESS"); v != "" {
		c.Window.Headless = true
	}
	if v := getenv("GAZEBOY_ROM"); v != "" {
		c.ROMPath = v
	}
	if v := getenv("GAZEBOY_ADDR"); v != "" {
		c.Addr = v
	}

	fs := flag.NewFlagSet("gazeboy", flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}
	fs.StringVar(&c.ROMPath, "rom", c.ROMPath, "path to ROM (.gb)")
	fs.StringVar(&c.Addr, "addr", c.Addr, "HTTP listen address")
	fs.Float64Var(&c.Screen.Width, "screen-width", c.Screen.Width, "gaze screen width in pixels (0 = detect)")
	fs.Float64Var(&c.Screen.Height, "screen-height", c.Screen.Height, "gaze screen height in pixels (0 = detect)")
	fs.Float64Var(&c.Screen.DeadZone, "dead-zone", c.Screen.DeadZone, "centre dead zone radius in pixels")
	fs.DurationVar(&c.Loop.Period, "period", c.Loop.Period, "input loop slice length")
	fs.Float64Var(&c.Loop.Speed, "speed", c.Loop.Speed, "emulation speed multiplier (0 = unlimited)")
	fs.BoolVar(&c.Loop.LimitFPS, "limit-fps", c.Loop.LimitFPS, "pace frames to the Game Boy refresh rate")
	fs.BoolVar(&c.Loop.Trace, "trace", c.Loop.Trace, "log every injected input and frame")
	fs.BoolVar(&c.Window.Headless, "headless", c.Window.Headless, "run without a window")
	fs.StringVar(&c.Window.Title, "title", c.Window.Title, "window title")
	fs.IntVar(&c.Window.Scale, "scale", c.Window.Scale, "window scale")
	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "log level: debug, info, warn, error")
	fs.StringVar(&c.Log.Format, "log-format", c.Log.Format, "log format: text or json")
	fs.StringVar(&c.StatsAddr, "statsview", c.StatsAddr, "serve runtime statistics on this address (e.g. localhost:12600)")
	fs.BoolVar(&c.Pointer.Enabled, "pointer", c.Pointer.Enabled, "use the mouse pointer as the gaze source")
	fs.IntVar(&c.Pointer.Rate, "pointer-rate", c.Pointer.Rate, "pointer samples per second")
	fs.StringVar(&c.Pointer.Hotkey, "hotkey", c.Pointer.Hotkey, "global hotkey toggling eye tracking (empty disables)")
	fs.BoolVar(&c.Keypad, "keypad", c.Keypad, "read manual input from the terminal")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 && c.ROMPath == Default().ROMPath {
		c.ROMPath = fs.Arg(0)
	}

	c.Defaults()
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}
