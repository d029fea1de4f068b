// Command gazeboy bridges gaze coordinates posted over HTTP to joypad input on
// a Game Boy emulator.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/config"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/driver"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/emu"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/gaze"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/keypad"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/logging"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/pointer"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/session"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/statsview"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/tracking"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/ui"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/web"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("gazeboy exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Screen.Width == 0 || cfg.Screen.Height == 0 {
		w, h := pointer.ScreenSize()
		cfg.Screen.Width, cfg.Screen.Height = float64(w), float64(h)
		log.Info("detected screen size", "width", w, "height", h)
	}

	state := tracking.New()
	machine := emu.New(emu.Config{Trace: cfg.Loop.Trace, LimitFPS: cfg.Loop.LimitFPS}, log)
	loop := driver.New(driver.Config{
		ROMPath: cfg.ROMPath,
		Mode:    cfg.DisplayMode(),
		Speed:   cfg.Loop.Speed,
		Period:  cfg.Loop.Period,
	}, machine, state, log)
	sess := session.New(state, gaze.Classifier{
		Width:    cfg.Screen.Width,
		Height:   cfg.Screen.Height,
		DeadZone: cfg.Screen.DeadZone,
	}, loop, log)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// The HTTP surface keeps serving after an emulator failure; /status
		// reports game_running=false.
		if err := loop.Run(ctx); err != nil {
			log.Error("game error", "err", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           web.NewServer(sess, log),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("web server failed", "err", err)
			cancel()
		}
	}()
	log.Info("web server listening",
		"addr", cfg.Addr,
		"rom", cfg.ROMPath,
		"eye_data", "POST /eye_data {\"x\": <x>, \"y\": <y>}",
		"screen", fmt.Sprintf("%vx%v", cfg.Screen.Width, cfg.Screen.Height),
		"dead_zone", cfg.Screen.DeadZone)

	if cfg.StatsAddr != "" {
		stopStats := statsview.Launch(cfg.StatsAddr, log)
		defer stopStats()
	}

	if cfg.Pointer.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pointer.NewFeeder(sess, cfg.Pointer.Rate, log).Run(ctx)
		}()
		if cfg.Pointer.Hotkey != "" {
			go func() {
				if err := pointer.WatchHotkey(ctx, cfg.Pointer.Hotkey, sess, log); err != nil {
					log.Warn("tracking hotkey disabled", "err", err)
				}
			}()
		}
	}

	if cfg.Keypad {
		go func() {
			err := keypad.Run(ctx, os.Stdin, sess, log)
			switch {
			case errors.Is(err, keypad.ErrQuit):
				cancel()
			case err != nil:
				log.Warn("terminal keypad disabled", "err", err)
			}
		}()
	}

	if cfg.DisplayMode() == emu.Windowed {
		app := ui.NewApp(ctx, ui.Config{Title: cfg.Window.Title, Scale: cfg.Window.Scale, HUD: true}, machine, sess, log)
		if err := app.Run(); err != nil {
			log.Error("window closed with error", "err", err)
		}
		cancel()
	}
	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	err := srv.Shutdown(shutdownCtx)
	wg.Wait()
	if err != nil {
		return fmt.Errorf("web server shutdown: %w", err)
	}
	return nil
}
