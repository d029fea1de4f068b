//go:build linux || darwin || freebsd

package keypad

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Run puts in into cbreak mode and applies key presses to ctl until ctx is
// done or the quit key is pressed, then restores the terminal. A read
// blocked at cancellation is abandoned.
func Run(ctx context.Context, in *os.File, ctl Controller, log *slog.Logger) error {
	fd := in.Fd()
	var canon unix.Termios
	if err := termios.Tcgetattr(fd, &canon); err != nil {
		return fmt.Errorf("keypad: %s is not a terminal: %w", in.Name(), err)
	}
	cbreak := canon
	termios.Cfmakecbreak(&cbreak)
	if err := termios.Tcsetattr(fd, termios.TCIFLUSH, &cbreak); err != nil {
		return fmt.Errorf("keypad: cbreak mode: %w", err)
	}
	defer termios.Tcsetattr(fd, termios.TCIFLUSH, &canon)

	log = log.With("component", "keypad")
	log.Info("terminal keypad ready", "keys", "arrows/wasd move, space release, z/x a/b, enter start, backspace select, t toggle, q quit")

	chunks := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		buf := make([]byte, 16)
		for {
			n, err := in.Read(buf)
			if err != nil {
				readErr <- err
				return
			}
			chunk := append([]byte(nil), buf[:n]...)
			select {
			case chunks <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			return fmt.Errorf("keypad: read: %w", err)
		case chunk := <-chunks:
			if apply(ctl, decode(chunk)) {
				return ErrQuit
			}
		}
	}
}
