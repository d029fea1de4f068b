//go:build !(linux || darwin || freebsd)

package keypad

import (
	"context"
	"errors"
	"log/slog"
	"os"
)

// Run is unsupported on this platform.
func Run(ctx context.Context, in *os.File, ctl Controller, log *slog.Logger) error {
	return errors.New("keypad: terminal input not supported on this platform")
}
