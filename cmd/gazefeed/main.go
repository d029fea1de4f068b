// Command gazefeed replays recorded gaze coordinates into a running gazeboy
// instance. Input is one "x,y" pair per line; blank lines and lines starting
// with # are skipped.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/logging"
)

func main() {
	base := flag.String("url", "http://localhost:5000", "gazeboy base URL")
	rate := flag.Float64("rate", 30, "points per second")
	repeat := flag.Bool("loop", false, "restart from the first point at end of input")
	toggle := flag.Bool("enable", false, "enable eye tracking before replaying")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log, err := logging.New(logging.Options{Level: *level})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	in := io.Reader(os.Stdin)
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Error("open input", "err", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}
	points, err := readPoints(in)
	if err != nil {
		log.Error("read input", "err", err)
		os.Exit(1)
	}
	if len(points) == 0 {
		log.Error("no points to replay")
		os.Exit(1)
	}
	if *rate <= 0 {
		log.Error("rate must be positive", "rate", *rate)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := newClient(*base)
	if *toggle {
		if err := c.enableTracking(ctx); err != nil {
			log.Error("enable tracking", "err", err)
			os.Exit(1)
		}
	}

	interval := time.Duration(float64(time.Second) / *rate)
	sent, err := replay(ctx, c, points, interval, *repeat, log)
	log.Info("replay finished", "sent", sent)
	if err != nil && ctx.Err() == nil {
		log.Error("replay failed", "err", err)
		os.Exit(1)
	}
}

func replay(ctx context.Context, c *client, points []point, interval time.Duration, repeat bool, log *slog.Logger) (int, error) {
	tick := time.NewTicker(interval)
	defer tick.Stop()

	sent := 0
	for {
		for _, p := range points {
			dir, err := c.sendPoint(ctx, p)
			if err != nil {
				return sent, err
			}
			sent++
			log.Debug("sent", "x", p.X, "y", p.Y, "direction", dir)

			select {
			case <-ctx.Done():
				return sent, ctx.Err()
			case <-tick.C:
			}
		}
		if !repeat {
			return sent, nil
		}
	}
}
