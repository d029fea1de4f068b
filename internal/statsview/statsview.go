// Package statsview serves live runtime charts (heap, goroutines, GC) and the
// standard pprof endpoints while the bridge runs. Once launched, graphs are at
//
//	<addr>/debug/statsview
//
// and pprof at
//
//	<addr>/debug/pprof/
package statsview

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const path = "/debug/statsview"

// Launch starts the stats server on addr in a new goroutine and returns a
// function that shuts it down.
func Launch(addr string, log *slog.Logger) (stop func()) {
	viewer.SetConfiguration(viewer.WithAddr(addr))
	mgr := statsview.New()
	go func() {
		if err := mgr.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("stats server failed", "addr", addr, "err", err)
		}
	}()

	log.Info("stats server available", "url", "http://"+addr+path)
	return func() { mgr.Stop() }
}
