// Package web exposes the JSON control surface and the static control page.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/emu"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/gaze"
	"github.com/FabianRolfMatthiasNoll/GazeBoy/internal/session"
)

//go:embed static
var staticFiles embed.FS

const maxBody = 64 << 10

// Controller is what the handlers act on.
type Controller interface {
	Gaze(p gaze.Point) gaze.Direction
	Press(d gaze.Direction)
	Release()
	Button(b emu.Button) bool
	Toggle() bool
	Status() session.Status
}

type Server struct {
	ctl     Controller
	log     *slog.Logger
	handler http.Handler
}

// NewServer builds the routes. Any origin may call the API so that gaze
// software served elsewhere can post coordinates.
func NewServer(ctl Controller, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{ctl: ctl, log: log.With("component", "web")}

	static, _ := fs.Sub(staticFiles, "static")
	mux := http.NewServeMux()
	mux.Handle("GET /{$}", http.FileServerFS(static))
	mux.HandleFunc("POST /eye_data", s.handleEyeData)
	mux.HandleFunc("POST /control", s.handleControl)
	mux.HandleFunc("POST /toggle_eye_tracking", s.handleToggle)
	mux.HandleFunc("GET /status", s.handleStatus)

	s.handler = cors.AllowAll().Handler(s.logRequests(mux))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

type eyeDataResponse struct {
	Status    string         `json:"status"`
	Direction gaze.Direction `json:"direction"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
}

func (s *Server) handleEyeData(w http.ResponseWriter, r *http.Request) {
	var p gaze.Point
	if err := decodeBody(r, &p); err != nil {
		s.badRequest(w, err)
		return
	}
	d := s.ctl.Gaze(p)
	writeJSON(w, http.StatusOK, eyeDataResponse{Status: "success", Direction: d, X: p.X, Y: p.Y})
}

// controlRequest fields stay untyped so a number or list where a name is
// expected counts as an unknown value rather than a malformed body.
type controlRequest struct {
	Action    any `json:"action"`
	Direction any `json:"direction"`
	Button    any `json:"button"`
}

// name returns v when it is a JSON string and "" otherwise.
func name(v any) string {
	s, _ := v.(string)
	return s
}

// handleControl accepts unknown actions, directions and buttons silently.
func (s *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	var req controlRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, err)
		return
	}
	switch name(req.Action) {
	case "press":
		if d, ok := gaze.ParseDirection(name(req.Direction)); ok {
			s.ctl.Press(d)
		}
	case "release":
		s.ctl.Release()
	case "button":
		if b, ok := emu.ParseButton(name(req.Button)); ok {
			s.ctl.Button(b)
		}
	default:
		s.log.Debug("ignoring control action", "action", req.Action)
	}
	writeJSON(w, http.StatusOK, statusOnly{Status: "success"})
}

type toggleResponse struct {
	Status             string `json:"status"`
	EyeTrackingEnabled bool   `json:"eye_tracking_enabled"`
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	on := s.ctl.Toggle()
	writeJSON(w, http.StatusOK, toggleResponse{Status: "success", EyeTrackingEnabled: on})
}

type statusResponse struct {
	GameRunning        bool           `json:"game_running"`
	EyeTrackingEnabled bool           `json:"eye_tracking_enabled"`
	CurrentDirection   gaze.Direction `json:"current_direction"`
	LastUpdate         *float64       `json:"last_update"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.ctl.Status()
	resp := statusResponse{
		GameRunning:        st.GameRunning,
		EyeTrackingEnabled: st.TrackingEnabled,
		CurrentDirection:   st.Direction,
	}
	if st.Updated {
		secs := st.SinceUpdate.Seconds()
		resp.LastUpdate = &secs
	}
	writeJSON(w, http.StatusOK, resp)
}

type statusOnly struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	s.log.Debug("rejecting request body", "err", err)
	writeJSON(w, http.StatusBadRequest, errorResponse{Status: "error", Message: err.Error()})
}

var (
	errEmptyBody    = errors.New("request body must be a JSON object")
	errTrailingData = errors.New("unexpected data after JSON object")
)

// decodeBody reads a single JSON object. A missing body, a bare null or
// anything after the object is rejected the same way as malformed JSON.
func decodeBody(r *http.Request, v any) error {
	var raw json.RawMessage
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	if string(raw) == "null" {
		return errEmptyBody
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return json.Unmarshal(raw, v)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"code", rec.code,
			"elapsed", time.Since(start))
	})
}
