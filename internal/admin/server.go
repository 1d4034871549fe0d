package admin

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"time"

	"radar-sim/internal/logging"
	"radar-sim/internal/render"
	"radar-sim/internal/sim"
	"radar-sim/internal/stats"
	"radar-sim/internal/sweep"
)

const (
	defaultFrameSize = 600
	minFrameSize     = 64
	maxFrameSize     = 2048
	shutdownTimeout  = 5 * time.Second
)

// analyst is the part of the analysis coordinator the server exposes.
type analyst interface {
	Request()
	Result() (string, bool)
}

type Server struct {
	Sim      *sim.Simulator
	analyst  analyst
	renderer *render.Renderer
	tpl      *template.Template
}

//go:embed templates/index.html
var content embed.FS

// NewServer returns a server controlling s. a may be nil, in which case
// the analysis routes answer 404.
func NewServer(s *sim.Simulator, a analyst) *Server {
	tpl := template.Must(template.New("index.html").Funcs(template.FuncMap{
		"bearing": func(x, y float64) float64 { return sweep.Degrees(sweep.Bearing(x, y)) },
	}).ParseFS(content, "templates/index.html"))
	return &Server{Sim: s, analyst: a, renderer: render.NewRenderer(), tpl: tpl}
}

// Handler returns the routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /frame.png", s.handleFramePNG)
	mux.HandleFunc("GET /frame.json", s.handleFrameJSON)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("POST /targets", s.handleAddTarget)
	mux.HandleFunc("DELETE /targets/{id}", s.handleRemoveTarget)
	mux.HandleFunc("POST /select", s.handleSelect)
	mux.HandleFunc("POST /scan", s.handleScan)
	mux.HandleFunc("POST /settings", s.handleSettings)
	mux.HandleFunc("GET /analysis", s.handleAnalysis)
	mux.HandleFunc("POST /analysis", s.handleRequestAnalysis)
	return mux
}

// Start serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		logging.FromContext(ctx).Info("admin server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("encode response", "path", r.URL.Path, "err", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Snap  sim.Snapshot
		Sweep float64
	}{
		Snap: s.Sim.Snapshot(),
	}
	data.Sweep = sweep.Degrees(data.Snap.SweepAngle)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.Execute(w, data); err != nil {
		logging.FromContext(r.Context()).Error("render index", "err", err)
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Sim.Snapshot())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Sim.Events())
}

func frameSize(r *http.Request) (int, error) {
	v := r.URL.Query().Get("size")
	if v == "" {
		return defaultFrameSize, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < minFrameSize || n > maxFrameSize {
		return 0, errors.New("size out of range")
	}
	return n, nil
}

func (s *Server) handleFramePNG(w http.ResponseWriter, r *http.Request) {
	size, err := frameSize(r)
	if err != nil {
		http.Error(w, "invalid size", http.StatusBadRequest)
		return
	}
	img := render.NewImageSurface(size)
	s.renderer.Draw(img, s.Sim.Snapshot().Frame())
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := img.WritePNG(w); err != nil {
		logging.FromContext(r.Context()).Error("encode frame", "err", err)
	}
}

func (s *Server) handleFrameJSON(w http.ResponseWriter, r *http.Request) {
	size, err := frameSize(r)
	if err != nil {
		http.Error(w, "invalid size", http.StatusBadRequest)
		return
	}
	dl := render.NewDisplayList(float64(size), float64(size))
	s.renderer.Draw(dl, s.Sim.Snapshot().Frame())
	writeJSON(w, r, http.StatusOK, dl)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := stats.RenderPage(w, s.Sim.Snapshot()); err != nil {
		logging.FromContext(r.Context()).Error("render stats", "err", err)
	}
}

func (s *Server) handleAddTarget(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusCreated, s.Sim.AddTarget())
}

func (s *Server) handleRemoveTarget(w http.ResponseWriter, r *http.Request) {
	if err := s.Sim.RemoveTarget(r.PathValue("id")); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if err := s.Sim.Select(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"selected": id})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query().Get("on")
	var state bool
	if v == "" {
		state = s.Sim.ToggleScanning()
	} else {
		on, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "invalid on", http.StatusBadRequest)
			return
		}
		s.Sim.SetScanning(on)
		state = on
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"scanning": state})
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var speed, rangeKm *float64
	for _, p := range []struct {
		key string
		dst **float64
	}{{"speed", &speed}, {"range", &rangeKm}} {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			http.Error(w, "invalid "+p.key, http.StatusBadRequest)
			return
		}
		*p.dst = &f
	}
	if speed != nil {
		s.Sim.SetScanSpeed(*speed)
	}
	if rangeKm != nil {
		s.Sim.SetRange(*rangeKm)
	}
	snap := s.Sim.Snapshot()
	writeJSON(w, r, http.StatusOK, map[string]any{"scan_speed": snap.ScanSpeed, "range_km": snap.RangeKm})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.analyst == nil {
		http.NotFound(w, r)
		return
	}
	text, busy := s.analyst.Result()
	writeJSON(w, r, http.StatusOK, map[string]any{"text": text, "busy": busy})
}

func (s *Server) handleRequestAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.analyst == nil {
		http.NotFound(w, r)
		return
	}
	s.analyst.Request()
	w.WriteHeader(http.StatusAccepted)
}
