package http

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/quake-map-service/internal/adapter/memory"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/mapview"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// SnapshotSource provides the styled features currently being served.
type SnapshotSource interface {
	Snapshot() memory.Snapshot
}

// Server exposes the map page, the styled data API, and health, readiness
// and metrics endpoints.
type Server struct {
	httpServer *http.Server
	source     SnapshotSource
	view       *mapview.View
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the map page, /api routes, and
// /healthz, /readyz and /metrics.
func NewServer(addr string, ready sharedobs.ReadinessChecker, source SnapshotSource, view *mapview.View, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		source: source,
		view:   view,
		logger: logger,
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET "+mapview.EarthquakesEndpoint, s.handleEarthquakes)
	mux.HandleFunc("GET /api/legend", s.handleLegend)
	mux.HandleFunc("GET /api/map", s.handleMap)
	mux.HandleFunc("GET /api/style", s.handleStyle)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Title string
		View  *mapview.View
	}{Title: "Earthquakes", View: s.view}
	if err := indexTmpl.Execute(w, data); err != nil {
		s.logger.Error("render index", "error", err)
	}
}

func (s *Server) handleEarthquakes(w http.ResponseWriter, r *http.Request) {
	minMag := math.Inf(-1)
	if v := r.URL.Query().Get("min_magnitude"); v != "" {
		m, err := parseFinite(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("min_magnitude: %w", err))
			return
		}
		minMag = m
	}

	snap := s.source.Snapshot()
	fc := mapview.FeatureCollection(mapview.Filter(snap.Features, minMag))

	data, err := json.Marshal(fc)
	if err != nil {
		s.logger.Error("encode feature collection", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !snap.UpdatedAt.IsZero() {
		w.Header().Set("Last-Modified", snap.UpdatedAt.Format(http.TimeFormat))
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleLegend(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.view.Legend)
}

func (s *Server) handleMap(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.view)
}

func (s *Server) handleStyle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mag, err := parseFinite(q.Get("magnitude"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("magnitude: %w", err))
		return
	}
	depth, err := parseFinite(q.Get("depth"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("depth: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, domain.StyleForFeature(mag, depth))
}

func parseFinite(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("must be finite")
	}
	return v, nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
