// Package api serves tile generation and verification over HTTP.
//
// Routes:
//
//	GET  /healthz     build information
//	POST /v1/tiles    {"k": 2, "w": 5, "h": 5} → accepted tiles and stats
//	POST /v1/verify   {"k": 1, "w": 1, "h": 3, "tile": [[0, 0]]} → verdict
//
// Points are encoded as [x, y] pairs. Errors are returned as
// {"error": "...", "code": "INVALID_CONFIG"} with a 4xx status for bad input
// and 5xx for solver or internal failures.
package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/ktile/pkg/buildinfo"
	"github.com/matzehuels/ktile/pkg/errors"
	"github.com/matzehuels/ktile/pkg/pipeline"
	"github.com/matzehuels/ktile/pkg/tile"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server handles API requests with a shared pipeline runner.
type Server struct {
	Runner *pipeline.Runner
	Logger *log.Logger
	// Workers bounds verification goroutines per request; 0 means the
	// pipeline default.
	Workers int
	// Timeout bounds each request.
	Timeout time.Duration
}

// NewServer creates a server. A nil logger uses the runner's logger.
func NewServer(r *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = r.Logger
	}
	return &Server{Runner: r, Logger: logger, Timeout: 5 * time.Minute}
}

// TilesRequest is the body of POST /v1/tiles.
type TilesRequest struct {
	K       int    `json:"k"`
	W       int    `json:"w"`
	H       int    `json:"h"`
	Solver  string `json:"solver,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`
}

// VerifyRequest is the body of POST /v1/verify.
type VerifyRequest struct {
	K      int       `json:"k"`
	W      int       `json:"w"`
	H      int       `json:"h"`
	Solver string    `json:"solver,omitempty"`
	Tile   tile.Tile `json:"tile"`
}

// VerifyResponse is the body returned by POST /v1/verify.
type VerifyResponse struct {
	tile.Verdict
	Cached bool `json:"cached"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	if s.Timeout > 0 {
		r.Use(middleware.Timeout(s.Timeout))
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/tiles", s.handleTiles)
		r.Post("/verify", s.handleVerify)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleTiles(w http.ResponseWriter, r *http.Request) {
	var req TilesRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.Runner.Execute(r.Context(), pipeline.Options{
		K: req.K, W: req.W, H: req.H,
		Solver:  req.Solver,
		Refresh: req.Refresh,
		Workers: s.Workers,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if !s.decode(w, r, &req) {
		return
	}
	v, cached, err := s.Runner.VerifyTile(r.Context(), pipeline.Options{
		K: req.K, W: req.W, H: req.H,
		Solver: req.Solver,
	}, req.Tile)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, VerifyResponse{Verdict: v, Cached: cached})
}

// decode reads a JSON body into v, writing a 400 response on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: errors.GetCode(err)})
}

// StatusFor maps an error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case stderrors.Is(err, context.Canceled):
		return 499 // client closed request
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidTile:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// logRequests logs one line per request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// ListenAndServe serves h on addr until ctx is canceled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
