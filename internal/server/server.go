// Package server exposes expression evaluation over HTTP. It serves a
// JSON evaluation endpoint, a health endpoint reporting process
// statistics and a Prometheus metrics endpoint, and shuts down
// gracefully when its context is canceled.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/fraccalc/internal/expr"
	"github.com/agbru/fraccalc/internal/logging"
	appmetrics "github.com/agbru/fraccalc/internal/metrics"
)

// maxEvalBody bounds the size of a POST body so request parsing stays
// cheap regardless of what a client sends.
const maxEvalBody = 64 << 10

var errMethodNotAllowed = errors.New("method not allowed: use GET or POST")

// Config holds the HTTP server settings.
type Config struct {
	// Addr is the listen address, for example ":8080".
	Addr string
	// Width is the component width used when a request does not choose
	// one.
	Width int
	// Version is reported by the health endpoint.
	Version string
	// Security configures hardening headers, CORS and input limits.
	Security SecurityConfig
	// ShutdownTimeout bounds graceful shutdown once the context is
	// canceled.
	ShutdownTimeout time.Duration
}

// Server is the HTTP front end of the calculator.
type Server struct {
	config  Config
	logger  logging.Logger
	metrics *Metrics
	memory  *appmetrics.MemoryCollector
	start   time.Time
}

// New creates a server from config. A nil logger and unset fields fall
// back to defaults.
func New(config Config, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	if config.Addr == "" {
		config.Addr = ":8080"
	}
	if !expr.ValidWidth(config.Width) {
		config.Width = expr.DefaultWidth
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 5 * time.Second
	}
	return &Server{
		config:  config,
		logger:  logger,
		metrics: NewMetrics(),
		memory:  appmetrics.NewMemoryCollector(),
		start:   time.Now(),
	}
}

// Handler builds the route table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/eval", SecurityMiddleware(s.config.Security, s.metricsMiddleware(s.handleEval)))
	mux.HandleFunc("/healthz", s.metricsMiddleware(s.handleHealth))
	mux.HandleFunc("/metrics", s.handleMetrics)
	return mux
}

// Start runs the server until ctx is canceled, then shuts down
// gracefully. It returns once the listener has closed.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", logging.String("addr", s.config.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		s.logger.Info("http server stopped")
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server listen: %w", err)
		}
		return nil
	}
}

// metricsMiddleware tracks the request total and the number of
// in-flight requests around next.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}

// evalRequest is the JSON body accepted by POST /api/v1/eval.
type evalRequest struct {
	Expr  string `json:"expr"`
	Width int    `json:"width,omitempty"`
}

// evalResponse is the JSON rendering of one evaluation. Float is only
// present for finite results, since the IEEE infinities and NaN have no
// JSON representation.
type evalResponse struct {
	Expr       string   `json:"expr"`
	Result     string   `json:"result"`
	Num        int64    `json:"num"`
	Den        int64    `json:"den"`
	Finite     bool     `json:"finite"`
	Inf        bool     `json:"inf"`
	NaN        bool     `json:"nan"`
	Float      *float64 `json:"float,omitempty"`
	Width      int      `json:"width"`
	DurationMS float64  `json:"duration_ms"`
}

// errorResponse is the JSON error payload. Offset points at the
// offending byte of the input when the parser reported one.
type errorResponse struct {
	Error  string `json:"error"`
	Offset *int   `json:"offset,omitempty"`
}

// handleEval evaluates one expression. GET passes the expression in the
// expr query parameter, POST in a JSON body. An optional width selects
// the component width for this request.
func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	src, width, err := s.parseEvalRequest(r)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errMethodNotAllowed) {
			status = http.StatusMethodNotAllowed
		}
		s.writeError(w, status, err)
		return
	}

	start := time.Now()
	outcome, err := expr.Eval(src, width)
	elapsed := time.Since(start)
	s.metrics.ObserveEvaluation(elapsed, err)

	if err != nil {
		s.logger.Debug("evaluation rejected", logging.String("expr", src), logging.Err(err))
		s.writeEvalError(w, err)
		return
	}

	resp := evalResponse{
		Expr:       src,
		Result:     outcome.Text,
		Num:        outcome.Num,
		Den:        outcome.Den,
		Finite:     outcome.Finite,
		Inf:        outcome.Inf,
		NaN:        outcome.NaN,
		Width:      outcome.Width,
		DurationMS: float64(elapsed) / float64(time.Millisecond),
	}
	if outcome.Finite {
		f := outcome.Float
		resp.Float = &f
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// parseEvalRequest extracts the expression and width from r, applying
// the configured input limits.
func (s *Server) parseEvalRequest(r *http.Request) (string, int, error) {
	var src string
	width := s.config.Width
	if !expr.ValidWidth(width) {
		width = expr.DefaultWidth
	}

	switch r.Method {
	case http.MethodGet:
		src = r.URL.Query().Get("expr")
		if raw := r.URL.Query().Get("width"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return "", 0, fmt.Errorf("invalid width %q", raw)
			}
			width = parsed
		}
	case http.MethodPost:
		var req evalRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxEvalBody)).Decode(&req); err != nil {
			return "", 0, fmt.Errorf("invalid JSON body: %w", err)
		}
		src = req.Expr
		if req.Width != 0 {
			width = req.Width
		}
	default:
		return "", 0, errMethodNotAllowed
	}

	src = strings.TrimSpace(src)
	if src == "" {
		return "", 0, errors.New("missing expression")
	}
	if limit := s.config.Security.MaxExprLen; limit > 0 && len(src) > limit {
		return "", 0, fmt.Errorf("expression exceeds %d bytes", limit)
	}
	if !expr.ValidWidth(width) {
		return "", 0, fmt.Errorf("unsupported width %d: choose one of %v", width, expr.Widths)
	}
	return src, width, nil
}

// writeEvalError maps an evaluation failure to a 400 response.
func (s *Server) writeEvalError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	var syntaxErr *expr.SyntaxError
	if errors.As(err, &syntaxErr) {
		resp.Offset = &syntaxErr.Offset
	}
	s.writeJSON(w, http.StatusBadRequest, resp)
}

// healthResponse is the JSON payload of the health endpoint.
type healthResponse struct {
	Status        string                    `json:"status"`
	Version       string                    `json:"version,omitempty"`
	UptimeSeconds float64                   `json:"uptime_seconds"`
	Width         int                       `json:"width"`
	Memory        appmetrics.MemorySnapshot `json:"memory"`
}

// handleHealth reports liveness plus process statistics.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed: use GET"))
		return
	}
	var uptime float64
	if !s.start.IsZero() {
		uptime = time.Since(s.start).Seconds()
	}
	var snapshot appmetrics.MemorySnapshot
	if s.memory != nil {
		snapshot = s.memory.Snapshot()
	}
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Version:       s.config.Version,
		UptimeSeconds: uptime,
		Width:         s.config.Width,
		Memory:        snapshot,
	})
}

// handleMetrics serves the Prometheus exposition. Only GET is allowed.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// writeError sends a JSON error payload with the given status.
func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeJSON encodes payload as the response body.
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encoding response", err)
	}
}
