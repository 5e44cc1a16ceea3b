// Package http provides the HTTP query surface for the qalink service:
// the search endpoint and the answer-data stub.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/qalink"
)

// DefaultShutdownTimeout bounds graceful shutdown on Close.
const DefaultShutdownTimeout = 5 * time.Second

// Resolver resolves a free-text query to matching questions. Implemented by
// search.Resolver.
type Resolver interface {
	Resolve(ctx context.Context, query string) ([]qalink.SearchResult, string, error)
}

// Server serves the qalink HTTP API.
type Server struct {
	server   *http.Server
	ln       net.Listener
	mux      *http.ServeMux
	resolver Resolver
	log      qalink.SearchLogService
	logger   *slog.Logger

	// Addr is the bind address. Set before calling Open().
	Addr string
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the bind address. Defaults to ":5000".
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.Addr = addr
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithSearchLog enables search recording. Recording failures are logged and
// never affect responses.
func WithSearchLog(log qalink.SearchLogService) Option {
	return func(s *Server) {
		s.log = log
	}
}

// NewServer creates a Server around a resolver.
func NewServer(resolver Resolver, opts ...Option) *Server {
	s := &Server{
		resolver: resolver,
		logger:   slog.New(slog.DiscardHandler),
		Addr:     ":5000",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("GET /api/search", s.handleSearch)
	s.mux.HandleFunc("GET /api/answer-data/{id}", s.handleAnswerData)

	s.server = &http.Server{
		Handler:           requestLogger(s.mux, s.logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the server's root handler, including middleware.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Open binds the listener and starts serving in the background.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http serve", "err", err)
		}
	}()
	return nil
}

// URL returns the base URL of the bound listener. Only valid after Open.
func (s *Server) URL() string {
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts the server down.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// handleSearch resolves ?q= and replies with a JSON array of matches. No
// match and an empty query are both an empty array with HTTP success;
// matching failures never produce an error status.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	begin := time.Now()

	results, stage, err := s.resolver.Resolve(r.Context(), query)
	if err != nil {
		s.logger.Error("search failed", "query", query, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	s.recordSearch(r.Context(), query, stage, len(results), time.Since(begin))
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) recordSearch(ctx context.Context, query, stage string, results int, d time.Duration) {
	if s.log == nil {
		return
	}
	rec := &qalink.SearchRecord{
		Query:    query,
		Stage:    stage,
		Results:  results,
		Duration: d,
	}
	if err := s.log.RecordSearch(ctx, rec); err != nil {
		s.logger.Warn("search log record failed", "err", err)
	}
}

// answerDataPoints is the length of the synthetic series served by the
// answer-data stub.
const answerDataPoints = 1000

// handleAnswerData serves a fixed synthetic series for one hardcoded
// answer id; every other id is a 404-shaped error.
func (s *Server) handleAnswerData(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("id") != "3" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no data for this answer"})
		return
	}

	xs := make([]int, answerDataPoints)
	ys := make([]float64, answerDataPoints)
	scale := math.Log10(float64(answerDataPoints))
	for i := range xs {
		x := i + 1
		xs[i] = x
		ys[i] = 100 * math.Log10(float64(x)) / scale
	}
	writeJSON(w, http.StatusOK, map[string]any{"x": xs, "y": ys})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
