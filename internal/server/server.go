package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sloptastic/internal/ingest"
	"sloptastic/internal/report"
	"sloptastic/internal/slop"
)

type Config struct {
	Addr         string
	MaxBodyBytes int64
}

// Server exposes analysis over HTTP. It keeps no state between requests.
type Server struct {
	cfg    Config
	logger *slog.Logger
	router *chi.Mux
}

type analyzeRequest struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{cfg: cfg, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/analyze/markdown", s.handleAnalyzeMarkdown)
	})
	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "catalog_version": slop.CatalogVersion})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, slop.Catalog())
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, status, err := s.decode(r)
	if err != nil {
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report.Build(req.Source, req.Text))
}

func (s *Server) handleAnalyzeMarkdown(w http.ResponseWriter, r *http.Request) {
	req, status, err := s.decode(r)
	if err != nil {
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, report.Markdown(report.Build(req.Source, req.Text)))
}

// decode accepts either a JSON body {"text": ..., "source": ...} or the raw
// text itself.
func (s *Server) decode(r *http.Request) (analyzeRequest, int, error) {
	text, err := ingest.ReadText(r.Body, s.cfg.MaxBodyBytes)
	if err != nil {
		if errors.Is(err, ingest.ErrTooLarge) {
			return analyzeRequest{}, http.StatusRequestEntityTooLarge, err
		}
		return analyzeRequest{}, http.StatusBadRequest, err
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return analyzeRequest{Source: r.URL.Query().Get("source"), Text: text}, 0, nil
	}

	var req analyzeRequest
	if err := json.Unmarshal([]byte(text), &req); err != nil {
		return analyzeRequest{}, http.StatusBadRequest, fmt.Errorf("decode request: %w", err)
	}
	return req, 0, nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
