package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"UXTester/internal/domain"
	"UXTester/internal/ports"
	"UXTester/internal/registry"
)

const (
	ServiceName    = "UX Tester API"
	ServiceVersion = "1.0.0"

	apiKeyHeader = "x-api-key"
)

// FixSuggester produces advisory code-fix payloads; it never fails.
type FixSuggester interface {
	SuggestFix(ctx context.Context) domain.FixSuggestion
}

// Server exposes the scan, fix, and monitor operations over HTTP. It is thin
// glue: validation and auth happen at this boundary, everything else delegates
// to the core components.
type Server struct {
	auditor  ports.Auditor
	fixer    FixSuggester
	registry *registry.SiteRegistry
	gate     ports.Gate
	logger   *slog.Logger
}

// NewServer wires handlers to the core components.
func NewServer(auditor ports.Auditor, fixer FixSuggester, reg *registry.SiteRegistry, gate ports.Gate, logger *slog.Logger) *Server {
	return &Server{
		auditor:  auditor,
		fixer:    fixer,
		registry: reg,
		gate:     gate,
		logger:   logger,
	}
}

// Handler builds the route table with request-id and access-log middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /analyze", s.handleScan)
	mux.HandleFunc("POST /fix", s.handleFix)

	mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	mux.HandleFunc("POST /api/v1/scan", s.requireAPIKey(s.handleScan))
	mux.HandleFunc("POST /api/v1/fix", s.requireAPIKey(s.handleFix))

	mux.HandleFunc("GET /api/monitor", s.handleListMonitors)
	mux.HandleFunc("POST /api/monitor/add", s.handleAddMonitor)
	mux.HandleFunc("POST /api/monitor/remove", s.handleRemoveMonitor)

	return s.withRequestID(s.withAccessLog(mux))
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	url := readURL(r)
	if url == "" {
		writeError(w, http.StatusBadRequest, "URL required")
		return
	}

	result, err := s.auditor.Scan(r.Context(), url)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyURL) {
			writeError(w, http.StatusBadRequest, "URL required")
			return
		}
		s.logError("scan failed", "url", url, "error", err)
		writeError(w, http.StatusInternalServerError, "scan failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleFix(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.fixer.SuggestFix(r.Context()))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": ServiceName,
		"version": ServiceVersion,
	})
}

func (s *Server) handleListMonitors(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.List())
}

func (s *Server) handleAddMonitor(w http.ResponseWriter, r *http.Request) {
	url := readURL(r)
	if url == "" {
		writeError(w, http.StatusBadRequest, "URL required")
		return
	}

	if err := s.registry.Add(url); err != nil {
		if errors.Is(err, domain.ErrAlreadyMonitored) {
			writeError(w, http.StatusBadRequest, "Already monitored")
			return
		}
		writeError(w, http.StatusBadRequest, "URL required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleRemoveMonitor(w http.ResponseWriter, r *http.Request) {
	// Removing an absent or missing URL is a deliberate no-op.
	if url := readURL(r); url != "" {
		s.registry.Remove(url)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) requireAPIKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.gate == nil || !s.gate.Authorize(r.Header.Get(apiKeyHeader)) {
			writeError(w, http.StatusUnauthorized, "Unauthorized. Invalid or missing API Key.")
			return
		}
		next(w, r)
	}
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		if s.logger != nil {
			s.logger.Debug("request served",
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", w.Header().Get("X-Request-Id"))
		}
	})
}

func (s *Server) logError(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}

func readURL(r *http.Request) string {
	var payload struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return ""
	}
	return payload.URL
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
