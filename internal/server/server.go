// Package server exposes the extraction engine and its storage over HTTP.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/docscanhq/docscan/internal/common"
	"github.com/docscanhq/docscan/internal/export"
	"github.com/docscanhq/docscan/internal/pipeline"
	"github.com/docscanhq/docscan/internal/repository"
)

type Server struct {
	logger   *slog.Logger
	cfg      common.ExtractConfig
	docs     repository.DocumentRepository
	jobs     repository.ExtractJobRepository
	pipe     *pipeline.Pipeline
	exporter *export.Service
}

func New(cfg common.ExtractConfig, docs repository.DocumentRepository, jobs repository.ExtractJobRepository,
	pipe *pipeline.Pipeline, exporter *export.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{logger: logger, cfg: cfg, docs: docs, jobs: jobs, pipe: pipe, exporter: exporter}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/extract", s.handleExtract)
		r.Post("/tables", s.handleTables)
		r.Post("/documents", s.handleCreateDocument)
		r.Get("/documents/{id}", s.handleGetDocument)
		r.Post("/documents/{id}/extract", s.handleExtractDocument)
		r.Get("/documents/{id}/tables.xlsx", s.handleDocumentTablesXLSX)
		r.Get("/export.xlsx", s.handleExportXLSX)
	})
	return r
}

func (s *Server) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respond(w, status, map[string]string{"error": msg})
}
