package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/docscanhq/docscan/internal/common"
	"github.com/docscanhq/docscan/internal/repository"
)

type createDocumentRequest struct {
	Text         string `json:"text"`
	DocumentType string `json:"document_type"`
	Filename     string `json:"filename"`
}

type documentResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	DocumentType string `json:"document_type"`
	CharCount    int    `json:"char_count"`
	UploadedAt   string `json:"uploaded_at"`
	Deduplicated bool   `json:"deduplicated,omitempty"`
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	sum := sha256.Sum256([]byte(req.Text))
	hashHex := hex.EncodeToString(sum[:])

	if existing, err := s.docs.GetDocumentByHash(r.Context(), hashHex); err == nil {
		s.respond(w, http.StatusOK, toDocumentResponse(existing, true))
		return
	} else if !errors.Is(err, common.ErrNotFound) {
		s.logger.Error("lookup document by hash failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "document lookup failed")
		return
	}

	doc := &repository.Document{
		SourcePath:  "api",
		Filename:    req.Filename,
		ContentHash: hashHex,
		DocType:     req.DocumentType,
		Body:        req.Text,
	}
	if doc.Filename == "" {
		doc.Filename = "untitled.txt"
	}
	if err := s.docs.CreateDocument(r.Context(), doc); err != nil {
		s.logger.Error("create document failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "create document failed")
		return
	}
	s.respond(w, http.StatusCreated, toDocumentResponse(doc, false))
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.documentFromPath(w, r)
	if !ok {
		return
	}
	s.respond(w, http.StatusOK, toDocumentResponse(doc, false))
}

// handleExtractDocument runs the pipeline over a stored document; the
// optional document_type query parameter overrides the registered type.
func (s *Server) handleExtractDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.documentFromPath(w, r)
	if !ok {
		return
	}

	jobID, result, err := s.pipe.Run(r.Context(), doc.ID, r.URL.Query().Get("document_type"))
	if err != nil {
		s.logger.Error("extract document failed", "document_id", doc.ID, "error", err)
		s.respondError(w, http.StatusInternalServerError, "extraction failed")
		return
	}
	s.respond(w, http.StatusOK, map[string]any{
		"job_id": jobID.String(),
		"result": result,
	})
}

func (s *Server) handleDocumentTablesXLSX(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.documentFromPath(w, r)
	if !ok {
		return
	}
	data, err := s.exporter.ExportDocumentTablesXLSX(r.Context(), doc)
	if err != nil {
		s.logger.Error("table export failed", "document_id", doc.ID, "error", err)
		s.respondError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="tables.xlsx"`)
	_, _ = w.Write(data)
}

func (s *Server) documentFromPath(w http.ResponseWriter, r *http.Request) (*repository.Document, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "id must be a UUID")
		return nil, false
	}
	doc, err := s.docs.GetDocument(r.Context(), id)
	if errors.Is(err, common.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "document not found")
		return nil, false
	}
	if err != nil {
		s.logger.Error("load document failed", "document_id", id, "error", err)
		s.respondError(w, http.StatusInternalServerError, "document lookup failed")
		return nil, false
	}
	return doc, true
}

func toDocumentResponse(doc *repository.Document, dedup bool) documentResponse {
	return documentResponse{
		ID:           doc.ID.String(),
		Filename:     doc.Filename,
		DocumentType: doc.DocType,
		CharCount:    doc.CharCount,
		UploadedAt:   doc.UploadedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Deduplicated: dedup,
	}
}
