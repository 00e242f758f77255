package server

import (
	"encoding/json"
	"net/http"

	"github.com/docscanhq/docscan/internal/extract"
)

type extractRequest struct {
	Text         string          `json:"text"`
	DocumentType string          `json:"document_type"`
	Options      extract.Options `json:"options,omitempty"`
}

// handleExtract runs the analytics-oriented extraction on request text
// without persisting anything.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result := extract.SmartExtract(extract.Normalize(req.Text), req.DocumentType)
	s.logger.Info("api.extract",
		"document_type", result.Analytics.DocumentType,
		"chars", len(req.Text),
		"confidence", result.Analytics.Confidence,
	)
	s.respond(w, http.StatusOK, result)
}

type tablesRequest struct {
	Text                string          `json:"text"`
	DocumentType        string          `json:"document_type"`
	ConfidenceThreshold float64         `json:"confidence_threshold"`
	Options             extract.Options `json:"options,omitempty"`
}

// handleTables runs the table-centric extraction variant.
func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	var req tablesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ConfidenceThreshold < 0 || req.ConfidenceThreshold > 1 {
		s.respondError(w, http.StatusBadRequest, "confidence_threshold must be in [0,1]")
		return
	}

	text := extract.Normalize(req.Text)
	data := extract.ExtractStructuredData(text, req.DocumentType, req.Options)
	if req.ConfidenceThreshold > 0 {
		filtered := data.Tables[:0]
		for _, t := range data.Tables {
			if t.Confidence >= req.ConfidenceThreshold {
				filtered = append(filtered, t)
			}
		}
		data.Tables = filtered
	}

	s.logger.Info("api.tables", "tables", len(data.Tables), "chars", len(req.Text))
	s.respond(w, http.StatusOK, data)
}
