package server

import (
	"net/http"
)

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	data, err := s.exporter.ExportJobsXLSX(r.Context())
	if err != nil {
		s.logger.Error("export failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="extractions.xlsx"`)
	_, _ = w.Write(data)
}
