// Package export produces XLSX workbooks and CSV for extraction results.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/docscanhq/docscan/internal/extract"
	"github.com/docscanhq/docscan/internal/repository"
)

// Service is a tiny façade over repositories that produces workbook bytes.
type Service struct {
	docs   repository.DocumentRepository
	jobs   repository.ExtractJobRepository
	logger *slog.Logger
}

func NewService(docs repository.DocumentRepository, jobs repository.ExtractJobRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{docs: docs, jobs: jobs, logger: logger}
}

// ExportJobsXLSX returns a workbook with one row per completed extraction.
func (s *Service) ExportJobsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	jobs, err := s.jobs.ListCompletedJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Extractions"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{
		"Extracted At",
		"File",
		"Document Type",
		"Confidence",
		"Needs Review",
		"Dates Found",
		"Totals Found",
		"Source Path",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, j := range jobs {
		doc, err := s.docs.GetDocument(ctx, j.DocumentID)
		if err != nil {
			continue
		}

		var result extract.ExtractionResult
		if j.ResultJSON != nil {
			_ = json.Unmarshal([]byte(*j.ResultJSON), &result)
		}
		dates, _ := result.Extracted["dates"].([]any)
		totals, _ := result.Extracted["totals"].([]any)

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		if j.FinishedAt != nil {
			write(1, j.FinishedAt.Format("2006-01-02 15:04"))
		} else {
			write(1, "")
		}
		write(2, doc.Filename)
		write(3, j.DocumentType)
		if j.Confidence != nil {
			write(4, fmt.Sprintf("%.2f", *j.Confidence))
		}
		write(5, j.NeedsReview)
		write(6, joinAny(dates))
		write(7, joinAny(totals))
		write(8, doc.SourcePath)

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 18) // timestamp
	_ = f.SetColWidth(sheet, "B", "B", 28) // file
	_ = f.SetColWidth(sheet, "C", "C", 16) // type
	_ = f.SetColWidth(sheet, "F", "G", 24) // dates/totals
	_ = f.SetColWidth(sheet, "H", "H", 60) // path

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(jobs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// ExportDocumentTablesXLSX renders every detected table of one document as
// its own sheet.
func (s *Service) ExportDocumentTablesXLSX(ctx context.Context, doc *repository.Document) ([]byte, error) {
	tables := extract.DetectTables(extract.Normalize(doc.Body), 0)

	f := excelize.NewFile()
	for i, t := range tables {
		sheet := fmt.Sprintf("Table %d", i+1)
		if i == 0 {
			_ = f.SetSheetName("Sheet1", sheet)
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		for r, tr := range t.Data {
			for c, cellVal := range extract.SplitCells(tr.RawText) {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
				_ = f.SetCellValue(sheet, cell, cellVal)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	s.logger.Info("export.tables.ok", "document_id", doc.ID, "tables", len(tables))
	return buf.Bytes(), nil
}

func joinAny(vals []any) string {
	out := ""
	for i, v := range vals {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%v", v)
	}
	return out
}
