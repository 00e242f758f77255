package export

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/docscanhq/docscan/constants"
	"github.com/docscanhq/docscan/internal/common"
	"github.com/docscanhq/docscan/internal/extract"
	"github.com/docscanhq/docscan/internal/repository"
)

type memDocs struct {
	docs map[uuid.UUID]*repository.Document
}

func (m *memDocs) CreateDocument(_ context.Context, doc *repository.Document) error {
	m.docs[doc.ID] = doc
	return nil
}

func (m *memDocs) GetDocument(_ context.Context, id uuid.UUID) (*repository.Document, error) {
	if doc, ok := m.docs[id]; ok {
		return doc, nil
	}
	return nil, common.ErrNotFound
}

func (m *memDocs) GetDocumentByHash(_ context.Context, _ string) (*repository.Document, error) {
	return nil, common.ErrNotFound
}

func (m *memDocs) ListDocuments(_ context.Context) ([]*repository.Document, error) { return nil, nil }

type memJobs struct {
	completed []*repository.ExtractJob
}

func (m *memJobs) StartJob(_ context.Context, _ uuid.UUID, _ string) (*repository.ExtractJob, error) {
	return nil, nil
}
func (m *memJobs) FinishJobSuccess(_ context.Context, _ uuid.UUID, _ float64, _ bool, _ string) error {
	return nil
}
func (m *memJobs) FinishJobFailure(_ context.Context, _ uuid.UUID, _ string) error { return nil }
func (m *memJobs) GetJob(_ context.Context, _ uuid.UUID) (*repository.ExtractJob, error) {
	return nil, common.ErrNotFound
}
func (m *memJobs) LatestJobForDocument(_ context.Context, _ uuid.UUID) (*repository.ExtractJob, error) {
	return nil, common.ErrNotFound
}
func (m *memJobs) ListCompletedJobs(_ context.Context) ([]*repository.ExtractJob, error) {
	return m.completed, nil
}

const receiptBody = `FRESH MART
123 Main Street
01/15/2024 14:32
2 Coffee  7.00
Total  11.34`

func TestExportJobsXLSX(t *testing.T) {
	doc := &repository.Document{
		ID:         uuid.New(),
		SourcePath: "/scans/receipt.txt",
		Filename:   "receipt.txt",
		DocType:    "receipt",
		Body:       receiptBody,
	}
	docs := &memDocs{docs: map[uuid.UUID]*repository.Document{doc.ID: doc}}

	result := extract.SmartExtract(receiptBody, "receipt")
	raw, err := json.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}
	resultJSON := string(raw)
	confidence := result.Analytics.Confidence
	finished := time.Date(2024, 1, 15, 15, 0, 0, 0, time.UTC)

	jobs := &memJobs{completed: []*repository.ExtractJob{{
		ID:           uuid.New(),
		DocumentID:   doc.ID,
		Status:       constants.JobStatusExtracted,
		DocumentType: "receipt",
		Confidence:   &confidence,
		ResultJSON:   &resultJSON,
		FinishedAt:   &finished,
	}}}

	svc := NewService(docs, jobs, nil)
	data, err := svc.ExportJobsXLSX(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer func() { _ = wb.Close() }()

	const sheet = "Extractions"
	if sheets := wb.GetSheetList(); len(sheets) != 1 || sheets[0] != sheet {
		t.Errorf("sheets: got %v", sheets)
	}
	if got, _ := wb.GetCellValue(sheet, "A1"); got != "Extracted At" {
		t.Errorf("A1: got %q", got)
	}
	if got, _ := wb.GetCellValue(sheet, "B2"); got != "receipt.txt" {
		t.Errorf("B2: got %q", got)
	}
	if got, _ := wb.GetCellValue(sheet, "C2"); got != "receipt" {
		t.Errorf("C2: got %q", got)
	}
	if got, _ := wb.GetCellValue(sheet, "F2"); got != "01/15/2024" {
		t.Errorf("F2 dates: got %q", got)
	}
	if got, _ := wb.GetCellValue(sheet, "H2"); got != "/scans/receipt.txt" {
		t.Errorf("H2: got %q", got)
	}
}

func TestExportJobsXLSX_Empty(t *testing.T) {
	svc := NewService(&memDocs{docs: map[uuid.UUID]*repository.Document{}}, &memJobs{}, nil)
	data, err := svc.ExportJobsXLSX(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer func() { _ = wb.Close() }()

	if got, _ := wb.GetCellValue("Extractions", "A1"); got != "Extracted At" {
		t.Errorf("header row missing: %q", got)
	}
	if got, _ := wb.GetCellValue("Extractions", "B2"); got != "" {
		t.Errorf("unexpected data row: %q", got)
	}
}

func TestExportDocumentTablesXLSX(t *testing.T) {
	doc := &repository.Document{
		ID:       uuid.New(),
		Filename: "inventory.txt",
		Body: "Name\tQty\tPrice\n" +
			"Apple\t2\t1.50\n" +
			"Bread\t1\t2.25\n" +
			"Milk\t3\t4.50",
	}

	svc := NewService(&memDocs{docs: map[uuid.UUID]*repository.Document{}}, &memJobs{}, nil)
	data, err := svc.ExportDocumentTablesXLSX(context.Background(), doc)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer func() { _ = wb.Close() }()

	if got, _ := wb.GetCellValue("Table 1", "A1"); got != "Name" {
		t.Errorf("A1: got %q", got)
	}
	if got, _ := wb.GetCellValue("Table 1", "C2"); got != "1.50" {
		t.Errorf("C2: got %q", got)
	}
}
