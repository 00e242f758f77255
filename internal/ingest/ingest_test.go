package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/docscanhq/docscan/internal/common"
	"github.com/docscanhq/docscan/internal/repository"
)

// memDocs is an in-memory DocumentRepository for exercising ingestion
// without a database.
type memDocs struct {
	byID   map[uuid.UUID]*repository.Document
	byHash map[string]*repository.Document
}

func newMemDocs() *memDocs {
	return &memDocs{
		byID:   map[uuid.UUID]*repository.Document{},
		byHash: map[string]*repository.Document{},
	}
}

func (m *memDocs) CreateDocument(_ context.Context, doc *repository.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	doc.CharCount = len(doc.Body)
	m.byID[doc.ID] = doc
	m.byHash[doc.ContentHash] = doc
	return nil
}

func (m *memDocs) GetDocument(_ context.Context, id uuid.UUID) (*repository.Document, error) {
	if doc, ok := m.byID[id]; ok {
		return doc, nil
	}
	return nil, common.ErrNotFound
}

func (m *memDocs) GetDocumentByHash(_ context.Context, hash string) (*repository.Document, error) {
	if doc, ok := m.byHash[hash]; ok {
		return doc, nil
	}
	return nil, common.ErrNotFound
}

func (m *memDocs) ListDocuments(_ context.Context) ([]*repository.Document, error) {
	out := make([]*repository.Document, 0, len(m.byID))
	for _, doc := range m.byID {
		out = append(out, doc)
	}
	return out, nil
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIngestPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "receipt.txt", "FRESH MART\nTotal 11.34")

	docs := newMemDocs()
	in := NewIngestor(docs, nil)

	id, dedup, err := in.IngestPath(context.Background(), path, "receipt")
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if dedup {
		t.Error("first ingest should not be a dedup")
	}

	doc, err := docs.GetDocument(context.Background(), id)
	if err != nil {
		t.Fatalf("stored document: %v", err)
	}
	if doc.Filename != "receipt.txt" || doc.DocType != "receipt" {
		t.Errorf("stored document: %+v", doc)
	}
	if doc.Body != "FRESH MART\nTotal 11.34" {
		t.Errorf("body: %q", doc.Body)
	}
	if len(doc.ContentHash) != 64 {
		t.Errorf("content hash: %q", doc.ContentHash)
	}

	// same bytes again resolves to the existing document
	again, dedup, err := in.IngestPath(context.Background(), path, "receipt")
	if err != nil {
		t.Fatalf("re-ingest: %v", err)
	}
	if !dedup || again != id {
		t.Errorf("re-ingest: id=%s dedup=%v, want existing id and dedup", again, dedup)
	}
}

func TestIngestDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "first document body")
	writeFile(t, dir, "b.txt", "first document body") // duplicate content
	writeFile(t, dir, "c.ocr", "third document body")
	writeFile(t, dir, "skip.pdf", "not ingestible")
	writeFile(t, dir, ".hidden.txt", "hidden file")

	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "d.txt", "nested document body")

	docs := newMemDocs()
	in := NewIngestor(docs, nil)

	results, stats, err := in.IngestDirectory(context.Background(), dir, "general")
	if err != nil {
		t.Fatalf("ingest dir: %v", err)
	}

	if stats.Matched != 4 {
		t.Errorf("matched: got %d, want 4", stats.Matched)
	}
	if stats.Succeeded != 3 {
		t.Errorf("succeeded: got %d, want 3", stats.Succeeded)
	}
	if stats.Deduplicated != 1 {
		t.Errorf("deduplicated: got %d, want 1", stats.Deduplicated)
	}
	if stats.Failed != 0 {
		t.Errorf("failed: got %d", stats.Failed)
	}
	if len(results) != 4 {
		t.Errorf("results: got %d entries", len(results))
	}

	stored, _ := docs.ListDocuments(context.Background())
	if len(stored) != 3 {
		t.Errorf("stored documents: got %d, want 3", len(stored))
	}
}

func TestIngestDirectory_EmptyRoot(t *testing.T) {
	in := NewIngestor(newMemDocs(), nil)
	if _, _, err := in.IngestDirectory(context.Background(), "  ", "general"); err == nil {
		t.Fatal("blank root should error")
	}
}
