package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/docscanhq/docscan/constants"
	"github.com/docscanhq/docscan/internal/common"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := common.DatabaseConfig{
		DSN:          "file:" + filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
		DialTimeout:  5 * time.Second,
	}
	s, err := Open(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDocumentRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	doc := &Document{
		SourcePath:  "/scans/receipt.txt",
		Filename:    "receipt.txt",
		ContentHash: "abc123",
		DocType:     "receipt",
		Body:        "FRESH MART\nTotal 11.34",
	}
	if err := s.CreateDocument(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	if doc.ID == uuid.Nil {
		t.Fatal("create should assign an id")
	}
	if doc.CharCount != len(doc.Body) {
		t.Errorf("charCount: got %d", doc.CharCount)
	}

	got, err := s.GetDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Filename != "receipt.txt" || got.Body != doc.Body || got.DocType != "receipt" {
		t.Errorf("round trip mismatch: %+v", got)
	}

	byHash, err := s.GetDocumentByHash(ctx, "abc123")
	if err != nil {
		t.Fatalf("get by hash: %v", err)
	}
	if byHash.ID != doc.ID {
		t.Errorf("hash lookup: got %s, want %s", byHash.ID, doc.ID)
	}

	all, err := s.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("list: got %d documents", len(all))
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetDocument(context.Background(), uuid.New())
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("error: got %v, want ErrNotFound", err)
	}
	_, err = s.GetDocumentByHash(context.Background(), "nope")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("hash error: got %v, want ErrNotFound", err)
	}
}

func TestDuplicateHashRejected(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := &Document{SourcePath: "/a", Filename: "a.txt", ContentHash: "same", DocType: "general", Body: "x"}
	b := &Document{SourcePath: "/b", Filename: "b.txt", ContentHash: "same", DocType: "general", Body: "x"}
	if err := s.CreateDocument(ctx, a); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := s.CreateDocument(ctx, b)
	if err == nil {
		t.Fatal("second insert with the same hash should violate the unique constraint")
	}
	if !errors.Is(err, common.ErrDuplicateDocument) {
		t.Errorf("error: got %v, want ErrDuplicateDocument", err)
	}
}

func TestJobLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	doc := &Document{SourcePath: "/a", Filename: "a.txt", ContentHash: "h1", DocType: "receipt", Body: "text"}
	if err := s.CreateDocument(ctx, doc); err != nil {
		t.Fatal(err)
	}

	job, err := s.StartJob(ctx, doc.ID, "receipt")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if job.Status != constants.JobStatusRunning {
		t.Errorf("status after start: got %s", job.Status)
	}

	if err := s.FinishJobSuccess(ctx, job.ID, 0.91, true, `{"ok":true}`); err != nil {
		t.Fatalf("finish: %v", err)
	}

	got, err := s.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != constants.JobStatusExtracted {
		t.Errorf("status: got %s", got.Status)
	}
	if got.Confidence == nil || *got.Confidence != 0.91 {
		t.Errorf("confidence: got %v", got.Confidence)
	}
	if !got.NeedsReview {
		t.Error("needsReview should persist")
	}
	if got.ResultJSON == nil || *got.ResultJSON != `{"ok":true}` {
		t.Errorf("resultJSON: got %v", got.ResultJSON)
	}
	if got.FinishedAt == nil {
		t.Error("finishedAt should be set")
	}

	latest, err := s.LatestJobForDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.ID != job.ID {
		t.Errorf("latest job: got %s, want %s", latest.ID, job.ID)
	}

	completed, err := s.ListCompletedJobs(ctx)
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(completed) != 1 {
		t.Errorf("completed jobs: got %d", len(completed))
	}
}

func TestJobFailure(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	doc := &Document{SourcePath: "/a", Filename: "a.txt", ContentHash: "h2", DocType: "general", Body: "text"}
	if err := s.CreateDocument(ctx, doc); err != nil {
		t.Fatal(err)
	}
	job, err := s.StartJob(ctx, doc.ID, "general")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.FinishJobFailure(ctx, job.ID, "boom"); err != nil {
		t.Fatalf("fail: %v", err)
	}

	got, err := s.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != constants.JobStatusFailed {
		t.Errorf("status: got %s", got.Status)
	}
	if got.ErrorMessage == nil || *got.ErrorMessage != "boom" {
		t.Errorf("errorMessage: got %v", got.ErrorMessage)
	}
	if got.Confidence != nil {
		t.Errorf("confidence should stay null, got %v", got.Confidence)
	}

	if _, err := s.GetJob(ctx, uuid.New()); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("missing job: got %v, want ErrNotFound", err)
	}
	completed, err := s.ListCompletedJobs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(completed) != 0 {
		t.Errorf("failed jobs must not list as completed, got %d", len(completed))
	}
}

func TestRebind(t *testing.T) {
	sqlite := &Store{postgres: false}
	if got := sqlite.rebind("SELECT ?, ?"); got != "SELECT ?, ?" {
		t.Errorf("sqlite rebind: got %q", got)
	}
	pg := &Store{postgres: true}
	if got := pg.rebind("UPDATE t SET a = ? WHERE id = ?"); got != "UPDATE t SET a = $1 WHERE id = $2" {
		t.Errorf("postgres rebind: got %q", got)
	}
}
