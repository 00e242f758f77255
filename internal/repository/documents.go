package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/docscanhq/docscan/internal/common"
)

// Document is a registered OCR text dump.
type Document struct {
	ID          uuid.UUID
	SourcePath  string
	Filename    string
	ContentHash string
	DocType     string
	Body        string
	CharCount   int
	UploadedAt  time.Time
}

// DocumentRepository is the document persistence boundary consumed by the
// ingest and pipeline layers.
type DocumentRepository interface {
	CreateDocument(ctx context.Context, doc *Document) error
	GetDocument(ctx context.Context, id uuid.UUID) (*Document, error)
	GetDocumentByHash(ctx context.Context, hash string) (*Document, error)
	ListDocuments(ctx context.Context) ([]*Document, error)
}

func (s *Store) CreateDocument(ctx context.Context, doc *Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}
	doc.CharCount = len(doc.Body)

	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO documents (id, source_path, filename, content_hash, doc_type, body, char_count, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		doc.ID.String(), doc.SourcePath, doc.Filename, doc.ContentHash,
		doc.DocType, doc.Body, doc.CharCount, doc.UploadedAt,
	)
	if err != nil {
		// the unique content_hash index is the usual culprit
		if _, hashErr := s.GetDocumentByHash(ctx, doc.ContentHash); hashErr == nil {
			return fmt.Errorf("insert document %s: %w", doc.ContentHash, common.ErrDuplicateDocument)
		}
		return fmt.Errorf("insert document: %w", err)
	}
	s.logger.Info("document.created", "document_id", doc.ID, "filename", doc.Filename, "chars", doc.CharCount)
	return nil
}

func (s *Store) GetDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	return s.scanDocument(s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, source_path, filename, content_hash, doc_type, body, char_count, uploaded_at
		 FROM documents WHERE id = ?`), id.String()))
}

func (s *Store) GetDocumentByHash(ctx context.Context, hash string) (*Document, error) {
	return s.scanDocument(s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, source_path, filename, content_hash, doc_type, body, char_count, uploaded_at
		 FROM documents WHERE content_hash = ?`), hash))
}

func (s *Store) ListDocuments(ctx context.Context) ([]*Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_path, filename, content_hash, doc_type, body, char_count, uploaded_at
		 FROM documents ORDER BY uploaded_at`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []*Document
	for rows.Next() {
		doc, err := s.scanDocumentRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanDocument(row *sql.Row) (*Document, error) {
	doc, err := s.scanDocumentRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return doc, err
}

func (s *Store) scanDocumentRow(row rowScanner) (*Document, error) {
	var doc Document
	var id string
	if err := row.Scan(&id, &doc.SourcePath, &doc.Filename, &doc.ContentHash,
		&doc.DocType, &doc.Body, &doc.CharCount, &doc.UploadedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse document id: %w", err)
	}
	doc.ID = parsed
	return &doc, nil
}
