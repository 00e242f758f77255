// Package ingest registers OCR text dumps from the filesystem, deduplicating
// by content hash.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/docscanhq/docscan/constants"
	"github.com/docscanhq/docscan/internal/common"
	"github.com/docscanhq/docscan/internal/repository"
)

type Ingestor struct {
	docs   repository.DocumentRepository
	logger *slog.Logger
}

func NewIngestor(docs repository.DocumentRepository, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{docs: docs, logger: logger}
}

type FileResult struct {
	Path         string
	DocumentID   uuid.UUID
	Deduplicated bool
	HashHex      string
	Err          string
}

type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Succeeded    uint32
	Deduplicated uint32
	Failed       uint32
}

// IngestPath registers a single OCR text file. A file whose content hash is
// already known resolves to the existing document.
func (in *Ingestor) IngestPath(ctx context.Context, path, docType string) (uuid.UUID, bool, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("read %s: %w", path, err)
	}

	sum := sha256.Sum256(body)
	hashHex := hex.EncodeToString(sum[:])

	if existing, err := in.docs.GetDocumentByHash(ctx, hashHex); err == nil {
		in.logger.Info("ingest.dedup", "path", path, "document_id", existing.ID)
		return existing.ID, true, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return uuid.Nil, false, err
	}

	doc := &repository.Document{
		SourcePath:  path,
		Filename:    filepath.Base(path),
		ContentHash: hashHex,
		DocType:     docType,
		Body:        string(body),
	}
	if err := in.docs.CreateDocument(ctx, doc); err != nil {
		return uuid.Nil, false, err
	}
	return doc.ID, false, nil
}

// IngestDirectory walks root and registers every allowed text file, skipping
// hidden entries. Returns per-file results plus aggregate stats.
func (in *Ingestor) IngestDirectory(ctx context.Context, root, docType string) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var results []FileResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			results = append(results, FileResult{Path: path, Err: walkErr.Error()})
			stats.Failed++
			return nil // continue walking
		}
		if isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !constants.IsAllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++

		id, dedup, err := in.IngestPath(ctx, path, docType)
		if err != nil {
			results = append(results, FileResult{Path: path, Err: err.Error()})
			stats.Failed++
			return nil
		}
		if dedup {
			stats.Deduplicated++
		} else {
			stats.Succeeded++
		}
		results = append(results, FileResult{Path: path, DocumentID: id, Deduplicated: dedup})
		return ctx.Err()
	})
	if err != nil {
		return results, stats, fmt.Errorf("walk %s: %w", root, err)
	}

	in.logger.Info("ingest.dir.done", "root", root,
		"matched", stats.Matched, "succeeded", stats.Succeeded,
		"deduplicated", stats.Deduplicated, "failed", stats.Failed)
	return results, stats, nil
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
