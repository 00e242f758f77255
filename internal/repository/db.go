// Package repository persists documents and extraction jobs. It speaks
// database/sql with either the pgx stdlib driver (postgres DSNs) or the
// modernc sqlite driver (everything else, including ":memory:").
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/docscanhq/docscan/internal/common"
)

type Store struct {
	db       *sql.DB
	postgres bool
	logger   *slog.Logger
}

// Open connects to the database selected by the DSN and applies the schema.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	driver := "sqlite"
	postgres := strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://")
	if postgres {
		driver = "pgx"
	}

	logger.Info("connecting to database", "driver", driver)
	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db, postgres: postgres, logger: logger}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("database ready")
	return s, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id            TEXT PRIMARY KEY,
		source_path   TEXT NOT NULL,
		filename      TEXT NOT NULL,
		content_hash  TEXT NOT NULL UNIQUE,
		doc_type      TEXT NOT NULL,
		body          TEXT NOT NULL,
		char_count    INTEGER NOT NULL,
		uploaded_at   TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS extract_jobs (
		id            TEXT PRIMARY KEY,
		document_id   TEXT NOT NULL REFERENCES documents(id),
		status        TEXT NOT NULL,
		document_type TEXT NOT NULL,
		confidence    REAL,
		needs_review  INTEGER NOT NULL DEFAULT 0,
		result_json   TEXT,
		error_message TEXT,
		started_at    TIMESTAMP NOT NULL,
		finished_at   TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_extract_jobs_document ON extract_jobs(document_id)`,
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// rebind converts ?-placeholders to the $N form pgx expects. The sqlite
// driver takes ? as-is.
func (s *Store) rebind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
