package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/docscanhq/docscan/internal/common"
	"github.com/docscanhq/docscan/internal/export"
	"github.com/docscanhq/docscan/internal/ingest"
	"github.com/docscanhq/docscan/internal/pipeline"
	"github.com/docscanhq/docscan/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("docscan-batch")
	var (
		inmem   = fs.BoolLong("inmem", "use an in-memory SQLite database")
		dir     = fs.StringLong("dir", "", "directory of OCR text dumps to process (required)")
		out     = fs.StringLong("out", "", "output XLSX file path (defaults to parent directory)")
		docType = fs.StringLong("type", "general", "document type applied to every file")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("DOCSCAN")); err != nil {
		printError("%s\nerror: %v\n", ffhelp.Flags(fs), err)
		os.Exit(1)
	}

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "extractions.xlsx")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *inmem {
		cfg.Database.DSN = "file::memory:?cache=shared"
	}

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		printError("Error: database open: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ingestor := ingest.NewIngestor(store, logger)
	results, stats, err := ingestor.IngestDirectory(ctx, *dir, *docType)
	if err != nil {
		printError("Error: ingest: %v\n", err)
		os.Exit(1)
	}
	logger.Info("batch.ingest.done", "matched", stats.Matched, "succeeded", stats.Succeeded,
		"deduplicated", stats.Deduplicated, "failed", stats.Failed)

	pipe := pipeline.NewPipeline(store, store, pipeline.Config{MinConfidence: cfg.Extract.MinConfidence}, logger)
	extracted := 0
	for _, r := range results {
		if r.Err != "" || r.Deduplicated {
			continue
		}
		if _, _, err := pipe.Run(ctx, r.DocumentID, *docType); err != nil {
			logger.Warn("batch.extract.failed", "path", r.Path, "error", err)
			continue
		}
		extracted++
	}

	exporter := export.NewService(store, store, logger)
	data, err := exporter.ExportJobsXLSX(ctx)
	if err != nil {
		printError("Error: export: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		printError("Error: write %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("Processed %d documents (%d deduplicated, %d failed); wrote %s\n",
		extracted, stats.Deduplicated, stats.Failed, *out)
}
