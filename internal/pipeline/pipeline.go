// Package pipeline runs the extraction engine over stored documents and
// persists the results as extract jobs.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/docscanhq/docscan/internal/common"
	"github.com/docscanhq/docscan/internal/extract"
	"github.com/docscanhq/docscan/internal/repository"
	"github.com/docscanhq/docscan/internal/schema"
)

// Config holds thresholds and behavior flags for the extract stage.
type Config struct {
	MinConfidence float64 // default 0.60
}

type Pipeline struct {
	Logger *slog.Logger
	Cfg    Config
	Docs   repository.DocumentRepository
	Jobs   repository.ExtractJobRepository
}

func NewPipeline(docs repository.DocumentRepository, jobs repository.ExtractJobRepository, cfg Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = 0.60
	}
	return &Pipeline{Logger: logger, Cfg: cfg, Docs: docs, Jobs: jobs}
}

// Run executes the extraction stage for one document. documentType overrides
// the type the document was registered with when non-empty.
// Effects: writes a finished extract_jobs row holding the full result JSON.
func (p *Pipeline) Run(ctx context.Context, documentID uuid.UUID, documentType string) (uuid.UUID, *extract.ExtractionResult, error) {
	doc, err := p.Docs.GetDocument(ctx, documentID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("load document: %w", err)
	}
	if documentType == "" {
		documentType = doc.DocType
	}

	job, err := p.Jobs.StartJob(ctx, doc.ID, documentType)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("start job: %w", err)
	}

	p.Logger.Info("pipeline.extract.start",
		"job_id", job.ID, "document_id", doc.ID,
		"document_type", documentType, "chars", doc.CharCount,
	)

	result := extract.SmartExtract(extract.Normalize(doc.Body), documentType)

	raw, err := json.Marshal(result)
	if err != nil {
		_ = p.Jobs.FinishJobFailure(ctx, job.ID, err.Error())
		return job.ID, nil, fmt.Errorf("marshal result: %w", err)
	}
	if err := schema.ValidateResult(raw); err != nil {
		_ = p.Jobs.FinishJobFailure(ctx, job.ID, err.Error())
		return job.ID, nil, fmt.Errorf("%w: %v", common.ErrResultSchema, err)
	}

	needsReview := result.Analytics.Confidence < p.Cfg.MinConfidence ||
		!result.Analytics.Summary.ExtractionComplete

	if err := p.Jobs.FinishJobSuccess(ctx, job.ID, result.Analytics.Confidence, needsReview, string(raw)); err != nil {
		return job.ID, &result, err
	}

	p.Logger.Info("pipeline.extract.ok",
		"job_id", job.ID, "document_id", doc.ID,
		"confidence", result.Analytics.Confidence,
		"needs_review", needsReview,
		"complete", result.Analytics.Summary.ExtractionComplete,
	)
	return job.ID, &result, nil
}
