package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/docscanhq/docscan/constants"
	"github.com/docscanhq/docscan/internal/common"
)

// ExtractJob is one run of the extraction engine over a document.
type ExtractJob struct {
	ID           uuid.UUID
	DocumentID   uuid.UUID
	Status       constants.JobStatus
	DocumentType string
	Confidence   *float64
	NeedsReview  bool
	ResultJSON   *string
	ErrorMessage *string
	StartedAt    time.Time
	FinishedAt   *time.Time
}

// ExtractJobRepository is the job persistence boundary consumed by the
// pipeline and export layers.
type ExtractJobRepository interface {
	StartJob(ctx context.Context, documentID uuid.UUID, documentType string) (*ExtractJob, error)
	FinishJobSuccess(ctx context.Context, jobID uuid.UUID, confidence float64, needsReview bool, resultJSON string) error
	FinishJobFailure(ctx context.Context, jobID uuid.UUID, message string) error
	GetJob(ctx context.Context, id uuid.UUID) (*ExtractJob, error)
	LatestJobForDocument(ctx context.Context, documentID uuid.UUID) (*ExtractJob, error)
	ListCompletedJobs(ctx context.Context) ([]*ExtractJob, error)
}

func (s *Store) StartJob(ctx context.Context, documentID uuid.UUID, documentType string) (*ExtractJob, error) {
	job := &ExtractJob{
		ID:           uuid.New(),
		DocumentID:   documentID,
		Status:       constants.JobStatusRunning,
		DocumentType: documentType,
		StartedAt:    time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO extract_jobs (id, document_id, status, document_type, needs_review, started_at)
		 VALUES (?, ?, ?, ?, 0, ?)`),
		job.ID.String(), documentID.String(), string(job.Status), documentType, job.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return job, nil
}

func (s *Store) FinishJobSuccess(ctx context.Context, jobID uuid.UUID, confidence float64, needsReview bool, resultJSON string) error {
	review := 0
	if needsReview {
		review = 1
	}
	_, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE extract_jobs
		 SET status = ?, confidence = ?, needs_review = ?, result_json = ?, finished_at = ?
		 WHERE id = ?`),
		string(constants.JobStatusExtracted), confidence, review, resultJSON, time.Now().UTC(), jobID.String(),
	)
	if err != nil {
		return fmt.Errorf("finish job: %w", err)
	}
	return nil
}

func (s *Store) FinishJobFailure(ctx context.Context, jobID uuid.UUID, message string) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE extract_jobs SET status = ?, error_message = ?, finished_at = ? WHERE id = ?`),
		string(constants.JobStatusFailed), message, time.Now().UTC(), jobID.String(),
	)
	if err != nil {
		return fmt.Errorf("fail job: %w", err)
	}
	return nil
}

const jobColumns = `id, document_id, status, document_type, confidence, needs_review, result_json, error_message, started_at, finished_at`

func (s *Store) GetJob(ctx context.Context, id uuid.UUID) (*ExtractJob, error) {
	job, err := scanJob(s.db.QueryRowContext(ctx, s.rebind(
		`SELECT `+jobColumns+` FROM extract_jobs WHERE id = ?`), id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return job, err
}

func (s *Store) LatestJobForDocument(ctx context.Context, documentID uuid.UUID) (*ExtractJob, error) {
	job, err := scanJob(s.db.QueryRowContext(ctx, s.rebind(
		`SELECT `+jobColumns+` FROM extract_jobs
		 WHERE document_id = ? ORDER BY started_at DESC LIMIT 1`), documentID.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return job, err
}

func (s *Store) ListCompletedJobs(ctx context.Context) ([]*ExtractJob, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT `+jobColumns+` FROM extract_jobs WHERE status = ? ORDER BY started_at`),
		string(constants.JobStatusExtracted))
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var out []*ExtractJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

func scanJob(row rowScanner) (*ExtractJob, error) {
	var job ExtractJob
	var id, documentID, status string
	var review int
	if err := row.Scan(&id, &documentID, &status, &job.DocumentType, &job.Confidence,
		&review, &job.ResultJSON, &job.ErrorMessage, &job.StartedAt, &job.FinishedAt); err != nil {
		return nil, err
	}
	jobID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse job id: %w", err)
	}
	docID, err := uuid.Parse(documentID)
	if err != nil {
		return nil, fmt.Errorf("parse document id: %w", err)
	}
	job.ID = jobID
	job.DocumentID = docID
	job.Status = constants.JobStatus(status)
	job.NeedsReview = review != 0
	return &job, nil
}
