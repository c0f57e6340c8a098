package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Pankajnegi356/recruitment-portal/internal/common"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) (*application.Application, error) {
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now().UTC()
	}
	err := r.db.QueryRowContext(ctx, `INSERT INTO job_applications (candidate_id, job_id, status, applied_at)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		a.CandidateID, a.JobID, a.Status, a.AppliedAt).Scan(&a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "application already exists for this candidate and job", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &a, nil
}

func (r *ApplicationRepository) FindByCandidateAndJob(ctx context.Context, candidateID, jobID int64) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, candidate_id, job_id, status, applied_at FROM job_applications WHERE candidate_id = $1 AND job_id = $2`, candidateID, jobID)
	var a application.Application
	if err := row.Scan(&a.ID, &a.CandidateID, &a.JobID, &a.Status, &a.AppliedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &a, nil
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID int64) ([]application.Application, error) {
	return r.queryApplications(ctx, `SELECT id, candidate_id, job_id, status, applied_at FROM job_applications WHERE candidate_id = $1 ORDER BY applied_at DESC`, candidateID)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID int64) ([]application.Application, error) {
	return r.queryApplications(ctx, `SELECT id, candidate_id, job_id, status, applied_at FROM job_applications WHERE job_id = $1 ORDER BY applied_at DESC`, jobID)
}

func (r *ApplicationRepository) queryApplications(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		var a application.Application
		if err := rows.Scan(&a.ID, &a.CandidateID, &a.JobID, &a.Status, &a.AppliedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, a)
	}
	return items, nil
}
