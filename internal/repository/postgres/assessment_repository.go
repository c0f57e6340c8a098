package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Pankajnegi356/recruitment-portal/internal/common"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/assessment"
)

type AssessmentRepository struct {
	db *sql.DB
}

func NewAssessmentRepository(db *sql.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

func (r *AssessmentRepository) CreateTestResult(ctx context.Context, t assessment.TestResult) (*assessment.TestResult, error) {
	if t.MaxScore <= 0 {
		t.MaxScore = assessment.TestMaxScore
	}
	if t.CompletedAt.IsZero() {
		t.CompletedAt = time.Now().UTC()
	}
	err := r.db.QueryRowContext(ctx, `INSERT INTO interview_tests (candidate_id, test_score, max_score, completed_at)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		t.CandidateID, t.TestScore, t.MaxScore, t.CompletedAt).Scan(&t.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create test result", err)
	}
	return &t, nil
}

func (r *AssessmentRepository) ListTestResults(ctx context.Context, candidateID int64) ([]assessment.TestResult, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, candidate_id, test_score, max_score, completed_at FROM interview_tests WHERE candidate_id = $1 ORDER BY completed_at DESC`, candidateID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list test results", err)
	}
	defer rows.Close()
	var items []assessment.TestResult
	for rows.Next() {
		var t assessment.TestResult
		if err := rows.Scan(&t.ID, &t.CandidateID, &t.TestScore, &t.MaxScore, &t.CompletedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan test result", err)
		}
		items = append(items, t)
	}
	return items, nil
}

func (r *AssessmentRepository) CreateInterview(ctx context.Context, i assessment.Interview) (*assessment.Interview, error) {
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now().UTC()
	}
	err := r.db.QueryRowContext(ctx, `INSERT INTO interviews (candidate_id, rating, created_at)
		VALUES ($1, $2, $3) RETURNING id`,
		i.CandidateID, i.Rating, i.CreatedAt).Scan(&i.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create interview", err)
	}
	return &i, nil
}

func (r *AssessmentRepository) ListInterviews(ctx context.Context, candidateID int64) ([]assessment.Interview, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, candidate_id, rating, created_at FROM interviews WHERE candidate_id = $1 ORDER BY created_at DESC`, candidateID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list interviews", err)
	}
	defer rows.Close()
	var items []assessment.Interview
	for rows.Next() {
		var i assessment.Interview
		if err := rows.Scan(&i.ID, &i.CandidateID, &i.Rating, &i.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan interview", err)
		}
		items = append(items, i)
	}
	return items, nil
}
