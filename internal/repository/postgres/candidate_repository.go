package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Pankajnegi356/recruitment-portal/internal/common"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/candidate"
)

const candidateColumns = `id, name, email, phone, resume_ref, job_id, department, skill_match_score, source, status, max_stage_reached, created_at, updated_at`

type CandidateRepository struct {
	db *sql.DB
}

func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

func (r *CandidateRepository) Create(ctx context.Context, c candidate.Candidate) (*candidate.Candidate, error) {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, `INSERT INTO candidates (name, email, phone, resume_ref, job_id, department, skill_match_score, source, status, max_stage_reached, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`,
		c.Name, c.Email, c.Phone, c.ResumeRef, c.JobID, c.Department, c.SkillMatchScore, c.Source, c.Status, c.MaxStageReached, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "candidate email already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create candidate", err)
	}
	return &c, nil
}

func (r *CandidateRepository) Update(ctx context.Context, c candidate.Candidate) (*candidate.Candidate, error) {
	c.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE candidates SET name = $1, phone = $2, resume_ref = $3, job_id = $4, department = $5, skill_match_score = $6, status = $7, max_stage_reached = $8, updated_at = $9
		WHERE id = $10`,
		c.Name, c.Phone, c.ResumeRef, c.JobID, c.Department, c.SkillMatchScore, c.Status, c.MaxStageReached, c.UpdatedAt, c.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update candidate", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "candidate not found", sql.ErrNoRows)
	}
	return &c, nil
}

func (r *CandidateRepository) GetByID(ctx context.Context, id int64) (*candidate.Candidate, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	return scanCandidate(row)
}

func (r *CandidateRepository) FindByEmail(ctx context.Context, email string) (*candidate.Candidate, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE email = $1`, email)
	return scanCandidate(row)
}

func (r *CandidateRepository) UpdateStatus(ctx context.Context, id int64, status, maxStage int) (*candidate.Candidate, error) {
	updatedAt := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE candidates SET status = $1, max_stage_reached = $2, updated_at = $3 WHERE id = $4`,
		status, maxStage, updatedAt, id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update candidate status", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "candidate not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

func (r *CandidateRepository) ListByJob(ctx context.Context, jobID int64) ([]candidate.Candidate, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE job_id = $1 ORDER BY created_at DESC`, jobID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list candidates", err)
	}
	defer rows.Close()
	var items []candidate.Candidate
	for rows.Next() {
		c, err := scanCandidateRow(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan candidate", err)
		}
		items = append(items, *c)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row *sql.Row) (*candidate.Candidate, error) {
	c, err := scanCandidateRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "candidate not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load candidate", err)
	}
	return c, nil
}

func scanCandidateRow(row rowScanner) (*candidate.Candidate, error) {
	var c candidate.Candidate
	var jobID sql.NullInt64
	var department sql.NullString
	var skillMatch sql.NullFloat64
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.ResumeRef, &jobID, &department, &skillMatch, &c.Source, &c.Status, &c.MaxStageReached, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if jobID.Valid {
		c.JobID = &jobID.Int64
	}
	if department.Valid {
		c.Department = &department.String
	}
	if skillMatch.Valid {
		c.SkillMatchScore = &skillMatch.Float64
	}
	return &c, nil
}
