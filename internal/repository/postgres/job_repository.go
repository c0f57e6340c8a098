package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/Pankajnegi356/recruitment-portal/internal/common"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/job"
)

const jobColumns = `id, title, department, status, description, requirements, location, employment_type, experience_level, salary_range, created_at, updated_at`

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, `INSERT INTO jobs (title, department, status, description, requirements, location, employment_type, experience_level, salary_range, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`,
		j.Title, j.Department, j.Status, j.Description, pq.Array(j.Requirements), j.Location, j.EmploymentType, j.ExperienceLevel, j.SalaryRange, j.CreatedAt, j.UpdatedAt).Scan(&j.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	j.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET title = $1, department = $2, status = $3, description = $4, requirements = $5, location = $6, employment_type = $7, experience_level = $8, salary_range = $9, updated_at = $10
		WHERE id = $11`,
		j.Title, j.Department, j.Status, j.Description, pq.Array(j.Requirements), j.Location, j.EmploymentType, j.ExperienceLevel, j.SalaryRange, j.UpdatedAt, j.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "job not found", sql.ErrNoRows)
	}
	return &j, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id int64) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *JobRepository) List(ctx context.Context) ([]job.Job, error) {
	return r.queryJobs(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
}

// ListOpen returns publicly resolvable postings, newest first. The ordering
// doubles as the tie-break for colliding application codes: first match wins.
func (r *JobRepository) ListOpen(ctx context.Context) ([]job.Job, error) {
	return r.queryJobs(ctx, `SELECT `+jobColumns+` FROM jobs WHERE status IN ($1, $2) ORDER BY created_at DESC`, job.StatusDraft, job.StatusActive)
}

func (r *JobRepository) queryJobs(ctx context.Context, query string, args ...any) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	var items []job.Job
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Department, &j.Status, &j.Description, pq.Array(&j.Requirements), &j.Location, &j.EmploymentType, &j.ExperienceLevel, &j.SalaryRange, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
		}
		items = append(items, j)
	}
	return items, nil
}

func scanJob(row *sql.Row) (*job.Job, error) {
	var j job.Job
	if err := row.Scan(&j.ID, &j.Title, &j.Department, &j.Status, &j.Description, pq.Array(&j.Requirements), &j.Location, &j.EmploymentType, &j.ExperienceLevel, &j.SalaryRange, &j.CreatedAt, &j.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return &j, nil
}
