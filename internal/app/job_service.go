package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Pankajnegi356/recruitment-portal/internal/common"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/activity"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/job"
	"github.com/Pankajnegi356/recruitment-portal/internal/slug"
)

type JobService struct {
	repo     job.Repository
	activity activity.Repository
}

func NewJobService(repo job.Repository, activityLog activity.Repository) *JobService {
	return &JobService{repo: repo, activity: activityLog}
}

// JobDetail pairs a posting with its current share link code. The code is
// never stored; it is recomputed from the title on every read.
type JobDetail struct {
	job.Job
	ShareSlug string `json:"share_slug"`
}

func (s *JobService) Create(ctx context.Context, j job.Job, actor string) (*JobDetail, error) {
	if strings.TrimSpace(j.Title) == "" {
		return nil, common.NewError(common.CodeValidation, "title is required", nil)
	}
	if j.Status == "" {
		j.Status = job.StatusDraft
	}
	normalized, err := normalizeJobStatus(j.Status)
	if err != nil {
		return nil, err
	}
	j.Status = normalized
	created, err := s.repo.Create(ctx, j)
	if err != nil {
		return nil, err
	}
	s.logActivity(ctx, actor, "job.created", created.ID, fmt.Sprintf("created job %q", created.Title))
	return s.withSlug(created), nil
}

func (s *JobService) Update(ctx context.Context, j job.Job, actor string) (*JobDetail, error) {
	current, err := s.repo.GetByID(ctx, j.ID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(j.Title) == "" {
		j.Title = current.Title
	}
	if j.Status == "" {
		j.Status = current.Status
	}
	normalized, err := normalizeJobStatus(j.Status)
	if err != nil {
		return nil, err
	}
	j.Status = normalized
	updated, err := s.repo.Update(ctx, j)
	if err != nil {
		return nil, err
	}
	s.logActivity(ctx, actor, "job.updated", updated.ID, fmt.Sprintf("updated job %q", updated.Title))
	return s.withSlug(updated), nil
}

func (s *JobService) UpdateStatus(ctx context.Context, id int64, status job.Status, actor string) (*JobDetail, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	normalized, err := normalizeJobStatus(status)
	if err != nil {
		return nil, err
	}
	current.Status = normalized
	updated, err := s.repo.Update(ctx, *current)
	if err != nil {
		return nil, err
	}
	s.logActivity(ctx, actor, "job.status_changed", updated.ID, fmt.Sprintf("job %q moved to %s", updated.Title, normalized))
	return s.withSlug(updated), nil
}

func (s *JobService) Get(ctx context.Context, id int64) (*JobDetail, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withSlug(item), nil
}

func (s *JobService) List(ctx context.Context) ([]JobDetail, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]JobDetail, 0, len(items))
	for _, item := range items {
		details = append(details, *s.withSlug(&item))
	}
	return details, nil
}

func (s *JobService) withSlug(j *job.Job) *JobDetail {
	return &JobDetail{Job: *j, ShareSlug: slug.Generate(j.Title, j.CreatedAt)}
}

func (s *JobService) logActivity(ctx context.Context, actor, action string, entityID int64, detail string) {
	_ = s.activity.Create(ctx, activity.Entry{
		Actor:      actorPtr(actor),
		Action:     action,
		EntityType: "job",
		EntityID:   entityID,
		Detail:     detail,
	})
}

func normalizeJobStatus(status job.Status) (job.Status, error) {
	normalized := job.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if normalized == "published" {
		normalized = job.StatusActive
	}
	switch normalized {
	case job.StatusDraft, job.StatusActive, job.StatusOnHold, job.StatusCompleted, job.StatusCanceled:
		return normalized, nil
	default:
		return "", common.NewValidationError("invalid job status", map[string]string{"status": "status must be draft, active, on_hold, completed, or canceled"})
	}
}

func actorPtr(actor string) *string {
	trimmed := strings.TrimSpace(actor)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
