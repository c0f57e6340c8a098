package app

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/Pankajnegi356/recruitment-portal/internal/common"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/activity"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/application"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/candidate"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/job"
	"github.com/Pankajnegi356/recruitment-portal/internal/integration/mailer"
	"github.com/Pankajnegi356/recruitment-portal/internal/slug"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type Mailer interface {
	Send(ctx context.Context, to, subject, content string, attachment *mailer.Attachment) error
}

type IntakeConfig struct {
	NotifyEmail   string
	AdminBaseURL  string
	MailerTimeout time.Duration
}

type IntakeService struct {
	jobs         job.Repository
	candidates   candidate.Repository
	applications application.Repository
	activity     activity.Repository
	mailer       Mailer
	logger       *slog.Logger
	cfg          IntakeConfig
	notifyDone   chan error
}

func NewIntakeService(jobs job.Repository, candidates candidate.Repository, applications application.Repository, activityLog activity.Repository, mail Mailer, logger *slog.Logger, cfg IntakeConfig) *IntakeService {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MailerTimeout <= 0 {
		cfg.MailerTimeout = 15 * time.Second
	}
	return &IntakeService{
		jobs:         jobs,
		candidates:   candidates,
		applications: applications,
		activity:     activityLog,
		mailer:       mail,
		logger:       logger,
		cfg:          cfg,
		notifyDone:   make(chan error, 16),
	}
}

type SubmitInput struct {
	Slug      string
	Name      string
	Email     string
	Phone     string
	ResumeURL string
	Resume    *mailer.Attachment
}

type SubmitResult struct {
	Message       string `json:"message"`
	ApplicationID int64  `json:"application_id"`
	CandidateID   int64  `json:"candidate_id"`
	JobTitle      string `json:"job_title"`
	Status        string `json:"status"`
}

// SubmitApplication runs the public intake workflow. The job, candidate and
// application writes are the durable path; the activity log entry and the
// staff notification are best-effort side effects that never fail the request.
func (s *IntakeService) SubmitApplication(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	posting, err := s.resolveJob(ctx, in.Slug)
	if err != nil {
		return nil, err
	}
	if err := validateSubmission(in); err != nil {
		return nil, err
	}

	cand, err := s.upsertCandidate(ctx, in, posting)
	if err != nil {
		return nil, err
	}

	if _, err := s.applications.FindByCandidateAndJob(ctx, cand.ID, posting.ID); err == nil {
		return nil, common.NewError(common.CodeConflict, "candidate already applied to this job", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	created, err := s.applications.Create(ctx, application.Application{
		CandidateID: cand.ID,
		JobID:       posting.ID,
		Status:      application.StatusApplied,
	})
	if err != nil {
		if common.Is(err, common.CodeConflict) {
			return nil, common.NewError(common.CodeConflict, "candidate already applied to this job", err)
		}
		return nil, err
	}

	if err := s.activity.Create(ctx, activity.Entry{
		Action:     "application.submitted",
		EntityType: "job_application",
		EntityID:   created.ID,
		Detail:     fmt.Sprintf("%s applied for %s via public form", cand.Name, posting.Title),
	}); err != nil {
		s.logger.Warn("activity log write failed", slog.Int64("application_id", created.ID), slog.String("error", err.Error()))
	}

	s.dispatchNotification(*posting, *cand, *created, in.Resume)

	return &SubmitResult{
		Message:       "application submitted",
		ApplicationID: created.ID,
		CandidateID:   cand.ID,
		JobTitle:      posting.Title,
		Status:        created.Status,
	}, nil
}

// GetJobBySlug resolves a public application code to its posting.
func (s *IntakeService) GetJobBySlug(ctx context.Context, code string) (*job.Job, error) {
	return s.resolveJob(ctx, code)
}

// NotificationResults exposes the outcome of dispatched notifications. The
// request path never awaits it; it exists for operational visibility and tests.
func (s *IntakeService) NotificationResults() <-chan error {
	return s.notifyDone
}

func (s *IntakeService) resolveJob(ctx context.Context, code string) (*job.Job, error) {
	open, err := s.jobs.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	return slug.Resolve(code, open)
}

func validateSubmission(in SubmitInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "name is required"
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		fields["email"] = "email is required"
	} else if !emailPattern.MatchString(email) {
		fields["email"] = "email must look like local@domain.tld"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid application", fields)
	}
	return nil
}

// upsertCandidate applies the re-application-overwrites rule: a submission for
// a known email resets the candidate to Applied and points it at the new job.
// A lost insert race surfaces as a conflict and is retried as an update.
func (s *IntakeService) upsertCandidate(ctx context.Context, in SubmitInput, posting *job.Job) (*candidate.Candidate, error) {
	existing, err := s.candidates.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil && !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	if existing != nil {
		return s.overwriteCandidate(ctx, *existing, in, posting)
	}

	created, err := s.candidates.Create(ctx, candidate.Candidate{
		Name:            strings.TrimSpace(in.Name),
		Email:           strings.TrimSpace(in.Email),
		Phone:           strings.TrimSpace(in.Phone),
		ResumeRef:       resumeRef(in),
		JobID:           &posting.ID,
		Department:      &posting.Department,
		Source:          candidate.SourcePublicApplication,
		Status:          candidate.StageApplied,
		MaxStageReached: candidate.StageApplied,
	})
	if err == nil {
		return created, nil
	}
	if !common.Is(err, common.CodeConflict) {
		return nil, err
	}
	// Another submission inserted this email first; fall back to the update path.
	raced, err := s.candidates.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	return s.overwriteCandidate(ctx, *raced, in, posting)
}

func (s *IntakeService) overwriteCandidate(ctx context.Context, existing candidate.Candidate, in SubmitInput, posting *job.Job) (*candidate.Candidate, error) {
	existing.Name = strings.TrimSpace(in.Name)
	if phone := strings.TrimSpace(in.Phone); phone != "" {
		existing.Phone = phone
	}
	if ref := resumeRef(in); ref != "" {
		existing.ResumeRef = ref
	}
	existing.JobID = &posting.ID
	existing.Department = &posting.Department
	existing.Status = candidate.StageApplied
	existing.MaxStageReached = candidate.StageApplied
	return s.candidates.Update(ctx, existing)
}

func resumeRef(in SubmitInput) string {
	if in.Resume != nil {
		return candidate.ResumeAttached
	}
	return strings.TrimSpace(in.ResumeURL)
}

// dispatchNotification fires the staff email after the durable writes, without
// blocking the request. At most once, no retry; failures are logged and pushed
// to the results channel when there is room.
func (s *IntakeService) dispatchNotification(posting job.Job, cand candidate.Candidate, app application.Application, attachment *mailer.Attachment) {
	if s.mailer == nil || s.cfg.NotifyEmail == "" {
		return
	}
	subject := fmt.Sprintf("New Application: %s - %s", cand.Name, posting.Title)
	content := s.notificationBody(posting, cand, app)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.MailerTimeout)
		defer cancel()
		err := s.mailer.Send(ctx, s.cfg.NotifyEmail, subject, content, attachment)
		if err != nil {
			s.logger.Warn("application notification failed", slog.Int64("application_id", app.ID), slog.String("error", err.Error()))
		}
		select {
		case s.notifyDone <- err:
		default:
		}
	}()
}

func (s *IntakeService) notificationBody(posting job.Job, cand candidate.Candidate, app application.Application) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A new application has been received.\n\n")
	fmt.Fprintf(&b, "Job Title: %s\n", posting.Title)
	fmt.Fprintf(&b, "Department: %s\n", posting.Department)
	fmt.Fprintf(&b, "Job Code: %s\n", slug.Generate(posting.Title, posting.CreatedAt))
	fmt.Fprintf(&b, "Candidate: %s\n", cand.Name)
	fmt.Fprintf(&b, "Email: %s\n", cand.Email)
	fmt.Fprintf(&b, "Application ID: %d\n", app.ID)
	fmt.Fprintf(&b, "Submitted At: %s\n", app.AppliedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "\nReview: %s/candidates/%d\n", strings.TrimRight(s.cfg.AdminBaseURL, "/"), cand.ID)
	return b.String()
}
