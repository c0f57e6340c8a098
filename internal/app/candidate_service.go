package app

import (
	"context"
	"fmt"

	"github.com/Pankajnegi356/recruitment-portal/internal/common"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/activity"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/assessment"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/candidate"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/job"
)

type CandidateService struct {
	repo          candidate.Repository
	jobs          job.Repository
	assessments   assessment.Repository
	activity      activity.Repository
	fallbackStage int
}

func NewCandidateService(repo candidate.Repository, jobs job.Repository, assessments assessment.Repository, activityLog activity.Repository, fallbackStage int) *CandidateService {
	if fallbackStage < candidate.StageApplied || fallbackStage > candidate.StageRound2Cleared {
		fallbackStage = candidate.StageShortlisted
	}
	return &CandidateService{
		repo:          repo,
		jobs:          jobs,
		assessments:   assessments,
		activity:      activityLog,
		fallbackStage: fallbackStage,
	}
}

// CandidateDetail is the staff view: the raw record plus the derived scores
// and the reconstructed progression feed.
type CandidateDetail struct {
	candidate.Candidate
	JobTitle string         `json:"job_title"`
	Scores   ScoreSummary   `json:"scores"`
	History  []HistoryEvent `json:"history"`
}

func (s *CandidateService) Detail(ctx context.Context, id int64) (*CandidateDetail, error) {
	cand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	jobTitle := ""
	if cand.JobID != nil {
		if posting, err := s.jobs.GetByID(ctx, *cand.JobID); err == nil {
			jobTitle = posting.Title
		} else if !common.Is(err, common.CodeNotFound) {
			return nil, err
		}
	}
	tests, err := s.assessments.ListTestResults(ctx, id)
	if err != nil {
		return nil, err
	}
	interviews, err := s.assessments.ListInterviews(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CandidateDetail{
		Candidate: *cand,
		JobTitle:  jobTitle,
		Scores:    SummarizeScores(*cand, tests, interviews),
		History:   DeriveHistory(*cand, jobTitle, s.fallbackStage),
	}, nil
}

// AdvanceStatus sets a candidate's stage directly. The data layer does not
// force strict sequencing, but rejection is terminal and the highest stage
// reached is tracked so history survives a later rejection.
func (s *CandidateService) AdvanceStatus(ctx context.Context, id int64, stage int, actor string) (*candidate.Candidate, error) {
	if !candidate.KnownStage(stage) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be between 0 and 6"})
	}
	cand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cand.Status == candidate.StageRejected {
		return nil, common.NewError(common.CodeValidation, "candidate is already rejected", nil)
	}
	maxStage := cand.MaxStageReached
	if stage > maxStage {
		maxStage = stage
	}
	updated, err := s.repo.UpdateStatus(ctx, id, stage, maxStage)
	if err != nil {
		return nil, err
	}
	action := "candidate.status_changed"
	detail := fmt.Sprintf("%s moved to stage %d", updated.Name, stage)
	if stage == candidate.StageRejected {
		action = "candidate.rejected"
		detail = fmt.Sprintf("%s was rejected at stage %d", updated.Name, maxStage)
	}
	_ = s.activity.Create(ctx, activity.Entry{
		Actor:      actorPtr(actor),
		Action:     action,
		EntityType: "candidate",
		EntityID:   id,
		Detail:     detail,
	})
	return updated, nil
}

func (s *CandidateService) Reject(ctx context.Context, id int64, actor string) (*candidate.Candidate, error) {
	return s.AdvanceStatus(ctx, id, candidate.StageRejected, actor)
}

// RecordTestScore stores an externally produced pre-screening result. Scores
// are opaque inputs; nothing here transitions the candidate.
func (s *CandidateService) RecordTestScore(ctx context.Context, candidateID int64, score float64, actor string) (*assessment.TestResult, error) {
	if score < 0 || score > assessment.TestMaxScore {
		return nil, common.NewValidationError("invalid test score", map[string]string{"test_score": fmt.Sprintf("test_score must be between 0 and %.0f", assessment.TestMaxScore)})
	}
	cand, err := s.repo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	created, err := s.assessments.CreateTestResult(ctx, assessment.TestResult{
		CandidateID: cand.ID,
		TestScore:   score,
		MaxScore:    assessment.TestMaxScore,
	})
	if err != nil {
		return nil, err
	}
	_ = s.activity.Create(ctx, activity.Entry{
		Actor:      actorPtr(actor),
		Action:     "candidate.test_recorded",
		EntityType: "candidate",
		EntityID:   cand.ID,
		Detail:     fmt.Sprintf("pre-screening score %.1f/%.0f recorded for %s", score, assessment.TestMaxScore, cand.Name),
	})
	return created, nil
}

func (s *CandidateService) RecordInterview(ctx context.Context, candidateID int64, rating float64, actor string) (*assessment.Interview, error) {
	if rating < 0 || rating > 10 {
		return nil, common.NewValidationError("invalid rating", map[string]string{"rating": "rating must be between 0 and 10"})
	}
	cand, err := s.repo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	created, err := s.assessments.CreateInterview(ctx, assessment.Interview{
		CandidateID: cand.ID,
		Rating:      rating,
	})
	if err != nil {
		return nil, err
	}
	_ = s.activity.Create(ctx, activity.Entry{
		Actor:      actorPtr(actor),
		Action:     "candidate.interview_recorded",
		EntityType: "candidate",
		EntityID:   cand.ID,
		Detail:     fmt.Sprintf("interview rating %.1f/10 recorded for %s", rating, cand.Name),
	})
	return created, nil
}

func (s *CandidateService) ListByJob(ctx context.Context, jobID int64) ([]candidate.Candidate, error) {
	return s.repo.ListByJob(ctx, jobID)
}
