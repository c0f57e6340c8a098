package app

import (
	"time"

	"github.com/Pankajnegi356/recruitment-portal/internal/domain/candidate"
)

// HistoryEvent is one synthesized entry of a candidate's progression feed.
type HistoryEvent struct {
	Text       string    `json:"text"`
	OccurredAt time.Time `json:"occurred_at"`
}

var stageMilestones = [...]string{
	candidate.StageShortlisted:        "moved to Shortlisted",
	candidate.StagePreScreening:       "moved to Pre-screening Test",
	candidate.StageTechnicalInterview: "moved to Negotiating Interview Date",
	candidate.StageInterviewConfirmed: "moved to Interview Confirmed",
	candidate.StageRound2Cleared:      "cleared interview / Round 2",
}

// DeriveHistory reconstructs a progression feed from the single stored status
// value, newest-implied event first. The store keeps no per-transition
// timestamps, so every event carries the original application timestamp.
//
// For rejected candidates the highest stage reached before rejection is taken
// from the persisted max_stage_reached column; fallbackStage covers rows
// written before that column existed. The result depends only on the candidate
// snapshot, the job title and fallbackStage, so two views rendered at the same
// instant are identical.
func DeriveHistory(c candidate.Candidate, jobTitle string, fallbackStage int) []HistoryEvent {
	appliedAt := c.CreatedAt
	events := []HistoryEvent{{Text: "applied for " + jobTitle, OccurredAt: appliedAt}}

	rejected := c.Status == candidate.StageRejected
	effective := c.Status
	if rejected {
		effective = c.MaxStageReached
		if effective < candidate.StageApplied {
			effective = fallbackStage
		}
	}
	if effective > candidate.StageRound2Cleared {
		effective = candidate.StageRound2Cleared
	}

	for stage := candidate.StageShortlisted; stage <= effective; stage++ {
		events = append(events, HistoryEvent{Text: stageMilestones[stage], OccurredAt: appliedAt})
	}
	if rejected {
		events = append(events, HistoryEvent{Text: "was rejected", OccurredAt: appliedAt})
	}

	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events
}
