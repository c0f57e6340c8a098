package candidate

import "time"

// Pipeline stages stored in the candidates.status column. Progression is
// 1 through 6; 0 is terminal and reachable from any non-terminal stage.
const (
	StageRejected           = 0
	StageApplied            = 1
	StageShortlisted        = 2
	StagePreScreening       = 3
	StageTechnicalInterview = 4
	StageInterviewConfirmed = 5
	StageRound2Cleared      = 6
)

const (
	SourceDirect            = "direct"
	SourcePublicApplication = "public_application"
)

// ResumeAttached marks a résumé that arrived as an upload rather than a URL;
// the file itself travels on the notification email.
const ResumeAttached = "attached_to_email"

type Candidate struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	ResumeRef       string    `json:"resume_ref"`
	JobID           *int64    `json:"job_id"`
	Department      *string   `json:"department"`
	SkillMatchScore *float64  `json:"skill_match_score"`
	Source          string    `json:"source"`
	Status          int       `json:"status"`
	MaxStageReached int       `json:"max_stage_reached"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func KnownStage(stage int) bool {
	return stage >= StageRejected && stage <= StageRound2Cleared
}
