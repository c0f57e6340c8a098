package application

import "time"

const StatusApplied = "applied"

// Application links one candidate to one job. At most one row may exist per
// (candidate, job) pair; the unique index in the store enforces it.
type Application struct {
	ID          int64     `json:"id"`
	CandidateID int64     `json:"candidate_id"`
	JobID       int64     `json:"job_id"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
}
