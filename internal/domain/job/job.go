package job

import "time"

type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusOnHold    Status = "on_hold"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

type Job struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Department      string    `json:"department"`
	Status          Status    `json:"status"`
	Description     string    `json:"description"`
	Requirements    []string  `json:"requirements"`
	Location        string    `json:"location"`
	EmploymentType  string    `json:"employment_type"`
	ExperienceLevel string    `json:"experience_level"`
	SalaryRange     string    `json:"salary_range"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// OpenForApplications reports whether the posting can be reached through its
// public application link. On-hold, completed and canceled jobs are hidden.
func (j Job) OpenForApplications() bool {
	return j.Status == StatusDraft || j.Status == StatusActive
}
