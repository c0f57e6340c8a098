package candidate

import "context"

type Repository interface {
	Create(ctx context.Context, c Candidate) (*Candidate, error)
	Update(ctx context.Context, c Candidate) (*Candidate, error)
	GetByID(ctx context.Context, id int64) (*Candidate, error)
	FindByEmail(ctx context.Context, email string) (*Candidate, error)
	UpdateStatus(ctx context.Context, id int64, status, maxStage int) (*Candidate, error)
	ListByJob(ctx context.Context, jobID int64) ([]Candidate, error)
}
