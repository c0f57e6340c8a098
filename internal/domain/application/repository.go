package application

import "context"

type Repository interface {
	Create(ctx context.Context, a Application) (*Application, error)
	FindByCandidateAndJob(ctx context.Context, candidateID, jobID int64) (*Application, error)
	ListByCandidate(ctx context.Context, candidateID int64) ([]Application, error)
	ListByJob(ctx context.Context, jobID int64) ([]Application, error)
}
