package job

import "context"

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	Update(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id int64) (*Job, error)
	List(ctx context.Context) ([]Job, error)
	ListOpen(ctx context.Context) ([]Job, error)
}
