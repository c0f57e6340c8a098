package activity

import "context"

type Repository interface {
	Create(ctx context.Context, e Entry) error
	ListByEntity(ctx context.Context, entityType string, entityID int64) ([]Entry, error)
}
