package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Pankajnegi356/recruitment-portal/internal/common"
	"github.com/Pankajnegi356/recruitment-portal/internal/domain/activity"
)

// ActivityRepository appends audit entries. There is deliberately no update or
// delete; entries are immutable once written.
type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, e activity.Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO activity_logs (actor, action, entity_type, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.Actor, e.Action, e.EntityType, e.EntityID, e.Detail, e.CreatedAt)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to create activity entry", err)
	}
	return nil
}

func (r *ActivityRepository) ListByEntity(ctx context.Context, entityType string, entityID int64) ([]activity.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, actor, action, entity_type, entity_id, detail, created_at FROM activity_logs WHERE entity_type = $1 AND entity_id = $2 ORDER BY created_at DESC`, entityType, entityID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list activity entries", err)
	}
	defer rows.Close()
	var items []activity.Entry
	for rows.Next() {
		var e activity.Entry
		var actor sql.NullString
		if err := rows.Scan(&e.ID, &actor, &e.Action, &e.EntityType, &e.EntityID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan activity entry", err)
		}
		if actor.Valid {
			e.Actor = &actor.String
		}
		items = append(items, e)
	}
	return items, nil
}
