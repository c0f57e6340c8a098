package activity

import "time"

// Entry is an append-only audit record. Actor is nil for system-attributed
// actions such as public form submissions.
type Entry struct {
	ID         int64     `json:"id"`
	Actor      *string   `json:"actor"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	Detail     string    `json:"detail"`
	CreatedAt  time.Time `json:"created_at"`
}
