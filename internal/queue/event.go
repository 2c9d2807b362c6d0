// Package queue publishes audit events for catalog and account mutations
// to the message broker and runs the background consumer that records them.
package queue

import "time"

// Audited entities and actions.
const (
	EntityUser  = "user"
	EntityManga = "manga"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// AuditEvent describes one successful mutation. It contains enough
// information for downstream consumers to log or trigger analytics without
// querying the primary database.
type AuditEvent struct {
	Entity     string `json:"entity"`
	EntityID   string `json:"entity_id"`
	Action     string `json:"action"`
	Actor      string `json:"actor,omitempty"` // subject id; empty for anonymous operations
	OccurredAt string `json:"occurred_at"`     // RFC3339 UTC
}

// NewAuditEvent builds an event stamped with the current instant.
func NewAuditEvent(entity, entityID, action, actor string) AuditEvent {
	return AuditEvent{
		Entity:     entity,
		EntityID:   entityID,
		Action:     action,
		Actor:      actor,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
