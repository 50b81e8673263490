package domain

import "time"

// SystemActor marks audit entries produced outside an authenticated session.
// Callers are expected to authenticate before any loggable action, so this
// value appearing in a trail indicates a wiring bug upstream.
const SystemActor = "system"

// ActivityEntry is one append-only record in the audit trail.
type ActivityEntry struct {
	ID        string         `json:"id" bson:"_id,omitempty"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
	ActorID   string         `json:"actor_id" bson:"actor_id"`
	Action    string         `json:"action" bson:"action"`
	Details   map[string]any `json:"details,omitempty" bson:"details,omitempty"`
}
