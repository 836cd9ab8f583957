package domain

import "time"

// AuditEntry is an immutable record of a mutating operation.
type AuditEntry struct {
	ID        string
	GuildID   string
	Action    string
	ActorType SubjectType
	ActorID   *string
	SubjectID string
	Detail    map[string]any
	CreatedAt time.Time
}
