package domain

import "time"

// RetainerStatus enumerates agreement states.
type RetainerStatus string

const (
	RetainerStatusPending  RetainerStatus = "pending"
	RetainerStatusSigned   RetainerStatus = "signed"
	RetainerStatusDeclined RetainerStatus = "declined"
)

// Retainer is an agreement between a client and a lawyer of the firm.
type Retainer struct {
	ID        string
	GuildID   string
	ClientID  string
	LawyerID  string
	CaseID    *string
	Terms     string
	Status    RetainerStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	SignedAt  *time.Time
}
