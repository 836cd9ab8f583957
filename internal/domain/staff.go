package domain

import "time"

// StaffStatus tracks whether a staff record is current.
type StaffStatus string

const (
	StaffStatusActive     StaffStatus = "active"
	StaffStatusTerminated StaffStatus = "terminated"
)

// StaffRecord identifies a person within a guild holding exactly one role
// at a time. Termination is a status change, never a deletion.
type StaffRecord struct {
	ID            string
	GuildID       string
	UserID        string
	Username      string
	Email         string
	PasswordHash  string
	Role          StaffRole
	Status        StaffStatus
	HiredByID     string
	RoleChangedBy *string
	TerminatedBy  *string
	HiredAt       time.Time
	RoleChangedAt *time.Time
	TerminatedAt  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive reports whether the record still holds a seat on the ladder.
func (s *StaffRecord) IsActive() bool {
	return s != nil && s.Status == StaffStatusActive
}
