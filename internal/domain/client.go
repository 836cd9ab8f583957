package domain

import "time"

// ClientStatus represents lifecycle states for a client account.
type ClientStatus string

const (
	ClientStatusActive    ClientStatus = "active"
	ClientStatusSuspended ClientStatus = "suspended"
)

// Client is the domain model for clients who retain the firm.
type Client struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	DiscordUserID *string
	Status        ClientStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
