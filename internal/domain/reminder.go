package domain

import "time"

// ReminderStatus enumerates reminder states.
type ReminderStatus string

const (
	ReminderStatusPending   ReminderStatus = "pending"
	ReminderStatusSent      ReminderStatus = "sent"
	ReminderStatusCancelled ReminderStatus = "cancelled"
)

// Reminder is a scheduled message delivered once its due time passes.
type Reminder struct {
	ID        string
	GuildID   string
	UserID    string
	ChannelID string
	Message   string
	RemindAt  time.Time
	Status    ReminderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	SentAt    *time.Time
}
