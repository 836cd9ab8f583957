package domain

import "time"

// PostingStatus enumerates job posting states.
type PostingStatus string

const (
	PostingStatusOpen   PostingStatus = "open"
	PostingStatusClosed PostingStatus = "closed"
)

// ApplicationStatus enumerates job application states.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// JobPosting advertises an opening on the ladder.
type JobPosting struct {
	ID          string
	GuildID     string
	Title       string
	Description string
	Role        StaffRole
	Status      PostingStatus
	PostedByID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ClosedAt    *time.Time
}

// JobApplication is a candidate's submission against a posting.
type JobApplication struct {
	ID                string
	GuildID           string
	PostingID         string
	ApplicantUserID   string
	ApplicantUsername string
	ApplicantEmail    string
	Statement         string
	Status            ApplicationStatus
	DecidedBy         *string
	DecidedAt         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
