package dto

import (
	"time"

	"github.com/spec-kit/lawfirm-service/internal/domain"
)

// CreateRetainerRequest payload.
type CreateRetainerRequest struct {
	ClientID string  `json:"client_id"`
	CaseID   *string `json:"case_id"`
	Terms    string  `json:"terms"`
}

// RetainerResponse describes a retainer agreement.
type RetainerResponse struct {
	ID        string                `json:"id"`
	GuildID   string                `json:"guild_id"`
	ClientID  string                `json:"client_id"`
	LawyerID  string                `json:"lawyer_id"`
	CaseID    *string               `json:"case_id"`
	Terms     string                `json:"terms"`
	Status    domain.RetainerStatus `json:"status"`
	CreatedAt time.Time             `json:"created_at"`
	SignedAt  *time.Time            `json:"signed_at"`
}

// CreatePostingRequest payload.
type CreatePostingRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Role        domain.StaffRole `json:"role"`
}

// PostingResponse describes a job posting.
type PostingResponse struct {
	ID          string               `json:"id"`
	GuildID     string               `json:"guild_id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Role        domain.StaffRole     `json:"role"`
	Status      domain.PostingStatus `json:"status"`
	PostedByID  string               `json:"posted_by"`
	CreatedAt   time.Time            `json:"created_at"`
	ClosedAt    *time.Time           `json:"closed_at"`
}

// ApplyRequest payload.
type ApplyRequest struct {
	ApplicantUserID   string `json:"applicant_user_id"`
	ApplicantUsername string `json:"applicant_username"`
	ApplicantEmail    string `json:"applicant_email"`
	Statement         string `json:"statement"`
}

// AcceptApplicationRequest payload.
type AcceptApplicationRequest struct {
	InitialPassword string `json:"initial_password"`
}

// ApplicationResponse describes a job application.
type ApplicationResponse struct {
	ID                string                   `json:"id"`
	PostingID         string                   `json:"posting_id"`
	ApplicantUserID   string                   `json:"applicant_user_id"`
	ApplicantUsername string                   `json:"applicant_username"`
	Statement         string                   `json:"statement"`
	Status            domain.ApplicationStatus `json:"status"`
	DecidedAt         *time.Time               `json:"decided_at"`
	CreatedAt         time.Time                `json:"created_at"`
}

// ScheduleReminderRequest payload.
type ScheduleReminderRequest struct {
	UserID    string    `json:"user_id"`
	ChannelID string    `json:"channel_id"`
	Message   string    `json:"message"`
	RemindAt  time.Time `json:"remind_at"`
}

// ReminderResponse describes a reminder.
type ReminderResponse struct {
	ID        string                `json:"id"`
	GuildID   string                `json:"guild_id"`
	UserID    string                `json:"user_id"`
	ChannelID string                `json:"channel_id"`
	Message   string                `json:"message"`
	RemindAt  time.Time             `json:"remind_at"`
	Status    domain.ReminderStatus `json:"status"`
	SentAt    *time.Time            `json:"sent_at"`
}

// UpdateGuildConfigRequest payload.
type UpdateGuildConfigRequest struct {
	StaffChannelID         string                      `json:"staff_channel_id"`
	CaseCategoryID         string                      `json:"case_category_id"`
	AnnouncementsChannelID string                      `json:"announcements_channel_id"`
	ClientRoleID           string                      `json:"client_role_id"`
	StaffRoleIDs           map[domain.StaffRole]string `json:"staff_role_ids"`
}

// GuildConfigResponse describes guild bindings.
type GuildConfigResponse struct {
	GuildID                string                      `json:"guild_id"`
	StaffChannelID         string                      `json:"staff_channel_id"`
	CaseCategoryID         string                      `json:"case_category_id"`
	AnnouncementsChannelID string                      `json:"announcements_channel_id"`
	ClientRoleID           string                      `json:"client_role_id"`
	StaffRoleIDs           map[domain.StaffRole]string `json:"staff_role_ids"`
	UpdatedAt              time.Time                   `json:"updated_at"`
}

// AuditEntryResponse describes one audit record.
type AuditEntryResponse struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	ActorType string         `json:"actor_type"`
	ActorID   *string        `json:"actor_id"`
	SubjectID string         `json:"subject_id"`
	Detail    map[string]any `json:"detail"`
	CreatedAt time.Time      `json:"created_at"`
}
