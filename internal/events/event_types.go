package events

import (
	"time"

	"github.com/spec-kit/lawfirm-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStaffHired            EventType = "staff_hired"
	EventStaffPromoted         EventType = "staff_promoted"
	EventStaffDemoted          EventType = "staff_demoted"
	EventStaffTerminated       EventType = "staff_terminated"
	EventCaseOpened            EventType = "case_opened"
	EventCaseStatusChanged     EventType = "case_status_changed"
	EventCasePriorityChanged   EventType = "case_priority_changed"
	EventCaseAssignmentChanged EventType = "case_assignment_changed"
	EventCaseClosed            EventType = "case_closed"
	EventRetainerCreated       EventType = "retainer_created"
	EventRetainerSigned        EventType = "retainer_signed"
	EventRetainerDeclined      EventType = "retainer_declined"
	EventApplicationSubmitted  EventType = "application_submitted"
	EventApplicationDecided    EventType = "application_decided"
	EventReminderScheduled     EventType = "reminder_scheduled"
	EventReminderDispatched    EventType = "reminder_dispatched"
	EventGuildConfigUpdated    EventType = "guild_config_updated"
)

// AllTypes lists every event type, for subscribers that audit everything.
func AllTypes() []EventType {
	return []EventType{
		EventStaffHired,
		EventStaffPromoted,
		EventStaffDemoted,
		EventStaffTerminated,
		EventCaseOpened,
		EventCaseStatusChanged,
		EventCasePriorityChanged,
		EventCaseAssignmentChanged,
		EventCaseClosed,
		EventRetainerCreated,
		EventRetainerSigned,
		EventRetainerDeclined,
		EventApplicationSubmitted,
		EventApplicationDecided,
		EventReminderScheduled,
		EventReminderDispatched,
		EventGuildConfigUpdated,
	}
}

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type     domain.SubjectType `json:"type"`
	ClientID *string            `json:"client_id,omitempty"`
	StaffID  *string            `json:"staff_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	GuildID   string      `json:"guild_id"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StaffRoleChangedPayload payload for hire/promote/demote/terminate events.
type StaffRoleChangedPayload struct {
	UserID   string            `json:"user_id"`
	Username string            `json:"username"`
	OldRole  *domain.StaffRole `json:"old_role,omitempty"`
	NewRole  *domain.StaffRole `json:"new_role,omitempty"`
}

// CaseOpenedPayload payload.
type CaseOpenedPayload struct {
	CaseNumber  string              `json:"case_number"`
	ChannelName string              `json:"channel_name"`
	ClientID    string              `json:"client_id"`
	Priority    domain.CasePriority `json:"priority"`
	Title       string              `json:"title"`
}

// CaseStatusChangedPayload payload.
type CaseStatusChangedPayload struct {
	OldStatus domain.CaseStatus  `json:"old_status"`
	NewStatus domain.CaseStatus  `json:"new_status"`
	Result    *domain.CaseResult `json:"result,omitempty"`
}

// CasePriorityChangedPayload payload.
type CasePriorityChangedPayload struct {
	OldPriority domain.CasePriority `json:"old_priority"`
	NewPriority domain.CasePriority `json:"new_priority"`
}

// CaseAssignmentChangedPayload payload.
type CaseAssignmentChangedPayload struct {
	LawyerID       string  `json:"lawyer_id,omitempty"`
	LeadAttorneyID *string `json:"lead_attorney_id,omitempty"`
	Assigned       bool    `json:"assigned"`
}

// RetainerPayload payload for retainer lifecycle events.
type RetainerPayload struct {
	ClientID string                `json:"client_id"`
	LawyerID string                `json:"lawyer_id"`
	Status   domain.RetainerStatus `json:"status"`
}

// ApplicationPayload payload for job application events.
type ApplicationPayload struct {
	PostingID       string                   `json:"posting_id"`
	ApplicantUserID string                   `json:"applicant_user_id"`
	Status          domain.ApplicationStatus `json:"status"`
}

// ReminderPayload payload for reminder events.
type ReminderPayload struct {
	UserID    string    `json:"user_id"`
	ChannelID string    `json:"channel_id"`
	Message   string    `json:"message"`
	RemindAt  time.Time `json:"remind_at"`
}
