package dto

import (
	"time"

	"github.com/spec-kit/lawfirm-service/internal/domain"
)

// OpenCaseRequest payload.
type OpenCaseRequest struct {
	ClientID    string              `json:"client_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    domain.CasePriority `json:"priority"`
}

// UpdateCaseStatusRequest payload.
type UpdateCaseStatusRequest struct {
	Status domain.CaseStatus `json:"status"`
}

// UpdateCasePriorityRequest payload.
type UpdateCasePriorityRequest struct {
	Priority domain.CasePriority `json:"priority"`
}

// CloseCaseRequest payload.
type CloseCaseRequest struct {
	Result domain.CaseResult `json:"result"`
}

// CaseAssignmentRequest payload for assign/unassign/lead endpoints.
type CaseAssignmentRequest struct {
	LawyerID string `json:"lawyer_id"`
}

// CaseResponse describes a case.
type CaseResponse struct {
	ID                string              `json:"id"`
	GuildID           string              `json:"guild_id"`
	CaseNumber        string              `json:"case_number"`
	ChannelName       string              `json:"channel_name"`
	ClientID          string              `json:"client_id"`
	LeadAttorneyID    *string             `json:"lead_attorney_id"`
	AssignedLawyerIDs []string            `json:"assigned_lawyer_ids"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Status            domain.CaseStatus   `json:"status"`
	Priority          domain.CasePriority `json:"priority"`
	Result            *domain.CaseResult  `json:"result"`
	OpenedByID        string              `json:"opened_by"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
	ClosedAt          *time.Time          `json:"closed_at"`
}
