package domain

import "time"

// CaseStatus enumerates lifecycle states for cases.
type CaseStatus string

const (
	CaseStatusPending    CaseStatus = "pending"
	CaseStatusOpen       CaseStatus = "open"
	CaseStatusInProgress CaseStatus = "in-progress"
	CaseStatusClosed     CaseStatus = "closed"
)

// CasePriority enumerates urgency.
type CasePriority string

const (
	CasePriorityLow    CasePriority = "low"
	CasePriorityMedium CasePriority = "medium"
	CasePriorityHigh   CasePriority = "high"
	CasePriorityUrgent CasePriority = "urgent"
)

// CaseResult records the outcome of a closed case.
type CaseResult string

const (
	CaseResultWin        CaseResult = "win"
	CaseResultLoss       CaseResult = "loss"
	CaseResultSettlement CaseResult = "settlement"
	CaseResultDismissed  CaseResult = "dismissed"
	CaseResultWithdrawn  CaseResult = "withdrawn"
)

// Case is the aggregate for legal matters handled by the firm. CaseNumber
// is immutable once assigned; ChannelName is derived from it and is not
// independently authoritative.
type Case struct {
	ID                string
	GuildID           string
	CaseNumber        string
	ChannelName       string
	ClientID          string
	LeadAttorneyID    *string
	AssignedLawyerIDs []string
	Title             string
	Description       string
	Status            CaseStatus
	Priority          CasePriority
	Result            *CaseResult
	OpenedByID        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ClosedAt          *time.Time
}

// IsValidStatus reports whether candidate is a known case status.
func IsValidStatus(candidate CaseStatus) bool {
	switch candidate {
	case CaseStatusPending, CaseStatusOpen, CaseStatusInProgress, CaseStatusClosed:
		return true
	}
	return false
}

// IsValidPriority reports whether candidate is a known priority.
func IsValidPriority(candidate CasePriority) bool {
	switch candidate {
	case CasePriorityLow, CasePriorityMedium, CasePriorityHigh, CasePriorityUrgent:
		return true
	}
	return false
}

// IsValidResult reports whether candidate is a known case result.
func IsValidResult(candidate CaseResult) bool {
	switch candidate {
	case CaseResultWin, CaseResultLoss, CaseResultSettlement, CaseResultDismissed, CaseResultWithdrawn:
		return true
	}
	return false
}
