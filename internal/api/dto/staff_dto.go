package dto

import (
	"time"

	"github.com/spec-kit/lawfirm-service/internal/domain"
)

// HireStaffRequest payload.
type HireStaffRequest struct {
	UserID   string           `json:"user_id"`
	Username string           `json:"username"`
	Email    string           `json:"email"`
	Password string           `json:"password"`
	Role     domain.StaffRole `json:"role"`
}

// StaffResponse describes a staff record.
type StaffResponse struct {
	ID            string             `json:"id"`
	GuildID       string             `json:"guild_id"`
	UserID        string             `json:"user_id"`
	Username      string             `json:"username"`
	Role          domain.StaffRole   `json:"role"`
	Level         int                `json:"level"`
	Status        domain.StaffStatus `json:"status"`
	HiredAt       time.Time          `json:"hired_at"`
	RoleChangedAt *time.Time         `json:"role_changed_at"`
	TerminatedAt  *time.Time         `json:"terminated_at"`
}

// RosterGroupResponse is one rung of the ladder with its members.
type RosterGroupResponse struct {
	Role    domain.StaffRole `json:"role"`
	Level   int              `json:"level"`
	MaxSize int              `json:"max_size"`
	Members []StaffResponse  `json:"members"`
}
