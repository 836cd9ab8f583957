package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lawfirm-service/internal/api/dto"
	"github.com/spec-kit/lawfirm-service/internal/auth"
	"github.com/spec-kit/lawfirm-service/internal/domain"
	"github.com/spec-kit/lawfirm-service/internal/service"
	apperrors "github.com/spec-kit/lawfirm-service/pkg/util"
)

// StaffHandler serves roster management endpoints.
type StaffHandler struct {
	roster *service.RosterService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(roster *service.RosterService) *StaffHandler {
	return &StaffHandler{roster: roster}
}

// Hire POST /guilds/:guild_id/staff.
func (h *StaffHandler) Hire(c *fiber.Ctx) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.HireStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("user_id, username, email, password required", nil)
	}

	hired, err := h.roster.Hire(c.Context(), actor, service.HireInput{
		GuildID:  c.Params("guild_id"),
		UserID:   req.UserID,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": staffResponse(hired)})
}

// Promote POST /guilds/:guild_id/staff/:id/promote.
func (h *StaffHandler) Promote(c *fiber.Ctx) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	promoted, err := h.roster.Promote(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffResponse(promoted)})
}

// Demote POST /guilds/:guild_id/staff/:id/demote.
func (h *StaffHandler) Demote(c *fiber.Ctx) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	demoted, err := h.roster.Demote(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffResponse(demoted)})
}

// Terminate POST /guilds/:guild_id/staff/:id/terminate.
func (h *StaffHandler) Terminate(c *fiber.Ctx) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	terminated, err := h.roster.Terminate(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": staffResponse(terminated)})
}

// Roster GET /guilds/:guild_id/staff.
func (h *StaffHandler) Roster(c *fiber.Ctx) error {
	groups, err := h.roster.Roster(c.Context(), c.Params("guild_id"))
	if err != nil {
		return err
	}
	resp := make([]dto.RosterGroupResponse, 0, len(groups))
	for _, group := range groups {
		members := make([]dto.StaffResponse, 0, len(group.Members))
		for i := range group.Members {
			members = append(members, staffResponse(&group.Members[i]))
		}
		resp = append(resp, dto.RosterGroupResponse{
			Role:    group.Role,
			Level:   group.Level,
			MaxSize: group.MaxSize,
			Members: members,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get GET /guilds/:guild_id/staff/:id.
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	staff, err := h.roster.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if staff.GuildID != c.Params("guild_id") {
		return apperrors.NewNotFound("staff", map[string]any{"staff_id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": staffResponse(staff)})
}

func staffPrincipal(c *fiber.Ctx) (*domain.StaffRecord, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	return principal.Staff, nil
}

func staffResponse(staff *domain.StaffRecord) dto.StaffResponse {
	level, _ := domain.RoleLevel(staff.Role)
	return dto.StaffResponse{
		ID:            staff.ID,
		GuildID:       staff.GuildID,
		UserID:        staff.UserID,
		Username:      staff.Username,
		Role:          staff.Role,
		Level:         level,
		Status:        staff.Status,
		HiredAt:       staff.HiredAt,
		RoleChangedAt: staff.RoleChangedAt,
		TerminatedAt:  staff.TerminatedAt,
	}
}
