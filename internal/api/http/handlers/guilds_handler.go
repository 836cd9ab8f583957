package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lawfirm-service/internal/api/dto"
	"github.com/spec-kit/lawfirm-service/internal/domain"
	"github.com/spec-kit/lawfirm-service/internal/service"
	apperrors "github.com/spec-kit/lawfirm-service/pkg/util"
)

// GuildsHandler serves guild configuration and audit endpoints.
type GuildsHandler struct {
	guilds *service.GuildService
	audits *service.AuditService
}

// NewGuildsHandler constructs handler.
func NewGuildsHandler(guildService *service.GuildService, auditService *service.AuditService) *GuildsHandler {
	return &GuildsHandler{guilds: guildService, audits: auditService}
}

// GetConfig GET /guilds/:guild_id/config.
func (h *GuildsHandler) GetConfig(c *fiber.Ctx) error {
	cfg, err := h.guilds.GetConfig(c.Context(), c.Params("guild_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": guildConfigResponse(cfg)})
}

// UpdateConfig PUT /guilds/:guild_id/config.
func (h *GuildsHandler) UpdateConfig(c *fiber.Ctx) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateGuildConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	cfg, err := h.guilds.UpdateConfig(c.Context(), actor, service.UpdateGuildConfigInput{
		GuildID:                c.Params("guild_id"),
		StaffChannelID:         req.StaffChannelID,
		CaseCategoryID:         req.CaseCategoryID,
		AnnouncementsChannelID: req.AnnouncementsChannelID,
		ClientRoleID:           req.ClientRoleID,
		StaffRoleIDs:           req.StaffRoleIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": guildConfigResponse(cfg)})
}

// ListAudit GET /guilds/:guild_id/audit.
func (h *GuildsHandler) ListAudit(c *fiber.Ctx) error {
	page := parsePositiveInt(c.Query("page"), 1)
	pageSize := parsePositiveInt(c.Query("page_size"), 50)
	entries, err := h.audits.List(c.Context(), c.Params("guild_id"), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.AuditEntryResponse{
			ID:        entry.ID,
			Action:    entry.Action,
			ActorType: string(entry.ActorType),
			ActorID:   entry.ActorID,
			SubjectID: entry.SubjectID,
			Detail:    entry.Detail,
			CreatedAt: entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func guildConfigResponse(cfg *domain.GuildConfig) dto.GuildConfigResponse {
	return dto.GuildConfigResponse{
		GuildID:                cfg.GuildID,
		StaffChannelID:         cfg.StaffChannelID,
		CaseCategoryID:         cfg.CaseCategoryID,
		AnnouncementsChannelID: cfg.AnnouncementsChannelID,
		ClientRoleID:           cfg.ClientRoleID,
		StaffRoleIDs:           cfg.StaffRoleIDs,
		UpdatedAt:              cfg.UpdatedAt,
	}
}
