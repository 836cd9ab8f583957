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

// RetainersHandler serves retainer endpoints for lawyers and clients.
type RetainersHandler struct {
	retainers *service.RetainerService
}

// NewRetainersHandler constructs handler.
func NewRetainersHandler(retainerService *service.RetainerService) *RetainersHandler {
	return &RetainersHandler{retainers: retainerService}
}

// Create POST /guilds/:guild_id/retainers.
func (h *RetainersHandler) Create(c *fiber.Ctx) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateRetainerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ClientID == "" || req.Terms == "" {
		return apperrors.NewValidationError("client_id, terms required", nil)
	}

	retainer, err := h.retainers.Create(c.Context(), actor, service.CreateRetainerInput{
		GuildID:  c.Params("guild_id"),
		ClientID: req.ClientID,
		CaseID:   req.CaseID,
		Terms:    req.Terms,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": retainerResponse(retainer)})
}

// ListMine GET /guilds/:guild_id/retainers. Lawyers see what they offered.
func (h *RetainersHandler) ListMine(c *fiber.Ctx) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	retainers, err := h.retainers.ListForLawyer(c.Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": retainerResponses(retainers)})
}

// ListForClient GET /me/retainers.
func (h *RetainersHandler) ListForClient(c *fiber.Ctx) error {
	client, err := clientPrincipal(c)
	if err != nil {
		return err
	}
	retainers, err := h.retainers.ListForClient(c.Context(), client.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": retainerResponses(retainers)})
}

// Sign POST /me/retainers/:id/sign.
func (h *RetainersHandler) Sign(c *fiber.Ctx) error {
	client, err := clientPrincipal(c)
	if err != nil {
		return err
	}
	retainer, err := h.retainers.Sign(c.Context(), client.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": retainerResponse(retainer)})
}

// Decline POST /me/retainers/:id/decline.
func (h *RetainersHandler) Decline(c *fiber.Ctx) error {
	client, err := clientPrincipal(c)
	if err != nil {
		return err
	}
	retainer, err := h.retainers.Decline(c.Context(), client.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": retainerResponse(retainer)})
}

func clientPrincipal(c *fiber.Ctx) (*domain.Client, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Client == nil {
		return nil, apperrors.NewUnauthorized("client required")
	}
	return principal.Client, nil
}

func retainerResponse(retainer *domain.Retainer) dto.RetainerResponse {
	return dto.RetainerResponse{
		ID:        retainer.ID,
		GuildID:   retainer.GuildID,
		ClientID:  retainer.ClientID,
		LawyerID:  retainer.LawyerID,
		CaseID:    retainer.CaseID,
		Terms:     retainer.Terms,
		Status:    retainer.Status,
		CreatedAt: retainer.CreatedAt,
		SignedAt:  retainer.SignedAt,
	}
}

func retainerResponses(retainers []domain.Retainer) []dto.RetainerResponse {
	items := make([]dto.RetainerResponse, 0, len(retainers))
	for i := range retainers {
		items = append(items, retainerResponse(&retainers[i]))
	}
	return items
}
