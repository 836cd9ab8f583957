package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lawfirm-service/internal/api/dto"
	"github.com/spec-kit/lawfirm-service/internal/auth"
	"github.com/spec-kit/lawfirm-service/internal/domain"
	"github.com/spec-kit/lawfirm-service/internal/repository"
	"github.com/spec-kit/lawfirm-service/internal/service"
	apperrors "github.com/spec-kit/lawfirm-service/pkg/util"
)

// CasesHandler serves case lifecycle endpoints for staff, plus a scoped
// read endpoint for clients.
type CasesHandler struct {
	cases *service.CaseService
}

// NewCasesHandler constructs handler.
func NewCasesHandler(caseService *service.CaseService) *CasesHandler {
	return &CasesHandler{cases: caseService}
}

// Open POST /guilds/:guild_id/cases.
func (h *CasesHandler) Open(c *fiber.Ctx) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.OpenCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ClientID == "" || req.Title == "" {
		return apperrors.NewValidationError("client_id, title required", nil)
	}

	kase, err := h.cases.OpenCase(c.Context(), actor, service.OpenCaseInput{
		GuildID:     c.Params("guild_id"),
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": caseResponse(kase)})
}

// List GET /guilds/:guild_id/cases.
func (h *CasesHandler) List(c *fiber.Ctx) error {
	filter := parseCaseQuery(c)
	cases, err := h.cases.ListCases(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseResponses(cases)})
}

// Get GET /guilds/:guild_id/cases/:id.
func (h *CasesHandler) Get(c *fiber.Ctx) error {
	kase, err := h.loadGuildCase(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseResponse(kase)})
}

// GetByNumber GET /guilds/:guild_id/cases/number/:number.
func (h *CasesHandler) GetByNumber(c *fiber.Ctx) error {
	kase, err := h.cases.GetByCaseNumber(c.Context(), c.Params("guild_id"), c.Params("number"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseResponse(kase)})
}

// UpdateStatus POST /guilds/:guild_id/cases/:id/status.
func (h *CasesHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	kase, err := h.loadGuildCase(c)
	if err != nil {
		return err
	}
	var req dto.UpdateCaseStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	updated, err := h.cases.UpdateStatus(c.Context(), actor, kase.ID, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseResponse(updated)})
}

// UpdatePriority POST /guilds/:guild_id/cases/:id/priority.
func (h *CasesHandler) UpdatePriority(c *fiber.Ctx) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	kase, err := h.loadGuildCase(c)
	if err != nil {
		return err
	}
	var req dto.UpdateCasePriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	updated, err := h.cases.UpdatePriority(c.Context(), actor, kase.ID, req.Priority)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseResponse(updated)})
}

// Close POST /guilds/:guild_id/cases/:id/close.
func (h *CasesHandler) Close(c *fiber.Ctx) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	kase, err := h.loadGuildCase(c)
	if err != nil {
		return err
	}
	var req dto.CloseCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	closed, err := h.cases.CloseCase(c.Context(), actor, service.CloseCaseInput{
		CaseID: kase.ID,
		Result: req.Result,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseResponse(closed)})
}

// Assign POST /guilds/:guild_id/cases/:id/assign.
func (h *CasesHandler) Assign(c *fiber.Ctx) error {
	return h.assignment(c, func(actor *domain.StaffRecord, caseID, lawyerID string) (*domain.Case, error) {
		return h.cases.AssignLawyer(c.Context(), actor, caseID, lawyerID)
	})
}

// Unassign POST /guilds/:guild_id/cases/:id/unassign.
func (h *CasesHandler) Unassign(c *fiber.Ctx) error {
	return h.assignment(c, func(actor *domain.StaffRecord, caseID, lawyerID string) (*domain.Case, error) {
		return h.cases.UnassignLawyer(c.Context(), actor, caseID, lawyerID)
	})
}

// SetLead POST /guilds/:guild_id/cases/:id/lead.
func (h *CasesHandler) SetLead(c *fiber.Ctx) error {
	return h.assignment(c, func(actor *domain.StaffRecord, caseID, lawyerID string) (*domain.Case, error) {
		return h.cases.SetLeadAttorney(c.Context(), actor, caseID, lawyerID)
	})
}

// MyCases GET /guilds/:guild_id/me/cases. Clients see only their own.
func (h *CasesHandler) MyCases(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Client == nil {
		return apperrors.NewUnauthorized("client required")
	}
	cases, err := h.cases.ListCasesForClient(c.Context(), c.Params("guild_id"), principal.Client.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseResponses(cases)})
}

func (h *CasesHandler) assignment(c *fiber.Ctx, apply func(actor *domain.StaffRecord, caseID, lawyerID string) (*domain.Case, error)) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	kase, err := h.loadGuildCase(c)
	if err != nil {
		return err
	}
	var req dto.CaseAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.LawyerID == "" {
		return apperrors.NewValidationError("lawyer_id required", nil)
	}
	updated, err := apply(actor, kase.ID, req.LawyerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseResponse(updated)})
}

// loadGuildCase resolves :id and rejects cases outside the path guild.
func (h *CasesHandler) loadGuildCase(c *fiber.Ctx) (*domain.Case, error) {
	kase, err := h.cases.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return nil, err
	}
	if kase.GuildID != c.Params("guild_id") {
		return nil, apperrors.NewNotFound("case", map[string]any{"case_id": c.Params("id")})
	}
	return kase, nil
}

func parseCaseQuery(c *fiber.Ctx) repository.CaseFilter {
	guildID := c.Params("guild_id")
	filter := repository.CaseFilter{GuildID: &guildID}

	if clientID := c.Query("client_id"); clientID != "" {
		filter.ClientID = &clientID
	}
	if lawyerID := c.Query("lawyer_id"); lawyerID != "" {
		filter.LawyerID = &lawyerID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.CaseStatus(strings.TrimSpace(part)))
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			filter.Priorities = append(filter.Priorities, domain.CasePriority(strings.TrimSpace(part)))
		}
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	page := parsePositiveInt(c.Query("page"), 1)
	pageSize := parsePositiveInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parsePositiveInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func caseResponse(kase *domain.Case) dto.CaseResponse {
	return dto.CaseResponse{
		ID:                kase.ID,
		GuildID:           kase.GuildID,
		CaseNumber:        kase.CaseNumber,
		ChannelName:       kase.ChannelName,
		ClientID:          kase.ClientID,
		LeadAttorneyID:    kase.LeadAttorneyID,
		AssignedLawyerIDs: kase.AssignedLawyerIDs,
		Title:             kase.Title,
		Description:       kase.Description,
		Status:            kase.Status,
		Priority:          kase.Priority,
		Result:            kase.Result,
		OpenedByID:        kase.OpenedByID,
		CreatedAt:         kase.CreatedAt,
		UpdatedAt:         kase.UpdatedAt,
		ClosedAt:          kase.ClosedAt,
	}
}

func caseResponses(cases []domain.Case) []dto.CaseResponse {
	items := make([]dto.CaseResponse, 0, len(cases))
	for i := range cases {
		items = append(items, caseResponse(&cases[i]))
	}
	return items
}
