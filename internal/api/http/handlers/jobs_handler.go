package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lawfirm-service/internal/api/dto"
	"github.com/spec-kit/lawfirm-service/internal/domain"
	"github.com/spec-kit/lawfirm-service/internal/service"
	apperrors "github.com/spec-kit/lawfirm-service/pkg/util"
)

// JobsHandler serves job posting and application endpoints.
type JobsHandler struct {
	jobs *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService) *JobsHandler {
	return &JobsHandler{jobs: jobService}
}

// CreatePosting POST /guilds/:guild_id/jobs.
func (h *JobsHandler) CreatePosting(c *fiber.Ctx) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreatePostingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Role == "" {
		return apperrors.NewValidationError("title, role required", nil)
	}

	posting, err := h.jobs.CreatePosting(c.Context(), actor, service.CreatePostingInput{
		GuildID:     c.Params("guild_id"),
		Title:       req.Title,
		Description: req.Description,
		Role:        req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": postingResponse(posting)})
}

// ClosePosting POST /guilds/:guild_id/jobs/:id/close.
func (h *JobsHandler) ClosePosting(c *fiber.Ctx) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	posting, err := h.jobs.ClosePosting(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": postingResponse(posting)})
}

// ListPostings GET /guilds/:guild_id/jobs.
func (h *JobsHandler) ListPostings(c *fiber.Ctx) error {
	includeClosed := c.Query("include_closed") == "true"
	postings, err := h.jobs.ListPostings(c.Context(), c.Params("guild_id"), includeClosed)
	if err != nil {
		return err
	}
	items := make([]dto.PostingResponse, 0, len(postings))
	for i := range postings {
		items = append(items, postingResponse(&postings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Apply POST /guilds/:guild_id/jobs/:id/apply. No authentication; the
// applicant is not yet an account holder.
func (h *JobsHandler) Apply(c *fiber.Ctx) error {
	var req dto.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ApplicantUserID == "" || req.ApplicantUsername == "" || req.ApplicantEmail == "" {
		return apperrors.NewValidationError("applicant_user_id, applicant_username, applicant_email required", nil)
	}

	application, err := h.jobs.Apply(c.Context(), service.ApplyInput{
		GuildID:           c.Params("guild_id"),
		PostingID:         c.Params("id"),
		ApplicantUserID:   req.ApplicantUserID,
		ApplicantUsername: req.ApplicantUsername,
		ApplicantEmail:    req.ApplicantEmail,
		Statement:         req.Statement,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": applicationResponse(application)})
}

// ListApplications GET /guilds/:guild_id/jobs/:id/applications.
func (h *JobsHandler) ListApplications(c *fiber.Ctx) error {
	applications, err := h.jobs.ListApplications(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		items = append(items, applicationResponse(&applications[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Accept POST /guilds/:guild_id/applications/:id/accept.
func (h *JobsHandler) Accept(c *fiber.Ctx) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.AcceptApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.InitialPassword == "" {
		return apperrors.NewValidationError("initial_password required", nil)
	}

	application, staff, err := h.jobs.Accept(c.Context(), actor, c.Params("id"), req.InitialPassword)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"application": applicationResponse(application),
		"staff":       staffResponse(staff),
	}})
}

// Reject POST /guilds/:guild_id/applications/:id/reject.
func (h *JobsHandler) Reject(c *fiber.Ctx) error {
	actor, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	application, err := h.jobs.Reject(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationResponse(application)})
}

func postingResponse(posting *domain.JobPosting) dto.PostingResponse {
	return dto.PostingResponse{
		ID:          posting.ID,
		GuildID:     posting.GuildID,
		Title:       posting.Title,
		Description: posting.Description,
		Role:        posting.Role,
		Status:      posting.Status,
		PostedByID:  posting.PostedByID,
		CreatedAt:   posting.CreatedAt,
		ClosedAt:    posting.ClosedAt,
	}
}

func applicationResponse(application *domain.JobApplication) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:                application.ID,
		PostingID:         application.PostingID,
		ApplicantUserID:   application.ApplicantUserID,
		ApplicantUsername: application.ApplicantUsername,
		Statement:         application.Statement,
		Status:            application.Status,
		DecidedAt:         application.DecidedAt,
		CreatedAt:         application.CreatedAt,
	}
}
