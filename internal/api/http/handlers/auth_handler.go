package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lawfirm-service/internal/api/dto"
	"github.com/spec-kit/lawfirm-service/internal/domain"
	"github.com/spec-kit/lawfirm-service/internal/service"
	apperrors "github.com/spec-kit/lawfirm-service/pkg/util"
)

// AuthHandler serves registration, login and password reset endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// RegisterClient POST /auth/clients/register.
func (h *AuthHandler) RegisterClient(c *fiber.Ctx) error {
	var req dto.RegisterClientRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	client, err := h.auth.RegisterClient(c.Context(), service.RegisterClientInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		DiscordUserID: req.DiscordUserID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": clientResponse(client)})
}

// LoginClient POST /auth/clients/login.
func (h *AuthHandler) LoginClient(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	result, err := h.auth.LoginClient(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{Token: result.Token, ExpiresAt: result.ExpiresAt}})
}

// LoginStaff POST /auth/staff/login.
func (h *AuthHandler) LoginStaff(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	result, err := h.auth.LoginStaff(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{Token: result.Token, ExpiresAt: result.ExpiresAt}})
}

// RequestPasswordReset POST /auth/password/reset/request. Always answers
// 202 so the endpoint cannot be used to probe for accounts.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	subjectType := domain.SubjectType(strings.ToUpper(strings.TrimSpace(req.SubjectType)))
	if subjectType != domain.SubjectTypeClient && subjectType != domain.SubjectTypeStaff {
		return apperrors.NewValidationError("subject_type must be CLIENT or STAFF", nil)
	}

	if _, err := h.auth.RequestPasswordReset(c.Context(), subjectType, req.Email); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"status": "accepted"}})
}

// ConfirmPasswordReset POST /auth/password/reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" {
		return apperrors.NewValidationError("token required", nil)
	}
	if err := h.auth.ResetPassword(c.Context(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password updated"}})
}

func clientResponse(client *domain.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:            client.ID,
		Name:          client.Name,
		Email:         client.Email,
		DiscordUserID: client.DiscordUserID,
		Status:        string(client.Status),
		CreatedAt:     client.CreatedAt,
	}
}
