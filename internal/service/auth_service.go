package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lawfirm-service/internal/auth"
	"github.com/spec-kit/lawfirm-service/internal/config"
	"github.com/spec-kit/lawfirm-service/internal/domain"
	"github.com/spec-kit/lawfirm-service/internal/repository"
	apperrors "github.com/spec-kit/lawfirm-service/pkg/util"
)

// AuthService handles registration, login and password resets for both
// clients and staff.
type AuthService struct {
	clients  repository.ClientRepository
	staff    repository.StaffRepository
	resets   repository.PasswordResetRepository
	tokens   *auth.TokenManager
	cost     int
	resetTTL time.Duration
	now      func() time.Time
}

// AuthDependencies bundles requirements for the auth service.
type AuthDependencies struct {
	ClientRepo repository.ClientRepository
	StaffRepo  repository.StaffRepository
	ResetRepo  repository.PasswordResetRepository
	Tokens     *auth.TokenManager
}

// RegisterClientInput describes a client signup.
type RegisterClientInput struct {
	Name          string
	Email         string
	Password      string
	DiscordUserID *string
}

// LoginResult carries a signed token and its expiry.
type LoginResult struct {
	Token       string
	ExpiresAt   time.Time
	SubjectType domain.SubjectType
	SubjectID   string
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		clients:  deps.ClientRepo,
		staff:    deps.StaffRepo,
		resets:   deps.ResetRepo,
		tokens:   deps.Tokens,
		cost:     cfg.Auth.BcryptCost,
		resetTTL: time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
		now:      time.Now,
	}
}

// RegisterClient creates a client account.
func (s *AuthService) RegisterClient(ctx context.Context, input RegisterClientInput) (*domain.Client, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("valid email is required", nil)
	}
	if len(input.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	if existing, err := s.clients.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.cost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	client := &domain.Client{
		Name:          strings.TrimSpace(input.Name),
		Email:         email,
		PasswordHash:  hash,
		DiscordUserID: input.DiscordUserID,
		Status:        domain.ClientStatusActive,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

// LoginClient authenticates a client and issues a token.
func (s *AuthService) LoginClient(ctx context.Context, email, password string) (*LoginResult, error) {
	client, err := s.clients.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if client.Status != domain.ClientStatusActive {
		return nil, apperrors.NewForbidden("account suspended")
	}
	if err := auth.ComparePassword(client.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(client.ID, domain.SubjectTypeClient, nil)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{
		Token:       token,
		ExpiresAt:   expiresAt,
		SubjectType: domain.SubjectTypeClient,
		SubjectID:   client.ID,
	}, nil
}

// LoginStaff authenticates an active staff member and issues a token
// carrying their current role.
func (s *AuthService) LoginStaff(ctx context.Context, email, password string) (*LoginResult, error) {
	staff, err := s.staff.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if !staff.IsActive() {
		return nil, apperrors.NewForbidden("staff record terminated")
	}
	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(staff.ID, domain.SubjectTypeStaff, &staff.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{
		Token:       token,
		ExpiresAt:   expiresAt,
		SubjectType: domain.SubjectTypeStaff,
		SubjectID:   staff.ID,
	}, nil
}

// RequestPasswordReset issues a single-use reset token for the account
// with the given email. The response is the same whether or not the email
// exists, so the token is returned only when a record matched.
func (s *AuthService) RequestPasswordReset(ctx context.Context, subjectType domain.SubjectType, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var subjectID string
	switch subjectType {
	case domain.SubjectTypeClient:
		client, err := s.clients.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return "", nil
			}
			return "", apperrors.MapError(err)
		}
		subjectID = client.ID
	case domain.SubjectTypeStaff:
		staff, err := s.staff.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return "", nil
			}
			return "", apperrors.MapError(err)
		}
		subjectID = staff.ID
	default:
		return "", apperrors.NewValidationError("invalid subject type", nil)
	}

	token := &repository.PasswordResetToken{
		SubjectType: string(subjectType),
		SubjectID:   subjectID,
		Token:       uuid.NewString(),
		ExpiresAt:   s.now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return "", apperrors.MapError(err)
	}
	return token.Token, nil
}

// ResetPassword consumes a reset token and sets the new password.
func (s *AuthService) ResetPassword(ctx context.Context, tokenValue, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	token, err := s.resets.GetByToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("invalid or expired reset token")
		}
		return apperrors.MapError(err)
	}
	if token.UsedAt != nil || s.now().After(token.ExpiresAt) {
		return apperrors.NewUnauthorized("invalid or expired reset token")
	}

	hash, err := auth.HashPassword(newPassword, s.cost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	switch domain.SubjectType(token.SubjectType) {
	case domain.SubjectTypeClient:
		client, err := s.clients.GetByID(ctx, token.SubjectID)
		if err != nil {
			return apperrors.MapError(err)
		}
		client.PasswordHash = hash
		if err := s.clients.Update(ctx, client); err != nil {
			return apperrors.MapError(err)
		}
	case domain.SubjectTypeStaff:
		staff, err := s.staff.GetByID(ctx, token.SubjectID)
		if err != nil {
			return apperrors.MapError(err)
		}
		staff.PasswordHash = hash
		if err := s.staff.Update(ctx, staff); err != nil {
			return apperrors.MapError(err)
		}
	default:
		return apperrors.NewUnauthorized("invalid or expired reset token")
	}

	if err := s.resets.MarkUsed(ctx, token.ID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
