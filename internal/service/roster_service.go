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
	"github.com/spec-kit/lawfirm-service/internal/events"
	"github.com/spec-kit/lawfirm-service/internal/repository"
	apperrors "github.com/spec-kit/lawfirm-service/pkg/util"
)

// RosterService manages the firm's staff ladder: hiring, promotion,
// demotion and termination. Rank policy comes from the domain hierarchy
// table; this service adds persistence and headcount enforcement.
type RosterService struct {
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// RosterDependencies bundles requirements for the roster service.
type RosterDependencies struct {
	StaffRepo  repository.StaffRepository
	Dispatcher events.Dispatcher
}

// HireInput describes a new hire.
type HireInput struct {
	GuildID  string
	UserID   string
	Username string
	Email    string
	Password string
	Role     domain.StaffRole
}

// RosterGroup pairs a role with its active members, for ladder displays.
type RosterGroup struct {
	Role    domain.StaffRole
	Level   int
	MaxSize int
	Members []domain.StaffRecord
}

// NewRosterService constructs the service.
func NewRosterService(cfg config.Config, deps RosterDependencies) *RosterService {
	return &RosterService{
		staff:      deps.StaffRepo,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Hire creates an active staff record after validating the role and its
// headcount cap.
func (s *RosterService) Hire(ctx context.Context, actor *domain.StaffRecord, input HireInput) (*domain.StaffRecord, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	if !domain.IsValidRole(input.Role) {
		return nil, apperrors.NewUnknownRole(string(input.Role))
	}
	allowed, err := domain.CanPromote(actor.Role, input.Role)
	if err != nil {
		return nil, apperrors.NewUnknownRole(string(actor.Role))
	}
	if !allowed {
		return nil, apperrors.NewForbidden("insufficient seniority to hire at this rank")
	}
	if existing, err := s.staff.GetActiveByGuildAndUser(ctx, input.GuildID, input.UserID); err == nil && existing != nil {
		return nil, apperrors.NewConflict("user already on staff", map[string]any{"user_id": input.UserID})
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	if err := s.ensureCapacity(ctx, input.GuildID, input.Role); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	staff := &domain.StaffRecord{
		GuildID:      input.GuildID,
		UserID:       input.UserID,
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		Role:         input.Role,
		Status:       domain.StaffStatusActive,
		HiredByID:    actor.ID,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishRoleEvent(ctx, events.EventStaffHired, actor.ID, staff, nil, &staff.Role)
	return staff, nil
}

// Promote moves a staff member one rung up the ladder.
func (s *RosterService) Promote(ctx context.Context, actor *domain.StaffRecord, targetStaffID string) (*domain.StaffRecord, error) {
	target, err := s.loadActiveTarget(ctx, targetStaffID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeLadderMove(actor, target, domain.CanPromote); err != nil {
		return nil, err
	}

	next, ok, err := domain.NextPromotion(target.Role)
	if err != nil {
		return nil, apperrors.NewUnknownRole(string(target.Role))
	}
	if !ok {
		return nil, apperrors.NewConflict("already at the top of the ladder", map[string]any{"role": target.Role})
	}
	if err := s.ensureCapacity(ctx, target.GuildID, next); err != nil {
		return nil, err
	}

	oldRole := target.Role
	now := time.Now()
	target.Role = next
	target.RoleChangedBy = &actor.ID
	target.RoleChangedAt = &now
	if err := s.staff.Update(ctx, target); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishRoleEvent(ctx, events.EventStaffPromoted, actor.ID, target, &oldRole, &target.Role)
	return target, nil
}

// Demote moves a staff member one rung down the ladder. Authorization is
// deliberately the same predicate as promotion.
func (s *RosterService) Demote(ctx context.Context, actor *domain.StaffRecord, targetStaffID string) (*domain.StaffRecord, error) {
	target, err := s.loadActiveTarget(ctx, targetStaffID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeLadderMove(actor, target, domain.CanDemote); err != nil {
		return nil, err
	}

	prev, ok, err := domain.PreviousDemotion(target.Role)
	if err != nil {
		return nil, apperrors.NewUnknownRole(string(target.Role))
	}
	if !ok {
		return nil, apperrors.NewConflict("already at the bottom of the ladder", map[string]any{"role": target.Role})
	}
	if err := s.ensureCapacity(ctx, target.GuildID, prev); err != nil {
		return nil, err
	}

	oldRole := target.Role
	now := time.Now()
	target.Role = prev
	target.RoleChangedBy = &actor.ID
	target.RoleChangedAt = &now
	if err := s.staff.Update(ctx, target); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishRoleEvent(ctx, events.EventStaffDemoted, actor.ID, target, &oldRole, &target.Role)
	return target, nil
}

// Terminate marks a staff record terminated. The record is kept.
func (s *RosterService) Terminate(ctx context.Context, actor *domain.StaffRecord, targetStaffID string) (*domain.StaffRecord, error) {
	target, err := s.loadActiveTarget(ctx, targetStaffID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeLadderMove(actor, target, domain.CanDemote); err != nil {
		return nil, err
	}

	oldRole := target.Role
	now := time.Now()
	target.Status = domain.StaffStatusTerminated
	target.TerminatedBy = &actor.ID
	target.TerminatedAt = &now
	if err := s.staff.Update(ctx, target); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishRoleEvent(ctx, events.EventStaffTerminated, actor.ID, target, &oldRole, nil)
	return target, nil
}

// Roster returns active staff grouped from Managing Partner down to
// Paralegal.
func (s *RosterService) Roster(ctx context.Context, guildID string) ([]RosterGroup, error) {
	active := domain.StaffStatusActive
	members, err := s.staff.List(ctx, repository.StaffFilter{
		GuildID: &guildID,
		Status:  &active,
		Limit:   500,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	byRole := make(map[domain.StaffRole][]domain.StaffRecord)
	for _, member := range members {
		byRole[member.Role] = append(byRole[member.Role], member)
	}

	groups := make([]RosterGroup, 0, 6)
	for _, role := range domain.AllRolesByLevelDescending() {
		level, err := domain.RoleLevel(role)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		cap, err := domain.MaxHeadcount(role)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		groups = append(groups, RosterGroup{
			Role:    role,
			Level:   level,
			MaxSize: cap,
			Members: byRole[role],
		})
	}
	return groups, nil
}

// GetByID fetches a staff record.
func (s *RosterService) GetByID(ctx context.Context, staffID string) (*domain.StaffRecord, error) {
	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": staffID})
		}
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

func (s *RosterService) loadActiveTarget(ctx context.Context, staffID string) (*domain.StaffRecord, error) {
	target, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": staffID})
		}
		return nil, apperrors.MapError(err)
	}
	if !target.IsActive() {
		return nil, apperrors.NewConflict("staff record terminated", map[string]any{"staff_id": staffID})
	}
	return target, nil
}

func (s *RosterService) authorizeLadderMove(actor, target *domain.StaffRecord, predicate func(domain.StaffRole, domain.StaffRole) (bool, error)) error {
	if actor == nil {
		return apperrors.NewUnauthorized("staff required")
	}
	if actor.GuildID != target.GuildID {
		return apperrors.NewForbidden("target belongs to another guild")
	}
	allowed, err := predicate(actor.Role, target.Role)
	if err != nil {
		return apperrors.NewUnknownRole(string(actor.Role))
	}
	if !allowed {
		return apperrors.NewForbidden("insufficient seniority")
	}
	return nil
}

func (s *RosterService) ensureCapacity(ctx context.Context, guildID string, role domain.StaffRole) error {
	cap, err := domain.MaxHeadcount(role)
	if err != nil {
		return apperrors.NewUnknownRole(string(role))
	}
	count, err := s.staff.CountActiveByRole(ctx, guildID, role)
	if err != nil {
		return apperrors.MapError(err)
	}
	if count >= cap {
		return apperrors.NewCapacityExceeded(string(role), cap)
	}
	return nil
}

func (s *RosterService) publishRoleEvent(ctx context.Context, eventType events.EventType, actorID string, staff *domain.StaffRecord, oldRole, newRole *domain.StaffRole) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		GuildID:   staff.GuildID,
		SubjectID: staff.ID,
		Actor:     staffActor(actorID),
		Timestamp: time.Now(),
		Payload: events.StaffRoleChangedPayload{
			UserID:   staff.UserID,
			Username: staff.Username,
			OldRole:  oldRole,
			NewRole:  newRole,
		},
	})
}

func staffActor(staffID string) events.Actor {
	return events.Actor{
		Type:    domain.SubjectTypeStaff,
		StaffID: &staffID,
	}
}

func clientActor(clientID string) events.Actor {
	return events.Actor{
		Type:     domain.SubjectTypeClient,
		ClientID: &clientID,
	}
}
