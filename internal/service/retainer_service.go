package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lawfirm-service/internal/domain"
	"github.com/spec-kit/lawfirm-service/internal/events"
	"github.com/spec-kit/lawfirm-service/internal/repository"
	apperrors "github.com/spec-kit/lawfirm-service/pkg/util"
)

// RetainerService manages retainer agreements between clients and lawyers.
// Only the client named on a retainer may sign or decline it.
type RetainerService struct {
	retainers  repository.RetainerRepository
	clients    repository.ClientRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// RetainerDependencies bundles requirements for the retainer service.
type RetainerDependencies struct {
	RetainerRepo repository.RetainerRepository
	ClientRepo   repository.ClientRepository
	Dispatcher   events.Dispatcher
}

// CreateRetainerInput describes a retainer offer from a lawyer.
type CreateRetainerInput struct {
	GuildID  string
	ClientID string
	CaseID   *string
	Terms    string
}

// NewRetainerService constructs the service.
func NewRetainerService(deps RetainerDependencies) *RetainerService {
	return &RetainerService{
		retainers:  deps.RetainerRepo,
		clients:    deps.ClientRepo,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// Create offers a retainer to a client. The offering lawyer is the actor.
func (s *RetainerService) Create(ctx context.Context, actor *domain.StaffRecord, input CreateRetainerInput) (*domain.Retainer, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	if strings.TrimSpace(input.Terms) == "" {
		return nil, apperrors.NewValidationError("terms are required", nil)
	}
	if _, err := s.clients.GetByID(ctx, input.ClientID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("client", map[string]any{"client_id": input.ClientID})
		}
		return nil, apperrors.MapError(err)
	}

	retainer := &domain.Retainer{
		GuildID:  input.GuildID,
		ClientID: input.ClientID,
		LawyerID: actor.ID,
		CaseID:   input.CaseID,
		Terms:    strings.TrimSpace(input.Terms),
		Status:   domain.RetainerStatusPending,
	}
	if err := s.retainers.Create(ctx, retainer); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventRetainerCreated, staffActor(actor.ID), retainer)
	return retainer, nil
}

// Sign records the client's acceptance of a pending retainer.
func (s *RetainerService) Sign(ctx context.Context, clientID, retainerID string) (*domain.Retainer, error) {
	retainer, err := s.loadPendingForClient(ctx, clientID, retainerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	retainer.Status = domain.RetainerStatusSigned
	retainer.SignedAt = &now
	if err := s.retainers.Update(ctx, retainer); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventRetainerSigned, clientActor(clientID), retainer)
	return retainer, nil
}

// Decline records the client's rejection of a pending retainer.
func (s *RetainerService) Decline(ctx context.Context, clientID, retainerID string) (*domain.Retainer, error) {
	retainer, err := s.loadPendingForClient(ctx, clientID, retainerID)
	if err != nil {
		return nil, err
	}

	retainer.Status = domain.RetainerStatusDeclined
	if err := s.retainers.Update(ctx, retainer); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventRetainerDeclined, clientActor(clientID), retainer)
	return retainer, nil
}

// ListForClient returns all retainers naming the client.
func (s *RetainerService) ListForClient(ctx context.Context, clientID string) ([]domain.Retainer, error) {
	result, err := s.retainers.ListByClient(ctx, clientID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// ListForLawyer returns all retainers offered by the lawyer.
func (s *RetainerService) ListForLawyer(ctx context.Context, lawyerID string) ([]domain.Retainer, error) {
	result, err := s.retainers.ListByLawyer(ctx, lawyerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

func (s *RetainerService) loadPendingForClient(ctx context.Context, clientID, retainerID string) (*domain.Retainer, error) {
	retainer, err := s.retainers.GetByID(ctx, retainerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("retainer", map[string]any{"retainer_id": retainerID})
		}
		return nil, apperrors.MapError(err)
	}
	if retainer.ClientID != clientID {
		return nil, apperrors.NewForbidden("retainer belongs to another client")
	}
	if retainer.Status != domain.RetainerStatusPending {
		return nil, apperrors.NewConflict("retainer already decided", map[string]any{"status": retainer.Status})
	}
	return retainer, nil
}

func (s *RetainerService) publish(ctx context.Context, eventType events.EventType, actor events.Actor, retainer *domain.Retainer) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		GuildID:   retainer.GuildID,
		SubjectID: retainer.ID,
		Actor:     actor,
		Timestamp: s.now(),
		Payload: events.RetainerPayload{
			ClientID: retainer.ClientID,
			LawyerID: retainer.LawyerID,
			Status:   retainer.Status,
		},
	})
}
