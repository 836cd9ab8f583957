package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/lawfirm-service/internal/domain"
	"github.com/spec-kit/lawfirm-service/internal/events"
	"github.com/spec-kit/lawfirm-service/internal/repository"
	apperrors "github.com/spec-kit/lawfirm-service/pkg/util"
)

// AuditService writes an audit entry for every domain event. It attaches
// to the dispatcher as a subscriber on all event types.
type AuditService struct {
	audits repository.AuditRepository
	logger *zap.Logger
}

// AuditDependencies bundles requirements for the audit service.
type AuditDependencies struct {
	AuditRepo repository.AuditRepository
	Logger    *zap.Logger
}

// NewAuditService constructs the service.
func NewAuditService(deps AuditDependencies) *AuditService {
	return &AuditService{
		audits: deps.AuditRepo,
		logger: deps.Logger,
	}
}

// Register subscribes the audit sink to every event type.
func (s *AuditService) Register(dispatcher events.Dispatcher) {
	for _, eventType := range events.AllTypes() {
		dispatcher.Subscribe(eventType, s.record)
	}
}

// List returns recent audit entries for a guild, newest first.
func (s *AuditService) List(ctx context.Context, guildID string, limit, offset int) ([]domain.AuditEntry, error) {
	result, err := s.audits.ListByGuild(ctx, guildID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

func (s *AuditService) record(ctx context.Context, event events.Event) error {
	var actorID *string
	switch event.Actor.Type {
	case domain.SubjectTypeClient:
		actorID = event.Actor.ClientID
	case domain.SubjectTypeStaff:
		actorID = event.Actor.StaffID
	}

	entry := &domain.AuditEntry{
		GuildID:   event.GuildID,
		Action:    string(event.Type),
		ActorType: event.Actor.Type,
		ActorID:   actorID,
		SubjectID: event.SubjectID,
		Detail:    payloadDetail(event.Payload),
	}
	if err := s.audits.Create(ctx, entry); err != nil {
		s.logger.Error("audit write failed",
			zap.String("action", entry.Action),
			zap.String("guild_id", entry.GuildID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// payloadDetail flattens an event payload into the audit detail map.
func payloadDetail(payload any) map[string]any {
	if payload == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	var detail map[string]any
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil
	}
	return detail
}
