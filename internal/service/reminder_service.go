package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lawfirm-service/internal/config"
	"github.com/spec-kit/lawfirm-service/internal/domain"
	"github.com/spec-kit/lawfirm-service/internal/events"
	"github.com/spec-kit/lawfirm-service/internal/repository"
	apperrors "github.com/spec-kit/lawfirm-service/pkg/util"
)

// ReminderService schedules reminders and dispatches the due ones. The
// worker calls DispatchDue on an interval; everything else is request
// driven.
type ReminderService struct {
	reminders  repository.ReminderRepository
	dispatcher events.Dispatcher
	batchSize  int
	now        func() time.Time
}

// ReminderDependencies bundles requirements for the reminder service.
type ReminderDependencies struct {
	ReminderRepo repository.ReminderRepository
	Dispatcher   events.Dispatcher
}

// ScheduleReminderInput describes a reminder request.
type ScheduleReminderInput struct {
	GuildID   string
	UserID    string
	ChannelID string
	Message   string
	RemindAt  time.Time
}

// NewReminderService constructs the service.
func NewReminderService(cfg config.Config, deps ReminderDependencies) *ReminderService {
	batch := cfg.Reminder.DispatchBatchSize
	if batch <= 0 {
		batch = 50
	}
	return &ReminderService{
		reminders:  deps.ReminderRepo,
		dispatcher: deps.Dispatcher,
		batchSize:  batch,
		now:        time.Now,
	}
}

// Schedule creates a pending reminder. The due time must be in the future.
func (s *ReminderService) Schedule(ctx context.Context, input ScheduleReminderInput) (*domain.Reminder, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, apperrors.NewValidationError("message is required", nil)
	}
	if !input.RemindAt.After(s.now()) {
		return nil, apperrors.NewValidationError("remind_at must be in the future", map[string]any{
			"remind_at": input.RemindAt,
		})
	}

	reminder := &domain.Reminder{
		GuildID:   input.GuildID,
		UserID:    input.UserID,
		ChannelID: input.ChannelID,
		Message:   strings.TrimSpace(input.Message),
		RemindAt:  input.RemindAt,
		Status:    domain.ReminderStatusPending,
	}
	if err := s.reminders.Create(ctx, reminder); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventReminderScheduled, reminder)
	return reminder, nil
}

// Cancel withdraws a pending reminder. Only the owner may cancel.
func (s *ReminderService) Cancel(ctx context.Context, userID, reminderID string) (*domain.Reminder, error) {
	reminder, err := s.reminders.GetByID(ctx, reminderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("reminder", map[string]any{"reminder_id": reminderID})
		}
		return nil, apperrors.MapError(err)
	}
	if reminder.UserID != userID {
		return nil, apperrors.NewForbidden("reminder belongs to another user")
	}
	if reminder.Status != domain.ReminderStatusPending {
		return nil, apperrors.NewConflict("reminder no longer pending", map[string]any{"status": reminder.Status})
	}

	reminder.Status = domain.ReminderStatusCancelled
	if err := s.reminders.Update(ctx, reminder); err != nil {
		return nil, apperrors.MapError(err)
	}
	return reminder, nil
}

// ListPending returns a user's pending reminders, soonest first.
func (s *ReminderService) ListPending(ctx context.Context, guildID, userID string) ([]domain.Reminder, error) {
	result, err := s.reminders.ListPendingByUser(ctx, guildID, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// DispatchDue marks due reminders sent and publishes a dispatch event for
// each. Returns how many were dispatched.
func (s *ReminderService) DispatchDue(ctx context.Context) (int, error) {
	due, err := s.reminders.ListDue(ctx, s.now(), s.batchSize)
	if err != nil {
		return 0, apperrors.MapError(err)
	}

	dispatched := 0
	for i := range due {
		reminder := &due[i]
		now := s.now()
		reminder.Status = domain.ReminderStatusSent
		reminder.SentAt = &now
		if err := s.reminders.Update(ctx, reminder); err != nil {
			return dispatched, apperrors.MapError(err)
		}
		s.publish(ctx, events.EventReminderDispatched, reminder)
		dispatched++
	}
	return dispatched, nil
}

func (s *ReminderService) publish(ctx context.Context, eventType events.EventType, reminder *domain.Reminder) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		GuildID:   reminder.GuildID,
		SubjectID: reminder.ID,
		Actor:     events.Actor{Type: domain.SubjectTypeStaff},
		Timestamp: s.now(),
		Payload: events.ReminderPayload{
			UserID:    reminder.UserID,
			ChannelID: reminder.ChannelID,
			Message:   reminder.Message,
			RemindAt:  reminder.RemindAt,
		},
	})
}
