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

// JobService manages job postings and applications. Accepting an
// application hires the applicant at the posting's role through the
// roster service, so headcount caps still apply.
type JobService struct {
	jobs       repository.JobRepository
	roster     *RosterService
	dispatcher events.Dispatcher
	now        func() time.Time
}

// JobDependencies bundles requirements for the job service.
type JobDependencies struct {
	JobRepo    repository.JobRepository
	Roster     *RosterService
	Dispatcher events.Dispatcher
}

// CreatePostingInput describes a new job posting.
type CreatePostingInput struct {
	GuildID     string
	Title       string
	Description string
	Role        domain.StaffRole
}

// ApplyInput describes an application submission.
type ApplyInput struct {
	GuildID           string
	PostingID         string
	ApplicantUserID   string
	ApplicantUsername string
	ApplicantEmail    string
	Statement         string
}

// NewJobService constructs the service.
func NewJobService(deps JobDependencies) *JobService {
	return &JobService{
		jobs:       deps.JobRepo,
		roster:     deps.Roster,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// CreatePosting opens a posting for a ladder role.
func (s *JobService) CreatePosting(ctx context.Context, actor *domain.StaffRecord, input CreatePostingInput) (*domain.JobPosting, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if !domain.IsValidRole(input.Role) {
		return nil, apperrors.NewUnknownRole(string(input.Role))
	}

	posting := &domain.JobPosting{
		GuildID:     input.GuildID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Role:        input.Role,
		Status:      domain.PostingStatusOpen,
		PostedByID:  actor.ID,
	}
	if err := s.jobs.CreatePosting(ctx, posting); err != nil {
		return nil, apperrors.MapError(err)
	}
	return posting, nil
}

// ClosePosting stops further applications.
func (s *JobService) ClosePosting(ctx context.Context, actor *domain.StaffRecord, postingID string) (*domain.JobPosting, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	posting, err := s.loadPosting(ctx, postingID)
	if err != nil {
		return nil, err
	}
	if posting.Status == domain.PostingStatusClosed {
		return nil, apperrors.NewConflict("posting already closed", map[string]any{"posting_id": postingID})
	}

	now := s.now()
	posting.Status = domain.PostingStatusClosed
	posting.ClosedAt = &now
	if err := s.jobs.UpdatePosting(ctx, posting); err != nil {
		return nil, apperrors.MapError(err)
	}
	return posting, nil
}

// ListPostings returns postings for a guild.
func (s *JobService) ListPostings(ctx context.Context, guildID string, includeClosed bool) ([]domain.JobPosting, error) {
	result, err := s.jobs.ListPostings(ctx, guildID, includeClosed)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Apply submits an application against an open posting. One pending
// application per applicant per posting.
func (s *JobService) Apply(ctx context.Context, input ApplyInput) (*domain.JobApplication, error) {
	posting, err := s.loadPosting(ctx, input.PostingID)
	if err != nil {
		return nil, err
	}
	if posting.Status != domain.PostingStatusOpen {
		return nil, apperrors.NewConflict("posting is closed", map[string]any{"posting_id": posting.ID})
	}
	if existing, err := s.jobs.GetPendingApplication(ctx, posting.ID, input.ApplicantUserID); err == nil && existing != nil {
		return nil, apperrors.NewConflict("application already pending", map[string]any{"application_id": existing.ID})
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	application := &domain.JobApplication{
		GuildID:           posting.GuildID,
		PostingID:         posting.ID,
		ApplicantUserID:   input.ApplicantUserID,
		ApplicantUsername: strings.TrimSpace(input.ApplicantUsername),
		ApplicantEmail:    strings.TrimSpace(input.ApplicantEmail),
		Statement:         strings.TrimSpace(input.Statement),
		Status:            domain.ApplicationStatusPending,
	}
	if err := s.jobs.CreateApplication(ctx, application); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishApplication(ctx, events.EventApplicationSubmitted, events.Actor{Type: domain.SubjectTypeClient}, application)
	return application, nil
}

// Accept hires the applicant at the posting's role and marks the
// application accepted. The temporary password is returned once so the
// caller can hand it to the new hire.
func (s *JobService) Accept(ctx context.Context, actor *domain.StaffRecord, applicationID, initialPassword string) (*domain.JobApplication, *domain.StaffRecord, error) {
	if actor == nil {
		return nil, nil, apperrors.NewUnauthorized("staff required")
	}
	application, err := s.loadPendingApplication(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}
	posting, err := s.loadPosting(ctx, application.PostingID)
	if err != nil {
		return nil, nil, err
	}

	staff, err := s.roster.Hire(ctx, actor, HireInput{
		GuildID:  application.GuildID,
		UserID:   application.ApplicantUserID,
		Username: application.ApplicantUsername,
		Email:    application.ApplicantEmail,
		Password: initialPassword,
		Role:     posting.Role,
	})
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	application.Status = domain.ApplicationStatusAccepted
	application.DecidedBy = &actor.ID
	application.DecidedAt = &now
	if err := s.jobs.UpdateApplication(ctx, application); err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	s.publishApplication(ctx, events.EventApplicationDecided, staffActor(actor.ID), application)
	return application, staff, nil
}

// Reject declines a pending application.
func (s *JobService) Reject(ctx context.Context, actor *domain.StaffRecord, applicationID string) (*domain.JobApplication, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	application, err := s.loadPendingApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	application.Status = domain.ApplicationStatusRejected
	application.DecidedBy = &actor.ID
	application.DecidedAt = &now
	if err := s.jobs.UpdateApplication(ctx, application); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishApplication(ctx, events.EventApplicationDecided, staffActor(actor.ID), application)
	return application, nil
}

// ListApplications returns every application on a posting.
func (s *JobService) ListApplications(ctx context.Context, postingID string) ([]domain.JobApplication, error) {
	result, err := s.jobs.ListApplicationsByPosting(ctx, postingID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

func (s *JobService) loadPosting(ctx context.Context, postingID string) (*domain.JobPosting, error) {
	posting, err := s.jobs.GetPostingByID(ctx, postingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("posting", map[string]any{"posting_id": postingID})
		}
		return nil, apperrors.MapError(err)
	}
	return posting, nil
}

func (s *JobService) loadPendingApplication(ctx context.Context, applicationID string) (*domain.JobApplication, error) {
	application, err := s.jobs.GetApplicationByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("application", map[string]any{"application_id": applicationID})
		}
		return nil, apperrors.MapError(err)
	}
	if application.Status != domain.ApplicationStatusPending {
		return nil, apperrors.NewConflict("application already decided", map[string]any{"status": application.Status})
	}
	return application, nil
}

func (s *JobService) publishApplication(ctx context.Context, eventType events.EventType, actor events.Actor, application *domain.JobApplication) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		GuildID:   application.GuildID,
		SubjectID: application.ID,
		Actor:     actor,
		Timestamp: s.now(),
		Payload: events.ApplicationPayload{
			PostingID:       application.PostingID,
			ApplicantUserID: application.ApplicantUserID,
			Status:          application.Status,
		},
	})
}
