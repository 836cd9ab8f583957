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

// allowedCaseTransitions defines the forward-only case lifecycle. A case
// never reopens once closed.
var allowedCaseTransitions = map[domain.CaseStatus][]domain.CaseStatus{
	domain.CaseStatusPending:    {domain.CaseStatusOpen, domain.CaseStatusInProgress, domain.CaseStatusClosed},
	domain.CaseStatusOpen:       {domain.CaseStatusInProgress, domain.CaseStatusClosed},
	domain.CaseStatusInProgress: {domain.CaseStatusClosed},
	domain.CaseStatusClosed:     {},
}

func isCaseTransitionAllowed(from, to domain.CaseStatus) bool {
	for _, allowed := range allowedCaseTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CaseService owns case numbering and lifecycle. Case numbers are issued
// from a per-guild yearly sequence and never reused.
type CaseService struct {
	cases      repository.CaseRepository
	counters   repository.CaseCounterRepository
	clients    repository.ClientRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// CaseDependencies bundles requirements for the case service.
type CaseDependencies struct {
	CaseRepo    repository.CaseRepository
	CounterRepo repository.CaseCounterRepository
	ClientRepo  repository.ClientRepository
	Dispatcher  events.Dispatcher
}

// OpenCaseInput describes a case creation request.
type OpenCaseInput struct {
	GuildID     string
	ClientID    string
	Title       string
	Description string
	Priority    domain.CasePriority
}

// CloseCaseInput carries the closing outcome.
type CloseCaseInput struct {
	CaseID string
	Result domain.CaseResult
}

// NewCaseService constructs the service.
func NewCaseService(deps CaseDependencies) *CaseService {
	return &CaseService{
		cases:      deps.CaseRepo,
		counters:   deps.CounterRepo,
		clients:    deps.ClientRepo,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// OpenCase issues the next case number for the guild and year, derives the
// channel name and persists the case in pending status.
func (s *CaseService) OpenCase(ctx context.Context, actor *domain.StaffRecord, input OpenCaseInput) (*domain.Case, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if input.Priority == "" {
		input.Priority = domain.CasePriorityMedium
	}
	if !domain.IsValidPriority(input.Priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": input.Priority})
	}

	client, err := s.clients.GetByID(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("client", map[string]any{"client_id": input.ClientID})
		}
		return nil, apperrors.MapError(err)
	}

	year := s.now().Year()
	sequence, err := s.counters.NextSequence(ctx, input.GuildID, year)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	caseNumber := domain.GenerateCaseNumber(year, sequence, client.Name)
	kase := &domain.Case{
		GuildID:     input.GuildID,
		CaseNumber:  caseNumber,
		ChannelName: domain.GenerateChannelName(caseNumber),
		ClientID:    client.ID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.CaseStatusPending,
		Priority:    input.Priority,
		OpenedByID:  actor.ID,
	}
	if err := s.cases.Create(ctx, kase); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventCaseOpened, actor.ID, kase, events.CaseOpenedPayload{
		CaseNumber:  kase.CaseNumber,
		ChannelName: kase.ChannelName,
		ClientID:    kase.ClientID,
		Priority:    kase.Priority,
		Title:       kase.Title,
	})
	return kase, nil
}

// UpdateStatus advances a case along the lifecycle. Closing requires
// CloseCase so a result is always recorded with the transition.
func (s *CaseService) UpdateStatus(ctx context.Context, actor *domain.StaffRecord, caseID string, next domain.CaseStatus) (*domain.Case, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	if !domain.IsValidStatus(next) {
		return nil, apperrors.NewValidationError("invalid case status", map[string]any{"status": next})
	}
	if next == domain.CaseStatusClosed {
		return nil, apperrors.NewValidationError("closing a case requires a result", nil)
	}

	kase, err := s.load(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if !isCaseTransitionAllowed(kase.Status, next) {
		return nil, apperrors.NewConflict("status transition not allowed", map[string]any{
			"from": kase.Status,
			"to":   next,
		})
	}

	old := kase.Status
	kase.Status = next
	if err := s.cases.Update(ctx, kase); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventCaseStatusChanged, actor.ID, kase, events.CaseStatusChangedPayload{
		OldStatus: old,
		NewStatus: next,
	})
	return kase, nil
}

// CloseCase performs the terminal transition and records the outcome. The
// result can only be set here; it never changes afterwards.
func (s *CaseService) CloseCase(ctx context.Context, actor *domain.StaffRecord, input CloseCaseInput) (*domain.Case, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	if !domain.IsValidResult(input.Result) {
		return nil, apperrors.NewValidationError("invalid case result", map[string]any{"result": input.Result})
	}

	kase, err := s.load(ctx, input.CaseID)
	if err != nil {
		return nil, err
	}
	if !isCaseTransitionAllowed(kase.Status, domain.CaseStatusClosed) {
		return nil, apperrors.NewConflict("case already closed", map[string]any{"case_number": kase.CaseNumber})
	}

	old := kase.Status
	now := s.now()
	result := input.Result
	kase.Status = domain.CaseStatusClosed
	kase.Result = &result
	kase.ClosedAt = &now
	if err := s.cases.Update(ctx, kase); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventCaseClosed, actor.ID, kase, events.CaseStatusChangedPayload{
		OldStatus: old,
		NewStatus: domain.CaseStatusClosed,
		Result:    &result,
	})
	return kase, nil
}

// UpdatePriority changes case urgency. Closed cases stay frozen.
func (s *CaseService) UpdatePriority(ctx context.Context, actor *domain.StaffRecord, caseID string, priority domain.CasePriority) (*domain.Case, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	if !domain.IsValidPriority(priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": priority})
	}

	kase, err := s.load(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if kase.Status == domain.CaseStatusClosed {
		return nil, apperrors.NewConflict("case already closed", map[string]any{"case_number": kase.CaseNumber})
	}
	if kase.Priority == priority {
		return kase, nil
	}

	old := kase.Priority
	kase.Priority = priority
	if err := s.cases.Update(ctx, kase); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventCasePriorityChanged, actor.ID, kase, events.CasePriorityChangedPayload{
		OldPriority: old,
		NewPriority: priority,
	})
	return kase, nil
}

// AssignLawyer adds a staff member to the case team.
func (s *CaseService) AssignLawyer(ctx context.Context, actor *domain.StaffRecord, caseID, lawyerID string) (*domain.Case, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	kase, err := s.load(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if kase.Status == domain.CaseStatusClosed {
		return nil, apperrors.NewConflict("case already closed", map[string]any{"case_number": kase.CaseNumber})
	}
	for _, id := range kase.AssignedLawyerIDs {
		if id == lawyerID {
			return kase, nil
		}
	}

	kase.AssignedLawyerIDs = append(kase.AssignedLawyerIDs, lawyerID)
	if kase.LeadAttorneyID == nil {
		// First lawyer on the case becomes lead by default.
		kase.LeadAttorneyID = &lawyerID
	}
	if err := s.cases.Update(ctx, kase); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventCaseAssignmentChanged, actor.ID, kase, events.CaseAssignmentChangedPayload{
		LawyerID:       lawyerID,
		LeadAttorneyID: kase.LeadAttorneyID,
		Assigned:       true,
	})
	return kase, nil
}

// UnassignLawyer removes a staff member from the case team. If the lead
// leaves, the longest-serving remaining lawyer takes over.
func (s *CaseService) UnassignLawyer(ctx context.Context, actor *domain.StaffRecord, caseID, lawyerID string) (*domain.Case, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	kase, err := s.load(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if kase.Status == domain.CaseStatusClosed {
		return nil, apperrors.NewConflict("case already closed", map[string]any{"case_number": kase.CaseNumber})
	}

	found := false
	remaining := kase.AssignedLawyerIDs[:0]
	for _, id := range kase.AssignedLawyerIDs {
		if id == lawyerID {
			found = true
			continue
		}
		remaining = append(remaining, id)
	}
	if !found {
		return nil, apperrors.NewNotFound("assignment", map[string]any{"lawyer_id": lawyerID})
	}
	kase.AssignedLawyerIDs = remaining
	if kase.LeadAttorneyID != nil && *kase.LeadAttorneyID == lawyerID {
		kase.LeadAttorneyID = nil
		if len(remaining) > 0 {
			kase.LeadAttorneyID = &remaining[0]
		}
	}
	if err := s.cases.Update(ctx, kase); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventCaseAssignmentChanged, actor.ID, kase, events.CaseAssignmentChangedPayload{
		LawyerID:       lawyerID,
		LeadAttorneyID: kase.LeadAttorneyID,
		Assigned:       false,
	})
	return kase, nil
}

// SetLeadAttorney designates the lead, assigning them first if needed.
func (s *CaseService) SetLeadAttorney(ctx context.Context, actor *domain.StaffRecord, caseID, lawyerID string) (*domain.Case, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	kase, err := s.load(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if kase.Status == domain.CaseStatusClosed {
		return nil, apperrors.NewConflict("case already closed", map[string]any{"case_number": kase.CaseNumber})
	}

	assigned := false
	for _, id := range kase.AssignedLawyerIDs {
		if id == lawyerID {
			assigned = true
			break
		}
	}
	if !assigned {
		kase.AssignedLawyerIDs = append(kase.AssignedLawyerIDs, lawyerID)
	}
	kase.LeadAttorneyID = &lawyerID
	if err := s.cases.Update(ctx, kase); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventCaseAssignmentChanged, actor.ID, kase, events.CaseAssignmentChangedPayload{
		LawyerID:       lawyerID,
		LeadAttorneyID: kase.LeadAttorneyID,
		Assigned:       true,
	})
	return kase, nil
}

// GetByID fetches a case.
func (s *CaseService) GetByID(ctx context.Context, caseID string) (*domain.Case, error) {
	return s.load(ctx, caseID)
}

// GetByCaseNumber resolves a case by its human-facing number.
func (s *CaseService) GetByCaseNumber(ctx context.Context, guildID, caseNumber string) (*domain.Case, error) {
	kase, err := s.cases.GetByCaseNumber(ctx, guildID, caseNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("case", map[string]any{"case_number": caseNumber})
		}
		return nil, apperrors.MapError(err)
	}
	return kase, nil
}

// ListCases searches cases with the given filter.
func (s *CaseService) ListCases(ctx context.Context, filter repository.CaseFilter) ([]domain.Case, error) {
	result, err := s.cases.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// ListCasesForClient returns the cases a client may see, scoped to their
// own records.
func (s *CaseService) ListCasesForClient(ctx context.Context, guildID, clientID string) ([]domain.Case, error) {
	return s.ListCases(ctx, repository.CaseFilter{
		GuildID:  &guildID,
		ClientID: &clientID,
	})
}

func (s *CaseService) load(ctx context.Context, caseID string) (*domain.Case, error) {
	kase, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("case", map[string]any{"case_id": caseID})
		}
		return nil, apperrors.MapError(err)
	}
	return kase, nil
}

func (s *CaseService) publish(ctx context.Context, eventType events.EventType, actorStaffID string, kase *domain.Case, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		GuildID:   kase.GuildID,
		SubjectID: kase.ID,
		Actor:     staffActor(actorStaffID),
		Timestamp: s.now(),
		Payload:   payload,
	})
}
