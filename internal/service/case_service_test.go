package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lawfirm-service/internal/domain"
	apperrors "github.com/spec-kit/lawfirm-service/pkg/util"
)

type caseFixture struct {
	svc     *CaseService
	clients *fakeClientRepo
	client  *domain.Client
	actor   *domain.StaffRecord
}

func newCaseFixture(t *testing.T) *caseFixture {
	t.Helper()
	clients := newFakeClientRepo()
	client := &domain.Client{
		Name:   "alice",
		Email:  "alice@client.test",
		Status: domain.ClientStatusActive,
	}
	require.NoError(t, clients.Create(context.Background(), client))

	svc := NewCaseService(CaseDependencies{
		CaseRepo:    newFakeCaseRepo(),
		CounterRepo: newFakeCounterRepo(),
		ClientRepo:  clients,
	})
	svc.now = func() time.Time {
		return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	}

	return &caseFixture{
		svc:     svc,
		clients: clients,
		client:  client,
		actor:   &domain.StaffRecord{ID: "staff-1", GuildID: "guild-1", Role: domain.StaffRoleSeniorAssociate},
	}
}

func (f *caseFixture) open(t *testing.T) *domain.Case {
	t.Helper()
	kase, err := f.svc.OpenCase(context.Background(), f.actor, OpenCaseInput{
		GuildID:  "guild-1",
		ClientID: f.client.ID,
		Title:    "Contract dispute",
		Priority: domain.CasePriorityHigh,
	})
	require.NoError(t, err)
	return kase
}

func TestOpenCaseAssignsSequentialNumbers(t *testing.T) {
	f := newCaseFixture(t)

	first := f.open(t)
	assert.Equal(t, "2024-0001-alice", first.CaseNumber)
	assert.Equal(t, "case-2024-0001-alice", first.ChannelName)
	assert.Equal(t, domain.CaseStatusPending, first.Status)
	assert.Equal(t, "staff-1", first.OpenedByID)

	second := f.open(t)
	assert.Equal(t, "2024-0002-alice", second.CaseNumber)
}

func TestOpenCaseCounterIsPerGuild(t *testing.T) {
	f := newCaseFixture(t)
	f.open(t)

	other, err := f.svc.OpenCase(context.Background(), f.actor, OpenCaseInput{
		GuildID:  "guild-2",
		ClientID: f.client.ID,
		Title:    "Another matter",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-0001-alice", other.CaseNumber)
	assert.Equal(t, domain.CasePriorityMedium, other.Priority)
}

func TestOpenCaseUnknownClient(t *testing.T) {
	f := newCaseFixture(t)

	_, err := f.svc.OpenCase(context.Background(), f.actor, OpenCaseInput{
		GuildID:  "guild-1",
		ClientID: "missing",
		Title:    "Contract dispute",
	})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestCaseStatusForwardOnly(t *testing.T) {
	f := newCaseFixture(t)
	kase := f.open(t)

	kase, err := f.svc.UpdateStatus(context.Background(), f.actor, kase.ID, domain.CaseStatusOpen)
	require.NoError(t, err)
	assert.Equal(t, domain.CaseStatusOpen, kase.Status)

	kase, err = f.svc.UpdateStatus(context.Background(), f.actor, kase.ID, domain.CaseStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.CaseStatusInProgress, kase.Status)

	// No moving backwards.
	_, err = f.svc.UpdateStatus(context.Background(), f.actor, kase.ID, domain.CaseStatusOpen)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestCaseStatusCloseRequiresResult(t *testing.T) {
	f := newCaseFixture(t)
	kase := f.open(t)

	_, err := f.svc.UpdateStatus(context.Background(), f.actor, kase.ID, domain.CaseStatusClosed)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestCloseCaseRecordsResultOnce(t *testing.T) {
	f := newCaseFixture(t)
	kase := f.open(t)

	closed, err := f.svc.CloseCase(context.Background(), f.actor, CloseCaseInput{
		CaseID: kase.ID,
		Result: domain.CaseResultWin,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CaseStatusClosed, closed.Status)
	require.NotNil(t, closed.Result)
	assert.Equal(t, domain.CaseResultWin, *closed.Result)
	assert.NotNil(t, closed.ClosedAt)

	// Closed cases never reopen or change outcome.
	_, err = f.svc.CloseCase(context.Background(), f.actor, CloseCaseInput{
		CaseID: kase.ID,
		Result: domain.CaseResultLoss,
	})
	require.Error(t, err)
	_, err = f.svc.UpdateStatus(context.Background(), f.actor, kase.ID, domain.CaseStatusOpen)
	require.Error(t, err)
	_, err = f.svc.UpdatePriority(context.Background(), f.actor, kase.ID, domain.CasePriorityLow)
	require.Error(t, err)
}

func TestCloseCaseRejectsUnknownResult(t *testing.T) {
	f := newCaseFixture(t)
	kase := f.open(t)

	_, err := f.svc.CloseCase(context.Background(), f.actor, CloseCaseInput{
		CaseID: kase.ID,
		Result: domain.CaseResult("draw"),
	})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestAssignLawyerFirstBecomesLead(t *testing.T) {
	f := newCaseFixture(t)
	kase := f.open(t)

	kase, err := f.svc.AssignLawyer(context.Background(), f.actor, kase.ID, "lawyer-1")
	require.NoError(t, err)
	require.NotNil(t, kase.LeadAttorneyID)
	assert.Equal(t, "lawyer-1", *kase.LeadAttorneyID)
	assert.Equal(t, []string{"lawyer-1"}, kase.AssignedLawyerIDs)

	// Assigning the same lawyer again is a no-op.
	kase, err = f.svc.AssignLawyer(context.Background(), f.actor, kase.ID, "lawyer-1")
	require.NoError(t, err)
	assert.Len(t, kase.AssignedLawyerIDs, 1)

	kase, err = f.svc.AssignLawyer(context.Background(), f.actor, kase.ID, "lawyer-2")
	require.NoError(t, err)
	assert.Equal(t, "lawyer-1", *kase.LeadAttorneyID)
	assert.Len(t, kase.AssignedLawyerIDs, 2)
}

func TestUnassignLawyerReassignsLead(t *testing.T) {
	f := newCaseFixture(t)
	kase := f.open(t)

	_, err := f.svc.AssignLawyer(context.Background(), f.actor, kase.ID, "lawyer-1")
	require.NoError(t, err)
	_, err = f.svc.AssignLawyer(context.Background(), f.actor, kase.ID, "lawyer-2")
	require.NoError(t, err)

	kase, err = f.svc.UnassignLawyer(context.Background(), f.actor, kase.ID, "lawyer-1")
	require.NoError(t, err)
	require.NotNil(t, kase.LeadAttorneyID)
	assert.Equal(t, "lawyer-2", *kase.LeadAttorneyID)
	assert.Equal(t, []string{"lawyer-2"}, kase.AssignedLawyerIDs)

	kase, err = f.svc.UnassignLawyer(context.Background(), f.actor, kase.ID, "lawyer-2")
	require.NoError(t, err)
	assert.Nil(t, kase.LeadAttorneyID)
	assert.Empty(t, kase.AssignedLawyerIDs)

	_, err = f.svc.UnassignLawyer(context.Background(), f.actor, kase.ID, "lawyer-2")
	require.Error(t, err)
}

func TestSetLeadAttorneyAssignsIfNeeded(t *testing.T) {
	f := newCaseFixture(t)
	kase := f.open(t)

	kase, err := f.svc.SetLeadAttorney(context.Background(), f.actor, kase.ID, "lawyer-9")
	require.NoError(t, err)
	require.NotNil(t, kase.LeadAttorneyID)
	assert.Equal(t, "lawyer-9", *kase.LeadAttorneyID)
	assert.Contains(t, kase.AssignedLawyerIDs, "lawyer-9")
}

func TestGetByCaseNumberScopedToGuild(t *testing.T) {
	f := newCaseFixture(t)
	kase := f.open(t)

	found, err := f.svc.GetByCaseNumber(context.Background(), "guild-1", kase.CaseNumber)
	require.NoError(t, err)
	assert.Equal(t, kase.ID, found.ID)

	_, err = f.svc.GetByCaseNumber(context.Background(), "guild-2", kase.CaseNumber)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestListCasesForClient(t *testing.T) {
	f := newCaseFixture(t)
	f.open(t)
	f.open(t)

	other := &domain.Client{Name: "bob", Email: "bob@client.test", Status: domain.ClientStatusActive}
	require.NoError(t, f.clients.Create(context.Background(), other))
	_, err := f.svc.OpenCase(context.Background(), f.actor, OpenCaseInput{
		GuildID:  "guild-1",
		ClientID: other.ID,
		Title:    "Unrelated matter",
	})
	require.NoError(t, err)

	mine, err := f.svc.ListCasesForClient(context.Background(), "guild-1", f.client.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, kase := range mine {
		assert.Equal(t, f.client.ID, kase.ClientID, fmt.Sprintf("case %s", kase.CaseNumber))
	}
}
