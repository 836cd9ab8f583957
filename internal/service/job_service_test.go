package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lawfirm-service/internal/domain"
	apperrors "github.com/spec-kit/lawfirm-service/pkg/util"
)

type jobFixture struct {
	svc       *JobService
	staffRepo *fakeStaffRepo
	managing  *domain.StaffRecord
	posting   *domain.JobPosting
}

func newJobFixture(t *testing.T) *jobFixture {
	t.Helper()
	staffRepo := newFakeStaffRepo()
	managing := seedStaff(t, staffRepo, "guild-1", domain.StaffRoleManagingPartner, "boss")

	svc := NewJobService(JobDependencies{
		JobRepo: newFakeJobRepo(),
		Roster:  newTestRoster(staffRepo),
	})

	posting, err := svc.CreatePosting(context.Background(), managing, CreatePostingInput{
		GuildID: "guild-1",
		Title:   "Paralegal opening",
		Role:    domain.StaffRoleParalegal,
	})
	require.NoError(t, err)

	return &jobFixture{svc: svc, staffRepo: staffRepo, managing: managing, posting: posting}
}

func (f *jobFixture) apply(t *testing.T, userID string) *domain.JobApplication {
	t.Helper()
	application, err := f.svc.Apply(context.Background(), ApplyInput{
		GuildID:           "guild-1",
		PostingID:         f.posting.ID,
		ApplicantUserID:   userID,
		ApplicantUsername: userID,
		ApplicantEmail:    userID + "@applicant.test",
		Statement:         "I would like to join the firm.",
	})
	require.NoError(t, err)
	return application
}

func TestJobPostingRejectsUnknownRole(t *testing.T) {
	f := newJobFixture(t)

	_, err := f.svc.CreatePosting(context.Background(), f.managing, CreatePostingInput{
		GuildID: "guild-1",
		Title:   "Mystery opening",
		Role:    domain.StaffRole("Intern"),
	})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "UNKNOWN_ROLE", domainErr.Code)
}

func TestJobApplyOncePerPosting(t *testing.T) {
	f := newJobFixture(t)
	f.apply(t, "candidate")

	_, err := f.svc.Apply(context.Background(), ApplyInput{
		GuildID:           "guild-1",
		PostingID:         f.posting.ID,
		ApplicantUserID:   "candidate",
		ApplicantUsername: "candidate",
		ApplicantEmail:    "candidate@applicant.test",
	})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestJobApplyClosedPosting(t *testing.T) {
	f := newJobFixture(t)
	_, err := f.svc.ClosePosting(context.Background(), f.managing, f.posting.ID)
	require.NoError(t, err)

	_, err = f.svc.Apply(context.Background(), ApplyInput{
		GuildID:           "guild-1",
		PostingID:         f.posting.ID,
		ApplicantUserID:   "late",
		ApplicantUsername: "late",
		ApplicantEmail:    "late@applicant.test",
	})
	require.Error(t, err)
}

func TestJobAcceptHiresAtPostingRole(t *testing.T) {
	f := newJobFixture(t)
	application := f.apply(t, "candidate")

	accepted, staff, err := f.svc.Accept(context.Background(), f.managing, application.ID, "w3lcome-aboard")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusAccepted, accepted.Status)
	require.NotNil(t, accepted.DecidedBy)
	assert.Equal(t, f.managing.ID, *accepted.DecidedBy)

	assert.Equal(t, domain.StaffRoleParalegal, staff.Role)
	assert.Equal(t, "candidate", staff.UserID)
	assert.Equal(t, domain.StaffStatusActive, staff.Status)

	// The decision is final.
	_, err = f.svc.Reject(context.Background(), f.managing, application.ID)
	require.Error(t, err)
}

func TestJobAcceptBlockedByHeadcountCap(t *testing.T) {
	f := newJobFixture(t)
	for i := 0; i < 10; i++ {
		seedStaff(t, f.staffRepo, "guild-1", domain.StaffRoleParalegal, "paralegal-"+string(rune('a'+i)))
	}
	application := f.apply(t, "candidate")

	_, _, err := f.svc.Accept(context.Background(), f.managing, application.ID, "w3lcome-aboard")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "CAPACITY_EXCEEDED", domainErr.Code)

	// The application stays pending so it can be decided later.
	pending, err := f.svc.jobs.GetApplicationByID(context.Background(), application.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusPending, pending.Status)
}

func TestJobReject(t *testing.T) {
	f := newJobFixture(t)
	application := f.apply(t, "candidate")

	rejected, err := f.svc.Reject(context.Background(), f.managing, application.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusRejected, rejected.Status)
	assert.NotNil(t, rejected.DecidedAt)

	// A rejected candidate can apply again.
	f.apply(t, "candidate")
}
