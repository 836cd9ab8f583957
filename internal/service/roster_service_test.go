package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/lawfirm-service/internal/config"
	"github.com/spec-kit/lawfirm-service/internal/domain"
	apperrors "github.com/spec-kit/lawfirm-service/pkg/util"
)

func newTestRoster(repo *fakeStaffRepo) *RosterService {
	cfg := config.Config{Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	return NewRosterService(cfg, RosterDependencies{StaffRepo: repo})
}

func seedStaff(t *testing.T, repo *fakeStaffRepo, guildID string, role domain.StaffRole, userID string) *domain.StaffRecord {
	t.Helper()
	staff := &domain.StaffRecord{
		GuildID:  guildID,
		UserID:   userID,
		Username: userID,
		Email:    userID + "@firm.test",
		Role:     role,
		Status:   domain.StaffStatusActive,
	}
	require.NoError(t, repo.Create(context.Background(), staff))
	return staff
}

func TestRosterHire(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := newTestRoster(repo)
	managing := seedStaff(t, repo, "guild-1", domain.StaffRoleManagingPartner, "boss")

	hired, err := svc.Hire(context.Background(), managing, HireInput{
		GuildID:  "guild-1",
		UserID:   "alice",
		Username: "alice",
		Email:    "alice@firm.test",
		Password: "s3cretpass",
		Role:     domain.StaffRoleParalegal,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StaffRoleParalegal, hired.Role)
	assert.Equal(t, domain.StaffStatusActive, hired.Status)
	assert.Equal(t, managing.ID, hired.HiredByID)
	assert.NotEqual(t, "s3cretpass", hired.PasswordHash)
}

func TestRosterHireRejectsUnknownRole(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := newTestRoster(repo)
	managing := seedStaff(t, repo, "guild-1", domain.StaffRoleManagingPartner, "boss")

	_, err := svc.Hire(context.Background(), managing, HireInput{
		GuildID: "guild-1",
		UserID:  "bob",
		Role:    domain.StaffRole("Intern"),
	})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "UNKNOWN_ROLE", domainErr.Code)
}

func TestRosterHireRequiresSeniority(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := newTestRoster(repo)
	junior := seedStaff(t, repo, "guild-1", domain.StaffRoleJuniorAssociate, "junior")

	_, err := svc.Hire(context.Background(), junior, HireInput{
		GuildID: "guild-1",
		UserID:  "bob",
		Role:    domain.StaffRoleParalegal,
	})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestRosterHireEnforcesHeadcountCap(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := newTestRoster(repo)
	managing := seedStaff(t, repo, "guild-1", domain.StaffRoleManagingPartner, "boss")

	// Senior Partner is capped at three seats.
	for i := 0; i < 3; i++ {
		seedStaff(t, repo, "guild-1", domain.StaffRoleSeniorPartner, fmt.Sprintf("partner-%d", i))
	}

	_, err := svc.Hire(context.Background(), managing, HireInput{
		GuildID: "guild-1",
		UserID:  "overflow",
		Role:    domain.StaffRoleSeniorPartner,
	})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "CAPACITY_EXCEEDED", domainErr.Code)
}

func TestRosterHireRejectsDuplicateActiveStaff(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := newTestRoster(repo)
	managing := seedStaff(t, repo, "guild-1", domain.StaffRoleManagingPartner, "boss")
	seedStaff(t, repo, "guild-1", domain.StaffRoleParalegal, "alice")

	_, err := svc.Hire(context.Background(), managing, HireInput{
		GuildID: "guild-1",
		UserID:  "alice",
		Role:    domain.StaffRoleParalegal,
	})
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestRosterPromote(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := newTestRoster(repo)
	managing := seedStaff(t, repo, "guild-1", domain.StaffRoleManagingPartner, "boss")
	paralegal := seedStaff(t, repo, "guild-1", domain.StaffRoleParalegal, "alice")

	promoted, err := svc.Promote(context.Background(), managing, paralegal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StaffRoleJuniorAssociate, promoted.Role)
	require.NotNil(t, promoted.RoleChangedBy)
	assert.Equal(t, managing.ID, *promoted.RoleChangedBy)
	assert.NotNil(t, promoted.RoleChangedAt)
}

func TestRosterPromoteTopOfLadder(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := newTestRoster(repo)
	managing := seedStaff(t, repo, "guild-1", domain.StaffRoleManagingPartner, "boss")

	// Nobody outranks the Managing Partner, so the move is rejected on
	// authority before the ladder lookup.
	_, err := svc.Promote(context.Background(), managing, managing.ID)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestRosterPromoteBlockedByDestinationCap(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := newTestRoster(repo)
	managing := seedStaff(t, repo, "guild-1", domain.StaffRoleManagingPartner, "boss")
	senior := seedStaff(t, repo, "guild-1", domain.StaffRoleSeniorPartner, "senior")

	// Managing Partner has a single seat and it is taken.
	_, err := svc.Promote(context.Background(), managing, senior.ID)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "CAPACITY_EXCEEDED", domainErr.Code)
}

func TestRosterPromoteRequiresSeniority(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := newTestRoster(repo)
	juniorPartner := seedStaff(t, repo, "guild-1", domain.StaffRoleJuniorPartner, "jp")
	paralegal := seedStaff(t, repo, "guild-1", domain.StaffRoleParalegal, "alice")

	_, err := svc.Promote(context.Background(), juniorPartner, paralegal.ID)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestRosterDemote(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := newTestRoster(repo)
	managing := seedStaff(t, repo, "guild-1", domain.StaffRoleManagingPartner, "boss")
	associate := seedStaff(t, repo, "guild-1", domain.StaffRoleSeniorAssociate, "carol")

	demoted, err := svc.Demote(context.Background(), managing, associate.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StaffRoleJuniorAssociate, demoted.Role)
}

func TestRosterDemoteBottomOfLadder(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := newTestRoster(repo)
	managing := seedStaff(t, repo, "guild-1", domain.StaffRoleManagingPartner, "boss")
	paralegal := seedStaff(t, repo, "guild-1", domain.StaffRoleParalegal, "alice")

	_, err := svc.Demote(context.Background(), managing, paralegal.ID)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestRosterCrossGuildMoveForbidden(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := newTestRoster(repo)
	managing := seedStaff(t, repo, "guild-1", domain.StaffRoleManagingPartner, "boss")
	other := seedStaff(t, repo, "guild-2", domain.StaffRoleParalegal, "alice")

	_, err := svc.Promote(context.Background(), managing, other.ID)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestRosterTerminate(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := newTestRoster(repo)
	managing := seedStaff(t, repo, "guild-1", domain.StaffRoleManagingPartner, "boss")
	paralegal := seedStaff(t, repo, "guild-1", domain.StaffRoleParalegal, "alice")

	terminated, err := svc.Terminate(context.Background(), managing, paralegal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StaffStatusTerminated, terminated.Status)
	assert.NotNil(t, terminated.TerminatedAt)

	// A terminated record cannot be moved again.
	_, err = svc.Promote(context.Background(), managing, paralegal.ID)
	require.Error(t, err)

	// The seat frees up for a rehire.
	_, err = svc.Hire(context.Background(), managing, HireInput{
		GuildID:  "guild-1",
		UserID:   "alice",
		Username: "alice",
		Email:    "alice@firm.test",
		Password: "s3cretpass",
		Role:     domain.StaffRoleParalegal,
	})
	require.NoError(t, err)
}

func TestRosterGrouping(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := newTestRoster(repo)
	seedStaff(t, repo, "guild-1", domain.StaffRoleManagingPartner, "boss")
	seedStaff(t, repo, "guild-1", domain.StaffRoleParalegal, "alice")
	seedStaff(t, repo, "guild-1", domain.StaffRoleParalegal, "bob")
	seedStaff(t, repo, "guild-2", domain.StaffRoleParalegal, "stranger")

	groups, err := svc.Roster(context.Background(), "guild-1")
	require.NoError(t, err)
	require.Len(t, groups, 6)

	assert.Equal(t, domain.StaffRoleManagingPartner, groups[0].Role)
	assert.Equal(t, 6, groups[0].Level)
	assert.Equal(t, 1, groups[0].MaxSize)
	assert.Len(t, groups[0].Members, 1)

	last := groups[len(groups)-1]
	assert.Equal(t, domain.StaffRoleParalegal, last.Role)
	assert.Len(t, last.Members, 2)
}
