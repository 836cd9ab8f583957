package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/lawfirm-service/internal/config"
	"github.com/spec-kit/lawfirm-service/internal/domain"
)

func newGuildFixture() (*GuildService, *fakeGuildConfigRepo, *fakeCache) {
	repo := newFakeGuildConfigRepo()
	cache := newFakeCache()
	svc := NewGuildService(config.Config{}, GuildDependencies{
		ConfigRepo: repo,
		Cache:      cache,
		Logger:     zap.NewNop(),
	})
	return svc, repo, cache
}

func managingPartner() *domain.StaffRecord {
	return &domain.StaffRecord{
		ID:      "staff-1",
		GuildID: "guild-1",
		Role:    domain.StaffRoleManagingPartner,
		Status:  domain.StaffStatusActive,
	}
}

func TestGuildConfigReadThroughCache(t *testing.T) {
	svc, repo, _ := newGuildFixture()
	_, err := svc.UpdateConfig(context.Background(), managingPartner(), UpdateGuildConfigInput{
		GuildID:        "guild-1",
		StaffChannelID: "channel-1",
		StaffRoleIDs: map[domain.StaffRole]string{
			domain.StaffRoleParalegal: "role-1",
		},
	})
	require.NoError(t, err)

	first, err := svc.GetConfig(context.Background(), "guild-1")
	require.NoError(t, err)
	assert.Equal(t, "channel-1", first.StaffChannelID)
	assert.Equal(t, 1, repo.reads)

	// Second read is served from the cache.
	second, err := svc.GetConfig(context.Background(), "guild-1")
	require.NoError(t, err)
	assert.Equal(t, first.StaffChannelID, second.StaffChannelID)
	assert.Equal(t, first.StaffRoleIDs, second.StaffRoleIDs)
	assert.Equal(t, 1, repo.reads)
}

func TestGuildConfigUpdateInvalidatesCache(t *testing.T) {
	svc, repo, _ := newGuildFixture()
	actor := managingPartner()

	_, err := svc.UpdateConfig(context.Background(), actor, UpdateGuildConfigInput{
		GuildID:        "guild-1",
		StaffChannelID: "channel-1",
	})
	require.NoError(t, err)
	_, err = svc.GetConfig(context.Background(), "guild-1")
	require.NoError(t, err)

	_, err = svc.UpdateConfig(context.Background(), actor, UpdateGuildConfigInput{
		GuildID:        "guild-1",
		StaffChannelID: "channel-2",
	})
	require.NoError(t, err)

	updated, err := svc.GetConfig(context.Background(), "guild-1")
	require.NoError(t, err)
	assert.Equal(t, "channel-2", updated.StaffChannelID)
	assert.Equal(t, 2, repo.reads)
}

func TestGuildConfigRejectsUnknownRoleBinding(t *testing.T) {
	svc, _, _ := newGuildFixture()

	_, err := svc.UpdateConfig(context.Background(), managingPartner(), UpdateGuildConfigInput{
		GuildID: "guild-1",
		StaffRoleIDs: map[domain.StaffRole]string{
			domain.StaffRole("Intern"): "role-9",
		},
	})
	require.Error(t, err)
}

func TestGuildConfigMissing(t *testing.T) {
	svc, _, _ := newGuildFixture()

	_, err := svc.GetConfig(context.Background(), "guild-404")
	require.Error(t, err)
}
