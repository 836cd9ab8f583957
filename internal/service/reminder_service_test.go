package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lawfirm-service/internal/config"
	"github.com/spec-kit/lawfirm-service/internal/domain"
)

func newReminderFixture() (*ReminderService, *fakeReminderRepo, *time.Time) {
	repo := newFakeReminderRepo()
	svc := NewReminderService(config.Config{}, ReminderDependencies{ReminderRepo: repo})
	now := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, repo, &now
}

func TestReminderScheduleAndList(t *testing.T) {
	svc, _, now := newReminderFixture()

	reminder, err := svc.Schedule(context.Background(), ScheduleReminderInput{
		GuildID:   "guild-1",
		UserID:    "user-1",
		ChannelID: "channel-1",
		Message:   "file the motion",
		RemindAt:  now.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReminderStatusPending, reminder.Status)

	pending, err := svc.ListPending(context.Background(), "guild-1", "user-1")
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestReminderScheduleRejectsPastDueTime(t *testing.T) {
	svc, _, now := newReminderFixture()

	_, err := svc.Schedule(context.Background(), ScheduleReminderInput{
		GuildID:  "guild-1",
		UserID:   "user-1",
		Message:  "too late",
		RemindAt: now.Add(-time.Minute),
	})
	require.Error(t, err)
}

func TestReminderCancelOwnerOnly(t *testing.T) {
	svc, _, now := newReminderFixture()
	reminder, err := svc.Schedule(context.Background(), ScheduleReminderInput{
		GuildID:  "guild-1",
		UserID:   "user-1",
		Message:  "call the client",
		RemindAt: now.Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), "user-2", reminder.ID)
	require.Error(t, err)

	cancelled, err := svc.Cancel(context.Background(), "user-1", reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReminderStatusCancelled, cancelled.Status)

	// Cancelled reminders never dispatch.
	*now = now.Add(2 * time.Hour)
	dispatched, err := svc.DispatchDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, dispatched)
}

func TestReminderDispatchDue(t *testing.T) {
	svc, repo, now := newReminderFixture()
	due, err := svc.Schedule(context.Background(), ScheduleReminderInput{
		GuildID:  "guild-1",
		UserID:   "user-1",
		Message:  "due soon",
		RemindAt: now.Add(time.Minute),
	})
	require.NoError(t, err)
	_, err = svc.Schedule(context.Background(), ScheduleReminderInput{
		GuildID:  "guild-1",
		UserID:   "user-1",
		Message:  "due much later",
		RemindAt: now.Add(24 * time.Hour),
	})
	require.NoError(t, err)

	*now = now.Add(time.Hour)
	dispatched, err := svc.DispatchDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, dispatched)

	sent, err := repo.GetByID(context.Background(), due.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReminderStatusSent, sent.Status)
	assert.NotNil(t, sent.SentAt)

	// A second pass finds nothing new.
	dispatched, err = svc.DispatchDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, dispatched)
}
