package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lawfirm-service/internal/domain"
	"github.com/spec-kit/lawfirm-service/internal/repository"
)

// In-memory repository fakes backing the service tests.

type fakeStaffRepo struct {
	mu      sync.Mutex
	nextID  int
	records map[string]*domain.StaffRecord
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{records: map[string]*domain.StaffRecord{}}
}

func (f *fakeStaffRepo) Create(_ context.Context, staff *domain.StaffRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	staff.ID = fmt.Sprintf("staff-%d", f.nextID)
	staff.HiredAt = time.Now()
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = time.Now()
	clone := *staff
	f.records[staff.ID] = &clone
	return nil
}

func (f *fakeStaffRepo) Update(_ context.Context, staff *domain.StaffRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[staff.ID]; !ok {
		return pgx.ErrNoRows
	}
	staff.UpdatedAt = time.Now()
	clone := *staff
	f.records[staff.ID] = &clone
	return nil
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *record
	return &clone, nil
}

func (f *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*domain.StaffRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, record := range f.records {
		if strings.EqualFold(record.Email, email) {
			clone := *record
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStaffRepo) GetActiveByGuildAndUser(_ context.Context, guildID, userID string) (*domain.StaffRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, record := range f.records {
		if record.GuildID == guildID && record.UserID == userID && record.Status == domain.StaffStatusActive {
			clone := *record
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStaffRepo) List(_ context.Context, filter repository.StaffFilter) ([]domain.StaffRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.StaffRecord
	for _, record := range f.records {
		if filter.GuildID != nil && record.GuildID != *filter.GuildID {
			continue
		}
		if filter.Role != nil && record.Role != *filter.Role {
			continue
		}
		if filter.Status != nil && record.Status != *filter.Status {
			continue
		}
		result = append(result, *record)
	}
	return result, nil
}

func (f *fakeStaffRepo) CountActiveByRole(_ context.Context, guildID string, role domain.StaffRole) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, record := range f.records {
		if record.GuildID == guildID && record.Role == role && record.Status == domain.StaffStatusActive {
			count++
		}
	}
	return count, nil
}

type fakeCaseRepo struct {
	mu     sync.Mutex
	nextID int
	cases  map[string]*domain.Case
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{cases: map[string]*domain.Case{}}
}

func (f *fakeCaseRepo) Create(_ context.Context, kase *domain.Case) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	kase.ID = fmt.Sprintf("case-%d", f.nextID)
	kase.CreatedAt = time.Now()
	kase.UpdatedAt = time.Now()
	clone := *kase
	f.cases[kase.ID] = &clone
	return nil
}

func (f *fakeCaseRepo) Update(_ context.Context, kase *domain.Case) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.cases[kase.ID]; !ok {
		return pgx.ErrNoRows
	}
	kase.UpdatedAt = time.Now()
	clone := *kase
	f.cases[kase.ID] = &clone
	return nil
}

func (f *fakeCaseRepo) GetByID(_ context.Context, id string) (*domain.Case, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kase, ok := f.cases[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *kase
	return &clone, nil
}

func (f *fakeCaseRepo) GetByCaseNumber(_ context.Context, guildID, caseNumber string) (*domain.Case, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, kase := range f.cases {
		if kase.GuildID == guildID && kase.CaseNumber == caseNumber {
			clone := *kase
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCaseRepo) ListWithFilter(_ context.Context, filter repository.CaseFilter) ([]domain.Case, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Case
	for _, kase := range f.cases {
		if filter.GuildID != nil && kase.GuildID != *filter.GuildID {
			continue
		}
		if filter.ClientID != nil && kase.ClientID != *filter.ClientID {
			continue
		}
		result = append(result, *kase)
	}
	return result, nil
}

type fakeCounterRepo struct {
	mu       sync.Mutex
	counters map[string]int
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{counters: map[string]int{}}
}

func (f *fakeCounterRepo) NextSequence(_ context.Context, guildID string, year int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fmt.Sprintf("%s/%d", guildID, year)
	f.counters[key]++
	return f.counters[key], nil
}

type fakeClientRepo struct {
	mu      sync.Mutex
	nextID  int
	clients map[string]*domain.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[string]*domain.Client{}}
}

func (f *fakeClientRepo) Create(_ context.Context, client *domain.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	client.ID = fmt.Sprintf("client-%d", f.nextID)
	client.CreatedAt = time.Now()
	client.UpdatedAt = time.Now()
	clone := *client
	f.clients[client.ID] = &clone
	return nil
}

func (f *fakeClientRepo) Update(_ context.Context, client *domain.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[client.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *client
	f.clients[client.ID] = &clone
	return nil
}

func (f *fakeClientRepo) GetByID(_ context.Context, id string) (*domain.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	client, ok := f.clients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *client
	return &clone, nil
}

func (f *fakeClientRepo) GetByEmail(_ context.Context, email string) (*domain.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, client := range f.clients {
		if strings.EqualFold(client.Email, email) {
			clone := *client
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeJobRepo struct {
	mu           sync.Mutex
	nextID       int
	postings     map[string]*domain.JobPosting
	applications map[string]*domain.JobApplication
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{
		postings:     map[string]*domain.JobPosting{},
		applications: map[string]*domain.JobApplication{},
	}
}

func (f *fakeJobRepo) CreatePosting(_ context.Context, posting *domain.JobPosting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	posting.ID = fmt.Sprintf("posting-%d", f.nextID)
	posting.CreatedAt = time.Now()
	posting.UpdatedAt = time.Now()
	clone := *posting
	f.postings[posting.ID] = &clone
	return nil
}

func (f *fakeJobRepo) UpdatePosting(_ context.Context, posting *domain.JobPosting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.postings[posting.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *posting
	f.postings[posting.ID] = &clone
	return nil
}

func (f *fakeJobRepo) GetPostingByID(_ context.Context, id string) (*domain.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	posting, ok := f.postings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *posting
	return &clone, nil
}

func (f *fakeJobRepo) ListPostings(_ context.Context, guildID string, includeClosed bool) ([]domain.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.JobPosting
	for _, posting := range f.postings {
		if posting.GuildID != guildID {
			continue
		}
		if !includeClosed && posting.Status != domain.PostingStatusOpen {
			continue
		}
		result = append(result, *posting)
	}
	return result, nil
}

func (f *fakeJobRepo) CreateApplication(_ context.Context, application *domain.JobApplication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	application.ID = fmt.Sprintf("application-%d", f.nextID)
	application.CreatedAt = time.Now()
	application.UpdatedAt = time.Now()
	clone := *application
	f.applications[application.ID] = &clone
	return nil
}

func (f *fakeJobRepo) UpdateApplication(_ context.Context, application *domain.JobApplication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.applications[application.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *application
	f.applications[application.ID] = &clone
	return nil
}

func (f *fakeJobRepo) GetApplicationByID(_ context.Context, id string) (*domain.JobApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	application, ok := f.applications[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *application
	return &clone, nil
}

func (f *fakeJobRepo) GetPendingApplication(_ context.Context, postingID, applicantUserID string) (*domain.JobApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, application := range f.applications {
		if application.PostingID == postingID && application.ApplicantUserID == applicantUserID &&
			application.Status == domain.ApplicationStatusPending {
			clone := *application
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeJobRepo) ListApplicationsByPosting(_ context.Context, postingID string) ([]domain.JobApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.JobApplication
	for _, application := range f.applications {
		if application.PostingID == postingID {
			result = append(result, *application)
		}
	}
	return result, nil
}

type fakeReminderRepo struct {
	mu        sync.Mutex
	nextID    int
	reminders map[string]*domain.Reminder
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{reminders: map[string]*domain.Reminder{}}
}

func (f *fakeReminderRepo) Create(_ context.Context, reminder *domain.Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	reminder.ID = fmt.Sprintf("reminder-%d", f.nextID)
	reminder.CreatedAt = time.Now()
	reminder.UpdatedAt = time.Now()
	clone := *reminder
	f.reminders[reminder.ID] = &clone
	return nil
}

func (f *fakeReminderRepo) Update(_ context.Context, reminder *domain.Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reminders[reminder.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *reminder
	f.reminders[reminder.ID] = &clone
	return nil
}

func (f *fakeReminderRepo) GetByID(_ context.Context, id string) (*domain.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reminder, ok := f.reminders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *reminder
	return &clone, nil
}

func (f *fakeReminderRepo) ListDue(_ context.Context, before time.Time, limit int) ([]domain.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Reminder
	for _, reminder := range f.reminders {
		if reminder.Status == domain.ReminderStatusPending && !reminder.RemindAt.After(before) {
			result = append(result, *reminder)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (f *fakeReminderRepo) ListPendingByUser(_ context.Context, guildID, userID string) ([]domain.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Reminder
	for _, reminder := range f.reminders {
		if reminder.GuildID == guildID && reminder.UserID == userID && reminder.Status == domain.ReminderStatusPending {
			result = append(result, *reminder)
		}
	}
	return result, nil
}

type fakeGuildConfigRepo struct {
	mu      sync.Mutex
	configs map[string]*domain.GuildConfig
	reads   int
}

func newFakeGuildConfigRepo() *fakeGuildConfigRepo {
	return &fakeGuildConfigRepo{configs: map[string]*domain.GuildConfig{}}
}

func (f *fakeGuildConfigRepo) Upsert(_ context.Context, cfg *domain.GuildConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cfg.UpdatedAt = time.Now()
	if existing, ok := f.configs[cfg.GuildID]; ok {
		cfg.CreatedAt = existing.CreatedAt
	} else {
		cfg.CreatedAt = cfg.UpdatedAt
	}
	clone := *cfg
	f.configs[cfg.GuildID] = &clone
	return nil
}

func (f *fakeGuildConfigRepo) GetByGuildID(_ context.Context, guildID string) (*domain.GuildConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	cfg, ok := f.configs[guildID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *cfg
	return &clone, nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) CacheGet(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	val, ok := f.entries[key]
	return val, ok, nil
}

func (f *fakeCache) CacheSet(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
	return nil
}

func (f *fakeCache) CacheDelete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	return nil
}
