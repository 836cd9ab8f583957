package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/lawfirm-service/internal/config"
	"github.com/spec-kit/lawfirm-service/internal/domain"
	"github.com/spec-kit/lawfirm-service/internal/events"
	"github.com/spec-kit/lawfirm-service/internal/repository"
	apperrors "github.com/spec-kit/lawfirm-service/pkg/util"
)

// ConfigCache is the subset of the Redis wrapper the guild service needs.
type ConfigCache interface {
	CacheGet(ctx context.Context, key string) (string, bool, error)
	CacheSet(ctx context.Context, key, value string, ttl time.Duration) error
	CacheDelete(ctx context.Context, key string) error
}

// GuildService manages per-guild configuration with a read-through cache.
// Cache failures degrade to database reads; they never fail a request.
type GuildService struct {
	configs    repository.GuildConfigRepository
	cache      ConfigCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	ttl        time.Duration
}

// GuildDependencies bundles requirements for the guild service.
type GuildDependencies struct {
	ConfigRepo repository.GuildConfigRepository
	Cache      ConfigCache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// UpdateGuildConfigInput carries new guild bindings.
type UpdateGuildConfigInput struct {
	GuildID                string
	StaffChannelID         string
	CaseCategoryID         string
	AnnouncementsChannelID string
	ClientRoleID           string
	StaffRoleIDs           map[domain.StaffRole]string
}

// NewGuildService constructs the service.
func NewGuildService(cfg config.Config, deps GuildDependencies) *GuildService {
	return &GuildService{
		configs:    deps.ConfigRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		ttl:        cfg.Cache.GuildConfigTTL(),
	}
}

// GetConfig returns the guild configuration, consulting the cache first.
func (s *GuildService) GetConfig(ctx context.Context, guildID string) (*domain.GuildConfig, error) {
	key := guildConfigCacheKey(guildID)
	if s.cache != nil {
		if raw, ok, err := s.cache.CacheGet(ctx, key); err != nil {
			s.logger.Warn("guild config cache read failed", zap.Error(err))
		} else if ok {
			var cfg domain.GuildConfig
			if err := json.Unmarshal([]byte(raw), &cfg); err == nil {
				return &cfg, nil
			}
			// Corrupt entry, fall through to the database.
			_ = s.cache.CacheDelete(ctx, key)
		}
	}

	cfg, err := s.configs.GetByGuildID(ctx, guildID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("guild config", map[string]any{"guild_id": guildID})
		}
		return nil, apperrors.MapError(err)
	}

	s.fillCache(ctx, key, cfg)
	return cfg, nil
}

// UpdateConfig upserts guild bindings and invalidates the cached copy.
func (s *GuildService) UpdateConfig(ctx context.Context, actor *domain.StaffRecord, input UpdateGuildConfigInput) (*domain.GuildConfig, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	for role := range input.StaffRoleIDs {
		if !domain.IsValidRole(role) {
			return nil, apperrors.NewUnknownRole(string(role))
		}
	}

	cfg := &domain.GuildConfig{
		GuildID:                input.GuildID,
		StaffChannelID:         input.StaffChannelID,
		CaseCategoryID:         input.CaseCategoryID,
		AnnouncementsChannelID: input.AnnouncementsChannelID,
		ClientRoleID:           input.ClientRoleID,
		StaffRoleIDs:           input.StaffRoleIDs,
	}
	if err := s.configs.Upsert(ctx, cfg); err != nil {
		return nil, apperrors.MapError(err)
	}

	key := guildConfigCacheKey(cfg.GuildID)
	if s.cache != nil {
		if err := s.cache.CacheDelete(ctx, key); err != nil {
			s.logger.Warn("guild config cache invalidation failed", zap.Error(err))
		}
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventGuildConfigUpdated,
			GuildID:   cfg.GuildID,
			SubjectID: cfg.GuildID,
			Actor:     staffActor(actor.ID),
			Timestamp: time.Now(),
		})
	}
	return cfg, nil
}

func (s *GuildService) fillCache(ctx context.Context, key string, cfg *domain.GuildConfig) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	if err := s.cache.CacheSet(ctx, key, string(raw), s.ttl); err != nil {
		s.logger.Warn("guild config cache write failed", zap.Error(err))
	}
}

func guildConfigCacheKey(guildID string) string {
	return "guild-config:" + guildID
}
