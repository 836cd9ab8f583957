package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lawfirm-service/internal/domain"
)

// GuildConfigRepository handles persistence for per-guild configuration.
type GuildConfigRepository interface {
	Upsert(ctx context.Context, cfg *domain.GuildConfig) error
	GetByGuildID(ctx context.Context, guildID string) (*domain.GuildConfig, error)
}

type guildConfigRepository struct {
	pool *pgxpool.Pool
}

// NewGuildConfigRepository instantiates the repository.
func NewGuildConfigRepository(pool *pgxpool.Pool) GuildConfigRepository {
	return &guildConfigRepository{pool: pool}
}

func (r *guildConfigRepository) Upsert(ctx context.Context, cfg *domain.GuildConfig) error {
	roleIDs, err := json.Marshal(cfg.StaffRoleIDs)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO guild_configs (guild_id, staff_channel_id, case_category_id, announcements_channel_id, client_role_id, staff_role_ids)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (guild_id) DO UPDATE SET
            staff_channel_id=EXCLUDED.staff_channel_id,
            case_category_id=EXCLUDED.case_category_id,
            announcements_channel_id=EXCLUDED.announcements_channel_id,
            client_role_id=EXCLUDED.client_role_id,
            staff_role_ids=EXCLUDED.staff_role_ids,
            updated_at=NOW()
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		cfg.GuildID,
		cfg.StaffChannelID,
		cfg.CaseCategoryID,
		cfg.AnnouncementsChannelID,
		cfg.ClientRoleID,
		roleIDs,
	).Scan(&cfg.CreatedAt, &cfg.UpdatedAt)
}

func (r *guildConfigRepository) GetByGuildID(ctx context.Context, guildID string) (*domain.GuildConfig, error) {
	const query = `
        SELECT guild_id, staff_channel_id, case_category_id, announcements_channel_id, client_role_id, staff_role_ids, created_at, updated_at
        FROM guild_configs WHERE guild_id=$1`

	var cfg domain.GuildConfig
	var roleIDs []byte
	if err := r.pool.QueryRow(ctx, query, guildID).Scan(
		&cfg.GuildID,
		&cfg.StaffChannelID,
		&cfg.CaseCategoryID,
		&cfg.AnnouncementsChannelID,
		&cfg.ClientRoleID,
		&roleIDs,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(roleIDs) > 0 {
		if err := json.Unmarshal(roleIDs, &cfg.StaffRoleIDs); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}
