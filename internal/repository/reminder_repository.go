package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lawfirm-service/internal/domain"
)

// ReminderRepository handles persistence for scheduled reminders.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *domain.Reminder) error
	Update(ctx context.Context, reminder *domain.Reminder) error
	GetByID(ctx context.Context, id string) (*domain.Reminder, error)
	ListDue(ctx context.Context, before time.Time, limit int) ([]domain.Reminder, error)
	ListPendingByUser(ctx context.Context, guildID, userID string) ([]domain.Reminder, error)
}

type reminderRepository struct {
	pool *pgxpool.Pool
}

// NewReminderRepository instantiates the repository.
func NewReminderRepository(pool *pgxpool.Pool) ReminderRepository {
	return &reminderRepository{pool: pool}
}

const reminderColumns = `id, guild_id, user_id, channel_id, message, remind_at, status, created_at, updated_at, sent_at`

func (r *reminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	const query = `
        INSERT INTO reminders (guild_id, user_id, channel_id, message, remind_at, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		reminder.GuildID,
		reminder.UserID,
		reminder.ChannelID,
		reminder.Message,
		reminder.RemindAt,
		reminder.Status,
	).Scan(&reminder.ID, &reminder.CreatedAt, &reminder.UpdatedAt)
}

func (r *reminderRepository) Update(ctx context.Context, reminder *domain.Reminder) error {
	const query = `
        UPDATE reminders SET message=$1, remind_at=$2, status=$3, sent_at=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		reminder.Message,
		reminder.RemindAt,
		reminder.Status,
		reminder.SentAt,
		reminder.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reminderRepository) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE id=$1`
	var reminder domain.Reminder
	if err := r.pool.QueryRow(ctx, query, id).Scan(r.scanTargets(&reminder)...); err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (r *reminderRepository) ListDue(ctx context.Context, before time.Time, limit int) ([]domain.Reminder, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + reminderColumns + ` FROM reminders
        WHERE status='pending' AND remind_at <= $1 ORDER BY remind_at ASC LIMIT $2`
	return r.list(ctx, query, before, limit)
}

func (r *reminderRepository) ListPendingByUser(ctx context.Context, guildID, userID string) ([]domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders
        WHERE guild_id=$1 AND user_id=$2 AND status='pending' ORDER BY remind_at ASC`
	return r.list(ctx, query, guildID, userID)
}

func (r *reminderRepository) list(ctx context.Context, query string, args ...any) ([]domain.Reminder, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Reminder
	for rows.Next() {
		var reminder domain.Reminder
		if err := rows.Scan(r.scanTargets(&reminder)...); err != nil {
			return nil, err
		}
		result = append(result, reminder)
	}
	return result, rows.Err()
}

func (r *reminderRepository) scanTargets(reminder *domain.Reminder) []any {
	return []any{
		&reminder.ID,
		&reminder.GuildID,
		&reminder.UserID,
		&reminder.ChannelID,
		&reminder.Message,
		&reminder.RemindAt,
		&reminder.Status,
		&reminder.CreatedAt,
		&reminder.UpdatedAt,
		&reminder.SentAt,
	}
}
