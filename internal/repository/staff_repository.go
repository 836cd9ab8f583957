package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lawfirm-service/internal/domain"
)

// StaffRepository handles persistence for staff records.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffRecord) error
	Update(ctx context.Context, staff *domain.StaffRecord) error
	GetByID(ctx context.Context, id string) (*domain.StaffRecord, error)
	GetByEmail(ctx context.Context, email string) (*domain.StaffRecord, error)
	GetActiveByGuildAndUser(ctx context.Context, guildID, userID string) (*domain.StaffRecord, error)
	List(ctx context.Context, filter StaffFilter) ([]domain.StaffRecord, error)
	CountActiveByRole(ctx context.Context, guildID string, role domain.StaffRole) (int, error)
}

// StaffFilter defines query params for staff listing.
type StaffFilter struct {
	GuildID *string
	Role    *domain.StaffRole
	Status  *domain.StaffStatus
	Limit   int
	Offset  int
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

const staffColumns = `id, guild_id, user_id, username, email, password_hash, role, status,
       hired_by, role_changed_by, terminated_by, hired_at, role_changed_at, terminated_at,
       created_at, updated_at`

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffRecord) error {
	const query = `
        INSERT INTO staff_records (guild_id, user_id, username, email, password_hash, role, status, hired_by, hired_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW())
        RETURNING id, hired_at, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		staff.GuildID,
		staff.UserID,
		staff.Username,
		staff.Email,
		staff.PasswordHash,
		staff.Role,
		staff.Status,
		staff.HiredByID,
	).Scan(&staff.ID, &staff.HiredAt, &staff.CreatedAt, &staff.UpdatedAt)
}

func (r *staffRepository) Update(ctx context.Context, staff *domain.StaffRecord) error {
	const query = `
        UPDATE staff_records
        SET username=$1, email=$2, password_hash=$3, role=$4, status=$5,
            role_changed_by=$6, terminated_by=$7, role_changed_at=$8, terminated_at=$9, updated_at=NOW()
        WHERE id=$10`

	cmd, err := r.pool.Exec(ctx, query,
		staff.Username,
		staff.Email,
		staff.PasswordHash,
		staff.Role,
		staff.Status,
		staff.RoleChangedBy,
		staff.TerminatedBy,
		staff.RoleChangedAt,
		staff.TerminatedAt,
		staff.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffRecord, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_records WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffRecord, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_records WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *staffRepository) GetActiveByGuildAndUser(ctx context.Context, guildID, userID string) (*domain.StaffRecord, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_records WHERE guild_id=$1 AND user_id=$2 AND status='active'`
	var staff domain.StaffRecord
	if err := r.pool.QueryRow(ctx, query, guildID, userID).Scan(r.scanTargets(&staff)...); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.StaffRecord, error) {
	var staff domain.StaffRecord
	if err := r.pool.QueryRow(ctx, query, arg).Scan(r.scanTargets(&staff)...); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) scanTargets(staff *domain.StaffRecord) []any {
	return []any{
		&staff.ID,
		&staff.GuildID,
		&staff.UserID,
		&staff.Username,
		&staff.Email,
		&staff.PasswordHash,
		&staff.Role,
		&staff.Status,
		&staff.HiredByID,
		&staff.RoleChangedBy,
		&staff.TerminatedBy,
		&staff.HiredAt,
		&staff.RoleChangedAt,
		&staff.TerminatedAt,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	}
}

func (r *staffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.StaffRecord, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_records`
	args := []any{}
	clauses := []string{}

	if filter.GuildID != nil {
		args = append(args, *filter.GuildID)
		clauses = append(clauses, fmt.Sprintf("guild_id=$%d", len(args)))
	}
	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("role=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY hired_at ASC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StaffRecord
	for rows.Next() {
		var staff domain.StaffRecord
		if err := rows.Scan(r.scanTargets(&staff)...); err != nil {
			return nil, err
		}
		result = append(result, staff)
	}
	return result, rows.Err()
}

func (r *staffRepository) CountActiveByRole(ctx context.Context, guildID string, role domain.StaffRole) (int, error) {
	const query = `SELECT COUNT(*) FROM staff_records WHERE guild_id=$1 AND role=$2 AND status='active'`
	var count int
	if err := r.pool.QueryRow(ctx, query, guildID, role).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
