package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lawfirm-service/internal/domain"
)

// RetainerRepository encapsulates retainer persistence.
type RetainerRepository interface {
	Create(ctx context.Context, retainer *domain.Retainer) error
	Update(ctx context.Context, retainer *domain.Retainer) error
	GetByID(ctx context.Context, id string) (*domain.Retainer, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Retainer, error)
	ListByLawyer(ctx context.Context, lawyerID string) ([]domain.Retainer, error)
}

type retainerRepository struct {
	pool *pgxpool.Pool
}

// NewRetainerRepository instantiates the repository.
func NewRetainerRepository(pool *pgxpool.Pool) RetainerRepository {
	return &retainerRepository{pool: pool}
}

const retainerColumns = `id, guild_id, client_id, lawyer_id, case_id, terms, status, created_at, updated_at, signed_at`

func (r *retainerRepository) Create(ctx context.Context, retainer *domain.Retainer) error {
	const query = `
        INSERT INTO retainers (guild_id, client_id, lawyer_id, case_id, terms, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		retainer.GuildID,
		retainer.ClientID,
		retainer.LawyerID,
		retainer.CaseID,
		retainer.Terms,
		retainer.Status,
	).Scan(&retainer.ID, &retainer.CreatedAt, &retainer.UpdatedAt)
}

func (r *retainerRepository) Update(ctx context.Context, retainer *domain.Retainer) error {
	const query = `
        UPDATE retainers SET case_id=$1, terms=$2, status=$3, signed_at=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		retainer.CaseID,
		retainer.Terms,
		retainer.Status,
		retainer.SignedAt,
		retainer.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *retainerRepository) GetByID(ctx context.Context, id string) (*domain.Retainer, error) {
	query := `SELECT ` + retainerColumns + ` FROM retainers WHERE id=$1`
	var retainer domain.Retainer
	if err := r.pool.QueryRow(ctx, query, id).Scan(r.scanTargets(&retainer)...); err != nil {
		return nil, err
	}
	return &retainer, nil
}

func (r *retainerRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Retainer, error) {
	query := `SELECT ` + retainerColumns + ` FROM retainers WHERE client_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, clientID)
}

func (r *retainerRepository) ListByLawyer(ctx context.Context, lawyerID string) ([]domain.Retainer, error) {
	query := `SELECT ` + retainerColumns + ` FROM retainers WHERE lawyer_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, lawyerID)
}

func (r *retainerRepository) list(ctx context.Context, query string, arg any) ([]domain.Retainer, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Retainer
	for rows.Next() {
		var retainer domain.Retainer
		if err := rows.Scan(r.scanTargets(&retainer)...); err != nil {
			return nil, err
		}
		result = append(result, retainer)
	}
	return result, rows.Err()
}

func (r *retainerRepository) scanTargets(retainer *domain.Retainer) []any {
	return []any{
		&retainer.ID,
		&retainer.GuildID,
		&retainer.ClientID,
		&retainer.LawyerID,
		&retainer.CaseID,
		&retainer.Terms,
		&retainer.Status,
		&retainer.CreatedAt,
		&retainer.UpdatedAt,
		&retainer.SignedAt,
	}
}
