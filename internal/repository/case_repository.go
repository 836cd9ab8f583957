package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lawfirm-service/internal/domain"
)

// CaseFilter captures case search parameters.
type CaseFilter struct {
	GuildID    *string
	ClientID   *string
	LawyerID   *string
	Statuses   []domain.CaseStatus
	Priorities []domain.CasePriority
	SearchTerm *string
	Limit      int
	Offset     int
}

// CaseRepository encapsulates case persistence.
type CaseRepository interface {
	Create(ctx context.Context, kase *domain.Case) error
	Update(ctx context.Context, kase *domain.Case) error
	GetByID(ctx context.Context, id string) (*domain.Case, error)
	GetByCaseNumber(ctx context.Context, guildID, caseNumber string) (*domain.Case, error)
	ListWithFilter(ctx context.Context, filter CaseFilter) ([]domain.Case, error)
}

type caseRepository struct {
	pool *pgxpool.Pool
}

// NewCaseRepository instantiates repository.
func NewCaseRepository(pool *pgxpool.Pool) CaseRepository {
	return &caseRepository{pool: pool}
}

const caseColumns = `id, guild_id, case_number, channel_name, client_id, lead_attorney_id,
       assigned_lawyer_ids, title, description, status, priority, result, opened_by,
       created_at, updated_at, closed_at`

func (r *caseRepository) Create(ctx context.Context, kase *domain.Case) error {
	const query = `
        INSERT INTO cases (guild_id, case_number, channel_name, client_id, lead_attorney_id,
                           assigned_lawyer_ids, title, description, status, priority, opened_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		kase.GuildID,
		kase.CaseNumber,
		kase.ChannelName,
		kase.ClientID,
		kase.LeadAttorneyID,
		kase.AssignedLawyerIDs,
		kase.Title,
		kase.Description,
		kase.Status,
		kase.Priority,
		kase.OpenedByID,
	).Scan(&kase.ID, &kase.CreatedAt, &kase.UpdatedAt)
}

func (r *caseRepository) Update(ctx context.Context, kase *domain.Case) error {
	const query = `
        UPDATE cases SET lead_attorney_id=$1, assigned_lawyer_ids=$2, title=$3, description=$4,
            status=$5, priority=$6, result=$7, closed_at=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		kase.LeadAttorneyID,
		kase.AssignedLawyerIDs,
		kase.Title,
		kase.Description,
		kase.Status,
		kase.Priority,
		kase.Result,
		kase.ClosedAt,
		kase.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *caseRepository) GetByID(ctx context.Context, id string) (*domain.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE id=$1`
	var kase domain.Case
	if err := r.pool.QueryRow(ctx, query, id).Scan(r.scanTargets(&kase)...); err != nil {
		return nil, err
	}
	return &kase, nil
}

func (r *caseRepository) GetByCaseNumber(ctx context.Context, guildID, caseNumber string) (*domain.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE guild_id=$1 AND case_number=$2`
	var kase domain.Case
	if err := r.pool.QueryRow(ctx, query, guildID, caseNumber).Scan(r.scanTargets(&kase)...); err != nil {
		return nil, err
	}
	return &kase, nil
}

func (r *caseRepository) scanTargets(kase *domain.Case) []any {
	return []any{
		&kase.ID,
		&kase.GuildID,
		&kase.CaseNumber,
		&kase.ChannelName,
		&kase.ClientID,
		&kase.LeadAttorneyID,
		&kase.AssignedLawyerIDs,
		&kase.Title,
		&kase.Description,
		&kase.Status,
		&kase.Priority,
		&kase.Result,
		&kase.OpenedByID,
		&kase.CreatedAt,
		&kase.UpdatedAt,
		&kase.ClosedAt,
	}
}

func (r *caseRepository) ListWithFilter(ctx context.Context, filter CaseFilter) ([]domain.Case, error) {
	base := `SELECT ` + caseColumns + ` FROM cases`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.GuildID != nil {
		args = append(args, *filter.GuildID)
		clauses = append(clauses, fmt.Sprintf("guild_id=$%d", len(args)))
	}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		clauses = append(clauses, fmt.Sprintf("client_id=$%d", len(args)))
	}
	if filter.LawyerID != nil {
		args = append(args, *filter.LawyerID)
		clauses = append(clauses, fmt.Sprintf("(lead_attorney_id=$%d OR $%d = ANY(assigned_lawyer_ids))", len(args), len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(case_number) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Case
	for rows.Next() {
		var kase domain.Case
		if err := rows.Scan(r.scanTargets(&kase)...); err != nil {
			return nil, err
		}
		result = append(result, kase)
	}
	return result, rows.Err()
}
