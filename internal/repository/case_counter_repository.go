package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CaseCounterRepository issues the per-guild, per-year case sequence. The
// increment runs as a single UPSERT so concurrent case creation cannot
// observe duplicate counts.
type CaseCounterRepository interface {
	NextSequence(ctx context.Context, guildID string, year int) (int, error)
}

type caseCounterRepository struct {
	pool *pgxpool.Pool
}

// NewCaseCounterRepository instantiates the repository.
func NewCaseCounterRepository(pool *pgxpool.Pool) CaseCounterRepository {
	return &caseCounterRepository{pool: pool}
}

func (r *caseCounterRepository) NextSequence(ctx context.Context, guildID string, year int) (int, error) {
	const query = `
        INSERT INTO case_counters (guild_id, year, counter)
        VALUES ($1,$2,1)
        ON CONFLICT (guild_id, year) DO UPDATE SET counter = case_counters.counter + 1
        RETURNING counter`
	var counter int
	if err := r.pool.QueryRow(ctx, query, guildID, year).Scan(&counter); err != nil {
		return 0, err
	}
	return counter, nil
}
