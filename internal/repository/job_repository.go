package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lawfirm-service/internal/domain"
)

// JobRepository handles persistence for postings and applications.
type JobRepository interface {
	CreatePosting(ctx context.Context, posting *domain.JobPosting) error
	UpdatePosting(ctx context.Context, posting *domain.JobPosting) error
	GetPostingByID(ctx context.Context, id string) (*domain.JobPosting, error)
	ListPostings(ctx context.Context, guildID string, includeClosed bool) ([]domain.JobPosting, error)

	CreateApplication(ctx context.Context, application *domain.JobApplication) error
	UpdateApplication(ctx context.Context, application *domain.JobApplication) error
	GetApplicationByID(ctx context.Context, id string) (*domain.JobApplication, error)
	GetPendingApplication(ctx context.Context, postingID, applicantUserID string) (*domain.JobApplication, error)
	ListApplicationsByPosting(ctx context.Context, postingID string) ([]domain.JobApplication, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates the repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const postingColumns = `id, guild_id, title, description, role, status, posted_by, created_at, updated_at, closed_at`

func (r *jobRepository) CreatePosting(ctx context.Context, posting *domain.JobPosting) error {
	const query = `
        INSERT INTO job_postings (guild_id, title, description, role, status, posted_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		posting.GuildID,
		posting.Title,
		posting.Description,
		posting.Role,
		posting.Status,
		posting.PostedByID,
	).Scan(&posting.ID, &posting.CreatedAt, &posting.UpdatedAt)
}

func (r *jobRepository) UpdatePosting(ctx context.Context, posting *domain.JobPosting) error {
	const query = `
        UPDATE job_postings SET title=$1, description=$2, role=$3, status=$4, closed_at=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		posting.Title,
		posting.Description,
		posting.Role,
		posting.Status,
		posting.ClosedAt,
		posting.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) GetPostingByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	query := `SELECT ` + postingColumns + ` FROM job_postings WHERE id=$1`
	var posting domain.JobPosting
	if err := r.pool.QueryRow(ctx, query, id).Scan(r.postingTargets(&posting)...); err != nil {
		return nil, err
	}
	return &posting, nil
}

func (r *jobRepository) ListPostings(ctx context.Context, guildID string, includeClosed bool) ([]domain.JobPosting, error) {
	query := `SELECT ` + postingColumns + ` FROM job_postings WHERE guild_id=$1`
	if !includeClosed {
		query += fmt.Sprintf(" AND status='%s'", domain.PostingStatusOpen)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.JobPosting
	for rows.Next() {
		var posting domain.JobPosting
		if err := rows.Scan(r.postingTargets(&posting)...); err != nil {
			return nil, err
		}
		result = append(result, posting)
	}
	return result, rows.Err()
}

func (r *jobRepository) postingTargets(posting *domain.JobPosting) []any {
	return []any{
		&posting.ID,
		&posting.GuildID,
		&posting.Title,
		&posting.Description,
		&posting.Role,
		&posting.Status,
		&posting.PostedByID,
		&posting.CreatedAt,
		&posting.UpdatedAt,
		&posting.ClosedAt,
	}
}

const applicationColumns = `id, guild_id, posting_id, applicant_user_id, applicant_username, applicant_email,
       statement, status, decided_by, decided_at, created_at, updated_at`

func (r *jobRepository) CreateApplication(ctx context.Context, application *domain.JobApplication) error {
	const query = `
        INSERT INTO job_applications (guild_id, posting_id, applicant_user_id, applicant_username, applicant_email, statement, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		application.GuildID,
		application.PostingID,
		application.ApplicantUserID,
		application.ApplicantUsername,
		application.ApplicantEmail,
		application.Statement,
		application.Status,
	).Scan(&application.ID, &application.CreatedAt, &application.UpdatedAt)
}

func (r *jobRepository) UpdateApplication(ctx context.Context, application *domain.JobApplication) error {
	const query = `
        UPDATE job_applications SET statement=$1, status=$2, decided_by=$3, decided_at=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		application.Statement,
		application.Status,
		application.DecidedBy,
		application.DecidedAt,
		application.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) GetApplicationByID(ctx context.Context, id string) (*domain.JobApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM job_applications WHERE id=$1`
	var application domain.JobApplication
	if err := r.pool.QueryRow(ctx, query, id).Scan(r.applicationTargets(&application)...); err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *jobRepository) GetPendingApplication(ctx context.Context, postingID, applicantUserID string) (*domain.JobApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM job_applications
        WHERE posting_id=$1 AND applicant_user_id=$2 AND status='pending'`
	var application domain.JobApplication
	if err := r.pool.QueryRow(ctx, query, postingID, applicantUserID).Scan(r.applicationTargets(&application)...); err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *jobRepository) ListApplicationsByPosting(ctx context.Context, postingID string) ([]domain.JobApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM job_applications WHERE posting_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, postingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.JobApplication
	for rows.Next() {
		var application domain.JobApplication
		if err := rows.Scan(r.applicationTargets(&application)...); err != nil {
			return nil, err
		}
		result = append(result, application)
	}
	return result, rows.Err()
}

func (r *jobRepository) applicationTargets(application *domain.JobApplication) []any {
	return []any{
		&application.ID,
		&application.GuildID,
		&application.PostingID,
		&application.ApplicantUserID,
		&application.ApplicantUsername,
		&application.ApplicantEmail,
		&application.Statement,
		&application.Status,
		&application.DecidedBy,
		&application.DecidedAt,
		&application.CreatedAt,
		&application.UpdatedAt,
	}
}
