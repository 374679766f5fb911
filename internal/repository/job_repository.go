package repository

import (
	"context"

	"taxonomy-indexer/internal/database"
)

// Job is one row of the jobs table. Jobs without a name never reach the
// snapshot, so Name is guaranteed non-empty here.
type Job struct {
	ID          int64
	ExternalID  string
	Name        string
	Description string
}

type JobRepository interface {
	// ListJobsPage returns one assembly window of jobs ordered by creation
	// time ascending. An empty page means the walk is done.
	ListJobsPage(ctx context.Context, limit, offset int) ([]Job, error)
	CountJobs(ctx context.Context) (int, error)

	// Source sets for the job_sources record attribute; computed once per run
	// and shared across all pages.
	ListJobIDsHavingJobSkills(ctx context.Context) (map[int64]struct{}, error)
	ListJobIDsHavingIndustrySkills(ctx context.Context) (map[int64]struct{}, error)

	// ListAllowlistedJobIDs returns the jobs opted into the B2C catalog.
	ListAllowlistedJobIDs(ctx context.Context) (map[int64]struct{}, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) ListJobsPage(ctx context.Context, limit, offset int) ([]Job, error) {
	if limit <= 0 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, COALESCE(external_id, ''), name, COALESCE(description, '')
		 FROM jobs
		 WHERE name IS NOT NULL AND BTRIM(name) <> ''
		 ORDER BY created_at ASC, id ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Job, 0, limit)
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.ExternalID, &j.Name, &j.Description); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) CountJobs(ctx context.Context) (int, error) {
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(1) FROM jobs WHERE name IS NOT NULL AND BTRIM(name) <> ''`,
	)
	var c int
	if err := row.Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

func (r *PostgresJobRepository) ListJobIDsHavingJobSkills(ctx context.Context) (map[int64]struct{}, error) {
	return r.idSet(ctx, `SELECT DISTINCT job_id FROM job_skills`)
}

func (r *PostgresJobRepository) ListJobIDsHavingIndustrySkills(ctx context.Context) (map[int64]struct{}, error) {
	return r.idSet(ctx, `SELECT DISTINCT job_id FROM industry_job_skills`)
}

func (r *PostgresJobRepository) ListAllowlistedJobIDs(ctx context.Context) (map[int64]struct{}, error) {
	return r.idSet(ctx, `SELECT DISTINCT job_id FROM b2c_job_allowlist`)
}

func (r *PostgresJobRepository) idSet(ctx context.Context, query string) (map[int64]struct{}, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
