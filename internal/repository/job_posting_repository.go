package repository

import (
	"context"

	"taxonomy-indexer/internal/database"
)

// JobPosting carries the posting statistics embedded into a job search record.
type JobPosting struct {
	JobID                 int64
	MedianSalary          float64
	MedianPostingDuration int
	UniquePostings        int
	UniqueCompanies       int
}

type JobPostingRepository interface {
	// ListByJobID returns at most limit posting rows for one job.
	ListByJobID(ctx context.Context, jobID int64, limit int) ([]JobPosting, error)
}

type PostgresJobPostingRepository struct {
	db database.DB
}

func NewPostgresJobPostingRepository(db database.DB) *PostgresJobPostingRepository {
	return &PostgresJobPostingRepository{db: db}
}

func (r *PostgresJobPostingRepository) ListByJobID(ctx context.Context, jobID int64, limit int) ([]JobPosting, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(ctx,
		`SELECT job_id, COALESCE(median_salary, 0), COALESCE(median_posting_duration, 0),
		        COALESCE(unique_postings, 0), COALESCE(unique_companies, 0)
		 FROM job_postings
		 WHERE job_id = $1
		 ORDER BY created_at ASC
		 LIMIT $2`,
		jobID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobPosting, 0, limit)
	for rows.Next() {
		var it JobPosting
		if err := rows.Scan(&it.JobID, &it.MedianSalary, &it.MedianPostingDuration, &it.UniquePostings, &it.UniqueCompanies); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
