package repository

import (
	"context"

	"taxonomy-indexer/internal/database"
)

// IndustrySkillRow is one industry-skill-job association with its
// provider-supplied significance weight.
type IndustrySkillRow struct {
	IndustryName string
	SkillName    string
	Significance float64
}

type IndustryRepository interface {
	// ListIndustryNamesByJobID returns the distinct industry names associated
	// with a job, sorted by name ascending.
	ListIndustryNamesByJobID(ctx context.Context, jobID int64) ([]string, error)

	// ListSkillSignificances returns every industry-skill-job association in
	// the store; the aggregation over it runs once per snapshot.
	ListSkillSignificances(ctx context.Context) ([]IndustrySkillRow, error)
}

type PostgresIndustryRepository struct {
	db database.DB
}

func NewPostgresIndustryRepository(db database.DB) *PostgresIndustryRepository {
	return &PostgresIndustryRepository{db: db}
}

func (r *PostgresIndustryRepository) ListIndustryNamesByJobID(ctx context.Context, jobID int64) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT i.name
		 FROM industry_job_skills ijs
		 JOIN industries i ON i.id = ijs.industry_id
		 WHERE ijs.job_id = $1
		 ORDER BY i.name ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresIndustryRepository) ListSkillSignificances(ctx context.Context) ([]IndustrySkillRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT i.name, COALESCE(s.name, ''), COALESCE(ijs.significance, 0)
		 FROM industry_job_skills ijs
		 JOIN industries i ON i.id = ijs.industry_id
		 JOIN skills s ON s.id = ijs.skill_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]IndustrySkillRow, 0)
	for rows.Next() {
		var it IndustrySkillRow
		if err := rows.Scan(&it.IndustryName, &it.SkillName, &it.Significance); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
