package repository

import (
	"context"

	"taxonomy-indexer/internal/database"
)

// JobSkillProfile is a job name with its full skill-name list, used as input
// to the similarity computation.
type JobSkillProfile struct {
	JobName    string
	SkillNames []string
}

// JobSkillDetail is one job-skill association row joined with its skill
// metadata, embedded into the job search record.
type JobSkillDetail struct {
	Significance   float64
	UniquePostings float64
	ExternalID     string
	Name           string
	Description    string
	InfoURL        string
	TypeID         string
	TypeName       string
}

type JobSkillRepository interface {
	// ListSkillProfiles returns one profile per named job, in job creation
	// order. Jobs without skills get an empty profile; the similarity engine
	// relies on this enumeration order for its tie-break.
	ListSkillProfiles(ctx context.Context) ([]JobSkillProfile, error)

	// ListByJobID returns at most limit skill detail rows for one job.
	ListByJobID(ctx context.Context, jobID int64, limit int) ([]JobSkillDetail, error)
}

type PostgresJobSkillRepository struct {
	db database.DB
}

func NewPostgresJobSkillRepository(db database.DB) *PostgresJobSkillRepository {
	return &PostgresJobSkillRepository{db: db}
}

func (r *PostgresJobSkillRepository) ListSkillProfiles(ctx context.Context) ([]JobSkillProfile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT j.name, COALESCE(s.name, '')
		 FROM jobs j
		 LEFT JOIN job_skills js ON js.job_id = j.id
		 LEFT JOIN skills s ON s.id = js.skill_id
		 WHERE j.name IS NOT NULL AND BTRIM(j.name) <> ''
		 ORDER BY j.created_at ASC, j.id ASC, js.created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobSkillProfile, 0)
	var current *JobSkillProfile
	for rows.Next() {
		var jobName, skillName string
		if err := rows.Scan(&jobName, &skillName); err != nil {
			return nil, err
		}
		if current == nil || current.JobName != jobName {
			out = append(out, JobSkillProfile{JobName: jobName, SkillNames: []string{}})
			current = &out[len(out)-1]
		}
		if skillName != "" {
			current.SkillNames = append(current.SkillNames, skillName)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobSkillRepository) ListByJobID(ctx context.Context, jobID int64, limit int) ([]JobSkillDetail, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(ctx,
		`SELECT COALESCE(js.significance, 0), COALESCE(js.unique_postings, 0),
		        COALESCE(s.external_id, ''), COALESCE(s.name, ''), COALESCE(s.description, ''),
		        COALESCE(s.info_url, ''), COALESCE(s.type_id, ''), COALESCE(s.type_name, '')
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = $1
		 ORDER BY js.created_at ASC
		 LIMIT $2`,
		jobID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobSkillDetail, 0, limit)
	for rows.Next() {
		var it JobSkillDetail
		if err := rows.Scan(
			&it.Significance, &it.UniquePostings,
			&it.ExternalID, &it.Name, &it.Description,
			&it.InfoURL, &it.TypeID, &it.TypeName,
		); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
