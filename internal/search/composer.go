package search

import (
	"context"
	"fmt"

	"taxonomy-indexer/internal/pkg/logging"
	"taxonomy-indexer/internal/repository"
)

// SnapshotContext holds the read-only lookup tables shared by every page of
// one assembly run. Built exactly once up front so the pairwise similarity
// cost is paid once per run, never per page.
type SnapshotContext struct {
	SimilarJobs              map[string][]string
	IndustrySkills           map[string][]string
	JobsHavingJobSkills      map[int64]struct{}
	JobsHavingIndustrySkills map[int64]struct{}
	AllowlistedJobs          map[int64]struct{}
}

// Composer turns one job row plus the shared snapshot context into a
// denormalized search record. It reads skill, posting and industry rows for
// the job but never mutates the context.
type Composer struct {
	jobSkills  repository.JobSkillRepository
	postings   repository.JobPostingRepository
	industries repository.IndustryRepository
	log        *logging.Logger
}

func NewComposer(
	jobSkills repository.JobSkillRepository,
	postings repository.JobPostingRepository,
	industries repository.IndustryRepository,
	log *logging.Logger,
) *Composer {
	if log == nil {
		log = logging.NewNop()
	}
	return &Composer{jobSkills: jobSkills, postings: postings, industries: industries, log: log}
}

func (c *Composer) Compose(ctx context.Context, job repository.Job, sc *SnapshotContext) (JobRecord, error) {
	skills, err := c.composeSkills(ctx, job)
	if err != nil {
		return JobRecord{}, err
	}

	postingRows, err := c.postings.ListByJobID(ctx, job.ID, EmbeddedObjectCap)
	if err != nil {
		return JobRecord{}, fmt.Errorf("job %d: list postings: %w", job.ID, err)
	}
	postings := make([]JobPostingDetail, 0, len(postingRows))
	for _, p := range postingRows {
		postings = append(postings, JobPostingDetail{
			JobID:                 p.JobID,
			MedianSalary:          p.MedianSalary,
			MedianPostingDuration: p.MedianPostingDuration,
			UniquePostings:        p.UniquePostings,
			UniqueCompanies:       p.UniqueCompanies,
		})
	}

	industryNames, err := c.industries.ListIndustryNamesByJobID(ctx, job.ID)
	if err != nil {
		return JobRecord{}, fmt.Errorf("job %d: list industries: %w", job.ID, err)
	}
	industries := make([]IndustryDetail, 0, len(industryNames))
	for _, name := range industryNames {
		industrySkills := sc.IndustrySkills[name]
		if industrySkills == nil {
			industrySkills = []string{}
		}
		industries = append(industries, IndustryDetail{Name: name, Skills: industrySkills})
	}

	similar := sc.SimilarJobs[job.Name]
	if similar == nil {
		similar = []string{}
	}

	jobSources := make([]string, 0, 2)
	if _, ok := sc.JobsHavingJobSkills[job.ID]; ok {
		jobSources = append(jobSources, JobSourceJobSkill)
	}
	if _, ok := sc.JobsHavingIndustrySkills[job.ID]; ok {
		jobSources = append(jobSources, JobSourceIndustry)
	}

	_, allowlisted := sc.AllowlistedJobs[job.ID]

	return JobRecord{
		ObjectID:      ObjectIDForJob(job.ExternalID),
		ID:            job.ID,
		ExternalID:    job.ExternalID,
		Name:          job.Name,
		Description:   job.Description,
		Skills:        skills,
		JobPostings:   postings,
		IndustryNames: industryNames,
		Industries:    industries,
		SimilarJobs:   similar,
		B2COptIn:      allowlisted,
		JobSources:    jobSources,
	}, nil
}

func (c *Composer) composeSkills(ctx context.Context, job repository.Job) ([]SkillDetail, error) {
	rows, err := c.jobSkills.ListByJobID(ctx, job.ID, EmbeddedObjectCap)
	if err != nil {
		return nil, fmt.Errorf("job %d: list skills: %w", job.ID, err)
	}

	skills := make([]SkillDetail, 0, len(rows))
	for _, s := range rows {
		// One bad row must not block the snapshot: skip and keep going.
		if s.Name == "" {
			c.log.Warn("skipping skill row without a name", "job_id", job.ID, "skill_external_id", s.ExternalID)
			continue
		}
		skills = append(skills, SkillDetail{
			Significance:   s.Significance,
			UniquePostings: s.UniquePostings,
			ExternalID:     s.ExternalID,
			Name:           s.Name,
			Description:    s.Description,
			InfoURL:        s.InfoURL,
			TypeID:         s.TypeID,
			TypeName:       s.TypeName,
		})
	}
	return skills, nil
}
