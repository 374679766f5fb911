package pipeline

import (
	"context"
	"fmt"
	"time"

	"taxonomy-indexer/internal/domain/industry"
	"taxonomy-indexer/internal/domain/similarity"
	"taxonomy-indexer/internal/pkg/logging"
	"taxonomy-indexer/internal/repository"
	"taxonomy-indexer/internal/search"
	"taxonomy-indexer/internal/searchindex"
)

// DefaultJobsPageSize is the assembly window size used when none is
// configured. Any positive value produces the same snapshot; this only trades
// memory per store read against the number of reads.
const DefaultJobsPageSize = 500

// ReindexPipeline rebuilds the full job snapshot and publishes it to the
// search index in one atomic replace. A run either completes and publishes a
// full snapshot or fails and publishes nothing; there is no partial state.
type ReindexPipeline struct {
	jobs       repository.JobRepository
	jobSkills  repository.JobSkillRepository
	industries repository.IndustryRepository
	composer   *search.Composer
	index      searchindex.Index

	log      *logging.Logger
	pageSize int
}

type Summary struct {
	JobsIndexed int
	Pages       int
	Duration    time.Duration
}

func NewReindexPipeline(
	jobs repository.JobRepository,
	jobSkills repository.JobSkillRepository,
	industries repository.IndustryRepository,
	composer *search.Composer,
	index searchindex.Index,
	log *logging.Logger,
	pageSize int,
) *ReindexPipeline {
	if log == nil {
		log = logging.NewNop()
	}
	if pageSize <= 0 {
		pageSize = DefaultJobsPageSize
	}
	return &ReindexPipeline{
		jobs:       jobs,
		jobSkills:  jobSkills,
		industries: industries,
		composer:   composer,
		index:      index,
		log:        log,
		pageSize:   pageSize,
	}
}

func (p *ReindexPipeline) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	p.log.Info("pipeline started", "pipeline", "reindex", "page_size", p.pageSize)

	// Settings first: idempotent, and it keeps the index configuration in
	// code even when the publish below fails.
	if err := p.index.ApplySettings(ctx); err != nil {
		return Summary{}, fmt.Errorf("apply index settings: %w", err)
	}

	sc, err := p.buildSnapshotContext(ctx)
	if err != nil {
		return Summary{}, err
	}

	snapshot, pages, err := p.assembleSnapshot(ctx, sc)
	if err != nil {
		return Summary{}, err
	}

	// One call for the whole snapshot. Pushing pages incrementally instead
	// would make readers see a mix of old and new records for the duration of
	// the run; the single replace keeps the swap atomic.
	p.log.Info("pipeline step started", "pipeline", "reindex", "step", "publish", "records", len(snapshot))
	if err := p.index.ReplaceAll(ctx, snapshot); err != nil {
		return Summary{}, fmt.Errorf("replace index objects: %w", err)
	}

	sum := Summary{JobsIndexed: len(snapshot), Pages: pages, Duration: time.Since(start)}
	p.log.Info("pipeline finished", "pipeline", "reindex", "jobs_indexed", sum.JobsIndexed, "pages", sum.Pages, "duration", sum.Duration)
	return sum, nil
}

// buildSnapshotContext computes the shared read-only lookup tables exactly
// once per run. Every page of the assembly below references the same maps;
// recomputing them per page would be quadratic-times-pages and could leak a
// page-scoped similarity view into the records.
func (p *ReindexPipeline) buildSnapshotContext(ctx context.Context) (*search.SnapshotContext, error) {
	stepStart := time.Now()
	p.log.Info("pipeline step started", "pipeline", "reindex", "step", "similarity")

	rawProfiles, err := p.jobSkills.ListSkillProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list job skill profiles: %w", err)
	}
	profiles := make([]similarity.JobSkillProfile, 0, len(rawProfiles))
	for _, rp := range rawProfiles {
		profiles = append(profiles, similarity.JobSkillProfile{Name: rp.JobName, Skills: rp.SkillNames})
	}
	similarJobs := similarity.Recommendations(profiles)
	p.log.Info("pipeline step finished", "pipeline", "reindex", "step", "similarity", "jobs", len(profiles), "duration", time.Since(stepStart))

	stepStart = time.Now()
	p.log.Info("pipeline step started", "pipeline", "reindex", "step", "industry_aggregation")
	rows, err := p.industries.ListSkillSignificances(ctx)
	if err != nil {
		return nil, fmt.Errorf("list industry skill significances: %w", err)
	}
	industryRows := make([]industry.SkillSignificance, 0, len(rows))
	for _, r := range rows {
		industryRows = append(industryRows, industry.SkillSignificance{
			Industry:     r.IndustryName,
			Skill:        r.SkillName,
			Significance: r.Significance,
		})
	}
	industrySkills := industry.AggregateSkills(industryRows, search.EmbeddedObjectCap)
	p.log.Info("pipeline step finished", "pipeline", "reindex", "step", "industry_aggregation", "industries", len(industrySkills), "duration", time.Since(stepStart))

	havingJobSkills, err := p.jobs.ListJobIDsHavingJobSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs having job skills: %w", err)
	}
	havingIndustrySkills, err := p.jobs.ListJobIDsHavingIndustrySkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs having industry skills: %w", err)
	}
	allowlisted, err := p.jobs.ListAllowlistedJobIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list allowlisted jobs: %w", err)
	}

	return &search.SnapshotContext{
		SimilarJobs:              similarJobs,
		IndustrySkills:           industrySkills,
		JobsHavingJobSkills:      havingJobSkills,
		JobsHavingIndustrySkills: havingIndustrySkills,
		AllowlistedJobs:          allowlisted,
	}, nil
}

// assembleSnapshot walks the job set in fixed-size windows and concatenates
// the composed records. An empty first page means an empty snapshot, which is
// a valid outcome, not an error.
func (p *ReindexPipeline) assembleSnapshot(ctx context.Context, sc *search.SnapshotContext) ([]search.JobRecord, int, error) {
	stepStart := time.Now()
	total, err := p.jobs.CountJobs(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}
	p.log.Info("pipeline step started", "pipeline", "reindex", "step", "assembly", "jobs", total)

	snapshot := make([]search.JobRecord, 0, total)
	pages := 0
	for offset := 0; ; {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		page, err := p.jobs.ListJobsPage(ctx, p.pageSize, offset)
		if err != nil {
			return nil, 0, fmt.Errorf("list jobs page at offset %d: %w", offset, err)
		}
		if len(page) == 0 {
			break
		}
		pages++

		for _, job := range page {
			rec, err := p.composer.Compose(ctx, job, sc)
			if err != nil {
				return nil, 0, fmt.Errorf("compose record: %w", err)
			}
			snapshot = append(snapshot, rec)
		}

		offset += len(page)
	}

	p.log.Info("pipeline step finished", "pipeline", "reindex", "step", "assembly", "records", len(snapshot), "pages", pages, "duration", time.Since(stepStart))
	return snapshot, pages, nil
}
