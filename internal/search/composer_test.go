package search

import (
	"context"
	"fmt"
	"testing"

	"taxonomy-indexer/internal/repository"

	"github.com/stretchr/testify/require"
)

type fakeJobSkillRepo struct {
	byJob map[int64][]repository.JobSkillDetail
	err   error
}

func (f fakeJobSkillRepo) ListSkillProfiles(context.Context) ([]repository.JobSkillProfile, error) {
	return nil, nil
}

func (f fakeJobSkillRepo) ListByJobID(_ context.Context, jobID int64, limit int) ([]repository.JobSkillDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	rows := f.byJob[jobID]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

type fakePostingRepo struct {
	byJob map[int64][]repository.JobPosting
}

func (f fakePostingRepo) ListByJobID(_ context.Context, jobID int64, limit int) ([]repository.JobPosting, error) {
	rows := f.byJob[jobID]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

type fakeIndustryRepo struct {
	namesByJob map[int64][]string
	rows       []repository.IndustrySkillRow
}

func (f fakeIndustryRepo) ListIndustryNamesByJobID(_ context.Context, jobID int64) ([]string, error) {
	names := f.namesByJob[jobID]
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (f fakeIndustryRepo) ListSkillSignificances(context.Context) ([]repository.IndustrySkillRow, error) {
	return f.rows, nil
}

func emptyContext() *SnapshotContext {
	return &SnapshotContext{
		SimilarJobs:              map[string][]string{},
		IndustrySkills:           map[string][]string{},
		JobsHavingJobSkills:      map[int64]struct{}{},
		JobsHavingIndustrySkills: map[int64]struct{}{},
		AllowlistedJobs:          map[int64]struct{}{},
	}
}

func TestCompose_FullRecord(t *testing.T) {
	job := repository.Job{ID: 7, ExternalID: "ET3B93055220D592C8", Name: "Data Engineer", Description: "builds pipelines"}

	sc := emptyContext()
	sc.SimilarJobs["Data Engineer"] = []string{"Data Analyst", "ML Engineer"}
	sc.IndustrySkills["mining"] = []string{"drilling", "sql"}
	sc.JobsHavingJobSkills[7] = struct{}{}
	sc.JobsHavingIndustrySkills[7] = struct{}{}
	sc.AllowlistedJobs[7] = struct{}{}

	c := NewComposer(
		fakeJobSkillRepo{byJob: map[int64][]repository.JobSkillDetail{
			7: {{Name: "SQL", ExternalID: "KS123", Significance: 4.2, UniquePostings: 101}},
		}},
		fakePostingRepo{byJob: map[int64][]repository.JobPosting{
			7: {{JobID: 7, MedianSalary: 95000, MedianPostingDuration: 22, UniquePostings: 14, UniqueCompanies: 9}},
		}},
		fakeIndustryRepo{namesByJob: map[int64][]string{7: {"mining"}}},
		nil,
	)

	rec, err := c.Compose(context.Background(), job, sc)
	require.NoError(t, err)

	require.Equal(t, "job-ET3B93055220D592C8", rec.ObjectID)
	require.Equal(t, int64(7), rec.ID)
	require.Equal(t, []string{"Data Analyst", "ML Engineer"}, rec.SimilarJobs)
	require.Equal(t, []string{"mining"}, rec.IndustryNames)
	require.Equal(t, []IndustryDetail{{Name: "mining", Skills: []string{"drilling", "sql"}}}, rec.Industries)
	require.Equal(t, []string{JobSourceJobSkill, JobSourceIndustry}, rec.JobSources)
	require.True(t, rec.B2COptIn)
	require.Len(t, rec.Skills, 1)
	require.Equal(t, "SQL", rec.Skills[0].Name)
	require.Len(t, rec.JobPostings, 1)
	require.Equal(t, 95000.0, rec.JobPostings[0].MedianSalary)
}

func TestCompose_EmbeddingCaps(t *testing.T) {
	skills := make([]repository.JobSkillDetail, 0, 25)
	postings := make([]repository.JobPosting, 0, 25)
	for i := 0; i < 25; i++ {
		skills = append(skills, repository.JobSkillDetail{Name: fmt.Sprintf("skill-%d", i)})
		postings = append(postings, repository.JobPosting{JobID: 1, UniquePostings: i})
	}

	c := NewComposer(
		fakeJobSkillRepo{byJob: map[int64][]repository.JobSkillDetail{1: skills}},
		fakePostingRepo{byJob: map[int64][]repository.JobPosting{1: postings}},
		fakeIndustryRepo{},
		nil,
	)

	rec, err := c.Compose(context.Background(), repository.Job{ID: 1, ExternalID: "X", Name: "Capped"}, emptyContext())
	require.NoError(t, err)

	require.Len(t, rec.Skills, EmbeddedObjectCap)
	require.Len(t, rec.JobPostings, EmbeddedObjectCap)
}

func TestCompose_SkipsNamelessSkillRows(t *testing.T) {
	c := NewComposer(
		fakeJobSkillRepo{byJob: map[int64][]repository.JobSkillDetail{
			3: {{Name: "Go"}, {Name: "", ExternalID: "KS999"}, {Name: "SQL"}},
		}},
		fakePostingRepo{},
		fakeIndustryRepo{},
		nil,
	)

	rec, err := c.Compose(context.Background(), repository.Job{ID: 3, ExternalID: "J3", Name: "Tolerant"}, emptyContext())
	require.NoError(t, err)

	require.Len(t, rec.Skills, 2)
	require.Equal(t, "Go", rec.Skills[0].Name)
	require.Equal(t, "SQL", rec.Skills[1].Name)
}

func TestCompose_UnknownJobGetsEmptyLists(t *testing.T) {
	c := NewComposer(fakeJobSkillRepo{}, fakePostingRepo{}, fakeIndustryRepo{}, nil)

	rec, err := c.Compose(context.Background(), repository.Job{ID: 42, ExternalID: "J42", Name: "Lonely"}, emptyContext())
	require.NoError(t, err)

	// Empty, never nil: the index payload must carry [] not null.
	require.NotNil(t, rec.SimilarJobs)
	require.Empty(t, rec.SimilarJobs)
	require.NotNil(t, rec.Skills)
	require.NotNil(t, rec.JobPostings)
	require.NotNil(t, rec.IndustryNames)
	require.NotNil(t, rec.Industries)
	require.NotNil(t, rec.JobSources)
	require.False(t, rec.B2COptIn)
}

func TestCompose_SkillReadErrorCarriesJobID(t *testing.T) {
	c := NewComposer(
		fakeJobSkillRepo{err: fmt.Errorf("connection reset")},
		fakePostingRepo{},
		fakeIndustryRepo{},
		nil,
	)

	_, err := c.Compose(context.Background(), repository.Job{ID: 99, ExternalID: "J99", Name: "Broken"}, emptyContext())
	require.Error(t, err)
	require.Contains(t, err.Error(), "99")
}
