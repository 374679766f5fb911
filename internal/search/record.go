package search

import "fmt"

// EmbeddedObjectCap is the maximum number of nested objects embedded inside a
// job record, bounding record size for the index provider.
const EmbeddedObjectCap = 20

// Job source markers, recording why a job exists in the taxonomy.
const (
	JobSourceJobSkill = "job_skill"
	JobSourceIndustry = "industry"
)

// SkillDetail is one skill embedded in a job record, together with the fields
// describing the job-skill relationship.
type SkillDetail struct {
	Significance   float64 `json:"significance"`
	UniquePostings float64 `json:"unique_postings"`
	ExternalID     string  `json:"external_id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	InfoURL        string  `json:"info_url"`
	TypeID         string  `json:"type_id"`
	TypeName       string  `json:"type_name"`
}

// JobPostingDetail is one posting-statistics row embedded in a job record.
type JobPostingDetail struct {
	JobID                 int64   `json:"job_id"`
	MedianSalary          float64 `json:"median_salary"`
	MedianPostingDuration int     `json:"median_posting_duration"`
	UniquePostings        int     `json:"unique_postings"`
	UniqueCompanies       int     `json:"unique_companies"`
}

// IndustryDetail pairs an industry name with its aggregated top skills.
type IndustryDetail struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// JobRecord is the denormalized unit published to the search index. ObjectID
// follows the index provider's identity semantics.
type JobRecord struct {
	ObjectID      string             `json:"objectID"`
	ID            int64              `json:"id"`
	ExternalID    string             `json:"external_id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Skills        []SkillDetail      `json:"skills"`
	JobPostings   []JobPostingDetail `json:"job_postings"`
	IndustryNames []string           `json:"industry_names"`
	Industries    []IndustryDetail   `json:"industries"`
	SimilarJobs   []string           `json:"similar_jobs"`
	B2COptIn      bool               `json:"b2c_opt_in"`
	JobSources    []string           `json:"job_sources"`
}

// ObjectIDForJob builds the stable per-job identity used by the index.
func ObjectIDForJob(externalID string) string {
	return fmt.Sprintf("job-%s", externalID)
}
