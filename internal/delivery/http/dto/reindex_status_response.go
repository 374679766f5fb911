package dto

import (
	"time"

	"taxonomy-indexer/internal/usecase"
)

type ReindexStatusResponse struct {
	RunID       string     `json:"run_id"`
	State       string     `json:"state"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	JobsIndexed int        `json:"jobs_indexed"`
	Pages       int        `json:"pages"`
	Error       string     `json:"error,omitempty"`
}

func NewReindexStatusResponse(st usecase.RunStatus) ReindexStatusResponse {
	return ReindexStatusResponse{
		RunID:       st.RunID,
		State:       st.State,
		StartedAt:   st.StartedAt,
		FinishedAt:  st.FinishedAt,
		JobsIndexed: st.JobsIndexed,
		Pages:       st.Pages,
		Error:       st.Error,
	}
}
