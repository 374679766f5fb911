package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"taxonomy-indexer/internal/pipeline"

	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	release chan struct{}
	summary pipeline.Summary
	err     error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{release: make(chan struct{})}
}

func (f *fakeRunner) Run(context.Context) (pipeline.Summary, error) {
	<-f.release
	return f.summary, f.err
}

func waitForState(t *testing.T, u *Reindexer, state string) RunStatus {
	t.Helper()
	var got RunStatus
	require.Eventually(t, func() bool {
		st, err := u.Status(context.Background())
		if err != nil {
			return false
		}
		got = st
		return got.State == state
	}, 2*time.Second, 5*time.Millisecond)
	return got
}

func TestTrigger_RejectsConcurrentRun(t *testing.T) {
	runner := newFakeRunner()
	u := NewReindexer(runner, nil, nil)

	first, err := u.Trigger(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateRunning, first.State)
	require.NotEmpty(t, first.RunID)

	_, err = u.Trigger(context.Background())
	require.ErrorIs(t, err, ErrReindexInProgress)

	close(runner.release)
	waitForState(t, u, StateSucceeded)

	// After completion a new run is accepted again.
	runner.release = make(chan struct{})
	close(runner.release)
	second, err := u.Trigger(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, first.RunID, second.RunID)
}

func TestRun_SuccessRecordsSummary(t *testing.T) {
	runner := newFakeRunner()
	runner.summary = pipeline.Summary{JobsIndexed: 1234, Pages: 3}
	u := NewReindexer(runner, nil, nil)

	started, err := u.Trigger(context.Background())
	require.NoError(t, err)

	close(runner.release)
	st := waitForState(t, u, StateSucceeded)

	require.Equal(t, started.RunID, st.RunID)
	require.Equal(t, 1234, st.JobsIndexed)
	require.Equal(t, 3, st.Pages)
	require.NotNil(t, st.FinishedAt)
	require.Empty(t, st.Error)
}

func TestRun_FailureRecordsError(t *testing.T) {
	runner := newFakeRunner()
	runner.err = errors.New("replace index objects: timeout")
	u := NewReindexer(runner, nil, nil)

	_, err := u.Trigger(context.Background())
	require.NoError(t, err)

	close(runner.release)
	st := waitForState(t, u, StateFailed)

	require.Contains(t, st.Error, "timeout")
	require.Zero(t, st.JobsIndexed)
}

func TestStatus_NoRunsYet(t *testing.T) {
	u := NewReindexer(newFakeRunner(), nil, nil)

	_, err := u.Status(context.Background())
	require.ErrorIs(t, err, ErrNoRunsYet)
}
