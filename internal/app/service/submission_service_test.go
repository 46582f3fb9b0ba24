package service

import (
	"context"
	"testing"
	"time"

	"judge_gateway/internal/common"
	"judge_gateway/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSubmissionService(fj *fakeJudge, repo *fakeSubmissionRepo) *SubmissionService {
	return NewSubmissionService(repo, fj, time.Millisecond, 60, 1)
}

func TestSubmissionService_Submit_PollsUntilTerminalVerdict(t *testing.T) {
	t.Parallel()

	fj := newFakeJudge()
	fj.verdicts = []string{model.VerdictCompiling, model.VerdictCompiling, "accepted"}
	repo := newFakeSubmissionRepo()
	svc := newTestSubmissionService(fj, repo)

	result, err := svc.Submit(context.Background(), "a@x.com", SubmitRequest{
		ProblemID: "100",
		Source:    "print(1)",
	})
	require.NoError(t, err)
	assert.Equal(t, "accepted", result)

	// Two transient statuses then a terminal one: exactly 3 fetches.
	assert.Equal(t, 3, fj.getSubmissionCalls)

	// Exactly one record, created on the terminal transition.
	require.Len(t, repo.submissions, 1)
	rec := repo.submissions[0]
	assert.Equal(t, "900", rec.SubmissionID)
	assert.Equal(t, "100", rec.ProblemID)
	assert.Equal(t, "a@x.com", rec.UserEmail)
	assert.Equal(t, "accepted", rec.Result)
}

func TestSubmissionService_Submit_Validation(t *testing.T) {
	t.Parallel()

	fj := newFakeJudge()
	repo := newFakeSubmissionRepo()
	svc := newTestSubmissionService(fj, repo)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "a@x.com", SubmitRequest{Source: "print(1)"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Submit(ctx, "a@x.com", SubmitRequest{ProblemID: "100"})
	assert.ErrorIs(t, err, common.ErrValidation)

	assert.Zero(t, fj.createSubmissionCalls)
	assert.Empty(t, repo.submissions)
}

func TestSubmissionService_Submit_DefaultCompiler(t *testing.T) {
	t.Parallel()

	fj := newFakeJudge()
	repo := newFakeSubmissionRepo()
	svc := newTestSubmissionService(fj, repo)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "a@x.com", SubmitRequest{ProblemID: "100", Source: "s"})
	require.NoError(t, err)
	assert.Equal(t, 1, fj.lastCompilerID)

	fj2 := newFakeJudge()
	svc2 := newTestSubmissionService(fj2, newFakeSubmissionRepo())
	_, err = svc2.Submit(ctx, "a@x.com", SubmitRequest{ProblemID: "100", Source: "s", CompilerID: 11})
	require.NoError(t, err)
	assert.Equal(t, 11, fj2.lastCompilerID)
}

func TestSubmissionService_Submit_PollBudgetExhausted(t *testing.T) {
	t.Parallel()

	fj := newFakeJudge()
	fj.verdicts = []string{model.VerdictCompiling} // never leaves compiling
	repo := newFakeSubmissionRepo()
	svc := NewSubmissionService(repo, fj, time.Millisecond, 3, 1)

	_, err := svc.Submit(context.Background(), "a@x.com", SubmitRequest{ProblemID: "100", Source: "s"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrPollTimeout)
	assert.Equal(t, 3, fj.getSubmissionCalls)
	assert.Empty(t, repo.submissions)
}

func TestSubmissionService_Submit_CallerCancellationStopsPolling(t *testing.T) {
	t.Parallel()

	fj := newFakeJudge()
	fj.verdicts = []string{model.VerdictCompiling}
	repo := newFakeSubmissionRepo()
	svc := NewSubmissionService(repo, fj, time.Hour, 60, 1) // would wait forever without cancellation

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := svc.Submit(ctx, "a@x.com", SubmitRequest{ProblemID: "100", Source: "s"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, repo.submissions)
}

func TestSubmissionService_Submit_EmptyVerdictRecordedAsDefault(t *testing.T) {
	t.Parallel()

	fj := newFakeJudge()
	fj.verdicts = []string{""}
	repo := newFakeSubmissionRepo()
	svc := newTestSubmissionService(fj, repo)

	result, err := svc.Submit(context.Background(), "a@x.com", SubmitRequest{ProblemID: "100", Source: "s"})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultResult, result)
	require.Len(t, repo.submissions, 1)
	assert.Equal(t, model.DefaultResult, repo.submissions[0].Result)
}

func TestSubmissionService_Listings(t *testing.T) {
	t.Parallel()

	repo := newFakeSubmissionRepo()
	svc := newTestSubmissionService(newFakeJudge(), repo)
	ctx := context.Background()

	seed := []model.Submission{
		{ID: "1", SubmissionID: "901", ProblemID: "100", UserEmail: "a@x.com", Result: "accepted"},
		{ID: "2", SubmissionID: "902", ProblemID: "100", UserEmail: "b@x.com", Result: "wrong answer"},
		{ID: "3", SubmissionID: "903", ProblemID: "200", UserEmail: "a@x.com", Result: "accepted"},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byUser, err := svc.ListByUser(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byProblem, err := svc.ListByProblem(ctx, "100")
	require.NoError(t, err)
	assert.Len(t, byProblem, 2)

	_, err = svc.ListByUser(ctx, "")
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = svc.ListByProblem(ctx, "")
	assert.ErrorIs(t, err, common.ErrValidation)
}
