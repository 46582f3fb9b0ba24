package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"judge_gateway/internal/common"
	"judge_gateway/internal/domain/model"
	"judge_gateway/internal/domain/repository"
	"judge_gateway/internal/platform/judge"

	"github.com/google/uuid"
)

// SubmissionService submits code to the remote judge and polls for a
// terminal verdict. Polling is bounded by MaxPolls and by the request
// context, so a dropped caller cancels the chain.
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	judge          judge.API

	PollInterval      time.Duration
	MaxPolls          int
	DefaultCompilerID int
}

func NewSubmissionService(
	subRepo repository.SubmissionRepository,
	judgeAPI judge.API,
	pollInterval time.Duration,
	maxPolls int,
	defaultCompilerID int,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo:    subRepo,
		judge:             judgeAPI,
		PollInterval:      pollInterval,
		MaxPolls:          maxPolls,
		DefaultCompilerID: defaultCompilerID,
	}
}

type SubmitRequest struct {
	ProblemID  string `json:"problemId"`
	Source     string `json:"source"`
	CompilerID int    `json:"compilerId,omitempty"`
}

// Submit sends the code to the judge and waits for a terminal verdict,
// persisting it exactly once. The returned string is the verdict name.
func (s *SubmissionService) Submit(ctx context.Context, userEmail string, req SubmitRequest) (string, error) {
	if req.ProblemID == "" || req.Source == "" {
		return "", fmt.Errorf("problemId and source are required: %w", common.ErrValidation)
	}
	compilerID := req.CompilerID
	if compilerID == 0 {
		compilerID = s.DefaultCompilerID
	}

	submissionID, err := s.judge.CreateSubmission(ctx, req.ProblemID, req.Source, compilerID)
	if err != nil {
		return "", upstream(err)
	}

	status, err := s.pollVerdict(ctx, submissionID)
	if err != nil {
		return "", err
	}

	record := &model.Submission{
		ID:           uuid.NewString(),
		SubmissionID: status.ID,
		ProblemID:    status.ProblemID,
		UserEmail:    userEmail,
		Result:       status.Status,
	}
	if record.Result == "" {
		record.Result = model.DefaultResult
	}
	if err := s.submissionRepo.Create(ctx, record); err != nil {
		return "", fmt.Errorf("failed to record submission %s: %w", status.ID, err)
	}

	log.Printf("Submission %s for problem %s finished: %s", status.ID, status.ProblemID, record.Result)
	return record.Result, nil
}

// pollVerdict fetches the submission status until it leaves the transient
// compiling state, waiting PollInterval between attempts.
func (s *SubmissionService) pollVerdict(ctx context.Context, submissionID string) (*judge.SubmissionStatus, error) {
	for attempt := 0; attempt < s.MaxPolls; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("caller went away while polling submission %s: %w", submissionID, ctx.Err())
			case <-time.After(s.PollInterval):
			}
		}

		status, err := s.judge.GetSubmission(ctx, submissionID)
		if err != nil {
			return nil, upstream(err)
		}
		if status.Status != model.VerdictCompiling {
			return status, nil
		}
	}
	return nil, fmt.Errorf("submission %s still compiling after %d polls: %w", submissionID, s.MaxPolls, common.ErrPollTimeout)
}

func (s *SubmissionService) ListAll(ctx context.Context) ([]model.Submission, error) {
	submissions, err := s.submissionRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

func (s *SubmissionService) ListByUser(ctx context.Context, email string) ([]model.Submission, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", common.ErrValidation)
	}
	submissions, err := s.submissionRepo.FindByUserEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions for %s: %w", email, err)
	}
	return submissions, nil
}

func (s *SubmissionService) ListByProblem(ctx context.Context, problemID string) ([]model.Submission, error) {
	if problemID == "" {
		return nil, fmt.Errorf("problemId is required: %w", common.ErrValidation)
	}
	submissions, err := s.submissionRepo.FindByProblemID(ctx, problemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions for problem %s: %w", problemID, err)
	}
	return submissions, nil
}
