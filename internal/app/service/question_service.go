package service

import (
	"context"
	"encoding/json"
	"fmt"

	"judge_gateway/internal/common"
	"judge_gateway/internal/domain/model"
	"judge_gateway/internal/domain/repository"
	"judge_gateway/internal/platform/judge"

	"github.com/gosimple/slug"
)

// QuestionService proxies question and test-case management to the remote
// judge, keeping a local mirror of the problem ids uploaded through here.
type QuestionService struct {
	questionRepo repository.QuestionRepository
	judge        judge.API
}

func NewQuestionService(questionRepo repository.QuestionRepository, judgeAPI judge.API) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, judge: judgeAPI}
}

type AddQuestionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateQuestionRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type DeleteQuestionRequest struct {
	ID string `json:"id"`
}

type TestCaseRequest struct {
	ID     string `json:"id"` // problem id
	Number int    `json:"number,omitempty"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

func upstream(err error) error {
	return fmt.Errorf("remote judge call failed: %w: %w", common.ErrUpstream, err)
}

// ListAll returns every problem visible in the judge, uninterpreted.
func (s *QuestionService) ListAll(ctx context.Context) (json.RawMessage, error) {
	raw, err := s.judge.ListProblems(ctx)
	if err != nil {
		return nil, upstream(err)
	}
	return raw, nil
}

// ListUploaded cross-references the local mirror against the judge and
// returns the current remote state of every mirrored problem.
func (s *QuestionService) ListUploaded(ctx context.Context) ([]json.RawMessage, error) {
	questions, err := s.questionRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list mirrored questions: %w", err)
	}

	uploaded := make([]json.RawMessage, 0, len(questions))
	for _, q := range questions {
		problem, err := s.judge.GetProblem(ctx, q.ID)
		if err != nil {
			return nil, upstream(err)
		}
		uploaded = append(uploaded, problem.Raw)
	}
	return uploaded, nil
}

// Add creates the problem in the judge and mirrors its id locally.
// No remote call is made when validation fails.
func (s *QuestionService) Add(ctx context.Context, req AddQuestionRequest) (json.RawMessage, error) {
	if req.Name == "" || req.Description == "" {
		return nil, fmt.Errorf("name and description are required: %w", common.ErrValidation)
	}

	problem, err := s.judge.CreateProblem(ctx, req.Name, req.Description)
	if err != nil {
		return nil, upstream(err)
	}

	question := &model.Question{ID: problem.ID.String(), Slug: slug.Make(req.Name)}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to mirror question %s: %w", question.ID, err)
	}
	return problem.Raw, nil
}

// Update merges the request with the problem's current remote state:
// a missing name or description is backfilled before the write.
func (s *QuestionService) Update(ctx context.Context, req UpdateQuestionRequest) (json.RawMessage, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("question id is required: %w", common.ErrValidation)
	}

	current, err := s.judge.GetProblem(ctx, req.ID)
	if err != nil {
		return nil, upstream(err)
	}

	name := current.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := current.Body
	if req.Description != nil {
		description = *req.Description
	}

	raw, err := s.judge.UpdateProblem(ctx, req.ID, name, description)
	if err != nil {
		return nil, upstream(err)
	}
	return raw, nil
}

// Delete removes the problem from the judge and drops the local mirror row.
func (s *QuestionService) Delete(ctx context.Context, req DeleteQuestionRequest) (json.RawMessage, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("question id is required: %w", common.ErrValidation)
	}

	raw, err := s.judge.DeleteProblem(ctx, req.ID)
	if err != nil {
		return nil, upstream(err)
	}
	if err := s.questionRepo.Delete(ctx, req.ID); err != nil {
		return nil, fmt.Errorf("failed to drop question mirror %s: %w", req.ID, err)
	}
	return raw, nil
}

func (s *QuestionService) ListTestCases(ctx context.Context, req TestCaseRequest) (json.RawMessage, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("question id is required: %w", common.ErrValidation)
	}
	raw, err := s.judge.ListTestCases(ctx, req.ID)
	if err != nil {
		return nil, upstream(err)
	}
	return raw, nil
}

func (s *QuestionService) AddTestCase(ctx context.Context, req TestCaseRequest) (json.RawMessage, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("question id is required: %w", common.ErrValidation)
	}
	raw, err := s.judge.AddTestCase(ctx, req.ID, req.Input, req.Output)
	if err != nil {
		return nil, upstream(err)
	}
	return raw, nil
}

func (s *QuestionService) UpdateTestCase(ctx context.Context, req TestCaseRequest) (json.RawMessage, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("question id is required: %w", common.ErrValidation)
	}
	raw, err := s.judge.UpdateTestCase(ctx, req.ID, req.Number, req.Input, req.Output)
	if err != nil {
		return nil, upstream(err)
	}
	return raw, nil
}
