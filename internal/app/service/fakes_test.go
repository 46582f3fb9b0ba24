package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"judge_gateway/internal/common"
	"judge_gateway/internal/domain/model"
	"judge_gateway/internal/platform/judge"
)

// fakeUserRepo keeps users in a map keyed by email.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return fmt.Errorf("duplicate email: %w", common.ErrConflict)
	}
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions map[string]model.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[string]model.Question)}
}

func (r *fakeQuestionRepo) Create(_ context.Context, q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[q.ID]; ok {
		return fmt.Errorf("duplicate question: %w", common.ErrConflict)
	}
	r.questions[q.ID] = *q
	return nil
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.questions, id)
	return nil
}

func (r *fakeQuestionRepo) FindAll(_ context.Context) ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Question, 0, len(r.questions))
	for _, q := range r.questions {
		out = append(out, q)
	}
	return out, nil
}

type fakeSubmissionRepo struct {
	mu          sync.Mutex
	submissions []model.Submission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{}
}

func (r *fakeSubmissionRepo) Create(_ context.Context, s *model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.submissions {
		if existing.SubmissionID == s.SubmissionID {
			return fmt.Errorf("duplicate submission: %w", common.ErrConflict)
		}
	}
	r.submissions = append(r.submissions, *s)
	return nil
}

func (r *fakeSubmissionRepo) FindAll(_ context.Context) ([]model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Submission(nil), r.submissions...), nil
}

func (r *fakeSubmissionRepo) FindByUserEmail(_ context.Context, email string) ([]model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Submission
	for _, s := range r.submissions {
		if s.UserEmail == email {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) FindByProblemID(_ context.Context, problemID string) ([]model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Submission
	for _, s := range r.submissions {
		if s.ProblemID == problemID {
			out = append(out, s)
		}
	}
	return out, nil
}

// fakeJudge is a scriptable stand-in for the remote judge API.
type fakeJudge struct {
	mu sync.Mutex

	problems map[string]*judge.Problem
	nextID   int

	// verdicts is consumed one status per GetSubmission call; the last
	// entry repeats once the script runs out.
	verdicts     []string
	submissionID string
	problemIDFor string // problem id reported by GetSubmission

	err error // when set, every call fails with it

	listProblemsCalls     int
	getProblemCalls       int
	createProblemCalls    int
	updateProblemCalls    int
	deleteProblemCalls    int
	createSubmissionCalls int
	getSubmissionCalls    int
	lastCompilerID        int
}

func newFakeJudge() *fakeJudge {
	return &fakeJudge{
		problems:     make(map[string]*judge.Problem),
		nextID:       100,
		submissionID: "900",
		problemIDFor: "100",
	}
}

func (f *fakeJudge) addProblem(id, name, body string) {
	f.problems[id] = &judge.Problem{
		ID:   json.Number(id),
		Name: name,
		Body: body,
		Raw:  json.RawMessage(fmt.Sprintf(`{"id":%s,"name":%q,"body":%q}`, id, name, body)),
	}
}

func (f *fakeJudge) ListProblems(context.Context) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listProblemsCalls++
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"problems":[]}`), nil
}

func (f *fakeJudge) GetProblem(_ context.Context, id string) (*judge.Problem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getProblemCalls++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.problems[id]
	if !ok {
		return nil, &judge.APIError{StatusCode: 404, Body: []byte(`{"message":"problem not found"}`)}
	}
	return p, nil
}

func (f *fakeJudge) CreateProblem(_ context.Context, name, body string) (*judge.Problem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createProblemCalls++
	if f.err != nil {
		return nil, f.err
	}
	id := fmt.Sprintf("%d", f.nextID)
	f.nextID++
	p := &judge.Problem{
		ID:   json.Number(id),
		Name: name,
		Body: body,
		Raw:  json.RawMessage(fmt.Sprintf(`{"id":%s,"name":%q,"body":%q}`, id, name, body)),
	}
	f.problems[id] = p
	return p, nil
}

func (f *fakeJudge) UpdateProblem(_ context.Context, id, name, body string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateProblemCalls++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.problems[id]
	if !ok {
		return nil, &judge.APIError{StatusCode: 404, Body: []byte(`{"message":"problem not found"}`)}
	}
	p.Name = name
	p.Body = body
	return json.RawMessage(fmt.Sprintf(`{"id":%s,"name":%q,"body":%q}`, id, name, body)), nil
}

func (f *fakeJudge) DeleteProblem(_ context.Context, id string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteProblemCalls++
	if f.err != nil {
		return nil, f.err
	}
	delete(f.problems, id)
	return json.RawMessage(`{}`), nil
}

func (f *fakeJudge) ListTestCases(_ context.Context, _ string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"testcases":[]}`), nil
}

func (f *fakeJudge) AddTestCase(_ context.Context, _, _, _ string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"number":0}`), nil
}

func (f *fakeJudge) UpdateTestCase(_ context.Context, _ string, _ int, _, _ string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{}`), nil
}

func (f *fakeJudge) CreateSubmission(_ context.Context, _, _ string, compilerID int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createSubmissionCalls++
	f.lastCompilerID = compilerID
	if f.err != nil {
		return "", f.err
	}
	return f.submissionID, nil
}

func (f *fakeJudge) GetSubmission(_ context.Context, id string) (*judge.SubmissionStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getSubmissionCalls++
	if f.err != nil {
		return nil, f.err
	}
	status := "accepted"
	if len(f.verdicts) > 0 {
		idx := f.getSubmissionCalls - 1
		if idx >= len(f.verdicts) {
			idx = len(f.verdicts) - 1
		}
		status = f.verdicts[idx]
	}
	return &judge.SubmissionStatus{
		ID:        id,
		ProblemID: f.problemIDFor,
		Status:    status,
		Raw:       json.RawMessage(fmt.Sprintf(`{"id":%s,"result":{"status":{"name":%q}}}`, id, status)),
	}, nil
}
