package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Sphere-style judge constants carried over from the upstream API contract.
const (
	masterJudgeID   = 1001 // "ignore extra whitespace" master judge
	testCaseJudgeID = 1
)

// API is the surface of the remote judge this service proxies. Problem
// content, test cases and verdicts all live judge-side.
type API interface {
	ListProblems(ctx context.Context) (json.RawMessage, error)
	GetProblem(ctx context.Context, id string) (*Problem, error)
	CreateProblem(ctx context.Context, name, body string) (*Problem, error)
	UpdateProblem(ctx context.Context, id, name, body string) (json.RawMessage, error)
	DeleteProblem(ctx context.Context, id string) (json.RawMessage, error)
	ListTestCases(ctx context.Context, problemID string) (json.RawMessage, error)
	AddTestCase(ctx context.Context, problemID, input, output string) (json.RawMessage, error)
	UpdateTestCase(ctx context.Context, problemID string, number int, input, output string) (json.RawMessage, error)
	CreateSubmission(ctx context.Context, problemID, source string, compilerID int) (string, error)
	GetSubmission(ctx context.Context, id string) (*SubmissionStatus, error)
}

// Problem is the subset of the judge's problem payload this service reads.
// Raw keeps the full upstream body for passthrough responses.
type Problem struct {
	ID   json.Number     `json:"id"`
	Name string          `json:"name"`
	Body string          `json:"body"`
	Raw  json.RawMessage `json:"-"`
}

// SubmissionStatus is the judge's view of one submission.
type SubmissionStatus struct {
	ID        string
	ProblemID string
	Status    string
	Raw       json.RawMessage
}

// APIError is a non-2xx response from the judge, passed through to the
// caller uninterpreted.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("judge API returned status %d", e.StatusCode)
}

type Client struct {
	httpClient     *http.Client
	problemsURL    string
	submissionsURL string
	accessToken    string
}

func NewClient(problemsURL, submissionsURL, accessToken string) *Client {
	return &Client{
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		problemsURL:    problemsURL,
		submissionsURL: submissionsURL,
		accessToken:    accessToken,
	}
}

func (c *Client) endpoint(base, path string) string {
	return base + path + "?access_token=" + url.QueryEscape(c.accessToken)
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload interface{}) (json.RawMessage, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("judge client: marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("judge client: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("judge client: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("judge client: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

func (c *Client) ListProblems(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.endpoint(c.problemsURL, ""), nil)
}

func (c *Client) GetProblem(ctx context.Context, id string) (*Problem, error) {
	raw, err := c.do(ctx, http.MethodGet, c.endpoint(c.problemsURL, "/"+id), nil)
	if err != nil {
		return nil, err
	}
	return parseProblem(raw)
}

func (c *Client) CreateProblem(ctx context.Context, name, body string) (*Problem, error) {
	payload := map[string]interface{}{
		"name":          name,
		"body":          body,
		"masterjudgeId": masterJudgeID,
	}
	raw, err := c.do(ctx, http.MethodPost, c.endpoint(c.problemsURL, ""), payload)
	if err != nil {
		return nil, err
	}
	return parseProblem(raw)
}

func (c *Client) UpdateProblem(ctx context.Context, id, name, body string) (json.RawMessage, error) {
	payload := map[string]interface{}{
		"name": name,
		"body": body,
	}
	return c.do(ctx, http.MethodPut, c.endpoint(c.problemsURL, "/"+id), payload)
}

func (c *Client) DeleteProblem(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, c.endpoint(c.problemsURL, "/"+id), nil)
}

func (c *Client) ListTestCases(ctx context.Context, problemID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, c.endpoint(c.problemsURL, "/"+problemID+"/testcases"), nil)
}

func (c *Client) AddTestCase(ctx context.Context, problemID, input, output string) (json.RawMessage, error) {
	payload := map[string]interface{}{
		"input":   input,
		"output":  output,
		"judgeId": testCaseJudgeID,
	}
	return c.do(ctx, http.MethodPost, c.endpoint(c.problemsURL, "/"+problemID+"/testcases"), payload)
}

func (c *Client) UpdateTestCase(ctx context.Context, problemID string, number int, input, output string) (json.RawMessage, error) {
	payload := map[string]interface{}{
		"input":  input,
		"output": output,
	}
	path := "/" + problemID + "/testcases/" + strconv.Itoa(number)
	return c.do(ctx, http.MethodPut, c.endpoint(c.problemsURL, path), payload)
}

func (c *Client) CreateSubmission(ctx context.Context, problemID, source string, compilerID int) (string, error) {
	payload := map[string]interface{}{
		"problemId":  problemID,
		"source":     source,
		"compilerId": compilerID,
	}
	raw, err := c.do(ctx, http.MethodPost, c.endpoint(c.submissionsURL, ""), payload)
	if err != nil {
		return "", err
	}
	var created struct {
		ID json.Number `json:"id"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		return "", fmt.Errorf("judge client: decode submission id: %w", err)
	}
	return created.ID.String(), nil
}

func (c *Client) GetSubmission(ctx context.Context, id string) (*SubmissionStatus, error) {
	raw, err := c.do(ctx, http.MethodGet, c.endpoint(c.submissionsURL, "/"+id), nil)
	if err != nil {
		return nil, err
	}
	var decoded struct {
		ID      json.Number `json:"id"`
		Problem struct {
			ID json.Number `json:"id"`
		} `json:"problem"`
		Result struct {
			Status struct {
				Name string `json:"name"`
			} `json:"status"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("judge client: decode submission status: %w", err)
	}
	return &SubmissionStatus{
		ID:        decoded.ID.String(),
		ProblemID: decoded.Problem.ID.String(),
		Status:    decoded.Result.Status.Name,
		Raw:       raw,
	}, nil
}

func parseProblem(raw json.RawMessage) (*Problem, error) {
	p := &Problem{}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("judge client: decode problem: %w", err)
	}
	p.Raw = raw
	return p, nil
}
