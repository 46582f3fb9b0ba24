package model

import "time"

// VerdictCompiling is the sole transient judge status; every other status
// name is terminal.
const VerdictCompiling = "compiling..."

const DefaultResult = "No response"

// Submission records the terminal verdict observed for a judge submission.
// A row exists iff a terminal verdict was seen, and is immutable thereafter.
type Submission struct {
	ID           string    `json:"id"`
	SubmissionID string    `json:"submission_id"` // judge-assigned id
	ProblemID    string    `json:"problem_id"`
	UserEmail    string    `json:"user_email"`
	Result       string    `json:"result"`
	CreatedAt    time.Time `json:"created_at"`
}
