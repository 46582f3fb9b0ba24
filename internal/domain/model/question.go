package model

import "time"

// Question mirrors a problem that exists in the remote judge. The judge
// owns all problem content; this row only records that the problem was
// uploaded through this service.
type Question struct {
	ID        string    `json:"id"` // judge-assigned problem id
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}
