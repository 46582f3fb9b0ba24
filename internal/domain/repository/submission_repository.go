package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"judge_gateway/internal/common"
	"judge_gateway/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.Submission) error
	FindAll(ctx context.Context) ([]model.Submission, error)
	FindByUserEmail(ctx context.Context, email string) ([]model.Submission, error)
	FindByProblemID(ctx context.Context, problemID string) ([]model.Submission, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) Create(ctx context.Context, submission *model.Submission) error {
	query := `INSERT INTO submissions (id, submission_id, problem_id, user_email, result)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		submission.ID, submission.SubmissionID, submission.ProblemID, submission.UserEmail, submission.Result)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("submission %s already recorded: %w", submission.SubmissionID, common.ErrConflict)
		}
		return fmt.Errorf("pgSubmissionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) FindAll(ctx context.Context) ([]model.Submission, error) {
	query := `SELECT id, submission_id, problem_id, user_email, result, created_at
	          FROM submissions ORDER BY created_at`
	return r.querySubmissions(ctx, query)
}

func (r *pgSubmissionRepository) FindByUserEmail(ctx context.Context, email string) ([]model.Submission, error) {
	query := `SELECT id, submission_id, problem_id, user_email, result, created_at
	          FROM submissions WHERE user_email = $1 ORDER BY created_at`
	return r.querySubmissions(ctx, query, email)
}

func (r *pgSubmissionRepository) FindByProblemID(ctx context.Context, problemID string) ([]model.Submission, error) {
	query := `SELECT id, submission_id, problem_id, user_email, result, created_at
	          FROM submissions WHERE problem_id = $1 ORDER BY created_at`
	return r.querySubmissions(ctx, query, problemID)
}

func (r *pgSubmissionRepository) querySubmissions(ctx context.Context, query string, args ...interface{}) ([]model.Submission, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository query: %w", err)
	}
	defer rows.Close()

	var submissions []model.Submission
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.SubmissionID, &s.ProblemID, &s.UserEmail, &s.Result, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository scan: %w", err)
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}
