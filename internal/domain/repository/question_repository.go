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

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]model.Question, error)
}

type pgQuestionRepository struct {
	db *sql.DB
}

func NewPgQuestionRepository(db *sql.DB) QuestionRepository {
	return &pgQuestionRepository{db: db}
}

func (r *pgQuestionRepository) Create(ctx context.Context, question *model.Question) error {
	query := `INSERT INTO questions (id, slug) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, question.ID, question.Slug)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("question %s already mirrored: %w", question.ID, common.ErrConflict)
		}
		return fmt.Errorf("pgQuestionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM questions WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("pgQuestionRepository.Delete: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) FindAll(ctx context.Context) ([]model.Question, error) {
	query := `SELECT id, slug, created_at FROM questions ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Slug, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.FindAll scan: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
