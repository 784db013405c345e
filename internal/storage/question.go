package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Question is an imported question bank row
type Question struct {
	ID          uuid.UUID
	SourceID    string
	Split       string
	Prompt      string
	Question    string
	ChoiceA     string
	ChoiceB     string
	ChoiceC     string
	ChoiceD     string
	Answer      string
	GoldPassage string
	CreatedAt   time.Time
}

// Choices returns the four answer choices in label order
func (q *Question) Choices() []string {
	return []string{q.ChoiceA, q.ChoiceB, q.ChoiceC, q.ChoiceD}
}

// QuestionRepository defines the interface for question storage operations
type QuestionRepository interface {
	Create(ctx context.Context, question *Question) error
	CreateBatch(ctx context.Context, questions []*Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*Question, error)
	List(ctx context.Context, split string, limit, offset int) ([]*Question, error)
}

// PostgresQuestionRepository implements QuestionRepository using PostgreSQL
type PostgresQuestionRepository struct {
	db *sql.DB
}

// NewPostgresQuestionRepository creates a new PostgresQuestionRepository
func NewPostgresQuestionRepository(db *sql.DB) *PostgresQuestionRepository {
	return &PostgresQuestionRepository{db: db}
}

// Create inserts a new question into the database
func (r *PostgresQuestionRepository) Create(ctx context.Context, question *Question) error {
	if question.ID == uuid.Nil {
		question.ID = uuid.New()
	}
	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO questions (id, source_id, split, prompt, question, choice_a, choice_b, choice_c, choice_d, answer, gold_passage, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		question.ID,
		question.SourceID,
		question.Split,
		question.Prompt,
		question.Question,
		question.ChoiceA,
		question.ChoiceB,
		question.ChoiceC,
		question.ChoiceD,
		question.Answer,
		question.GoldPassage,
		question.CreatedAt,
	)

	return err
}

// CreateBatch inserts multiple questions in a single transaction
func (r *PostgresQuestionRepository) CreateBatch(ctx context.Context, questions []*Question) error {
	if len(questions) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO questions (id, source_id, split, prompt, question, choice_a, choice_b, choice_c, choice_d, answer, gold_passage, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (split, source_id) DO NOTHING
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for _, q := range questions {
		if q.ID == uuid.Nil {
			q.ID = uuid.New()
		}
		if q.CreatedAt.IsZero() {
			q.CreatedAt = now
		}

		_, err := stmt.ExecContext(ctx,
			q.ID,
			q.SourceID,
			q.Split,
			q.Prompt,
			q.Question,
			q.ChoiceA,
			q.ChoiceB,
			q.ChoiceC,
			q.ChoiceD,
			q.Answer,
			q.GoldPassage,
			q.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID retrieves a question by its ID
func (r *PostgresQuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Question, error) {
	query := `
		SELECT id, source_id, split, prompt, question, choice_a, choice_b, choice_c, choice_d, answer, gold_passage, created_at
		FROM questions
		WHERE id = $1
	`

	question := &Question{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&question.ID,
		&question.SourceID,
		&question.Split,
		&question.Prompt,
		&question.Question,
		&question.ChoiceA,
		&question.ChoiceB,
		&question.ChoiceC,
		&question.ChoiceD,
		&question.Answer,
		&question.GoldPassage,
		&question.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return question, nil
}

// List retrieves questions, optionally filtered by split
func (r *PostgresQuestionRepository) List(ctx context.Context, split string, limit, offset int) ([]*Question, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, source_id, split, prompt, question, choice_a, choice_b, choice_c, choice_d, answer, gold_passage, created_at
		FROM questions
		WHERE ($1 = '' OR split = $1)
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, split, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*Question
	for rows.Next() {
		question := &Question{}
		err := rows.Scan(
			&question.ID,
			&question.SourceID,
			&question.Split,
			&question.Prompt,
			&question.Question,
			&question.ChoiceA,
			&question.ChoiceB,
			&question.ChoiceC,
			&question.ChoiceD,
			&question.Answer,
			&question.GoldPassage,
			&question.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return questions, nil
}
