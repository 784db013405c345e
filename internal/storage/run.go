package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DebateRun is one completed debate: the transcript and decision as stored
// JSON, plus the fields the API filters and reports on
type DebateRun struct {
	ID          uuid.UUID
	QuestionID  uuid.UUID
	UserID      uuid.UUID
	Variant     string
	PositionX   string
	PositionY   string
	Winner      string
	FinalAnswer string
	Correct     bool
	Model       string
	Transcript  json.RawMessage
	Decision    json.RawMessage
	CreatedAt   time.Time
}

// DebateRunRepository defines the interface for debate run storage operations
type DebateRunRepository interface {
	Create(ctx context.Context, run *DebateRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*DebateRun, error)
	GetByQuestionID(ctx context.Context, questionID uuid.UUID) ([]*DebateRun, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*DebateRun, error)
}

// PostgresDebateRunRepository implements DebateRunRepository using PostgreSQL
type PostgresDebateRunRepository struct {
	db *sql.DB
}

// NewPostgresDebateRunRepository creates a new PostgresDebateRunRepository
func NewPostgresDebateRunRepository(db *sql.DB) *PostgresDebateRunRepository {
	return &PostgresDebateRunRepository{db: db}
}

// Create inserts a new debate run into the database
func (r *PostgresDebateRunRepository) Create(ctx context.Context, run *DebateRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO debate_runs (id, question_id, user_id, variant, position_x, position_y, winner, final_answer, correct, model, transcript, decision, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.QuestionID,
		run.UserID,
		run.Variant,
		run.PositionX,
		run.PositionY,
		run.Winner,
		run.FinalAnswer,
		run.Correct,
		run.Model,
		run.Transcript,
		run.Decision,
		run.CreatedAt,
	)

	return err
}

// GetByID retrieves a debate run by its ID
func (r *PostgresDebateRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*DebateRun, error) {
	query := `
		SELECT id, question_id, user_id, variant, position_x, position_y, winner, final_answer, correct, model, transcript, decision, created_at
		FROM debate_runs
		WHERE id = $1
	`

	run := &DebateRun{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID,
		&run.QuestionID,
		&run.UserID,
		&run.Variant,
		&run.PositionX,
		&run.PositionY,
		&run.Winner,
		&run.FinalAnswer,
		&run.Correct,
		&run.Model,
		&run.Transcript,
		&run.Decision,
		&run.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return run, nil
}

// GetByQuestionID retrieves all runs for a question
func (r *PostgresDebateRunRepository) GetByQuestionID(ctx context.Context, questionID uuid.UUID) ([]*DebateRun, error) {
	query := `
		SELECT id, question_id, user_id, variant, position_x, position_y, winner, final_answer, correct, model, transcript, decision, created_at
		FROM debate_runs
		WHERE question_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRuns(rows)
}

// ListByUserID retrieves runs created by a user, newest first
func (r *PostgresDebateRunRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*DebateRun, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, question_id, user_id, variant, position_x, position_y, winner, final_answer, correct, model, transcript, decision, created_at
		FROM debate_runs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]*DebateRun, error) {
	var runs []*DebateRun
	for rows.Next() {
		run := &DebateRun{}
		err := rows.Scan(
			&run.ID,
			&run.QuestionID,
			&run.UserID,
			&run.Variant,
			&run.PositionX,
			&run.PositionY,
			&run.Winner,
			&run.FinalAnswer,
			&run.Correct,
			&run.Model,
			&run.Transcript,
			&run.Decision,
			&run.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}
