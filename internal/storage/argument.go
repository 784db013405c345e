package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Argument is one side's argument text from a debate run, stored with its
// embedding for cross-run similarity search
type Argument struct {
	ID        uuid.UUID
	RunID     uuid.UUID
	Side      string
	Phase     string
	Position  string
	Text      string
	Embedding pgvector.Vector
	CreatedAt time.Time
}

// ArgumentWithSimilarity pairs an argument with its similarity score
type ArgumentWithSimilarity struct {
	Argument   *Argument
	Similarity float64
}

// ArgumentRepository defines the interface for argument storage operations
type ArgumentRepository interface {
	CreateBatch(ctx context.Context, arguments []*Argument) error
	GetByRunID(ctx context.Context, runID uuid.UUID) ([]*Argument, error)
	FindSimilar(ctx context.Context, embedding pgvector.Vector, limit int, threshold float64) ([]*ArgumentWithSimilarity, error)
}

// PostgresArgumentRepository implements ArgumentRepository using PostgreSQL
// with pgvector
type PostgresArgumentRepository struct {
	db *sql.DB
}

// NewPostgresArgumentRepository creates a new PostgresArgumentRepository
func NewPostgresArgumentRepository(db *sql.DB) *PostgresArgumentRepository {
	return &PostgresArgumentRepository{db: db}
}

// CreateBatch inserts multiple arguments in a single transaction
func (r *PostgresArgumentRepository) CreateBatch(ctx context.Context, arguments []*Argument) error {
	if len(arguments) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO arguments (id, run_id, side, phase, position, text, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for _, a := range arguments {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}

		_, err := stmt.ExecContext(ctx,
			a.ID,
			a.RunID,
			a.Side,
			a.Phase,
			a.Position,
			a.Text,
			a.Embedding,
			a.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByRunID retrieves all stored arguments for a debate run
func (r *PostgresArgumentRepository) GetByRunID(ctx context.Context, runID uuid.UUID) ([]*Argument, error) {
	query := `
		SELECT id, run_id, side, phase, position, text, embedding, created_at
		FROM arguments
		WHERE run_id = $1
		ORDER BY side ASC, phase ASC
	`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var arguments []*Argument
	for rows.Next() {
		argument := &Argument{}
		err := rows.Scan(
			&argument.ID,
			&argument.RunID,
			&argument.Side,
			&argument.Phase,
			&argument.Position,
			&argument.Text,
			&argument.Embedding,
			&argument.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, argument)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return arguments, nil
}

// FindSimilar finds stored arguments close to the given embedding using
// pgvector cosine distance
func (r *PostgresArgumentRepository) FindSimilar(ctx context.Context, embedding pgvector.Vector, limit int, threshold float64) ([]*ArgumentWithSimilarity, error) {
	if limit <= 0 {
		limit = 10
	}
	if threshold <= 0 {
		threshold = 0.75
	}

	// Cosine distance is 1 - cosine_similarity
	query := `
		SELECT id, run_id, side, phase, position, text, embedding, created_at,
			   1 - (embedding <=> $1) as similarity
		FROM arguments
		WHERE 1 - (embedding <=> $1) >= $2
		ORDER BY embedding <=> $1
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, query, embedding, threshold, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*ArgumentWithSimilarity
	for rows.Next() {
		argument := &Argument{}
		var similarity float64
		err := rows.Scan(
			&argument.ID,
			&argument.RunID,
			&argument.Side,
			&argument.Phase,
			&argument.Position,
			&argument.Text,
			&argument.Embedding,
			&argument.CreatedAt,
			&similarity,
		)
		if err != nil {
			return nil, err
		}
		results = append(results, &ArgumentWithSimilarity{
			Argument:   argument,
			Similarity: similarity,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
