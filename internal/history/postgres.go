package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists enhancement history in PostgreSQL. Techniques,
// options, and the chain summary are stored as jsonb.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a history store over a connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Save inserts a new enhancement record. The record's ID and CreatedAt are
// filled in from the database.
func (s *PostgresStore) Save(ctx context.Context, record *Record) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO enhancements (user_id, original_prompt, enhanced_prompt, techniques, intent, complexity, options, summary)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		record.UserID, record.OriginalPrompt, record.EnhancedPrompt,
		record.Techniques, record.Intent, record.Complexity, record.Options, record.Summary,
	).Scan(&record.ID, &record.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to save enhancement: %w", err)
	}

	return nil
}

// Get retrieves one enhancement by id.
func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	var record Record

	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, original_prompt, enhanced_prompt, techniques, intent, complexity, options, summary, created_at
		FROM enhancements
		WHERE id = $1
	`, id).Scan(
		&record.ID,
		&record.UserID,
		&record.OriginalPrompt,
		&record.EnhancedPrompt,
		&record.Techniques,
		&record.Intent,
		&record.Complexity,
		&record.Options,
		&record.Summary,
		&record.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get enhancement: %w", err)
	}

	return &record, nil
}

// ListByUser retrieves a user's enhancements, newest first.
func (s *PostgresStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, original_prompt, enhanced_prompt, techniques, intent, complexity, options, summary, created_at
		FROM enhancements
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)

	if err != nil {
		return nil, fmt.Errorf("failed to query enhancements: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var record Record
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.OriginalPrompt,
			&record.EnhancedPrompt,
			&record.Techniques,
			&record.Intent,
			&record.Complexity,
			&record.Options,
			&record.Summary,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enhancement: %w", err)
		}
		records = append(records, &record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enhancements: %w", err)
	}

	return records, nil
}
