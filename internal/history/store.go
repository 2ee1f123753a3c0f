// Package history persists completed enhancements. The chain engine never
// touches this package; the enhancement service writes records after a chain
// finishes so users can browse and re-run past enhancements.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no enhancement exists for the given id.
var ErrNotFound = errors.New("enhancement not found")

// Record is one persisted enhancement.
type Record struct {
	ID             uuid.UUID                         `json:"id"`
	UserID         uuid.UUID                         `json:"user_id"`
	OriginalPrompt string                            `json:"original_prompt"`
	EnhancedPrompt string                            `json:"enhanced_prompt"`
	Techniques     []string                          `json:"techniques"`
	Intent         string                            `json:"intent"`
	Complexity     string                            `json:"complexity"`
	Options        map[string]map[string]interface{} `json:"options,omitempty"`
	Summary        map[string]interface{}            `json:"summary"`
	CreatedAt      time.Time                         `json:"created_at"`
}

// Store is the persistence seam for enhancement history. The Postgres
// implementation backs production; tests use an in-memory fake.
type Store interface {
	Save(ctx context.Context, record *Record) error
	Get(ctx context.Context, id uuid.UUID) (*Record, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Record, error)
}
