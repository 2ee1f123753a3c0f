package helpers

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// GetTestDatabasePool creates a database connection pool for testing. The URL
// comes from the cluster configuration, so the same tests run in-cluster and
// against a local database.
func GetTestDatabasePool(ctx context.Context) (*pgxpool.Pool, error) {
	databaseURL := SetupInClusterEnvironment().DatabaseURL

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// buildDatabaseURL constructs the database URL from environment variables
func buildDatabaseURL() string {
	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "enhancer-db-rw.prompt-studio.svc"
	}

	port := os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = "5432"
	}

	user := os.Getenv("POSTGRES_USER")
	if user == "" {
		user = "postgres"
	}

	password := os.Getenv("POSTGRES_PASSWORD")
	if password == "" {
		password = "postgres"
	}

	dbname := os.Getenv("POSTGRES_DB")
	if dbname == "" {
		dbname = "prompt_studio"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=prefer",
		user, password, host, port, dbname)
}

// TestDatabase provides database utilities for testing
type TestDatabase struct {
	Pool *pgxpool.Pool
	ctx  context.Context
}

// NewTestDatabase creates a new test database instance
func NewTestDatabase(t *testing.T) *TestDatabase {
	ctx := context.Background()

	pool, err := GetTestDatabasePool(ctx)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	return &TestDatabase{
		Pool: pool,
		ctx:  ctx,
	}
}

// NewTestDatabaseFromPool wraps an existing pool in test database utilities
func NewTestDatabaseFromPool(pool *pgxpool.Pool) *TestDatabase {
	return &TestDatabase{
		Pool: pool,
		ctx:  context.Background(),
	}
}

// Close closes the database connection
func (db *TestDatabase) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// CreateTestUser creates a test user and returns the user ID. The password is
// stored bcrypt-hashed, matching what the login handler verifies against.
func (db *TestDatabase) CreateTestUser(t *testing.T, email, password string) string {
	hashed, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	var userID string
	err = db.Pool.QueryRow(db.ctx, `
		INSERT INTO users (name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id
	`, "Test User", email, hashed).Scan(&userID)

	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// GetEnhancementCount returns the number of enhancements for a user
func (db *TestDatabase) GetEnhancementCount(t *testing.T, userID string) int {
	var count int
	err := db.Pool.QueryRow(db.ctx, "SELECT COUNT(*) FROM enhancements WHERE user_id = $1", userID).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to get enhancement count: %v", err)
	}
	return count
}

// CleanupUser removes a test user and their enhancements
func (db *TestDatabase) CleanupUser(t *testing.T, userID string) {
	if _, err := db.Pool.Exec(db.ctx, "DELETE FROM enhancements WHERE user_id = $1", userID); err != nil {
		t.Logf("Warning: Failed to cleanup enhancements: %v", err)
	}
	if _, err := db.Pool.Exec(db.ctx, "DELETE FROM users WHERE id = $1", userID); err != nil {
		t.Logf("Warning: Failed to cleanup user: %v", err)
	}
}

// HashPassword hashes a password using bcrypt for testing
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}
