package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rohan/workout-buddy/internal/models"
)

// Sentinel errors returned by the stores. Callers translate them into the
// API error taxonomy; the stores themselves stay HTTP-agnostic.
var (
	// ErrNotFound means the identifier was well-formed but matched nothing.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID means the identifier was not well-formed for the store.
	ErrInvalidID = errors.New("invalid id")
	// ErrDuplicateEmail means the users unique-email constraint fired.
	ErrDuplicateEmail = errors.New("email already registered")
)

const uniqueViolation = "23505"

// PostgresStore handles user persistence against PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the users table if it doesn't exist. The unique index on
// lower(email) is what enforces case-insensitive one-User-per-email.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email      VARCHAR(255) NOT NULL,
			password   VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ  DEFAULT NOW()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx
			ON users (lower(email));
	`)
	return err
}

func (s *PostgresStore) CreateUser(ctx context.Context, email, hashedPassword string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (email, password)
		 VALUES ($1, $2)
		 RETURNING id, email, created_at`,
		strings.ToLower(email), hashedPassword,
	).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, password, created_at FROM users WHERE lower(email) = lower($1)`, email,
	).Scan(&u.ID, &u.Email, &u.Password, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserID resolves a user id to itself, fetching only the id column. It
// is the existence probe the auth middleware runs per request.
func (s *PostgresStore) GetUserID(ctx context.Context, id string) (string, error) {
	var got string
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM users WHERE id = $1`, id,
	).Scan(&got)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return got, nil
}
