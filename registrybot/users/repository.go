package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

// Repository persists accounts in the users table via the shared sqlx pool.
type Repository struct {
	db *sqlx.DB
}

// NewRepository wraps the provided database handle.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Add inserts a new account. A unique-constraint conflict on the name is
// surfaced as ErrNameTaken so a lost race never produces a duplicate row.
func (r *Repository) Add(ctx context.Context, name, passHash string) error {
	query := `INSERT INTO users (name, pass_hash) VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, name, passHash); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return ErrNameTaken
		}
		return fmt.Errorf("users: insert: %w", err)
	}
	return nil
}

// NameTaken reports whether an account with the given name exists.
func (r *Repository) NameTaken(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE name = $1)`

	var taken bool
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&taken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("users: name lookup: %w", err)
	}
	return taken, nil
}

// List returns all accounts in insertion order (ascending id).
func (r *Repository) List(ctx context.Context) ([]User, error) {
	query := `SELECT id, name FROM users ORDER BY id`

	var list []User
	if err := r.db.SelectContext(ctx, &list, query); err != nil {
		return nil, fmt.Errorf("users: list: %w", err)
	}
	return list, nil
}
