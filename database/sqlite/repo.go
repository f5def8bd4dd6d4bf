// Package sqlite implements the repo interface using SQLite
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sagarc03/challengedb"
)

type Repo struct {
	db        *sql.DB
	tableName string
}

// NewRepo wraps an open *sql.DB. The table is expected to exist already.
func NewRepo(db *sql.DB, tables challengedb.Tables) (*Repo, error) {
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("new repo: %w", err)
	}

	return &Repo{db: db, tableName: tables.Challenges}, nil
}

func (r *Repo) Create(ctx context.Context, in challengedb.ChallengeInput) (int64, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`INSERT INTO %s (name, description, date) VALUES (?, ?, ?)`, quoteIdentifier(r.tableName))

	result, err := r.db.ExecContext(ctx, query, in.Name, in.Description, in.Date)
	if err != nil {
		return 0, fmt.Errorf("create: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create: last insert id: %w", err)
	}

	return id, nil
}

func (r *Repo) Update(ctx context.Context, id int64, in challengedb.ChallengeInput) error {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`UPDATE %s
		SET name = ?, description = ?, date = ?
		WHERE id = ?`, quoteIdentifier(r.tableName))

	if _, err := r.db.ExecContext(ctx, query, in.Name, in.Description, in.Date, id); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, quoteIdentifier(r.tableName)) //nolint:gosec // table name is validated

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

func (r *Repo) Get(ctx context.Context, id int64) (challengedb.Challenge, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT id, name, description, date
		FROM %s
		WHERE id = ?`, quoteIdentifier(r.tableName))

	var c challengedb.Challenge
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return challengedb.Challenge{}, challengedb.ErrNotFound
		}
		return challengedb.Challenge{}, fmt.Errorf("get: %w", err)
	}

	return c, nil
}
