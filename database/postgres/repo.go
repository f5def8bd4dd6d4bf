// Package postgres implements the repo interface for all the services
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/challengedb"
)

type Repo struct {
	pool      *pgxpool.Pool
	tableName string
}

func NewRepo(pool *pgxpool.Pool, tables challengedb.Tables) (*Repo, error) {
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("new repo: %w", err)
	}

	return &Repo{pool: pool, tableName: tables.Challenges}, nil
}

// Ping verifies database connectivity
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Repo) table() string {
	return pgx.Identifier{r.tableName}.Sanitize()
}

func (r *Repo) Create(ctx context.Context, in challengedb.ChallengeInput) (int64, error) {
	date, err := time.Parse(challengedb.DateFormat, in.Date)
	if err != nil {
		return 0, fmt.Errorf("create: parse date: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, date)
		VALUES ($1, $2, $3)
		RETURNING id
	`, r.table())

	var id int64
	if err := r.pool.QueryRow(ctx, query, in.Name, in.Description, date).Scan(&id); err != nil {
		return 0, fmt.Errorf("create: %w", err)
	}

	return id, nil
}

func (r *Repo) Update(ctx context.Context, id int64, in challengedb.ChallengeInput) error {
	date, err := time.Parse(challengedb.DateFormat, in.Date)
	if err != nil {
		return fmt.Errorf("update: parse date: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, date = $3
		WHERE id = $4
	`, r.table())

	if _, err := r.pool.Exec(ctx, query, in.Name, in.Description, date, id); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table())

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

func (r *Repo) Get(ctx context.Context, id int64) (challengedb.Challenge, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, date
		FROM %s
		WHERE id = $1
	`, r.table())

	var c challengedb.Challenge
	var date time.Time

	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return challengedb.Challenge{}, challengedb.ErrNotFound
		}
		return challengedb.Challenge{}, fmt.Errorf("get: %w", err)
	}

	c.Date = date.Format(challengedb.DateFormat)
	return c, nil
}
