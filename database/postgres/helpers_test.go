package postgres_test

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/sagarc03/challengedb"
	"github.com/sagarc03/challengedb/database/postgres"
)

var shared struct {
	once sync.Once
	pool *pgxpool.Pool
	err  error
}

// sharedPool returns a pool on a container started once per package run.
// The container is reaped by testcontainers when the test binary exits.
func sharedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("postgres tests need docker; skipped in short mode")
	}

	shared.once.Do(func() {
		ctx := context.Background()

		c, err := pgcontainer.Run(ctx, "postgres:18-alpine",
			pgcontainer.WithDatabase("challenges"),
			pgcontainer.WithUsername("challengedb"),
			pgcontainer.WithPassword("challengedb"),
			pgcontainer.BasicWaitStrategies(),
		)
		if err != nil {
			shared.err = fmt.Errorf("start postgres: %w", err)
			return
		}

		dsn, err := c.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			shared.err = err
			return
		}
		shared.pool, shared.err = pgxpool.New(ctx, dsn)
	})

	require.NoError(t, shared.err)
	return shared.pool
}

// tableFor returns a fresh table name that is dropped when the test ends.
func tableFor(t *testing.T, prefix string) string {
	t.Helper()

	b := make([]byte, 6)
	_, err := rand.Read(b)
	require.NoError(t, err)
	name := prefix + "_" + hex.EncodeToString(b)

	pool := sharedPool(t)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DROP TABLE IF EXISTS "+pgx.Identifier{name}.Sanitize())
	})
	return name
}

// setupTestRepo connects through the public entry point and migrates a
// table of its own.
func setupTestRepo(t *testing.T) challengedb.ChallengeRepo {
	t.Helper()

	ctx := context.Background()
	tables := challengedb.Tables{Challenges: tableFor(t, "challenges")}

	db, err := postgres.Connect(ctx, sharedPool(t).Config().ConnString(), tables)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(ctx))
	return db.GetRepo()
}
