package e2e_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

var postgresDB struct {
	once      sync.Once
	container *pgcontainer.PostgresContainer
	dsn       string
	err       error
}

// postgresDSN starts one postgres container for the package on first use and
// returns its connection string.
func postgresDSN(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("postgres e2e needs docker; skipped in short mode")
	}

	postgresDB.once.Do(func() {
		ctx := context.Background()

		c, err := pgcontainer.Run(ctx, "postgres:18-alpine",
			pgcontainer.WithDatabase("challenges"),
			pgcontainer.WithUsername("challengedb"),
			pgcontainer.WithPassword("challengedb"),
			pgcontainer.BasicWaitStrategies(),
		)
		if err != nil {
			postgresDB.err = fmt.Errorf("start postgres: %w", err)
			return
		}
		postgresDB.container = c
		postgresDB.dsn, postgresDB.err = c.ConnectionString(ctx, "sslmode=disable")
	})

	require.NoError(t, postgresDB.err)
	return postgresDB.dsn
}

func stopPostgres() {
	if postgresDB.container != nil {
		_ = testcontainers.TerminateContainer(postgresDB.container)
	}
}
