package postgres_test

import (
	"context"
	"testing"

	"github.com/sagarc03/challengedb"
	"github.com/sagarc03/challengedb/database/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepo_Lifecycle(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, challengedb.ChallengeInput{Name: "A", Date: "2024-01-01"})
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, challengedb.Challenge{ID: id, Name: "A", Description: "", Date: "2024-01-01"}, got)

	err = repo.Update(ctx, id, challengedb.ChallengeInput{Name: "B", Description: "d", Date: "2025-12-31"})
	require.NoError(t, err)

	got, err = repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, challengedb.Challenge{ID: id, Name: "B", Description: "d", Date: "2025-12-31"}, got)

	require.NoError(t, repo.Delete(ctx, id))

	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, challengedb.ErrNotFound)
}

func TestRepo_MissingRows(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	assert.NoError(t, repo.Update(ctx, 424242, challengedb.ChallengeInput{Name: "B", Date: "2025-12-31"}))
	assert.NoError(t, repo.Delete(ctx, 424242))

	_, err := repo.Get(ctx, 424242)
	assert.ErrorIs(t, err, challengedb.ErrNotFound)
}

func TestRepo_InvalidDate(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.Create(context.Background(), challengedb.ChallengeInput{Name: "A", Date: "not-a-date"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse date")
}

func TestMigrateAndValidate(t *testing.T) {
	pool := sharedPool(t)
	ctx := context.Background()
	tables := challengedb.Tables{Challenges: tableFor(t, "migrate")}

	err := postgres.ValidateSchema(ctx, pool, tables)
	assert.Error(t, err, "table should not exist yet")

	require.NoError(t, postgres.Migrate(ctx, pool, tables))
	assert.NoError(t, postgres.ValidateSchema(ctx, pool, tables))

	require.NoError(t, postgres.DropTables(ctx, pool, tables))
	assert.Error(t, postgres.ValidateSchema(ctx, pool, tables))
}

func TestNewRepo_InvalidTable(t *testing.T) {
	_, err := postgres.NewRepo(nil, challengedb.Tables{Challenges: ""})
	assert.Error(t, err)
}
