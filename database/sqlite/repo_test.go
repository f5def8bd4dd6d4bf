package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sagarc03/challengedb"
	"github.com/sagarc03/challengedb/database/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepo_CreateAndGet(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	in := challengedb.ChallengeInput{Name: "A", Description: "first", Date: "2024-01-01"}

	id, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, challengedb.Challenge{ID: id, Name: "A", Description: "first", Date: "2024-01-01"}, got)
}

func TestRepo_CreateAssignsDistinctIDs(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	in := challengedb.ChallengeInput{Name: "A", Date: "2024-01-01"}

	first, err := repo.Create(ctx, in)
	require.NoError(t, err)
	second, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// ids of deleted rows are not reused
	require.NoError(t, repo.Delete(ctx, second))
	third, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.Greater(t, third, second)
}

func TestRepo_Get_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.Get(context.Background(), 999)

	assert.ErrorIs(t, err, challengedb.ErrNotFound)
}

func TestRepo_Update(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, challengedb.ChallengeInput{Name: "A", Date: "2024-01-01"})
	require.NoError(t, err)

	err = repo.Update(ctx, id, challengedb.ChallengeInput{Name: "B", Description: "changed", Date: "2025-06-30"})
	require.NoError(t, err)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, challengedb.Challenge{ID: id, Name: "B", Description: "changed", Date: "2025-06-30"}, got)
}

func TestRepo_Update_MissingRowIsNotAnError(t *testing.T) {
	repo := setupTestRepo(t)

	err := repo.Update(context.Background(), 12345, challengedb.ChallengeInput{Name: "B", Date: "2025-06-30"})

	assert.NoError(t, err)
}

func TestRepo_Delete(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, challengedb.ChallengeInput{Name: "A", Date: "2024-01-01"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))

	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, challengedb.ErrNotFound)

	// deleting again is not an error
	assert.NoError(t, repo.Delete(ctx, id))
}

func TestRepo_ConcurrentCreates(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	const n = 20
	ids := make([]int64, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = repo.Create(ctx, challengedb.ChallengeInput{Name: "A", Date: "2024-01-01"})
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool, n)
	for i := range n {
		require.NoError(t, errs[i])
		assert.False(t, seen[ids[i]], "duplicate id %d", ids[i])
		seen[ids[i]] = true
	}
}

func TestNewRepo_InvalidTable(t *testing.T) {
	_, err := sqlite.NewRepo(nil, challengedb.Tables{Challenges: "Bad-Name"})
	assert.Error(t, err)
}

func newMockRepo(t *testing.T) (*sqlite.Repo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := sqlite.NewRepo(db, challengedb.Tables{Challenges: "challenges"})
	require.NoError(t, err)

	return repo, mock
}

func TestRepo_DriverErrors(t *testing.T) {
	driverErr := errors.New("database is locked")
	in := challengedb.ChallengeInput{Name: "A", Date: "2024-01-01"}

	t.Run("create", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "challenges"`)).
			WithArgs("A", "", "2024-01-01").
			WillReturnError(driverErr)

		_, err := repo.Create(context.Background(), in)

		assert.ErrorIs(t, err, driverErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create last insert id", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "challenges"`)).
			WillReturnResult(sqlmock.NewErrorResult(driverErr))

		_, err := repo.Create(context.Background(), in)

		assert.ErrorIs(t, err, driverErr)
		assert.Contains(t, err.Error(), "last insert id")
	})

	t.Run("update", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "challenges"`)).
			WithArgs("A", "", "2024-01-01", int64(3)).
			WillReturnError(driverErr)

		err := repo.Update(context.Background(), 3, in)

		assert.ErrorIs(t, err, driverErr)
		assert.Equal(t, "update: database is locked", err.Error())
	})

	t.Run("delete", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "challenges"`)).
			WithArgs(int64(3)).
			WillReturnError(driverErr)

		err := repo.Delete(context.Background(), 3)

		assert.ErrorIs(t, err, driverErr)
	})

	t.Run("get", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, description, date`)).
			WithArgs(int64(3)).
			WillReturnError(driverErr)

		_, err := repo.Get(context.Background(), 3)

		assert.ErrorIs(t, err, driverErr)
		assert.NotErrorIs(t, err, challengedb.ErrNotFound)
	})

	t.Run("get no rows", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, description, date`)).
			WithArgs(int64(3)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(context.Background(), 3)

		assert.ErrorIs(t, err, challengedb.ErrNotFound)
	})
}
