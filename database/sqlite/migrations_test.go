package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/sagarc03/challengedb"
	"github.com/sagarc03/challengedb/database/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrate_CreatesValidSchema(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)
	tables := challengedb.Tables{Challenges: "challenges"}

	require.NoError(t, sqlite.Migrate(ctx, db, tables))
	assert.NoError(t, sqlite.ValidateSchema(ctx, db, tables))

	// idempotent
	assert.NoError(t, sqlite.Migrate(ctx, db, tables))
}

func TestMigrate_InvalidTableName(t *testing.T) {
	db := openMemoryDB(t)

	err := sqlite.Migrate(context.Background(), db, challengedb.Tables{Challenges: "bad name"})

	assert.Error(t, err)
}

func TestDropTables(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)
	tables := challengedb.Tables{Challenges: "challenges"}

	require.NoError(t, sqlite.Migrate(ctx, db, tables))
	require.NoError(t, sqlite.DropTables(ctx, db, tables))

	err := sqlite.ValidateSchema(ctx, db, tables)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestValidateSchema_MissingColumns(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)

	_, err := db.ExecContext(ctx, `CREATE TABLE "challenges" (id INTEGER NOT NULL PRIMARY KEY, name TEXT NOT NULL)`)
	require.NoError(t, err)

	err = sqlite.ValidateSchema(ctx, db, challengedb.Tables{Challenges: "challenges"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing columns")
}

func TestValidateSchema_MismatchedColumns(t *testing.T) {
	ctx := context.Background()
	db := openMemoryDB(t)

	_, err := db.ExecContext(ctx, `CREATE TABLE "challenges" (
		id INTEGER NOT NULL PRIMARY KEY,
		name TEXT,
		description TEXT NOT NULL,
		date INTEGER NOT NULL
	)`)
	require.NoError(t, err)

	err = sqlite.ValidateSchema(ctx, db, challengedb.Tables{Challenges: "challenges"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "name: expected nullable=false, got nullable=true")
	assert.Contains(t, err.Error(), "date: expected text, got integer")
}
