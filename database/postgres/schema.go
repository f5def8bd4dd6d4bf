package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sagarc03/challengedb"
)

// column is the part of a column definition the server depends on.
type column struct {
	name     string
	dataType string
	notNull  bool
}

// challengeColumns is the expected layout of the challenges table, in
// declaration order. Types are information_schema data_type values.
var challengeColumns = []column{
	{"id", "bigint", true},
	{"name", "text", true},
	{"description", "text", true},
	{"date", "date", true},
}

// ValidateSchema checks that the challenges table exists in the public schema
// with the columns the repo reads and writes. Extra columns are allowed.
func ValidateSchema(ctx context.Context, pool *pgxpool.Pool, tables challengedb.Tables) error {
	table := tables.Challenges
	if !challengedb.IsValidTableName(table) {
		return fmt.Errorf("validate schema: invalid table name: %s", table)
	}

	actual, err := readColumns(ctx, pool, table)
	if err != nil {
		return fmt.Errorf("validate schema %s: %w", table, err)
	}
	if len(actual) == 0 {
		return fmt.Errorf("validate schema: table %s does not exist", table)
	}

	if problems := compareColumns(challengeColumns, actual); len(problems) > 0 {
		return fmt.Errorf("validate schema %s: %s", table, strings.Join(problems, "; "))
	}
	return nil
}

func readColumns(ctx context.Context, pool *pgxpool.Pool, table string) (map[string]column, error) {
	rows, err := pool.Query(ctx, `
		SELECT column_name, data_type, is_nullable = 'NO'
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1`, table)
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	defer rows.Close()

	columns := make(map[string]column)
	for rows.Next() {
		var c column
		if err := rows.Scan(&c.name, &c.dataType, &c.notNull); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		c.dataType = strings.ToLower(c.dataType)
		columns[c.name] = c
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	return columns, nil
}

func compareColumns(want []column, actual map[string]column) []string {
	var missing, problems []string
	for _, w := range want {
		got, ok := actual[w.name]
		if !ok {
			missing = append(missing, w.name)
			continue
		}
		if got.dataType != w.dataType {
			problems = append(problems, fmt.Sprintf("%s: expected %s, got %s", w.name, w.dataType, got.dataType))
		}
		if got.notNull != w.notNull {
			problems = append(problems, fmt.Sprintf("%s: expected nullable=%v, got nullable=%v", w.name, !w.notNull, !got.notNull))
		}
	}

	if len(missing) > 0 {
		problems = append([]string{"missing columns: " + strings.Join(missing, ", ")}, problems...)
	}
	return problems
}
