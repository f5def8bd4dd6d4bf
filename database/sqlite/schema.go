package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sagarc03/challengedb"
)

// column is the part of a column definition the server depends on.
type column struct {
	name     string
	dataType string
	notNull  bool
}

// challengeColumns is the expected layout of the challenges table, in
// declaration order.
var challengeColumns = []column{
	{"id", "integer", true},
	{"name", "text", true},
	{"description", "text", true},
	{"date", "text", true},
}

// ValidateSchema checks that the challenges table exists with the columns the
// repo reads and writes. Extra columns are allowed.
func ValidateSchema(ctx context.Context, db *sql.DB, tables challengedb.Tables) error {
	table := tables.Challenges
	if !challengedb.IsValidTableName(table) {
		return fmt.Errorf("validate schema: invalid table name: %s", table)
	}

	actual, err := readColumns(ctx, db, table)
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

// readColumns returns the table's columns keyed by name. PRAGMA table_info
// yields no rows for a missing table.
func readColumns(ctx context.Context, db *sql.DB, table string) (map[string]column, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%s)`, quoteIdentifier(table)))
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns := make(map[string]column)
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, dataType   string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &dataType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		columns[name] = column{name: name, dataType: strings.ToLower(dataType), notNull: notNull == 1}
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
