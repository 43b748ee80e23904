package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"job-match/internal/database"
)

// EnsureTableColumns fails when table lacks any of columns, so seeding never
// runs against an unmigrated schema.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return errors.New("nil db")
	}
	if table == "" {
		return errors.New("empty table")
	}

	rows, err := db.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: %s missing columns %s", table, strings.Join(missing, ", "))
	}
	return nil
}
