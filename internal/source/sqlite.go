package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/imgajeed76/tabview/internal/util"
	"github.com/imgajeed76/tabview/internal/view"

	_ "modernc.org/sqlite"
)

// QuerySQLite runs query against the SQLite database file at path and
// loads the result set. Column labels are the result column names.
func QuerySQLite(ctx context.Context, path, query string) (*Table, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, util.DatabaseConnectionError("sqlite", path, err)
	}

	return queryDB(ctx, db, query)
}

func queryDB(ctx context.Context, db *sql.DB, query string) (*Table, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	cols, err := fromHeader(names)
	if err != nil {
		return nil, err
	}

	t := &Table{Columns: cols}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		fields := make([]view.Field, len(cols))
		for i, col := range cols {
			fields[i] = view.Field{Key: col.Key, Value: normalize(values[i])}
		}
		t.Records = append(t.Records, view.NewRecord(fields...))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return t, nil
}
