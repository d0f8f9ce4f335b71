package source

import (
	"context"
	"fmt"

	"github.com/imgajeed76/tabview/internal/util"
	"github.com/imgajeed76/tabview/internal/view"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// QueryPostgres runs query against the PostgreSQL database at url and loads
// the result set. Column labels are the result column names.
func QueryPostgres(ctx context.Context, url, query string) (*Table, error) {
	config, err := pgx.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("invalid connection URL: %w", err)
	}

	conn, err := pgx.ConnectConfig(ctx, config)
	if err != nil {
		return nil, util.DatabaseConnectionError("postgres", redactURL(config), err)
	}
	defer conn.Close(context.Background())

	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	descs := rows.FieldDescriptions()
	names := make([]string, len(descs))
	for i, fd := range descs {
		names[i] = fd.Name
	}
	cols, err := fromHeader(names)
	if err != nil {
		return nil, err
	}

	t := &Table{Columns: cols}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		fields := make([]view.Field, len(cols))
		for i, col := range cols {
			fields[i] = view.Field{Key: col.Key, Value: pgValue(values[i])}
		}
		t.Records = append(t.Records, view.NewRecord(fields...))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return t, nil
}

// pgValue converts pgx's decoded values. NUMERIC arrives as pgtype.Numeric
// and is kept numeric when it fits a float64.
func pgValue(v any) any {
	switch x := v.(type) {
	case pgtype.Numeric:
		if !x.Valid {
			return nil
		}
		f, err := x.Float64Value()
		if err == nil && f.Valid {
			return f.Float64
		}
		return fmt.Sprint(x)
	case [16]byte:
		// uuid
		return fmt.Sprintf("%x-%x-%x-%x-%x", x[0:4], x[4:6], x[6:8], x[8:10], x[10:16])
	}
	return normalize(v)
}

func redactURL(config *pgx.ConnConfig) string {
	return fmt.Sprintf("%s@%s:%d/%s", config.User, config.Host, config.Port, config.Database)
}
