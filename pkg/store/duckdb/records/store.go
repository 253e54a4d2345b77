package records

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/models/store"
	"github.com/de-tools/afvalwijzer/pkg/store/duckdb"
)

// Store keeps raw records in the waste_records table.
// Replace runs inside the transaction carried by ctx, if any.
type Store interface {
	Replace(ctx context.Context, records []store.Record) error
	Query(ctx context.Context, filters domain.Filters) ([]store.Record, error)
}

type recordStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &recordStore{
		db: db,
	}, nil
}

var columnList = strings.Join(store.Columns[:], ", ")

func (r *recordStore) Replace(ctx context.Context, records []store.Record) error {
	tx := duckdb.GetTransaction(ctx)

	exec := r.db.ExecContext
	prepare := r.db.PrepareContext
	if tx != nil {
		exec = tx.ExecContext
		prepare = tx.PrepareContext
	}

	if _, err := exec(ctx, `DELETE FROM waste_records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", int(store.ColumnCount)+1), ", ")
	query := fmt.Sprintf(`INSERT INTO waste_records (seq, %s) VALUES (%s)`, columnList, placeholders)

	stmt, err := prepare(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	args := make([]any, int(store.ColumnCount)+1)
	for i, rec := range records {
		args[0] = i
		for j, v := range rec {
			args[j+1] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert record %d: %w", i+1, err)
		}
	}

	return nil
}

// Query returns the records matching all filters in insertion order. Values
// compare case-insensitively, like the file based stores.
func (r *recordStore) Query(ctx context.Context, filters domain.Filters) ([]store.Record, error) {
	var (
		conditions []string
		args       []any
	)
	for _, f := range filters {
		idx := store.ColumnIndex(f.Field)
		if idx < 0 {
			return nil, &store.SchemaError{
				Source:   "waste_records filters",
				Expected: store.Columns[:],
				Found:    []string{f.Field},
				Missing:  []string{f.Field},
			}
		}
		conditions = append(conditions, fmt.Sprintf("lower(%s) = lower(?)", store.Columns[idx]))
		args = append(args, domain.FormatValue(f.Value))
	}

	query := fmt.Sprintf(`SELECT %s FROM waste_records`, columnList)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY seq"

	zerolog.Ctx(ctx).Debug().Str("query", query).Msg("query waste records")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]store.Record, error) {
	records := make([]store.Record, 0)
	for rows.Next() {
		var rec store.Record
		dest := make([]any, len(rec))
		for i := range rec {
			dest[i] = &rec[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
