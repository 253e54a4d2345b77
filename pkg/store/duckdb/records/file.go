package records

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/models/store"
	"github.com/de-tools/afvalwijzer/pkg/store/duckdb"
)

// FileStore reads and writes the raw export in a DuckDB database file.
type FileStore struct {
	settings duckdb.Settings
}

func NewFileStore(path string) *FileStore {
	return &FileStore{settings: duckdb.Settings{DbPath: path}}
}

func (f *FileStore) Read(ctx context.Context, filters domain.Filters) ([]store.Record, error) {
	db, err := duckdb.NewDB(f.settings)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.settings.DbPath, err)
	}
	defer db.Close()

	s, err := NewStore(db)
	if err != nil {
		return nil, err
	}
	return s.Query(ctx, filters)
}

// Write replaces the contents of the table in one transaction.
func (f *FileStore) Write(ctx context.Context, records []store.Record, _ domain.Filters) error {
	db, err := duckdb.NewDB(f.settings)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.settings.DbPath, err)
	}
	defer db.Close()

	s, err := NewStore(db)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := s.Replace(duckdb.WithTransaction(ctx, tx), records); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			zerolog.Ctx(ctx).Error().Err(rbErr).Msg("failed to rollback transaction")
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", f.settings.DbPath).
		Int("records", len(records)).
		Msg("wrote duckdb records")
	return nil
}
