// Package csvfile reads and writes the raw export as comma separated values.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/models/store"
)

const delimiter = ','

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Read(ctx context.Context, filters domain.Filters) ([]store.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	records, err := Decode(ctx, f, s.path, filters)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", s.path).
		Int("records", len(records)).
		Msg("read csv records")
	return records, nil
}

// Write stores the records as is. The filters are the ones the records were
// read with; the raw export has no place for them.
func (s *Store) Write(ctx context.Context, records []store.Record, _ domain.Filters) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", s.path, err)
	}

	if err := Encode(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", s.path, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", s.path).
		Int("records", len(records)).
		Msg("wrote csv records")
	return nil
}

// Decode parses a raw export. The header is matched by name, so reordered
// columns are accepted. Filtered out rows are dropped.
func Decode(ctx context.Context, r io.Reader, source string, filters domain.Filters) ([]store.Record, error) {
	matcher, err := store.NewMatcher(source, filters)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &store.SchemaError{Source: source, Expected: store.Columns[:]}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", source, err)
	}

	remap, err := store.MatchHeader(source, header)
	if err != nil {
		return nil, err
	}
	if !remap.IsIdentity() {
		zerolog.Ctx(ctx).Warn().
			Str("source", source).
			Strs("header", header).
			Msg("columns are reordered by name")
	}

	var records []store.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", source, err)
		}

		rec := remap.Apply(row)
		if matcher.Match(rec) {
			records = append(records, rec)
		}
	}

	return records, nil
}

// Encode writes the header with capitalized column names followed by the
// records.
func Encode(w io.Writer, records []store.Record) error {
	writer := csv.NewWriter(w)
	writer.Comma = delimiter

	if err := writer.Write(store.HeaderRow()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, rec := range records {
		if err := writer.Write(rec[:]); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
