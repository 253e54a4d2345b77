// Package xlsx reads and writes the raw export as an Excel workbook. Exports
// made with Power BI name their headers "Tabel1[column]"; both forms are read.
package xlsx

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/models/store"
)

const (
	sheetName  = "Afvalwijzer"
	tableName  = "Tabel1"
	tableStyle = "TableStyleMedium9"
)

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Read uses the first sheet of the workbook.
func (s *Store) Read(ctx context.Context, filters domain.Filters) ([]store.Record, error) {
	matcher, err := store.NewMatcher(s.path, filters)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", s.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", s.path, err)
	}
	if len(rows) == 0 {
		return nil, &store.SchemaError{Source: s.path, Expected: store.Columns[:]}
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = store.TableHeader(h)
	}
	remap, err := store.MatchHeader(s.path, header)
	if err != nil {
		return nil, err
	}

	records := make([]store.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := remap.Apply(row)
		if matcher.Match(rec) {
			records = append(records, rec)
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", s.path).
		Int("rows", len(rows)-1).
		Int("records", len(records)).
		Msg("read xlsx records")
	return records, nil
}

// Write creates a workbook with a bold header and an Excel table over all
// records.
func (s *Store) Write(ctx context.Context, records []store.Record, _ domain.Filters) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	header := store.HeaderRow()
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(int(store.ColumnCount), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, rec := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := rec.Values()
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if len(records) > 0 {
		end, _ := excelize.CoordinatesToCellName(int(store.ColumnCount), len(records)+1)
		showStripes := true
		if err := f.AddTable(sheetName, &excelize.Table{
			Range:          "A1:" + end,
			Name:           tableName,
			StyleName:      tableStyle,
			ShowRowStripes: &showStripes,
		}); err != nil {
			return fmt.Errorf("failed to add table: %w", err)
		}
	}

	for i := range store.ColumnCount {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, col, col, 15)
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", s.path, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", s.path).
		Int("records", len(records)).
		Msg("wrote xlsx records")
	return nil
}
