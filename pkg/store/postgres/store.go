// Package postgres reads the raw export straight from the waste guide
// database. The connection parameters live in a .yaml or .ini file.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/models/store"
)

const driverName = "pgx"

// AddressStatuses are the address states that receive waste collection.
var AddressStatuses = []string{
	"Verblijfsobject in gebruik",
	"Plaats aangewezen",
	"Verbijfsobject in gebruik (niet ingemeten)",
}

// sourceColumns maps the raw record columns onto database expressions, in
// record order.
var sourceColumns = [store.ColumnCount]string{
	store.ColResidential:         "aa.gebruiksdoel_woonfunctie",
	store.ColDistrict:            "gs.naam",
	store.ColLocality:            "aa.woonplaatsnaam",
	store.ColNeighborhood:        "gb.naam",
	store.ColFraction:            "aa.afvalwijzer_fractie_naam",
	store.ColInstruction:         "CONCAT(aa.afvalwijzer_buttontekst, ' ', aa.afvalwijzer_instructie_2)",
	store.ColCollectionDays:      "aa.afvalwijzer_ophaaldagen_2",
	store.ColFrequency:           "aa.afvalwijzer_afvalkalender_frequentie",
	store.ColPutOut:              "aa.afvalwijzer_buitenzetten",
	store.ColWhere:               "aa.afvalwijzer_waar",
	store.ColRemark:              "aa.afvalwijzer_afvalkalender_opmerking",
	store.ColNotice:              "aa.afvalwijzer_afvalkalender_melding",
	store.ColNoticeFrom:          "aa.afvalwijzer_afvalkalender_van",
	store.ColNoticeUntil:         "aa.afvalwijzer_afvalkalender_tot",
	store.ColStreet:              "aa.straatnaam",
	store.ColHouseNumber:         "aa.huisnummer",
	store.ColHouseLetter:         "aa.huisletter",
	store.ColHouseNumberAddition: "aa.huisnummertoevoeging",
}

// selectExpr renders a column as text the way the raw export writes it.
func selectExpr(col int) string {
	if col == store.ColResidential {
		return fmt.Sprintf("CASE WHEN %s THEN 'True' ELSE 'False' END", sourceColumns[col])
	}
	return fmt.Sprintf("COALESCE(CAST(%s AS text), '')", sourceColumns[col])
}

// BuildQuery returns the query and its arguments. Placeholders are numbered
// for PostgreSQL.
func BuildQuery(filters domain.Filters) (string, []any, error) {
	selects := make([]string, 0, store.ColumnCount)
	for col := range store.ColumnCount {
		selects = append(selects, selectExpr(col))
	}

	args := make([]any, 0, len(AddressStatuses)+len(filters))
	placeholders := make([]string, 0, len(AddressStatuses))
	for _, status := range AddressStatuses {
		args = append(args, status)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	var conditions strings.Builder
	for _, f := range filters {
		col := store.ColumnIndex(f.Field)
		if col < 0 {
			return "", nil, &store.SchemaError{
				Source:   "database filters",
				Expected: store.Columns[:],
				Found:    []string{f.Field},
				Missing:  []string{f.Field},
			}
		}
		args = append(args, domain.FormatValue(f.Value))
		fmt.Fprintf(&conditions, "\n\tAND lower(%s) = lower($%d)", selectExpr(col), len(args))
	}

	query := fmt.Sprintf(`SELECT %s
	FROM afvalwijzer_afvalwijzer aa
	JOIN gebieden_buurten gb ON aa.gbd_buurt_id = gb.identificatie
	JOIN gebieden_wijken gw ON gb.ligt_in_wijk_id = gw.id
	JOIN gebieden_stadsdelen gs ON gw.ligt_in_stadsdeel_id = gs.id
	WHERE aa.status_adres IN (%s)
	AND gb.eind_geldigheid IS NULL%s
	ORDER BY %s`,
		strings.Join(selects, ", "),
		strings.Join(placeholders, ", "),
		conditions.String(),
		strings.Join(sourceColumns[:], ", "),
	)
	return query, args, nil
}

// Reader queries an open database.
type Reader struct {
	db *sql.DB
}

func NewReader(db *sql.DB) (*Reader, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &Reader{db: db}, nil
}

func (r *Reader) Query(ctx context.Context, filters domain.Filters) ([]store.Record, error) {
	query, args, err := BuildQuery(filters)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Str("query", query).Msg("query waste guide database")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", classify(err))
	}
	defer rows.Close()

	records := make([]store.Record, 0)
	for rows.Next() {
		var rec store.Record
		dest := make([]any, len(rec))
		for i := range rec {
			dest[i] = &rec[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Store is the file based entry point: its path names a params file.
type Store struct {
	path string
	open func(driverName, dsn string) (*sql.DB, error)
}

func NewStore(path string) *Store {
	return &Store{path: path, open: sql.Open}
}

func (s *Store) Read(ctx context.Context, filters domain.Filters) ([]store.Record, error) {
	params, err := LoadParams(s.path)
	if err != nil {
		return nil, err
	}

	db, err := s.open(driverName, params.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, classify(err)
	}
	zerolog.Ctx(ctx).Info().
		Str("host", params.Host).
		Str("dbname", params.DBName).
		Msg("connected to database")

	r, err := NewReader(db)
	if err != nil {
		return nil, err
	}
	return r.Query(ctx, filters)
}

func (s *Store) Write(context.Context, []store.Record, domain.Filters) error {
	return ErrWriteNotSupported
}
