package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

// WasteRecordsTable holds the raw export, one row per address and fraction.
// seq keeps the insertion order.
const WasteRecordsTable = `
	CREATE TABLE IF NOT EXISTS waste_records (
		seq INTEGER NOT NULL,
		woonfunctie VARCHAR NOT NULL DEFAULT '',
		stadsdeel VARCHAR NOT NULL DEFAULT '',
		plaatsnaam VARCHAR NOT NULL DEFAULT '',
		buurtnaam VARCHAR NOT NULL DEFAULT '',
		afvalfractie VARCHAR NOT NULL DEFAULT '',
		instructie VARCHAR NOT NULL DEFAULT '',
		ophaaldagen VARCHAR NOT NULL DEFAULT '',
		frequentie VARCHAR NOT NULL DEFAULT '',
		buitenzetten VARCHAR NOT NULL DEFAULT '',
		waar VARCHAR NOT NULL DEFAULT '',
		opmerking VARCHAR NOT NULL DEFAULT '',
		melding VARCHAR NOT NULL DEFAULT '',
		melding_van VARCHAR NOT NULL DEFAULT '',
		melding_tot VARCHAR NOT NULL DEFAULT '',
		straatnaam VARCHAR NOT NULL DEFAULT '',
		huisnummer VARCHAR NOT NULL DEFAULT '',
		huisletter VARCHAR NOT NULL DEFAULT '',
		huisnummertoevoeging VARCHAR NOT NULL DEFAULT '',
		PRIMARY KEY (seq)
	);
`

var bootQueries = []string{
	WasteRecordsTable,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
