package store

import (
	"strings"
)

// Column indexes into a Record. The order is the column order of the raw
// export and must not change.
const (
	ColResidential = iota
	ColDistrict
	ColLocality
	ColNeighborhood
	ColFraction
	ColInstruction
	ColCollectionDays
	ColFrequency
	ColPutOut
	ColWhere
	ColRemark
	ColNotice
	ColNoticeFrom
	ColNoticeUntil
	ColStreet
	ColHouseNumber
	ColHouseLetter
	ColHouseNumberAddition

	ColumnCount
)

// Columns are the names of the raw export columns, lower case.
var Columns = [ColumnCount]string{
	"woonfunctie",
	"stadsdeel",
	"plaatsnaam",
	"buurtnaam",
	"afvalfractie",
	"instructie",
	"ophaaldagen",
	"frequentie",
	"buitenzetten",
	"waar",
	"opmerking",
	"melding",
	"melding_van",
	"melding_tot",
	"straatnaam",
	"huisnummer",
	"huisletter",
	"huisnummertoevoeging",
}

// Record is one raw source row: an address bound to the rule of one waste
// fraction. Values are untransformed text; absent values are empty.
type Record [ColumnCount]string

// RecordFromValues copies values into a record. Missing trailing values stay
// empty, extra values are ignored.
func RecordFromValues(values []string) Record {
	var rec Record
	copy(rec[:], values)
	return rec
}

func (r Record) Get(column string) (string, bool) {
	idx := ColumnIndex(column)
	if idx < 0 {
		return "", false
	}
	return r[idx], true
}

func (r Record) Values() []string {
	return append([]string(nil), r[:]...)
}

// ColumnIndex returns the index of a column name, case-insensitive, or -1.
func ColumnIndex(name string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, col := range Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// HeaderRow returns the header written by the raw exporters: capitalized
// column names.
func HeaderRow() []string {
	header := make([]string, ColumnCount)
	for i, col := range Columns {
		header[i] = strings.ToUpper(col[:1]) + col[1:]
	}
	return header
}
