package store

import (
	"fmt"
	"strings"
)

// SchemaError is returned when a source header does not match the expected
// column set.
type SchemaError struct {
	Source   string
	Expected []string
	Found    []string
	Missing  []string
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("schema error: header of %s is not recognized", e.Source)
	if len(e.Missing) > 0 {
		msg += fmt.Sprintf(": missing columns %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s (expected %q, found %q)", msg, e.Expected, e.Found)
}

// Remap maps the positions of a source row onto a Record.
type Remap struct {
	index    [ColumnCount]int
	identity bool
}

// MatchHeader compares a source header with Columns. Names are matched
// case-insensitively. When all columns are present in another order, the
// returned Remap reorders rows by name.
func MatchHeader(source string, found []string) (Remap, error) {
	normalized := make([]string, len(found))
	for i, h := range found {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var (
		remap    Remap
		missing  []string
		identity = len(normalized) == int(ColumnCount)
	)
	for i, col := range Columns {
		pos := indexOf(normalized, col)
		if pos < 0 {
			missing = append(missing, col)
			continue
		}
		remap.index[i] = pos
		identity = identity && pos == i
	}

	if len(missing) > 0 {
		return Remap{}, &SchemaError{
			Source:   source,
			Expected: Columns[:],
			Found:    found,
			Missing:  missing,
		}
	}

	remap.identity = identity
	return remap, nil
}

func (m Remap) IsIdentity() bool {
	return m.identity
}

// Apply builds a record from a source row.
func (m Remap) Apply(row []string) Record {
	if m.identity {
		return RecordFromValues(row)
	}
	var rec Record
	for i, pos := range m.index {
		if pos < len(row) {
			rec[i] = row[pos]
		}
	}
	return rec
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	return -1
}

// TableHeader reduces an Excel table header such as "Tabel1[huisnummer]" to
// the plain column name.
func TableHeader(val string) string {
	if i := strings.LastIndex(val, "["); i >= 0 {
		val = val[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(strings.TrimSuffix(val, "]")))
}
