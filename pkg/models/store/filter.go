package store

import (
	"strings"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
)

// Matcher tests raw records against filters.
type Matcher struct {
	columns []int
	values  []string
}

// NewMatcher validates the filter fields against Columns.
func NewMatcher(source string, filters domain.Filters) (*Matcher, error) {
	m := &Matcher{}
	var unknown []string
	for _, f := range filters {
		idx := ColumnIndex(f.Field)
		if idx < 0 {
			unknown = append(unknown, f.Field)
			continue
		}
		m.columns = append(m.columns, idx)
		m.values = append(m.values, domain.FormatValue(f.Value))
	}
	if len(unknown) > 0 {
		return nil, &SchemaError{
			Source:   source + " filters",
			Expected: Columns[:],
			Found:    unknown,
			Missing:  unknown,
		}
	}
	return m, nil
}

// Match reports whether rec satisfies all filters. Values compare
// case-insensitively so that "TRUE" from a spreadsheet equals "True". An empty
// matcher matches everything.
func (m *Matcher) Match(rec Record) bool {
	for i, col := range m.columns {
		if !strings.EqualFold(rec[col], m.values[i]) {
			return false
		}
	}
	return true
}

// Filter keeps the matching records.
func (m *Matcher) Filter(records []Record) []Record {
	if len(m.columns) == 0 {
		return records
	}
	out := records[:0:0]
	for _, rec := range records {
		if m.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}
