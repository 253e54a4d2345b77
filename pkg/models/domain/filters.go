package domain

import (
	"fmt"
	"strconv"
)

// Filter is a single equality condition on a raw source column.
type Filter struct {
	Field string
	Value any
}

// Filters are applied conjunctively by the source readers, in order.
type Filters []Filter

func (f Filters) Get(field string) (any, bool) {
	for _, flt := range f {
		if flt.Field == field {
			return flt.Value, true
		}
	}
	return nil, false
}

func (f Filters) With(field string, value any) Filters {
	out := make(Filters, 0, len(f)+1)
	for _, flt := range f {
		if flt.Field != field {
			out = append(out, flt)
		}
	}
	return append(out, Filter{Field: field, Value: value})
}

// FormatValue renders a filter value the way the raw export writes it.
func FormatValue(v any) string {
	switch val := v.(type) {
	case bool:
		if val {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(val)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
