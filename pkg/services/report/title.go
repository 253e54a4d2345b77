package report

import (
	"fmt"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/models/store"
	"github.com/de-tools/afvalwijzer/pkg/services/normalize"
)

const baseTitle = "Waste guide"

// Title derives the document title from the filters the records were read with.
func Title(filters domain.Filters) string {
	title := baseTitle

	if v, ok := filters.Get(store.Columns[store.ColResidential]); ok {
		if isResidential(v) {
			title += " for residents"
		} else {
			title += " for businesses"
		}
	}
	if v, ok := filters.Get(store.Columns[store.ColDistrict]); ok {
		title += fmt.Sprintf(" in district %s", domain.FormatValue(v))
	}

	return title
}

func isResidential(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case int:
		return val != 0
	default:
		return normalize.ParseBool(domain.FormatValue(v))
	}
}
