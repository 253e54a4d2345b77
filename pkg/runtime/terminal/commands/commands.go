package commands

import (
	"context"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/services/convert"
)

// Converter is the part of convert.Converter the commands use.
type Converter interface {
	Convert(ctx context.Context, in, out string, filters domain.Filters) error
	Neighborhoods(ctx context.Context, in string, filters domain.Filters) ([]convert.NeighborhoodSummary, error)
	Formats() []convert.FormatInfo
}
