package convert

import (
	"context"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/services/grouping"
)

// NeighborhoodSummary tells how many rule sets and addresses a chapter has.
type NeighborhoodSummary struct {
	Neighborhood domain.NeighborhoodKey
	Groups       int
	Addresses    int
}

// Neighborhoods reads in and summarizes the chapters a report would have.
func (c *Converter) Neighborhoods(ctx context.Context, in string, filters domain.Filters) ([]NeighborhoodSummary, error) {
	records, err := c.Read(ctx, in, filters)
	if err != nil {
		return nil, err
	}
	entries, err := c.normalizer.NormalizeAll(records)
	if err != nil {
		return nil, err
	}

	groups := grouping.Group(entries)
	keys, counts := grouping.Neighborhoods(groups)

	addresses := make(map[domain.NeighborhoodKey]int, len(keys))
	for _, g := range groups {
		addresses[g.Neighborhood] += len(g.Addresses)
	}

	summaries := make([]NeighborhoodSummary, 0, len(keys))
	for _, key := range keys {
		summaries = append(summaries, NeighborhoodSummary{
			Neighborhood: key,
			Groups:       counts[key],
			Addresses:    addresses[key],
		})
	}
	return summaries, nil
}
