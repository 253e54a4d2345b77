// Package report turns address groups into a stream of document events.
package report

import (
	"fmt"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
)

// Renderer receives the document events in order. Formatting is entirely up
// to the implementation.
type Renderer interface {
	OnNeighborhood(key domain.NeighborhoodKey) error
	OnAddresses(lines []string) error
	OnRuleSet(rules domain.RuleSet) error
}

// AddressFormatter compacts the addresses of one group into display lines.
type AddressFormatter interface {
	Render(addresses []domain.Address) ([]string, error)
}

// Assemble walks the groups in order. A neighborhood heading is emitted only
// when the neighborhood differs from the previous group.
func Assemble(groups []domain.AddressGroup, addresses AddressFormatter, r Renderer) error {
	var current *domain.NeighborhoodKey

	for i := range groups {
		group := &groups[i]

		if current == nil || *current != group.Neighborhood {
			if err := r.OnNeighborhood(group.Neighborhood); err != nil {
				return fmt.Errorf("failed to render neighborhood %s: %w", group.Neighborhood, err)
			}
			current = &group.Neighborhood
		}

		lines, err := addresses.Render(group.Addresses)
		if err != nil {
			return fmt.Errorf("failed to compact addresses of %s: %w", group.Neighborhood, err)
		}
		if err := r.OnAddresses(lines); err != nil {
			return fmt.Errorf("failed to render addresses: %w", err)
		}
		if err := r.OnRuleSet(group.Rules); err != nil {
			return fmt.Errorf("failed to render rule set: %w", err)
		}
	}

	return nil
}
