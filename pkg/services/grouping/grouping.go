// Package grouping collapses per-address rule records into address groups
// sharing an identical rule set within a neighborhood.
package grouping

import (
	"slices"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
)

type groupKey struct {
	neighborhood domain.NeighborhoodKey
	rules        string
}

// Group builds the address groups for a run. Input order does not matter:
// equal input sets always give equal groups in equal order.
//
// Addresses whose rules are all empty have no matching rule and are left out.
// An empty rule next to other rules is kept: it still names its fraction.
func Group(entries []domain.Entry) []domain.AddressGroup {
	rulesByAddress := make(map[domain.Address]map[domain.Rule]struct{})
	for _, e := range entries {
		rules, ok := rulesByAddress[e.Address]
		if !ok {
			rules = make(map[domain.Rule]struct{})
			rulesByAddress[e.Address] = rules
		}
		rules[e.Rule] = struct{}{}
	}

	groups := make(map[groupKey]*domain.AddressGroup)
	for address, rules := range rulesByAddress {
		if allEmpty(rules) {
			continue
		}

		rs := make([]domain.Rule, 0, len(rules))
		for r := range rules {
			rs = append(rs, r)
		}
		ruleSet := domain.NewRuleSet(rs)

		key := groupKey{neighborhood: ruleSet.Neighborhood(), rules: ruleSet.Key()}
		g, ok := groups[key]
		if !ok {
			g = &domain.AddressGroup{Neighborhood: key.neighborhood, Rules: ruleSet}
			groups[key] = g
		}
		g.Addresses = append(g.Addresses, address)
	}

	result := make([]domain.AddressGroup, 0, len(groups))
	for _, g := range groups {
		slices.SortFunc(g.Addresses, domain.CompareAddresses)
		result = append(result, *g)
	}
	slices.SortFunc(result, compareGroups)

	return result
}

func allEmpty(rules map[domain.Rule]struct{}) bool {
	for r := range rules {
		if !r.IsEmpty() {
			return false
		}
	}
	return true
}

// compareGroups orders groups by neighborhood, then by their smallest
// address. The rule set key breaks the remaining tie, which only occurs for
// groups without addresses.
func compareGroups(a, b domain.AddressGroup) int {
	if c := domain.CompareNeighborhoods(a.Neighborhood, b.Neighborhood); c != 0 {
		return c
	}
	if len(a.Addresses) > 0 && len(b.Addresses) > 0 {
		if c := domain.CompareAddresses(a.Addresses[0], b.Addresses[0]); c != 0 {
			return c
		}
	}
	return slices.CompareFunc(a.Rules, b.Rules, domain.CompareRules)
}

// Addresses returns the distinct addresses of all entries in address order,
// including those without a matching rule. This is the address universe.
func Addresses(entries []domain.Entry) []domain.Address {
	seen := make(map[domain.Address]struct{}, len(entries))
	addresses := make([]domain.Address, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Address]; ok {
			continue
		}
		seen[e.Address] = struct{}{}
		addresses = append(addresses, e.Address)
	}
	slices.SortFunc(addresses, domain.CompareAddresses)
	return addresses
}

// Neighborhoods counts the groups per neighborhood, in group order.
func Neighborhoods(groups []domain.AddressGroup) ([]domain.NeighborhoodKey, map[domain.NeighborhoodKey]int) {
	var order []domain.NeighborhoodKey
	counts := make(map[domain.NeighborhoodKey]int)
	for _, g := range groups {
		if _, ok := counts[g.Neighborhood]; !ok {
			order = append(order, g.Neighborhood)
		}
		counts[g.Neighborhood]++
	}
	return order, counts
}
