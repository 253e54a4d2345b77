package domain

import (
	"cmp"
	"slices"
	"strings"
)

// Rule describes how one waste fraction is offered within one neighborhood.
// Empty strings mean the field is absent.
type Rule struct {
	Neighborhood   NeighborhoodKey
	Fraction       string
	Instruction    string
	CollectionDays string
	Frequency      string
	PutOut         string
	Where          string
	Remark         string
	Notice         string
	NoticeFrom     string
	NoticeUntil    string
}

// IsEmpty reports whether the rule carries no instruction at all.
func (r Rule) IsEmpty() bool {
	return r.Instruction == "" &&
		r.CollectionDays == "" &&
		r.Frequency == "" &&
		r.PutOut == "" &&
		r.Where == "" &&
		r.Remark == "" &&
		r.Notice == "" &&
		r.NoticeFrom == "" &&
		r.NoticeUntil == ""
}

func (r Rule) fields() []string {
	return []string{
		r.Neighborhood.Locality,
		r.Neighborhood.Neighborhood,
		r.Fraction,
		r.Instruction,
		r.CollectionDays,
		r.Frequency,
		r.PutOut,
		r.Where,
		r.Remark,
		r.Notice,
		r.NoticeFrom,
		r.NoticeUntil,
	}
}

// CompareRules orders rules by fraction first, then by every remaining field.
func CompareRules(a, b Rule) int {
	if c := cmp.Compare(a.Fraction, b.Fraction); c != 0 {
		return c
	}
	return slices.Compare(a.fields(), b.fields())
}

// RuleSet is the sorted, deduplicated collection of rules of one address.
type RuleSet []Rule

// NewRuleSet sorts and deduplicates rules.
func NewRuleSet(rules []Rule) RuleSet {
	rs := slices.Clone(rules)
	slices.SortFunc(rs, CompareRules)
	return RuleSet(slices.Compact(rs))
}

// Neighborhood returns the neighborhood all rules of the set belong to.
func (rs RuleSet) Neighborhood() NeighborhoodKey {
	if len(rs) == 0 {
		return NeighborhoodKey{}
	}
	return rs[0].Neighborhood
}

const (
	fieldSeparator = "\x1f"
	ruleSeparator  = "\x1e"
)

// Key serializes the set so that equal content always gives an equal key.
func (rs RuleSet) Key() string {
	parts := make([]string, 0, len(rs))
	for _, r := range rs {
		parts = append(parts, strings.Join(r.fields(), fieldSeparator))
	}
	return strings.Join(parts, ruleSeparator)
}

func (rs RuleSet) Equal(other RuleSet) bool {
	return slices.Equal(rs, other)
}
