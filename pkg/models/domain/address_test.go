package domain

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSuffix(t *testing.T) {
	assert.Equal(t, "", NewSuffix("", ""))
	assert.Equal(t, "A", NewSuffix("A", ""))
	assert.Equal(t, "A-2", NewSuffix("A", "2"))
	assert.Equal(t, "-H", NewSuffix("", "H"))
}

func TestCompareAddresses_HouseMarkerFirst(t *testing.T) {
	addr := func(num int, suffix string) Address {
		return Address{Locality: "Amsterdam", Neighborhood: "A00a", Street: "Dam", HouseNumber: num, Suffix: suffix}
	}
	got := []Address{addr(23, "-1"), addr(24, ""), addr(23, "-H"), addr(23, ""), addr(23, "A"), addr(23, "-2")}
	slices.SortFunc(got, CompareAddresses)

	want := []Address{addr(23, ""), addr(23, "-H"), addr(23, "-1"), addr(23, "-2"), addr(23, "A"), addr(24, "")}
	assert.Equal(t, want, got)
}

func TestSuffixSortKey_KeepsLetter(t *testing.T) {
	assert.Equal(t, "H", SuffixSortKey("H"))
	assert.Equal(t, "H- ", SuffixSortKey("H-H"))
	assert.Equal(t, "A-1", SuffixSortKey("A-1"))
}

func TestHouseNumberRange_Text(t *testing.T) {
	single := HouseNumberRange{Street: "Silodam", StartNumber: 17, EndNumber: 17}
	assert.True(t, single.IsSingle())
	assert.Equal(t, "17", single.Text())

	run := HouseNumberRange{Street: "Silodam", StartNumber: 1, StartSuffix: "A", EndNumber: 465, EndSuffix: "B"}
	assert.Equal(t, "1A–465B", run.Text())

	plain := HouseNumberRange{Street: "Dam", StartNumber: 5, EndNumber: 7}
	assert.Equal(t, "5–7", plain.Text())
}

func TestRuleSet_KeyIsOrderIndependent(t *testing.T) {
	hood := NeighborhoodKey{Locality: "Amsterdam", Neighborhood: "A00a"}
	paper := Rule{Neighborhood: hood, Fraction: "Papier", Where: "Container"}
	glass := Rule{Neighborhood: hood, Fraction: "Glas", Where: "Container"}
	rest := Rule{Neighborhood: hood, Fraction: "Rest", CollectionDays: "maandag"}

	a := NewRuleSet([]Rule{paper, glass, rest, paper})
	b := NewRuleSet([]Rule{rest, paper, glass})

	assert.Len(t, a, 3)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "Glas", a[0].Fraction)
	assert.Equal(t, hood, a.Neighborhood())
}

func TestRule_IsEmpty(t *testing.T) {
	assert.True(t, Rule{Fraction: "Rest"}.IsEmpty())
	assert.False(t, Rule{Fraction: "Rest", Remark: "x"}.IsEmpty())
}

func TestFilters(t *testing.T) {
	f := Filters{}.With("woonfunctie", true).With("stadsdeel", "West").With("woonfunctie", false)

	v, ok := f.Get("woonfunctie")
	assert.True(t, ok)
	assert.Equal(t, false, v)
	assert.Len(t, f, 2)
	assert.Equal(t, "False", FormatValue(v))
	assert.Equal(t, "12", FormatValue(12))
}
