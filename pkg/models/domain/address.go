package domain

import (
	"cmp"
	"fmt"
	"strings"
)

// houseMarker is the addition that denotes the main dwelling of a building.
// "23-H" is listed before "23-1".
const houseMarker = "H"

// NeighborhoodKey identifies a report chapter.
type NeighborhoodKey struct {
	Locality     string
	Neighborhood string
}

func (n NeighborhoodKey) String() string {
	return fmt.Sprintf("%s, neighborhood %s", n.Locality, n.Neighborhood)
}

func CompareNeighborhoods(a, b NeighborhoodKey) int {
	return cmp.Or(
		cmp.Compare(a.Locality, b.Locality),
		cmp.Compare(a.Neighborhood, b.Neighborhood),
	)
}

// StreetKey scopes the house number universe used for range detection.
type StreetKey struct {
	Locality     string
	Neighborhood string
	Street       string
}

// Address is one dwelling or business unit. Suffix holds the house letter,
// followed by "-<addition>" when the source has a house number addition.
type Address struct {
	Locality     string
	Neighborhood string
	Street       string
	HouseNumber  int
	Suffix       string
}

// NewSuffix combines a house letter and a house number addition.
func NewSuffix(letter, addition string) string {
	if addition == "" {
		return letter
	}
	return letter + "-" + addition
}

func (a Address) NeighborhoodKey() NeighborhoodKey {
	return NeighborhoodKey{Locality: a.Locality, Neighborhood: a.Neighborhood}
}

func (a Address) StreetKey() StreetKey {
	return StreetKey{Locality: a.Locality, Neighborhood: a.Neighborhood, Street: a.Street}
}

func (a Address) HouseNumberText() string {
	return fmt.Sprintf("%d%s", a.HouseNumber, a.Suffix)
}

func (a Address) String() string {
	return fmt.Sprintf("%s %s", a.Street, a.HouseNumberText())
}

// SuffixSortKey returns the key used to order suffixes. Only the addition
// part is rewritten: the house marker becomes a space so it sorts before
// digits and letters. The house letter is kept as is.
func SuffixSortKey(suffix string) string {
	letter, addition, found := strings.Cut(suffix, "-")
	if !found {
		return suffix
	}
	return letter + "-" + strings.ReplaceAll(addition, houseMarker, " ")
}

// CompareHouseNumbers orders (number, suffix) pairs within one street.
func CompareHouseNumbers(numA int, suffixA string, numB int, suffixB string) int {
	return cmp.Or(
		cmp.Compare(numA, numB),
		cmp.Compare(SuffixSortKey(suffixA), SuffixSortKey(suffixB)),
		cmp.Compare(suffixA, suffixB),
	)
}

// CompareAddresses is the total order of addresses in reports.
func CompareAddresses(a, b Address) int {
	return cmp.Or(
		cmp.Compare(a.Locality, b.Locality),
		cmp.Compare(a.Neighborhood, b.Neighborhood),
		cmp.Compare(a.Street, b.Street),
		CompareHouseNumbers(a.HouseNumber, a.Suffix, b.HouseNumber, b.Suffix),
	)
}

// HouseNumberRange is a compacted run of addresses within one street. A single
// address has equal start and end.
type HouseNumberRange struct {
	Street      string
	StartNumber int
	StartSuffix string
	EndNumber   int
	EndSuffix   string
}

func (r HouseNumberRange) IsSingle() bool {
	return r.StartNumber == r.EndNumber && r.StartSuffix == r.EndSuffix
}

// Text renders the house number part, e.g. "1A–465B" or "17".
func (r HouseNumberRange) Text() string {
	if r.IsSingle() {
		return fmt.Sprintf("%d%s", r.StartNumber, r.StartSuffix)
	}
	return fmt.Sprintf("%d%s–%d%s", r.StartNumber, r.StartSuffix, r.EndNumber, r.EndSuffix)
}
