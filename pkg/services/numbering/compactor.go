package numbering

import (
	"slices"
	"strings"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
)

type houseNumber struct {
	number int
	suffix string
}

func compareHouseNumbers(a, b houseNumber) int {
	return domain.CompareHouseNumbers(a.number, a.suffix, b.number, b.suffix)
}

// Compactor knows every address of every street. Two addresses are adjacent
// when no other known address of the street lies between them, whether or
// not that address is printed.
type Compactor struct {
	streets map[domain.StreetKey][]houseNumber
}

// Build indexes the full address universe.
func Build(addresses []domain.Address) *Compactor {
	streets := make(map[domain.StreetKey][]houseNumber)
	for _, a := range addresses {
		key := a.StreetKey()
		streets[key] = append(streets[key], houseNumber{number: a.HouseNumber, suffix: a.Suffix})
	}
	for key, numbers := range streets {
		slices.SortFunc(numbers, compareHouseNumbers)
		streets[key] = slices.Compact(numbers)
	}
	return &Compactor{streets: streets}
}

// position returns the index of a in its street universe.
func (c *Compactor) position(a domain.Address) (int, error) {
	numbers := c.streets[a.StreetKey()]
	idx, found := slices.BinarySearchFunc(numbers, houseNumber{number: a.HouseNumber, suffix: a.Suffix}, compareHouseNumbers)
	if !found {
		return 0, &UnknownAddressError{Address: a}
	}
	return idx, nil
}

type run struct {
	street domain.StreetKey
	start  domain.Address
	end    domain.Address
	last   int
}

func (r run) houseNumberRange() domain.HouseNumberRange {
	return domain.HouseNumberRange{
		Street:      r.start.Street,
		StartNumber: r.start.HouseNumber,
		StartSuffix: r.start.Suffix,
		EndNumber:   r.end.HouseNumber,
		EndSuffix:   r.end.Suffix,
	}
}

// runs compacts addresses into runs. The input must be sorted in address
// order; a run extends only while each address is the direct successor of the
// previous one in the universe of the same street.
func (c *Compactor) runs(addresses []domain.Address) ([]run, error) {
	var runs []run
	for _, a := range addresses {
		pos, err := c.position(a)
		if err != nil {
			return nil, err
		}

		street := a.StreetKey()
		if n := len(runs); n > 0 && runs[n-1].street == street && pos == runs[n-1].last+1 {
			runs[n-1].end = a
			runs[n-1].last = pos
			continue
		}
		runs = append(runs, run{street: street, start: a, end: a, last: pos})
	}
	return runs, nil
}

// Ranges returns the maximal runs of addresses, in input order.
func (c *Compactor) Ranges(addresses []domain.Address) ([]domain.HouseNumberRange, error) {
	runs, err := c.runs(addresses)
	if err != nil {
		return nil, err
	}
	ranges := make([]domain.HouseNumberRange, 0, len(runs))
	for _, r := range runs {
		ranges = append(ranges, r.houseNumberRange())
	}
	return ranges, nil
}

// Render returns one line per street, in order of appearance, e.g.
// "Esther de Boer-van Rijkstraat 5–7, 17".
func (c *Compactor) Render(addresses []domain.Address) ([]string, error) {
	runs, err := c.runs(addresses)
	if err != nil {
		return nil, err
	}

	var order []domain.StreetKey
	numbers := make(map[domain.StreetKey][]string)
	for _, r := range runs {
		if _, ok := numbers[r.street]; !ok {
			order = append(order, r.street)
		}
		numbers[r.street] = append(numbers[r.street], r.houseNumberRange().Text())
	}

	lines := make([]string, 0, len(order))
	for _, street := range order {
		lines = append(lines, street.Street+" "+strings.Join(numbers[street], ", "))
	}
	return lines, nil
}
